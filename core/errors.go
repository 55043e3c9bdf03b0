package core

import "errors"

// Build-time errors: returned by Ohkami construction, never by a running
// server.
var (
	ErrDuplicateRoute  = errors.New("ohkami: duplicate route registration for method and pattern")
	ErrConflictingWild = errors.New("ohkami: wildcard segment must be the final segment")
	ErrEmptyPattern    = errors.New("ohkami: route pattern must start with /")
)

// ErrNotFound and ErrMethodNotAllowed are the two matcher misses (§4.4);
// callers compare against these with errors.Is.
var (
	ErrNotFound         = errors.New("ohkami: no route matches the request path")
	ErrMethodNotAllowed = errors.New("ohkami: path matches, but not for this method")
)
