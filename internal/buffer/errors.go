package buffer

import "errors"

// Parse-time failures. The connection loop (core package) maps these to the
// status codes spec.md §7 assigns them; this package stays HTTP-status-free
// on purpose so it can be unit tested without pulling in the response model.
var (
	ErrInvalidRequestLine = errors.New("buffer: invalid request line")
	ErrInvalidMethod      = errors.New("buffer: unrecognized method")
	ErrInvalidPath        = errors.New("buffer: invalid request target")
	ErrUnsupportedVersion = errors.New("buffer: unsupported HTTP version")
	ErrInvalidHeader      = errors.New("buffer: malformed header line")
	ErrHeadersTooLarge    = errors.New("buffer: request line + headers exceed the configured limit")
	ErrBodyTooLarge       = errors.New("buffer: body exceeds the configured limit")
	ErrNotImplemented     = errors.New("buffer: unsupported Transfer-Encoding")
	ErrUnexpectedEOF      = errors.New("buffer: connection closed mid-request")
)
