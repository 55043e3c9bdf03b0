package core

import "strings"

type segKind uint8

const (
	segLiteral segKind = iota
	segParam
	segWildcard
)

// segment is one '/'-separated piece of a route pattern (spec.md §3/§6).
type segment struct {
	kind    segKind
	literal string // segLiteral only
	name    string // segParam, segWildcard (may be "" for a bare "*")
}

// parsePattern splits a route pattern into segments and validates the
// grammar: literal / `:name` / trailing `*` or `*name` as the final segment
// only.
func parsePattern(pattern string) ([]segment, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, ErrEmptyPattern
	}
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return []segment{}, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	for i, part := range parts {
		switch {
		case len(part) > 0 && part[0] == ':':
			segments = append(segments, segment{kind: segParam, name: part[1:]})
		case len(part) > 0 && part[0] == '*':
			if i != len(parts)-1 {
				return nil, ErrConflictingWild
			}
			segments = append(segments, segment{kind: segWildcard, name: part[1:]})
		default:
			segments = append(segments, segment{kind: segLiteral, literal: part})
		}
	}
	return segments, nil
}

// splitPathSegments splits a concrete request path the same way, without
// any of the pattern-grammar validation (a request path has no `:`/`*`
// meaning).
func splitPathSegments(path []byte) [][]byte {
	if len(path) == 0 {
		return nil
	}
	trimmed := path
	if trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '/' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) == 0 {
		return nil
	}
	var segs [][]byte
	start := 0
	for i := 0; i <= len(trimmed); i++ {
		if i == len(trimmed) || trimmed[i] == '/' {
			segs = append(segs, trimmed[start:i])
			start = i + 1
		}
	}
	return segs
}
