package core

import "github.com/yourusername/ohkami/internal/buffer"

// Method re-exports internal/buffer's wire-level method enum so package
// core's public API never needs callers to import internal/buffer directly.
type Method = buffer.Method

const (
	MethodUnknown = buffer.MethodUnknown
	GET           = buffer.GET
	HEAD          = buffer.HEAD
	POST          = buffer.POST
	PUT           = buffer.PUT
	PATCH         = buffer.PATCH
	DELETE        = buffer.DELETE
	OPTIONS       = buffer.OPTIONS
)
