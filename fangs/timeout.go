package fangs

import (
	"context"
	"time"

	"github.com/yourusername/ohkami/core"
)

// TimeoutConfig configures Timeout.
type TimeoutConfig struct {
	// Duration is the maximum time the inner chain gets to produce a
	// response. Default: 30s.
	Duration time.Duration
	// Handler builds the response returned on expiry. Defaults to a 503
	// with the text body "request timeout" (the abandoned handler goroutine may still be running; there is
	// no way to interrupt arbitrary Go code mid-execution, only to stop
	// waiting on it).
	Handler func(req *core.Request) *core.Response
}

// DefaultTimeoutConfig returns Timeout's default configuration.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{Duration: 30 * time.Second}
}

// Timeout races the rest of the chain against a deadline, grounded on the
// teacher's middleware/timeout.go goroutine race — adapted from Go's
// func(next Handler) Handler shape (which owns the call to next directly)
// to this core's Fore/Back contract via core.Wrapper, the one extension
// point that hands a fang the actual downstream continuation to invoke.
//
// On expiry the wrapped call returns immediately with the timeout response;
// the goroutine running next keeps running to completion in the
// background and its eventual result, including any response it built, is
// discarded — there's no way in Go to kill a goroutine from outside it.
type Timeout struct {
	Base
	cfg TimeoutConfig
}

// NewTimeout builds a Timeout fang from config.
func NewTimeout(cfg TimeoutConfig) *Timeout {
	if cfg.Duration == 0 {
		cfg.Duration = 30 * time.Second
	}
	return &Timeout{cfg: cfg}
}

func (f *Timeout) Wrap(req *core.Request, next func(*core.Request) *core.Response) *core.Response {
	ctx, cancel := context.WithTimeout(context.Background(), f.cfg.Duration)
	defer cancel()

	done := make(chan *core.Response, 1)
	go func() {
		done <- next(req)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		if f.cfg.Handler != nil {
			return f.cfg.Handler(req)
		}
		return core.ServiceUnavailable().WithText("request timeout")
	}
}
