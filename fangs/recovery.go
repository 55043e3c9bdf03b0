// Package fangs holds the built-in core.Fang implementations — CORS, JWT,
// Basic Auth, request timeout, rate limiting, structured logging, panic
// recovery, and Prometheus metrics — each built against the same Fore/Back
// contract a user fang uses.
package fangs

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/yourusername/ohkami/core"
)

// RecoveryConfig configures Recovery.
type RecoveryConfig struct {
	// Logger receives the panic record. Defaults to slog.Default().
	Logger *slog.Logger

	// Handler builds the response returned after a recovered panic.
	// Defaults to a 500 whose text body names the recovered value.
	Handler func(req *core.Request, recovered any) *core.Response
}

// DefaultRecoveryConfig returns Recovery's default configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{}
}

// Recovery catches a panic from any fang or handler downstream of it and
// converts it to a response instead of letting it propagate. The connection
// loop already recovers panics that escape the whole chain (so a bare
// core.New() is never at risk of crashing on one handler's bug); this fang
// is for composing a recovery boundary — with its own logging or handler —
// around one subtree, mirroring the teacher's middleware/recovery.go.
type Recovery struct {
	Base
	cfg RecoveryConfig
}

// NewRecovery builds a Recovery fang from config. A zero RecoveryConfig is
// valid and uses the defaults above.
func NewRecovery(cfg RecoveryConfig) *Recovery {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Recovery{cfg: cfg}
}

// Wrap implements core.Wrapper: it's the recover itself that needs to sit
// directly around the call to next, the same shape as Fore/Back can't
// express for a deferred recover.
func (f *Recovery) Wrap(req *core.Request, next func(*core.Request) *core.Response) (res *core.Response) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			f.cfg.Logger.Error("recovered panic", "recovered", r, "stack", string(stack), "path", req.Path())
			if f.cfg.Handler != nil {
				res = f.cfg.Handler(req, r)
				return
			}
			res = core.InternalServerError().WithText(fmt.Sprintf("internal server error: %v", r))
		}
	}()
	return next(req)
}
