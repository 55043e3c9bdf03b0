package fangs

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/yourusername/ohkami/core"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig configures Logger.
type LoggerConfig struct {
	// Output receives log lines. Ignored if FilePath is set.
	Output io.Writer
	// FilePath, if set, routes output through a rotating
	// natefinch/lumberjack.v2 writer instead of Output.
	FilePath   string
	MaxSizeMB  int // default 100
	MaxBackups int // default 3
	MaxAgeDays int // default 28

	// Level is the minimum level logged. Default: slog.LevelInfo.
	Level slog.Level
}

// DefaultLoggerConfig returns Logger's default configuration (a text
// handler on os.Stderr, info level).
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: slog.LevelInfo}
}

// Logger structured-logs one record per request: method, path, status, and
// elapsed time, computed in Back once the status is known, grounded on the
// connection loop's own logOutcome (conn.go) but scoped to one fang's
// subtree instead of every request.
type Logger struct {
	logger *slog.Logger
}

// NewLogger builds a Logger fang from config.
func NewLogger(cfg LoggerConfig) *Logger {
	var handler slog.Handler
	if cfg.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    nonZero(cfg.MaxSizeMB, 100),
			MaxBackups: nonZero(cfg.MaxBackups, 3),
			MaxAge:     nonZero(cfg.MaxAgeDays, 28),
		}
		handler = slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: cfg.Level})
	} else {
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	}
	return &Logger{logger: slog.New(handler)}
}

func nonZero(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

type requestStart time.Time

func (f *Logger) Fore(req *core.Request) *core.Response {
	core.Insert(req.Bag(), requestStart(time.Now()))
	return nil
}

func (f *Logger) Back(req *core.Request, res *core.Response) {
	start, ok := core.Get[requestStart](req.Bag())
	elapsed := time.Duration(0)
	if ok {
		elapsed = time.Since(time.Time(start))
	}
	attrs := []any{"method", req.Method.String(), "path", req.Path(), "status", res.Status, "elapsed", elapsed}
	switch {
	case res.Status >= 500:
		f.logger.Error("request failed", attrs...)
	case res.Status >= 400:
		f.logger.Warn("request rejected", attrs...)
	default:
		f.logger.Info("request handled", attrs...)
	}
}
