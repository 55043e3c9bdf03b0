package core

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Server binds a listener and hands each accepted connection to its own
// per-connection loop (spec.md §4.7: "serving binds a listener, spawns an
// accept loop, and hands each accepted connection to a per-connection
// task"), grounded in the teacher's App.Listen/Run/Shutdown trio.
type Server struct {
	rx     *Radix
	cfg    *Config
	logger *slog.Logger

	mu   sync.Mutex
	ln   net.Listener
	wg   sync.WaitGroup
	done chan struct{}
}

// NewServer builds the composer's route table and wraps it in a Server
// ready to Listen/Run. A nil cfg uses Default().
func NewServer(o *Ohkami, cfg *Config) (*Server, error) {
	rx, err := o.Build()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}
	return &Server{
		rx:     rx,
		cfg:    cfg,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}, nil
}

// SetLogger overrides the default slog logger (spec.md §7 / SPEC_FULL §7:
// every closed connection and 5xx logs one record).
func (s *Server) SetLogger(logger *slog.Logger) { s.logger = logger }

// Addr returns the listener's bound address, or nil before Listen/Run has
// bound one. Useful for tests that bind an ephemeral port (":0").
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Listen binds addr and runs the accept loop until the listener closes
// (via Shutdown) or Accept fails for another reason. Blocking call.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop against an already-bound listener, for
// callers that need to know the bound address before Listen would return
// it (e.g. binding ":0" and reading back the assigned port).
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info("ohkami listening", "addr", ln.Addr().String())
	return s.acceptLoop(ln)
}

func (s *Server) acceptLoop(ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return err
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			serveConn(nc, s.rx, s.cfg, s.logger, s.done)
		}()
	}
}

// Run is Listen with graceful shutdown on SIGINT/SIGTERM (spec.md §5:
// "if the runtime signals shutdown, the loop drains the current request
// and exits; new accepts are refused").
func (s *Server) Run(addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		s.logger.Info("shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// Shutdown refuses new accepts, lets in-flight connections drain their
// current request, and returns once every connection task has exited or ctx
// expires first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	ln := s.ln
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}

	waitCh := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
