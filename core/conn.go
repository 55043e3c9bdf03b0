package core

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"github.com/yourusername/ohkami/internal/buffer"
)

// serveConn runs the read→parse→match→run→write loop for one accepted
// connection (spec.md §4.6), until the connection closes or the server
// signals shutdown via done.
func serveConn(nc net.Conn, rx *Radix, cfg *Config, logger *slog.Logger, done <-chan struct{}) {
	hijacked := false
	defer func() {
		if !hijacked {
			nc.Close()
		}
	}()

	conn := buffer.New(nc, cfg.InitialBufferSize, cfg.MaxRequestSize)
	w := bufio.NewWriter(nc)
	req := &Request{}

	for {
		select {
		case <-done:
			return
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(cfg.KeepAliveTimeout)); err != nil {
			return
		}

		head, err := conn.ReadHead()
		if err != nil {
			handleReadError(err, w, logger)
			return
		}

		start := time.Now()
		req.reset()
		populateRequest(req, conn, head)

		thunk, allowed := route(rx, req)
		res := runWithRecover(thunk, req, logger)

		if res.IsHijacked() {
			hijacked = true
			logOutcome(logger, req, res, start)
			return
		}

		if req.Method == HEAD {
			res.truncateForHEAD()
		}
		if res.Status == 405 && len(allowed) > 0 {
			res.Header("Allow", joinMethods(allowed))
		}

		keepAlive := !head.Close
		if err := writeResponse(w, res, keepAlive); err != nil {
			logger.Warn("write failed, closing connection", "error", err)
			return
		}
		logOutcome(logger, req, res, start)

		if !keepAlive {
			return
		}
		conn.Reset()
	}
}

// populateRequest fills req in place from a freshly parsed Head, mirroring
// newRequest (request.go) without allocating a new Request each iteration.
func populateRequest(req *Request, conn *buffer.Conn, head *buffer.Head) {
	req.Method = head.Method
	req.rawPath = head.Path
	req.query = head.Query
	req.conn = conn
	for _, hf := range head.Headers {
		req.Headers.Set(bytesToString(hf.Name), bytesToString(hf.Value))
	}
	req.body = conn.Body()
}

// route resolves the matched handler+fangs into a ready-to-run Response
// thunk, or builds the 404/405 response directly (spec.md §7's taxonomy:
// "Route miss → 404", "Method miss → 405 with Allow").
func route(rx *Radix, req *Request) (func() *Response, []Method) {
	result, allowed, err := rx.Match(req.Method, req.PathBytes())
	if err == nil {
		for _, p := range result.params {
			req.setParam(p.Name, p.Value)
		}
		fangs, handler := result.fangs, result.handler
		return func() *Response {
			return chain(fangs).run(req, handler)
		}, nil
	}

	// No explicit OPTIONS handler: auto-answer (spec.md §6), independent of
	// whether the failed OPTIONS match itself looked like a 404 or a 405.
	if req.Method == OPTIONS {
		allow := optionsAllow(rx, req)
		return func() *Response { return Status(200).Header("Allow", allow) }, nil
	}

	if errors.Is(err, ErrMethodNotAllowed) {
		return func() *Response { return MethodNotAllowed() }, allowed
	}
	return func() *Response { return NotFound() }, nil
}

// runWithRecover calls thunk, catching a panicking handler or fang and
// converting it to 500 (spec.md §7: "Panics in a handler are caught by the
// connection loop, logged, and converted to 500").
func runWithRecover(thunk func() *Response, req *Request, logger *slog.Logger) (res *Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in handler", "recovered", r, "stack", string(debug.Stack()), "path", req.Path())
			res = InternalServerError().WithText("internal server error")
		}
	}()
	return thunk()
}

func handleReadError(err error, w *bufio.Writer, logger *slog.Logger) {
	switch {
	case errors.Is(err, buffer.ErrUnexpectedEOF):
		return
	case errors.Is(err, buffer.ErrHeadersTooLarge), errors.Is(err, buffer.ErrBodyTooLarge):
		_ = writeResponse(w, PayloadTooLarge().WithText("request too large"), false)
	case errors.Is(err, buffer.ErrNotImplemented):
		_ = writeResponse(w, NotImplemented().WithText("unsupported Transfer-Encoding"), false)
	default:
		_ = writeResponse(w, BadRequest().WithText("malformed request"), false)
	}
	logger.Warn("closing connection after read error", "error", err)
}

func logOutcome(logger *slog.Logger, req *Request, res *Response, start time.Time) {
	elapsed := time.Since(start)
	attrs := []any{"method", req.Method.String(), "path", req.Path(), "status", res.Status, "elapsed", elapsed}
	switch {
	case res.Status >= 500:
		logger.Error("request failed", attrs...)
	case res.Status >= 400:
		logger.Warn("request rejected", attrs...)
	default:
		logger.Info("request handled", attrs...)
	}
}

func joinMethods(methods []Method) string {
	out := ""
	for i, m := range methods {
		if i > 0 {
			out += ", "
		}
		out += m.String()
	}
	return out
}

// optionsAllow builds the Allow header for an automatic OPTIONS answer
// (OPTIONS * and OPTIONS <path>) by trying every method against the path.
// route gives this answer whenever no OPTIONS route matches, whether or not
// a CORS fang is attached; no fang runs for it.
func optionsAllow(rx *Radix, req *Request) string {
	var allowed []Method
	path := req.PathBytes()
	if len(path) == 0 || (len(path) == 1 && path[0] == '*') {
		path = []byte("/")
	}
	for m := Method(1); m < 8; m++ {
		if _, _, err := rx.Match(m, path); err == nil {
			allowed = append(allowed, m)
		}
	}
	return joinMethods(allowed)
}
