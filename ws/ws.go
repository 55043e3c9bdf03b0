// Package ws implements the WebSocket upgrade path (spec.md §4.9) on top of
// gorilla/websocket, the teacher's own choice for the same job (see
// _examples/aofei-air/websocket.go, which upgrades the same way: hijack the
// raw connection, hand it to websocket.Upgrader).
package ws

import (
	"bufio"
	"net"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/yourusername/ohkami/core"
)

// hijackResponseWriter satisfies http.ResponseWriter+http.Hijacker just
// enough for websocket.Upgrader.Upgrade: it never actually buffers a
// response through Write/WriteHeader (the upgrade handshake response is
// written by Upgrade itself, straight to the hijacked connection), it only
// exists to hand back the net.Conn this core already owns.
type hijackResponseWriter struct {
	header http.Header
	nc     net.Conn
	br     *bufio.Reader
}

func (w *hijackResponseWriter) Header() http.Header         { return w.header }
func (w *hijackResponseWriter) Write(b []byte) (int, error) { return w.nc.Write(b) }
func (w *hijackResponseWriter) WriteHeader(statusCode int)   {}

func (w *hijackResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.nc, bufio.NewReadWriter(w.br, bufio.NewWriter(w.nc)), nil
}

// Upgrader configures Upgrade. The zero value is ready to use (accepts any
// subprotocol, checks nothing about Origin beyond what gorilla/websocket
// itself defaults to).
type Upgrader struct {
	// Subprotocols lists the server's supported subprotocols, in
	// preference order.
	Subprotocols []string
	// CheckOrigin decides whether to accept a cross-origin upgrade.
	// Defaults to gorilla/websocket's same-origin-or-absent check.
	CheckOrigin func(req *core.Request) bool
	// ReadBufferSize / WriteBufferSize size the resulting Conn's internal
	// buffers. Zero uses gorilla/websocket's defaults.
	ReadBufferSize, WriteBufferSize int
}

// Upgrade performs the HTTP/1.1 → WebSocket handshake (RFC 6455) against
// req, hijacking its underlying connection in the process. On success the
// caller owns the returned *websocket.Conn exclusively — the core's
// connection loop takes no further action on this connection once the
// handler that called Upgrade returns core.Hijacked().
//
// responseHeader carries any extra headers (e.g. a chosen subprotocol) to
// include in the 101 response; it may be nil.
func (u Upgrader) Upgrade(req *core.Request, responseHeader http.Header) (*websocket.Conn, error) {
	httpReq, err := toHTTPRequest(req)
	if err != nil {
		return nil, err
	}

	nc, br := req.Hijack()
	w := &hijackResponseWriter{header: make(http.Header), nc: nc, br: br}

	upgrader := &websocket.Upgrader{
		Subprotocols:    u.Subprotocols,
		ReadBufferSize:  u.ReadBufferSize,
		WriteBufferSize: u.WriteBufferSize,
	}
	if u.CheckOrigin != nil {
		upgrader.CheckOrigin = func(*http.Request) bool { return u.CheckOrigin(req) }
	}

	return upgrader.Upgrade(w, httpReq, responseHeader)
}

// Upgrade is the package-level convenience form of Upgrader{}.Upgrade.
func Upgrade(req *core.Request, responseHeader http.Header) (*websocket.Conn, error) {
	return Upgrader{}.Upgrade(req, responseHeader)
}

// toHTTPRequest builds the *http.Request shape websocket.Upgrader.Upgrade
// inspects (Method, Header, Host, URL) directly from req's already-parsed
// fields, rather than re-parsing bytes net/http already has no further use
// for here.
func toHTTPRequest(req *core.Request) (*http.Request, error) {
	header := make(http.Header, 8)
	req.Headers.Each(func(name, value string) {
		header.Set(name, value)
	})

	host, _ := req.Headers.Get("Host")
	u, err := url.ParseRequestURI(req.Path())
	if err != nil {
		return nil, err
	}
	u.RawQuery = req.RawQuery()

	return &http.Request{
		Method:     "GET",
		URL:        u,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     header,
		Host:       host,
	}, nil
}
