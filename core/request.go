package core

import (
	"bufio"
	"net"

	"github.com/yourusername/ohkami/internal/buffer"
)

// maxPathParams bounds the fixed-capacity param list (spec.md §3: "a
// fixed-capacity ordered list"); no realistic route pattern nests this deep.
const maxPathParams = 16

// PathParam is one `:name` capture from a matched route.
type PathParam struct {
	Name  string
	Value []byte
}

// Request borrows from the connection's buffer (internal/buffer.Conn). It
// is valid only for the duration of the handler invocation that owns it;
// nothing about it may be retained past that call without copying.
type Request struct {
	Method  Method
	rawPath []byte // still percent-encoded; routing always uses this form
	query   []byte // nil when the target carried no '?'
	Headers Headers
	body    []byte // nil when absent

	params    [maxPathParams]PathParam
	paramsLen int

	bag  Bag
	conn *buffer.Conn
}

// newRequest builds a new Request view over a freshly parsed Head. The
// connection loop does not call it; it reuses one Request per connection and
// fills it with populateRequest (conn.go).
func newRequest(conn *buffer.Conn, head *buffer.Head) *Request {
	r := &Request{
		Method:  head.Method,
		rawPath: head.Path,
		query:   head.Query,
		conn:    conn,
	}
	for _, hf := range head.Headers {
		r.Headers.Set(bytesToString(hf.Name), bytesToString(hf.Value))
	}
	r.body = conn.Body()
	return r
}

// reset clears a Request for the next keep-alive iteration. Called by the
// connection loop right before populateRequest refills it.
func (r *Request) reset() {
	r.paramsLen = 0
	r.Headers.reset()
	r.bag.reset()
}

// Path returns the raw (still percent-encoded) request path, with leading
// '/' and no query string, as a string. Routing matches against this form
// directly; call DecodedPath if you need percent-decoding.
func (r *Request) Path() string { return bytesToString(r.rawPath) }

// PathBytes is the zero-copy form of Path, used by the matcher's hot path.
func (r *Request) PathBytes() []byte { return r.rawPath }

// DecodedPath percent-decodes the path lazily into the connection's scratch
// buffer (spec.md §4.1). The result is only valid until the next call that
// reuses the scratch buffer (any other Decode on this connection).
func (r *Request) DecodedPath() string {
	return bytesToString(r.conn.Decode(r.rawPath))
}

// RawQuery returns the query string (without the leading '?'), or "" if the
// request target had none.
func (r *Request) RawQuery() string { return bytesToString(r.query) }

// HasQuery reports whether the request target carried a '?'.
func (r *Request) HasQuery() bool { return r.query != nil }

// Body returns the request body bytes, or nil if the request had none.
func (r *Request) Body() []byte { return r.body }

// Bag exposes the request's typed context store (spec.md §3). Use the
// package-level Insert/Get functions against it.
func (r *Request) Bag() *Bag { return &r.bag }

// Hijack hands the underlying net.Conn and its bufio.Reader to the caller
// for the WebSocket upgrade path (ws.Upgrade, §4.9). After Hijack, the
// connection loop no longer owns this connection: a handler that hijacks
// must signal it by returning core.Hijacked() so the loop skips writing an
// ordinary response and leaves the raw connection alone.
func (r *Request) Hijack() (net.Conn, *bufio.Reader) {
	return r.conn.Hijack()
}

// setParam appends a path-parameter capture made during matching (§4.4).
// silently drops captures past maxPathParams; no realistic route pattern
// approaches that many segments.
func (r *Request) setParam(name string, value []byte) {
	if r.paramsLen >= maxPathParams {
		return
	}
	r.params[r.paramsLen] = PathParam{Name: name, Value: value}
	r.paramsLen++
}

// Param returns the value of the nth path parameter captured during
// matching, in left-to-right declaration order (spec.md §4.3's binding
// rule), or "" and false if there is no nth parameter.
func (r *Request) Param(n int) (string, bool) {
	if n < 0 || n >= r.paramsLen {
		return "", false
	}
	return bytesToString(r.params[n].Value), true
}

// ParamByName returns the value of the path parameter with the given name,
// or "" and false if no such parameter was captured.
func (r *Request) ParamByName(name string) (string, bool) {
	for i := 0; i < r.paramsLen; i++ {
		if r.params[i].Name == name {
			return bytesToString(r.params[i].Value), true
		}
	}
	return "", false
}
