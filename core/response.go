package core

import "strconv"

// reasonPhrases covers the status set spec.md §6 says are reachable from the
// core, plus the handful of others a user Responder commonly picks.
var reasonPhrases = map[int]string{
	101: "Switching Protocols",
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	307: "Temporary Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	409: "Conflict",
	413: "Payload Too Large",
	415: "Unsupported Media Type",
	422: "Unprocessable Entity",
	429: "Too Many Requests",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
}

// ReasonPhrase returns the canonical reason phrase for a status code, or
// "Unknown" if the core has no entry for it (a Responder is always free to
// use an arbitrary code; only the phrase lookup is limited).
func ReasonPhrase(status int) string {
	if p, ok := reasonPhrases[status]; ok {
		return p
	}
	return "Unknown"
}

// Streamer yields a finite sequence of body chunks. Next returns ok=false
// once exhausted; the connection loop flushes each chunk with back-pressure
// (§5) and never calls Next again after a false.
type Streamer interface {
	Next() (chunk []byte, ok bool)
}

type bodyKind uint8

const (
	bodyNone bodyKind = iota
	bodyInline
	bodyStream
	bodyHijacked
)

// Response is status + headers + one of: no body, an inline byte body, or a
// streaming producer (spec.md §3). The zero value has Status 0 and no
// body; use the status factories below instead of constructing one
// directly.
type Response struct {
	Status  int
	Headers Headers

	kind   bodyKind
	inline []byte
	stream Streamer
}

func newResponse(status int) *Response {
	return &Response{Status: status}
}

// OK constructs a bare 200.
func OK() *Response { return newResponse(200) }

// Created constructs a bare 201.
func Created() *Response { return newResponse(201) }

// NoContent constructs a 204 with no body, ever (WithX calls on it are a
// caller bug, not validated here for the same reason the core doesn't
// validate Content-Length elsewhere — trust the builder call site).
func NoContent() *Response { return newResponse(204) }

// BadRequest constructs a bare 400.
func BadRequest() *Response { return newResponse(400) }

// Unauthorized constructs a bare 401.
func Unauthorized() *Response { return newResponse(401) }

// Forbidden constructs a bare 403.
func Forbidden() *Response { return newResponse(403) }

// NotFound constructs a bare 404.
func NotFound() *Response { return newResponse(404) }

// MethodNotAllowed constructs a bare 405; callers typically chain
// .Header("Allow", ...) immediately (§4.4).
func MethodNotAllowed() *Response { return newResponse(405) }

// RequestTimeout constructs a bare 408.
func RequestTimeout() *Response { return newResponse(408) }

// PayloadTooLarge constructs a bare 413.
func PayloadTooLarge() *Response { return newResponse(413) }

// InternalServerError constructs a bare 500.
func InternalServerError() *Response { return newResponse(500) }

// NotImplemented constructs a bare 501.
func NotImplemented() *Response { return newResponse(501) }

// ServiceUnavailable constructs a bare 503.
func ServiceUnavailable() *Response { return newResponse(503) }

// Status builds a response with an arbitrary status code and no body, for
// anything the named factories above don't cover.
func Status(code int) *Response { return newResponse(code) }

// Hijacked signals that the handler has taken over the raw connection
// itself (via Request.Hijack, §4.9's WebSocket upgrade path) and already
// wrote whatever bytes it needed to. The connection loop writes nothing
// further for this response and leaves the connection exactly as the
// handler left it.
func Hijacked() *Response { return &Response{Status: 101, kind: bodyHijacked} }

// IsHijacked reports whether the handler already took over the connection.
func (r *Response) IsHijacked() bool { return r.kind == bodyHijacked }

// WithText sets an inline text/plain body.
func (r *Response) WithText(s string) *Response {
	return r.WithPayload("text/plain; charset=utf-8", []byte(s))
}

// WithHTML sets an inline text/html body.
func (r *Response) WithHTML(s string) *Response {
	return r.WithPayload("text/html; charset=utf-8", []byte(s))
}

// WithJSON marshals v with goccy/go-json and sets it as an inline
// application/json body. A marshal error is reported rather than silently
// swallowed; callers in the Responder path (respond.go) fold it into a 500.
func (r *Response) WithJSON(v any) (*Response, error) {
	b, err := jsonMarshal(v)
	if err != nil {
		return r, err
	}
	return r.WithPayload("application/json", b), nil
}

// WithPayload sets an inline body with an explicit content type, populating
// Content-Type and Content-Length (spec.md §4.2).
func (r *Response) WithPayload(contentType string, body []byte) *Response {
	r.kind = bodyInline
	r.inline = body
	r.Headers.Set("Content-Type", contentType)
	r.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	return r
}

// WithStream sets a streaming body producer, framed with
// `Transfer-Encoding: chunked` (RFC 7230 §4.1) since its total length isn't
// known up front; writeResponse (writer.go) does the actual chunk framing.
func (r *Response) WithStream(contentType string, s Streamer) *Response {
	r.kind = bodyStream
	r.stream = s
	r.Headers.Set("Content-Type", contentType)
	r.Headers.Set("Transfer-Encoding", "chunked")
	return r
}

// Header sets a header on the response and returns the response for
// chaining (spec.md §4.2's `set().Name(value)`).
func (r *Response) Header(name, value string) *Response {
	r.Headers.Set(name, value)
	return r
}

// AppendHeader joins value onto any existing header with a comma (spec.md
// §4.2's `set().Name(append(value))`).
func (r *Response) AppendHeader(name, value string) *Response {
	r.Headers.Append(name, value)
	return r
}

// InlineBody returns the inline body bytes, or nil if the response has none
// or uses a stream.
func (r *Response) InlineBody() []byte {
	if r.kind != bodyInline {
		return nil
	}
	return r.inline
}

// IsStream reports whether the response carries a streaming body.
func (r *Response) IsStream() bool { return r.kind == bodyStream }

// Stream returns the streaming producer, or nil if the response isn't a
// stream.
func (r *Response) Stream() Streamer {
	if r.kind != bodyStream {
		return nil
	}
	return r.stream
}

// truncateForHEAD drops the body while preserving Content-Length, per
// spec.md §8 invariant 4: a HEAD response reports the Content-Length a GET
// would have sent, with an empty body.
func (r *Response) truncateForHEAD() {
	r.kind = bodyNone
	r.stream = nil
	r.inline = nil
}
