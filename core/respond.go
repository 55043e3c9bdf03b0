package core

// Responder is the other half of the handler contract (spec.md §4.3): any
// type a handler can return, known how to turn into a Response.
type Responder interface {
	Respond() *Response
}

// Respond makes *Response itself a Responder, so handlers that already
// build one by hand (via the factories in response.go) don't need a
// wrapper type.
func (r *Response) Respond() *Response { return r }

// PlainText is a Responder: a bare string reply, 200 OK, text/plain.
// string itself can't implement Responder (Go forbids methods on
// unnamed/builtin types), hence the named wrapper.
type PlainText string

func (t PlainText) Respond() *Response { return OK().WithText(string(t)) }

// RawBytes is PlainText's []byte counterpart.
type RawBytes []byte

func (b RawBytes) Respond() *Response {
	return OK().WithPayload("text/plain; charset=utf-8", []byte(b))
}

// JSONOf is a Responder wrapping any JSON-marshalable value, 200 OK,
// application/json. Marshal failure (a value with an unsupported type,
// e.g. a channel) degrades to 500 rather than panicking.
type JSONOf struct{ Value any }

func (j JSONOf) Respond() *Response {
	res, err := OK().WithJSON(j.Value)
	if err != nil {
		return InternalServerError().WithText("failed to encode response body")
	}
	return res
}

// Created201 is a Responder for "created, here's the representation" —
// 201 Created with a JSON body.
type Created201 struct{ Value any }

func (c Created201) Respond() *Response {
	res, err := Created().WithJSON(c.Value)
	if err != nil {
		return InternalServerError().WithText("failed to encode response body")
	}
	return res
}

// NoBody is a Responder for handlers that only signal completion — 204 No
// Content, nothing else.
type NoBody struct{}

func (NoBody) Respond() *Response { return NoContent() }

// Result is a two-armed Responder (spec.md §4.3: "a sum type whose Ok and
// Err arms are both themselves Responders, dispatching to whichever arm is
// populated"). Build one with Ok or Err, never by setting its fields
// directly — the zero value has isErr false and a zero T, which silently
// dispatches to the Ok arm.
type Result[T Responder, E Responder] struct {
	ok    T
	err   E
	isErr bool
}

func Ok[T Responder, E Responder](v T) Result[T, E]  { return Result[T, E]{ok: v} }
func Err[T Responder, E Responder](e E) Result[T, E] { return Result[T, E]{err: e, isErr: true} }

func (r Result[T, E]) Respond() *Response {
	if r.isErr {
		return r.err.Respond()
	}
	return r.ok.Respond()
}
