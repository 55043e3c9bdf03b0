package core

import "strconv"

// paramCursor tracks which path-parameter placeholder the next
// parameter-typed extractor in a handler's argument list should bind to
// (spec.md §4.3: "the nth parameter-typed argument... binds to the nth
// :name placeholder... in left-to-right order").
type paramCursor struct{ n int }

func (pc *paramCursor) next() int {
	n := pc.n
	pc.n++
	return n
}

// Extractor is the capability contract spec.md §4.3 describes: "a type
// that can be derived from a request". T is the value type a handler
// argument is declared as; PT constrains *T to have the Extract method, so
// Bind wrappers (handler.go) can instantiate a zero T and extract into it
// without the caller writing any boilerplate.
//
// Extract returns a non-nil Response to reject the request (spec.md: "the
// first Err short-circuits"); a nil return means v now holds the extracted
// value.
type Extractor[T any] interface {
	*T
	Extract(req *Request, pc *paramCursor) *Response
}

// extractInto instantiates a zero T, runs its extractor, and returns the
// populated value or a rejection.
func extractInto[T any, PT Extractor[T]](req *Request, pc *paramCursor) (T, *Response) {
	var v T
	if reject := PT(&v).Extract(req, pc); reject != nil {
		return v, reject
	}
	return v, nil
}

// RequestRef lets a handler take the whole Request as an argument; it
// implements Extractor by copying the live request into itself. Prefer a
// narrower extractor when only a few fields are needed — this one carries
// the full param array and context bag by value.
type RequestRef Request

func (r *RequestRef) Extract(req *Request, pc *paramCursor) *Response {
	*r = RequestRef(*req)
	return nil
}

// StringParam binds the next path parameter placeholder verbatim.
type StringParam string

func (p *StringParam) Extract(req *Request, pc *paramCursor) *Response {
	v, ok := req.Param(pc.next())
	if !ok {
		return BadRequest().WithText("missing path parameter")
	}
	*p = StringParam(v)
	return nil
}

// IntParam binds the next path parameter placeholder, parsed as a decimal
// integer; a non-numeric segment rejects with 400.
type IntParam int

func (p *IntParam) Extract(req *Request, pc *paramCursor) *Response {
	s, ok := req.Param(pc.next())
	if !ok {
		return BadRequest().WithText("missing path parameter")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return BadRequest().WithText("path parameter is not an integer: " + s)
	}
	*p = IntParam(n)
	return nil
}

// Int64Param is IntParam's 64-bit counterpart, for IDs that don't fit int
// on 32-bit platforms.
type Int64Param int64

func (p *Int64Param) Extract(req *Request, pc *paramCursor) *Response {
	s, ok := req.Param(pc.next())
	if !ok {
		return BadRequest().WithText("missing path parameter")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return BadRequest().WithText("path parameter is not an integer: " + s)
	}
	*p = Int64Param(n)
	return nil
}
