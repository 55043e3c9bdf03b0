package core

// Fang is the middleware contract spec.md §3/§4.5 describes. Both methods
// are "optional" in the sense that a fang with nothing to do on one side
// can embed Base and only override the other; see fangs.Base in the fangs
// package for that helper.
//
// Fore runs before the handler, outermost fang first. Returning a non-nil
// Response short-circuits: neither the remaining fore fangs nor the handler
// run, and the chain jumps straight to the back pass starting from this
// fang (inclusive).
//
// Back runs after the handler (or after a short-circuit), innermost fang
// first, and may mutate the response in place.
type Fang interface {
	Fore(req *Request) *Response
	Back(req *Request, res *Response)
}

// Wrapper is an optional extension a Fang may implement alongside Fore/Back
// when it needs to control invocation of everything downstream of it (the
// remaining fangs, the handler, and their Backs) as a single call — a
// request budget that must apply to the whole inner chain, not just the one
// fang that introduces it. Fore/Back can observe and react to the
// response, but neither gets a handle on "the rest of the chain" to invoke
// it itself; Wrap receives that continuation directly.
//
// A Fang implementing Wrapper has its Wrap method called in place of
// Fore/Back's fore half; Back still runs afterward against whatever
// response Wrap produced, so a wrapping fang composes with the onion
// property the same as any other.
type Wrapper interface {
	Wrap(req *Request, next func(*Request) *Response) *Response
}

// chain is the ordered list of fangs the matcher accumulated for one
// request, outermost first.
type chain []Fang

// run executes the fore/back onion (spec.md §4.5) around handle, which
// already has the matched path params bound into req and produces the
// handler's response by calling the extractor/responder-driven entry point
// built in handler.go.
func (c chain) run(req *Request, handle func(req *Request) *Response) *Response {
	return c.runFrom(0, req, handle)
}

func (c chain) runFrom(i int, req *Request, handle func(req *Request) *Response) *Response {
	if i >= len(c) {
		return handle(req)
	}
	f := c[i]
	next := func(req *Request) *Response { return c.runFrom(i+1, req, handle) }

	if w, ok := f.(Wrapper); ok {
		res := w.Wrap(req, next)
		f.Back(req, res)
		return res
	}

	if short := f.Fore(req); short != nil {
		f.Back(req, short)
		return short
	}
	res := next(req)
	f.Back(req, res)
	return res
}
