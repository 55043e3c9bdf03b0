package core

// Bind adapts user handler functions, whose argument types implement
// Extractor and whose return type implements Responder, into a plain
// Handler. Go generics can't express a variadic argument-tuple type
// parameter, so — per design note §9 — the family is emitted mechanically,
// one function per arity; extend upward the same way if a handler ever
// needs more than five extracted arguments.

// Bind0 adapts a handler that takes no extracted arguments.
func Bind0[O Responder](fn func() O) Handler {
	return func(req *Request) *Response {
		return fn().Respond()
	}
}

// Bind1 adapts a handler taking one extracted argument.
func Bind1[A1 any, PA1 Extractor[A1], O Responder](fn func(A1) O) Handler {
	return func(req *Request) *Response {
		var pc paramCursor
		a1, reject := extractInto[A1, PA1](req, &pc)
		if reject != nil {
			return reject
		}
		return fn(a1).Respond()
	}
}

// Bind2 adapts a handler taking two extracted arguments, resolved
// left-to-right.
func Bind2[A1 any, PA1 Extractor[A1], A2 any, PA2 Extractor[A2], O Responder](fn func(A1, A2) O) Handler {
	return func(req *Request) *Response {
		var pc paramCursor
		a1, reject := extractInto[A1, PA1](req, &pc)
		if reject != nil {
			return reject
		}
		a2, reject := extractInto[A2, PA2](req, &pc)
		if reject != nil {
			return reject
		}
		return fn(a1, a2).Respond()
	}
}

// Bind3 adapts a handler taking three extracted arguments.
func Bind3[A1 any, PA1 Extractor[A1], A2 any, PA2 Extractor[A2], A3 any, PA3 Extractor[A3], O Responder](fn func(A1, A2, A3) O) Handler {
	return func(req *Request) *Response {
		var pc paramCursor
		a1, reject := extractInto[A1, PA1](req, &pc)
		if reject != nil {
			return reject
		}
		a2, reject := extractInto[A2, PA2](req, &pc)
		if reject != nil {
			return reject
		}
		a3, reject := extractInto[A3, PA3](req, &pc)
		if reject != nil {
			return reject
		}
		return fn(a1, a2, a3).Respond()
	}
}

// Bind4 adapts a handler taking four extracted arguments.
func Bind4[A1 any, PA1 Extractor[A1], A2 any, PA2 Extractor[A2], A3 any, PA3 Extractor[A3], A4 any, PA4 Extractor[A4], O Responder](fn func(A1, A2, A3, A4) O) Handler {
	return func(req *Request) *Response {
		var pc paramCursor
		a1, reject := extractInto[A1, PA1](req, &pc)
		if reject != nil {
			return reject
		}
		a2, reject := extractInto[A2, PA2](req, &pc)
		if reject != nil {
			return reject
		}
		a3, reject := extractInto[A3, PA3](req, &pc)
		if reject != nil {
			return reject
		}
		a4, reject := extractInto[A4, PA4](req, &pc)
		if reject != nil {
			return reject
		}
		return fn(a1, a2, a3, a4).Respond()
	}
}

// Bind5 adapts a handler taking five extracted arguments.
func Bind5[A1 any, PA1 Extractor[A1], A2 any, PA2 Extractor[A2], A3 any, PA3 Extractor[A3], A4 any, PA4 Extractor[A4], A5 any, PA5 Extractor[A5], O Responder](fn func(A1, A2, A3, A4, A5) O) Handler {
	return func(req *Request) *Response {
		var pc paramCursor
		a1, reject := extractInto[A1, PA1](req, &pc)
		if reject != nil {
			return reject
		}
		a2, reject := extractInto[A2, PA2](req, &pc)
		if reject != nil {
			return reject
		}
		a3, reject := extractInto[A3, PA3](req, &pc)
		if reject != nil {
			return reject
		}
		a4, reject := extractInto[A4, PA4](req, &pc)
		if reject != nil {
			return reject
		}
		a5, reject := extractInto[A5, PA5](req, &pc)
		if reject != nil {
			return reject
		}
		return fn(a1, a2, a3, a4, a5).Respond()
	}
}
