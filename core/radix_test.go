package core

import "testing"

func mustInsert(t *testing.T, tr *trie, m Method, pattern string, h Handler) {
	t.Helper()
	segs, err := parsePattern(pattern)
	if err != nil {
		t.Fatalf("parsePattern(%q) error: %v", pattern, err)
	}
	if err := tr.insert(m, pattern, segs, h); err != nil {
		t.Fatalf("insert(%v, %q) error: %v", m, pattern, err)
	}
}

func handlerReturning(body string) Handler {
	return func(req *Request) *Response { return OK().WithText(body) }
}

// Scenario 1 (spec.md §8): literal routes beat parameter routes at the
// same position.
func TestMatchLiteralBeatsParameter(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/user/me", handlerReturning("me"))
	mustInsert(t, tr, GET, "/user/:id", handlerReturning("id"))
	rx := compileTrie(tr)

	res, _, err := rx.Match(GET, []byte("/user/me"))
	if err != nil {
		t.Fatalf("Match(/user/me) error: %v", err)
	}
	if got := res.handler(nil).InlineBody(); string(got) != "me" {
		t.Fatalf("got %q, want me", got)
	}

	res, _, err = rx.Match(GET, []byte("/user/42"))
	if err != nil {
		t.Fatalf("Match(/user/42) error: %v", err)
	}
	if len(res.params) != 1 || string(res.params[0].Value) != "42" {
		t.Fatalf("params = %v, want one capture of 42", res.params)
	}
	if got := res.handler(nil).InlineBody(); string(got) != "id" {
		t.Fatalf("got %q, want id", got)
	}
}

// Scenario 2 (spec.md §8): 405 with Allow listing both registered methods.
func TestMatch405WithAllow(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/x", handlerReturning("get"))
	mustInsert(t, tr, POST, "/x", handlerReturning("post"))
	rx := compileTrie(tr)

	_, allowed, err := rx.Match(DELETE, []byte("/x"))
	if err != ErrMethodNotAllowed {
		t.Fatalf("err = %v, want ErrMethodNotAllowed", err)
	}
	has := map[Method]bool{}
	for _, m := range allowed {
		has[m] = true
	}
	if !has[GET] || !has[POST] {
		t.Fatalf("allowed = %v, want GET and POST", allowed)
	}
}

func TestMatchNotFound(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/x", handlerReturning("get"))
	rx := compileTrie(tr)

	if _, _, err := rx.Match(GET, []byte("/y")); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMatchTrailingWildcardCapturesRemainder(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/files/*path", handlerReturning("file"))
	rx := compileTrie(tr)

	res, _, err := rx.Match(GET, []byte("/files/a/b/c.txt"))
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(res.params) != 1 || string(res.params[0].Value) != "a/b/c.txt" {
		t.Fatalf("params = %v, want a/b/c.txt", res.params)
	}
}

func TestMatchHeadFallsBackToGet(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/ping", handlerReturning("pong"))
	rx := compileTrie(tr)

	res, _, err := rx.Match(HEAD, []byte("/ping"))
	if err != nil {
		t.Fatalf("Match(HEAD) error: %v", err)
	}
	if got := res.handler(nil).InlineBody(); string(got) != "pong" {
		t.Fatalf("got %q, want pong (via GET fallback)", got)
	}
}

func TestInsertDuplicatePatternRejected(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/x", handlerReturning("a"))

	segs, _ := parsePattern("/x")
	if err := tr.insert(GET, "/x", segs, handlerReturning("b")); err != ErrDuplicateRoute {
		t.Fatalf("err = %v, want ErrDuplicateRoute", err)
	}
}

// spec.md §4.4: "on dead-end, the walker does not backtrack across
// siblings chosen earlier". /a/b matches the literal child at the first
// segment; once its subtree dead-ends on "c", the walker must not retry
// via the sibling :p parameter child, even though /a/:p/c would match.
func TestMatchDoesNotBacktrackAcrossCommittedLiteral(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/a/b/d", handlerReturning("literal"))
	mustInsert(t, tr, GET, "/a/:p/c", handlerReturning("param"))
	rx := compileTrie(tr)

	if _, _, err := rx.Match(GET, []byte("/a/b/c")); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound (no backtrack to :p)", err)
	}

	res, _, err := rx.Match(GET, []byte("/a/b/d"))
	if err != nil {
		t.Fatalf("Match(/a/b/d) error: %v", err)
	}
	if got := res.handler(nil).InlineBody(); string(got) != "literal" {
		t.Fatalf("got %q, want literal", got)
	}

	res, _, err = rx.Match(GET, []byte("/a/x/c"))
	if err != nil {
		t.Fatalf("Match(/a/x/c) error: %v", err)
	}
	if got := res.handler(nil).InlineBody(); string(got) != "param" {
		t.Fatalf("got %q, want param", got)
	}
}

func TestMatchFangAccumulationOutermostFirst(t *testing.T) {
	tr := newTrie()
	mustInsert(t, tr, GET, "/admin/users", handlerReturning("users"))

	outerPrefix, _ := parsePattern("/")
	adminPrefix, _ := parsePattern("/admin")
	outer := &recordingFang{name: "outer", foreOrder: &[]string{}, backOrder: &[]string{}}
	inner := &recordingFang{name: "inner", foreOrder: &[]string{}, backOrder: &[]string{}}
	if err := tr.attachFangs(outerPrefix, []Fang{outer}); err != nil {
		t.Fatalf("attachFangs(outer) error: %v", err)
	}
	if err := tr.attachFangs(adminPrefix, []Fang{inner}); err != nil {
		t.Fatalf("attachFangs(inner) error: %v", err)
	}

	rx := compileTrie(tr)
	res, _, err := rx.Match(GET, []byte("/admin/users"))
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(res.fangs) != 2 {
		t.Fatalf("fangs = %v, want 2", res.fangs)
	}
	if res.fangs[0] != Fang(outer) || res.fangs[1] != Fang(inner) {
		t.Fatalf("fang order wrong: got %v, want [outer inner]", res.fangs)
	}
}
