package core

import "testing"

func newTestRequest() *Request {
	r := &Request{}
	r.Headers.Set("Content-Type", "text/plain")
	return r
}

func TestStringParamExtract(t *testing.T) {
	r := newTestRequest()
	r.setParam("name", []byte("kaori"))

	var pc paramCursor
	var p StringParam
	if reject := p.Extract(r, &pc); reject != nil {
		t.Fatalf("unexpected reject: %v", reject.Status)
	}
	if string(p) != "kaori" {
		t.Fatalf("p = %q, want kaori", p)
	}
}

func TestIntParamExtractValid(t *testing.T) {
	r := newTestRequest()
	r.setParam("id", []byte("42"))

	var pc paramCursor
	var p IntParam
	if reject := p.Extract(r, &pc); reject != nil {
		t.Fatalf("unexpected reject: %v", reject.Status)
	}
	if p != 42 {
		t.Fatalf("p = %d, want 42", p)
	}
}

func TestIntParamExtractNonNumeric(t *testing.T) {
	r := newTestRequest()
	r.setParam("id", []byte("abc"))

	var pc paramCursor
	var p IntParam
	reject := p.Extract(r, &pc)
	if reject == nil || reject.Status != 400 {
		t.Fatalf("reject = %v, want 400", reject)
	}
}

func TestIntParamExtractMissing(t *testing.T) {
	r := newTestRequest()

	var pc paramCursor
	var p IntParam
	reject := p.Extract(r, &pc)
	if reject == nil || reject.Status != 400 {
		t.Fatalf("reject = %v, want 400", reject)
	}
}

func TestParamCursorAdvancesAcrossMultipleExtractors(t *testing.T) {
	r := newTestRequest()
	r.setParam("category", []byte("books"))
	r.setParam("id", []byte("7"))

	var pc paramCursor
	var cat StringParam
	if reject := cat.Extract(r, &pc); reject != nil {
		t.Fatalf("cat reject: %v", reject.Status)
	}
	var id IntParam
	if reject := id.Extract(r, &pc); reject != nil {
		t.Fatalf("id reject: %v", reject.Status)
	}
	if string(cat) != "books" || id != 7 {
		t.Fatalf("cat=%q id=%d, want books/7", cat, id)
	}
}

func TestRequestRefExtractCopiesLiveRequest(t *testing.T) {
	r := newTestRequest()
	r.setParam("id", []byte("1"))

	var pc paramCursor
	var ref RequestRef
	if reject := ref.Extract(r, &pc); reject != nil {
		t.Fatalf("unexpected reject: %v", reject.Status)
	}
	if ref.paramsLen != 1 {
		t.Fatalf("ref.paramsLen = %d, want 1", ref.paramsLen)
	}
}
