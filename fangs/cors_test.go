package fangs

import (
	"testing"

	"github.com/yourusername/ohkami/core"
)

func newReq(method core.Method) *core.Request {
	return &core.Request{Method: method}
}

func TestCORSPreflightShortCircuitsWithHeaders(t *testing.T) {
	f := NewCORS(DefaultCORSConfig())
	req := newReq(core.OPTIONS)
	req.Headers.Set("Origin", "https://example.com")

	short := f.Fore(req)
	if short == nil {
		t.Fatal("Fore = nil, want preflight short-circuit")
	}
	if short.Status != 204 {
		t.Fatalf("Status = %d, want 204", short.Status)
	}
	if v, _ := short.Headers.Get("Access-Control-Allow-Methods"); v == "" {
		t.Fatal("Access-Control-Allow-Methods not set on preflight response")
	}

	f.Back(req, short)
	if v, _ := short.Headers.Get("Access-Control-Allow-Origin"); v != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", v)
	}
}

func TestCORSBackSetsOriginOnOrdinaryResponse(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://example.com"}
	f := NewCORS(cfg)

	req := newReq(core.GET)
	req.Headers.Set("Origin", "https://example.com")

	if short := f.Fore(req); short != nil {
		t.Fatalf("Fore = %v, want nil for a non-preflight request", short)
	}

	res := core.OK()
	f.Back(req, res)
	if v, _ := res.Headers.Get("Access-Control-Allow-Origin"); v != "https://example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want https://example.com", v)
	}
}

func TestCORSBackOmitsOriginForDisallowedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://trusted.example"}
	f := NewCORS(cfg)

	req := newReq(core.GET)
	req.Headers.Set("Origin", "https://evil.example")

	res := core.OK()
	f.Back(req, res)
	if _, ok := res.Headers.Get("Access-Control-Allow-Origin"); ok {
		t.Fatal("Access-Control-Allow-Origin set for a disallowed origin")
	}
}
