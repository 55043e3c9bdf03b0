package fangs

import (
	"testing"
	"time"

	"github.com/yourusername/ohkami/core"
)

func TestTimeoutLetsFastHandlerThrough(t *testing.T) {
	f := NewTimeout(TimeoutConfig{Duration: 50 * time.Millisecond})
	req := newReq(core.GET)

	res := f.Wrap(req, func(req *core.Request) *core.Response {
		return core.OK().WithText("fast")
	})
	if res.Status != 200 || string(res.InlineBody()) != "fast" {
		t.Fatalf("res = %d/%q, want 200/fast", res.Status, res.InlineBody())
	}
}

func TestTimeoutPreemptsSlowHandler(t *testing.T) {
	f := NewTimeout(TimeoutConfig{Duration: 10 * time.Millisecond})
	req := newReq(core.GET)

	res := f.Wrap(req, func(req *core.Request) *core.Response {
		time.Sleep(200 * time.Millisecond)
		return core.OK().WithText("too slow")
	})
	if res.Status != 503 {
		t.Fatalf("Status = %d, want 503", res.Status)
	}
}

func TestTimeoutUsesCustomHandlerOnExpiry(t *testing.T) {
	f := NewTimeout(TimeoutConfig{
		Duration: 10 * time.Millisecond,
		Handler:  func(req *core.Request) *core.Response { return core.RequestTimeout().WithText("too slow") },
	})
	req := newReq(core.GET)

	res := f.Wrap(req, func(req *core.Request) *core.Response {
		time.Sleep(200 * time.Millisecond)
		return core.OK()
	})
	if res.Status != 408 {
		t.Fatalf("Status = %d, want 408", res.Status)
	}
}
