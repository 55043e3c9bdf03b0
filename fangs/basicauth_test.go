package fangs

import (
	"encoding/base64"
	"testing"

	"github.com/yourusername/ohkami/core"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasicAuthAcceptsValidCredentials(t *testing.T) {
	f := NewBasicAuth(BasicAuthConfig{Username: "admin", Password: "hunter2"})
	req := newReq(core.GET)
	req.Headers.Set("Authorization", basicHeader("admin", "hunter2"))

	if reject := f.Fore(req); reject != nil {
		t.Fatalf("Fore rejected valid credentials: %+v", reject)
	}
	user, ok := core.Get[BasicAuthUser](req.Bag())
	if !ok || user != "admin" {
		t.Fatalf("user = %q, ok = %v, want admin/true", user, ok)
	}
}

func TestBasicAuthRejectsWrongPassword(t *testing.T) {
	f := NewBasicAuth(BasicAuthConfig{Username: "admin", Password: "hunter2"})
	req := newReq(core.GET)
	req.Headers.Set("Authorization", basicHeader("admin", "wrong"))

	reject := f.Fore(req)
	if reject == nil || reject.Status != 401 {
		t.Fatalf("Fore = %+v, want 401", reject)
	}
	f.Back(req, reject)
	if v, _ := reject.Headers.Get("WWW-Authenticate"); v != `Basic realm="restricted"` {
		t.Fatalf("WWW-Authenticate = %q", v)
	}
}

func TestBasicAuthRejectsMissingHeader(t *testing.T) {
	f := NewBasicAuth(BasicAuthConfig{Username: "admin", Password: "hunter2"})
	req := newReq(core.GET)

	if reject := f.Fore(req); reject == nil || reject.Status != 401 {
		t.Fatalf("Fore = %+v, want 401", reject)
	}
}

func TestBasicAuthValidateCallbackOverridesCredentials(t *testing.T) {
	f := NewBasicAuth(BasicAuthConfig{
		Validate: func(user, pass string) bool { return user == "svc" && pass == "token" },
	})
	req := newReq(core.GET)
	req.Headers.Set("Authorization", basicHeader("svc", "token"))

	if reject := f.Fore(req); reject != nil {
		t.Fatalf("Fore rejected a Validate-accepted credential: %+v", reject)
	}
}
