package fangs

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/yourusername/ohkami/core"
)

// BasicAuthConfig configures BasicAuth. Set Username/Password for a single
// fixed credential (compared in constant time); set Validate instead for
// multi-user or external lookup, bypassing the built-in comparison.
type BasicAuthConfig struct {
	// Realm is sent in the WWW-Authenticate challenge. Default: "restricted".
	Realm string
	// Username/Password are compared against the decoded credential in
	// constant time. Ignored if Validate is set.
	Username, Password string
	// Validate, if set, replaces the Username/Password comparison.
	Validate func(user, pass string) bool
}

// BasicAuth checks an "Authorization: Basic ..." header. With the
// Username/Password form it compares in constant time, so a client can't
// learn anything about the expected credential from response timing.
type BasicAuth struct {
	cfg       BasicAuthConfig
	challenge string
}

// NewBasicAuth builds a BasicAuth fang from config.
func NewBasicAuth(cfg BasicAuthConfig) *BasicAuth {
	if cfg.Realm == "" {
		cfg.Realm = "restricted"
	}
	return &BasicAuth{cfg: cfg, challenge: `Basic realm="` + cfg.Realm + `"`}
}

func (f *BasicAuth) unauthorized() *core.Response {
	return core.Unauthorized().Header("WWW-Authenticate", f.challenge)
}

func (f *BasicAuth) valid(user, pass string) bool {
	if f.cfg.Validate != nil {
		return f.cfg.Validate(user, pass)
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(f.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(f.cfg.Password)) == 1
	return userOK && passOK
}

func (f *BasicAuth) Fore(req *core.Request) *core.Response {
	auth, ok := req.Headers.Get("Authorization")
	if !ok {
		return f.unauthorized()
	}
	const prefix = "Basic "
	if !strings.HasPrefix(auth, prefix) {
		return f.unauthorized()
	}
	decoded, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
	if err != nil {
		return f.unauthorized()
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return f.unauthorized()
	}
	if !f.valid(user, pass) {
		return f.unauthorized()
	}
	core.Insert(req.Bag(), BasicAuthUser(user))
	return nil
}

func (f *BasicAuth) Back(req *core.Request, res *core.Response) {
	if res.Status == 401 {
		res.Header("WWW-Authenticate", f.challenge)
	}
}

// BasicAuthUser is the authenticated username, stored in the request's bag
// on success so downstream handlers can core.Get[BasicAuthUser](req.Bag()).
type BasicAuthUser string
