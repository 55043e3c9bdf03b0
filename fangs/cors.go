package fangs

import (
	"strconv"
	"strings"

	"github.com/yourusername/ohkami/core"
)

// CORSConfig configures CORS, grounded on the teacher's CORSConfig.
type CORSConfig struct {
	// AllowOrigins lists allowed origins. ["*"] (the default) allows all.
	AllowOrigins []string
	// AllowMethods lists allowed methods for preflight responses.
	AllowMethods []string
	// AllowHeaders lists allowed request headers for preflight responses.
	// ["*"] (the default) allows all.
	AllowHeaders []string
	// ExposeHeaders lists headers exposed to the client beyond the CORS-safe set.
	ExposeHeaders []string
	// AllowCredentials sets Access-Control-Allow-Credentials. If true,
	// AllowOrigins must not be ["*"] — browsers reject that combination.
	AllowCredentials bool
	// MaxAge is the preflight cache lifetime in seconds. Default: 86400.
	MaxAge int
}

// DefaultCORSConfig returns CORS's default configuration.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{},
		MaxAge:        86400,
	}
}

// CORS implements Cross-Origin Resource Sharing. Fore short-circuits a
// preflight OPTIONS with 204 carrying the Allow-Methods, Allow-Headers and
// Max-Age headers; Back sets Access-Control-Allow-Origin (and, when
// configured, Allow-Credentials and Expose-Headers) on whatever response
// eventually comes back, so they survive even a
// short-circuit further up the chain — the onion property a header set
// only in Fore could not guarantee.
type CORS struct {
	cfg CORSConfig

	allowAllOrigins bool
	originSet       map[string]bool
	allowMethods    string
	allowHeaders    string
	exposeHeaders   string
	maxAge          string
}

// NewCORS builds a CORS fang from config. A zero CORSConfig is invalid;
// use DefaultCORSConfig() as a starting point.
func NewCORS(cfg CORSConfig) *CORS {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = DefaultCORSConfig().AllowMethods
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"*"}
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 86400
	}

	c := &CORS{
		cfg:           cfg,
		allowMethods:  strings.Join(cfg.AllowMethods, ", "),
		allowHeaders:  strings.Join(cfg.AllowHeaders, ", "),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ", "),
		maxAge:        strconv.Itoa(cfg.MaxAge),
	}
	c.originSet = make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			c.allowAllOrigins = true
			break
		}
		c.originSet[o] = true
	}
	return c
}

func (f *CORS) allowedOrigin(origin string) string {
	if f.allowAllOrigins {
		return "*"
	}
	if origin != "" && f.originSet[origin] {
		return origin
	}
	return ""
}

func (f *CORS) Fore(req *core.Request) *core.Response {
	origin, _ := req.Headers.Get("Origin")
	allowOrigin := f.allowedOrigin(origin)

	if req.Method != core.OPTIONS {
		return nil
	}
	res := core.NoContent()
	if allowOrigin != "" {
		res.Header("Access-Control-Allow-Methods", f.allowMethods)
		res.Header("Access-Control-Allow-Headers", f.allowHeaders)
		res.Header("Access-Control-Max-Age", f.maxAge)
	}
	return res
}

func (f *CORS) Back(req *core.Request, res *core.Response) {
	origin, _ := req.Headers.Get("Origin")
	allowOrigin := f.allowedOrigin(origin)
	if allowOrigin == "" {
		return
	}
	res.Header("Access-Control-Allow-Origin", allowOrigin)
	if f.cfg.AllowCredentials {
		res.Header("Access-Control-Allow-Credentials", "true")
	}
	if len(f.cfg.ExposeHeaders) > 0 {
		res.Header("Access-Control-Expose-Headers", f.exposeHeaders)
	}
}
