package fangs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourusername/ohkami/core"
)

var (
	ErrMissingToken      = errors.New("missing authorization token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// JWTConfig configures JWT, grounded on the teacher's middleware/jwt.
type JWTConfig struct {
	// Secret validates HMAC-signed tokens (HS256/HS384/HS512).
	Secret []byte
	// Algorithm is the expected signing algorithm. Default: HS256.
	Algorithm string
	// ErrorHandler builds the rejection response. Defaults to 401 +
	// WWW-Authenticate: Bearer with err.Error() as the body.
	ErrorHandler func(req *core.Request, err error) *core.Response
}

// DefaultJWTConfig returns a JWTConfig bound to secret with HS256.
func DefaultJWTConfig(secret []byte) JWTConfig {
	return JWTConfig{Secret: secret, Algorithm: "HS256"}
}

// JWT validates a bearer token from the Authorization header in Fore,
// storing the parsed jwt.MapClaims in the request's bag on success so
// downstream handlers can core.Get[jwt.MapClaims](req.Bag()) them.
type JWT struct {
	Base
	cfg JWTConfig
}

// NewJWT builds a JWT fang from config.
func NewJWT(cfg JWTConfig) *JWT {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	return &JWT{cfg: cfg}
}

func (f *JWT) reject(req *core.Request, err error) *core.Response {
	if f.cfg.ErrorHandler != nil {
		return f.cfg.ErrorHandler(req, err)
	}
	return core.Unauthorized().Header("WWW-Authenticate", "Bearer").WithText(err.Error())
}

func (f *JWT) Fore(req *core.Request) *core.Response {
	auth, ok := req.Headers.Get("Authorization")
	if !ok || auth == "" {
		return f.reject(req, ErrMissingToken)
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return f.reject(req, ErrInvalidAuthHeader)
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != f.cfg.Algorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return f.cfg.Secret, nil
	})
	if err != nil {
		return f.reject(req, err)
	}
	if !token.Valid {
		return f.reject(req, ErrInvalidToken)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return f.reject(req, ErrInvalidClaims)
	}

	core.Insert(req.Bag(), claims)
	return nil
}
