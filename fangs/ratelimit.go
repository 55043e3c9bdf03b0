package fangs

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/ohkami/core"
)

// KeyFunc extracts the rate-limit bucket key from a request. DefaultKeyFunc
// keys by the X-Forwarded-For header.
type KeyFunc func(req *core.Request) string

// DefaultKeyFunc keys by the X-Forwarded-For header if present, else by
// nothing distinguishing (an empty key — every request shares one bucket),
// since this core has no direct access to the TCP peer address at the fang
// layer; callers behind a proxy should rely on this default, and callers
// fronting their own listener should supply a KeyFunc backed by the
// request's bag (e.g. a fang earlier in the chain that records the remote
// addr there).
func DefaultKeyFunc(req *core.Request) string {
	if v, ok := req.Headers.Get("X-Forwarded-For"); ok {
		return v
	}
	return ""
}

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	// Limit is the number of requests allowed per Window.
	Limit int
	// Window is the bucket lifetime. Default: 1 minute.
	Window time.Duration
	// KeyFunc buckets requests. Default: DefaultKeyFunc.
	KeyFunc KeyFunc
	// Redis, if set, backs the limiter with a Lua INCR+EXPIRE script so
	// multiple server instances share one limit. Nil uses an in-process map.
	Redis *redis.Client
}

// DefaultRateLimitConfig returns a 60-requests-per-minute configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Limit: 60, Window: time.Minute, KeyFunc: DefaultKeyFunc}
}

// RateLimit enforces a fixed-window counter limit per key, rejecting with
// 429 + Retry-After once a window is exhausted.
type RateLimit struct {
	Base
	cfg RateLimitConfig

	mu      sync.Mutex
	buckets map[string]*localBucket
}

type localBucket struct {
	count     int
	expiresAt time.Time
}

// NewRateLimit builds a RateLimit fang from config.
func NewRateLimit(cfg RateLimitConfig) *RateLimit {
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultKeyFunc
	}
	return &RateLimit{cfg: cfg, buckets: make(map[string]*localBucket)}
}

func (f *RateLimit) Fore(req *core.Request) *core.Response {
	key := f.cfg.KeyFunc(req)

	var allowed bool
	var retryAfter time.Duration
	if f.cfg.Redis != nil {
		allowed, retryAfter = f.takeRedis(req, key)
	} else {
		allowed, retryAfter = f.takeLocal(key)
	}

	if allowed {
		return nil
	}
	return core.Status(429).
		Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1)).
		WithText("rate limit exceeded")
}

func (f *RateLimit) takeLocal(key string) (allowed bool, retryAfter time.Duration) {
	now := time.Now()
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.buckets[key]
	if !ok || now.After(b.expiresAt) {
		b = &localBucket{count: 0, expiresAt: now.Add(f.cfg.Window)}
		f.buckets[key] = b
	}
	if b.count >= f.cfg.Limit {
		return false, b.expiresAt.Sub(now)
	}
	b.count++
	return true, 0
}

// rateLimitScript atomically increments key and sets its expiry the first
// time it's created in a window, so concurrent instances share one count
// without a round-trip race between the INCR and the EXPIRE.
var rateLimitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (f *RateLimit) takeRedis(req *core.Request, key string) (allowed bool, retryAfter time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := rateLimitScript.Run(ctx, f.cfg.Redis, []string{"ratelimit:" + key}, int(f.cfg.Window.Seconds())).Int64()
	if err != nil {
		// Redis unreachable: fail open rather than block every request.
		return true, 0
	}
	if count > int64(f.cfg.Limit) {
		ttl, _ := f.cfg.Redis.TTL(ctx, "ratelimit:"+key).Result()
		return false, ttl
	}
	return true, 0
}
