package core

import "strings"

// knownHeader indexes the ~40 standard header names spec.md §3 calls out for
// direct-indexed access. Order is arbitrary but fixed; it is never exposed.
type knownHeader uint8

const (
	hContentType knownHeader = iota
	hContentLength
	hHost
	hAuthorization
	hCookie
	hSetCookie
	hAccept
	hAcceptEncoding
	hAcceptLanguage
	hConnection
	hContentEncoding
	hCacheControl
	hETag
	hIfNoneMatch
	hUserAgent
	hReferer
	hOrigin
	hXForwardedFor
	hXForwardedProto
	hXRequestID
	hLocation
	hWWWAuthenticate
	hAllow
	hVary
	hUpgrade
	hServer
	hDate
	hExpires
	hLastModified
	hRetryAfter
	hAccessControlAllowOrigin
	hAccessControlAllowMethods
	hAccessControlAllowHeaders
	hAccessControlAllowCredentials
	hAccessControlExposeHeaders
	hAccessControlMaxAge
	hSecWebSocketKey
	hSecWebSocketAccept
	hSecWebSocketVersion
	hSecWebSocketProtocol

	numKnownHeaders
)

var knownHeaderNames = [numKnownHeaders]string{
	hContentType:                   "Content-Type",
	hContentLength:                 "Content-Length",
	hHost:                          "Host",
	hAuthorization:                 "Authorization",
	hCookie:                        "Cookie",
	hSetCookie:                     "Set-Cookie",
	hAccept:                        "Accept",
	hAcceptEncoding:                "Accept-Encoding",
	hAcceptLanguage:                "Accept-Language",
	hConnection:                    "Connection",
	hContentEncoding:               "Content-Encoding",
	hCacheControl:                  "Cache-Control",
	hETag:                          "ETag",
	hIfNoneMatch:                   "If-None-Match",
	hUserAgent:                     "User-Agent",
	hReferer:                       "Referer",
	hOrigin:                        "Origin",
	hXForwardedFor:                 "X-Forwarded-For",
	hXForwardedProto:               "X-Forwarded-Proto",
	hXRequestID:                    "X-Request-Id",
	hLocation:                      "Location",
	hWWWAuthenticate:               "WWW-Authenticate",
	hAllow:                         "Allow",
	hVary:                          "Vary",
	hUpgrade:                       "Upgrade",
	hServer:                        "Server",
	hDate:                          "Date",
	hExpires:                       "Expires",
	hLastModified:                  "Last-Modified",
	hRetryAfter:                    "Retry-After",
	hAccessControlAllowOrigin:      "Access-Control-Allow-Origin",
	hAccessControlAllowMethods:     "Access-Control-Allow-Methods",
	hAccessControlAllowHeaders:     "Access-Control-Allow-Headers",
	hAccessControlAllowCredentials: "Access-Control-Allow-Credentials",
	hAccessControlExposeHeaders:    "Access-Control-Expose-Headers",
	hAccessControlMaxAge:           "Access-Control-Max-Age",
	hSecWebSocketKey:               "Sec-WebSocket-Key",
	hSecWebSocketAccept:            "Sec-WebSocket-Accept",
	hSecWebSocketVersion:           "Sec-WebSocket-Version",
	hSecWebSocketProtocol:          "Sec-WebSocket-Protocol",
}

// lookupKnown maps a lower-cased header name to its knownHeader slot, or
// false if it isn't one of the ~40 standard names.
var lookupKnown = func() map[string]knownHeader {
	m := make(map[string]knownHeader, numKnownHeaders)
	for i, name := range knownHeaderNames {
		m[strings.ToLower(name)] = knownHeader(i)
	}
	return m
}()

// Headers is the two-tier table spec.md §3 describes: a fixed array for
// known names and a map for everything else. Values are either borrowed
// slices of the connection buffer (request side) or owned strings (response
// side, or a header set programmatically on a request). The zero value is
// ready to use.
type Headers struct {
	known  [numKnownHeaders]string
	hasK   [numKnownHeaders]bool
	custom map[string]string
	// order records insertion order of keys so Response can serialize
	// headers in the order the handler set them (spec.md §4.2).
	order []string
}

// Get looks up a header by name, case-insensitively. The bool reports
// whether it was present at all (an empty value and an absent header are
// distinguishable).
func (h *Headers) Get(name string) (string, bool) {
	lower := strings.ToLower(name)
	if k, ok := lookupKnown[lower]; ok {
		if h.hasK[k] {
			return h.known[k], true
		}
		return "", false
	}
	if h.custom == nil {
		return "", false
	}
	v, ok := h.custom[lower]
	return v, ok
}

// Set replaces any existing value for name.
func (h *Headers) Set(name, value string) {
	lower := strings.ToLower(name)
	if k, ok := lookupKnown[lower]; ok {
		if !h.hasK[k] {
			h.order = append(h.order, knownHeaderNames[k])
		}
		h.known[k] = value
		h.hasK[k] = true
		return
	}
	if h.custom == nil {
		h.custom = make(map[string]string, 4)
	}
	if _, exists := h.custom[lower]; !exists {
		h.order = append(h.order, canonicalName(name))
	}
	h.custom[lower] = value
}

// Append joins value onto any existing value with a comma, or behaves like
// Set if name wasn't present (spec.md §4.2: "set().Name(append(value))").
func (h *Headers) Append(name, value string) {
	if existing, ok := h.Get(name); ok && existing != "" {
		h.Set(name, existing+", "+value)
		return
	}
	h.Set(name, value)
}

// Del removes a header if present.
func (h *Headers) Del(name string) {
	lower := strings.ToLower(name)
	if k, ok := lookupKnown[lower]; ok {
		h.hasK[k] = false
		h.known[k] = ""
		h.removeFromOrder(knownHeaderNames[k])
		return
	}
	if h.custom != nil {
		if _, ok := h.custom[lower]; ok {
			delete(h.custom, lower)
			h.removeFromOrder(canonicalName(name))
		}
	}
}

func (h *Headers) removeFromOrder(name string) {
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			return
		}
	}
}

// Each calls fn once per header in insertion order.
func (h *Headers) Each(fn func(name, value string)) {
	for _, name := range h.order {
		if v, ok := h.Get(name); ok {
			fn(name, v)
		}
	}
}

// reset clears the table for reuse across keep-alive requests without
// reallocating the backing map (the map is still cleared; Go has no cheaper
// primitive for that short of re-ranging and deleting, which clear() does).
func (h *Headers) reset() {
	h.hasK = [numKnownHeaders]bool{}
	for k := range h.known {
		h.known[k] = ""
	}
	for k := range h.custom {
		delete(h.custom, k)
	}
	h.order = h.order[:0]
}

func canonicalName(name string) string {
	b := []byte(name)
	upperNext := true
	for i, c := range b {
		switch {
		case c == '-':
			upperNext = true
		case upperNext:
			if c >= 'a' && c <= 'z' {
				b[i] = c - 32
			}
			upperNext = false
		default:
			if c >= 'A' && c <= 'Z' {
				b[i] = c + 32
			}
		}
	}
	return string(b)
}
