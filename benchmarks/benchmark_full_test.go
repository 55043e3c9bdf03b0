// This file is the full-request-path counterpart to
// benchmark_router_test.go, comparing ohkami against gin/echo/fiber the way
// the teacher's own benchmark_full_test.go compares bolt against the same
// three frameworks (github.com/gin-gonic/gin, github.com/labstack/echo/v4,
// github.com/gofiber/fiber/v2 — all three already in go.mod for exactly
// this purpose).
//
// One asymmetry is unavoidable and worth being explicit about: gin and echo
// expose http.Handler, benchmarked in-process via httptest.NewRecorder;
// fiber exposes app.Test, its own in-process fasthttp round trip. ohkami
// has neither — its connection loop only ever speaks to a real net.Conn
// (spec.md §4.6) — so its benchmark instead runs a real server on a
// loopback listener and drives it with net/http's Client. That's strictly
// more work per iteration (actual socket I/O, not an in-memory buffer), so
// a same-ballpark result in ohkami's favor is a stronger signal than it
// would be from a matching in-process harness; a worse one should be read
// with that handicap in mind.
//
// Run with: go test -bench=BenchmarkFull -benchmem ./benchmarks
package benchmarks

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/labstack/echo/v4"

	"github.com/yourusername/ohkami/core"
)

type simpleResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// startOhkami boots a real ohkami server on an ephemeral loopback port and
// returns a base URL plus a shutdown func, for benchmarks that need a
// genuine socket (see the package doc comment above).
func startOhkami(b *testing.B, o *core.Ohkami) (baseURL string, shutdown func()) {
	b.Helper()

	srv, err := core.NewServer(o, core.Default())
	if err != nil {
		b.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		b.Fatal(err)
	}
	go srv.Serve(ln)

	return "http://" + ln.Addr().String(), func() { _ = ln.Close() }
}

func BenchmarkFull_Ohkami_StaticRoute(b *testing.B) {
	o := core.New()
	o.GET("/ping", core.Bind0(func() core.JSONOf {
		return core.JSONOf{Value: simpleResponse{Message: "pong"}}
	}))
	baseURL, shutdown := startOhkami(b, o)
	defer shutdown()

	client := &http.Client{Timeout: 2 * time.Second}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Get(baseURL + "/ping")
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func BenchmarkFull_Gin_StaticRoute(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, simpleResponse{Message: "pong"})
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkFull_Echo_StaticRoute(b *testing.B) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(200, simpleResponse{Message: "pong"})
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		e.ServeHTTP(w, req)
	}
}

func BenchmarkFull_Fiber_StaticRoute(b *testing.B) {
	app := fiber.New()
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(simpleResponse{Message: "pong"})
	})

	req := httptest.NewRequest("GET", "/ping", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := app.Test(req, -1)
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func BenchmarkFull_Ohkami_DynamicRoute(b *testing.B) {
	o := core.New()
	o.GET("/users/:id", core.Bind1(func(id core.StringParam) core.JSONOf {
		return core.JSONOf{Value: userResponse{
			ID:    123,
			Name:  "User " + string(id),
			Email: "user" + string(id) + "@example.com",
		}}
	}))
	baseURL, shutdown := startOhkami(b, o)
	defer shutdown()

	client := &http.Client{Timeout: 2 * time.Second}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Get(baseURL + "/users/123")
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func BenchmarkFull_Gin_DynamicRoute(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/users/:id", func(c *gin.Context) {
		id := c.Param("id")
		c.JSON(200, userResponse{ID: 123, Name: "User " + id, Email: "user" + id + "@example.com"})
	})

	req := httptest.NewRequest("GET", "/users/123", nil)
	w := httptest.NewRecorder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		r.ServeHTTP(w, req)
	}
}

func BenchmarkFull_Echo_DynamicRoute(b *testing.B) {
	e := echo.New()
	e.GET("/users/:id", func(c echo.Context) error {
		id := c.Param("id")
		return c.JSON(200, userResponse{ID: 123, Name: "User " + id, Email: "user" + id + "@example.com"})
	})

	req := httptest.NewRequest("GET", "/users/123", nil)
	w := httptest.NewRecorder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		e.ServeHTTP(w, req)
	}
}

func BenchmarkFull_Fiber_DynamicRoute(b *testing.B) {
	app := fiber.New()
	app.Get("/users/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		return c.JSON(userResponse{ID: 123, Name: "User " + id, Email: "user" + id + "@example.com"})
	})

	req := httptest.NewRequest("GET", "/users/123", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := app.Test(req, -1)
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

