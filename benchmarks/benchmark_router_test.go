// Package benchmarks times two things separately, the same way the
// teacher's own benchmarks/benchmark_router_test.go and
// benchmark_full_test.go split "just the router" from "the whole request
// path": this file never leaves the radix matcher, so it isolates routing
// cost from connection parsing, fang execution, and serialization.
//
// Run with: go test -bench=BenchmarkRouter -benchmem ./benchmarks
package benchmarks

import (
	"testing"

	"github.com/yourusername/ohkami/core"
)

func noopHandler(req *core.Request) *core.Response { return core.OK() }

func BenchmarkRouter_StaticRoute(b *testing.B) {
	o := core.New()
	o.GET("/ping", noopHandler)
	rx, err := o.Build()
	if err != nil {
		b.Fatal(err)
	}
	path := []byte("/ping")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rx.Match(core.GET, path)
	}
}

func BenchmarkRouter_DynamicRoute(b *testing.B) {
	o := core.New()
	o.GET("/users/:id", noopHandler)
	rx, err := o.Build()
	if err != nil {
		b.Fatal(err)
	}
	path := []byte("/users/123")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rx.Match(core.GET, path)
	}
}

func BenchmarkRouter_MultipleParams(b *testing.B) {
	o := core.New()
	o.GET("/users/:user_id/posts/:post_id", noopHandler)
	rx, err := o.Build()
	if err != nil {
		b.Fatal(err)
	}
	path := []byte("/users/123/posts/456")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rx.Match(core.GET, path)
	}
}

func BenchmarkRouter_ManyRoutes_StaticLookup(b *testing.B) {
	o := core.New()
	for i := 0; i < 100; i++ {
		o.GET("/route"+string(rune('a'+i%26))+string(rune('0'+i%10)), noopHandler)
	}
	o.GET("/target", noopHandler)
	rx, err := o.Build()
	if err != nil {
		b.Fatal(err)
	}
	path := []byte("/target")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rx.Match(core.GET, path)
	}
}
