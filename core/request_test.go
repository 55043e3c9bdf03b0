package core

import (
	"net"
	"testing"

	"github.com/yourusername/ohkami/internal/buffer"
)

func readHeadFromBytes(t *testing.T, raw []byte) (*buffer.Conn, *buffer.Head) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() { server.Close(); client.Close() })

	go func() { client.Write(raw) }()

	conn := buffer.New(server, buffer.DefaultCapacity, 1<<20)
	head, err := conn.ReadHead()
	if err != nil {
		t.Fatalf("ReadHead() error: %v", err)
	}
	return conn, head
}

func TestNewRequestExposesMethodPathQuery(t *testing.T) {
	conn, head := readHeadFromBytes(t, []byte("GET /users/42?active=true HTTP/1.1\r\nHost: example.com\r\n\r\n"))
	r := newRequest(conn, head)

	if r.Method != GET {
		t.Fatalf("Method = %v, want GET", r.Method)
	}
	if r.Path() != "/users/42" {
		t.Fatalf("Path() = %q", r.Path())
	}
	if r.RawQuery() != "active=true" {
		t.Fatalf("RawQuery() = %q", r.RawQuery())
	}
	if host, ok := r.Headers.Get("Host"); !ok || host != "example.com" {
		t.Fatalf("Host header = %q, %v", host, ok)
	}
}

func TestRequestDecodedPath(t *testing.T) {
	conn, head := readHeadFromBytes(t, []byte("GET /a%20b HTTP/1.1\r\n\r\n"))
	r := newRequest(conn, head)

	if r.Path() != "/a%20b" {
		t.Fatalf("Path() = %q, want raw encoded form", r.Path())
	}
	if r.DecodedPath() != "/a b" {
		t.Fatalf("DecodedPath() = %q, want \"/a b\"", r.DecodedPath())
	}
}

func TestRequestParamOrdering(t *testing.T) {
	conn, head := readHeadFromBytes(t, []byte("GET /users/42/posts/7 HTTP/1.1\r\n\r\n"))
	r := newRequest(conn, head)

	r.setParam("id", []byte("42"))
	r.setParam("postId", []byte("7"))

	if v, ok := r.Param(0); !ok || v != "42" {
		t.Fatalf("Param(0) = %q, %v", v, ok)
	}
	if v, ok := r.Param(1); !ok || v != "7" {
		t.Fatalf("Param(1) = %q, %v", v, ok)
	}
	if _, ok := r.Param(2); ok {
		t.Fatal("expected Param(2) to report false")
	}
	if v, ok := r.ParamByName("postId"); !ok || v != "7" {
		t.Fatalf("ParamByName(postId) = %q, %v", v, ok)
	}
}

func TestRequestResetClearsParamsAndHeaders(t *testing.T) {
	conn, head := readHeadFromBytes(t, []byte("GET /users/42 HTTP/1.1\r\nHost: example.com\r\n\r\n"))
	r := newRequest(conn, head)
	r.setParam("id", []byte("42"))

	r.reset()

	if _, ok := r.Param(0); ok {
		t.Fatal("expected params cleared after reset")
	}
	if _, ok := r.Headers.Get("Host"); ok {
		t.Fatal("expected headers cleared after reset")
	}
}
