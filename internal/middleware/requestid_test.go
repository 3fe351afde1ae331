package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(seen) != requestIDLength {
		t.Fatalf("expected generated id of length %d, got %q", requestIDLength, seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected response header to echo the request id")
	}
}

func TestRequestID_HonoursIncoming(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "edge-1234")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "edge-1234" || rr.Header().Get(RequestIDHeader) != "edge-1234" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}
}
