package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(seen) != 36 {
		t.Fatalf("expected generated UUID, got %q", seen)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != seen {
		t.Fatalf("expected response header %q, got %q", seen, got)
	}
}

func TestRequestIDValidation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		reuse bool
	}{
		{"valid", "req-123", true},
		{"newline", "req\n123", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
		{"non ascii", "req-ä", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = chimiddleware.GetReqID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(chimiddleware.RequestIDHeader, tt.id)
			h.ServeHTTP(httptest.NewRecorder(), req)

			if (seen == tt.id) != tt.reuse {
				t.Fatalf("reuse=%v but got %q for %q", tt.reuse, seen, tt.id)
			}
		})
	}
}

func TestCORSDefaultAllowsAnyOrigin(t *testing.T) {
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/guards", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h := CORS("https://app.example.com")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/guards", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for foreign origin, got %q", got)
	}

	req.Header.Set("Origin", "https://app.example.com")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	h := Vary()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary Accept, got %q", got)
	}
}

func TestSecuritySkipsDocs(t *testing.T) {
	h := Security("/api-docs")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/guards", nil))
	if resp.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("expected security headers on API path")
	}

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs", nil))
	if resp.Header().Get("X-Frame-Options") != "" {
		t.Fatal("expected docs path to be skipped")
	}
}

func TestSecuritySetsHardeningHeaders(t *testing.T) {
	h := Security()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/register/guard", nil))

	for _, kv := range securityHeaders {
		if got := resp.Header().Get(kv[0]); got != kv[1] {
			t.Errorf("%s: expected %q, got %q", kv[0], kv[1], got)
		}
	}
}
