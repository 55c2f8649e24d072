package logging

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setProjectIDForTest(t *testing.T, id string) {
	t.Helper()
	orig := cachedProjectID
	cachedProjectID = id
	projectIDOnce = sync.Once{}
	projectIDOnce.Do(func() {})
	t.Cleanup(func() {
		cachedProjectID = orig
		projectIDOnce = sync.Once{}
	})
}

func TestAccessLoggerUsesRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/guards", nil)
	req = req.WithContext(contextWithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if entries[0].Message != "request completed" {
		t.Fatalf("unexpected log message: %s", entries[0].Message)
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("expected status 418, got %v", fields["status"])
	}
	if fields["path"] != "/v1/guards" {
		t.Fatalf("expected path /v1/guards, got %v", fields["path"])
	}
}

func TestRequestLoggerUsesRequestIDWithoutProject(t *testing.T) {
	setProjectIDForTest(t, "")

	var traceID *string
	handler := chimiddleware.RequestID(RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID == nil || *traceID != "req-abc" {
		t.Fatalf("expected trace ID req-abc, got %v", traceID)
	}
}

func TestRequestLoggerWithTraceparent(t *testing.T) {
	setProjectIDForTest(t, "test-project")

	var traceID *string
	handler := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceparentHeader, "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	want := "projects/test-project/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if traceID == nil || *traceID != want {
		t.Fatalf("expected %s, got %v", want, traceID)
	}
}

func TestTraceFieldsRejectsMalformedHeader(t *testing.T) {
	fields, resource := traceFields("not-a-trace", "p")
	if fields != nil || resource != "" {
		t.Fatalf("expected no trace fields, got %v %q", fields, resource)
	}
	fields, _ = traceFields("00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-00", "p")
	if len(fields) != 3 || fields[2].Integer != 0 {
		t.Fatalf("expected unsampled trace fields, got %v", fields)
	}
}
