package logging

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// RequestLogger stores a request-scoped logger and correlation ID in the request context.
// With a project ID configured, a valid traceparent header adds Cloud Trace fields;
// otherwise the chi request ID is used for correlation.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(traceparentHeader)
			projectID := resolveProjectID()
			reqID := chimiddleware.GetReqID(r.Context())

			fields, traceID := traceFields(header, projectID)
			if traceID == "" {
				traceID = reqID
			}
			if reqID != "" {
				fields = append(fields, zap.String("requestId", reqID))
			}
			logger := Logger()
			if len(fields) > 0 {
				logger = logger.With(fields...)
			}

			ctx := contextWithTraceID(r.Context(), traceID)
			ctx = contextWithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLogger writes one structured summary per request using the request-scoped logger.
func AccessLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			LoggerFromContext(r.Context()).Info(
				"request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// traceFields returns Cloud Logging trace fields and the trace resource name.
func traceFields(header, projectID string) ([]zap.Field, string) {
	if projectID == "" {
		return nil, ""
	}
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return nil, ""
	}
	resource := fmt.Sprintf("projects/%s/traces/%s", projectID, m[2])
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", resource),
		zap.String("logging.googleapis.com/spanId", m[3]),
		zap.Bool("logging.googleapis.com/trace_sampled", m[4] == "01"),
	}, resource
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"} {
			if v := os.Getenv(key); v != "" {
				cachedProjectID = v
				return
			}
		}
	})
	return cachedProjectID
}
