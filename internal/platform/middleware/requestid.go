package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// isValidRequestID accepts only printable ASCII so client IDs cannot inject into logs.
func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		if c := id[i]; c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// RequestID reuses a valid incoming X-Request-Id or generates a UUIDv4. The ID is stored
// under chi's request ID key so RequestLogger and the marketplace client can pick it up.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(chimiddleware.RequestIDHeader)
			if !isValidRequestID(reqID) {
				reqID = uuid.NewString()
			}
			w.Header().Set(chimiddleware.RequestIDHeader, reqID)
			ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
