package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware for browser clients of the registration forms.
// With no origins given every origin is allowed, which suits local development.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
		},
		ExposedHeaders: []string{"Location", "X-Request-Id"},
		MaxAge:         300,
	})
}

// Vary adds Accept to the Vary header since responses are negotiated between JSON and CBOR.
// CORS adds Origin on its own.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
