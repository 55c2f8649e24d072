package respond

import (
	"fmt"
	"net/http"
	"strings"
)

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes with a 413
// problem. Multipart bodies of unknown length are capped with http.MaxBytesReader, since
// huma parses them without its own limit; other bodies are left to the operation's
// MaxBodyBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteProblem(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body is too large limit=%d bytes", maxBytes))
				return
			}
			if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/") {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
