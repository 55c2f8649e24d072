// Package respond renders router-level failures (unknown routes, wrong methods, panics)
// as RFC 9457 problem details matching the ones huma produces for operations.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	msgNotFound      = "resource not found"
	msgInternalError = "internal server error"
)

// NotFoundHandler writes a 404 problem response.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler writes a 405 problem response with an Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer converts panics into 500 problem responses and logs the stack.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				applog.LogError(r.Context(), "panic recovered", err, zap.ByteString("stack", debug.Stack()))
				WriteProblem(w, r, http.StatusInternalServerError, msgInternalError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteProblem renders a huma.ErrorModel, as CBOR when the client prefers it.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	var (
		body []byte
		err  error
	)
	if wantsCBOR(r) {
		w.Header().Set("Content-Type", contentTypeProblemCBOR)
		body, err = cbor.Marshal(problem)
	} else {
		w.Header().Set("Content-Type", contentTypeProblemJSON)
		body, err = json.Marshal(problem)
	}
	if err != nil {
		applog.LogError(r.Context(), "failed to encode problem", err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogWarn(r.Context(), "failed to write problem", zap.Error(err))
	}
}

func wantsCBOR(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/cbor") && !strings.Contains(accept, "application/json")
}

// allowedMethods asks chi's routing tree which methods the current path accepts.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}

	var allowed []string
	for _, m := range []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}
