package guards

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ErrNoProvider is the panic value of FromContext when no Store was provided.
var ErrNoProvider = errors.New("guards: store used outside of its provider")

type storeContextKey struct{}

// WithStore returns a copy of ctx that provides s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, s)
}

// Lookup returns the provided Store, if any.
func Lookup(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeContextKey{}).(*Store)
	return s, ok && s != nil
}

// FromContext returns the provided Store. Calling it outside a provider is a programming
// error and panics with ErrNoProvider.
func FromContext(ctx context.Context) *Store {
	s, ok := Lookup(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}

// Middleware provides store to every operation of api.
func Middleware(api huma.API, store *Store) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if store == nil {
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "guard list unavailable")
			return
		}
		next(huma.WithValue(ctx, storeContextKey{}, store))
	}
}
