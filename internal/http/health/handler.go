package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/guardhire/internal/guards"
	applog "github.com/janisto/guardhire/internal/platform/logging"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status     string `json:"status"               doc:"Service health"          example:"healthy"`
	GuardCache string `json:"guardCache,omitempty" doc:"Guard cache lifecycle state" example:"ready" enum:"idle,loading,ready"`
}

// Output is the response wrapper for the health endpoint.
type Output struct {
	Body Response
}

// CacheStater reports the guard cache lifecycle.
type CacheStater interface {
	State() guards.State
}

// Register wires GET /health. The guard cache state is informational; a cache that is
// still loading does not make the service unhealthy. cache may be nil.
func Register(api huma.API, cache CacheStater) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*Output, error) {
		out := &Output{Body: Response{Status: "healthy"}}
		if cache != nil {
			out.Body.GuardCache = string(cache.State())
		}
		applog.LogDebug(ctx, "health check", zap.String("guard_cache", out.Body.GuardCache))
		return out, nil
	})
}
