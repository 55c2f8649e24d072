package routes

import (
	"github.com/danielgtaylor/huma/v2"

	guardcache "github.com/janisto/guardhire/internal/guards"
	guardshandler "github.com/janisto/guardhire/internal/http/v1/guards"
	"github.com/janisto/guardhire/internal/http/v1/registration"
)

// Register wires all v1 HTTP routes into the provided API router.
func Register(api huma.API, prefix string, sub registration.Submitter, store *guardcache.Store, maxUploadBytes int64) {
	// Provide the guard cache to every operation.
	api.UseMiddleware(guardcache.Middleware(api, store))

	registration.Register(api, sub, maxUploadBytes)
	guardshandler.Register(api, prefix)
}
