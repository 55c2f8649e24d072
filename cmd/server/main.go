package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/guardhire/internal/guards"
	"github.com/janisto/guardhire/internal/http/health"
	"github.com/janisto/guardhire/internal/http/v1/routes"
	"github.com/janisto/guardhire/internal/platform/config"
	applog "github.com/janisto/guardhire/internal/platform/logging"
	appmiddleware "github.com/janisto/guardhire/internal/platform/middleware"
	"github.com/janisto/guardhire/internal/platform/respond"
	"github.com/janisto/guardhire/internal/service/marketplace"
	"github.com/janisto/guardhire/internal/session"
	"github.com/janisto/guardhire/internal/submit"
	"github.com/janisto/guardhire/internal/ui"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const apiPrefix = "/v1"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	applog.SetLevel(cfg.LogLevel)

	svc := newMarketplace(cfg)
	store := guards.NewStore(svc, guards.WithDiagnostics(ui.LogDiagnostics{Component: "guards"}))

	startCtx := applog.WithLogger(context.Background(), applog.Logger().With(zap.String("component", "guards")))
	store.Attach(startCtx)
	defer store.Detach()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, svc, store),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// Registrations wait on the marketplace.
		WriteTimeout:   cfg.APITimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.Bool("mock_marketplace", cfg.UseMockAPI),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		store.Detach()
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		applog.LogError(ctx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}

func newMarketplace(cfg *config.Config) marketplace.Service {
	if cfg.UseMockAPI {
		return marketplace.NewMockService()
	}
	opts := []marketplace.Option{
		marketplace.WithBaseURL(cfg.APIBaseURL),
		marketplace.WithUserAgent("guardhire/" + Version),
	}
	if cfg.APIToken != "" {
		opts = append(opts, marketplace.WithToken(cfg.APIToken))
	}
	return marketplace.NewClient(&http.Client{Timeout: cfg.APITimeout}, opts...)
}

// newRouter builds the full HTTP stack: base middleware, health check and the v1 API.
func newRouter(cfg *config.Config, svc marketplace.Service, store *guards.Store) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+"/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// Profile pictures set the ceiling for request bodies.
		respond.BodyLimit(cfg.MaxUploadBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	// Root API for unversioned operations; its OpenAPI document and docs are not served.
	rootCfg := huma.DefaultConfig("Guardhire", Version)
	rootCfg.OpenAPIPath = ""
	rootCfg.DocsPath = ""
	rootCfg.SchemasPath = ""
	rootCfg.CreateHooks = nil
	health.Register(humachi.New(router, rootCfg), store)

	// Collaborators are long-lived; per-request navigation is routed through the context.
	nav := ui.ContextNavigator{}
	registrar := session.NewRegistrar(svc, nav,
		session.WithDefaultRedirect(cfg.GuardRedirectPath),
	)
	orch := submit.New(svc, registrar, nav, submit.WithLoginPath(cfg.LoginPath))

	router.Route(apiPrefix, func(r chi.Router) {
		humaCfg := huma.DefaultConfig("Guardhire API", Version)
		humaCfg.DocsPath = "/api-docs"
		humaCfg.Servers = []*huma.Server{{URL: apiPrefix}}
		api := humachi.New(r, humaCfg)

		api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContentTypes)

		routes.Register(api, apiPrefix, orch, store, cfg.MaxUploadBytes)
	})

	return router
}

// addCBORContentTypes advertises CBOR alongside JSON for request and response bodies.
func addCBORContentTypes(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
