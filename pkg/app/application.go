package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	"sitterhub/pkg/contracts"
	apperrors "sitterhub/pkg/errors"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

const revocationCleanupInterval = time.Minute

type Application struct {
	cfg              *config.Config
	server           *http.Server
	tokens           *auth.TokenManager
	revocations      auth.RevocationStore
	authenticator    *middleware.Authenticator
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.RateLimiter
	healthHandler    http.Handler
	appHTTPHandler   http.Handler
}

// NewApplication builds the credential plumbing shared by every HTTP
// service. Mongo and Redis must already be set on cfg.Client.
func NewApplication(cfg *config.Config) *Application {
	a := &Application{
		cfg:    cfg,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	if cfg.Client.Redis != nil {
		a.revocations = auth.NewRedisRevocationStore(cfg.Client.Redis)
		a.idempotencyStore = middleware.NewRedisIdempotencyStore(cfg.Client.Redis, cfg.IdempotencyTTL, cfg.Log)
		cfg.Log.Info("Using Redis for token revocation and idempotency")
	} else {
		a.revocations = auth.NewInMemoryRevocationStore(revocationCleanupInterval)
		a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)
		cfg.Log.Info("Using in-memory stores for token revocation and idempotency")
	}

	a.authenticator = middleware.NewAuthenticator(a.tokens, a.revocations, cfg.Log)
	return a
}

func (a *Application) Tokens() *auth.TokenManager {
	return a.tokens
}

func (a *Application) Revocations() auth.RevocationStore {
	return a.revocations
}

func (a *Application) Authenticator() *middleware.Authenticator {
	return a.authenticator
}

func (a *Application) SetApp(handlers ...contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(handlers...)
	a.setAppServer()
}

// Handler returns the composed mux. Only valid after SetApp.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := NewHealthHandler(a.cfg.Client.Mongo, a.cfg.Client.Redis, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(handlers ...contracts.Handler) {
	appRouter := httprouter.New()
	appRouter.NotFound = http.HandlerFunc(a.notFound)
	appRouter.MethodNotAllowed = http.HandlerFunc(a.methodNotAllowed)
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.rateLimiter = middleware.NewRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.authenticator.CallerKey,
		a.cfg.Log,
	)

	// Middleware order: Recovery → Logging → Diagnostics → CORS → MaxSize → ContentType → RateLimit → Timeout → Idempotency → Router
	var appHTTPHandler http.Handler = appRouter
	appHTTPHandler = middleware.Idempotency(a.idempotencyStore, middleware.DefaultIdempotencyHeader)(appHTTPHandler)
	appHTTPHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHTTPHandler)
	appHTTPHandler = middleware.RateLimit(a.rateLimiter)(appHTTPHandler)
	appHTTPHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHTTPHandler)
	appHTTPHandler = middleware.CORS(a.cfg.CORSAllowedOrigins)(appHTTPHandler)
	appHTTPHandler = middleware.Diagnostics(!a.cfg.IsProduction())(appHTTPHandler)
	appHTTPHandler = middleware.RequestLogging(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.Recovery(a.cfg.Log)(appHTTPHandler)
	a.appHTTPHandler = appHTTPHandler
	a.cfg.Log.Info("Application endpoints configured with full security middleware stack")
}

func (a *Application) notFound(w http.ResponseWriter, r *http.Request) {
	if err := httputil.WriteError(w, r, apperrors.NotFound("Route")); err != nil {
		a.cfg.Log.Error("failed to write error response", "handler", "NotFound", "operation", "WriteError", "error", err)
	}
}

func (a *Application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	err := apperrors.New(apperrors.CodeBadRequest, "Method not allowed", http.StatusMethodNotAllowed)
	if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
		a.cfg.Log.Error("failed to write error response", "handler", "MethodNotAllowed", "operation", "WriteError", "error", writeErr)
	}
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHTTPHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.stopWorkers()
		a.cfg.GracefulShutdown()
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) stopWorkers() {
	a.cfg.Log.Info("Stopping background workers...")
	if a.idempotencyStore != nil {
		a.idempotencyStore.Stop()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.revocations != nil {
		a.revocations.Stop()
	}
	a.cfg.Log.Info("Background workers stopped")
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
