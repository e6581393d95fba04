package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"catalogweb/internal/catalog"
	"catalogweb/internal/httpx"
	"catalogweb/internal/loader"
	"catalogweb/internal/platform/remoteindex"
	"catalogweb/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	loadEnvFiles()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := remoteindex.NewClient(cfg.BaseURL.String(), cfg.IndexPath, cfg.UserAgent, cfg.FetchTimeout)
	if err != nil {
		logger.Fatal("cannot build index client", zap.Error(err))
	}

	store := catalog.NewStore()
	catalogLoader := loader.NewService(client, store, logger.Named("loader"), loader.Config{})
	catalogLoader.Start(ctx)

	svc := catalog.NewService(store, cfg.Locale, cfg.BaseURL)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateRPS, cfg.RateBurst)
	defer rateLimiter.Stop()

	router, err := newRouter(svc, store, logger)
	if err != nil {
		logger.Fatal("cannot build router", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withMiddleware(router, cfg, logger, rateLimiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("index_url", client.IndexURL()),
			zap.String("locale", cfg.Locale.String()),
		)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// newRouter wires the page, the JSON API and the probes.
func newRouter(svc *catalog.Service, store *catalog.Store, logger *zap.Logger) (*http.ServeMux, error) {
	pages, err := web.NewHandler(svc, logger.Named("web"))
	if err != nil {
		return nil, err
	}
	api := catalog.NewHTTPHandler(svc)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !store.IsLoaded() {
			http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/catalog/search", api.Search)
	router.HandleFunc("GET /v1/catalog/entries/{id}", api.GetByID)
	router.HandleFunc("GET /v1/catalog/status", api.Status)

	pages.Register(router)
	return router, nil
}

// withMiddleware wraps the router in the request pipeline, outermost first.
func withMiddleware(router http.Handler, cfg config, logger *zap.Logger, rateLimiter *httpx.RateLimitMiddleware) http.Handler {
	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger.Named("http")),
		httpx.RecoveryMiddleware(logger.Named("http")),
		httpx.SecurityHeadersMiddleware(imageSources(cfg)...),
		rateLimiter.Middleware,
	)
}
