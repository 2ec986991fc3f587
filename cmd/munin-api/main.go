// Command munin-api serves munin's HTTP surface (spec.md §6): autocomplete,
// reverse-geocode, feature lookup and explain, backed by the Typesense store
// built at internal/store.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/cache"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/config"
	"github.com/hove-io/munin/internal/handlers"
	"github.com/hove-io/munin/internal/logging"
	"github.com/hove-io/munin/internal/metrics"
	"github.com/hove-io/munin/internal/search"
	"github.com/hove-io/munin/internal/store"
	"github.com/hove-io/munin/internal/tracing"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	logger := logging.New(cfg.Environment)

	st := store.New(store.Config{
		Host:              cfg.TypesenseHost,
		Port:              cfg.TypesensePort,
		Protocol:          cfg.TypesenseProtocol,
		APIKey:            cfg.TypesenseAPIKey,
		ConnectionTimeout: cfg.StoreTimeout,
	})

	cat := catalog.New(cfg.CatalogRoot)
	coordinator := search.New(cat, st, logger)
	coordinator.ShardTimeout = cfg.ShardTimeout
	coordinator.MaxRequestTimeout = cfg.MaxRequestTimeout

	var responseCache *cache.Cache
	if c, err := cache.New(cfg.RedisURL, cache.Config{TTL: cfg.CacheTTL}); err != nil {
		logger.WithError(err).Warn("api: response cache disabled, failed to connect to redis")
	} else {
		responseCache = c
		defer responseCache.Close()
	}

	var tracerShutdown tracing.Shutdown
	var tracingCfg tracing.Config
	if cfg.Environment == "production" {
		tracingCfg = tracing.ProductionConfig("munin-api")
	} else {
		tracingCfg = tracing.DefaultConfig("munin-api")
	}
	if shutdown, err := tracing.InitTracer(tracingCfg); err != nil {
		logger.WithError(err).Warn("api: failed to initialize tracing, continuing without it")
	} else {
		tracerShutdown = shutdown
		logger.Info("api: OpenTelemetry tracing initialized")
	}

	m := metrics.New()

	h := handlers.New(coordinator, st, responseCache, m, logger, os.Getenv("MUNIN_VERSION"))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(m.Middleware())
	router.Use(tracing.GinMiddleware("munin-api"))

	router.GET("/health", handlers.HealthCheck)
	h.Register(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Infof("api: munin-api starting on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api: failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("api: shutting down munin-api")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("api: server forced to shutdown")
	}

	if tracerShutdown != nil {
		tctx, tcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer tcancel()
		if err := tracerShutdown(tctx); err != nil {
			logger.WithError(err).Warn("api: error shutting down tracer provider")
		}
	}

	logger.Info("api: munin-api stopped")
}
