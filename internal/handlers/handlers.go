// Package handlers implements munin's HTTP surface (spec.md §6): thin gin
// handlers translating query params into internal/search requests and
// internal/apierr failures into the JSON error envelope, the same
// struct-holds-its-dependencies shape search-service's internal/handlers
// uses (NewSearchHandler(client) wrapping a *clients.TypesenseClient).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/cache"
	"github.com/hove-io/munin/internal/metrics"
	"github.com/hove-io/munin/internal/search"
	"github.com/sirupsen/logrus"
)

// StoreHealth reports backing-store reachability for the /status route;
// satisfied directly by *internal/store.Store.
type StoreHealth interface {
	Health(ctx context.Context) error
}

// Handlers wires internal/search, an optional response cache, and metrics
// into gin.HandlerFuncs.
type Handlers struct {
	Coordinator   *search.Coordinator
	Store         StoreHealth
	Cache         *cache.Cache // optional; nil disables response caching
	Metrics       *metrics.Metrics
	counterBridge *metrics.CounterBridge
	Logger        *logrus.Logger
	Version       string
}

// New builds a Handlers. logger may be nil (defaults to logrus.StandardLogger()).
func New(coordinator *search.Coordinator, store StoreHealth, c *cache.Cache, m *metrics.Metrics, logger *logrus.Logger, version string) *Handlers {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	var bridge *metrics.CounterBridge
	if m != nil {
		bridge = metrics.NewCounterBridge(m)
	}
	return &Handlers{Coordinator: coordinator, Store: store, Cache: c, Metrics: m, counterBridge: bridge, Logger: logger, Version: version}
}

// Register mounts every route spec.md §6 names under /api/v1.
func (h *Handlers) Register(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/autocomplete", h.Autocomplete)
		v1.POST("/autocomplete", h.AutocompleteWithShape)
		v1.GET("/autocomplete-explain", h.AutocompleteExplain)
		v1.GET("/reverse", h.Reverse)
		v1.GET("/features/:id", h.GetFeature)
		v1.GET("/status", h.Status)
	}
	if h.Metrics != nil {
		router.GET("/api/v1/metrics", metrics.Handler())
	}
}

// writeError renders an *apierr.Error as spec.md §7's {short, long} body.
func writeError(c *gin.Context, err *apierr.Error) {
	if err.Kind == apierr.KindInternal {
		logrus.StandardLogger().WithError(err.Err).Error("internal error")
	}
	c.JSON(err.HTTPStatus(), err.ResponseBody())
}

// HealthCheck is a liveness probe, unconditionally 200 the way the
// teacher's handlers.HealthCheck is.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
