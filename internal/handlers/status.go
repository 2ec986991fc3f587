package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status implements `GET /api/v1/status` with the shape `{bragi, mimir,
// backing-store: {version, health}}`: backing-store carries the store name
// as its version and the health-check result; no store url is reported.
// "bragi"/"mimir" are kept as literal response keys (the original
// project's own service names) purely for shape compatibility with
// existing API consumers; munin itself has no component by either name.
func (h *Handlers) Status(c *gin.Context) {
	health := "ok"
	if h.Store != nil {
		if err := h.Store.Health(c.Request.Context()); err != nil {
			health = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"bragi": gin.H{"version": h.Version},
		"mimir": gin.H{"version": h.Version},
		"backing-store": gin.H{
			"version": "typesense",
			"health":  health,
		},
	})
}
