package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/response"
	"github.com/hove-io/munin/internal/search"
)

// GetFeature implements `GET /api/v1/features/:id`.
func (h *Handlers) GetFeature(c *gin.Context) {
	p, verr := h.Coordinator.GetFeature(c.Request.Context(), search.FeatureRequest{
		ID:         c.Param("id"),
		PtDatasets: c.QueryArray("pt_dataset[]"),
	})
	if verr != nil {
		writeError(c, verr)
		return
	}

	var coord *geo.Point
	lat, latPresent := queryFloat(c, "lat")
	lon, lonPresent := queryFloat(c, "lon")
	if latPresent && lonPresent {
		coord = &geo.Point{Lat: lat, Lon: lon}
	}

	c.JSON(http.StatusOK, response.BuildFeatureCollection([]*place.Place{p}, "", c.Query("lang"), coord))
}
