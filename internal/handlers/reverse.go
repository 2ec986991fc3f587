package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/httpvalidate"
	"github.com/hove-io/munin/internal/search"
)

// Reverse implements `GET /api/v1/reverse`.
func (h *Handlers) Reverse(c *gin.Context) {
	lat, latPresent := queryFloat(c, "lat")
	lon, lonPresent := queryFloat(c, "lon")
	if verr := httpvalidate.LatLon(lat, lon, latPresent, lonPresent); verr != nil {
		writeError(c, verr)
		return
	}
	if !latPresent {
		writeError(c, httpvalidate.LatLon(0, 0, true, false))
		return
	}

	req := search.ReverseRequest{
		Coord:   geo.Point{Lat: lat, Lon: lon},
		Limit:   queryInt(c, "limit", 1),
		Timeout: queryDuration(c, "timeout"),
	}

	result, verr := h.Coordinator.Reverse(c.Request.Context(), req)
	if verr != nil {
		writeError(c, verr)
		return
	}
	c.JSON(http.StatusOK, result)
}
