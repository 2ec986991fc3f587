package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/cache"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/httpvalidate"
	"github.com/hove-io/munin/internal/search"
)

// parseRequest builds a search.Request from the shared query params every
// autocomplete variant accepts (spec.md §6).
func parseRequest(c *gin.Context) (search.Request, *apierr.Error) {
	q := c.Query("q")
	if err := httpvalidate.NonEmptyQuery(q); err != nil {
		return search.Request{}, err
	}

	lat, latPresent := queryFloat(c, "lat")
	lon, lonPresent := queryFloat(c, "lon")
	if err := httpvalidate.LatLon(lat, lon, latPresent, lonPresent); err != nil {
		return search.Request{}, err
	}

	rawTypes := c.QueryArray("type[]")
	types, err := httpvalidate.RequestTypes(rawTypes)
	if err != nil {
		return search.Request{}, err
	}
	zoneTypes := c.QueryArray("zone_type[]")
	if err := httpvalidate.ZoneTypeRequirement(types, zoneTypes); err != nil {
		return search.Request{}, err
	}

	shapeScope, err := httpvalidate.RequestTypes(c.QueryArray("shape_scope[]"))
	if err != nil {
		return search.Request{}, err
	}

	req := search.Request{
		Query:       q,
		Lang:        c.Query("lang"),
		Types:       types,
		ZoneTypes:   zoneTypes,
		PtDatasets:  c.QueryArray("pt_dataset[]"),
		PoiDatasets: c.QueryArray("poi_dataset[]"),
		AllData:     c.Query("all_data") == "true",
		ShapeScope:  shapeScope,
		Timeout:     queryDuration(c, "timeout"),
		Limit:       queryInt(c, "limit", 10),
		Offset:      queryInt(c, "offset", 0),
	}
	if latPresent {
		req.Coord = &geo.Point{Lat: lat, Lon: lon}
	}
	return req, nil
}

// Autocomplete implements `GET /api/v1/autocomplete`.
func (h *Handlers) Autocomplete(c *gin.Context) {
	req, verr := parseRequest(c)
	if verr != nil {
		writeError(c, verr)
		return
	}
	h.runAutocomplete(c, req)
}

// AutocompleteWithShape implements `POST /api/v1/autocomplete`: same
// query params, plus a body-supplied polygon that scopes the search. The
// validated GeoJSON is converted to a geo.Polygon and attached to the
// request; search.Coordinator decides per-index whether shape_scope[]
// makes it apply.
func (h *Handlers) AutocompleteWithShape(c *gin.Context) {
	req, verr := parseRequest(c)
	if verr != nil {
		writeError(c, verr)
		return
	}

	if verr := httpvalidate.ShapeBodySize(c.Request.ContentLength); verr != nil {
		writeError(c, verr)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, httpvalidate.MaxShapeBodyBytes))
	if err != nil {
		writeError(c, apierr.Validation("request body exceeds %d bytes", httpvalidate.MaxShapeBodyBytes))
		return
	}

	var payload struct {
		Shape httpvalidate.GeoJSONPolygon `json:"shape"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(c, apierr.Validation("invalid JSON body: %v", err))
			return
		}
		if verr := httpvalidate.ValidateShapeFeature(payload.Shape); verr != nil {
			writeError(c, verr)
			return
		}
		poly := payload.Shape.ToPolygon()
		req.ShapePolygon = &poly
	}

	h.runAutocomplete(c, req)
}

func (h *Handlers) runAutocomplete(c *gin.Context, req search.Request) {
	ctx := c.Request.Context()

	var cacheKey string
	if h.Cache != nil {
		cacheKey = cache.GenerateKey("autocomplete", "", req)
		var cached interface{}
		hit, err := h.Cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			if h.Metrics != nil {
				h.Metrics.CacheHits.Inc()
			}
			c.JSON(http.StatusOK, cached)
			return
		}
		if h.Metrics != nil {
			h.Metrics.CacheMisses.Inc()
		}
	}

	result, verr := h.Coordinator.Search(ctx, req)
	if verr != nil {
		writeError(c, verr)
		return
	}

	if h.counterBridge != nil {
		h.counterBridge.Observe(h.Coordinator.Counters)
	}
	if h.Cache != nil {
		_ = h.Cache.Set(ctx, cacheKey, result)
	}

	c.JSON(http.StatusOK, result)
}

// AutocompleteExplain implements `GET /api/v1/autocomplete-explain`.
func (h *Handlers) AutocompleteExplain(c *gin.Context) {
	req, verr := parseRequest(c)
	if verr != nil {
		writeError(c, verr)
		return
	}

	docID := c.Query("doc_id")
	docType := c.Query("doc_type")
	result, verr := h.Coordinator.Explain(c.Request.Context(), search.ExplainRequest{
		DocID:   docID,
		DocType: catalog.RequestType(docType),
		Dataset: c.Query("dataset"),
		Query:   req,
	})
	if verr != nil {
		writeError(c, verr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryFloat(c *gin.Context, key string) (float64, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// queryDuration parses the `timeout` query param (spec.md §5); an absent
// or malformed value returns 0, meaning "use the configured default".
func queryDuration(c *gin.Context, key string) time.Duration {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
