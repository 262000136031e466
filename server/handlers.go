package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/gridroute/snapshot"
)

// HandleGetGrid handles GET /v1/grid.
func (s *Server) HandleGetGrid(c *gin.Context) {
	c.JSON(http.StatusOK, GridResponse{Summary: s.store.Load().Summary()})
}

// HandleBlocked handles GET /v1/grid/blocked.
func (s *Server) HandleBlocked(c *gin.Context) {
	snap := s.store.Load()
	c.JSON(http.StatusOK, BlockedResponse{
		Cells:        snap.Blocked().Cells(),
		InvalidNodes: snap.Index().Nodes(),
	})
}

// HandleUpdateGrid handles PUT /v1/grid.
//
// Response:
//
//	200 OK: GridResponse for the published snapshot
//	400 Bad Request: malformed body, nothing to change, or an unusable cell size
func (s *Server) HandleUpdateGrid(c *gin.Context) {
	log := s.logger(c, "HandleUpdateGrid")

	var req GridUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	if req.CellSize == nil && req.Threshold == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cell_size or threshold is required", Code: "INVALID_REQUEST"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Load()
	cfg := cur.Config()
	if req.Threshold != nil {
		cfg.Threshold = *req.Threshold
	}

	var next *snapshot.Snapshot
	kind := "reclassify"
	if req.CellSize != nil && *req.CellSize != cfg.CellSize {
		kind = "rebuild"
		cfg.CellSize = *req.CellSize
		var err error
		next, err = snapshot.Rebuild(cur.Dataset(), cfg, snapshot.WithLogger(s.log))
		if err != nil {
			log.WithError(err).Warn("rebuild rejected")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_GRID"})
			return
		}
	} else {
		var err error
		if next, err = cur.Reclassify(cfg.Threshold); err != nil {
			log.WithError(err).Error("reclassify failed")
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "NO_SNAPSHOT"})
			return
		}
	}

	s.store.Swap(next)
	s.metrics.rebuilds.WithLabelValues(kind).Inc()
	s.observe(next)
	log.WithField("kind", kind).Info("snapshot published")

	c.JSON(http.StatusOK, GridResponse{Summary: next.Summary()})
}

// HandleRoute handles POST /v1/route.
//
// Response:
//
//	200 OK: RouteResponse, including the "no path" case
//	400 Bad Request: malformed body or search options
//	503 Service Unavailable: the request was canceled mid-search
func (s *Server) HandleRoute(c *gin.Context) {
	log := s.logger(c, "HandleRoute")

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	snap := s.store.Load()
	rt, err := snap.Route(c.Request.Context(), *req.Start, *req.End, s.search...)
	if err != nil {
		s.metrics.searches.WithLabelValues("error").Inc()
		status, code := http.StatusBadRequest, "SEARCH_FAILED"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status, code = http.StatusServiceUnavailable, "CANCELED"
		}
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	s.metrics.searches.WithLabelValues(rt.Outcome.String()).Inc()
	s.metrics.searchTime.Observe(rt.Elapsed.Seconds())
	s.metrics.expanded.Observe(float64(rt.Expanded))

	c.JSON(http.StatusOK, RouteResponse{
		Found:     rt.Found,
		Outcome:   rt.Outcome.String(),
		Cost:      rt.Cost,
		Expanded:  rt.Expanded,
		ElapsedMS: float64(rt.Elapsed.Microseconds()) / 1000,
		Start:     rt.Start,
		End:       rt.End,
		Nodes:     nonNil(rt.Path),
		Points:    nonNil(rt.Points),
	})
}

// nonNil keeps empty results as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
