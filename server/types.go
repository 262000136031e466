package server

import (
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/snapshot"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable code.
	Code string `json:"code,omitempty"`
}

// GridUpdate is the body of PUT /v1/grid. At least one field must be set.
// A new cell size recounts the points; a threshold alone only reclassifies.
type GridUpdate struct {
	CellSize  *float64 `json:"cell_size" binding:"omitempty,gt=0"`
	Threshold *float64 `json:"threshold"`
}

// GridResponse is the body of GET and PUT /v1/grid.
type GridResponse struct {
	snapshot.Summary
}

// BlockedResponse is the body of GET /v1/grid/blocked.
type BlockedResponse struct {
	Cells        []gridgraph.CellID `json:"cells"`
	InvalidNodes []gridgraph.Node   `json:"invalid_nodes"`
}

// RouteRequest is the body of POST /v1/route. Each endpoint is resolved
// per axis as a tick index or a raw coordinate.
type RouteRequest struct {
	Start *gridgraph.Point `json:"start" binding:"required"`
	End   *gridgraph.Point `json:"end" binding:"required"`
}

// RouteResponse is the body of a successful POST /v1/route. An empty Nodes
// with Found false is the normal "no path" answer.
type RouteResponse struct {
	Found     bool              `json:"found"`
	Outcome   string            `json:"outcome"`
	Cost      float64           `json:"cost"`
	Expanded  int               `json:"expanded"`
	ElapsedMS float64           `json:"elapsed_ms"`
	Start     gridgraph.Node    `json:"start"`
	End       gridgraph.Node    `json:"end"`
	Nodes     []gridgraph.Node  `json:"nodes"`
	Points    []gridgraph.Point `json:"points"`
}
