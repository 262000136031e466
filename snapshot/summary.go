package snapshot

import (
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
)

// Summary is a flat report of a Snapshot for logs, JSON and the CLI.
type Summary struct {
	BBox         gridgraph.BBox `json:"bbox"`
	CellSize     float64        `json:"cell_size"`
	Threshold    float64        `json:"threshold"`
	Cols         int            `json:"cols"`
	Rows         int            `json:"rows"`
	Points       int            `json:"points"`
	Outside      int            `json:"outside"`
	Sum          int            `json:"sum"`
	Mean         float64        `json:"mean"`
	StdDev       float64        `json:"std_dev"`
	Max          int            `json:"max"`
	Cutoff       float64        `json:"cutoff"`
	BlockedCells int            `json:"blocked_cells"`
	Regions      int            `json:"regions"`
	InvalidNodes int            `json:"invalid_nodes"`
}

// Summary reports the grid statistics and the size of the derived sets.
func (s *Snapshot) Summary() Summary {
	st := s.grid.Stats()
	return Summary{
		BBox:         s.grid.BBox(),
		CellSize:     s.cfg.CellSize,
		Threshold:    s.cfg.Threshold,
		Cols:         s.grid.Cols(),
		Rows:         s.grid.Rows(),
		Points:       len(s.data.Points),
		Outside:      st.Outside,
		Sum:          st.Sum,
		Mean:         st.Mean,
		StdDev:       st.StdDev,
		Max:          st.Max,
		Cutoff:       s.blocked.Cutoff(),
		BlockedCells: s.blocked.Len(),
		Regions:      len(density.Regions(s.blocked)),
		InvalidNodes: s.index.Len(),
	}
}
