package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridroute/astar"
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/validity"
)

// ErrNilSnapshot is returned by operations on a nil *Snapshot.
var ErrNilSnapshot = errors.New("snapshot: nil snapshot")

// Config holds the two knobs that shape the derived state.
type Config struct {
	CellSize  float64 `json:"cell_size" yaml:"cell_size"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// Options configures Rebuild.
type Options struct {
	Logger logrus.FieldLogger
}

// Option represents a functional option for Rebuild.
type Option func(*Options)

// WithLogger sets the logger used by the snapshot and its searches.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions logs to the logrus standard logger.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

// Snapshot is an immutable grid state: the counts, the blocked cells at one
// threshold, and the invalid nodes derived from them.
//
// Reclassify and Route return ErrNilSnapshot on a nil receiver; the plain
// accessors require a non-nil one.
type Snapshot struct {
	cfg     Config
	data    gridgraph.Dataset
	grid    *gridgraph.Grid
	blocked *density.BlockedSet
	index   *validity.Index
	log     logrus.FieldLogger
}

// Rebuild counts ds on a grid of cfg.CellSize and classifies it at
// cfg.Threshold. An out-of-range threshold is replaced by the default and
// the stored Config reflects that.
func Rebuild(ds gridgraph.Dataset, cfg Config, opts ...Option) (*Snapshot, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	began := time.Now()
	g, err := gridgraph.New(ds.BBox, cfg.CellSize, ds.Points)
	if err != nil {
		return nil, fmt.Errorf("snapshot: build grid: %w", err)
	}
	st := g.Stats()
	o.Logger.WithFields(logrus.Fields{
		"cell_size": cfg.CellSize,
		"cols":      g.Cols(),
		"rows":      g.Rows(),
		"points":    len(ds.Points),
		"outside":   st.Outside,
		"mean":      st.Mean,
		"std_dev":   st.StdDev,
		"elapsed":   time.Since(began),
	}).Info("grid built")

	return derive(ds, g, cfg.Threshold, o.Logger), nil
}

// derive classifies g and builds the validity index.
func derive(ds gridgraph.Dataset, g *gridgraph.Grid, threshold float64, log logrus.FieldLogger) *Snapshot {
	began := time.Now()
	b := density.Classify(g, threshold)
	idx := validity.Build(g, b)
	log.WithFields(logrus.Fields{
		"threshold":     b.Threshold(),
		"cutoff":        b.Cutoff(),
		"blocked_cells": b.Len(),
		"invalid_nodes": idx.Len(),
		"elapsed":       time.Since(began),
	}).Info("grid classified")

	return &Snapshot{
		cfg:     Config{CellSize: g.CellSize(), Threshold: b.Threshold()},
		data:    ds,
		grid:    g,
		blocked: b,
		index:   idx,
		log:     log,
	}
}

// Reclassify returns a new Snapshot sharing s's grid, classified at
// threshold. s is left unchanged.
func (s *Snapshot) Reclassify(threshold float64) (*Snapshot, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}
	return derive(s.data, s.grid, threshold, s.log), nil
}

// Config returns the effective configuration.
func (s *Snapshot) Config() Config { return s.cfg }

// Dataset returns the points the grid was built from.
func (s *Snapshot) Dataset() gridgraph.Dataset { return s.data }

// Grid returns the counted grid.
func (s *Snapshot) Grid() *gridgraph.Grid { return s.grid }

// Blocked returns the blocked cells.
func (s *Snapshot) Blocked() *density.BlockedSet { return s.blocked }

// Index returns the invalid nodes.
func (s *Snapshot) Index() *validity.Index { return s.index }

// Route is the result of Snapshot.Route.
type Route struct {
	astar.Result
	Start  gridgraph.Node
	End    gridgraph.Node
	Points []gridgraph.Point // Path in raw coordinates
}

// Route resolves start and end (indices or coordinates, see
// gridgraph.Grid.Resolve) and searches between them. Only invalid
// arguments and cancellation are errors; "no path" is a Route with
// Found == false.
func (s *Snapshot) Route(ctx context.Context, start, end gridgraph.Point, opts ...astar.Option) (Route, error) {
	if s == nil {
		return Route{}, ErrNilSnapshot
	}
	rt := Route{
		Start: s.grid.Resolve(start.X, start.Y),
		End:   s.grid.Resolve(end.X, end.Y),
	}
	log := s.log.WithFields(logrus.Fields{
		"start": rt.Start.String(),
		"end":   rt.End.String(),
	})

	res, err := astar.Search(ctx, s.index, rt.Start, rt.End, opts...)
	if err != nil {
		log.WithError(err).Warn("search failed")
		return rt, fmt.Errorf("snapshot: route %v -> %v: %w", rt.Start, rt.End, err)
	}
	rt.Result = res
	rt.Points = make([]gridgraph.Point, len(res.Path))
	for i, n := range res.Path {
		rt.Points[i] = s.grid.Point(n)
	}

	entry := log.WithFields(logrus.Fields{
		"outcome":  res.Outcome.String(),
		"expanded": res.Expanded,
		"elapsed":  res.Elapsed,
	})
	if res.Found {
		entry.WithFields(logrus.Fields{"cost": res.Cost, "steps": len(res.Path) - 1}).Info("path found")
	} else {
		entry.Info("no path")
	}

	return rt, nil
}
