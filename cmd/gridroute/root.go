package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridroute/config"
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/pointsource"
	"github.com/katalvlaran/gridroute/snapshot"
)

// app is the state shared by every subcommand.
type app struct {
	cfgPath string
	over    config.Config // flag values; applied only when the flag is set

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gridroute",
		Short: "Route around dense areas of an event map.",
		Long: `gridroute reads event locations from a shapefile, counts them on a
square grid, blocks the cells above a count quantile and finds least-cost
routes between grid nodes that avoid the blocked cells.

Configuration comes from built-in defaults, then the YAML file given with
--config, then command-line flags.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}

	d := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.over.Source.Shapefile, "shapefile", "", "event shapefile (.shp suffix optional)")
	pf.Float64Var(&a.over.Grid.CellSize, "cell-size", d.Grid.CellSize, "grid cell size in source units")
	pf.Float64Var(&a.over.Grid.Threshold, "threshold", d.Grid.Threshold, "count quantile in [0,1] above which cells are blocked")
	pf.DurationVar(&a.over.Search.TimeLimit, "time-limit", d.Search.TimeLimit, "wall-clock budget per search")
	pf.StringVar(&a.over.Search.Heuristic, "heuristic", d.Search.Heuristic, "search heuristic: cell or raw")
	pf.StringVar(&a.over.Log.Level, "log-level", d.Log.Level, "log level")
	pf.StringVar(&a.over.Log.Format, "log-format", d.Log.Format, "log format: text or json")

	root.AddCommand(
		newStatsCmd(a),
		newRouteCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// configure merges defaults, the config file and the flags that were set,
// validates the result and builds the logger.
func (a *app) configure(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.cfgPath != "" {
		var err error
		if cfg, err = config.Load(a.cfgPath); err != nil {
			return err
		}
	}

	set := cmd.Flags().Changed
	if set("shapefile") {
		cfg.Source.Shapefile = a.over.Source.Shapefile
	}
	if set("cell-size") {
		cfg.Grid.CellSize = a.over.Grid.CellSize
	}
	if set("threshold") {
		cfg.Grid.Threshold = a.over.Grid.Threshold
	}
	if set("time-limit") {
		cfg.Search.TimeLimit = a.over.Search.TimeLimit
	}
	if set("heuristic") {
		cfg.Search.Heuristic = a.over.Search.Heuristic
	}
	if set("log-level") {
		cfg.Log.Level = a.over.Log.Level
	}
	if set("log-format") {
		cfg.Log.Format = a.over.Log.Format
	}
	if cmd.Flags().Lookup("addr") != nil && set("addr") {
		addr, _ := cmd.Flags().GetString("addr")
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())

	a.cfg, a.log = cfg, log
	return nil
}

// snapshot loads the shapefile and builds the grid state.
func (a *app) snapshot() (*snapshot.Snapshot, error) {
	began := time.Now()
	ds, err := pointsource.LoadShapefile(a.cfg.Source.Shapefile)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"file":    a.cfg.Source.Shapefile,
		"points":  len(ds.Points),
		"elapsed": time.Since(began),
	}).Info("points loaded")

	return snapshot.Rebuild(ds, a.cfg.Snapshot(), snapshot.WithLogger(a.log))
}

// parsePair parses "x,y" into a point. Either value may be a tick index
// or a raw coordinate.
func parsePair(s string) (gridgraph.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return gridgraph.Point{}, fmt.Errorf("want x,y: %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return gridgraph.Point{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return gridgraph.Point{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return gridgraph.Point{X: x, Y: y}, nil
}
