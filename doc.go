// Package gridroute routes across an event map while steering clear of its
// densest areas.
//
// What is gridroute?
//
//	A small stack that turns raw event locations into a routing problem:
//		• Grid: square cells over the bounding box, events counted per cell
//		• Density: cells above a count quantile are blocked
//		• Validity: lattice nodes hemmed in by blocked cells are unusable
//		• A*: least-cost path over the lattice with geometry-aware moves
//		• Snapshots: immutable grid states, rebuilt and swapped whole
//
// Under the hood, everything is organized in subpackages:
//
//	gridgraph/     Grid, ticks, cells, nodes and coordinate resolution
//	density/       quantile cutoff, BlockedSet, hotspot regions
//	validity/      invalid-node Index derived from a BlockedSet
//	astar/         the router: moves, costs, heuristic, time budget
//	snapshot/      Rebuild / Reclassify / Route and the atomic Store
//	pointsource/   shapefile input
//	render/        scatter, heat and block graphs
//	config/        YAML configuration
//	server/        HTTP host with Prometheus metrics
//	cmd/gridroute  command-line interface
//
// Quick start:
//
//	ds, _ := pointsource.LoadShapefile("crime_dt")
//	snap, _ := snapshot.Rebuild(ds, snapshot.Config{CellSize: 0.002, Threshold: 0.5})
//	rt, _ := snap.Route(ctx, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: -1, Y: -1})
//	fmt.Println(rt.Outcome, rt.Cost, rt.Path)
package gridroute
