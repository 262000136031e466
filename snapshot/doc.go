// Package snapshot bundles a grid, its blocked cells and its invalid nodes
// into one immutable value and routes over it.
//
// A Snapshot is only ever produced whole: Rebuild counts the points and
// classifies, Reclassify reuses the counts of an existing grid with a new
// threshold. Neither touches the receiver, so a search running on an older
// Snapshot is never disturbed. Hosts that change configuration at runtime
// publish the new value through a Store.
//
// Unlike the algorithm packages, this layer logs: build timings, the size of
// the derived sets, and the outcome of every search.
package snapshot
