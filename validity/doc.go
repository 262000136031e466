// Package validity derives the set of lattice nodes that the router may not
// use from the blocked cells around them.
//
// A blocked cell touches a node iff the node is exactly one of its four
// corners. How many touching cells make a node unusable depends on where
// the node sits:
//
//	Interior (strictly inside both axes)   invalid iff touching >= 4
//	Edge     (on exactly one axis boundary) invalid iff touching >= 2
//	Corner   (on both axis boundaries)      invalid iff touching >= 1
//
// An Index is built in one pass from a grid and one of its BlockedSets and
// keeps references to both, so it can only be used with the state it was
// derived from. It is never patched: classify again and Build a new Index.
//
// Complexity: Build is O(N) for N = (Cols+1)×(Rows+1) nodes.
package validity
