// Package density classifies grid cells as blocked or open from their event
// counts.
//
// The cutoff is the threshold-quantile of all cell counts, computed with
// linear interpolation between the two closest ranks (position
// threshold×(n−1) in the sorted counts). A cell is blocked iff its count is
// strictly greater than the cutoff.
//
// Thresholds outside [0,1] (and NaN) are not errors: NormalizeThreshold
// replaces them with DefaultThreshold.
//
// Complexity:
//
//   - Classify: O(C log C) for C cells (sort), O(C) memory.
//   - Regions:  O(C·8), O(C) memory.
package density
