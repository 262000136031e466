package gridgraph

import "errors"

var (
	// ErrBadCellSize indicates a cell size that is not a finite positive number.
	ErrBadCellSize = errors.New("gridgraph: cell size must be a finite number > 0")
	// ErrDegenerateBBox indicates a bounding box with no area.
	ErrDegenerateBBox = errors.New("gridgraph: bounding box must have positive width and height")
	// ErrGridTooLarge indicates the cell size is too small for the bounding box.
	ErrGridTooLarge = errors.New("gridgraph: too many cells for bounding box and cell size")
)
