package gridgraph

import "fmt"

// MaxCells bounds Cols×Rows for a single grid.
const MaxCells = 1 << 24

// Axis selects the horizontal (AxisX) or vertical (AxisY) direction.
type Axis int

const (
	// AxisX is the horizontal axis (columns).
	AxisX Axis = iota
	// AxisY is the vertical axis (rows).
	AxisY
)

// Point is a raw coordinate pair in the units of the data source.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is the bounding rectangle of a data source.
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns MaxX-MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Dataset is what a point source hands to the grid: a bounding box and the
// event coordinates. Other per-event attributes are not carried.
type Dataset struct {
	BBox   BBox
	Points []Point
}

// Node is a grid-line intersection identified by its tick indices.
// X ranges over 0..Cols() and Y over 0..Rows(); equality is coordinate equality.
type Node struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Less orders nodes bottom-to-top, then left-to-right.
func (n Node) Less(o Node) bool {
	if n.Y != o.Y {
		return n.Y < o.Y
	}
	return n.X < o.X
}

// String renders the node as "(x,y)".
func (n Node) String() string {
	return fmt.Sprintf("(%d,%d)", n.X, n.Y)
}

// Position classifies a node relative to the grid extent.
type Position int

const (
	// Interior nodes lie strictly inside both axes.
	Interior Position = iota
	// Edge nodes lie on exactly one axis boundary.
	Edge
	// Corner nodes lie on both axis boundaries.
	Corner
)

// String returns the lower-case name of the position.
func (p Position) String() string {
	switch p {
	case Interior:
		return "interior"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// CellID addresses a cell by column and row.
type CellID struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Cell is one grid rectangle [Left,Right) × [Bottom,Top) and its event count.
type Cell struct {
	CellID
	Left, Bottom, Right, Top float64
	Count                    int
}

// Stats summarises the per-cell counts. They are used for reporting only.
type Stats struct {
	Cells   int     // number of cells
	Sum     int     // total events counted in cells
	Outside int     // points that fell outside every cell
	Mean    float64 // mean count per cell
	StdDev  float64 // sample standard deviation of counts (0 for fewer than 2 cells)
	Max     int     // largest count
}
