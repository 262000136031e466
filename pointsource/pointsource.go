// Package pointsource reads event locations from ESRI shapefiles.
package pointsource

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/katalvlaran/gridroute/gridgraph"
)

var (
	// ErrEmptySource indicates a shapefile without usable records.
	ErrEmptySource = errors.New("pointsource: no points in source")

	// ErrUnsupportedShape indicates a record type without a usable vertex.
	ErrUnsupportedShape = errors.New("pointsource: unsupported shape")
)

// path normalizes name to end in ".shp".
func path(name string) string {
	return strings.TrimSuffix(name, ".shp") + ".shp"
}

// LoadShapefile reads every record of the shapefile at name (with or
// without the ".shp" suffix) and returns its bounding box and one point per
// record. Multi-vertex shapes contribute their first vertex. When the file
// header carries a degenerate box the extent of the points is used instead.
func LoadShapefile(name string) (gridgraph.Dataset, error) {
	f := path(name)
	r, err := shp.Open(f)
	if err != nil {
		return gridgraph.Dataset{}, fmt.Errorf("pointsource: open %s: %w", f, err)
	}
	defer r.Close()

	var pts []gridgraph.Point
	for r.Next() {
		i, s := r.Shape()
		p, err := vertex(s)
		if err != nil {
			return gridgraph.Dataset{}, fmt.Errorf("%w: record %d of %s", err, i, f)
		}
		pts = append(pts, p)
	}
	if len(pts) == 0 {
		return gridgraph.Dataset{}, fmt.Errorf("%w: %s", ErrEmptySource, f)
	}

	b := r.BBox()
	box := gridgraph.BBox{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
	if !(box.Width() > 0 && box.Height() > 0) {
		box = Extent(pts)
	}

	return gridgraph.Dataset{BBox: box, Points: pts}, nil
}

// vertex returns the representative point of s.
func vertex(s shp.Shape) (gridgraph.Point, error) {
	switch v := s.(type) {
	case *shp.Point:
		return gridgraph.Point{X: v.X, Y: v.Y}, nil
	case *shp.PointZ:
		return gridgraph.Point{X: v.X, Y: v.Y}, nil
	case *shp.PointM:
		return gridgraph.Point{X: v.X, Y: v.Y}, nil
	case *shp.MultiPoint:
		if len(v.Points) > 0 {
			return gridgraph.Point{X: v.Points[0].X, Y: v.Points[0].Y}, nil
		}
	case *shp.PolyLine:
		if len(v.Points) > 0 {
			return gridgraph.Point{X: v.Points[0].X, Y: v.Points[0].Y}, nil
		}
	case *shp.Polygon:
		if len(v.Points) > 0 {
			return gridgraph.Point{X: v.Points[0].X, Y: v.Points[0].Y}, nil
		}
	}
	return gridgraph.Point{}, fmt.Errorf("%w: %T", ErrUnsupportedShape, s)
}

// Extent returns the smallest box holding pts. It is the zero box for no
// points.
func Extent(pts []gridgraph.Point) gridgraph.BBox {
	if len(pts) == 0 {
		return gridgraph.BBox{}
	}
	b := gridgraph.BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// idField is the single attribute column written for each record.
var idField = shp.NumberField("ID", 10)

// WriteShapefile writes pts as a POINT shapefile at name (with or without
// the ".shp" suffix), alongside its .shx and .dbf companions. Each record
// carries its zero-based position in an "ID" attribute.
func WriteShapefile(name string, pts []gridgraph.Point) error {
	f := path(name)
	w, err := shp.Create(f, shp.POINT)
	if err != nil {
		return fmt.Errorf("pointsource: create %s: %w", f, err)
	}
	if err = w.SetFields([]shp.Field{idField}); err != nil {
		w.Close()
		return fmt.Errorf("pointsource: fields %s: %w", f, err)
	}
	for i, p := range pts {
		row := w.Write(&shp.Point{X: p.X, Y: p.Y})
		if err = w.WriteAttribute(int(row), 0, i); err != nil {
			w.Close()
			return fmt.Errorf("pointsource: attribute %d: %w", i, err)
		}
	}
	w.Close()

	return placeDBF(strings.TrimSuffix(f, ".shp"))
}

// placeDBF moves the attribute table to base+".dbf". go-shp v0.1.1 creates
// it as base+"dbf" without the dot.
func placeDBF(base string) error {
	want := base + ".dbf"
	if _, err := os.Stat(want); err == nil {
		return nil
	}
	if err := os.Rename(base+"dbf", want); err != nil {
		return fmt.Errorf("pointsource: place %s: %w", want, err)
	}
	return nil
}
