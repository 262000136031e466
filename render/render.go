// Package render draws grids, blocked cells and routes with gonum/plot.
// The output format follows the file extension (.png, .svg, .pdf, ...).
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
)

// ErrNoPoints is returned when there is nothing to draw.
var ErrNoPoints = errors.New("render: no points")

var (
	blockColor = color.RGBA{R: 230, G: 190, B: 40, A: 255}
	frameColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	pathColor  = color.RGBA{R: 30, G: 80, B: 200, A: 255}
	endColor   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	dotColor   = color.RGBA{R: 60, G: 60, B: 60, A: 160}
)

// Options configures the size and title of a graph.
type Options struct {
	Width, Height vg.Length
	Title         string
}

// Option represents a functional option for the graph functions.
type Option func(*Options)

// WithSize sets the canvas size.
func WithSize(w, h vg.Length) Option {
	return func(o *Options) {
		o.Width, o.Height = w, h
	}
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// DefaultOptions returns an 8×8 inch canvas with no title.
func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 8 * vg.Inch}
}

func newPlot(title string, o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	if o.Title != "" {
		p.Title.Text = o.Title
	}
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	return p
}

func save(p *plot.Plot, o Options, file string) error {
	if err := p.Save(o.Width, o.Height, file); err != nil {
		return fmt.Errorf("render: save %s: %w", file, err)
	}
	return nil
}

func xys(pts []gridgraph.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

// frame returns the closed outline of g's full extent, sentinel ticks
// included.
func frame(g *gridgraph.Grid) plotter.XYs {
	x0, x1 := g.Tick(gridgraph.AxisX, 0), g.Tick(gridgraph.AxisX, g.Cols())
	y0, y1 := g.Tick(gridgraph.AxisY, 0), g.Tick(gridgraph.AxisY, g.Rows())
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}
}

// BlockGraph draws the blocked cells of b over g's extent and, when path is
// not empty, the route through it with its endpoints marked.
func BlockGraph(g *gridgraph.Grid, b *density.BlockedSet, path []gridgraph.Point, file string, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := newPlot(fmt.Sprintf("Blocked cells (threshold %.2f, cutoff %.1f)", b.Threshold(), b.Cutoff()), o)

	cells := b.Cells()
	if len(cells) > 0 {
		rings := make([]plotter.XYer, 0, len(cells))
		for _, id := range cells {
			c, _ := g.Cell(id.Col, id.Row)
			rings = append(rings, plotter.XYs{
				{X: c.Left, Y: c.Bottom}, {X: c.Right, Y: c.Bottom},
				{X: c.Right, Y: c.Top}, {X: c.Left, Y: c.Top},
			})
		}
		poly, err := plotter.NewPolygon(rings...)
		if err != nil {
			return fmt.Errorf("render: blocked cells: %w", err)
		}
		poly.Color = blockColor
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	outline, err := plotter.NewLine(frame(g))
	if err != nil {
		return fmt.Errorf("render: frame: %w", err)
	}
	outline.Color = frameColor
	outline.Width = vg.Points(1)
	p.Add(outline)

	if len(path) > 0 {
		line, err := plotter.NewLine(xys(path))
		if err != nil {
			return fmt.Errorf("render: path: %w", err)
		}
		line.Color = pathColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("route", line)

		ends, err := plotter.NewScatter(xys([]gridgraph.Point{path[0], path[len(path)-1]}))
		if err != nil {
			return fmt.Errorf("render: endpoints: %w", err)
		}
		ends.GlyphStyle.Color = endColor
		ends.GlyphStyle.Radius = vg.Points(4)
		p.Add(ends)
	}

	return save(p, o, file)
}

// ScatterGraph draws every point of ds.
func ScatterGraph(ds gridgraph.Dataset, file string, opts ...Option) error {
	if len(ds.Points) == 0 {
		return ErrNoPoints
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := newPlot(fmt.Sprintf("Events (%d)", len(ds.Points)), o)

	s, err := plotter.NewScatter(xys(ds.Points))
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	s.GlyphStyle.Color = dotColor
	s.GlyphStyle.Radius = vg.Points(1)
	p.Add(s)
	p.X.Min, p.X.Max = ds.BBox.MinX, ds.BBox.MaxX
	p.Y.Min, p.Y.Max = ds.BBox.MinY, ds.BBox.MaxY

	return save(p, o, file)
}

// countGrid exposes cell counts as a plotter.GridXYZ sampled at cell
// centers.
type countGrid struct{ g *gridgraph.Grid }

func (c countGrid) Dims() (int, int)       { return c.g.Cols(), c.g.Rows() }
func (c countGrid) Z(col, row int) float64 { return float64(c.g.Count(col, row)) }
func (c countGrid) X(col int) float64 {
	return c.g.Tick(gridgraph.AxisX, col) + c.g.CellSize()/2
}
func (c countGrid) Y(row int) float64 {
	return c.g.Tick(gridgraph.AxisY, row) + c.g.CellSize()/2
}

// HeatGraph draws the per-cell counts of g as a heat map.
func HeatGraph(g *gridgraph.Grid, file string, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	st := g.Stats()
	p := newPlot(fmt.Sprintf("Counts per cell (mean %.2f, sd %.2f)", st.Mean, st.StdDev), o)

	hm := plotter.NewHeatMap(countGrid{g}, palette.Heat(12, 1))
	p.Add(hm)

	return save(p, o, file)
}
