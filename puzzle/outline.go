package puzzle

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/jakecoffman/cp"
)

// edgeTemplate is one border on a 100x100 cell: six cubic segments given as
// (c1x, c1y, c2x, c2y, x, y). X runs along the edge, Y is the tab offset.
var edgeTemplate = [6][6]float64{
	{0, 0, 35, 15, 37, 5},
	{37, 5, 40, 0, 38, -5},
	{38, -5, 20, -20, 50, -20},
	{50, -20, 80, -20, 62, -5},
	{62, -5, 60, 0, 63, 5},
	{63, 5, 65, 15, 100, 0},
}

// BuildOutline returns the closed contour of cell for a piece of the given
// pixel size. The cell's solved top-left corner is origin + (X*width,
// Y*height). Borders are traversed clockwise from the top-left corner: top,
// right, bottom, left.
func BuildOutline(cell GridCell, width, height float64, origin gg.Point) *gg.Path {
	x0 := origin.X + float64(cell.X)*width
	y0 := origin.Y + float64(cell.Y)*height
	xr := width / 100
	yr := height / 100
	top, right := float64(cell.Top), float64(cell.Right)
	bottom, left := float64(cell.Bottom), float64(cell.Left)

	path := gg.NewPath()
	path.MoveTo(x0, y0)

	for _, s := range edgeTemplate {
		path.CubicTo(
			x0+s[0]*xr, y0+top*s[1]*yr,
			x0+s[2]*xr, y0+top*s[3]*yr,
			x0+s[4]*xr, y0+top*s[5]*yr,
		)
	}
	for _, s := range edgeTemplate {
		path.CubicTo(
			x0+width-right*s[1]*xr, y0+s[0]*yr,
			x0+width-right*s[3]*xr, y0+s[2]*yr,
			x0+width-right*s[5]*xr, y0+s[4]*yr,
		)
	}
	for _, s := range edgeTemplate {
		path.CubicTo(
			x0+width-s[0]*xr, y0+height-bottom*s[1]*yr,
			x0+width-s[2]*xr, y0+height-bottom*s[3]*yr,
			x0+width-s[4]*xr, y0+height-bottom*s[5]*yr,
		)
	}
	for _, s := range edgeTemplate {
		path.CubicTo(
			x0-left*s[1]*xr, y0+height-s[0]*yr,
			x0-left*s[3]*xr, y0+height-s[2]*yr,
			x0-left*s[5]*xr, y0+height-s[4]*yr,
		)
	}

	path.Close()
	return path
}

// ControlBounds returns the bounding box of every point and control point
// of path. A cubic curve lies inside the hull of its control points, so the
// box contains the whole contour.
func ControlBounds(path *gg.Path) cp.BB {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	extend := func(p gg.Point) {
		bb = bb.Expand(cp.Vector{X: p.X, Y: p.Y})
	}
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			extend(e.Point)
		case gg.LineTo:
			extend(e.Point)
		case gg.QuadTo:
			extend(e.Control)
			extend(e.Point)
		case gg.CubicTo:
			extend(e.Control1)
			extend(e.Control2)
			extend(e.Point)
		}
	}
	return bb
}

// Flatten approximates path by a polygon, sampling every curve with steps
// straight segments.
func Flatten(path *gg.Path, steps int) []gg.Point {
	if steps < 1 {
		steps = 1
	}
	var (
		pts     []gg.Point
		current gg.Point
	)
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			current = e.Point
			pts = append(pts, current)
		case gg.LineTo:
			current = e.Point
			pts = append(pts, current)
		case gg.QuadTo:
			p0 := current
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				mt := 1 - t
				pts = append(pts, gg.Point{
					X: mt*mt*p0.X + 2*mt*t*e.Control.X + t*t*e.Point.X,
					Y: mt*mt*p0.Y + 2*mt*t*e.Control.Y + t*t*e.Point.Y,
				})
			}
			current = e.Point
		case gg.CubicTo:
			p0 := current
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				pts = append(pts, gg.Point{
					X: a*p0.X + b*e.Control1.X + c*e.Control2.X + d*e.Point.X,
					Y: a*p0.Y + b*e.Control1.Y + c*e.Control2.Y + d*e.Point.Y,
				})
			}
			current = e.Point
		}
	}
	return pts
}

// polygonContains is an even-odd point-in-polygon test.
func polygonContains(poly []gg.Point, x, y float64) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
