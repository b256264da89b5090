package puzzle

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/jakecoffman/cp"
)

// LinearInverse inverts m and drops the translation of the result, leaving
// only the inverse rotation, scale and shear.
func LinearInverse(m gg.Matrix) gg.Matrix {
	inv := m.Invert()
	inv.C, inv.F = 0, 0
	return inv
}

// LocalDelta maps a screen-space pointer delta into the coordinate frame
// whose total transform is frame.
func LocalDelta(frame gg.Matrix, dx, dy float64) gg.Point {
	return LinearInverse(frame).TransformVector(gg.Point{X: dx, Y: dy})
}

// Translation returns the translation components of m.
func Translation(m gg.Matrix) (x, y float64) {
	return m.C, m.F
}

// TransformBounds returns the axis-aligned box around bb mapped through m.
func TransformBounds(m gg.Matrix, bb cp.BB) cp.BB {
	corners := [4]gg.Point{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	out := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, c := range corners {
		p := m.TransformPoint(c)
		out = out.Expand(cp.Vector{X: p.X, Y: p.Y})
	}
	return out
}
