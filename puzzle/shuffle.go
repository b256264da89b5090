package puzzle

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/jakecoffman/cp"
)

// Shuffle breaks every group apart and scatters the pieces at random so
// that each piece's box stays inside the paper. All pieces become draggable
// again and the state is no longer resolved.
func (s *State) Shuffle(rng *rand.Rand) {
	s.Resolved = false
	for _, g := range s.Groups() {
		s.dropGroup(g)
	}
	s.elements.clear()
	s.move.clear()

	paper := TransformBounds(s.elements.transform, cp.BB{L: 0, B: 0, R: s.Metrics.PaperWidth, T: s.Metrics.PaperHeight})
	for _, p := range s.pieces {
		p.group = nil
		s.elements.add(p)

		bb := p.Bounds()
		x := paper.L + rng.Float64()*math.Max(0, (paper.R-paper.L)-(bb.R-bb.L))
		y := paper.B + rng.Float64()*math.Max(0, (paper.T-paper.B)-(bb.T-bb.B))
		d := LocalDelta(p.Frame(), x-bb.L, y-bb.B)
		p.local = gg.Translate(d.X, d.Y).Multiply(p.local)
		p.draggable = true
		p.shadow = s.Shadow
	}
}
