package puzzle

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestShuffleKeepsPiecesOnPaper(t *testing.T) {
	cases := []struct {
		name  string
		view  gg.Matrix
		scale float64
	}{
		{"identity", gg.Identity(), 1},
		{"scaled", gg.Scale(0.5, 0.5), 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := Metrics{Ratio: 1, Width: 400, Height: 400, PaperWidth: 600, PaperHeight: 500, Padding: 10, Stroke: 2}
			size := GridSize{X: 4, Y: 4}
			s := NewState("s", size, m, GenerateCells(size, testRNG()), true)
			s.Elements().SetTransform(c.view)

			s.Shuffle(testRNG())
			const eps = 1e-6
			for _, p := range s.Pieces() {
				bb := p.Bounds()
				if bb.L < -eps || bb.B < -eps || bb.R > 600*c.scale+eps || bb.T > 500*c.scale+eps {
					t.Fatalf("%s left the paper: %+v", p.ID(), bb)
				}
			}
		})
	}
}

func TestShuffleBreaksGroups(t *testing.T) {
	s := newTestState(t, twoByTwo)
	s.Shadow = true
	d := NewDragController(s)
	dragOnto(t, d, s.Element("0-0"), s.Element("1-0"))
	s.ForceResolve()

	s.Shuffle(testRNG())
	if s.Resolved || len(s.Groups()) != 0 || s.Elements().Len() != 4 {
		t.Fatalf("resolved=%v groups=%d elements=%d", s.Resolved, len(s.Groups()), s.Elements().Len())
	}
	for _, p := range s.Pieces() {
		if p.Group() != nil || !p.Draggable() || !p.Shadow() {
			t.Fatalf("%s was not released: group=%v draggable=%v", p.ID(), p.Group(), p.Draggable())
		}
	}
	assertPartition(t, s)
}

func TestStateHitTest(t *testing.T) {
	s := NewState("h", twoByTwo, testMetrics(200, 200), GenerateCells(twoByTwo, testRNG()), false)

	if n := s.HitTest(50, 50); n == nil || n.ID() != "h-0-0" {
		t.Fatalf("HitTest(50, 50) = %v, want h-0-0", n)
	}
	top := s.Element("1-1")
	top.SetLocal(gg.Translate(-100, -100))
	if n := s.HitTest(50, 50); n != Node(top) {
		t.Fatalf("HitTest should prefer the top-most node, got %v", n)
	}
	top.draggable = false
	if n := s.HitTest(50, 50); n == nil || n.ID() != "h-0-0" {
		t.Fatalf("non-draggable nodes must be skipped, got %v", n)
	}
	if n := s.HitTest(-500, -500); n != nil {
		t.Fatalf("HitTest off board = %v", n.ID())
	}
}
