package puzzle

import (
	"context"
	"errors"
	"image"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/gg"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testMetrics(w, h float64) Metrics {
	return Metrics{Ratio: 1, Width: w, Height: h, PaperWidth: w, PaperHeight: h, Stroke: 2}
}

// newTestState builds a state of 100px cells with every piece pushed far
// from every other piece so nothing snaps unless a test moves it.
func newTestState(t *testing.T, size GridSize) *State {
	t.Helper()
	m := testMetrics(float64(size.X)*100, float64(size.Y)*100)
	s := NewState("t", size, m, GenerateCells(size, testRNG()), false)
	for i, p := range s.pieces {
		p.local = gg.Translate(float64(i+1)*10000, 0)
	}
	return s
}

// dragBy runs a whole gesture moving n by (dx, dy) on screen.
func dragBy(t *testing.T, d *DragController, n Node, dx, dy float64) Release {
	t.Helper()
	if err := d.Start(n, 0, 0); err != nil {
		t.Fatalf("Start(%s): %v", n.ID(), err)
	}
	if err := d.Move(dx, dy); err != nil {
		t.Fatalf("Move: %v", err)
	}
	rel, err := d.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	return rel
}

// dragOnto moves n so its translation matches the neighbour piece's.
func dragOnto(t *testing.T, d *DragController, n Node, nb *Piece) Release {
	t.Helper()
	ex, ey := Translation(n.Total())
	nx, ny := Translation(nb.Total())
	return dragBy(t, d, n, nx-ex, ny-ey)
}

// topLevel returns the draggable unit holding p.
func topLevel(p *Piece) Node {
	if p.group != nil {
		return p.group
	}
	return p
}

// assertPartition checks every piece belongs to exactly one unit.
func assertPartition(t *testing.T, s *State) {
	t.Helper()
	seen := map[string]int{}
	for _, g := range s.groups {
		for _, m := range g.members {
			seen[m.id]++
			if m.group != g {
				t.Fatalf("piece %s listed in %s but points at %v", m.id, g.id, m.group)
			}
		}
	}
	for _, p := range s.pieces {
		if p.group == nil {
			seen[p.id]++
		}
	}
	if len(seen) != len(s.pieces) {
		t.Fatalf("partition covers %d pieces, want %d", len(seen), len(s.pieces))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("piece %s appears %d times", id, n)
		}
	}
}

type memLoader struct {
	images map[string]image.Image
	loads  int
}

func (l *memLoader) Load(_ context.Context, src string) (image.Image, error) {
	l.loads++
	img, ok := l.images[src]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

type fakeSurface struct {
	attached bool
	metrics  Metrics
	pieces   []string
	detaches int
	failOn   string
}

func (s *fakeSurface) Attach(_ image.Image, m Metrics) error {
	s.attached = true
	s.metrics = m
	s.pieces = nil
	return nil
}

func (s *fakeSurface) AddPiece(p *Piece) error {
	if p.ID() == s.failOn {
		return errors.New("boom")
	}
	s.pieces = append(s.pieces, p.ID())
	return nil
}

func (s *fakeSurface) Detach() {
	s.attached = false
	s.pieces = nil
	s.detaches++
}
