package puzzle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateCellsEdgeRules(t *testing.T) {
	cases := []struct {
		name string
		size GridSize
	}{
		{"2x2", GridSize{X: 2, Y: 2}},
		{"4x4", GridSize{X: 4, Y: 4}},
		{"wide", GridSize{X: 9, Y: 2}},
		{"tall", GridSize{X: 3, Y: 7}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cells := GenerateCells(c.size, testRNG())
			if len(cells) != c.size.Count() {
				t.Fatalf("got %d cells, want %d", len(cells), c.size.Count())
			}
			at := func(x, y int) GridCell { return cells[y*c.size.X+x] }

			for y := 0; y < c.size.Y; y++ {
				for x := 0; x < c.size.X; x++ {
					cell := at(x, y)
					if cell.X != x || cell.Y != y {
						t.Fatalf("cell at %d,%d reports %d,%d", x, y, cell.X, cell.Y)
					}
					if y == 0 && cell.Top != 0 {
						t.Errorf("%d,%d top = %d on boundary", x, y, cell.Top)
					}
					if x == c.size.X-1 && cell.Right != 0 {
						t.Errorf("%d,%d right = %d on boundary", x, y, cell.Right)
					}
					if y == c.size.Y-1 && cell.Bottom != 0 {
						t.Errorf("%d,%d bottom = %d on boundary", x, y, cell.Bottom)
					}
					if x == 0 && cell.Left != 0 {
						t.Errorf("%d,%d left = %d on boundary", x, y, cell.Left)
					}
					if x < c.size.X-1 {
						if cell.Right != 1 && cell.Right != -1 {
							t.Errorf("%d,%d interior right = %d", x, y, cell.Right)
						}
						if got := at(x+1, y).Left; got != cell.Right {
							t.Errorf("%d,%d left = %d, want %d", x+1, y, got, cell.Right)
						}
					}
					if y < c.size.Y-1 {
						if cell.Bottom != 1 && cell.Bottom != -1 {
							t.Errorf("%d,%d interior bottom = %d", x, y, cell.Bottom)
						}
						if got := at(x, y+1).Top; got != -cell.Bottom {
							t.Errorf("%d,%d top = %d, want %d", x, y+1, got, -cell.Bottom)
						}
					}
				}
			}
		})
	}
}

func TestGenerateCellsSeeded(t *testing.T) {
	size := GridSize{X: 5, Y: 5}
	a := GenerateCells(size, testRNG())
	b := GenerateCells(size, testRNG())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different grids (-a +b):\n%s", diff)
	}
}

func TestGenerateCellsUsesBothSigns(t *testing.T) {
	cells := GenerateCells(GridSize{X: 8, Y: 8}, testRNG())
	var pos, neg int
	for _, c := range cells {
		for _, s := range []int{c.Right, c.Bottom} {
			switch s {
			case 1:
				pos++
			case -1:
				neg++
			}
		}
	}
	if pos == 0 || neg == 0 {
		t.Fatalf("expected both polarities, got +%d -%d", pos, neg)
	}
}
