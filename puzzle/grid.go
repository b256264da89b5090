package puzzle

import "math/rand/v2"

// GridCell describes the tab polarity of one grid cell. Each edge is 0 on
// the grid boundary (straight), +1 for a protruding tab and -1 for a
// receding notch.
type GridCell struct {
	X, Y   int
	Top    int
	Right  int
	Bottom int
	Left   int
}

// GenerateCells draws the edge polarities for a size.X by size.Y grid and
// returns one cell per grid position in row-major order.
//
// Every interior edge is drawn once. A right edge is copied unchanged to the
// neighbour's left edge, while a bottom edge is copied negated to the
// neighbour's top edge.
func GenerateCells(size GridSize, rng *rand.Rand) []GridCell {
	cells := make([]GridCell, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			cells[y*size.X+x] = GridCell{X: x, Y: y}
		}
	}

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			cell := &cells[y*size.X+x]
			if x < size.X-1 {
				cell.Right = randomSign(rng)
				cells[y*size.X+x+1].Left = cell.Right
			}
			if y < size.Y-1 {
				cell.Bottom = randomSign(rng)
				cells[(y+1)*size.X+x].Top = -cell.Bottom
			}
		}
	}
	return cells
}

func randomSign(rng *rand.Rand) int {
	if rng.IntN(2) == 0 {
		return 1
	}
	return -1
}
