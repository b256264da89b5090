package puzzle

import (
	"slices"
	"strconv"
)

// CellKey is the "x-y" key of a grid position, the suffix of a piece id.
func CellKey(x, y int) string {
	return strconv.Itoa(x) + "-" + strconv.Itoa(y)
}

// PieceID is the identity of the piece at (x, y) in puzzle puzzleID.
func PieceID(puzzleID string, x, y int) string {
	return puzzleID + "-" + CellKey(x, y)
}

// NeighborIDs lists the ids of the in-bounds cells above, right of, below
// and left of (x, y), sorted.
func NeighborIDs(puzzleID string, x, y int, size GridSize) []string {
	ids := make([]string, 0, 4)
	if y > 0 {
		ids = append(ids, PieceID(puzzleID, x, y-1))
	}
	if x < size.X-1 {
		ids = append(ids, PieceID(puzzleID, x+1, y))
	}
	if y < size.Y-1 {
		ids = append(ids, PieceID(puzzleID, x, y+1))
	}
	if x > 0 {
		ids = append(ids, PieceID(puzzleID, x-1, y))
	}
	return mergeIDs(ids)
}

// mergeIDs returns the sorted, deduplicated union of sets.
func mergeIDs(sets ...[]string) []string {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// withoutIDs returns ids minus every id for which exclude reports true.
func withoutIDs(ids []string, exclude func(string) bool) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if !exclude(id) {
			out = append(out, id)
		}
	}
	return out
}
