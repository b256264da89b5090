package puzzle

import (
	"math"

	"github.com/gogpu/gg"
)

// MergeKind identifies which of the four merge transitions happened.
type MergeKind int

const (
	MergeNone MergeKind = iota
	// MergeGroupIntoGroup: a released group joined a neighbour's group.
	MergeGroupIntoGroup
	// MergeGroupWithPiece: a released group took in a loose neighbour.
	MergeGroupWithPiece
	// MergePieceIntoGroup: a released piece joined a neighbour's group.
	MergePieceIntoGroup
	// MergePieces: two loose pieces formed a new group.
	MergePieces
)

func (k MergeKind) String() string {
	switch k {
	case MergeGroupIntoGroup:
		return "group_into_group"
	case MergeGroupWithPiece:
		return "group_with_piece"
	case MergePieceIntoGroup:
		return "piece_into_group"
	case MergePieces:
		return "pieces"
	default:
		return "none"
	}
}

// Merge describes the outcome of one snap.
type Merge struct {
	Kind MergeKind
	// Neighbor is the piece whose position triggered the merge.
	Neighbor *Piece
	// Group is the group that holds the merged pieces afterwards.
	Group *Group
}

// Snap merges the released node n with the first recorded neighbour lying
// within snap tolerance. At most one merge happens per call.
func Snap(s *State, n Node) (Merge, bool) {
	tolX, tolY := s.Tolerance()
	ex, ey := s.paperOffset(n)

	src, isGroup := n.(*Group)
	for _, id := range n.NeighborIDs() {
		nb := s.byID[id]
		if nb == nil || (isGroup && nb.group == src) {
			continue
		}
		nx, ny := s.paperOffset(nb)
		if math.Abs(nx-ex) > tolX || math.Abs(ny-ey) > tolY {
			continue
		}

		var m Merge
		switch n := n.(type) {
		case *Group:
			m = s.mergeGroup(n, nb)
		case *Piece:
			m = s.mergePiece(n, nb)
		}
		Logger().Debug("puzzle: merged", "node", n.ID(), "neighbor", nb.id, "kind", m.Kind.String(), "group", m.Group.id, "size", m.Group.Len())
		return m, true
	}
	return Merge{}, false
}

func (s *State) mergeGroup(src *Group, nb *Piece) Merge {
	if target := nb.group; target != nil {
		// Members keep their identity transform, so re-parenting puts them
		// in the target's frame at their solved offsets.
		members := src.members
		s.dropGroup(src)
		target.adopt(members...)
		return Merge{Kind: MergeGroupIntoGroup, Neighbor: nb, Group: target}
	}

	src.local = translationOf(nb.local)
	nb.unanchor()
	src.adopt(nb)
	return Merge{Kind: MergeGroupWithPiece, Neighbor: nb, Group: src}
}

func (s *State) mergePiece(src *Piece, nb *Piece) Merge {
	if target := nb.group; target != nil {
		src.unanchor()
		target.adopt(src)
		return Merge{Kind: MergePieceIntoGroup, Neighbor: nb, Group: target}
	}

	at := translationOf(nb.local)
	src.unanchor()
	nb.unanchor()
	g := s.newGroup(at)
	g.adopt(src, nb)
	return Merge{Kind: MergePieces, Neighbor: nb, Group: g}
}

// paperOffset is n's translation in paper units, with the elements layer's
// view transform removed. Tolerance is measured in the same units.
func (s *State) paperOffset(n Node) (x, y float64) {
	return Translation(s.elements.transform.Invert().Multiply(n.Total()))
}

func translationOf(m gg.Matrix) gg.Matrix {
	x, y := Translation(m)
	return gg.Translate(x, y)
}
