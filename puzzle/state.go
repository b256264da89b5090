package puzzle

import (
	"fmt"

	"github.com/gogpu/gg"
)

// State owns the pieces, groups and interaction layers of one loaded
// puzzle. It is not safe for concurrent use; every mutation happens inside
// the gesture handlers of a single event loop.
type State struct {
	ID       string
	Size     GridSize
	Metrics  Metrics
	Shadow   bool
	Resolved bool

	pieces   []*Piece
	byID     map[string]*Piece
	groups   []*Group
	elements *Layer
	move     *Layer
	groupSeq int
}

// NewState builds one piece per cell. Cells must be in row-major order as
// produced by GenerateCells.
func NewState(id string, size GridSize, m Metrics, cells []GridCell, shadow bool) *State {
	s := &State{
		ID:       id,
		Size:     size,
		Metrics:  m,
		Shadow:   shadow,
		pieces:   make([]*Piece, 0, len(cells)),
		byID:     make(map[string]*Piece, len(cells)),
		elements: newLayer("elements"),
		move:     newLayer("move"),
	}

	w, h := m.PieceSize(size)
	origin := gg.Point{X: m.Padding, Y: m.Padding}
	for i, cell := range cells {
		pid := PieceID(id, cell.X, cell.Y)
		p := newPiece(pid, i, cell, BuildOutline(cell, w, h, origin), NeighborIDs(id, cell.X, cell.Y, size))
		p.draggable = true
		p.shadow = shadow
		s.pieces = append(s.pieces, p)
		s.byID[pid] = p
		s.elements.add(p)
	}
	return s
}

// Pieces returns every piece in generation order.
func (s *State) Pieces() []*Piece {
	out := make([]*Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

// Piece looks a piece up by its full id.
func (s *State) Piece(id string) *Piece {
	return s.byID[id]
}

// Element looks a piece up by its "x-y" key.
func (s *State) Element(xy string) *Piece {
	return s.byID[s.ID+"-"+xy]
}

// Groups returns the live groups.
func (s *State) Groups() []*Group {
	out := make([]*Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// Elements is the resting layer.
func (s *State) Elements() *Layer { return s.elements }

// Move is the top-most layer holding the node being dragged.
func (s *State) Move() *Layer { return s.move }

// Tolerance is the snap distance per axis: a fifth of one cell.
func (s *State) Tolerance() (x, y float64) {
	return s.Metrics.Width / float64(s.Size.X) * 0.2, s.Metrics.Height / float64(s.Size.Y) * 0.2
}

// Components counts the independent units on the board: every group plus
// every loose piece.
func (s *State) Components() int {
	n := len(s.groups)
	for _, p := range s.pieces {
		if p.group == nil {
			n++
		}
	}
	return n
}

func (s *State) newGroup(local gg.Matrix) *Group {
	s.groupSeq++
	g := &Group{
		id:        fmt.Sprintf("%s-group-%d", s.ID, s.groupSeq),
		local:     local,
		draggable: true,
		shadow:    s.Shadow,
	}
	s.groups = append(s.groups, g)
	s.elements.add(g)
	return g
}

func (s *State) dropGroup(g *Group) {
	for i, h := range s.groups {
		if h == g {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			break
		}
	}
	if g.layer != nil {
		g.layer.remove(g)
		g.layer = nil
	}
	g.members = nil
	g.draggable = false
}

// promote lifts n onto the move layer.
func (s *State) promote(n Node) {
	s.elements.remove(n)
	s.move.remove(n)
	s.move.add(n)
}

// settle puts n back on top of the elements layer.
func (s *State) settle(n Node) {
	s.move.remove(n)
	s.elements.remove(n)
	s.elements.add(n)
}

// lookup finds the top-level node with id, if any.
func (s *State) lookup(id string) Node {
	for _, l := range []*Layer{s.move, s.elements} {
		for _, n := range l.nodes {
			if n.ID() == id {
				return n
			}
		}
	}
	return nil
}

// HitTest returns the top-most draggable node containing the screen point.
func (s *State) HitTest(x, y float64) Node {
	for _, l := range []*Layer{s.move, s.elements} {
		for i := len(l.nodes) - 1; i >= 0; i-- {
			n := l.nodes[i]
			if n.Draggable() && n.Contains(x, y) {
				return n
			}
		}
	}
	return nil
}
