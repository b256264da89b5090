package puzzle

import "github.com/gogpu/gg"

// IsComplete reports whether a single unit holds every piece. A puzzle with
// one piece is complete on its own.
func (s *State) IsComplete() bool {
	total := len(s.pieces)
	if total == 0 {
		return false
	}
	if len(s.groups) == 1 {
		return s.groups[0].Len() == total
	}
	return len(s.groups) == 0 && total == 1
}

// CheckResolved marks the state resolved the first time it is complete.
// The finished assembly is centred within the paper minus padding and can
// no longer be dragged. It reports whether this call resolved the puzzle.
func (s *State) CheckResolved() bool {
	if s.Resolved || !s.IsComplete() {
		return false
	}
	s.Resolved = true

	var n Node
	if len(s.groups) == 1 {
		n = s.groups[0]
	} else {
		n = s.pieces[0]
	}
	n.SetLocal(gg.Translate(s.centerOffset()))
	switch n := n.(type) {
	case *Group:
		n.draggable = false
	case *Piece:
		n.draggable = false
	}
	return true
}

func (s *State) centerOffset() (x, y float64) {
	m := s.Metrics
	return (m.PaperWidth - m.Padding*2 - m.Width) / 2, (m.PaperHeight - m.Padding*2 - m.Height) / 2
}

// ForceResolve collects every piece into one group at its solved offset
// and marks the state resolved.
func (s *State) ForceResolve() *Group {
	for _, g := range s.Groups() {
		s.dropGroup(g)
	}
	s.elements.clear()
	s.move.clear()

	for _, p := range s.pieces {
		p.group = nil
		p.layer = nil
		p.unanchor()
	}
	g := s.newGroup(gg.Identity())
	g.shadow = false
	g.draggable = false
	g.adopt(s.pieces...)
	s.Resolved = true
	return g
}
