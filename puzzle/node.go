package puzzle

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/jakecoffman/cp"
)

// Node is a top-level draggable and mergeable shape: either a *Piece or a
// *Group.
type Node interface {
	ID() string
	// Local is the node's own transform.
	Local() gg.Matrix
	SetLocal(m gg.Matrix)
	// Frame is the total transform of the node's parent.
	Frame() gg.Matrix
	// Total is Frame composed with Local.
	Total() gg.Matrix
	// NeighborIDs are the ids of pieces this node may merge with.
	NeighborIDs() []string
	Draggable() bool
	Shadow() bool
	// Bounds is the screen-space box around the node.
	Bounds() cp.BB
	// Contains reports whether the screen point lies inside the node.
	Contains(x, y float64) bool

	setLayer(l *Layer)
	setShadow(on bool)
}

// Layer is an ordered, z-sorted list of top-level nodes under one
// transform. Later nodes draw on top.
type Layer struct {
	name      string
	transform gg.Matrix
	nodes     []Node
}

func newLayer(name string) *Layer {
	return &Layer{name: name, transform: gg.Identity()}
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) Transform() gg.Matrix { return l.transform }

// SetTransform sets the view transform applied to every node of the layer.
func (l *Layer) SetTransform(m gg.Matrix) { l.transform = m }

// Nodes returns the layer's nodes bottom to top.
func (l *Layer) Nodes() []Node {
	out := make([]Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

func (l *Layer) Len() int { return len(l.nodes) }

func (l *Layer) add(n Node) {
	l.nodes = append(l.nodes, n)
	n.setLayer(l)
}

func (l *Layer) remove(n Node) bool {
	for i, m := range l.nodes {
		if m == n {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Layer) clear() {
	l.nodes = nil
}

// Piece is one jigsaw piece.
type Piece struct {
	id        string
	index     int
	cell      GridCell
	outline   *gg.Path
	polygon   []gg.Point
	bounds    cp.BB
	neighbors []string

	local     gg.Matrix
	group     *Group
	layer     *Layer
	draggable bool
	shadow    bool
}

const flattenSteps = 8

func newPiece(id string, index int, cell GridCell, outline *gg.Path, neighbors []string) *Piece {
	return &Piece{
		id:        id,
		index:     index,
		cell:      cell,
		outline:   outline,
		polygon:   Flatten(outline, flattenSteps),
		bounds:    ControlBounds(outline),
		neighbors: neighbors,
		local:     gg.Identity(),
	}
}

func (p *Piece) ID() string { return p.id }

// Index is the piece's position in generation order.
func (p *Piece) Index() int { return p.index }

func (p *Piece) Cell() GridCell { return p.cell }

// Outline is the closed contour in solved (untransformed) coordinates.
func (p *Piece) Outline() *gg.Path { return p.outline }

// OutlineBounds is the box around the untransformed outline.
func (p *Piece) OutlineBounds() cp.BB { return p.bounds }

// Group is the group holding the piece, or nil for a loose piece.
func (p *Piece) Group() *Group { return p.group }

func (p *Piece) Local() gg.Matrix { return p.local }

func (p *Piece) SetLocal(m gg.Matrix) { p.local = m }

func (p *Piece) Frame() gg.Matrix {
	switch {
	case p.group != nil:
		return p.group.Total()
	case p.layer != nil:
		return p.layer.transform
	default:
		return gg.Identity()
	}
}

func (p *Piece) Total() gg.Matrix { return p.Frame().Multiply(p.local) }

func (p *Piece) NeighborIDs() []string { return p.neighbors }

func (p *Piece) Draggable() bool { return p.draggable }

func (p *Piece) Shadow() bool { return p.shadow }

func (p *Piece) Bounds() cp.BB { return TransformBounds(p.Total(), p.bounds) }

func (p *Piece) Contains(x, y float64) bool {
	q := p.Total().Invert().TransformPoint(gg.Point{X: x, Y: y})
	if !p.bounds.ContainsVect(cp.Vector{X: q.X, Y: q.Y}) {
		return false
	}
	return polygonContains(p.polygon, q.X, q.Y)
}

func (p *Piece) setLayer(l *Layer) { p.layer = l }

func (p *Piece) setShadow(on bool) { p.shadow = on }

// unanchor resets the piece to its solved offset and strips its own
// interaction state before it joins a group.
func (p *Piece) unanchor() {
	p.local = gg.Identity()
	p.shadow = false
	p.draggable = false
	if p.layer != nil {
		p.layer.remove(p)
		p.layer = nil
	}
}

// Group is a set of pieces moved as one rigid unit.
type Group struct {
	id        string
	local     gg.Matrix
	layer     *Layer
	members   []*Piece
	neighbors []string
	draggable bool
	shadow    bool
}

func (g *Group) ID() string { return g.id }

// Members returns the pieces of the group.
func (g *Group) Members() []*Piece {
	out := make([]*Piece, len(g.members))
	copy(out, g.members)
	return out
}

func (g *Group) Len() int { return len(g.members) }

func (g *Group) Local() gg.Matrix { return g.local }

func (g *Group) SetLocal(m gg.Matrix) { g.local = m }

func (g *Group) Frame() gg.Matrix {
	if g.layer == nil {
		return gg.Identity()
	}
	return g.layer.transform
}

func (g *Group) Total() gg.Matrix { return g.Frame().Multiply(g.local) }

func (g *Group) NeighborIDs() []string { return g.neighbors }

func (g *Group) Draggable() bool { return g.draggable }

func (g *Group) Shadow() bool { return g.shadow }

func (g *Group) Bounds() cp.BB {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, m := range g.members {
		bb = bb.Merge(m.Bounds())
	}
	return bb
}

func (g *Group) Contains(x, y float64) bool {
	for _, m := range g.members {
		if m.Contains(x, y) {
			return true
		}
	}
	return false
}

func (g *Group) setLayer(l *Layer) { g.layer = l }

func (g *Group) setShadow(on bool) { g.shadow = on }

func (g *Group) has(id string) bool {
	for _, m := range g.members {
		if m.id == id {
			return true
		}
	}
	return false
}

// adopt appends pieces to the group and folds their neighbour ids in.
func (g *Group) adopt(pieces ...*Piece) {
	sets := [][]string{g.neighbors}
	for _, p := range pieces {
		p.group = g
		g.members = append(g.members, p)
		sets = append(sets, p.neighbors)
	}
	g.neighbors = withoutIDs(mergeIDs(sets...), g.has)
}
