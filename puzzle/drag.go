package puzzle

import "github.com/gogpu/gg"

// Release is the outcome of a finished gesture.
type Release struct {
	Node     Node
	Merged   bool
	Merge    Merge
	Resolved bool
}

// DragController runs the idle/dragging gesture state machine for one
// pointer. Only one gesture may be active at a time.
type DragController struct {
	state  *State
	active Node
	startX float64
	startY float64
	origin gg.Matrix
}

func NewDragController(s *State) *DragController {
	return &DragController{state: s}
}

// Dragging reports whether a gesture is active.
func (d *DragController) Dragging() bool {
	return d.active != nil
}

// Active returns the node being dragged, or nil.
func (d *DragController) Active() Node {
	return d.active
}

// Start begins a gesture on n at the screen point (x, y). The node is
// lifted onto the move layer.
func (d *DragController) Start(n Node, x, y float64) error {
	if d.active != nil {
		return ErrGestureActive
	}
	if n == nil || !n.Draggable() || d.state.lookup(n.ID()) != n {
		return ErrNotDraggable
	}

	d.state.promote(n)
	n.setShadow(d.state.Shadow)
	d.active = n
	d.startX, d.startY = x, y
	d.origin = n.Local()
	Logger().Debug("puzzle: drag start", "node", n.ID(), "x", x, "y", y)
	return nil
}

// Move places the active node so it stays under the pointer. The position
// is recomputed from the gesture start every time.
func (d *DragController) Move(x, y float64) error {
	if d.active == nil {
		return ErrNoGesture
	}
	delta := LocalDelta(d.active.Frame(), x-d.startX, y-d.startY)
	d.active.SetLocal(gg.Translate(delta.X, delta.Y).Multiply(d.origin))
	return nil
}

// End drops the active node back onto the elements layer, snaps it to a
// neighbour if one is close enough and checks for completion.
func (d *DragController) End() (Release, error) {
	n := d.active
	if n == nil {
		return Release{}, ErrNoGesture
	}
	d.active = nil

	d.state.settle(n)
	merge, merged := Snap(d.state, n)
	resolved := d.state.CheckResolved()
	Logger().Debug("puzzle: drag end", "node", n.ID(), "merged", merged, "resolved", resolved)
	return Release{Node: n, Merged: merged, Merge: merge, Resolved: resolved}, nil
}

// Cancel abandons the active gesture, restoring the node's position.
func (d *DragController) Cancel() {
	if d.active == nil {
		return
	}
	d.active.SetLocal(d.origin)
	d.state.settle(d.active)
	d.active = nil
}
