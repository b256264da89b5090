package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/puzzle"
)

// Pointer is the primary pointer for one frame, in screen coordinates.
type Pointer struct {
	X, Y     float64
	Pressed  bool
	Down     bool
	Released bool
}

// PointerSource reports the pointer once per frame.
type PointerSource interface {
	Pointer() Pointer
}

// KeySource reports keys pressed this frame.
type KeySource interface {
	JustPressed(k ebiten.Key) bool
}

// InputSystem turns mouse, touch and keyboard input into puzzle gestures
// and commands.
type InputSystem struct {
	pointer   PointerSource
	keys      KeySource
	clipboard Clipboard
	presets   []string
}

// NewInputSystem wires the default ebiten sources. presets are bound to
// the digit keys in order.
func NewInputSystem(clip Clipboard, presets []string) *InputSystem {
	return &InputSystem{
		pointer:   &ebitenPointer{touch: -1},
		keys:      ebitenKeys{},
		clipboard: clip,
		presets:   presets,
	}
}

// SetSources replaces the pointer and key sources. Nil keeps the current one.
func (i *InputSystem) SetSources(p PointerSource, k KeySource) {
	if p != nil {
		i.pointer = p
	}
	if k != nil {
		i.keys = k
	}
}

var presetKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || w.Puzzle() == nil {
		return
	}
	i.updateKeys(w)
	if w.Puzzle().IsReady() {
		i.updatePointer(w)
	}
}

func (i *InputSystem) updateKeys(w *ecs.World) {
	var err error
	switch {
	case i.keys.JustPressed(ebiten.KeyS):
		err = Shuffle(w)
	case i.keys.JustPressed(ebiten.KeyR):
		err = Resolve(w)
	case i.keys.JustPressed(ebiten.KeyC):
		_, err = CopyCode(w, i.clipboard)
	case i.keys.JustPressed(ebiten.KeyV):
		err = PasteCode(w, i.clipboard)
	default:
		for n, k := range presetKeys {
			if n < len(i.presets) && i.keys.JustPressed(k) {
				err = SetPreset(w, i.presets[n])
				break
			}
		}
	}
	if err != nil {
		puzzle.Logger().Warn("input: command failed", "err", err)
	}
}

func (i *InputSystem) updatePointer(w *ecs.World) {
	p := w.Puzzle()
	ptr := i.pointer.Pointer()

	if !p.Dragging() {
		if !ptr.Pressed {
			return
		}
		n := p.HitTest(ptr.X, ptr.Y)
		if n == nil {
			return
		}
		if err := p.StartDrag(n, ptr.X, ptr.Y); err != nil {
			puzzle.Logger().Debug("input: start drag", "node", n.ID(), "err", err)
		}
		return
	}

	if err := p.MoveDrag(ptr.X, ptr.Y); err != nil {
		puzzle.Logger().Debug("input: move drag", "err", err)
	}
	if ptr.Down && !ptr.Released {
		return
	}

	rel, err := p.EndDrag()
	if err != nil {
		puzzle.Logger().Debug("input: end drag", "err", err)
		return
	}
	if rel.Merged {
		w.Events().Push(ecs.Event{Type: ecs.EventMerge, Data: mergeEvent(rel)})
	}
}

func mergeEvent(rel puzzle.Release) ecs.MergeEvent {
	ev := ecs.MergeEvent{Node: rel.Node.ID(), Kind: rel.Merge.Kind}
	if rel.Merge.Neighbor != nil {
		ev.Neighbor = rel.Merge.Neighbor.ID()
	}
	if g := rel.Merge.Group; g != nil {
		ev.Group = g.ID()
		ev.Size = g.Len()
	}
	return ev
}

// ebitenPointer follows the mouse, or the first touch while one is down.
type ebitenPointer struct {
	touch ebiten.TouchID
	ids   []ebiten.TouchID
}

func (e *ebitenPointer) Pointer() Pointer {
	if e.touch < 0 {
		e.ids = inpututil.AppendJustPressedTouchIDs(e.ids[:0])
		if len(e.ids) > 0 {
			e.touch = e.ids[0]
			x, y := ebiten.TouchPosition(e.touch)
			return Pointer{X: float64(x), Y: float64(y), Pressed: true, Down: true}
		}
	} else {
		if inpututil.IsTouchJustReleased(e.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(e.touch)
			e.touch = -1
			return Pointer{X: float64(x), Y: float64(y), Released: true}
		}
		x, y := ebiten.TouchPosition(e.touch)
		return Pointer{X: float64(x), Y: float64(y), Down: true}
	}

	x, y := ebiten.CursorPosition()
	return Pointer{
		X:        float64(x),
		Y:        float64(y),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}
