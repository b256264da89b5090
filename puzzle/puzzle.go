package puzzle

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
)

// ImageLoader fetches the source picture. Load may block; callers that need
// asynchrony run it off their event loop.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// Surface is the rendering collaborator. The puzzle owns the scene tree
// and transforms; the surface only turns pieces into drawables.
type Surface interface {
	// Attach prepares a paper of the given metrics whose pieces are filled
	// from img.
	Attach(img image.Image, m Metrics) error
	// AddPiece creates the drawable for p from its outline.
	AddPiece(p *Piece) error
	// Detach releases every drawable.
	Detach()
}

// Callbacks are optional host notifications.
type Callbacks struct {
	// Init fires once the puzzle is split and first shuffled.
	Init func(*Puzzle)
	// Destroy fires after resources were released.
	Destroy func(*Puzzle)
	// Resolve fires when the puzzle is completed or force-resolved.
	Resolve func(*Puzzle)
}

// Puzzle ties the core to its collaborators and exposes the host-facing
// operations.
type Puzzle struct {
	id        string
	cfg       Config
	loader    ImageLoader
	surface   Surface
	callbacks Callbacks

	src   string
	seed  uint64
	rng   *rand.Rand
	size  GridSize
	state *State
	drag  *DragController
	ready bool
	// forced records whether the last resolve came from Resolve.
	forced bool

	paperW, paperH float64
}

// New validates the collaborators and returns an unloaded puzzle. Call
// Init to load an image.
func New(id string, cfg Config, loader ImageLoader, surface Surface, cb Callbacks) (*Puzzle, error) {
	if surface == nil {
		return nil, ErrMissingSurface
	}
	if loader == nil {
		return nil, ErrMissingLoader
	}
	if id == "" {
		id = "jigsaw"
	}
	p := &Puzzle{
		id:        id,
		cfg:       cfg.withDefaults(),
		loader:    loader,
		surface:   surface,
		callbacks: cb,
	}
	p.seed = p.nextSeed()
	return p, nil
}

func (p *Puzzle) nextSeed() uint64 {
	if p.cfg.Seed != 0 {
		return p.cfg.Seed
	}
	return rand.Uint64()
}

// Init loads src, splits it into pieces and shuffles them.
func (p *Puzzle) Init(ctx context.Context, src string) error {
	p.ready = false
	p.src = src

	img, err := p.loader.Load(ctx, src)
	if err != nil {
		return &LoadError{Src: src, Err: err}
	}

	size, err := ResolveGridSize(p.cfg.Grid, p.cfg.Presets)
	if err != nil {
		Logger().Warn("puzzle: grid size fallback", "err", err)
	}

	b := img.Bounds()
	m := FitImage(p.cfg, float64(b.Dx()), float64(b.Dy()))
	p.size = size
	p.paperW, p.paperH = m.PaperWidth, m.PaperHeight
	p.rng = rand.New(rand.NewPCG(p.seed, p.seed^0x9e3779b97f4a7c15))

	state := NewState(p.id, size, m, GenerateCells(size, p.rng), p.cfg.Shadow)
	if err := p.surface.Attach(img, m); err != nil {
		return fmt.Errorf("puzzle: attach surface: %w", err)
	}
	for _, piece := range state.pieces {
		if err := p.surface.AddPiece(piece); err != nil {
			p.surface.Detach()
			return fmt.Errorf("puzzle: add piece %s: %w", piece.id, err)
		}
	}

	p.state = state
	p.drag = NewDragController(state)
	state.Shuffle(p.rng)
	p.ready = true

	Logger().Info("puzzle: ready", "id", p.id, "src", src, "grid", size.String(), "seed", p.seed)
	if p.callbacks.Init != nil {
		p.callbacks.Init(p)
	}
	return nil
}

// IsReady reports whether an image is loaded and split.
func (p *Puzzle) IsReady() bool { return p.ready }

// ID is the puzzle id, the prefix of every piece id.
func (p *Puzzle) ID() string { return p.id }

// State returns the live state, or nil before Init.
func (p *Puzzle) State() *State { return p.state }

// Image returns the current image source.
func (p *Puzzle) Image() string { return p.src }

// SetImage tears the puzzle down and loads src.
func (p *Puzzle) SetImage(ctx context.Context, src string) error {
	p.Destroy()
	p.seed = p.nextSeed()
	return p.Init(ctx, src)
}

// Size returns the paper size.
func (p *Puzzle) Size() (w, h float64) { return p.paperW, p.paperH }

// SetSize changes the paper size. Zero keeps the current value of that axis.
func (p *Puzzle) SetSize(w, h float64) {
	if w > 0 {
		p.paperW = w
	}
	if h > 0 {
		p.paperH = h
	}
	if p.state != nil {
		p.state.Metrics.PaperWidth, p.state.Metrics.PaperHeight = p.paperW, p.paperH
	}
}

// GridSize returns the resolved grid size of the loaded puzzle.
func (p *Puzzle) GridSize() GridSize { return p.size }

// SetGridSize re-splits the image when spec resolves to a different size.
func (p *Puzzle) SetGridSize(ctx context.Context, spec GridSpec) error {
	size, err := ResolveGridSize(spec, p.cfg.Presets)
	if err != nil {
		Logger().Warn("puzzle: grid size fallback", "err", err)
	}
	p.cfg.Grid = spec
	if size == p.size && p.ready {
		return nil
	}
	return p.Reinit(ctx)
}

// Forced reports whether the most recent resolve was forced by Resolve
// rather than reached by dragging.
func (p *Puzzle) Forced() bool { return p.forced }

// Seed is the seed of the current layout.
func (p *Puzzle) Seed() uint64 { return p.seed }

// Element returns the piece at key "x-y".
func (p *Puzzle) Element(xy string) *Piece {
	if p.state == nil {
		return nil
	}
	return p.state.Element(xy)
}

// Reinit tears the puzzle down and rebuilds it from the same image.
func (p *Puzzle) Reinit(ctx context.Context) error {
	p.Destroy()
	p.seed = p.nextSeed()
	return p.Init(ctx, p.src)
}

// Shuffle scatters the pieces again.
func (p *Puzzle) Shuffle() {
	if p.state == nil {
		return
	}
	if p.drag != nil {
		p.drag.Cancel()
	}
	p.state.Shuffle(p.rng)
}

// Resolve force-completes the puzzle.
func (p *Puzzle) Resolve() {
	if p.state == nil {
		return
	}
	if p.drag != nil {
		p.drag.Cancel()
	}
	p.state.ForceResolve()
	p.forced = true
	Logger().Info("puzzle: resolved", "id", p.id, "forced", true)
	if p.callbacks.Resolve != nil {
		p.callbacks.Resolve(p)
	}
}

// Destroy releases every piece and the rendering surface.
func (p *Puzzle) Destroy() {
	if p.drag != nil {
		p.drag.Cancel()
	}
	p.surface.Detach()
	p.state = nil
	p.drag = nil
	p.ready = false

	Logger().Info("puzzle: destroyed", "id", p.id)
	if p.callbacks.Destroy != nil {
		p.callbacks.Destroy(p)
	}
}

// HitTest returns the top-most draggable node under the screen point.
func (p *Puzzle) HitTest(x, y float64) Node {
	if p.state == nil {
		return nil
	}
	return p.state.HitTest(x, y)
}

// Node finds a top-level node by id.
func (p *Puzzle) Node(id string) Node {
	if p.state == nil {
		return nil
	}
	return p.state.lookup(id)
}

// Dragging reports whether a gesture is active.
func (p *Puzzle) Dragging() bool {
	return p.drag != nil && p.drag.Dragging()
}

// StartDrag begins a gesture on n.
func (p *Puzzle) StartDrag(n Node, x, y float64) error {
	if !p.ready {
		return ErrNotReady
	}
	return p.drag.Start(n, x, y)
}

// MoveDrag moves the active gesture to (x, y).
func (p *Puzzle) MoveDrag(x, y float64) error {
	if !p.ready {
		return ErrNotReady
	}
	return p.drag.Move(x, y)
}

// EndDrag finishes the active gesture and fires Resolve on completion.
func (p *Puzzle) EndDrag() (Release, error) {
	if !p.ready {
		return Release{}, ErrNotReady
	}
	rel, err := p.drag.End()
	if err != nil {
		return rel, err
	}
	if rel.Resolved {
		p.forced = false
		Logger().Info("puzzle: resolved", "id", p.id, "forced", false)
		if p.callbacks.Resolve != nil {
			p.callbacks.Resolve(p)
		}
	}
	return rel, nil
}

// IsGestureError reports whether err is a rejected gesture call.
func IsGestureError(err error) bool {
	return errors.Is(err, ErrGestureActive) || errors.Is(err, ErrNoGesture) || errors.Is(err, ErrNotDraggable)
}
