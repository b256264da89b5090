package system

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/ecs/render"
	"github.com/milk9111/jigsaw/puzzle"
	"github.com/milk9111/jigsaw/raster"
)

type pictureLoader struct{}

func (pictureLoader) Load(context.Context, string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)
	return img, nil
}

// framePointer replays one Pointer per Pointer call.
type framePointer struct {
	frames []Pointer
}

func (f *framePointer) Pointer() Pointer {
	if len(f.frames) == 0 {
		return Pointer{}
	}
	p := f.frames[0]
	f.frames = f.frames[1:]
	return p
}

type frameKeys map[ebiten.Key]bool

func (k frameKeys) JustPressed(key ebiten.Key) bool {
	pressed := k[key]
	delete(k, key)
	return pressed
}

// probe copies every event seen during an update.
type probe struct {
	seen []ecs.Event
}

func (p *probe) Update(w *ecs.World) {
	p.seen = append(p.seen, w.Events().Items()...)
}

func (p *probe) types() []ecs.EventType {
	var out []ecs.EventType
	for _, ev := range p.seen {
		out = append(out, ev.Type)
	}
	return out
}

type harness struct {
	world   *ecs.World
	puzzle  *puzzle.Puzzle
	pointer *framePointer
	keys    frameKeys
	clip    *MemoryClipboard
	probe   *probe
}

func newHarness(t *testing.T, scripts map[string]string) *harness {
	t.Helper()
	w := ecs.NewWorld()
	surface := render.NewSurface(w, raster.DefaultStyle())
	surface.SetImageFactory(func(image.Image) *ebiten.Image { return nil })

	cfg := puzzle.Config{
		Width: 220, Height: 220, Padding: 10, Seed: 5,
		Grid:    puzzle.GridSpec{Size: puzzle.GridSize{X: 2, Y: 2}},
		Presets: map[string]puzzle.GridSize{"big": {X: 2, Y: 2}, "medium": {X: 3, Y: 3}},
	}
	p, err := puzzle.New("sys", cfg, pictureLoader{}, surface, Callbacks(w))
	if err != nil {
		t.Fatal(err)
	}
	w.SetPuzzle(p)

	h := &harness{world: w, puzzle: p, pointer: &framePointer{}, keys: frameKeys{}, clip: &MemoryClipboard{}, probe: &probe{}}
	input := NewInputSystem(h.clip, []string{"big", "medium"})
	input.SetSources(h.pointer, h.keys)

	hooks := map[string]string{}
	for ev := range scripts {
		hooks[ev] = ev + ".tengo"
	}
	load := func(path string) ([]byte, error) {
		for ev, src := range scripts {
			if path == ev+".tengo" {
				return []byte(src), nil
			}
		}
		return nil, errors.New("no script " + path)
	}

	if _, err := SpawnSounds(w, nil, nil); err != nil {
		t.Fatal(err)
	}
	w.AddSystem(input)
	w.AddSystem(h.probe)
	w.AddSystem(NewHookSystem(hooks, load))
	w.AddSystem(NewAudioSystem())

	if err := p.Init(context.Background(), "picture"); err != nil {
		t.Fatal(err)
	}
	return h
}

// spread moves every piece far apart so hit tests are unambiguous.
func (h *harness) spread() {
	for i, piece := range h.puzzle.State().Pieces() {
		piece.SetLocal(gg.Translate(float64(i+1)*10000, 0))
	}
}

// centre is the screen position of a piece's cell centre.
func (h *harness) centre(p *puzzle.Piece) gg.Point {
	m := h.puzzle.State().Metrics
	w, ht := m.PieceSize(h.puzzle.GridSize())
	c := gg.Point{X: m.Padding + (float64(p.Cell().X)+0.5)*w, Y: m.Padding + (float64(p.Cell().Y)+0.5)*ht}
	return p.Total().TransformPoint(c)
}

func TestInitEventRunsHook(t *testing.T) {
	h := newHarness(t, map[string]string{
		"init": `
fmt := import("fmt")
notify(fmt.sprintf("%d:%dx%d:%s", event.pieces, event.grid_x, event.grid_y, event.share))
`,
	})
	h.world.Update()

	if diff := cmp.Diff([]ecs.EventType{ecs.EventInit}, h.probe.types()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	want := "4:2x2:" + h.puzzle.ShareCode()
	if got := h.world.Status(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestDragMergesAndNotifies(t *testing.T) {
	h := newHarness(t, map[string]string{
		"merge": `
notify(event.kind + " " + event.node + "+" + event.neighbor)
play("snap")
`,
	})
	h.world.Update()
	h.spread()

	s := h.puzzle.State()
	mover, target := s.Element("1-0"), s.Element("0-0")
	start := h.centre(mover)
	mx, my := puzzle.Translation(mover.Total())
	tx, ty := puzzle.Translation(target.Total())
	end := gg.Point{X: start.X + tx - mx, Y: start.Y + ty - my}

	h.pointer.frames = []Pointer{
		{X: start.X, Y: start.Y, Pressed: true, Down: true},
		{X: end.X, Y: end.Y, Down: true},
		{X: end.X, Y: end.Y, Released: true},
	}
	h.world.Update()
	if !h.puzzle.Dragging() {
		t.Fatal("press on a piece should start a drag")
	}
	h.world.Update()
	h.world.Update()
	if h.puzzle.Dragging() {
		t.Fatal("release should end the drag")
	}

	var merges []ecs.MergeEvent
	for _, ev := range h.probe.seen {
		if m, ok := ev.Data.(ecs.MergeEvent); ok {
			merges = append(merges, m)
		}
	}
	if len(merges) != 1 {
		t.Fatalf("merge events = %+v", merges)
	}
	got := merges[0]
	if got.Node != "sys-1-0" || got.Neighbor != "sys-0-0" || got.Kind != puzzle.MergePieces || got.Size != 2 || got.Group == "" {
		t.Fatalf("merge event = %+v", got)
	}
	if st := h.world.Status(); st != "pieces sys-1-0+sys-0-0" {
		t.Fatalf("status = %q", st)
	}
	if s.Components() != 3 {
		t.Fatalf("components = %d, want 3", s.Components())
	}
}

func TestPressOnPaperDoesNothing(t *testing.T) {
	h := newHarness(t, nil)
	h.spread()
	h.pointer.frames = []Pointer{{X: -500, Y: -500, Pressed: true, Down: true}}
	h.world.Update()
	if h.puzzle.Dragging() {
		t.Fatal("press on empty paper started a drag")
	}
}

func TestKeyCommands(t *testing.T) {
	t.Run("shuffle", func(t *testing.T) {
		h := newHarness(t, nil)
		h.world.Update()
		h.keys[ebiten.KeyS] = true
		h.world.Update()
		if h.world.Status() != "Shuffled" {
			t.Fatalf("status = %q", h.world.Status())
		}
		if diff := cmp.Diff([]ecs.EventType{ecs.EventInit, ecs.EventShuffle}, h.probe.types()); diff != "" {
			t.Fatalf("events (-want +got):\n%s", diff)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		h := newHarness(t, map[string]string{"resolve": `notify(event.forced ? "forced" : "solved")`})
		h.keys[ebiten.KeyR] = true
		h.world.Update()
		if !h.puzzle.State().Resolved {
			t.Fatal("R should resolve the puzzle")
		}
		if h.world.Status() != "forced" {
			t.Fatalf("status = %q", h.world.Status())
		}
		h.keys[ebiten.KeyR] = true
		h.world.Update()
		n := 0
		for _, ty := range h.probe.types() {
			if ty == ecs.EventResolve {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("resolve events = %d, want 1", n)
		}
	})

	t.Run("preset", func(t *testing.T) {
		h := newHarness(t, nil)
		h.world.Update()
		h.keys[ebiten.Key2] = true
		h.world.Update()
		if got := h.puzzle.GridSize(); got != (puzzle.GridSize{X: 3, Y: 3}) {
			t.Fatalf("grid = %v, want 3x3", got)
		}
		if got := ecs.PieceCount(h.world); got != 9 {
			t.Fatalf("PieceCount = %d, want 9", got)
		}
		want := []ecs.EventType{ecs.EventInit, ecs.EventDestroy, ecs.EventInit}
		if diff := cmp.Diff(want, h.probe.types()); diff != "" {
			t.Fatalf("events (-want +got):\n%s", diff)
		}
	})

	t.Run("copy_paste", func(t *testing.T) {
		h := newHarness(t, nil)
		h.keys[ebiten.KeyC] = true
		h.world.Update()
		code := h.puzzle.ShareCode()
		if got, _ := h.clip.ReadText(); got != code {
			t.Fatalf("clipboard = %q, want %q", got, code)
		}

		if err := h.clip.WriteText("  3x3-ff  "); err != nil {
			t.Fatal(err)
		}
		h.keys[ebiten.KeyV] = true
		h.world.Update()
		if h.puzzle.GridSize() != (puzzle.GridSize{X: 3, Y: 3}) || h.puzzle.Seed() != 0xff {
			t.Fatalf("after paste grid=%v seed=%x", h.puzzle.GridSize(), h.puzzle.Seed())
		}

		if err := h.clip.WriteText("garbage"); err != nil {
			t.Fatal(err)
		}
		if err := PasteCode(h.world, h.clip); !errors.Is(err, puzzle.ErrBadShareCode) {
			t.Fatalf("PasteCode(garbage) = %v", err)
		}
		if h.puzzle.GridSize() != (puzzle.GridSize{X: 3, Y: 3}) {
			t.Fatal("bad code should keep the current layout")
		}
	})
}

func TestCommandsWithoutPuzzle(t *testing.T) {
	w := ecs.NewWorld()
	if err := Shuffle(w); !errors.Is(err, ErrNoPuzzle) {
		t.Fatalf("Shuffle = %v", err)
	}
	if err := Resolve(w); !errors.Is(err, ErrNoPuzzle) {
		t.Fatalf("Resolve = %v", err)
	}
	if _, err := CopyCode(w, &MemoryClipboard{}); !errors.Is(err, ErrNoPuzzle) {
		t.Fatalf("CopyCode = %v", err)
	}
}
