package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"reflect"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/jigsaw/assets"
	"github.com/milk9111/jigsaw/common"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/ecs/render"
	"github.com/milk9111/jigsaw/ecs/system"
	"github.com/milk9111/jigsaw/prefabs"
	"github.com/milk9111/jigsaw/puzzle"
)

// Options are the command-line overrides of puzzle.yaml.
type Options struct {
	Image string
	Grid  string
	Seed  uint64
	Debug bool
}

type Game struct {
	opts    Options
	spec    *prefabs.PuzzleSpec
	world   *ecs.World
	puzzle  *puzzle.Puzzle
	surface *render.Surface
	hooks   *system.HookSystem
	loader  *assets.Loader
	clip    system.Clipboard
	watcher *prefabs.Watcher
	hud     *HUD
	frames  int

	width, height float64
}

func NewGame(opts Options) (*Game, error) {
	spec, err := loadSpec(opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		spec:   spec,
		world:  ecs.NewWorld(),
		loader: assets.NewLoader(".", prefabs.DiskRoot),
		clip:   system.NewClipboard(),
		width:  common.BaseWidth,
		height: common.BaseHeight,
	}
	g.surface = render.NewSurface(g.world, spec.RasterStyle())
	g.hooks = system.NewHookSystem(spec.Hooks, nil)

	if _, err := system.SpawnSounds(g.world, spec.Audio, assets.LoadAudioPlayer); err != nil {
		return nil, err
	}

	g.world.AddSystem(system.NewInputSystem(g.clip, spec.PresetNames()))
	g.world.AddSystem(g.hooks)
	g.world.AddSystem(system.NewAudioSystem())
	g.world.AddSystem(system.NewRenderSystem(g.surface))

	if err := g.build(); err != nil {
		return nil, err
	}
	g.hud = NewHUD(g)

	if w, err := prefabs.NewWatcher(); err == nil {
		g.watcher = w
	} else if opts.Debug {
		log.Printf("hot reload disabled: %v", err)
	}
	return g, nil
}

func loadSpec(opts Options) (*prefabs.PuzzleSpec, error) {
	spec, err := prefabs.LoadPuzzleSpec()
	if err != nil {
		return nil, err
	}
	if opts.Image != "" {
		spec.Image = opts.Image
	}
	if opts.Grid != "" {
		spec.Grid = prefabs.GridSpec{GridSpec: prefabs.ParseGridSpec(opts.Grid)}
	}
	if opts.Seed != 0 {
		spec.Seed = opts.Seed
	}
	return spec, nil
}

// build replaces the puzzle with one made from the current spec.
func (g *Game) build() error {
	if g.puzzle != nil {
		g.puzzle.Destroy()
	}
	g.surface.SetStyle(g.spec.RasterStyle())
	p, err := puzzle.New(g.spec.Name, g.spec.Config(), g.loader, g.surface, system.Callbacks(g.world))
	if err != nil {
		return err
	}
	g.puzzle = p
	g.world.SetPuzzle(p)
	if err := p.Init(context.Background(), g.spec.Image); err != nil {
		return fmt.Errorf("load %s: %w", g.spec.Image, err)
	}
	g.fitView()
	return nil
}

// reload applies an edited puzzle.yaml. Image and grid changes go through
// the puzzle; anything else rebuilds it.
func (g *Game) reload() {
	spec, err := loadSpec(g.opts)
	if err != nil {
		log.Printf("reload %s: %v", prefabs.SpecFile, err)
		g.world.SetStatus("Config error, keeping current puzzle")
		return
	}
	old := g.spec
	g.spec = spec
	g.hooks.SetHooks(spec.Hooks)

	rest := func(s prefabs.PuzzleSpec) prefabs.PuzzleSpec {
		s.Image, s.Grid, s.Hooks, s.Audio = "", prefabs.GridSpec{}, nil, nil
		return s
	}
	ctx := context.Background()
	switch {
	case !reflect.DeepEqual(rest(*old), rest(*spec)):
		err = g.build()
	case old.Image != spec.Image:
		err = g.puzzle.SetImage(ctx, spec.Image)
	case old.Grid != spec.Grid:
		err = g.puzzle.SetGridSize(ctx, spec.Grid.GridSpec)
	}
	if err != nil {
		log.Printf("reload: %v", err)
		g.world.SetStatus(err.Error())
	}
	g.fitView()
}

// fitView scales the paper into the window below the HUD strip.
func (g *Game) fitView() {
	state := g.puzzle.State()
	if state == nil {
		return
	}
	pw, ph := g.puzzle.Size()
	view := gg.Translate(0, common.HUDHeight).Multiply(common.FitView(pw, ph, g.width, g.height-common.HUDHeight, 1))
	state.Elements().SetTransform(view)
	if !g.puzzle.Dragging() {
		state.Move().SetTransform(view)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	alive := g.watcher.Poll(func(path string) {
		if prefabs.IsScript(path) {
			g.hooks.Invalidate(path)
			g.world.SetStatus("Reloaded " + path)
			return
		}
		g.reload()
	}, func(err error) {
		log.Printf("watch: %v", err)
	})
	if !alive {
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()
	g.hud.Update()
	g.world.Update()
	g.fitView()
	return nil
}

var background = color.NRGBA{R: 0x2b, G: 0x2d, B: 0x31, A: 0xff}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.world.Draw(screen)
	g.hud.Draw(screen)
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  pieces: %d  groups: %d",
			ebiten.ActualFPS(), ecs.PieceCount(g.world), g.components()), 8, int(g.height)-20)
	}
}

func (g *Game) components() int {
	if s := g.puzzle.State(); s != nil {
		return s.Components()
	}
	return 0
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// Close stops hot reload and releases the puzzle.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.puzzle.Destroy()
}
