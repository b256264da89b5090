// Command outline previews the piece outlines of a generated grid, or
// writes them to a PNG with -png.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jigsaw/prefabs"
	"github.com/milk9111/jigsaw/puzzle"
	"github.com/milk9111/jigsaw/raster"
)

type options struct {
	grid          puzzle.GridSpec
	width, height float64
	padding       float64
	stroke        float64
}

// outlines renders the solved outlines of a fresh grid for seed.
func outlines(opts options, seed uint64) (image.Image, puzzle.GridSize, error) {
	size, err := puzzle.ResolveGridSize(opts.grid, puzzle.DefaultPresets())
	if err != nil {
		log.Printf("%v", err)
	}
	m := puzzle.Metrics{
		Ratio:       1,
		Width:       opts.width,
		Height:      opts.height,
		Padding:     opts.padding,
		Stroke:      opts.stroke,
		PaperWidth:  opts.width + 2*opts.padding,
		PaperHeight: opts.height + 2*opts.padding,
	}
	cells := puzzle.GenerateCells(size, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	state := puzzle.NewState("outline", size, m, cells, false)
	img, err := raster.RenderOutlines(state, raster.DefaultStyle())
	return img, size, err
}

type Game struct {
	opts  options
	seed  uint64
	size  puzzle.GridSize
	image *ebiten.Image
}

func (g *Game) regenerate() error {
	img, size, err := outlines(g.opts, g.seed)
	if err != nil {
		return err
	}
	if g.image != nil {
		g.image.Deallocate()
	}
	g.image = ebiten.NewImageFromImage(img)
	g.size = size
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.seed = rand.Uint64()
		return g.regenerate()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := g.image.Bounds().Dx(), g.image.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(w-iw)/2, float64(h-ih)/2)
	screen.DrawImage(g.image, op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  seed %x  (space: new seed)", g.size, g.seed))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	grid := flag.String("grid", "big", "grid preset name or <x>x<y>")
	width := flag.Float64("w", 640, "image width")
	height := flag.Float64("h", 480, "image height")
	padding := flag.Float64("pad", 40, "paper padding")
	stroke := flag.Float64("stroke", 2, "outline width")
	seed := flag.Uint64("seed", 0, "tab seed, 0 for random")
	out := flag.String("png", "", "write the outlines to this PNG instead of opening a window")
	flag.Parse()

	opts := options{
		grid:    prefabs.ParseGridSpec(*grid),
		width:   *width,
		height:  *height,
		padding: *padding,
		stroke:  *stroke,
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}

	if *out != "" {
		img, _, err := outlines(opts, *seed)
		if err != nil {
			log.Fatal(err)
		}
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := raster.EncodePNG(f, img); err != nil {
			log.Fatal(err)
		}
		return
	}

	g := &Game{opts: opts, seed: *seed}
	if err := g.regenerate(); err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(int(opts.width+2*opts.padding)+40, int(opts.height+2*opts.padding)+40)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Outline Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
