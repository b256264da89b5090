// Command snapshot builds a puzzle without a window and writes the board
// to a PNG.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"os"
	"time"

	"github.com/milk9111/jigsaw/assets"
	"github.com/milk9111/jigsaw/prefabs"
	"github.com/milk9111/jigsaw/puzzle"
	"github.com/milk9111/jigsaw/raster"
)

// scaledSurface keeps the picture at paper scale; the board is drawn in
// one pass at the end.
type scaledSurface struct {
	scaled *image.RGBA
}

func (s *scaledSurface) Attach(img image.Image, m puzzle.Metrics) error {
	scaled, err := raster.Scale(img, m)
	if err != nil {
		return err
	}
	s.scaled = scaled
	return nil
}

func (s *scaledSurface) AddPiece(*puzzle.Piece) error { return nil }

func (s *scaledSurface) Detach() { s.scaled = nil }

func main() {
	src := flag.String("image", "", "image to split: embedded asset, file path or http(s) URL")
	grid := flag.String("grid", "", "grid preset name or <x>x<y>")
	code := flag.String("code", "", "share code to reproduce, overrides -grid and -seed")
	seed := flag.Uint64("seed", 0, "layout seed, 0 for random")
	solve := flag.Bool("solve", false, "draw the solved picture instead of the shuffled board")
	out := flag.String("o", "board.png", "output PNG")
	timeout := flag.Duration("timeout", 30*time.Second, "image download timeout")
	flag.Parse()

	spec, err := prefabs.LoadPuzzleSpec()
	if err != nil {
		log.Fatal(err)
	}
	cfg := spec.Config()
	if *grid != "" {
		cfg.Grid = prefabs.ParseGridSpec(*grid)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *code != "" {
		size, codeSeed, err := puzzle.ParseShareCode(*code)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Grid = puzzle.GridSpec{Size: size}
		cfg.Seed = codeSeed
	}
	if *src == "" {
		*src = spec.Image
	}

	surface := &scaledSurface{}
	p, err := puzzle.New(spec.Name, cfg, assets.NewLoader(".", prefabs.DiskRoot), surface, puzzle.Callbacks{})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := p.Init(ctx, *src); err != nil {
		log.Fatal(err)
	}
	if *solve {
		p.Resolve()
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := raster.WriteBoardPNG(f, surface.scaled, p.State(), spec.RasterStyle()); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%s, code %s)", *out, p.GridSize(), p.ShareCode())
}
