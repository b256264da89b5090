package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jigsaw/common"
	"github.com/milk9111/jigsaw/puzzle"
)

func main() {
	debug := flag.Bool("debug", false, "log puzzle events and show frame stats")
	image := flag.String("image", "", "image to split: embedded asset, file path or http(s) URL")
	grid := flag.String("grid", "", "grid preset name or <x>x<y>")
	seed := flag.Uint64("seed", 0, "layout seed, 0 for random")
	flag.Parse()

	if *debug {
		puzzle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("jigsaw")

	game, err := NewGame(Options{Image: *image, Grid: *grid, Seed: *seed, Debug: *debug})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
