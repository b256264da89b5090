// Package render bridges puzzle pieces to ebiten images held by the ECS
// world.
package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/ecs/component"
	"github.com/milk9111/jigsaw/puzzle"
	"github.com/milk9111/jigsaw/raster"
)

// ImageFactory uploads a CPU image to the GPU. Tests substitute one that
// returns nil, which needs no graphics driver.
type ImageFactory func(image.Image) *ebiten.Image

// Surface implements puzzle.Surface by rasterizing each piece once and
// spawning a sprite entity for it.
type Surface struct {
	world    *ecs.World
	style    raster.Style
	newImage ImageFactory

	scaled  *image.RGBA
	metrics puzzle.Metrics
	paper   *ebiten.Image
}

// NewSurface returns a surface that spawns into w.
func NewSurface(w *ecs.World, style raster.Style) *Surface {
	return &Surface{world: w, style: style, newImage: ebiten.NewImageFromImage}
}

// SetImageFactory replaces how sprite images are created.
func (s *Surface) SetImageFactory(f ImageFactory) {
	if f != nil {
		s.newImage = f
	}
}

// SetStyle changes the stroke and paper colours of pieces added later.
func (s *Surface) SetStyle(style raster.Style) {
	s.style = style
}

func (s *Surface) Style() raster.Style {
	return s.style
}

func (s *Surface) Attach(img image.Image, m puzzle.Metrics) error {
	s.Detach()
	scaled, err := raster.Scale(img, m)
	if err != nil {
		return fmt.Errorf("render: attach: %w", err)
	}
	s.scaled = scaled
	s.metrics = m
	s.paper = s.newImage(raster.Paper(m, s.style))
	return nil
}

func (s *Surface) AddPiece(p *puzzle.Piece) error {
	if s.scaled == nil {
		return fmt.Errorf("render: add piece %s: %w", p.ID(), raster.ErrEmptySource)
	}
	sprite, err := raster.RenderPiece(s.scaled, p, s.metrics, s.style)
	if err != nil {
		return err
	}
	_, err = ecs.SpawnPiece(s.world, p, &component.Sprite{
		Image:   s.newImage(sprite.Image),
		Source:  sprite.Image,
		OffsetX: sprite.X,
		OffsetY: sprite.Y,
	})
	return err
}

func (s *Surface) Detach() {
	for _, sprite := range ecs.ClearPieces(s.world) {
		if sprite.Image != nil {
			sprite.Image.Deallocate()
		}
	}
	if s.paper != nil {
		s.paper.Deallocate()
	}
	s.paper = nil
	s.scaled = nil
}

// Scaled is the picture at paper scale, nil while detached.
func (s *Surface) Scaled() *image.RGBA {
	return s.scaled
}

// Paper is the background image, nil while detached or without a GPU
// image factory.
func (s *Surface) Paper() *ebiten.Image {
	return s.paper
}

// Metrics of the attached picture.
func (s *Surface) Metrics() puzzle.Metrics {
	return s.metrics
}
