package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a rasterized piece. OffsetX and OffsetY place the image's top
// left corner in the piece's untransformed outline space.
type Sprite struct {
	Image   *ebiten.Image
	Source  *image.RGBA
	OffsetX float64
	OffsetY float64
	Hidden  bool
}

var SpriteComponent = NewComponent[Sprite]()
