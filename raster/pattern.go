package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// imagePattern fills device pixels from the scaled source picture. inv maps
// a device point back into solved puzzle coordinates; the picture's top-left
// sits at (pad, pad) in that space.
type imagePattern struct {
	img *image.RGBA
	inv gg.Matrix
	pad float64
}

func newImagePattern(img *image.RGBA, total gg.Matrix, pad float64) *imagePattern {
	return &imagePattern{img: img, inv: total.Invert(), pad: pad}
}

func (p *imagePattern) ColorAt(x, y float64) gg.RGBA {
	q := p.inv.TransformPoint(gg.Point{X: x, Y: y})
	px, py := int(math.Floor(q.X-p.pad)), int(math.Floor(q.Y-p.pad))
	if !(image.Point{X: px, Y: py}).In(p.img.Rect) {
		return gg.Transparent
	}
	c := color.NRGBAModel.Convert(p.img.RGBAAt(px, py)).(color.NRGBA)
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
