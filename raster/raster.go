// Package raster renders puzzle pieces on the CPU with gg. It produces
// per-piece sprites for interactive surfaces and whole-board pictures for
// snapshots.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/milk9111/jigsaw/puzzle"
	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
)

var ErrEmptySource = errors.New("raster: source image is empty")

// Style controls how outlines and the paper are painted.
type Style struct {
	Stroke      color.Color
	Paper       color.Color
	ShadowColor color.Color
	// ShadowOffset is the screen-space drop of the shadow cue.
	ShadowOffset float64
}

// DefaultStyle is the look used by the game and the snapshot tool.
func DefaultStyle() Style {
	return Style{
		Stroke:       colornames.Black,
		Paper:        colornames.Whitesmoke,
		ShadowColor:  color.NRGBA{A: 0x60},
		ShadowOffset: 4,
	}
}

// Scale resamples src to the puzzle's scaled image size.
func Scale(src image.Image, m puzzle.Metrics) (*image.RGBA, error) {
	w, h := int(math.Round(m.Width)), int(math.Round(m.Height))
	if src == nil || src.Bounds().Empty() || w <= 0 || h <= 0 {
		return nil, ErrEmptySource
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Sprite is the rendered image of one piece. X and Y place the image's
// top-left corner in solved puzzle coordinates.
type Sprite struct {
	Image *image.RGBA
	X, Y  float64
}

// RenderPiece clips the scaled picture by the piece outline and strokes
// the outline on top.
func RenderPiece(scaled *image.RGBA, p *puzzle.Piece, m puzzle.Metrics, style Style) (*Sprite, error) {
	if scaled == nil {
		return nil, ErrEmptySource
	}
	bb := p.OutlineBounds()
	margin := math.Ceil(m.Stroke) + 1
	x0 := math.Floor(bb.L) - margin
	y0 := math.Floor(bb.B) - margin
	w := int(math.Ceil(bb.R)+margin-x0) + 1
	h := int(math.Ceil(bb.T)+margin-y0) + 1

	dc := gg.NewContext(w, h)
	defer dc.Close()

	toSprite := gg.Translate(-x0, -y0)
	if err := fillPiece(dc, scaled, p, toSprite, m.Padding); err != nil {
		return nil, err
	}
	if err := strokePiece(dc, p, toSprite, m.Stroke, style.Stroke); err != nil {
		return nil, err
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		img = toRGBA(dc.Image())
	}
	puzzle.Logger().Debug("raster: piece", "id", p.ID(), "w", w, "h", h)
	return &Sprite{Image: img, X: x0, Y: y0}, nil
}

// RenderBoard paints the paper and every node of the state's layers at
// their current positions, bottom to top.
func RenderBoard(scaled *image.RGBA, s *puzzle.State, style Style) (image.Image, error) {
	dc, err := drawBoard(scaled, s, style)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// Paper returns a blank sheet of the paper size.
func Paper(m puzzle.Metrics, style Style) image.Image {
	dc := newPaper(m, style)
	defer dc.Close()
	return dc.Image()
}

// RenderOutlines strokes the outline of every piece at its solved
// position on a blank paper.
func RenderOutlines(s *puzzle.State, style Style) (image.Image, error) {
	dc := newPaper(s.Metrics, style)
	defer dc.Close()
	for _, p := range s.Pieces() {
		if err := strokePiece(dc, p, gg.Identity(), s.Metrics.Stroke, style.Stroke); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

// WriteBoardPNG renders the board and encodes it as PNG.
func WriteBoardPNG(w io.Writer, scaled *image.RGBA, s *puzzle.State, style Style) error {
	dc, err := drawBoard(scaled, s, style)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func drawBoard(scaled *image.RGBA, s *puzzle.State, style Style) (*gg.Context, error) {
	if scaled == nil {
		return nil, ErrEmptySource
	}
	dc := newPaper(s.Metrics, style)
	for _, layer := range []*puzzle.Layer{s.Elements(), s.Move()} {
		for _, n := range layer.Nodes() {
			if err := drawNode(dc, scaled, s.Metrics, n, style); err != nil {
				dc.Close()
				return nil, err
			}
		}
	}
	return dc, nil
}

func newPaper(m puzzle.Metrics, style Style) *gg.Context {
	dc := gg.NewContext(int(math.Ceil(m.PaperWidth)), int(math.Ceil(m.PaperHeight)))
	dc.ClearWithColor(gg.FromColor(style.Paper))
	return dc
}

func drawNode(dc *gg.Context, scaled *image.RGBA, m puzzle.Metrics, n puzzle.Node, style Style) error {
	pieces := members(n)
	if n.Shadow() {
		drop := gg.Translate(style.ShadowOffset, style.ShadowOffset)
		dc.SetColor(style.ShadowColor)
		for _, p := range pieces {
			trace(dc, p, drop.Multiply(p.Total()))
			if err := dc.Fill(); err != nil {
				return err
			}
		}
	}
	for _, p := range pieces {
		if err := fillPiece(dc, scaled, p, p.Total(), m.Padding); err != nil {
			return err
		}
		if err := strokePiece(dc, p, p.Total(), m.Stroke, style.Stroke); err != nil {
			return err
		}
	}
	return nil
}

func members(n puzzle.Node) []*puzzle.Piece {
	switch n := n.(type) {
	case *puzzle.Piece:
		return []*puzzle.Piece{n}
	case *puzzle.Group:
		return n.Members()
	}
	return nil
}

func fillPiece(dc *gg.Context, scaled *image.RGBA, p *puzzle.Piece, total gg.Matrix, pad float64) error {
	dc.SetFillPattern(newImagePattern(scaled, total, pad))
	trace(dc, p, total)
	return dc.Fill()
}

func strokePiece(dc *gg.Context, p *puzzle.Piece, total gg.Matrix, width float64, c color.Color) error {
	if width <= 0 {
		return nil
	}
	dc.SetColor(c)
	dc.SetLineWidth(width)
	trace(dc, p, total)
	return dc.Stroke()
}

// trace appends the piece outline, mapped through total, to the context's
// current path.
func trace(dc *gg.Context, p *puzzle.Piece, total gg.Matrix) {
	dc.Push()
	defer dc.Pop()
	dc.SetTransform(total)
	for _, el := range p.Outline().Elements() {
		switch el := el.(type) {
		case gg.MoveTo:
			dc.MoveTo(el.Point.X, el.Point.Y)
		case gg.CubicTo:
			dc.CubicTo(el.Control1.X, el.Control1.Y, el.Control2.X, el.Control2.Y, el.Point.X, el.Point.Y)
		case gg.Close:
			dc.ClosePath()
		}
	}
}

func toRGBA(src image.Image) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
	return dst
}
