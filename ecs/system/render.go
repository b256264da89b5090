package system

import (
	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/ecs/component"
	"github.com/milk9111/jigsaw/ecs/render"
	"github.com/milk9111/jigsaw/puzzle"
)

// RenderSystem draws the paper and every piece sprite in layer order.
type RenderSystem struct {
	surface *render.Surface
}

func NewRenderSystem(s *render.Surface) *RenderSystem {
	return &RenderSystem{surface: s}
}

// Update is a no-op; drawing happens in Draw.
func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil || w.Puzzle() == nil {
		return
	}
	state := w.Puzzle().State()
	if state == nil {
		return
	}

	if paper := r.surface.Paper(); paper != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM = ToGeoM(state.Elements().Transform())
		screen.DrawImage(paper, op)
	}

	style := r.surface.Style()
	for _, layer := range []*puzzle.Layer{state.Elements(), state.Move()} {
		for _, n := range layer.Nodes() {
			pieces := nodePieces(n)
			if n.Shadow() && style.ShadowColor != nil {
				for _, p := range pieces {
					r.drawPiece(w, screen, p, func(op *ebiten.DrawImageOptions) {
						op.GeoM.Translate(style.ShadowOffset, style.ShadowOffset)
						op.ColorScale.ScaleWithColor(style.ShadowColor)
					})
				}
			}
			for _, p := range pieces {
				r.drawPiece(w, screen, p, nil)
			}
		}
	}
}

func (r *RenderSystem) drawPiece(w *ecs.World, screen *ebiten.Image, p *puzzle.Piece, adjust func(*ebiten.DrawImageOptions)) {
	e, ok := ecs.PieceEntity(w, p.ID())
	if !ok {
		return
	}
	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || s.Image == nil || s.Hidden {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(s.OffsetX, s.OffsetY)
	op.GeoM.Concat(ToGeoM(p.Total()))
	if adjust != nil {
		adjust(op)
	}
	screen.DrawImage(s.Image, op)
}

func nodePieces(n puzzle.Node) []*puzzle.Piece {
	switch n := n.(type) {
	case *puzzle.Piece:
		return []*puzzle.Piece{n}
	case *puzzle.Group:
		return n.Members()
	}
	return nil
}

// ToGeoM converts a gg affine matrix into ebiten's GeoM.
func ToGeoM(m gg.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.B)
	g.SetElement(0, 2, m.C)
	g.SetElement(1, 0, m.D)
	g.SetElement(1, 1, m.E)
	g.SetElement(1, 2, m.F)
	return g
}
