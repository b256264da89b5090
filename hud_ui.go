package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/jigsaw/common"
	"github.com/milk9111/jigsaw/ecs/system"
	"golang.org/x/image/font/basicfont"
)

// HUD is the toolbar across the top of the window plus the banner shown
// once the puzzle is solved.
type HUD struct {
	ui     *ebitenui.UI
	game   *Game
	status *widget.Text
	banner *widget.Container
}

// NewHUD builds the toolbar from colored nine-slices and the built-in
// basic font so no theme assets are needed.
func NewHUD(g *Game) *HUD {
	h := &HUD{game: g}

	barImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth, common.HUDHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(96, 30),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	w := g.world
	bar.AddChild(button("Shuffle", func() { h.report(system.Shuffle(w)) }))
	bar.AddChild(button("Solve", func() { h.report(system.Resolve(w)) }))
	for _, name := range g.spec.PresetNames() {
		bar.AddChild(button(strings.ToUpper(name[:1])+name[1:], func() { h.report(system.SetPreset(w, name)) }))
	}
	bar.AddChild(button("Copy code", func() {
		_, err := system.CopyCode(w, g.clip)
		h.report(err)
	}))
	bar.AddChild(button("Paste code", func() { h.report(system.PasteCode(w, g.clip)) }))

	h.status = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	bar.AddChild(h.status)

	title := widget.NewText(
		widget.TextOpts.Text("Solved!", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	again := button("Play again", func() { h.report(system.Shuffle(w)) })

	h.banner = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	h.banner.AddChild(title)
	h.banner.AddChild(again)
	h.banner.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	root.AddChild(h.banner)
	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) report(err error) {
	if err != nil {
		h.game.world.SetStatus(err.Error())
	}
}

func (h *HUD) Update() {
	h.status.Label = h.game.world.Status()
	solved := false
	if s := h.game.puzzle.State(); s != nil {
		solved = s.Resolved
	}
	if solved {
		h.banner.GetWidget().Visibility = widget.Visibility_Show
	} else {
		h.banner.GetWidget().Visibility = widget.Visibility_Hide
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
