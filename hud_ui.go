package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/racer/common"
	"github.com/milk9111/racer/ecs/system"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	speedBarX      = 24
	speedBarY      = common.BaseHeight - 48
	speedBarWidth  = 240
	speedBarHeight = 18
)

var (
	textColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	speedBarBack  = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	speedBarFront = color.NRGBA{R: 0x40, G: 0xd0, B: 0x60, A: 0xff}
)

// hudFace loads Go Regular at size, falling back to the built-in bitmap font.
func hudFace(size float64) ebtext.Face {
	s, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("hud: load font: %v", err)
		return ebtext.NewGoXFace(basicfont.Face7x13)
	}
	return &ebtext.GoTextFace{Source: s, Size: size}
}

// HUD shows lap, place and standings in a corner panel plus a speed bar.
type HUD struct {
	ui        *ebitenui.UI
	lap       *widget.Text
	place     *widget.Text
	standings *widget.Text
	banner    *widget.Text
	fill      float64
}

func NewHUD() *HUD {
	face := hudFace(20)
	small := hudFace(14)
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 140})

	h := &HUD{}
	h.lap = widget.NewText(widget.TextOpts.Text("", &face, textColor))
	h.place = widget.NewText(widget.TextOpts.Text("", &face, textColor))
	h.standings = widget.NewText(widget.TextOpts.Text("", &small, textColor))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.lap)
	panel.AddChild(h.place)
	panel.AddChild(h.standings)

	big := hudFace(48)
	h.banner = widget.NewText(
		widget.TextOpts.Text("", &big, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter})),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	root.AddChild(h.banner)
	h.ui = &ebitenui.UI{Container: root}
	return h
}

// Update copies the HUD state into the widgets. countdown is the number of
// ticks left before the start, zero once racing.
func (h *HUD) Update(state system.HUDState, countdown int) {
	h.lap.Label = state.LapText()
	h.place.Label = state.PlaceText()
	h.standings.Label = standingsText(state)
	h.fill = state.Fill

	switch {
	case state.Winner != "":
		h.banner.Label = fmt.Sprintf("%s wins!", state.Winner)
	case countdown > 0:
		h.banner.Label = fmt.Sprintf("%d", countdown/ebiten.DefaultTPS+1)
	default:
		h.banner.Label = ""
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
	vector.FillRect(screen, speedBarX, speedBarY, speedBarWidth, speedBarHeight, speedBarBack, false)
	vector.FillRect(screen, speedBarX, speedBarY, float32(speedBarWidth*h.fill), speedBarHeight, speedBarFront, false)
	vector.StrokeRect(screen, speedBarX, speedBarY, speedBarWidth, speedBarHeight, 1, textColor, false)
}

func standingsText(state system.HUDState) string {
	var b strings.Builder
	for _, s := range state.Standings {
		fmt.Fprintf(&b, "%d. %s  %d\n", s.Place, s.Name, s.Laps)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewPauseUI builds a centered pause menu with Resume, Restart and Quit.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, textColor),
		widget.TextOpts.WidgetOpts(center),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Restart", func() {
		g.restart()
		g.paused = false
	}))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
