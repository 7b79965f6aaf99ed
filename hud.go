package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HudStatus is what the overlay shows for one tick.
type HudStatus struct {
	Session     string
	XR          bool
	Trigger     bool
	Hovered     []string
	Selected    []string
	MultiSelect bool
	LastEvent   string
}

// Hud is a top-left panel of text rows describing the session and picking
// state.
type Hud struct {
	UI *ebitenui.UI

	session  *widget.Text
	trigger  *widget.Text
	hovered  *widget.Text
	selected *widget.Text
	event    *widget.Text
}

func NewHud() *Hud {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	textColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	row := func() *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", &face, textColor),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
		)
	}

	h := &Hud{
		session:  row(),
		trigger:  row(),
		hovered:  row(),
		selected: row(),
		event:    row(),
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/4, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.session)
	panel.AddChild(h.trigger)
	panel.AddChild(h.hovered)
	panel.AddChild(h.selected)
	panel.AddChild(h.event)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.UI = &ebitenui.UI{Container: root}
	return h
}

func (h *Hud) Refresh(st HudStatus) {
	labels := hudLabels(st)
	for i, t := range []*widget.Text{h.session, h.trigger, h.hovered, h.selected, h.event} {
		t.Label = labels[i]
	}
}

func hudLabels(st HudStatus) [5]string {
	xrState := "off"
	if st.XR {
		xrState = "on"
	}
	trigger := "released"
	if st.Trigger {
		trigger = "pressed"
	}
	mode := "single"
	if st.MultiSelect {
		mode = "multi"
	}
	event := st.LastEvent
	if event == "" {
		event = "-"
	}
	return [5]string{
		fmt.Sprintf("session: %s (xr %s)", st.Session, xrState),
		"trigger: " + trigger,
		"hovered: " + joinOrDash(st.Hovered),
		fmt.Sprintf("selected (%s): %s", mode, joinOrDash(st.Selected)),
		"last: " + event,
	}
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
