package system

import (
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
)

// Viewport maps world units (y up) to screen pixels (y down) around a
// centre point.
type Viewport struct {
	CenterX, CenterY float64
	Zoom             float64
	Width, Height    float64
}

func (v Viewport) WorldToScreen(x, y float64) (float64, float64) {
	return (x-v.CenterX)*v.Zoom + v.Width/2, v.Height/2 - (y-v.CenterY)*v.Zoom
}

func (v Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	if v.Zoom == 0 {
		return v.CenterX, v.CenterY
	}
	return (sx-v.Width/2)/v.Zoom + v.CenterX, (v.Height/2-sy)/v.Zoom + v.CenterY
}

// CameraViewport builds the viewport of the first camera in w, looking at
// the origin at 100 px per unit when there is none.
func CameraViewport(w *ecs.World, width, height float64) Viewport {
	v := Viewport{Zoom: 100, Width: width, Height: height}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		v.CenterX, v.CenterY = cam.LookAtX, cam.LookAtY
		if cam.Zoom > 0 {
			v.Zoom = cam.Zoom
		}
	}
	return v
}
