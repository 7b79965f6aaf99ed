package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/xrpicking/common"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	selectedOutline = colornames.Gold
	controllerColor = colornames.Whitesmoke
	defaultRayColor = colornames.Skyblue
)

// RenderSystem draws the scene in side view through the first camera.
type RenderSystem struct {
	// RayColors overrides the ray color per pointer entity.
	RayColors map[ecs.Entity]color.Color
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{RayColors: make(map[ecs.Entity]color.Color)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	view := CameraViewport(w, float64(b.Dx()), float64(b.Dy()))

	r.drawLights(w, screen, view)

	meshes := w.Query(component.MeshComponent.Kind(), component.TransformComponent.Kind())
	sort.SliceStable(meshes, func(i, j int) bool {
		return layerOf(w, meshes[i]) < layerOf(w, meshes[j])
	})
	for _, e := range meshes {
		r.drawMesh(w, screen, view, e)
	}
	r.drawShadows(w, screen, view)

	ecs.ForEach2(w, component.ControllerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ControllerTag, t *component.Transform) {
		r.drawController(w, screen, view, e, t)
	})
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func (r *RenderSystem) drawLights(w *ecs.World, screen *ebiten.Image, view Viewport) {
	ecs.ForEach2(w, component.PointLightComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, l *component.PointLight, t *component.Transform) {
		x, y := view.WorldToScreen(t.X, t.Y)
		cr, cg, cb, _ := l.Color.RGBA()
		strength := common.Clamp01(float32(l.Intensity / 3000))
		const rings = 6
		for i := rings; i > 0; i-- {
			radius := float32(l.Range * view.Zoom * float64(i) / rings)
			// outer rings fade out
			a := uint8(255 * strength * common.Lerp(0.14, 0.03, float32(i-1)/(rings-1)))
			vector.DrawFilledCircle(screen, float32(x), float32(y), radius, color.NRGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: a}, true)
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), 6, l.Color, true)
	})
}

func (r *RenderSystem) drawMesh(w *ecs.World, screen *ebiten.Image, view Viewport, e ecs.Entity) {
	mesh, _ := ecs.Get(w, e, component.MeshComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	bb := meshBB(mesh, t)
	x0, y0 := view.WorldToScreen(bb.L, bb.T)
	x1, y1 := view.WorldToScreen(bb.R, bb.B)
	rw, rh := float32(x1-x0), float32(math.Max(y1-y0, 2))

	vector.DrawFilledRect(screen, float32(x0), float32(y0), rw, rh, mesh.Color, false)

	if h, ok := ecs.Get(w, e, component.HighlightComponent.Kind()); ok && h.Alpha > 0 {
		vector.DrawFilledRect(screen, float32(x0), float32(y0), rw, rh, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(255 * common.Clamp01(h.Alpha))}, false)
	}
	if sel, ok := ecs.Get(w, e, component.SelectionComponent.Kind()); ok && sel.Selected {
		vector.StrokeRect(screen, float32(x0)-2, float32(y0)-2, rw+4, rh+4, 2, selectedOutline, false)
	}
}

// drawShadows projects every cube away from each shadow casting light onto
// the top face of each plane it overhangs.
func (r *RenderSystem) drawShadows(w *ecs.World, screen *ebiten.Image, view Viewport) {
	type caster struct{ l, r, top float64 }
	var planes, cubes []caster
	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, m *component.Mesh, t *component.Transform) {
		bb := meshBB(m, t)
		c := caster{l: bb.L, r: bb.R, top: bb.T}
		if m.Shape == component.MeshPlane {
			planes = append(planes, c)
		} else {
			cubes = append(cubes, c)
		}
	})

	shadow := color.NRGBA{A: 90}
	ecs.ForEach2(w, component.PointLightComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, l *component.PointLight, lt *component.Transform) {
		if !l.ShadowsEnabled {
			return
		}
		for _, p := range planes {
			for _, c := range cubes {
				if lt.Y <= c.top || c.top <= p.top {
					continue
				}
				k := (lt.Y - p.top) / (lt.Y - c.top)
				a := lt.X + (c.l-lt.X)*k
				b := lt.X + (c.r-lt.X)*k
				lo := math.Max(math.Min(a, b), p.l)
				hi := math.Min(math.Max(a, b), p.r)
				if hi <= lo {
					continue
				}
				x0, y0 := view.WorldToScreen(lo, p.top)
				x1, _ := view.WorldToScreen(hi, p.top)
				vector.DrawFilledRect(screen, float32(x0), float32(y0)-2, float32(x1-x0), 3, shadow, false)
			}
		}
	})
}

func (r *RenderSystem) drawController(w *ecs.World, screen *ebiten.Image, view Viewport, e ecs.Entity, t *component.Transform) {
	x, y := view.WorldToScreen(t.X, t.Y)

	if ray, ok := ecs.Get(w, e, component.RayInteractorComponent.Kind()); ok {
		hx, hy := view.WorldToScreen(ray.HitX, ray.HitY)
		c, ok := r.RayColors[e]
		if !ok {
			c = defaultRayColor
		}
		vector.StrokeLine(screen, float32(x), float32(y), float32(hx), float32(hy), 2, c, true)
		if ray.Hit {
			vector.DrawFilledCircle(screen, float32(hx), float32(hy), 4, c, true)
		}
	}

	tracked := true
	if tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind()); ok {
		tracked = tr.Tracked
	}
	fill := color.Color(controllerColor)
	if !tracked {
		fill = colornames.Dimgray
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), 8, fill, true)
	dx, dy := math.Cos(t.Rotation)*14, -math.Sin(t.Rotation)*14
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+dx), float32(y+dy), 3, fill, true)
}
