package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/xr"
)

func addMesh(t *testing.T, w *ecs.World, shape component.MeshShape, size, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	adds := []error{
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
		ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Shape: shape, Size: size, Color: color.White}),
		ecs.Add(w, e, component.PickableComponent.Kind(), &component.Pickable{}),
		ecs.Add(w, e, component.InteractionComponent.Kind(), &component.Interaction{}),
		ecs.Add(w, e, component.SelectionComponent.Kind(), &component.Selection{}),
		ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{}),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func addRay(t *testing.T, w *ecs.World, x, y, angle float64) (ecs.Entity, picking.PointerID) {
	t.Helper()
	e := ecs.CreateEntity(w)
	id := picking.NewCustomPointer()
	adds := []error{
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Rotation: angle}),
		ecs.Add(w, e, component.RayInteractorComponent.Kind(), &component.RayInteractor{Length: 10}),
		ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{ID: id}),
		ecs.Add(w, e, component.PointerLocationComponent.Kind(), &component.PointerLocation{Location: &picking.Location{}}),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e, id
}

func TestRaycastBackendHitsClosestMesh(t *testing.T) {
	w := ecs.NewWorld()
	plane := addMesh(t, w, component.MeshPlane, 5, 0, 0)
	cube := addMesh(t, w, component.MeshCube, 1, 0, 0.5)
	ray, id := addRay(t, w, 3, 0.5, math.Pi)

	backend := NewRaycastBackendSystem()
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	hits := backend.Hits()[id]
	if len(hits) != 1 || hits[0].Target != cube {
		t.Fatalf("expected cube hit, got %+v", hits)
	}
	if math.Abs(hits[0].Depth-2.5) > 1e-6 || math.Abs(hits[0].X-0.5) > 1e-6 {
		t.Fatalf("expected hit at x=0.5 depth 2.5, got %+v", hits[0])
	}
	loc, _ := ecs.Get(w, ray, component.PointerLocationComponent.Kind())
	if math.Abs(loc.Location.X-0.5) > 1e-6 {
		t.Fatalf("pointer location should follow the hit, got %+v", loc.Location)
	}

	// aim straight down past the cube onto the plane
	tr, _ := ecs.Get(w, ray, component.TransformComponent.Kind())
	tr.X, tr.Y, tr.Rotation = 2, 1, -math.Pi/2
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	if hits := backend.Hits()[id]; len(hits) != 1 || hits[0].Target != plane {
		t.Fatalf("expected plane hit, got %+v", hits)
	}

	// aim at the sky
	tr.Rotation = math.Pi / 2
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	if _, ok := backend.Hits()[id]; ok {
		t.Fatalf("expected no hits when aiming up")
	}
	r, _ := ecs.Get(w, ray, component.RayInteractorComponent.Kind())
	if r.Hit || math.Abs(r.HitY-11) > 1e-6 {
		t.Fatalf("miss should end the ray at full length, got %+v", r)
	}
}

func TestRaycastBackendFollowsMovedAndRemovedMeshes(t *testing.T) {
	w := ecs.NewWorld()
	cube := addMesh(t, w, component.MeshCube, 1, 0, 0)
	_, id := addRay(t, w, 3, 0, math.Pi)

	backend := NewRaycastBackendSystem()
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	if len(backend.Hits()[id]) != 1 {
		t.Fatalf("expected initial hit")
	}

	tr, _ := ecs.Get(w, cube, component.TransformComponent.Kind())
	tr.Y = 5
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	if len(backend.Hits()[id]) != 0 {
		t.Fatalf("moved cube should no longer be hit")
	}

	tr.Y = 0
	ecs.DestroyEntity(w, cube)
	if err := backend.Update(w); err != nil {
		t.Fatal(err)
	}
	if len(backend.Hits()[id]) != 0 || len(backend.shapes) != 0 {
		t.Fatalf("destroyed cube should drop its shape")
	}
}

func TestPickingPipelineClickSelects(t *testing.T) {
	src := xr.NewScriptedSource(xr.ProfileOculusTouch).Script(xr.PathRightTrigger, false, true, false, true, false)
	rt, sets := startRuntime(t, src, true)

	w := ecs.NewWorld()
	cube := addMesh(t, w, component.MeshCube, 1, 0, 0.5)
	addRay(t, w, 3, 0.5, math.Pi)

	var presses ecs.EventQueue[picking.InputPress]
	var events ecs.EventQueue[picking.PointerEvent[ecs.Entity]]
	backend := NewRaycastBackendSystem()
	sched := ecs.NewScheduler(
		NewXrSyncSystem(rt),
		NewTriggerSystem(rt, sets, testSet, testAction, picking.ButtonPrimary, &presses),
		backend,
		NewPickingSystem(&presses, backend.Hits, &events),
	)

	selected := func() bool {
		sel, _ := ecs.Get(w, cube, component.SelectionComponent.Kind())
		return sel.Selected
	}
	interaction := func() picking.Interaction {
		in, _ := ecs.Get(w, cube, component.InteractionComponent.Kind())
		return in.State
	}

	steps := []struct {
		kinds    []picking.EventKind
		state    picking.Interaction
		selected bool
	}{
		{[]picking.EventKind{picking.EventOver}, picking.InteractionHovered, false},
		{[]picking.EventKind{picking.EventDown}, picking.InteractionPressed, false},
		{[]picking.EventKind{picking.EventUp, picking.EventClick}, picking.InteractionHovered, true},
		{[]picking.EventKind{picking.EventDown}, picking.InteractionPressed, true},
		{[]picking.EventKind{picking.EventUp, picking.EventClick}, picking.InteractionHovered, false},
	}
	for i, step := range steps {
		if err := sched.Update(w); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
		got := events.Drain()
		if len(got) != len(step.kinds) {
			t.Fatalf("tick %d: expected %v, got %+v", i+1, step.kinds, got)
		}
		for j := range got {
			if got[j].Kind != step.kinds[j] || got[j].Target != cube {
				t.Fatalf("tick %d: expected %v on cube, got %+v", i+1, step.kinds[j], got[j])
			}
		}
		if interaction() != step.state {
			t.Fatalf("tick %d: expected %v, got %v", i+1, step.state, interaction())
		}
		if selected() != step.selected {
			t.Fatalf("tick %d: expected selected=%v", i+1, step.selected)
		}
	}
}

func TestPickingMissedDownDeselects(t *testing.T) {
	w := ecs.NewWorld()
	cube := addMesh(t, w, component.MeshCube, 1, 0, 0)
	sel, _ := ecs.Get(w, cube, component.SelectionComponent.Kind())
	sel.Selected = true

	var presses ecs.EventQueue[picking.InputPress]
	var events ecs.EventQueue[picking.PointerEvent[ecs.Entity]]
	ps := NewPickingSystem(&presses, nil, &events)

	presses.Push(picking.InputPress{PointerID: picking.MousePointer(), Direction: picking.PressDown})
	ps.MultiSelect = true
	if err := ps.Update(w); err != nil {
		t.Fatal(err)
	}
	if !sel.Selected {
		t.Fatalf("multi select should keep the selection")
	}

	presses.Push(picking.InputPress{PointerID: picking.MousePointer(), Direction: picking.PressDown})
	ps.MultiSelect = false
	if err := ps.Update(w); err != nil {
		t.Fatal(err)
	}
	if sel.Selected || len(Selected(w)) != 0 {
		t.Fatalf("missed down should deselect")
	}
}

func TestHighlightTweensToTarget(t *testing.T) {
	w := ecs.NewWorld()
	cube := addMesh(t, w, component.MeshCube, 1, 0, 0)
	in, _ := ecs.Get(w, cube, component.InteractionComponent.Kind())
	h, _ := ecs.Get(w, cube, component.HighlightComponent.Kind())

	in.State = picking.InteractionHovered
	hs := NewHighlightSystem(0.05)
	if err := hs.Update(w); err != nil {
		t.Fatal(err)
	}
	if h.Alpha <= 0 || h.Alpha >= alphaHovered {
		t.Fatalf("expected alpha mid tween, got %v", h.Alpha)
	}
	for i := 0; i < 10; i++ {
		if err := hs.Update(w); err != nil {
			t.Fatal(err)
		}
	}
	if h.Alpha != alphaHovered || h.Tween != nil {
		t.Fatalf("expected settled hovered alpha, got %v", h.Alpha)
	}

	if got := highlightTarget(picking.InteractionNone, true); got != alphaSelectedBase {
		t.Fatalf("selected idle target: %v", got)
	}
	if got := highlightTarget(picking.InteractionPressed, true); got != alphaPressed {
		t.Fatalf("pressed target: %v", got)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{CenterX: 1, CenterY: 2, Zoom: 50, Width: 800, Height: 600}
	sx, sy := v.WorldToScreen(1, 2)
	if sx != 400 || sy != 300 {
		t.Fatalf("centre should map to screen centre, got %v,%v", sx, sy)
	}
	_, up := v.WorldToScreen(1, 3)
	if up >= sy {
		t.Fatalf("world up should be screen up")
	}
	wx, wy := v.ScreenToWorld(v.WorldToScreen(-3.5, 7.25))
	if math.Abs(wx+3.5) > 1e-9 || math.Abs(wy-7.25) > 1e-9 {
		t.Fatalf("round trip failed: %v,%v", wx, wy)
	}

	w := ecs.NewWorld()
	if got := CameraViewport(w, 10, 10); got.Zoom != 100 {
		t.Fatalf("expected default zoom, got %v", got.Zoom)
	}
}
