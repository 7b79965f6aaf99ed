package entity

import (
	"testing"

	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/prefabs"
	"github.com/milk9111/xrpicking/xr"
)

func loadScene(t *testing.T) *prefabs.SceneSpec {
	t.Helper()
	spec, err := prefabs.LoadSceneSpec("")
	if err != nil {
		t.Fatalf("load scene spec: %v", err)
	}
	return spec
}

func TestSpawnScene(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := SpawnScene(w, loadScene(t))
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	if got := len(w.Entities()); got != 6 {
		t.Fatalf("expected 6 entities, got %d", got)
	}

	cube := scene.Meshes["cube"]
	tr, ok := ecs.Get(w, cube, component.TransformComponent.Kind())
	if !ok || tr.Y != 0.5 || tr.ScaleX != 1 {
		t.Fatalf("unexpected cube transform: %+v", tr)
	}
	for _, k := range []component.Kind{
		component.PickableComponent.Kind(),
		component.InteractionComponent.Kind(),
		component.SelectionComponent.Kind(),
		component.HighlightComponent.Kind(),
	} {
		if len(w.Query(k)) != 2 {
			t.Fatalf("expected plane and cube to carry %v", k)
		}
	}

	if _, ok := ecs.Get(w, scene.Light, component.PointLightComponent.Kind()); !ok {
		t.Fatalf("light should carry a point light")
	}
	if cam, ok := ecs.Get(w, scene.Camera, component.CameraComponent.Kind()); !ok || cam.Zoom <= 0 {
		t.Fatalf("camera should carry a positive zoom")
	}

	left := scene.Controllers["left_hand"]
	right := scene.Controllers["right_hand"]
	if ecs.Has(w, left, component.RayInteractorComponent.Kind()) || ecs.Has(w, left, component.PointerComponent.Kind()) {
		t.Fatalf("left hand must not be a ray interactor")
	}
	if !ecs.Has(w, left, component.LeftControllerTagComponent.Kind()) {
		t.Fatalf("left hand should be tagged left")
	}
	ptr, ok := ecs.Get(w, right, component.PointerComponent.Kind())
	if !ok || ptr.ID.Kind != picking.PointerCustom {
		t.Fatalf("right hand should carry a custom pointer, got %+v", ptr)
	}
	tracker, ok := ecs.Get(w, right, component.TrackerComponent.Kind())
	if !ok || tracker.Hand != xr.HandRight {
		t.Fatalf("right hand tracker: %+v", tracker)
	}
	loc, ok := ecs.Get(w, right, component.PointerLocationComponent.Kind())
	if !ok || loc.Location == nil || loc.Location.Target != "xr_ray" {
		t.Fatalf("right hand pointer location: %+v", loc)
	}
	if got := w.Query(component.RayInteractorComponent.Kind(), component.PointerComponent.Kind()); len(got) != 1 || got[0] != right {
		t.Fatalf("expected exactly the right hand as listener, got %v", got)
	}
}

func TestSpawnControllerWithFixedPointerID(t *testing.T) {
	w := ecs.NewWorld()
	const id = "6f1c2b7e-0f7e-4c55-9d4e-4a8c3d0b9a11"
	e, err := NewController(w, prefabs.ControllerSpec{
		Name:    "hand",
		Hand:    "right",
		Ray:     &prefabs.RaySpec{},
		Pointer: &prefabs.PointerSpec{ID: id},
	})
	if err != nil {
		t.Fatal(err)
	}
	ptr, _ := ecs.Get(w, e, component.PointerComponent.Kind())
	if ptr.ID.UUID.String() != id {
		t.Fatalf("expected pointer %s, got %s", id, ptr.ID)
	}
	ray, _ := ecs.Get(w, e, component.RayInteractorComponent.Kind())
	if ray.Length != 10 {
		t.Fatalf("expected default ray length, got %v", ray.Length)
	}

	if _, err := NewController(w, prefabs.ControllerSpec{Name: "bad", Hand: "right", Ray: &prefabs.RaySpec{}, Pointer: &prefabs.PointerSpec{ID: "nope"}}); err == nil {
		t.Fatalf("expected error for invalid pointer id")
	}
}

func TestApplySceneSpec(t *testing.T) {
	w := ecs.NewWorld()
	spec := loadScene(t)
	scene, err := SpawnScene(w, spec)
	if err != nil {
		t.Fatal(err)
	}

	spec.Meshes[1].Transform.X = 1.25
	spec.Meshes[1].Size = 0.5
	spec.Camera.Zoom = 42
	spec.Meshes = append(spec.Meshes, prefabs.MeshSpec{Name: "sphere_later", Shape: "cube", Size: 1})

	n, err := ApplySceneSpec(w, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 updates, got %d", n)
	}
	tr, _ := ecs.Get(w, scene.Meshes["cube"], component.TransformComponent.Kind())
	mesh, _ := ecs.Get(w, scene.Meshes["cube"], component.MeshComponent.Kind())
	if tr.X != 1.25 || mesh.Size != 0.5 {
		t.Fatalf("cube not updated: %+v %+v", tr, mesh)
	}
	cam, _ := ecs.Get(w, scene.Camera, component.CameraComponent.Kind())
	if cam.Zoom != 42 {
		t.Fatalf("camera zoom not updated: %v", cam.Zoom)
	}
	if len(w.Entities()) != 6 {
		t.Fatalf("reload must not spawn entities")
	}
}

func TestSetLogLevelReachesPackageLogger(t *testing.T) {
	before := logger.Level
	t.Cleanup(func() { logger.Level = before })

	for _, tc := range []struct {
		name string
		want golog.Level
	}{
		{"debug", golog.DebugLevel},
		{"error", golog.ErrorLevel},
	} {
		SetLogLevel(tc.name)
		if logger.Level != tc.want {
			t.Fatalf("SetLogLevel(%q): logger at %v", tc.name, logger.Level)
		}
	}
}
