package entity

import (
	"fmt"
	"image/color"

	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/prefabs"
	"github.com/milk9111/xrpicking/xr"
)

var logger = golog.Child("[entity]")

// SetLogLevel sets the level of the package logger.
func SetLogLevel(level string) {
	logger.SetLevel(level)
}

// Scene holds the handles of a spawned scene spec.
type Scene struct {
	Camera      ecs.Entity
	Light       ecs.Entity
	Meshes      map[string]ecs.Entity
	Controllers map[string]ecs.Entity
}

// SpawnScene creates every entity described by spec.
func SpawnScene(w *ecs.World, spec *prefabs.SceneSpec) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	scene := &Scene{
		Meshes:      make(map[string]ecs.Entity, len(spec.Meshes)),
		Controllers: make(map[string]ecs.Entity, len(spec.Controllers)),
	}

	var err error
	if scene.Camera, err = NewCamera(w, spec.Camera); err != nil {
		return nil, err
	}
	if scene.Light, err = NewPointLight(w, spec.Light); err != nil {
		return nil, err
	}
	for _, m := range spec.Meshes {
		e, err := NewMesh(w, m)
		if err != nil {
			return nil, err
		}
		scene.Meshes[m.Name] = e
	}
	for _, c := range spec.Controllers {
		e, err := NewController(w, c)
		if err != nil {
			return nil, err
		}
		scene.Controllers[c.Name] = e
	}

	logger.Infof("spawned scene %q: %d meshes, %d controllers", spec.Name, len(scene.Meshes), len(scene.Controllers))
	return scene, nil
}

func transformFromSpec(s prefabs.TransformSpec) *component.Transform {
	t := &component.Transform{X: s.X, Y: s.Y, ScaleX: s.ScaleX, ScaleY: s.ScaleY, Rotation: s.Rotation}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return t
}

func addNamed(w *ecs.World, e ecs.Entity, name string, t prefabs.TransformSpec) error {
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return fmt.Errorf("%s: add name: %w", name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transformFromSpec(t)); err != nil {
		return fmt.Errorf("%s: add transform: %w", name, err)
	}
	return nil
}

func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := addNamed(w, camera, spec.Name, spec.Transform); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 100
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		LookAtX: spec.LookAt.X,
		LookAtY: spec.LookAt.Y,
		Zoom:    zoom,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

func NewPointLight(w *ecs.World, spec prefabs.LightSpec) (ecs.Entity, error) {
	light := ecs.CreateEntity(w)
	if err := addNamed(w, light, spec.Name, spec.Transform); err != nil {
		return 0, fmt.Errorf("light: %w", err)
	}
	rng := spec.Range
	if rng <= 0 {
		rng = 5
	}
	if err := ecs.Add(w, light, component.PointLightComponent.Kind(), &component.PointLight{
		Intensity:      spec.Intensity,
		Range:          rng,
		ShadowsEnabled: spec.Shadows,
		Color:          spec.Color.ColorOr(color.White),
	}); err != nil {
		return 0, fmt.Errorf("light: add point light: %w", err)
	}
	return light, nil
}

func meshShape(s string) (component.MeshShape, error) {
	switch s {
	case "plane":
		return component.MeshPlane, nil
	case "cube":
		return component.MeshCube, nil
	}
	return 0, fmt.Errorf("unknown mesh shape %q", s)
}

// NewMesh spawns a plane or cube. Pickable meshes also get the interaction,
// selection and highlight components picking needs.
func NewMesh(w *ecs.World, spec prefabs.MeshSpec) (ecs.Entity, error) {
	shape, err := meshShape(spec.Shape)
	if err != nil {
		return 0, fmt.Errorf("mesh %s: %w", spec.Name, err)
	}

	mesh := ecs.CreateEntity(w)
	if err := addNamed(w, mesh, spec.Name, spec.Transform); err != nil {
		return 0, fmt.Errorf("mesh: %w", err)
	}
	if err := ecs.Add(w, mesh, component.MeshComponent.Kind(), &component.Mesh{
		Shape: shape,
		Size:  spec.Size,
		Color: spec.Color.ColorOr(color.Gray{Y: 0x80}),
	}); err != nil {
		return 0, fmt.Errorf("mesh %s: add mesh: %w", spec.Name, err)
	}
	layer := 1
	if shape == component.MeshPlane {
		layer = 0
	}
	if err := ecs.Add(w, mesh, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, fmt.Errorf("mesh %s: add render layer: %w", spec.Name, err)
	}

	if spec.Pickable {
		if err := addPickable(w, mesh); err != nil {
			return 0, fmt.Errorf("mesh %s: %w", spec.Name, err)
		}
	}
	return mesh, nil
}

func addPickable(w *ecs.World, e ecs.Entity) error {
	if err := ecs.Add(w, e, component.PickableComponent.Kind(), &component.Pickable{}); err != nil {
		return fmt.Errorf("add pickable: %w", err)
	}
	if err := ecs.Add(w, e, component.InteractionComponent.Kind(), &component.Interaction{}); err != nil {
		return fmt.Errorf("add interaction: %w", err)
	}
	if err := ecs.Add(w, e, component.SelectionComponent.Kind(), &component.Selection{}); err != nil {
		return fmt.Errorf("add selection: %w", err)
	}
	if err := ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{}); err != nil {
		return fmt.Errorf("add highlight: %w", err)
	}
	return nil
}

// NewController spawns a tracked hand. A controller with a ray becomes a
// ray interactor with its own pointer id.
func NewController(w *ecs.World, spec prefabs.ControllerSpec) (ecs.Entity, error) {
	hand, err := xr.ParseHand(spec.Hand)
	if err != nil {
		return 0, fmt.Errorf("controller %s: %w", spec.Name, err)
	}

	ctrl := ecs.CreateEntity(w)
	if err := addNamed(w, ctrl, spec.Name, spec.Transform); err != nil {
		return 0, fmt.Errorf("controller: %w", err)
	}
	if err := ecs.Add(w, ctrl, component.ControllerTagComponent.Kind(), &component.ControllerTag{}); err != nil {
		return 0, fmt.Errorf("controller %s: add controller tag: %w", spec.Name, err)
	}
	if err := ecs.Add(w, ctrl, component.TrackerComponent.Kind(), &component.Tracker{Hand: hand}); err != nil {
		return 0, fmt.Errorf("controller %s: add tracker: %w", spec.Name, err)
	}
	if hand == xr.HandLeft {
		err = ecs.Add(w, ctrl, component.LeftControllerTagComponent.Kind(), &component.LeftControllerTag{})
	} else {
		err = ecs.Add(w, ctrl, component.RightControllerTagComponent.Kind(), &component.RightControllerTag{})
	}
	if err != nil {
		return 0, fmt.Errorf("controller %s: add hand tag: %w", spec.Name, err)
	}
	if err := ecs.Add(w, ctrl, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 3}); err != nil {
		return 0, fmt.Errorf("controller %s: add render layer: %w", spec.Name, err)
	}

	if spec.Ray == nil {
		return ctrl, nil
	}

	pointer := prefabs.PointerSpec{}
	if spec.Pointer != nil {
		pointer = *spec.Pointer
	}
	id := picking.NewCustomPointer()
	if pointer.ID != "" {
		if id, err = picking.ParseCustomPointer(pointer.ID); err != nil {
			return 0, fmt.Errorf("controller %s: %w", spec.Name, err)
		}
	}
	length := spec.Ray.Length
	if length <= 0 {
		length = 10
	}
	if err := ecs.Add(w, ctrl, component.RayInteractorComponent.Kind(), &component.RayInteractor{Length: length}); err != nil {
		return 0, fmt.Errorf("controller %s: add ray interactor: %w", spec.Name, err)
	}
	if err := ecs.Add(w, ctrl, component.PointerComponent.Kind(), &component.Pointer{ID: id}); err != nil {
		return 0, fmt.Errorf("controller %s: add pointer: %w", spec.Name, err)
	}
	if err := ecs.Add(w, ctrl, component.PointerLocationComponent.Kind(), &component.PointerLocation{
		Location: &picking.Location{Target: pointer.Target},
	}); err != nil {
		return 0, fmt.Errorf("controller %s: add pointer location: %w", spec.Name, err)
	}
	logger.Debugf("controller %s is ray interactor %s", spec.Name, id)
	return ctrl, nil
}
