package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/prefabs"
)

// ApplySceneSpec updates spawned entities in place from a reloaded spec,
// matching them by name. Names missing from the world are skipped with a
// warning; nothing is spawned or destroyed.
func ApplySceneSpec(w *ecs.World, spec *prefabs.SceneSpec) (int, error) {
	if spec == nil {
		return 0, fmt.Errorf("scene: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("scene: %w", err)
	}

	byName := make(map[string]ecs.Entity)
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		byName[n.Value] = e
	})

	updated := 0
	apply := func(name string, t prefabs.TransformSpec, fn func(e ecs.Entity)) {
		e, ok := byName[name]
		if !ok {
			logger.Warnf("reload: %q is not in the world, restart to spawn it", name)
			return
		}
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			*tr = *transformFromSpec(t)
		}
		if fn != nil {
			fn(e)
		}
		updated++
	}

	apply(spec.Camera.Name, spec.Camera.Transform, func(e ecs.Entity) {
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			cam.LookAtX = spec.Camera.LookAt.X
			cam.LookAtY = spec.Camera.LookAt.Y
			if spec.Camera.Zoom > 0 {
				cam.Zoom = spec.Camera.Zoom
			}
		}
	})
	apply(spec.Light.Name, spec.Light.Transform, func(e ecs.Entity) {
		if l, ok := ecs.Get(w, e, component.PointLightComponent.Kind()); ok {
			l.Intensity = spec.Light.Intensity
			l.ShadowsEnabled = spec.Light.Shadows
			if spec.Light.Range > 0 {
				l.Range = spec.Light.Range
			}
			l.Color = spec.Light.Color.ColorOr(color.White)
		}
	})
	for _, m := range spec.Meshes {
		m := m
		apply(m.Name, m.Transform, func(e ecs.Entity) {
			mesh, ok := ecs.Get(w, e, component.MeshComponent.Kind())
			if !ok {
				return
			}
			if shape, err := meshShape(m.Shape); err == nil {
				mesh.Shape = shape
			}
			mesh.Size = m.Size
			mesh.Color = m.Color.ColorOr(mesh.Color)
		})
	}
	for _, c := range spec.Controllers {
		c := c
		apply(c.Name, c.Transform, func(e ecs.Entity) {
			if c.Ray == nil {
				return
			}
			if ray, ok := ecs.Get(w, e, component.RayInteractorComponent.Kind()); ok && c.Ray.Length > 0 {
				ray.Length = c.Ray.Length
			}
		})
	}

	logger.Infof("reloaded scene %q: %d entities updated", spec.Name, updated)
	return updated, nil
}
