package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
)

// PointerHits holds this tick's backend hits per pointer.
type PointerHits map[picking.PointerID][]picking.Hit[ecs.Entity]

type pickShape struct {
	shape *cp.Shape
	bb    cp.BB
}

// RaycastBackendSystem hit tests ray interactors against pickable meshes.
// Each pickable gets a static box in a chipmunk space that is only used for
// segment queries; the space is never stepped.
type RaycastBackendSystem struct {
	space  *cp.Space
	shapes map[ecs.Entity]*pickShape
	hits   PointerHits
}

func NewRaycastBackendSystem() *RaycastBackendSystem {
	return &RaycastBackendSystem{
		space:  cp.NewSpace(),
		shapes: make(map[ecs.Entity]*pickShape),
		hits:   make(PointerHits),
	}
}

// Hits returns the hits found during the last Update.
func (s *RaycastBackendSystem) Hits() PointerHits {
	return s.hits
}

func (s *RaycastBackendSystem) Update(w *ecs.World) error {
	s.syncShapes(w)

	for p := range s.hits {
		delete(s.hits, p)
	}

	ecs.ForEach3(w, component.RayInteractorComponent.Kind(), component.PointerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ray *component.RayInteractor, ptr *component.Pointer, transform *component.Transform) {
		start := cp.Vector{X: transform.X, Y: transform.Y}
		end := cp.Vector{
			X: transform.X + math.Cos(transform.Rotation)*ray.Length,
			Y: transform.Y + math.Sin(transform.Rotation)*ray.Length,
		}

		info := s.space.SegmentQueryFirst(start, end, 0, cp.SHAPE_FILTER_ALL)
		var target ecs.Entity
		ok := false
		if info.Shape != nil {
			target, ok = info.Shape.UserData.(ecs.Entity)
		}
		if !ok {
			ray.Hit = false
			ray.HitX, ray.HitY = end.X, end.Y
		} else {
			ray.Hit = true
			ray.HitX, ray.HitY = info.Point.X, info.Point.Y
			s.hits[ptr.ID] = []picking.Hit[ecs.Entity]{{
				Target: target,
				Depth:  info.Alpha * ray.Length,
				X:      info.Point.X,
				Y:      info.Point.Y,
			}}
		}

		if loc, ok := ecs.Get(w, e, component.PointerLocationComponent.Kind()); ok && loc.Location != nil {
			loc.Location.X = ray.HitX
			loc.Location.Y = ray.HitY
		}
	})
	return nil
}

func (s *RaycastBackendSystem) syncShapes(w *ecs.World) {
	live := make(map[ecs.Entity]struct{}, len(s.shapes))

	ecs.ForEach3(w, component.PickableComponent.Kind(), component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Pickable, mesh *component.Mesh, transform *component.Transform) {
		live[e] = struct{}{}
		bb := meshBB(mesh, transform)
		if cur, ok := s.shapes[e]; ok {
			if cur.bb == bb {
				return
			}
			s.space.RemoveShape(cur.shape)
		}
		shape := cp.NewBox2(s.space.StaticBody, bb, 0)
		shape.UserData = e
		s.space.AddShape(shape)
		s.shapes[e] = &pickShape{shape: shape, bb: bb}
	})

	for e, cur := range s.shapes {
		if _, ok := live[e]; !ok {
			s.space.RemoveShape(cur.shape)
			delete(s.shapes, e)
		}
	}
}

func meshBB(mesh *component.Mesh, transform *component.Transform) cp.BB {
	hw, hh := mesh.Extents()
	sx, sy := transform.ScaleX, transform.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	hw *= math.Abs(sx)
	hh *= math.Abs(sy)
	return cp.BB{L: transform.X - hw, B: transform.Y - hh, R: transform.X + hw, T: transform.Y + hh}
}
