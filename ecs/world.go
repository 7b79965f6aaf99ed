package ecs

import "github.com/milk9111/xrpicking/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// Query returns the live entities that carry every listed kind, ordered by
// the dense order of the first kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	first, ok := w.stores[kinds[0].ID()]
	if !ok {
		return nil
	}
	var out []Entity
	for _, e := range entitiesOf(first) {
		if w.hasAll(e, kinds[1:]) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if ents := w.Query(kind); len(ents) > 0 {
		return ents[0], true
	}
	return 0, false
}

func (w *World) hasAll(e Entity, kinds []component.Kind) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || !s.has(e) {
			return false
		}
	}
	return true
}

// CreateEntity is the function form of (*World).CreateEntity.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity is the function form of (*World).DestroyEntity.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive is the function form of (*World).IsAlive.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities is the function form of (*World).Entities.
func Entities(w *World) []Entity {
	return w.Entities()
}

func entitiesOf(s store) []Entity {
	return append([]Entity(nil), s.entityList()...)
}
