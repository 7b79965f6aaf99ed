package system

import (
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
)

// PickingSystem resolves hits and presses into pointer events, interaction
// state and selection.
type PickingSystem struct {
	resolver *picking.Resolver[ecs.Entity]
	presses  *ecs.EventQueue[picking.InputPress]
	hits     func() PointerHits
	events   *ecs.EventQueue[picking.PointerEvent[ecs.Entity]]

	// MultiSelect keeps earlier selections when something else is clicked
	// or the pointer goes down over nothing.
	MultiSelect bool
}

func NewPickingSystem(presses *ecs.EventQueue[picking.InputPress], hits func() PointerHits, events *ecs.EventQueue[picking.PointerEvent[ecs.Entity]]) *PickingSystem {
	return &PickingSystem{
		resolver: picking.NewResolver[ecs.Entity](),
		presses:  presses,
		hits:     hits,
		events:   events,
	}
}

func (s *PickingSystem) Update(w *ecs.World) error {
	var hits PointerHits
	if s.hits != nil {
		hits = s.hits()
	}
	events := s.resolver.Update(hits, s.presses.Drain())

	states := s.resolver.Interactions()
	ecs.ForEach(w, component.InteractionComponent.Kind(), func(e ecs.Entity, in *component.Interaction) {
		in.State = states[e]
	})

	for _, evt := range events {
		switch {
		case evt.Kind == picking.EventClick:
			s.toggle(w, evt.Target)
		case evt.Kind == picking.EventDown && evt.Missed && !s.MultiSelect:
			s.deselectAll(w, 0)
		}
		if evt.Missed {
			logger.Debugf("pointer %s %s on nothing", evt.Pointer, evt.Kind)
		} else {
			logger.Debugf("pointer %s %s on %s", evt.Pointer, evt.Kind, evt.Target)
		}
	}
	s.events.Push(events...)
	return nil
}

func (s *PickingSystem) toggle(w *ecs.World, target ecs.Entity) {
	sel, ok := ecs.Get(w, target, component.SelectionComponent.Kind())
	if !ok {
		return
	}
	if !s.MultiSelect {
		s.deselectAll(w, target)
	}
	sel.Selected = !sel.Selected
}

func (s *PickingSystem) deselectAll(w *ecs.World, except ecs.Entity) {
	ecs.ForEach(w, component.SelectionComponent.Kind(), func(e ecs.Entity, sel *component.Selection) {
		if e != except {
			sel.Selected = false
		}
	})
}

// Selected lists the selected entities.
func Selected(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.SelectionComponent.Kind(), func(e ecs.Entity, sel *component.Selection) {
		if sel.Selected {
			out = append(out, e)
		}
	})
	return out
}
