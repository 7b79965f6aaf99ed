package system

import (
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/xr"
)

// TriggerSystem samples a boolean action each tick and turns its edges into
// presses for every ray interactor pointer. It only runs while the runtime is
// enabled. A failed action query aborts the tick.
type TriggerSystem struct {
	runtime   *xr.Runtime
	sets      *xr.ActionSets
	actionSet string
	action    string
	adapter   picking.TriggerAdapter
	presses   *ecs.EventQueue[picking.InputPress]
}

func NewTriggerSystem(runtime *xr.Runtime, sets *xr.ActionSets, actionSet, action string, button picking.PointerButton, presses *ecs.EventQueue[picking.InputPress]) *TriggerSystem {
	return &TriggerSystem{
		runtime:   runtime,
		sets:      sets,
		actionSet: actionSet,
		action:    action,
		adapter:   picking.TriggerAdapter{Button: button},
		presses:   presses,
	}
}

// Pressed reports the trigger state remembered from the last tick.
func (s *TriggerSystem) Pressed() bool {
	return s.adapter.Pressed()
}

func (s *TriggerSystem) Update(w *ecs.World) error {
	if !s.runtime.Enabled() {
		return nil
	}

	events, err := s.adapter.Tick(func() (bool, error) {
		return s.sets.QueryBool(s.actionSet, s.action)
	}, RayPointers(w))
	if err != nil {
		return err
	}
	for _, evt := range events {
		logger.Debugf("trigger %s", evt)
	}
	s.presses.Push(events...)
	return nil
}

// RayPointers lists the pointer ids of every ray interactor.
func RayPointers(w *ecs.World) []picking.PointerID {
	var ids []picking.PointerID
	ecs.ForEach2(w, component.RayInteractorComponent.Kind(), component.PointerComponent.Kind(), func(_ ecs.Entity, _ *component.RayInteractor, p *component.Pointer) {
		ids = append(ids, p.ID)
	})
	return ids
}
