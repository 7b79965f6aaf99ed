package prefabs

import (
	"fmt"

	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/xr"
)

// Setup declares every action set, action and suggested binding listed in s.
func (s *ActionsSpec) Setup() (*xr.SetupActionSets, error) {
	var setup xr.SetupActionSets
	for _, setSpec := range s.ActionSets {
		set, err := setup.AddActionSet(setSpec.Name, setSpec.Pretty, setSpec.Priority)
		if err != nil {
			return nil, err
		}
		for _, a := range setSpec.Actions {
			typ, err := xr.ParseActionType(a.Type)
			if err != nil {
				return nil, fmt.Errorf("action %s/%s: %w", setSpec.Name, a.Name, err)
			}
			hand, err := xr.ParseHandedness(a.Handedness)
			if err != nil {
				return nil, fmt.Errorf("action %s/%s: %w", setSpec.Name, a.Name, err)
			}
			if err := set.NewAction(a.Name, a.Pretty, typ, hand); err != nil {
				return nil, err
			}
		}
		for _, p := range setSpec.Bindings {
			bindings := make([]xr.Binding, 0, len(p.Paths))
			for _, b := range p.Paths {
				bindings = append(bindings, xr.NewBinding(b.Action, b.Path))
			}
			if err := set.SuggestBinding(p.Profile, bindings); err != nil {
				return nil, err
			}
		}
	}
	return &setup, nil
}

// PointerButton maps the trigger's button name, defaulting to primary.
func (t TriggerSpec) PointerButton() (picking.PointerButton, error) {
	switch t.Button {
	case "", "primary":
		return picking.ButtonPrimary, nil
	case "secondary":
		return picking.ButtonSecondary, nil
	case "middle":
		return picking.ButtonMiddle, nil
	}
	return 0, fmt.Errorf("prefabs: unknown trigger button %q", t.Button)
}
