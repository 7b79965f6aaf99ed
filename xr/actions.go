package xr

import (
	"fmt"
	"sort"
)

type ActionType uint8

const (
	ActionBool ActionType = iota
	ActionFloat
	ActionVector2
	ActionPose
)

func (t ActionType) String() string {
	switch t {
	case ActionBool:
		return "bool"
	case ActionFloat:
		return "float"
	case ActionVector2:
		return "vector2"
	case ActionPose:
		return "pose"
	default:
		return fmt.Sprintf("ActionType(%d)", uint8(t))
	}
}

// ParseActionType maps the yaml spelling of an action type.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "bool", "":
		return ActionBool, nil
	case "float":
		return ActionFloat, nil
	case "vector2":
		return ActionVector2, nil
	case "pose":
		return ActionPose, nil
	}
	return 0, fmt.Errorf("xr: unknown action type %q", s)
}

type Handedness uint8

const (
	HandednessSingle Handedness = iota
	HandednessDouble
)

func ParseHandedness(s string) (Handedness, error) {
	switch s {
	case "single", "":
		return HandednessSingle, nil
	case "double":
		return HandednessDouble, nil
	}
	return 0, fmt.Errorf("xr: unknown handedness %q", s)
}

// Binding ties an action to a physical input path such as
// /user/hand/right/input/trigger/value.
type Binding struct {
	Action string
	Path   string
}

func NewBinding(action, path string) Binding {
	return Binding{Action: action, Path: path}
}

type ActionDef struct {
	Name       string
	Pretty     string
	Type       ActionType
	Handedness Handedness
}

// SetupActionSet collects actions and suggested bindings before attach.
type SetupActionSet struct {
	Name     string
	Pretty   string
	Priority uint32

	actions     []ActionDef
	suggestions map[string][]Binding
}

// NewAction declares an action in the set.
func (s *SetupActionSet) NewAction(name, pretty string, typ ActionType, handedness Handedness) error {
	for _, a := range s.actions {
		if a.Name == name {
			return fmt.Errorf("%w: action %s/%s", ErrDuplicateName, s.Name, name)
		}
	}
	s.actions = append(s.actions, ActionDef{Name: name, Pretty: pretty, Type: typ, Handedness: handedness})
	return nil
}

// SuggestBinding records bindings for one interaction profile. Every
// binding must reference an action already declared in this set.
func (s *SetupActionSet) SuggestBinding(profile string, bindings []Binding) error {
	for _, b := range bindings {
		if _, ok := s.action(b.Action); !ok {
			return fmt.Errorf("%w: %s/%s (%s)", ErrUnknownAction, s.Name, b.Action, b.Path)
		}
	}
	if s.suggestions == nil {
		s.suggestions = make(map[string][]Binding)
	}
	s.suggestions[profile] = append(s.suggestions[profile], bindings...)
	return nil
}

func (s *SetupActionSet) Actions() []ActionDef {
	return append([]ActionDef(nil), s.actions...)
}

// Profiles lists the interaction profiles with suggested bindings.
func (s *SetupActionSet) Profiles() []string {
	out := make([]string, 0, len(s.suggestions))
	for p := range s.suggestions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *SetupActionSet) Suggestions(profile string) []Binding {
	return append([]Binding(nil), s.suggestions[profile]...)
}

func (s *SetupActionSet) action(name string) (ActionDef, bool) {
	for _, a := range s.actions {
		if a.Name == name {
			return a, true
		}
	}
	return ActionDef{}, false
}

// SetupActionSets is the registry filled in during the setup phase.
type SetupActionSets struct {
	sets []*SetupActionSet
}

func (s *SetupActionSets) AddActionSet(name, pretty string, priority uint32) (*SetupActionSet, error) {
	for _, set := range s.sets {
		if set.Name == name {
			return nil, fmt.Errorf("%w: action set %s", ErrDuplicateName, name)
		}
	}
	set := &SetupActionSet{Name: name, Pretty: pretty, Priority: priority}
	s.sets = append(s.sets, set)
	return set, nil
}

// Sets returns the registered sets ordered by descending priority.
func (s *SetupActionSets) Sets() []*SetupActionSet {
	out := append([]*SetupActionSet(nil), s.sets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}
