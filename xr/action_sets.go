package xr

// ActionStateBool is the state of a boolean action as of the last sync.
type ActionStateBool struct {
	CurrentState         bool
	ChangedSinceLastSync bool
	LastChangeTick       uint64
	IsActive             bool
}

type action struct {
	def   ActionDef
	paths []string
	state ActionStateBool
}

func (a *action) sync(src Source, tick uint64) {
	if a.def.Type != ActionBool {
		return
	}
	pressed := false
	for _, p := range a.paths {
		if src.Pressed(p) {
			pressed = true
			break
		}
	}
	a.state.IsActive = len(a.paths) > 0
	a.state.ChangedSinceLastSync = pressed != a.state.CurrentState
	if a.state.ChangedSinceLastSync {
		a.state.LastChangeTick = tick
	}
	a.state.CurrentState = pressed
}

type actionSet struct {
	name     string
	pretty   string
	priority uint32
	actions  map[string]*action
}

// ActionSets is the attached, queryable form of SetupActionSets.
type ActionSets struct {
	runtime *Runtime
	sets    map[string]*actionSet
	order   []string
}

// BoolAction is a handle to one boolean action.
type BoolAction struct {
	sets *ActionSets
	set  string
	a    *action
}

func (s *ActionSets) GetActionBool(set, name string) (*BoolAction, error) {
	if s == nil {
		return nil, &ActionQueryError{Set: set, Action: name, Err: ErrNotAttached}
	}
	as, ok := s.sets[set]
	if !ok {
		return nil, &ActionQueryError{Set: set, Action: name, Err: ErrActionSetNotFound}
	}
	a, ok := as.actions[name]
	if !ok {
		return nil, &ActionQueryError{Set: set, Action: name, Err: ErrActionNotFound}
	}
	if a.def.Type != ActionBool {
		return nil, &ActionQueryError{Set: set, Action: name, Err: ErrActionTypeMismatch}
	}
	return &BoolAction{sets: s, set: set, a: a}, nil
}

// Bindings returns the input paths bound to an action under the active
// profile.
func (s *ActionSets) Bindings(set, name string) []string {
	if s == nil {
		return nil
	}
	as, ok := s.sets[set]
	if !ok {
		return nil
	}
	a, ok := as.actions[name]
	if !ok {
		return nil
	}
	return append([]string(nil), a.paths...)
}

// State reads the action as of the last sync. It fails while the session is
// not running, since the stored value would be stale.
func (b *BoolAction) State() (ActionStateBool, error) {
	if b.sets.runtime.State() != SessionRunning {
		return ActionStateBool{}, &ActionQueryError{Set: b.set, Action: b.a.def.Name, Err: ErrSessionNotRunning}
	}
	return b.a.state, nil
}

// QueryBool looks up set/name and returns its current state in one call.
func (s *ActionSets) QueryBool(set, name string) (bool, error) {
	a, err := s.GetActionBool(set, name)
	if err != nil {
		return false, err
	}
	st, err := a.State()
	if err != nil {
		return false, err
	}
	return st.CurrentState, nil
}
