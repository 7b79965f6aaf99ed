package xr

import (
	"fmt"

	"github.com/kataras/golog"
)

var logger = golog.Child("[xr]")

// SetLogLevel sets the level of the package logger. Child loggers copy the
// parent level once, so golog.SetLevel alone does not reach it.
func SetLogLevel(level string) {
	logger.SetLevel(level)
}

type SessionState uint8

const (
	SessionIdle SessionState = iota
	SessionReady
	SessionRunning
	SessionStopping
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionReady:
		return "ready"
	case SessionRunning:
		return "running"
	case SessionStopping:
		return "stopping"
	default:
		return fmt.Sprintf("SessionState(%d)", uint8(s))
	}
}

// Runtime owns the session, the hardware source and the attached actions.
// It is driven from the game loop and is not safe for concurrent use.
type Runtime struct {
	enabled bool
	state   SessionState
	source  Source
	sets    *ActionSets
	tick    uint64
}

// NewRuntime creates a runtime over source. A disabled runtime never runs a
// session; systems gated on Enabled are skipped.
func NewRuntime(source Source, enabled bool) *Runtime {
	return &Runtime{enabled: enabled && source != nil, source: source}
}

func (r *Runtime) Enabled() bool {
	return r != nil && r.enabled
}

func (r *Runtime) State() SessionState {
	if r == nil {
		return SessionIdle
	}
	return r.state
}

// Tick is the number of completed syncs.
func (r *Runtime) Tick() uint64 {
	if r == nil {
		return 0
	}
	return r.tick
}

func (r *Runtime) Source() Source {
	if r == nil {
		return nil
	}
	return r.source
}

// Attach freezes the setup registry and binds every suggestion made for the
// source's interaction profile. It can be called once.
func (r *Runtime) Attach(setup *SetupActionSets) (*ActionSets, error) {
	if r.sets != nil {
		return nil, ErrAlreadyAttached
	}
	if setup == nil {
		setup = &SetupActionSets{}
	}

	profile := ""
	if r.source != nil {
		profile = r.source.Profile()
	}

	sets := &ActionSets{runtime: r, sets: make(map[string]*actionSet)}
	for _, s := range setup.Sets() {
		as := &actionSet{name: s.Name, pretty: s.Pretty, priority: s.Priority, actions: make(map[string]*action)}
		for _, def := range s.actions {
			as.actions[def.Name] = &action{def: def}
		}
		for p, bindings := range s.suggestions {
			if p != profile {
				logger.Debugf("ignoring %d suggested bindings for %s (active profile %q)", len(bindings), p, profile)
				continue
			}
			for _, b := range bindings {
				a := as.actions[b.Action]
				a.paths = append(a.paths, b.Path)
				logger.Debugf("bound %s/%s to %s", s.Name, b.Action, b.Path)
			}
		}
		sets.sets[s.Name] = as
		sets.order = append(sets.order, s.Name)
	}

	r.sets = sets
	if r.state == SessionIdle {
		r.state = SessionReady
	}
	return sets, nil
}

// Begin starts the session. Action sets must be attached first.
func (r *Runtime) Begin() error {
	if !r.Enabled() {
		return fmt.Errorf("xr: begin session: runtime disabled")
	}
	if r.sets == nil {
		return fmt.Errorf("xr: begin session: %w", ErrNotAttached)
	}
	if r.state == SessionRunning {
		return nil
	}
	r.state = SessionRunning
	logger.Infof("session running (profile %q)", r.source.Profile())
	return nil
}

// End stops the session. Action states stop refreshing and queries fail.
func (r *Runtime) End() {
	if r == nil || r.state != SessionRunning {
		return
	}
	r.state = SessionStopping
	logger.Infof("session stopping after %d syncs", r.tick)
}

// Sync polls the source once and refreshes every action state. It is a no-op
// unless the session is running.
func (r *Runtime) Sync() error {
	if !r.Enabled() || r.state != SessionRunning {
		return nil
	}
	if r.sets == nil {
		return fmt.Errorf("xr: sync: %w", ErrNotAttached)
	}
	if err := r.source.Poll(); err != nil {
		return fmt.Errorf("xr: sync: poll %s: %w", r.source.Profile(), err)
	}
	r.tick++
	for _, name := range r.sets.order {
		for _, a := range r.sets.sets[name].actions {
			a.sync(r.source, r.tick)
		}
	}
	return nil
}
