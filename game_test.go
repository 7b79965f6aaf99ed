package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/ecs/entity"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/prefabs"
	"github.com/milk9111/xrpicking/xr"
)

func newTestGame(t *testing.T, opts Options, src *xr.ScriptedSource) *Game {
	t.Helper()
	actions, err := prefabs.LoadActionsSpec("")
	if err != nil {
		t.Fatal(err)
	}
	if src == nil {
		src = xr.NewScriptedSource(actions.Emulator.Profile)
	}
	g, err := newGame(opts, actions, src)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func step(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}
}

func TestReplayClickSelectsCube(t *testing.T) {
	g := newTestGame(t, Options{XR: true, Replay: "0110"}, nil)

	step(t, g, 1)
	if got := g.HoveredNames(); !reflect.DeepEqual(got, []string{"cube"}) {
		t.Fatalf("right hand ray should hover the cube, got %v", got)
	}

	step(t, g, 1)
	if !g.trigger.Pressed() {
		t.Fatalf("trigger should be pressed after tick 2")
	}

	step(t, g, 2)
	if got := g.SelectedNames(); !reflect.DeepEqual(got, []string{"cube"}) {
		t.Fatalf("expected cube selected, got %v", got)
	}
	if g.last == nil || g.last.Kind != picking.EventClick {
		t.Fatalf("expected last event to be a click, got %+v", g.last)
	}

	st := g.status()
	if st.Session != "running" || !st.XR || st.Trigger {
		t.Fatalf("unexpected status %+v", st)
	}
	if !strings.Contains(st.LastEvent, "click on cube") {
		t.Fatalf("unexpected last event %q", st.LastEvent)
	}
}

func TestTriggerIgnoredWithoutXR(t *testing.T) {
	g := newTestGame(t, Options{XR: false, Replay: "0110"}, nil)
	step(t, g, 4)

	if got := g.SelectedNames(); len(got) != 0 {
		t.Fatalf("nothing should be selected without xr, got %v", got)
	}
	if got := g.HoveredNames(); !reflect.DeepEqual(got, []string{"cube"}) {
		t.Fatalf("hover still works without xr, got %v", got)
	}
	if g.runtime.State() == xr.SessionRunning {
		t.Fatalf("session must not run without xr")
	}
}

func TestSourceFailureStopsTheGame(t *testing.T) {
	errLost := errors.New("controller lost")
	actions, err := prefabs.LoadActionsSpec("")
	if err != nil {
		t.Fatal(err)
	}
	src := xr.NewScriptedSource(actions.Emulator.Profile).FailAt(2, errLost)
	g := newTestGame(t, Options{XR: true, Replay: "01"}, src)

	if err := g.Step(); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	if err := g.Step(); !errors.Is(err, errLost) {
		t.Fatalf("expected source failure, got %v", err)
	}
	if g.trigger.Pressed() || g.presses.Len() != 0 {
		t.Fatalf("failed tick must not press the trigger")
	}
}

func TestReplayRejectsBadSamples(t *testing.T) {
	actions, err := prefabs.LoadActionsSpec("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newGame(Options{XR: true, Replay: "01x"}, actions, xr.NewScriptedSource(actions.Emulator.Profile)); err == nil {
		t.Fatalf("expected bad replay to fail")
	}
	if _, err := newGame(Options{XR: true, Replay: "01"}, actions, xr.NewScriptedSource(xr.ProfileSimple)); err == nil {
		t.Fatalf("expected replay without a binding for the profile to fail")
	}
}

func TestHudLabels(t *testing.T) {
	got := hudLabels(HudStatus{Session: "running", XR: true, Trigger: true, Selected: []string{"cube", "plane"}})
	want := [5]string{
		"session: running (xr on)",
		"trigger: pressed",
		"hovered: -",
		"selected (single): cube, plane",
		"last: -",
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSetLogLevelReachesMainLogger(t *testing.T) {
	before, defaultBefore := logger.Level, golog.Default.Level
	t.Cleanup(func() {
		logger.Level = before
		golog.Default.Level = defaultBefore
	})

	setLogLevel("debug")
	if logger.Level != golog.DebugLevel || golog.Default.Level != golog.DebugLevel {
		t.Fatalf("expected debug, got main=%v default=%v", logger.Level, golog.Default.Level)
	}
}

func TestReloadedControllerPoseSurvivesTracking(t *testing.T) {
	g := newTestGame(t, Options{XR: true}, nil)
	step(t, g, 1)

	spec, err := prefabs.LoadSceneSpec("")
	if err != nil {
		t.Fatal(err)
	}
	for i := range spec.Controllers {
		if spec.Controllers[i].Name == "right_hand" {
			spec.Controllers[i].Transform.X = -1
			spec.Controllers[i].Transform.Rotation = 0.5
		}
	}
	if _, err := entity.ApplySceneSpec(g.world, spec); err != nil {
		t.Fatalf("apply: %v", err)
	}
	g.reloadScene(spec)

	step(t, g, 2)
	tr, ok := ecs.Get(g.world, g.scene.Controllers["right_hand"], component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("right hand has no transform")
	}
	if tr.X != -1 || tr.Rotation != 0.5 {
		t.Fatalf("expected reloaded pose (-1, rot 0.5), got (%v, rot %v)", tr.X, tr.Rotation)
	}
}
