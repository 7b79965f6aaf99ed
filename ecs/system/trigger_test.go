package system

import (
	"errors"
	"testing"

	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/xr"
)

const (
	testSet    = "bevy_mod_picking_xr"
	testAction = "select"
)

func testSetup(t *testing.T) *xr.SetupActionSets {
	t.Helper()
	var setup xr.SetupActionSets
	set, err := setup.AddActionSet(testSet, "Bevy Mod Picking", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := set.NewAction(testAction, "Select", xr.ActionBool, xr.HandednessSingle); err != nil {
		t.Fatal(err)
	}
	if err := set.SuggestBinding(xr.ProfileOculusTouch, []xr.Binding{xr.NewBinding(testAction, xr.PathRightTrigger)}); err != nil {
		t.Fatal(err)
	}
	return &setup
}

func startRuntime(t *testing.T, src xr.Source, enabled bool) (*xr.Runtime, *xr.ActionSets) {
	t.Helper()
	rt := xr.NewRuntime(src, enabled)
	sets, err := rt.Attach(testSetup(t))
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		if err := rt.Begin(); err != nil {
			t.Fatal(err)
		}
	}
	return rt, sets
}

func addListener(t *testing.T, w *ecs.World) picking.PointerID {
	t.Helper()
	e := ecs.CreateEntity(w)
	id := picking.NewCustomPointer()
	if err := ecs.Add(w, e, component.RayInteractorComponent.Kind(), &component.RayInteractor{Length: 10}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{ID: id}); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestTriggerSystemEmitsOnEdges(t *testing.T) {
	src := xr.NewScriptedSource(xr.ProfileOculusTouch).Script(xr.PathRightTrigger, false, true, true, false)
	rt, sets := startRuntime(t, src, true)

	w := ecs.NewWorld()
	a := addListener(t, w)
	// a pointer without a ray is not a listener
	other := ecs.CreateEntity(w)
	if err := ecs.Add(w, other, component.PointerComponent.Kind(), &component.Pointer{ID: picking.MousePointer()}); err != nil {
		t.Fatal(err)
	}

	var presses ecs.EventQueue[picking.InputPress]
	sched := ecs.NewScheduler(NewXrSyncSystem(rt), NewTriggerSystem(rt, sets, testSet, testAction, picking.ButtonPrimary, &presses))

	want := [][]picking.InputPress{
		nil,
		{{PointerID: a, Direction: picking.PressDown, Button: picking.ButtonPrimary}},
		nil,
		{{PointerID: a, Direction: picking.PressUp, Button: picking.ButtonPrimary}},
	}
	for i, tick := range want {
		if err := sched.Update(w); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
		got := presses.Drain()
		if len(got) != len(tick) {
			t.Fatalf("tick %d: expected %v, got %v", i+1, tick, got)
		}
		for j := range got {
			if got[j] != tick[j] {
				t.Fatalf("tick %d: expected %v, got %v", i+1, tick[j], got[j])
			}
		}
	}
}

func TestTriggerSystemQueryFailureIsFatal(t *testing.T) {
	src := xr.NewScriptedSource(xr.ProfileOculusTouch).Script(xr.PathRightTrigger, true)
	rt, sets := startRuntime(t, src, true)

	w := ecs.NewWorld()
	addListener(t, w)

	var presses ecs.EventQueue[picking.InputPress]
	trigger := NewTriggerSystem(rt, sets, testSet, "missing", picking.ButtonPrimary, &presses)
	sched := ecs.NewScheduler(NewXrSyncSystem(rt), trigger)

	err := sched.Update(w)
	if !errors.Is(err, xr.ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
	if presses.Len() != 0 || trigger.Pressed() {
		t.Fatalf("failed tick must not emit or update memory")
	}

	rt.End()
	ok := NewTriggerSystem(rt, sets, testSet, testAction, picking.ButtonPrimary, &presses)
	if err := ok.Update(w); !errors.Is(err, xr.ErrSessionNotRunning) {
		t.Fatalf("expected ErrSessionNotRunning, got %v", err)
	}
}

func TestTriggerSystemSkippedWithoutXR(t *testing.T) {
	src := xr.NewScriptedSource(xr.ProfileOculusTouch).Script(xr.PathRightTrigger, true)
	rt, sets := startRuntime(t, src, false)

	w := ecs.NewWorld()
	addListener(t, w)

	var presses ecs.EventQueue[picking.InputPress]
	sched := ecs.NewScheduler(NewXrSyncSystem(rt), NewTriggerSystem(rt, sets, testSet, testAction, picking.ButtonPrimary, &presses))
	if err := sched.Update(w); err != nil {
		t.Fatalf("disabled runtime should skip the trigger, got %v", err)
	}
	if presses.Len() != 0 {
		t.Fatalf("expected no presses without XR")
	}
}

func TestTrackerSystem(t *testing.T) {
	src := xr.NewScriptedSource(xr.ProfileOculusTouch).SetPose(xr.HandRight, xr.Pose{X: 1, Y: 2, Angle: 0.5})
	w := ecs.NewWorld()

	right := ecs.CreateEntity(w)
	left := ecs.CreateEntity(w)
	for _, c := range []struct {
		e    ecs.Entity
		hand xr.Hand
	}{{right, xr.HandRight}, {left, xr.HandLeft}} {
		if err := ecs.Add(w, c.e, component.TrackerComponent.Kind(), &component.Tracker{Hand: c.hand}); err != nil {
			t.Fatal(err)
		}
		if err := ecs.Add(w, c.e, component.TransformComponent.Kind(), &component.Transform{X: -5}); err != nil {
			t.Fatal(err)
		}
	}

	if err := NewTrackerSystem(src).Update(w); err != nil {
		t.Fatal(err)
	}
	tr, _ := ecs.Get(w, right, component.TransformComponent.Kind())
	if tr.X != 1 || tr.Y != 2 || tr.Rotation != 0.5 {
		t.Fatalf("right hand not posed: %+v", tr)
	}
	lt, _ := ecs.Get(w, left, component.TransformComponent.Kind())
	tracker, _ := ecs.Get(w, left, component.TrackerComponent.Kind())
	if lt.X != -5 || tracker.Tracked {
		t.Fatalf("untracked left hand should keep its transform: %+v %+v", lt, tracker)
	}
}

func TestSetLogLevelReachesPackageLogger(t *testing.T) {
	before := logger.Level
	t.Cleanup(func() { logger.Level = before })

	for _, tc := range []struct {
		name string
		want golog.Level
	}{
		{"debug", golog.DebugLevel},
		{"error", golog.ErrorLevel},
	} {
		SetLogLevel(tc.name)
		if logger.Level != tc.want {
			t.Fatalf("SetLogLevel(%q): logger at %v", tc.name, logger.Level)
		}
	}
}
