package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/prefabs"
	"github.com/milk9111/xrpicking/xr"
)

var logger = golog.Child("[bindcheck]")

func main() {
	sceneFile := flag.String("scene", "", "scene spec (defaults to the embedded scene.yaml)")
	actionsFile := flag.String("actions", "", "action spec (defaults to the embedded actions.yaml)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	golog.SetLevel(*logLevel)
	logger.SetLevel(*logLevel)
	xr.SetLogLevel(*logLevel)

	if err := run(os.Stdout, *sceneFile, *actionsFile); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// run validates both specs and prints the scene summary and every suggested
// binding. It fails when the trigger action cannot be read under the
// emulator profile.
func run(out io.Writer, sceneFile, actionsFile string) error {
	scene, err := prefabs.LoadSceneSpec(sceneFile)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	pickable, rays := 0, 0
	for _, m := range scene.Meshes {
		if m.Pickable {
			pickable++
		}
	}
	for _, c := range scene.Controllers {
		if c.Ray != nil {
			rays++
		}
	}
	fmt.Fprintf(out, "scene %s: %d meshes (%d pickable), %d controllers (%d with rays)\n", scene.Name, len(scene.Meshes), pickable, len(scene.Controllers), rays)
	if rays == 0 {
		logger.Warnf("scene %s has no ray controllers, the trigger has no listeners", scene.Name)
	}

	actions, err := prefabs.LoadActionsSpec(actionsFile)
	if err != nil {
		return fmt.Errorf("actions: %w", err)
	}
	setup, err := actions.Setup()
	if err != nil {
		return fmt.Errorf("actions: %w", err)
	}

	for _, set := range setup.Sets() {
		fmt.Fprintf(out, "set %s %q priority %d\n", set.Name, set.Pretty, set.Priority)
		for _, a := range set.Actions() {
			fmt.Fprintf(out, "  action %s %q (%s)\n", a.Name, a.Pretty, a.Type)
		}
		for _, p := range set.Profiles() {
			fmt.Fprintf(out, "  profile %s\n", p)
			for _, b := range set.Suggestions(p) {
				fmt.Fprintf(out, "    %s -> %s\n", b.Action, b.Path)
			}
		}
	}

	emulator, err := xr.NewEbitenSource(actions.Emulator.Profile, actions.Emulator.Inputs)
	if err != nil {
		return err
	}
	button, err := actions.Trigger.PointerButton()
	if err != nil {
		return err
	}

	sets, err := xr.NewRuntime(emulator, false).Attach(setup)
	if err != nil {
		return err
	}
	if _, err := sets.GetActionBool(actions.Trigger.ActionSet, actions.Trigger.Action); err != nil {
		return fmt.Errorf("trigger: %w", err)
	}
	paths := sets.Bindings(actions.Trigger.ActionSet, actions.Trigger.Action)
	if len(paths) == 0 {
		return fmt.Errorf("trigger: %s/%s has no binding for emulator profile %s", actions.Trigger.ActionSet, actions.Trigger.Action, actions.Emulator.Profile)
	}

	mapped := make([]string, 0, len(actions.Emulator.Inputs))
	for path := range actions.Emulator.Inputs {
		mapped = append(mapped, path)
	}
	sort.Strings(mapped)
	bound := make(map[string]bool, len(paths))
	for _, p := range paths {
		bound[p] = true
	}
	for _, p := range paths {
		if _, ok := actions.Emulator.Inputs[p]; !ok {
			logger.Warnf("trigger path %s has no emulator input", p)
		}
	}
	for _, p := range mapped {
		if !bound[p] {
			logger.Debugf("emulator input %s drives no trigger binding", p)
		}
	}

	fmt.Fprintf(out, "trigger %s/%s (%s) under %s: %v\n", actions.Trigger.ActionSet, actions.Trigger.Action, button, actions.Emulator.Profile, paths)
	return nil
}
