package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/ecs/entity"
	"github.com/milk9111/xrpicking/ecs/system"
	"github.com/milk9111/xrpicking/picking"
	"github.com/milk9111/xrpicking/prefabs"
	"github.com/milk9111/xrpicking/xr"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tickRate   = 60
)

var backgroundColor = color.NRGBA{R: 0x1a, G: 0x1d, B: 0x24, A: 0xff}

// Options configure a Game. Empty file names load the embedded prefabs.
type Options struct {
	Debug       bool
	XR          bool
	SceneFile   string
	ActionsFile string
	Replay      string
	Watch       bool
	MultiSelect bool
}

type Game struct {
	opts   Options
	frames int

	world   *ecs.World
	scene   *entity.Scene
	runtime *xr.Runtime
	sets    *xr.ActionSets
	source  xr.Source

	scheduler *ecs.Scheduler
	trigger   *system.TriggerSystem
	picking   *system.PickingSystem
	render    *system.RenderSystem

	presses ecs.EventQueue[picking.InputPress]
	events  ecs.EventQueue[picking.PointerEvent[ecs.Entity]]
	last    *picking.PointerEvent[ecs.Entity]

	watcher *prefabs.Watcher
	hud     *Hud
}

// NewGame builds the game with the emulated controller source, or a
// scripted one when opts.Replay is set.
func NewGame(opts Options) (*Game, error) {
	actions, err := prefabs.LoadActionsSpec(opts.ActionsFile)
	if err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}

	var source xr.Source
	if opts.Replay != "" {
		source = xr.NewScriptedSource(actions.Emulator.Profile)
	} else {
		src, err := xr.NewEbitenSource(actions.Emulator.Profile, actions.Emulator.Inputs)
		if err != nil {
			return nil, err
		}
		source = src
	}
	return newGame(opts, actions, source)
}

func newGame(opts Options, actions *prefabs.ActionsSpec, source xr.Source) (*Game, error) {
	g := &Game{opts: opts, world: ecs.NewWorld(), source: source}

	setup, err := actions.Setup()
	if err != nil {
		return nil, fmt.Errorf("setup actions: %w", err)
	}
	button, err := actions.Trigger.PointerButton()
	if err != nil {
		return nil, err
	}

	g.runtime = xr.NewRuntime(source, opts.XR)
	if g.sets, err = g.runtime.Attach(setup); err != nil {
		return nil, fmt.Errorf("attach actions: %w", err)
	}
	if g.runtime.Enabled() {
		if err := g.runtime.Begin(); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("xr disabled, trigger input is ignored")
	}

	sceneSpec, err := prefabs.LoadSceneSpec(opts.SceneFile)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	if g.scene, err = entity.SpawnScene(g.world, sceneSpec); err != nil {
		return nil, err
	}

	if err := g.prepareSource(source, actions, sceneSpec); err != nil {
		return nil, err
	}

	g.render = system.NewRenderSystem()
	g.applyRayColors(sceneSpec)

	raycast := system.NewRaycastBackendSystem()
	g.trigger = system.NewTriggerSystem(g.runtime, g.sets, actions.Trigger.ActionSet, actions.Trigger.Action, button, &g.presses)
	g.picking = system.NewPickingSystem(&g.presses, raycast.Hits, &g.events)
	g.picking.MultiSelect = opts.MultiSelect

	var poses xr.PoseSource
	if ps, ok := source.(xr.PoseSource); ok {
		poses = ps
	}

	systems := []ecs.System{
		system.NewXrSyncSystem(g.runtime),
		system.NewTrackerSystem(poses),
		g.trigger,
		raycast,
		g.picking,
		system.NewHighlightSystem(1.0 / tickRate),
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warnf("scene watcher disabled: %v", err)
		} else {
			g.watcher = w
			sceneFile := opts.SceneFile
			if sceneFile == "" {
				sceneFile = prefabs.SceneFile
			}
			systems = append(systems, system.NewHotReloadSystem(sceneFile, w.Events, w.Errors, g.reloadScene))
		}
	}

	g.scheduler = ecs.NewScheduler(systems...)
	return g, nil
}

// placeHands feeds the scene's controller poses to the source. The tracker
// copies source poses over controller transforms every tick.
func (g *Game) placeHands(spec *prefabs.SceneSpec) error {
	for _, c := range spec.Controllers {
		hand, err := xr.ParseHand(c.Hand)
		if err != nil {
			return err
		}
		pose := xr.Pose{X: c.Transform.X, Y: c.Transform.Y, Angle: c.Transform.Rotation}
		switch src := g.source.(type) {
		case *xr.EbitenSource:
			src.SetRestPose(hand, pose)
		case *xr.ScriptedSource:
			src.SetPose(hand, pose)
		}
	}
	return nil
}

// prepareSource places the hands and, for a replay, scripts every path
// bound to the trigger action.
func (g *Game) prepareSource(source xr.Source, actions *prefabs.ActionsSpec, spec *prefabs.SceneSpec) error {
	if err := g.placeHands(spec); err != nil {
		return err
	}

	switch src := source.(type) {
	case *xr.EbitenSource:
		src.SetCursorMapping(func(x, y int) (float64, float64) {
			return system.CameraViewport(g.world, baseWidth, baseHeight).ScreenToWorld(float64(x), float64(y))
		})
	case *xr.ScriptedSource:
		if g.opts.Replay == "" {
			return nil
		}
		samples, err := xr.ParseScript(g.opts.Replay)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		paths := g.sets.Bindings(actions.Trigger.ActionSet, actions.Trigger.Action)
		if len(paths) == 0 {
			return fmt.Errorf("replay: %s/%s has no binding for %s", actions.Trigger.ActionSet, actions.Trigger.Action, src.Profile())
		}
		for _, p := range paths {
			src.Script(p, samples...)
		}
		logger.Infof("replaying %d trigger samples on %v", len(samples), paths)
	}
	return nil
}

// reloadScene runs after a scene edit was applied to the world.
func (g *Game) reloadScene(spec *prefabs.SceneSpec) {
	if err := g.placeHands(spec); err != nil {
		logger.Warnf("reload hands: %v", err)
	}
	g.applyRayColors(spec)
}

func (g *Game) applyRayColors(spec *prefabs.SceneSpec) {
	for _, c := range spec.Controllers {
		e, ok := g.scene.Controllers[c.Name]
		if !ok || c.Ray == nil {
			continue
		}
		if col := c.Ray.Color.ColorOr(nil); col != nil {
			g.render.RayColors[e] = col
		}
	}
}

// Step runs one tick of the scheduler and records the pointer events it
// produced.
func (g *Game) Step() error {
	g.frames++
	if err := g.scheduler.Update(g.world); err != nil {
		return err
	}
	for _, evt := range g.events.Drain() {
		evt := evt
		g.last = &evt
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.picking.MultiSelect = !g.picking.MultiSelect
	}

	if err := g.Step(); err != nil {
		return err
	}

	if g.hud == nil {
		g.hud = NewHud()
	}
	g.hud.Refresh(g.status())
	g.hud.UI.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)

	if g.hud != nil {
		g.hud.UI.Draw(screen)
	}
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    TPS: %.2f", g.frames, ebiten.ActualFPS(), ebiten.ActualTPS()), 8, baseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close ends the session and stops the scene watcher.
func (g *Game) Close() error {
	g.runtime.End()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) name(e ecs.Entity) string {
	if n, ok := ecs.Get(g.world, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return e.String()
}

// SelectedNames lists selected entities by name.
func (g *Game) SelectedNames() []string {
	var names []string
	for _, e := range system.Selected(g.world) {
		names = append(names, g.name(e))
	}
	return names
}

// HoveredNames lists entities at least one pointer hovers.
func (g *Game) HoveredNames() []string {
	var names []string
	ecs.ForEach(g.world, component.InteractionComponent.Kind(), func(e ecs.Entity, in *component.Interaction) {
		if in.State != picking.InteractionNone {
			names = append(names, g.name(e))
		}
	})
	return names
}

func (g *Game) status() HudStatus {
	st := HudStatus{
		Session:     g.runtime.State().String(),
		XR:          g.runtime.Enabled(),
		Trigger:     g.trigger.Pressed(),
		Hovered:     g.HoveredNames(),
		Selected:    g.SelectedNames(),
		MultiSelect: g.picking.MultiSelect,
	}
	if g.last != nil {
		target := "nothing"
		if !g.last.Missed {
			target = g.name(g.last.Target)
		}
		st.LastEvent = fmt.Sprintf("%s %s on %s", g.last.Pointer, g.last.Kind, target)
	}
	return st
}
