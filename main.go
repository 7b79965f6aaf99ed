package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs/entity"
	"github.com/milk9111/xrpicking/ecs/system"
	"github.com/milk9111/xrpicking/xr"
)

var logger = golog.Child("[main]")

// setLogLevel applies level to the default logger and every package logger.
func setLogLevel(level string) {
	golog.SetLevel(level)
	logger.SetLevel(level)
	xr.SetLogLevel(level)
	system.SetLogLevel(level)
	entity.SetLogLevel(level)
}

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	enableXR := flag.Bool("xr", true, "run the emulated XR session; trigger input is ignored when off")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	replay := flag.String("replay", "", "replay trigger samples instead of reading input, e.g. 0110")
	watch := flag.Bool("watch", false, "hot reload prefabs/scene.yaml")
	multiSelect := flag.Bool("multi", false, "keep earlier selections when clicking")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneFile := flag.String("scene", "", "scene spec in prefabs/ (defaults to the embedded scene.yaml)")
	actionsFile := flag.String("actions", "", "action spec in prefabs/ (defaults to the embedded actions.yaml)")
	flag.Parse()

	level := *logLevel
	if *debug {
		level = "debug"
	}
	setLogLevel(level)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("xrpicking")
	ebiten.SetTPS(tickRate)

	game, err := NewGame(Options{
		Debug:       *debug,
		XR:          *enableXR,
		SceneFile:   *sceneFile,
		ActionsFile: *actionsFile,
		Replay:      *replay,
		Watch:       *watch,
		MultiSelect: *multiSelect,
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		game.Close()
		logger.Fatal(err)
	}
}
