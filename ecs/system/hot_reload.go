package system

import (
	"path/filepath"

	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/entity"
	"github.com/milk9111/xrpicking/prefabs"
)

// HotReloadSystem applies edits to the scene file while the game runs.
// A broken file is logged and skipped; the running scene is kept.
type HotReloadSystem struct {
	file     string
	changes  <-chan string
	errs     <-chan error
	onReload func(*prefabs.SceneSpec)
}

func NewHotReloadSystem(file string, changes <-chan string, errs <-chan error, onReload func(*prefabs.SceneSpec)) *HotReloadSystem {
	return &HotReloadSystem{file: file, changes: changes, errs: errs, onReload: onReload}
}

func (s *HotReloadSystem) Update(w *ecs.World) error {
	reload := false
	for {
		select {
		case name, ok := <-s.changes:
			if !ok {
				s.changes = nil
				continue
			}
			if filepath.Base(name) == filepath.Base(s.file) {
				reload = true
			}
			continue
		case err, ok := <-s.errs:
			if !ok {
				s.errs = nil
				continue
			}
			logger.Warnf("scene watcher: %v", err)
			continue
		default:
		}
		break
	}
	if !reload {
		return nil
	}

	spec, err := prefabs.LoadSceneSpec(s.file)
	if err != nil {
		logger.Warnf("reload %s: %v", s.file, err)
		return nil
	}
	if _, err := entity.ApplySceneSpec(w, spec); err != nil {
		logger.Warnf("reload %s: %v", s.file, err)
		return nil
	}
	if s.onReload != nil {
		s.onReload(spec)
	}
	return nil
}
