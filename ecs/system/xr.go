package system

import (
	"github.com/kataras/golog"
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/xr"
)

var logger = golog.Child("[system]")

// SetLogLevel sets the level of the package logger.
func SetLogLevel(level string) {
	logger.SetLevel(level)
}

// XrSyncSystem polls the XR runtime once per tick, before any system reads
// action state.
type XrSyncSystem struct {
	runtime *xr.Runtime
}

func NewXrSyncSystem(runtime *xr.Runtime) *XrSyncSystem {
	return &XrSyncSystem{runtime: runtime}
}

func (s *XrSyncSystem) Update(w *ecs.World) error {
	return s.runtime.Sync()
}

// TrackerSystem copies tracked hand poses onto controller transforms.
type TrackerSystem struct {
	poses xr.PoseSource
}

func NewTrackerSystem(poses xr.PoseSource) *TrackerSystem {
	return &TrackerSystem{poses: poses}
}

func (s *TrackerSystem) Update(w *ecs.World) error {
	if s.poses == nil {
		return nil
	}
	ecs.ForEach2(w, component.TrackerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tracker *component.Tracker, transform *component.Transform) {
		pose, ok := s.poses.Pose(tracker.Hand)
		if ok != tracker.Tracked {
			logger.Debugf("%s hand tracking %v", tracker.Hand, ok)
		}
		tracker.Tracked = ok
		if !ok {
			return
		}
		transform.X = pose.X
		transform.Y = pose.Y
		transform.Rotation = pose.Angle
	})
	return nil
}
