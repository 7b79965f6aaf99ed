package xr

import (
	"fmt"
	"strings"
)

const (
	ProfileOculusTouch = "/interaction_profiles/oculus/touch_controller"
	ProfileSimple      = "/interaction_profiles/khr/simple_controller"

	PathRightTrigger = "/user/hand/right/input/trigger/value"
	PathLeftTrigger  = "/user/hand/left/input/trigger/value"
)

// Source is the hardware the runtime polls once per sync.
type Source interface {
	// Profile is the interaction profile the device presents.
	Profile() string
	// Poll latches the device state for this tick.
	Poll() error
	// Pressed reports a boolean input path as of the last Poll.
	Pressed(path string) bool
}

type Hand uint8

const (
	HandLeft Hand = iota
	HandRight
)

func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

func ParseHand(s string) (Hand, error) {
	switch s {
	case "left":
		return HandLeft, nil
	case "right":
		return HandRight, nil
	}
	return 0, fmt.Errorf("xr: unknown hand %q", s)
}

// Pose is a controller's position and aim in world units and radians.
type Pose struct {
	X, Y  float64
	Angle float64
}

// PoseSource reports tracked controller poses.
type PoseSource interface {
	Pose(hand Hand) (Pose, bool)
}

// ScriptedSource replays fixed samples for each path, one per Poll. After
// the script runs out the last sample holds.
type ScriptedSource struct {
	profile  string
	samples  map[string][]bool
	poses    map[Hand]Pose
	fail     map[int]error
	attempts int
	polls    int
}

func NewScriptedSource(profile string) *ScriptedSource {
	return &ScriptedSource{
		profile: profile,
		samples: make(map[string][]bool),
		poses:   make(map[Hand]Pose),
		fail:    make(map[int]error),
	}
}

// Script sets the samples returned for path.
func (s *ScriptedSource) Script(path string, samples ...bool) *ScriptedSource {
	s.samples[path] = append([]bool(nil), samples...)
	return s
}

// FailAt makes the n-th Poll call (1-based) fail with err without
// advancing the script.
func (s *ScriptedSource) FailAt(n int, err error) *ScriptedSource {
	s.fail[n] = err
	return s
}

func (s *ScriptedSource) SetPose(hand Hand, p Pose) *ScriptedSource {
	s.poses[hand] = p
	return s
}

func (s *ScriptedSource) Profile() string {
	return s.profile
}

func (s *ScriptedSource) Poll() error {
	s.attempts++
	if err, ok := s.fail[s.attempts]; ok {
		return err
	}
	s.polls++
	return nil
}

func (s *ScriptedSource) Pressed(path string) bool {
	samples := s.samples[path]
	if len(samples) == 0 || s.polls == 0 {
		return false
	}
	i := s.polls - 1
	if i >= len(samples) {
		i = len(samples) - 1
	}
	return samples[i]
}

func (s *ScriptedSource) Pose(hand Hand) (Pose, bool) {
	p, ok := s.poses[hand]
	return p, ok
}

// ParseScript reads a sample string such as "0110" or "0,1,1,0".
func ParseScript(s string) ([]bool, error) {
	s = strings.ReplaceAll(s, ",", "")
	out := make([]bool, 0, len(s))
	for i, c := range s {
		switch c {
		case '0', 'f':
			out = append(out, false)
		case '1', 't':
			out = append(out, true)
		case ' ':
		default:
			return nil, fmt.Errorf("xr: script: bad sample %q at %d", c, i)
		}
	}
	return out, nil
}
