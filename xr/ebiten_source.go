package xr

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

type inputKind uint8

const (
	inputMouse inputKind = iota
	inputKey
	inputGamepad
)

type physicalInput struct {
	kind   inputKind
	mouse  ebiten.MouseButton
	key    ebiten.Key
	button ebiten.StandardGamepadButton
}

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

var keyNames = map[string]ebiten.Key{
	"space": ebiten.KeySpace,
	"enter": ebiten.KeyEnter,
	"shift": ebiten.KeyShift,
	"tab":   ebiten.KeyTab,
	"e":     ebiten.KeyE,
	"f":     ebiten.KeyF,
	"q":     ebiten.KeyQ,
	"x":     ebiten.KeyX,
	"z":     ebiten.KeyZ,
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"right_bottom":       ebiten.StandardGamepadButtonRightBottom,
	"right_right":        ebiten.StandardGamepadButtonRightRight,
	"right_left":         ebiten.StandardGamepadButtonRightLeft,
	"right_top":          ebiten.StandardGamepadButtonRightTop,
	"front_top_left":     ebiten.StandardGamepadButtonFrontTopLeft,
	"front_top_right":    ebiten.StandardGamepadButtonFrontTopRight,
	"front_bottom_left":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"front_bottom_right": ebiten.StandardGamepadButtonFrontBottomRight,
}

// parseInput reads an emulator input name such as "mouse:left",
// "key:space" or "gamepad:front_bottom_right".
func parseInput(s string) (physicalInput, error) {
	kind, name, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	if !ok {
		return physicalInput{}, fmt.Errorf("xr: input %q: missing device prefix", s)
	}
	switch kind {
	case "mouse":
		if b, ok := mouseButtons[name]; ok {
			return physicalInput{kind: inputMouse, mouse: b}, nil
		}
	case "key":
		if k, ok := keyNames[name]; ok {
			return physicalInput{kind: inputKey, key: k}, nil
		}
	case "gamepad":
		if b, ok := gamepadButtons[name]; ok {
			return physicalInput{kind: inputGamepad, button: b}, nil
		}
	default:
		return physicalInput{}, fmt.Errorf("xr: input %q: unknown device %q", s, kind)
	}
	return physicalInput{}, fmt.Errorf("xr: input %q: unknown %s input %q", s, kind, name)
}

// EbitenSource emulates a tracked controller pair with mouse, keyboard and
// gamepad input. The right hand aims at the cursor.
type EbitenSource struct {
	profile string
	inputs  map[string][]physicalInput
	latched map[string]bool

	rest          map[Hand]Pose
	cursorToWorld func(x, y int) (float64, float64)
}

// NewEbitenSource maps each OpenXR input path to the physical inputs that
// drive it.
func NewEbitenSource(profile string, inputs map[string][]string) (*EbitenSource, error) {
	s := &EbitenSource{
		profile: profile,
		inputs:  make(map[string][]physicalInput, len(inputs)),
		latched: make(map[string]bool, len(inputs)),
		rest:    make(map[Hand]Pose),
	}
	for path, names := range inputs {
		for _, n := range names {
			in, err := parseInput(n)
			if err != nil {
				return nil, fmt.Errorf("xr: emulator path %s: %w", path, err)
			}
			s.inputs[path] = append(s.inputs[path], in)
		}
	}
	return s, nil
}

func (s *EbitenSource) Profile() string {
	return s.profile
}

// Poll reads every mapped input once so all readers in a tick agree.
func (s *EbitenSource) Poll() error {
	gamepads := ebiten.AppendGamepadIDs(nil)
	for path, ins := range s.inputs {
		pressed := false
		for _, in := range ins {
			if s.read(in, gamepads) {
				pressed = true
				break
			}
		}
		s.latched[path] = pressed
	}
	return nil
}

func (s *EbitenSource) read(in physicalInput, gamepads []ebiten.GamepadID) bool {
	switch in.kind {
	case inputMouse:
		return ebiten.IsMouseButtonPressed(in.mouse)
	case inputKey:
		return ebiten.IsKeyPressed(in.key)
	case inputGamepad:
		for _, id := range gamepads {
			if ebiten.IsStandardGamepadLayoutAvailable(id) && ebiten.IsStandardGamepadButtonPressed(id, in.button) {
				return true
			}
		}
	}
	return false
}

func (s *EbitenSource) Pressed(path string) bool {
	return s.latched[path]
}

// SetRestPose places a hand. Tracking only changes its aim.
func (s *EbitenSource) SetRestPose(hand Hand, p Pose) {
	s.rest[hand] = p
}

// SetCursorMapping converts screen pixels to world units for aiming.
func (s *EbitenSource) SetCursorMapping(fn func(x, y int) (float64, float64)) {
	s.cursorToWorld = fn
}

func (s *EbitenSource) Pose(hand Hand) (Pose, bool) {
	p, ok := s.rest[hand]
	if !ok {
		return Pose{}, false
	}
	switch hand {
	case HandRight:
		if s.cursorToWorld != nil {
			wx, wy := s.cursorToWorld(ebiten.CursorPosition())
			if wx != p.X || wy != p.Y {
				p.Angle = math.Atan2(wy-p.Y, wx-p.X)
			}
		}
	case HandLeft:
		for _, id := range ebiten.AppendGamepadIDs(nil) {
			x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Hypot(x, y) > stickDeadzone {
				// screen y grows downward, world y grows upward
				p.Angle = math.Atan2(-y, x)
				break
			}
		}
	}
	return p, true
}

const stickDeadzone = 0.2
