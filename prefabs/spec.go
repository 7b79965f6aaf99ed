package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SceneFile   = "scene.yaml"
	ActionsFile = "actions.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := ParseSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func ParseSpec[T any](data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

type SceneSpec struct {
	Name        string           `yaml:"name"`
	Camera      CameraSpec       `yaml:"camera"`
	Light       LightSpec        `yaml:"light"`
	Meshes      []MeshSpec       `yaml:"meshes"`
	Controllers []ControllerSpec `yaml:"controllers"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	if filename == "" {
		filename = SceneFile
	}
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate checks names are unique and shapes and hands are known.
func (s *SceneSpec) Validate() error {
	seen := make(map[string]struct{})
	add := func(name string) error {
		if name == "" {
			return fmt.Errorf("scene entry without a name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate scene name %q", name)
		}
		seen[name] = struct{}{}
		return nil
	}
	if err := add(s.Camera.Name); err != nil {
		return err
	}
	if err := add(s.Light.Name); err != nil {
		return err
	}
	for _, m := range s.Meshes {
		if err := add(m.Name); err != nil {
			return err
		}
		if m.Shape != "plane" && m.Shape != "cube" {
			return fmt.Errorf("mesh %q: unknown shape %q", m.Name, m.Shape)
		}
		if m.Size <= 0 {
			return fmt.Errorf("mesh %q: size must be positive", m.Name)
		}
	}
	for _, c := range s.Controllers {
		if err := add(c.Name); err != nil {
			return err
		}
		if c.Hand != "left" && c.Hand != "right" {
			return fmt.Errorf("controller %q: unknown hand %q", c.Name, c.Hand)
		}
		if c.Ray != nil && c.Pointer == nil {
			return fmt.Errorf("controller %q: ray without pointer", c.Name)
		}
	}
	return nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CameraSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	LookAt    PointSpec     `yaml:"look_at"`
	Zoom      float64       `yaml:"zoom"`
}

type LightSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Intensity float64       `yaml:"intensity"`
	Range     float64       `yaml:"range"`
	Shadows   bool          `yaml:"shadows"`
	Color     *YAMLColor    `yaml:"color"`
}

type MeshSpec struct {
	Name      string        `yaml:"name"`
	Shape     string        `yaml:"shape"`
	Size      float64       `yaml:"size"`
	Color     *YAMLColor    `yaml:"color"`
	Pickable  bool          `yaml:"pickable"`
	Transform TransformSpec `yaml:"transform"`
}

type ControllerSpec struct {
	Name      string        `yaml:"name"`
	Hand      string        `yaml:"hand"`
	Transform TransformSpec `yaml:"transform"`
	Ray       *RaySpec      `yaml:"ray"`
	Pointer   *PointerSpec  `yaml:"pointer"`
}

type RaySpec struct {
	Length float64    `yaml:"length"`
	Color  *YAMLColor `yaml:"color"`
}

type PointerSpec struct {
	// ID is a uuid; empty means a fresh one per run.
	ID     string `yaml:"id"`
	Target string `yaml:"target"`
}

type ActionsSpec struct {
	ActionSets []ActionSetSpec `yaml:"action_sets"`
	Trigger    TriggerSpec     `yaml:"trigger"`
	Emulator   EmulatorSpec    `yaml:"emulator"`
}

func LoadActionsSpec(filename string) (*ActionsSpec, error) {
	if filename == "" {
		filename = ActionsFile
	}
	spec, err := LoadSpec[ActionsSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ActionSetSpec struct {
	Name     string        `yaml:"name"`
	Pretty   string        `yaml:"pretty"`
	Priority uint32        `yaml:"priority"`
	Actions  []ActionSpec  `yaml:"actions"`
	Bindings []ProfileSpec `yaml:"bindings"`
}

type ActionSpec struct {
	Name       string `yaml:"name"`
	Pretty     string `yaml:"pretty"`
	Type       string `yaml:"type"`
	Handedness string `yaml:"handedness"`
}

type ProfileSpec struct {
	Profile string        `yaml:"profile"`
	Paths   []BindingSpec `yaml:"paths"`
}

type BindingSpec struct {
	Action string `yaml:"action"`
	Path   string `yaml:"path"`
}

type TriggerSpec struct {
	ActionSet string `yaml:"action_set"`
	Action    string `yaml:"action"`
	Button    string `yaml:"button"`
}

type EmulatorSpec struct {
	Profile string              `yaml:"profile"`
	Inputs  map[string][]string `yaml:"inputs"`
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns the parsed color, or fallback when c is unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
