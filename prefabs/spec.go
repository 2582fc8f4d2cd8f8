package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSceneFile is the scene spec shipped with the game.
const DefaultSceneFile = "scenes.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SceneFileSpec struct {
	Global GlobalSpec  `yaml:"global"`
	Scenes []SceneSpec `yaml:"scenes"`
}

func LoadSceneFileSpec(filename string) (*SceneFileSpec, error) {
	spec, err := LoadSpec[SceneFileSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type GlobalSpec struct {
	Platforms []PlatformSpec `yaml:"platforms"`
}

type SceneSpec struct {
	Name      string         `yaml:"name"`
	Span      float64        `yaml:"span"`
	Layers    []LayerSpec    `yaml:"layers"`
	Effect    *LayerSpec     `yaml:"effect"`
	Weights   []WeightSpec   `yaml:"weights"`
	Platforms []PlatformSpec `yaml:"platforms"`
	Enemies   EnemiesSpec    `yaml:"enemies"`
}

type LayerSpec struct {
	Image string     `yaml:"image"`
	Speed *float64   `yaml:"speed"`
	Color *YAMLColor `yaml:"color"`
}

type WeightSpec struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

type PlatformSpec struct {
	Type   string  `yaml:"type"`
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Y      float64 `yaml:"y"`
	Scenes []int   `yaml:"scenes"`
}

type EnemiesSpec struct {
	Interval float64          `yaml:"interval"`
	Spawn    []EnemySpawnSpec `yaml:"spawn"`
}

type EnemySpawnSpec struct {
	Type   string  `yaml:"type"`
	Image  string  `yaml:"image"`
	Script string  `yaml:"script"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type YAMLColor struct {
	color.Color
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
