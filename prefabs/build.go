package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/script"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownPlatformKind = errors.New("unknown platform kind")
	ErrUnknownEnemyType    = errors.New("unknown enemy type")
)

// ImageLoader resolves an asset path to a drawable image.
type ImageLoader func(path string) (level.Image, error)

type BuildOptions struct {
	Images ImageLoader
	Logger zerolog.Logger
}

// Setup is a scene file turned into level configuration.
type Setup struct {
	Scenes []level.SceneSetup
	Global []level.SpawnConfig
}

// LoadSetup loads and builds a scene file in one step.
func LoadSetup(filename string, opts BuildOptions) (*Setup, error) {
	spec, err := LoadSceneFileSpec(filename)
	if err != nil {
		return nil, err
	}
	setup, err := Build(spec, opts)
	if err != nil {
		return nil, fmt.Errorf("prefabs: build %s: %w", filename, err)
	}
	return setup, nil
}

// Build converts spec into level scene setups. Missing images degrade to
// placeholders; unknown kinds and broken scripts are errors.
func Build(spec *SceneFileSpec, opts BuildOptions) (*Setup, error) {
	if spec == nil {
		return nil, errors.New("nil scene spec")
	}
	b := builder{opts: opts, scripts: map[string]*script.Program{}}

	global, err := b.platforms(spec.Global.Platforms)
	if err != nil {
		return nil, fmt.Errorf("global: %w", err)
	}
	out := &Setup{Global: global}

	for i, s := range spec.Scenes {
		scene, err := b.scene(s)
		if err != nil {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("scene %s: %w", name, err)
		}
		out.Scenes = append(out.Scenes, scene)
	}
	return out, nil
}

type builder struct {
	opts    BuildOptions
	scripts map[string]*script.Program
}

func (b *builder) scene(s SceneSpec) (level.SceneSetup, error) {
	setup := level.SceneSetup{
		Name: s.Name,
		Span: s.Span,
	}

	for i, ls := range s.Layers {
		setup.Layers = append(setup.Layers, b.layer(ls, i))
	}
	if s.Effect != nil {
		effect := b.layer(*s.Effect, 0)
		if s.Effect.Color == nil {
			effect.Placeholder = nil
		}
		setup.Effect = effect
	}

	platforms, err := b.platforms(s.Platforms)
	if err != nil {
		return setup, err
	}
	setup.Platforms = platforms

	for _, w := range s.Weights {
		kind, ok := level.ParseKind(strings.ToLower(w.Type))
		if !ok {
			return setup, fmt.Errorf("weight %q: %w", w.Type, ErrUnknownPlatformKind)
		}
		setup.Weights = append(setup.Weights, level.Weight{Kind: kind, Weight: w.Weight})
	}

	setup.Enemies.Interval = s.Enemies.Interval
	for _, es := range s.Enemies.Spawn {
		f, err := b.enemy(es)
		if err != nil {
			return setup, err
		}
		setup.Enemies.Factories = append(setup.Enemies.Factories, f)
	}
	return setup, nil
}

func (b *builder) layer(ls LayerSpec, depth int) *level.ParallaxLayer {
	speed := level.LayerSpeeds[min(depth, len(level.LayerSpeeds)-1)]
	if ls.Speed != nil {
		speed = *ls.Speed
	}
	l := level.NewParallaxLayer(b.image(ls.Image), speed)
	if ls.Color != nil {
		l.Placeholder = ls.Color.Color
	}
	return l
}

func (b *builder) image(path string) level.Image {
	if path == "" || b.opts.Images == nil {
		return nil
	}
	img, err := b.opts.Images(path)
	if err != nil {
		b.opts.Logger.Warn().Err(err).Str("image", path).Msg("using placeholder")
		return nil
	}
	return img
}

func (b *builder) platforms(specs []PlatformSpec) ([]level.SpawnConfig, error) {
	out := make([]level.SpawnConfig, 0, len(specs))
	for _, ps := range specs {
		kind, ok := level.ParseKind(strings.ToLower(ps.Type))
		if !ok {
			return nil, fmt.Errorf("platform %q: %w", ps.Type, ErrUnknownPlatformKind)
		}
		out = append(out, level.SpawnConfig{
			Kind:         kind,
			HeightBlocks: ps.Height,
			WidthBlocks:  ps.Width,
			Y:            ps.Y,
			Scenes:       ps.Scenes,
		})
	}
	return out, nil
}

func (b *builder) enemy(es EnemySpawnSpec) (level.EnemyFactory, error) {
	img := b.image(es.Image)

	switch strings.ToLower(es.Type) {
	case "fly":
		w, h := es.Width, es.Height
		return func(rng level.Rand, x, y float64) *level.Enemy {
			e := level.NewFlyEnemy(rng, x, y, img)
			if w > 0 && h > 0 {
				e.Size.Width, e.Size.Height = w, h
			}
			return e
		}, nil
	case "script":
		prog, err := b.script(es.Script)
		if err != nil {
			return nil, err
		}
		w, h := es.Width, es.Height
		f := prog.Factory(img)
		return func(rng level.Rand, x, y float64) *level.Enemy {
			e := f(rng, x, y)
			if w > 0 && h > 0 {
				e.Size.Width, e.Size.Height = w, h
			}
			return e
		}, nil
	default:
		return nil, fmt.Errorf("enemy %q: %w", es.Type, ErrUnknownEnemyType)
	}
}

func (b *builder) script(name string) (*script.Program, error) {
	if p, ok := b.scripts[name]; ok {
		return p, nil
	}
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	p, err := script.Compile(name, src, b.opts.Logger)
	if err != nil {
		return nil, err
	}
	b.scripts[name] = p
	return p, nil
}
