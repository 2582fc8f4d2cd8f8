package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/player"
	"github.com/rs/zerolog"
)

// dispatch is appended to every script; a script must define update.
const dispatch = `
if __phase == "update" {
	update(__engine, __state)
}
`

// Program is a compiled enemy script. Each enemy runs its own clone.
type Program struct {
	name     string
	compiled *tengo.Compiled
	log      zerolog.Logger

	width  float64
	height float64
}

// Compile builds src and reads its optional width and height globals.
func Compile(name string, src []byte, log zerolog.Logger) (*Program, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatch))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	p := &Program{
		name:     name,
		compiled: compiled,
		log:      log.With().Str("script", name).Logger(),
		width:    32,
		height:   32,
	}

	// run the top level once so globals are populated
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	if v := globalFloat(compiled, "width"); v > 0 {
		p.width = v
	}
	if v := globalFloat(compiled, "height"); v > 0 {
		p.height = v
	}
	return p, nil
}

func (p *Program) Name() string { return p.name }

// Size is the enemy box declared by the script.
func (p *Program) Size() (w, h float64) { return p.width, p.height }

// Factory returns a level.EnemyFactory spawning enemies driven by p.
func (p *Program) Factory(img level.Image) level.EnemyFactory {
	return func(_ level.Rand, x, y float64) *level.Enemy {
		e := level.NewEnemy(p.name, x, y, p.width, p.height, p.NewMotion())
		e.Image = img
		return e
	}
}

// NewMotion returns an independent runtime with empty state.
func (p *Program) NewMotion() *Motion {
	return &Motion{
		prog:     p,
		compiled: p.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

// Motion runs a script's update once per frame.
type Motion struct {
	prog     *Program
	compiled *tengo.Compiled
	state    *tengo.Map
	frame    int
	failed   bool
}

// Step runs update. A failing script marks its enemy for removal.
func (m *Motion) Step(e *level.Enemy, pl *player.Player) {
	if m.failed {
		e.MarkedForRemoval = true
		return
	}
	m.frame++
	if err := m.run(buildEngine(m, e, pl)); err != nil {
		m.failed = true
		e.MarkedForRemoval = true
		m.prog.log.Error().Err(err).Int("frame", m.frame).Msg("enemy script failed")
	}
}

func (m *Motion) State() map[string]any {
	out, _ := objectToAny(m.state).(map[string]any)
	return out
}

func (m *Motion) run(engine *tengo.ImmutableMap) error {
	if err := m.compiled.Set("__phase", "update"); err != nil {
		return err
	}
	if err := m.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := m.compiled.Set("__state", m.state); err != nil {
		return err
	}
	return m.compiled.Run()
}

func buildEngine(m *Motion, e *level.Enemy, pl *player.Player) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(e.Pos.X, e.Pos.Y), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "position", Expected: "float", Found: args[0].TypeName()}
		}
		e.Pos.X, e.Pos.Y = x, y
		return tengo.TrueValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		dx, _ := tengo.ToFloat64(args[0])
		dy, _ := tengo.ToFloat64(args[1])
		e.Pos.X += dx
		e.Pos.Y += dy
		return tengo.TrueValue, nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if pl == nil {
			return pair(0, 0), nil
		}
		return pair(pl.Pos.X, pl.Pos.Y), nil
	}}

	values["player_dead"] = &tengo.UserFunction{Name: "player_dead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if pl != nil && pl.Dead {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(m.frame)}, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e.MarkedForRemoval = true
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		m.prog.log.Debug().Int("frame", m.frame).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func pair(a, b float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: a}, &tengo.Float{Value: b}}}
}

func globalFloat(c *tengo.Compiled, name string) float64 {
	if !c.IsDefined(name) {
		return 0
	}
	v, ok := tengo.ToFloat64(c.Get(name).Object())
	if !ok {
		return 0
	}
	return v
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return strings.Trim(obj.String(), "\"")
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case nil:
		return nil
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
