package player

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// State is the player's animation/behaviour state.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StateJumping    State = "jumping"
	StateDoubleJump State = "doubleJump"
	StateAttacking  State = "attacking"
	StateHurt       State = "hurt"
	StateDeath      State = "death"
)

type stateInfo struct {
	color  color.RGBA
	sprite string
}

var states = map[State]stateInfo{
	StateIdle:       {color: colornames.Red, sprite: "idle"},
	StateRunning:    {color: colornames.Lime, sprite: "running"},
	StateJumping:    {color: colornames.Blue, sprite: "jumping"},
	StateDoubleJump: {color: color.RGBA{R: 0x00, G: 0x77, B: 0xff, A: 0xff}, sprite: "doubleJump"},
	StateAttacking:  {color: colornames.Orange, sprite: "attacking"},
	StateHurt:       {color: color.RGBA{R: 0x99, G: 0x00, B: 0xcc, A: 0xff}, sprite: "hurt"},
	StateDeath:      {color: colornames.Black, sprite: "death"},
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	_, ok := states[s]
	return ok
}

// Color is the debug fill colour used when no sprite is drawn.
func (s State) Color() color.RGBA {
	if info, ok := states[s]; ok {
		return info.color
	}
	return colornames.Black
}

func (s State) SpriteKey() string {
	return states[s].sprite
}

// StateMachine holds the current state. Unknown states are ignored.
type StateMachine struct {
	current  State
	OnChange func(from, to State)
}

func NewStateMachine(initial State) *StateMachine {
	if !initial.Valid() {
		initial = StateIdle
	}
	return &StateMachine{current: initial}
}

func (m *StateMachine) Current() State {
	if m == nil {
		return StateIdle
	}
	return m.current
}

// Set switches to s and reports whether the state was accepted.
func (m *StateMachine) Set(s State) bool {
	if m == nil || !s.Valid() {
		return false
	}
	if m.current == s {
		return true
	}
	prev := m.current
	m.current = s
	if m.OnChange != nil {
		m.OnChange(prev, s)
	}
	return true
}
