package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyrunner/common"
)

const (
	defaultWidth        = 32
	defaultHeight       = 64
	defaultSpeed        = 5
	defaultGravity      = 0.6
	defaultJumpForce    = -13
	defaultMaxJumps     = 2
	defaultMaxFallSpeed = 20
	attackFrames        = 12 // ~200ms at 60 TPS

	// share of the previous frame's horizontal motion kept on slippery ground
	slipDecay = 0.92
)

// Input is the held-input snapshot for one frame. Jump and Attack are
// edge-triggered presses.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
}

// Moving reports whether a horizontal direction is held.
func (in Input) Moving() bool {
	return in.Left || in.Right
}

// Player is the controllable runner. Platform collision code mutates Pos.Y,
// VelocityY, Grounded, JumpCount, CurrentPlatform and OnSlippery directly.
type Player struct {
	Pos  cp.Vector
	Size common.Size

	Speed        float64
	VelocityY    float64
	Gravity      float64
	JumpForce    float64
	MaxFallSpeed float64

	JumpCount int
	MaxJumps  int
	Grounded  bool

	// CurrentPlatform is the ID of the platform the player stands on, 0 when
	// none. It is a lookup key only; platforms are owned by the level.
	CurrentPlatform uint64
	OnSlippery      bool

	FacingLeft bool
	Input      Input
	State      *StateMachine
	Dead       bool

	// FallDeath kills the player when it drops below the floor instead of
	// snapping it back onto the bottom edge.
	FallDeath bool

	drift       float64
	attackTimer int
	spawn       cp.Vector
}

// New creates a player at x, y (top-left).
func New(x, y float64) *Player {
	p := &Player{
		Size:         common.Size{Width: defaultWidth, Height: defaultHeight},
		Speed:        defaultSpeed,
		Gravity:      defaultGravity,
		JumpForce:    defaultJumpForce,
		MaxFallSpeed: defaultMaxFallSpeed,
		MaxJumps:     defaultMaxJumps,
		spawn:        cp.Vector{X: x, Y: y},
	}
	p.Reset()
	return p
}

// Reset puts the player back at its spawn point, alive and idle.
func (p *Player) Reset() {
	p.Pos = p.spawn
	p.VelocityY = 0
	p.JumpCount = 0
	p.Grounded = false
	p.CurrentPlatform = 0
	p.OnSlippery = false
	p.FacingLeft = false
	p.Input = Input{}
	p.Dead = false
	p.drift = 0
	p.attackTimer = 0
	if p.State == nil {
		p.State = NewStateMachine(StateIdle)
	} else {
		p.State.Set(StateIdle)
	}
}

func (p *Player) Bottom() float64 {
	return p.Pos.Y + p.Size.Height
}

func (p *Player) Right() float64 {
	return p.Pos.X + p.Size.Width
}

// BB returns the player's bounding box.
func (p *Player) BB() cp.BB {
	return cp.BB{L: p.Pos.X, B: p.Pos.Y, R: p.Right(), T: p.Bottom()}
}

// Jump starts a jump if one is still available.
func (p *Player) Jump() bool {
	if p.Dead || p.JumpCount >= p.MaxJumps {
		return false
	}
	p.VelocityY = p.JumpForce
	p.Grounded = false
	p.CurrentPlatform = 0
	p.JumpCount++
	if p.JumpCount > 1 {
		p.State.Set(StateDoubleJump)
	} else {
		p.State.Set(StateJumping)
	}
	return true
}

func (p *Player) Attack() {
	if p.Dead {
		return
	}
	p.State.Set(StateAttacking)
	p.attackTimer = attackFrames
}

// Die marks the player dead. It is terminal for the current life.
func (p *Player) Die() {
	if p.Dead {
		return
	}
	p.Dead = true
	p.VelocityY = 0
	p.State.Set(StateDeath)
}

// Update applies input, gravity and the bottom safety net. Grounded is cleared
// here and re-established by platform collision later in the frame.
func (p *Player) Update(floorY float64) {
	if p.Dead {
		return
	}

	slippery := p.Grounded && p.OnSlippery
	p.Grounded = false
	p.OnSlippery = false

	if p.Input.Jump {
		p.Jump()
	}
	if p.Input.Attack {
		p.Attack()
	}
	if p.attackTimer > 0 {
		p.attackTimer--
		if p.attackTimer == 0 && p.State.Current() == StateAttacking {
			if p.JumpCount == 0 {
				p.State.Set(StateIdle)
			} else {
				p.State.Set(StateJumping)
			}
		}
	}

	var move float64
	if p.Input.Left {
		move -= p.Speed
		p.FacingLeft = true
	}
	if p.Input.Right {
		move += p.Speed
		p.FacingLeft = false
	}

	// drift tracks horizontal motion; on slippery ground it lags behind input
	if slippery {
		p.drift = p.drift*slipDecay + move*(1-slipDecay)
	} else {
		p.drift = move
	}
	p.Pos.X += p.drift

	p.VelocityY += p.Gravity
	if p.VelocityY > p.MaxFallSpeed {
		p.VelocityY = p.MaxFallSpeed
	}
	p.Pos.Y += p.VelocityY

	if p.Pos.X < 0 {
		p.Pos.X = 0
	}

	if p.Pos.Y > floorY {
		if p.FallDeath {
			p.Die()
			return
		}
		p.Pos.Y = floorY - p.Size.Height
		p.VelocityY = 0
		p.Grounded = true
		p.JumpCount = 0
	}
}
