package level

import (
	"github.com/milk9111/skyrunner/common"
	"github.com/milk9111/skyrunner/player"
)

const (
	// landingTolerance is the extra penetration accepted on top of the
	// frame's fall distance before a contact is treated as tunnelling.
	landingTolerance = 5
	// carryBand is how far the player's feet may be from a moving platform's
	// top and still ride it.
	carryBand = 5
)

// step runs the per-frame motion of platforms that move.
func (p *Platform) step(pl *player.Player) {
	if p.Kind != KindFalling {
		return
	}

	if p.carrying(pl) {
		pl.Pos.Y += p.Osc.VelocityY
		pl.Pos.Y = p.Top() - pl.Size.Height
		pl.VelocityY = 0
		pl.Grounded = true
		pl.JumpCount = 0
		pl.CurrentPlatform = uint64(p.ID)
	} else if pl.CurrentPlatform == uint64(p.ID) {
		pl.CurrentPlatform = 0
		pl.Grounded = false
	}

	p.oscillate()
}

// carrying reports whether the player is standing within carryBand of the
// top while overlapping horizontally and not moving up.
func (p *Platform) carrying(pl *player.Player) bool {
	bottom := pl.Bottom()
	top := p.Top()
	vertical := bottom >= top-carryBand && bottom <= top+carryBand
	return vertical && p.overlapsX(pl) && pl.VelocityY >= 0
}

func (p *Platform) overlapsX(pl *player.Player) bool {
	return pl.Right() > p.Left() && pl.Pos.X < p.Right()
}

// lands reports whether the player touches down on the platform top this
// frame. Pos.Y has already been advanced by VelocityY.
func (p *Platform) lands(pl *player.Player) bool {
	if pl.Dead || pl.VelocityY < 0 || !p.overlapsX(pl) {
		return false
	}
	bottom := pl.Bottom()
	top := p.Top()
	wasAbove := bottom-pl.VelocityY <= top
	willLand := bottom <= top && bottom+pl.VelocityY >= top
	if !wasAbove && !willLand {
		return false
	}
	return common.Abs(bottom-top) < pl.VelocityY+landingTolerance
}

// resolve applies the kind-specific landing response.
func (p *Platform) resolve(pl *player.Player) {
	if !p.lands(pl) {
		return
	}

	pl.Pos.Y = p.Top() - pl.Size.Height
	pl.JumpCount = 0
	pl.CurrentPlatform = uint64(p.ID)

	switch p.Kind {
	case KindBouncing:
		pl.VelocityY = p.BounceVelocity
		pl.Grounded = false
		pl.CurrentPlatform = 0
		setStateUnlessBusy(pl, player.StateJumping)
	case KindBase, KindFloating, KindSlippery, KindFalling:
		pl.VelocityY = 0
		pl.Grounded = true
		pl.OnSlippery = p.Slippery
		if pl.Input.Moving() {
			setStateUnlessBusy(pl, player.StateRunning)
		} else {
			setStateUnlessBusy(pl, player.StateIdle)
		}
	}
}

// setStateUnlessBusy never interrupts an attack or a death.
func setStateUnlessBusy(pl *player.Player, s player.State) {
	switch pl.State.Current() {
	case player.StateAttacking, player.StateDeath:
		return
	}
	pl.State.Set(s)
}
