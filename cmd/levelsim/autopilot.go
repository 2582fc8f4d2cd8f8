package main

import (
	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/player"
	"github.com/milk9111/skyrunner/session"
)

const (
	// enemyReach is how far ahead an enemy triggers a jump.
	enemyReach = 160
	// edgeReach is how far ahead missing ground triggers a jump.
	edgeReach = 40
)

// autopilot holds right and jumps over gaps and enemies, and off falling
// platforms once they start to sink.
type autopilot struct {
	jumpHeld bool
}

func newAutopilot() *autopilot {
	return &autopilot{}
}

func (a *autopilot) Input(sess *session.Session) player.Input {
	in := player.Input{Right: true}
	pl := sess.Player
	pm := sess.Level.Platforms()

	want := false
	switch {
	case pl.Grounded:
		want = sinking(pm, pl) || enemyAhead(sess.Level.Enemies(), pl) || !groundAt(pm.Platforms(), pl.Right()+edgeReach, pl.Bottom())
	case pl.VelocityY > 0 && pl.JumpCount < pl.MaxJumps:
		want = !groundAt(pm.Platforms(), pl.Right(), pl.Bottom())
	}

	// jump is edge triggered, so release for a frame between presses
	in.Jump = want && !a.jumpHeld
	a.jumpHeld = in.Jump
	return in
}

// sinking reports whether the player stands on a falling platform moving down.
func sinking(pm *level.PlatformManager, pl *player.Player) bool {
	p, ok := pm.Lookup(level.PlatformID(pl.CurrentPlatform))
	return ok && p.Kind == level.KindFalling && p.Osc.VelocityY > 0
}

func enemyAhead(enemies []*level.Enemy, pl *player.Player) bool {
	for _, e := range enemies {
		dx := e.Left() - pl.Right()
		if dx < 0 || dx > enemyReach {
			continue
		}
		if e.Bottom() > pl.Pos.Y && e.Top() < pl.Bottom() {
			return true
		}
	}
	return false
}

// groundAt reports whether some platform top lies under x at or below feetY.
func groundAt(platforms []*level.Platform, x, feetY float64) bool {
	for _, p := range platforms {
		if x >= p.Left() && x <= p.Right() && p.Top() >= feetY-1 {
			return true
		}
	}
	return false
}
