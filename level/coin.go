package level

import (
	"image/color"

	"github.com/milk9111/skyrunner/player"
	"golang.org/x/image/colornames"
)

const (
	DefaultCoinRadius = 10

	glowMin  = 0.4
	glowMax  = 0.7
	glowStep = 0.005
)

var coinGold = color.RGBA{R: 255, G: 215, A: 255}

// Coin is a collectible worth one point.
type Coin struct {
	Entity
	Radius    float64
	Collected bool
	Glow      float64
	glowDir   float64
}

func NewCoin(x, y float64) *Coin {
	return &Coin{
		Entity:  NewEntity(x, y, DefaultCoinRadius*2, DefaultCoinRadius*2),
		Radius:  DefaultCoinRadius,
		Glow:    glowMin,
		glowDir: 1,
	}
}

// Update pulses the glow between glowMin and glowMax.
func (c *Coin) Update() {
	c.Glow += glowStep * c.glowDir
	if c.Glow >= glowMax {
		c.Glow = glowMax
		c.glowDir = -1
	} else if c.Glow <= glowMin {
		c.Glow = glowMin
		c.glowDir = 1
	}
}

// Collect marks the coin collected when the player's box touches it.
func (c *Coin) Collect(pl *player.Player) bool {
	if c.Collected || pl.Dead {
		return false
	}
	if !c.BB().Intersects(pl.BB()) {
		return false
	}
	c.Collected = true
	return true
}

func (c *Coin) Render(s Surface, cameraX float64) {
	if c.Collected {
		return
	}
	cx := c.Pos.X - cameraX + c.Radius
	cy := c.Pos.Y + c.Radius
	s.FillCircle(cx, cy, c.Radius+3, withAlpha(coinGold, c.Glow*0.5))
	s.FillCircle(cx, cy, c.Radius, colornames.Black)
	s.StrokeCircle(cx, cy, c.Radius, 1, coinGold)
}
