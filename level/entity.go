package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyrunner/common"
)

// Entity is the positional base shared by platforms, coins and enemies.
// Pos is the top-left corner in world pixels.
type Entity struct {
	Pos  cp.Vector
	Size common.Size
}

func NewEntity(x, y, w, h float64) Entity {
	return Entity{Pos: cp.Vector{X: x, Y: y}, Size: common.Size{Width: w, Height: h}}
}

func (e *Entity) Left() float64   { return e.Pos.X }
func (e *Entity) Right() float64  { return e.Pos.X + e.Size.Width }
func (e *Entity) Top() float64    { return e.Pos.Y }
func (e *Entity) Bottom() float64 { return e.Pos.Y + e.Size.Height }

// BB returns the entity's bounding box. cp.BB is used with B as the smaller
// (upper) Y since the world is y-down.
func (e *Entity) BB() cp.BB {
	return cp.BB{L: e.Left(), B: e.Top(), R: e.Right(), T: e.Bottom()}
}
