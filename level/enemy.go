package level

import (
	"image"
	"math"

	"github.com/milk9111/skyrunner/player"
	"golang.org/x/image/colornames"
)

// Motion moves an enemy one frame. Implementations may set
// MarkedForRemoval.
type Motion interface {
	Step(e *Enemy, pl *player.Player)
}

// MotionFunc adapts a function to Motion.
type MotionFunc func(e *Enemy, pl *player.Player)

func (f MotionFunc) Step(e *Enemy, pl *player.Player) { f(e, pl) }

// Enemy is a hostile actor that kills the player on contact.
type Enemy struct {
	Entity
	Kind string

	Image      Image
	FrameCount int
	FrameSpeed int
	Frame      int
	frameTimer int

	Motion           Motion
	MarkedForRemoval bool
}

// NewEnemy creates an enemy with the given box and motion.
func NewEnemy(kind string, x, y, w, h float64, m Motion) *Enemy {
	return &Enemy{
		Entity:     NewEntity(x, y, w, h),
		Kind:       kind,
		FrameCount: 1,
		FrameSpeed: 6,
		Motion:     m,
	}
}

// Update advances the animation frame and the motion.
func (e *Enemy) Update(pl *player.Player) {
	e.frameTimer++
	if e.frameTimer >= e.FrameSpeed {
		e.frameTimer = 0
		e.Frame = (e.Frame + 1) % max(1, e.FrameCount)
	}
	if e.Motion != nil {
		e.Motion.Step(e, pl)
	}
	// fully above the top of the screen
	if e.Bottom() < 0 {
		e.MarkedForRemoval = true
	}
}

// HitsPlayer reports a strict box overlap with the player.
func (e *Enemy) HitsPlayer(pl *player.Player) bool {
	return e.Left() < pl.Right() && e.Right() > pl.Pos.X &&
		e.Top() < pl.Bottom() && e.Bottom() > pl.Pos.Y
}

// subImager is implemented by sheets that can hand out a single frame.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// frameImage cuts the current frame out of a horizontal sheet.
func (e *Enemy) frameImage() Image {
	sheet, ok := e.Image.(subImager)
	if !ok || e.FrameCount <= 1 {
		return e.Image
	}
	b := e.Image.Bounds()
	fw := b.Dx() / e.FrameCount
	if fw <= 0 {
		return e.Image
	}
	x0 := b.Min.X + e.Frame*fw
	return sheet.SubImage(image.Rect(x0, b.Min.Y, x0+fw, b.Max.Y))
}

func (e *Enemy) Render(s Surface, cameraX float64) {
	x := e.Pos.X - cameraX
	if imageUsable(e.Image) {
		s.DrawImage(e.frameImage(), x, e.Pos.Y, e.Size.Width, e.Size.Height, 1)
	} else {
		s.FillRect(x, e.Pos.Y, e.Size.Width, e.Size.Height, colornames.Red)
	}
	s.StrokeRect(x, e.Pos.Y, e.Size.Width, e.Size.Height, 2, colornames.Red)
}

const (
	flyFrameWidth  = 218
	flyFrameHeight = 177
	flyScale       = 0.2
	flyFrames      = 4
)

// FlyMotion floats sideways around BaseX while rising.
type FlyMotion struct {
	BaseX     float64
	T         float64
	Speed     float64
	Amplitude float64
	Rise      float64
}

func (f *FlyMotion) Step(e *Enemy, _ *player.Player) {
	f.T += f.Speed
	e.Pos.X = f.BaseX + math.Sin(f.T)*f.Amplitude
	e.Pos.Y += f.Rise
}

// NewFlyEnemy creates the flying enemy with randomised float parameters.
func NewFlyEnemy(rng Rand, x, y float64, img Image) *Enemy {
	m := &FlyMotion{
		BaseX:     x,
		T:         rng.Float64() * 100,
		Speed:     0.05 + rng.Float64()*0.03,
		Amplitude: 30 + rng.Float64()*10,
		Rise:      -0.5 - rng.Float64(),
	}
	e := NewEnemy("fly", x, y, flyFrameWidth*flyScale, flyFrameHeight*flyScale, m)
	e.Image = img
	e.FrameCount = flyFrames
	return e
}
