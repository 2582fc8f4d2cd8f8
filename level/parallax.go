package level

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// nonLoopingSpeed is the fastest scroll ratio drawn as a single image.
const nonLoopingSpeed = 0.15

// LayerSpeeds are the scroll ratios given to layers by depth when a scene does
// not set them.
var LayerSpeeds = []float64{0, 0.1, 0.2, 0.5, 1.0}

// ParallaxLayer is one background image scrolled at Speed times the camera.
type ParallaxLayer struct {
	Image Image
	Speed float64
	// Placeholder is filled over the screen when Image cannot be drawn.
	Placeholder color.Color
}

func NewParallaxLayer(img Image, speed float64) *ParallaxLayer {
	return &ParallaxLayer{Image: img, Speed: speed, Placeholder: colornames.Darkslategray}
}

// Render draws the layer with world X shifted by offsetX.
func (l *ParallaxLayer) Render(s Surface, cameraX, offsetX, alpha float64) {
	if alpha <= 0 {
		return
	}
	sw, sh := s.Size()
	if !imageUsable(l.Image) {
		if l.Placeholder != nil {
			s.FillRect(offsetX, 0, sw, sh, withAlpha(l.Placeholder, alpha))
		}
		return
	}

	b := l.Image.Bounds()
	h := sh
	w := h * float64(b.Dx()) / float64(b.Dy())

	switch {
	case l.Speed == 0:
		s.DrawImage(l.Image, offsetX, 0, w, h, alpha)
	case l.Speed <= nonLoopingSpeed:
		x := math.Floor(-cameraX * l.Speed)
		s.DrawImage(l.Image, x+offsetX, 0, w, h, alpha)
	default:
		x := math.Mod(-cameraX*l.Speed, w)
		if x > 0 {
			x -= w
		}
		for x += offsetX; x < sw+offsetX; x += w {
			s.DrawImage(l.Image, x, 0, w, h, alpha)
		}
	}
}

// ParallaxScene is a themed stretch of the level covering [StartX, EndX).
type ParallaxScene struct {
	Name   string
	Layers []*ParallaxLayer
	Effect *ParallaxLayer

	StartX float64
	EndX   float64
	// Span is the window width used when the scene is re-anchored.
	Span float64
}

// NewParallaxScene builds a scene whose window starts at startX.
func NewParallaxScene(name string, layers []*ParallaxLayer, effect *ParallaxLayer, startX, span float64) *ParallaxScene {
	if span <= 0 {
		span = math.Inf(1)
	}
	return &ParallaxScene{
		Name:   name,
		Layers: layers,
		Effect: effect,
		StartX: startX,
		EndX:   startX + span,
		Span:   span,
	}
}

// Contains reports whether x lies inside the scene window.
func (s *ParallaxScene) Contains(x float64) bool {
	return x >= s.StartX && x < s.EndX
}

// anchor moves the window so it begins (dir > 0) or ends (dir < 0) at x.
func (s *ParallaxScene) anchor(x float64, dir int) {
	if dir < 0 {
		s.StartX, s.EndX = x-s.Span, x
		return
	}
	s.StartX, s.EndX = x, x+s.Span
}

func (s *ParallaxScene) Render(surf Surface, cameraX, offsetX, alpha float64) {
	for _, l := range s.Layers {
		l.Render(surf, cameraX, offsetX, alpha)
	}
	if s.Effect != nil {
		s.Effect.Render(surf, cameraX, offsetX, alpha)
	}
}
