package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skyrunner/level"
	"golang.org/x/image/colornames"
)

// Screen draws level output onto an ebiten image.
type Screen struct {
	Target *ebiten.Image

	// converted holds GPU copies of plain decoded images.
	converted map[image.Image]*ebiten.Image
}

var _ level.Surface = (*Screen)(nil)

func NewScreen(target *ebiten.Image) *Screen {
	return &Screen{Target: target, converted: map[image.Image]*ebiten.Image{}}
}

func (s *Screen) Size() (float64, float64) {
	b := s.Target.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Screen) FillRect(x, y, w, h float64, clr color.Color) {
	vector.FillRect(s.Target, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (s *Screen) StrokeRect(x, y, w, h, lineWidth float64, clr color.Color) {
	vector.StrokeRect(s.Target, float32(x), float32(y), float32(w), float32(h), float32(lineWidth), clr, false)
}

func (s *Screen) Line(x0, y0, x1, y1, lineWidth float64, clr color.Color) {
	vector.StrokeLine(s.Target, float32(x0), float32(y0), float32(x1), float32(y1), float32(lineWidth), clr, true)
}

func (s *Screen) FillCircle(cx, cy, r float64, clr color.Color) {
	vector.FillCircle(s.Target, float32(cx), float32(cy), float32(r), clr, true)
}

func (s *Screen) StrokeCircle(cx, cy, r, lineWidth float64, clr color.Color) {
	vector.StrokeCircle(s.Target, float32(cx), float32(cy), float32(r), float32(lineWidth), clr, true)
}

// DrawImage scales img into the w x h box at x,y. Images that cannot be
// drawn become a magenta box so missing art is obvious.
func (s *Screen) DrawImage(img level.Image, x, y, w, h, alpha float64) {
	src := s.ebitenImage(img)
	if src == nil {
		s.FillRect(x, y, w, h, colornames.Magenta)
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.Target.DrawImage(src, op)
}

func (s *Screen) ebitenImage(img level.Image) *ebiten.Image {
	switch v := img.(type) {
	case nil:
		return nil
	case *ebiten.Image:
		return v
	case image.Image:
		if cached, ok := s.converted[v]; ok {
			return cached
		}
		if s.converted == nil {
			s.converted = map[image.Image]*ebiten.Image{}
		}
		e := ebiten.NewImageFromImage(v)
		s.converted[v] = e
		return e
	default:
		return nil
	}
}
