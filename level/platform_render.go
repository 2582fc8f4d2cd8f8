package level

import (
	"golang.org/x/image/colornames"
)

// Render draws the platform as blocks with a kind-specific accent.
func (p *Platform) Render(s Surface, cameraX float64) {
	x := p.Pos.X - cameraX
	y := p.Pos.Y
	w, h := p.Size.Width, p.Size.Height

	switch p.Kind {
	case KindFalling:
		s.FillRect(x, y, w, h, colornames.Saddlebrown)
		s.FillRect(x, y, w, min(h, p.BlockSize/4), colornames.Orange)
	default:
		s.FillRect(x, y, w, h, colornames.Gray)
	}

	// block seams
	for bx := p.BlockSize; bx < w; bx += p.BlockSize {
		s.Line(x+bx, y, x+bx, y+h, 1, colornames.Dimgray)
	}
	s.StrokeRect(x, y, w, h, 1, colornames.Black)

	switch p.Kind {
	case KindBouncing:
		s.Line(x, y, x+w, y, 4, colornames.Limegreen)
	case KindSlippery:
		s.Line(x, y+1, x+w, y+1, 2, colornames.Deepskyblue)
	}
}
