package level

import (
	"image"
	"image/color"
)

// Image is any decoded picture a Surface knows how to draw. *ebiten.Image
// satisfies it.
type Image interface {
	Bounds() image.Rectangle
}

// Surface is the immediate-mode drawing target. Coordinates are screen
// pixels; callers translate world X by subtracting the camera X.
type Surface interface {
	Size() (width, height float64)
	FillRect(x, y, w, h float64, clr color.Color)
	StrokeRect(x, y, w, h, lineWidth float64, clr color.Color)
	Line(x0, y0, x1, y1, lineWidth float64, clr color.Color)
	FillCircle(cx, cy, r float64, clr color.Color)
	StrokeCircle(cx, cy, r, lineWidth float64, clr color.Color)
	// DrawImage draws img scaled to w x h. Implementations fall back to a
	// solid placeholder when img cannot be drawn.
	DrawImage(img Image, x, y, w, h, alpha float64)
}

// withAlpha scales the alpha of c by a in [0,1].
func withAlpha(c color.Color, a float64) color.Color {
	if a >= 1 {
		return c
	}
	if a < 0 {
		a = 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * a)
	return n
}

func imageUsable(img Image) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}
