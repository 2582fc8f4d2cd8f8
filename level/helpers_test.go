package level

import (
	"image"
	"image/color"
)

// seqRand replays fixed values, cycling when exhausted.
type seqRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

type drawCall struct {
	op         string
	x, y, w, h float64
	alpha      float64
}

// recordingSurface captures draw calls instead of rasterising them.
type recordingSurface struct {
	width, height float64
	calls         []drawCall
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{width: 800, height: 450}
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }

func (s *recordingSurface) FillRect(x, y, w, h float64, clr color.Color) {
	s.calls = append(s.calls, drawCall{op: "fill", x: x, y: y, w: w, h: h, alpha: alphaOf(clr)})
}

func (s *recordingSurface) StrokeRect(x, y, w, h, _ float64, _ color.Color) {
	s.calls = append(s.calls, drawCall{op: "stroke", x: x, y: y, w: w, h: h})
}

func (s *recordingSurface) Line(x0, y0, x1, y1, _ float64, _ color.Color) {
	s.calls = append(s.calls, drawCall{op: "line", x: x0, y: y0, w: x1 - x0, h: y1 - y0})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	s.calls = append(s.calls, drawCall{op: "circle", x: cx, y: cy, w: r, h: r, alpha: alphaOf(clr)})
}

func (s *recordingSurface) StrokeCircle(cx, cy, r, _ float64, _ color.Color) {
	s.calls = append(s.calls, drawCall{op: "ring", x: cx, y: cy, w: r, h: r})
}

func (s *recordingSurface) DrawImage(_ Image, x, y, w, h, alpha float64) {
	s.calls = append(s.calls, drawCall{op: "image", x: x, y: y, w: w, h: h, alpha: alpha})
}

func (s *recordingSurface) ops(op string) []drawCall {
	var out []drawCall
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func alphaOf(c color.Color) float64 {
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// stubImage only has bounds.
type stubImage struct{ w, h int }

func (i stubImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
