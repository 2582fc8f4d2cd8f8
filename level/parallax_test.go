package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoScenes(span float64) *ParallaxManager {
	return NewParallaxManager([]*ParallaxScene{
		NewParallaxScene("green", nil, nil, 0, span),
		NewParallaxScene("blue", nil, nil, span, span),
	})
}

// walk moves the player by step per frame for frames frames.
func walk(m *ParallaxManager, x *float64, step float64, frames int) (committed bool) {
	for i := 0; i < frames; i++ {
		*x += step
		if m.Update(*x, 5) {
			committed = true
		}
	}
	return committed
}

func TestTransitionCommits(t *testing.T) {
	m := twoScenes(1000)
	x := 990.0
	m.Update(x, 5)

	walk(m, &x, 5, 2)
	require.True(t, m.IsTransitioning())
	next, dir := m.Target()
	assert.Equal(t, 1, next)
	assert.Equal(t, 1, dir)

	// progress is capped at speed*0.1 per frame regardless of actual movement
	walk(m, &x, 50, 10)
	assert.InDelta(t, 10*0.5/transitionDistance, m.Progress(), 1e-9)

	committed := walk(m, &x, 5, 1000)
	require.True(t, committed)
	assert.Equal(t, 1, m.ActiveIndex())
	assert.False(t, m.IsTransitioning())

	blue := m.Scene(1)
	assert.True(t, blue.Contains(x), "window re-anchored at the commit point")
	assert.Equal(t, 1000.0, blue.Span)
}

func TestTransitionCancels(t *testing.T) {
	m := twoScenes(1000)
	x := 1000.0
	m.Update(x, 5)
	walk(m, &x, 5, 1)
	require.True(t, m.IsTransitioning())

	walk(m, &x, 5, 20)
	assert.Greater(t, m.Progress(), 0.0)

	// walking back unwinds the blend to the starting scene
	walk(m, &x, -5, 22)
	assert.False(t, m.IsTransitioning())
	assert.Equal(t, 0, m.ActiveIndex())
	assert.Zero(t, m.Progress())
}

func TestTriggerNeedsToPassWindowEnd(t *testing.T) {
	m := twoScenes(1000)
	m.Update(1000, 5)
	assert.False(t, m.IsTransitioning(), "standing on the window end")

	m.Update(1000.5, 5)
	require.True(t, m.IsTransitioning())
	next, dir := m.Target()
	assert.Equal(t, 1, next)
	assert.Equal(t, 1, dir)
}

func TestBackwardTransition(t *testing.T) {
	m := twoScenes(1000)
	x := 500.0
	m.Update(x, 5)
	require.True(t, m.RequestTransition(1, 1))
	walk(m, &x, 5, 1100)
	require.Equal(t, 1, m.ActiveIndex())

	start := m.Scene(1).StartX
	x = start + 2
	m.Update(x, 5)
	walk(m, &x, -5, 1)
	require.True(t, m.IsTransitioning())
	next, dir := m.Target()
	assert.Equal(t, 0, next)
	assert.Equal(t, -1, dir)

	walk(m, &x, -5, 1100)
	assert.Equal(t, 0, m.ActiveIndex())
	assert.True(t, m.Scene(0).Contains(x-1))
}

func TestRequestTransitionIgnored(t *testing.T) {
	m := twoScenes(1000)
	assert.False(t, m.RequestTransition(0, 1), "already active")
	assert.False(t, m.RequestTransition(5, 1), "out of range")
	assert.False(t, m.RequestTransition(-1, 1), "out of range")

	require.True(t, m.RequestTransition(1, 1))
	assert.False(t, m.RequestTransition(1, 1), "blend already running")
}

func TestParallaxBlendRender(t *testing.T) {
	img := stubImage{w: 100, h: 50}
	m := NewParallaxManager([]*ParallaxScene{
		NewParallaxScene("a", []*ParallaxLayer{NewParallaxLayer(img, 0)}, nil, 0, 1000),
		NewParallaxScene("b", []*ParallaxLayer{NewParallaxLayer(img, 0)}, nil, 1000, 1000),
	})
	require.True(t, m.RequestTransition(1, 1))
	m.progress = 0.25

	s := newRecordingSurface()
	m.Render(s, 0)
	draws := s.ops("image")
	require.Len(t, draws, 2)
	assert.Equal(t, -200.0, draws[0].x)
	assert.Equal(t, 0.75, draws[0].alpha)
	assert.Equal(t, 600.0, draws[1].x)
	assert.Equal(t, 0.25, draws[1].alpha)
}

func TestLayerRender(t *testing.T) {
	img := stubImage{w: 100, h: 50}
	cases := []struct {
		name  string
		speed float64
		camX  float64
		want  []float64
	}{
		{"static", 0, 500, []float64{0}},
		{"slow_single", 0.1, 100, []float64{-10}},
		{"looping", 0.5, 100, []float64{-50, 850}},
		{"looping_wraps", 1.0, 1000, []float64{-100, 800}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newRecordingSurface()
			s.width = 1600
			NewParallaxLayer(img, c.speed).Render(s, c.camX, 0, 1)

			var xs []float64
			for _, d := range s.ops("image") {
				xs = append(xs, d.x)
				assert.Equal(t, 900.0, d.w)
				assert.Equal(t, 450.0, d.h)
			}
			assert.Equal(t, c.want, xs)
		})
	}
}

func TestLayerPlaceholder(t *testing.T) {
	s := newRecordingSurface()
	NewParallaxLayer(nil, 0.5).Render(s, 0, 0, 0.5)
	fills := s.ops("fill")
	require.Len(t, fills, 1)
	assert.Equal(t, 800.0, fills[0].w)
	assert.InDelta(t, 0.5, fills[0].alpha, 0.01)

	s = newRecordingSurface()
	effect := NewParallaxLayer(nil, 0)
	effect.Placeholder = nil
	effect.Render(s, 0, 0, 1)
	assert.Empty(t, s.calls)
}
