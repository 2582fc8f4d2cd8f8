package level

import (
	"image"
	"testing"

	"github.com/milk9111/skyrunner/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGlowStaysInRange(t *testing.T) {
	c := NewCoin(0, 0)
	var rose, fell bool
	prev := c.Glow
	for i := 0; i < 500; i++ {
		c.Update()
		require.GreaterOrEqual(t, c.Glow, glowMin)
		require.LessOrEqual(t, c.Glow, glowMax)
		if c.Glow > prev {
			rose = true
		} else if c.Glow < prev {
			fell = true
		}
		prev = c.Glow
	}
	assert.True(t, rose && fell, "glow pulses both ways")
}

func TestCoinCollect(t *testing.T) {
	pl := player.New(100, 100)

	touching := NewCoin(pl.Right(), pl.Pos.Y)
	assert.True(t, touching.Collect(pl), "edges touching counts")
	assert.False(t, touching.Collect(pl), "only collected once")

	far := NewCoin(pl.Right()+1, pl.Pos.Y)
	assert.False(t, far.Collect(pl))

	s := newRecordingSurface()
	touching.Render(s, 0)
	assert.Empty(t, s.calls, "collected coins are not drawn")
}

func TestEnemyHitsPlayerStrict(t *testing.T) {
	pl := player.New(100, 100)

	e := NewEnemy("block", pl.Right(), pl.Pos.Y, 20, 20, nil)
	assert.False(t, e.HitsPlayer(pl), "edge contact is not a hit")

	e.Pos.X -= 1
	assert.True(t, e.HitsPlayer(pl))
}

func TestFlyEnemyRisesAndLeaves(t *testing.T) {
	rng := &seqRand{floats: []float64{0.5}}
	e := NewFlyEnemy(rng, 500, 100, nil)
	m := e.Motion.(*FlyMotion)
	assert.InDelta(t, -1.0, m.Rise, 1e-9)
	assert.InDelta(t, 35.0, m.Amplitude, 1e-9)
	assert.InDelta(t, 218*0.2, e.Size.Width, 1e-9)

	pl := player.New(0, 0)
	for i := 0; i < 1000 && !e.MarkedForRemoval; i++ {
		e.Update(pl)
		require.InDelta(t, 500, e.Pos.X, m.Amplitude+1e-9)
	}
	assert.True(t, e.MarkedForRemoval)
	assert.Less(t, e.Bottom(), 0.0)
}

func TestEnemyAnimationFrames(t *testing.T) {
	e := NewFlyEnemy(&seqRand{}, 0, 0, nil)
	pl := player.New(0, 0)
	for i := 0; i < e.FrameSpeed*5; i++ {
		e.Update(pl)
	}
	assert.Equal(t, 5%flyFrames, e.Frame)
}

func TestEnemyRenderPlaceholder(t *testing.T) {
	s := newRecordingSurface()
	NewEnemy("block", 120, 40, 10, 10, nil).Render(s, 100)
	fills := s.ops("fill")
	require.Len(t, fills, 1)
	assert.Equal(t, 20.0, fills[0].x)

	s = newRecordingSurface()
	e := NewEnemy("block", 120, 40, 10, 10, nil)
	e.Image = stubImage{w: 4, h: 4}
	e.Render(s, 100)
	assert.Len(t, s.ops("image"), 1)
}

type sheetImage struct{ stubImage }

func (s sheetImage) SubImage(r image.Rectangle) image.Image {
	return image.NewRGBA(r)
}

func TestEnemyFrameImage(t *testing.T) {
	e := NewEnemy("fly", 0, 0, 10, 10, nil)
	e.Image = sheetImage{stubImage{w: 44, h: 36}}
	e.FrameCount = 4
	e.Frame = 2

	got := e.frameImage().Bounds()
	assert.Equal(t, image.Rect(22, 0, 33, 36), got)
}
