package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"background/green_1.png", "background/green_1.png"},
		{"assets/enemies/fly.png", "enemies/fly.png"},
		{"/home/dev/skyrunner/assets/enemies/fly.png", "enemies/fly.png"},
		{"/tmp/fly.png", "fly.png"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cleanAssetPath(c.in), c.in)
	}
}

func TestDecodeEmbedded(t *testing.T) {
	img, err := Decode("assets/enemies/fly.png")
	require.NoError(t, err)
	assert.Equal(t, 44, img.Bounds().Dx())
	assert.Equal(t, 36, img.Bounds().Dy())

	_, err = Decode("background/missing.png")
	assert.Error(t, err)
}
