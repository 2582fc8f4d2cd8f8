package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyrunner/assets"
	"github.com/milk9111/skyrunner/level"
)

// LoadImage loads an image from the filesystem or embedded assets and caches
// it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	src, err := decodeImage(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	RegisterImage(key, img)
	return img, nil
}

// LevelImage adapts LoadImage to the prefab builder's loader signature.
func LevelImage(key string) (level.Image, error) {
	img, err := LoadImage(key)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// decodeImage prefers a copy under ./assets so art can be swapped without a
// rebuild, then falls back to the embedded file.
func decodeImage(path string) (image.Image, error) {
	tried := []string{filepath.Join("assets", path), path}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
			return im, nil
		}
	}
	if im, err := assets.Decode(path); err == nil {
		return im, nil
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
