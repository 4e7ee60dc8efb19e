// Package render turns pixel grids into images, videos and charts.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"coral/internal/core"
)

// ToImage converts px into an RGBA image, enlarging each pixel to a
// scale x scale block. A scale below 1 is treated as 1.
func ToImage(px *core.PixelGrid, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, px.W*scale, px.H*scale))
	fillRGBA(img.Pix, px, scale)
	return img
}

// SavePNG writes px to path as a PNG, creating parent directories.
func SavePNG(path string, px *core.PixelGrid, scale int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: cannot create %s: %w", path, err)
	}
	if err := png.Encode(f, ToImage(px, scale)); err != nil {
		f.Close()
		return fmt.Errorf("render: cannot encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: cannot close %s: %w", path, err)
	}
	return nil
}
