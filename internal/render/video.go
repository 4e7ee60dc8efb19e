package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"coral/internal/core"
)

// Video appends pixel grids as frames of an MJPEG AVI file.
type Video struct {
	w, h    int
	scale   int
	quality int
	frames  int

	aw  mjpeg.AviWriter
	buf bytes.Buffer
}

// NewVideo creates an AVI at path for frames of w x h pixels, each enlarged
// by scale.
func NewVideo(path string, w, h, scale, fps, quality int) (*Video, error) {
	if scale < 1 {
		scale = 1
	}
	if fps <= 0 {
		fps = 30
	}
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("render: cannot create directory %s: %w", dir, err)
		}
	}
	aw, err := mjpeg.New(path, int32(w*scale), int32(h*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("render: cannot create video %s: %w", path, err)
	}
	return &Video{w: w, h: h, scale: scale, quality: quality, aw: aw}, nil
}

// AddFrame encodes px as JPEG and appends it.
func (v *Video) AddFrame(px *core.PixelGrid) error {
	if px.W != v.w || px.H != v.h {
		return fmt.Errorf("render: frame is %dx%d, video expects %dx%d", px.W, px.H, v.w, v.h)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, ToImage(px, v.scale), &jpeg.Options{Quality: v.quality}); err != nil {
		return fmt.Errorf("render: cannot encode frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("render: cannot add frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames reports how many frames were written.
func (v *Video) Frames() int { return v.frames }

// Close finalises the AVI index.
func (v *Video) Close() error {
	if err := v.aw.Close(); err != nil {
		return fmt.Errorf("render: cannot close video: %w", err)
	}
	return nil
}
