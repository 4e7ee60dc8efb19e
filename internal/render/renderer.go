//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"coral/internal/core"
)

// GridPainter uploads pixel grids into a single ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit uploads px into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, px *core.PixelGrid, scale int) {
	if px == nil || px.W != gp.w || px.H != gp.h {
		return
	}
	fillRGBA(gp.buf, px, 1)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
