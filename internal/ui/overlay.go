//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"coral/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type brightnessProvider interface {
	BrightnessMask() []float32
}

type frontProvider interface {
	Front() int
}

// Overlay draws optional debugging visuals on top of the board.
type Overlay struct {
	sim       core.Sim
	scale     int
	showFront bool
	showHeat  bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for sim drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showFront = !o.showFront
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showHeat {
		if p, ok := o.sim.(brightnessProvider); ok {
			o.drawMask(screen, p.BrightnessMask(), size)
		}
	}
	if o.showFront {
		if p, ok := o.sim.(frontProvider); ok && p.Front() < size.H {
			y := (float64(p.Front()) + 0.5) * float64(o.scale)
			o.drawLine(screen, 0, y, float64(size.W*o.scale), y, 1, color.RGBA{R: 255, G: 80, B: 80, A: 200})
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// drawMask paints intensities as a translucent dark-to-hot ramp.
func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, size core.Size) {
	total := size.W * size.H
	if len(mask) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	for i, v := range mask {
		base := i * 4
		t := clamp01(float64(v))
		if t == 0 {
			o.maskBuf[base+0], o.maskBuf[base+1], o.maskBuf[base+2], o.maskBuf[base+3] = 0, 0, 0, 0
			continue
		}
		col := heatColor(t)
		o.maskBuf[base+0] = col.R
		o.maskBuf[base+1] = col.G
		o.maskBuf[base+2] = col.B
		o.maskBuf[base+3] = col.A
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

// heatColor ramps from dim red to bright yellow. Colours are premultiplied.
func heatColor(t float64) color.RGBA {
	a := 120 + 120*t
	r := 255.0
	g := 40 + 215*t
	b := 20 * t
	k := a / 255
	return color.RGBA{
		R: uint8(math.Round(r * k)),
		G: uint8(math.Round(g * k)),
		B: uint8(math.Round(b * k)),
		A: uint8(math.Round(a)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
