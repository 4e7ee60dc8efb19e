//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"coral/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG    = color.RGBA{R: 8, G: 10, B: 40, A: 255}
	titleColor = color.RGBA{R: 200, G: 210, B: 240, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 140, G: 140, B: 160, A: 255}
	doneColor  = color.RGBA{R: 120, G: 230, B: 150, A: 255}
)

// HUD renders a status and tuning panel to the right of the board.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot
	offsetX  int

	controls    []hudControl
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

type hudControl struct {
	ctrl     core.ParameterControl
	value    float64
	hasValue bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// NewHUD constructs a HUD of the given panel width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range p.ParameterControls() {
			top := controlsTop + i*lineHeight
			y := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, hudControl{ctrl: ctrl, top: top, minus: minus, plus: plus})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes the parameter snapshot and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	p, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = p.Parameters()
	for i := range h.controls {
		c := &h.controls[i]
		param, ok := h.snapshot.Lookup(c.ctrl.Key)
		if !ok {
			c.hasValue = false
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		c.value, c.hasValue = v, err == nil
	}
	h.handleClick()
}

func (h *HUD) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minus):
			h.adjust(c, -1)
			return
		case pt.In(c.plus):
			h.adjust(c, 1)
			return
		}
	}
}

// target returns the value one step away in direction dir, and whether the
// move stays within bounds and has a setter to apply it.
func (h *HUD) target(c *hudControl, dir int) (float64, bool) {
	if !c.hasValue || dir == 0 {
		return 0, false
	}
	step := c.ctrl.Step
	switch c.ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		if step < 1 {
			step = 1
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	next := c.ctrl.Clamp(c.value + float64(dir)*step)
	return next, math.Abs(next-c.value) > 1e-9
}

func (h *HUD) adjust(c *hudControl, dir int) {
	next, ok := h.target(c, dir)
	if !ok {
		return
	}
	var applied bool
	if c.ctrl.Type == core.ParamTypeInt {
		applied = h.intSetter.SetIntParameter(c.ctrl.Key, int(math.Round(next)))
	} else {
		applied = h.floatSetter.SetFloatParameter(c.ctrl.Key, next)
	}
	if applied {
		c.value = next
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.sim.Name(), face, panelPadding, y, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+infoSpacing, dimColor)
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	y = controlsTop + len(h.controls)*lineHeight + infoSpacing/2
	for _, line := range h.statusLines() {
		col := labelColor
		if line == "done" {
			col = doneColor
		}
		text.Draw(h.panel, line, face, panelPadding, y, col)
		y += statusSpacing
	}
	y += statusSpacing
	for _, line := range keyHelp {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += statusSpacing
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var keyHelp = []string{
	"space pause  n step",
	"r reset  s new seed",
	"d drifters  f front",
	"b brightness  q quit",
	"up/down speed",
}

func (h *HUD) statusLines() []string {
	var lines []string
	for _, key := range []string{"step", "settled", "seeded", "front", "seed"} {
		if p, ok := h.snapshot.Lookup(key); ok {
			lines = append(lines, fmt.Sprintf("%-8s %s", p.Label, p.Value))
		}
	}
	if f, ok := h.sim.(core.Finisher); ok && f.Done() {
		lines = append(lines, "done")
	}
	return lines
}

func (h *HUD) drawControl(c *hudControl) {
	face := basicfont.Face7x13
	baseline := c.top + labelBaseline
	text.Draw(h.panel, c.ctrl.Label, face, panelPadding, baseline, labelColor)

	value, col := "--", dimColor
	if c.hasValue {
		value, col = formatValue(c.ctrl, c.value), labelColor
	}
	w := text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, c.minus.Min.X-buttonGap-w, baseline, col)

	_, canDec := h.target(c, -1)
	_, canInc := h.target(c, 1)
	h.drawButton(c.minus, "-", canDec)
	h.drawButton(c.plus, "+", canInc)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 40, G: 48, B: 90, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 24, G: 28, B: 56, A: 255}
		fg = color.RGBA{R: 110, G: 110, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	statusSpacing  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
