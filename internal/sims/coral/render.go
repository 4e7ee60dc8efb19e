package coral

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"coral/internal/core"
)

var (
	// Background is the colour of empty water.
	Background = core.RGB{R: 0x00, G: 0x00, B: 0x88}
	// DrifterColor highlights drifters in snapshots.
	DrifterColor = core.RGB{R: 0xff, G: 0xff, B: 0xff}
)

const (
	drifterMark = '.'
	coralMark   = '#'
	emptyMark   = ' '
)

// RGB maps the cell to a fully saturated colour with its hue as the hue
// angle and its brightness as the HSV value.
func (c Cell) RGB() core.RGB {
	r, g, b := colorful.Hsv(float64(c.Hue), 1, float64(c.Brightness)/MaxBrightness).RGB255()
	return core.RGB{R: r, G: g, B: b}
}

// Pixels renders the board as a Cols x Rows pixel grid. With showDrifters
// set, drifter positions are painted on top in DrifterColor.
func (b *Board) Pixels(showDrifters bool) *core.PixelGrid {
	px := core.NewPixelGrid(b.cols, b.rows, Background)
	for i, s := range b.cells.Cells() {
		if s.ok {
			px.Pix[i] = s.cell.RGB()
		}
	}
	if showDrifters {
		for _, d := range b.drifters {
			px.Set(d.Col, d.Row, DrifterColor)
		}
	}
	return px
}

// String renders the board as text: '.' for drifters, '#' for coral and a
// space for empty water, one line per row.
func (b *Board) String() string {
	marks := b.textGrid()
	var sb strings.Builder
	sb.Grow((b.cols + 1) * b.rows)
	for row := 0; row < b.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(marks[row*b.cols : (row+1)*b.cols])
	}
	return sb.String()
}

// textGrid returns one mark per grid slot, row-major.
func (b *Board) textGrid() []byte {
	marks := make([]byte, b.rows*b.cols)
	for i, s := range b.cells.Cells() {
		marks[i] = emptyMark
		if s.ok {
			marks[i] = coralMark
		}
	}
	for _, d := range b.drifters {
		marks[b.cells.Index(d.Col, d.Row)] = drifterMark
	}
	return marks
}

// BrightnessMask returns each slot's brightness scaled to [0,1], zero for
// empty water. The viewer overlays it as a heat map.
func (b *Board) BrightnessMask() []float32 {
	mask := make([]float32, b.rows*b.cols)
	for i, s := range b.cells.Cells() {
		if s.ok {
			mask[i] = float32(s.cell.Brightness) / MaxBrightness
		}
	}
	return mask
}
