package coral

import (
	"coral/internal/core"
	rnd "coral/pkg/core"
)

const (
	// MaxBrightness caps a cell's brightness percentage.
	MaxBrightness = 100

	hueCircle = 360

	// Root hues are drawn from [rootHueMin, rootHueMax) so blues (200-300)
	// never start a colony.
	rootHueMin = -60
	rootHueMax = 200
)

// Cell is one settled unit of coral. Hue is in degrees [0, 360) and
// Brightness a percentage [0, 100]. Cells are values; a child is always a
// new Cell.
type Cell struct {
	Hue        int
	Brightness int
}

// RootCell returns a fresh dark cell with a random non-blue hue.
func RootCell(rng rnd.Source) Cell {
	return Cell{Hue: core.Mod(rnd.Between(rng, rootHueMin, rootHueMax), hueCircle)}
}

// Child derives a new cell from c. The hue shifts by a uniform offset in
// [-hueDiff, hueDiff]; brightness grows by one with probability pBrighter
// until it reaches MaxBrightness.
func (c Cell) Child(rng rnd.Source, hueDiff int, pBrighter float64) Cell {
	child := Cell{
		Hue:        core.Mod(c.Hue+rnd.Between(rng, -hueDiff, hueDiff+1), hueCircle),
		Brightness: c.Brightness,
	}
	if c.Brightness < MaxBrightness && rnd.Chance(rng, pBrighter) {
		child.Brightness++
	}
	return child
}
