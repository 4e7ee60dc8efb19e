package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a grid simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Finisher is implemented by sims that stop on their own.
type Finisher interface {
	Done() bool
}

// PixelSource is implemented by sims that render full colour frames rather
// than a binary cell buffer. overlay requests transient particles drawn on
// top of the settled state.
type PixelSource interface {
	Pixels(overlay bool) *PixelGrid
}

// RGB is a single 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

// PixelGrid is a W x H raster of RGB triples in row-major order.
type PixelGrid struct {
	W, H int
	Pix  []RGB
}

// NewPixelGrid allocates a grid filled with bg.
func NewPixelGrid(w, h int, bg RGB) *PixelGrid {
	p := &PixelGrid{W: w, H: h, Pix: make([]RGB, w*h)}
	for i := range p.Pix {
		p.Pix[i] = bg
	}
	return p
}

// At returns the pixel at column x, row y.
func (p *PixelGrid) At(x, y int) RGB { return p.Pix[y*p.W+x] }

// Set writes the pixel at column x, row y.
func (p *PixelGrid) Set(x, y int, c RGB) { p.Pix[y*p.W+x] = c }

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
