package core

// Grid stores a 2D grid of values in row-major order. The horizontal axis
// wraps (cylinder topology); the vertical axis is bounded.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y). x must already be wrapped.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// WrapX applies cylindrical wrapping to a column index.
func (g *Grid[T]) WrapX(x int) int { return Mod(x, g.W) }

// Clear resets every slot to the zero value.
func (g *Grid[T]) Clear() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}

// Mod returns a modulo n in [0, n) for positive n, including negative a.
func Mod(a, n int) int {
	return (a%n + n) % n
}
