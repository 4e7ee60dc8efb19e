package coral

import (
	"coral/internal/core"
	rnd "coral/pkg/core"
)

// upProbability is the chance a drifter that did not fall moves up rather
// than sideways.
const upProbability = 0.333

// Drifter is the position of a particle that has not settled yet.
type Drifter struct {
	Row, Col int
}

// slot is one grid position: empty unless ok is set.
type slot struct {
	cell Cell
	ok   bool
}

// coralNeighbor picks a uniformly random settled cell among the orthogonal
// neighbours of (row, col), checked in the order up, down, left, right.
// Columns wrap; rows do not.
func coralNeighbor(cells *core.Grid[slot], row, col int, rng rnd.Source) (Cell, bool) {
	var found [4]Cell
	n := 0
	add := func(x, y int) {
		if s := cells.At(x, y); s.ok {
			found[n] = s.cell
			n++
		}
	}
	if row > 0 {
		add(col, row-1)
	}
	if row < cells.H-1 {
		add(col, row+1)
	}
	add(cells.WrapX(col-1), row)
	add(cells.WrapX(col+1), row)

	if n == 0 {
		return Cell{}, false
	}
	return found[rng.IntN(n)], true
}

// drift moves a drifter one cell. The branches form a cascade, each with a
// fresh draw: fall with pDown unless on the last row, otherwise rise with
// upProbability unless on the top row, otherwise step right with pRight or
// left.
func drift(d Drifter, rows, cols int, r rates, rng rnd.Source) Drifter {
	if d.Row < rows-1 && rnd.Chance(rng, r.pDown) {
		return Drifter{Row: d.Row + 1, Col: d.Col}
	}
	if d.Row > 0 && rnd.Chance(rng, upProbability) {
		return Drifter{Row: d.Row - 1, Col: d.Col}
	}
	if rnd.Chance(rng, r.pRight) {
		return Drifter{Row: d.Row, Col: core.Mod(d.Col+1, cols)}
	}
	return Drifter{Row: d.Row, Col: core.Mod(d.Col-1, cols)}
}
