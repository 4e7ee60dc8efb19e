// Package coral grows a branching, coloured coral on a cylindrical grid.
//
// Particles ("drifters") wander down from the top row. A drifter that
// touches settled coral becomes a child cell of a random neighbour; one
// that reaches the bottom row without touching anything seeds a new root.
// The run ends the first time coral is written on the top row.
package coral

import (
	"errors"
	"fmt"

	"coral/internal/core"
	rnd "coral/pkg/core"
)

var (
	// ErrInvalidSize is returned when rows or cols is not positive.
	ErrInvalidSize = errors.New("coral: board dimensions must be positive")
	// ErrInvalidParameter is returned for parameters outside their domain.
	ErrInvalidParameter = errors.New("coral: invalid parameter")
)

// Board owns the grid, the drifters and the growth parameters. It is not
// safe for concurrent use.
type Board struct {
	cfg   Config
	rates rates
	rng   rnd.Source

	rows, cols int
	cells      *core.Grid[slot]
	drifters   []Drifter

	stepNb  int
	done    bool
	settled int
	seeded  int
	front   int

	occupancy *core.Grid[uint8]
}

// NewBoard builds an empty board with cfg.Cols drifters on the top row.
// When rng is nil a deterministic source seeded from cfg.Seed is used.
func NewBoard(cfg Config, rng rnd.Source) (*Board, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, cfg.Rows, cfg.Cols)
	}
	if cfg.HueDiff < 0 {
		return nil, fmt.Errorf("%w: hue_diff %d is negative", ErrInvalidParameter, cfg.HueDiff)
	}
	if rng == nil {
		rng = rnd.NewRNG(cfg.Seed)
	}
	b := &Board{
		cfg:       cfg,
		rows:      cfg.Rows,
		cols:      cfg.Cols,
		cells:     core.NewGrid[slot](cfg.Cols, cfg.Rows),
		occupancy: core.NewGrid[uint8](cfg.Cols, cfg.Rows),
	}
	b.reset(rng)
	return b, nil
}

func (b *Board) reset(rng rnd.Source) {
	b.rng = rng
	b.rates = b.cfg.rates()
	b.cells.Clear()
	b.stepNb = 0
	b.done = false
	b.settled = 0
	b.seeded = 0
	b.front = b.rows
	b.drifters = make([]Drifter, b.cols)
	for i := range b.drifters {
		b.drifters[i] = b.spawn()
	}
}

// spawn returns a new drifter at a random column of the top row.
func (b *Board) spawn() Drifter {
	return Drifter{Row: 0, Col: b.rng.IntN(b.cols)}
}

// Advance moves the whole system forward by one step. Drifters are
// processed in order against the grid as it is being updated, so a cell
// written by an earlier drifter is visible to later ones in the same step,
// and the last write to a cell wins.
func (b *Board) Advance() {
	b.stepNb++
	for i, d := range b.drifters {
		b.drifters[i] = b.drifterStep(d)
	}
}

// drifterStep settles, seeds or drifts a single drifter and returns its
// replacement position.
func (b *Board) drifterStep(d Drifter) Drifter {
	if parent, ok := coralNeighbor(b.cells, d.Row, d.Col, b.rng); ok {
		b.place(d, parent.Child(b.rng, b.cfg.HueDiff, b.rates.pBrighter))
		b.settled++
		return b.spawn()
	}
	if d.Row == b.rows-1 {
		b.place(d, RootCell(b.rng))
		b.seeded++
		return b.spawn()
	}
	return drift(d, b.rows, b.cols, b.rates, b.rng)
}

// place writes c at the drifter's position. Coral on the top row ends the
// run; on a one-row board that includes a freshly seeded root.
func (b *Board) place(d Drifter, c Cell) {
	b.cells.Set(d.Col, d.Row, slot{cell: c, ok: true})
	if d.Row < b.front {
		b.front = d.Row
	}
	if d.Row == 0 {
		b.done = true
	}
}

// Done reports whether growth has reached the top row.
func (b *Board) Done() bool { return b.done }

// Steps returns the number of Advance calls since construction or the last
// Run/Reset.
func (b *Board) Steps() int { return b.stepNb }

// Settled counts cells created by attaching to existing coral.
func (b *Board) Settled() int { return b.settled }

// Seeded counts root cells created on the bottom row.
func (b *Board) Seeded() int { return b.seeded }

// Front returns the highest row (smallest index) holding coral, or Rows()
// when the grid is empty.
func (b *Board) Front() int { return b.front }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Config returns the configuration the board was built with, including any
// live parameter changes.
func (b *Board) Config() Config { return b.cfg }

// CellAt returns the cell at (row, col) if one has settled there.
func (b *Board) CellAt(row, col int) (Cell, bool) {
	if row < 0 || row >= b.rows {
		return Cell{}, false
	}
	s := b.cells.At(b.cells.WrapX(col), row)
	return s.cell, s.ok
}

// Drifters returns a copy of the current drifter positions.
func (b *Board) Drifters() []Drifter {
	return append([]Drifter(nil), b.drifters...)
}
