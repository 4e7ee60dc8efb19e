package coral

import (
	"coral/internal/config"
	"coral/internal/core"
	rnd "coral/pkg/core"
)

const (
	cellEmpty   = 0
	cellCoral   = 1
	cellDrifter = 2
)

// Name returns the simulation identifier.
func (b *Board) Name() string { return "coral" }

// Size reports the grid dimensions.
func (b *Board) Size() core.Size { return core.Size{W: b.cols, H: b.rows} }

// Step advances the board by one step. It is Advance under the Sim name.
func (b *Board) Step() { b.Advance() }

// Reset clears the board and reseeds it. A zero seed reuses the configured one.
func (b *Board) Reset(seed int64) {
	if seed == 0 {
		seed = b.cfg.Seed
	}
	b.cfg.Seed = seed
	b.reset(rnd.NewRNG(seed))
}

// Cells exposes an occupancy buffer: 0 for water, 1 for coral, 2 for a
// drifter. The buffer is reused between calls.
func (b *Board) Cells() []uint8 {
	out := b.occupancy.Cells()
	for i, s := range b.cells.Cells() {
		out[i] = cellEmpty
		if s.ok {
			out[i] = cellCoral
		}
	}
	for _, d := range b.drifters {
		out[b.occupancy.Index(d.Col, d.Row)] = cellDrifter
	}
	return out
}

func newSim(cfg Config) core.Sim {
	b, err := NewBoard(cfg, nil)
	if err != nil {
		// FromMap only accepts positive sizes and non-negative hue diffs.
		panic(err)
	}
	return b
}

func init() {
	core.Register("coral", func(cfg map[string]string) core.Sim {
		return newSim(FromMap(cfg))
	})
	for _, preset := range config.Builtin().Presets {
		base := FromPreset(preset)
		core.Register("coral/"+preset.Name, func(cfg map[string]string) core.Sim {
			return newSim(base.Apply(cfg))
		})
	}
}
