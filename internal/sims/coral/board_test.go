package coral

import (
	"context"
	"errors"
	"testing"

	"coral/internal/core"
	rnd "coral/pkg/core"
)

func testConfig(rows, cols int) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	return cfg
}

func TestNewBoardValidation(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewBoard(testConfig(size[0], size[1]), nil)
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewBoard(%v) err = %v, want ErrInvalidSize", size, err)
		}
	}

	cfg := testConfig(4, 4)
	cfg.HueDiff = -1
	if _, err := NewBoard(cfg, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative hue diff err = %v, want ErrInvalidParameter", err)
	}
}

func TestNewBoardInitialState(t *testing.T) {
	b, err := NewBoard(testConfig(6, 9), rnd.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if b.Done() || b.Steps() != 0 || b.Settled() != 0 || b.Seeded() != 0 {
		t.Fatalf("unexpected initial counters: done=%v steps=%d settled=%d seeded=%d", b.Done(), b.Steps(), b.Settled(), b.Seeded())
	}
	if b.Front() != 6 {
		t.Fatalf("empty board front = %d, want 6", b.Front())
	}
	drifters := b.Drifters()
	if len(drifters) != 9 {
		t.Fatalf("expected 9 drifters, got %d", len(drifters))
	}
	for _, d := range drifters {
		if d.Row != 0 || d.Col < 0 || d.Col >= 9 {
			t.Fatalf("drifter %+v not on the top row", d)
		}
	}
	for row := 0; row < 6; row++ {
		for col := 0; col < 9; col++ {
			if _, ok := b.CellAt(row, col); ok {
				t.Fatalf("cell (%d,%d) should be empty", row, col)
			}
		}
	}
}

func TestDerivedRates(t *testing.T) {
	cfg := testConfig(200, 10)
	cfg.PBrightness = 0.8
	cfg.DownBias = 0.3
	cfg.RightBias = -0.5
	r := cfg.rates()
	if !near(r.pBrighter, 0.4) || !near(r.pDown, 0.475) || !near(r.pRight, 0.25) {
		t.Fatalf("rates = %+v", r)
	}

	cfg.DownBias = 3
	cfg.RightBias = -4
	cfg.PBrightness = 1000
	r = cfg.rates()
	if r.pDown != 1 || r.pRight != 0 || r.pBrighter != 1 {
		t.Fatalf("rates not clamped: %+v", r)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestCoralNeighborOrderAndWrap(t *testing.T) {
	g := core.NewGrid[slot](3, 3)
	up := Cell{Hue: 10}
	down := Cell{Hue: 20}
	left := Cell{Hue: 30}
	right := Cell{Hue: 40}
	g.Set(0, 0, slot{cell: up, ok: true})
	g.Set(0, 2, slot{cell: down, ok: true})
	g.Set(2, 1, slot{cell: left, ok: true}) // wraps from col -1
	g.Set(1, 1, slot{cell: right, ok: true})

	for i, want := range []Cell{up, down, left, right} {
		got, ok := coralNeighbor(g, 1, 0, &scripted{ints: []int{i}})
		if !ok || got != want {
			t.Fatalf("choice %d = %+v/%v, want %+v", i, got, ok, want)
		}
	}

	if _, ok := coralNeighbor(core.NewGrid[slot](3, 3), 1, 1, &scripted{}); ok {
		t.Fatal("empty grid must have no neighbour")
	}
}

func TestCoralNeighborRowsDoNotWrap(t *testing.T) {
	g := core.NewGrid[slot](3, 3)
	g.Set(1, 2, slot{cell: Cell{Hue: 1}, ok: true})
	if _, ok := coralNeighbor(g, 0, 1, &scripted{}); ok {
		t.Fatal("top row must not see the bottom row")
	}
	g = core.NewGrid[slot](3, 3)
	g.Set(1, 0, slot{cell: Cell{Hue: 1}, ok: true})
	if _, ok := coralNeighbor(g, 2, 1, &scripted{}); ok {
		t.Fatal("bottom row must not see the top row")
	}
}

func TestDriftCascade(t *testing.T) {
	r := rates{pDown: 0.5, pRight: 0.5}
	cases := []struct {
		name   string
		from   Drifter
		floats []float64
		want   Drifter
		draws  int
	}{
		{"falls", Drifter{1, 1}, []float64{0.1}, Drifter{2, 1}, 1},
		{"rises when fall fails", Drifter{1, 1}, []float64{0.9, 0.1}, Drifter{0, 1}, 2},
		{"moves right", Drifter{1, 1}, []float64{0.9, 0.9, 0.1}, Drifter{1, 2}, 3},
		{"moves left", Drifter{1, 1}, []float64{0.9, 0.9, 0.9}, Drifter{1, 0}, 3},
		{"last row skips fall", Drifter{2, 1}, []float64{0.1}, Drifter{1, 1}, 1},
		{"top row skips rise", Drifter{0, 1}, []float64{0.9, 0.1}, Drifter{0, 2}, 2},
		{"right wraps", Drifter{0, 3}, []float64{0.9, 0.1}, Drifter{0, 0}, 2},
		{"left wraps", Drifter{0, 0}, []float64{0.9, 0.9}, Drifter{0, 3}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := &scripted{floats: c.floats}
			got := drift(c.from, 3, 4, r, src)
			if got != c.want {
				t.Fatalf("drift(%+v) = %+v, want %+v", c.from, got, c.want)
			}
			if src.floatCalls != c.draws {
				t.Fatalf("expected %d draws, got %d", c.draws, src.floatCalls)
			}
		})
	}
}

func TestSingleRowSingleColumnFinishesInOneStep(t *testing.T) {
	b, err := NewBoard(testConfig(1, 1), rnd.NewRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	b.Advance()
	if !b.Done() {
		t.Fatal("1x1 board should be done after one advance")
	}
	if b.Steps() != 1 || b.Seeded() != 1 || b.Settled() != 0 {
		t.Fatalf("steps=%d seeded=%d settled=%d", b.Steps(), b.Seeded(), b.Settled())
	}
	c, ok := b.CellAt(0, 0)
	if !ok || c.Brightness != 0 {
		t.Fatalf("expected a root cell at (0,0), got %+v/%v", c, ok)
	}
}

func TestTwoRowsSeedThenSettle(t *testing.T) {
	// IntN draws: spawn, root hue, respawn, neighbour choice, child hue offset.
	src := &scripted{
		ints:   []int{0, 100, 0, 0, 2},
		floats: []float64{0.99},
	}
	cfg := testConfig(2, 1)
	cfg.PBrightness = 0.01
	b, err := NewBoard(cfg, src)
	if err != nil {
		t.Fatal(err)
	}
	b.drifters[0] = Drifter{Row: 1, Col: 0}

	b.Advance()
	root, ok := b.CellAt(1, 0)
	if !ok {
		t.Fatal("expected a seed on the last row after step 1")
	}
	if root != (Cell{Hue: 40, Brightness: 0}) {
		t.Fatalf("root = %+v, want hue 40 brightness 0", root)
	}
	if b.Done() {
		t.Fatal("seeding on the last row must not finish a two-row board")
	}
	if d := b.Drifters()[0]; d != (Drifter{0, 0}) {
		t.Fatalf("replacement drifter = %+v, want top row", d)
	}

	b.Advance()
	child, ok := b.CellAt(0, 0)
	if !ok {
		t.Fatal("expected the drifter to settle on row 0 after step 2")
	}
	if child != (Cell{Hue: 40, Brightness: 0}) {
		t.Fatalf("child = %+v, want inherited hue 40 and unchanged brightness", child)
	}
	if !b.Done() {
		t.Fatal("settling on row 0 must finish the run")
	}
	if b.Settled() != 1 || b.Seeded() != 1 || b.Front() != 0 {
		t.Fatalf("settled=%d seeded=%d front=%d", b.Settled(), b.Seeded(), b.Front())
	}
}

func TestTwoRowsFromSpawn(t *testing.T) {
	// Exhausted scripts return 0: every drifter falls and every choice is the first.
	b, err := NewBoard(testConfig(2, 1), &scripted{})
	if err != nil {
		t.Fatal(err)
	}
	b.Advance()
	if _, ok := b.CellAt(1, 0); ok {
		t.Fatal("step 1 only moves the drifter down")
	}
	if d := b.Drifters()[0]; d != (Drifter{1, 0}) {
		t.Fatalf("drifter = %+v, want (1,0)", d)
	}
	b.Advance()
	if _, ok := b.CellAt(1, 0); !ok || b.Done() {
		t.Fatal("step 2 seeds the last row")
	}
	b.Advance()
	if !b.Done() {
		t.Fatal("step 3 settles on the top row")
	}
}

func TestLastRowWithNeighbourSettles(t *testing.T) {
	b, err := NewBoard(testConfig(2, 3), &scripted{})
	if err != nil {
		t.Fatal(err)
	}
	parent := Cell{Hue: 90, Brightness: 7}
	b.cells.Set(0, 1, slot{cell: parent, ok: true})
	b.drifters = []Drifter{{Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 0, Col: 1}}

	b.Advance()
	if b.Seeded() != 0 {
		t.Fatalf("a drifter with a neighbour must not seed, seeded=%d", b.Seeded())
	}
	got, ok := b.CellAt(1, 1)
	if !ok || got.Brightness < parent.Brightness {
		t.Fatalf("expected a child of %+v at (1,1), got %+v/%v", parent, got, ok)
	}
}

func TestDrifterCountIsStable(t *testing.T) {
	b, err := NewBoard(testConfig(20, 17), rnd.NewRNG(21))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500 && !b.Done(); i++ {
		b.Advance()
		if n := len(b.Drifters()); n != 17 {
			t.Fatalf("step %d: %d drifters, want 17", b.Steps(), n)
		}
		for _, d := range b.Drifters() {
			if d.Row < 0 || d.Row >= 20 || d.Col < 0 || d.Col >= 17 {
				t.Fatalf("drifter %+v out of bounds", d)
			}
		}
	}
}

func TestRunCompletesAndKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := testConfig(15, 12)
		cfg.HueDiff = 10
		cfg.PBrightness = 5
		b, err := NewBoard(cfg, rnd.NewRNG(seed))
		if err != nil {
			t.Fatal(err)
		}

		cells := make(map[[2]int]Cell)
		stats := b.Run(WithStepHook(func(b *Board) {
			if b.Steps() > 1_000_000 {
				t.Fatalf("seed %d: no completion after %d steps", seed, b.Steps())
			}
			if len(b.drifters) != cfg.Cols {
				t.Fatalf("seed %d: drifter count %d", seed, len(b.drifters))
			}
		}))
		if !b.Done() {
			t.Fatalf("seed %d: Run returned before done", seed)
		}
		if stats.Steps != b.Steps() || stats.Steps == 0 {
			t.Fatalf("seed %d: stats steps %d, board steps %d", seed, stats.Steps, b.Steps())
		}
		if stats.Seeded == 0 {
			t.Fatalf("seed %d: coral cannot grow without a root", seed)
		}
		if b.Front() != 0 {
			t.Fatalf("seed %d: done but front is row %d", seed, b.Front())
		}
		for row := 0; row < cfg.Rows; row++ {
			for col := 0; col < cfg.Cols; col++ {
				c, ok := b.CellAt(row, col)
				if !ok {
					continue
				}
				if c.Hue < 0 || c.Hue >= 360 || c.Brightness < 0 || c.Brightness > MaxBrightness {
					t.Fatalf("seed %d: cell (%d,%d) = %+v out of range", seed, row, col, c)
				}
				cells[[2]int{row, col}] = c
			}
		}
		if len(cells) == 0 {
			t.Fatalf("seed %d: no coral", seed)
		}
	}
}

func TestRunOptions(t *testing.T) {
	b, err := NewBoard(testConfig(1, 1), rnd.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	var progress []int
	var frames []int
	b.Run(
		WithProgress(1, func(step int) { progress = append(progress, step) }),
		WithSnapshots(1, func(step, frame int, px *core.PixelGrid) {
			frames = append(frames, frame)
			if px.W != 1 || px.H != 1 {
				t.Fatalf("snapshot size %dx%d", px.W, px.H)
			}
			if px.At(0, 0) != DrifterColor {
				t.Fatalf("snapshot should include drifters, got %+v", px.At(0, 0))
			}
		}),
	)
	if len(progress) != 1 || progress[0] != 1 {
		t.Fatalf("progress calls = %v", progress)
	}
	if len(frames) != 1 || frames[0] != 1 {
		t.Fatalf("frames = %v", frames)
	}
}

func TestRunContextCancelled(t *testing.T) {
	b, err := NewBoard(testConfig(50, 50), rnd.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := b.RunContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if stats.Steps != 0 || b.Done() {
		t.Fatalf("cancelled run advanced: %+v", stats)
	}
}

func TestRunRestartsStepCounter(t *testing.T) {
	b, err := NewBoard(testConfig(8, 8), rnd.NewRNG(4))
	if err != nil {
		t.Fatal(err)
	}
	b.Advance()
	b.Advance()
	stats := b.Run()
	if stats.Steps != b.Steps() {
		t.Fatalf("stats %d != board %d", stats.Steps, b.Steps())
	}
}
