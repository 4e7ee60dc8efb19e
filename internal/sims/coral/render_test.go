package coral

import (
	"strings"
	"testing"

	"coral/internal/core"
	rnd "coral/pkg/core"
)

func TestPixelsEmptyBoard(t *testing.T) {
	b, err := NewBoard(testConfig(3, 5), rnd.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	px := b.Pixels(false)
	if px.W != 5 || px.H != 3 || len(px.Pix) != 15 {
		t.Fatalf("pixel grid %dx%d with %d pixels, want 5x3", px.W, px.H, len(px.Pix))
	}
	for i, p := range px.Pix {
		if p != Background {
			t.Fatalf("pixel %d = %+v, want background", i, p)
		}
	}

	withDrifters := b.Pixels(true)
	for _, d := range b.Drifters() {
		if got := withDrifters.At(d.Col, d.Row); got != DrifterColor {
			t.Fatalf("drifter at %+v rendered as %+v", d, got)
		}
	}
}

func TestPixelsSettledCells(t *testing.T) {
	b, err := NewBoard(testConfig(2, 2), &scripted{})
	if err != nil {
		t.Fatal(err)
	}
	cell := Cell{Hue: 120, Brightness: 100}
	b.cells.Set(1, 1, slot{cell: cell, ok: true})

	px := b.Pixels(false)
	if got := px.At(1, 1); got != (core.RGB{G: 255}) {
		t.Fatalf("settled pixel = %+v, want pure green", got)
	}
	if got := px.At(0, 1); got != Background {
		t.Fatalf("empty pixel = %+v, want background", got)
	}
}

func TestStringMarks(t *testing.T) {
	b, err := NewBoard(testConfig(2, 3), &scripted{})
	if err != nil {
		t.Fatal(err)
	}
	b.cells.Set(0, 1, slot{cell: Cell{}, ok: true})
	b.cells.Set(1, 1, slot{cell: Cell{}, ok: true})
	b.drifters = []Drifter{{Row: 1, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 2}}

	want := "  .\n.# "
	if got := b.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringShape(t *testing.T) {
	b, err := NewBoard(testConfig(4, 7), rnd.NewRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b.Advance()
	}
	lines := strings.Split(b.String(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 7 {
			t.Fatalf("line %d has %d chars, want 7", i, len(line))
		}
		if strings.Trim(line, " .#") != "" {
			t.Fatalf("line %d has unexpected marks: %q", i, line)
		}
	}
}

func TestBrightnessMask(t *testing.T) {
	b, err := NewBoard(testConfig(2, 3), &scripted{})
	if err != nil {
		t.Fatal(err)
	}
	b.cells.Set(2, 0, slot{cell: Cell{Hue: 10, Brightness: 50}, ok: true})
	b.cells.Set(0, 1, slot{cell: Cell{Hue: 10, Brightness: 100}, ok: true})

	mask := b.BrightnessMask()
	want := []float32{0, 0, 0.5, 1, 0, 0}
	if len(mask) != len(want) {
		t.Fatalf("mask length = %d, want %d", len(mask), len(want))
	}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}
