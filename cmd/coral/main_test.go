package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"coral/internal/config"
	"coral/internal/sims/coral"
)

func TestBoardFlagsApplyOnlyChanged(t *testing.T) {
	presets = config.Builtin()
	var f boardFlags
	cmd := &cobra.Command{Use: "x"}
	f.bind(cmd, "seaweed")
	if err := cmd.Flags().Parse([]string{"--rows", "40", "--right-bias", "0.5"}); err != nil {
		t.Fatal(err)
	}

	p, err := presets.Find(f.preset)
	if err != nil {
		t.Fatal(err)
	}
	cfg := f.apply(cmd, coral.FromPreset(p), 77)
	if cfg.Rows != 40 || cfg.Cols != 1200 {
		t.Fatalf("size = %dx%d, want 40x1200", cfg.Rows, cfg.Cols)
	}
	if cfg.RightBias != 0.5 || cfg.DownBias != 0.1 || cfg.HueDiff != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Seed != 77 {
		t.Fatalf("seed = %d, want 77", cfg.Seed)
	}
}

func TestBoardFlagsUnknownPreset(t *testing.T) {
	presets = config.Builtin()
	var f boardFlags
	cmd := &cobra.Command{Use: "x"}
	f.bind(cmd, "kelp")
	if _, err := f.config(cmd); err == nil {
		t.Fatal("expected unknown preset error")
	}
}

func TestSweepJobs(t *testing.T) {
	presets = config.Builtin()
	selected, err := presetsOrAll([]string{"dense", "sparse"})
	if err != nil {
		t.Fatal(err)
	}
	jobs := sweepJobs(selected, 100, 3, 10, 20)
	if len(jobs) != 6 {
		t.Fatalf("got %d jobs, want 6", len(jobs))
	}
	for i, job := range jobs {
		if job.cfg.Rows != 10 || job.cfg.Cols != 20 {
			t.Fatalf("job %d size = %dx%d", i, job.cfg.Rows, job.cfg.Cols)
		}
		if want := int64(100 + i%3); job.cfg.Seed != want {
			t.Fatalf("job %d seed = %d, want %d", i, job.cfg.Seed, want)
		}
	}
	if jobs[0].preset != "dense" || jobs[5].preset != "sparse" {
		t.Fatalf("unexpected preset order %q..%q", jobs[0].preset, jobs[5].preset)
	}

	all, err := presetsOrAll(nil)
	if err != nil || len(all) != len(presets.Presets) {
		t.Fatalf("presetsOrAll(nil) = %d presets, %v", len(all), err)
	}
}

func TestRunPoolFinishesEveryBoard(t *testing.T) {
	presets = config.Builtin()
	selected, err := presetsOrAll([]string{"dense", "right"})
	if err != nil {
		t.Fatal(err)
	}
	jobs := sweepJobs(selected, 1, 4, 8, 12)

	var results []sweepResult
	for res := range runPool(context.Background(), jobs, 3) {
		if res.err != nil {
			t.Fatalf("job %+v failed: %v", res.job, res.err)
		}
		results = append(results, res)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}

	summaries := summarize(results)
	if len(summaries) != 2 || summaries[0].Preset != "dense" || summaries[1].Preset != "right" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}
	for _, s := range summaries {
		if s.Runs != 4 || s.Min <= 0 || s.Min > s.Max || s.Mean < float64(s.Min) || s.Mean > float64(s.Max) {
			t.Fatalf("inconsistent summary %+v", s)
		}
	}
}

func TestRunPoolCancelled(t *testing.T) {
	presets = config.Builtin()
	selected, _ := presetsOrAll([]string{"coral"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for res := range runPool(ctx, sweepJobs(selected, 1, 5, 0, 0), 2) {
		if res.err == nil {
			t.Fatalf("job %+v finished despite cancelled context", res.job)
		}
	}
}

func TestSummarize(t *testing.T) {
	mk := func(preset string, steps int) sweepResult {
		return sweepResult{job: sweepJob{preset: preset}, stats: coral.Stats{Steps: steps}}
	}
	got := summarize([]sweepResult{mk("b", 10), mk("a", 2), mk("b", 30), mk("a", 4)})
	want := []sweepSummary{
		{Preset: "a", Runs: 2, Min: 2, Max: 4, Mean: 3, StdDev: 1},
		{Preset: "b", Runs: 2, Min: 10, Max: 30, Mean: 20, StdDev: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("summary %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestOverrides(t *testing.T) {
	presets = config.Builtin()
	seaweed, _ := presets.Find("seaweed")
	if got := overrides(seaweed); got != "hue_diff=1 p_brightness=1 down_bias=0.1 right_bias=-0.05" {
		t.Fatalf("overrides(seaweed) = %q", got)
	}
	coralPreset, _ := presets.Find("coral")
	if got := overrides(coralPreset); got != "(defaults)" {
		t.Fatalf("overrides(coral) = %q", got)
	}
}

func TestColorFrameShape(t *testing.T) {
	cfg := coral.DefaultConfig()
	cfg.Rows, cfg.Cols = 4, 6
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		b.Advance()
	}
	frame := colorFrame(b)
	if lines := strings.Split(frame, "\n"); len(lines) != cfg.Rows {
		t.Fatalf("colour frame has %d lines, want %d", len(lines), cfg.Rows)
	}
	if !strings.Contains(frame, ".") {
		t.Fatal("colour frame shows no drifters")
	}
}

func TestWatchModelKeys(t *testing.T) {
	cfg := coral.DefaultConfig()
	cfg.Rows, cfg.Cols = 5, 8
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = newWatchModel(b, 20, 3, true)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if b.Steps() != 1 {
		t.Fatalf("steps after n = %d, want 1", b.Steps())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.(watchModel).paused {
		t.Fatal("space did not pause")
	}
	if !strings.Contains(m.View(), "paused") {
		t.Fatalf("view lacks paused status:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if got := m.(watchModel).stepsPerFrame; got != 6 {
		t.Fatalf("stepsPerFrame = %d, want 6", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
