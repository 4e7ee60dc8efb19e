package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"coral/internal/core"
	"coral/internal/sims/coral"
)

// maxCatchUpFrames bounds how many frames of steps one tick may run when
// rendering falls behind.
const maxCatchUpFrames = 4

var watchFlags struct {
	board         boardFlags
	tps           int
	stepsPerFrame int
	plain         bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate a board in the terminal",
	Long: `Grow a board in the terminal. Unless --rows or --cols are given the
board is sized to fit the terminal. Drifters show as '.', coral as '#'
coloured by its hue and brightness.

Keys: space pause, n single step, +/- speed, q quit.

Examples:
  coral watch
  coral watch --preset dense --steps-per-frame 5
  coral watch --plain --rows 30 --cols 80`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchFlags.board.bind(watchCmd, "coral")
	fs := watchCmd.Flags()
	fs.IntVar(&watchFlags.tps, "tps", 20, "Frames per second")
	fs.IntVar(&watchFlags.stepsPerFrame, "steps-per-frame", 2, "Board steps between frames")
	fs.BoolVar(&watchFlags.plain, "plain", false, "Print the plain text snapshot without colours")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := watchFlags.board.config(cmd)
	if err != nil {
		return err
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if !cmd.Flags().Changed("cols") {
			cfg.Cols = w
		}
		if !cmd.Flags().Changed("rows") {
			cfg.Rows = max(h-2, 1)
		}
	}
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	m := newWatchModel(b, watchFlags.tps, watchFlags.stepsPerFrame, watchFlags.plain)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		return err
	}

	st := coral.Stats{Steps: b.Steps(), Settled: b.Settled(), Seeded: b.Seeded(), Elapsed: time.Since(start)}
	if !b.Done() {
		logger.Info("watch stopped", "step", st.Steps, "settled", st.Settled)
		return nil
	}
	logger.Info("coral finished", "steps", st.Steps, "settled", st.Settled)
	store := openHistory()
	if store != nil {
		defer store.Close()
	}
	recordRun(store, newRunRecord(watchFlags.board.preset, cfg, st, ""))
	return nil
}

type watchTickMsg time.Time

// watchModel is the Bubble Tea model driving the terminal animation.
type watchModel struct {
	board         *coral.Board
	timer         *core.FixedStep
	stepsPerFrame int
	plain         bool
	paused        bool
}

func newWatchModel(b *coral.Board, tps, stepsPerFrame int, plain bool) watchModel {
	return watchModel{
		board:         b,
		timer:         core.NewFixedStep(tps),
		stepsPerFrame: max(stepsPerFrame, 1),
		plain:         plain,
	}
}

// tick schedules the next frame for when the fixed step is next due.
func (m watchModel) tick() tea.Cmd {
	d := max(m.timer.Delay(), time.Millisecond)
	return tea.Tick(d, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) Init() tea.Cmd { return m.tick() }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			m.advance(1)
		case "+", "=":
			m.stepsPerFrame = min(m.stepsPerFrame*2, 1<<14)
		case "-":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		}
		return m, nil

	case watchTickMsg:
		frames := 0
		for m.timer.ShouldStep() {
			frames++
		}
		frames = min(frames, maxCatchUpFrames)
		if !m.paused {
			m.advance(frames * m.stepsPerFrame)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) advance(n int) {
	for i := 0; i < n && !m.board.Done(); i++ {
		m.board.Advance()
	}
}

func (m watchModel) View() string {
	b := m.board
	frame := b.String()
	if !m.plain {
		frame = colorFrame(b)
	}
	status := fmt.Sprintf("step %d  settled %d  front %d  x%d", b.Steps(), b.Settled(), b.Front(), m.stepsPerFrame)
	switch {
	case b.Done():
		status += "  done, q to quit"
	case m.paused:
		status += "  paused"
	}
	return frame + "\n" + status
}

var (
	waterStyle   = lipgloss.NewStyle().Background(lipgloss.Color(hexColor(coral.Background)))
	drifterStyle = waterStyle.Foreground(lipgloss.Color(hexColor(coral.DrifterColor)))
)

func hexColor(c core.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// colorFrame renders the text snapshot with runs of equal colour grouped
// into one styled span.
func colorFrame(b *coral.Board) string {
	drifting := make(map[coral.Drifter]bool, b.Cols())
	for _, d := range b.Drifters() {
		drifting[d] = true
	}

	var sb strings.Builder
	for row := 0; row < b.Rows(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < b.Cols(); col++ {
			key, style, mark := "water", waterStyle, " "
			if drifting[coral.Drifter{Row: row, Col: col}] {
				key, style, mark = "drifter", drifterStyle, "."
			} else if cell, ok := b.CellAt(row, col); ok {
				key = hexColor(cell.RGB())
				style, mark = waterStyle.Foreground(lipgloss.Color(key)), "#"
			}
			if key != runKey {
				flush()
				runKey, runStyle = key, style
			}
			run.WriteString(mark)
		}
		flush()
	}
	return sb.String()
}
