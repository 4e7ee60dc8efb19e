package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"coral/internal/config"
	"coral/internal/core"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available presets",
	Long: `Show the presets loaded from --presets, ~/.coral/presets.yaml,
./configs/presets.yaml or the built-in defaults, in that order.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	if len(presets.Presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()
	fmt.Printf("  %-14s  %-6s  %-9s  %s\n", "Name", "Group", "Size", "Overrides")
	fmt.Printf("  %-14s  %-6s  %-9s  %s\n", "----", "-----", "----", "---------")
	for _, name := range presets.Names() {
		p, _ := presets.Find(name)
		fmt.Printf("  %-14s  %-6s  %-9s  %s\n", p.Name, p.Group, fmt.Sprintf("%dx%d", p.Rows, p.Cols), overrides(p))
	}

	fmt.Println()
	fmt.Println("Registered sims: " + strings.Join(core.Names(), ", "))
	fmt.Println()
	fmt.Println("Run 'coral render --preset <name>' to grow one.")
}

func overrides(p config.Preset) string {
	var parts []string
	if p.HueDiff != nil {
		parts = append(parts, "hue_diff="+strconv.Itoa(*p.HueDiff))
	}
	for _, f := range []struct {
		key string
		v   *float64
	}{
		{"p_brightness", p.PBrightness},
		{"down_bias", p.DownBias},
		{"right_bias", p.RightBias},
	} {
		if f.v != nil {
			parts = append(parts, f.key+"="+strconv.FormatFloat(*f.v, 'g', -1, 64))
		}
	}
	if len(parts) == 0 {
		return "(defaults)"
	}
	return strings.Join(parts, " ")
}
