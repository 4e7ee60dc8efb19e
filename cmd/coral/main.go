// coral grows stochastic coral on a cylindrical grid and renders it.
//
// Usage:
//
//	coral render [out.png]   - Grow one board and save the image
//	coral examples [dir]     - Regenerate the example gallery
//	coral watch              - Animate a board in the terminal
//	coral sweep              - Run many seeds per preset in parallel
//	coral history            - Show recorded runs
//	coral presets            - List available presets
//	coral view               - Open the interactive viewer
//
// Global flags:
//
//	--seed <value>      - RNG seed (0 = random based on time)
//	--db <path>         - History database (default: ~/.coral/history.db, empty to disable)
//	--presets <path>    - Custom presets YAML
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"coral/internal/config"
)

var (
	flagSeed     int64
	flagDBPath   string
	flagPresets  string
	flagLogLevel string
)

var (
	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "coral"})
	presets config.Presets
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coral",
	Short: "Grow stochastic coral images",
	Long: `coral simulates particles drifting down a cylindrical grid. Each
particle that touches existing coral settles next to it, inheriting a
slightly shifted colour, until the colony reaches the top row.

Examples:
  coral render out.png --preset seaweed
  coral render --preset bright --image-step 500 --video growth.avi
  coral examples ./examples
  coral watch --preset dense
  coral sweep --seeds 16`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coral/history.db", "Path to run history database (empty disables recording)")
	rootCmd.PersistentFlags().StringVar(&flagPresets, "presets", "", "Path to custom presets YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(viewCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	presets, err = config.Load(flagPresets)
	if err != nil {
		return err
	}
	logger.Debug("presets loaded", "count", len(presets.Presets))
	return nil
}

// resolveSeed returns the --seed value, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
