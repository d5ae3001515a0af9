// blocks is a falling-block puzzle for the terminal.
//
// Usage:
//
//	blocks list              - List available variants
//	blocks play [variant]    - Play a variant (default: blocks)
//	blocks menu              - Pick a variant interactively
//	blocks sim               - Run the engine headless and print the result
//	blocks presets ...       - Manage stored start presets
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set preset database path (default: ~/.blocks/presets.db)
//	--config <path>      - Engine config YAML
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle in your terminal",
	Long: `Blocks is a deterministic falling-block puzzle played in the terminal.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  sim      - Headless run driven by a command script
  presets  - Manage stored start presets

Examples:
  blocks play
  blocks play blocks_demo --seed 42
  blocks sim --seed 7 --ticks 400 --script left,left,down
  blocks presets save tower --board ./tower.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config, then time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/presets.db", "Path to presets database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(presetsCmd)
}
