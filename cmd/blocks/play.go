package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagBoard  string
	flagPreset string
	flagLayout string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: blocks).

Controls:
  Left/Right/A/D  - Move
  Down/S          - Soft drop
  Up/W/Z          - Rotate counter-clockwise
  X               - Rotate clockwise
  P/Esc           - Pause
  R               - Restart (after game over)
  Ctrl+S          - Screenshot
  Q/Ctrl+C        - Quit

Examples:
  blocks play
  blocks play blocks_demo
  blocks play --layout demo --seed 42
  blocks play --board ./tower.yaml
  blocks play --preset tower`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Start override YAML with a seed and/or literal board")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Name of a stored start preset")
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Built-in start layout for the blocks variant")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "blocks"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	exitOnError("logging", err)
	defer closeLog()

	cfg := loadConfig()

	// The store is only needed to resolve a preset.
	var store *storage.Store
	var getter presetGetter
	if flagPreset != "" {
		store, err = storage.Open(flagDBPath)
		exitOnError("presets database", err)
		defer store.Close()
		getter = store
	}

	st, err := resolveStart(cfg, startOptions{
		variant:   gameID,
		boardFile: flagBoard,
		preset:    flagPreset,
		layout:    flagLayout,
		seedSet:   cmd.Flags().Changed("seed"),
	}, getter, logger)
	exitOnError("start", err)

	runtime := configureGame(cfg, st, logger)

	game, err := registry.Create(gameID)
	exitOnError("creating game", err)

	logger.Info("starting game", "game", gameID, "seed", runtime.Seed, "fps", runtime.TickRate)
	if err := tui.Run(game, runtime, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
