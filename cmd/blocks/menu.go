package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab to choose a
stored start preset. After a game ends you return to the menu.

Examples:
  blocks menu
  blocks menu --fps 60
  blocks menu --db ./presets.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	exitOnError("logging", err)
	defer closeLog()

	cfg := loadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open presets database: %v\n", err)
		store = nil
	}
	var presets tui.PresetStore
	var getter presetGetter
	if store != nil {
		defer store.Close()
		presets = store
		getter = store
	}

	width, height := terminalSize()
	menuCfg := configureGame(cfg, startState{}, logger)
	menuCfg.ScreenW, menuCfg.ScreenH = width, height

	preset := ""
	for {
		menuResult, err := tui.RunMenu(menuCfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		menuCfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsPresets {
			res, err := tui.RunPresets(presets, menuCfg.ScreenW, menuCfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if res.Quit {
				break
			}
			switch {
			case res.Cleared:
				preset = ""
			case res.Preset != "":
				preset = res.Preset
			}
			continue
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		st, err := resolveStart(cfg, startOptions{
			variant: gameID,
			preset:  preset,
			seedSet: cmd.Flags().Changed("seed"),
		}, getter, logger)
		if err != nil {
			logger.Error("cannot resolve start", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			preset = ""
			continue
		}

		runtime := configureGame(cfg, st, logger)
		runtime.ScreenW, runtime.ScreenH = menuCfg.ScreenW, menuCfg.ScreenH

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, runtime, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
