package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// newLogger builds the process logger from --log-level and --log-file.
// Interactive commands pass quiet=true: without a log file nothing is written,
// so log lines never land on the alternate screen.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
		Level:           level,
	})
	return logger, closeFn, nil
}

// exitOnError prints err and exits.
func exitOnError(prefix string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", prefix, err)
		os.Exit(1)
	}
}

// loadConfig loads the engine config; a bad --config is fatal.
func loadConfig() config.BlocksConfig {
	cfg, err := config.LoadBlocks(flagConfig)
	exitOnError("config", err)
	return cfg
}

// rulesFrom converts the config to engine rules.
func rulesFrom(cfg config.BlocksConfig) blocks.Rules {
	return blocks.Rules{
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		GravityInterval: cfg.Timing.GravityInterval,
		LockDelay:       cfg.Timing.LockDelay,
		SpawnX:          cfg.Spawn.X,
		SpawnY:          cfg.Spawn.Y,
	}
}

// terminalSize returns the terminal size or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// presetGetter is the part of the store needed to resolve a preset.
type presetGetter interface {
	Preset(name string) (*storage.Preset, error)
}

// startOptions are the per-command start flags.
type startOptions struct {
	variant   string
	boardFile string
	preset    string
	layout    string
	seedSet   bool // --seed was given explicitly
}

// startState is the resolved seed and literal board for a new game.
type startState struct {
	seed  int64
	board [][]int
}

// resolveStart merges the start sources. Seed precedence: --seed, preset,
// board file, config. Board precedence: preset, --board, config board_file,
// then the --layout for the plain variant. An unreadable override file is
// logged and skipped; an unknown preset or layout is an error.
func resolveStart(cfg config.BlocksConfig, opts startOptions, store presetGetter, logger *log.Logger) (startState, error) {
	st := startState{seed: cfg.Start.Seed}

	boardFile := opts.boardFile
	if boardFile == "" {
		boardFile = cfg.Start.BoardFile
	}
	if boardFile != "" {
		o, err := config.LoadOverride(boardFile)
		if err != nil {
			logger.Warn("ignoring start override", "file", boardFile, "error", err)
		} else {
			if o.Seed != nil {
				st.seed = *o.Seed
			}
			st.board = o.Board
		}
	}

	if opts.preset != "" {
		if store == nil {
			return startState{}, fmt.Errorf("preset %q requested but the preset database is unavailable", opts.preset)
		}
		p, err := store.Preset(opts.preset)
		if err != nil {
			return startState{}, err
		}
		if p.Seed != nil {
			st.seed = *p.Seed
		}
		if p.Board != nil {
			st.board = p.Board
		}
	}

	if opts.seedSet {
		st.seed = flagSeed
	}

	layout := opts.layout
	if layout == "" {
		layout = cfg.Start.Layout
	}
	if layout != "" {
		rows, ok := blocks.Layout(layout)
		if !ok {
			return startState{}, fmt.Errorf("unknown layout %q (available: %v)", layout, blocks.LayoutNames())
		}
		if st.board == nil && opts.variant == "blocks" && layout != blocks.LayoutEmpty {
			st.board = rows
		}
	}

	return st, nil
}

// configureGame applies rules, logger and start board to the blocks package
// and returns the runtime config for the TUI.
func configureGame(cfg config.BlocksConfig, st startState, logger *log.Logger) core.RuntimeConfig {
	blocks.SetRules(rulesFrom(cfg))
	blocks.SetStartBoard(st.board)
	blocks.SetLogger(logger)

	tickRate := cfg.Timing.TickRate
	if rootCmd.PersistentFlags().Changed("fps") || tickRate <= 0 {
		tickRate = flagFPS
	}

	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     st.seed,
	}
}
