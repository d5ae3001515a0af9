package blocks

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Game adapts the Engine to the platform's registry.Game contract.
type Game struct {
	id     string
	title  string
	layout string

	engine *Engine
	paused bool

	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level settings applied on every Reset, set by the CLI before the
// game is created.
var (
	rules      = DefaultRules()
	startBoard [][]int
	logger     = log.New(io.Discard)
)

// SetRules sets the engine tunables for new games.
func SetRules(r Rules) {
	rules = r
}

// SetStartBoard sets a literal start board that replaces the variant's layout.
// nil restores the layout.
func SetStartBoard(rows [][]int) {
	startBoard = rows
}

// SetLogger sets the logger handed to every engine.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates the standard game on an empty board.
func New() *Game {
	return &Game{id: "blocks", title: "Blocks", layout: LayoutEmpty}
}

// NewDemo creates a game that starts on the demo pile.
func NewDemo() *Game {
	return &Game{id: "blocks_demo", title: "Blocks (Demo Pile)", layout: LayoutDemo}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_demo", func() registry.Game {
		return NewDemo()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new game. A zero seed is replaced by the current time.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := rules
	engine, err := NewEngine(r, seed, WithLogger(logger))
	if err != nil {
		logger.Warn("invalid rules, using defaults", "error", err)
		r = DefaultRules()
		engine, _ = NewEngine(r, seed, WithLogger(logger))
	}

	// Built-in layouts only exist for the reference geometry.
	rows := startBoard
	if rows == nil && r.Width == DefaultWidth && r.Height == DefaultHeight {
		rows, _ = Layout(g.layout)
	}
	if rows != nil {
		if err := engine.LoadBoard(rows); err != nil {
			logger.Warn("start board rejected, using walls and floor", "error", err)
		}
	}

	g.engine = engine
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()

	logger.Debug("game reset", "id", g.id, "seed", seed, "width", r.Width, "height", r.Height)
}

// Step advances the game by one tick using the last action of the frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.IsOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.engine.Tick(CommandForAction(in.Last()))

	return core.StepResult{State: g.State()}
}

// CommandForAction maps a platform action to an engine command.
func CommandForAction(a core.Action) Command {
	switch a {
	case core.ActionLeft:
		return CommandLeft
	case core.ActionRight:
		return CommandRight
	case core.ActionDown:
		return CommandDown
	case core.ActionRotateLeft:
		return CommandRotateLeft
	case core.ActionRotateRight:
		return CommandRotateRight
	default:
		return CommandNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Frame:    g.engine.Frame(),
		GameOver: g.engine.IsOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	if g.engine == nil {
		return
	}
	minW, minH := g.layoutSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}
