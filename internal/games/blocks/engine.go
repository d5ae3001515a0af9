package blocks

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Command is the single player input consumed by one Tick.
type Command int

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandDown
	CommandRotateLeft  // quarter turn counter-clockwise
	CommandRotateRight // quarter turn clockwise
)

var commandNames = map[Command]string{
	CommandNone:        "none",
	CommandLeft:        "left",
	CommandRight:       "right",
	CommandDown:        "down",
	CommandRotateLeft:  "rotate_left",
	CommandRotateRight: "rotate_right",
}

// String returns the command token.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand converts a token such as "rotate_left" to a Command.
// The empty string is CommandNone.
func ParseCommand(s string) (Command, error) {
	if s == "" {
		return CommandNone, nil
	}
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return CommandNone, fmt.Errorf("blocks: unknown command %q", s)
}

// Rules holds the engine tunables.
type Rules struct {
	Width           int // board columns including walls
	Height          int // board rows including floor
	GravityInterval int // frames between forced drops
	LockDelay       int // frames a resting piece may still move
	SpawnX          int // spawn box origin column
	SpawnY          int // spawn box origin row
}

// DefaultRules returns the reference geometry and timings.
func DefaultRules() Rules {
	return Rules{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		GravityInterval: 20,
		LockDelay:       15,
		SpawnX:          4,
		SpawnY:          0,
	}
}

// Validate checks that the rules describe a playable board.
// The spawn box must lie inside the grid so collision probes stay in range.
func (r Rules) Validate() error {
	switch {
	case r.Width < PatternSize+2:
		return fmt.Errorf("blocks: width %d too small, need at least %d", r.Width, PatternSize+2)
	case r.Height < PatternSize+1:
		return fmt.Errorf("blocks: height %d too small, need at least %d", r.Height, PatternSize+1)
	case r.GravityInterval <= 0:
		return fmt.Errorf("blocks: gravity interval must be positive, got %d", r.GravityInterval)
	case r.LockDelay <= 0:
		return fmt.Errorf("blocks: lock delay must be positive, got %d", r.LockDelay)
	case r.SpawnX < 0 || r.SpawnX+PatternSize > r.Width:
		return fmt.Errorf("blocks: spawn column %d puts the piece box outside the board", r.SpawnX)
	case r.SpawnY < 0 || r.SpawnY+PatternSize > r.Height:
		return fmt.Errorf("blocks: spawn row %d puts the piece box outside the board", r.SpawnY)
	}
	return nil
}

// ErrStarted is returned when a startup override arrives after the first tick.
var ErrStarted = errors.New("blocks: engine already started")

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine is the single-threaded game state machine.
// It is not safe for concurrent use; exactly one caller drives Tick.
type Engine struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger

	board  *Board
	active Piece
	next   Piece

	frame      int
	lockDelay  int // 0 = not locking
	spawnCount int
	over       bool
}

// NewEngine creates an engine with a default board and the first piece spawned.
// The generator is seeded with seed, so equal seeds give equal games.
func NewEngine(rules Rules, seed int64, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		rules:  rules,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard),
		board:  NewBoard(rules.Width, rules.Height),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.next = e.newPiece()
	e.spawnCount++
	e.spawnNext()

	return e, nil
}

// LoadBoard replaces the board with a literal pattern before the first tick.
// On error the current board is left untouched.
func (e *Engine) LoadBoard(rows [][]int) error {
	if e.frame > 0 {
		return ErrStarted
	}
	b, err := BoardFromRows(rows, e.rules.Width, e.rules.Height)
	if err != nil {
		return err
	}
	e.board = b
	return nil
}

// Tick advances the game by exactly one frame.
func (e *Engine) Tick(cmd Command) {
	if e.over {
		return
	}

	if e.lockDelay > 0 {
		e.lockDelay--
		if e.lockDelay == 0 {
			if e.collides(0, 1) {
				e.lock()
				e.spawnNext()
			} else {
				e.logger.Debug("lock cancelled", "frame", e.frame, "x", e.active.X, "y", e.active.Y)
			}
		}
	}

	switch cmd {
	case CommandLeft:
		e.moveByDelta(-1, 0)
	case CommandRight:
		e.moveByDelta(1, 0)
	case CommandDown:
		e.moveByDelta(0, 1)
	case CommandRotateLeft:
		e.rotate(1)
	case CommandRotateRight:
		e.rotate(-1)
	}

	if e.frame != 0 && e.frame%e.rules.GravityInterval == 0 {
		e.moveByDelta(0, 1)
		if e.collides(0, 0) {
			e.over = true
			e.logger.Info("game over", "frame", e.frame, "spawned", e.spawnCount)
		}
	}

	e.clearRows()

	e.frame++
}

// collides reports whether the active piece, shifted by (dx, dy), overlaps
// a wall or fragment. Probes outside the grid count as collisions.
func (e *Engine) collides(dx, dy int) bool {
	pattern := e.active.Pattern()
	for i := range PatternSize {
		for j := range PatternSize {
			if pattern[i][j] == 0 {
				continue
			}
			x := e.active.X + j + dx
			y := e.active.Y + i + dy
			if !e.board.InBounds(x, y) || e.board.IsFilled(x, y) {
				return true
			}
		}
	}
	return false
}

// moveByDelta moves the piece if the target is free. A downward move that
// leaves the piece resting arms the lock delay unless it is already running.
func (e *Engine) moveByDelta(dx, dy int) {
	if !e.collides(dx, dy) {
		e.active.Move(dx, dy)
	}

	if dy > 0 && e.collides(0, 1) && e.lockDelay == 0 {
		e.lockDelay = e.rules.LockDelay
	}
}

// rotate turns the piece in place, undoing the turn if it overlaps anything.
func (e *Engine) rotate(dir int) {
	e.active.Rotate(dir)
	if e.collides(0, 0) {
		e.active.Rotate(-dir)
	}
}

func (e *Engine) lock() {
	e.board.Settle(e.active.Cells(), e.active.FragmentValue())
	e.logger.Debug("piece locked",
		"frame", e.frame,
		"shape", e.active.Shape,
		"x", e.active.X,
		"y", e.active.Y,
		"rotation", e.active.Rotation,
	)
}

// spawnNext promotes the queued piece and queues a fresh one.
// It does not check the new piece for overlap; the next forced drop does.
func (e *Engine) spawnNext() {
	e.active = e.next
	e.next = e.newPiece()
	e.spawnCount++
	e.logger.Debug("piece spawned", "shape", e.active.Shape, "color", e.active.Color, "next", e.next.Shape)
}

func (e *Engine) newPiece() Piece {
	return Piece{
		X:     e.rules.SpawnX,
		Y:     e.rules.SpawnY,
		Shape: Shape(e.rng.Intn(ShapeCount)),
		Color: e.spawnCount % ColorCount,
	}
}

func (e *Engine) clearRows() {
	debug := e.logger.GetLevel() <= log.DebugLevel
	var before string
	if debug {
		before = e.board.String()
	}

	rows := e.board.ClearRows()
	if len(rows) == 0 || !debug {
		return
	}
	e.logger.Debug("rows cleared",
		"frame", e.frame,
		"rows", rows,
		"before", "\n"+before,
		"after", "\n"+e.board.String(),
	)
}

// Rules returns the engine tunables.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Active returns the falling piece.
func (e *Engine) Active() Piece {
	return e.active
}

// Next returns the queued piece.
func (e *Engine) Next() Piece {
	return e.next
}

// Frame returns the number of ticks processed before game over.
func (e *Engine) Frame() int {
	return e.frame
}

// LockDelay returns the remaining lock frames, 0 when not locking.
func (e *Engine) LockDelay() int {
	return e.lockDelay
}

// SpawnCount returns how many pieces have been generated.
func (e *Engine) SpawnCount() int {
	return e.spawnCount
}

// IsOver reports whether the game has ended.
func (e *Engine) IsOver() bool {
	return e.over
}
