package blocks

// StateName describes which phase the engine is in.
type StateName string

const (
	StateActive   StateName = "active"
	StateLocking  StateName = "locking"
	StateGameOver StateName = "game_over"
)

// PieceView is a read-only description of a piece.
type PieceView struct {
	Shape    Shape
	X, Y     int
	Rotation int
	Color    int
	Cells    []Point
}

// Snapshot captures the complete engine state for presentation,
// determinism checks and replay comparisons.
type Snapshot struct {
	Frame      int
	LockDelay  int
	SpawnCount int
	State      StateName
	Over       bool
	Board      [][]uint8
	Active     PieceView
	Next       PieceView
}

// State returns the current phase.
func (e *Engine) State() StateName {
	switch {
	case e.over:
		return StateGameOver
	case e.lockDelay > 0:
		return StateLocking
	default:
		return StateActive
	}
}

// Snapshot returns a copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Frame:      e.frame,
		LockDelay:  e.lockDelay,
		SpawnCount: e.spawnCount,
		State:      e.State(),
		Over:       e.over,
		Board:      e.board.Rows(),
		Active:     viewOf(e.active),
		Next:       viewOf(e.next),
	}
}

func viewOf(p Piece) PieceView {
	return PieceView{
		Shape:    p.Shape,
		X:        p.X,
		Y:        p.Y,
		Rotation: p.Rotation,
		Color:    p.Color,
		Cells:    p.Cells(),
	}
}
