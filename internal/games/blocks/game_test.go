package blocks

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed})
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{"blocks", "blocks_demo"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestGameLastActionWins(t *testing.T) {
	g := newTestGame(t, New(), 42)
	e, err := NewEngine(DefaultRules(), 42)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	g.Step(frameWith(core.ActionLeft, core.ActionRight))
	e.Tick(CommandRight)

	if got, want := g.Snapshot().Active.X, e.Active().X; got != want {
		t.Errorf("Active.X = %d, expected %d", got, want)
	}
	if g.State().Frame != 1 {
		t.Errorf("Frame = %d, expected 1", g.State().Frame)
	}
}

func TestGameSameSeedSameGame(t *testing.T) {
	a := newTestGame(t, New(), 9)
	b := newTestGame(t, New(), 9)

	for i := range 500 {
		in := frameWith(core.Action(1 + i%6))
		a.Step(in)
		b.Step(in)
	}

	if FormatRows(a.Snapshot().Board) != FormatRows(b.Snapshot().Board) {
		t.Error("boards differ for equal seeds")
	}
	if a.State() != b.State() {
		t.Errorf("State() = %+v and %+v, expected equal", a.State(), b.State())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, New(), 1)

	g.Step(frameWith(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.Step(frameWith(core.ActionDown))
	if g.State().Frame != 0 {
		t.Errorf("Frame = %d while paused, expected 0", g.State().Frame)
	}

	g.Step(frameWith(core.ActionPause))
	if g.State().Paused {
		t.Error("game should resume")
	}
	if g.State().Frame != 1 {
		t.Errorf("Frame = %d after resume, expected 1", g.State().Frame)
	}
}

func TestGameDemoLayout(t *testing.T) {
	g := newTestGame(t, NewDemo(), 1)
	want, _ := Layout(LayoutDemo)

	board := g.Snapshot().Board
	for y := range want {
		if !rowEquals(board[y], want[y]) {
			t.Errorf("row %d = %v, expected %v", y, board[y], want[y])
		}
	}
}

func TestGameStartBoardOverride(t *testing.T) {
	rows := emptyLayout()
	rows[19][1] = 4
	SetStartBoard(rows)
	defer SetStartBoard(nil)

	g := newTestGame(t, NewDemo(), 1)
	if got := g.Snapshot().Board[19][1]; got != 4 {
		t.Errorf("Board[19][1] = %d, expected 4", got)
	}
	if got := g.Snapshot().Board[18][1]; got != CellEmpty {
		t.Errorf("Board[18][1] = %d, expected the demo pile replaced", got)
	}
}

func TestGameInvalidStartBoardFallsBack(t *testing.T) {
	rows := emptyLayout()
	rows[20][4] = 0
	SetStartBoard(rows)
	defer SetStartBoard(nil)

	g := newTestGame(t, New(), 1)
	if got := g.Snapshot().Board[20][4]; got != CellWall {
		t.Errorf("Board[20][4] = %d, expected the default floor", got)
	}
}

func TestCommandForAction(t *testing.T) {
	tests := []struct {
		action core.Action
		want   Command
	}{
		{core.ActionNone, CommandNone},
		{core.ActionLeft, CommandLeft},
		{core.ActionRight, CommandRight},
		{core.ActionDown, CommandDown},
		{core.ActionRotateLeft, CommandRotateLeft},
		{core.ActionRotateRight, CommandRotateRight},
		{core.ActionUp, CommandNone},
		{core.ActionConfirm, CommandNone},
	}

	for _, tt := range tests {
		if got := CommandForAction(tt.action); got != tt.want {
			t.Errorf("CommandForAction(%v) = %v, expected %v", tt.action, got, tt.want)
		}
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Blocks", "Next", "Frame 0", "▓▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.Resize(20, 10)
	screen := core.NewScreen(20, 10)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too small message")
	}
	if !g.State().Paused {
		t.Error("a too small window should pause the game")
	}
}
