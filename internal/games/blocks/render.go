package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

const (
	cellWidth  = 2  // screen columns per board cell
	panelWidth = 14 // side panel with the next piece
	panelGap   = 2
)

var pieceColors = [ColorCount]core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
}

// ColorFor maps a piece color tag to a screen color.
func ColorFor(color int) core.Color {
	if color < 0 || color >= ColorCount {
		return core.ColorWhite
	}
	return pieceColors[color]
}

// layoutSize returns the minimum screen size needed to draw the game.
func (g *Game) layoutSize() (int, int) {
	r := g.engine.Rules()
	return r.Width*cellWidth + panelGap + panelWidth, r.Height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW, _ := g.layoutSize()
	boardX := (g.screenW - totalW) / 2
	boardY := 1

	dst.DrawText(boardX, 0, g.title)

	snap := g.engine.Snapshot()
	DrawSnapshot(dst, boardX, boardY, snap)
	g.renderPanel(dst, boardX+len(snap.Board[0])*cellWidth+panelGap, boardY, snap)
	g.renderOverlays(dst, boardX, boardY, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.layoutSize()
	msg := "Window too small"
	dst.DrawText((g.screenW-len(msg))/2, g.screenH/2, msg)

	hint := fmt.Sprintf("Need %dx%d", minW, minH)
	dst.DrawText((g.screenW-len(hint))/2, g.screenH/2+1, hint)
}

// DrawSnapshot draws the board and the active piece with its top-left
// corner at (ox, oy). Each board cell takes two screen columns.
func DrawSnapshot(dst *core.Screen, ox, oy int, snap Snapshot) {
	for y, row := range snap.Board {
		for x, v := range row {
			sx := ox + x*cellWidth
			sy := oy + y
			switch {
			case v == CellWall:
				dst.DrawTextColored(sx, sy, "▓▓", core.ColorGray)
			case v >= CellFragment:
				dst.DrawTextColored(sx, sy, "██", ColorFor(int(v-CellFragment)))
			default:
				dst.DrawText(sx, sy, " .")
			}
		}
	}

	if snap.Over {
		return
	}
	for _, c := range snap.Active.Cells {
		if c.Y < 0 || c.Y >= len(snap.Board) || c.X < 0 || c.X >= len(snap.Board[0]) {
			continue
		}
		dst.DrawTextColored(ox+c.X*cellWidth, oy+c.Y, "██", ColorFor(snap.Active.Color))
	}
}

func (g *Game) renderPanel(dst *core.Screen, px, py int, snap Snapshot) {
	box := core.NewRect(px, py, panelWidth, PatternSize+2)
	dst.DrawBox(box)
	dst.DrawText(px+2, py, " Next ")

	pattern := BasePattern(snap.Next.Shape)
	for i := range PatternSize {
		for j := range PatternSize {
			if pattern[i][j] == 0 {
				continue
			}
			dst.DrawTextColored(px+2+j*cellWidth, py+1+i, "██", ColorFor(snap.Next.Color))
		}
	}

	infoY := box.Bottom() + 1
	dst.DrawText(px, infoY, fmt.Sprintf("Frame %d", snap.Frame))
	dst.DrawText(px, infoY+1, fmt.Sprintf("Pieces %d", snap.SpawnCount-1))
	if snap.State == StateLocking {
		dst.DrawTextColored(px, infoY+2, fmt.Sprintf("Lock %d", snap.LockDelay), core.ColorYellow)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, ox, oy int, snap Snapshot) {
	boardW := len(snap.Board[0]) * cellWidth
	midY := oy + len(snap.Board)/2

	var lines []string
	switch {
	case snap.Over:
		lines = []string{"GAME OVER", "R: restart", "Q: quit"}
	case g.paused:
		lines = []string{"PAUSED", "P: resume"}
	default:
		return
	}

	for i, line := range lines {
		x := ox + (boardW-len(line))/2
		dst.DrawTextColored(x, midY+i, line, core.ColorYellow)
	}
}
