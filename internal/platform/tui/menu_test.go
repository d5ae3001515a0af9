package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

func menuUpdate(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuSelectsVariant(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")

	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	r := m.Result()
	if r.GameID != "blocks_demo" {
		t.Errorf("Result().GameID = %q, expected blocks_demo", r.GameID)
	}
	if r.Quit || r.WantsPresets {
		t.Errorf("Result() = %+v, expected a plain selection", r)
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")

	for range 5 {
		m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	for range 5 {
		m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuPresetsAndQuit(t *testing.T) {
	m := menuUpdate(NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsPresets {
		t.Error("tab should open the preset browser")
	}

	m = menuUpdate(NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, ""), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.Result().Quit {
		t.Error("q should quit")
	}
}

func TestMenuViewShowsPreset(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "tower")

	view := m.View()
	if !strings.Contains(view, "preset: tower") {
		t.Error("View() should name the active preset")
	}
	if !strings.Contains(view, "Blocks (Demo Pile)") {
		t.Error("View() should list the variants")
	}
}
