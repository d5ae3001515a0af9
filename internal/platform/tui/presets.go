package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// PresetStore is the part of the preset storage used by the browser.
type PresetStore interface {
	ListPresets() ([]storage.Preset, error)
	DeletePreset(name string) error
}

// PresetsKeyMap defines the key bindings for the preset browser.
type PresetsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Clear  key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PresetsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Clear, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k PresetsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Clear, k.Delete, k.Back, k.Quit},
	}
}

// DefaultPresetsKeyMap returns default key bindings.
func DefaultPresetsKeyMap() PresetsKeyMap {
	return PresetsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use preset"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "no preset"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PresetsModel is the Bubble Tea model for browsing stored start presets.
type PresetsModel struct {
	store    PresetStore
	presets  []storage.Preset
	table    table.Model
	help     help.Model
	keys     PresetsKeyMap
	width    int
	height   int
	err      error
	chosen   string
	cleared  bool
	back     bool
	quitting bool
}

// NewPresetsModel creates a preset browser.
func NewPresetsModel(store PresetStore, width, height int) PresetsModel {
	h := help.New()
	h.Width = width

	m := PresetsModel{
		store:  store,
		keys:   DefaultPresetsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadPresets()
	return m
}

func (m *PresetsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Seed", Width: 20},
		{Title: "Board", Width: 8},
		{Title: "Saved", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *PresetsModel) loadPresets() {
	if m.store == nil {
		m.presets = nil
		m.updateTableRows()
		return
	}

	presets, err := m.store.ListPresets()
	m.presets = presets
	m.err = err
	m.updateTableRows()
}

func (m *PresetsModel) updateTableRows() {
	rows := make([]table.Row, len(m.presets))
	for i, p := range m.presets {
		seed := "-"
		if p.Seed != nil {
			seed = fmt.Sprintf("%d", *p.Seed)
		}
		board := "-"
		if len(p.Board) > 0 {
			board = fmt.Sprintf("%d rows", len(p.Board))
		}
		rows[i] = table.Row{p.Name, seed, board, p.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// Init initializes the preset browser.
func (m PresetsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preset browser.
func (m PresetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.cleared = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.presets) > 0 {
				m.chosen = m.presets[m.table.Cursor()].Name
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if len(m.presets) > 0 && m.store != nil {
				name := m.presets[m.table.Cursor()].Name
				if err := m.store.DeletePreset(name); err != nil {
					m.err = err
					return m, nil
				}
				m.loadPresets()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the preset browser.
func (m PresetsModel) View() string {
	if m.quitting || m.back || m.chosen != "" || m.cleared {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("START PRESETS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case m.err != nil:
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error())
	case len(m.presets) == 0:
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No presets saved yet.\nUse `blocks presets save` to add one.")
	default:
		content = m.table.View()
	}
	b.WriteString(boxStyle.Render(content))
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// PresetsResult holds the outcome of the preset browser.
type PresetsResult struct {
	Preset  string // chosen preset name, empty if none was chosen
	Cleared bool   // the user asked to play without a preset
	Quit    bool
}

// RunPresets runs the preset browser.
func RunPresets(store PresetStore, width, height int) (PresetsResult, error) {
	p := tea.NewProgram(
		NewPresetsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PresetsResult{}, err
	}

	m, ok := finalModel.(PresetsModel)
	if !ok {
		return PresetsResult{Quit: true}, nil
	}
	return m.Result(), nil
}

// Result reports what the user picked.
func (m PresetsModel) Result() PresetsResult {
	return PresetsResult{Preset: m.chosen, Cleared: m.cleared, Quit: m.quitting}
}
