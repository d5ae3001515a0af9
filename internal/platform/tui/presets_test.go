package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

type fakePresetStore struct {
	presets []storage.Preset
	deleted []string
}

func (f *fakePresetStore) ListPresets() ([]storage.Preset, error) {
	return f.presets, nil
}

func (f *fakePresetStore) DeletePreset(name string) error {
	f.deleted = append(f.deleted, name)
	kept := f.presets[:0]
	for _, p := range f.presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	f.presets = kept
	return nil
}

func newFakeStore() *fakePresetStore {
	seed := int64(3)
	return &fakePresetStore{presets: []storage.Preset{
		{Name: "alpha", Seed: &seed},
		{Name: "beta", Board: [][]int{{1, 1}}},
	}}
}

func presetsUpdate(m PresetsModel, msg tea.Msg) PresetsModel {
	next, _ := m.Update(msg)
	return next.(PresetsModel)
}

func TestPresetsSelect(t *testing.T) {
	m := NewPresetsModel(newFakeStore(), 80, 24)

	m = presetsUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = presetsUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Result().Preset; got != "beta" {
		t.Errorf("Result().Preset = %q, expected beta", got)
	}
}

func TestPresetsDelete(t *testing.T) {
	store := newFakeStore()
	m := NewPresetsModel(store, 80, 24)

	m = presetsUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if len(store.deleted) != 1 || store.deleted[0] != "alpha" {
		t.Errorf("deleted = %v, expected [alpha]", store.deleted)
	}
	if len(m.presets) != 1 {
		t.Errorf("presets = %v, expected one left", m.presets)
	}
}

func TestPresetsBackAndClear(t *testing.T) {
	m := presetsUpdate(NewPresetsModel(newFakeStore(), 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if r := m.Result(); r.Preset != "" || r.Quit || r.Cleared {
		t.Errorf("Result() = %+v after esc, expected zero", r)
	}

	m = presetsUpdate(NewPresetsModel(newFakeStore(), 80, 24), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if !m.Result().Cleared {
		t.Error("c should clear the preset")
	}
}

func TestPresetsEmptyStore(t *testing.T) {
	m := NewPresetsModel(&fakePresetStore{}, 80, 24)
	m = presetsUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Result().Preset != "" {
		t.Error("enter on an empty list should not choose anything")
	}
}
