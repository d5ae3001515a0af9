package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsPresets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	seed := int64(7)

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SavePreset(Preset{Name: "seven", Seed: &seed}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	p, err := store.Preset("seven")
	if err != nil {
		t.Fatalf("Preset() failed: %v", err)
	}
	if p.Seed == nil || *p.Seed != 7 {
		t.Errorf("Seed = %v, expected 7", p.Seed)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	seed := int64(-42)
	board := [][]int{{1, 0, 0, 1}, {1, 2, 3, 1}, {1, 1, 1, 1}}
	if err := store.SavePreset(Preset{Name: "pile", Seed: &seed, Board: board}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}

	p, err := store.Preset("pile")
	if err != nil {
		t.Fatalf("Preset() failed: %v", err)
	}
	if p.Seed == nil || *p.Seed != seed {
		t.Errorf("Seed = %v, expected %d", p.Seed, seed)
	}
	if !reflect.DeepEqual(p.Board, board) {
		t.Errorf("Board = %v, expected %v", p.Board, board)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSeedOptional(t *testing.T) {
	store := openTestStore(t)

	if err := store.SavePreset(Preset{Name: "board-only", Board: [][]int{{1, 1}}}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}

	p, err := store.Preset("board-only")
	if err != nil {
		t.Fatalf("Preset() failed: %v", err)
	}
	if p.Seed != nil {
		t.Errorf("Seed = %d, expected nil", *p.Seed)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)
	first, second := int64(1), int64(2)

	if err := store.SavePreset(Preset{Name: "a", Seed: &first, Board: [][]int{{1}}}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}
	if err := store.SavePreset(Preset{Name: "a", Seed: &second}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}

	p, err := store.Preset("a")
	if err != nil {
		t.Fatalf("Preset() failed: %v", err)
	}
	if *p.Seed != 2 {
		t.Errorf("Seed = %d, expected 2", *p.Seed)
	}
	if p.Board != nil {
		t.Errorf("Board = %v, expected nil after replace", p.Board)
	}
}

func TestStoreListPresets(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.SavePreset(Preset{Name: name, Board: [][]int{{1}}}); err != nil {
			t.Fatalf("SavePreset(%q) failed: %v", name, err)
		}
	}

	presets, err := store.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets() failed: %v", err)
	}

	var names []string
	for _, p := range presets {
		names = append(names, p.Name)
	}
	expected := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("ListPresets() = %v, expected %v", names, expected)
	}
}

func TestStoreEmptyList(t *testing.T) {
	store := openTestStore(t)

	presets, err := store.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets() failed: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("ListPresets() = %v, expected empty", presets)
	}
}

func TestStoreDeletePreset(t *testing.T) {
	store := openTestStore(t)

	if err := store.SavePreset(Preset{Name: "gone", Board: [][]int{{1}}}); err != nil {
		t.Fatalf("SavePreset() failed: %v", err)
	}
	if err := store.DeletePreset("gone"); err != nil {
		t.Fatalf("DeletePreset() failed: %v", err)
	}

	if _, err := store.Preset("gone"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Preset() error = %v, expected ErrPresetNotFound", err)
	}
	if err := store.DeletePreset("gone"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("second DeletePreset() error = %v, expected ErrPresetNotFound", err)
	}
}

func TestStoreRejectsEmptyName(t *testing.T) {
	store := openTestStore(t)

	if err := store.SavePreset(Preset{Name: "  "}); !errors.Is(err, ErrPresetName) {
		t.Errorf("SavePreset() error = %v, expected ErrPresetName", err)
	}
}

func TestBoardEncoding(t *testing.T) {
	tests := []struct {
		name  string
		board [][]int
		text  string
	}{
		{"empty", nil, ""},
		{"single row", [][]int{{1, 0, 1}}, "1 0 1"},
		{"two rows", [][]int{{1, 4}, {1, 1}}, "1 4\n1 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeBoard(tt.board); got != tt.text {
				t.Errorf("encodeBoard() = %q, expected %q", got, tt.text)
			}
			got, err := decodeBoard(tt.text)
			if err != nil {
				t.Fatalf("decodeBoard() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.board) {
				t.Errorf("decodeBoard() = %v, expected %v", got, tt.board)
			}
		})
	}

	if _, err := decodeBoard("1 x"); err == nil {
		t.Error("decodeBoard() should reject non-numeric cells")
	}
}
