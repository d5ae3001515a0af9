// Package storage provides SQLite-based persistence for start presets.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrPresetNotFound is returned when no preset has the requested name.
	ErrPresetNotFound = errors.New("storage: preset not found")
	// ErrPresetName is returned for an empty preset name.
	ErrPresetName = errors.New("storage: preset name must not be empty")
)

// Store manages the SQLite database connection for preset persistence.
type Store struct {
	db *sql.DB
}

// Preset is a named start override: a seed, a literal board, or both.
type Preset struct {
	Name      string
	Seed      *int64
	Board     [][]int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS presets (
			name TEXT PRIMARY KEY,
			seed INTEGER NULL,
			board TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreset stores a preset, replacing any preset with the same name.
func (s *Store) SavePreset(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrPresetName
	}

	var seed sql.NullInt64
	if p.Seed != nil {
		seed = sql.NullInt64{Int64: *p.Seed, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO presets (name, seed, board, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   seed = excluded.seed,
		   board = excluded.board,
		   created_at = excluded.created_at`,
		p.Name, seed, encodeBoard(p.Board),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preset %q: %w", p.Name, err)
	}
	return nil
}

// Preset returns the preset with the given name.
func (s *Store) Preset(name string) (*Preset, error) {
	row := s.db.QueryRow(
		"SELECT name, seed, board, created_at FROM presets WHERE name = ?",
		name,
	)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query preset %q: %w", name, err)
	}
	return p, nil
}

// ListPresets returns every preset ordered by name.
func (s *Store) ListPresets() ([]Preset, error) {
	rows, err := s.db.Query("SELECT name, seed, board, created_at FROM presets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		presets = append(presets, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return presets, nil
}

// DeletePreset removes the preset with the given name.
func (s *Store) DeletePreset(name string) error {
	result, err := s.db.Exec("DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete preset %q: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(sc scanner) (*Preset, error) {
	var (
		p         Preset
		seed      sql.NullInt64
		board     string
		createdAt any
	)
	if err := sc.Scan(&p.Name, &seed, &board, &createdAt); err != nil {
		return nil, err
	}

	if seed.Valid {
		v := seed.Int64
		p.Seed = &v
	}

	b, err := decodeBoard(board)
	if err != nil {
		return nil, err
	}
	p.Board = b
	p.CreatedAt = parseTime(createdAt)

	return &p, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// encodeBoard stores rows as lines of space separated values.
func encodeBoard(rows [][]int) string {
	lines := make([]string, len(rows))
	for y, row := range rows {
		parts := make([]string, len(row))
		for x, v := range row {
			parts[x] = strconv.Itoa(v)
		}
		lines[y] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

func decodeBoard(s string) ([][]int, error) {
	if s == "" {
		return nil, nil
	}

	lines := strings.Split(s, "\n")
	rows := make([][]int, len(lines))
	for y, line := range lines {
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for x, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("board row %d: %w", y, err)
			}
			row[x] = v
		}
		rows[y] = row
	}
	return rows, nil
}
