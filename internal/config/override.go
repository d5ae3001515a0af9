package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override is the startup override applied to a new game before the first tick.
// A nil Seed keeps the configured seed; a nil Board keeps the layout.
type Override struct {
	Seed  *int64
	Board [][]int
}

// ErrEmptyOverride is returned for an override that sets nothing.
var ErrEmptyOverride = errors.New("override sets neither seed nor board")

// overrideFile is the on-disk form. Board rows are digit strings, spaces optional:
//
//	seed: 42
//	board:
//	  - "1 0 0 0 0 0 0 0 0 0 0 1"
//	  ...
type overrideFile struct {
	Seed  *int64   `yaml:"seed,omitempty"`
	Board []string `yaml:"board,omitempty"`
}

// ParseOverride decodes an override document. Board geometry is checked
// later against the engine rules.
func ParseOverride(data []byte) (Override, error) {
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Override{}, fmt.Errorf("failed to parse override: %w", err)
	}
	if f.Seed == nil && len(f.Board) == 0 {
		return Override{}, ErrEmptyOverride
	}

	o := Override{Seed: f.Seed}
	if len(f.Board) > 0 {
		o.Board = make([][]int, len(f.Board))
		for y, line := range f.Board {
			row, err := parseRow(line)
			if err != nil {
				return Override{}, fmt.Errorf("board row %d: %w", y, err)
			}
			o.Board[y] = row
		}
	}
	return o, nil
}

func parseRow(line string) ([]int, error) {
	row := make([]int, 0, len(line))
	for _, r := range line {
		switch {
		case r == ' ' || r == '\t':
			continue
		case r >= '0' && r <= '9':
			row = append(row, int(r-'0'))
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	return row, nil
}

// LoadOverride reads and parses an override file.
func LoadOverride(path string) (Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Override{}, fmt.Errorf("failed to read override %s: %w", path, err)
	}
	o, err := ParseOverride(data)
	if err != nil {
		return Override{}, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// EncodeOverride renders an override in the format ParseOverride accepts.
func EncodeOverride(o Override) ([]byte, error) {
	f := overrideFile{Seed: o.Seed}
	for _, row := range o.Board {
		parts := make([]string, len(row))
		for i, v := range row {
			if v < 0 || v > 9 {
				return nil, fmt.Errorf("cell value %d cannot be encoded", v)
			}
			parts[i] = fmt.Sprintf("%d", v)
		}
		f.Board = append(f.Board, strings.Join(parts, " "))
	}
	return yaml.Marshal(f)
}
