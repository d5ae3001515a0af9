// Package config provides YAML-based configuration for the blocks engine
// and the startup override format.
package config

import "fmt"

// BlocksConfig contains all configuration for the blocks game.
type BlocksConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Start  StartConfig  `yaml:"start"`
}

// BoardConfig defines the grid size, walls and floor included.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines frame based timings.
type TimingConfig struct {
	TickRate        int `yaml:"tick_rate"`
	GravityInterval int `yaml:"gravity_interval"`
	LockDelay       int `yaml:"lock_delay"`
}

// SpawnConfig is the top-left corner of the spawn box.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// StartConfig selects the initial state of a new game.
type StartConfig struct {
	Seed      int64  `yaml:"seed"`
	Layout    string `yaml:"layout"`
	BoardFile string `yaml:"board_file"`
}

// boxSize is the edge of a piece bounding box.
const boxSize = 5

// Validate reports the first setting that cannot produce a playable board.
func (c BlocksConfig) Validate() error {
	switch {
	case c.Board.Width < boxSize+2:
		return fmt.Errorf("board.width %d too small, need at least %d", c.Board.Width, boxSize+2)
	case c.Board.Height < boxSize+1:
		return fmt.Errorf("board.height %d too small, need at least %d", c.Board.Height, boxSize+1)
	case c.Timing.TickRate <= 0:
		return fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate)
	case c.Timing.GravityInterval <= 0:
		return fmt.Errorf("timing.gravity_interval must be positive, got %d", c.Timing.GravityInterval)
	case c.Timing.LockDelay <= 0:
		return fmt.Errorf("timing.lock_delay must be positive, got %d", c.Timing.LockDelay)
	case c.Spawn.X < 0 || c.Spawn.X+boxSize > c.Board.Width:
		return fmt.Errorf("spawn.x %d puts the piece box outside the board", c.Spawn.X)
	case c.Spawn.Y < 0 || c.Spawn.Y+boxSize > c.Board.Height:
		return fmt.Errorf("spawn.y %d puts the piece box outside the board", c.Spawn.Y)
	}
	return nil
}
