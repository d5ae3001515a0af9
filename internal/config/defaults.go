package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the reference configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:  12,
			Height: 21,
		},
		Timing: TimingConfig{
			TickRate:        30,
			GravityInterval: 20,
			LockDelay:       15,
		},
		Spawn: SpawnConfig{
			X: 4,
			Y: 0,
		},
		Start: StartConfig{
			Layout: "empty",
		},
	}
}
