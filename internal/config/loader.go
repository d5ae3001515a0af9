package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocks loads the blocks configuration. Missing keys keep their defaults.
// Search order: customPath -> ~/.blocks/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
func LoadBlocks(customPath string) (BlocksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return BlocksConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blocks.yaml"); userCfgPath != "" {
		if cfg, ok := tryBlocks(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryBlocks(filepath.Join("configs", "blocks.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryBlocks loads an optional config file; unreadable or invalid files are skipped.
func tryBlocks(path string) (BlocksConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlocksConfig{}, false
	}
	cfg, err := parseBlocks(data)
	if err != nil || cfg.Validate() != nil {
		return BlocksConfig{}, false
	}
	return cfg, true
}

func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", filename)
}
