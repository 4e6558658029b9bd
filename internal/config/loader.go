package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// LoadT2048 loads the game configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/t2048.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultT2048YAML)
	if err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the hardcoded defaults, so a partial file
// only overrides the keys it names, and validates the result.
func parse(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}

// Validate checks values the game cannot run with.
func (c T2048Config) Validate() error {
	if err := c.SpawnPolicy().Validate(); err != nil {
		return fmt.Errorf("config: spawn.weights: %w", err)
	}
	s := c.Difficulty.Scaling
	if s.Spawn4Min < 0 || s.Spawn4Max > 1 || s.Spawn4Min > s.Spawn4Max {
		return fmt.Errorf("config: difficulty.scaling: need 0 <= spawn4_min <= spawn4_max <= 1")
	}
	if c.Agent.Depth < 0 || c.Agent.Samples < 0 || c.Agent.Budget < 0 {
		return fmt.Errorf("config: agent: depth, samples and budget must not be negative")
	}
	return nil
}

// SpawnPolicy converts spawn.weights to a board spawn policy.
func (c T2048Config) SpawnPolicy() board.SpawnPolicy {
	p := board.SpawnPolicy{Weights: make([]board.WeightedValue, 0, len(c.Spawn.Weights))}
	for _, w := range c.Spawn.Weights {
		p.Weights = append(p.Weights, board.WeightedValue{Value: w.Value, Weight: w.Weight})
	}
	return p
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyClassic:
		cfg.Difficulty.Enabled = false
		cfg.Spawn.Weights = []SpawnWeight{{Value: 2, Weight: 1}}
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
