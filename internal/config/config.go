// Package config loads the YAML settings for the 2048 game: the spawn
// distribution, difficulty progression and autopilot agent.
package config

import (
	"fmt"
	"time"
)

// T2048Config holds all configurable parameters for the game.
type T2048Config struct {
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Agent      AgentConfig      `yaml:"agent"`
}

// SpawnConfig defines the distribution of newly spawned tiles.
type SpawnConfig struct {
	Weights []SpawnWeight `yaml:"weights"`
}

// SpawnWeight is one tile value and its relative weight.
type SpawnWeight struct {
	Value  int     `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// AgentConfig defines the autopilot and headless agent.
type AgentConfig struct {
	Kind       string        `yaml:"kind"`        // "random" or "expectimax"
	Depth      int           `yaml:"depth"`       // Player moves searched ahead
	Samples    int           `yaml:"samples"`     // Empty cells sampled per chance node, 0 = all
	Budget     time.Duration `yaml:"budget"`      // Time limit per decision, 0 = none
	EveryTicks int           `yaml:"every_ticks"` // Ticks between autopilot moves
}

// DifficultyConfig defines the difficulty progression system.
// When enabled it overrides spawn.weights with a 2/4 split whose
// 4-probability grows from Scaling.Spawn4Min to Scaling.Spawn4Max.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	Spawn4Min float64 `yaml:"spawn4_min"` // Chance of a 4 at level 0
	Spawn4Max float64 `yaml:"spawn4_max"` // Chance of a 4 at level 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyFixed   DifficultyPreset = "fixed"
	DifficultyClassic DifficultyPreset = "classic" // Only 2s, like the first version of the game
)

// ParsePreset converts a flag value to a preset. The empty string is valid
// and means "use the loaded config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyClassic:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed || preset == DifficultyClassic
}
