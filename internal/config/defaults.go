package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the hardcoded configuration, used when even the
// embedded YAML cannot be parsed.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Spawn: SpawnConfig{
			Weights: []SpawnWeight{
				{Value: 2, Weight: 0.9},
				{Value: 4, Weight: 0.1},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				Spawn4Min: 0.05,
				Spawn4Max: 0.35,
			},
		},
		Agent: AgentConfig{
			Kind:       "expectimax",
			Depth:      3,
			Samples:    6,
			Budget:     250 * time.Millisecond,
			EveryTicks: 6,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
