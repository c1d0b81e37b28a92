package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// EmbeddedSource names the built-in configuration in Load results.
const EmbeddedSource = "embedded"

// DefaultRunnerConfig returns the hard-coded defaults, matching defaults/runner.yaml.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 400,
		},
		Physics: PhysicsConfig{
			Gravity:      0.5,
			JumpStrength: 12,
			MaxJumps:     2,
		},
		Character: CharacterConfig{
			X:      50,
			Width:  40,
			Height: 50,
		},
		Obstacles: ObstacleConfig{
			Interval:  1000 * time.Millisecond,
			Width:     60,
			Height:    60,
			TopChance: 0.5,
		},
		Collectibles: CollectibleConfig{
			Interval: 1750 * time.Millisecond,
			Width:    40,
			Height:   40,
			Margin:   50,
			Value:    50,
		},
		Scoring: ScoringConfig{
			TickInterval:        100 * time.Millisecond,
			TickPoints:          1,
			InitialSpeed:        10,
			SpeedStep:           0.5,
			SpeedEvery:          100,
			CelebrateEvery:      500,
			CelebrationDuration: 1500 * time.Millisecond,
		},
		Input: InputConfig{
			RepeatWindow: 150 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
