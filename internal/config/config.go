// Package config provides YAML-based configuration loading, validation and hot reload
// for the runner.
package config

import "time"

// RunnerConfig contains all tunables of the endless runner.
// Lengths are play-field pixels; speeds are pixels per frame.
type RunnerConfig struct {
	Field        FieldConfig       `yaml:"field"`
	Physics      PhysicsConfig     `yaml:"physics"`
	Character    CharacterConfig   `yaml:"character"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Scoring      ScoringConfig     `yaml:"scoring"`
	Input        InputConfig       `yaml:"input"`
}

// FieldConfig defines the play area.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the vertical motion of the character.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Subtracted from velocity every frame
	JumpStrength float64 `yaml:"jump_strength"` // Upward velocity set by a jump
	MaxJumps     int     `yaml:"max_jumps"`     // Jumps available before landing
}

// CharacterConfig defines the character's fixed horizontal placement and size.
type CharacterConfig struct {
	X      float64 `yaml:"x"` // Left edge, from the left of the field
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	Interval  time.Duration `yaml:"interval"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	TopChance float64       `yaml:"top_chance"` // Probability of a top-mounted obstacle
}

// CollectibleConfig defines collectible spawning and reward.
type CollectibleConfig struct {
	Interval time.Duration `yaml:"interval"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	Margin   float64       `yaml:"margin"` // Keeps spawns this far from floor and ceiling
	Value    int           `yaml:"value"`  // Score granted on pickup
}

// ScoringConfig defines passive scoring, the speed ramp and celebrations.
type ScoringConfig struct {
	TickInterval        time.Duration `yaml:"tick_interval"`
	TickPoints          int           `yaml:"tick_points"`
	InitialSpeed        float64       `yaml:"initial_speed"`
	SpeedStep           float64       `yaml:"speed_step"`
	SpeedEvery          int           `yaml:"speed_every"`
	CelebrateEvery      int           `yaml:"celebrate_every"`
	CelebrationDuration time.Duration `yaml:"celebration_duration"`
}

// InputConfig defines host input handling.
type InputConfig struct {
	// RepeatWindow drops jump presses arriving this soon after the previous one
	// on hosts that cannot see key releases.
	RepeatWindow time.Duration `yaml:"repeat_window"`
}
