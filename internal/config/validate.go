package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration describes a playable game.
// All problems are reported together.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field size must be positive, got %gx%g", c.Field.Width, c.Field.Height)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %g", c.Physics.Gravity)
	check(c.Physics.JumpStrength > 0, "physics.jump_strength must be positive, got %g", c.Physics.JumpStrength)
	check(c.Physics.MaxJumps >= 1, "physics.max_jumps must be at least 1, got %d", c.Physics.MaxJumps)

	check(c.Character.Width > 0 && c.Character.Height > 0, "character size must be positive")
	check(c.Character.X >= 0 && c.Character.X+c.Character.Width <= c.Field.Width, "character must fit in the field horizontally")
	check(c.Character.Height <= c.Field.Height, "character must fit in the field vertically")

	check(c.Obstacles.Interval > 0, "obstacles.interval must be positive, got %s", c.Obstacles.Interval)
	check(c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive")
	check(c.Obstacles.Height <= c.Field.Height, "obstacles must fit in the field vertically")
	check(c.Obstacles.TopChance >= 0 && c.Obstacles.TopChance <= 1, "obstacles.top_chance must be within [0, 1], got %g", c.Obstacles.TopChance)

	check(c.Collectibles.Interval > 0, "collectibles.interval must be positive, got %s", c.Collectibles.Interval)
	check(c.Collectibles.Width > 0 && c.Collectibles.Height > 0, "collectible size must be positive")
	check(c.Collectibles.Margin >= 0, "collectibles.margin must not be negative")
	check(c.Field.Height-2*c.Collectibles.Margin > 0, "collectibles.margin leaves no room to spawn in a field %g high", c.Field.Height)
	check(c.Collectibles.Value >= 0, "collectibles.value must not be negative")

	check(c.Scoring.TickInterval > 0, "scoring.tick_interval must be positive, got %s", c.Scoring.TickInterval)
	check(c.Scoring.TickPoints >= 0, "scoring.tick_points must not be negative")
	check(c.Scoring.InitialSpeed > 0, "scoring.initial_speed must be positive, got %g", c.Scoring.InitialSpeed)
	check(c.Scoring.SpeedStep >= 0, "scoring.speed_step must not be negative")
	check(c.Scoring.SpeedEvery > 0, "scoring.speed_every must be positive, got %d", c.Scoring.SpeedEvery)
	check(c.Scoring.CelebrateEvery > 0, "scoring.celebrate_every must be positive, got %d", c.Scoring.CelebrateEvery)
	check(c.Scoring.CelebrationDuration >= 0, "scoring.celebration_duration must not be negative")

	check(c.Input.RepeatWindow >= 0, "input.repeat_window must not be negative")

	return errors.Join(errs...)
}
