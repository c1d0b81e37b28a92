package core

import (
	"github.com/vovakirdan/arcade-runner/internal/config"
	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
)

// EntityID identifies an entity for the lifetime of a session.
type EntityID uint64

// Kind distinguishes what happens when the character touches an entity.
type Kind int

const (
	KindObstacle    Kind = iota // Ends the round on contact
	KindCollectible             // Grants score and is consumed on contact
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Entity is an obstacle or collectible scrolling through the field.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Traveled float64 // Distance of the right edge from the field's right edge
	Bottom   float64 // Height of the lower edge above the ground
	Width    float64
	Height   float64
	Inverted bool // Obstacle hanging from the ceiling
}

// Bounds returns the entity's box in field coordinates (y grows downward).
func (e Entity) Bounds(field config.FieldConfig) platformcore.RectF {
	right := field.Width - e.Traveled
	bottom := field.Height - e.Bottom
	return platformcore.RectF{
		Left:   right - e.Width,
		Top:    bottom - e.Height,
		Right:  right,
		Bottom: bottom,
	}
}

// CharacterBounds returns the character's box in field coordinates.
func CharacterBounds(c Character, cfg config.RunnerConfig) platformcore.RectF {
	bottom := cfg.Field.Height - c.Y
	return platformcore.RectF{
		Left:   cfg.Character.X,
		Top:    bottom - cfg.Character.Height,
		Right:  cfg.Character.X + cfg.Character.Width,
		Bottom: bottom,
	}
}
