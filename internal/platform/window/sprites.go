package window

import (
	"image/color"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
)

// Palette
var (
	backgroundColor = color.RGBA{0x12, 0x14, 0x1c, 0xff}
	groundColor     = color.RGBA{0x6b, 0x6f, 0x7a, 0xff}
	characterColor  = color.RGBA{0x4c, 0xd1, 0x6a, 0xff}
	crashColor      = color.RGBA{0xe8, 0x3b, 0x3b, 0xff}
	floorColor      = color.RGBA{0xd9, 0x48, 0x3b, 0xff}
	ceilingColor    = color.RGBA{0xb0, 0x4a, 0xd9, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb0}

	collectibleColors = []color.RGBA{
		{0xff, 0xd7, 0x00, 0xff},
		{0xff, 0xa5, 0x00, 0xff},
		{0x00, 0xe5, 0xff, 0xff},
		{0xff, 0x6e, 0xc7, 0xff},
	}
	confettiColors = []color.RGBA{
		{0xff, 0x45, 0x45, 0xff},
		{0xff, 0xe1, 0x45, 0xff},
		{0x45, 0xff, 0x7a, 0xff},
		{0x45, 0xd4, 0xff, 0xff},
		{0xd4, 0x45, 0xff, 0xff},
		{0xff, 0x9a, 0x45, 0xff},
	}
)

// Sprite is the look assigned to an entity when it spawns.
type Sprite struct {
	Color color.RGBA
	Inset float32 // Collectibles are drawn smaller than their hitbox
}

// SpriteIndex tracks the sprite of every live entity, keyed by entity ID.
// It is a session observer: spawns add entries, removals and new rounds drop them.
type SpriteIndex struct {
	sprites *intmap.Map[core.EntityID, Sprite]
}

// NewSpriteIndex creates an empty index.
func NewSpriteIndex() *SpriteIndex {
	return &SpriteIndex{sprites: intmap.New[core.EntityID, Sprite](32)}
}

// OnEvent implements core.Observer.
func (s *SpriteIndex) OnEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.StartedEvent:
		s.sprites.Clear()
	case core.EntitySpawnedEvent:
		s.sprites.Put(e.Entity.ID, spriteFor(e.Entity))
	case core.EntityRemovedEvent:
		s.sprites.Del(e.Entity.ID)
	}
}

// Get returns the sprite of an entity, falling back to a look derived from it.
func (s *SpriteIndex) Get(e core.Entity) Sprite {
	if sp, ok := s.sprites.Get(e.ID); ok {
		return sp
	}
	return spriteFor(e)
}

// Len returns the number of tracked entities.
func (s *SpriteIndex) Len() int {
	return s.sprites.Len()
}

func spriteFor(e core.Entity) Sprite {
	switch {
	case e.Kind == core.KindCollectible:
		return Sprite{Color: collectibleColors[int(e.ID%core.EntityID(len(collectibleColors)))], Inset: 6}
	case e.Inverted:
		return Sprite{Color: ceilingColor}
	default:
		return Sprite{Color: floorColor}
	}
}
