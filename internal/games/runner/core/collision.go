package core

import (
	"github.com/vovakirdan/arcade-runner/internal/config"
	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
)

// FirstHit returns the first entity whose box overlaps player.
func FirstHit(player platformcore.RectF, entities []Entity, field config.FieldConfig) (Entity, bool) {
	for _, e := range entities {
		if player.Overlaps(e.Bounds(field)) {
			return e, true
		}
	}
	return Entity{}, false
}

// Consume removes every entity overlapping player and reports each one to onHit.
// Survivors keep their order. The input slice is reused.
func Consume(player platformcore.RectF, entities []Entity, field config.FieldConfig, onHit func(Entity)) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		if player.Overlaps(e.Bounds(field)) {
			if onHit != nil {
				onHit(e)
			}
			continue
		}
		kept = append(kept, e)
	}
	clear(entities[len(kept):])
	return kept
}
