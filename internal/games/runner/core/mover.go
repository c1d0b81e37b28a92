package core

// Advance moves every entity speed pixels further from the right edge and drops those
// that have travelled past fieldW. Survivors keep their order; onExit sees each dropped
// entity. The input slice is reused.
func Advance(entities []Entity, speed, fieldW float64, onExit func(Entity)) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		e.Traveled += speed
		if e.Traveled > fieldW {
			if onExit != nil {
				onExit(e)
			}
			continue
		}
		kept = append(kept, e)
	}
	clear(entities[len(kept):])
	return kept
}
