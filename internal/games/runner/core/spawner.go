package core

import (
	"math/rand"

	"github.com/vovakirdan/arcade-runner/internal/config"
)

// Spawner creates obstacles and collectibles just outside the right edge.
// All randomness comes from a seeded RNG so runs can be replayed.
type Spawner struct {
	rng    *rand.Rand
	cfg    config.RunnerConfig
	nextID EntityID
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg config.RunnerConfig) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// UpdateConfig replaces the configuration used for future spawns.
func (s *Spawner) UpdateConfig(cfg config.RunnerConfig) {
	s.cfg = cfg
}

// Obstacle creates a floor obstacle or, with probability TopChance, a ceiling one.
func (s *Spawner) Obstacle() Entity {
	oc := s.cfg.Obstacles
	e := s.entity(KindObstacle, oc.Width, oc.Height)
	if s.rng.Float64() < oc.TopChance {
		e.Inverted = true
		e.Bottom = s.cfg.Field.Height - oc.Height
	}
	return e
}

// Collectible creates a collectible at a random height inside the safe band
// [margin, field height - margin).
func (s *Spawner) Collectible() Entity {
	cc := s.cfg.Collectibles
	e := s.entity(KindCollectible, cc.Width, cc.Height)
	band := s.cfg.Field.Height - 2*cc.Margin
	e.Bottom = cc.Margin + s.rng.Float64()*band
	return e
}

func (s *Spawner) entity(kind Kind, w, h float64) Entity {
	s.nextID++
	return Entity{
		ID:       s.nextID,
		Kind:     kind,
		Traveled: -w, // Fully outside the right edge
		Width:    w,
		Height:   h,
	}
}
