package window

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
)

const confettiCount = 80

type confettiPiece struct {
	x, y   float32
	vx, vy float32 // Pixels per second
	size   float32
	color  color.RGBA
}

// confetti is the shower drawn for a while after a score milestone.
type confetti struct {
	milestone int
	from      time.Duration
	until     time.Duration
	pieces    []confettiPiece
}

func (c *confetti) start(rng *rand.Rand, now time.Duration, ev core.CelebrateEvent, w, h float64) {
	c.milestone = ev.Milestone
	c.from = now
	c.until = now + ev.Duration
	c.pieces = c.pieces[:0]
	for i := 0; i < confettiCount; i++ {
		c.pieces = append(c.pieces, confettiPiece{
			x:     float32(rng.Float64() * w),
			y:     float32(-rng.Float64() * h / 2),
			vx:    float32(rng.Float64()*80 - 40),
			vy:    float32(h/2 + rng.Float64()*h/2),
			size:  float32(3 + rng.Intn(4)),
			color: confettiColors[rng.Intn(len(confettiColors))],
		})
	}
}

func (c confetti) active(now time.Duration) bool {
	return now >= c.from && now < c.until
}

func (c confetti) draw(screen *ebiten.Image, now time.Duration) {
	if !c.active(now) {
		return
	}
	t := float32((now - c.from).Seconds())
	for _, p := range c.pieces {
		vector.DrawFilledRect(screen, p.x+p.vx*t, p.y+p.vy*t, p.size, p.size, p.color, false)
	}

	banner := fmt.Sprintf("%d POINTS!", c.milestone)
	ebitenutil.DebugPrintAt(screen, banner, (screen.Bounds().Dx()-len(banner)*debugGlyphW)/2, 40)
}
