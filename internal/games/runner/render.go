package runner

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
)

// Visual characters for rendering
const (
	CharacterChar   = '█'
	ObstacleChar    = '▓'
	CeilingChar     = '▒'
	CollectibleChar = '◆'
	GroundChar      = '═'
	ChargeChar      = '●'
	SpentChar       = '○'
)

var confettiRunes = []rune{'*', '+', '•', '✦', '·'}

const confettiPieces = 48

type confettiPiece struct {
	x, y  float64 // Start position as a fraction of the play area
	fall  float64 // Fraction of the play area covered over the whole celebration
	r     rune
	color platformcore.Color
}

// celebration is the confetti shower shown after a score milestone.
type celebration struct {
	milestone int
	from      time.Duration
	until     time.Duration
	pieces    []confettiPiece
}

func (c *celebration) start(rng *rand.Rand, now time.Duration, ev core.CelebrateEvent) {
	c.milestone = ev.Milestone
	c.from = now
	c.until = now + ev.Duration
	c.pieces = c.pieces[:0]
	for i := 0; i < confettiPieces; i++ {
		c.pieces = append(c.pieces, confettiPiece{
			x:     rng.Float64(),
			y:     rng.Float64() * 0.5,
			fall:  0.3 + rng.Float64()*0.7,
			r:     confettiRunes[rng.Intn(len(confettiRunes))],
			color: platformcore.ConfettiColors[rng.Intn(len(platformcore.ConfettiColors))],
		})
	}
}

// progress returns how far the shower is in [0, 1), or false once it is over.
func (c celebration) progress(now time.Duration) (float64, bool) {
	if c.until <= c.from || now >= c.until {
		return 0, false
	}
	return float64(now-c.from) / float64(c.until-c.from), true
}

// viewport maps field pixels to screen cells. Row 0 is the HUD and the last
// row is the ground line; the field fills the rows in between.
type viewport struct {
	sx, sy float64
	top    int
	rows   int
	cols   int
}

func newViewport(dst *platformcore.Screen, snap core.Snapshot) viewport {
	rows := platformcore.Max(dst.Height()-2, 1)
	return viewport{
		sx:   float64(dst.Width()) / snap.Field.Width,
		sy:   float64(rows) / snap.Field.Height,
		top:  1,
		rows: rows,
		cols: dst.Width(),
	}
}

// cells converts a field rectangle to the screen cells it touches (at least one).
func (v viewport) cells(r platformcore.RectF) platformcore.Rect {
	x0 := int(math.Floor(r.Left * v.sx))
	x1 := int(math.Ceil(r.Right * v.sx))
	y0 := int(math.Floor(r.Top * v.sy))
	y1 := int(math.Ceil(r.Bottom * v.sy))

	// Keep everything inside the play area rows
	y0 = platformcore.Clamp(y0, 0, v.rows-1)
	y1 = platformcore.Clamp(y1, y0+1, v.rows)

	return platformcore.NewRect(x0, v.top+y0, platformcore.Max(x1-x0, 1), y1-y0)
}

// Render draws the field, the HUD and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	v := newViewport(dst, snap)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, platformcore.ColorGray)

	for _, e := range snap.Collectibles {
		dst.DrawRect(v.cells(e.Bounds(snap.Field)), CollectibleChar, platformcore.ColorBrightYellow)
	}
	for _, e := range snap.Obstacles {
		if e.Inverted {
			dst.DrawRect(v.cells(e.Bounds(snap.Field)), CeilingChar, platformcore.ColorMagenta)
		} else {
			dst.DrawRect(v.cells(e.Bounds(snap.Field)), ObstacleChar, platformcore.ColorRed)
		}
	}

	charColor := platformcore.ColorBrightGreen
	if snap.State == core.StateGameOver {
		charColor = platformcore.ColorBrightRed
	}
	dst.DrawRect(v.cells(snap.CharacterBounds), CharacterChar, charColor)

	g.drawConfetti(dst, v)
	g.drawHUD(dst, snap)

	switch {
	case snap.State == core.StateNotStarted:
		drawCenteredMessage(dst, "ENDLESS RUNNER", "Press SPACE to start")
	case snap.State == core.StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Collected: %d  |  Press R to restart", snap.Score, snap.Collected))
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *platformcore.Screen, snap core.Snapshot) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score))
	dst.DrawTextColored(16, 0, fmt.Sprintf(" Collected: %d ", snap.Collected), platformcore.ColorBrightYellow)

	charges := strings.Repeat(string(ChargeChar), snap.Character.JumpsRemaining()) +
		strings.Repeat(string(SpentChar), snap.Character.JumpsUsed)
	right := fmt.Sprintf(" Spd: %.1f  %s ", snap.Speed, charges)
	dst.DrawText(dst.Width()-len([]rune(right))-2, 0, right)
}

func (g *Game) drawConfetti(dst *platformcore.Screen, v viewport) {
	p, ok := g.celebration.progress(g.sched.Now())
	if !ok {
		return
	}
	for _, piece := range g.celebration.pieces {
		y := piece.y + piece.fall*p
		if y >= 1 {
			continue
		}
		dst.SetColored(int(piece.x*float64(v.cols)), v.top+int(y*float64(v.rows)), piece.r, piece.color)
	}

	banner := fmt.Sprintf(" %d POINTS! ", g.celebration.milestone)
	color := platformcore.ConfettiColors[int(p*10)%len(platformcore.ConfettiColors)]
	dst.DrawTextColored((dst.Width()-len([]rune(banner)))/2, v.top+1, banner, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *platformcore.Screen, title, subtitle string) {
	boxW := platformcore.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
