package core

// Character is the player-controlled runner.
// Y is the height above the ground and is never negative.
type Character struct {
	Y         float64
	Velocity  float64
	JumpsUsed int
	MaxJumps  int
}

// NewCharacter creates a grounded character with all jump charges available.
func NewCharacter(maxJumps int) Character {
	return Character{MaxJumps: maxJumps}
}

// Step integrates one frame of vertical motion.
// Returns true when the character is on the ground after the step.
func (c *Character) Step(gravity float64) bool {
	c.Velocity -= gravity
	c.Y += c.Velocity

	if c.Y < 0 {
		c.Y = 0
		c.Velocity = 0
		c.JumpsUsed = 0
		return true
	}
	return false
}

// Jump spends one charge to launch the character upward.
// Returns false, changing nothing, when no charges remain.
func (c *Character) Jump(strength float64) bool {
	if c.JumpsRemaining() <= 0 {
		return false
	}
	c.Velocity = strength
	c.JumpsUsed++
	return true
}

// JumpsRemaining returns how many jumps can be made before landing.
func (c Character) JumpsRemaining() int {
	return c.MaxJumps - c.JumpsUsed
}

// Airborne reports whether the character is above the ground.
func (c Character) Airborne() bool {
	return c.Y > 0
}
