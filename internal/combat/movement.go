package combat

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// canMove reports whether c may walk this step.
func canMove(c *entity.Combatant) bool {
	return c.IsAlive() && !c.IsCasting() && !c.IsRooted()
}

// MoveToward walks c toward dest for dt, stopping once within stopAt yards.
// It reports whether c moved.
func (b *Battle) MoveToward(c *entity.Combatant, dest world.Vec2, stopAt float64, dt time.Duration) bool {
	if !canMove(c) {
		return false
	}
	gap := c.Position.Dist(dest) - stopAt
	if gap <= 0 {
		return false
	}
	step := c.Speed() * dt.Seconds()
	if step > gap {
		step = gap
	}
	c.FaceToward(dest)
	next := b.Arena.Move(c.Position, dest, step)
	moved := next != c.Position
	c.Position = next
	return moved
}

// MoveAway walks c directly away from threat for dt.
func (b *Battle) MoveAway(c *entity.Combatant, threat world.Vec2, dt time.Duration) bool {
	if !canMove(c) {
		return false
	}
	next := b.Arena.MoveAway(c.Position, threat, c.Speed()*dt.Seconds())
	moved := next != c.Position
	c.Position = next
	return moved
}
