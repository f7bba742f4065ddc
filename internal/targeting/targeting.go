// Package targeting assigns each combatant's primary and crowd-control
// targets every step.
package targeting

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
)

// NoSlot marks an unset priority.
const NoSlot = -1

// crowd-control target scoring weights
const (
	scoreNotKillTarget = 10
	scoreControlled    = -8
	scorePet           = -6
	scoreHealer        = 5
)

// TeamPriority is a team's configured focus: the enemy roster slots to kill
// and to crowd-control. NoSlot leaves the choice to the heuristics.
type TeamPriority struct {
	KillSlot int
	CCSlot   int
}

// NoPriority returns a TeamPriority with nothing configured.
func NoPriority() TeamPriority {
	return TeamPriority{KillSlot: NoSlot, CCSlot: NoSlot}
}

// Acquirer holds the per-team priorities and remembers, per observer,
// whether the kill target was valid last step so that a target becoming
// valid again (leaving stealth, losing immunity) pulls attention back.
type Acquirer struct {
	priorities       map[int]TeamPriority
	priorityWasValid map[int]bool
}

// NewAcquirer creates an acquirer for teams 1 and 2.
func NewAcquirer(team1, team2 TeamPriority) *Acquirer {
	return &Acquirer{
		priorities:       map[int]TeamPriority{1: team1, 2: team2},
		priorityWasValid: make(map[int]bool),
	}
}

// Valid reports whether target can be attacked by observer: alive, an
// enemy, visible and not damage-immune.
func Valid(observer, target *entity.Combatant) bool {
	return target != nil &&
		target.IsAlive() &&
		target.Team != observer.Team &&
		combat.CanSee(observer, target) &&
		!target.IsImmune()
}

// Update recomputes TargetID and CCTargetID for every living combatant.
// Pets are assigned after their owners and follow the owner's target.
func (a *Acquirer) Update(combatants []*entity.Combatant) {
	byID := make(map[int]*entity.Combatant, len(combatants))
	for _, c := range combatants {
		byID[c.ID] = c
	}

	for _, c := range combatants {
		if c.IsAlive() && !c.IsPet() {
			a.assign(c, combatants, byID)
		}
	}
	for _, c := range combatants {
		if !c.IsAlive() || !c.IsPet() {
			continue
		}
		owner := byID[c.OwnerID]
		if owner != nil && owner.IsAlive() && Valid(c, byID[owner.TargetID]) {
			c.TargetID = owner.TargetID
			c.CCTargetID = owner.CCTargetID
			continue
		}
		a.assign(c, combatants, byID)
	}
}

// assign picks c's primary and crowd-control targets.
func (a *Acquirer) assign(c *entity.Combatant, combatants []*entity.Combatant, byID map[int]*entity.Combatant) {
	prio := a.priorities[c.Team]
	kill := a.slotTarget(c, combatants, prio.KillSlot)
	killValid := Valid(c, kill)
	newlyValid := killValid && !a.priorityWasValid[c.ID]
	a.priorityWasValid[c.ID] = killValid

	current := byID[c.TargetID]
	if !Valid(c, current) || (newlyValid && current != kill) {
		switch {
		case killValid:
			c.TargetID = kill.ID
		default:
			c.TargetID = entity.NoTarget
			if n := Nearest(c, combatants); n != nil {
				c.TargetID = n.ID
			}
		}
	}

	c.CCTargetID = entity.NoTarget
	if cc := a.slotTarget(c, combatants, prio.CCSlot); Valid(c, cc) {
		c.CCTargetID = cc.ID
	} else if best := BestCrowdControl(c, combatants, byID[c.TargetID]); best != nil {
		c.CCTargetID = best.ID
	}
}

// slotTarget returns the non-pet enemy in the given roster slot.
func (a *Acquirer) slotTarget(c *entity.Combatant, combatants []*entity.Combatant, slot int) *entity.Combatant {
	if slot == NoSlot {
		return nil
	}
	for _, o := range combatants {
		if o.Team != c.Team && !o.IsPet() && o.Slot == slot {
			return o
		}
	}
	return nil
}

// Nearest returns the closest valid enemy of c, lower ID first on ties.
func Nearest(c *entity.Combatant, combatants []*entity.Combatant) *entity.Combatant {
	var best *entity.Combatant
	bestDist := 0.0
	for _, o := range combatants {
		if !Valid(c, o) {
			continue
		}
		d := c.DistanceTo(o)
		if best == nil || d < bestDist || (d == bestDist && o.ID < best.ID) {
			best, bestDist = o, d
		}
	}
	return best
}

// BestCrowdControl scores c's valid enemies as crowd-control targets and
// returns the best, or nil. kill is c's current primary target.
func BestCrowdControl(c *entity.Combatant, combatants []*entity.Combatant, kill *entity.Combatant) *entity.Combatant {
	var best *entity.Combatant
	bestScore := 0
	for _, o := range combatants {
		if !Valid(c, o) {
			continue
		}
		s := CCScore(o, kill)
		if best == nil || s > bestScore || (s == bestScore && o.ID < best.ID) {
			best, bestScore = o, s
		}
	}
	return best
}

// CCScore rates o as a crowd-control target given the kill target.
func CCScore(o, kill *entity.Combatant) int {
	score := 0
	if kill == nil || o.ID != kill.ID {
		score += scoreNotKillTarget
	}
	if o.HasCrowdControl() {
		score += scoreControlled
	}
	if o.IsPet() {
		score += scorePet
	}
	if o.IsHealer() && kill != nil {
		if kill.IsHealer() {
			score -= scoreHealer
		} else {
			score += scoreHealer
		}
	}
	return score
}
