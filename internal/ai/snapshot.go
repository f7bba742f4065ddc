// Package ai holds the per-class decision modules. Deciders read a
// deep-copied Snapshot of the battle and return one Action; they never
// mutate combat state.
package ai

import (
	"slices"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// Snapshot is a read-only copy of the battle taken once per step before any
// decision is made, so no decision observes another decision's effects.
type Snapshot struct {
	Now     time.Duration
	Catalog gamedata.Catalog
	Arena   *world.Arena

	combatants []*entity.Combatant
	byID       map[int]*entity.Combatant
}

// NewSnapshot deep-copies combatants.
func NewSnapshot(now time.Duration, catalog gamedata.Catalog, arena *world.Arena, combatants []*entity.Combatant) *Snapshot {
	s := &Snapshot{
		Now:        now,
		Catalog:    catalog,
		Arena:      arena,
		combatants: make([]*entity.Combatant, len(combatants)),
		byID:       make(map[int]*entity.Combatant, len(combatants)),
	}
	for i, c := range combatants {
		cp := c.Clone()
		s.combatants[i] = cp
		s.byID[cp.ID] = cp
	}
	return s
}

// Get returns the copy of combatant id, or nil.
func (s *Snapshot) Get(id int) *entity.Combatant {
	return s.byID[id]
}

// Combatants returns every copied combatant in table order.
func (s *Snapshot) Combatants() []*entity.Combatant {
	return s.combatants
}

// Enemies returns c's living enemies.
func (s *Snapshot) Enemies(c *entity.Combatant) []*entity.Combatant {
	var out []*entity.Combatant
	for _, o := range s.combatants {
		if o.Team != c.Team && o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}

// Allies returns c's living allies including c.
func (s *Snapshot) Allies(c *entity.Combatant) []*entity.Combatant {
	var out []*entity.Combatant
	for _, o := range s.combatants {
		if o.Team == c.Team && o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}

// Ability returns the catalog definition for id, or nil.
func (s *Snapshot) Ability(id string) *gamedata.AbilityDef {
	return s.Catalog.GetByID(id)
}

// CanUse reports whether c knows abilityID and could use it on target now.
func (s *Snapshot) CanUse(c *entity.Combatant, abilityID string, target *entity.Combatant) bool {
	if !slices.Contains(c.Abilities, abilityID) {
		return false
	}
	def := s.Ability(abilityID)
	if def == nil {
		return false
	}
	return combat.CheckUsable(s.Now, s.Arena, c, def, target) == nil
}

// Target returns c's current primary target if it is still alive.
func (s *Snapshot) Target(c *entity.Combatant) *entity.Combatant {
	t := s.Get(c.TargetID)
	if t == nil || !t.IsAlive() {
		return nil
	}
	return t
}

// CCTarget returns c's crowd-control target when it differs from the
// primary target.
func (s *Snapshot) CCTarget(c *entity.Combatant) *entity.Combatant {
	t := s.Get(c.CCTargetID)
	if t == nil || !t.IsAlive() || t.ID == c.TargetID {
		return nil
	}
	return t
}

// NearestEnemy returns the closest visible enemy within r yards, or nil.
func (s *Snapshot) NearestEnemy(c *entity.Combatant, r float64) *entity.Combatant {
	var best *entity.Combatant
	for _, o := range s.Enemies(c) {
		if !combat.CanSee(c, o) {
			continue
		}
		d := c.DistanceTo(o)
		if d <= r && (best == nil || d < c.DistanceTo(best)) {
			best = o
		}
	}
	return best
}

// EnemiesWithin counts visible enemies within r yards of c.
func (s *Snapshot) EnemiesWithin(c *entity.Combatant, r float64) int {
	n := 0
	for _, o := range s.Enemies(c) {
		if combat.CanSee(c, o) && c.DistanceTo(o) <= r {
			n++
		}
	}
	return n
}

// LowestAlly returns the living ally (c included) with the lowest health
// fraction.
func (s *Snapshot) LowestAlly(c *entity.Combatant) *entity.Combatant {
	best := c
	for _, o := range s.Allies(c) {
		if o.HealthFraction() < best.HealthFraction() {
			best = o
		}
	}
	return best
}

// AllyMissing returns the first living ally without an aura from abilityID.
func (s *Snapshot) AllyMissing(c *entity.Combatant, abilityID string) *entity.Combatant {
	for _, o := range s.Allies(c) {
		if o.FindAuraFrom(abilityID, entity.NoTarget) == nil {
			return o
		}
	}
	return nil
}

// AllyToDispel returns an ally carrying a dispellable hostile aura,
// preferring one under crowd control.
func (s *Snapshot) AllyToDispel(c *entity.Combatant) *entity.Combatant {
	var pick *entity.Combatant
	for _, o := range s.Allies(c) {
		if !o.HasDispellable(true) {
			continue
		}
		if o.HasCrowdControl() {
			return o
		}
		if pick == nil {
			pick = o
		}
	}
	return pick
}

// AnyStealthedEnemy reports whether a living enemy of c is stealthed.
func (s *Snapshot) AnyStealthedEnemy(c *entity.Combatant) bool {
	for _, o := range s.Enemies(c) {
		if o.IsStealthed() {
			return true
		}
	}
	return false
}
