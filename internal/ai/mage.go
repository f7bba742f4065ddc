package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	// melee threat radius for the mage's escape logic
	mageThreatRange = 8.0
	mageCastRange   = 30.0
)

type mage struct{}

// Decide: ice block, intellect, escape melee (blink when pinned, nova
// otherwise, then kite), counterspell, polymorph, damage.
func (mage) Decide(s *Snapshot, self *entity.Combatant) Action {
	if a, ok := firstUsable(s, self,
		rule{self.HealthFraction() < 0.25 && !self.IsImmune(), "ice_block", self},
		rule{s.AllyMissing(self, "arcane_intellect") != nil, "arcane_intellect", self},
	); ok {
		return a
	}

	target := s.Target(self)
	melee := s.NearestEnemy(self, mageThreatRange)
	pinned := self.IsRooted()

	if a, ok := firstUsable(s, self,
		rule{pinned && melee != nil, "blink", melee},
	); ok {
		return a
	}
	if target == nil {
		return Idle()
	}
	cc := s.CCTarget(self)

	if a, ok := firstUsable(s, self,
		rule{target.IsCasting(), "counterspell", target},
		rule{melee != nil && controllable(melee, gamedata.AuraRoot), "frost_nova", self},
	); ok {
		return a
	}
	if melee != nil && melee.IsRooted() && !pinned {
		return MoveAway(melee.Position)
	}
	if a, ok := firstUsable(s, self,
		rule{controllable(cc, gamedata.AuraIncapacitate), "polymorph", cc},
		rule{true, "fire_blast", target},
		rule{true, "frostbolt", target},
	); ok {
		return a
	}
	return approach(s, self, target, mageCastRange)
}
