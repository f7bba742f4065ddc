package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

type paladin struct{}

// Decide: divine shield, blessing, cleanse, stun, heals, then melee.
func (paladin) Decide(s *Snapshot, self *entity.Combatant) Action {
	low := s.LowestAlly(self)
	hp := low.HealthFraction()
	dispel := s.AllyToDispel(self)
	blessing := s.AllyMissing(self, "blessing_of_might")
	target := s.Target(self)
	stunTarget := s.CCTarget(self)
	if !controllable(stunTarget, gamedata.AuraStun) {
		stunTarget = target
	}

	if a, ok := firstUsable(s, self,
		rule{self.HealthFraction() < 0.2 && !self.IsImmune(), "divine_shield", self},
		rule{blessing != nil, "blessing_of_might", self},
		rule{dispel != nil, "cleanse", dispel},
		rule{controllable(stunTarget, gamedata.AuraStun), "hammer_of_justice", stunTarget},
		rule{hp < 0.4, "holy_light", low},
		rule{hp < 0.6, "flash_of_light", low},
	); ok {
		return a
	}
	if hp < 0.4 {
		return approach(s, self, low, healRange)
	}
	if target == nil {
		return Idle()
	}
	if a, ok := firstUsable(s, self,
		rule{true, "judgement", target},
		rule{true, "crusader_strike", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}
