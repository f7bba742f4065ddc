package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

type warrior struct{}

// Decide: defensive cooldown, team shout, gap close, interrupt, fear the
// crowd-control target, keep the target slowed, then damage.
func (warrior) Decide(s *Snapshot, self *entity.Combatant) Action {
	if a, ok := firstUsable(s, self,
		rule{self.HealthFraction() < 0.35, "shield_wall", self},
		rule{s.AllyMissing(self, "battle_shout") != nil, "battle_shout", self},
	); ok {
		return a
	}

	target := s.Target(self)
	if target == nil {
		return Idle()
	}
	d := self.DistanceTo(target)
	cc := s.CCTarget(self)

	if a, ok := firstUsable(s, self,
		rule{d >= 8, "charge", target},
		rule{target.IsCasting(), "pummel", target},
		rule{cc != nil && self.DistanceTo(cc) <= 8 && controllable(cc, gamedata.AuraFear), "intimidating_shout", cc},
		rule{!target.HasAura(gamedata.AuraSlow) && controllable(target, gamedata.AuraSlow), "hamstring", target},
		rule{true, "mortal_strike", target},
		rule{missing(target, self, "rend"), "rend", target},
		rule{self.Resource >= 60, "heroic_strike", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}
