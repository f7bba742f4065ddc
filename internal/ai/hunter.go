package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	hunterMinRange  = 8.0
	hunterShotRange = 35.0
)

type hunter struct{}

// Decide: disengage from melee, flare out stealth, scatter and trap, slows,
// sting, shots, and keep outside the dead zone.
func (hunter) Decide(s *Snapshot, self *entity.Combatant) Action {
	melee := s.NearestEnemy(self, meleeReach)
	close := s.NearestEnemy(self, hunterMinRange)
	stealthed := s.AnyStealthedEnemy(self) && !self.HasDetection()

	if a, ok := firstUsable(s, self,
		rule{melee != nil, "disengage", melee},
		rule{stealthed, "flare", self},
		rule{close != nil && controllable(close, gamedata.AuraIncapacitate), "scatter_shot", close},
	); ok {
		return a
	}

	target := s.Target(self)
	if target == nil {
		return Idle()
	}
	cc := s.CCTarget(self)
	d := self.DistanceTo(target)

	if a, ok := firstUsable(s, self,
		rule{controllable(cc, gamedata.AuraIncapacitate), "freezing_trap", cc},
		rule{melee != nil && controllable(melee, gamedata.AuraSlow), "wing_clip", melee},
		rule{d < 20 && controllable(target, gamedata.AuraSlow), "concussive_shot", target},
		rule{missing(target, self, "serpent_sting"), "serpent_sting", target},
		rule{true, "aimed_shot", target},
		rule{true, "arcane_shot", target},
	); ok {
		return a
	}
	if d < hunterMinRange {
		return MoveAway(target.Position)
	}
	return approach(s, self, target, hunterShotRange)
}
