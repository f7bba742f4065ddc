package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// DefaultOpener is the rogue's stealth opener when none is configured.
const DefaultOpener = "cheap_shot"

type rogue struct{}

// Decide: open from stealth, evasion, kick, blind the crowd-control target,
// finishers by combo points, builders.
func (rogue) Decide(s *Snapshot, self *entity.Combatant) Action {
	target := s.Target(self)
	if target == nil {
		return Idle()
	}

	if self.IsStealthed() {
		opener := self.Options.Opener
		if opener == "" || opener == "none" {
			opener = DefaultOpener
		}
		if a, ok := firstUsable(s, self, rule{true, opener, target}); ok {
			return a
		}
		return approach(s, self, target, meleeReach)
	}

	cp := self.ComboPoints
	cc := s.CCTarget(self)
	if a, ok := firstUsable(s, self,
		rule{self.HealthFraction() < 0.4, "evasion", self},
		rule{target.IsCasting(), "kick", target},
		rule{controllable(cc, gamedata.AuraFear), "blind", cc},
		rule{cp >= 4 && controllable(target, gamedata.AuraStun), "kidney_shot", target},
		rule{cp >= 5 || (cp >= 2 && target.HealthFraction() < 0.25), "eviscerate", target},
		rule{target.IsCasting() && controllable(target, gamedata.AuraIncapacitate), "gouge", target},
		rule{self.DistanceTo(target) > 15, "sprint", self},
		rule{true, "sinister_strike", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}
