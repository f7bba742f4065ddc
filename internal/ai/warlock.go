package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// DefaultCurse is applied to enemies with no configured curse.
const DefaultCurse = "curse_of_agony"

const warlockCastRange = 30.0

type warlock struct{}

// Decide: death coil when in danger, fear the crowd-control target, keep
// curse and corruption up, drain when hurt, shadow bolt.
func (warlock) Decide(s *Snapshot, self *entity.Combatant) Action {
	target := s.Target(self)
	if target == nil {
		return Idle()
	}
	cc := s.CCTarget(self)
	curse := CurseFor(self, target)

	if a, ok := firstUsable(s, self,
		rule{self.HealthFraction() < 0.35, "death_coil", target},
		rule{controllable(cc, gamedata.AuraFear), "fear", cc},
		rule{missing(target, self, curse), curse, target},
		rule{missing(target, self, "corruption"), "corruption", target},
		rule{self.HealthFraction() < 0.5, "drain_life", target},
		rule{true, "shadow_bolt", target},
	); ok {
		return a
	}
	return approach(s, self, target, warlockCastRange)
}

// CurseFor returns the curse the warlock keeps on target, chosen by the
// target's roster slot.
func CurseFor(self, target *entity.Combatant) string {
	if c, ok := self.Options.Curses[target.Slot]; ok && c != "" {
		return c
	}
	return DefaultCurse
}
