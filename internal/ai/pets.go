package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// followDistance is how close an idle pet stays to its owner.
const followDistance = 3.0

// follow keeps an idle pet near its owner.
func follow(s *Snapshot, self *entity.Combatant) Action {
	owner := s.Get(self.OwnerID)
	if owner == nil || !owner.IsAlive() || self.DistanceTo(owner) <= followDistance {
		return Idle()
	}
	return MoveToward(owner.Position, followDistance-reachSlack)
}

type felhunter struct{}

// Decide: lock a caster, eat a buff, bite.
func (felhunter) Decide(s *Snapshot, self *entity.Combatant) Action {
	target := s.Target(self)
	if target == nil {
		return follow(s, self)
	}
	if a, ok := firstUsable(s, self,
		rule{target.IsCasting(), "spell_lock", target},
		rule{target.HasDispellable(false), "devour_magic", target},
		rule{true, "shadow_bite", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}

type cat struct{}

func (cat) Decide(s *Snapshot, self *entity.Combatant) Action {
	target := s.Target(self)
	if target == nil {
		return follow(s, self)
	}
	if a, ok := firstUsable(s, self,
		rule{self.DistanceTo(target) > 10, "dash", self},
		rule{true, "claw", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}

type spider struct{}

func (spider) Decide(s *Snapshot, self *entity.Combatant) Action {
	target := s.Target(self)
	if target == nil {
		return follow(s, self)
	}
	if a, ok := firstUsable(s, self,
		rule{!target.IsRooted() && controllable(target, gamedata.AuraRoot), "web", target},
		rule{true, "spider_bite", target},
	); ok {
		return a
	}
	return approach(s, self, target, meleeReach)
}
