package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	healRange     = 40.0
	screamRadius  = 8.0
	priestDPSCalm = 0.85 // everyone above this: the priest may attack
)

type priest struct{}

// Decide: save a dying ally, scream off melee, fortitude, dispel, shield,
// heals by urgency, then damage when the team is healthy.
func (priest) Decide(s *Snapshot, self *entity.Combatant) Action {
	low := s.LowestAlly(self)
	hp := low.HealthFraction()
	dispel := s.AllyToDispel(self)
	fortitude := s.AllyMissing(self, "power_word_fortitude")
	screamable := false
	for _, e := range s.Enemies(self) {
		if self.DistanceTo(e) <= screamRadius && controllable(e, gamedata.AuraFear) {
			screamable = true
			break
		}
	}

	if a, ok := firstUsable(s, self,
		rule{hp < 0.3, "pain_suppression", low},
		rule{screamable, "psychic_scream", self},
		rule{fortitude != nil, "power_word_fortitude", self},
		rule{dispel != nil, "dispel_magic", dispel},
		rule{hp < 0.9 && !weakenedSoul(low), "power_word_shield", low},
		rule{hp < 0.5, "flash_heal", low},
		rule{hp < priestDPSCalm && missing(low, self, "renew"), "renew", low},
		rule{hp < 0.7, "greater_heal", low},
	); ok {
		return a
	}
	if hp < 0.7 {
		return approach(s, self, low, healRange)
	}

	target := s.Target(self)
	if target == nil || hp < priestDPSCalm {
		return Idle()
	}
	if a, ok := firstUsable(s, self,
		rule{missing(target, self, "shadow_word_pain"), "shadow_word_pain", target},
		rule{true, "mind_blast", target},
	); ok {
		return a
	}
	return Idle()
}

// weakenedSoul reports whether o recently received a shield and cannot take
// another.
func weakenedSoul(o *entity.Combatant) bool {
	for _, a := range o.AurasOf(gamedata.AuraMarker) {
		if a.AbilityID == "power_word_shield" {
			return true
		}
	}
	return false
}
