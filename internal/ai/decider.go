package ai

import (
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	meleeReach = 5.0
	// approach stops a little inside ability range
	reachSlack = 1.0
)

// Decider picks one action for a combatant of its class.
type Decider interface {
	Decide(s *Snapshot, self *entity.Combatant) Action
}

// For returns the decider of a class or pet type.
func For(class entity.Class) Decider {
	switch class {
	case entity.ClassWarrior:
		return warrior{}
	case entity.ClassMage:
		return mage{}
	case entity.ClassRogue:
		return rogue{}
	case entity.ClassPriest:
		return priest{}
	case entity.ClassWarlock:
		return warlock{}
	case entity.ClassPaladin:
		return paladin{}
	case entity.ClassHunter:
		return hunter{}
	case entity.PetFelhunter:
		return felhunter{}
	case entity.PetCat:
		return cat{}
	case entity.PetSpider:
		return spider{}
	default:
		return idler{}
	}
}

// Decide runs the decider for combatant id against the snapshot. Dead and
// casting combatants idle; controlled combatants may only use abilities
// (the usability check allows the usable-while-controlled ones).
func Decide(s *Snapshot, id int) Action {
	self := s.Get(id)
	if self == nil || !self.IsAlive() || self.IsCasting() {
		return Idle()
	}
	a := For(self.Class).Decide(s, self)
	if self.IsControlled() && a.Kind != ActionCast {
		return Idle()
	}
	return a
}

type idler struct{}

func (idler) Decide(*Snapshot, *entity.Combatant) Action { return Idle() }

// rule is one entry of a priority list.
type rule struct {
	when    bool
	ability string
	target  *entity.Combatant
}

// firstUsable returns a cast of the first rule whose condition holds and
// whose ability is usable.
func firstUsable(s *Snapshot, self *entity.Combatant, rules ...rule) (Action, bool) {
	for _, r := range rules {
		if !r.when || r.target == nil {
			continue
		}
		if s.CanUse(self, r.ability, r.target) {
			return Cast(r.ability, r.target.ID), true
		}
	}
	return Action{}, false
}

// approach walks toward target until within reach and in line of sight.
func approach(s *Snapshot, self, target *entity.Combatant, reach float64) Action {
	if target == nil {
		return Idle()
	}
	los := s.Arena == nil || s.Arena.HasLineOfSight(self.Position, target.Position)
	if self.DistanceTo(target) <= reach && los {
		return Idle()
	}
	stop := reach - reachSlack
	if !los {
		stop = meleeReach - reachSlack
	}
	return MoveToward(target.Position, stop)
}

// controllable reports whether a crowd-control effect of kind would land on o.
func controllable(o *entity.Combatant, kind gamedata.AuraKind) bool {
	return o != nil &&
		!o.HasCrowdControl() &&
		!o.IsImmune() &&
		!o.HasAura(gamedata.AuraCCImmunity) &&
		!o.DR.IsImmune(kind)
}

// missing reports whether o lacks an aura from abilityID applied by self.
func missing(o, self *entity.Combatant, abilityID string) bool {
	return o != nil && o.FindAuraFrom(abilityID, self.ID) == nil
}
