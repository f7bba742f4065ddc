package entity

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// Aura is a timed effect held by a combatant.
type Aura struct {
	Kind        gamedata.AuraKind
	Magnitude   float64 // absorb auras: remaining shield capacity
	Remaining   time.Duration
	Duration    time.Duration // duration at application
	Permanent   bool          // lasts until broken, dispelled or replaced
	Dispellable bool

	// BreakOnDamage < 0 never breaks, 0 breaks on any damage, > 0 breaks
	// once DamageTaken reaches it.
	BreakOnDamage float64
	DamageTaken   float64

	SourceID    int
	AbilityID   string
	AbilityName string

	TickInterval time.Duration
	SinceTick    time.Duration
	TickAmount   float64
}

// Expired reports whether the aura's duration has run out.
func (a *Aura) Expired() bool {
	return !a.Permanent && a.Remaining <= 0
}

// ShouldBreak reports whether accumulated damage has crossed the
// break-on-damage threshold.
func (a *Aura) ShouldBreak() bool {
	switch {
	case a.BreakOnDamage < 0:
		return false
	case a.BreakOnDamage == 0:
		return a.DamageTaken > 0
	default:
		return a.DamageTaken >= a.BreakOnDamage
	}
}

// IsHostile reports whether the aura harms its holder.
func (a *Aura) IsHostile() bool {
	return a.Kind.IsHostile()
}
