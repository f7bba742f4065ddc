package combat

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// IntentKind is the kind of state change an intent requests.
type IntentKind int

const (
	IntentDamage IntentKind = iota
	IntentHeal
	IntentApplyAura
	IntentInterrupt
	IntentDispel
	IntentEnergize
)

// String returns the intent kind name.
func (k IntentKind) String() string {
	switch k {
	case IntentDamage:
		return "damage"
	case IntentHeal:
		return "heal"
	case IntentApplyAura:
		return "apply_aura"
	case IntentInterrupt:
		return "interrupt"
	case IntentDispel:
		return "dispel"
	case IntentEnergize:
		return "energize"
	default:
		return "unknown"
	}
}

// Origin records which path produced an intent.
type Origin int

const (
	// OriginAbility is an instant, a completed cast or an auto attack.
	OriginAbility Origin = iota
	// OriginChannel is one tick of a channelled ability.
	OriginChannel
	// OriginTick is one tick of a periodic aura already on its holder.
	OriginTick
)

// Intent is a queued state change. Intents are produced by completed casts,
// instants, channel ticks and auto attacks, and applied exactly once by the
// EffectResolver.
type Intent struct {
	Kind      IntentKind
	SourceID  int
	TargetID  int
	Team      int
	AbilityID string
	Batch     int // one ability execution

	Aura        *gamedata.AuraDef // IntentApplyAura
	ComboPoints int               // finisher points consumed at execution

	// Amount is a precomputed value (periodic ticks, energize). Abilities
	// and channel ticks with no amount roll from the ability definition.
	Amount float64
	// Aura ticks never crit, roll or generate rage.
	Origin Origin

	LandAt time.Duration // projectile arrival; zero lands this step
}

// Periodic reports whether the intent is an aura tick.
func (in Intent) Periodic() bool {
	return in.Origin == OriginTick
}

// InFlight reports whether the intent is a launched projectile.
func (in Intent) InFlight() bool {
	return in.LandAt > 0
}

// survivesSource reports whether the intent still applies after its source
// has died. Aura ticks and launched projectiles do; anything produced by the
// source this step does not.
func (in Intent) survivesSource() bool {
	return in.Periodic() || in.InFlight()
}

// IntentQueue holds intents in production order until they are due.
type IntentQueue struct {
	pending []Intent
}

// NewIntentQueue creates an empty queue.
func NewIntentQueue() *IntentQueue {
	return &IntentQueue{}
}

// Push appends an intent.
func (q *IntentQueue) Push(in Intent) {
	q.pending = append(q.pending, in)
}

// Due removes and returns every intent landing at or before now, in
// production order.
func (q *IntentQueue) Due(now time.Duration) []Intent {
	var due []Intent
	kept := q.pending[:0]
	for _, in := range q.pending {
		if in.LandAt <= now {
			due = append(due, in)
		} else {
			kept = append(kept, in)
		}
	}
	q.pending = kept
	return due
}

// Len returns the number of pending intents.
func (q *IntentQueue) Len() int {
	return len(q.pending)
}
