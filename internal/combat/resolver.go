package combat

import (
	"fmt"
	"math"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	critDamageMultiplier = 2.0
	critHealMultiplier   = 1.5

	// rage gained per point of damage dealt and taken
	rageDealtRate = 0.02
	rageTakenRate = 0.01
)

// EffectResolver applies queued intents to the battle table.
type EffectResolver struct {
	battle *Battle
}

// NewEffectResolver creates a resolver bound to a battle.
func NewEffectResolver(b *Battle) *EffectResolver {
	return &EffectResolver{battle: b}
}

// ResolveAll applies intents in the order given. The first consistency
// error aborts resolution.
func (r *EffectResolver) ResolveAll(intents []Intent) error {
	for _, in := range intents {
		if err := r.Resolve(in); err != nil {
			return err
		}
	}
	return nil
}

// Resolve applies one intent. Intents against dead targets, and intents
// whose source died before they resolved, are discarded silently.
func (r *EffectResolver) Resolve(in Intent) error {
	b := r.battle
	source, err := b.Get(in.SourceID)
	if err != nil {
		return err
	}
	target, err := b.Get(in.TargetID)
	if err != nil {
		return err
	}
	def, err := b.Ability(in.AbilityID)
	if err != nil {
		return err
	}
	if !target.IsAlive() {
		return nil
	}
	if !source.IsAlive() && !in.survivesSource() {
		return nil
	}

	switch in.Kind {
	case IntentDamage:
		r.resolveDamage(in, def, source, target)
	case IntentHeal:
		r.resolveHeal(in, def, source, target)
	case IntentApplyAura:
		if in.Aura == nil {
			return fmt.Errorf("%w: aura intent for %q has no aura", ErrConsistency, in.AbilityID)
		}
		r.resolveAura(in, def, source, target)
	case IntentInterrupt:
		return r.resolveInterrupt(def, source, target)
	case IntentDispel:
		r.resolveDispel(def, source, target)
	case IntentEnergize:
		if gained := target.GainResource(in.Amount); gained > 0 {
			b.emit(Event{Kind: EventEnergize, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID, Amount: gained})
		}
	default:
		return fmt.Errorf("%w: unknown intent kind %d", ErrConsistency, in.Kind)
	}
	return nil
}

// =============================================================================
// Damage and healing
// =============================================================================

// resolveDamage runs the damage pipeline: immunity, roll, crit, outgoing
// penalty, damage reduction, absorb shields, health.
func (r *EffectResolver) resolveDamage(in Intent, def *gamedata.AbilityDef, source, target *entity.Combatant) {
	b := r.battle
	if target.IsImmune() {
		b.emit(Event{Kind: EventImmune, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID})
		return
	}

	value, ok := r.amount(in, def, source)
	if !ok {
		return
	}
	crit := false
	if !in.Periodic() && b.Rng.Float64() < source.CritChance {
		value *= critDamageMultiplier
		crit = true
	}
	value *= 1 - source.DamageDealtPenalty()
	value *= 1 - target.DamageReduction()
	value = math.Round(value)

	value, absorbed := r.absorb(target, value)
	actual, killed := target.TakeDamage(value)

	for _, a := range target.Auras {
		a.DamageTaken += actual + absorbed
	}

	b.emit(Event{
		Kind:      EventDamage,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Amount:    actual,
		Absorbed:  absorbed,
		Crit:      crit,
	})

	if !in.Periodic() {
		if source.ResourceKind == gamedata.ResourceRage {
			source.GainResource((actual + absorbed) * rageDealtRate)
		}
		if target.ResourceKind == gamedata.ResourceRage {
			target.GainResource(actual * rageTakenRate)
		}
	}

	if def.Leech > 0 && actual > 0 {
		if healed := source.Heal(math.Round(actual * def.Leech)); healed > 0 {
			b.emit(Event{Kind: EventHeal, SourceID: source.ID, TargetID: source.ID, AbilityID: def.ID, Amount: healed, Note: "leech"})
		}
	}

	if killed {
		target.DiedAt = b.Now
		b.emit(Event{Kind: EventDeath, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID})
	}
}

// absorb drains absorb shields in application order and returns the
// damage left over and the amount absorbed. Depleted shields are removed.
func (r *EffectResolver) absorb(target *entity.Combatant, damage float64) (float64, float64) {
	absorbed := 0.0
	for _, shield := range target.AurasOf(gamedata.AuraAbsorb) {
		if damage <= 0 {
			break
		}
		take := math.Min(damage, shield.Magnitude)
		shield.Magnitude -= take
		damage -= take
		absorbed += take
		if shield.Magnitude <= 0 {
			r.removeAura(target, shield, removeDepleted)
		}
	}
	return damage, absorbed
}

// resolveHeal applies crit, healing reduction and the max-health clamp.
func (r *EffectResolver) resolveHeal(in Intent, def *gamedata.AbilityDef, source, target *entity.Combatant) {
	b := r.battle
	value, ok := r.amount(in, def, source)
	if !ok {
		return
	}
	crit := false
	if !in.Periodic() && b.Rng.Float64() < source.CritChance {
		value *= critHealMultiplier
		crit = true
	}
	value *= 1 - target.HealingReduction()
	value = math.Round(value)

	actual := target.Heal(value)
	b.emit(Event{
		Kind:      EventHeal,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Amount:    actual,
		Crit:      crit,
	})
}

// amount returns the pre-crit value of a damage or heal intent. Aura ticks
// use their snapshotted amount and never roll; a tick worth nothing is
// skipped.
func (r *EffectResolver) amount(in Intent, def *gamedata.AbilityDef, source *entity.Combatant) (float64, bool) {
	if in.Periodic() {
		return in.Amount, in.Amount > 0
	}
	if in.Amount > 0 {
		return in.Amount, true
	}
	return r.roll(def, source, in.ComboPoints), true
}

// roll returns base (rolled min..max) plus scaling, plus finisher bonus.
func (r *EffectResolver) roll(def *gamedata.AbilityDef, source *entity.Combatant, comboPoints int) float64 {
	value := def.BaseMin
	if def.BaseMax > def.BaseMin {
		value += r.battle.Rng.Float64() * (def.BaseMax - def.BaseMin)
	}
	value += source.Stat(def.ScalingStat) * def.Coefficient
	if def.ComboPoints < 0 && def.EffectType == gamedata.EffectDamage {
		value += def.PerComboPoint * float64(comboPoints)
	}
	return value
}

// =============================================================================
// Interrupts and dispels
// =============================================================================

// resolveInterrupt cancels the target's cast and locks the cast's school.
func (r *EffectResolver) resolveInterrupt(def *gamedata.AbilityDef, source, target *entity.Combatant) error {
	b := r.battle
	if target.IsImmune() {
		b.emit(Event{Kind: EventImmune, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID})
		return nil
	}
	if target.Cast == nil {
		return nil
	}
	castDef, err := b.Ability(target.Cast.AbilityID)
	if err != nil {
		return err
	}
	target.Cast.Interrupted = true
	target.Cast = nil

	lockout := gamedata.Seconds(def.Lockout)
	target.LockOut(castDef.School, b.Now+lockout)
	b.emit(Event{
		Kind:      EventInterrupt,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Duration:  lockout,
		Note:      castDef.ID,
	})
	return nil
}

// resolveDispel removes one dispellable aura: a hostile one from an ally,
// or a beneficial one from an enemy. Crowd control is removed first.
func (r *EffectResolver) resolveDispel(def *gamedata.AbilityDef, source, target *entity.Combatant) {
	b := r.battle
	friendly := source.Team == target.Team
	if !friendly && target.IsImmune() {
		b.emit(Event{Kind: EventImmune, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID})
		return
	}

	var pick *entity.Aura
	for _, a := range target.Auras {
		if !a.Dispellable || a.IsHostile() != friendly {
			continue
		}
		if pick == nil || (a.Kind.IsCrowdControl() && !pick.Kind.IsCrowdControl()) {
			pick = a
		}
	}
	if pick == nil {
		return
	}

	r.removeAura(target, pick, removeDispelled)
	b.emit(Event{
		Kind:      EventDispel,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Aura:      pick.Kind,
		Note:      pick.AbilityID,
	})
}
