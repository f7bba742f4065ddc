package combat

import (
	"math"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// removal is why an aura leaves its holder.
type removal int

const (
	removeExpired removal = iota
	removeBroken
	removeDispelled
	removeDepleted
	removePurged
	removeReplaced
	removeEscaped
)

func (r removal) note() string {
	switch r {
	case removeBroken:
		return "broken"
	case removeDispelled:
		return "dispelled"
	case removeDepleted:
		return "depleted"
	case removePurged:
		return "purged"
	case removeReplaced:
		return "replaced"
	case removeEscaped:
		return "escaped"
	default:
		return "expired"
	}
}

// resolveAura applies an aura intent. Crowd control goes through
// diminishing returns; everything else is deduplicated per batch and, for
// team buffs, per step.
func (r *EffectResolver) resolveAura(in Intent, def *gamedata.AbilityDef, source, target *entity.Combatant) {
	b := r.battle
	ad := in.Aura

	if ad.Kind.IsHostile() && target.IsImmune() {
		b.emit(Event{Kind: EventImmune, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID, Aura: ad.Kind})
		return
	}
	if ad.Kind.IsCrowdControl() {
		r.applyCrowdControl(in, def, source, target)
		return
	}

	key := batchKey{batch: in.Batch, targetID: target.ID, abilityID: def.ID, sourceID: source.ID, kind: ad.Kind}
	if b.batchBufs[key] {
		return
	}
	b.batchBufs[key] = true

	if def.TeamBuff {
		tk := teamBuffKey{team: source.Team, abilityID: def.ID, targetID: target.ID}
		if b.teamBuffs[tk] {
			return
		}
		b.teamBuffs[tk] = true
	}

	for _, old := range append([]*entity.Aura(nil), target.Auras...) {
		if old.AbilityID == def.ID && old.Kind == ad.Kind && (old.SourceID == source.ID || def.TeamBuff) {
			r.removeAura(target, old, removeReplaced)
		}
	}

	aura := newAura(def, ad, source, auraDuration(def, ad, in.ComboPoints))
	if !target.AddAura(aura) {
		return
	}
	if aura.Kind == gamedata.AuraMaxHealth {
		target.AdjustMaxHealth(aura.Magnitude)
	}

	kind := EventBuffApplied
	if ad.Kind.IsHostile() {
		kind = EventDebuffApplied
	}
	b.emit(Event{
		Kind:      kind,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Aura:      ad.Kind,
		Amount:    aura.Magnitude,
		Duration:  aura.Duration,
	})

	if ad.Kind == gamedata.AuraImmunity {
		for _, a := range append([]*entity.Aura(nil), target.Auras...) {
			if a.IsHostile() {
				r.removeAura(target, a, removePurged)
			}
		}
	}
}

// auraDuration returns the base duration, extended per combo point for
// finishers that apply auras.
func auraDuration(def *gamedata.AbilityDef, ad *gamedata.AuraDef, comboPoints int) time.Duration {
	secs := ad.Duration
	if def.ComboPoints < 0 && def.EffectType == gamedata.EffectAura {
		secs += def.PerComboPoint * float64(comboPoints)
	}
	return gamedata.Seconds(secs)
}

// newAura builds an aura instance. Periodic tick amounts and absorb
// capacity are snapshotted from the source's stats at application.
func newAura(def *gamedata.AbilityDef, ad *gamedata.AuraDef, source *entity.Combatant, d time.Duration) *entity.Aura {
	a := &entity.Aura{
		Kind:          ad.Kind,
		Magnitude:     ad.Magnitude,
		Remaining:     d,
		Duration:      d,
		Permanent:     ad.Duration <= 0,
		Dispellable:   ad.Dispellable,
		BreakOnDamage: ad.BreakThreshold(),
		SourceID:      source.ID,
		AbilityID:     def.ID,
		AbilityName:   def.Name,
	}
	switch {
	case ad.Kind.IsPeriodic():
		a.TickInterval = ad.TickValue()
		a.TickAmount = math.Round(ad.Magnitude + source.Stat(def.ScalingStat)*ad.Coefficient)
	case ad.Kind == gamedata.AuraAbsorb:
		a.Magnitude = math.Round(ad.Magnitude + source.EffectiveSpellPower()*ad.Coefficient)
	}
	return a
}

// removeAura detaches an aura and undoes its side effects. Crowd control
// that ends early or naturally refreshes its diminishing-returns window.
// Replacements are silent.
func (r *EffectResolver) removeAura(target *entity.Combatant, a *entity.Aura, why removal) {
	if !target.RemoveAura(a) {
		return
	}
	if a.Kind == gamedata.AuraMaxHealth {
		target.AdjustMaxHealth(-a.Magnitude)
	}
	if why == removeReplaced {
		return
	}
	if a.Kind.IsCrowdControl() {
		target.DR.Refresh(a.Kind)
	}
	if why == removeDispelled {
		return
	}
	kind := EventAuraRemoved
	if why == removeExpired {
		kind = EventAuraExpired
	}
	r.battle.emit(Event{
		Kind:      kind,
		SourceID:  a.SourceID,
		TargetID:  target.ID,
		AbilityID: a.AbilityID,
		Aura:      a.Kind,
		Note:      why.note(),
	})
}

// ProcessAuras runs the aura phase of a step: resource regeneration,
// diminishing-returns timers, periodic ticks, break-on-damage and expiry.
func (b *Battle) ProcessAuras(dt time.Duration) error {
	r := b.resolver
	for _, c := range b.combatants {
		if !c.IsAlive() {
			continue
		}
		c.Regenerate(dt)
		c.DR.Tick(dt)

		for _, a := range append([]*entity.Aura(nil), c.Auras...) {
			if !c.IsAlive() {
				break
			}
			if a.Kind.IsPeriodic() && a.TickInterval > 0 {
				a.SinceTick += dt
				for a.SinceTick >= a.TickInterval && c.IsAlive() {
					a.SinceTick -= a.TickInterval
					if err := r.Resolve(tickIntent(a, c)); err != nil {
						return err
					}
				}
			}
			if !a.Permanent {
				a.Remaining -= dt
			}
		}
		if !c.IsAlive() {
			continue
		}

		for _, a := range append([]*entity.Aura(nil), c.Auras...) {
			switch {
			case a.ShouldBreak():
				r.removeAura(c, a, removeBroken)
			case a.Expired():
				r.removeAura(c, a, removeExpired)
			}
		}
	}
	return nil
}

// tickIntent converts one periodic tick into a resolver intent.
func tickIntent(a *entity.Aura, holder *entity.Combatant) Intent {
	kind := IntentDamage
	if a.Kind == gamedata.AuraHealOverTime {
		kind = IntentHeal
	}
	return Intent{
		Kind:      kind,
		SourceID:  a.SourceID,
		TargetID:  holder.ID,
		AbilityID: a.AbilityID,
		Amount:    a.TickAmount,
		Origin:    OriginTick,
	}
}

// RemoveAuras strips every aura of the given kinds from c, as an escape
// effect does.
func (b *Battle) RemoveAuras(c *entity.Combatant, kinds ...gamedata.AuraKind) {
	for _, a := range append([]*entity.Aura(nil), c.Auras...) {
		for _, k := range kinds {
			if a.Kind == k {
				b.resolver.removeAura(c, a, removeEscaped)
				break
			}
		}
	}
}
