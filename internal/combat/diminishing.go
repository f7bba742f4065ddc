package combat

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// applyCrowdControl lands a crowd-control aura through diminishing returns.
//
// Order of checks:
//  1. a cc_immunity window blocks the application without touching DR
//  2. a category at the immune level is resisted; its timer is not restarted
//  3. otherwise the duration is scaled by the DR factor, the level advances
//     and any aura of the same category is replaced
//
// Damage immunity is checked by the caller. Hard CC cancels the target's cast.
func (r *EffectResolver) applyCrowdControl(in Intent, def *gamedata.AbilityDef, source, target *entity.Combatant) {
	b := r.battle
	ad := in.Aura

	if target.HasAura(gamedata.AuraCCImmunity) {
		b.emit(Event{Kind: EventImmune, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID, Aura: ad.Kind, Note: "cc_immunity"})
		return
	}

	factor, ok := target.DR.Apply(ad.Kind)
	if !ok {
		b.emit(Event{Kind: EventCCResisted, SourceID: source.ID, TargetID: target.ID, AbilityID: def.ID, Aura: ad.Kind, Note: "diminished"})
		return
	}

	for _, old := range target.AurasOf(ad.Kind) {
		r.removeAura(target, old, removeReplaced)
	}

	d := time.Duration(float64(auraDuration(def, ad, in.ComboPoints)) * factor)
	aura := newAura(def, ad, source, d)
	aura.Permanent = false
	if !target.AddAura(aura) {
		return
	}
	b.emit(Event{
		Kind:      EventCCApplied,
		SourceID:  source.ID,
		TargetID:  target.ID,
		AbilityID: def.ID,
		Aura:      ad.Kind,
		Amount:    factor,
		Duration:  d,
	})

	if ad.Kind.IsHardCC() && target.Cast != nil {
		b.CancelCast(target, "crowd_control")
	}
}
