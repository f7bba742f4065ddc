package combat

import (
	"errors"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// Use performs an ability for c against targetID. Instants execute
// immediately; cast-time abilities start a cast bar. A rejection is
// returned as one of the usability errors and leaves c unchanged.
func (b *Battle) Use(c *entity.Combatant, abilityID string, targetID int) error {
	def, err := b.Ability(abilityID)
	if err != nil {
		return err
	}
	target, err := b.resolveTarget(c, def, targetID)
	if err != nil {
		return err
	}
	if err := CheckUsable(b.Now, b.Arena, c, def, target); err != nil {
		return err
	}

	if target != c {
		c.FaceToward(target.Position)
	}
	if breaksStealth(def) {
		b.RemoveAuras(c, gamedata.AuraStealth)
	}
	if !def.OffGCD {
		c.TriggerGCD(b.Now, GlobalCooldown)
	}

	if def.IsInstant() {
		c.SpendResource(float64(def.Cost))
		c.StartCooldown(def.ID, b.Now, def.CooldownDuration())
		b.emit(Event{Kind: EventCastComplete, SourceID: c.ID, TargetID: target.ID, AbilityID: def.ID})
		b.execute(c, def, target)
		return nil
	}

	total := time.Duration(float64(def.CastDuration()) * c.CastTimeMultiplier())
	cast := &entity.CastState{
		AbilityID: def.ID,
		TargetID:  target.ID,
		Remaining: total,
		Total:     total,
	}
	if def.Channel {
		// channels pay up front and are not slowed
		c.SpendResource(float64(def.Cost))
		c.StartCooldown(def.ID, b.Now, def.CooldownDuration())
		cast.Remaining = def.CastDuration()
		cast.Total = def.CastDuration()
		cast.Channel = true
		cast.TickInterval = gamedata.Seconds(def.TickInterval)
		cast.Batch = b.nextBatch()
	}
	c.Cast = cast
	b.emit(Event{Kind: EventCastStart, SourceID: c.ID, TargetID: target.ID, AbilityID: def.ID, Duration: cast.Total})
	return nil
}

// CheckUsable reports whether c could use abilityID on targetID right now.
func (b *Battle) CheckUsable(c *entity.Combatant, abilityID string, targetID int) error {
	def, err := b.Ability(abilityID)
	if err != nil {
		return err
	}
	target, err := b.resolveTarget(c, def, targetID)
	if err != nil {
		return err
	}
	return CheckUsable(b.Now, b.Arena, c, def, target)
}

// resolveTarget maps a target ID to the combatant an ability acts on.
// Self and area abilities act from the caster.
func (b *Battle) resolveTarget(c *entity.Combatant, def *gamedata.AbilityDef, targetID int) (*entity.Combatant, error) {
	if !def.NeedsTarget() {
		return c, nil
	}
	if targetID == entity.NoTarget {
		return nil, ErrInvalidTarget
	}
	return b.Get(targetID)
}

// breaksStealth reports whether using def ends the caster's stealth.
func breaksStealth(def *gamedata.AbilityDef) bool {
	if def.Aura != nil && def.Aura.Kind == gamedata.AuraStealth {
		return false
	}
	return def.IsOffensive() || !def.IsInstant()
}

// CancelCast stops c's cast or channel without cost.
func (b *Battle) CancelCast(c *entity.Combatant, reason string) {
	if c.Cast == nil {
		return
	}
	id, target := c.Cast.AbilityID, c.Cast.TargetID
	c.Cast = nil
	b.emit(Event{Kind: EventCastCancelled, SourceID: c.ID, TargetID: target, AbilityID: id, Note: reason})
}

// AdvanceCasts progresses every cast and channel by dt. Completed casts pay
// their cost, start their cooldown and produce intents.
func (b *Battle) AdvanceCasts(dt time.Duration) error {
	for _, c := range b.combatants {
		if !c.IsAlive() || c.Cast == nil {
			continue
		}
		def, err := b.Ability(c.Cast.AbilityID)
		if err != nil {
			return err
		}
		if c.IsControlled() {
			b.CancelCast(c, "crowd_control")
			continue
		}
		if c.Cast.Channel {
			if err := b.advanceChannel(c, def, dt); err != nil {
				return err
			}
			continue
		}
		c.Cast.Remaining -= dt
		if c.Cast.Remaining > 0 {
			continue
		}
		if err := b.completeCast(c, def); err != nil {
			return err
		}
	}
	return nil
}

// completeCast finishes a cast bar. A target that died or slipped out of
// reach cancels the cast with no cost.
func (b *Battle) completeCast(c *entity.Combatant, def *gamedata.AbilityDef) error {
	targetID := c.Cast.TargetID
	target, err := b.Get(targetID)
	if err != nil {
		return err
	}
	if reason := b.lostTarget(c, def, target); reason != "" {
		b.CancelCast(c, reason)
		return nil
	}
	if !c.SpendResource(float64(def.Cost)) {
		b.CancelCast(c, "resource")
		return nil
	}
	c.Cast = nil
	c.StartCooldown(def.ID, b.Now, def.CooldownDuration())
	b.emit(Event{Kind: EventCastComplete, SourceID: c.ID, TargetID: targetID, AbilityID: def.ID})
	b.execute(c, def, target)
	return nil
}

// lostTarget returns why target can no longer receive def from c, or "".
func (b *Battle) lostTarget(c *entity.Combatant, def *gamedata.AbilityDef, target *entity.Combatant) string {
	if target == c {
		return ""
	}
	if !target.IsAlive() {
		return "target_dead"
	}
	if !CanSee(c, target) {
		return "target_lost"
	}
	if err := checkReach(b.Arena, c, def, target); err != nil {
		if errors.Is(err, ErrNoLineOfSight) {
			return "line_of_sight"
		}
		return "out_of_range"
	}
	return ""
}

// advanceChannel ticks a channel, producing one intent per tick.
func (b *Battle) advanceChannel(c *entity.Combatant, def *gamedata.AbilityDef, dt time.Duration) error {
	cast := c.Cast
	target, err := b.Get(cast.TargetID)
	if err != nil {
		return err
	}
	cast.Remaining -= dt
	cast.SinceTick += dt
	for cast.TickInterval > 0 && cast.SinceTick >= cast.TickInterval {
		cast.SinceTick -= cast.TickInterval
		if reason := b.lostTarget(c, def, target); reason != "" {
			b.CancelCast(c, reason)
			return nil
		}
		kind := IntentDamage
		if def.EffectType == gamedata.EffectHeal {
			kind = IntentHeal
		}
		b.Queue.Push(Intent{
			Kind:      kind,
			SourceID:  c.ID,
			TargetID:  target.ID,
			Team:      c.Team,
			AbilityID: def.ID,
			Batch:     b.nextBatch(),
			Origin:    OriginChannel,
		})
	}
	if cast.Remaining <= 0 {
		c.Cast = nil
		b.emit(Event{Kind: EventCastComplete, SourceID: c.ID, TargetID: target.ID, AbilityID: def.ID})
	}
	return nil
}

// AutoAttacks swings every ready weapon at its owner's current target.
// Swings are off the global cooldown and pause while casting, controlled or
// stealthed.
func (b *Battle) AutoAttacks() error {
	for _, c := range b.combatants {
		if c.AutoAttack == "" || !c.IsAlive() || c.IsCasting() || c.IsControlled() || c.IsStealthed() {
			continue
		}
		target := b.Lookup(c.TargetID)
		if target == nil || !target.IsAlive() || target.Team == c.Team || !CanSee(c, target) {
			continue
		}
		def, err := b.Ability(c.AutoAttack)
		if err != nil {
			return err
		}
		if !c.IsReady(def.ID, b.Now) || checkReach(b.Arena, c, def, target) != nil {
			continue
		}
		c.FaceToward(target.Position)
		c.StartCooldown(def.ID, b.Now, def.CooldownDuration())
		b.execute(c, def, target)
	}
	return nil
}
