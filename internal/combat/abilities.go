package combat

import (
	"errors"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// Usability errors. They reject a single use and never abort a match.
var (
	ErrCasterDead           = errors.New("caster is dead")
	ErrCasting              = errors.New("caster is already casting")
	ErrControlled           = errors.New("caster is controlled")
	ErrLockedOut            = errors.New("school is locked out")
	ErrGlobalCooldown       = errors.New("global cooldown is running")
	ErrNotReady             = errors.New("ability is on cooldown")
	ErrInsufficientResource = errors.New("not enough resource")
	ErrRequiresStealth      = errors.New("ability requires stealth")
	ErrNoComboPoints        = errors.New("no combo points")
	ErrRooted               = errors.New("caster is rooted")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrOutOfRange           = errors.New("target out of range")
	ErrTooClose             = errors.New("target too close")
	ErrNoLineOfSight        = errors.New("no line of sight")
)

// chargeGap is how far from its target a charge lands.
const chargeGap = 1.5

// CheckUsable reports whether c can use def on target at now. It reads
// state only, so decision logic can run it against snapshots.
func CheckUsable(now time.Duration, arena *world.Arena, c *entity.Combatant, def *gamedata.AbilityDef, target *entity.Combatant) error {
	switch {
	case !c.IsAlive():
		return ErrCasterDead
	case c.IsCasting():
		return ErrCasting
	case c.IsControlled() && !def.UsableWhileControlled:
		return ErrControlled
	case c.IsLockedOut(def.School, now):
		return ErrLockedOut
	case !def.OffGCD && c.OnGCD(now):
		return ErrGlobalCooldown
	case !c.IsReady(def.ID, now):
		return ErrNotReady
	case def.Cost > 0 && c.Resource < float64(def.Cost):
		return ErrInsufficientResource
	case def.RequiresStealth && !c.IsStealthed():
		return ErrRequiresStealth
	case def.ComboPoints < 0 && c.ComboPoints == 0:
		return ErrNoComboPoints
	case (def.Movement == gamedata.MoveCharge || def.Movement == gamedata.MoveDisengage) && c.IsRooted():
		return ErrRooted
	}
	if !def.NeedsTarget() {
		return nil
	}

	switch {
	case target == nil || !target.IsAlive():
		return ErrInvalidTarget
	case def.TargetType == gamedata.TargetEnemy && target.Team == c.Team:
		return ErrInvalidTarget
	case def.TargetType == gamedata.TargetAlly && target.Team != c.Team:
		return ErrInvalidTarget
	case !CanSee(c, target):
		return ErrInvalidTarget
	}
	return checkReach(arena, c, def, target)
}

// checkReach validates range, minimum range and line of sight. Movement
// abilities ignore line of sight.
func checkReach(arena *world.Arena, c *entity.Combatant, def *gamedata.AbilityDef, target *entity.Combatant) error {
	if target == c {
		return nil
	}
	d := c.DistanceTo(target)
	if d > def.Range {
		return ErrOutOfRange
	}
	if def.MinRange > 0 && d < def.MinRange {
		return ErrTooClose
	}
	if def.Movement == gamedata.MoveNone && arena != nil && !arena.HasLineOfSight(c.Position, target.Position) {
		return ErrNoLineOfSight
	}
	return nil
}

// execute applies an ability's immediate side effects and queues its
// intents. Every intent of one execution shares a batch.
func (b *Battle) execute(c *entity.Combatant, def *gamedata.AbilityDef, primary *entity.Combatant) {
	batch := b.nextBatch()

	cp := 0
	switch {
	case def.ComboPoints < 0:
		cp = c.TakeComboPoints()
	case def.ComboPoints > 0:
		c.AddComboPoints(def.ComboPoints)
	}

	if def.Cost < 0 {
		b.Queue.Push(Intent{Kind: IntentEnergize, SourceID: c.ID, TargetID: c.ID, Team: c.Team, AbilityID: def.ID, Batch: batch, Amount: float64(-def.Cost)})
	}

	b.applyMovement(c, def, primary)

	if def.ImmunityWindow > 0 {
		window := &gamedata.AuraDef{Kind: gamedata.AuraCCImmunity, Duration: def.ImmunityWindow}
		b.Queue.Push(Intent{Kind: IntentApplyAura, SourceID: c.ID, TargetID: c.ID, Team: c.Team, AbilityID: def.ID, Batch: batch, Aura: window})
	}

	for _, t := range b.targetsOf(c, def, primary) {
		base := Intent{
			SourceID:    c.ID,
			TargetID:    t.ID,
			Team:        c.Team,
			AbilityID:   def.ID,
			Batch:       batch,
			ComboPoints: cp,
		}
		if def.ProjectileSpeed > 0 && t != c {
			base.LandAt = b.Now + gamedata.Seconds(c.DistanceTo(t)/def.ProjectileSpeed)
		}

		switch def.EffectType {
		case gamedata.EffectDamage:
			b.push(base, IntentDamage, nil)
		case gamedata.EffectHeal:
			b.push(base, IntentHeal, nil)
		case gamedata.EffectInterrupt:
			b.push(base, IntentInterrupt, nil)
		case gamedata.EffectDispel:
			b.push(base, IntentDispel, nil)
		}
		if def.Aura != nil {
			b.push(base, IntentApplyAura, def.Aura)
		}
		if def.SecondaryAura != nil {
			b.push(base, IntentApplyAura, def.SecondaryAura)
		}
	}

	if def.SelfAura != nil {
		b.Queue.Push(Intent{Kind: IntentApplyAura, SourceID: c.ID, TargetID: c.ID, Team: c.Team, AbilityID: def.ID, Batch: batch, Aura: def.SelfAura})
	}
}

func (b *Battle) push(base Intent, kind IntentKind, aura *gamedata.AuraDef) {
	base.Kind = kind
	base.Aura = aura
	b.Queue.Push(base)
}

// targetsOf returns the combatants an execution affects.
func (b *Battle) targetsOf(c *entity.Combatant, def *gamedata.AbilityDef, primary *entity.Combatant) []*entity.Combatant {
	switch def.TargetType {
	case gamedata.TargetSelf:
		return []*entity.Combatant{c}
	case gamedata.TargetAllEnemies:
		return b.within(c, b.Enemies(c), def.Radius)
	case gamedata.TargetAllAllies:
		return b.within(c, b.Allies(c), def.Radius)
	}
	if def.EffectType == gamedata.EffectMovement {
		return nil
	}
	return []*entity.Combatant{primary}
}

func (b *Battle) within(c *entity.Combatant, pool []*entity.Combatant, radius float64) []*entity.Combatant {
	var out []*entity.Combatant
	for _, o := range pool {
		if o == c || c.DistanceTo(o) <= radius {
			out = append(out, o)
		}
	}
	return out
}

// applyMovement repositions the caster for charge, disengage and blink.
func (b *Battle) applyMovement(c *entity.Combatant, def *gamedata.AbilityDef, target *entity.Combatant) {
	if def.Movement == gamedata.MoveNone || target == nil {
		return
	}
	switch def.Movement {
	case gamedata.MoveCharge:
		dir := c.Position.Sub(target.Position).Normalize()
		if dir.IsZero() {
			dir = world.Vec2{X: 1}
		}
		c.Position = b.Arena.Clamp(target.Position.Add(dir.Scale(chargeGap)))
		c.FaceToward(target.Position)
	case gamedata.MoveDisengage:
		c.Position = b.Arena.MoveAway(c.Position, target.Position, def.Distance)
	case gamedata.MoveBlink:
		b.RemoveAuras(c, gamedata.AuraStun, gamedata.AuraRoot)
		c.Position = b.Arena.MoveAway(c.Position, target.Position, def.Distance)
	}
}
