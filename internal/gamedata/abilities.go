package gamedata

import "time"

// =============================================================================
// ABILITY CATALOG
// =============================================================================
//
// Overview:
// ---------
// Abilities are data-driven and read-only for the whole match. The engine
// never mutates an AbilityDef; every combatant holds ability IDs and looks the
// definition up through a Catalog.
//
// 1. EffectType - What the ability does on landing:
//    - damage:    Reduces target health (optionally applies Aura)
//    - heal:      Restores target health (optionally applies Aura)
//    - aura:      Applies Aura only (buffs, debuffs, crowd control)
//    - interrupt: Cancels the target's cast and locks out its school
//    - dispel:    Removes one dispellable aura
//    - movement:  Repositions the caster (disengage, blink)
//
// 2. TargetType - Who the ability affects:
//    - self, enemy, ally, all_enemies (within Radius of caster), all_allies
//
// 3. Scaling:
//    value = roll(baseMin..baseMax) + stat * coefficient
//    where stat is attack_power or spell_power.
//
// 4. Aura descriptor (aura, secondaryAura on the target; selfAura on the caster):
//    {"kind": "stun", "duration": 4, "magnitude": 0, "breakOnDamage": 0}
//    breakOnDamage: omitted = never breaks, 0 = any damage, N = after N damage.
//
// All times in JSON are seconds; ranges and speeds are yards and yards/second.

// School is the spell school used for interrupt lockouts.
type School string

const (
	SchoolPhysical School = "physical"
	SchoolArcane   School = "arcane"
	SchoolFire     School = "fire"
	SchoolFrost    School = "frost"
	SchoolHoly     School = "holy"
	SchoolNature   School = "nature"
	SchoolShadow   School = "shadow"
)

// EffectType represents what an ability does.
type EffectType string

const (
	EffectDamage    EffectType = "damage"
	EffectHeal      EffectType = "heal"
	EffectAura      EffectType = "aura"
	EffectInterrupt EffectType = "interrupt"
	EffectDispel    EffectType = "dispel"
	EffectMovement  EffectType = "movement"
)

// TargetType represents who an ability can target.
type TargetType string

const (
	TargetSelf       TargetType = "self"
	TargetEnemy      TargetType = "enemy"
	TargetAlly       TargetType = "ally"
	TargetAllEnemies TargetType = "all_enemies"
	TargetAllAllies  TargetType = "all_allies"
)

// ScalingStat selects the combatant stat an ability scales with.
type ScalingStat string

const (
	ScaleNone        ScalingStat = ""
	ScaleAttackPower ScalingStat = "attack_power"
	ScaleSpellPower  ScalingStat = "spell_power"
)

// MovementType describes a repositioning side effect of an ability.
type MovementType string

const (
	MoveNone      MovementType = ""
	MoveCharge    MovementType = "charge"    // leap next to the target
	MoveDisengage MovementType = "disengage" // leap away from the target
	MoveBlink     MovementType = "blink"     // teleport away from the target
)

// AuraDef describes the aura an ability applies.
type AuraDef struct {
	Kind          AuraKind `json:"kind"`
	Duration      float64  `json:"duration"`
	Magnitude     float64  `json:"magnitude,omitempty"`
	Coefficient   float64  `json:"coefficient,omitempty"`
	TickInterval  float64  `json:"tickInterval,omitempty"`
	BreakOnDamage *float64 `json:"breakOnDamage,omitempty"`
	Dispellable   bool     `json:"dispellable,omitempty"`
}

// BreakThreshold returns the break-on-damage threshold, negative when the
// aura never breaks from damage.
func (a *AuraDef) BreakThreshold() float64 {
	if a == nil || a.BreakOnDamage == nil {
		return -1
	}
	return *a.BreakOnDamage
}

// DurationValue returns the aura duration as a time.Duration.
func (a *AuraDef) DurationValue() time.Duration {
	return Seconds(a.Duration)
}

// TickValue returns the periodic tick interval as a time.Duration.
func (a *AuraDef) TickValue() time.Duration {
	return Seconds(a.TickInterval)
}

// AbilityDef defines an ability loaded from JSON.
type AbilityDef struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	School      School     `json:"school"`
	EffectType  EffectType `json:"effectType"`
	TargetType  TargetType `json:"targetType"`

	CastTime     float64 `json:"castTime,omitempty"`
	Channel      bool    `json:"channel,omitempty"`
	TickInterval float64 `json:"tickInterval,omitempty"` // channel tick spacing
	Cost         int     `json:"cost,omitempty"`
	Range        float64 `json:"range"`
	MinRange     float64 `json:"minRange,omitempty"`
	Radius       float64 `json:"radius,omitempty"`
	Cooldown     float64 `json:"cooldown,omitempty"`
	OffGCD       bool    `json:"offGcd,omitempty"`
	AutoAttack   bool    `json:"autoAttack,omitempty"` // swing timer; Cooldown is the swing speed

	BaseMin       float64     `json:"baseMin,omitempty"`
	BaseMax       float64     `json:"baseMax,omitempty"`
	Coefficient   float64     `json:"coefficient,omitempty"`
	ScalingStat   ScalingStat `json:"scalingStat,omitempty"`
	ComboPoints   int         `json:"comboPoints,omitempty"` // >0 builds, <0 consumes all
	PerComboPoint float64     `json:"perComboPoint,omitempty"`
	Leech         float64     `json:"leech,omitempty"`

	Lockout         float64      `json:"lockout,omitempty"`
	ProjectileSpeed float64      `json:"projectileSpeed,omitempty"`
	Movement        MovementType `json:"movement,omitempty"`
	Distance        float64      `json:"distance,omitempty"`
	ImmunityWindow  float64      `json:"immunityWindow,omitempty"`

	UsableWhileControlled bool `json:"usableWhileControlled,omitempty"`
	RequiresStealth       bool `json:"requiresStealth,omitempty"`
	TeamBuff              bool `json:"teamBuff,omitempty"`

	Aura          *AuraDef `json:"aura,omitempty"`          // applied to each target
	SecondaryAura *AuraDef `json:"secondaryAura,omitempty"` // second aura on the same target
	SelfAura      *AuraDef `json:"selfAura,omitempty"`      // applied to the caster
}

// IsInstant reports whether the ability resolves without a cast bar.
func (a *AbilityDef) IsInstant() bool {
	return a.CastTime <= 0
}

// CastDuration returns the base cast (or channel) time.
func (a *AbilityDef) CastDuration() time.Duration {
	return Seconds(a.CastTime)
}

// CooldownDuration returns the cooldown.
func (a *AbilityDef) CooldownDuration() time.Duration {
	return Seconds(a.Cooldown)
}

// NeedsTarget returns true if the ability is aimed at a single unit.
func (a *AbilityDef) NeedsTarget() bool {
	return a.TargetType == TargetEnemy || a.TargetType == TargetAlly
}

// IsOffensive returns true if the ability targets enemies.
func (a *AbilityDef) IsOffensive() bool {
	return a.TargetType == TargetEnemy || a.TargetType == TargetAllEnemies
}

// AppliesCrowdControl reports whether the ability's aura is a crowd-control effect.
func (a *AbilityDef) AppliesCrowdControl() bool {
	return a.Aura != nil && a.Aura.Kind.IsCrowdControl()
}

// Seconds converts catalog seconds into a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities"`
}

// LoadAbilities loads ability definitions from the embedded abilities.json file.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	return file.Abilities, nil
}
