package entity

import (
	"math"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// NoTarget is the ID used when a combatant has no target.
const NoTarget = 0

// MaxComboPoints caps the rogue combo point pool.
const MaxComboPoints = 5

// Options holds per-combatant sub-configuration.
type Options struct {
	Opener string         // rogue: ability used from stealth, "none" skips stealth
	Curses map[int]string // warlock: curse ability per enemy roster slot
}

// Combatant is the mutable record of one participant in a match.
// Records are owned by the battle table and never removed; a dead combatant
// stays as a terminal record.
type Combatant struct {
	ID      int
	Name    string
	Team    int // 1 or 2
	Slot    int // roster slot; pets share their owner's slot
	Class   Class
	OwnerID int // pets only
	Role    gamedata.Role

	Health, MaxHealth float64

	Resource, MaxResource float64
	ResourceKind          gamedata.ResourceKind
	ResourceRegen         float64 // per second

	MoveSpeed   float64
	AttackPower float64
	SpellPower  float64
	CritChance  float64

	AutoAttack string
	Abilities  []string
	Options    Options

	Position world.Vec2
	Facing   world.Vec2

	TargetID   int
	CCTargetID int

	ComboPoints int

	Cooldowns map[string]time.Duration          // ability ID -> ready at
	Lockouts  map[gamedata.School]time.Duration // school -> locked until
	GCDReady  time.Duration

	Auras []*Aura
	DR    *DRTracker
	Cast  *CastState

	alive  bool
	DiedAt time.Duration
}

// NewCombatant creates a combatant from a class or pet definition.
func NewCombatant(id int, name string, class Class, def *gamedata.ClassDef, team, slot int) *Combatant {
	c := &Combatant{
		ID:        id,
		Name:      name,
		Team:      team,
		Slot:      slot,
		Class:     class,
		Cooldowns: make(map[string]time.Duration),
		Lockouts:  make(map[gamedata.School]time.Duration),
		DR:        NewDRTracker(),
		alive:     true,
	}
	c.InitFromClassDef(def)
	return c
}

// InitFromClassDef initializes combatant stats from a class definition.
func (c *Combatant) InitFromClassDef(def *gamedata.ClassDef) {
	if def == nil {
		return
	}
	c.Role = def.Role
	c.Health = float64(def.Health)
	c.MaxHealth = float64(def.Health)
	c.ResourceKind = def.Resource
	c.Resource = float64(def.ResourceStart)
	c.MaxResource = float64(def.ResourceMax)
	c.ResourceRegen = def.ResourceRegen
	c.MoveSpeed = def.MoveSpeed
	c.AttackPower = def.AttackPower
	c.SpellPower = def.SpellPower
	c.CritChance = def.CritChance
	c.AutoAttack = def.AutoAttack
	c.Abilities = make([]string, len(def.Abilities))
	copy(c.Abilities, def.Abilities)
}

// =============================================================================
// Liveness and vitals
// =============================================================================

// IsAlive returns false once the combatant has died. It never flips back.
func (c *Combatant) IsAlive() bool { return c.alive }

// IsPet reports whether the combatant is a pet.
func (c *Combatant) IsPet() bool { return c.Class.IsPet() }

// IsHealer reports whether the combatant plays the healer role.
func (c *Combatant) IsHealer() bool { return c.Role == gamedata.RoleHealer }

// HealthFraction returns current health over max health.
func (c *Combatant) HealthFraction() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return c.Health / c.MaxHealth
}

// TakeDamage reduces health and returns the damage actually taken. killed is
// true only for the hit that sets the death flag. Dying clears the cast and
// every aura.
func (c *Combatant) TakeDamage(amount float64) (actual float64, killed bool) {
	if !c.alive || amount <= 0 {
		return 0, false
	}
	actual = math.Min(amount, c.Health)
	c.Health -= actual
	if c.Health <= 0 {
		c.Health = 0
		c.alive = false
		c.Cast = nil
		c.Auras = nil
		return actual, true
	}
	return actual, false
}

// Heal restores health and returns the amount actually healed. Dead
// combatants cannot be healed.
func (c *Combatant) Heal(amount float64) float64 {
	if !c.alive || amount <= 0 {
		return 0
	}
	actual := math.Min(amount, c.MaxHealth-c.Health)
	c.Health += actual
	return actual
}

// AdjustMaxHealth raises or lowers max health, moving current health by the
// same amount and keeping it within bounds.
func (c *Combatant) AdjustMaxHealth(delta float64) {
	if !c.alive {
		return
	}
	c.MaxHealth += delta
	if c.MaxHealth < 1 {
		c.MaxHealth = 1
	}
	c.Health = math.Max(1, math.Min(c.Health+delta, c.MaxHealth))
}

// =============================================================================
// Resources
// =============================================================================

// SpendResource reduces the resource and returns false if insufficient.
func (c *Combatant) SpendResource(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if c.Resource < amount {
		return false
	}
	c.Resource -= amount
	return true
}

// GainResource restores resource and returns the amount actually gained.
func (c *Combatant) GainResource(amount float64) float64 {
	if !c.alive || amount <= 0 {
		return 0
	}
	actual := math.Min(amount, c.MaxResource-c.Resource)
	c.Resource += actual
	return actual
}

// Regenerate applies passive resource regeneration for dt.
func (c *Combatant) Regenerate(dt time.Duration) {
	c.GainResource(c.ResourceRegen * dt.Seconds())
}

// AddComboPoints adds n combo points up to MaxComboPoints.
func (c *Combatant) AddComboPoints(n int) {
	c.ComboPoints = min(MaxComboPoints, c.ComboPoints+n)
}

// TakeComboPoints consumes and returns every combo point.
func (c *Combatant) TakeComboPoints() int {
	n := c.ComboPoints
	c.ComboPoints = 0
	return n
}

// =============================================================================
// Cooldowns and lockouts
// =============================================================================

// IsReady reports whether the ability is off cooldown at now.
func (c *Combatant) IsReady(abilityID string, now time.Duration) bool {
	return c.Cooldowns[abilityID] <= now
}

// CooldownRemaining returns how long until the ability is ready.
func (c *Combatant) CooldownRemaining(abilityID string, now time.Duration) time.Duration {
	if left := c.Cooldowns[abilityID] - now; left > 0 {
		return left
	}
	return 0
}

// StartCooldown puts the ability on cooldown for d starting at now.
func (c *Combatant) StartCooldown(abilityID string, now, d time.Duration) {
	if d <= 0 {
		return
	}
	c.Cooldowns[abilityID] = now + d
}

// OnGCD reports whether the global cooldown is running at now.
func (c *Combatant) OnGCD(now time.Duration) bool {
	return c.GCDReady > now
}

// TriggerGCD starts the global cooldown at now.
func (c *Combatant) TriggerGCD(now, gcd time.Duration) {
	c.GCDReady = now + gcd
}

// IsLockedOut reports whether the school is locked at now.
func (c *Combatant) IsLockedOut(school gamedata.School, now time.Duration) bool {
	return c.Lockouts[school] > now
}

// LockOut locks the school until the given time.
func (c *Combatant) LockOut(school gamedata.School, until time.Duration) {
	if until > c.Lockouts[school] {
		c.Lockouts[school] = until
	}
}

// IsCasting reports whether a cast or channel is in progress.
func (c *Combatant) IsCasting() bool {
	return c.Cast != nil
}

// =============================================================================
// Aura queries
// =============================================================================

// HasAura reports whether any aura of the kind is active.
func (c *Combatant) HasAura(kind gamedata.AuraKind) bool {
	return c.FindAura(kind) != nil
}

// FindAura returns the first aura of the kind, or nil.
func (c *Combatant) FindAura(kind gamedata.AuraKind) *Aura {
	for _, a := range c.Auras {
		if a.Kind == kind {
			return a
		}
	}
	return nil
}

// FindAuraFrom returns the aura applied by sourceID with abilityID, or nil.
// A sourceID of NoTarget matches any source.
func (c *Combatant) FindAuraFrom(abilityID string, sourceID int) *Aura {
	for _, a := range c.Auras {
		if a.AbilityID == abilityID && (sourceID == NoTarget || a.SourceID == sourceID) {
			return a
		}
	}
	return nil
}

// AurasOf returns every aura of the kind in application order.
func (c *Combatant) AurasOf(kind gamedata.AuraKind) []*Aura {
	var out []*Aura
	for _, a := range c.Auras {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// AddAura appends an aura. Dead combatants reject new auras.
func (c *Combatant) AddAura(a *Aura) bool {
	if !c.alive {
		return false
	}
	c.Auras = append(c.Auras, a)
	return true
}

// RemoveAura removes the given aura and reports whether it was present.
func (c *Combatant) RemoveAura(target *Aura) bool {
	for i, a := range c.Auras {
		if a == target {
			c.Auras = append(c.Auras[:i], c.Auras[i+1:]...)
			return true
		}
	}
	return false
}

// IsControlled reports whether a stun, fear or incapacitate is active.
func (c *Combatant) IsControlled() bool {
	for _, a := range c.Auras {
		if a.Kind.IsHardCC() {
			return true
		}
	}
	return false
}

// HasCrowdControl reports whether any crowd-control aura is active.
func (c *Combatant) HasCrowdControl() bool {
	for _, a := range c.Auras {
		if a.Kind.IsCrowdControl() {
			return true
		}
	}
	return false
}

// IsRooted reports whether the combatant cannot move.
func (c *Combatant) IsRooted() bool {
	return c.HasAura(gamedata.AuraRoot) || c.IsControlled()
}

// IsImmune reports whether a damage-immunity aura is active.
func (c *Combatant) IsImmune() bool {
	return c.HasAura(gamedata.AuraImmunity)
}

// IsStealthed reports whether a stealth aura is active.
func (c *Combatant) IsStealthed() bool {
	return c.HasAura(gamedata.AuraStealth)
}

// HasDetection reports whether the combatant can see stealthed enemies.
func (c *Combatant) HasDetection() bool {
	return c.HasAura(gamedata.AuraDetection)
}

// HasDispellable reports whether an aura matching hostile is dispellable.
func (c *Combatant) HasDispellable(hostile bool) bool {
	for _, a := range c.Auras {
		if a.Dispellable && a.IsHostile() == hostile {
			return true
		}
	}
	return false
}

// sumAuras adds up the magnitude of every aura of the kind.
func (c *Combatant) sumAuras(kind gamedata.AuraKind) float64 {
	total := 0.0
	for _, a := range c.Auras {
		if a.Kind == kind {
			total += a.Magnitude
		}
	}
	return total
}

// maxAura returns the largest magnitude of the kind.
func (c *Combatant) maxAura(kind gamedata.AuraKind) float64 {
	best := 0.0
	for _, a := range c.Auras {
		if a.Kind == kind && a.Magnitude > best {
			best = a.Magnitude
		}
	}
	return best
}

// stackedReduction combines percentage reductions multiplicatively.
func (c *Combatant) stackedReduction(kind gamedata.AuraKind) float64 {
	remaining := 1.0
	for _, a := range c.Auras {
		if a.Kind == kind {
			remaining *= 1 - math.Min(1, math.Max(0, a.Magnitude))
		}
	}
	return 1 - remaining
}

// =============================================================================
// Effective stats
// =============================================================================

// EffectiveAttackPower returns attack power including buffs.
func (c *Combatant) EffectiveAttackPower() float64 {
	return c.AttackPower + c.sumAuras(gamedata.AuraAttackPower)
}

// EffectiveSpellPower returns spell power including buffs.
func (c *Combatant) EffectiveSpellPower() float64 {
	return c.SpellPower + c.sumAuras(gamedata.AuraSpellPower)
}

// Stat returns the effective value of a scaling stat.
func (c *Combatant) Stat(stat gamedata.ScalingStat) float64 {
	switch stat {
	case gamedata.ScaleAttackPower:
		return c.EffectiveAttackPower()
	case gamedata.ScaleSpellPower:
		return c.EffectiveSpellPower()
	default:
		return math.Max(c.EffectiveAttackPower(), c.EffectiveSpellPower())
	}
}

// DamageReduction returns the fraction of incoming damage prevented.
func (c *Combatant) DamageReduction() float64 {
	return c.stackedReduction(gamedata.AuraDamageReduction)
}

// DamageDealtPenalty returns the fraction removed from outgoing damage.
func (c *Combatant) DamageDealtPenalty() float64 {
	return c.stackedReduction(gamedata.AuraDamageDealtReduction)
}

// HealingReduction returns the fraction removed from incoming healing.
func (c *Combatant) HealingReduction() float64 {
	return math.Min(1, c.maxAura(gamedata.AuraHealingReduction))
}

// CastTimeMultiplier returns the factor applied to cast times.
func (c *Combatant) CastTimeMultiplier() float64 {
	return 1 + c.maxAura(gamedata.AuraCastTimeIncrease)
}

// Speed returns the current movement speed in yards per second.
func (c *Combatant) Speed() float64 {
	if c.IsRooted() {
		return 0
	}
	speed := c.MoveSpeed * (1 + c.maxAura(gamedata.AuraSpeed))
	return speed * (1 - math.Min(0.9, c.maxAura(gamedata.AuraSlow)))
}

// DistanceTo returns the distance to another combatant.
func (c *Combatant) DistanceTo(o *Combatant) float64 {
	return c.Position.Dist(o.Position)
}

// FaceToward turns the combatant toward p.
func (c *Combatant) FaceToward(p world.Vec2) {
	if dir := p.Sub(c.Position).Normalize(); !dir.IsZero() {
		c.Facing = dir
	}
}

// =============================================================================
// Copying
// =============================================================================

// Clone returns a deep copy that shares no mutable state with c.
func (c *Combatant) Clone() *Combatant {
	cp := *c
	cp.Abilities = append([]string(nil), c.Abilities...)
	if c.Options.Curses != nil {
		cp.Options.Curses = make(map[int]string, len(c.Options.Curses))
		for k, v := range c.Options.Curses {
			cp.Options.Curses[k] = v
		}
	}
	cp.Cooldowns = make(map[string]time.Duration, len(c.Cooldowns))
	for k, v := range c.Cooldowns {
		cp.Cooldowns[k] = v
	}
	cp.Lockouts = make(map[gamedata.School]time.Duration, len(c.Lockouts))
	for k, v := range c.Lockouts {
		cp.Lockouts[k] = v
	}
	cp.Auras = make([]*Aura, len(c.Auras))
	for i, a := range c.Auras {
		ac := *a
		cp.Auras[i] = &ac
	}
	if c.DR != nil {
		cp.DR = c.DR.Clone()
	}
	if c.Cast != nil {
		cs := *c.Cast
		cp.Cast = &cs
	}
	return &cp
}
