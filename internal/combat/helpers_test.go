package combat

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

const testStep = 100 * time.Millisecond

// testAbilities is a small catalog with fixed rolls so results are exact.
func testAbilities() []gamedata.AbilityDef {
	anyDamage := 0.0
	return []gamedata.AbilityDef{
		{ID: "strike", Name: "Strike", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetEnemy, Range: 5, BaseMin: 100, BaseMax: 100},
		{ID: "bolt", Name: "Bolt", School: gamedata.SchoolFire, EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetEnemy, Range: 30, CastTime: 2.5, Cost: 50, BaseMin: 200, BaseMax: 200},
		{ID: "arrow", Name: "Arrow", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetEnemy, Range: 30, ProjectileSpeed: 10, BaseMin: 80, BaseMax: 80},
		{ID: "mend", Name: "Mend", School: gamedata.SchoolHoly, EffectType: gamedata.EffectHeal, TargetType: gamedata.TargetAlly, Range: 40, BaseMin: 300, BaseMax: 300},
		{ID: "bash", Name: "Bash", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 5,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraStun, Duration: 4}},
		{ID: "snare", Name: "Snare", School: gamedata.SchoolFrost, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 30,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraRoot, Duration: 8}},
		{ID: "sheep", Name: "Sheep", School: gamedata.SchoolArcane, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 30,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraIncapacitate, Duration: 8, BreakOnDamage: &anyDamage, Dispellable: true}},
		{ID: "kick", Name: "Kick", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectInterrupt, TargetType: gamedata.TargetEnemy, Range: 5, Lockout: 4, Cooldown: 10, OffGCD: true},
		{ID: "ward", Name: "Ward", School: gamedata.SchoolHoly, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetAllAllies, Range: 40, Radius: 40, TeamBuff: true,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraAttackPower, Duration: 60, Magnitude: 100}},
		{ID: "barrier", Name: "Barrier", School: gamedata.SchoolHoly, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetAlly, Range: 40,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraAbsorb, Duration: 30, Magnitude: 150, Dispellable: true}},
		{ID: "bubble", Name: "Bubble", School: gamedata.SchoolHoly, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetSelf, OffGCD: true, UsableWhileControlled: true,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraImmunity, Duration: 10}},
		{ID: "rot", Name: "Rot", School: gamedata.SchoolShadow, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 30,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraDamageOverTime, Duration: 9, TickInterval: 3, Magnitude: 50, Dispellable: true}},
		{ID: "drain", Name: "Drain", School: gamedata.SchoolShadow, EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetEnemy, Range: 30,
			CastTime: 3, Channel: true, TickInterval: 1, Cost: 100, BaseMin: 40, BaseMax: 40, Leech: 1},
		{ID: "cleanse", Name: "Cleanse", School: gamedata.SchoolHoly, EffectType: gamedata.EffectDispel, TargetType: gamedata.TargetAlly, Range: 40},
		{ID: "fortify", Name: "Fortify", School: gamedata.SchoolHoly, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetAlly, Range: 40,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraMaxHealth, Duration: 1, Magnitude: 500}},
		{ID: "weaken", Name: "Weaken", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 30,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraHealingReduction, Duration: 10, Magnitude: 0.5}},
		{ID: "guard", Name: "Guard", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetSelf, OffGCD: true,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraDamageReduction, Duration: 10, Magnitude: 0.5}},
		{ID: "feeble", Name: "Feeble", School: gamedata.SchoolShadow, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 30,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraDamageDealtReduction, Duration: 10, Magnitude: 0.5}},
		{ID: "vanish", Name: "Vanish", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetSelf, OffGCD: true,
			Aura: &gamedata.AuraDef{Kind: gamedata.AuraStealth, BreakOnDamage: &anyDamage}},
		{ID: "leap", Name: "Leap", School: gamedata.SchoolPhysical, EffectType: gamedata.EffectAura, TargetType: gamedata.TargetEnemy, Range: 25, MinRange: 8,
			Cost: -15, Movement: gamedata.MoveCharge, ImmunityWindow: 1, Aura: &gamedata.AuraDef{Kind: gamedata.AuraStun, Duration: 1.5}},
	}
}

var testClass = gamedata.ClassDef{
	ID:            "tester",
	Name:          "Tester",
	Role:          gamedata.RoleMelee,
	Resource:      gamedata.ResourceMana,
	Health:        1000,
	ResourceMax:   1000,
	ResourceStart: 1000,
	MoveSpeed:     7,
}

func newTestBattle() *Battle {
	catalog := gamedata.NewAbilityRegistry(testAbilities())
	return NewBattle(catalog, world.NewArena("test", nil), rand.New(rand.NewSource(1)), nil)
}

func addFighter(t *testing.T, b *Battle, id, team int, pos world.Vec2) *entity.Combatant {
	t.Helper()
	def := testClass
	c := entity.NewCombatant(id, fmt.Sprintf("fighter-%d", id), entity.ClassWarrior, &def, team, 0)
	c.Position = pos
	if err := b.Add(c); err != nil {
		t.Fatalf("Add(%d) failed: %v", id, err)
	}
	return c
}

// duel returns a battle with one fighter per team three yards apart.
func duel(t *testing.T) (*Battle, *entity.Combatant, *entity.Combatant) {
	t.Helper()
	b := newTestBattle()
	a := addFighter(t, b, 1, 1, world.Vec2{X: 0, Y: 0})
	e := addFighter(t, b, 2, 2, world.Vec2{X: 3, Y: 0})
	return b, a, e
}

func resolve(t *testing.T, b *Battle, in Intent) {
	t.Helper()
	if in.Batch == 0 {
		in.Batch = b.nextBatch()
	}
	if err := b.Resolver().Resolve(in); err != nil {
		t.Fatalf("Resolve(%v %s) failed: %v", in.Kind, in.AbilityID, err)
	}
}

func applyAura(t *testing.T, b *Battle, source, target *entity.Combatant, abilityID string) {
	t.Helper()
	def, err := b.Ability(abilityID)
	if err != nil {
		t.Fatal(err)
	}
	resolve(t, b, Intent{Kind: IntentApplyAura, SourceID: source.ID, TargetID: target.ID, Team: source.Team, AbilityID: abilityID, Aura: def.Aura})
}

func hit(t *testing.T, b *Battle, source, target *entity.Combatant, amount float64) {
	t.Helper()
	resolve(t, b, Intent{Kind: IntentDamage, SourceID: source.ID, TargetID: target.ID, Team: source.Team, AbilityID: "strike", Amount: amount})
}

// runSteps drives the engine phases without decision making.
func runSteps(t *testing.T, b *Battle, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		b.Advance(testStep)
		if err := b.ProcessAuras(testStep); err != nil {
			t.Fatalf("ProcessAuras failed: %v", err)
		}
		if err := b.AdvanceCasts(testStep); err != nil {
			t.Fatalf("AdvanceCasts failed: %v", err)
		}
		if err := b.Resolver().ResolveAll(b.Queue.Due(b.Now)); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}
	}
}

func flush(t *testing.T, b *Battle) {
	t.Helper()
	if err := b.Resolver().ResolveAll(b.Queue.Due(b.Now)); err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
}

func eventsOf(b *Battle, kind EventKind) []Event {
	var out []Event
	for _, e := range b.Log.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
