package combat

import (
	"errors"
	"testing"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

func TestResolveDamage(t *testing.T) {
	b, attacker, target := duel(t)

	// Strike: fixed 100, no scaling, no crit chance
	resolve(t, b, Intent{Kind: IntentDamage, SourceID: attacker.ID, TargetID: target.ID, AbilityID: "strike"})

	if target.Health != 900 {
		t.Errorf("Expected target health 900, got %v", target.Health)
	}
	dmg := eventsOf(b, EventDamage)
	if len(dmg) != 1 || dmg[0].Amount != 100 {
		t.Fatalf("Expected one damage event of 100, got %+v", dmg)
	}
	if dmg[0].SourceID != attacker.ID || dmg[0].TargetID != target.ID {
		t.Errorf("Damage event attributed to %d -> %d", dmg[0].SourceID, dmg[0].TargetID)
	}
}

func TestResolveDamageMitigation(t *testing.T) {
	b, attacker, target := duel(t)
	applyAura(t, b, target, target, "guard")    // 50% damage reduction
	applyAura(t, b, target, attacker, "feeble") // 50% outgoing penalty

	// 100 * (1 - 0.5) * (1 - 0.5) = 25
	hit(t, b, attacker, target, 100)

	if target.Health != 975 {
		t.Errorf("Expected target health 975, got %v", target.Health)
	}
}

func TestResolveDamageImmune(t *testing.T) {
	b, attacker, target := duel(t)
	applyAura(t, b, target, target, "bubble")

	hit(t, b, attacker, target, 300)

	if target.Health != 1000 {
		t.Errorf("Immune target took damage: health %v", target.Health)
	}
	if n := len(eventsOf(b, EventImmune)); n != 1 {
		t.Errorf("Expected 1 immune event, got %d", n)
	}
	if n := len(eventsOf(b, EventDamage)); n != 0 {
		t.Errorf("Expected no damage events, got %d", n)
	}
}

func TestAbsorbDepletes(t *testing.T) {
	b, attacker, target := duel(t)
	applyAura(t, b, target, target, "barrier") // 150 shield

	hit(t, b, attacker, target, 100)
	if target.Health != 1000 {
		t.Errorf("Expected shield to absorb the first hit, health %v", target.Health)
	}
	shield := target.FindAura(gamedata.AuraAbsorb)
	if shield == nil || shield.Magnitude != 50 {
		t.Fatalf("Expected 50 shield remaining, got %+v", shield)
	}

	hit(t, b, attacker, target, 100)
	if target.Health != 950 {
		t.Errorf("Expected health 950 after shield breaks, got %v", target.Health)
	}
	if target.HasAura(gamedata.AuraAbsorb) {
		t.Error("Depleted shield should be removed")
	}

	dmg := eventsOf(b, EventDamage)
	if dmg[0].Absorbed != 100 || dmg[1].Absorbed != 50 || dmg[1].Amount != 50 {
		t.Errorf("Unexpected absorb accounting: %+v", dmg)
	}
	removed := eventsOf(b, EventAuraRemoved)
	if len(removed) != 1 || removed[0].Note != "depleted" {
		t.Errorf("Expected one depleted removal, got %+v", removed)
	}
}

func TestShieldsFromDifferentSourcesCoexist(t *testing.T) {
	b, attacker, target := duel(t)
	ally := addFighter(t, b, 3, 2, target.Position)
	applyAura(t, b, target, target, "barrier")
	applyAura(t, b, ally, target, "barrier")

	if n := len(target.AurasOf(gamedata.AuraAbsorb)); n != 2 {
		t.Fatalf("Expected 2 shields, got %d", n)
	}

	hit(t, b, attacker, target, 200)
	if target.Health != 1000 {
		t.Errorf("Expected 300 total shield to absorb 200, health %v", target.Health)
	}
	if n := len(target.AurasOf(gamedata.AuraAbsorb)); n != 1 {
		t.Errorf("Expected the first shield depleted and the second kept, got %d", n)
	}
}

func TestDeadTargetIgnoresIntents(t *testing.T) {
	b, attacker, target := duel(t)

	hit(t, b, attacker, target, 5000)
	if target.IsAlive() {
		t.Fatal("Target should be dead")
	}
	if target.DiedAt != b.Now {
		t.Errorf("Expected death time %v, got %v", b.Now, target.DiedAt)
	}
	before := b.Log.Len()

	hit(t, b, attacker, target, 100)
	resolve(t, b, Intent{Kind: IntentHeal, SourceID: attacker.ID, TargetID: target.ID, AbilityID: "mend"})
	applyAura(t, b, attacker, target, "rot")

	if b.Log.Len() != before {
		t.Errorf("Expected no events against a dead target, got %d new", b.Log.Len()-before)
	}
	if target.Health != 0 || target.IsAlive() {
		t.Errorf("Dead target changed: health %v alive %v", target.Health, target.IsAlive())
	}
}

func TestKillingBlowOnce(t *testing.T) {
	b, attacker, target := duel(t)
	target.TakeDamage(950)

	batch := b.nextBatch()
	err := b.Resolver().ResolveAll([]Intent{
		{Kind: IntentDamage, SourceID: attacker.ID, TargetID: target.ID, AbilityID: "strike", Batch: batch},
		{Kind: IntentDamage, SourceID: attacker.ID, TargetID: target.ID, AbilityID: "strike", Batch: batch},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(eventsOf(b, EventDeath)); n != 1 {
		t.Errorf("Expected exactly 1 death event, got %d", n)
	}
	if n := len(eventsOf(b, EventDamage)); n != 1 {
		t.Errorf("Expected the second hit to be discarded, got %d damage events", n)
	}
}

func TestResolveHealReductionAndClamp(t *testing.T) {
	b, attacker, target := duel(t)
	attacker.TakeDamage(600)
	applyAura(t, b, target, attacker, "weaken")

	// 300 * (1 - 0.5) = 150
	resolve(t, b, Intent{Kind: IntentHeal, SourceID: attacker.ID, TargetID: attacker.ID, AbilityID: "mend"})
	if attacker.Health != 550 {
		t.Errorf("Expected health 550, got %v", attacker.Health)
	}

	resolve(t, b, Intent{Kind: IntentHeal, SourceID: attacker.ID, TargetID: attacker.ID, AbilityID: "mend", Amount: 5000})
	if attacker.Health != attacker.MaxHealth {
		t.Errorf("Expected heal clamped to %v, got %v", attacker.MaxHealth, attacker.Health)
	}
}

func TestInterruptLocksSchool(t *testing.T) {
	b, kicker, caster := duel(t)

	if err := b.Use(caster, "bolt", kicker.ID); err != nil {
		t.Fatalf("Use(bolt) failed: %v", err)
	}
	if err := b.Use(kicker, "kick", caster.ID); err != nil {
		t.Fatalf("Use(kick) failed: %v", err)
	}
	flush(t, b)

	if caster.IsCasting() {
		t.Error("Cast should be interrupted")
	}
	if !caster.IsLockedOut(gamedata.SchoolFire, b.Now) {
		t.Error("Fire school should be locked out")
	}
	if caster.IsLockedOut(gamedata.SchoolFire, b.Now+gamedata.Seconds(4)) {
		t.Error("Lockout should end after 4 seconds")
	}
	if err := b.CheckUsable(caster, "bolt", kicker.ID); !errors.Is(err, ErrLockedOut) {
		t.Errorf("Expected ErrLockedOut, got %v", err)
	}
	ev := eventsOf(b, EventInterrupt)
	if len(ev) != 1 || ev[0].Note != "bolt" {
		t.Errorf("Expected interrupt event naming bolt, got %+v", ev)
	}
	if caster.Resource != 1000 {
		t.Errorf("Interrupted cast should cost nothing, resource %v", caster.Resource)
	}
}

func TestDispelPrefersCrowdControl(t *testing.T) {
	b, friend, enemy := duel(t)
	healer := addFighter(t, b, 3, 1, friend.Position)
	applyAura(t, b, enemy, friend, "rot")
	applyAura(t, b, enemy, friend, "sheep")

	resolve(t, b, Intent{Kind: IntentDispel, SourceID: healer.ID, TargetID: friend.ID, AbilityID: "cleanse"})

	if friend.HasAura(gamedata.AuraIncapacitate) {
		t.Error("Expected crowd control to be dispelled first")
	}
	if !friend.HasAura(gamedata.AuraDamageOverTime) {
		t.Error("Expected the damage over time to remain")
	}
	ev := eventsOf(b, EventDispel)
	if len(ev) != 1 || ev[0].Aura != gamedata.AuraIncapacitate || ev[0].Note != "sheep" {
		t.Errorf("Unexpected dispel events: %+v", ev)
	}
}

func TestEnemyDispelRemovesBuff(t *testing.T) {
	b, friend, enemy := duel(t)
	applyAura(t, b, enemy, enemy, "barrier")
	applyAura(t, b, friend, enemy, "rot")

	resolve(t, b, Intent{Kind: IntentDispel, SourceID: friend.ID, TargetID: enemy.ID, AbilityID: "cleanse"})

	if enemy.HasAura(gamedata.AuraAbsorb) {
		t.Error("Expected enemy shield to be removed")
	}
	if !enemy.HasAura(gamedata.AuraDamageOverTime) {
		t.Error("Enemy dispel must not remove hostile auras")
	}
}

func TestResolveUnknownCombatant(t *testing.T) {
	b, attacker, _ := duel(t)
	err := b.Resolver().Resolve(Intent{Kind: IntentDamage, SourceID: attacker.ID, TargetID: 99, AbilityID: "strike"})
	if !errors.Is(err, ErrConsistency) {
		t.Errorf("Expected ErrConsistency, got %v", err)
	}
	err = b.Resolver().Resolve(Intent{Kind: IntentDamage, SourceID: attacker.ID, TargetID: attacker.ID, AbilityID: "nope"})
	if !errors.Is(err, ErrConsistency) {
		t.Errorf("Expected ErrConsistency for unknown ability, got %v", err)
	}
}
