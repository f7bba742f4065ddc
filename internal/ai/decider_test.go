package ai

import (
	"testing"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

var (
	testCatalog = gamedata.MustLoadAbilityRegistry()
	testClasses = gamedata.MustLoadClassRegistry()
)

func spawn(t *testing.T, class entity.Class, id, team int, x, y float64) *entity.Combatant {
	t.Helper()
	def := testClasses.GetByID(class.ID())
	if class.IsPet() {
		def = testClasses.GetPet(class.ID())
	}
	if def == nil {
		t.Fatalf("no definition for %s", class)
	}
	c := entity.NewCombatant(id, class.String(), class, def, team, 0)
	c.Position = world.Vec2{X: x, Y: y}
	return c
}

func give(c *entity.Combatant, kind gamedata.AuraKind, abilityID string) {
	c.Auras = append(c.Auras, &entity.Aura{Kind: kind, AbilityID: abilityID, Permanent: true, BreakOnDamage: -1})
}

// decide runs the first combatant's decider.
func decide(all ...*entity.Combatant) Action {
	s := NewSnapshot(time.Minute, testCatalog, world.NewArena("test", nil), all)
	return Decide(s, all[0].ID)
}

func expectCast(t *testing.T, got Action, abilityID string, targetID int) {
	t.Helper()
	if got.Kind != ActionCast || got.AbilityID != abilityID || got.TargetID != targetID {
		t.Errorf("Expected cast %s on %d, got %v", abilityID, targetID, got)
	}
}

func TestForCoversEveryClass(t *testing.T) {
	for c := entity.ClassWarrior; c <= entity.PetSpider; c++ {
		if _, ok := For(c).(idler); ok {
			t.Errorf("Expected a decider for %s, got idler", c)
		}
	}
	if _, ok := For(entity.Class(99)).(idler); !ok {
		t.Error("Expected unknown classes to idle")
	}
}

func TestDeadAndCastingIdle(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 2, 20, 0)
	w.TargetID = m.ID

	w.Cast = &entity.CastState{AbilityID: "mortal_strike", Remaining: time.Second}
	if got := decide(w, m); got.Kind != ActionIdle {
		t.Errorf("Expected casting combatant to idle, got %v", got)
	}

	w.Cast = nil
	w.TakeDamage(w.Health)
	if got := decide(w, m); got.Kind != ActionIdle {
		t.Errorf("Expected dead combatant to idle, got %v", got)
	}
}

func TestControlledCombatantOnlyCasts(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 2, 20, 0)
	w.TargetID = m.ID
	give(w, gamedata.AuraStun, "bash")

	if got := decide(w, m); got.Kind != ActionIdle {
		t.Errorf("Expected stunned warrior to idle, got %v", got)
	}

	m.TargetID = w.ID
	m.Health = m.MaxHealth * 0.2
	give(m, gamedata.AuraStun, "bash")
	expectCast(t, decide(m, w), "ice_block", m.ID)
}

func TestWarriorChargesDistantTarget(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 2, 20, 0)
	w.TargetID = m.ID

	expectCast(t, decide(w, m), "charge", m.ID)
}

func TestWarriorApproachesWithoutRage(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 2, 6, 0)
	w.TargetID = m.ID

	got := decide(w, m)
	if got.Kind != ActionMoveToward {
		t.Fatalf("Expected move toward, got %v", got)
	}
	if got.Position != m.Position || got.Range != meleeReach-reachSlack {
		t.Errorf("Expected move to %v stopping at %.1f, got %v stopping at %.1f",
			m.Position, meleeReach-reachSlack, got.Position, got.Range)
	}
}

func TestMagePolymorphsCrowdControlTarget(t *testing.T) {
	m := spawn(t, entity.ClassMage, 1, 1, 0, 0)
	w := spawn(t, entity.ClassWarrior, 2, 2, 20, 0)
	r := spawn(t, entity.ClassRogue, 3, 2, 20, 5)
	m.TargetID = w.ID
	m.CCTargetID = r.ID
	give(m, gamedata.AuraSpellPower, "arcane_intellect")

	expectCast(t, decide(m, w, r), "polymorph", r.ID)

	give(r, gamedata.AuraImmunity, "divine_shield")
	if got := decide(m, w, r); got.AbilityID == "polymorph" {
		t.Errorf("Expected no polymorph on an immune target, got %v", got)
	}
}

func TestMageBuffsTeamFirst(t *testing.T) {
	m := spawn(t, entity.ClassMage, 1, 1, 0, 0)
	w := spawn(t, entity.ClassWarrior, 2, 2, 20, 0)
	m.TargetID = w.ID

	expectCast(t, decide(m, w), "arcane_intellect", m.ID)
}

func TestRogueOpener(t *testing.T) {
	tests := []struct {
		name   string
		opener string
		want   string
	}{
		{"default", "", "cheap_shot"},
		{"none falls back", "none", "cheap_shot"},
		{"configured", "ambush", "ambush"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := spawn(t, entity.ClassRogue, 1, 1, 0, 0)
			p := spawn(t, entity.ClassPriest, 2, 2, 3, 0)
			r.TargetID = p.ID
			r.Options.Opener = tt.opener
			give(r, gamedata.AuraStealth, "stealth")

			expectCast(t, decide(r, p), tt.want, p.ID)
		})
	}
}

func TestRogueKicksCaster(t *testing.T) {
	r := spawn(t, entity.ClassRogue, 1, 1, 0, 0)
	p := spawn(t, entity.ClassPriest, 2, 2, 3, 0)
	r.TargetID = p.ID
	p.Cast = &entity.CastState{AbilityID: "greater_heal", Remaining: 2 * time.Second}

	expectCast(t, decide(r, p), "kick", p.ID)
}

func TestPriestShieldsThenHeals(t *testing.T) {
	p := spawn(t, entity.ClassPriest, 1, 1, 0, 0)
	w := spawn(t, entity.ClassWarrior, 2, 1, 10, 0)
	give(p, gamedata.AuraMaxHealth, "power_word_fortitude")
	give(w, gamedata.AuraMaxHealth, "power_word_fortitude")
	w.Health = w.MaxHealth * 0.4

	expectCast(t, decide(p, w), "power_word_shield", w.ID)

	give(w, gamedata.AuraMarker, "power_word_shield")
	expectCast(t, decide(p, w), "flash_heal", w.ID)
}

func TestPriestIdlesWhenNothingToDo(t *testing.T) {
	p := spawn(t, entity.ClassPriest, 1, 1, 0, 0)
	give(p, gamedata.AuraMaxHealth, "power_word_fortitude")

	if got := decide(p); got.Kind != ActionIdle {
		t.Errorf("Expected idle, got %v", got)
	}
}

func TestWarlockCursePerSlot(t *testing.T) {
	wl := spawn(t, entity.ClassWarlock, 1, 1, 0, 0)
	w := spawn(t, entity.ClassWarrior, 2, 2, 20, 0)
	w.Slot = 1
	wl.TargetID = w.ID

	expectCast(t, decide(wl, w), DefaultCurse, w.ID)

	wl.Options.Curses = map[int]string{1: "curse_of_tongues"}
	expectCast(t, decide(wl, w), "curse_of_tongues", w.ID)

	w.Auras = append(w.Auras, &entity.Aura{Kind: gamedata.AuraCastTimeIncrease, AbilityID: "curse_of_tongues", SourceID: wl.ID, Permanent: true, BreakOnDamage: -1})
	expectCast(t, decide(wl, w), "corruption", w.ID)
}

func TestPaladinCleansesAlly(t *testing.T) {
	pal := spawn(t, entity.ClassPaladin, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 1, 10, 0)
	give(pal, gamedata.AuraAttackPower, "blessing_of_might")
	give(m, gamedata.AuraAttackPower, "blessing_of_might")
	m.Auras = append(m.Auras, &entity.Aura{Kind: gamedata.AuraIncapacitate, AbilityID: "polymorph", Dispellable: true, Remaining: 5 * time.Second, BreakOnDamage: 0})

	expectCast(t, decide(pal, m), "cleanse", m.ID)
}

func TestHunterDisengagesFromMelee(t *testing.T) {
	h := spawn(t, entity.ClassHunter, 1, 1, 0, 0)
	w := spawn(t, entity.ClassWarrior, 2, 2, 3, 0)
	h.TargetID = w.ID

	expectCast(t, decide(h, w), "disengage", w.ID)
}

func TestHunterFlaresStealth(t *testing.T) {
	h := spawn(t, entity.ClassHunter, 1, 1, 0, 0)
	r := spawn(t, entity.ClassRogue, 2, 2, 20, 0)
	give(r, gamedata.AuraStealth, "stealth")

	expectCast(t, decide(h, r), "flare", h.ID)

	give(h, gamedata.AuraDetection, "flare")
	if got := decide(h, r); got.AbilityID == "flare" {
		t.Errorf("Expected no flare with detection up, got %v", got)
	}
}

func TestPets(t *testing.T) {
	t.Run("follows owner without target", func(t *testing.T) {
		owner := spawn(t, entity.ClassHunter, 1, 1, 0, 0)
		c := spawn(t, entity.PetCat, 2, 1, 10, 0)
		c.OwnerID = owner.ID

		got := decide(c, owner)
		if got.Kind != ActionMoveToward || got.Position != owner.Position {
			t.Errorf("Expected move toward owner, got %v", got)
		}
	})

	t.Run("cat dashes then claws", func(t *testing.T) {
		c := spawn(t, entity.PetCat, 1, 1, 0, 0)
		w := spawn(t, entity.ClassWarrior, 2, 2, 20, 0)
		c.TargetID = w.ID
		expectCast(t, decide(c, w), "dash", c.ID)

		w.Position = world.Vec2{X: 3}
		expectCast(t, decide(c, w), "claw", w.ID)
	})

	t.Run("felhunter locks a caster", func(t *testing.T) {
		f := spawn(t, entity.PetFelhunter, 1, 1, 0, 0)
		p := spawn(t, entity.ClassPriest, 2, 2, 20, 0)
		f.TargetID = p.ID
		p.Cast = &entity.CastState{AbilityID: "greater_heal", Remaining: time.Second}
		expectCast(t, decide(f, p), "spell_lock", p.ID)
	})

	t.Run("spider webs", func(t *testing.T) {
		sp := spawn(t, entity.PetSpider, 1, 1, 0, 0)
		w := spawn(t, entity.ClassWarrior, 2, 2, 15, 0)
		sp.TargetID = w.ID
		expectCast(t, decide(sp, w), "web", w.ID)
	})
}

func TestSnapshotIsolation(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	give(w, gamedata.AuraStun, "bash")
	s := NewSnapshot(0, testCatalog, nil, []*entity.Combatant{w})

	cp := s.Get(w.ID)
	cp.Health = 1
	cp.Auras[0].Remaining = time.Hour
	cp.Cooldowns["charge"] = time.Hour

	if w.Health == 1 || w.Auras[0].Remaining == time.Hour || w.Cooldowns["charge"] == time.Hour {
		t.Error("Expected snapshot changes not to reach the live combatant")
	}
}

func TestCCTargetHiddenWhenSameAsTarget(t *testing.T) {
	w := spawn(t, entity.ClassWarrior, 1, 1, 0, 0)
	m := spawn(t, entity.ClassMage, 2, 2, 20, 0)
	w.TargetID = m.ID
	w.CCTargetID = m.ID
	s := NewSnapshot(0, testCatalog, nil, []*entity.Combatant{w, m})

	if got := s.CCTarget(s.Get(w.ID)); got != nil {
		t.Errorf("Expected no crowd-control target, got %d", got.ID)
	}
}
