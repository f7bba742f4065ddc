package world

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestArenaGenerateReproducibility(t *testing.T) {
	seed := int64(12345)

	a1 := Generate(context.Background(), rand.New(rand.NewSource(seed)))
	a2 := Generate(context.Background(), rand.New(rand.NewSource(seed)))

	if len(a1.Pillars) != len(a2.Pillars) {
		t.Fatalf("Pillar count mismatch: %d != %d", len(a1.Pillars), len(a2.Pillars))
	}

	for i := range a1.Pillars {
		if a1.Pillars[i] != a2.Pillars[i] {
			t.Errorf("Pillar %d mismatch: %+v != %+v", i, a1.Pillars[i], a2.Pillars[i])
		}
	}
}

func TestArenaGenerateKeepsSpawnsClear(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		a := Generate(context.Background(), rand.New(rand.NewSource(seed)))
		if len(a.Pillars)%2 != 0 {
			t.Errorf("seed %d: pillars should come in mirrored pairs, got %d", seed, len(a.Pillars))
		}
		for team := 1; team <= 2; team++ {
			for slot := 0; slot < 3; slot++ {
				s := a.Spawn(team, slot)
				if !a.IsPassable(s) {
					t.Errorf("seed %d: spawn %d/%d at %+v is blocked", seed, team, slot, s)
				}
			}
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		pillars int
		wantErr bool
	}{
		{"", 0, false},
		{"open", 0, false},
		{"nagrand", 4, false},
		{"blades_edge", 2, false},
		{"ruins", 4, false},
		{"gurubashi", 0, true},
	}

	for _, tt := range tests {
		a, err := Lookup(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownArena) {
				t.Errorf("Lookup(%q) error = %v, want ErrUnknownArena", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", tt.name, err)
		}
		if len(a.Pillars) != tt.pillars {
			t.Errorf("Lookup(%q) has %d pillars, want %d", tt.name, len(a.Pillars), tt.pillars)
		}
	}
}

func TestLookupReturnsIndependentCopies(t *testing.T) {
	a, _ := Lookup("nagrand")
	a.Pillars[0].Radius = 99

	b, _ := Lookup("nagrand")
	if b.Pillars[0].Radius == 99 {
		t.Error("Lookup should not share pillar slices between arenas")
	}
}

func TestHasLineOfSight(t *testing.T) {
	a := NewArena("test", []Pillar{{Center: Vec2{0, 0}, Radius: 3}})

	tests := []struct {
		name     string
		from, to Vec2
		want     bool
	}{
		{"through pillar", Vec2{-10, 0}, Vec2{10, 0}, false},
		{"above pillar", Vec2{-10, 5}, Vec2{10, 5}, true},
		{"grazing outside", Vec2{-10, 3.1}, Vec2{10, 3.1}, true},
		{"short of pillar", Vec2{-10, 0}, Vec2{-5, 0}, true},
	}

	for _, tt := range tests {
		if got := a.HasLineOfSight(tt.from, tt.to); got != tt.want {
			t.Errorf("%s: HasLineOfSight() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	a := NewArena("test", []Pillar{{Center: Vec2{0, 0}, Radius: 3}})

	outside := a.Clamp(Vec2{100, 0})
	if outside.Len() > a.Radius {
		t.Errorf("Clamp() left point outside the wall: %+v", outside)
	}

	inPillar := a.Clamp(Vec2{1, 0})
	if inPillar.Dist(Vec2{0, 0}) < 3 {
		t.Errorf("Clamp() left point inside the pillar: %+v", inPillar)
	}

	free := Vec2{10, 10}
	if got := a.Clamp(free); got != free {
		t.Errorf("Clamp(%+v) = %+v, want unchanged", free, got)
	}
}

func TestMoveSkirtsPillars(t *testing.T) {
	a := NewArena("test", []Pillar{{Center: Vec2{0, 0}, Radius: 3}})

	pos := Vec2{-10, 0}
	goal := Vec2{10, 0}
	for i := 0; i < 200 && pos.Dist(goal) > 0.5; i++ {
		pos = a.Move(pos, goal, 0.7)
		if !a.IsPassable(pos) {
			t.Fatalf("step %d moved into an obstacle: %+v", i, pos)
		}
	}

	if pos.Dist(goal) > 0.5 {
		t.Errorf("Move() never reached the goal, stuck at %+v", pos)
	}
}

func TestMoveAway(t *testing.T) {
	a := NewArena("test", nil)

	from := Vec2{0, 0}
	got := a.MoveAway(from, Vec2{-5, 0}, 2)
	if math.Abs(got.X-2) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("MoveAway() = %+v, want {2 0}", got)
	}

	pinned := Vec2{a.Radius - wallPadding, 0}
	slid := a.MoveAway(pinned, Vec2{0, 0}, 2)
	if slid.Dist(pinned) < 1 {
		t.Errorf("MoveAway() against the wall should slide, got %+v", slid)
	}
}

func TestSpawnsAreMirrored(t *testing.T) {
	a, _ := Lookup("open")
	for slot := 0; slot < 3; slot++ {
		s1, s2 := a.Spawn(1, slot), a.Spawn(2, slot)
		if s1.X != -s2.X || s1.Y != s2.Y {
			t.Errorf("slot %d spawns not mirrored: %+v vs %+v", slot, s1, s2)
		}
	}
}
