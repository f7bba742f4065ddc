package world

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/telemetry"
)

const (
	// DefaultArena is used when a match names no map.
	DefaultArena = "open"
	// RandomArena asks for a seeded procedural layout.
	RandomArena = "random"

	// DefaultRadius is the playable radius of every arena.
	DefaultRadius = 40.0

	spawnDistance = 22.0 // spawn x offset from the centre
	slotSpacing   = 4.0  // spacing between teammates
	petOffset     = 2.5  // pets spawn behind their owner
	pillarPadding = 0.5  // combatant body radius kept clear of pillars
	wallPadding   = 1.0

	// procedural layout parameters
	minPillars      = 1
	maxPillarPairs  = 3
	minPillarRadius = 2.0
	maxPillarRadius = 4.5
	spawnClearance  = 8.0
)

// ErrUnknownArena is returned for map names with no layout.
var ErrUnknownArena = errors.New("unknown arena")

// Pillar is a circular obstacle that blocks movement and line of sight.
type Pillar struct {
	Center Vec2
	Radius float64
}

// Contains reports whether p lies inside the pillar plus padding.
func (p Pillar) Contains(pt Vec2, padding float64) bool {
	return pt.Dist(p.Center) < p.Radius+padding
}

// Arena is a circular battleground with optional pillars.
type Arena struct {
	Name    string
	Radius  float64
	Pillars []Pillar
}

// layouts holds the fixed arenas by name.
var layouts = map[string][]Pillar{
	"open": nil,
	"nagrand": {
		{Center: Vec2{10, 10}, Radius: 3},
		{Center: Vec2{-10, 10}, Radius: 3},
		{Center: Vec2{10, -10}, Radius: 3},
		{Center: Vec2{-10, -10}, Radius: 3},
	},
	"blades_edge": {
		{Center: Vec2{0, 12}, Radius: 3.5},
		{Center: Vec2{0, -12}, Radius: 3.5},
	},
	"ruins": {
		{Center: Vec2{6, 14}, Radius: 2.5},
		{Center: Vec2{-6, -14}, Radius: 2.5},
		{Center: Vec2{-12, 4}, Radius: 2},
		{Center: Vec2{12, -4}, Radius: 2},
	},
}

// NewArena creates an arena with the given pillars.
func NewArena(name string, pillars []Pillar) *Arena {
	ps := make([]Pillar, len(pillars))
	copy(ps, pillars)
	return &Arena{
		Name:    name,
		Radius:  DefaultRadius,
		Pillars: ps,
	}
}

// Lookup returns the fixed arena with the given name. An empty name selects
// DefaultArena.
func Lookup(name string) (*Arena, error) {
	if name == "" {
		name = DefaultArena
	}
	pillars, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArena, name)
	}
	return NewArena(name, pillars), nil
}

// Names returns every fixed arena name plus RandomArena, sorted.
func Names() []string {
	names := make([]string, 0, len(layouts)+1)
	for name := range layouts {
		names = append(names, name)
	}
	names = append(names, RandomArena)
	sort.Strings(names)
	return names
}

// Generate creates a procedural arena from rng. Pillars are placed in
// point-symmetric pairs so neither side gets a better layout.
func Generate(ctx context.Context, rng *rand.Rand) *Arena {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	startTime := time.Now()

	a := NewArena(RandomArena, nil)
	pairs := minPillars + rng.Intn(maxPillarPairs)
	for attempts := 0; len(a.Pillars) < pairs*2 && attempts < 100; attempts++ {
		r := minPillarRadius + rng.Float64()*(maxPillarRadius-minPillarRadius)
		angle := rng.Float64() * 2 * math.Pi
		dist := 6 + rng.Float64()*(a.Radius-16)
		center := Vec2{math.Cos(angle) * dist, math.Sin(angle) * dist}
		if !a.placeable(center, r) {
			continue
		}
		a.Pillars = append(a.Pillars,
			Pillar{Center: center, Radius: r},
			Pillar{Center: center.Scale(-1), Radius: r},
		)
	}

	span.SetAttributes(
		attribute.Int("arena.pillar_count", len(a.Pillars)),
		attribute.Float64("arena.radius", a.Radius),
		attribute.Int64("arena.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return a
}

// placeable reports whether a pillar (and its mirror) fits without crowding
// spawns or other pillars.
func (a *Arena) placeable(center Vec2, r float64) bool {
	if center.Len() < r+2 {
		return false
	}
	for team := 1; team <= 2; team++ {
		for slot := 0; slot < 3; slot++ {
			s := a.Spawn(team, slot)
			if s.Dist(center) < r+spawnClearance || s.Dist(center.Scale(-1)) < r+spawnClearance {
				return false
			}
		}
	}
	for _, p := range a.Pillars {
		if p.Center.Dist(center) < p.Radius+r+4 || p.Center.Dist(center.Scale(-1)) < p.Radius+r+4 {
			return false
		}
	}
	return true
}

// Spawn returns the start position for a team (1 or 2) and roster slot.
func (a *Arena) Spawn(team, slot int) Vec2 {
	x := -spawnDistance
	if team == 2 {
		x = spawnDistance
	}
	offsets := []float64{0, slotSpacing, -slotSpacing}
	y := offsets[slot%len(offsets)]
	return Vec2{x, y}
}

// PetSpawn returns the start position of a pet whose owner starts at owner.
func (a *Arena) PetSpawn(owner Vec2) Vec2 {
	dir := 1.0
	if owner.X > 0 {
		dir = -1
	}
	return a.Clamp(Vec2{owner.X - dir*petOffset, owner.Y + 1})
}

// HasLineOfSight returns true if no pillar blocks the segment from a to b.
func (a *Arena) HasLineOfSight(from, to Vec2) bool {
	for _, p := range a.Pillars {
		if segmentDistance(p.Center, from, to) < p.Radius {
			return false
		}
	}
	return true
}

// IsPassable returns true if the given position can be stood on.
func (a *Arena) IsPassable(p Vec2) bool {
	if p.Len() > a.Radius {
		return false
	}
	for _, pillar := range a.Pillars {
		if pillar.Contains(p, 0) {
			return false
		}
	}
	return true
}

// Clamp returns p pulled inside the arena wall and pushed out of pillars.
func (a *Arena) Clamp(p Vec2) Vec2 {
	limit := a.Radius - wallPadding
	if p.Len() > limit {
		p = p.Normalize().Scale(limit)
	}
	for _, pillar := range a.Pillars {
		if !pillar.Contains(p, pillarPadding) {
			continue
		}
		out := p.Sub(pillar.Center).Normalize()
		if out.IsZero() {
			out = Vec2{1, 0}
		}
		p = pillar.Center.Add(out.Scale(pillar.Radius + pillarPadding))
	}
	return p
}

// Move returns the position reached by travelling up to dist yards from
// from toward to. Pillars in the way are skirted by sliding around them.
func (a *Arena) Move(from, to Vec2, dist float64) Vec2 {
	delta := to.Sub(from)
	if delta.Len() <= dist {
		return a.Clamp(to)
	}
	dir := delta.Normalize()
	next := a.Clamp(from.Add(dir.Scale(dist)))

	// Head-on into a pillar: slide tangentially instead of stalling.
	if next.Dist(from) < dist*0.25 {
		for _, pillar := range a.Pillars {
			if !pillar.Contains(from.Add(dir.Scale(dist)), pillarPadding) {
				continue
			}
			tangent := from.Sub(pillar.Center).Perp().Normalize()
			if tangent.Dot(dir) < 0 {
				tangent = tangent.Scale(-1)
			}
			if tangent.IsZero() {
				tangent = dir.Perp()
			}
			next = a.Clamp(from.Add(tangent.Scale(dist)))
			break
		}
	}
	return next
}

// MoveAway returns the position reached by travelling dist yards directly
// away from threat. A combatant pinned against the wall slides along it.
func (a *Arena) MoveAway(from, threat Vec2, dist float64) Vec2 {
	dir := from.Sub(threat).Normalize()
	if dir.IsZero() {
		dir = Vec2{1, 0}
	}
	next := a.Clamp(from.Add(dir.Scale(dist)))
	if next.Dist(from) < dist*0.25 {
		slide := dir.Perp()
		if from.Add(slide).Len() > from.Sub(slide).Len() {
			slide = slide.Scale(-1)
		}
		next = a.Clamp(from.Add(slide.Scale(dist)))
	}
	return next
}
