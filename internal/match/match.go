// Package match drives one arena match: setup from a Config, the fixed
// per-step pipeline and the final Result.
package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/ai"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/logging"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/random"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/targeting"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/telemetry"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// Match owns all mutable state of one simulation.
type Match struct {
	ID   uuid.UUID
	Seed int64

	cfg      Config
	battle   *combat.Battle
	acquirer *targeting.Acquirer
	team1    *entity.Team
	team2    *entity.Team

	steps  int
	result *Result
	err    error
}

// New validates cfg and builds the combatant table. Configuration errors
// are returned before any simulation time elapses.
func New(ctx context.Context, cfg Config) (*Match, error) {
	tracer := telemetry.Tracer("match")
	ctx, span := tracer.Start(ctx, "match.setup")
	defer span.End()

	cfg, err := cfg.withDefaults()
	if err == nil {
		err = cfg.validate()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	seed, err := random.Resolve(cfg.Seed, nil)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	arena, err := buildArena(ctx, cfg.Arena, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	m := &Match{
		ID:       uuid.New(),
		Seed:     seed,
		cfg:      cfg,
		battle:   combat.NewBattle(cfg.Catalog, arena, rng, nil),
		acquirer: targeting.NewAcquirer(cfg.Team1.priority(), cfg.Team2.priority()),
	}
	if err := m.spawn(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	m.team1 = entity.NewTeam(1, m.battle.Combatants())
	m.team2 = entity.NewTeam(2, m.battle.Combatants())

	span.SetAttributes(
		attribute.String("match.id", m.ID.String()),
		attribute.Int64("match.seed", seed),
		attribute.String("match.arena", arena.Name),
		attribute.StringSlice("match.team1", roster(cfg.Team1)),
		attribute.StringSlice("match.team2", roster(cfg.Team2)),
		attribute.Int("match.combatants", len(m.battle.Combatants())),
	)
	return m, nil
}

func buildArena(ctx context.Context, name string, rng *rand.Rand) (*world.Arena, error) {
	if name == world.RandomArena {
		return world.Generate(ctx, rng), nil
	}
	return world.Lookup(name)
}

func roster(t Team) []string {
	out := make([]string, len(t.Members))
	for i, m := range t.Members {
		out[i] = m.Class
	}
	return out
}

// spawn creates every combatant. IDs run team 1 then team 2, players before
// pets.
func (m *Match) spawn() error {
	b := m.battle
	id := 0
	var stealthers []*entity.Combatant
	for number, team := range []Team{m.cfg.Team1, m.cfg.Team2} {
		number++
		var owners []*entity.Combatant
		var pets []string
		for slot, mem := range team.Members {
			def := m.cfg.Classes.GetByID(mem.Class)
			class, _ := entity.ParseClass(mem.Class)
			id++
			c := entity.NewCombatant(id, fmt.Sprintf("%s %d-%d", def.Name, number, slot+1), class, def, number, slot)
			c.Position = b.Arena.Spawn(number, slot)
			c.Options = entity.Options{Opener: mem.Opener, Curses: copyCurses(mem.Curses)}
			if err := b.Add(c); err != nil {
				return err
			}
			if mem.Opener != NoOpener && slices.Contains(c.Abilities, "stealth") {
				stealthers = append(stealthers, c)
			}
			if pet := petFor(def, mem); pet != "" {
				owners = append(owners, c)
				pets = append(pets, pet)
			}
		}
		for i, owner := range owners {
			def := m.cfg.Classes.GetPet(pets[i])
			class, _ := entity.ParseClass(pets[i])
			id++
			p := entity.NewCombatant(id, fmt.Sprintf("%s (%s)", def.Name, owner.Name), class, def, number, owner.Slot)
			p.OwnerID = owner.ID
			p.Position = b.Arena.PetSpawn(owner.Position)
			if err := b.Add(p); err != nil {
				return err
			}
		}
	}

	// rogues enter the arena stealthed
	for _, c := range stealthers {
		if err := b.Use(c, "stealth", c.ID); err != nil {
			return fmt.Errorf("stealth %s: %w", c.Name, err)
		}
	}
	return b.Resolver().ResolveAll(b.Queue.Due(b.Now))
}

func copyCurses(in map[int]string) map[int]string {
	if in == nil {
		return nil
	}
	out := make(map[int]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Step runs one fixed simulation step and reports whether the match is
// over. An ErrConsistency error aborts the match; every later call returns
// the same error.
func (m *Match) Step() (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.result != nil {
		return true, nil
	}
	if err := m.step(); err != nil {
		m.err = err
		return false, err
	}
	m.steps++

	winner, reason, done := evaluate(m.team1, m.team2, m.battle.Now, m.cfg.TimeLimit, m.cfg.TieBreak)
	if done {
		m.finish(winner, reason)
	}
	return done, nil
}

func (m *Match) step() error {
	b := m.battle
	dt := m.cfg.Step

	b.Advance(dt)
	if err := b.ProcessAuras(dt); err != nil {
		return err
	}

	m.acquirer.Update(b.Combatants())

	snap := ai.NewSnapshot(b.Now, b.Catalog, b.Arena, b.Combatants())
	actions := make([]ai.Action, len(b.Combatants()))
	for i, c := range b.Combatants() {
		actions[i] = ai.Decide(snap, c.ID)
	}
	for i, c := range b.Combatants() {
		if err := m.perform(c, actions[i], dt); err != nil {
			return err
		}
	}

	if err := b.AdvanceCasts(dt); err != nil {
		return err
	}
	if err := b.AutoAttacks(); err != nil {
		return err
	}
	return b.Resolver().ResolveAll(b.Queue.Due(b.Now))
}

// perform carries out a decided action. Usability rejections are expected
// when earlier actions this step changed the situation and are ignored.
func (m *Match) perform(c *entity.Combatant, a ai.Action, dt time.Duration) error {
	if !c.IsAlive() {
		return nil
	}
	switch a.Kind {
	case ai.ActionCast:
		if err := m.battle.Use(c, a.AbilityID, a.TargetID); errors.Is(err, combat.ErrConsistency) {
			return err
		}
	case ai.ActionMoveToward:
		m.battle.MoveToward(c, a.Position, a.Range, dt)
	case ai.ActionMoveAway:
		m.battle.MoveAway(c, a.Position, dt)
	}
	return nil
}

func (m *Match) finish(winner int, reason Reason) {
	r := &Result{
		ID:      m.ID,
		Seed:    m.Seed,
		Arena:   m.battle.Arena.Name,
		Winner:  winner,
		Reason:  reason,
		Elapsed: m.battle.Now,
		Steps:   m.steps,
	}
	for _, c := range m.battle.Combatants() {
		r.Combatants = append(r.Combatants, snapshotState(c))
	}
	m.result = r
}

// Run steps the match to completion.
func (m *Match) Run(ctx context.Context) (*Result, error) {
	if m.result != nil {
		return m.result, nil
	}
	tracer := telemetry.Tracer("match")
	ctx, span := tracer.Start(ctx, "match.run", trace.WithAttributes(
		attribute.String("match.id", m.ID.String()),
		attribute.Int64("match.seed", m.Seed),
	))
	defer span.End()

	m.battle.Log.Subscribe(func(e combat.Event) {
		if e.Kind != combat.EventDeath {
			return
		}
		span.AddEvent("death", trace.WithAttributes(
			attribute.Int("combatant.id", e.TargetID),
			attribute.Int("killer.id", e.SourceID),
			attribute.String("ability", e.AbilityID),
			attribute.Int64("time_ms", e.Time.Milliseconds()),
		))
	})

	logging.Info("match started", logging.Fields{
		"match_id": m.ID.String(),
		"seed":     m.Seed,
		"arena":    m.battle.Arena.Name,
		"team1":    roster(m.cfg.Team1),
		"team2":    roster(m.cfg.Team2),
	})

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done, err := m.Step()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logging.Error("match aborted", err, logging.Fields{"match_id": m.ID.String(), "seed": m.Seed})
			return nil, err
		}
		if done {
			break
		}
	}

	_, end := tracer.Start(ctx, "match.end")
	end.SetAttributes(
		attribute.Int("match.winner", m.result.Winner),
		attribute.String("match.reason", string(m.result.Reason)),
		attribute.Int64("match.elapsed_ms", m.result.Elapsed.Milliseconds()),
		attribute.Int("match.steps", m.result.Steps),
		attribute.Int("match.events", m.battle.Log.Len()),
	)
	end.End()

	logging.Info("match finished", logging.Fields{
		"match_id":   m.ID.String(),
		"winner":     m.result.Winner,
		"reason":     string(m.result.Reason),
		"elapsed_ms": m.result.Elapsed.Milliseconds(),
	})
	return m.result, nil
}

// Result returns the outcome, or nil while the match is running.
func (m *Match) Result() *Result {
	return m.result
}

// Now returns the elapsed simulation time.
func (m *Match) Now() time.Duration {
	return m.battle.Now
}

// Events returns a copy of the combat event stream.
func (m *Match) Events() []combat.Event {
	return m.battle.Log.Events()
}

// Subscribe registers a sink for every subsequent combat event.
func (m *Match) Subscribe(sink combat.EventSink) {
	m.battle.Log.Subscribe(sink)
}

// Combatants returns the live combatant table. Callers must only read it
// between steps.
func (m *Match) Combatants() []*entity.Combatant {
	return m.battle.Combatants()
}

// Battle exposes the underlying engine between steps.
func (m *Match) Battle() *combat.Battle {
	return m.battle
}
