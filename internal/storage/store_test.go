package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "arenasim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult(winner int) *match.Result {
	return &match.Result{
		ID:      uuid.New(),
		Seed:    42,
		Arena:   "open",
		Winner:  winner,
		Reason:  match.ReasonElimination,
		Elapsed: 31500 * time.Millisecond,
		Steps:   315,
		Combatants: []match.CombatantState{
			{ID: 1, Name: "Warrior 1-1", Team: 1, Class: "warrior", Health: 1200, MaxHealth: 5000, Alive: true},
			{ID: 2, Name: "Hunter 2-1", Team: 2, Class: "hunter", MaxHealth: 4000, DiedAt: 31500 * time.Millisecond},
			{ID: 3, Name: "Cat (Hunter 2-1)", Team: 2, Class: "cat", Pet: true, MaxHealth: 1500, DiedAt: 20 * time.Second},
		},
	}
}

func sampleEvents() []combat.Event {
	return []combat.Event{
		{Seq: 1, Time: 100 * time.Millisecond, Kind: combat.EventCastStart, SourceID: 2, TargetID: 1, AbilityID: "aimed_shot"},
		{Seq: 2, Time: 2 * time.Second, Kind: combat.EventCCApplied, SourceID: 1, TargetID: 2, AbilityID: "intimidating_shout", Aura: gamedata.AuraFear, Duration: 8 * time.Second},
		{Seq: 3, Time: 3 * time.Second, Kind: combat.EventDamage, SourceID: 1, TargetID: 2, AbilityID: "mortal_strike", Amount: 412.5, Absorbed: 20, Crit: true},
		{Seq: 4, Time: 31500 * time.Millisecond, Kind: combat.EventDeath, SourceID: 1, TargetID: 2, AbilityID: "mortal_strike"},
	}
}

func TestSaveAndGetMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	res := sampleResult(1)

	require.NoError(t, s.SaveMatch(ctx, "duel", res, sampleEvents()))

	rec, err := s.GetMatch(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "duel", rec.Name)
	assert.Equal(t, int64(42), rec.Seed)
	assert.Equal(t, "warrior", rec.Team1)
	assert.Equal(t, "hunter", rec.Team2, "pets are not part of the composition")
	assert.Equal(t, 1, rec.Winner)
	assert.Equal(t, string(match.ReasonElimination), rec.Reason)
	assert.Equal(t, int64(31500), rec.ElapsedMS)
	require.Len(t, rec.Combatants, 3)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	res := sampleResult(1)
	events := sampleEvents()

	require.NoError(t, s.SaveMatch(ctx, "duel", res, events))

	got, err := s.Events(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestGetMissingMatch(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetMatch(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Events(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		res := sampleResult(1)
		ids = append(ids, res.ID)
		require.NoError(t, s.SaveMatch(ctx, "duel", res, nil))
		time.Sleep(5 * time.Millisecond)
	}

	all, err := s.ListMatches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2].String(), all[0].ID, "newest first")

	two, err := s.ListMatches(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestWinRates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, winner := range []int{1, 1, 2, match.Draw} {
		require.NoError(t, s.SaveMatch(ctx, "duel", sampleResult(winner), nil))
	}

	rates, err := s.WinRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, WinRate{Played: 4, Won: 2, Drawn: 1}, rates["warrior"])
	assert.Equal(t, WinRate{Played: 4, Won: 1, Drawn: 1}, rates["hunter"])
}

func TestSaveRealMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := match.New(ctx, match.Config{
		Team1: match.Team{Members: []match.Member{{Class: "warrior"}}},
		Team2: match.Team{Members: []match.Member{{Class: "mage"}}},
		Seed:  42,
	})
	require.NoError(t, err)
	res, err := m.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SaveMatch(ctx, "duel", res, m.Events()))

	got, err := s.Events(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got, len(m.Events()))
	for i, e := range m.Events() {
		assert.Equal(t, e.Seq, got[i].Seq)
		assert.Equal(t, e.Kind, got[i].Kind)
		assert.Equal(t, e.Time.Milliseconds(), got[i].Time.Milliseconds())
	}
}
