// Package storage persists finished matches and their event streams in
// SQLite through gorm.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

// ErrNotFound is returned for a match ID with no stored record.
var ErrNotFound = errors.New("match not found")

// eventBatchSize bounds the rows per INSERT when saving event streams.
const eventBatchSize = 500

// Repository stores and retrieves match results.
type Repository interface {
	SaveMatch(ctx context.Context, name string, res *match.Result, events []combat.Event) error
	ListMatches(ctx context.Context, limit int) ([]MatchRecord, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error)
	Events(ctx context.Context, id uuid.UUID) ([]combat.Event, error)
	WinRates(ctx context.Context) (map[string]WinRate, error)
}

// WinRate aggregates stored results for one team composition.
type WinRate struct {
	Played int
	Won    int
	Drawn  int
}

// Store is the SQLite Repository.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

// Open opens (creating if needed) the database at dsn and migrates the
// schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&MatchRecord{}, &CombatantRecord{}, &EventRecord{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveMatch stores a finished match with its combatants and events in one
// transaction.
func (s *Store) SaveMatch(ctx context.Context, name string, res *match.Result, events []combat.Event) error {
	id := res.ID.String()
	rec := MatchRecord{
		ID:        id,
		Name:      name,
		Seed:      res.Seed,
		Arena:     res.Arena,
		Team1:     composition(res, 1),
		Team2:     composition(res, 2),
		Winner:    res.Winner,
		Reason:    string(res.Reason),
		ElapsedMS: res.Elapsed.Milliseconds(),
		Steps:     res.Steps,
	}
	for _, c := range res.Combatants {
		rec.Combatants = append(rec.Combatants, combatantRecord(id, c))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		rows := make([]EventRecord, len(events))
		for i, e := range events {
			rows[i] = eventRecord(id, e)
		}
		return tx.CreateInBatches(rows, eventBatchSize).Error
	})
}

// composition returns a team's player classes joined by commas.
func composition(res *match.Result, team int) string {
	var classes []string
	for _, c := range res.Team(team) {
		if !c.Pet {
			classes = append(classes, c.Class)
		}
	}
	return strings.Join(classes, ",")
}

// ListMatches returns the most recent matches first, without events.
func (s *Store) ListMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	var out []MatchRecord
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetMatch returns one match with its combatants.
func (s *Store) GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	var rec MatchRecord
	err := s.db.WithContext(ctx).Preload("Combatants").First(&rec, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Events returns a stored event stream in sequence order.
func (s *Store) Events(ctx context.Context, id uuid.UUID) ([]combat.Event, error) {
	if _, err := s.GetMatch(ctx, id); err != nil {
		return nil, err
	}
	var rows []EventRecord
	if err := s.db.WithContext(ctx).Where("match_id = ?", id.String()).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]combat.Event, len(rows))
	for i, r := range rows {
		out[i] = r.Event()
	}
	return out, nil
}

// WinRates aggregates every stored match by team composition. A
// composition's wins count matches it won from either side.
func (s *Store) WinRates(ctx context.Context) (map[string]WinRate, error) {
	var recs []MatchRecord
	if err := s.db.WithContext(ctx).Select("team1", "team2", "winner").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]WinRate)
	for _, r := range recs {
		for team, comp := range map[int]string{1: r.Team1, 2: r.Team2} {
			wr := out[comp]
			wr.Played++
			switch r.Winner {
			case team:
				wr.Won++
			case match.Draw:
				wr.Drawn++
			}
			out[comp] = wr
		}
	}
	return out, nil
}
