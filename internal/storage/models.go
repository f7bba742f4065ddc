package storage

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

// MatchRecord is a stored match outcome.
type MatchRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	Name      string
	Seed      int64
	Arena     string
	Team1     string // comma-separated class identifiers
	Team2     string
	Winner    int
	Reason    string
	ElapsedMS int64
	Steps     int

	Combatants []CombatantRecord `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Events     []EventRecord     `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// CombatantRecord is the final state of one combatant of a stored match.
type CombatantRecord struct {
	ID          uint   `gorm:"primaryKey"`
	MatchID     string `gorm:"index;size:36"`
	CombatantID int
	Name        string
	Team        int
	Slot        int
	Class       string
	Pet         bool
	Health      float64
	MaxHealth   float64
	Alive       bool
	DiedAtMS    int64
}

// EventRecord is one combat event of a stored match.
type EventRecord struct {
	ID         uint   `gorm:"primaryKey"`
	MatchID    string `gorm:"index:idx_event_match_seq,priority:1;size:36"`
	Seq        int    `gorm:"index:idx_event_match_seq,priority:2"`
	TimeMS     int64
	Kind       string
	SourceID   int
	TargetID   int
	AbilityID  string
	Amount     float64
	Absorbed   float64
	Crit       bool
	Aura       string
	DurationMS int64
	Note       string
}

func combatantRecord(matchID string, c match.CombatantState) CombatantRecord {
	return CombatantRecord{
		MatchID:     matchID,
		CombatantID: c.ID,
		Name:        c.Name,
		Team:        c.Team,
		Slot:        c.Slot,
		Class:       c.Class,
		Pet:         c.Pet,
		Health:      c.Health,
		MaxHealth:   c.MaxHealth,
		Alive:       c.Alive,
		DiedAtMS:    c.DiedAt.Milliseconds(),
	}
}

func eventRecord(matchID string, e combat.Event) EventRecord {
	return EventRecord{
		MatchID:    matchID,
		Seq:        e.Seq,
		TimeMS:     e.Time.Milliseconds(),
		Kind:       e.Kind.String(),
		SourceID:   e.SourceID,
		TargetID:   e.TargetID,
		AbilityID:  e.AbilityID,
		Amount:     e.Amount,
		Absorbed:   e.Absorbed,
		Crit:       e.Crit,
		Aura:       string(e.Aura),
		DurationMS: e.Duration.Milliseconds(),
		Note:       e.Note,
	}
}

// Event converts the record back into a combat event.
func (r EventRecord) Event() combat.Event {
	kind, _ := combat.ParseEventKind(r.Kind)
	return combat.Event{
		Seq:       r.Seq,
		Time:      time.Duration(r.TimeMS) * time.Millisecond,
		Kind:      kind,
		SourceID:  r.SourceID,
		TargetID:  r.TargetID,
		AbilityID: r.AbilityID,
		Amount:    r.Amount,
		Absorbed:  r.Absorbed,
		Crit:      r.Crit,
		Aura:      gamedata.AuraKind(r.Aura),
		Duration:  time.Duration(r.DurationMS) * time.Millisecond,
		Note:      r.Note,
	}
}
