package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
)

// Reason explains how a match ended.
type Reason string

const (
	ReasonElimination Reason = "elimination"
	ReasonTimeLimit   Reason = "time_limit"
)

// Draw is the winner of a match nobody won.
const Draw = 0

// CombatantState is the final record of one combatant.
type CombatantState struct {
	ID        int
	Name      string
	Team      int
	Slot      int
	Class     string
	Pet       bool
	Health    float64
	MaxHealth float64
	Alive     bool
	DiedAt    time.Duration
}

// Result is the committed outcome of a finished match.
type Result struct {
	ID         uuid.UUID
	Seed       int64
	Arena      string
	Winner     int // 1, 2 or Draw
	Reason     Reason
	Elapsed    time.Duration
	Steps      int
	Combatants []CombatantState
}

// String returns a one-line summary.
func (r *Result) String() string {
	if r.Winner == Draw {
		return fmt.Sprintf("draw (%s) after %v", r.Reason, r.Elapsed)
	}
	return fmt.Sprintf("team %d wins (%s) after %v", r.Winner, r.Reason, r.Elapsed)
}

// Team returns the final states of one team's combatants.
func (r *Result) Team(number int) []CombatantState {
	var out []CombatantState
	for _, c := range r.Combatants {
		if c.Team == number {
			out = append(out, c)
		}
	}
	return out
}

func snapshotState(c *entity.Combatant) CombatantState {
	return CombatantState{
		ID:        c.ID,
		Name:      c.Name,
		Team:      c.Team,
		Slot:      c.Slot,
		Class:     c.Class.ID(),
		Pet:       c.IsPet(),
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Alive:     c.IsAlive(),
		DiedAt:    c.DiedAt,
	}
}

// evaluate returns the winner and reason once the match is over. ok is false
// while the match continues.
func evaluate(team1, team2 *entity.Team, now, limit time.Duration, tie TieBreak) (winner int, reason Reason, ok bool) {
	down1, down2 := team1.IsDefeated(), team2.IsDefeated()
	switch {
	case down1 && down2:
		return Draw, ReasonElimination, true
	case down1:
		return 2, ReasonElimination, true
	case down2:
		return 1, ReasonElimination, true
	case now < limit:
		return Draw, "", false
	}

	if tie == TieBreakHealth {
		h1, h2 := team1.HealthFraction(), team2.HealthFraction()
		switch {
		case h1 > h2:
			return 1, ReasonTimeLimit, true
		case h2 > h1:
			return 2, ReasonTimeLimit, true
		}
	}
	return Draw, ReasonTimeLimit, true
}
