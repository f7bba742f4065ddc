package ai

import (
	"fmt"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// ActionKind is what a combatant does this step.
type ActionKind int

const (
	ActionIdle ActionKind = iota
	ActionCast
	ActionMoveToward
	ActionMoveAway
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionCast:
		return "cast"
	case ActionMoveToward:
		return "move_toward"
	case ActionMoveAway:
		return "move_away"
	default:
		return "idle"
	}
}

// Action is a decider's choice for one step.
type Action struct {
	Kind      ActionKind
	AbilityID string
	TargetID  int
	Position  world.Vec2 // move destination, or the point to move away from
	Range     float64    // ActionMoveToward: stop once this close
}

// Idle returns the do-nothing action.
func Idle() Action {
	return Action{Kind: ActionIdle}
}

// Cast returns an action using abilityID on targetID.
func Cast(abilityID string, targetID int) Action {
	return Action{Kind: ActionCast, AbilityID: abilityID, TargetID: targetID}
}

// MoveToward returns an action walking toward pos until within r yards.
func MoveToward(pos world.Vec2, r float64) Action {
	return Action{Kind: ActionMoveToward, Position: pos, Range: r}
}

// MoveAway returns an action walking away from pos.
func MoveAway(pos world.Vec2) Action {
	return Action{Kind: ActionMoveAway, Position: pos}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCast:
		return fmt.Sprintf("cast %s on %d", a.AbilityID, a.TargetID)
	case ActionMoveToward:
		return fmt.Sprintf("move toward (%.1f, %.1f)", a.Position.X, a.Position.Y)
	case ActionMoveAway:
		return fmt.Sprintf("move away from (%.1f, %.1f)", a.Position.X, a.Position.Y)
	default:
		return "idle"
	}
}
