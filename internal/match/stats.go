package match

import (
	"sort"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
)

// CombatantStats aggregates one combatant's contribution to a match.
type CombatantStats struct {
	ID               int
	DamageDone       float64
	HealingDone      float64
	DamageTaken      float64
	Absorbed         float64 // damage absorbed by shields on this combatant
	Kills            int
	Interrupts       int
	Dispels          int
	CCGiven          time.Duration
	CCReceived       time.Duration
	DamageByAbility  map[string]float64
	HealingByAbility map[string]float64
}

// Stats is the post-match summary derived from an event stream.
type Stats struct {
	Combatants map[int]*CombatantStats
}

// Summarize computes statistics from events alone.
func Summarize(events []combat.Event) *Stats {
	s := &Stats{Combatants: make(map[int]*CombatantStats)}
	for _, e := range events {
		switch e.Kind {
		case combat.EventDamage:
			src := s.get(e.SourceID)
			src.DamageDone += e.Amount
			src.DamageByAbility[e.AbilityID] += e.Amount
			dst := s.get(e.TargetID)
			dst.DamageTaken += e.Amount
			dst.Absorbed += e.Absorbed
		case combat.EventHeal:
			src := s.get(e.SourceID)
			src.HealingDone += e.Amount
			src.HealingByAbility[e.AbilityID] += e.Amount
		case combat.EventDeath:
			if e.SourceID != e.TargetID {
				s.get(e.SourceID).Kills++
			}
			s.get(e.TargetID)
		case combat.EventCCApplied:
			s.get(e.SourceID).CCGiven += e.Duration
			s.get(e.TargetID).CCReceived += e.Duration
		case combat.EventInterrupt:
			s.get(e.SourceID).Interrupts++
		case combat.EventDispel:
			s.get(e.SourceID).Dispels++
		}
	}
	return s
}

func (s *Stats) get(id int) *CombatantStats {
	cs, ok := s.Combatants[id]
	if !ok {
		cs = &CombatantStats{
			ID:               id,
			DamageByAbility:  make(map[string]float64),
			HealingByAbility: make(map[string]float64),
		}
		s.Combatants[id] = cs
	}
	return cs
}

// For returns the statistics of combatant id; combatants that never
// appeared in the stream get an empty record.
func (s *Stats) For(id int) *CombatantStats {
	return s.get(id)
}

// IDs returns the combatant IDs present in the summary, sorted.
func (s *Stats) IDs() []int {
	ids := make([]int, 0, len(s.Combatants))
	for id := range s.Combatants {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
