package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

type nameFunc func(id int) string

func combatantNames(m *match.Match) nameFunc {
	names := make(map[int]string)
	for _, c := range m.Combatants() {
		names[c.ID] = c.Name
	}
	return lookupNames(names)
}

func lookupNames(names map[int]string) nameFunc {
	return func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("#%d", id)
	}
}

// formatEvent renders one combat log line.
func formatEvent(e combat.Event, name nameFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%7.1fs  %s", e.Time.Seconds(), name(e.SourceID))

	switch e.Kind {
	case combat.EventCastStart:
		fmt.Fprintf(&b, " begins casting %s", e.AbilityID)
	case combat.EventCastComplete:
		fmt.Fprintf(&b, " casts %s", e.AbilityID)
	case combat.EventCastCancelled:
		fmt.Fprintf(&b, " stops casting %s", e.AbilityID)
	case combat.EventInterrupt:
		fmt.Fprintf(&b, " interrupts %s with %s", name(e.TargetID), e.AbilityID)
	case combat.EventDamage:
		fmt.Fprintf(&b, " %s hits %s for %.0f", e.AbilityID, name(e.TargetID), e.Amount)
	case combat.EventHeal:
		fmt.Fprintf(&b, " %s heals %s for %.0f", e.AbilityID, name(e.TargetID), e.Amount)
	case combat.EventImmune:
		fmt.Fprintf(&b, " %s on %s: immune", e.AbilityID, name(e.TargetID))
	case combat.EventCCApplied, combat.EventBuffApplied, combat.EventDebuffApplied:
		fmt.Fprintf(&b, " %s applies %s to %s for %v", e.AbilityID, e.Aura, name(e.TargetID), e.Duration.Round(time.Millisecond))
	case combat.EventCCResisted:
		fmt.Fprintf(&b, " %s on %s: resisted", e.AbilityID, name(e.TargetID))
	case combat.EventAuraRemoved:
		fmt.Fprintf(&b, " %s removed from %s", e.AbilityID, name(e.TargetID))
	case combat.EventAuraExpired:
		fmt.Fprintf(&b, " %s fades from %s", e.AbilityID, name(e.TargetID))
	case combat.EventDispel:
		fmt.Fprintf(&b, " %s dispels %s from %s", e.AbilityID, e.Note, name(e.TargetID))
	case combat.EventEnergize:
		fmt.Fprintf(&b, " %s restores %.0f to %s", e.AbilityID, e.Amount, name(e.TargetID))
	case combat.EventDeath:
		fmt.Fprintf(&b, " kills %s", name(e.TargetID))
	default:
		fmt.Fprintf(&b, " %s %s", e.Kind, e.AbilityID)
	}

	if e.Absorbed > 0 {
		fmt.Fprintf(&b, " (%.0f absorbed)", e.Absorbed)
	}
	if e.Crit {
		b.WriteString(" (critical)")
	}
	return b.String()
}

func printRoster(w io.Writer, r *match.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range r.Combatants {
		status := "alive"
		if !c.Alive {
			status = fmt.Sprintf("died at %v", c.DiedAt)
		}
		fmt.Fprintf(tw, "  team %d\t%s\t%.0f/%.0f\t%s\n", c.Team, c.Name, c.Health, c.MaxHealth, status)
	}
	tw.Flush()
}

func printStats(w io.Writer, r *match.Result, s *match.Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "combatant\tdamage\thealing\ttaken\tabsorbed\tkills\tinterrupts\tdispels\tcc given\tcc taken\t")
	for _, c := range r.Combatants {
		cs := s.For(c.ID)
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%d\t%d\t%d\t%v\t%v\t\n",
			c.Name, cs.DamageDone, cs.HealingDone, cs.DamageTaken, cs.Absorbed,
			cs.Kills, cs.Interrupts, cs.Dispels,
			cs.CCGiven.Round(100*time.Millisecond), cs.CCReceived.Round(100*time.Millisecond))
	}
	tw.Flush()
}
