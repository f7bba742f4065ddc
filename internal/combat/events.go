package combat

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

// EventKind identifies what a combat event records.
type EventKind int

const (
	EventCastStart EventKind = iota
	EventCastComplete
	EventCastCancelled
	EventInterrupt
	EventDamage
	EventHeal
	EventImmune
	EventCCApplied
	EventCCResisted
	EventBuffApplied
	EventDebuffApplied
	EventAuraRemoved
	EventAuraExpired
	EventDispel
	EventEnergize
	EventDeath
)

// String returns the event kind identifier.
func (k EventKind) String() string {
	switch k {
	case EventCastStart:
		return "cast_start"
	case EventCastComplete:
		return "cast_complete"
	case EventCastCancelled:
		return "cast_cancelled"
	case EventInterrupt:
		return "interrupt"
	case EventDamage:
		return "damage"
	case EventHeal:
		return "heal"
	case EventImmune:
		return "immune"
	case EventCCApplied:
		return "cc_applied"
	case EventCCResisted:
		return "cc_resisted"
	case EventBuffApplied:
		return "buff_applied"
	case EventDebuffApplied:
		return "debuff_applied"
	case EventAuraRemoved:
		return "aura_removed"
	case EventAuraExpired:
		return "aura_expired"
	case EventDispel:
		return "dispel"
	case EventEnergize:
		return "energize"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// ParseEventKind returns the kind with the given identifier.
func ParseEventKind(s string) (EventKind, bool) {
	for k := EventCastStart; k <= EventDeath; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// TargetsCombatant reports whether events of this kind change their target
// through damage, healing or aura application.
func (k EventKind) TargetsCombatant() bool {
	switch k {
	case EventDamage, EventHeal, EventCCApplied, EventBuffApplied, EventDebuffApplied:
		return true
	}
	return false
}

// Event is one entry of the combat event stream.
type Event struct {
	Seq       int
	Time      time.Duration
	Kind      EventKind
	SourceID  int
	TargetID  int
	AbilityID string
	Amount    float64
	Absorbed  float64
	Crit      bool
	Aura      gamedata.AuraKind
	Duration  time.Duration
	Note      string
}

// EventSink receives every event as it is appended.
type EventSink func(Event)

// EventLog is the append-only, sequence-numbered event stream of one match.
type EventLog struct {
	events []Event
	sinks  []EventSink
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Subscribe registers a sink that sees every subsequent event.
func (l *EventLog) Subscribe(sink EventSink) {
	l.sinks = append(l.sinks, sink)
}

// Append assigns the next sequence number to e, stores it and notifies sinks.
func (l *EventLog) Append(e Event) Event {
	e.Seq = len(l.events) + 1
	l.events = append(l.events, e)
	for _, sink := range l.sinks {
		sink(e)
	}
	return e
}

// Events returns a copy of the stream.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns a copy of every event with a sequence number above seq.
func (l *EventLog) Since(seq int) []Event {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(l.events) {
		return nil
	}
	out := make([]Event, len(l.events)-seq)
	copy(out, l.events[seq:])
	return out
}

// Len returns the number of events.
func (l *EventLog) Len() int {
	return len(l.events)
}
