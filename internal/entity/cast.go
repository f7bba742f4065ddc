package entity

import "time"

// CastState tracks an in-progress cast or channel.
type CastState struct {
	AbilityID   string
	TargetID    int
	Remaining   time.Duration
	Total       time.Duration
	Channel     bool
	Interrupted bool

	// channel ticks
	TickInterval time.Duration
	SinceTick    time.Duration
	Batch        int
}
