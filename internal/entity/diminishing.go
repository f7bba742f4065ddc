package entity

import (
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

const (
	// DRWindow is how long a category must go without a new application
	// before its level resets.
	DRWindow = 15 * time.Second
	// DRImmuneLevel is the level at which further applications are blocked.
	DRImmuneLevel = 3
)

// drFactors maps a DR level to the duration multiplier of the next application.
var drFactors = [DRImmuneLevel + 1]float64{1, 0.5, 0.25, 0}

// DRCategories lists the crowd-control categories tracked independently.
var DRCategories = []gamedata.AuraKind{
	gamedata.AuraStun,
	gamedata.AuraFear,
	gamedata.AuraIncapacitate,
	gamedata.AuraRoot,
	gamedata.AuraSlow,
}

// DRState is the escalation state of one category.
type DRState struct {
	Level int
	Timer time.Duration // time left until Level resets to 0
}

// DRTracker holds per-category diminishing-returns state for one combatant.
type DRTracker struct {
	states map[gamedata.AuraKind]*DRState
}

// NewDRTracker creates a tracker with every category at level 0.
func NewDRTracker() *DRTracker {
	t := &DRTracker{states: make(map[gamedata.AuraKind]*DRState, len(DRCategories))}
	for _, cat := range DRCategories {
		t.states[cat] = &DRState{}
	}
	return t
}

// State returns a copy of the state for cat.
func (t *DRTracker) State(cat gamedata.AuraKind) DRState {
	if s, ok := t.states[cat]; ok {
		return *s
	}
	return DRState{}
}

// Level returns the current escalation level for cat.
func (t *DRTracker) Level(cat gamedata.AuraKind) int {
	return t.State(cat).Level
}

// Factor returns the duration multiplier the next application of cat would get.
func (t *DRTracker) Factor(cat gamedata.AuraKind) float64 {
	return drFactors[t.Level(cat)]
}

// IsImmune reports whether cat is at the immune level.
func (t *DRTracker) IsImmune(cat gamedata.AuraKind) bool {
	return t.Level(cat) >= DRImmuneLevel
}

// Apply records an application of cat. It returns the duration factor and
// true when the application lands. At the immune level it returns false and
// leaves the timer untouched.
func (t *DRTracker) Apply(cat gamedata.AuraKind) (float64, bool) {
	s, ok := t.states[cat]
	if !ok {
		return 1, true
	}
	if s.Level >= DRImmuneLevel {
		return 0, false
	}
	factor := drFactors[s.Level]
	s.Level++
	s.Timer = DRWindow
	return factor, true
}

// Refresh restarts the reset timer of cat when its aura ends, unless the
// category is at the immune level.
func (t *DRTracker) Refresh(cat gamedata.AuraKind) {
	s, ok := t.states[cat]
	if !ok || s.Level == 0 || s.Level >= DRImmuneLevel {
		return
	}
	s.Timer = DRWindow
}

// Tick advances every timer by dt and resets categories whose window elapsed.
func (t *DRTracker) Tick(dt time.Duration) {
	for _, s := range t.states {
		if s.Level == 0 {
			continue
		}
		s.Timer -= dt
		if s.Timer <= 0 {
			s.Level = 0
			s.Timer = 0
		}
	}
}

// Clone returns a deep copy of the tracker.
func (t *DRTracker) Clone() *DRTracker {
	c := &DRTracker{states: make(map[gamedata.AuraKind]*DRState, len(t.states))}
	for cat, s := range t.states {
		cp := *s
		c.states[cat] = &cp
	}
	return c
}
