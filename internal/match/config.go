package match

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/targeting"
)

const (
	// MaxRosterSize is the largest team a match accepts.
	MaxRosterSize = 3
	// DefaultTimeLimit ends a match that nobody has won.
	DefaultTimeLimit = 5 * time.Minute
	// DefaultStep is the fixed simulation step.
	DefaultStep = 100 * time.Millisecond
	// NoPet disables a class's default pet.
	NoPet = "none"
	// NoOpener makes a rogue start unstealthed.
	NoOpener = "none"
)

// Configuration errors. New wraps one of these and starts nothing.
var (
	ErrInvalidRoster    = errors.New("invalid roster")
	ErrUnknownClass     = errors.New("unknown class")
	ErrUnknownPet       = errors.New("unknown pet")
	ErrMissingAbility   = errors.New("missing ability definition")
	ErrInvalidPriority  = errors.New("invalid priority target")
	ErrInvalidTimeLimit = errors.New("invalid time limit")
)

// TieBreak decides a match that reaches the time limit.
type TieBreak string

const (
	// TieBreakNone declares a draw.
	TieBreakNone TieBreak = "none"
	// TieBreakHealth awards the team with the higher remaining health
	// fraction.
	TieBreakHealth TieBreak = "health"
)

// Member is one roster entry.
type Member struct {
	Class  string         // class identifier, e.g. "warrior"
	Pet    string         // pet identifier, "" for the class default, NoPet for none
	Opener string         // rogue only
	Curses map[int]string // warlock only: enemy roster slot -> curse ability
}

// Team is one side of a match.
type Team struct {
	Members []Member
	// KillTarget and CCTarget are enemy roster slots, nil to let the
	// heuristics choose.
	KillTarget *int
	CCTarget   *int
}

// Config describes a match.
type Config struct {
	Team1, Team2 Team
	Arena        string // world arena name; "" for the default, "random" for procedural
	Seed         int64  // 0 generates one
	TimeLimit    time.Duration
	Step         time.Duration
	TieBreak     TieBreak

	Catalog gamedata.Catalog
	Classes *gamedata.ClassRegistry
}

// Slot returns a pointer to slot for use in Team priorities.
func Slot(slot int) *int {
	return &slot
}

// withDefaults fills zero values with the embedded data and default timings.
func (c Config) withDefaults() (Config, error) {
	if c.Catalog == nil {
		reg, err := gamedata.LoadAbilityRegistry()
		if err != nil {
			return c, err
		}
		c.Catalog = reg
	}
	if c.Classes == nil {
		reg, err := gamedata.LoadClassRegistry()
		if err != nil {
			return c, err
		}
		c.Classes = reg
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if c.Step == 0 {
		c.Step = DefaultStep
	}
	if c.TieBreak == "" {
		c.TieBreak = TieBreakNone
	}
	return c, nil
}

// Validate checks the configuration against the class registry and ability
// catalog. Zero-valued timings and data sources are filled with defaults
// first.
func (c Config) Validate() error {
	c, err := c.withDefaults()
	if err != nil {
		return err
	}
	return c.validate()
}

func (c Config) validate() error {
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeLimit, c.TimeLimit)
	}
	if c.Step < 0 || c.Step > c.TimeLimit {
		return fmt.Errorf("%w: step %v with limit %v", ErrInvalidTimeLimit, c.Step, c.TimeLimit)
	}
	switch c.TieBreak {
	case TieBreakNone, TieBreakHealth:
	default:
		return fmt.Errorf("%w: unknown tie-break %q", ErrInvalidRoster, c.TieBreak)
	}
	teams := [2]Team{c.Team1, c.Team2}
	for i, t := range teams {
		enemies := len(teams[1-i].Members)
		if err := c.validateTeam(i+1, t, enemies); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) validateTeam(number int, t Team, enemies int) error {
	if len(t.Members) < 1 || len(t.Members) > MaxRosterSize {
		return fmt.Errorf("%w: team %d has %d members", ErrInvalidRoster, number, len(t.Members))
	}
	for _, p := range []*int{t.KillTarget, t.CCTarget} {
		if p != nil && (*p < 0 || *p >= enemies) {
			return fmt.Errorf("%w: team %d slot %d of %d enemies", ErrInvalidPriority, number, *p, enemies)
		}
	}
	for slot, m := range t.Members {
		if err := c.validateMember(m, enemies); err != nil {
			return fmt.Errorf("team %d slot %d: %w", number, slot, err)
		}
	}
	return nil
}

func (c Config) validateMember(m Member, enemies int) error {
	class, ok := entity.ParseClass(m.Class)
	def := c.Classes.GetByID(m.Class)
	if !ok || class.IsPet() || def == nil {
		return fmt.Errorf("%w: %q", ErrUnknownClass, m.Class)
	}
	if err := gamedata.ValidateKit(c.Catalog, def); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingAbility, err)
	}

	if pet := petFor(def, m); pet != "" {
		petDef := c.Classes.GetPet(pet)
		if petDef == nil || !def.AllowsPet(pet) {
			return fmt.Errorf("%w: %q for %s", ErrUnknownPet, pet, def.ID)
		}
		if err := gamedata.ValidateKit(c.Catalog, petDef); err != nil {
			return fmt.Errorf("%w: %w", ErrMissingAbility, err)
		}
	}

	if m.Opener != "" && m.Opener != NoOpener {
		ab := c.Catalog.GetByID(m.Opener)
		if ab == nil || !ab.RequiresStealth || !slices.Contains(def.Abilities, m.Opener) {
			return fmt.Errorf("%w: opener %q for %s", ErrInvalidRoster, m.Opener, def.ID)
		}
	}
	for slot, curse := range m.Curses {
		if slot < 0 || slot >= enemies {
			return fmt.Errorf("%w: curse slot %d", ErrInvalidPriority, slot)
		}
		if !slices.Contains(def.Abilities, curse) {
			return fmt.Errorf("%w: curse %q for %s", ErrInvalidRoster, curse, def.ID)
		}
	}
	return nil
}

// petFor returns the pet identifier a member brings, or "".
func petFor(def *gamedata.ClassDef, m Member) string {
	switch m.Pet {
	case NoPet:
		return ""
	case "":
		return def.DefaultPet
	default:
		return m.Pet
	}
}

// priority converts a team's slots for target acquisition.
func (t Team) priority() targeting.TeamPriority {
	p := targeting.NoPriority()
	if t.KillTarget != nil {
		p.KillSlot = *t.KillTarget
	}
	if t.CCTarget != nil {
		p.CCSlot = *t.CCTarget
	}
	return p
}
