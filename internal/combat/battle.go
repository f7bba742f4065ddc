// Package combat provides the real-time arena combat engine: the combatant
// table, intent resolution, auras, diminishing returns and casting.
package combat

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/entity"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/world"
)

// GlobalCooldown is the shared cooldown triggered by on-GCD abilities.
const GlobalCooldown = 1500 * time.Millisecond

// ErrConsistency reports an internal contract violation, such as an intent
// naming a combatant or ability that does not exist. It aborts the match.
var ErrConsistency = errors.New("combat state inconsistency")

// teamBuffKey dedups team-wide buffs within one step.
type teamBuffKey struct {
	team      int
	abilityID string
	targetID  int
}

// batchKey dedups buff application within one ability execution.
type batchKey struct {
	batch     int
	targetID  int
	abilityID string
	sourceID  int
	kind      gamedata.AuraKind
}

// Battle owns every piece of mutable state of one match.
type Battle struct {
	Catalog gamedata.Catalog
	Arena   *world.Arena
	Rng     *rand.Rand
	Log     *EventLog
	Queue   *IntentQueue
	Now     time.Duration

	combatants []*entity.Combatant
	byID       map[int]*entity.Combatant

	teamBuffs map[teamBuffKey]bool
	batchBufs map[batchKey]bool
	batch     int
	resolver  *EffectResolver
}

// NewBattle creates an empty battle.
func NewBattle(catalog gamedata.Catalog, arena *world.Arena, rng *rand.Rand, log *EventLog) *Battle {
	if log == nil {
		log = NewEventLog()
	}
	b := &Battle{
		Catalog:   catalog,
		Arena:     arena,
		Rng:       rng,
		Log:       log,
		Queue:     NewIntentQueue(),
		byID:      make(map[int]*entity.Combatant),
		teamBuffs: make(map[teamBuffKey]bool),
		batchBufs: make(map[batchKey]bool),
	}
	b.resolver = NewEffectResolver(b)
	return b
}

// Add registers a combatant. IDs must be unique and non-zero.
func (b *Battle) Add(c *entity.Combatant) error {
	if c.ID == entity.NoTarget {
		return fmt.Errorf("%w: combatant id 0 is reserved", ErrConsistency)
	}
	if _, dup := b.byID[c.ID]; dup {
		return fmt.Errorf("%w: duplicate combatant id %d", ErrConsistency, c.ID)
	}
	b.combatants = append(b.combatants, c)
	b.byID[c.ID] = c
	return nil
}

// Combatants returns the table in insertion order.
func (b *Battle) Combatants() []*entity.Combatant {
	return b.combatants
}

// Lookup returns the combatant with the given ID, or nil.
func (b *Battle) Lookup(id int) *entity.Combatant {
	return b.byID[id]
}

// Get returns the combatant with the given ID or an ErrConsistency error.
func (b *Battle) Get(id int) (*entity.Combatant, error) {
	c, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown combatant %d", ErrConsistency, id)
	}
	return c, nil
}

// Ability returns the definition for id or an ErrConsistency error.
func (b *Battle) Ability(id string) (*gamedata.AbilityDef, error) {
	def := b.Catalog.GetByID(id)
	if def == nil {
		return nil, fmt.Errorf("%w: unknown ability %q", ErrConsistency, id)
	}
	return def, nil
}

// Resolver returns the battle's effect resolver.
func (b *Battle) Resolver() *EffectResolver {
	return b.resolver
}

// Advance moves the clock forward by dt and opens a new step.
func (b *Battle) Advance(dt time.Duration) {
	b.Now += dt
	clear(b.teamBuffs)
	clear(b.batchBufs)
}

// nextBatch returns a fresh application batch ID.
func (b *Battle) nextBatch() int {
	b.batch++
	return b.batch
}

// emit appends an event stamped with the current time.
func (b *Battle) emit(e Event) Event {
	e.Time = b.Now
	return b.Log.Append(e)
}

// Enemies returns the living enemies of c in table order.
func (b *Battle) Enemies(c *entity.Combatant) []*entity.Combatant {
	var out []*entity.Combatant
	for _, o := range b.combatants {
		if o.Team != c.Team && o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}

// Allies returns the living allies of c, including c, in table order.
func (b *Battle) Allies(c *entity.Combatant) []*entity.Combatant {
	var out []*entity.Combatant
	for _, o := range b.combatants {
		if o.Team == c.Team && o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}

// CanSee reports whether observer can see target. Allies are always
// visible; stealthed enemies need a detection aura.
func CanSee(observer, target *entity.Combatant) bool {
	if target == nil || !target.IsAlive() {
		return false
	}
	if observer.Team == target.Team {
		return true
	}
	return !target.IsStealthed() || observer.HasDetection()
}
