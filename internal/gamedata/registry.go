package gamedata

import (
	"errors"
	"fmt"
)

// ErrMissingAbility is returned when a class kit references an ability the
// catalog does not define.
var ErrMissingAbility = errors.New("missing ability definition")

// Catalog is the read-only ability lookup consumed by the engine.
type Catalog interface {
	GetByID(id string) *AbilityDef
}

// =============================================================================
// AbilityRegistry
// =============================================================================

// AbilityRegistry holds loaded ability definitions and provides lookup utilities.
type AbilityRegistry struct {
	abilities map[string]*AbilityDef
	all       []AbilityDef
}

// NewAbilityRegistry creates a registry from loaded ability definitions.
func NewAbilityRegistry(abilities []AbilityDef) *AbilityRegistry {
	registry := &AbilityRegistry{
		abilities: make(map[string]*AbilityDef),
		all:       abilities,
	}
	for i := range abilities {
		registry.abilities[abilities[i].ID] = &abilities[i]
	}
	return registry
}

// LoadAbilityRegistry loads and creates a registry from the embedded abilities.json.
func LoadAbilityRegistry() (*AbilityRegistry, error) {
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	if len(abilities) == 0 {
		return nil, errors.New("no abilities loaded from abilities.json")
	}
	registry := NewAbilityRegistry(abilities)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// MustLoadAbilityRegistry loads a registry, panicking on error.
func MustLoadAbilityRegistry() *AbilityRegistry {
	registry, err := LoadAbilityRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Validate checks every definition for values the engine cannot resolve.
func (r *AbilityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.all))
	for i := range r.all {
		a := &r.all[i]
		if a.ID == "" {
			return fmt.Errorf("ability at index %d has no id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate ability id %q", a.ID)
		}
		seen[a.ID] = true
		if a.BaseMax < a.BaseMin {
			return fmt.Errorf("ability %q: baseMax %.0f below baseMin %.0f", a.ID, a.BaseMax, a.BaseMin)
		}
		if a.Channel && a.TickInterval <= 0 {
			return fmt.Errorf("ability %q: channel without tickInterval", a.ID)
		}
		for _, aura := range []*AuraDef{a.Aura, a.SecondaryAura, a.SelfAura} {
			if aura == nil {
				continue
			}
			if !aura.Kind.Valid() {
				return fmt.Errorf("ability %q: unknown aura kind %q", a.ID, aura.Kind)
			}
			if aura.Kind.IsPeriodic() && aura.TickInterval <= 0 {
				return fmt.Errorf("ability %q: periodic aura without tickInterval", a.ID)
			}
		}
	}
	return nil
}

// GetByID returns the ability definition with the given ID, or nil if not found.
func (r *AbilityRegistry) GetByID(id string) *AbilityDef {
	return r.abilities[id]
}

// GetMultiple returns ability definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *AbilityRegistry) GetMultiple(ids []string) []*AbilityDef {
	result := make([]*AbilityDef, 0, len(ids))
	for _, id := range ids {
		if ability := r.abilities[id]; ability != nil {
			result = append(result, ability)
		}
	}
	return result
}

// All returns all ability definitions.
func (r *AbilityRegistry) All() []AbilityDef {
	return r.all
}

// Count returns the number of abilities in the registry.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry holds class and pet definitions keyed by ID.
type ClassRegistry struct {
	classes map[string]*ClassDef
	pets    map[string]*ClassDef
	all     []ClassDef
	allPets []ClassDef
}

// NewClassRegistry creates a registry from loaded class and pet definitions.
func NewClassRegistry(classes, pets []ClassDef) *ClassRegistry {
	registry := &ClassRegistry{
		classes: make(map[string]*ClassDef, len(classes)),
		pets:    make(map[string]*ClassDef, len(pets)),
		all:     classes,
		allPets: pets,
	}
	for i := range classes {
		registry.classes[classes[i].ID] = &classes[i]
	}
	for i := range pets {
		registry.pets[pets[i].ID] = &pets[i]
	}
	return registry
}

// LoadClassRegistry loads and creates a registry from the embedded classes.json.
func LoadClassRegistry() (*ClassRegistry, error) {
	classes, pets, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.json")
	}
	return NewClassRegistry(classes, pets), nil
}

// MustLoadClassRegistry loads a registry, panicking on error.
func MustLoadClassRegistry() *ClassRegistry {
	registry, err := LoadClassRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the class definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	return r.classes[id]
}

// GetPet returns the pet definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetPet(id string) *ClassDef {
	return r.pets[id]
}

// All returns all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return r.all
}

// Pets returns all pet definitions.
func (r *ClassRegistry) Pets() []ClassDef {
	return r.allPets
}

// Count returns the number of classes in the registry.
func (r *ClassRegistry) Count() int {
	return len(r.all)
}

// ValidateKit checks that every ability in def's kit exists in the catalog.
func ValidateKit(catalog Catalog, def *ClassDef) error {
	for _, id := range def.Kit() {
		if catalog.GetByID(id) == nil {
			return fmt.Errorf("%s kit: %w: %q", def.ID, ErrMissingAbility, id)
		}
	}
	return nil
}
