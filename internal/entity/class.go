// Package entity provides the combatant records the arena simulation mutates.
package entity

// Class represents a combatant's class or pet type.
type Class int

const (
	ClassWarrior Class = iota
	ClassMage
	ClassRogue
	ClassPriest
	ClassWarlock
	ClassPaladin
	ClassHunter
	PetFelhunter
	PetCat
	PetSpider
)

// Classes lists the playable classes in display order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue, ClassPriest, ClassWarlock, ClassPaladin, ClassHunter}

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	case ClassRogue:
		return "Rogue"
	case ClassPriest:
		return "Priest"
	case ClassWarlock:
		return "Warlock"
	case ClassPaladin:
		return "Paladin"
	case ClassHunter:
		return "Hunter"
	case PetFelhunter:
		return "Felhunter"
	case PetCat:
		return "Cat"
	case PetSpider:
		return "Spider"
	default:
		return "Unknown"
	}
}

// ID returns the class identifier for data lookup.
func (c Class) ID() string {
	switch c {
	case ClassWarrior:
		return "warrior"
	case ClassMage:
		return "mage"
	case ClassRogue:
		return "rogue"
	case ClassPriest:
		return "priest"
	case ClassWarlock:
		return "warlock"
	case ClassPaladin:
		return "paladin"
	case ClassHunter:
		return "hunter"
	case PetFelhunter:
		return "felhunter"
	case PetCat:
		return "cat"
	case PetSpider:
		return "spider"
	default:
		return "unknown"
	}
}

// IsPet reports whether c is a pet type.
func (c Class) IsPet() bool {
	return c >= PetFelhunter && c <= PetSpider
}

// ParseClass returns the class with the given identifier.
func ParseClass(id string) (Class, bool) {
	for c := ClassWarrior; c <= PetSpider; c++ {
		if c.ID() == id {
			return c, true
		}
	}
	return 0, false
}
