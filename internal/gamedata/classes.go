package gamedata

// Role describes how a class is played by the decision modules.
type Role string

const (
	RoleMelee  Role = "melee"
	RoleRanged Role = "ranged"
	RoleHealer Role = "healer"
)

// ResourceKind is the secondary resource a class spends.
type ResourceKind string

const (
	ResourceMana   ResourceKind = "mana"
	ResourceRage   ResourceKind = "rage"
	ResourceEnergy ResourceKind = "energy"
)

// ClassDef defines a playable class or pet type loaded from JSON.
type ClassDef struct {
	ID            string       `json:"id"`            // Unique identifier matching entity.Class (e.g., "warrior")
	Name          string       `json:"name"`          // Display name (e.g., "Warrior")
	Role          Role         `json:"role"`          // Decision profile
	Resource      ResourceKind `json:"resource"`      // Secondary resource
	Health        int          `json:"health"`        // Base maximum health
	ResourceMax   int          `json:"resourceMax"`   // Resource pool size
	ResourceStart int          `json:"resourceStart"` // Resource at match start
	ResourceRegen float64      `json:"resourceRegen"` // Resource gained per second
	MoveSpeed     float64      `json:"moveSpeed"`     // Yards per second
	AttackPower   float64      `json:"attackPower"`
	SpellPower    float64      `json:"spellPower"`
	CritChance    float64      `json:"critChance"` // 0..1
	AutoAttack    string       `json:"autoAttack,omitempty"`
	Abilities     []string     `json:"abilities"` // List of ability IDs this class can use
	DefaultPet    string       `json:"defaultPet,omitempty"`
	Pets          []string     `json:"pets,omitempty"` // Allowed pet types
}

// IsHealer reports whether the class plays the healer role.
func (c *ClassDef) IsHealer() bool {
	return c.Role == RoleHealer
}

// Kit returns every ability ID the class relies on, including its auto attack.
func (c *ClassDef) Kit() []string {
	kit := make([]string, 0, len(c.Abilities)+1)
	if c.AutoAttack != "" {
		kit = append(kit, c.AutoAttack)
	}
	return append(kit, c.Abilities...)
}

// AllowsPet reports whether petID is a valid pet choice for the class.
func (c *ClassDef) AllowsPet(petID string) bool {
	for _, p := range c.Pets {
		if p == petID {
			return true
		}
	}
	return false
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
	Pets    []ClassDef `json:"pets"`
}

// LoadClasses loads class and pet definitions from the embedded classes.json file.
func LoadClasses() (classes []ClassDef, pets []ClassDef, err error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, nil, err
	}
	return file.Classes, file.Pets, nil
}
