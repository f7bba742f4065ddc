package entity

// Team filters a combatant table down to one side.
type Team struct {
	Number  int
	Members []*Combatant
}

// NewTeam collects the members of team number from combatants.
func NewTeam(number int, combatants []*Combatant) *Team {
	t := &Team{Number: number}
	for _, c := range combatants {
		if c.Team == number {
			t.Members = append(t.Members, c)
		}
	}
	return t
}

// AliveMemberCount returns the number of living non-pet members.
func (t *Team) AliveMemberCount() int {
	count := 0
	for _, m := range t.Members {
		if m.IsAlive() && !m.IsPet() {
			count++
		}
	}
	return count
}

// IsDefeated returns true when every non-pet member is dead.
func (t *Team) IsDefeated() bool {
	return t.AliveMemberCount() == 0
}

// HealthFraction returns the team's combined health over combined max
// health, counting non-pet members only.
func (t *Team) HealthFraction() float64 {
	var health, total float64
	for _, m := range t.Members {
		if m.IsPet() {
			continue
		}
		health += m.Health
		total += m.MaxHealth
	}
	if total == 0 {
		return 0
	}
	return health / total
}

// BySlot returns the non-pet member in the given roster slot, or nil.
func (t *Team) BySlot(slot int) *Combatant {
	for _, m := range t.Members {
		if m.Slot == slot && !m.IsPet() {
			return m
		}
	}
	return nil
}
