package gamedata

// AuraKind is the effect category of an aura.
type AuraKind string

const (
	AuraDamageOverTime       AuraKind = "dot"
	AuraHealOverTime         AuraKind = "hot"
	AuraRoot                 AuraKind = "root"
	AuraStun                 AuraKind = "stun"
	AuraFear                 AuraKind = "fear"
	AuraIncapacitate         AuraKind = "incapacitate"
	AuraSlow                 AuraKind = "slow"
	AuraHealingReduction     AuraKind = "healing_reduction"
	AuraDamageReduction      AuraKind = "damage_reduction"
	AuraAbsorb               AuraKind = "absorb"
	AuraImmunity             AuraKind = "immunity"
	AuraCCImmunity           AuraKind = "cc_immunity"
	AuraCastTimeIncrease     AuraKind = "cast_time_increase"
	AuraStealth              AuraKind = "stealth"
	AuraDetection            AuraKind = "detection"
	AuraAttackPower          AuraKind = "attack_power"
	AuraSpellPower           AuraKind = "spell_power"
	AuraMaxHealth            AuraKind = "max_health"
	AuraSpeed                AuraKind = "speed"
	AuraDamageDealtReduction AuraKind = "damage_dealt_reduction"
	AuraMarker               AuraKind = "marker"
)

// IsCrowdControl reports whether the kind is subject to diminishing returns.
func (k AuraKind) IsCrowdControl() bool {
	switch k {
	case AuraStun, AuraFear, AuraIncapacitate, AuraRoot, AuraSlow:
		return true
	}
	return false
}

// IsHardCC reports whether the kind removes all agency (and cancels casts).
func (k AuraKind) IsHardCC() bool {
	return k == AuraStun || k == AuraFear || k == AuraIncapacitate
}

// IsHostile reports whether the kind is harmful to its holder.
func (k AuraKind) IsHostile() bool {
	switch k {
	case AuraDamageOverTime, AuraRoot, AuraStun, AuraFear, AuraIncapacitate,
		AuraSlow, AuraHealingReduction, AuraCastTimeIncrease:
		return true
	}
	return false
}

// IsPeriodic reports whether the kind ticks damage or healing.
func (k AuraKind) IsPeriodic() bool {
	return k == AuraDamageOverTime || k == AuraHealOverTime
}

// Valid reports whether k is a known aura kind.
func (k AuraKind) Valid() bool {
	switch k {
	case AuraDamageOverTime, AuraHealOverTime, AuraRoot, AuraStun, AuraFear,
		AuraIncapacitate, AuraSlow, AuraHealingReduction, AuraDamageReduction,
		AuraAbsorb, AuraImmunity, AuraCCImmunity, AuraCastTimeIncrease,
		AuraStealth, AuraDetection, AuraAttackPower, AuraSpellPower,
		AuraMaxHealth, AuraSpeed, AuraDamageDealtReduction, AuraMarker:
		return true
	}
	return false
}
