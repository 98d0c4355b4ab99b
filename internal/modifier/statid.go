package modifier

// StatID identifies a statistic accumulated by the resolver.
type StatID uint16

const (
	Strength StatID = iota
	Dexterity
	Intelligence
	Attributes
	AttackSpeed
	CastSpeed
	WarcrySpeed
	CooldownRecoverySpeed
	ProjectileSpeed
	TrapThrowingSpeed
	ChanceToBlockAttackDamage
	ChanceToBlockSpellDamage
	ChanceToSuppressSpellDamage
	FireDamageOverTimeMultiplier
	ColdDamageOverTimeMultiplier
	ChaosDamageOverTimeMultiplier
	PhysicalDamageOverTimeMultiplier
	DamageOverTimeMultiplier
	FireDamageOverTime
	ColdDamageOverTime
	ChaosDamageOverTime
	PhysicalDamageOverTime
	DamageOverTime
	MinPhysicalDamage
	MaxPhysicalDamage
	MinFireDamage
	MaxFireDamage
	MinColdDamage
	MaxColdDamage
	MinLightningDamage
	MaxLightningDamage
	MinChaosDamage
	MaxChaosDamage
	FireDamage
	ColdDamage
	LightningDamage
	ChaosDamage
	PhysicalDamage
	Damage
	AreaOfEffect
	AccuracyRating
	MovementSpeed
	SkillEffectDuration
	Duration
	ImpaleEffect
	MinimumFrenzyCharges
	MinimumPowerCharges
	MinimumEnduranceCharges
	MaximumFrenzyCharges
	MaximumPowerCharges
	MaximumEnduranceCharges
	MaximumLife
	MaximumMana
	MinimumRage
	MaximumRage
	MaximumEnergyShield
	EnergyShield
	EnergyShieldRechargeRate
	LifeRegenerationRate
	ManaRegenerationRate
	ManaReservationEfficiency
	CriticalStrikeChance
	CriticalStrikeMultiplier
	Armour
	EvasionRating
	StunThreshold
	ChanceToAvoidBeingStunned
	MaximumFireResistance
	MaximumColdResistance
	MaximumLightningResistance
	MaximumChaosResistance
	FireResistance
	ColdResistance
	LightningResistance
	ChaosResistance
	FlaskChargesGained
	FlaskEffectDuration
	FlaskRecoveryRate
	FlaskChargesUsed
	ManaCost
	LifeCost
	Cost
	LifeRegeneration
	LifeRegenerationPct
	PassiveSkillPoints
	FireDamagePen
	ColdDamagePen
	LightningDamagePen
	ChaosDamagePen
	ChanceToHit
	ChanceToEvade

	statCount
)

var statNames = [statCount]string{
	Strength:                         "Strength",
	Dexterity:                        "Dexterity",
	Intelligence:                     "Intelligence",
	Attributes:                       "Attributes",
	AttackSpeed:                      "AttackSpeed",
	CastSpeed:                        "CastSpeed",
	WarcrySpeed:                      "WarcrySpeed",
	CooldownRecoverySpeed:            "CooldownRecoverySpeed",
	ProjectileSpeed:                  "ProjectileSpeed",
	TrapThrowingSpeed:                "TrapThrowingSpeed",
	ChanceToBlockAttackDamage:        "ChanceToBlockAttackDamage",
	ChanceToBlockSpellDamage:         "ChanceToBlockSpellDamage",
	ChanceToSuppressSpellDamage:      "ChanceToSuppressSpellDamage",
	FireDamageOverTimeMultiplier:     "FireDamageOverTimeMultiplier",
	ColdDamageOverTimeMultiplier:     "ColdDamageOverTimeMultiplier",
	ChaosDamageOverTimeMultiplier:    "ChaosDamageOverTimeMultiplier",
	PhysicalDamageOverTimeMultiplier: "PhysicalDamageOverTimeMultiplier",
	DamageOverTimeMultiplier:         "DamageOverTimeMultiplier",
	FireDamageOverTime:               "FireDamageOverTime",
	ColdDamageOverTime:               "ColdDamageOverTime",
	ChaosDamageOverTime:              "ChaosDamageOverTime",
	PhysicalDamageOverTime:           "PhysicalDamageOverTime",
	DamageOverTime:                   "DamageOverTime",
	MinPhysicalDamage:                "MinPhysicalDamage",
	MaxPhysicalDamage:                "MaxPhysicalDamage",
	MinFireDamage:                    "MinFireDamage",
	MaxFireDamage:                    "MaxFireDamage",
	MinColdDamage:                    "MinColdDamage",
	MaxColdDamage:                    "MaxColdDamage",
	MinLightningDamage:               "MinLightningDamage",
	MaxLightningDamage:               "MaxLightningDamage",
	MinChaosDamage:                   "MinChaosDamage",
	MaxChaosDamage:                   "MaxChaosDamage",
	FireDamage:                       "FireDamage",
	ColdDamage:                       "ColdDamage",
	LightningDamage:                  "LightningDamage",
	ChaosDamage:                      "ChaosDamage",
	PhysicalDamage:                   "PhysicalDamage",
	Damage:                           "Damage",
	AreaOfEffect:                     "AreaOfEffect",
	AccuracyRating:                   "AccuracyRating",
	MovementSpeed:                    "MovementSpeed",
	SkillEffectDuration:              "SkillEffectDuration",
	Duration:                         "Duration",
	ImpaleEffect:                     "ImpaleEffect",
	MinimumFrenzyCharges:             "MinimumFrenzyCharges",
	MinimumPowerCharges:              "MinimumPowerCharges",
	MinimumEnduranceCharges:          "MinimumEnduranceCharges",
	MaximumFrenzyCharges:             "MaximumFrenzyCharges",
	MaximumPowerCharges:              "MaximumPowerCharges",
	MaximumEnduranceCharges:          "MaximumEnduranceCharges",
	MaximumLife:                      "MaximumLife",
	MaximumMana:                      "MaximumMana",
	MinimumRage:                      "MinimumRage",
	MaximumRage:                      "MaximumRage",
	MaximumEnergyShield:              "MaximumEnergyShield",
	EnergyShield:                     "EnergyShield",
	EnergyShieldRechargeRate:         "EnergyShieldRechargeRate",
	LifeRegenerationRate:             "LifeRegenerationRate",
	ManaRegenerationRate:             "ManaRegenerationRate",
	ManaReservationEfficiency:        "ManaReservationEfficiency",
	CriticalStrikeChance:             "CriticalStrikeChance",
	CriticalStrikeMultiplier:         "CriticalStrikeMultiplier",
	Armour:                           "Armour",
	EvasionRating:                    "EvasionRating",
	StunThreshold:                    "StunThreshold",
	ChanceToAvoidBeingStunned:        "ChanceToAvoidBeingStunned",
	MaximumFireResistance:            "MaximumFireResistance",
	MaximumColdResistance:            "MaximumColdResistance",
	MaximumLightningResistance:       "MaximumLightningResistance",
	MaximumChaosResistance:           "MaximumChaosResistance",
	FireResistance:                   "FireResistance",
	ColdResistance:                   "ColdResistance",
	LightningResistance:              "LightningResistance",
	ChaosResistance:                  "ChaosResistance",
	FlaskChargesGained:               "FlaskChargesGained",
	FlaskEffectDuration:              "FlaskEffectDuration",
	FlaskRecoveryRate:                "FlaskRecoveryRate",
	FlaskChargesUsed:                 "FlaskChargesUsed",
	ManaCost:                         "ManaCost",
	LifeCost:                         "LifeCost",
	Cost:                             "Cost",
	LifeRegeneration:                 "LifeRegeneration",
	LifeRegenerationPct:              "LifeRegenerationPct",
	PassiveSkillPoints:               "PassiveSkillPoints",
	FireDamagePen:                    "FireDamagePen",
	ColdDamagePen:                    "ColdDamagePen",
	LightningDamagePen:               "LightningDamagePen",
	ChaosDamagePen:                   "ChaosDamagePen",
	ChanceToHit:                      "ChanceToHit",
	ChanceToEvade:                    "ChanceToEvade",
}

// String returns the stat identifier name, e.g. "MaximumLife".
func (s StatID) String() string {
	if s < statCount {
		return statNames[s]
	}
	return "StatID(?)"
}

// Valid reports whether s is a known statistic.
func (s StatID) Valid() bool {
	return s < statCount
}

// ParseStatID looks up a statistic by its identifier name.
func ParseStatID(name string) (StatID, bool) {
	for i, n := range statNames {
		if n == name {
			return StatID(i), true
		}
	}
	return 0, false
}

// UnmarshalText implements encoding.TextUnmarshaler so stat ids can be
// written by name in YAML tables.
func (s *StatID) UnmarshalText(text []byte) error {
	id, ok := ParseStatID(string(text))
	if !ok {
		return &UnknownNameError{Kind: "stat", Name: string(text)}
	}
	*s = id
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s StatID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
