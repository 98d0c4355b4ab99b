package modifier

import "strings"

type statName struct {
	name string
	stat StatID
}

// statNameTable is matched against the end of a stat phrase in order.
// Names that end with another name ("area of effect" / "effect",
// "fire damage" / "damage") must come first.
var statNameTable = []statName{
	{"strength", Strength},
	{"dexterity", Dexterity},
	{"intelligence", Intelligence},
	{"attributes", Attributes},

	{"attack speed", AttackSpeed},
	{"cast speed", CastSpeed},
	{"warcry speed", WarcrySpeed},
	{"cooldown recovery speed", CooldownRecoverySpeed},
	{"projectile speed", ProjectileSpeed},
	{"trap throwing speed", TrapThrowingSpeed},

	{"chance to block attack damage", ChanceToBlockAttackDamage},
	{"chance to block spell damage", ChanceToBlockSpellDamage},
	{"chance to suppress spell damage", ChanceToSuppressSpellDamage},

	{"fire damage over time multiplier", FireDamageOverTimeMultiplier},
	{"cold damage over time multiplier", ColdDamageOverTimeMultiplier},
	{"chaos damage over time multiplier", ChaosDamageOverTimeMultiplier},
	{"physical damage over time multiplier", PhysicalDamageOverTimeMultiplier},
	{"damage over time multiplier", DamageOverTimeMultiplier},
	{"fire damage over time", FireDamageOverTime},
	{"cold damage over time", ColdDamageOverTime},
	{"chaos damage over time", ChaosDamageOverTime},
	{"physical damage over time", PhysicalDamageOverTime},
	{"damage over time", DamageOverTime},
	{"fire damage", FireDamage},
	{"cold damage", ColdDamage},
	{"lightning damage", LightningDamage},
	{"chaos damage", ChaosDamage},
	{"physical damage", PhysicalDamage},
	{"damage", Damage},

	{"area of effect", AreaOfEffect},
	{"accuracy rating", AccuracyRating},
	{"movement speed", MovementSpeed},
	{"skill effect duration", SkillEffectDuration},
	{"duration", Duration},

	{"impale effect", ImpaleEffect},

	{"minimum frenzy charges", MinimumFrenzyCharges},
	{"minimum power charges", MinimumPowerCharges},
	{"minimum endurance charges", MinimumEnduranceCharges},
	{"maximum frenzy charges", MaximumFrenzyCharges},
	{"maximum power charges", MaximumPowerCharges},
	{"maximum endurance charges", MaximumEnduranceCharges},

	{"maximum life", MaximumLife},
	{"maximum mana", MaximumMana},
	{"minimum rage", MinimumRage},
	{"maximum rage", MaximumRage},
	{"maximum energy shield", MaximumEnergyShield},
	{"energy shield recharge rate", EnergyShieldRechargeRate},
	{"energy shield", EnergyShield},
	{"life regeneration rate", LifeRegenerationRate},
	{"mana regeneration rate", ManaRegenerationRate},
	{"mana reservation efficiency", ManaReservationEfficiency},

	{"critical strike chance", CriticalStrikeChance},
	{"critical strike multiplier", CriticalStrikeMultiplier},

	{"armour", Armour},
	{"evasion rating", EvasionRating},
	{"stun threshold", StunThreshold},
	{"chance to avoid being stunned", ChanceToAvoidBeingStunned},

	{"maximum fire resistance", MaximumFireResistance},
	{"maximum cold resistance", MaximumColdResistance},
	{"maximum lightning resistance", MaximumLightningResistance},
	{"maximum chaos resistance", MaximumChaosResistance},
	{"fire resistance", FireResistance},
	{"cold resistance", ColdResistance},
	{"lightning resistance", LightningResistance},
	{"chaos resistance", ChaosResistance},

	{"flask charges gained", FlaskChargesGained},
	{"flask effect duration", FlaskEffectDuration},
	{"flask recovery rate", FlaskRecoveryRate},
	{"flask charges used", FlaskChargesUsed},

	{"mana cost", ManaCost},
	{"life cost", LifeCost},
	{"cost", Cost},
}

type multiEntry struct {
	name   string
	damage DamageTypeSet
}

// multiStats expand a whole phrase into several stats.
var multiStats = map[string][]multiEntry{
	"attributes": {
		{name: "strength"}, {name: "dexterity"}, {name: "intelligence"},
	},
	"maximum elemental resistances": {
		{"maximum fire resistance", DamageTypesOf(Fire)},
		{"maximum cold resistance", DamageTypesOf(Cold)},
		{"maximum lightning resistance", DamageTypesOf(Lightning)},
	},
	"elemental resistances": {
		{"fire resistance", DamageTypesOf(Fire)},
		{"cold resistance", DamageTypesOf(Cold)},
		{"lightning resistance", DamageTypesOf(Lightning)},
	},
	"maximum resistances": {
		{"maximum fire resistance", DamageTypesOf(Fire)},
		{"maximum cold resistance", DamageTypesOf(Cold)},
		{"maximum lightning resistance", DamageTypesOf(Lightning)},
		{"maximum chaos resistance", DamageTypesOf(Chaos)},
	},
	"resistances": {
		{"fire resistance", DamageTypesOf(Fire)},
		{"cold resistance", DamageTypesOf(Cold)},
		{"lightning resistance", DamageTypesOf(Lightning)},
		{"chaos resistance", DamageTypesOf(Chaos)},
	},
	"elemental damage": {
		{"fire damage", DamageTypesOf(Fire)},
		{"cold damage", DamageTypesOf(Cold)},
		{"lightning damage", DamageTypesOf(Lightning)},
	},
}

// tagWords are single words allowed in front of a stat name.
var tagWords = map[string]Tag{
	"spell":      TagSpell,
	"melee":      TagMelee,
	"attack":     TagAttack,
	"projectile": TagProjectile,
	"brand":      TagBrand,
	"mine":       TagMine,
	"trap":       TagTrap,
	"curse":      TagCurse,
	"minion":     TagMinion,
	"totem":      TagTotem,
}

var damageWords = map[string]DamageType{
	"physical":  Physical,
	"fire":      Fire,
	"cold":      Cold,
	"lightning": Lightning,
	"chaos":     Chaos,
}

// addedDamage maps "adds X to Y <phrase>" to its min/max stats.
var addedDamage = map[string][2]StatID{
	"physical damage":  {MinPhysicalDamage, MaxPhysicalDamage},
	"fire damage":      {MinFireDamage, MaxFireDamage},
	"cold damage":      {MinColdDamage, MaxColdDamage},
	"lightning damage": {MinLightningDamage, MaxLightningDamage},
	"chaos damage":     {MinChaosDamage, MaxChaosDamage},
}

var penetration = map[string]StatID{
	"fire":      FireDamagePen,
	"cold":      ColdDamagePen,
	"lightning": LightningDamagePen,
	"chaos":     ChaosDamagePen,
}

// statPart is one resolved stat of a stat phrase.
type statPart struct {
	stat   StatID
	tags   TagSet
	damage DamageTypeSet
}

// parseStatSingle resolves a phrase like "melee physical damage" against
// statNameTable. The first name the phrase ends with is used; every word
// before it must be a tag or damage type word.
func parseStatSingle(phrase string) (statPart, bool) {
	var part statPart
	idx := -1
	for i, sn := range statNameTable {
		if strings.HasSuffix(phrase, sn.name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return part, false
	}
	part.stat = statNameTable[idx].stat

	rest := phrase[:len(phrase)-len(statNameTable[idx].name)]
	for _, word := range strings.Fields(rest) {
		if t, ok := tagWords[word]; ok {
			part.tags = part.tags.With(t)
			continue
		}
		if d, ok := damageWords[word]; ok {
			part.damage = part.damage.With(d)
			continue
		}
		return part, false
	}
	if rest != "" && !strings.HasSuffix(rest, " ") {
		return part, false
	}
	return part, true
}

// parseStat resolves a phrase that may name several stats at once.
func parseStat(phrase string) ([]statPart, bool) {
	if entries, ok := multiStats[phrase]; ok {
		var parts []statPart
		for _, e := range entries {
			if p, ok := parseStatSingle(e.name); ok {
				p.damage |= e.damage
				parts = append(parts, p)
			}
		}
		return parts, len(parts) > 0
	}
	p, ok := parseStatSingle(phrase)
	if !ok {
		return nil, false
	}
	return []statPart{p}, true
}

// lookupStatName resolves an exact stat name.
func lookupStatName(name string) (StatID, bool) {
	for _, sn := range statNameTable {
		if sn.name == name {
			return sn.stat, true
		}
	}
	return 0, false
}
