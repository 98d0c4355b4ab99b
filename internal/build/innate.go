package build

import (
	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

// Bandit is the act two bandit quest reward.
type Bandit string

const (
	Alira   Bandit = "alira"
	Kraityn Bandit = "kraityn"
	Oak     Bandit = "oak"
	KillAll Bandit = "kill_all"
)

// Campaign is how far into the campaign the character is, which decides
// the resistance penalty.
type Campaign string

const (
	Beach   Campaign = "beach"
	ActFive Campaign = "act_five"
	ActTen  Campaign = "act_ten"
)

func base(s modifier.StatID, amount int64) modifier.Modifier {
	return modifier.Modifier{Stat: s, Kind: modifier.Base, Amount: amount, Source: modifier.Innate}
}

func resists(amount int64, chaos bool) []modifier.Modifier {
	mods := []modifier.Modifier{
		base(modifier.FireResistance, amount),
		base(modifier.ColdResistance, amount),
		base(modifier.LightningResistance, amount),
	}
	if chaos {
		mods = append(mods, base(modifier.ChaosResistance, amount))
	}
	return mods
}

var banditMods = map[Bandit][]modifier.Modifier{
	Alira: resists(15, false),
	Kraityn: {
		{Stat: modifier.MovementSpeed, Kind: modifier.Inc, Amount: 8, Source: modifier.Innate},
	},
	Oak:     {base(modifier.MaximumLife, 40)},
	KillAll: {base(modifier.PassiveSkillPoints, 1)},
}

var campaignMods = map[Campaign][]modifier.Modifier{
	Beach:   nil,
	ActFive: resists(-30, true),
	ActTen:  resists(-60, true),
}

// Valid reports whether b is a known choice.
func (b Bandit) Valid() bool {
	_, ok := banditMods[b]
	return ok
}

// Valid reports whether c is a known choice.
func (c Campaign) Valid() bool {
	_, ok := campaignMods[c]
	return ok
}

func perProperty(m modifier.Modifier, p modifier.PropertyInt) modifier.Modifier {
	m.Mutations = []modifier.Mutation{modifier.PerProperty(1, p)}
	return m
}

func perStat(m modifier.Modifier, div int64, s modifier.StatID) modifier.Modifier {
	m.Mutations = []modifier.Mutation{modifier.PerStat(div, s)}
	return m
}

// innateModifiers are the rules every character of class starts with.
func innateModifiers(class data.ClassData) []modifier.Modifier {
	attack := modifier.Tags(modifier.TagAttack)
	melee := modifier.Tags(modifier.TagMelee)

	rage := perProperty(modifier.Modifier{Stat: modifier.Damage, Kind: modifier.More, Amount: 1, Source: modifier.Innate}, modifier.Rage)
	rage.Tags = attack
	strMelee := perStat(modifier.Modifier{Stat: modifier.PhysicalDamage, Kind: modifier.Inc, Amount: 1, Source: modifier.Innate}, 5, modifier.Strength)
	strMelee.Tags = melee

	return []modifier.Modifier{
		perProperty(base(modifier.MaximumLife, 12), modifier.Level),
		base(modifier.MaximumLife, 38),
		perStat(base(modifier.MaximumLife, 1), 2, modifier.Strength),
		base(modifier.MaximumFrenzyCharges, 3),
		base(modifier.MaximumPowerCharges, 3),
		base(modifier.MaximumEnduranceCharges, 3),
		base(modifier.Strength, class.Str),
		base(modifier.Dexterity, class.Dex),
		base(modifier.Intelligence, class.Int),
		rage,
		perProperty(base(modifier.PassiveSkillPoints, 1), modifier.Level),
		base(modifier.PassiveSkillPoints, 22), // quest rewards, minus the one at level 1
		strMelee,
		perProperty(modifier.Modifier{Stat: modifier.Damage, Kind: modifier.More, Amount: 4, Source: modifier.Innate}, modifier.FrenzyCharges),
		perProperty(modifier.Modifier{Stat: modifier.AttackSpeed, Kind: modifier.Inc, Amount: 4, Source: modifier.Innate}, modifier.FrenzyCharges),
		perProperty(modifier.Modifier{Stat: modifier.CastSpeed, Kind: modifier.Inc, Amount: 4, Source: modifier.Innate}, modifier.FrenzyCharges),
		perProperty(modifier.Modifier{Stat: modifier.CriticalStrikeChance, Kind: modifier.Inc, Amount: 50, Source: modifier.Innate}, modifier.PowerCharges),
		base(modifier.MaximumFireResistance, 75),
		base(modifier.MaximumColdResistance, 75),
		base(modifier.MaximumLightningResistance, 75),
		base(modifier.MaximumChaosResistance, 75),
	}
}

// MonsterModifiers returns the default defences of a monster of level,
// capped at data.MaxMonsterLevel.
func MonsterModifiers(tables *data.Tables, level int64) ([]modifier.Modifier, bool) {
	m, ok := tables.Monster(level)
	if !ok {
		return nil, false
	}
	return []modifier.Modifier{
		base(modifier.MaximumLife, m.Life),
		base(modifier.EvasionRating, m.Evasion),
		base(modifier.Armour, m.Armour),
	}, true
}
