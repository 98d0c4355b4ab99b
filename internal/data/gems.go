package data

import (
	"log/slog"

	"github.com/udisondev/lightning/internal/modifier"
)

// GemStat is a stat slot of a gem; Value is set for constant stats.
type GemStat struct {
	ID    string `yaml:"id"`
	Value *int64 `yaml:"value"`
}

// GemLevel holds the per level values of a gem. Stats are positional and
// line up with Gem.Stats; a nil entry means "use the static value".
type GemLevel struct {
	Stats               []*int64 `yaml:"stats"`
	DamageEffectiveness *int64   `yaml:"damage_effectiveness"`
	DamageMultiplier    *int64   `yaml:"damage_multiplier"`
}

// QualityStat maps gem stat ids to their value per 1000 quality.
type QualityStat struct {
	Stats map[string]int64 `yaml:"stats"`
}

// Gem is a static skill gem definition.
type Gem struct {
	ID       string         `yaml:"-"`
	Name     string         `yaml:"name"`
	Support  bool           `yaml:"support"`
	TagList  []modifier.Tag `yaml:"tags"`
	MaxLevel int            `yaml:"max_level"`

	CastTime              int64 `yaml:"cast_time"`   // milliseconds, spells only
	CritChance            int64 `yaml:"crit_chance"` // hundredths of a percent
	DamageEffectiveness   int64 `yaml:"damage_effectiveness"`
	DamageMultiplier      int64 `yaml:"damage_multiplier"`
	AttackSpeedMultiplier int64 `yaml:"attack_speed_multiplier"`

	WeaponList []modifier.ItemClass `yaml:"weapon_restrictions"`

	Stats        []GemStat        `yaml:"stats"`
	Levels       map[int]GemLevel `yaml:"levels"`
	QualityStats []QualityStat    `yaml:"quality_stats"`

	// Computed at load.
	Tags    modifier.TagSet       `yaml:"-"`
	Weapons modifier.ItemClassSet `yaml:"-"`
}

// StatIndex returns the position of stat id in Stats.
func (g *Gem) StatIndex(id string) (int, bool) {
	for i, s := range g.Stats {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

// effectiveMaxLevel defaults an unset max level to 20.
func (g *Gem) effectiveMaxLevel() int {
	if g.MaxLevel > 0 {
		return g.MaxLevel
	}
	return 20
}

// GemStatMods maps a gem stat id to the modifiers it produces. Amounts
// are filled in from the gem's level or quality values.
var GemStatMods = map[string][]modifier.Modifier{
	"damage_+%": {
		{Stat: modifier.Damage, Kind: modifier.Inc},
	},
	"base_cast_speed_+%": {
		{Stat: modifier.CastSpeed, Kind: modifier.Inc},
	},
	"attack_speed_+%": {
		{Stat: modifier.AttackSpeed, Kind: modifier.Inc, Tags: modifier.Tags(modifier.TagAttack)},
	},
	"spell_minimum_base_fire_damage": {
		{Stat: modifier.MinFireDamage, Kind: modifier.Base, Tags: modifier.Tags(modifier.TagSpell)},
	},
	"spell_maximum_base_fire_damage": {
		{Stat: modifier.MaxFireDamage, Kind: modifier.Base, Tags: modifier.Tags(modifier.TagSpell)},
	},
	"spell_minimum_base_cold_damage": {
		{Stat: modifier.MinColdDamage, Kind: modifier.Base, Tags: modifier.Tags(modifier.TagSpell)},
	},
	"spell_maximum_base_cold_damage": {
		{Stat: modifier.MaxColdDamage, Kind: modifier.Base, Tags: modifier.Tags(modifier.TagSpell)},
	},
	"support_concentrated_effect_skill_area_of_effect_+%_final": {
		{Stat: modifier.AreaOfEffect, Kind: modifier.More},
	},
	"support_area_concentrate_area_damage_+%_final": {
		{Stat: modifier.Damage, Kind: modifier.More, Tags: modifier.Tags(modifier.TagArea)},
	},
	"physical_damage_+%": {
		{Stat: modifier.PhysicalDamage, Kind: modifier.Inc},
	},
	"critical_strike_chance_+%": {
		{Stat: modifier.CriticalStrikeChance, Kind: modifier.Inc},
	},
	"base_maximum_life_+%": {
		{Stat: modifier.MaximumLife, Kind: modifier.Inc},
	},
	"base_resist_all_elements_%": {
		{Stat: modifier.FireResistance, Kind: modifier.Base},
		{Stat: modifier.ColdResistance, Kind: modifier.Base},
		{Stat: modifier.LightningResistance, Kind: modifier.Base},
	},
}

// checkGemStats logs gem stat ids with no modifier mapping. They are
// allowed and contribute nothing.
func checkGemStats(gems map[string]*Gem) {
	for id, g := range gems {
		for _, s := range g.Stats {
			if _, ok := GemStatMods[s.ID]; !ok {
				slog.Debug("unmapped gem stat", "gem", id, "stat", s.ID)
			}
		}
		for _, q := range g.QualityStats {
			for sid := range q.Stats {
				if _, ok := GemStatMods[sid]; !ok {
					slog.Debug("unmapped gem quality stat", "gem", id, "stat", sid)
				}
			}
		}
	}
}

func indexGems(gems map[string]*Gem) {
	for id, g := range gems {
		g.ID = id
		g.Tags = modifier.Tags(g.TagList...)
		g.Weapons = modifier.ItemClasses(g.WeaponList...)
		g.MaxLevel = g.effectiveMaxLevel()
	}
}
