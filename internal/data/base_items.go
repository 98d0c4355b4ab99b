package data

import (
	"slices"

	"github.com/udisondev/lightning/internal/modifier"
)

// Rarity of an item instance.
type Rarity string

const (
	Normal Rarity = "normal"
	Magic  Rarity = "magic"
	Rare   Rarity = "rare"
	Unique Rarity = "unique"
)

// MinMax is a rolled property range.
type MinMax struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Average returns the midpoint of the range, truncated.
func (m MinMax) Average() int64 {
	return (m.Min + m.Max) / 2
}

// BaseItem is a static item base.
type BaseItem struct {
	Name      string             `yaml:"name"`
	Class     modifier.ItemClass `yaml:"class"`
	Tags      []string           `yaml:"tags"`
	Implicits []string           `yaml:"implicits"`

	Armour       *MinMax `yaml:"armour"`
	Evasion      *MinMax `yaml:"evasion"`
	EnergyShield *MinMax `yaml:"energy_shield"`

	PhysicalMin int64 `yaml:"physical_damage_min"`
	PhysicalMax int64 `yaml:"physical_damage_max"`
	AttackTime  int64 `yaml:"attack_time"`            // milliseconds
	CritChance  int64 `yaml:"critical_strike_chance"` // hundredths of a percent
}

// HasTag reports whether the base carries tag, e.g. "weapon" or "armour".
func (b *BaseItem) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

// IsWeapon reports whether the base is a weapon.
func (b *BaseItem) IsWeapon() bool { return b.HasTag("weapon") }

// IsArmour reports whether the base is an armour piece.
func (b *BaseItem) IsArmour() bool { return b.HasTag("armour") }
