// Package item models equipped item instances on top of static bases.
//
// Modifiers on a weapon or armour piece are either local (they change the
// item's own damage, speed or defences) or global (they go into the
// character's modifier pool).
package item

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
	"github.com/udisondev/lightning/internal/stat"
)

// ErrUnknownBase is returned when an item names a base that is not in the
// base item table.
var ErrUnknownBase = errors.New("unknown base item")

// Item is one item instance.
type Item struct {
	Base      *data.BaseItem
	Name      string
	Rarity    data.Rarity
	Implicits []string
	Explicits []string
	Enchants  []string
	Quality   int64
}

// Def is the persisted form of an Item. Nil implicits fall back to the
// base's implicits.
type Def struct {
	Base      string      `yaml:"base" json:"base"`
	Name      string      `yaml:"name,omitempty" json:"name,omitempty"`
	Rarity    data.Rarity `yaml:"rarity,omitempty" json:"rarity,omitempty"`
	Implicits []string    `yaml:"implicits,omitempty" json:"implicits,omitempty"`
	Explicits []string    `yaml:"explicits,omitempty" json:"explicits,omitempty"`
	Enchants  []string    `yaml:"enchants,omitempty" json:"enchants,omitempty"`
	Quality   int64       `yaml:"quality,omitempty" json:"quality,omitempty"`
}

// New creates a normal item of base with the base's implicits.
func New(base *data.BaseItem) *Item {
	return &Item{
		Base:      base,
		Name:      base.Name,
		Rarity:    data.Normal,
		Implicits: slices.Clone(base.Implicits),
	}
}

// FromDef resolves d against the base item table.
func FromDef(tables *data.Tables, d Def) (*Item, error) {
	base := tables.Item(d.Base)
	if base == nil {
		return nil, fmt.Errorf("item %q: %w", d.Base, ErrUnknownBase)
	}
	it := New(base)
	if d.Name != "" {
		it.Name = d.Name
	}
	if d.Rarity != "" {
		it.Rarity = d.Rarity
	}
	if d.Implicits != nil {
		it.Implicits = slices.Clone(d.Implicits)
	}
	it.Explicits = slices.Clone(d.Explicits)
	it.Enchants = slices.Clone(d.Enchants)
	it.Quality = d.Quality
	return it, nil
}

// Def exports the item.
func (it *Item) Def() Def {
	return Def{
		Base:      it.Base.Name,
		Name:      it.Name,
		Rarity:    it.Rarity,
		Implicits: slices.Clone(it.Implicits),
		Explicits: slices.Clone(it.Explicits),
		Enchants:  slices.Clone(it.Enchants),
		Quality:   it.Quality,
	}
}

// Class returns the item class of the base.
func (it *Item) Class() modifier.ItemClass { return it.Base.Class }

type localMatch struct {
	stat modifier.StatID
	kind modifier.Kind
}

var localWeapon = []localMatch{
	{modifier.MinPhysicalDamage, modifier.Base},
	{modifier.MaxPhysicalDamage, modifier.Base},
	{modifier.PhysicalDamage, modifier.Inc},
	{modifier.AttackSpeed, modifier.Inc},
	{modifier.AccuracyRating, modifier.Base},
}

var localArmour = []localMatch{
	{modifier.EvasionRating, modifier.Base},
	{modifier.EvasionRating, modifier.Inc},
	{modifier.Armour, modifier.Base},
	{modifier.Armour, modifier.Inc},
	{modifier.MaximumEnergyShield, modifier.Base},
	{modifier.MaximumEnergyShield, modifier.Inc},
}

func (it *Item) localTable() []localMatch {
	switch {
	case it.Base.IsWeapon():
		return localWeapon
	case it.Base.IsArmour():
		return localArmour
	default:
		return nil
	}
}

// isLocal reports whether m changes the item itself. Only direct
// modifiers can be local.
func isLocal(m modifier.Modifier, table []localMatch) bool {
	if !m.Direct() {
		return false
	}
	return slices.Contains(table, localMatch{m.Stat, m.Kind})
}

func (it *Item) lines() []string {
	out := make([]string, 0, len(it.Implicits)+len(it.Explicits)+len(it.Enchants))
	out = append(out, it.Implicits...)
	out = append(out, it.Explicits...)
	return append(out, it.Enchants...)
}

func (it *Item) modifiers(p *modifier.Parser, local bool, src modifier.Source) []modifier.Modifier {
	table := it.localTable()
	var out []modifier.Modifier
	for _, line := range it.lines() {
		for _, m := range p.ParseLines(line, src) {
			if isLocal(m, table) == local {
				out = append(out, m)
			}
		}
	}
	return out
}

// LocalModifiers returns the modifiers that apply to the item itself.
func (it *Item) LocalModifiers(p *modifier.Parser) []modifier.Modifier {
	return it.modifiers(p, true, modifier.Innate)
}

// GlobalModifiers returns the modifiers that go into the character's
// pool, stamped with the slot the item is equipped in.
func (it *Item) GlobalModifiers(p *modifier.Parser, slot string) []modifier.Modifier {
	return it.modifiers(p, false, modifier.ItemSource(slot))
}

// Damage returns the weapon's damage range for damage type dt after local
// modifiers and quality. Only physical damage has a base range; other
// types report 0-0. Non-weapons report false.
func (it *Item) Damage(p *modifier.Parser, dt modifier.DamageType) (minDmg, maxDmg int64, ok bool) {
	if !it.Base.IsWeapon() {
		return 0, 0, false
	}
	if dt != modifier.Physical {
		return 0, 0, true
	}
	local := it.LocalModifiers(p)

	lo := stat.CalcStat(modifier.MinPhysicalDamage, local, 0)
	hi := stat.CalcStat(modifier.MaxPhysicalDamage, local, 0)
	lo.ApplyModifier(modifier.Modifier{Stat: modifier.MinPhysicalDamage, Kind: modifier.Base, Amount: it.Base.PhysicalMin})
	hi.ApplyModifier(modifier.Modifier{Stat: modifier.MaxPhysicalDamage, Kind: modifier.Base, Amount: it.Base.PhysicalMax})

	inc := stat.CalcStat(modifier.PhysicalDamage, local, 0)
	inc.ApplyModifier(modifier.Modifier{Stat: modifier.PhysicalDamage, Kind: modifier.More, Amount: it.Quality})
	lo.Assimilate(inc)
	hi.Assimilate(inc)
	return lo.Val(), hi.Val(), true
}

// Defence holds the evaluated defences of an armour piece.
type Defence struct {
	Armour       stat.Accumulator
	Evasion      stat.Accumulator
	EnergyShield stat.Accumulator
}

// Defence evaluates the base defences (the average of each rolled range)
// with local modifiers and quality. Non-armour items yield zero values.
func (it *Item) Defence(p *modifier.Parser) Defence {
	d := Defence{
		Armour:       stat.NewAccumulator(),
		Evasion:      stat.NewAccumulator(),
		EnergyShield: stat.NewAccumulator(),
	}
	if !it.Base.IsArmour() {
		return d
	}
	local := it.LocalModifiers(p)

	parts := []struct {
		acc  *stat.Accumulator
		id   modifier.StatID
		base *data.MinMax
	}{
		{&d.Armour, modifier.Armour, it.Base.Armour},
		{&d.Evasion, modifier.EvasionRating, it.Base.Evasion},
		{&d.EnergyShield, modifier.MaximumEnergyShield, it.Base.EnergyShield},
	}
	for _, part := range parts {
		if part.base != nil {
			part.acc.ApplyModifier(modifier.Modifier{Stat: part.id, Kind: modifier.Base, Amount: part.base.Average()})
		}
		part.acc.Assimilate(stat.CalcStat(part.id, local, 0))
		part.acc.ApplyModifier(modifier.Modifier{Stat: part.id, Kind: modifier.More, Amount: it.Quality})
	}
	return d
}

// AttackTime returns the weapon's time per attack in milliseconds after
// local attack speed.
func (it *Item) AttackTime(p *modifier.Parser) (int64, bool) {
	if it.Base.AttackTime == 0 {
		return 0, false
	}
	speed := stat.CalcStat(modifier.AttackSpeed, it.LocalModifiers(p), 0)
	return speed.ValCustomInv(it.Base.AttackTime), true
}

// CritChance returns the weapon's base critical strike chance in
// hundredths of a percent.
func (it *Item) CritChance() (int64, bool) {
	if !it.Base.IsWeapon() {
		return 0, false
	}
	return it.Base.CritChance, true
}

// Accuracy returns the weapon's local accuracy rating.
func (it *Item) Accuracy(p *modifier.Parser) stat.Accumulator {
	if !it.Base.IsWeapon() {
		return stat.NewAccumulator()
	}
	return stat.CalcStat(modifier.AccuracyRating, it.LocalModifiers(p), 0)
}
