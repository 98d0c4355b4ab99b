// Package gem models socketed skill gems and the modifiers they grant.
package gem

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

// ErrUnknownGem is returned for gem ids missing from the gem table.
var ErrUnknownGem = errors.New("unknown gem")

// Gem is a gem instance at some level and quality.
type Gem struct {
	Data    *data.Gem
	Enabled bool
	Level   int
	Quality int64
}

// Def is the persisted form of a Gem.
type Def struct {
	ID       string `yaml:"id" json:"id"`
	Level    int    `yaml:"level,omitempty" json:"level,omitempty"`
	Quality  int64  `yaml:"quality,omitempty" json:"quality,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// FromDef resolves d against the gem table. Levels are clamped to
// [1, max level]; a gem with no max level only gets the lower bound.
func FromDef(tables *data.Tables, d Def) (*Gem, error) {
	g := tables.Gem(d.ID)
	if g == nil {
		return nil, fmt.Errorf("gem %q: %w", d.ID, ErrUnknownGem)
	}
	level := max(d.Level, 1)
	if g.MaxLevel > 0 {
		level = min(level, g.MaxLevel)
	}
	return &Gem{
		Data:    g,
		Enabled: !d.Disabled,
		Level:   level,
		Quality: d.Quality,
	}, nil
}

// Def exports the gem.
func (g *Gem) Def() Def {
	return Def{ID: g.Data.ID, Level: g.Level, Quality: g.Quality, Disabled: !g.Enabled}
}

// Support reports whether g is a support gem.
func (g *Gem) Support() bool { return g.Data.Support }

// Tags returns the skill tags of g.
func (g *Gem) Tags() modifier.TagSet { return g.Data.Tags }

// Allows reports whether the skill can be used with a weapon of class.
func (g *Gem) Allows(class modifier.ItemClass) bool {
	return g.Data.Weapons.Empty() || g.Data.Weapons.Has(class)
}

func (g *Gem) level() (data.GemLevel, bool) {
	l, ok := g.Data.Levels[g.Level]
	return l, ok
}

// StatValue returns the value of gem stat id at the gem's level, falling
// back to the stat's constant value.
func (g *Gem) StatValue(id string) (int64, bool) {
	idx, ok := g.Data.StatIndex(id)
	if !ok {
		return 0, false
	}
	if l, ok := g.level(); ok && idx < len(l.Stats) && l.Stats[idx] != nil {
		return *l.Stats[idx], true
	}
	if v := g.Data.Stats[idx].Value; v != nil {
		return *v, true
	}
	return 0, false
}

// AddedEffectiveness is the extra percentage applied to added damage.
func (g *Gem) AddedEffectiveness() (int64, bool) {
	if l, ok := g.level(); ok && l.DamageEffectiveness != nil {
		return *l.DamageEffectiveness, true
	}
	return g.Data.DamageEffectiveness, g.Data.DamageEffectiveness != 0
}

// DamageMultiplier is the extra base damage in hundredths of a percent.
func (g *Gem) DamageMultiplier() (int64, bool) {
	if l, ok := g.level(); ok && l.DamageMultiplier != nil {
		return *l.DamageMultiplier, true
	}
	return g.Data.DamageMultiplier, g.Data.DamageMultiplier != 0
}

// CritChance returns the skill's base critical strike chance.
func (g *Gem) CritChance() (int64, bool) {
	return g.Data.CritChance, g.Data.CritChance != 0
}

// CastTime returns the skill's cast time in milliseconds.
func (g *Gem) CastTime() (int64, bool) {
	return g.Data.CastTime, g.Data.CastTime != 0
}

// Modifiers returns the modifiers granted by the gem's stats, its quality
// and its attack speed multiplier. Unmapped stats grant nothing. A
// disabled gem grants nothing.
func (g *Gem) Modifiers() []modifier.Modifier {
	if !g.Enabled {
		return nil
	}
	var mods []modifier.Modifier
	for _, s := range g.Data.Stats {
		v, _ := g.StatValue(s.ID)
		mods = appendStat(mods, s.ID, v)
	}
	for _, q := range g.Data.QualityStats {
		for _, id := range slices.Sorted(maps.Keys(q.Stats)) {
			mods = appendStat(mods, id, q.Stats[id]*g.Quality/1000)
		}
	}
	if m := g.Data.AttackSpeedMultiplier; m != 0 {
		mods = append(mods, modifier.Modifier{
			Stat:   modifier.AttackSpeed,
			Kind:   modifier.More,
			Amount: m,
			Source: modifier.GemSource,
		})
	}
	return mods
}

func appendStat(mods []modifier.Modifier, id string, amount int64) []modifier.Modifier {
	for _, tmpl := range data.GemStatMods[id] {
		m := tmpl.Clone()
		m.Amount = amount
		m.Source = modifier.GemSource
		mods = append(mods, m)
	}
	return mods
}
