// Package calc turns a build into the summary numbers shown to the user:
// defences, per skill offence, and deltas between two builds.
package calc

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/lightning/internal/build"
	"github.com/udisondev/lightning/internal/gem"
	"github.com/udisondev/lightning/internal/item"
	"github.com/udisondev/lightning/internal/modifier"
	"github.com/udisondev/lightning/internal/stat"
)

// ErrNotActive is returned when offence is asked for a support gem.
var ErrNotActive = errors.New("gem is not an active skill")

// Summary maps a display label to its value.
type Summary map[string]int64

const (
	KeyMaximumLife      = "Maximum Life"
	KeyStrength         = "Strength"
	KeyDexterity        = "Dexterity"
	KeyIntelligence     = "Intelligence"
	KeyArmour           = "Armour"
	KeyEvasion          = "Evasion"
	KeyEnergyShield     = "Energy Shield"
	KeyLifeRegeneration = "Life Regeneration"

	KeyCritMulti       = "Crit Multi"
	KeyChanceToHitMH   = "Chance to Hit (MH)"
	KeyChanceToHitOH   = "Chance to Hit (OH)"
	KeyCritChanceMH    = "Crit Chance (MH)"
	KeyCritChanceOH    = "Crit Chance (OH)"
	KeyCritChanceSpell = "Crit Chance (Spell)"
	KeyDPS             = "DPS"
	KeySpeed           = "Speed"
)

var resistances = []struct {
	key, maxKey string
	id, maxID   modifier.StatID
}{
	{"Fire Resistance", "Maximum Fire Resistance", modifier.FireResistance, modifier.MaximumFireResistance},
	{"Cold Resistance", "Maximum Cold Resistance", modifier.ColdResistance, modifier.MaximumColdResistance},
	{"Lightning Resistance", "Maximum Lightning Resistance", modifier.LightningResistance, modifier.MaximumLightningResistance},
	{"Chaos Resistance", "Maximum Chaos Resistance", modifier.ChaosResistance, modifier.MaximumChaosResistance},
}

// Compare returns b minus a for every label in either summary, keeping
// only the labels that changed.
func Compare(a, b Summary) Summary {
	out := make(Summary)
	for k, v := range a {
		if d := b[k] - v; d != 0 {
			out[k] = d
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok && v != 0 {
			out[k] = v
		}
	}
	return out
}

// Defence summarises life, resistances, attributes and defences, auras
// included.
func Defence(b *build.Build) Summary {
	stats := b.Stats(b.Modifiers(true), 0)
	life := stats.Stat(modifier.MaximumLife).ValRoundedUp()

	s := Summary{
		KeyMaximumLife:  life,
		KeyStrength:     stats.Val(modifier.Strength),
		KeyDexterity:    stats.Val(modifier.Dexterity),
		KeyIntelligence: stats.Val(modifier.Intelligence),
		KeyArmour:       stats.Val(modifier.Armour),
		KeyEvasion:      stats.Val(modifier.EvasionRating),
		KeyEnergyShield: stats.Val(modifier.MaximumEnergyShield),
	}
	for _, r := range resistances {
		s[r.key] = stats.Val(r.id)
		s[r.maxKey] = stats.Val(r.maxID)
	}

	regen := stats.Stat(modifier.LifeRegeneration)
	regen.ApplyModifier(modifier.Modifier{
		Stat:   modifier.LifeRegeneration,
		Kind:   modifier.Base,
		Amount: stats.Val(modifier.LifeRegenerationPct) * life / 10000,
	})
	regen.Assimilate(stats.Stat(modifier.LifeRegenerationRate))
	s[KeyLifeRegeneration] = regen.Val()
	return s
}

type damageGroup struct {
	dt             modifier.DamageType
	id, minID, max modifier.StatID
}

var damageGroups = []damageGroup{
	{modifier.Physical, modifier.PhysicalDamage, modifier.MinPhysicalDamage, modifier.MaxPhysicalDamage},
	{modifier.Fire, modifier.FireDamage, modifier.MinFireDamage, modifier.MaxFireDamage},
	{modifier.Cold, modifier.ColdDamage, modifier.MinColdDamage, modifier.MaxColdDamage},
	{modifier.Lightning, modifier.LightningDamage, modifier.MinLightningDamage, modifier.MaxLightningDamage},
	{modifier.Chaos, modifier.ChaosDamage, modifier.MinChaosDamage, modifier.MaxChaosDamage},
}

var handSlots = []struct {
	slot            build.Slot
	hitKey, critKey string
}{
	{build.Weapon, KeyChanceToHitMH, KeyCritChanceMH},
	{build.Offhand, KeyChanceToHitOH, KeyCritChanceOH},
}

// Offence summarises the active skill with its supports against a
// monster of the character's level. Attacks are evaluated per weapon the
// skill can be used with; spells use the skill's own damage.
func Offence(b *build.Build, active *gem.Gem, supports []*gem.Gem) (Summary, error) {
	if active.Support() {
		return nil, fmt.Errorf("gem %q: %w", active.Data.ID, ErrNotActive)
	}
	tags := active.Tags()
	parser := b.Parser()

	mods := b.Modifiers(true)
	mods = append(mods, active.Modifiers()...)
	for _, g := range supports {
		mods = append(mods, g.Modifiers()...)
	}
	stats := b.Stats(mods, tags)
	monster := monsterStats(b)

	critMulti := stats.Val(modifier.CriticalStrikeMultiplier)
	s := Summary{KeyCritMulti: critMulti}
	dmg := stats.Stat(modifier.Damage)

	var total int64
	if tags.Has(modifier.TagAttack) {
		for _, h := range handSlots {
			weapon := usableWeapon(b, active, h.slot)
			if weapon == nil {
				continue
			}
			hit := chanceToHit(stats, monster, weapon.Accuracy(parser))
			crit := stats.Stat(modifier.CriticalStrikeChance)
			if c, ok := weapon.CritChance(); ok {
				crit.ApplyModifier(modifier.Modifier{Stat: modifier.CriticalStrikeChance, Kind: modifier.Base, Amount: c})
			}
			s[h.hitKey] = hit
			s[h.critKey] = crit.Val()

			for _, dg := range damageGroups {
				avg := weaponAverageDamage(stats, dmg, weapon, active, parser, dg)
				if avg > 0 {
					total += hitDamage(avg, crit.Val(), critMulti, hit)
				}
			}
		}
	}
	if tags.Has(modifier.TagSpell) {
		crit := stats.Stat(modifier.CriticalStrikeChance)
		if c, ok := active.CritChance(); ok {
			crit.ApplyModifier(modifier.Modifier{Stat: modifier.CriticalStrikeChance, Kind: modifier.Base, Amount: c})
		}
		s[KeyCritChanceSpell] = crit.Val()
		for _, dg := range damageGroups {
			if avg := spellAverageDamage(stats, dmg, dg); avg > 0 {
				total += hitDamage(avg, crit.Val(), critMulti, 100)
			}
		}
	}

	if time := skillTime(b, stats, active); time != 0 {
		s[KeyDPS] = total * 1000 / time
		s[KeySpeed] = time
	}
	slog.Debug("offence computed", "skill", active.Data.ID, "damage", total, "dps", s[KeyDPS])
	return s, nil
}

// monsterStats resolves the default monster of the build's level.
func monsterStats(b *build.Build) stat.Stats {
	mods, _ := build.MonsterModifiers(b.Tables(), b.Int(modifier.Level))
	return stat.Resolve(mods, stat.Context{Properties: stat.NewProperties()})
}

func usableWeapon(b *build.Build, active *gem.Gem, slot build.Slot) *item.Item {
	it, ok := b.Equipment[slot]
	if !ok || !active.Allows(it.Class()) {
		return nil
	}
	return it
}

// hitDamage scales average damage by hit and crit chances. crit and
// critMulti are in hundredths, hit is a whole percentage.
func hitDamage(damage, crit, critMulti, hit int64) int64 {
	effCrit := crit * hit / 100
	onCrit := damage * hit * effCrit * critMulti / 100000000
	onHit := damage * hit * (10000 - effCrit) / 1000000
	return onCrit + onHit
}

func chanceToHit(stats, monster stat.Stats, weaponAccuracy stat.Accumulator) int64 {
	acc := stats.Stat(modifier.AccuracyRating)
	acc.Assimilate(weaponAccuracy)
	accuracy := float64(acc.Val())
	evasion := float64(monster.Val(modifier.EvasionRating))

	var chance int64
	if denom := accuracy + math.Pow(evasion*0.2, 0.9); denom > 0 {
		chance = int64(1.25 * accuracy / denom * 100)
	}
	hit := stats.Stat(modifier.ChanceToHit)
	hit.ApplyModifier(modifier.Modifier{Stat: modifier.ChanceToHit, Kind: modifier.Base, Amount: min(max(chance, 0), 100)})
	return hit.Val()
}

func weaponAverageDamage(stats stat.Stats, dmg stat.Accumulator, weapon *item.Item, active *gem.Gem, p *modifier.Parser, dg damageGroup) int64 {
	lo, hi, ok := weapon.Damage(p, dg.dt)
	if !ok {
		return 0
	}
	class := weapon.Class()

	minStat := stats.Stat(dg.id).WithWeapon(class)
	maxStat := stats.Stat(dg.id).WithWeapon(class)
	minStat.ApplyModifier(modifier.Modifier{Stat: dg.minID, Kind: modifier.Base, Amount: lo})
	maxStat.ApplyModifier(modifier.Modifier{Stat: dg.max, Kind: modifier.Base, Amount: hi})
	minStat.Assimilate(dmg)
	maxStat.Assimilate(dmg)

	addedMin := stats.Stat(dg.minID).WithWeapon(class)
	addedMax := stats.Stat(dg.max).WithWeapon(class)
	addedMin.Assimilate(dmg)
	addedMax.Assimilate(dmg)
	added := (addedMin.Val() + addedMax.Val()) / 2
	if eff, ok := active.AddedEffectiveness(); ok {
		added = added * (100 + eff) / 100
	}

	base := (minStat.Val() + maxStat.Val()) / 2
	if mult, ok := active.DamageMultiplier(); ok {
		base = base * (10000 + mult) / 10000
	}
	return base + added
}

func spellAverageDamage(stats stat.Stats, dmg stat.Accumulator, dg damageGroup) int64 {
	group := stats.Stat(dg.id)
	minStat := stats.Stat(dg.minID)
	maxStat := stats.Stat(dg.max)
	for _, a := range []*stat.Accumulator{&minStat, &maxStat} {
		a.Assimilate(group)
		a.Assimilate(dmg)
	}
	return (minStat.Val() + maxStat.Val()) / 2
}

// skillTime returns milliseconds per use: the cast time for spells, the
// average attack time of usable weapons for attacks.
func skillTime(b *build.Build, stats stat.Stats, active *gem.Gem) int64 {
	tags := active.Tags()
	switch {
	case tags.Has(modifier.TagSpell):
		castTime, ok := active.CastTime()
		if !ok {
			return 0
		}
		return stats.Stat(modifier.CastSpeed).ValCustomInv(castTime)
	case tags.Has(modifier.TagAttack):
		var sum, n int64
		for _, h := range handSlots {
			weapon := usableWeapon(b, active, h.slot)
			if weapon == nil {
				continue
			}
			if t, ok := weapon.AttackTime(b.Parser()); ok {
				sum += t
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return stats.Stat(modifier.AttackSpeed).ValCustomInv(sum / n)
	}
	return 0
}
