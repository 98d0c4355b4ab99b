package modifier

import (
	"fmt"
	"math/bits"
)

// UnknownNameError is returned when a table entry names an unknown
// stat, tag, damage type or item class.
type UnknownNameError struct {
	Kind string
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// Tag classifies skills; a modifier with tags only applies to skills
// carrying all of them.
type Tag uint8

const (
	TagSpell Tag = iota
	TagMelee
	TagAttack
	TagProjectile
	TagBrand
	TagMine
	TagTrap
	TagCurse
	TagMinion
	TagTotem
	TagAura
	TagHex
	TagActiveSkill
	TagBow
	TagCold
	TagFire
	TagLightning
	TagChaos
	TagPhysical
	TagArea
	TagDuration
	TagMovement
	TagWarcry
	TagSupport
	TagVaal
	TagStrike
	TagSlam
	TagHerald
	TagGuard
	TagTravel
	TagBlink
	TagChannelling
	TagGolem
	TagOrb
	TagNova
	TagMark
	TagLink
	TagTrigger

	tagCount
)

var tagNames = [tagCount]string{
	TagSpell:       "spell",
	TagMelee:       "melee",
	TagAttack:      "attack",
	TagProjectile:  "projectile",
	TagBrand:       "brand",
	TagMine:        "mine",
	TagTrap:        "trap",
	TagCurse:       "curse",
	TagMinion:      "minion",
	TagTotem:       "totem",
	TagAura:        "aura",
	TagHex:         "hex",
	TagActiveSkill: "active_skill",
	TagBow:         "bow",
	TagCold:        "cold",
	TagFire:        "fire",
	TagLightning:   "lightning",
	TagChaos:       "chaos",
	TagPhysical:    "physical",
	TagArea:        "area",
	TagDuration:    "duration",
	TagMovement:    "movement",
	TagWarcry:      "warcry",
	TagSupport:     "support",
	TagVaal:        "vaal",
	TagStrike:      "strike",
	TagSlam:        "slam",
	TagHerald:      "herald",
	TagGuard:       "guard",
	TagTravel:      "travel",
	TagBlink:       "blink",
	TagChannelling: "channelling",
	TagGolem:       "golem",
	TagOrb:         "orb",
	TagNova:        "nova",
	TagMark:        "mark",
	TagLink:        "link",
	TagTrigger:     "trigger",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return "tag(?)"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	for i, n := range tagNames {
		if n == string(text) {
			*t = Tag(i)
			return nil
		}
	}
	return &UnknownNameError{Kind: "tag", Name: string(text)}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TagSet is a bitset of tags. The zero value is the empty set.
type TagSet uint64

// Tags builds a set from the given tags.
func Tags(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// With returns s with t added.
func (s TagSet) With(t Tag) TagSet { return s | 1<<t }

// Has reports whether t is in s.
func (s TagSet) Has(t Tag) bool { return s&(1<<t) != 0 }

// Union returns s ∪ o.
func (s TagSet) Union(o TagSet) TagSet { return s | o }

// Superset reports whether every tag in o is also in s.
func (s TagSet) Superset(o TagSet) bool { return s&o == o }

// Empty reports whether the set holds no tags.
func (s TagSet) Empty() bool { return s == 0 }

// Len returns the number of tags in s.
func (s TagSet) Len() int { return bits.OnesCount64(uint64(s)) }

// Slice returns the tags in declaration order.
func (s TagSet) Slice() []Tag {
	var out []Tag
	for t := Tag(0); t < tagCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// DamageType is one of the five damage types.
type DamageType uint8

const (
	Physical DamageType = iota
	Fire
	Cold
	Lightning
	Chaos

	damageTypeCount
)

var damageTypeNames = [damageTypeCount]string{
	Physical:  "physical",
	Fire:      "fire",
	Cold:      "cold",
	Lightning: "lightning",
	Chaos:     "chaos",
}

func (d DamageType) String() string {
	if d < damageTypeCount {
		return damageTypeNames[d]
	}
	return "damage(?)"
}

// DamageTypes lists all damage types in declaration order.
func DamageTypes() []DamageType {
	return []DamageType{Physical, Fire, Cold, Lightning, Chaos}
}

// DamageTypeSet is a bitset of damage types.
type DamageTypeSet uint8

// DamageTypesOf builds a set from the given types.
func DamageTypesOf(types ...DamageType) DamageTypeSet {
	var s DamageTypeSet
	for _, d := range types {
		s |= 1 << d
	}
	return s
}

// Has reports whether d is in s.
func (s DamageTypeSet) Has(d DamageType) bool { return s&(1<<d) != 0 }

// With returns s with d added.
func (s DamageTypeSet) With(d DamageType) DamageTypeSet { return s | 1<<d }

// Empty reports whether s holds no damage type.
func (s DamageTypeSet) Empty() bool { return s == 0 }

// ItemClass is the class of a base item, used for weapon restrictions.
type ItemClass uint8

const (
	Unarmed ItemClass = iota
	Ring
	Amulet
	Claw
	Dagger
	Wand
	Bow
	Staff
	Warstaff
	Shield
	Sceptre
	FishingRod
	Quiver
	Boots
	Belt
	Helmet
	Gloves
	LifeFlask
	ManaFlask
	HybridFlask
	UtilityFlask
	AbyssJewel
	Jewel
	BodyArmour
	RuneDagger
	OneHandSword
	ThrustingOneHandSword
	OneHandAxe
	OneHandMace
	TwoHandSword
	TwoHandAxe
	TwoHandMace

	itemClassCount
)

var itemClassNames = [itemClassCount]string{
	Unarmed:               "Unarmed",
	Ring:                  "Ring",
	Amulet:                "Amulet",
	Claw:                  "Claw",
	Dagger:                "Dagger",
	Wand:                  "Wand",
	Bow:                   "Bow",
	Staff:                 "Staff",
	Warstaff:              "Warstaff",
	Shield:                "Shield",
	Sceptre:               "Sceptre",
	FishingRod:            "FishingRod",
	Quiver:                "Quiver",
	Boots:                 "Boots",
	Belt:                  "Belt",
	Helmet:                "Helmet",
	Gloves:                "Gloves",
	LifeFlask:             "LifeFlask",
	ManaFlask:             "ManaFlask",
	HybridFlask:           "HybridFlask",
	UtilityFlask:          "UtilityFlask",
	AbyssJewel:            "AbyssJewel",
	Jewel:                 "Jewel",
	BodyArmour:            "Body Armour",
	RuneDagger:            "Rune Dagger",
	OneHandSword:          "One Hand Sword",
	ThrustingOneHandSword: "Thrusting One Hand Sword",
	OneHandAxe:            "One Hand Axe",
	OneHandMace:           "One Hand Mace",
	TwoHandSword:          "Two Hand Sword",
	TwoHandAxe:            "Two Hand Axe",
	TwoHandMace:           "Two Hand Mace",
}

func (c ItemClass) String() string {
	if c < itemClassCount {
		return itemClassNames[c]
	}
	return "ItemClass(?)"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ItemClass) UnmarshalText(text []byte) error {
	for i, n := range itemClassNames {
		if n == string(text) {
			*c = ItemClass(i)
			return nil
		}
	}
	return &UnknownNameError{Kind: "item class", Name: string(text)}
}

// MarshalText implements encoding.TextMarshaler.
func (c ItemClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ItemClassSet is a bitset of item classes.
type ItemClassSet uint64

// ItemClasses builds a set from the given classes.
func ItemClasses(classes ...ItemClass) ItemClassSet {
	var s ItemClassSet
	for _, c := range classes {
		s |= 1 << c
	}
	return s
}

// Has reports whether c is in s.
func (s ItemClassSet) Has(c ItemClass) bool { return s&(1<<c) != 0 }

// With returns s with c added.
func (s ItemClassSet) With(c ItemClass) ItemClassSet { return s | 1<<c }

// Union returns s ∪ o.
func (s ItemClassSet) Union(o ItemClassSet) ItemClassSet { return s | o }

// Intersects reports whether s and o share at least one class.
func (s ItemClassSet) Intersects(o ItemClassSet) bool { return s&o != 0 }

// Empty reports whether s holds no class.
func (s ItemClassSet) Empty() bool { return s == 0 }
