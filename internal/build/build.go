// Package build aggregates every modifier source of a character (innate
// rules, passive tree, equipment, auras) and resolves them into stats.
package build

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/gem"
	"github.com/udisondev/lightning/internal/item"
	"github.com/udisondev/lightning/internal/modifier"
	"github.com/udisondev/lightning/internal/stat"
	"github.com/udisondev/lightning/internal/tree"
)

// Slot is an equipment slot.
type Slot string

const (
	Helm       Slot = "Helm"
	BodyArmour Slot = "BodyArmour"
	Gloves     Slot = "Gloves"
	Boots      Slot = "Boots"
	Belt       Slot = "Belt"
	Amulet     Slot = "Amulet"
	Weapon     Slot = "Weapon"
	Offhand    Slot = "Offhand"
	Ring       Slot = "Ring"
	Ring2      Slot = "Ring2"
)

const (
	flaskPrefix = "Flask"
	jewelPrefix = "TreeJewel"
	maxFlasks   = 5
)

var fixedSlots = []Slot{Helm, BodyArmour, Gloves, Boots, Belt, Amulet, Weapon, Offhand, Ring, Ring2}

// FlaskSlot returns flask slot n, counted from 1.
func FlaskSlot(n int) Slot { return Slot(flaskPrefix + strconv.Itoa(n)) }

// JewelSlot returns the slot of the jewel socketed in tree node id.
func JewelSlot(node uint16) Slot {
	return Slot(jewelPrefix + strconv.FormatUint(uint64(node), 10))
}

// JewelNode returns the tree node of a jewel slot.
func (s Slot) JewelNode() (uint16, bool) {
	rest, ok := strings.CutPrefix(string(s), jewelPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// Valid reports whether s names an existing slot.
func (s Slot) Valid() bool {
	if slices.Contains(fixedSlots, s) {
		return true
	}
	if rest, ok := strings.CutPrefix(string(s), flaskPrefix); ok {
		n, err := strconv.Atoi(rest)
		return err == nil && n >= 1 && n <= maxFlasks
	}
	_, ok := s.JewelNode()
	return ok
}

// GemLink is a group of linked gems socketed in one item.
type GemLink struct {
	Slot Slot
	Gems []*gem.Gem
}

// Active returns the enabled active skill gems of the link.
func (l GemLink) Active() []*gem.Gem {
	var out []*gem.Gem
	for _, g := range l.Gems {
		if g.Enabled && !g.Support() {
			out = append(out, g)
		}
	}
	return out
}

// Supports returns the enabled support gems of the link.
func (l GemLink) Supports() []*gem.Gem {
	var out []*gem.Gem
	for _, g := range l.Gems {
		if g.Enabled && g.Support() {
			out = append(out, g)
		}
	}
	return out
}

// Build is one character. Not safe for concurrent use.
type Build struct {
	Name      string
	Tree      *tree.Allocation
	Equipment map[Slot]*item.Item
	GemLinks  []GemLink
	Bandit    Bandit
	Campaign  Campaign

	tables *data.Tables
	parser *modifier.Parser
	props  stat.Properties
}

// New creates a level 1 character of class.
func New(tables *data.Tables, parser *modifier.Parser, class data.Class) *Build {
	return &Build{
		Name:      "Untitled Build",
		Tree:      tree.New(tables.Tree, class),
		Equipment: make(map[Slot]*item.Item),
		Bandit:    KillAll,
		Campaign:  Beach,
		tables:    tables,
		parser:    parser,
		props:     stat.NewProperties(),
	}
}

// Tables returns the static tables the build was created with.
func (b *Build) Tables() *data.Tables { return b.tables }

// Parser returns the modifier parser used by the build.
func (b *Build) Parser() *modifier.Parser { return b.parser }

// Equip puts it into slot, replacing what was there.
func (b *Build) Equip(slot Slot, it *item.Item) error {
	if !slot.Valid() {
		return fmt.Errorf("slot %q: %w", slot, ErrInvalidSlot)
	}
	b.Equipment[slot] = it
	return nil
}

// Unequip empties slot.
func (b *Build) Unequip(slot Slot) {
	delete(b.Equipment, slot)
}

// SetInt sets an integer property. Values are clamped when read.
func (b *Build) SetInt(p modifier.PropertyInt, v int64) { b.props.SetInt(p, v) }

// SetBool sets a boolean property.
func (b *Build) SetBool(p modifier.PropertyBool, v bool) { b.props.SetBool(p, v) }

// Int returns an integer property clamped to its constant bounds.
func (b *Build) Int(p modifier.PropertyInt) int64 { return b.props.Int(p) }

// Bool returns a boolean property.
func (b *Build) Bool(p modifier.PropertyBool) bool { return b.props.Bool(p) }

// Properties returns a copy of the build's properties.
func (b *Build) Properties() stat.Properties { return b.props.Clone() }

// Wielding returns the item classes of everything equipped.
func (b *Build) Wielding() modifier.ItemClassSet {
	var set modifier.ItemClassSet
	for _, it := range b.Equipment {
		set = set.With(it.Class())
	}
	return set
}

// IsHolding reports whether any equipped item belongs to classes.
func (b *Build) IsHolding(classes modifier.ItemClassSet) bool {
	return b.Wielding().Intersects(classes)
}

// slots returns the occupied slots in a stable order.
func (b *Build) slots() []Slot {
	return slices.Sorted(maps.Keys(b.Equipment))
}

// Modifiers collects innate, bandit, campaign, tree and equipment
// modifiers. With includeGlobal, modifiers of socketed auras are added.
func (b *Build) Modifiers(includeGlobal bool) []modifier.Modifier {
	mods := innateModifiers(b.tables.Tree.Classes[b.Tree.Class()])
	mods = append(mods, modifier.CloneAll(banditMods[b.Bandit])...)
	mods = append(mods, modifier.CloneAll(campaignMods[b.Campaign])...)
	mods = append(mods, b.Tree.Modifiers(b.parser)...)
	mods = append(mods, b.equipmentModifiers()...)

	if includeGlobal {
		for _, l := range b.GemLinks {
			for _, g := range l.Active() {
				if g.Tags().Has(modifier.TagAura) {
					mods = append(mods, g.Modifiers()...)
				}
			}
		}
	}
	return mods
}

func (b *Build) equipmentModifiers() []modifier.Modifier {
	var mods []modifier.Modifier
	for _, slot := range b.slots() {
		it := b.Equipment[slot]
		if node, ok := slot.JewelNode(); ok {
			if b.Tree.Has(node) {
				mods = append(mods, it.GlobalModifiers(b.parser, string(slot))...)
			}
			continue
		}
		mods = append(mods, it.GlobalModifiers(b.parser, string(slot))...)

		src := modifier.ItemSource(string(slot))
		d := it.Defence(b.parser)
		for _, part := range []struct {
			id  modifier.StatID
			val int64
		}{
			{modifier.Armour, d.Armour.Val()},
			{modifier.MaximumEnergyShield, d.EnergyShield.Val()},
			{modifier.EvasionRating, d.Evasion.Val()},
		} {
			if part.val != 0 {
				mods = append(mods, modifier.Modifier{Stat: part.id, Kind: modifier.Base, Amount: part.val, Source: src})
			}
		}
	}
	return mods
}

// Stats resolves mods for a skill carrying tags.
func (b *Build) Stats(mods []modifier.Modifier, tags modifier.TagSet) stat.Stats {
	return stat.Resolve(mods, stat.Context{
		Tags:       tags,
		Wielding:   b.Wielding(),
		Properties: b.props,
	})
}
