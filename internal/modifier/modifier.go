// Package modifier turns human readable modifier lines such as
// "50% increased melee physical damage per frenzy charge" into structured
// Modifier records, and defines the vocabulary (stats, tags, item classes,
// character properties) those records are written in.
package modifier

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is how a modifier folds into its statistic.
type Kind uint8

const (
	Base     Kind = iota // flat addition
	Inc                  // percent increase, summed
	More                 // percent more, compounded
	Override             // replaces the final value, lowest wins
)

func (k Kind) String() string {
	switch k {
	case Base:
		return "Base"
	case Inc:
		return "Inc"
	case More:
		return "More"
	case Override:
		return "Override"
	default:
		return "Kind(?)"
	}
}

// SourceKind identifies where a modifier came from.
type SourceKind uint8

const (
	SourceInnate SourceKind = iota
	SourceNode
	SourceMastery
	SourceItem
	SourceGem
)

// Source is the provenance of a modifier.
type Source struct {
	Kind   SourceKind
	Node   uint16 // SourceNode, SourceMastery
	Effect uint16 // SourceMastery
	Slot   string // SourceItem
}

// Innate is the source of built-in character rules.
var Innate = Source{Kind: SourceInnate}

// NodeSource returns the source for a passive tree node.
func NodeSource(node uint16) Source {
	return Source{Kind: SourceNode, Node: node}
}

// MasterySource returns the source for a chosen mastery effect.
func MasterySource(node, effect uint16) Source {
	return Source{Kind: SourceMastery, Node: node, Effect: effect}
}

// ItemSource returns the source for an item equipped in slot.
func ItemSource(slot string) Source {
	return Source{Kind: SourceItem, Slot: slot}
}

// GemSource is the source of skill gem modifiers.
var GemSource = Source{Kind: SourceGem}

func (s Source) String() string {
	switch s.Kind {
	case SourceInnate:
		return "innate"
	case SourceNode:
		return fmt.Sprintf("node %d", s.Node)
	case SourceMastery:
		return fmt.Sprintf("mastery %d/%d", s.Node, s.Effect)
	case SourceItem:
		return "item " + s.Slot
	case SourceGem:
		return "gem"
	default:
		return "unknown"
	}
}

// MutationKind selects what a Mutation multiplies by.
type MutationKind uint8

const (
	MultiplierProperty MutationKind = iota
	MultiplierStat
)

// Mutation scales a modifier amount before folding:
// amount = amount * value / Divisor.
type Mutation struct {
	Kind     MutationKind
	Divisor  int64
	Property PropertyInt // MultiplierProperty
	Stat     StatID      // MultiplierStat
}

// PerProperty returns a mutation multiplying by property p divided by div.
func PerProperty(div int64, p PropertyInt) Mutation {
	return Mutation{Kind: MultiplierProperty, Divisor: div, Property: p}
}

// PerStat returns a mutation multiplying by the value of stat s divided by div.
func PerStat(div int64, s StatID) Mutation {
	return Mutation{Kind: MultiplierStat, Divisor: div, Stat: s}
}

func (m Mutation) String() string {
	if m.Kind == MultiplierStat {
		return fmt.Sprintf("per %d %s", m.Divisor, m.Stat)
	}
	return fmt.Sprintf("per %d %s", m.Divisor, m.Property)
}

// ConditionKind selects the test a Condition performs.
type ConditionKind uint8

const (
	GreaterEqualProperty ConditionKind = iota
	LesserEqualProperty
	GreaterEqualStat
	LesserEqualStat
	PropertyFlag
	WhileWielding
)

// Condition gates a modifier on resolved stats or character state.
type Condition struct {
	Kind      ConditionKind
	Threshold int64        // *Property, *Stat
	Property  PropertyInt  // *Property
	Stat      StatID       // *Stat
	Flag      PropertyBool // PropertyFlag
	Want      bool         // PropertyFlag
	Weapons   ItemClassSet // WhileWielding
}

// AtLeastProperty holds when property p is >= n.
func AtLeastProperty(n int64, p PropertyInt) Condition {
	return Condition{Kind: GreaterEqualProperty, Threshold: n, Property: p}
}

// AtMostProperty holds when property p is <= n.
func AtMostProperty(n int64, p PropertyInt) Condition {
	return Condition{Kind: LesserEqualProperty, Threshold: n, Property: p}
}

// AtLeastStat holds when stat s resolves to >= n.
func AtLeastStat(n int64, s StatID) Condition {
	return Condition{Kind: GreaterEqualStat, Threshold: n, Stat: s}
}

// AtMostStat holds when stat s resolves to <= n.
func AtMostStat(n int64, s StatID) Condition {
	return Condition{Kind: LesserEqualStat, Threshold: n, Stat: s}
}

// Flag holds when boolean property p equals want.
func Flag(want bool, p PropertyBool) Condition {
	return Condition{Kind: PropertyFlag, Flag: p, Want: want}
}

// Wielding holds while any equipped item belongs to one of classes.
func Wielding(classes ItemClassSet) Condition {
	return Condition{Kind: WhileWielding, Weapons: classes}
}

// Modifier is a typed effect on one statistic.
type Modifier struct {
	Stat        StatID
	Kind        Kind
	Amount      int64
	Mutations   []Mutation
	Conditions  []Condition
	Tags        TagSet
	DamageTypes DamageTypeSet
	Weapons     ItemClassSet // empty means unrestricted
	Source      Source
}

// Clone returns a deep copy of m.
func (m Modifier) Clone() Modifier {
	m.Mutations = slices.Clone(m.Mutations)
	m.Conditions = slices.Clone(m.Conditions)
	return m
}

// Direct reports whether m has neither mutations nor conditions.
func (m Modifier) Direct() bool {
	return len(m.Mutations) == 0 && len(m.Conditions) == 0
}

func (m Modifier) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %d", m.Stat, m.Kind, m.Amount)
	for _, mu := range m.Mutations {
		b.WriteString(" " + mu.String())
	}
	if !m.Tags.Empty() {
		fmt.Fprintf(&b, " tags=%v", m.Tags.Slice())
	}
	if len(m.Conditions) > 0 {
		fmt.Fprintf(&b, " conditions=%d", len(m.Conditions))
	}
	return b.String()
}

// CloneAll deep-copies a modifier list.
func CloneAll(mods []Modifier) []Modifier {
	if mods == nil {
		return nil
	}
	out := make([]Modifier, len(mods))
	for i, m := range mods {
		out[i] = m.Clone()
	}
	return out
}
