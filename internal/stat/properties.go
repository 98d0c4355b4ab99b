package stat

import (
	"maps"
	"math"

	"github.com/udisondev/lightning/internal/modifier"
)

// Bound is one end of a property range: a constant or the resolved value
// of a statistic.
type Bound struct {
	Value  int64
	Stat   modifier.StatID
	ByStat bool
}

// Const returns a constant bound.
func Const(v int64) Bound { return Bound{Value: v} }

// OfStat returns a bound read from a resolved statistic.
func OfStat(s modifier.StatID) Bound { return Bound{Stat: s, ByStat: true} }

// Range is the declared [Min, Max] of an integer property.
type Range struct {
	Min Bound
	Max Bound
}

var ranges = map[modifier.PropertyInt]Range{
	modifier.Level:            {Const(1), Const(100)},
	modifier.FrenzyCharges:    {OfStat(modifier.MinimumFrenzyCharges), OfStat(modifier.MaximumFrenzyCharges)},
	modifier.PowerCharges:     {OfStat(modifier.MinimumPowerCharges), OfStat(modifier.MaximumPowerCharges)},
	modifier.EnduranceCharges: {OfStat(modifier.MinimumEnduranceCharges), OfStat(modifier.MaximumEnduranceCharges)},
	modifier.Rage:             {OfStat(modifier.MinimumRage), OfStat(modifier.MaximumRage)},
}

// RangeOf returns the declared range of p.
func RangeOf(p modifier.PropertyInt) Range {
	return ranges[p]
}

// Properties are the user-controlled character values. Unset integers
// read as 0 before clamping, unset flags as false.
type Properties struct {
	Ints  map[modifier.PropertyInt]int64 `yaml:"ints,omitempty" json:"ints,omitempty"`
	Bools map[modifier.PropertyBool]bool `yaml:"bools,omitempty" json:"bools,omitempty"`
}

// NewProperties returns properties of a fresh level 1 character.
func NewProperties() Properties {
	p := Properties{}
	p.SetInt(modifier.Level, 1)
	return p
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	return Properties{Ints: maps.Clone(p.Ints), Bools: maps.Clone(p.Bools)}
}

// SetInt stores the raw value of p. It is clamped on read.
func (p *Properties) SetInt(prop modifier.PropertyInt, v int64) {
	if p.Ints == nil {
		p.Ints = make(map[modifier.PropertyInt]int64)
	}
	p.Ints[prop] = v
}

// SetBool stores flag b.
func (p *Properties) SetBool(b modifier.PropertyBool, v bool) {
	if p.Bools == nil {
		p.Bools = make(map[modifier.PropertyBool]bool)
	}
	p.Bools[b] = v
}

// Raw returns the stored value of prop without clamping.
func (p Properties) Raw(prop modifier.PropertyInt) int64 {
	return p.Ints[prop]
}

// Bool returns flag b.
func (p Properties) Bool(b modifier.PropertyBool) bool {
	return p.Bools[b]
}

// Int returns prop clamped to its constant bounds. Bounds that reference
// statistics are treated as open.
func (p Properties) Int(prop modifier.PropertyInt) int64 {
	r := RangeOf(prop)
	lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
	if !r.Min.ByStat {
		lo = r.Min.Value
	}
	if !r.Max.ByStat {
		hi = r.Max.Value
	}
	return clamp(p.Raw(prop), lo, hi)
}

// IntWith returns prop clamped to its full range, reading statistic
// bounds through val.
func (p Properties) IntWith(prop modifier.PropertyInt, val func(modifier.StatID) int64) int64 {
	r := RangeOf(prop)
	return clamp(p.Raw(prop), r.Min.resolve(val), r.Max.resolve(val))
}

func (b Bound) resolve(val func(modifier.StatID) int64) int64 {
	if b.ByStat {
		return val(b.Stat)
	}
	return b.Value
}

// clamp applies lo then hi, so hi wins when lo > hi.
func clamp(v, lo, hi int64) int64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
