package stat

import (
	"github.com/udisondev/lightning/internal/modifier"
)

// Context is what a resolve call filters and evaluates against.
type Context struct {
	Tags       modifier.TagSet       // tags of the evaluated skill
	Wielding   modifier.ItemClassSet // classes of every equipped item
	Properties Properties
}

// Stats is the result of Resolve, one accumulator per touched statistic.
type Stats struct {
	accs map[modifier.StatID]*Accumulator
}

// Stat returns a copy of the accumulator for id; an untouched statistic
// yields an empty accumulator.
func (s Stats) Stat(id modifier.StatID) Accumulator {
	a, ok := s.accs[id]
	if !ok {
		return NewAccumulator()
	}
	out := *a
	out.applied = modifier.CloneAll(a.applied)
	return out
}

// Val returns the final value of id.
func (s Stats) Val(id modifier.StatID) int64 {
	if a, ok := s.accs[id]; ok {
		return a.Val()
	}
	return 0
}

// Has reports whether any modifier was folded into id.
func (s Stats) Has(id modifier.StatID) bool {
	_, ok := s.accs[id]
	return ok
}

// Len returns the number of touched statistics.
func (s Stats) Len() int { return len(s.accs) }

func (s *Stats) acc(id modifier.StatID) *Accumulator {
	a, ok := s.accs[id]
	if !ok {
		n := NewAccumulator()
		a = &n
		s.accs[id] = a
	}
	return a
}

// snapshot captures the final value of every touched statistic.
func (s Stats) snapshot() values {
	v := make(values, len(s.accs))
	for id, a := range s.accs {
		v[id] = a.Val()
	}
	return v
}

// values is a frozen view of resolved statistics. Property bounds read
// untouched ones as 0; mutations and conditions tell them apart.
type values map[modifier.StatID]int64

func (v values) val(id modifier.StatID) int64 { return v[id] }

func (v values) lookup(id modifier.StatID) (int64, bool) {
	n, ok := v[id]
	return n, ok
}

// Resolve folds mods into per-statistic accumulators in three passes:
//
//  1. modifiers with neither mutations nor conditions
//  2. modifiers with mutations only, scaled against the values after pass 1
//  3. modifiers with conditions, scaled and tested against the values
//     after pass 2
//
// Pass 3 modifiers do not see each other. A statistic raised only by a
// pass 3 modifier cannot satisfy another pass 3 condition; this is a
// fixed three step approximation, not a fixed point.
func Resolve(mods []modifier.Modifier, ctx Context) Stats {
	stats := Stats{accs: make(map[modifier.StatID]*Accumulator)}

	var mutated, conditional []modifier.Modifier
	for _, m := range mods {
		if !ctx.Tags.Superset(m.Tags) {
			continue
		}
		if !m.Weapons.Empty() && !ctx.Wielding.Intersects(m.Weapons) {
			continue
		}
		switch {
		case len(m.Conditions) > 0:
			conditional = append(conditional, m)
		case len(m.Mutations) > 0:
			mutated = append(mutated, m)
		default:
			stats.acc(m.Stat).ApplyModifier(m)
		}
	}

	if len(mutated) > 0 {
		pass1 := stats.snapshot()
		for _, m := range mutated {
			stats.acc(m.Stat).Apply(m, mutate(m, pass1, ctx))
		}
	}

	if len(conditional) > 0 {
		pass2 := stats.snapshot()
		for _, m := range conditional {
			amount := mutate(m, pass2, ctx)
			if !holds(m, pass2, ctx) {
				continue
			}
			stats.acc(m.Stat).Apply(m, amount)
		}
	}

	return stats
}

// mutate returns the amount of m scaled by each mutation in order.
func mutate(m modifier.Modifier, v values, ctx Context) int64 {
	amount := m.Amount
	for _, mu := range m.Mutations {
		div := mu.Divisor
		if div == 0 {
			div = 1
		}
		switch mu.Kind {
		case modifier.MultiplierProperty:
			amount = amount * ctx.Properties.IntWith(mu.Property, v.val) / div
		case modifier.MultiplierStat:
			// an untouched statistic leaves the amount alone
			if n, ok := v.lookup(mu.Stat); ok {
				amount = amount * n / div
			}
		}
	}
	return amount
}

// holds reports whether every condition of m is met.
func holds(m modifier.Modifier, v values, ctx Context) bool {
	for _, c := range m.Conditions {
		switch c.Kind {
		case modifier.GreaterEqualProperty:
			if ctx.Properties.IntWith(c.Property, v.val) < c.Threshold {
				return false
			}
		case modifier.LesserEqualProperty:
			if ctx.Properties.IntWith(c.Property, v.val) > c.Threshold {
				return false
			}
		case modifier.GreaterEqualStat:
			if n, ok := v.lookup(c.Stat); ok && n < c.Threshold {
				return false
			}
		case modifier.LesserEqualStat:
			// an untouched statistic never satisfies an upper bound
			if n, ok := v.lookup(c.Stat); !ok || n > c.Threshold {
				return false
			}
		case modifier.PropertyFlag:
			if ctx.Properties.Bool(c.Flag) != c.Want {
				return false
			}
		case modifier.WhileWielding:
			if !ctx.Wielding.Intersects(c.Weapons) {
				return false
			}
		}
	}
	return true
}
