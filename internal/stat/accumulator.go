// Package stat folds modifiers into per-statistic accumulators.
package stat

import (
	"github.com/udisondev/lightning/internal/modifier"
)

// Accumulator is the running state of one statistic.
//
// Fold rules:
//   - Base: summed
//   - Inc: summed
//   - More: compounded, more = more*(100+a)/100, starting at 100
//   - Override: the lowest amount seen wins
//
// The zero value is not ready for use; call NewAccumulator.
type Accumulator struct {
	base        int64
	inc         int64
	more        int64
	override    int64
	hasOverride bool
	applied     []modifier.Modifier
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() Accumulator {
	return Accumulator{more: 100}
}

// Apply folds m into the accumulator with the given effective amount.
// The modifier is recorded with that amount for later replay.
func (a *Accumulator) Apply(m modifier.Modifier, amount int64) {
	switch m.Kind {
	case modifier.Base:
		a.base += amount
	case modifier.Inc:
		a.inc += amount
	case modifier.More:
		a.more = a.more * (100 + amount) / 100
	case modifier.Override:
		if !a.hasOverride || amount < a.override {
			a.override = amount
			a.hasOverride = true
		}
	}
	m = m.Clone()
	m.Amount = amount
	a.applied = append(a.applied, m)
}

// ApplyModifier folds m with its own amount.
func (a *Accumulator) ApplyModifier(m modifier.Modifier) {
	a.Apply(m, m.Amount)
}

// Base returns the summed flat amount.
func (a Accumulator) Base() int64 { return a.base }

// Inc returns the summed percent increase.
func (a Accumulator) Inc() int64 { return a.inc }

// More returns the compounded more multiplier, 100 meaning none.
func (a Accumulator) More() int64 { return a.more }

// Override returns the override value, if any.
func (a Accumulator) Override() (int64, bool) { return a.override, a.hasOverride }

// Modifiers returns the applied modifiers with their effective amounts.
func (a Accumulator) Modifiers() []modifier.Modifier {
	return modifier.CloneAll(a.applied)
}

func (a Accumulator) mult() int64 {
	return (100 + a.inc) * a.more
}

func (a Accumulator) val100() int64 {
	if a.hasOverride {
		return a.override * 100
	}
	return a.base * a.mult() / 100
}

// Val returns the final value, truncated toward zero.
func (a Accumulator) Val() int64 {
	return a.val100() / 100
}

// ValRoundedUp returns the final value rounded up, used for displayed
// maximum life.
func (a Accumulator) ValRoundedUp() int64 {
	v := a.val100()
	q := v / 100
	if v%100 > 0 {
		q++
	}
	return q
}

// ValCustom scales v by this accumulator's increases and more multipliers.
func (a Accumulator) ValCustom(v int64) int64 {
	return v * a.mult() / 10000
}

// ValCustomInv undoes ValCustom. It returns 0 when the multiplier is 0.
func (a Accumulator) ValCustomInv(v int64) int64 {
	m := a.mult()
	if m == 0 {
		return 0
	}
	return v * 10000 / m
}

// Assimilate merges o into a. Overrides are not carried over.
func (a *Accumulator) Assimilate(o Accumulator) {
	a.base += o.base
	a.inc += o.inc
	a.more = a.more * o.more / 100
	a.applied = append(a.applied, modifier.CloneAll(o.applied)...)
}

// Replay refolds the applied modifiers accepted by keep into a fresh
// accumulator, using their recorded effective amounts.
func (a Accumulator) Replay(keep func(modifier.Modifier) bool) Accumulator {
	out := NewAccumulator()
	for _, m := range a.applied {
		if keep(m) {
			out.Apply(m, m.Amount)
		}
	}
	return out
}

// WithWeapon replays only modifiers that are unrestricted or restricted
// to class. Used to evaluate two weapon slots independently.
func (a Accumulator) WithWeapon(class modifier.ItemClass) Accumulator {
	return a.Replay(func(m modifier.Modifier) bool {
		return m.Weapons.Empty() || m.Weapons.Has(class)
	})
}

// CalcStat folds the direct modifiers of stat id whose tags are covered
// by tags. Mutations and conditions are not evaluated, so modifiers
// carrying them are skipped.
func CalcStat(id modifier.StatID, mods []modifier.Modifier, tags modifier.TagSet) Accumulator {
	acc := NewAccumulator()
	for _, m := range mods {
		if m.Stat != id || !tags.Superset(m.Tags) || !m.Direct() {
			continue
		}
		acc.ApplyModifier(m)
	}
	return acc
}
