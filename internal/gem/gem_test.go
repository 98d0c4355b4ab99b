package gem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	tables, err := data.Load("../../data")
	require.NoError(t, err)
	return tables
}

func mustGem(t *testing.T, tables *data.Tables, d Def) *Gem {
	t.Helper()
	g, err := FromDef(tables, d)
	require.NoError(t, err)
	return g
}

func TestStatValue(t *testing.T) {
	tables := loadTables(t)
	fb := mustGem(t, tables, Def{ID: "fireball", Level: 20})

	tests := []struct {
		id     string
		want   int64
		wantOK bool
	}{
		{"spell_minimum_base_fire_damage", 270, true},
		{"spell_maximum_base_fire_damage", 405, true},
		{"base_is_projectile", 1, true},
		{"not_a_stat", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, ok := fb.StatValue(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("level without data", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "fireball", Level: 5})
		_, ok := g.StatValue("spell_minimum_base_fire_damage")
		assert.False(t, ok)
		v, ok := g.StatValue("base_is_projectile")
		require.True(t, ok)
		assert.Equal(t, int64(1), v)
	})
}

func TestModifiers(t *testing.T) {
	tables := loadTables(t)

	t.Run("spell with quality", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "fireball", Level: 20, Quality: 20})
		mods := g.Modifiers()
		require.Len(t, mods, 3)

		assert.Equal(t, modifier.MinFireDamage, mods[0].Stat)
		assert.Equal(t, int64(270), mods[0].Amount)
		assert.True(t, mods[0].Tags.Has(modifier.TagSpell))
		assert.Equal(t, modifier.MaxFireDamage, mods[1].Stat)
		assert.Equal(t, modifier.Damage, mods[2].Stat)
		assert.Equal(t, modifier.Inc, mods[2].Kind)
		assert.Equal(t, int64(20), mods[2].Amount)
		for _, m := range mods {
			assert.Equal(t, modifier.GemSource, m.Source)
		}
	})

	t.Run("attack speed multiplier", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "cleave", Level: 20})
		mods := g.Modifiers()
		require.Len(t, mods, 3)
		assert.Equal(t, modifier.PhysicalDamage, mods[0].Stat)
		assert.Equal(t, int64(38), mods[0].Amount)
		assert.Equal(t, modifier.AttackSpeed, mods[2].Stat)
		assert.Equal(t, modifier.More, mods[2].Kind)
		assert.Equal(t, int64(-20), mods[2].Amount)
	})

	t.Run("support", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "concentrated_effect", Level: 20, Quality: 10})
		require.True(t, g.Support())
		mods := g.Modifiers()
		require.Len(t, mods, 3)
		assert.Equal(t, modifier.AreaOfEffect, mods[0].Stat)
		assert.Equal(t, int64(-30), mods[0].Amount)
		assert.Equal(t, int64(54), mods[1].Amount)
		assert.True(t, mods[1].Tags.Has(modifier.TagArea))
		assert.Equal(t, int64(5), mods[2].Amount)
	})

	t.Run("aura", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "purity_of_elements", Level: 20})
		mods := g.Modifiers()
		require.Len(t, mods, 3)
		for _, m := range mods {
			assert.Equal(t, int64(31), m.Amount)
		}
		assert.True(t, g.Tags().Has(modifier.TagAura))
	})

	t.Run("disabled", func(t *testing.T) {
		g := mustGem(t, tables, Def{ID: "purity_of_elements", Disabled: true})
		assert.Empty(t, g.Modifiers())
	})
}

func TestDamageScaling(t *testing.T) {
	tables := loadTables(t)

	fb := mustGem(t, tables, Def{ID: "fireball", Level: 20})
	eff, ok := fb.AddedEffectiveness()
	require.True(t, ok)
	assert.Equal(t, int64(180), eff)

	fb1 := mustGem(t, tables, Def{ID: "fireball", Level: 1})
	eff, ok = fb1.AddedEffectiveness()
	require.True(t, ok)
	assert.Equal(t, int64(140), eff)

	_, ok = fb.DamageMultiplier()
	assert.False(t, ok)

	cleave := mustGem(t, tables, Def{ID: "cleave", Level: 20})
	mult, ok := cleave.DamageMultiplier()
	require.True(t, ok)
	assert.Equal(t, int64(1500), mult)

	castTime, ok := fb.CastTime()
	require.True(t, ok)
	assert.Equal(t, int64(750), castTime)
	_, ok = cleave.CastTime()
	assert.False(t, ok)
}

func TestFromDef(t *testing.T) {
	tables := loadTables(t)

	_, err := FromDef(tables, Def{ID: "enlighten"})
	require.ErrorIs(t, err, ErrUnknownGem)

	assert.Equal(t, 1, mustGem(t, tables, Def{ID: "cleave"}).Level)
	assert.Equal(t, 20, mustGem(t, tables, Def{ID: "cleave", Level: 99}).Level)

	cleave := mustGem(t, tables, Def{ID: "cleave", Level: 7, Quality: 3})
	assert.True(t, cleave.Allows(modifier.OneHandSword))
	assert.False(t, cleave.Allows(modifier.Bow))
	assert.True(t, mustGem(t, tables, Def{ID: "fireball"}).Allows(modifier.Bow))
	assert.Equal(t, Def{ID: "cleave", Level: 7, Quality: 3}, cleave.Def())
}

func TestFromDefWithoutMaxLevel(t *testing.T) {
	tables := &data.Tables{Gems: map[string]*data.Gem{
		"bare": {ID: "bare", Name: "Bare"},
	}}

	assert.Equal(t, 1, mustGem(t, tables, Def{ID: "bare"}).Level)
	assert.Equal(t, 7, mustGem(t, tables, Def{ID: "bare", Level: 7}).Level)
}
