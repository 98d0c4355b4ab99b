package item

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

func TestWeapon(t *testing.T) {
	tables := loadTables(t)
	p := modifier.NewParser(modifier.NewCache())

	sword, err := FromDef(tables, Def{
		Base:   "Rusted Sword",
		Rarity: data.Magic,
		Explicits: []string{
			"Adds 2 to 5 Physical Damage",
			"20% increased Physical Damage",
			"10% increased Attack Speed",
			"+10 to maximum Life",
			"1% increased Attack Speed per 10 Dexterity",
		},
		Quality: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"+40 to Accuracy Rating"}, sword.Implicits)

	t.Run("damage", func(t *testing.T) {
		lo, hi, ok := sword.Damage(p, modifier.Physical)
		require.True(t, ok)
		assert.Equal(t, int64(8), lo)
		assert.Equal(t, int64(20), hi)

		lo, hi, ok = sword.Damage(p, modifier.Fire)
		require.True(t, ok)
		assert.Zero(t, lo)
		assert.Zero(t, hi)
	})

	t.Run("attack time", func(t *testing.T) {
		ms, ok := sword.AttackTime(p)
		require.True(t, ok)
		assert.Equal(t, int64(586), ms)
	})

	t.Run("accuracy and crit", func(t *testing.T) {
		assert.Equal(t, int64(40), sword.Accuracy(p).Val())
		crit, ok := sword.CritChance()
		require.True(t, ok)
		assert.Equal(t, int64(500), crit)
	})

	t.Run("global modifiers", func(t *testing.T) {
		mods := sword.GlobalModifiers(p, "Weapon")
		require.Len(t, mods, 2)
		assert.Equal(t, modifier.MaximumLife, mods[0].Stat)
		assert.Equal(t, modifier.ItemSource("Weapon"), mods[0].Source)
		assert.Equal(t, modifier.AttackSpeed, mods[1].Stat)
		assert.False(t, mods[1].Direct())
	})

	t.Run("no defence", func(t *testing.T) {
		d := sword.Defence(p)
		assert.Zero(t, d.Armour.Val())
	})
}

func TestArmour(t *testing.T) {
	tables := loadTables(t)
	p := modifier.NewParser(nil)

	vest, err := FromDef(tables, Def{
		Base:      "Plate Vest",
		Explicits: []string{"+20 to Armour", "50% increased Armour", "+12% to Cold Resistance"},
		Quality:   10,
	})
	require.NoError(t, err)

	d := vest.Defence(p)
	assert.Equal(t, int64(69), d.Armour.Val())
	assert.Zero(t, d.Evasion.Val())
	assert.Zero(t, d.EnergyShield.Val())

	mods := vest.GlobalModifiers(p, "BodyArmour")
	require.Len(t, mods, 1)
	assert.Equal(t, modifier.ColdResistance, mods[0].Stat)

	_, _, ok := vest.Damage(p, modifier.Physical)
	assert.False(t, ok)
	_, ok = vest.AttackTime(p)
	assert.False(t, ok)

	robe := New(tables.Item("Simple Robe"))
	robe.Explicits = []string{"+10 to maximum Energy Shield"}
	assert.Equal(t, int64(22), robe.Defence(p).EnergyShield.Val())
}

func TestJewelleryIsAllGlobal(t *testing.T) {
	tables := loadTables(t)
	p := modifier.NewParser(nil)

	ring := New(tables.Item("Iron Ring"))
	ring.Explicits = []string{"+30 to Armour"}

	mods := ring.GlobalModifiers(p, "Ring")
	require.Len(t, mods, 3)
	assert.Equal(t, modifier.MinPhysicalDamage, mods[0].Stat)
	assert.True(t, mods[0].Tags.Has(modifier.TagAttack))
	assert.Equal(t, modifier.Armour, mods[2].Stat)
	assert.Empty(t, ring.LocalModifiers(p))

	_, ok := ring.CritChance()
	assert.False(t, ok)
}

func TestDef(t *testing.T) {
	tables := loadTables(t)

	_, err := FromDef(tables, Def{Base: "Mirror of Kalandra"})
	require.ErrorIs(t, err, ErrUnknownBase)

	it, err := FromDef(tables, Def{Base: "Coral Ring", Implicits: []string{}})
	require.NoError(t, err)
	assert.Empty(t, it.Implicits)
	assert.Equal(t, data.Normal, it.Rarity)
	assert.Equal(t, "Coral Ring", it.Name)

	back, err := FromDef(tables, it.Def())
	require.NoError(t, err)
	assert.Equal(t, it.Def().Base, back.Def().Base)
}
