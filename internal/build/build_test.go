package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/gem"
	"github.com/udisondev/lightning/internal/item"
	"github.com/udisondev/lightning/internal/modifier"
	"github.com/udisondev/lightning/internal/tree"
)

func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	tables, err := data.Load("../../data")
	require.NoError(t, err)
	return tables
}

func newMarauder(t *testing.T) *Build {
	t.Helper()
	return New(loadTables(t), modifier.NewParser(modifier.NewCache()), data.Marauder)
}

func TestInnate(t *testing.T) {
	b := newMarauder(t)
	stats := b.Stats(b.Modifiers(false), 0)

	assert.Equal(t, int64(32), stats.Val(modifier.Strength))
	assert.Equal(t, int64(14), stats.Val(modifier.Dexterity))
	// 38 + 12 per level + 1 per 2 strength
	assert.Equal(t, int64(66), stats.Stat(modifier.MaximumLife).ValRoundedUp())
	assert.Equal(t, int64(24), stats.Val(modifier.PassiveSkillPoints))
	assert.Equal(t, int64(75), stats.Val(modifier.MaximumFireResistance))
	assert.Equal(t, int64(75), stats.Val(modifier.MaximumChaosResistance))
	assert.Equal(t, int64(3), stats.Val(modifier.MaximumFrenzyCharges))
	assert.Zero(t, stats.Val(modifier.FireResistance))

	b.SetInt(modifier.Level, 10)
	stats = b.Stats(b.Modifiers(false), 0)
	assert.Equal(t, int64(174), stats.Val(modifier.MaximumLife))
	assert.Equal(t, int64(33), stats.Val(modifier.PassiveSkillPoints))
}

func TestChargesScaleWithProperties(t *testing.T) {
	b := newMarauder(t)
	b.SetInt(modifier.PowerCharges, 2)
	b.SetInt(modifier.FrenzyCharges, 5)

	stats := b.Stats(b.Modifiers(false), 0)
	assert.Equal(t, int64(100), stats.Stat(modifier.CriticalStrikeChance).Inc())
	// capped at the maximum of 3 frenzy charges
	assert.Equal(t, int64(12), stats.Stat(modifier.CastSpeed).Inc())
}

func TestBanditAndCampaign(t *testing.T) {
	tests := []struct {
		name     string
		bandit   Bandit
		campaign Campaign
		fire     int64
		chaos    int64
		life     int64
		points   int64
	}{
		{"defaults", KillAll, Beach, 0, 0, 66, 24},
		{"alira", Alira, Beach, 15, 0, 66, 23},
		{"oak", Oak, Beach, 0, 0, 106, 23},
		{"act five", Alira, ActFive, -15, -30, 66, 23},
		{"act ten", KillAll, ActTen, -60, -60, 66, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newMarauder(t)
			b.Bandit = tt.bandit
			b.Campaign = tt.campaign
			stats := b.Stats(b.Modifiers(false), 0)
			assert.Equal(t, tt.fire, stats.Val(modifier.FireResistance))
			assert.Equal(t, tt.chaos, stats.Val(modifier.ChaosResistance))
			assert.Equal(t, tt.life, stats.Val(modifier.MaximumLife))
			assert.Equal(t, tt.points, stats.Val(modifier.PassiveSkillPoints))
		})
	}

	assert.True(t, Kraityn.Valid())
	assert.False(t, Bandit("deshret").Valid())
	assert.False(t, Campaign("act_three").Valid())
}

func TestTreeModifiers(t *testing.T) {
	b := newMarauder(t)
	require.Equal(t, tree.Applied, b.Tree.Allocate(10).Outcome)

	stats := b.Stats(b.Modifiers(false), 0)
	life := stats.Stat(modifier.MaximumLife)
	assert.Equal(t, int64(71), life.Val())
	assert.Equal(t, int64(72), life.ValRoundedUp())
}

func TestSlots(t *testing.T) {
	assert.Equal(t, Slot("Flask3"), FlaskSlot(3))
	assert.Equal(t, Slot("TreeJewel14"), JewelSlot(14))

	node, ok := JewelSlot(14).JewelNode()
	require.True(t, ok)
	assert.Equal(t, uint16(14), node)
	_, ok = Helm.JewelNode()
	assert.False(t, ok)

	for _, s := range []Slot{Helm, Ring2, FlaskSlot(1), FlaskSlot(5), JewelSlot(300)} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []Slot{"Pants", FlaskSlot(0), FlaskSlot(6), "TreeJewelX"} {
		assert.False(t, s.Valid(), s)
	}

	b := newMarauder(t)
	err := b.Equip("Pants", item.New(b.Tables().Item("Iron Ring")))
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestEquipment(t *testing.T) {
	b := newMarauder(t)
	tables := b.Tables()

	vest := item.New(tables.Item("Plate Vest"))
	require.NoError(t, b.Equip(BodyArmour, vest))
	ring := item.New(tables.Item("Coral Ring"))
	require.NoError(t, b.Equip(Ring, ring))

	stats := b.Stats(b.Modifiers(false), 0)
	assert.Equal(t, int64(22), stats.Val(modifier.Armour))
	assert.Equal(t, int64(86), stats.Val(modifier.MaximumLife))

	var sources []modifier.Source
	for _, m := range stats.Stat(modifier.Armour).Modifiers() {
		sources = append(sources, m.Source)
	}
	assert.Equal(t, []modifier.Source{modifier.ItemSource(string(BodyArmour))}, sources)

	b.Unequip(Ring)
	stats = b.Stats(b.Modifiers(false), 0)
	assert.Equal(t, int64(66), stats.Val(modifier.MaximumLife))
}

func TestJewelNeedsAllocatedSocket(t *testing.T) {
	b := newMarauder(t)
	jewel := item.New(b.Tables().Item("Cobalt Jewel"))
	jewel.Explicits = []string{"+10 to maximum Life"}
	require.NoError(t, b.Equip(JewelSlot(14), jewel))

	hasJewel := func() bool {
		for _, m := range b.Modifiers(false) {
			if m.Source == modifier.ItemSource(string(JewelSlot(14))) {
				return true
			}
		}
		return false
	}
	assert.False(t, hasJewel())

	require.Equal(t, tree.Applied, b.Tree.Allocate(14).Outcome)
	assert.True(t, hasJewel())
}

func TestAuras(t *testing.T) {
	b := newMarauder(t)
	purity, err := gem.FromDef(b.Tables(), gem.Def{ID: "purity_of_elements", Level: 20})
	require.NoError(t, err)
	b.GemLinks = []GemLink{{Slot: Helm, Gems: []*gem.Gem{purity}}}

	assert.Zero(t, b.Stats(b.Modifiers(false), 0).Val(modifier.FireResistance))
	stats := b.Stats(b.Modifiers(true), 0)
	assert.Equal(t, int64(31), stats.Val(modifier.FireResistance))
	assert.Equal(t, int64(31), stats.Val(modifier.LightningResistance))

	purity.Enabled = false
	assert.Zero(t, b.Stats(b.Modifiers(true), 0).Val(modifier.FireResistance))
}

func TestGemLink(t *testing.T) {
	tables := loadTables(t)
	mk := func(d gem.Def) *gem.Gem {
		g, err := gem.FromDef(tables, d)
		require.NoError(t, err)
		return g
	}
	fireball := mk(gem.Def{ID: "fireball"})
	conc := mk(gem.Def{ID: "concentrated_effect"})
	off := mk(gem.Def{ID: "cleave", Disabled: true})

	l := GemLink{Slot: BodyArmour, Gems: []*gem.Gem{fireball, conc, off}}
	assert.Equal(t, []*gem.Gem{fireball}, l.Active())
	assert.Equal(t, []*gem.Gem{conc}, l.Supports())
}

func TestIsHolding(t *testing.T) {
	b := newMarauder(t)
	assert.False(t, b.IsHolding(modifier.ItemClasses(modifier.OneHandSword)))

	require.NoError(t, b.Equip(Weapon, item.New(b.Tables().Item("Rusted Sword"))))
	assert.True(t, b.IsHolding(modifier.ItemClasses(modifier.OneHandSword, modifier.Bow)))
	assert.False(t, b.IsHolding(modifier.ItemClasses(modifier.Bow)))
}

func TestMonsterModifiers(t *testing.T) {
	tables := loadTables(t)

	mods, ok := MonsterModifiers(tables, 90)
	require.True(t, ok)
	require.Len(t, mods, 3)
	assert.Equal(t, modifier.MaximumLife, mods[0].Stat)
	assert.Equal(t, int64(38008), mods[0].Amount)
	assert.Equal(t, int64(4063), mods[1].Amount)
	assert.Equal(t, int64(2833), mods[2].Amount)

	_, ok = MonsterModifiers(tables, 0)
	assert.False(t, ok)
}

func sampleBuild(t *testing.T) *Build {
	t.Helper()
	b := newMarauder(t)
	tables := b.Tables()

	b.Name = "Cleave Juggernaut"
	b.Bandit = Oak
	b.Campaign = ActTen
	b.SetInt(modifier.Level, 40)
	b.SetBool(modifier.Onslaught, true)
	require.Equal(t, tree.Applied, b.Tree.Allocate(12).Outcome)
	require.Equal(t, tree.Applied, b.Tree.SwitchAscendancy("Juggernaut").Outcome)

	sword, err := item.FromDef(tables, item.Def{
		Base:      "Rusted Sword",
		Rarity:    data.Magic,
		Explicits: []string{"20% increased Physical Damage"},
	})
	require.NoError(t, err)
	require.NoError(t, b.Equip(Weapon, sword))

	cleave, err := gem.FromDef(tables, gem.Def{ID: "cleave", Level: 12, Quality: 5})
	require.NoError(t, err)
	b.GemLinks = []GemLink{{Slot: Weapon, Gems: []*gem.Gem{cleave}}}
	return b
}

func TestDefRoundTrip(t *testing.T) {
	b := sampleBuild(t)
	want, err := b.Fingerprint()
	require.NoError(t, err)

	restored, err := FromDef(b.Tables(), b.Parser(), b.Def())
	require.NoError(t, err)
	got, err := restored.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, "Cleave Juggernaut", restored.Name)
	assert.Equal(t, "Juggernaut", restored.Tree.Ascendancy())
	assert.Equal(t, int64(40), restored.Int(modifier.Level))
	assert.True(t, restored.Bool(modifier.Onslaught))
	require.Len(t, restored.GemLinks, 1)
	assert.Equal(t, 12, restored.GemLinks[0].Gems[0].Level)
}

func TestFileRoundTrip(t *testing.T) {
	b := sampleBuild(t)
	path := filepath.Join(t.TempDir(), "build.yaml")
	require.NoError(t, b.SaveFile(path))

	loaded, err := LoadFile(b.Tables(), b.Parser(), path)
	require.NoError(t, err)

	want, err := b.Fingerprint()
	require.NoError(t, err)
	got, err := loaded.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = LoadFile(b.Tables(), b.Parser(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFingerprintChanges(t *testing.T) {
	b := sampleBuild(t)
	before, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, before, 64)

	b.Bandit = Alira
	after, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFromDefDefaults(t *testing.T) {
	tables := loadTables(t)
	p := modifier.NewParser(nil)

	b, err := FromDef(tables, p, Def{Tree: tree.Snapshot{Class: data.Witch}})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Build", b.Name)
	assert.Equal(t, KillAll, b.Bandit)
	assert.Equal(t, Beach, b.Campaign)
	assert.Equal(t, int64(1), b.Int(modifier.Level))

	_, err = FromDef(tables, p, Def{Tree: tree.Snapshot{Class: data.Witch}, Bandit: "deshret"})
	require.ErrorIs(t, err, ErrInvalidChoice)

	_, err = FromDef(tables, p, Def{
		Tree:      tree.Snapshot{Class: data.Witch},
		Equipment: map[Slot]item.Def{Helm: {Base: "Golden Mask"}},
	})
	require.ErrorIs(t, err, item.ErrUnknownBase)
}
