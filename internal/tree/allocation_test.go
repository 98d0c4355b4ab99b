package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

func sampleTree(t *testing.T) *data.Tree {
	t.Helper()
	tree, err := data.LoadTree("../../data/tree.yaml")
	require.NoError(t, err)
	return tree
}

// smallTree builds a Marauder-only tree whose start is node 1.
func smallTree(t *testing.T, nodes ...data.Node) *data.Tree {
	t.Helper()
	marauder := data.Marauder
	nodes[0].ClassStart = &marauder
	tree, err := data.NewTree(data.TreeDef{
		Classes: map[data.Class]data.ClassData{data.Marauder: {}},
		Nodes:   nodes,
	})
	require.NoError(t, err)
	return tree
}

func TestAllocateChain(t *testing.T) {
	tree := smallTree(t,
		data.Node{ID: 1, Out: []uint16{2}},
		data.Node{ID: 2, Out: []uint16{3}},
		data.Node{ID: 3, Out: []uint16{4}},
		data.Node{ID: 4},
	)
	a := New(tree, data.Marauder)

	c := a.Allocate(3)
	assert.Equal(t, Applied, c.Outcome)
	assert.Equal(t, []uint16{2, 3}, c.Added)
	assert.Equal(t, []uint16{1, 2, 3}, a.Allocated())

	a.Allocate(4)
	c = a.Deallocate(3)
	assert.Equal(t, Applied, c.Outcome)
	assert.Equal(t, []uint16{3, 4}, c.Removed)
	assert.Equal(t, []uint16{1, 2}, a.Allocated())
}

func TestFindPath(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)

	path, ok := a.FindPath(12)
	require.True(t, ok)
	assert.Equal(t, []uint16{12, 11, 10, 2}, path)

	path, ok = a.FindPath(2)
	require.True(t, ok)
	assert.Equal(t, []uint16{2}, path)

	_, ok = a.FindPath(4)
	assert.False(t, ok, "another class start")

	_, ok = a.FindPath(41)
	assert.False(t, ok, "disconnected component")

	_, ok = a.FindPath(65000)
	assert.False(t, ok, "unknown node")
}

func TestAllocateSkipsOtherClassStarts(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)

	c := a.Allocate(15)
	require.Equal(t, Applied, c.Outcome)
	assert.Equal(t, []uint16{10, 11, 12, 13, 14, 15}, c.Added)
	assert.False(t, a.Has(3))
	assert.Equal(t, 6, a.PassiveCount())
}

func TestAllocateNoop(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)
	a.Allocate(11)

	c := a.Allocate(11)
	assert.Equal(t, Noop, c.Outcome)
	assert.Empty(t, c.Added)

	c = a.Allocate(41)
	assert.Equal(t, Unreachable, c.Outcome)
	assert.Equal(t, []uint16{2, 10, 11}, a.Allocated())
}

func TestMasteryIsNotABridge(t *testing.T) {
	tree := smallTree(t,
		data.Node{ID: 1, Out: []uint16{5}},
		data.Node{ID: 3, Out: []uint16{5}},
		data.Node{ID: 5, Mastery: true},
	)
	a := New(tree, data.Marauder)

	assert.Equal(t, Unreachable, a.Allocate(3).Outcome)

	c := a.Allocate(5)
	require.Equal(t, Applied, c.Outcome)
	assert.Equal(t, []uint16{5}, c.Added)

	assert.Equal(t, Unreachable, a.Allocate(3).Outcome)
}

func TestDeallocate(t *testing.T) {
	t.Run("class start is kept", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.Allocate(12)

		assert.Equal(t, Noop, a.Deallocate(2).Outcome)
		assert.True(t, a.Has(2))
		assert.Equal(t, Noop, a.Deallocate(13).Outcome)
	})

	t.Run("alternate route keeps nodes", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.Allocate(12)
		a.Allocate(21)
		a.Allocate(22)
		require.Equal(t, []uint16{2, 10, 11, 12, 20, 21, 22}, a.Allocated())

		c := a.Deallocate(10)
		assert.Equal(t, []uint16{10}, c.Removed)

		c = a.Deallocate(21)
		assert.Equal(t, []uint16{11, 12, 21, 22}, c.Removed)
		assert.Equal(t, []uint16{2, 20}, a.Allocated())
	})

	t.Run("leaf round trip", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.Allocate(12)
		before := a.Snapshot()

		a.Allocate(13)
		a.Deallocate(13)
		assert.Equal(t, before, a.Snapshot())
	})

	t.Run("pruned mastery loses its effect", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		c := a.Allocate(30)
		require.Equal(t, []uint16{10, 11, 12, 30}, c.Added)
		require.Equal(t, Applied, a.SelectMastery(30, 100).Outcome)

		c = a.Deallocate(11)
		assert.Equal(t, []uint16{11, 12, 30}, c.Removed)
		_, ok := a.MasteryEffect(30)
		assert.False(t, ok)
	})
}

func TestToggle(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)

	c := a.Toggle(11)
	assert.Equal(t, []uint16{10, 11}, c.Added)
	c = a.Toggle(11)
	assert.Equal(t, []uint16{11}, c.Removed)
	assert.Equal(t, []uint16{2, 10}, a.Allocated())
}

func TestAscendancy(t *testing.T) {
	t.Run("entry hub opens another subtree", func(t *testing.T) {
		a := New(sampleTree(t), data.Scion)
		c := a.SwitchAscendancy("Ascendant")
		require.Equal(t, Applied, c.Outcome)
		assert.Equal(t, []uint16{900}, c.Added)

		assert.Equal(t, Unreachable, a.Allocate(801).Outcome)
		assert.Equal(t, []uint16{901}, a.Allocate(901).Added)
		assert.Equal(t, []uint16{801}, a.Allocate(801).Added)
		assert.Equal(t, 2, a.PassiveCount())

		c = a.Deallocate(901)
		assert.Equal(t, []uint16{801, 901}, c.Removed)
	})

	t.Run("foreign ascendancy is unreachable", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.SwitchAscendancy("Juggernaut")

		assert.Equal(t, []uint16{801}, a.Allocate(801).Added)
		assert.Equal(t, Unreachable, a.Allocate(811).Outcome)
		assert.Equal(t, Unreachable, a.Allocate(821).Outcome)
		assert.Equal(t, Unreachable, a.Allocate(901).Outcome)
	})

	t.Run("switching", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.Allocate(10)
		a.SwitchAscendancy("Juggernaut")
		a.Allocate(801)

		c := a.SwitchAscendancy("Berserker")
		assert.Equal(t, []uint16{800, 801}, c.Removed)
		assert.Equal(t, []uint16{810}, c.Added)
		assert.Equal(t, "Berserker", a.Ascendancy())

		c = a.SwitchAscendancy("Deadeye")
		assert.Equal(t, data.Ranger, a.Class())
		assert.Equal(t, []uint16{3, 820}, c.Added)
		assert.Equal(t, []uint16{2, 10, 810}, c.Removed)
		assert.Equal(t, []uint16{3, 820}, a.Allocated())

		assert.Equal(t, Noop, a.SwitchAscendancy("Deadeye").Outcome)
		assert.Equal(t, Noop, a.SwitchAscendancy("Chieftain").Outcome)

		c = a.SwitchAscendancy("")
		assert.Equal(t, []uint16{820}, c.Removed)
		assert.Empty(t, a.Ascendancy())
		assert.Equal(t, []uint16{3}, a.Allocated())
	})

	t.Run("outcome follows the node delta", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		c := a.SwitchAscendancy("Juggernaut")
		assert.Equal(t, Applied, c.Outcome)

		// a choice whose start was never inserted leaves no node to remove
		a = New(sampleTree(t), data.Marauder)
		a.ascendancy = "Juggernaut"
		c = a.SwitchAscendancy("")
		assert.Equal(t, Noop, c.Outcome)
		assert.Empty(t, c.Removed)
		assert.Empty(t, a.Ascendancy())
	})

	t.Run("deallocating the start clears the choice", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.SwitchAscendancy("Juggernaut")
		a.Allocate(801)

		c := a.Deallocate(800)
		assert.Equal(t, []uint16{800, 801}, c.Removed)
		assert.Empty(t, a.Ascendancy())
	})
}

func TestSwitchClass(t *testing.T) {
	t.Run("disconnected nodes are pruned", func(t *testing.T) {
		a := New(sampleTree(t), data.Marauder)
		a.Allocate(12)

		c := a.SwitchClass(data.Scion)
		assert.Equal(t, []uint16{1}, c.Added)
		assert.Equal(t, []uint16{2, 10, 11, 12}, c.Removed)
		assert.Equal(t, []uint16{1}, a.Allocated())
	})

	t.Run("shared nodes are kept", func(t *testing.T) {
		a := New(sampleTree(t), data.Scion)
		assert.Equal(t, []uint16{10, 11, 50}, a.Allocate(11).Added)

		c := a.SwitchClass(data.Marauder)
		assert.Equal(t, []uint16{2}, c.Added)
		assert.Equal(t, []uint16{1}, c.Removed)
		assert.Equal(t, []uint16{2, 10, 11, 50}, a.Allocated())
	})

	t.Run("clears ascendancy", func(t *testing.T) {
		a := New(sampleTree(t), data.Scion)
		a.SwitchAscendancy("Ascendant")
		a.Allocate(901)

		a.SwitchClass(data.Witch)
		assert.Empty(t, a.Ascendancy())
		assert.Equal(t, []uint16{4}, a.Allocated())
	})

	t.Run("same class", func(t *testing.T) {
		a := New(sampleTree(t), data.Witch)
		assert.Equal(t, Noop, a.SwitchClass(data.Witch).Outcome)
	})
}

func TestSelectMastery(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)

	assert.Equal(t, Noop, a.SelectMastery(30, 100).Outcome, "not allocated")
	a.Allocate(30)
	assert.Equal(t, Noop, a.SelectMastery(30, 999).Outcome, "unknown effect")
	assert.Equal(t, Noop, a.SelectMastery(12, 100).Outcome, "not a mastery")

	assert.Equal(t, Applied, a.SelectMastery(30, 100).Outcome)
	assert.Equal(t, Noop, a.SelectMastery(30, 100).Outcome)
	assert.Equal(t, Applied, a.SelectMastery(30, 101).Outcome)

	effect, ok := a.MasteryEffect(30)
	require.True(t, ok)
	assert.Equal(t, uint16(101), effect)
}

func TestModifiers(t *testing.T) {
	a := New(sampleTree(t), data.Marauder)
	a.Allocate(30)
	a.SelectMastery(30, 101)

	mods := a.Modifiers(modifier.NewParser(nil))
	require.Len(t, mods, 5)

	assert.Equal(t, modifier.MaximumLife, mods[0].Stat)
	assert.Equal(t, modifier.Inc, mods[0].Kind)
	assert.Equal(t, modifier.NodeSource(10), mods[0].Source)

	assert.Equal(t, modifier.Strength, mods[1].Stat)
	assert.Equal(t, modifier.NodeSource(11), mods[1].Source)

	assert.Equal(t, modifier.NodeSource(12), mods[2].Source)
	assert.Equal(t, modifier.NodeSource(12), mods[3].Source)

	last := mods[4]
	assert.Equal(t, modifier.LifeRegenerationPct, last.Stat)
	assert.Equal(t, int64(100), last.Amount)
	assert.Equal(t, modifier.MasterySource(30, 101), last.Source)
}

func TestSnapshotRestore(t *testing.T) {
	tree := sampleTree(t)

	t.Run("round trip", func(t *testing.T) {
		a := New(tree, data.Scion)
		a.SwitchAscendancy("Ascendant")
		a.Allocate(901)
		a.Allocate(30)
		a.SelectMastery(30, 100)

		raw, err := json.Marshal(a.Snapshot())
		require.NoError(t, err)
		var s Snapshot
		require.NoError(t, json.Unmarshal(raw, &s))

		b, err := Restore(tree, s)
		require.NoError(t, err)
		assert.Equal(t, a.Allocated(), b.Allocated())
		assert.Equal(t, "Ascendant", b.Ascendancy())
		effect, ok := b.MasteryEffect(30)
		require.True(t, ok)
		assert.Equal(t, uint16(100), effect)
	})

	t.Run("disconnected nodes are dropped", func(t *testing.T) {
		a, err := Restore(tree, Snapshot{Class: data.Marauder, Nodes: []uint16{10, 41}})
		require.NoError(t, err)
		assert.Equal(t, []uint16{2, 10}, a.Allocated())
	})

	t.Run("foreign ascendancy nodes need an entry hub", func(t *testing.T) {
		a, err := Restore(tree, Snapshot{Class: data.Marauder, Ascendancy: "Juggernaut", Nodes: []uint16{800, 801, 901}})
		require.NoError(t, err)
		assert.Equal(t, []uint16{2, 800, 801}, a.Allocated())

		a, err = Restore(tree, Snapshot{Class: data.Scion, Ascendancy: "Ascendant", Nodes: []uint16{900, 901, 801}})
		require.NoError(t, err)
		assert.Equal(t, []uint16{1, 801, 900, 901}, a.Allocated())
	})

	t.Run("another class start", func(t *testing.T) {
		_, err := Restore(tree, Snapshot{Class: data.Marauder, Nodes: []uint16{2, 10, 50, 1}})
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Restore(tree, Snapshot{Class: data.Marauder, Nodes: []uint16{65000}})
		assert.ErrorIs(t, err, data.ErrUnknownNode)

		_, err = Restore(tree, Snapshot{Class: data.Marauder, Ascendancy: "Deadeye"})
		assert.ErrorIs(t, err, ErrInvalidSnapshot)

		_, err = Restore(tree, Snapshot{Class: data.Marauder, Nodes: []uint16{10, 11, 12, 30}, Masteries: map[uint16]uint16{30: 7}})
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}
