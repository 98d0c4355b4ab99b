package data

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Table file names inside the data directory.
const (
	TreeFile         = "tree.yaml"
	BaseItemsFile    = "base_items.yaml"
	GemsFile         = "gems.yaml"
	MonsterStatsFile = "monster_stats.yaml"
)

// Tables holds every static table. It is never mutated after Load.
type Tables struct {
	Tree     *Tree
	Items    map[string]*BaseItem
	Gems     map[string]*Gem
	Monsters map[int64]MonsterStats
}

// Item returns the base item named name, or nil.
func (t *Tables) Item(name string) *BaseItem {
	return t.Items[name]
}

// Gem returns the gem with id, or nil.
func (t *Tables) Gem(id string) *Gem {
	return t.Gems[id]
}

// Monster returns the default monster stats at level, capped at
// MaxMonsterLevel.
func (t *Tables) Monster(level int64) (MonsterStats, bool) {
	level = min(level, MaxMonsterLevel)
	m, ok := t.Monsters[level]
	return m, ok
}

// Load reads all tables from dir concurrently. Any read, decode or
// validation error is fatal for the caller.
func Load(dir string) (*Tables, error) {
	var (
		t Tables
		g errgroup.Group
	)

	g.Go(func() error {
		tree, err := LoadTree(filepath.Join(dir, TreeFile))
		t.Tree = tree
		return err
	})
	g.Go(func() error {
		items, err := LoadBaseItems(filepath.Join(dir, BaseItemsFile))
		t.Items = items
		return err
	})
	g.Go(func() error {
		gems, err := LoadGems(filepath.Join(dir, GemsFile))
		t.Gems = gems
		return err
	})
	g.Go(func() error {
		monsters, err := LoadMonsterStats(filepath.Join(dir, MonsterStatsFile))
		t.Monsters = monsters
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("loaded static tables",
		"nodes", len(t.Tree.Nodes),
		"base_items", len(t.Items),
		"gems", len(t.Gems),
		"monster_levels", len(t.Monsters))
	return &t, nil
}

// LoadTree reads and validates the passive tree.
func LoadTree(path string) (*Tree, error) {
	var f TreeDef
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	tree, err := NewTree(f)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return tree, nil
}

// LoadBaseItems reads the base item table keyed by base name.
func LoadBaseItems(path string) (map[string]*BaseItem, error) {
	items := make(map[string]*BaseItem)
	if err := readYAML(path, &items); err != nil {
		return nil, err
	}
	for name, it := range items {
		if it == nil {
			return nil, fmt.Errorf("validating %s: base item %q is empty", path, name)
		}
		if it.Name == "" {
			it.Name = name
		}
	}
	return items, nil
}

// LoadGems reads the gem table keyed by gem id.
func LoadGems(path string) (map[string]*Gem, error) {
	gems := make(map[string]*Gem)
	if err := readYAML(path, &gems); err != nil {
		return nil, err
	}
	for id, g := range gems {
		if g == nil {
			return nil, fmt.Errorf("validating %s: gem %q is empty", path, id)
		}
	}
	indexGems(gems)
	checkGemStats(gems)
	return gems, nil
}

// LoadMonsterStats reads default monster stats keyed by level.
func LoadMonsterStats(path string) (map[int64]MonsterStats, error) {
	monsters := make(map[int64]MonsterStats)
	if err := readYAML(path, &monsters); err != nil {
		return nil, err
	}
	return monsters, nil
}

func readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
