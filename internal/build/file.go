package build

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/gem"
	"github.com/udisondev/lightning/internal/item"
	"github.com/udisondev/lightning/internal/modifier"
	"github.com/udisondev/lightning/internal/stat"
	"github.com/udisondev/lightning/internal/tree"
)

var (
	ErrInvalidSlot   = errors.New("invalid slot")
	ErrInvalidChoice = errors.New("invalid bandit or campaign choice")
)

// GemLinkDef is the persisted form of a GemLink.
type GemLinkDef struct {
	Slot Slot      `yaml:"slot" json:"slot"`
	Gems []gem.Def `yaml:"gems" json:"gems"`
}

// Def is the persisted form of a Build.
type Def struct {
	Name       string            `yaml:"name" json:"name"`
	Tree       tree.Snapshot     `yaml:"tree" json:"tree"`
	Bandit     Bandit            `yaml:"bandit,omitempty" json:"bandit,omitempty"`
	Campaign   Campaign          `yaml:"campaign,omitempty" json:"campaign,omitempty"`
	Properties stat.Properties   `yaml:"properties" json:"properties"`
	Equipment  map[Slot]item.Def `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	GemLinks   []GemLinkDef      `yaml:"gem_links,omitempty" json:"gem_links,omitempty"`
}

// Def exports the build.
func (b *Build) Def() Def {
	d := Def{
		Name:       b.Name,
		Tree:       b.Tree.Snapshot(),
		Bandit:     b.Bandit,
		Campaign:   b.Campaign,
		Properties: b.props.Clone(),
	}
	if len(b.Equipment) > 0 {
		d.Equipment = make(map[Slot]item.Def, len(b.Equipment))
		for slot, it := range b.Equipment {
			d.Equipment[slot] = it.Def()
		}
	}
	for _, l := range b.GemLinks {
		ld := GemLinkDef{Slot: l.Slot}
		for _, g := range l.Gems {
			ld.Gems = append(ld.Gems, g.Def())
		}
		d.GemLinks = append(d.GemLinks, ld)
	}
	return d
}

// FromDef rebuilds a build from its persisted form. Empty bandit and
// campaign choices take their defaults.
func FromDef(tables *data.Tables, parser *modifier.Parser, d Def) (*Build, error) {
	alloc, err := tree.Restore(tables.Tree, d.Tree)
	if err != nil {
		return nil, fmt.Errorf("restoring tree: %w", err)
	}

	b := New(tables, parser, d.Tree.Class)
	b.Tree = alloc
	if d.Name != "" {
		b.Name = d.Name
	}
	if d.Bandit != "" {
		b.Bandit = d.Bandit
	}
	if d.Campaign != "" {
		b.Campaign = d.Campaign
	}
	if !b.Bandit.Valid() || !b.Campaign.Valid() {
		return nil, fmt.Errorf("bandit %q campaign %q: %w", b.Bandit, b.Campaign, ErrInvalidChoice)
	}
	for p, v := range d.Properties.Ints {
		b.props.SetInt(p, v)
	}
	for p, v := range d.Properties.Bools {
		b.props.SetBool(p, v)
	}

	for slot, idef := range d.Equipment {
		it, err := item.FromDef(tables, idef)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", slot, err)
		}
		if err := b.Equip(slot, it); err != nil {
			return nil, err
		}
	}

	for _, ld := range d.GemLinks {
		l := GemLink{Slot: ld.Slot}
		for _, gd := range ld.Gems {
			g, err := gem.FromDef(tables, gd)
			if err != nil {
				return nil, fmt.Errorf("gem link %s: %w", ld.Slot, err)
			}
			l.Gems = append(l.Gems, g)
		}
		b.GemLinks = append(b.GemLinks, l)
	}
	return b, nil
}

// Fingerprint returns a hex blake2b-256 digest of the build's persisted
// form. Equal builds have equal fingerprints.
func (b *Build) Fingerprint() (string, error) {
	raw, err := json.Marshal(b.Def())
	if err != nil {
		return "", fmt.Errorf("encoding build: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// LoadFile reads a YAML build file.
func LoadFile(tables *data.Tables, parser *modifier.Parser, path string) (*Build, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build %s: %w", path, err)
	}
	var d Def
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing build %s: %w", path, err)
	}
	b, err := FromDef(tables, parser, d)
	if err != nil {
		return nil, fmt.Errorf("loading build %s: %w", path, err)
	}
	slog.Debug("loaded build", "path", path, "name", b.Name, "nodes", b.Tree.Len())
	return b, nil
}

// SaveFile writes the build as YAML.
func (b *Build) SaveFile(path string) error {
	raw, err := yaml.Marshal(b.Def())
	if err != nil {
		return fmt.Errorf("encoding build: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing build %s: %w", path, err)
	}
	return nil
}
