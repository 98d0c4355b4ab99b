package data

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownNode            = errors.New("unknown node")
	ErrDuplicateNode          = errors.New("duplicate node id")
	ErrMissingClassStart      = errors.New("class has no start node")
	ErrUnknownAscendancy      = errors.New("unknown ascendancy")
	ErrMissingAscendancyStart = errors.New("ascendancy has no start node")
)

// Class is a character class. Every class owns one start node.
type Class uint8

const (
	Scion Class = iota
	Marauder
	Ranger
	Witch
	Duelist
	Templar
	Shadow

	classCount
)

var classNames = [classCount]string{
	Scion:    "Scion",
	Marauder: "Marauder",
	Ranger:   "Ranger",
	Witch:    "Witch",
	Duelist:  "Duelist",
	Templar:  "Templar",
	Shadow:   "Shadow",
}

func (c Class) String() string {
	if c < classCount {
		return classNames[c]
	}
	return "Class(?)"
}

// Classes lists every class in declaration order.
func Classes() []Class {
	return []Class{Scion, Marauder, Ranger, Witch, Duelist, Templar, Shadow}
}

// ParseClass looks up a class by name.
func ParseClass(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name {
			return Class(i), true
		}
	}
	return 0, false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	v, ok := ParseClass(string(text))
	if !ok {
		return fmt.Errorf("unknown class %q", text)
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ClassData holds the starting attributes of a class.
type ClassData struct {
	Str int64 `yaml:"str"`
	Dex int64 `yaml:"dex"`
	Int int64 `yaml:"int"`
}

// MasteryEffect is one selectable effect of a mastery node.
type MasteryEffect struct {
	ID    uint16   `yaml:"effect"`
	Stats []string `yaml:"stats"`
}

// Node is a passive tree node.
type Node struct {
	ID    uint16   `yaml:"id"`
	Name  string   `yaml:"name"`
	Stats []string `yaml:"stats"`
	Out   []uint16 `yaml:"out"`

	// In is the inverse of Out, computed at load.
	In []uint16 `yaml:"-"`

	Notable         bool   `yaml:"notable"`
	Keystone        bool   `yaml:"keystone"`
	Mastery         bool   `yaml:"mastery"`
	JewelSocket     bool   `yaml:"jewel_socket"`
	AscendancyStart bool   `yaml:"ascendancy_start"`
	ClassStart      *Class `yaml:"class_start"`

	// Ascendancy is the owning ascendancy, empty for main tree nodes.
	Ascendancy string `yaml:"ascendancy"`

	// EntryFor names the ascendancy this hub opens ("Path of the ..." nodes).
	EntryFor string `yaml:"entry_for"`

	MasteryEffects []MasteryEffect `yaml:"mastery_effects"`
}

// IsClassStart reports whether n is the start node of some class.
func (n *Node) IsClassStart() bool { return n.ClassStart != nil }

// IsEntryHub reports whether n opens another ascendancy.
func (n *Node) IsEntryHub() bool { return n.EntryFor != "" }

// Effect returns the mastery effect with the given id.
func (n *Node) Effect(id uint16) (MasteryEffect, bool) {
	for _, e := range n.MasteryEffects {
		if e.ID == id {
			return e, true
		}
	}
	return MasteryEffect{}, false
}

// Tree is the static passive tree. It is read-only after Load.
type Tree struct {
	Classes      map[Class]ClassData
	Ascendancies map[string]Class
	Nodes        map[uint16]*Node
	JewelSlots   []uint16

	classStarts      map[Class]uint16
	ascendancyStarts map[string]uint16
}

// Node returns the node with id, or nil.
func (t *Tree) Node(id uint16) *Node {
	return t.Nodes[id]
}

// ClassStart returns the start node of class c.
func (t *Tree) ClassStart(c Class) uint16 {
	return t.classStarts[c]
}

// AscendancyStart returns the start node of ascendancy a.
func (t *Tree) AscendancyStart(a string) (uint16, bool) {
	id, ok := t.ascendancyStarts[a]
	return id, ok
}

// AscendancyClass returns the class owning ascendancy a.
func (t *Tree) AscendancyClass(a string) (Class, bool) {
	c, ok := t.Ascendancies[a]
	return c, ok
}

// TreeDef is the decoded form of the tree table.
type TreeDef struct {
	Classes      map[Class]ClassData `yaml:"classes"`
	Ascendancies map[string]Class    `yaml:"ascendancies"`
	JewelSlots   []uint16            `yaml:"jewel_slots"`
	Nodes        []Node              `yaml:"nodes"`
}

// NewTree indexes and validates a tree definition. The nodes of f are
// taken over by the returned Tree.
func NewTree(f TreeDef) (*Tree, error) {
	t := &Tree{
		Classes:          f.Classes,
		Ascendancies:     f.Ascendancies,
		Nodes:            make(map[uint16]*Node, len(f.Nodes)),
		JewelSlots:       f.JewelSlots,
		classStarts:      make(map[Class]uint16),
		ascendancyStarts: make(map[string]uint16),
	}
	if t.Classes == nil {
		t.Classes = make(map[Class]ClassData)
	}
	if t.Ascendancies == nil {
		t.Ascendancies = make(map[string]Class)
	}

	for i := range f.Nodes {
		n := &f.Nodes[i]
		if _, dup := t.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNode)
		}
		t.Nodes[n.ID] = n
	}

	for _, n := range f.Nodes {
		for _, to := range n.Out {
			target, ok := t.Nodes[to]
			if !ok {
				return nil, fmt.Errorf("node %d edge to %d: %w", n.ID, to, ErrUnknownNode)
			}
			if !slices.Contains(target.In, n.ID) {
				target.In = append(target.In, n.ID)
			}
		}
	}

	for _, n := range t.Nodes {
		if n.ClassStart != nil {
			t.classStarts[*n.ClassStart] = n.ID
		}
		if n.Ascendancy != "" {
			if _, ok := t.Ascendancies[n.Ascendancy]; !ok {
				return nil, fmt.Errorf("node %d ascendancy %q: %w", n.ID, n.Ascendancy, ErrUnknownAscendancy)
			}
			if n.AscendancyStart {
				t.ascendancyStarts[n.Ascendancy] = n.ID
			}
		}
		if n.EntryFor != "" {
			if _, ok := t.Ascendancies[n.EntryFor]; !ok {
				return nil, fmt.Errorf("node %d entry for %q: %w", n.ID, n.EntryFor, ErrUnknownAscendancy)
			}
		}
	}
	for _, id := range t.JewelSlots {
		if _, ok := t.Nodes[id]; !ok {
			return nil, fmt.Errorf("jewel slot %d: %w", id, ErrUnknownNode)
		}
	}

	for c := range t.Classes {
		if _, ok := t.classStarts[c]; !ok {
			return nil, fmt.Errorf("class %s: %w", c, ErrMissingClassStart)
		}
	}
	for a := range t.Ascendancies {
		if _, ok := t.ascendancyStarts[a]; !ok {
			return nil, fmt.Errorf("ascendancy %s: %w", a, ErrMissingAscendancyStart)
		}
	}

	return t, nil
}
