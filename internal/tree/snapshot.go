package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/udisondev/lightning/internal/data"
)

// ErrInvalidSnapshot is returned by Restore for snapshots that do not fit
// the tree.
var ErrInvalidSnapshot = errors.New("invalid allocation snapshot")

// Snapshot is the persisted form of an Allocation.
type Snapshot struct {
	Class      data.Class        `yaml:"class" json:"class"`
	Ascendancy string            `yaml:"ascendancy,omitempty" json:"ascendancy,omitempty"`
	Nodes      []uint16          `yaml:"nodes" json:"nodes"`
	Masteries  map[uint16]uint16 `yaml:"masteries,omitempty" json:"masteries,omitempty"`
}

// Snapshot exports the allocation. Nodes are sorted.
func (a *Allocation) Snapshot() Snapshot {
	s := Snapshot{
		Class:      a.class,
		Ascendancy: a.ascendancy,
		Nodes:      a.Allocated(),
	}
	if len(a.masteries) > 0 {
		s.Masteries = maps.Clone(a.masteries)
	}
	return s
}

// Restore rebuilds an allocation from s. Unknown nodes, another class's
// start node, an ascendancy of another class, or a mastery choice the node
// does not offer are errors. Nodes that are not connected to the starts,
// including foreign ascendancy nodes not behind an allocated entry hub,
// are dropped.
func Restore(tree *data.Tree, s Snapshot) (*Allocation, error) {
	if _, ok := tree.Classes[s.Class]; !ok {
		return nil, fmt.Errorf("class %s: %w", s.Class, ErrInvalidSnapshot)
	}
	a := New(tree, s.Class)

	if s.Ascendancy != "" {
		class, ok := tree.AscendancyClass(s.Ascendancy)
		if !ok || class != s.Class {
			return nil, fmt.Errorf("ascendancy %q for %s: %w", s.Ascendancy, s.Class, ErrInvalidSnapshot)
		}
		start, _ := tree.AscendancyStart(s.Ascendancy)
		a.ascendancy = s.Ascendancy
		a.nodes[start] = struct{}{}
	}

	for _, id := range s.Nodes {
		if tree.Node(id) == nil {
			return nil, fmt.Errorf("node %d: %w", id, data.ErrUnknownNode)
		}
		if c := tree.Node(id).ClassStart; c != nil && *c != s.Class {
			return nil, fmt.Errorf("node %d is the %s start: %w", id, *c, ErrInvalidSnapshot)
		}
		a.nodes[id] = struct{}{}
	}

	reached := a.reachable()
	dropped := 0
	for id := range a.nodes {
		if _, ok := reached[id]; !ok {
			delete(a.nodes, id)
			dropped++
		}
	}
	if dropped > 0 {
		slog.Warn("dropped disconnected nodes from snapshot", "count", dropped)
	}

	for node, effect := range s.Masteries {
		n := tree.Node(node)
		if n == nil || !n.Mastery {
			return nil, fmt.Errorf("mastery %d: %w", node, ErrInvalidSnapshot)
		}
		if _, ok := n.Effect(effect); !ok {
			return nil, fmt.Errorf("mastery %d effect %d: %w", node, effect, ErrInvalidSnapshot)
		}
		if a.Has(node) {
			a.masteries[node] = effect
		}
	}
	return a, nil
}
