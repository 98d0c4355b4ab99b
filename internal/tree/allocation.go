// Package tree maintains the allocated node set of one build on the
// passive tree and keeps it connected to the class start.
package tree

import (
	"maps"
	"slices"

	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

// Outcome reports what an allocation operation did.
type Outcome uint8

const (
	Noop        Outcome = iota // nothing to do
	Applied                    // state changed
	Unreachable                // no path from the allocated set
)

func (o Outcome) String() string {
	switch o {
	case Noop:
		return "noop"
	case Applied:
		return "applied"
	case Unreachable:
		return "unreachable"
	default:
		return "outcome(?)"
	}
}

// Change is the delta produced by an operation. Added and Removed are
// sorted by node id.
type Change struct {
	Outcome Outcome
	Added   []uint16
	Removed []uint16
}

func (c *Change) merge(o Change) {
	c.Added = append(c.Added, o.Added...)
	c.Removed = append(c.Removed, o.Removed...)
	if o.Outcome == Applied {
		c.Outcome = Applied
	}
}

func (c *Change) finish() Change {
	slices.Sort(c.Added)
	slices.Sort(c.Removed)
	if len(c.Added) > 0 || len(c.Removed) > 0 {
		c.Outcome = Applied
	}
	return *c
}

// Allocation is the allocated node set of one build. It always contains
// the start node of its class, and every allocated node is reachable from
// that start (or from the chosen ascendancy's start).
//
// Not safe for concurrent use.
type Allocation struct {
	tree       *data.Tree
	class      data.Class
	ascendancy string
	nodes      map[uint16]struct{}
	masteries  map[uint16]uint16
}

// New creates an allocation holding only the start node of class.
func New(tree *data.Tree, class data.Class) *Allocation {
	a := &Allocation{
		tree:      tree,
		class:     class,
		nodes:     make(map[uint16]struct{}, 128),
		masteries: make(map[uint16]uint16),
	}
	a.nodes[tree.ClassStart(class)] = struct{}{}
	return a
}

// Tree returns the static tree the allocation is bound to.
func (a *Allocation) Tree() *data.Tree { return a.tree }

// Class returns the active class.
func (a *Allocation) Class() data.Class { return a.class }

// Ascendancy returns the chosen ascendancy, empty when none.
func (a *Allocation) Ascendancy() string { return a.ascendancy }

// Has reports whether node id is allocated.
func (a *Allocation) Has(id uint16) bool {
	_, ok := a.nodes[id]
	return ok
}

// Allocated returns the allocated node ids in ascending order.
func (a *Allocation) Allocated() []uint16 {
	return slices.Sorted(maps.Keys(a.nodes))
}

// Len returns the number of allocated nodes, starts included.
func (a *Allocation) Len() int { return len(a.nodes) }

// PassiveCount returns the number of allocated nodes the user paid a
// point for: class and ascendancy starts are free.
func (a *Allocation) PassiveCount() int {
	n := 0
	for id := range a.nodes {
		node := a.tree.Node(id)
		if node.IsClassStart() || node.AscendancyStart {
			continue
		}
		n++
	}
	return n
}

// FindPath searches breadth-first from target toward the allocated set
// and returns the node sequence from target to the first allocated node
// (the anchor). An allocated target yields a single-element path.
func (a *Allocation) FindPath(target uint16) ([]uint16, bool) {
	start := a.tree.Node(target)
	if start == nil {
		return nil, false
	}
	if a.Has(target) {
		return []uint16{target}, true
	}
	if start.IsClassStart() {
		return nil, false
	}
	if start.IsEntryHub() && start.Ascendancy != a.ascendancy {
		return nil, false
	}

	parent := map[uint16]uint16{target: target}
	queue := []uint16{target}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		from := a.tree.Node(id)

		for _, next := range neighbours(from) {
			if _, seen := parent[next]; seen {
				continue
			}
			to := a.tree.Node(next)
			if !a.passable(from, to) {
				continue
			}
			parent[next] = id
			if a.Has(next) {
				return walkBack(parent, next), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// neighbours lists in-edges then out-edges of n.
func neighbours(n *data.Node) []uint16 {
	out := make([]uint16, 0, len(n.In)+len(n.Out))
	out = append(out, n.In...)
	return append(out, n.Out...)
}

// passable reports whether a path search may step from one node to the
// next. Masteries are never stepped onto; other classes' starts and
// ascendancy entry hubs only once allocated. Nodes of an ascendancy other
// than the chosen one are entered only from an allocated hub opening it,
// or from inside that same ascendancy.
func (a *Allocation) passable(from, to *data.Node) bool {
	switch {
	case to.Mastery:
		return false
	case to.IsClassStart() && !a.Has(to.ID):
		return false
	case to.IsEntryHub() && !a.Has(to.ID):
		return false
	}
	return a.enters(from, to)
}

// enters reports whether the step from -> to stays in the main tree, the
// chosen ascendancy or from's own ascendancy, or goes through an allocated
// entry hub into the ascendancy it opens.
func (a *Allocation) enters(from, to *data.Node) bool {
	if to.Ascendancy == "" || to.Ascendancy == a.ascendancy || to.Ascendancy == from.Ascendancy {
		return true
	}
	return from.EntryFor == to.Ascendancy && a.Has(from.ID)
}

// walkBack rebuilds the path from the search origin to anchor and returns
// it origin first.
func walkBack(parent map[uint16]uint16, anchor uint16) []uint16 {
	path := []uint16{anchor}
	for id := anchor; parent[id] != id; {
		id = parent[id]
		path = append(path, id)
	}
	slices.Reverse(path)
	return path
}

// Allocate connects target to the allocated set along the shortest path.
func (a *Allocation) Allocate(target uint16) Change {
	if a.Has(target) {
		return Change{Outcome: Noop}
	}
	path, ok := a.FindPath(target)
	if !ok {
		return Change{Outcome: Unreachable}
	}
	var c Change
	for _, id := range path[:len(path)-1] {
		a.nodes[id] = struct{}{}
		c.Added = append(c.Added, id)
	}
	return c.finish()
}

// Deallocate removes target and every allocated node that loses its
// connection to the class start. Deallocating the class start is a no-op;
// deallocating the chosen ascendancy's start clears the ascendancy.
func (a *Allocation) Deallocate(target uint16) Change {
	if !a.Has(target) || target == a.tree.ClassStart(a.class) {
		return Change{Outcome: Noop}
	}
	if start, ok := a.tree.AscendancyStart(a.ascendancy); ok && start == target {
		a.ascendancy = ""
	}
	return a.remove(target)
}

// Toggle deallocates target when allocated and allocates it otherwise.
func (a *Allocation) Toggle(target uint16) Change {
	if a.Has(target) {
		return a.Deallocate(target)
	}
	return a.Allocate(target)
}

// remove drops target and prunes whatever is no longer reachable from
// the current roots.
func (a *Allocation) remove(target uint16) Change {
	delete(a.nodes, target)
	c := Change{Removed: []uint16{target}}

	reached := a.reachable()
	for id := range a.nodes {
		if _, ok := reached[id]; !ok {
			delete(a.nodes, id)
			c.Removed = append(c.Removed, id)
		}
	}
	for _, id := range c.Removed {
		delete(a.masteries, id)
	}
	return c.finish()
}

// reachable walks the allocated set from the class start and the chosen
// ascendancy's start. A mastery only leads along its out-edges.
func (a *Allocation) reachable() map[uint16]struct{} {
	seen := make(map[uint16]struct{}, len(a.nodes))
	var queue []uint16

	roots := []uint16{a.tree.ClassStart(a.class)}
	if start, ok := a.tree.AscendancyStart(a.ascendancy); ok {
		roots = append(roots, start)
	}
	for _, r := range roots {
		if a.Has(r) {
			seen[r] = struct{}{}
			queue = append(queue, r)
		}
	}

	for len(queue) > 0 {
		n := a.tree.Node(queue[0])
		queue = queue[1:]

		next := n.Out
		if !n.Mastery {
			next = neighbours(n)
		}
		for _, id := range next {
			if _, ok := seen[id]; ok || !a.Has(id) || !a.enters(n, a.tree.Node(id)) {
				continue
			}
			seen[id] = struct{}{}
			queue = append(queue, id)
		}
	}
	return seen
}

// SwitchClass makes class active: its start node is inserted, the old
// start is removed along with everything only it connected, and the
// ascendancy choice is cleared.
func (a *Allocation) SwitchClass(class data.Class) Change {
	if class == a.class {
		return Change{Outcome: Noop}
	}
	var c Change
	c.merge(a.clearAscendancy())

	old := a.tree.ClassStart(a.class)
	start := a.tree.ClassStart(class)
	a.class = class
	if !a.Has(start) {
		a.nodes[start] = struct{}{}
		c.Added = append(c.Added, start)
	}
	c.merge(a.remove(old))
	return c.finish()
}

// SwitchAscendancy replaces the chosen ascendancy; an empty name clears
// it. Choosing an ascendancy of another class switches class first.
// Unknown ascendancies are a no-op.
func (a *Allocation) SwitchAscendancy(asc string) Change {
	if asc == a.ascendancy {
		return Change{Outcome: Noop}
	}
	var (
		start uint16
		class data.Class
	)
	if asc != "" {
		var ok bool
		if start, ok = a.tree.AscendancyStart(asc); !ok {
			return Change{Outcome: Noop}
		}
		class, _ = a.tree.AscendancyClass(asc)
	}

	var c Change
	c.merge(a.clearAscendancy())
	if asc == "" {
		return c.finish()
	}
	if class != a.class {
		c.merge(a.SwitchClass(class))
	}
	a.ascendancy = asc
	if !a.Has(start) {
		a.nodes[start] = struct{}{}
		c.Added = append(c.Added, start)
	}
	return c.finish()
}

func (a *Allocation) clearAscendancy() Change {
	start, ok := a.tree.AscendancyStart(a.ascendancy)
	a.ascendancy = ""
	if !ok || !a.Has(start) {
		return Change{Outcome: Noop}
	}
	return a.remove(start)
}

// SelectMastery chooses effect on an allocated mastery node.
func (a *Allocation) SelectMastery(node, effect uint16) Change {
	n := a.tree.Node(node)
	if n == nil || !n.Mastery || !a.Has(node) {
		return Change{Outcome: Noop}
	}
	if _, ok := n.Effect(effect); !ok {
		return Change{Outcome: Noop}
	}
	if cur, ok := a.masteries[node]; ok && cur == effect {
		return Change{Outcome: Noop}
	}
	a.masteries[node] = effect
	return Change{Outcome: Applied}
}

// MasteryEffect returns the effect chosen on mastery node.
func (a *Allocation) MasteryEffect(node uint16) (uint16, bool) {
	e, ok := a.masteries[node]
	return e, ok
}

// Modifiers parses the stats of every allocated node and chosen mastery
// effect. Lines that do not parse contribute nothing.
func (a *Allocation) Modifiers(p *modifier.Parser) []modifier.Modifier {
	var mods []modifier.Modifier
	for _, id := range a.Allocated() {
		for _, text := range a.tree.Node(id).Stats {
			mods = append(mods, p.ParseLines(text, modifier.NodeSource(id))...)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(a.masteries)) {
		effect := a.masteries[id]
		e, ok := a.tree.Node(id).Effect(effect)
		if !ok {
			continue
		}
		for _, text := range e.Stats {
			mods = append(mods, p.ParseLines(text, modifier.MasterySource(id, effect))...)
		}
	}
	return mods
}
