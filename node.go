package colortree

import (
	"fmt"
	"math"
)

// Variant is the capability contract a concrete node type has to fulfil to
// plug into the generic algorithms of this package. N is the concrete node
// type itself, usually a pointer type.
//
// CheckAddEntry reports whether an entry's position belongs to the node's
// region. FindPosForColor selects and claims a free position for a target
// color. It must return positions within the node's own region only, must
// only return positions of free entries, and must be deterministic for a
// fixed sequence of random draws.
type Variant[N any] interface {
	Core() *Core[N]
	CheckAddEntry(e *Entry) bool
	FindPosForColor(target RGB, entries []Entry, rnd Rand) (Pos, error)
}

// Core holds the shape-agnostic state of a node: parent link, owned children
// and the statistics on registered entries. Concrete variants embed a Core
// as a field and expose it through their Core() method.
type Core[N any] struct {
	cfg      *Config
	parent   N        // non-owning back reference, zero for the root
	up       *Core[N] // parent's core, nil for the root
	children []N
	free     uint64 // registered entries not yet claimed
	total    uint64 // registered entries, never decreases
	sum      Sum    // accumulated true colors of registered entries
}

// Init prepares the core of a root node.
func (c *Core[N]) Init(cfg *Config) {
	assert(cfg != nil, "root node initialized without configuration")
	c.cfg = cfg
}

// Config returns the configuration shared by the tree.
func (c *Core[N]) Config() *Config {
	return c.cfg
}

// Parent returns the parent node. ok is false for the root.
func (c *Core[N]) Parent() (parent N, ok bool) {
	return c.parent, c.up != nil
}

// Children returns the node's children in insertion order.
func (c *Core[N]) Children() []N {
	return c.children
}

// IsLeaf reports whether the node has no children.
func (c *Core[N]) IsLeaf() bool {
	return len(c.children) == 0
}

// Free is the number of registered entries still unclaimed.
func (c *Core[N]) Free() uint64 { return c.free }

// Total is the number of entries ever registered.
func (c *Core[N]) Total() uint64 { return c.total }

// Sum is the accumulated true color of the registered entries.
func (c *Core[N]) Sum() Sum { return c.sum }

// Color returns the color the node's region currently represents:
//
//	channel = (free * global + accumulated) / total
//
// Regions with many unclaimed entries lean towards the global palette
// average. Color returns ErrEmptyRegion if no entry has been registered.
func (c *Core[N]) Color() (Color, error) {
	if c.total == 0 {
		return Color{}, ErrEmptyRegion
	}
	f, t := float64(c.free), float64(c.total)
	g := c.cfg.Global
	return Color{
		R: (f*g.R + float64(c.sum.R)) / t,
		G: (f*g.G + float64(c.sum.G)) / t,
		B: (f*g.B + float64(c.sum.B)) / t,
	}, nil
}

// Claim marks a free entry as consumed and withdraws it from the free count
// of this node and every ancestor. Claim has to be called on the node where
// the entry has been selected.
func (c *Core[N]) Claim(e *Entry) {
	assert(!e.Consumed, "claiming a consumed entry")
	e.Consumed = true
	for n := c; n != nil; n = n.up {
		assert(n.free > 0, "claim on node without free entries")
		n.free--
	}
}

// Adopt makes child a child of parent and hands ownership of it to parent.
// Concrete variants create the child and call Adopt from their AddChild.
// Children may only be added before entries are registered.
func Adopt[N Variant[N]](parent, child N) (N, error) {
	pc, cc := parent.Core(), child.Core()
	if pc.cfg == nil {
		return child, fmt.Errorf("%w: parent has no configuration", ErrInvalidConfig)
	}
	if pc.total > 0 {
		return child, fmt.Errorf("%w: cannot add children to a populated node", ErrPopulated)
	}
	if cc.up != nil || cc.total > 0 || len(cc.children) > 0 {
		return child, fmt.Errorf("%w: child is already in use", ErrIllegalArguments)
	}
	cc.cfg = pc.cfg
	cc.parent = parent
	cc.up = pc
	pc.children = append(pc.children, child)
	return child, nil
}

// AddEntry registers an entry with the tree rooted at root. The entry is
// counted by every node whose region contains the entry's position.
// AddEntry reports whether root accepted the entry. Entries already consumed
// are counted in total only. Registering with an inner node would leave the
// ancestors' statistics behind, therefore AddEntry returns an error wrapping
// ErrIllegalArguments if root has a parent.
func AddEntry[N Variant[N]](root N, e *Entry) (bool, error) {
	if root.Core().up != nil {
		return false, fmt.Errorf("%w: entries have to be added at the root", ErrIllegalArguments)
	}
	return addEntry(root, e), nil
}

func addEntry[N Variant[N]](n N, e *Entry) bool {
	if !n.CheckAddEntry(e) {
		return false
	}
	c := n.Core()
	c.total++
	if !e.Consumed {
		c.free++
	}
	c.sum = c.sum.Add(SumOf(e.Color))
	for _, child := range c.children {
		addEntry(child, e)
	}
	return true
}

// Register registers every entry with the tree rooted at root. Entries
// outside the tree's coverage are dropped; if there were any, Register
// returns an error wrapping ErrUnmatchedEntry after all other entries have
// been registered.
//
// Register populates a tree once. It returns an error wrapping ErrPopulated
// if root already counts entries, and one wrapping ErrIllegalArguments if
// root is an inner node.
func Register[N Variant[N]](root N, entries []Entry) error {
	c := root.Core()
	if c.up != nil {
		return fmt.Errorf("%w: entries have to be registered at the root", ErrIllegalArguments)
	}
	if c.total > 0 {
		return fmt.Errorf("%w: %d entries registered before", ErrPopulated, c.total)
	}
	dropped := 0
	for i := range entries {
		if !addEntry(root, &entries[i]) {
			T().Debugf("color tree: entry at %s outside tree coverage", entries[i].Pos)
			dropped++
		}
	}
	T().Debugf("color tree: registered %d entries, %d free", c.total, c.free)
	if dropped > 0 {
		return fmt.Errorf("%w: %d of %d entries dropped", ErrUnmatchedEntry, dropped, len(entries))
	}
	return nil
}

// SelectChild chooses the child of n whose color estimate is closest to
// target, considering children with free entries only. Candidates within
// the configured tolerance of the best distance are tied, and draw selects
// among them. ok is false if no child has free entries.
func SelectChild[N Variant[N]](n N, target RGB, draw float64) (child N, ok bool) {
	c := n.Core()
	dist := make([]float64, len(c.children))
	best := math.Inf(+1)
	for i, ch := range c.children {
		dist[i] = math.Inf(+1)
		cc := ch.Core()
		if cc.free == 0 {
			continue
		}
		col, err := cc.Color()
		assert(err == nil, "node with free entries has no color")
		dist[i] = col.Dist2(target)
		best = math.Min(best, dist[i])
	}
	if math.IsInf(best, +1) {
		return child, false
	}
	var ties []N
	for i, ch := range c.children {
		if !math.IsInf(dist[i], +1) && dist[i] <= best+c.cfg.Tolerance {
			ties = append(ties, ch)
		}
	}
	return ties[pick(draw, len(ties))], true
}

// SelectEntry chooses among the free entries with a position inside the
// region the one whose color is closest to target, with draw breaking ties.
// It returns the index of the entry, or ErrRegionExhausted.
func (c *Core[N]) SelectEntry(entries []Entry, target RGB, draw float64, inside func(Pos) bool) (int, error) {
	best := math.Inf(+1)
	for i := range entries {
		e := &entries[i]
		if e.Consumed || !inside(e.Pos) {
			continue
		}
		best = math.Min(best, ColorOf(e.Color).Dist2(target))
	}
	var ties []int
	for i := range entries {
		e := &entries[i]
		if e.Consumed || !inside(e.Pos) {
			continue
		}
		if ColorOf(e.Color).Dist2(target) <= best+c.cfg.Tolerance {
			ties = append(ties, i)
		}
	}
	if len(ties) == 0 {
		return -1, fmt.Errorf("%w: no free entry inside region", ErrRegionExhausted)
	}
	return ties[pick(draw, len(ties))], nil
}
