package rect

import (
	"fmt"

	"github.com/npillmayer/colortree"
)

// Node is a color tree node responsible for a rectangle.
type Node struct {
	core colortree.Core[*Node]
	rect Rect
}

var _ colortree.Variant[*Node] = (*Node)(nil)

// NewRoot creates the root node of a tree covering rectangle (x, y, w, h).
func NewRoot(cfg colortree.Config, x, y, w, h int) (*Node, error) {
	c, err := colortree.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	r := Rect{X: x, Y: y, W: w, H: h}
	if err := r.validate(); err != nil {
		return nil, err
	}
	n := &Node{rect: r}
	n.core.Init(c)
	return n, nil
}

// Core gives access to the shape-agnostic part of the node.
func (n *Node) Core() *colortree.Core[*Node] {
	return &n.core
}

func (n *Node) String() string {
	return n.rect.String()
}

// AddChild creates a child node for the sub-rectangle (x, y, w, h) and hands
// ownership of it to n. The sub-rectangle has to lie within n's rectangle
// and must not overlap any sibling, otherwise AddChild returns an error
// wrapping colortree.ErrGeometry. Children cannot be added once entries
// have been registered.
func (n *Node) AddChild(x, y, w, h int) (*Node, error) {
	r := Rect{X: x, Y: y, W: w, H: h}
	if err := r.validate(); err != nil {
		return nil, err
	}
	if !r.Within(n.rect) {
		return nil, fmt.Errorf("%w: child %s exceeds parent %s", colortree.ErrGeometry, r, n.rect)
	}
	for _, sibling := range n.core.Children() {
		if r.Overlaps(sibling.rect) {
			return nil, fmt.Errorf("%w: child %s overlaps sibling %s", colortree.ErrGeometry, r, sibling.rect)
		}
	}
	child, err := colortree.Adopt(n, &Node{rect: r})
	if err != nil {
		return nil, err
	}
	return child, nil
}

// CheckAddEntry reports whether the entry's position lies within n's rectangle.
func (n *Node) CheckAddEntry(e *colortree.Entry) bool {
	return n.rect.Contains(e.Pos)
}

// Spec returns the rectangle of n as given at construction time.
func (n *Node) Spec() (x, y, w, h int) {
	return n.rect.X, n.rect.Y, n.rect.W, n.rect.H
}

// Rect returns the rectangle of n.
func (n *Node) Rect() Rect {
	return n.rect
}

// AddEntry registers an entry with n and all matching descendants.
// n has to be the root of its tree.
func (n *Node) AddEntry(e *colortree.Entry) (bool, error) {
	return colortree.AddEntry(n, e)
}

// Register registers a set of entries with the tree rooted at n. A tree is
// populated only once.
func (n *Node) Register(entries []colortree.Entry) error {
	return colortree.Register(n, entries)
}

// Color returns the color estimate of n's rectangle.
func (n *Node) Color() (colortree.Color, error) {
	return n.core.Color()
}

// FindPosForColor finds a free position inside n's rectangle whose
// neighborhood matches target best, and claims it.
//
// The tree is descended from n, choosing on every level the child whose
// color estimate is closest to target. The first node without children
// having free entries acts as the leaf. Within the leaf, the free entry with
// the color closest to target is taken. Ties are broken by a single draw
// from rnd. The entry is marked consumed and the free counts along the path
// up to the root are decremented.
func (n *Node) FindPosForColor(target colortree.RGB, entries []colortree.Entry,
	rnd colortree.Rand) (colortree.Pos, error) {
	//
	if rnd == nil {
		return colortree.Pos{}, fmt.Errorf("%w: missing random source", colortree.ErrIllegalArguments)
	}
	if n.core.Free() == 0 {
		return colortree.Pos{}, fmt.Errorf("%w: %s", colortree.ErrRegionExhausted, n.rect)
	}
	draw := rnd.Float64()
	leaf := n
	for {
		child, ok := colortree.SelectChild(leaf, target, draw)
		if !ok {
			break
		}
		leaf = child
	}
	i, err := leaf.core.SelectEntry(entries, target, draw, leaf.rect.Contains)
	if err != nil {
		tracer().Errorf("color tree: %s has %d free entries, none found", leaf.rect, leaf.core.Free())
		return colortree.Pos{}, err
	}
	leaf.core.Claim(&entries[i])
	tracer().Debugf("color tree: target %s placed at %s in %s", target, entries[i].Pos, leaf.rect)
	return entries[i].Pos, nil
}
