package rect

import (
	"fmt"

	"github.com/npillmayer/colortree"
)

// Split subdivides n's rectangle into a grid of cols × rows children.
// Remainders are spread over the grid, so children differ in size by at
// most one position per axis. Children are returned row by row.
func (n *Node) Split(cols, rows int) ([]*Node, error) {
	if cols < 1 || rows < 1 || cols > n.rect.W || rows > n.rect.H {
		return nil, fmt.Errorf("%w: cannot split %s into %d×%d", colortree.ErrIllegalArguments,
			n.rect, cols, rows)
	}
	children := make([]*Node, 0, cols*rows)
	for j := range rows {
		y0 := n.rect.Y + j*n.rect.H/rows
		y1 := n.rect.Y + (j+1)*n.rect.H/rows
		for i := range cols {
			x0 := n.rect.X + i*n.rect.W/cols
			x1 := n.rect.X + (i+1)*n.rect.W/cols
			child, err := n.AddChild(x0, y0, x1-x0, y1-y0)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}
	return children, nil
}

// BuildQuadtree creates a tree over rectangle (x, y, w, h), recursively
// splitting every node into quadrants until neither side of a leaf exceeds
// minSize. Sides of length 1 are not split further, so thin rectangles are
// halved along their longer axis only.
func BuildQuadtree(cfg colortree.Config, x, y, w, h, minSize int) (*Node, error) {
	if minSize < 1 {
		return nil, fmt.Errorf("%w: minimum leaf size %d", colortree.ErrIllegalArguments, minSize)
	}
	root, err := NewRoot(cfg, x, y, w, h)
	if err != nil {
		return nil, err
	}
	if err = subdivide(root, minSize); err != nil {
		return nil, err
	}
	tracer().Debugf("quadtree over %s built down to leaf size %d", root.rect, minSize)
	return root, nil
}

func subdivide(n *Node, minSize int) error {
	cols, rows := 1, 1
	if n.rect.W > minSize {
		cols = 2
	}
	if n.rect.H > minSize {
		rows = 2
	}
	if cols*rows == 1 {
		return nil
	}
	children, err := n.Split(cols, rows)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := subdivide(child, minSize); err != nil {
			return err
		}
	}
	return nil
}
