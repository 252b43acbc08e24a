package colortree

import "fmt"

// Check validates the structural and statistical invariants of the tree
// rooted at root:
//
//   - every node carries the tree's configuration,
//   - free <= total for every node,
//   - children link back to their parent,
//   - for disjoint children, counts and color sums of the children add up
//     to at most the parent's.
//
// This checker is intentionally strict and should be used in tests.
func Check[N Variant[N]](root N) error {
	c := root.Core()
	if c.up != nil {
		return fmt.Errorf("%w: check called on a non-root node", ErrBrokenInvariant)
	}
	return checkNode(root, c.cfg, 0)
}

func checkNode[N Variant[N]](n N, cfg *Config, depth int) error {
	c := n.Core()
	if c.cfg == nil || c.cfg != cfg {
		return fmt.Errorf("%w: node at depth %d has foreign configuration", ErrBrokenInvariant, depth)
	}
	if c.free > c.total {
		return fmt.Errorf("%w: free count %d exceeds total %d at depth %d",
			ErrBrokenInvariant, c.free, c.total, depth)
	}
	var free, total uint64
	var sum Sum
	for i, child := range c.children {
		cc := child.Core()
		if cc.up != c {
			return fmt.Errorf("%w: child %d at depth %d does not link to its parent",
				ErrBrokenInvariant, i, depth)
		}
		if err := checkNode(child, cfg, depth+1); err != nil {
			return err
		}
		free += cc.free
		total += cc.total
		sum = sum.Add(cc.sum)
	}
	if total > c.total || free > c.free {
		return fmt.Errorf("%w: children at depth %d count more entries than their parent (%d/%d > %d/%d)",
			ErrBrokenInvariant, depth+1, free, total, c.free, c.total)
	}
	if sum.R > c.sum.R || sum.G > c.sum.G || sum.B > c.sum.B {
		return fmt.Errorf("%w: children at depth %d accumulate more color than their parent",
			ErrBrokenInvariant, depth+1)
	}
	return nil
}

// CheckEntries validates the node statistics against a set of entries: for
// every node, total has to equal the number of entries inside its region
// and free the number of those not yet consumed.
func CheckEntries[N Variant[N]](root N, entries []Entry) error {
	var err error
	Walk(root, func(n N, depth int) bool {
		var free, total uint64
		for i := range entries {
			if n.CheckAddEntry(&entries[i]) {
				total++
				if !entries[i].Consumed {
					free++
				}
			}
		}
		c := n.Core()
		if c.total != total || c.free != free {
			err = fmt.Errorf("%w: node at depth %d counts %d/%d entries, expected %d/%d",
				ErrBrokenInvariant, depth, c.free, c.total, free, total)
			return false
		}
		return true
	})
	return err
}

// Walk visits the tree rooted at n in depth-first pre-order. Iteration
// stops early if fn returns false.
func Walk[N Variant[N]](n N, fn func(node N, depth int) bool) {
	walk(n, 0, fn)
}

func walk[N Variant[N]](n N, depth int, fn func(N, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Core().children {
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}
