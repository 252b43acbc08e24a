/*
Package arrange drives a color tree through its populate and consume phases.

An Arranger registers the entries of a palette with a tree and then places
target colors one after another, claiming a position for each of them. The
result is recorded in a Grid. Clients may subscribe to placement events,
which are broadcast as they happen.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package arrange

import (
	"context"
	"fmt"
	"iter"

	"github.com/guiguan/caster"
	"github.com/npillmayer/colortree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'colortree'
func tracer() tracing.Trace {
	return tracing.Select("colortree")
}

// Placement is the outcome of placing one target color.
type Placement struct {
	Seq    int           // 0-based sequence number of the placement
	Target colortree.RGB // requested color
	Pos    colortree.Pos // claimed position
	Color  colortree.RGB // true color of the entry at Pos
}

// Arranger places target colors into a populated color tree.
//
// Arrangers are not safe for concurrent use; subscribers receive events on
// their own channels and may run concurrently to the arranger.
type Arranger[N colortree.Variant[N]] struct {
	root    N
	entries []colortree.Entry
	index   map[colortree.Pos]int
	rnd     colortree.Rand
	grid    *Grid
	cast    *caster.Caster // broadcaster for placement events
	placed  int
}

// New creates an arranger for a freshly built tree. It registers all
// entries with root. Entries outside the tree's coverage are reported as an
// error wrapping colortree.ErrUnmatchedEntry; the arranger is not usable then.
//
// The entries are not copied: claiming positions marks them consumed.
func New[N colortree.Variant[N]](root N, entries []colortree.Entry, rnd colortree.Rand) (*Arranger[N], error) {
	if rnd == nil || len(entries) == 0 {
		return nil, colortree.ErrIllegalArguments
	}
	index := make(map[colortree.Pos]int, len(entries))
	for i, e := range entries {
		if _, dup := index[e.Pos]; dup {
			return nil, fmt.Errorf("%w: two entries at position %s", colortree.ErrIllegalArguments, e.Pos)
		}
		index[e.Pos] = i
	}
	if err := colortree.Register(root, entries); err != nil {
		return nil, err
	}
	return &Arranger[N]{
		root:    root,
		entries: entries,
		index:   index,
		rnd:     rnd,
		grid:    gridFor(entries),
		cast:    caster.New(nil), // we will broadcast messages when entries are placed
	}, nil
}

// Place claims a position for a target color.
func (a *Arranger[N]) Place(target colortree.RGB) (Placement, error) {
	pos, err := a.root.FindPosForColor(target, a.entries, a.rnd)
	if err != nil {
		return Placement{}, err
	}
	e := a.entries[a.index[pos]]
	p := Placement{
		Seq:    a.placed,
		Target: target,
		Pos:    pos,
		Color:  e.Color,
	}
	a.placed++
	a.grid.Set(pos, e.Color)
	a.cast.TryPub(p)
	return p, nil
}

// PlaceAll places a sequence of target colors, stopping at the first error.
// It returns the number of colors placed.
func (a *Arranger[N]) PlaceAll(targets iter.Seq[colortree.RGB]) (int, error) {
	cnt := 0
	for target := range targets {
		if _, err := a.Place(target); err != nil {
			tracer().Infof("arrange: stopped after %d placements: %v", cnt, err)
			return cnt, err
		}
		cnt++
	}
	tracer().Debugf("arrange: placed %d colors", cnt)
	return cnt, nil
}

// Placed returns the number of successful placements so far.
func (a *Arranger[N]) Placed() int {
	return a.placed
}

// Remaining returns the number of free entries left in the tree.
func (a *Arranger[N]) Remaining() uint64 {
	return a.root.Core().Free()
}

// Grid returns the grid of placed colors.
func (a *Arranger[N]) Grid() *Grid {
	return a.grid
}

// Subscribe returns a channel receiving a Placement for every subsequent
// placement. capacity is the size of the channel's buffer. Placing never
// waits for subscribers: a placement event is dropped for a subscriber whose
// buffer is full. Passing a context allows to unsubscribe by cancellation.
// ok is false if the arranger has already been closed.
func (a *Arranger[N]) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	return a.cast.Sub(ctx, capacity)
}

// Close ends broadcasting and closes all subscriber channels.
func (a *Arranger[N]) Close() {
	a.cast.Close()
}

// Targets returns a sequence of n target colors, the i-th being fn(i).
func Targets(n int, fn func(i int) colortree.RGB) iter.Seq[colortree.RGB] {
	return func(yield func(colortree.RGB) bool) {
		for i := range n {
			if !yield(fn(i)) {
				return
			}
		}
	}
}
