/*
Package colortree maps palette colors onto discrete positions of a 2D area.

A color tree is a recursive, statistically weighted spatial tree. Every node
is responsible for a region of positions and keeps running statistics on the
palette entries registered into that region: how many there are, how many of
them are still free, and the accumulated true color of them. Given a target
color, the tree is descended towards the region whose statistics match the
target best, and a free position inside that region is claimed.

The package is shape-agnostic. Concrete node variants (see package rect)
decide about region membership, child geometry and how to pick a position
inside a leaf; this package provides the bookkeeping and the statistical
algorithms shared between them.

Life cycle of a tree:

  - build: create a root and add children (concrete variant's AddChild),
  - populate: register every palette entry at the root (Register / AddEntry),
  - consume: repeatedly ask for positions for target colors (FindPosForColor).

Trees are not safe for concurrent use. Clients have to serialize access.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package colortree

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ColorTreeError is an error type for argument errors of the colortree module.
type ColorTreeError string

func (e ColorTreeError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ColorTreeError("illegal arguments")

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("colortree: invalid configuration")
	// ErrUnmatchedEntry signals that an entry lies outside of the tree's coverage.
	ErrUnmatchedEntry = errors.New("colortree: entry outside tree coverage")
	// ErrEmptyRegion signals a color query on a node without registered entries.
	ErrEmptyRegion = errors.New("colortree: empty region")
	// ErrRegionExhausted signals that a region has no free entries left.
	ErrRegionExhausted = errors.New("colortree: region exhausted")
	// ErrGeometry signals a child region violating the geometric contract
	// (not contained in its parent, or overlapping a sibling).
	ErrGeometry = errors.New("colortree: geometry violation")
	// ErrPopulated signals a structural change to a tree after entries
	// have been registered.
	ErrPopulated = errors.New("colortree: tree already populated")
	// ErrBrokenInvariant is returned by Check for inconsistent statistics.
	ErrBrokenInvariant = errors.New("colortree: broken invariant")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
