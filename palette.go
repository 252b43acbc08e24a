package colortree

import "fmt"

// Pos is a discrete position in a 2D area.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Entry is one palette entry: a true color sitting at a position.
//
// Entries are owned by the palette. Nodes only observe and tally them. An
// entry becomes Consumed as soon as its position has been claimed by a
// position search.
type Entry struct {
	Pos      Pos
	Color    RGB
	Consumed bool
}

// Palette holds the entries to be arranged together with their global
// average color.
type Palette struct {
	Entries []Entry
	global  Color
}

// NewPalette creates a palette from a set of entries and computes the
// global average color over all of them. The entries are not copied.
func NewPalette(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: palette without entries", ErrIllegalArguments)
	}
	var sum Sum
	for _, e := range entries {
		sum = sum.Add(SumOf(e.Color))
	}
	p := &Palette{
		Entries: entries,
		global:  sum.Mean(uint64(len(entries))),
	}
	T().Debugf("palette of %d entries, global average %s", len(entries), p.global)
	return p, nil
}

// Global returns the average color over the complete palette.
func (p *Palette) Global() Color {
	return p.global
}

// Config returns a tree configuration using the palette's global average
// and default tie tolerance.
func (p *Palette) Config() Config {
	return Config{Global: p.global}
}

// Free returns the number of entries not yet consumed.
func (p *Palette) Free() int {
	n := 0
	for _, e := range p.Entries {
		if !e.Consumed {
			n++
		}
	}
	return n
}
