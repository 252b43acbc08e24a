package arrange

import "github.com/npillmayer/colortree"

// Grid records the colors placed at the positions of an area.
type Grid struct {
	W, H  int
	cells []colortree.RGB
	set   []bool
}

// NewGrid creates an empty grid of w × h positions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		cells: make([]colortree.RGB, w*h),
		set:   make([]bool, w*h),
	}
}

// gridFor creates a grid spanning positions (0,0) up to the largest
// coordinates of a set of entries.
func gridFor(entries []colortree.Entry) *Grid {
	w, h := 0, 0
	for _, e := range entries {
		w = max(w, e.Pos.X+1)
		h = max(h, e.Pos.Y+1)
	}
	return NewGrid(w, h)
}

// At returns the color placed at (x, y). ok is false for positions outside
// of the grid or not yet placed.
func (g *Grid) At(x, y int) (c colortree.RGB, ok bool) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return c, false
	}
	i := y*g.W + x
	return g.cells[i], g.set[i]
}

// Count returns the number of placed positions.
func (g *Grid) Count() int {
	n := 0
	for _, s := range g.set {
		if s {
			n++
		}
	}
	return n
}

// Set records color c at position p. Positions outside of the grid are ignored.
func (g *Grid) Set(p colortree.Pos, c colortree.RGB) {
	if p.X < 0 || p.Y < 0 || p.X >= g.W || p.Y >= g.H {
		return
	}
	i := p.Y*g.W + p.X
	g.cells[i] = c
	g.set[i] = true
}
