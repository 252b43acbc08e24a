package rect

import (
	"fmt"
	"math"

	"github.com/npillmayer/colortree"
)

// Rect is an axis-aligned rectangle of discrete positions.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Contains reports whether p lies within [X, X+W) × [Y, Y+H).
func (r Rect) Contains(p colortree.Pos) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Within reports whether r is fully contained in outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Overlaps reports whether r and other share at least one position.
func (r Rect) Overlaps(other Rect) bool {
	return true &&
		r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Area is the number of positions covered by r.
func (r Rect) Area() int {
	return r.W * r.H
}

func (r Rect) validate() error {
	if r.W < 1 || r.H < 1 {
		return fmt.Errorf("%w: empty rectangle %s", colortree.ErrGeometry, r)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: negative origin of rectangle %s", colortree.ErrGeometry, r)
	}
	if r.X > math.MaxInt-r.W || r.Y > math.MaxInt-r.H {
		return fmt.Errorf("%w: rectangle %s exceeds coordinate range", colortree.ErrGeometry, r)
	}
	return nil
}
