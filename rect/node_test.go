package rect

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/colortree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRectPredicates(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	for _, p := range []colortree.Pos{{X: 2, Y: 3}, {X: 5, Y: 4}, {X: 3, Y: 3}} {
		if !r.Contains(p) {
			t.Errorf("expected %s to contain %s", r, p)
		}
	}
	for _, p := range []colortree.Pos{{X: 6, Y: 3}, {X: 2, Y: 5}, {X: 1, Y: 3}, {X: 2, Y: 2}} {
		if r.Contains(p) {
			t.Errorf("expected %s not to contain %s", r, p)
		}
	}
	if !(Rect{X: 2, Y: 3, W: 2, H: 2}).Within(r) || (Rect{X: 5, Y: 3, W: 2, H: 1}).Within(r) {
		t.Errorf("containment test broken")
	}
	if (Rect{X: 6, Y: 3, W: 1, H: 1}).Overlaps(r) || !(Rect{X: 5, Y: 4, W: 3, H: 3}).Overlaps(r) {
		t.Errorf("overlap test broken")
	}
	if r.Area() != 8 {
		t.Errorf("expected area 8, got %d", r.Area())
	}
}

func TestAddChildValidatesGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	if _, err := NewRoot(colortree.Config{}, -1, 0, 4, 4); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected negative origin to be rejected, got %v", err)
	}
	if _, err := NewRoot(colortree.Config{}, math.MaxInt-1, 0, 4, 1); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected rectangle beyond coordinate range to be rejected, got %v", err)
	}
	if _, err := NewRoot(colortree.Config{}, 0, math.MaxInt-2, 1, 3); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected rectangle beyond coordinate range to be rejected, got %v", err)
	}
	if _, err := NewRoot(colortree.Config{}, 0, math.MaxInt-3, 1, 3); err != nil {
		t.Errorf("expected rectangle ending at the coordinate limit to be accepted, got %v", err)
	}
	if _, err := NewRoot(colortree.Config{Tolerance: -1}, 0, 0, 4, 4); !errors.Is(err, colortree.ErrInvalidConfig) {
		t.Errorf("expected invalid config to be rejected, got %v", err)
	}
	root, err := NewRoot(colortree.Config{}, 0, 0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := root.AddChild(2, 2, 3, 1); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected child exceeding parent to be rejected, got %v", err)
	}
	if _, err := root.AddChild(0, 0, 0, 2); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected empty child to be rejected, got %v", err)
	}
	if _, err := root.AddChild(0, 0, 2, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := root.AddChild(1, 1, 2, 2); !errors.Is(err, colortree.ErrGeometry) {
		t.Errorf("expected overlapping sibling to be rejected, got %v", err)
	}
	if _, err := root.AddChild(2, 0, 2, 2); err != nil {
		t.Errorf("expected adjacent sibling to be accepted, got %v", err)
	}
	if len(root.Core().Children()) != 2 {
		t.Errorf("expected 2 children, have %d", len(root.Core().Children()))
	}
	entries := []colortree.Entry{{Pos: colortree.Pos{X: 3, Y: 3}}}
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	if _, err := root.AddChild(0, 2, 2, 2); !errors.Is(err, colortree.ErrPopulated) {
		t.Errorf("expected child of populated tree to be rejected, got %v", err)
	}
}

func TestQuadtreeSiblingsAreDisjointAndContained(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := BuildQuadtree(colortree.Config{}, 1, 2, 7, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	leaves := 0
	colortree.Walk(root, func(n *Node, depth int) bool {
		children := n.Core().Children()
		if len(children) == 0 {
			leaves++
			if n.rect.W != 1 || n.rect.H != 1 {
				t.Errorf("leaf %s exceeds minimum size", n)
			}
			return true
		}
		for _, c := range children {
			if !c.rect.Within(n.rect) {
				t.Errorf("child %s not within parent %s", c, n)
			}
		}
		for y := n.rect.Y; y < n.rect.Y+n.rect.H; y++ {
			for x := n.rect.X; x < n.rect.X+n.rect.W; x++ {
				e := colortree.Entry{Pos: colortree.Pos{X: x, Y: y}}
				accepted := 0
				for _, c := range children {
					if c.CheckAddEntry(&e) {
						accepted++
					}
				}
				if accepted != 1 {
					t.Errorf("position %s accepted by %d children of %s", e.Pos, accepted, n)
				}
			}
		}
		return true
	})
	if leaves != 35 {
		t.Errorf("expected 35 leaves, have %d", leaves)
	}
}

func TestSplitDistributesRemainders(t *testing.T) {
	root, err := NewRoot(colortree.Config{}, 0, 0, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := root.Split(6, 1); !errors.Is(err, colortree.ErrIllegalArguments) {
		t.Errorf("expected split wider than the rectangle to be rejected, got %v", err)
	}
	children, err := root.Split(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if children[0].Rect() != (Rect{X: 0, Y: 0, W: 2, H: 3}) || children[1].Rect() != (Rect{X: 2, Y: 0, W: 3, H: 3}) {
		t.Errorf("unexpected split %s %s", children[0], children[1])
	}
	if _, err := BuildQuadtree(colortree.Config{}, 0, 0, 4, 4, 0); !errors.Is(err, colortree.ErrIllegalArguments) {
		t.Errorf("expected minimum size 0 to be rejected, got %v", err)
	}
}

// quadrantBase holds the base colors of the quadrants of a 4×4 area,
// in the order of Split(2, 2).
var quadrantBase = [4]colortree.RGB{
	{R: 40, G: 40, B: 200},
	{R: 200, G: 40, B: 40},
	{R: 40, G: 200, B: 40},
	{R: 200, G: 200, B: 200},
}

// quadrantEntries creates one entry per position of a 4×4 area. Every
// entry has its own color, derived from the base color of its quadrant.
func quadrantEntries() []colortree.Entry {
	entries := make([]colortree.Entry, 0, 16)
	for y := range 4 {
		for x := range 4 {
			q := (y/2)*2 + x/2
			c := quadrantBase[q]
			c.R += uint8((y%2)*2 + x%2)
			entries = append(entries, colortree.Entry{Pos: colortree.Pos{X: x, Y: y}, Color: c})
		}
	}
	return entries
}

func TestQuadrantScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := NewRoot(colortree.Config{}, 0, 0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	quadrants, err := root.Split(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	entries := quadrantEntries()
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	if root.Core().Total() != 16 {
		t.Fatalf("expected root to count 16 entries, has %d", root.Core().Total())
	}
	for i, q := range quadrants {
		if q.Core().Total() != 4 {
			t.Fatalf("expected quadrant %d to count 4 entries, has %d", i, q.Core().Total())
		}
	}
	for i, q := range quadrants {
		pos, err := root.FindPosForColor(quadrantBase[i], entries, &colortree.FixedDraws{Draws: []float64{0.5}})
		if err != nil {
			t.Fatal(err)
		}
		if !q.rect.Contains(pos) {
			t.Errorf("target of quadrant %d placed at %s, outside %s", i, pos, q)
		}
	}
	if err := colortree.CheckEntries(root, entries); err != nil {
		t.Fatal(err)
	}
	if err := colortree.Check(root); err != nil {
		t.Fatal(err)
	}
}

func TestSpecIsStable(t *testing.T) {
	root, err := BuildQuadtree(colortree.Config{}, 0, 0, 4, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	x, y, w, h := root.Spec()
	entries := quadrantEntries()
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	if _, err := root.FindPosForColor(colortree.RGB{}, entries, rand.New(rand.NewSource(1))); err != nil {
		t.Fatal(err)
	}
	x2, y2, w2, h2 := root.Spec()
	if x != x2 || y != y2 || w != w2 || h != h2 || x != 0 || w != 4 || h != 4 {
		t.Errorf("spec changed from (%d,%d,%d,%d) to (%d,%d,%d,%d)", x, y, w, h, x2, y2, w2, h2)
	}
}

func randomEntries(rnd *rand.Rand, w, h int) []colortree.Entry {
	entries := make([]colortree.Entry, 0, w*h)
	for y := range h {
		for x := range w {
			entries = append(entries, colortree.Entry{
				Pos: colortree.Pos{X: x, Y: y},
				Color: colortree.RGB{
					R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256)),
				},
			})
		}
	}
	return entries
}

func TestFindPosIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	draws := make([]float64, 17)
	seed := rand.New(rand.NewSource(7))
	for i := range draws {
		draws[i] = seed.Float64()
	}
	run := func() []colortree.Pos {
		rnd := rand.New(rand.NewSource(42))
		entries := randomEntries(rnd, 8, 8)
		palette, err := colortree.NewPalette(entries)
		if err != nil {
			t.Fatal(err)
		}
		root, err := BuildQuadtree(palette.Config(), 0, 0, 8, 8, 2)
		if err != nil {
			t.Fatal(err)
		}
		if err := root.Register(entries); err != nil {
			t.Fatal(err)
		}
		fd := &colortree.FixedDraws{Draws: draws}
		var result []colortree.Pos
		for range 64 {
			target := colortree.RGB{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256))}
			pos, err := root.FindPosForColor(target, entries, fd)
			if err != nil {
				t.Fatal(err)
			}
			result = append(result, pos)
		}
		if err := colortree.CheckEntries(root, entries); err != nil {
			t.Fatal(err)
		}
		return result
	}
	first, second := run(), run()
	seen := make(map[colortree.Pos]bool)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("placement %d differs: %s != %s", i, first[i], second[i])
		}
		if seen[first[i]] {
			t.Fatalf("position %s claimed twice", first[i])
		}
		seen[first[i]] = true
	}
}

func TestFindPosInSubtreeAndExhaustion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := NewRoot(colortree.Config{}, 0, 0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	quadrants, err := root.Split(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	entries := quadrantEntries()
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(3))
	q := quadrants[3]
	for i := range 4 {
		// ask for a color of another quadrant: the subtree must stay in bounds
		pos, err := q.FindPosForColor(quadrantBase[0], entries, rnd)
		if err != nil {
			t.Fatalf("placement %d: %v", i, err)
		}
		if !q.rect.Contains(pos) {
			t.Fatalf("position %s outside of %s", pos, q)
		}
	}
	if _, err := q.FindPosForColor(quadrantBase[3], entries, rnd); !errors.Is(err, colortree.ErrRegionExhausted) {
		t.Fatalf("expected exhausted quadrant, got %v", err)
	}
	if root.Core().Free() != 12 || root.Core().Total() != 16 {
		t.Fatalf("unexpected root counts %d/%d", root.Core().Free(), root.Core().Total())
	}
	if _, err := q.Color(); err != nil {
		t.Fatalf("exhausted region must still have a color, got %v", err)
	}
	if _, err := root.FindPosForColor(quadrantBase[3], entries, nil); !errors.Is(err, colortree.ErrIllegalArguments) {
		t.Fatalf("expected missing random source to be rejected, got %v", err)
	}
}

func TestParentActsAsLeafForUncoveredPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := NewRoot(colortree.Config{}, 0, 0, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	child, err := root.AddChild(0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	entries := []colortree.Entry{
		{Pos: colortree.Pos{X: 0, Y: 0}, Color: colortree.RGB{R: 255}},
		{Pos: colortree.Pos{X: 1, Y: 0}, Color: colortree.RGB{B: 255}},
		{Pos: colortree.Pos{X: 5, Y: 0}},
	}
	if err := root.Register(entries); !errors.Is(err, colortree.ErrUnmatchedEntry) {
		t.Fatalf("expected unmatched entry to be reported, got %v", err)
	}
	rnd := &colortree.FixedDraws{}
	pos, err := root.FindPosForColor(colortree.RGB{B: 255}, entries, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (colortree.Pos{X: 0, Y: 0}) {
		t.Fatalf("expected descent into the only child, got %s", pos)
	}
	if child.Core().Free() != 0 {
		t.Fatalf("child should be exhausted")
	}
	pos, err = root.FindPosForColor(colortree.RGB{R: 255}, entries, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (colortree.Pos{X: 1, Y: 0}) {
		t.Fatalf("expected root to serve the uncovered position, got %s", pos)
	}
}

func TestFindPosWithoutFreeEntriesInSlice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := NewRoot(colortree.Config{}, 0, 0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := root.Split(2, 2); err != nil {
		t.Fatal(err)
	}
	entries := quadrantEntries()
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	stale := make([]colortree.Entry, len(entries))
	copy(stale, entries)
	for i := range stale {
		stale[i].Consumed = true
	}
	rnd := rand.New(rand.NewSource(5))
	if _, err := root.FindPosForColor(quadrantBase[1], stale, rnd); !errors.Is(err, colortree.ErrRegionExhausted) {
		t.Fatalf("expected no position for a fully consumed entry slice, got %v", err)
	}
	if root.Core().Free() != 16 {
		t.Fatalf("failed lookup must not claim, free=%d", root.Core().Free())
	}
	if err := colortree.CheckEntries(root, entries); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterAtQuadrantIsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "colortree")
	defer teardown()

	root, err := NewRoot(colortree.Config{}, 0, 0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	quadrants, err := root.Split(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	entries := quadrantEntries()
	if err := quadrants[0].Register(entries); !errors.Is(err, colortree.ErrIllegalArguments) {
		t.Fatalf("expected registration at a quadrant to fail, got %v", err)
	}
	if _, err := quadrants[0].AddEntry(&entries[0]); !errors.Is(err, colortree.ErrIllegalArguments) {
		t.Fatalf("expected adding at a quadrant to fail, got %v", err)
	}
	if quadrants[0].Core().Total() != 0 {
		t.Fatalf("quadrant counts rejected entries")
	}
	if err := root.Register(entries); err != nil {
		t.Fatal(err)
	}
	if err := root.Register(entries); !errors.Is(err, colortree.ErrPopulated) {
		t.Fatalf("expected second registration to fail, got %v", err)
	}
	if err := colortree.Check(root); err != nil {
		t.Fatal(err)
	}
	if err := colortree.CheckEntries(root, entries); err != nil {
		t.Fatal(err)
	}
}
