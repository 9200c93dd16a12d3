package cluster

import (
	"testing"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// plus returns the two strokes of a "+": a horizontal bar and a
// vertical bar crossing at (50, 50).
func plusStrokes(t0 int64) (*ink.Stroke, *ink.Stroke) {
	h := ink.NewStroke([]geom.Point{
		{X: 30, Y: 50, T: t0},
		{X: 70, Y: 50, T: t0 + 80},
	})
	v := ink.NewStroke([]geom.Point{
		{X: 50, Y: 30, T: t0 + 200},
		{X: 50, Y: 70, T: t0 + 280},
	})
	return h, v
}

func TestCrossingStrokesGroup(t *testing.T) {
	rules := DefaultPairRules()
	h, v := plusStrokes(0)
	if !ShouldGroup(h, v, rules) {
		t.Fatal("crossing strokes of a + should group")
	}
	if !ShouldGroup(v, h, rules) {
		t.Fatal("predicate must be symmetric")
	}

	// Draw order must not matter for the resulting clusters.
	for _, strokes := range [][]*ink.Stroke{{h, v}, {v, h}} {
		groups := GroupStrokes(strokes, rules)
		if len(groups) != 1 || len(groups[0]) != 2 {
			t.Fatalf("plus strokes split into %d groups", len(groups))
		}
	}
}

func TestStackedDashesGroup(t *testing.T) {
	rules := DefaultPairRules()
	top := ink.NewStroke([]geom.Point{
		{X: 10, Y: 40, T: 0}, {X: 50, Y: 42, T: 90},
	})
	bottom := ink.NewStroke([]geom.Point{
		{X: 12, Y: 60, T: 600}, {X: 52, Y: 62, T: 690},
	})
	if !ShouldGroup(top, bottom, rules) {
		t.Fatal("stacked dashes of an = should group")
	}
}

func TestStackedDashesNeedHorizontalOverlap(t *testing.T) {
	rules := DefaultPairRules()
	top := ink.NewStroke([]geom.Point{
		{X: 10, Y: 40, T: 0}, {X: 50, Y: 42, T: 90},
	})
	shifted := ink.NewStroke([]geom.Point{
		{X: 45, Y: 60, T: 600}, {X: 85, Y: 62, T: 690},
	})
	// Only 5px of 40px overlap: two separate minus signs, not an "=".
	if ShouldGroup(top, shifted, rules) {
		t.Fatal("dashes with little horizontal overlap should stay apart")
	}
}

func TestOverlapPlusTiming(t *testing.T) {
	rules := DefaultPairRules()
	a := ink.NewStroke([]geom.Point{
		{X: 0, Y: 0, T: 0}, {X: 30, Y: 30, T: 100},
	})
	quick := ink.NewStroke([]geom.Point{
		{X: 22, Y: 22, T: 300}, {X: 52, Y: 52, T: 400},
	})
	slow := ink.NewStroke([]geom.Point{
		{X: 22, Y: 22, T: 2000}, {X: 52, Y: 52, T: 2100},
	})
	if !ShouldGroup(a, quick, rules) {
		t.Fatal("overlapping strokes drawn quickly should group")
	}
	if ShouldGroup(a, slow, rules) {
		t.Fatal("a long pause should keep overlapping strokes apart")
	}
}

// Clustering is the transitive closure of the pairwise predicate: if
// A~B and B~C then A, B and C share a cluster even when A and C do not
// qualify directly.
func TestGroupStrokesTransitive(t *testing.T) {
	rules := DefaultPairRules()
	a := ink.NewStroke([]geom.Point{
		{X: 0, Y: 0, T: 0}, {X: 30, Y: 30, T: 100},
	})
	b := ink.NewStroke([]geom.Point{
		{X: 20, Y: 10, T: 200}, {X: 50, Y: 40, T: 300},
	})
	c := ink.NewStroke([]geom.Point{
		{X: 42, Y: 12, T: 400}, {X: 70, Y: 44, T: 500},
	})
	if !ShouldGroup(a, b, rules) || !ShouldGroup(b, c, rules) {
		t.Fatal("test setup: adjacent pairs must group")
	}
	if ShouldGroup(a, c, rules) {
		t.Fatal("test setup: a and c must not group directly")
	}
	groups := GroupStrokes([]*ink.Stroke{a, b, c}, rules)
	if len(groups) != 1 || len(groups[0]) != 3 {
		t.Fatalf("expected one transitive cluster, got %d groups", len(groups))
	}
}

func TestGroupStrokesOrdersLeftToRight(t *testing.T) {
	rules := DefaultPairRules()
	right := ink.NewStroke([]geom.Point{
		{X: 200, Y: 0, T: 0}, {X: 230, Y: 30, T: 100},
	})
	left := ink.NewStroke([]geom.Point{
		{X: 0, Y: 0, T: 200}, {X: 30, Y: 30, T: 300},
	})
	groups := GroupStrokes([]*ink.Stroke{right, left}, rules)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if groups[0][0] != left {
		t.Fatal("groups should be ordered left to right")
	}
}
