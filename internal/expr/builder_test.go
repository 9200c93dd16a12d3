package expr

import (
	"testing"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

func glyph(minX, minY, maxX, maxY float64, label string, conf float64) *ink.GlyphCluster {
	s := ink.NewStroke([]geom.Point{
		{X: minX, Y: minY}, {X: maxX, Y: maxY},
	})
	g := ink.NewGlyphCluster(s)
	g.Label = label
	g.Confidence = conf
	return g
}

func TestBuildLineText(t *testing.T) {
	line := BuildLine([]*ink.GlyphCluster{
		glyph(0, 0, 20, 30, "2", 0.9),
		glyph(30, 5, 50, 25, "+", 0.8),
		glyph(60, 0, 80, 30, "2", 0.95),
	})
	if line.Text != "2+2" {
		t.Fatalf("text = %q, want 2+2", line.Text)
	}
	if line.HasEquals {
		t.Fatal("line without equals reported HasEquals")
	}
}

func TestBuildLineUnknownGlyph(t *testing.T) {
	line := BuildLine([]*ink.GlyphCluster{
		glyph(0, 0, 20, 30, "2", 0.9),
		glyph(30, 0, 50, 30, "", 0),
	})
	if line.Text != "2?" {
		t.Fatalf("text = %q, want 2?", line.Text)
	}
}

func TestBuildLineAnchor(t *testing.T) {
	eq := glyph(60, 10, 80, 20, "=", 0.7)
	line := BuildLine([]*ink.GlyphCluster{
		glyph(0, 0, 20, 30, "2", 0.9),
		glyph(30, 5, 50, 25, "+", 0.8),
		eq,
	})
	if !line.HasEquals {
		t.Fatal("HasEquals not set")
	}
	if line.AnchorX <= eq.Box.MaxX {
		t.Fatalf("anchor x %v should sit right of the equals glyph", line.AnchorX)
	}
	if line.AnchorY != eq.Box.CenterY() {
		t.Fatalf("anchor y = %v, want %v", line.AnchorY, eq.Box.CenterY())
	}
}

// Two minus glyphs stacked with at least half their width overlapping
// and a moderate gap become one "=" with the minimum confidence.
func TestMergeMinusPairs(t *testing.T) {
	for _, gap := range []float64{5, 20, 40} {
		top := glyph(10, 40, 50, 44, "-", 0.9)
		bottom := glyph(12, 44+gap, 52, 48+gap, "-", 0.6)
		line := BuildLine([]*ink.GlyphCluster{top, bottom})
		if line.Text != "=" {
			t.Fatalf("gap %v: text = %q, want =", gap, line.Text)
		}
		g := line.Characters[0]
		if g.Confidence != 0.6 {
			t.Fatalf("gap %v: confidence = %v, want min of pair", gap, g.Confidence)
		}
		want := geom.Union(top.Box, bottom.Box)
		if g.Box != want {
			t.Fatalf("gap %v: box = %+v, want union %+v", gap, g.Box, want)
		}
		if len(g.Strokes) != 2 {
			t.Fatalf("gap %v: merged glyph has %d strokes", gap, len(g.Strokes))
		}
	}
}

func TestMinusPairTooFarApart(t *testing.T) {
	top := glyph(10, 40, 50, 44, "-", 0.9)
	bottom := glyph(12, 200, 52, 204, "-", 0.6)
	line := BuildLine([]*ink.GlyphCluster{top, bottom})
	if line.Text != "--" {
		t.Fatalf("text = %q, want --", line.Text)
	}
}

func TestMinusPairNotAligned(t *testing.T) {
	left := glyph(10, 40, 50, 44, "-", 0.9)
	right := glyph(120, 60, 160, 64, "-", 0.6)
	line := BuildLine([]*ink.GlyphCluster{left, right})
	if line.Text != "--" {
		t.Fatalf("text = %q, want --", line.Text)
	}
}

func TestMergeKeepsExpressionOrder(t *testing.T) {
	line := BuildLine([]*ink.GlyphCluster{
		glyph(0, 30, 20, 60, "1", 0.9),
		glyph(30, 40, 60, 44, "-", 0.9),
		glyph(32, 56, 62, 60, "-", 0.8),
		glyph(80, 30, 100, 60, "3", 0.9),
	})
	if line.Text != "1=3" {
		t.Fatalf("text = %q, want 1=3", line.Text)
	}
}
