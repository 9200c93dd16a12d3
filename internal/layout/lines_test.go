package layout

import (
	"testing"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

func glyphAt(minX, minY, maxX, maxY float64, label string) *ink.GlyphCluster {
	s := ink.NewStroke([]geom.Point{
		{X: minX, Y: minY}, {X: maxX, Y: maxY},
	})
	g := ink.NewGlyphCluster(s)
	g.Label = label
	return g
}

func lineText(line []*ink.GlyphCluster) string {
	var out string
	for _, g := range line {
		out += g.Label
	}
	return out
}

func TestGroupLinesSplitsRows(t *testing.T) {
	glyphs := []*ink.GlyphCluster{
		glyphAt(0, 0, 20, 30, "1"),
		glyphAt(30, 2, 50, 32, "+"),
		glyphAt(60, 1, 80, 31, "2"),
		glyphAt(0, 100, 20, 130, "3"),
		glyphAt(30, 102, 50, 132, "4"),
	}
	lines := GroupLines(glyphs, 0.3)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lineText(lines[0]) != "1+2" || lineText(lines[1]) != "34" {
		t.Fatalf("lines = %q, %q", lineText(lines[0]), lineText(lines[1]))
	}
}

func TestGroupLinesOrdersLeftToRight(t *testing.T) {
	// Drawn out of order; the line must still read left to right.
	glyphs := []*ink.GlyphCluster{
		glyphAt(60, 0, 80, 30, "2"),
		glyphAt(0, 2, 20, 32, "1"),
		glyphAt(30, 1, 50, 31, "+"),
	}
	lines := GroupLines(glyphs, 0.3)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lineText(lines[0]) != "1+2" {
		t.Fatalf("line = %q, want 1+2", lineText(lines[0]))
	}
}

// Membership is transitive within a line: a short glyph that overlaps
// a tall earlier member still joins, even if it barely overlaps its
// immediate predecessor in vertical-center order.
func TestGroupLinesTransitiveMembership(t *testing.T) {
	tall := glyphAt(0, 0, 20, 60, "1")
	low := glyphAt(30, 40, 50, 70, "2")
	short := glyphAt(60, 5, 80, 20, "7")
	lines := GroupLines([]*ink.GlyphCluster{tall, low, short}, 0.3)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lineText(lines[0]) != "127" {
		t.Fatalf("line = %q, want 127", lineText(lines[0]))
	}
}

func TestGroupLinesEmpty(t *testing.T) {
	if lines := GroupLines(nil, 0.3); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}
