// Package layout groups finalized glyph clusters into left-to-right
// ordered expression lines.
package layout

import (
	"sort"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// DefaultOverlapThreshold is the vertical overlap ratio above which
// two glyphs count as sharing a line.
const DefaultOverlapThreshold = 0.3

// GroupLines splits glyphs into visual lines. Glyphs are taken in
// vertical-center order; a glyph joins the current line when its box
// vertically overlaps any glyph already accepted into the line beyond
// the threshold, not just the immediately preceding one, which
// tolerates glyphs of varying height within one line. Each returned
// line is ordered left to right.
func GroupLines(glyphs []*ink.GlyphCluster, threshold float64) [][]*ink.GlyphCluster {
	if threshold <= 0 {
		threshold = DefaultOverlapThreshold
	}
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]*ink.GlyphCluster, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.CenterY() < sorted[j].Box.CenterY()
	})

	var lines [][]*ink.GlyphCluster
	current := []*ink.GlyphCluster{sorted[0]}
	for _, g := range sorted[1:] {
		if joinsLine(g, current, threshold) {
			current = append(current, g)
			continue
		}
		lines = append(lines, closeLine(current))
		current = []*ink.GlyphCluster{g}
	}
	lines = append(lines, closeLine(current))
	return lines
}

func joinsLine(g *ink.GlyphCluster, line []*ink.GlyphCluster, threshold float64) bool {
	for _, member := range line {
		if geom.OverlapRatioY(g.Box, member.Box) >= threshold {
			return true
		}
	}
	return false
}

func closeLine(line []*ink.GlyphCluster) []*ink.GlyphCluster {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].Box.CenterX() < line[j].Box.CenterX()
	})
	return line
}
