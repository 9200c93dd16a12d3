// Package expr assembles ordered, recognized glyphs into expression
// text and locates where a computed result should be rendered.
package expr

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// Unknown is what an unrecognized glyph contributes to the expression
// text. The evaluator refuses any text containing it.
const Unknown = "?"

const (
	// Two minus glyphs merge into "=" when they overlap horizontally
	// beyond minusOverlapFrac of the narrower one, or their centers sit
	// within minusCenterFrac of the wider one's width.
	minusOverlapFrac = 0.2
	minusCenterFrac  = 0.8
	// The vertical gap between the dashes must exceed minusMinGap (so a
	// retraced single minus stays a minus) and stay under
	// minusGapFactor times their combined height.
	minusMinGap    = 2.0
	minusGapFactor = 6.0

	// anchorPad is the horizontal offset of the result anchor from the
	// equals glyph.
	anchorPad = 12.0
)

// BuildLine derives an expression line from one visual line of glyphs.
// The input order is left to right; the minus-merge pass may reorder
// internally and the output characters are re-sorted afterwards.
func BuildLine(glyphs []*ink.GlyphCluster) *ink.ExpressionLine {
	merged := MergeMinusPairs(glyphs)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Box.CenterX() < merged[j].Box.CenterX()
	})

	line := ink.NewExpressionLine()
	line.Characters = merged

	var sb strings.Builder
	var rightmostEq *ink.GlyphCluster
	for i, g := range merged {
		if i == 0 {
			line.Box = g.Box
		} else {
			line.Box = geom.Union(line.Box, g.Box)
		}
		label := g.Label
		if label == "" {
			label = Unknown
		}
		sb.WriteString(label)
		if g.Label == "=" {
			line.HasEquals = true
			rightmostEq = g
		}
	}
	line.Text = sb.String()
	if rightmostEq != nil {
		line.AnchorX = rightmostEq.Box.MaxX + anchorPad
		line.AnchorY = rightmostEq.Box.CenterY()
	}
	return line
}

// MergeMinusPairs replaces every aligned, vertically stacked pair of
// minus glyphs with a single synthetic equals glyph. A two-stroke "="
// is frequently mis-split or recognized stroke-by-stroke as two minus
// signs; this pass repairs that after recognition. The synthetic
// glyph's box is the pair's union and its confidence the minimum of
// the two.
func MergeMinusPairs(glyphs []*ink.GlyphCluster) []*ink.GlyphCluster {
	used := make([]bool, len(glyphs))
	out := make([]*ink.GlyphCluster, 0, len(glyphs))
	for i, a := range glyphs {
		if used[i] {
			continue
		}
		if a.Label != "-" {
			out = append(out, a)
			continue
		}
		mergedAt := -1
		for j := i + 1; j < len(glyphs); j++ {
			b := glyphs[j]
			if used[j] || b.Label != "-" {
				continue
			}
			if minusPairIsEquals(a.Box, b.Box) {
				mergedAt = j
				break
			}
		}
		if mergedAt == -1 {
			out = append(out, a)
			continue
		}
		b := glyphs[mergedAt]
		used[mergedAt] = true
		conf := math.Min(a.Confidence, b.Confidence)
		out = append(out, &ink.GlyphCluster{
			ID:         uuid.NewString(),
			Strokes:    append(append([]*ink.Stroke{}, a.Strokes...), b.Strokes...),
			Box:        geom.Union(a.Box, b.Box),
			Label:      "=",
			Confidence: conf,
		})
	}
	return out
}

func minusPairIsEquals(a, b geom.Box) bool {
	// Horizontal alignment.
	narrow := math.Min(a.Width(), b.Width())
	wide := math.Max(a.Width(), b.Width())
	aligned := geom.OverlapX(a, b) > minusOverlapFrac*narrow ||
		math.Abs(a.CenterX()-b.CenterX()) < minusCenterFrac*wide
	if !aligned {
		return false
	}
	// Vertical separation: distinct dashes, but close enough to be one
	// symbol.
	if geom.OverlapY(a, b) > 0 {
		return false
	}
	gap := math.Max(a.MinY-b.MaxY, b.MinY-a.MaxY)
	return gap > minusMinGap && gap < minusGapFactor*(a.Height()+b.Height())
}
