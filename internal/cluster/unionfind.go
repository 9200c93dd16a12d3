package cluster

import (
	"sort"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// PairRules are the knobs for the pairwise grouping predicate.
type PairRules struct {
	// CrossPad pads a box before testing whether the other box's
	// center falls inside it.
	CrossPad float64
	// WideRatio is the width/height ratio beyond which a stroke counts
	// as a dash.
	WideRatio float64
	// StackGapMax bounds the vertical gap between two stacked dashes.
	StackGapMax float64
	// StackOverlap is the minimum horizontal overlap between stacked
	// dashes, as a fraction of the narrower dash.
	StackOverlap float64
	// MinPixelOverlap is the overlap required on both axes for the
	// overlap-plus-timing rule.
	MinPixelOverlap float64
	// TimeWindowMs bounds the gap from the earlier stroke's last point
	// to the later stroke's first point for the overlap-plus-timing
	// rule.
	TimeWindowMs int64
}

// DefaultPairRules returns the grouping thresholds used when the
// caller does not override them.
func DefaultPairRules() PairRules {
	return PairRules{
		CrossPad:        4,
		WideRatio:       1.5,
		StackGapMax:     40,
		StackOverlap:    0.5,
		MinPixelOverlap: 5,
		TimeWindowMs:    500,
	}
}

// ShouldGroup reports whether two strokes belong to the same glyph.
// It is symmetric and deliberately conservative: over-merging corrupts
// two independent glyphs into one unrecoverable cluster, while
// under-merging is recoverable downstream.
func ShouldGroup(a, b *ink.Stroke, rules PairRules) bool {
	return crossing(a.Box, b.Box, rules.CrossPad) ||
		stackedDashes(a.Box, b.Box, rules) ||
		overlapInTime(a, b, rules)
}

// crossing holds when one box's center lies within the other's padded
// extent on one axis while the reverse holds on the other axis, the
// shape of a "+" drawn as two strokes.
func crossing(a, b geom.Box, pad float64) bool {
	ap, bp := a.Pad(pad), b.Pad(pad)
	xCross := bp.MinX <= a.CenterX() && a.CenterX() <= bp.MaxX
	yCross := ap.MinY <= b.CenterY() && b.CenterY() <= ap.MaxY
	if xCross && yCross {
		return true
	}
	xCross = ap.MinX <= b.CenterX() && b.CenterX() <= ap.MaxX
	yCross = bp.MinY <= a.CenterY() && a.CenterY() <= bp.MaxY
	return xCross && yCross
}

// stackedDashes holds for two wide strokes stacked within a bounded
// vertical gap with enough horizontal overlap, the shape of an "="
// drawn as two dashes.
func stackedDashes(a, b geom.Box, rules PairRules) bool {
	if !isWide(a, rules.WideRatio) || !isWide(b, rules.WideRatio) {
		return false
	}
	if geom.OverlapY(a, b) > 0 {
		return false
	}
	gap := geom.Gap(a, b)
	if gap > rules.StackGapMax {
		return false
	}
	narrow := a.Width()
	if b.Width() < narrow {
		narrow = b.Width()
	}
	return narrow > 0 && geom.OverlapX(a, b) >= rules.StackOverlap*narrow
}

func isWide(b geom.Box, ratio float64) bool {
	return b.Width() > ratio*b.Height()
}

// overlapInTime holds when the strokes genuinely overlap on both axes
// and were drawn within a short window of each other. The gap runs
// from the earlier stroke's last point to the later stroke's first.
func overlapInTime(a, b *ink.Stroke, rules PairRules) bool {
	if geom.OverlapX(a.Box, b.Box) <= rules.MinPixelOverlap ||
		geom.OverlapY(a.Box, b.Box) <= rules.MinPixelOverlap {
		return false
	}
	earlier, later := a, b
	if b.StartTime() < a.StartTime() {
		earlier, later = b, a
	}
	gap := later.StartTime() - earlier.EndTime()
	if gap < 0 {
		gap = 0
	}
	return gap <= rules.TimeWindowMs
}

// GroupStrokes clusters a finite stroke set into glyphs: the connected
// components of ShouldGroup over all unordered pairs. Groups come back
// ordered left to right by bounding-box center, each group internally
// in arrival order.
func GroupStrokes(strokes []*ink.Stroke, rules PairRules) [][]*ink.Stroke {
	if len(strokes) == 0 {
		return nil
	}
	d := newDSU(len(strokes))
	for i := 0; i < len(strokes); i++ {
		for j := i + 1; j < len(strokes); j++ {
			if ShouldGroup(strokes[i], strokes[j], rules) {
				d.union(i, j)
			}
		}
	}

	byRoot := make(map[int][]*ink.Stroke)
	for i, s := range strokes {
		r := d.find(i)
		byRoot[r] = append(byRoot[r], s)
	}

	groups := make([][]*ink.Stroke, 0, len(byRoot))
	for _, g := range byRoot {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groupBox(groups[i]).CenterX() < groupBox(groups[j]).CenterX()
	})
	return groups
}

func groupBox(group []*ink.Stroke) geom.Box {
	box := group[0].Box
	for _, s := range group[1:] {
		box = geom.Union(box, s.Box)
	}
	return box
}
