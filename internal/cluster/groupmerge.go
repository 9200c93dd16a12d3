// Package cluster decides which strokes belong together: the
// group-merge policy for whole-expression clusters, the pairwise
// union-find policy for glyph-level grouping, and the incremental
// character segmenter.
package cluster

import (
	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// NearestCluster returns the index of the cluster whose box is closest
// to the stroke's box, provided that distance is within threshold, or
// -1 when no cluster qualifies. Exact ties go to the lowest index, the
// first cluster created.
func NearestCluster(s *ink.Stroke, clusters []*ink.GlyphCluster, threshold float64) int {
	best := -1
	bestGap := threshold
	for i, c := range clusters {
		gap := geom.Gap(s.Box, c.Box)
		if gap < bestGap || (best == -1 && gap == bestGap) {
			best = i
			bestGap = gap
		}
	}
	return best
}

// Assign routes a new stroke into the cluster list using the
// group-merge policy: append to the nearest cluster within threshold,
// or start a new singleton cluster. Appending invalidates the target
// cluster's recognition, because its membership changed.
//
// The policy is append-only: it never merges two existing clusters,
// even when both have grown close enough that they would now qualify.
// That keeps incremental cost flat and is preserved deliberately.
func Assign(clusters []*ink.GlyphCluster, s *ink.Stroke, threshold float64) ([]*ink.GlyphCluster, *ink.GlyphCluster) {
	if i := NearestCluster(s, clusters, threshold); i >= 0 {
		clusters[i].Add(s)
		return clusters, clusters[i]
	}
	c := ink.NewGlyphCluster(s)
	return append(clusters, c), c
}
