// Package ink holds the drawing data model: strokes as they come off
// the input device, glyph clusters built by the segmentation layer,
// and the expression lines derived from them.
package ink

import (
	"github.com/google/uuid"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
)

// Stroke is one continuous pen-down-to-pen-up point sequence. A stroke
// is immutable once created.
type Stroke struct {
	ID     string
	Points []geom.Point
	Box    geom.Box
}

// NewStroke builds a finalized stroke from a captured point sequence.
// The caller guarantees at least one point with monotonically
// increasing timestamps.
func NewStroke(points []geom.Point) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Points: points,
		Box:    geom.FromPoints(points),
	}
}

// StartTime is the timestamp of the first point, used for stroke
// ordering and gap computation.
func (s *Stroke) StartTime() int64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[0].T
}

// EndTime is the timestamp of the last point.
func (s *Stroke) EndTime() int64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].T
}

// GlyphCluster is the set of strokes believed to form one visual
// symbol. Strokes are appended in arrival order; the box is always the
// union of the member strokes' boxes. Label stays empty until the
// recognizer writes one back; appending a stroke invalidates any
// previous recognition and bumps Revision so in-flight results for the
// old membership can be detected as stale.
type GlyphCluster struct {
	ID         string
	Strokes    []*Stroke
	Box        geom.Box
	Label      string
	Confidence float64
	Revision   int
}

// NewGlyphCluster starts a cluster around its first stroke.
func NewGlyphCluster(s *Stroke) *GlyphCluster {
	return &GlyphCluster{
		ID:      uuid.NewString(),
		Strokes: []*Stroke{s},
		Box:     s.Box,
	}
}

// Add appends a stroke, recomputes the box and invalidates recognition.
func (c *GlyphCluster) Add(s *Stroke) {
	c.Strokes = append(c.Strokes, s)
	c.Box = geom.Union(c.Box, s.Box)
	c.Label = ""
	c.Confidence = 0
	c.Revision++
}

// LastTime is the newest point timestamp across the member strokes.
func (c *GlyphCluster) LastTime() int64 {
	var last int64
	for _, s := range c.Strokes {
		if t := s.EndTime(); t > last {
			last = t
		}
	}
	return last
}

// Points flattens the member strokes' points in arrival order.
func (c *GlyphCluster) Points() []geom.Point {
	var pts []geom.Point
	for _, s := range c.Strokes {
		pts = append(pts, s.Points...)
	}
	return pts
}

// ExpressionLine is a left-to-right ordered sequence of recognized
// glyphs treated as one expression. Lines are derived views: they are
// rebuilt from the current glyph set on every re-evaluation and never
// mutated in place.
type ExpressionLine struct {
	ID         string
	Characters []*GlyphCluster
	Box        geom.Box
	Text       string
	HasEquals  bool
	Result     string
	Err        string

	// AnchorX/AnchorY is where a computed result should be rendered:
	// just right of the rightmost equals glyph, vertically centered on
	// it. Valid only when HasEquals is true.
	AnchorX float64
	AnchorY float64
}

// NewExpressionLine allocates an empty derived line.
func NewExpressionLine() *ExpressionLine {
	return &ExpressionLine{ID: uuid.NewString()}
}
