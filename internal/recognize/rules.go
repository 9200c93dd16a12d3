package recognize

import (
	"context"
	"fmt"
	"math"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// Rules is the built-in recognizer: geometric rules for symbols whose
// shape is structural (dash, one, plus, equals, dot) and $1 unistroke
// template matching for everything else. It needs no network and no
// model, so it terminates the fallback chain.
type Rules struct {
	templates []unistrokeTemplate
}

const (
	dashRatio     = 3.0 // width over height for a lone dash
	barRatio      = 5.0 // height over width for a lone "1"
	dotSize       = 5.0
	minMatchScore = 0.55
)

func NewRules() *Rules {
	return &Rules{templates: builtinTemplates()}
}

func (r *Rules) Name() string { return "rules" }

func (r *Rules) Recognize(_ context.Context, c *ink.GlyphCluster) (Result, error) {
	switch len(c.Strokes) {
	case 0:
		return Result{}, fmt.Errorf("%w: empty glyph", ErrUnavailable)
	case 1:
		return r.recognizeSingle(c.Strokes[0])
	case 2:
		a, b := c.Strokes[0], c.Strokes[1]
		if plusShape(a.Box, b.Box) {
			return Result{Label: "+", Confidence: 0.85}, nil
		}
		if equalsShape(a.Box, b.Box) {
			return Result{Label: "=", Confidence: 0.85}, nil
		}
	}
	return r.matchTemplates(c.Points())
}

func (r *Rules) recognizeSingle(s *ink.Stroke) (Result, error) {
	w, h := s.Box.Width(), s.Box.Height()
	switch {
	case w < dotSize && h < dotSize:
		return Result{Label: ".", Confidence: 0.6}, nil
	case h < dotSize || w > dashRatio*h:
		return Result{Label: "-", Confidence: 0.8}, nil
	case w < dotSize || (h > barRatio*w && straightish(s.Points)):
		return Result{Label: "1", Confidence: 0.75}, nil
	}
	return r.matchTemplates(s.Points)
}

func (r *Rules) matchTemplates(points []geom.Point) (Result, error) {
	if len(points) < 2 {
		return Result{}, fmt.Errorf("%w: not enough ink", ErrUnavailable)
	}
	label, score := matchUnistroke(points, r.templates)
	if score < minMatchScore {
		return Result{}, fmt.Errorf("%w: best template %q scored %.2f", ErrUnavailable, label, score)
	}
	return Result{Label: label, Confidence: score}, nil
}

// straightish reports whether the path stays close to the straight
// line between its endpoints.
func straightish(points []geom.Point) bool {
	if len(points) < 3 {
		return true
	}
	first, last := points[0], points[len(points)-1]
	span := ptDist(first, last)
	if span == 0 {
		return false
	}
	for _, p := range points {
		// Perpendicular distance from p to the endpoint chord.
		area := math.Abs((last.X-first.X)*(first.Y-p.Y) - (first.X-p.X)*(last.Y-first.Y))
		if area/span > 0.15*span {
			return false
		}
	}
	return true
}

// plusShape holds for one flat and one tall stroke whose centers fall
// inside each other's extent: a drawn "+".
func plusShape(a, b geom.Box) bool {
	horiz, vert := a, b
	if b.Width() > a.Width() {
		horiz, vert = b, a
	}
	if horiz.Width() < 1.5*horiz.Height() || vert.Height() < 1.5*vert.Width() {
		return false
	}
	cx, cy := vert.CenterX(), horiz.CenterY()
	return horiz.Pad(4).Contains(cx, cy) && vert.Pad(4).Contains(cx, cy)
}

// equalsShape holds for two flat strokes stacked with most of their
// width shared: a drawn "=".
func equalsShape(a, b geom.Box) bool {
	if a.Width() < 1.5*a.Height() || b.Width() < 1.5*b.Height() {
		return false
	}
	if geom.OverlapY(a, b) > 0 {
		return false
	}
	narrow := math.Min(a.Width(), b.Width())
	if narrow <= 0 || geom.OverlapX(a, b) < 0.5*narrow {
		return false
	}
	return geom.Gap(a, b) < 40
}
