package geom

import "math"

// Point is a single sampled pen position. T is the capture time in
// milliseconds since the start of the session.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Box is an axis-aligned bounding box. The zero Box is the degenerate
// box at the origin; boxes with no area are treated as points by every
// operation in this package.
type Box struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b Box) Width() float64   { return b.MaxX - b.MinX }
func (b Box) Height() float64  { return b.MaxY - b.MinY }
func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// FromPoints computes the bounding box of a point set. An empty set
// yields the zero box.
func FromPoints(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{
		MinX: points[0].X, MinY: points[0].Y,
		MaxX: points[0].X, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Union returns the smallest box containing both a and b. It is
// commutative, associative, and a no-op when merging a box with itself.
func Union(a, b Box) Box {
	return Box{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// Contains reports whether the point (x, y) lies inside b, edges
// included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Pad grows the box by m on every side.
func (b Box) Pad(m float64) Box {
	return Box{MinX: b.MinX - m, MinY: b.MinY - m, MaxX: b.MaxX + m, MaxY: b.MaxY + m}
}

// Gap is the Euclidean distance between the nearest edges of a and b.
// Boxes that overlap or touch have a gap of zero.
func Gap(a, b Box) float64 {
	dx := math.Max(0, math.Max(a.MinX-b.MaxX, b.MinX-a.MaxX))
	dy := math.Max(0, math.Max(a.MinY-b.MaxY, b.MinY-a.MaxY))
	return math.Hypot(dx, dy)
}

// overlapSpan is the length of the intersection of the ranges
// [aMin, aMax] and [bMin, bMax], zero when they are disjoint.
func overlapSpan(aMin, aMax, bMin, bMax float64) float64 {
	span := math.Min(aMax, bMax) - math.Max(aMin, bMin)
	if span < 0 {
		return 0
	}
	return span
}

// OverlapX is the horizontal overlap of a and b in pixels.
func OverlapX(a, b Box) float64 {
	return overlapSpan(a.MinX, a.MaxX, b.MinX, b.MaxX)
}

// OverlapY is the vertical overlap of a and b in pixels.
func OverlapY(a, b Box) float64 {
	return overlapSpan(a.MinY, a.MaxY, b.MinY, b.MaxY)
}

// axisRatio is span expressed as a fraction of the narrower extent.
// A zero-width extent counts as a point: the ratio is 1 when the point
// lies within the other range and 0 otherwise.
func axisRatio(span, narrow float64, inside bool) float64 {
	if narrow <= 0 {
		if inside {
			return 1
		}
		return 0
	}
	return span / narrow
}

// OverlapRatioX is the horizontal overlap as a fraction of the
// narrower box.
func OverlapRatioX(a, b Box) float64 {
	narrow := math.Min(a.Width(), b.Width())
	inside := overlapSpan(a.MinX, a.MaxX, b.MinX, b.MaxX) > 0 ||
		(a.CenterX() >= b.MinX && a.CenterX() <= b.MaxX) ||
		(b.CenterX() >= a.MinX && b.CenterX() <= a.MaxX)
	return axisRatio(OverlapX(a, b), narrow, inside)
}

// OverlapRatioY is the vertical overlap as a fraction of the narrower
// box.
func OverlapRatioY(a, b Box) float64 {
	narrow := math.Min(a.Height(), b.Height())
	inside := overlapSpan(a.MinY, a.MaxY, b.MinY, b.MaxY) > 0 ||
		(a.CenterY() >= b.MinY && a.CenterY() <= b.MaxY) ||
		(b.CenterY() >= a.MinY && b.CenterY() <= a.MaxY)
	return axisRatio(OverlapY(a, b), narrow, inside)
}

// OverlapRatio scores how strongly two boxes occupy the same region:
// the per-axis overlap fractions of the narrower box, blended with a
// proximity term so close non-touching boxes still score above zero.
func OverlapRatio(a, b Box) float64 {
	fx := OverlapRatioX(a, b)
	fy := OverlapRatioY(a, b)
	avg := (a.Width() + a.Height() + b.Width() + b.Height()) / 4
	prox := 0.0
	if avg > 0 {
		d := math.Hypot(a.CenterX()-b.CenterX(), a.CenterY()-b.CenterY())
		prox = math.Max(0, 1-d/(2*avg))
	}
	return 0.4*fx + 0.4*fy + 0.2*prox
}
