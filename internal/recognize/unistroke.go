package recognize

import (
	"math"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
)

// $1 unistroke template matching: candidate and template point paths
// are resampled to a fixed count, scaled to a reference square and
// translated to the origin, then compared by average point distance at
// the best rotation found by golden-section search.
const (
	unistrokeSamples = 64
	unistrokeSize    = 250.0
)

type unistrokeTemplate struct {
	label  string
	points []geom.Point
}

func newUnistrokeTemplate(label string, raw []geom.Point) unistrokeTemplate {
	return unistrokeTemplate{label: label, points: normalizeUnistroke(raw)}
}

func normalizeUnistroke(points []geom.Point) []geom.Point {
	pts := resample(points, unistrokeSamples)
	pts = scaleToSquare(pts, unistrokeSize)
	return translateToOrigin(pts)
}

func resample(points []geom.Point, n int) []geom.Point {
	src := make([]geom.Point, len(points))
	copy(src, points)

	interval := pathLength(src) / float64(n-1)
	if interval <= 0 {
		out := make([]geom.Point, n)
		for i := range out {
			out[i] = src[0]
		}
		return out
	}

	accumulated := 0.0
	out := []geom.Point{src[0]}
	for i := 1; i < len(src); i++ {
		d := ptDist(src[i-1], src[i])
		if accumulated+d >= interval && d > 0 {
			t := (interval - accumulated) / d
			q := geom.Point{
				X: src[i-1].X + t*(src[i].X-src[i-1].X),
				Y: src[i-1].Y + t*(src[i].Y-src[i-1].Y),
			}
			out = append(out, q)
			// Re-split the segment at q and continue from there.
			src = append(src[:i], append([]geom.Point{q}, src[i:]...)...)
			accumulated = 0
		} else {
			accumulated += d
		}
	}
	for len(out) < n {
		out = append(out, src[len(src)-1])
	}
	return out[:n]
}

func pathLength(points []geom.Point) float64 {
	d := 0.0
	for i := 1; i < len(points); i++ {
		d += ptDist(points[i-1], points[i])
	}
	return d
}

func ptDist(a, b geom.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func scaleToSquare(points []geom.Point, size float64) []geom.Point {
	box := geom.FromPoints(points)
	w, h := box.Width(), box.Height()
	// Degenerate paths (straight lines) keep their flat axis rather
	// than exploding; callers filter dashes and bars before matching.
	if w < 1e-6 {
		w = 1
	}
	if h < 1e-6 {
		h = 1
	}
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point{X: p.X * size / w, Y: p.Y * size / h}
	}
	return out
}

func translateToOrigin(points []geom.Point) []geom.Point {
	c := centroid(points)
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point{X: p.X - c.X, Y: p.Y - c.Y}
	}
	return out
}

func centroid(points []geom.Point) geom.Point {
	var x, y float64
	for _, p := range points {
		x += p.X
		y += p.Y
	}
	n := float64(len(points))
	return geom.Point{X: x / n, Y: y / n}
}

// matchUnistroke scores the candidate against every template and
// returns the best label with a score in [0, 1].
func matchUnistroke(points []geom.Point, templates []unistrokeTemplate) (string, float64) {
	candidate := normalizeUnistroke(points)
	best := math.Inf(1)
	label := ""
	for _, t := range templates {
		d := distanceAtBestAngle(candidate, t.points, -math.Pi/4, math.Pi/4, math.Pi/90)
		if d < best {
			best = d
			label = t.label
		}
	}
	score := 1 - best/(0.5*math.Sqrt(2*unistrokeSize*unistrokeSize))
	return label, score
}

func distanceAtBestAngle(points, tmpl []geom.Point, a, b, delta float64) float64 {
	phi := 0.5 * (math.Sqrt(5) - 1)
	x1 := phi*a + (1-phi)*b
	f1 := distanceAtAngle(points, tmpl, x1)
	x2 := (1-phi)*a + phi*b
	f2 := distanceAtAngle(points, tmpl, x2)
	for math.Abs(b-a) > delta {
		if f1 < f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = phi*a + (1-phi)*b
			f1 = distanceAtAngle(points, tmpl, x1)
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = (1-phi)*a + phi*b
			f2 = distanceAtAngle(points, tmpl, x2)
		}
	}
	return math.Min(f1, f2)
}

func distanceAtAngle(points, tmpl []geom.Point, angle float64) float64 {
	rotated := rotateBy(points, angle)
	d := 0.0
	n := len(rotated)
	if len(tmpl) < n {
		n = len(tmpl)
	}
	for i := 0; i < n; i++ {
		d += ptDist(rotated[i], tmpl[i])
	}
	return d / float64(n)
}

func rotateBy(points []geom.Point, angle float64) []geom.Point {
	c := centroid(points)
	sin, cos := math.Sincos(angle)
	out := make([]geom.Point, len(points))
	for i, p := range points {
		dx, dy := p.X-c.X, p.Y-c.Y
		out[i] = geom.Point{
			X: dx*cos - dy*sin + c.X,
			Y: dx*sin + dy*cos + c.Y,
		}
	}
	return out
}
