package recognize

import (
	"math"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
)

// Built-in unistroke templates on a nominal 100x100 grid, y growing
// downward. Flat shapes ("-", "1") are handled by the shape rules and
// have no templates here.
func builtinTemplates() []unistrokeTemplate {
	raw := []struct {
		label  string
		points []geom.Point
	}{
		{"0", ellipse(50, 50, 33, 45, 24)},
		{"2", []geom.Point{
			{X: 18, Y: 28}, {X: 24, Y: 14}, {X: 38, Y: 6}, {X: 56, Y: 6},
			{X: 70, Y: 14}, {X: 73, Y: 28}, {X: 64, Y: 44}, {X: 46, Y: 60},
			{X: 28, Y: 76}, {X: 16, Y: 92}, {X: 40, Y: 92}, {X: 62, Y: 92},
			{X: 82, Y: 92},
		}},
		{"3", []geom.Point{
			{X: 20, Y: 14}, {X: 36, Y: 6}, {X: 56, Y: 6}, {X: 68, Y: 16},
			{X: 68, Y: 32}, {X: 55, Y: 44}, {X: 42, Y: 48}, {X: 56, Y: 52},
			{X: 68, Y: 62}, {X: 68, Y: 80}, {X: 55, Y: 92}, {X: 35, Y: 95},
			{X: 20, Y: 86},
		}},
		{"4", []geom.Point{
			{X: 52, Y: 6}, {X: 34, Y: 30}, {X: 16, Y: 56}, {X: 44, Y: 58},
			{X: 76, Y: 58}, {X: 60, Y: 36}, {X: 60, Y: 66}, {X: 60, Y: 94},
		}},
		{"5", []geom.Point{
			{X: 70, Y: 6}, {X: 42, Y: 6}, {X: 25, Y: 6}, {X: 22, Y: 28},
			{X: 20, Y: 46}, {X: 40, Y: 40}, {X: 58, Y: 44}, {X: 70, Y: 58},
			{X: 68, Y: 78}, {X: 52, Y: 92}, {X: 32, Y: 93}, {X: 18, Y: 82},
		}},
		{"6", []geom.Point{
			{X: 62, Y: 6}, {X: 44, Y: 20}, {X: 30, Y: 42}, {X: 23, Y: 62},
			{X: 24, Y: 78}, {X: 36, Y: 92}, {X: 54, Y: 93}, {X: 67, Y: 82},
			{X: 68, Y: 64}, {X: 55, Y: 53}, {X: 38, Y: 54}, {X: 27, Y: 64},
		}},
		{"7", []geom.Point{
			{X: 16, Y: 8}, {X: 44, Y: 6}, {X: 78, Y: 6}, {X: 60, Y: 34},
			{X: 46, Y: 62}, {X: 36, Y: 94},
		}},
		{"8", figureEight()},
		{"9", []geom.Point{
			{X: 70, Y: 28}, {X: 62, Y: 10}, {X: 42, Y: 5}, {X: 26, Y: 14},
			{X: 21, Y: 32}, {X: 30, Y: 47}, {X: 48, Y: 52}, {X: 65, Y: 44},
			{X: 70, Y: 28}, {X: 68, Y: 52}, {X: 60, Y: 74}, {X: 48, Y: 94},
		}},
		{"(", []geom.Point{
			{X: 62, Y: 5}, {X: 44, Y: 24}, {X: 36, Y: 50}, {X: 44, Y: 76},
			{X: 62, Y: 95},
		}},
		{")", []geom.Point{
			{X: 38, Y: 5}, {X: 56, Y: 24}, {X: 64, Y: 50}, {X: 56, Y: 76},
			{X: 38, Y: 95},
		}},
	}

	templates := make([]unistrokeTemplate, 0, len(raw))
	for _, r := range raw {
		templates = append(templates, newUnistrokeTemplate(r.label, r.points))
	}
	return templates
}

// ellipse samples n points clockwise from the top of an axis-aligned
// ellipse, closing the loop.
func ellipse(cx, cy, rx, ry float64, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts = append(pts, geom.Point{
			X: cx + rx*math.Cos(a),
			Y: cy + ry*math.Sin(a),
		})
	}
	return pts
}

// figureEight draws the upper loop counter-clockwise then the lower
// loop clockwise, the common single-stroke "8".
func figureEight() []geom.Point {
	var pts []geom.Point
	for i := 0; i <= 12; i++ {
		a := 2*math.Pi*float64(i)/12 - math.Pi/2
		pts = append(pts, geom.Point{
			X: 50 - 22*math.Sin(a+math.Pi/2),
			Y: 28 + 22*math.Sin(a),
		})
	}
	for i := 0; i <= 12; i++ {
		a := 2*math.Pi*float64(i)/12 - math.Pi/2
		pts = append(pts, geom.Point{
			X: 50 + 26*math.Sin(a+math.Pi/2),
			Y: 72 + 26*math.Sin(a),
		})
	}
	return pts
}
