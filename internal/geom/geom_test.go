package geom

import (
	"math"
	"testing"
)

func TestFromPoints(t *testing.T) {
	b := FromPoints([]Point{{X: 3, Y: 7}, {X: 1, Y: 9}, {X: 5, Y: 2}})
	want := Box{MinX: 1, MinY: 2, MaxX: 5, MaxY: 9}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
	if b.Width() != 4 || b.Height() != 7 {
		t.Fatalf("width/height = %v/%v", b.Width(), b.Height())
	}
	if b.CenterX() != 3 || b.CenterY() != 5.5 {
		t.Fatalf("center = %v,%v", b.CenterX(), b.CenterY())
	}
}

func TestFromPointsEmpty(t *testing.T) {
	if b := FromPoints(nil); b != (Box{}) {
		t.Fatalf("empty input should give the zero box, got %+v", b)
	}
}

func TestUnionLaws(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}
	b := Box{MinX: 2, MinY: -1, MaxX: 9, MaxY: 3}
	c := Box{MinX: -5, MinY: 5, MaxX: 0, MaxY: 6}

	if Union(a, b) != Union(b, a) {
		t.Fatal("union is not commutative")
	}
	if Union(Union(a, b), c) != Union(a, Union(b, c)) {
		t.Fatal("union is not associative")
	}
	if Union(a, a) != a {
		t.Fatal("union of a box with itself should be the box")
	}
}

func TestGap(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{
			name: "overlapping",
			a:    Box{0, 0, 10, 10},
			b:    Box{5, 5, 15, 15},
			want: 0,
		},
		{
			name: "touching",
			a:    Box{0, 0, 10, 10},
			b:    Box{10, 0, 20, 10},
			want: 0,
		},
		{
			name: "horizontal gap",
			a:    Box{0, 0, 10, 10},
			b:    Box{15, 0, 20, 10},
			want: 5,
		},
		{
			name: "diagonal gap",
			a:    Box{0, 0, 10, 10},
			b:    Box{13, 14, 20, 20},
			want: 5,
		},
		{
			name: "degenerate boxes as points",
			a:    Box{0, 0, 0, 0},
			b:    Box{3, 4, 3, 4},
			want: 5,
		},
	}
	for _, tt := range tests {
		if got := Gap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Gap = %v, want %v", tt.name, got, tt.want)
		}
		if got := Gap(tt.b, tt.a); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Gap not symmetric: %v", tt.name, got)
		}
	}
}

func TestOverlapRatioY(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Box{MinX: 20, MinY: 5, MaxX: 30, MaxY: 25}
	// Overlap is 5px, narrower height is 10px.
	if got := OverlapRatioY(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("OverlapRatioY = %v, want 0.5", got)
	}

	// A zero-height dash inside the other box's vertical range counts
	// as fully overlapping.
	dash := Box{MinX: 0, MinY: 5, MaxX: 8, MaxY: 5}
	if got := OverlapRatioY(dash, a); got != 1 {
		t.Fatalf("degenerate OverlapRatioY = %v, want 1", got)
	}
}

func TestOverlapRatioDisjoint(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Box{MinX: 0, MinY: 500, MaxX: 10, MaxY: 510}
	if got := OverlapRatioY(a, b); got != 0 {
		t.Fatalf("far-apart OverlapRatioY = %v, want 0", got)
	}
}
