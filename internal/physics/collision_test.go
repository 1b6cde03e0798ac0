package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func bb(p1, p2 Point) cp.BB {
	return cp.BB{L: p1.X, B: p1.Y, R: p2.X, T: p2.Y}
}

func TestPointInLineOnAxis(t *testing.T) {
	tests := []struct {
		a, b1, b2 float64
		want      bool
	}{
		{a: 0.5, b1: 0, b2: 1, want: true},
		{a: 0.5, b1: 1, b2: 0, want: true},
		{a: 0, b1: 0, b2: 1, want: true},
		{a: 1, b1: 1, b2: 0, want: true},
		{a: 1.5, b1: 0, b2: 1, want: false},
		{a: -0.1, b1: 1, b2: 0, want: false},
		{a: 2, b1: 2, b2: 2, want: true},
	}
	for _, tt := range tests {
		if got := PointInLineOnAxis(tt.a, tt.b1, tt.b2); got != tt.want {
			t.Errorf("PointInLineOnAxis(%v, %v, %v) = %v, want %v", tt.a, tt.b1, tt.b2, got, tt.want)
		}
	}
}

func TestSegmentsOverlapOnAxis(t *testing.T) {
	if !SegmentsOverlapOnAxis(0, 2, 1, 3) {
		t.Error("partially overlapping segments should overlap")
	}
	if SegmentsOverlapOnAxis(0, 1, 2, 3) {
		t.Error("disjoint segments should not overlap")
	}
	// Only A's endpoints are sampled.
	if SegmentsOverlapOnAxis(0, 10, 4, 5) {
		t.Error("B strictly inside A is a known miss")
	}
	if !SegmentsOverlapOnAxis(4, 5, 0, 10) {
		t.Error("A inside B should overlap")
	}
}

func TestPointInAABBMatchesOracle(t *testing.T) {
	boxes := [][2]Point{
		{P(0, 0), P(2, 2)},
		{P(-1, 3), P(4, 5)},
		{P(1, 1), P(1, 1)},
		{P(0, 0), P(0, 5)},
	}
	points := []Point{
		P(1, 1), P(0, 0), P(2, 2), P(2.0001, 1), P(0, 5), P(0, 6),
		P(-1, 3), P(3, 4), P(1, 0.5), P(0, 2.5),
	}

	for _, box := range boxes {
		oracle := bb(box[0], box[1])
		for _, p := range points {
			want := oracle.ContainsVect(cp.Vector{X: p.X, Y: p.Y})
			if got := PointInAABB(p, box[0], box[1]); got != want {
				t.Errorf("PointInAABB(%v, %v, %v) = %v, oracle says %v", p, box[0], box[1], got, want)
			}
		}
	}
}

func TestPointInAABBCornerOrder(t *testing.T) {
	if !PointInAABB(P(1, 1), P(2, 2), P(0, 0)) {
		t.Error("swapped corners should still contain the centre")
	}
	if !PointInAABB(P(1, 1), P(0, 2), P(2, 0)) {
		t.Error("mixed corners should still contain the centre")
	}
}

func TestPointInAABBDegenerate(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{name: "on the line", p: P(3, 1), want: true},
		{name: "off the line", p: P(3.0000001, 1), want: false},
		{name: "past the end", p: P(3, 3), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInAABB(tt.p, P(3, 0), P(3, 2)); got != tt.want {
				t.Errorf("PointInAABB(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestAABBOverlapMatchesOracle(t *testing.T) {
	tests := []struct {
		name      string
		a1, a2    Point
		b1, b2    Point
		symmetric bool
	}{
		{name: "disjoint", a1: P(0, 0), a2: P(1, 1), b1: P(2, 2), b2: P(3, 3), symmetric: true},
		{name: "partial", a1: P(0, 0), a2: P(2, 2), b1: P(1, 1), b2: P(3, 3), symmetric: true},
		{name: "identical", a1: P(0, 0), a2: P(2, 2), b1: P(0, 0), b2: P(2, 2), symmetric: true},
		{name: "touching edge", a1: P(0, 0), a2: P(1, 1), b1: P(1, 0), b2: P(2, 1), symmetric: true},
		{name: "touching corner", a1: P(0, 0), a2: P(1, 1), b1: P(1, 1), b2: P(2, 2), symmetric: true},
		{name: "separated on x only", a1: P(0, 0), a2: P(1, 5), b1: P(2, 1), b2: P(3, 2), symmetric: true},
		{name: "a inside b", a1: P(1, 1), a2: P(2, 2), b1: P(0, 0), b2: P(3, 3)},
		{name: "b inside a", a1: P(0, 0), a2: P(3, 3), b1: P(1, 1), b2: P(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := bb(tt.a1, tt.a2).Intersects(bb(tt.b1, tt.b2))

			ab := AABBOverlap(tt.a1, tt.a2, tt.b1, tt.b2)
			ba := AABBOverlap(tt.b1, tt.b2, tt.a1, tt.a2)

			if (ab || ba) != want {
				t.Errorf("either-direction overlap = %v, oracle says %v", ab || ba, want)
			}
			if tt.symmetric {
				if ab != ba {
					t.Errorf("AABBOverlap not symmetric: a,b=%v b,a=%v", ab, ba)
				}
				if ab != want {
					t.Errorf("AABBOverlap = %v, oracle says %v", ab, want)
				}
			}
		})
	}
}

func TestAABBOverlapKnownMisses(t *testing.T) {
	// B nested in A: none of A's corners are inside B.
	a1, a2 := P(0, 0), P(3, 3)
	b1, b2 := P(1, 1), P(2, 2)
	if AABBOverlap(a1, a2, b1, b2) {
		t.Error("nested box in the second argument is expected to be missed")
	}
	if !bb(a1, a2).Intersects(bb(b1, b2)) {
		t.Fatal("oracle should report nested boxes as intersecting")
	}

	// Plus sign: neither box has a corner inside the other.
	h1, h2 := P(0, 1), P(3, 2)
	v1, v2 := P(1, 0), P(2, 3)
	if AABBOverlap(h1, h2, v1, v2) || AABBOverlap(v1, v2, h1, h2) {
		t.Error("plus-sign crossing is expected to be missed in both directions")
	}
	if !bb(h1, h2).Intersects(bb(v1, v2)) {
		t.Fatal("oracle should report the plus sign as intersecting")
	}
}

func TestBoxesOverlap(t *testing.T) {
	tr := &Transform{AspectRatio: 1, InverseScaleFactor: 10}
	obj := NewObject(tr, P(0, 0), P(1, 1))
	bar := NewBarrier2D(tr, P(0.5, 0.5), P(2, 2))
	far := NewBarrier2D(tr, P(5, 5), P(6, 6))

	if !BoxesOverlap(obj, bar) {
		t.Error("expected object to overlap barrier")
	}
	if BoxesOverlap(obj, far) {
		t.Error("expected no overlap with distant barrier")
	}
	if !PointInBox(P(1, 1), bar) {
		t.Error("expected point inside barrier")
	}
}
