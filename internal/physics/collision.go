package physics

// PointInLineOnAxis reports whether a lies in the closed interval spanned by
// b1 and b2, in either order.
func PointInLineOnAxis(a, b1, b2 float64) bool {
	if b1 > b2 {
		return a >= b2 && a <= b1
	}
	return a >= b1 && a <= b2
}

// SegmentsOverlapOnAxis reports whether either endpoint of [a1, a2] lies
// within [b1, b2].
//
// This only samples A's endpoints: B strictly inside A with both A endpoints
// outside B is reported as no overlap.
func SegmentsOverlapOnAxis(a1, a2, b1, b2 float64) bool {
	return PointInLineOnAxis(a1, b1, b2) || PointInLineOnAxis(a2, b1, b2)
}

// PointInAABB reports whether p lies inside the closed box with corners
// boxP1 and boxP2 (either order). A box with zero extent on an axis only
// contains points exactly on that coordinate.
func PointInAABB(p, boxP1, boxP2 Point) bool {
	return pointInSpan(p.X, boxP1.X, boxP2.X) && pointInSpan(p.Y, boxP1.Y, boxP2.Y)
}

func pointInSpan(a, b1, b2 float64) bool {
	switch {
	case b1 > b2:
		return a <= b1 && a >= b2
	case b1 < b2:
		return a <= b2 && a >= b1
	default:
		return a == b1
	}
}

// AABBOverlap reports whether any of the four corners of box A lies inside
// box B.
//
// Corner sampling misses two configurations: B nested inside A without
// touching A's corners, and two boxes crossing like a plus sign. Callers that
// need full overlap must test both directions or use projections.
func AABBOverlap(aP1, aP2, bP1, bP2 Point) bool {
	corners := [4]Point{
		{X: aP1.X, Y: aP1.Y},
		{X: aP2.X, Y: aP1.Y},
		{X: aP1.X, Y: aP2.Y},
		{X: aP2.X, Y: aP2.Y},
	}
	for _, c := range corners {
		if PointInAABB(c, bP1, bP2) {
			return true
		}
	}
	return false
}

// PointInBox is PointInAABB against any shape's corners.
func PointInBox(p Point, b Box) bool {
	p1, p2 := b.Corners()
	return PointInAABB(p, p1, p2)
}

// BoxesOverlap is AABBOverlap between two shapes, testing a's corners
// against b.
func BoxesOverlap(a, b Box) bool {
	aP1, aP2 := a.Corners()
	bP1, bP2 := b.Corners()
	return AABBOverlap(aP1, aP2, bP1, bP2)
}
