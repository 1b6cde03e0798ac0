package physics

import "math"

// VoidMinorPosDiff snaps each coordinate of p1 to the matching coordinate of
// p2 when they differ by at most margin. Axes are handled independently.
// It removes float jitter between edges that are meant to be flush.
func VoidMinorPosDiff(p1 *Point, p2 Point, margin float64) {
	if math.Abs(p1.X-p2.X) <= margin {
		p1.X = p2.X
	}
	if math.Abs(p1.Y-p2.Y) <= margin {
		p1.Y = p2.Y
	}
}

// SnapLow snaps the body's low corner towards ref and moves the high corner
// by the same amount so the size is preserved.
func (o *Object) SnapLow(ref Point, margin float64) {
	snapped := o.P1
	VoidMinorPosDiff(&snapped, ref, margin)
	o.Translate(snapped.Sub(o.P1))
}

// SnapHigh is SnapLow for the high corner.
func (o *Object) SnapHigh(ref Point, margin float64) {
	snapped := o.P2
	VoidMinorPosDiff(&snapped, ref, margin)
	o.Translate(snapped.Sub(o.P2))
}
