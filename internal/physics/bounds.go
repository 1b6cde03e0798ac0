package physics

// Bounds is the rectangular world a body is kept inside.
type Bounds struct {
	Min, Max Point
}

// Contact records which faces of the body were clamped during resolution.
type Contact struct {
	Left    bool // body stopped moving towards -X
	Right   bool // body stopped moving towards +X
	Floor   bool // body is resting on something below it
	Ceiling bool // body hit something above it
}

// Any reports whether any face was clamped.
func (c Contact) Any() bool {
	return c.Left || c.Right || c.Floor || c.Ceiling
}

// Grounded reports whether the body may jump next frame.
func (c Contact) Grounded() bool {
	return c.Floor
}

// Merge combines two contact sets.
func (c Contact) Merge(o Contact) Contact {
	return Contact{
		Left:    c.Left || o.Left,
		Right:   c.Right || o.Right,
		Floor:   c.Floor || o.Floor,
		Ceiling: c.Ceiling || o.Ceiling,
	}
}

// ResolveBounds keeps the body inside b. On each axis, if the low corner
// crossed the low edge the body is moved flush to it and that velocity
// component is zeroed; otherwise the high edge is handled the same way.
// Only the floor sets Contact.Floor.
func ResolveBounds(o *Object, b Bounds) Contact {
	var c Contact

	if o.P1.X < b.Min.X {
		o.Translate(Vector{X: b.Min.X - o.P1.X})
		o.Velocity.X = 0
		c.Left = true
	} else if o.P2.X > b.Max.X {
		o.Translate(Vector{X: b.Max.X - o.P2.X})
		o.Velocity.X = 0
		c.Right = true
	}

	if o.P1.Y < b.Min.Y {
		o.Translate(Vector{Y: b.Min.Y - o.P1.Y})
		o.Velocity.Y = 0
		c.Floor = true
	} else if o.P2.Y > b.Max.Y {
		o.Translate(Vector{Y: b.Max.Y - o.P2.Y})
		o.Velocity.Y = 0
		c.Ceiling = true
	}

	return c
}

// ResolveBarrier pushes the body out of a solid barrier through the face it
// entered from, judged by where the body was before the last step
// (PrevP1/PrevP2). Landing on top sets Contact.Floor.
//
// Overlap is tested in both directions so a barrier smaller than the body is
// still caught; two boxes crossing like a plus sign are not.
func ResolveBarrier(o *Object, bar Box) Contact {
	var c Contact
	if !BoxesOverlap(o, bar) && !BoxesOverlap(bar, o) {
		return c
	}
	b1, b2 := bar.Corners()

	switch {
	case o.PrevP1.Y >= b2.Y:
		o.Translate(Vector{Y: b2.Y - o.P1.Y})
		if o.Velocity.Y < 0 {
			o.Velocity.Y = 0
		}
		c.Floor = true
	case o.PrevP2.Y <= b1.Y:
		o.Translate(Vector{Y: b1.Y - o.P2.Y})
		if o.Velocity.Y > 0 {
			o.Velocity.Y = 0
		}
		c.Ceiling = true
	case o.PrevP2.X <= b1.X:
		o.Translate(Vector{X: b1.X - o.P2.X})
		if o.Velocity.X > 0 {
			o.Velocity.X = 0
		}
		c.Right = true
	case o.PrevP1.X >= b2.X:
		o.Translate(Vector{X: b2.X - o.P1.X})
		if o.Velocity.X < 0 {
			o.Velocity.X = 0
		}
		c.Left = true
	default:
		// Started inside the barrier: lift it out on top.
		o.Translate(Vector{Y: b2.Y - o.P1.Y})
		o.Velocity.Y = 0
		c.Floor = true
	}
	return c
}
