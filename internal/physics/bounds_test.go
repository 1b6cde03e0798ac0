package physics

import "testing"

func TestResolveBounds(t *testing.T) {
	world := Bounds{Min: P(0, 0), Max: P(10, 10)}

	tests := []struct {
		name    string
		p1, p2  Point
		v       Vector
		wantP1  Point
		wantV   Vector
		contact Contact
	}{
		{
			name: "inside untouched",
			p1:   P(2, 2), p2: P(3, 3), v: Vector{X: 1, Y: 1},
			wantP1: P(2, 2), wantV: Vector{X: 1, Y: 1},
		},
		{
			name: "through the floor",
			p1:   P(2, -0.5), p2: P(3, 0.5), v: Vector{X: 1, Y: -4},
			wantP1: P(2, 0), wantV: Vector{X: 1}, contact: Contact{Floor: true},
		},
		{
			name: "through the ceiling",
			p1:   P(2, 9.5), p2: P(3, 10.5), v: Vector{Y: 2},
			wantP1: P(2, 9), contact: Contact{Ceiling: true},
		},
		{
			name: "past the left wall",
			p1:   P(-1, 2), p2: P(0, 3), v: Vector{X: -3, Y: 1},
			wantP1: P(0, 2), wantV: Vector{Y: 1}, contact: Contact{Left: true},
		},
		{
			name: "into the bottom-right corner",
			p1:   P(9.5, -1), p2: P(10.5, 0), v: Vector{X: 2, Y: -2},
			wantP1: P(9, 0), contact: Contact{Right: true, Floor: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestObject(tt.p1, tt.p2)
			o.Velocity = tt.v

			c := ResolveBounds(o, world)

			if !approxPoint(o.P1, tt.wantP1, tolerance) {
				t.Errorf("P1 = %v, want %v", o.P1, tt.wantP1)
			}
			if !approxEqual(o.Width(), tt.p2.X-tt.p1.X, tolerance) {
				t.Errorf("size changed: width %v", o.Width())
			}
			if o.Velocity != tt.wantV {
				t.Errorf("Velocity = %v, want %v", o.Velocity, tt.wantV)
			}
			if c != tt.contact {
				t.Errorf("Contact = %+v, want %+v", c, tt.contact)
			}
		})
	}
}

func TestContact(t *testing.T) {
	var c Contact
	if c.Any() || c.Grounded() {
		t.Error("zero Contact should be empty")
	}
	c = c.Merge(Contact{Left: true})
	if !c.Any() || c.Grounded() {
		t.Error("Left contact is not grounded")
	}
	c = c.Merge(Contact{Floor: true})
	if !c.Grounded() || !c.Left {
		t.Errorf("merged contact = %+v", c)
	}
}

func TestResolveBarrier(t *testing.T) {
	tr := &Transform{AspectRatio: 1, InverseScaleFactor: 10}
	platform := NewBarrier2D(tr, P(2, 2), P(6, 3))

	tests := []struct {
		name         string
		prev1, prev2 Point
		p1, p2       Point
		v            Vector
		wantP1       Point
		wantV        Vector
		contact      Contact
	}{
		{
			name:  "no overlap",
			prev1: P(0, 0), prev2: P(1, 1),
			p1: P(0, 0.1), p2: P(1, 1.1), v: Vector{Y: 1},
			wantP1: P(0, 0.1), wantV: Vector{Y: 1},
		},
		{
			name:  "landing on top",
			prev1: P(3, 3.1), prev2: P(4, 4.1),
			p1: P(3, 2.9), p2: P(4, 3.9), v: Vector{X: 0.5, Y: -2},
			wantP1: P(3, 3), wantV: Vector{X: 0.5}, contact: Contact{Floor: true},
		},
		{
			name:  "resting on top",
			prev1: P(3, 3), prev2: P(4, 4),
			p1: P(3, 3), p2: P(4, 4),
			wantP1: P(3, 3), contact: Contact{Floor: true},
		},
		{
			name:  "head hits underside",
			prev1: P(3, 0.9), prev2: P(4, 1.9),
			p1: P(3, 1.1), p2: P(4, 2.1), v: Vector{Y: 3},
			wantP1: P(3, 1), contact: Contact{Ceiling: true},
		},
		{
			name:  "walks into left face",
			prev1: P(0.9, 2.2), prev2: P(1.9, 2.8),
			p1: P(1.1, 2.2), p2: P(2.1, 2.8), v: Vector{X: 1},
			wantP1: P(1, 2.2), contact: Contact{Right: true},
		},
		{
			name:  "walks into right face",
			prev1: P(6.1, 2.2), prev2: P(7.1, 2.8),
			p1: P(5.9, 2.2), p2: P(6.9, 2.8), v: Vector{X: -1},
			wantP1: P(6, 2.2), contact: Contact{Left: true},
		},
		{
			name:  "barrier smaller than body",
			prev1: P(0, 3.5), prev2: P(8, 5),
			p1: P(0, 2.5), p2: P(8, 4), v: Vector{Y: -1},
			wantP1: P(0, 3), contact: Contact{Floor: true},
		},
		{
			name:  "spawned inside",
			prev1: P(3, 2.2), prev2: P(4, 2.8),
			p1: P(3, 2.2), p2: P(4, 2.8), v: Vector{Y: -1},
			wantP1: P(3, 3), contact: Contact{Floor: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObject(tr, tt.p1, tt.p2)
			o.PrevP1, o.PrevP2 = tt.prev1, tt.prev2
			o.Velocity = tt.v

			c := ResolveBarrier(o, platform)

			if !approxPoint(o.P1, tt.wantP1, 1e-9) {
				t.Errorf("P1 = %v, want %v", o.P1, tt.wantP1)
			}
			if !approxPoint(o.Velocity, tt.wantV, 1e-9) {
				t.Errorf("Velocity = %v, want %v", o.Velocity, tt.wantV)
			}
			if c != tt.contact {
				t.Errorf("Contact = %+v, want %+v", c, tt.contact)
			}
		})
	}
}
