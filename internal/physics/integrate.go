package physics

// CalcTimeStep advances the body by dt seconds under a constant acceleration
// (ax, ay): both corners move by v*dt + a*dt²/2, then v grows by a*dt.
//
// The previous corners are saved first. dt is not validated; zero or negative
// values produce a degenerate or reversed step.
func (o *Object) CalcTimeStep(dt, ax, ay float64) {
	o.PrevP1 = o.P1
	o.PrevP2 = o.P2

	shift := Vector{
		X: o.Velocity.X*dt + ax*dt*dt/2,
		Y: o.Velocity.Y*dt + ay*dt*dt/2,
	}
	o.Translate(shift)

	o.Velocity.X += ax * dt
	o.Velocity.Y += ay * dt
}
