// Package physics implements the virtual-world geometry and kinematics used by
// the sandbox: coordinate transforms, axis-aligned shapes, the integration
// step and the collision predicates.
//
// Everything here is pure or mutates only the shape it is called on. Nothing
// reads the clock; dt and accelerations are always supplied by the caller.
package physics

// Point is a position in virtual-world units.
type Point struct {
	X, Y float64
}

// Vector is a Point used as a velocity or displacement.
type Vector = Point

// P is shorthand for Point{X: x, Y: y}.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// AddScalar adds f to both components.
func (p Point) AddScalar(f float64) Point {
	return Point{X: p.X + f, Y: p.Y + f}
}

// SubScalar subtracts f from both components.
func (p Point) SubScalar(f float64) Point {
	return Point{X: p.X - f, Y: p.Y - f}
}

// Add returns the component-wise sum.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}
