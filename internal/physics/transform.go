package physics

// Transform maps virtual-world units into normalized device coordinates.
//
// A single Transform is owned by the driver and shared by pointer with every
// shape, so zoom and pan changes reach all shapes on their next SetVertices.
// Zero AspectRatio or InverseScaleFactor is a configuration error and is not
// checked here.
type Transform struct {
	AspectRatio        float64 // window width / height
	InverseScaleFactor float64 // virtual units visible across the window height
	CameraShift        Point   // pan offset, already in NDC
}

// ToNDC converts a virtual-world point to normalized device coordinates.
// The visible extent [0, VirtualWidth] x [0, VirtualHeight] maps onto
// [-1, 1]; anything outside maps outside that range and is left unclamped.
func (t *Transform) ToNDC(p Point) (x, y float64) {
	x = 2*p.X/(t.AspectRatio*t.InverseScaleFactor) - 1 + t.CameraShift.X
	y = 2*p.Y/t.InverseScaleFactor - 1 + t.CameraShift.Y
	return x, y
}

// VirtualWidth is the number of virtual units visible across the window width.
func (t *Transform) VirtualWidth() float64 {
	return t.AspectRatio * t.InverseScaleFactor
}

// VirtualHeight is the number of virtual units visible across the window height.
func (t *Transform) VirtualHeight() float64 {
	return t.InverseScaleFactor
}
