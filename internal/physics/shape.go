package physics

// Box is anything described by two axis-aligned corner points.
// P1 is conventionally the low/left corner and P2 the high/right one.
type Box interface {
	Corners() (p1, p2 Point)
}

// LineVertices returns the NDC endpoints of a segment: [x0,y0, x1,y1].
func LineVertices(p1, p2 Point, t *Transform) [4]float32 {
	x0, y0 := t.ToNDC(p1)
	x1, y1 := t.ToNDC(p2)
	return [4]float32{float32(x0), float32(y0), float32(x1), float32(y1)}
}

// QuadVertices returns the NDC corners of a box in the order bottom-left,
// top-left, top-right, bottom-right: [x0,y0, x0,y1, x1,y1, x1,y0].
// Only the two defining corners are transformed; the other two reuse their
// components.
func QuadVertices(p1, p2 Point, t *Transform) [8]float32 {
	x0, y0 := t.ToNDC(p1)
	x1, y1 := t.ToNDC(p2)
	return [8]float32{
		float32(x0), float32(y0),
		float32(x0), float32(y1),
		float32(x1), float32(y1),
		float32(x1), float32(y0),
	}
}

// TexturedQuadVertices returns QuadVertices followed by four UV pairs.
// The UVs span the quad's own NDC width and height with the origin at the
// first corner: [0,0, 0,h, w,0, w,h].
func TexturedQuadVertices(p1, p2 Point, t *Transform) [16]float32 {
	var v [16]float32
	q := QuadVertices(p1, p2, t)
	copy(v[:8], q[:])

	w := q[4] - q[0]
	h := q[3] - q[1]

	v[8], v[9] = 0, 0
	v[10], v[11] = 0, h
	v[12], v[13] = w, 0
	v[14], v[15] = w, h
	return v
}

// Barrier1D is a static line segment.
type Barrier1D struct {
	P1, P2   Point
	Vertices [4]float32

	transform *Transform
}

// NewBarrier1D creates a segment bound to the shared transform and fills its
// vertex buffer.
func NewBarrier1D(t *Transform, p1, p2 Point) *Barrier1D {
	b := &Barrier1D{P1: p1, P2: p2, transform: t}
	b.SetVertices()
	return b
}

// Corners returns the segment endpoints.
func (b *Barrier1D) Corners() (Point, Point) {
	return b.P1, b.P2
}

// SetVertices recomputes the vertex buffer from the current transform.
func (b *Barrier1D) SetVertices() {
	b.Vertices = LineVertices(b.P1, b.P2, b.transform)
}

// Barrier2D is a static axis-aligned box.
type Barrier2D struct {
	P1, P2   Point
	Vertices [8]float32

	transform *Transform
}

// NewBarrier2D creates a box bound to the shared transform and fills its
// vertex buffer.
func NewBarrier2D(t *Transform, p1, p2 Point) *Barrier2D {
	b := &Barrier2D{P1: p1, P2: p2, transform: t}
	b.SetVertices()
	return b
}

// Corners returns the box corners.
func (b *Barrier2D) Corners() (Point, Point) {
	return b.P1, b.P2
}

// SetVertices recomputes the vertex buffer from the current transform.
func (b *Barrier2D) SetVertices() {
	b.Vertices = QuadVertices(b.P1, b.P2, b.transform)
}

// Texture is a static box carrying texture coordinates, used for labels.
type Texture struct {
	P1, P2   Point
	Vertices [16]float32

	transform *Transform
}

// NewTexture creates a textured box bound to the shared transform.
func NewTexture(t *Transform, p1, p2 Point) *Texture {
	tx := &Texture{P1: p1, P2: p2, transform: t}
	tx.SetVertices()
	return tx
}

// Corners returns the box corners.
func (tx *Texture) Corners() (Point, Point) {
	return tx.P1, tx.P2
}

// SetVertices recomputes positions and UVs from the current transform.
func (tx *Texture) SetVertices() {
	tx.Vertices = TexturedQuadVertices(tx.P1, tx.P2, tx.transform)
}

// Object is a dynamic axis-aligned box. It never rotates.
type Object struct {
	P1, P2 Point
	// PrevP1 and PrevP2 hold the corners from before the last CalcTimeStep.
	PrevP1, PrevP2 Point
	Velocity       Vector
	Vertices       [8]float32

	transform *Transform
}

// NewObject creates a dynamic box at rest.
func NewObject(t *Transform, p1, p2 Point) *Object {
	o := &Object{P1: p1, P2: p2, PrevP1: p1, PrevP2: p2, transform: t}
	o.SetVertices()
	return o
}

// Corners returns the current corners.
func (o *Object) Corners() (Point, Point) {
	return o.P1, o.P2
}

// SetVertices recomputes the vertex buffer from the current transform.
func (o *Object) SetVertices() {
	o.Vertices = QuadVertices(o.P1, o.P2, o.transform)
}

// Width returns the horizontal extent.
func (o *Object) Width() float64 {
	return o.P2.X - o.P1.X
}

// Height returns the vertical extent.
func (o *Object) Height() float64 {
	return o.P2.Y - o.P1.Y
}

// MoveTo places the low corner at p, keeping the size, and stops the body.
func (o *Object) MoveTo(p Point) {
	w, h := o.Width(), o.Height()
	o.P1 = p
	o.P2 = Point{X: p.X + w, Y: p.Y + h}
	o.PrevP1, o.PrevP2 = o.P1, o.P2
	o.Velocity = Vector{}
}

// Translate shifts both corners by d.
func (o *Object) Translate(d Vector) {
	o.P1 = o.P1.Add(d)
	o.P2 = o.P2.Add(d)
}
