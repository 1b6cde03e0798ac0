package physics

import "fmt"

// Scenario classifies a pair of segments by which of them are vertical,
// horizontal or collapsed to a point. Bits 0-1 describe the first segment,
// bits 2-3 the second.
type Scenario uint8

const (
	firstVertical    Scenario = 1 << iota // p1.X == p2.X
	firstHorizontal                       // p1.Y == p2.Y
	secondVertical                        // p3.X == p4.X
	secondHorizontal                      // p3.Y == p4.Y
)

// SegmentKind describes one segment inside a Scenario.
type SegmentKind uint8

const (
	Sloped SegmentKind = iota
	Vertical
	Horizontal
	Degenerate // both endpoints equal
)

func (k SegmentKind) String() string {
	switch k {
	case Sloped:
		return "sloped"
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Degenerate:
		return "point"
	default:
		return "unknown"
	}
}

// ScenarioCode computes the 4-bit classification of segments p1-p2 and p3-p4.
func ScenarioCode(p1, p2, p3, p4 Point) Scenario {
	var s Scenario
	if p1.X == p2.X {
		s |= firstVertical
	}
	if p1.Y == p2.Y {
		s |= firstHorizontal
	}
	if p3.X == p4.X {
		s |= secondVertical
	}
	if p3.Y == p4.Y {
		s |= secondHorizontal
	}
	return s
}

// First returns the kind of the first segment.
func (s Scenario) First() SegmentKind {
	return SegmentKind(s & 3)
}

// Second returns the kind of the second segment.
func (s Scenario) Second() SegmentKind {
	return SegmentKind(s >> 2 & 3)
}

// Collinear reports the two scenarios (vertical:vertical and
// horizontal:horizontal) whose intersection point is a placeholder rather
// than a real contact point.
func (s Scenario) Collinear() bool {
	return s == firstVertical|secondVertical || s == firstHorizontal|secondHorizontal
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s:%s", s.First(), s.Second())
}

type lineCase func(p1, p2, p3, p4 Point) (bool, Point)

// lineCases is indexed by Scenario.
var lineCases = [16]lineCase{
	slopedSloped,
	verticalSloped,
	horizontalSloped,
	pointSloped,
	slopedVertical,
	verticalVertical,
	horizontalVertical,
	pointVertical,
	slopedHorizontal,
	verticalHorizontal,
	horizontalHorizontal,
	pointHorizontal,
	slopedPoint,
	verticalPoint,
	horizontalPoint,
	pointPoint,
}

// LineIntersectsLine reports whether segment p1-p2 meets segment p3-p4 and
// where.
//
// Each Scenario has its own closed-form solution; the generic slope formula
// would divide by zero on vertical or degenerate segments. For collinear
// vertical or horizontal pairs (see Scenario.Collinear) the overlap result is
// correct but the returned point is a placeholder with the free coordinate
// set to 0. Parallel sloped segments yield NaN or Inf and report false.
func LineIntersectsLine(p1, p2, p3, p4 Point) (bool, Point) {
	return lineCases[ScenarioCode(p1, p2, p3, p4)](p1, p2, p3, p4)
}

func slope(a, b Point) float64 {
	return (b.Y - a.Y) / (b.X - a.X)
}

// yAt evaluates the line through a with slope m at x.
func yAt(a Point, m, x float64) float64 {
	return m*x + a.Y - m*a.X
}

// xAt solves the line through a with slope m for y.
func xAt(a Point, m, y float64) float64 {
	return (y - a.Y + m*a.X) / m
}

func slopedSloped(p1, p2, p3, p4 Point) (bool, Point) {
	m1 := slope(p1, p2)
	m2 := slope(p3, p4)
	var in Point
	in.X = (p3.Y - m2*p3.X - p1.Y + m1*p1.X) / (m1 - m2)
	in.Y = (-(m2 * p1.Y) + m1*(m2*p1.X+p3.Y-m2*p3.X)) / (m1 - m2)
	return PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func verticalSloped(p1, p2, p3, p4 Point) (bool, Point) {
	m2 := slope(p3, p4)
	in := Point{X: p1.X}
	in.Y = yAt(p3, m2, in.X)
	return PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func horizontalSloped(p1, p2, p3, p4 Point) (bool, Point) {
	m2 := slope(p3, p4)
	in := Point{Y: p1.Y}
	in.X = xAt(p3, m2, in.Y)
	return PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func pointSloped(p1, _, p3, p4 Point) (bool, Point) {
	m2 := slope(p3, p4)
	in := p1
	return in.Y == yAt(p3, m2, in.X) &&
		PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func slopedVertical(p1, p2, p3, p4 Point) (bool, Point) {
	m1 := slope(p1, p2)
	in := Point{X: p3.X}
	in.Y = yAt(p1, m1, in.X)
	return PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

// verticalVertical only checks for a shared x and overlapping y ranges; the
// contact may be a whole interval, so Y is left at 0.
func verticalVertical(p1, p2, p3, p4 Point) (bool, Point) {
	in := Point{X: p1.X, Y: 0}
	return p1.X == p3.X && SegmentsOverlapOnAxis(p1.Y, p2.Y, p3.Y, p4.Y), in
}

func horizontalVertical(p1, p2, p3, p4 Point) (bool, Point) {
	in := Point{X: p3.X, Y: p1.Y}
	return PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func pointVertical(p1, _, p3, p4 Point) (bool, Point) {
	in := p1
	return p1.X == p3.X && PointInLineOnAxis(in.Y, p3.Y, p4.Y), in
}

func slopedHorizontal(p1, p2, p3, p4 Point) (bool, Point) {
	m1 := slope(p1, p2)
	in := Point{Y: p3.Y}
	in.X = xAt(p1, m1, in.Y)
	return PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y), in
}

func verticalHorizontal(p1, p2, p3, p4 Point) (bool, Point) {
	in := Point{X: p1.X, Y: p3.Y}
	return PointInLineOnAxis(in.X, p3.X, p4.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y), in
}

// horizontalHorizontal mirrors verticalVertical: X is left at 0.
func horizontalHorizontal(p1, p2, p3, p4 Point) (bool, Point) {
	in := Point{X: 0, Y: p1.Y}
	return SegmentsOverlapOnAxis(p1.X, p2.X, p3.X, p4.X) && p1.Y == p3.Y, in
}

func pointHorizontal(p1, _, p3, p4 Point) (bool, Point) {
	in := p1
	return PointInLineOnAxis(in.X, p3.X, p4.X) && p1.Y == p3.Y, in
}

func slopedPoint(p1, p2, p3, p4 Point) (bool, Point) {
	m1 := slope(p1, p2)
	in := p3
	return in.Y == yAt(p1, m1, in.X) &&
		PointInLineOnAxis(in.X, p1.X, p2.X) &&
		PointInLineOnAxis(in.Y, p1.Y, p2.Y), in
}

func verticalPoint(p1, p2, p3, _ Point) (bool, Point) {
	in := p3
	return p1.X == p3.X && PointInLineOnAxis(in.Y, p1.Y, p2.Y), in
}

func horizontalPoint(p1, p2, p3, _ Point) (bool, Point) {
	in := p3
	return PointInLineOnAxis(in.X, p1.X, p2.X) && p1.Y == p3.Y, in
}

func pointPoint(p1, _, p3, _ Point) (bool, Point) {
	in := p3
	return p1.X == p3.X && p1.Y == p3.Y, in
}
