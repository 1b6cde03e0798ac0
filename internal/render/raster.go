// Package render rasterizes the physics vertex buffers onto a character
// grid. It plays the part of the GPU: shapes produce normalized device
// coordinates and the Rasterizer maps them to terminal cells.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// CellAspect is the height of a terminal cell in units of its width.
const CellAspect = 2.0

// Runes used for filled and outlined shapes.
const (
	FillRune = '█'
	WireRune = '░'
)

// Rasterizer draws NDC geometry into a screen region. The viewport keeps
// the world's aspect ratio and is centred inside the region.
type Rasterizer struct {
	dst      *core.Screen
	area     core.Rect
	viewport mgl32.Mat3
}

// NewRasterizer fits a viewport with the given width/height aspect ratio
// into bounds on dst.
func NewRasterizer(dst *core.Screen, bounds core.Rect, aspect float64) *Rasterizer {
	r := &Rasterizer{dst: dst}
	r.area = fitViewport(bounds, aspect)

	w, h := float32(r.area.W), float32(r.area.H)
	cx := float32(r.area.X) + w/2
	cy := float32(r.area.Y) + h/2
	// NDC y grows upwards, rows grow downwards.
	r.viewport = mgl32.Translate2D(cx, cy).Mul3(mgl32.Scale2D(w/2, -h/2))
	return r
}

func fitViewport(bounds core.Rect, aspect float64) core.Rect {
	if bounds.W <= 0 || bounds.H <= 0 || aspect <= 0 {
		return core.Rect{X: bounds.X, Y: bounds.Y}
	}

	w, h := bounds.W, bounds.H
	if float64(bounds.W) > float64(bounds.H)*CellAspect*aspect {
		w = core.Clamp(core.Round(float64(bounds.H)*CellAspect*aspect), 1, bounds.W)
	} else {
		h = core.Clamp(core.Round(float64(bounds.W)/(CellAspect*aspect)), 1, bounds.H)
	}

	return core.Rect{
		X: bounds.X + (bounds.W-w)/2,
		Y: bounds.Y + (bounds.H-h)/2,
		W: w,
		H: h,
	}
}

// Viewport returns the cell rectangle NDC [-1, 1] maps onto.
func (r *Rasterizer) Viewport() core.Rect {
	return r.area
}

// ToCell maps an NDC point to continuous cell coordinates.
func (r *Rasterizer) ToCell(x, y float32) (float32, float32) {
	v := r.viewport.Mul3x1(mgl32.Vec3{x, y, 1})
	return v.X(), v.Y()
}

// snapEpsilon absorbs float32 jitter so an edge that lands on a cell
// boundary does not spill into the next cell.
const snapEpsilon = 1e-3

func snap(v float32) float64 {
	f := float64(v)
	if r := math.Round(f); math.Abs(f-r) < snapEpsilon {
		return r
	}
	return f
}

// cell maps an NDC point to the cell containing it.
func (r *Rasterizer) cell(x, y float32) (int, int) {
	cx, cy := r.ToCell(x, y)
	return int(math.Floor(snap(cx))), int(math.Floor(snap(cy)))
}

// span returns the cells covered by the NDC quad, at least one per axis,
// before clipping.
func (r *Rasterizer) span(v [8]float32) core.Rect {
	// v holds bottom-left then top-right at indices 0,1 and 4,5.
	x0, y0 := r.ToCell(v[0], v[1])
	x1, y1 := r.ToCell(v[4], v[5])
	left := math.Floor(snap(core.Min(x0, x1)))
	right := math.Ceil(snap(core.Max(x0, x1)))
	top := math.Floor(snap(core.Min(y0, y1)))
	bottom := math.Ceil(snap(core.Max(y0, y1)))

	rect := core.Rect{X: int(left), Y: int(top), W: int(right - left), H: int(bottom - top)}
	rect.W = core.Max(rect.W, 1)
	rect.H = core.Max(rect.H, 1)
	return rect
}

// set draws one cell if it lies inside the viewport.
func (r *Rasterizer) set(x, y int, ch rune, c core.Color) {
	if !r.area.Contains(x, y) {
		return
	}
	r.dst.SetCell(x, y, ch, c)
}

// FillQuad fills the cells covered by a quad vertex buffer.
func (r *Rasterizer) FillQuad(v [8]float32, ch rune, c core.Color) {
	s := r.span(v)
	for y := s.Y; y < s.Bottom(); y++ {
		for x := s.X; x < s.Right(); x++ {
			r.set(x, y, ch, c)
		}
	}
}

// OutlineQuad draws the border of a quad with box-drawing runes. Quads one
// cell thin collapse to a line of WireRune.
func (r *Rasterizer) OutlineQuad(v [8]float32, c core.Color) {
	s := r.span(v)
	if s.W < 2 || s.H < 2 {
		r.FillQuad(v, WireRune, c)
		return
	}

	right, bottom := s.Right()-1, s.Bottom()-1
	r.set(s.X, s.Y, '┌', c)
	r.set(right, s.Y, '┐', c)
	r.set(s.X, bottom, '└', c)
	r.set(right, bottom, '┘', c)
	for x := s.X + 1; x < right; x++ {
		r.set(x, s.Y, '─', c)
		r.set(x, bottom, '─', c)
	}
	for y := s.Y + 1; y < bottom; y++ {
		r.set(s.X, y, '│', c)
		r.set(right, y, '│', c)
	}
}

// Line draws a segment vertex buffer with Bresenham's algorithm. A zero rune
// picks one matching the segment's direction on screen.
func (r *Rasterizer) Line(v [4]float32, ch rune, c core.Color) {
	x0, y0 := r.cell(v[0], v[1])
	x1, y1 := r.cell(v[2], v[3])
	if ch == 0 {
		ch = lineRune(x1-x0, y1-y0)
	}

	dx := core.Abs(x1 - x0)
	dy := -core.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		r.set(x0, y0, ch, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// lineRune picks a rune for a segment with cell deltas dx, dy (rows grow
// downwards).
func lineRune(dx, dy int) rune {
	adx, ady := core.Abs(dx), core.Abs(dy)
	switch {
	case adx == 0 && ady == 0:
		return '•'
	case ady*3 < adx:
		return '─'
	case adx*3 < ady:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// Label writes text into a textured quad: on its middle row, starting at the
// left edge and clipped to the quad's width. Quads whose texture extent is
// empty draw nothing.
func (r *Rasterizer) Label(v [16]float32, text string, c core.Color) {
	// UV extent of the top-right corner.
	if v[12] <= 0 || v[11] <= 0 {
		return
	}

	var quad [8]float32
	copy(quad[:], v[:8])
	s := r.span(quad)

	y := s.Y + (s.H-1)/2
	x := s.X
	for _, ch := range text {
		if x >= s.Right() {
			return
		}
		r.set(x, y, ch, c)
		x++
	}
}

// Frame draws a border just outside the viewport.
func (r *Rasterizer) Frame(c core.Color) {
	r.dst.DrawBoxColor(core.Rect{
		X: r.area.X - 1,
		Y: r.area.Y - 1,
		W: r.area.W + 2,
		H: r.area.H + 2,
	}, c)
}
