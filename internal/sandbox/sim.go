// Package sandbox runs a scene: one dynamic body under gravity and player
// impulses, pushed out of solid boxes, watched by detection boxes and line
// barriers, and kept inside the world.
package sandbox

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/render"
	"github.com/vovakirdan/tui-sandbox/internal/scene"
)

// MaxStep caps the seconds integrated in one frame. A stalled terminal or a
// slow SSH link would otherwise let the body tunnel through thin barriers.
const MaxStep = 0.1

// Runes for shapes that are not plain fills.
const (
	ZoneRune = '▒'
	BodyRune = '█'
)

type solid struct {
	id    string
	shape *physics.Barrier2D
	color core.Color
}

type zone struct {
	id     string
	shape  *physics.Barrier2D
	color  core.Color
	inside bool
}

type segment struct {
	id       string
	shape    *physics.Barrier1D
	color    core.Color
	touching bool
}

type label struct {
	text  string
	shape *physics.Texture
	color core.Color
}

// Sim implements registry.Scene for one scene definition.
type Sim struct {
	def      *scene.Scene
	settings *config.Settings
	logger   *log.Logger
	config   core.RuntimeConfig

	body      *physics.Object
	bodyColor core.Color
	solids    []solid
	zones     []zone
	lines     []segment
	labels    []label

	// hud shares nothing with the world transform so it ignores the camera.
	hudTransform *physics.Transform
	hud          *physics.Texture

	state     core.SimState
	fps       core.FPSMeter
	paused    core.Toggle
	wireframe core.Toggle
}

// New builds a Sim from a validated scene. Every shape is bound to the
// transform owned by env.Settings, so camera changes made through the
// settings reach all of them.
func New(def *scene.Scene, env registry.Env) (*Sim, error) {
	if env.Settings == nil {
		return nil, fmt.Errorf("sandbox: scene %q: no settings", def.ID)
	}
	logger := env.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Sim{
		def:      def,
		settings: env.Settings,
		logger:   logger.WithPrefix(def.ID),
		config:   core.DefaultConfig(),
	}

	var err error
	if s.bodyColor, err = core.ParseColor(def.BodyColor); err != nil {
		return nil, fmt.Errorf("sandbox: scene %q: %w", def.ID, err)
	}
	if err := s.build(); err != nil {
		return nil, fmt.Errorf("sandbox: scene %q: %w", def.ID, err)
	}
	s.Reset(s.config)
	return s, nil
}

func (s *Sim) build() error {
	t := s.settings.Transform()

	spawn := s.def.SpawnRect(s.settings.Derived.VirtualWidth)
	s.body = physics.NewObject(t, spawn.P1.Point(), spawn.P2.Point())

	for _, b := range s.def.Boxes {
		c, err := core.ParseColor(b.Color)
		if err != nil {
			return fmt.Errorf("box %q: %w", b.ID, err)
		}
		shape := physics.NewBarrier2D(t, b.P1.Point(), b.P2.Point())
		if b.Solid {
			s.solids = append(s.solids, solid{id: b.ID, shape: shape, color: c})
		} else {
			s.zones = append(s.zones, zone{id: b.ID, shape: shape, color: c})
		}
	}
	for _, l := range s.def.Lines {
		c, err := core.ParseColor(l.Color)
		if err != nil {
			return fmt.Errorf("line %q: %w", l.ID, err)
		}
		s.lines = append(s.lines, segment{id: l.ID, shape: physics.NewBarrier1D(t, l.P1.Point(), l.P2.Point()), color: c})
	}
	for _, l := range s.def.Labels {
		c, err := core.ParseColor(l.Color)
		if err != nil {
			return fmt.Errorf("label %q: %w", l.Text, err)
		}
		s.labels = append(s.labels, label{text: l.Text, shape: physics.NewTexture(t, l.P1.Point(), l.P2.Point()), color: c})
	}

	// The FPS readout sits in the top-left corner of the window.
	s.hudTransform = &physics.Transform{
		AspectRatio:        s.settings.Derived.AspectRatio,
		InverseScaleFactor: s.settings.Physics.InvScaleFactor,
	}
	vh := s.settings.Derived.VirtualHeight
	s.hud = physics.NewTexture(s.hudTransform,
		physics.P(0.1, vh-0.6),
		physics.P(s.settings.Derived.VirtualWidth/2, vh-0.1))
	return nil
}

// ID returns the scene id.
func (s *Sim) ID() string {
	return s.def.ID
}

// Title returns the scene title.
func (s *Sim) Title() string {
	return s.def.DisplayTitle()
}

// Reset respawns the body at rest and clears the run statistics. The pause
// and wireframe toggles survive a reset.
func (s *Sim) Reset(cfg core.RuntimeConfig) {
	s.config = cfg

	spawn := s.def.SpawnRect(s.settings.Derived.VirtualWidth)
	b := s.body
	b.P1, b.P2 = spawn.P1.Point(), spawn.P2.Point()
	b.PrevP1, b.PrevP2 = b.P1, b.P2
	b.Velocity = physics.Vector{}

	for i := range s.zones {
		s.zones[i].inside = false
	}
	for i := range s.lines {
		s.lines[i].touching = false
	}
	s.fps.Reset()

	s.state = core.SimState{
		MaxHeight: s.body.P1.Y,
		Paused:    s.paused.On,
		Wireframe: s.wireframe.On,
	}
	s.setVertices()
}

// Step advances the simulation by dt seconds. Camera and toggle actions are
// honoured while paused; physics is not. Non-positive dt only refreshes
// the vertex buffers.
func (s *Sim) Step(in core.InputFrame, dt float64) core.StepResult {
	var result core.StepResult

	if s.paused.Update(in.Has(core.ActionPause), dt) {
		s.logger.Debug("pause", "paused", s.paused.On)
	}
	if s.wireframe.Update(in.Has(core.ActionWireframe), dt) {
		s.logger.Debug("wireframe", "on", s.wireframe.On)
	}
	s.handleCamera(in)

	if in.Has(core.ActionReset) {
		if s.state.Frames > 0 {
			finished := s.State()
			result.Finished = &finished
		}
		s.logger.Info("reset", "frames", s.state.Frames, "jumps", s.state.Jumps,
			"max_height", s.state.MaxHeight)
		s.Reset(s.config)
	}

	if !s.paused.On && dt > 0 {
		s.advance(in, dt)
	}

	s.setVertices()
	result.State = s.State()
	return result
}

func (s *Sim) handleCamera(in core.InputFrame) {
	moved := false
	if in.Has(core.ActionPanLeft) {
		s.settings.Pan(1, 0)
		moved = true
	}
	if in.Has(core.ActionPanRight) {
		s.settings.Pan(-1, 0)
		moved = true
	}
	if in.Has(core.ActionPanUp) {
		s.settings.Pan(0, -1)
		moved = true
	}
	if in.Has(core.ActionPanDown) {
		s.settings.Pan(0, 1)
		moved = true
	}
	if in.Has(core.ActionZoomIn) {
		s.settings.Zoom(1)
		moved = true
	}
	if in.Has(core.ActionZoomOut) {
		s.settings.Zoom(-1)
		moved = true
	}
	if in.Has(core.ActionCameraReset) {
		s.settings.ResetCamera()
		moved = true
	}
	if moved {
		t := s.settings.Transform()
		s.logger.Debug("camera", "inv_scale", t.InverseScaleFactor,
			"shift_x", t.CameraShift.X, "shift_y", t.CameraShift.Y)
	}
}

// advance runs one physics frame. Physics integrates at most MaxStep while
// the frame statistics use the real frame time.
func (s *Sim) advance(in core.InputFrame, frameTime float64) {
	p := s.settings.Physics
	o := s.body
	dt := math.Min(frameTime, MaxStep)

	ax, ay := 0.0, p.Gravity
	switch {
	case in.Has(core.ActionJump) && s.state.Grounded:
		ay += p.JumpImpulse / dt
		s.state.Jumps++
		s.logger.Debug("jump", "x", o.P1.X, "y", o.P1.Y)
	case in.Has(core.ActionDown):
		ay -= p.DiveImpulse / dt
	}
	switch {
	case in.Has(core.ActionRight):
		ax += p.MoveImpulse / dt
	case in.Has(core.ActionLeft):
		ax -= p.MoveImpulse / dt
	}

	wasGrounded := s.state.Grounded
	s.state.Grounded = false

	o.CalcTimeStep(dt, ax, ay)

	var contact physics.Contact
	for _, b := range s.solids {
		contact = contact.Merge(physics.ResolveBarrier(o, b.shape))
	}

	s.state.InBox = false
	for i := range s.zones {
		z := &s.zones[i]
		inside := physics.BoxesOverlap(o, z.shape) || physics.BoxesOverlap(z.shape, o)
		switch {
		case inside && !z.inside:
			s.state.BoxEntries++
			s.logger.Info("entered box", "barrier", z.id)
		case !inside && z.inside:
			s.logger.Info("left box", "barrier", z.id)
		}
		z.inside = inside
		s.state.InBox = s.state.InBox || inside
	}

	s.state.TouchingLine = false
	for i := range s.lines {
		l := &s.lines[i]
		touching := touchesLine(o, l.shape)
		switch {
		case touching && !l.touching:
			s.logger.Info("touching line", "barrier", l.id)
		case !touching && l.touching:
			s.logger.Info("left line", "barrier", l.id)
		}
		l.touching = touching
		s.state.TouchingLine = s.state.TouchingLine || touching
	}

	bounds := s.settings.WorldBounds()
	contact = contact.Merge(physics.ResolveBounds(o, bounds))

	margin := p.ErrorMargin
	o.SnapLow(bounds.Min, margin)
	o.SnapHigh(bounds.Max, margin)
	for _, b := range s.solids {
		o.SnapLow(b.shape.P2, margin)
		o.SnapHigh(b.shape.P1, margin)
	}

	s.state.Grounded = contact.Grounded()
	if s.state.Grounded && !wasGrounded {
		s.logger.Debug("grounded", "y", o.P1.Y)
	}

	s.state.Frames++
	s.state.Elapsed += frameTime
	s.state.MaxHeight = math.Max(s.state.MaxHeight, o.P1.Y)
	s.state.FPS = s.fps.Frame(frameTime)
}

// touchesLine reports whether any edge of the body meets the segment, or
// the segment lies inside the body.
func touchesLine(o *physics.Object, l *physics.Barrier1D) bool {
	bl := o.P1
	tr := o.P2
	tl := physics.P(o.P1.X, o.P2.Y)
	br := physics.P(o.P2.X, o.P1.Y)

	edges := [4][2]physics.Point{
		{bl, br}, // bottom
		{tl, tr}, // top
		{bl, tl}, // left
		{br, tr}, // right
	}
	for _, e := range edges {
		if hit, _ := physics.LineIntersectsLine(e[0], e[1], l.P1, l.P2); hit {
			return true
		}
	}
	return physics.PointInBox(l.P1, o)
}

func (s *Sim) setVertices() {
	s.body.SetVertices()
	for _, b := range s.solids {
		b.shape.SetVertices()
	}
	for _, z := range s.zones {
		z.shape.SetVertices()
	}
	for _, l := range s.lines {
		l.shape.SetVertices()
	}
	for _, l := range s.labels {
		l.shape.SetVertices()
	}
	s.hud.SetVertices()
}

// Render draws the world into the screen between a one-line header and a
// one-line status bar.
func (s *Sim) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	area := core.NewRect(1, 2, w-2, h-4)
	r := render.NewRasterizer(dst, area, s.settings.Derived.AspectRatio)
	r.Frame(core.ColorGray)

	wire := s.wireframe.On
	quad := func(v [8]float32, ch rune, c core.Color) {
		if wire {
			r.OutlineQuad(v, c)
			return
		}
		r.FillQuad(v, ch, c)
	}

	for _, z := range s.zones {
		quad(z.shape.Vertices, ZoneRune, z.color)
	}
	for _, b := range s.solids {
		quad(b.shape.Vertices, render.FillRune, b.color)
	}
	for _, l := range s.lines {
		c := l.color
		if l.touching {
			c = core.ColorBrightWhite
		}
		r.Line(l.shape.Vertices, 0, c)
	}
	for _, l := range s.labels {
		r.Label(l.shape.Vertices, l.text, l.color)
	}
	quad(s.body.Vertices, BodyRune, s.bodyColor)

	fps := fmt.Sprintf("[ FPS: %d / %g ]", s.state.FPS, s.settings.FPSCap)
	r.Label(s.hud.Vertices, fps, core.ColorYellow)

	dst.DrawTextColor(1, 0, s.settings.Window.Title+" | "+s.Title(), core.ColorCyan)
	dst.DrawTextColor(1, h-1, s.statusLine(), core.ColorGray)

	if s.paused.On {
		dst.DrawTextCentered(area.Y+area.H/2, " PAUSED ")
	}
}

func (s *Sim) statusLine() string {
	t := s.settings.Transform()
	status := fmt.Sprintf("pos %.2f,%.2f  vel %.2f,%.2f  zoom %g",
		s.body.P1.X, s.body.P1.Y, s.body.Velocity.X, s.body.Velocity.Y, t.InverseScaleFactor)
	if s.state.Grounded {
		status += "  grounded"
	}
	if s.state.InBox {
		status += "  in box"
	}
	if s.state.TouchingLine {
		status += "  on line"
	}
	return status
}

// Body returns the dynamic body.
func (s *Sim) Body() *physics.Object {
	return s.body
}

// State returns the current simulation state.
func (s *Sim) State() core.SimState {
	st := s.state
	st.Paused = s.paused.On
	st.Wireframe = s.wireframe.On
	return st
}
