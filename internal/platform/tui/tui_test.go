package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

// fakeScene records what the platform feeds it.
type fakeScene struct {
	id       string
	resets   int
	dts      []float64
	inputs   []core.InputFrame
	state    core.SimState
	finished *core.SimState // returned once by the next Step
}

func (f *fakeScene) ID() string                   { return f.id }
func (f *fakeScene) Title() string                { return "Fake " + f.id }
func (f *fakeScene) Reset(cfg core.RuntimeConfig) { f.resets++; f.state = core.SimState{} }
func (f *fakeScene) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake:"+f.id) }
func (f *fakeScene) State() core.SimState         { return f.state }

func (f *fakeScene) Step(in core.InputFrame, dt float64) core.StepResult {
	cp := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			cp.Set(a)
		}
	}
	f.inputs = append(f.inputs, cp)
	f.dts = append(f.dts, dt)
	if dt > 0 {
		f.state.Frames++
		f.state.Elapsed += dt
	}
	res := core.StepResult{State: f.state, Finished: f.finished}
	f.finished = nil
	return res
}

// registerFake adds a fake scene to the registry for the test's lifetime.
// The returned pointer tracks the most recently created instance.
func registerFake(t *testing.T, id string) **fakeScene {
	t.Helper()
	last := new(*fakeScene)
	err := registry.Add(registry.SceneInfo{ID: id, Title: "Fake " + id, Source: "builtin"},
		func(env registry.Env) (registry.Scene, error) {
			*last = &fakeScene{id: id}
			return *last, nil
		})
	if err != nil {
		t.Fatalf("registry.Add(%q) failed: %v", id, err)
	}
	t.Cleanup(func() { registry.Unregister(id) })
	return last
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 80
	cfg.ScreenH = 24
	return cfg
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{runes("w"), core.ActionJump},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionJump},
		{runes("s"), core.ActionDown},
		{runes("t"), core.ActionReset},
		{runes("p"), core.ActionPause},
		{runes("e"), core.ActionWireframe},
		{runes("j"), core.ActionPanLeft},
		{runes("l"), core.ActionPanRight},
		{runes("i"), core.ActionPanUp},
		{runes("k"), core.ActionPanDown},
		{runes("+"), core.ActionZoomIn},
		{runes("-"), core.ActionZoomOut},
		{runes("0"), core.ActionCameraReset},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runes("w"), &frame) {
		t.Error("jump should not quit")
	}
	if keys.MapKeyToFrame(runes("d"), &frame) {
		t.Error("right should not quit")
	}
	if keys.MapKeyToFrame(runes("b"), &frame) {
		t.Error("back should not quit")
	}
	if !frame.Has(core.ActionJump) || !frame.Has(core.ActionRight) {
		t.Errorf("frame = %v, want Jump and Right", frame.Actions)
	}
	if frame.Has(core.ActionBack) {
		t.Error("back must not reach the simulation")
	}
	if !keys.MapKeyToFrame(runes("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(50); got != 20*time.Millisecond {
		t.Errorf("tickInterval(50) = %v, want 20ms", got)
	}
	if got, want := tickInterval(0), tickInterval(60); got != want {
		t.Errorf("tickInterval(0) = %v, want %v", got, want)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetCell(0, 0, 'a', core.ColorRed)
	s.SetCell(1, 0, 'b', core.ColorRed)
	s.SetCell(2, 0, 'c', core.ColorBlue)
	s.DrawText(0, 1, "xy")

	got := ansi.Strip(RenderScreen(s))
	if got != s.String() {
		t.Errorf("RenderScreen() text = %q, want %q", got, s.String())
	}
}

func TestModelTickTiming(t *testing.T) {
	sc := &fakeScene{id: "fake"}
	m := NewModel(sc, nil, config.DefaultSettings(), testConfig(), testLogger())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the tick loop")
	}
	if sc.resets != 1 {
		t.Errorf("resets = %d, want 1", sc.resets)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	next, _ := m.Update(runes("w"))
	m = next.(Model)
	next, cmd := m.Update(TickMsg(start))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	next, _ = m.Update(TickMsg(start.Add(20 * time.Millisecond)))
	m = next.(Model)

	if len(sc.dts) != 2 {
		t.Fatalf("steps = %d, want 2", len(sc.dts))
	}
	if sc.dts[0] != 0 {
		t.Errorf("first dt = %v, want 0", sc.dts[0])
	}
	if sc.dts[1] < 0.0199 || sc.dts[1] > 0.0201 {
		t.Errorf("second dt = %v, want 0.02", sc.dts[1])
	}
	if !sc.inputs[0].Has(core.ActionJump) {
		t.Error("first frame should carry the jump")
	}
	if sc.inputs[1].Has(core.ActionJump) {
		t.Error("input should be cleared after a frame")
	}
	if m.State().Frames != 1 {
		t.Errorf("State().Frames = %d, want 1", m.State().Frames)
	}
}

func TestModelSavesRuns(t *testing.T) {
	store := openTestStore(t)
	sc := &fakeScene{id: "fake"}
	m := NewModel(sc, store, config.DefaultSettings(), testConfig(), testLogger())
	m.Init()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sc.finished = &core.SimState{Frames: 30, Elapsed: 0.5, Jumps: 2, MaxHeight: 3}
	next, _ := m.Update(TickMsg(start))
	m = next.(Model)
	next, _ = m.Update(TickMsg(start.Add(time.Second)))
	m = next.(Model)

	next, _ = m.Update(runes("b"))
	m = next.(Model)
	if !m.BackToMenu() {
		t.Fatal("b should go back to the menu")
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("saved runs = %d, want 2", len(runs))
	}
	if runs[1].Jumps != 2 || runs[1].Frames != 30 || runs[1].Duration != 500*time.Millisecond {
		t.Errorf("reset run = %+v", runs[1])
	}
	if runs[0].Frames != 1 {
		t.Errorf("back run frames = %d, want 1", runs[0].Frames)
	}
}

func TestModelSkipsEmptyRuns(t *testing.T) {
	store := openTestStore(t)
	sc := &fakeScene{id: "fake"}
	m := NewModel(sc, store, config.DefaultSettings(), testConfig(), testLogger())
	m.Init()

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
	if n, _ := store.RunCount("fake"); n != 0 {
		t.Errorf("RunCount() = %d, want 0", n)
	}
}

func TestModelView(t *testing.T) {
	sc := &fakeScene{id: "fake"}
	m := NewModel(sc, nil, config.DefaultSettings(), testConfig(), testLogger())

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "fake:fake") {
		t.Error("View() should contain the scene render")
	}
	if !strings.Contains(view, "jump") {
		t.Error("View() should contain the help bar")
	}
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Errorf("View() rows = %d, want 24", got)
	}
}

func TestMenuNavigation(t *testing.T) {
	registerFake(t, "aaa-test")
	registerFake(t, "bbb-test")

	m := NewMenuModel(nil, testConfig())
	view := m.View()
	if !strings.Contains(view, "Fake aaa-test") || !strings.Contains(view, "Fake bbb-test") {
		t.Fatalf("menu should list the scenes:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil {
		t.Error("selecting should end the menu")
	}
	if m.Selected() == nil || m.Selected().SceneID != "bbb-test" {
		t.Errorf("Selected() = %+v, want bbb-test", m.Selected())
	}
}

func TestMenuShowsRunStats(t *testing.T) {
	registerFake(t, "aaa-test")
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{SceneID: "aaa-test", Frames: 10, MaxHeight: 4.5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, testConfig())
	if !strings.Contains(ansi.Strip(m.View()), "1 runs, best 4.50") {
		t.Errorf("menu should show run stats:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsRuns() {
		t.Error("tab should open the run history")
	}
}

func TestRunsModel(t *testing.T) {
	registerFake(t, "aaa-test")
	registerFake(t, "bbb-test")
	store := openTestStore(t)
	for _, h := range []float64{1.5, 6.25, 3} {
		if _, err := store.SaveRun(storage.Run{SceneID: "aaa-test", Frames: 60, MaxHeight: h}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewRunsModel(store, 120, 40)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "3 runs") || !strings.Contains(view, "best height 6.25") {
		t.Errorf("runs view should summarize the scene:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if !strings.Contains(ansi.Strip(m.View()), "No runs recorded yet") {
		t.Error("second scene should have no runs")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(RunsModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	last := registerFake(t, "aaa-test")
	store := openTestStore(t)
	settings := config.DefaultSettings()

	m := NewSessionModel(store, settings, testConfig(), testLogger())
	update := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	if cmd := update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatal("starting a scene should start ticking")
	}
	if m.view != viewPlay || *last == nil || (*last).resets != 1 {
		t.Fatal("enter should start the scene")
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	update(TickMsg(start))
	update(TickMsg(start.Add(time.Second / 60)))
	update(runes("b"))
	if m.view != viewMenu {
		t.Fatal("b should return to the menu")
	}
	if n, _ := store.RunCount("aaa-test"); n != 1 {
		t.Errorf("RunCount() = %d, want 1", n)
	}
	if cmd := update(TickMsg(start.Add(time.Second))); cmd != nil {
		t.Error("stale ticks should end in the menu")
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewRuns {
		t.Fatal("tab should open the run history")
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatal("esc should leave the run history")
	}

	if cmd := update(runes("q")); cmd == nil || !m.quitting {
		t.Error("q should end the session")
	}
}

func TestSessionSettingsAreCloned(t *testing.T) {
	registerFake(t, "aaa-test")
	settings := config.DefaultSettings()
	isf := settings.Transform().InverseScaleFactor

	m := NewSessionModel(nil, settings, testConfig(), testLogger())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	m.play.settings.Zoom(1)

	if settings.Transform().InverseScaleFactor != isf {
		t.Error("session zoom leaked into shared settings")
	}
}
