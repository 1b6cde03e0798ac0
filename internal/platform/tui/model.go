package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

// Model is the Bubble Tea model that drives one scene: it turns key
// presses into input frames, measures frame time between ticks and saves
// finished runs.
type Model struct {
	scene    registry.Scene
	screen   *core.Screen
	store    *storage.Store
	settings *config.Settings
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model

	input   core.InputFrame
	state   core.SimState
	clock   core.Stopwatch
	ticking bool // false until the first tick starts the clock

	quitting   bool
	backToMenu bool
}

// NewModel creates a play model for sc. store may be nil, in which case
// runs are not recorded.
func NewModel(sc registry.Scene, store *storage.Store, settings *config.Settings, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		scene:    sc,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		store:    store,
		settings: settings,
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		input:    core.NewInputFrame(),
	}
}

// Init resets the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.settings.FPSCap)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.finishRun()
		m.backToMenu = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The world keeps its size;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation frame. dt is the wall time since the
// previous tick; the first tick only starts the clock.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	dt := 0.0
	if m.ticking {
		dt = m.clock.Get(now)
	}
	m.clock.Reset(now)
	m.ticking = true

	result := m.scene.Step(m.input, dt)
	m.state = result.State
	if result.Finished != nil {
		m.saveRun(*result.Finished)
	}

	m.input.Clear()
	return m, tickCmd(m.settings.FPSCap)
}

// finishRun records the run in progress, if any frames ran.
func (m *Model) finishRun() {
	m.saveRun(m.scene.State())
}

func (m *Model) saveRun(st core.SimState) {
	if m.store == nil || st.Frames == 0 {
		return
	}
	run := storage.Run{
		SceneID:    m.scene.ID(),
		Frames:     st.Frames,
		Duration:   time.Duration(st.Elapsed * float64(time.Second)),
		Jumps:      st.Jumps,
		BoxEntries: st.BoxEntries,
		MaxHeight:  st.MaxHeight,
		AvgFPS:     st.AvgFPS(),
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "scene", run.SceneID, "error", err)
		return
	}
	m.logger.Info("run saved", "scene", run.SceneID, "id", id,
		"frames", run.Frames, "max_height", run.MaxHeight)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scene.Render(m.screen)

	dir := config.UserPath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the scene above the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	rows := core.Max(m.config.ScreenH-lipgloss.Height(helpView), 1)
	if m.screen.Height() != rows || m.screen.Width() != m.config.ScreenW {
		m.screen.Resize(m.config.ScreenW, rows)
	}

	m.screen.Clear()
	m.scene.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(helpView)
}

// State returns the last simulation state seen by the model.
func (m Model) State() core.SimState {
	return m.state
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Run plays sc in the current terminal until the user quits or goes back.
func Run(sc registry.Scene, store *storage.Store, settings *config.Settings, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := standaloneModel{NewModel(sc, store, settings, cfg, logger)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// standaloneModel quits the program when the play model goes back.
type standaloneModel struct {
	Model
}

func (m standaloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.Model.Update(msg)
	m.Model = next.(Model)
	if m.Model.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}
