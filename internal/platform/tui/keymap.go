package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// KeyMap holds the sandbox key bindings. It doubles as the help.KeyMap for
// the help bar under the play view.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Jump        key.Binding
	Down        key.Binding
	Reset       key.Binding
	Pause       key.Binding
	Wireframe   key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	PanUp       key.Binding
	PanDown     key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	CameraReset key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings: WASD/arrows move the body and
// IJKL pan the camera.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("w", "up", " "),
			key.WithHelp("w/space", "jump"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "dive"),
		),
		Reset: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "respawn"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Wireframe: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "wireframe"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "pan right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "pan down"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		CameraReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset camera"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Reset, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Down},
		{k.Reset, k.Pause, k.Wireframe, k.Screenshot},
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown},
		{k.ZoomIn, k.ZoomOut, k.CameraReset},
		{k.Help, k.Back, k.Quit},
	}
}

// actionBindings lists the bindings that feed the simulation, in the order
// they are checked.
func (k KeyMap) actionBindings() []struct {
	binding key.Binding
	action  core.Action
} {
	return []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Jump, core.ActionJump},
		{k.Down, core.ActionDown},
		{k.Reset, core.ActionReset},
		{k.Pause, core.ActionPause},
		{k.Wireframe, core.ActionWireframe},
		{k.PanLeft, core.ActionPanLeft},
		{k.PanRight, core.ActionPanRight},
		{k.PanUp, core.ActionPanUp},
		{k.PanDown, core.ActionPanDown},
		{k.ZoomIn, core.ActionZoomIn},
		{k.ZoomOut, core.ActionZoomOut},
		{k.CameraReset, core.ActionCameraReset},
		{k.Back, core.ActionBack},
		{k.Quit, core.ActionQuit},
	}
}

// MapKey translates a key message to an action.
// Returns ActionNone for keys without a simulation meaning.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	for _, b := range k.actionBindings() {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := k.MapKey(msg)
	switch action {
	case core.ActionQuit:
		return true
	case core.ActionNone, core.ActionBack:
		return false
	}
	frame.Set(action)
	return false
}

// MenuKeyMap holds the bindings shared by the menu and the runs view.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Runs   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Runs: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Runs, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Runs, k.Back, k.Quit}}
}
