package core

// Action represents a semantic sandbox action, abstracted from physical key
// presses so the simulation works with intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow - push left
	ActionRight              // D, Right arrow - push right
	ActionJump               // Space, W, Up - jump when grounded
	ActionDown               // S, Down - dive
	ActionReset              // T - respawn the body
	ActionPause              // P - pause/unpause the simulation
	ActionWireframe          // E - toggle outline rendering
	ActionPanLeft            // J - move the camera left
	ActionPanRight           // L - move the camera right
	ActionPanUp              // I - move the camera up
	ActionPanDown            // K - move the camera down
	ActionZoomIn             // + / = - fewer virtual units on screen
	ActionZoomOut            // - - more virtual units on screen
	ActionCameraReset        // 0 - restore configured camera
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Q, Ctrl+C - exit sandbox/session
)

var actionNames = [...]string{
	ActionNone:        "None",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionJump:        "Jump",
	ActionDown:        "Down",
	ActionReset:       "Reset",
	ActionPause:       "Pause",
	ActionWireframe:   "Wireframe",
	ActionPanLeft:     "PanLeft",
	ActionPanRight:    "PanRight",
	ActionPanUp:       "PanUp",
	ActionPanDown:     "PanDown",
	ActionZoomIn:      "ZoomIn",
	ActionZoomOut:     "ZoomOut",
	ActionCameraReset: "CameraReset",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame represents the input state during one simulation frame.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{
		Actions: make(map[Action]bool),
	}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
