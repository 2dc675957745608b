package engine

// State is the engine's mode
type State int

const (
	// Editing accepts edits and ignores Advance
	Editing State = iota
	// Running advances one generation per Advance and ignores edits
	Running
)

func (s State) String() string {
	switch s {
	case Editing:
		return "Editing"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// State returns the current mode
func (e *Engine) State() State {
	return e.state
}

// IsRunning reports whether the engine is in the Running state
func (e *Engine) IsRunning() bool {
	return e.state == Running
}

// Start moves from Editing to Running. Calling it while running has no effect.
func (e *Engine) Start() {
	e.state = Running
}

// Stop moves from Running to Editing. Calling it while editing has no effect.
func (e *Engine) Stop() {
	e.state = Editing
}
