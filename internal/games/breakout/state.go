package breakout

// State is the game state. Paused is initial; Over and Win are terminal.
type State int

const (
	StatePaused  State = iota // Waiting for the first key press
	StatePlaying              // Simulation advances every step
	StateOver                 // Ball reached the bottom edge
	StateWin                  // Every brick destroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateOver || s == StateWin
}

// Machine holds the current state and enforces legal transitions:
// paused -> playing -> over | win. Nothing leaves a terminal state.
type Machine struct {
	state State
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Start moves paused to playing. Returns true only for that transition.
func (m *Machine) Start() bool {
	return m.transition(StatePaused, StatePlaying)
}

// Lose moves playing to over.
func (m *Machine) Lose() bool {
	return m.transition(StatePlaying, StateOver)
}

// Win moves playing to win.
func (m *Machine) Win() bool {
	return m.transition(StatePlaying, StateWin)
}

func (m *Machine) transition(from, to State) bool {
	if m.state != from {
		return false
	}
	m.state = to
	return true
}
