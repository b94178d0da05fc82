package core

// Key is a logical key, abstracted from physical key presses.
// Only the two directions matter to the game; everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return "Other"
	}
}

// KeyEvent is a discrete key-down or key-up delivered by an input collaborator.
type KeyEvent struct {
	Key  Key
	Down bool
}

// KeyDown creates a key-down event.
func KeyDown(k Key) KeyEvent {
	return KeyEvent{Key: k, Down: true}
}

// KeyUp creates a key-up event.
func KeyUp(k Key) KeyEvent {
	return KeyEvent{Key: k, Down: false}
}

// Intent is the directional intent read by one simulation step.
type Intent struct {
	Left  bool
	Right bool
}

// InputState tracks which directions are currently held.
// Writes come from key events in delivery order, the last write before a
// step wins. Setting a flag to its current value is a no-op.
type InputState struct {
	left  bool
	right bool
}

// NewInputState creates a tracker with nothing held.
func NewInputState() *InputState {
	return &InputState{}
}

// SetLeft records whether the left direction is held.
func (s *InputState) SetLeft(held bool) {
	s.left = held
}

// SetRight records whether the right direction is held.
func (s *InputState) SetRight(held bool) {
	s.right = held
}

// LeftHeld reports whether left is held.
func (s *InputState) LeftHeld() bool {
	return s.left
}

// RightHeld reports whether right is held.
func (s *InputState) RightHeld() bool {
	return s.right
}

// Apply updates the tracker from a key event.
// Keys other than left/right are ignored.
func (s *InputState) Apply(ev KeyEvent) {
	switch ev.Key {
	case KeyLeft:
		s.SetLeft(ev.Down)
	case KeyRight:
		s.SetRight(ev.Down)
	}
}

// Intent returns the current intent as a value.
func (s *InputState) Intent() Intent {
	return Intent{Left: s.left, Right: s.right}
}

// Release clears both directions.
func (s *InputState) Release() {
	s.left = false
	s.right = false
}
