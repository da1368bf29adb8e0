// Package input arbitrates pointer events between painting and the camera.
package input

// Kind is the pointer event type.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Leave
	Wheel
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	case Wheel:
		return "wheel"
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button uint8

const (
	NoButton Button = iota
	Primary
	Middle
	Secondary
)

// ButtonMask is a set of held buttons.
type ButtonMask uint8

// Mask returns the mask bit for b.
func (b Button) Mask() ButtonMask {
	if b == NoButton {
		return 0
	}
	return 1 << (b - 1)
}

// Has reports whether b is held.
func (m ButtonMask) Has(b Button) bool {
	return b != NoButton && m&b.Mask() != 0
}

// PointerEvent is a backend-independent pointer event in window pixels.
type PointerEvent struct {
	Kind       Kind
	X, Y       float32
	Button     Button     // the button that changed, for Down and Up
	Buttons    ButtonMask // buttons held after the event
	WheelDelta float32    // positive scrolls away from the user
	Shift      bool
}
