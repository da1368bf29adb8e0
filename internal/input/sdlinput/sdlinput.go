// Package sdlinput translates SDL2 events into input pointer events.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshpaint/internal/input"
)

// FromSDL translates an SDL2 event into a pointer event. It returns false
// for events that are not pointer related.
func FromSDL(event sdl.Event) (input.PointerEvent, bool) {
	switch e := event.(type) {
	case *sdl.MouseMotionEvent:
		return input.PointerEvent{
			Kind:    input.Move,
			X:       float32(e.X),
			Y:       float32(e.Y),
			Buttons: maskFromSDL(e.State),
			Shift:   shiftHeld(),
		}, true

	case *sdl.MouseButtonEvent:
		ev := input.PointerEvent{
			X:      float32(e.X),
			Y:      float32(e.Y),
			Button: buttonFromSDL(e.Button),
			Shift:  shiftHeld(),
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Kind = input.Down
			ev.Buttons = ev.Button.Mask()
		} else {
			ev.Kind = input.Up
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		delta := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		return input.PointerEvent{Kind: input.Wheel, WheelDelta: delta}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_LEAVE {
			return input.PointerEvent{Kind: input.Leave}, true
		}
	}
	return input.PointerEvent{}, false
}

func buttonFromSDL(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.Primary
	case sdl.BUTTON_MIDDLE:
		return input.Middle
	case sdl.BUTTON_RIGHT:
		return input.Secondary
	}
	return input.NoButton
}

func maskFromSDL(state uint32) input.ButtonMask {
	var m input.ButtonMask
	for _, b := range []uint8{sdl.BUTTON_LEFT, sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT} {
		if state&(1<<(b-1)) != 0 {
			m |= buttonFromSDL(b).Mask()
		}
	}
	return m
}

func shiftHeld() bool {
	return sdl.GetModState()&sdl.KMOD_SHIFT != 0
}
