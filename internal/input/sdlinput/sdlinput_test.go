package sdlinput

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshpaint/internal/input"
)

func TestFromSDL(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   input.PointerEvent
		wantOK bool
	}{
		{
			name:   "left down",
			event:  &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20},
			want:   input.PointerEvent{Kind: input.Down, X: 10, Y: 20, Button: input.Primary, Buttons: input.Primary.Mask()},
			wantOK: true,
		},
		{
			name:   "right up",
			event:  &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT, X: 1, Y: 2},
			want:   input.PointerEvent{Kind: input.Up, X: 1, Y: 2, Button: input.Secondary},
			wantOK: true,
		},
		{
			name:   "drag with left held",
			event:  &sdl.MouseMotionEvent{X: 5, Y: 6, State: 1},
			want:   input.PointerEvent{Kind: input.Move, X: 5, Y: 6, Buttons: input.Primary.Mask()},
			wantOK: true,
		},
		{
			name:   "wheel",
			event:  &sdl.MouseWheelEvent{Y: 2},
			want:   input.PointerEvent{Kind: input.Wheel, WheelDelta: 2},
			wantOK: true,
		},
		{
			name:   "flipped wheel",
			event:  &sdl.MouseWheelEvent{Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			want:   input.PointerEvent{Kind: input.Wheel, WheelDelta: -2},
			wantOK: true,
		},
		{
			name:   "leave",
			event:  &sdl.WindowEvent{Event: sdl.WINDOWEVENT_LEAVE},
			want:   input.PointerEvent{Kind: input.Leave},
			wantOK: true,
		},
		{
			name:  "resize",
			event: &sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED},
		},
		{
			name:  "quit",
			event: &sdl.QuitEvent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromSDL(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("FromSDL() ok = %v, want %v", ok, tt.wantOK)
			}
			got.Shift = false
			if got != tt.want {
				t.Errorf("FromSDL() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
