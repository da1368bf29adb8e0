package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/internal/input"
	"github.com/Faultbox/meshpaint/pkg/math"
)

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	if got := c.Position(); got != (math.Vec3{Z: 4}) {
		t.Errorf("Position() = %v, want (0,0,4)", got)
	}
	if !c.Enabled() {
		t.Error("camera should start enabled")
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewOrbitCamera()
	p := c.ViewMatrix().TransformPoint(math.Vec3{})
	if math32.Abs(p.X) > 1e-5 || math32.Abs(p.Y) > 1e-5 || math32.Abs(p.Z+4) > 1e-5 {
		t.Errorf("target in view space = %v, want (0,0,-4)", p)
	}
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 50; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != 2 {
		t.Errorf("Distance after zooming in = %v, want 2", c.Distance)
	}

	for i := 0; i < 50; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != 10 {
		t.Errorf("Distance after zooming out = %v, want 10", c.Distance)
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
}

func TestHandlePointerOrbit(t *testing.T) {
	c := NewOrbitCamera()
	c.HandlePointer(input.PointerEvent{Kind: input.Down, Button: input.Primary, X: 100, Y: 100})
	c.HandlePointer(input.PointerEvent{Kind: input.Move, X: 200, Y: 100, Buttons: input.Primary.Mask()})

	if c.RotationY != -100*c.DragSensitivity {
		t.Errorf("RotationY = %v, want %v", c.RotationY, -100*c.DragSensitivity)
	}

	c.HandlePointer(input.PointerEvent{Kind: input.Up, Button: input.Primary})
	before := c.RotationY
	c.HandlePointer(input.PointerEvent{Kind: input.Move, X: 300, Y: 100})
	if c.RotationY != before {
		t.Error("move after release should not orbit")
	}
}

func TestHandlePointerPan(t *testing.T) {
	c := NewOrbitCamera()
	c.HandlePointer(input.PointerEvent{Kind: input.Down, Button: input.Secondary, X: 0, Y: 0})
	c.HandlePointer(input.PointerEvent{Kind: input.Move, X: 100, Y: 0})

	if c.Target.X >= 0 {
		t.Errorf("Target = %v, want panned toward -x", c.Target)
	}
	if c.RotationY != 0 {
		t.Errorf("pan should not orbit, RotationY = %v", c.RotationY)
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	c := NewOrbitCamera()
	c.SetEnabled(false)

	c.HandlePointer(input.PointerEvent{Kind: input.Wheel, WheelDelta: 3})
	c.HandlePointer(input.PointerEvent{Kind: input.Down, Button: input.Primary})
	c.HandlePointer(input.PointerEvent{Kind: input.Move, X: 50})

	if c.Distance != 4 || c.RotationY != 0 {
		t.Errorf("disabled camera moved: distance %v, yaw %v", c.Distance, c.RotationY)
	}
}

func TestDisableEndsDrag(t *testing.T) {
	c := NewOrbitCamera()
	c.HandlePointer(input.PointerEvent{Kind: input.Down, Button: input.Primary})
	c.SetEnabled(false)
	c.SetEnabled(true)
	c.HandlePointer(input.PointerEvent{Kind: input.Move, X: 50})

	if c.RotationY != 0 {
		t.Errorf("RotationY = %v, want 0", c.RotationY)
	}
}
