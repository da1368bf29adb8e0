// Package camera provides the orbit camera used outside paint mode.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/internal/input"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// Projection defaults.
const (
	DefaultFOV  = 50 * math32.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 100
)

// OrbitCamera orbits, pans and zooms around a target point.
type OrbitCamera struct {
	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from target
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	PanSensitivity  float32
	ZoomSensitivity float32

	// Projection
	FOV, Near, Far float32

	enabled  bool
	dragging dragMode
	lastX    float32
	lastY    float32
}

type dragMode int

const (
	dragNone dragMode = iota
	dragOrbit
	dragPan
)

// NewOrbitCamera creates a camera at (0, 0, 4) looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4,
		MinDistance:     2,
		MaxDistance:     10,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		PanSensitivity:  0.0015,
		ZoomSensitivity: 0.1,
		FOV:             DefaultFOV,
		Near:            DefaultNear,
		Far:             DefaultFar,
		enabled:         true,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)

	return c.Target.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for aspect (w/h).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// SetEnabled turns input handling on or off. Disabling ends any drag.
func (c *OrbitCamera) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.dragging = dragNone
	}
}

// Enabled reports whether the camera reacts to input.
func (c *OrbitCamera) Enabled() bool {
	return c.enabled
}

// HandlePointer applies a pointer event: primary drag orbits, secondary,
// middle or shift drag pans, and the wheel zooms.
func (c *OrbitCamera) HandlePointer(ev input.PointerEvent) {
	if !c.enabled {
		return
	}

	switch ev.Kind {
	case input.Down:
		switch {
		case ev.Button == input.Primary && !ev.Shift:
			c.dragging = dragOrbit
		case ev.Button != input.NoButton:
			c.dragging = dragPan
		}
		c.lastX, c.lastY = ev.X, ev.Y

	case input.Move:
		dx, dy := ev.X-c.lastX, ev.Y-c.lastY
		c.lastX, c.lastY = ev.X, ev.Y
		switch c.dragging {
		case dragOrbit:
			c.HandleDrag(dx, dy)
		case dragPan:
			c.HandlePan(dx, dy)
		}

	case input.Up, input.Leave:
		c.dragging = dragNone

	case input.Wheel:
		c.HandleZoom(ev.WheelDelta)
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandlePan moves the target in the view plane. Speed scales with distance.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.PanSensitivity
	c.Target = c.Target.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Reset returns to the initial view.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{}
	c.Distance = 4
	c.RotationX = 0
	c.RotationY = 0
	c.dragging = dragNone
}
