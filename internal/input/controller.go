package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/logger"
)

// State is the paint stroke state.
type State int

const (
	Idle State = iota
	Painting
)

func (s State) String() string {
	if s == Painting {
		return "painting"
	}
	return "idle"
}

// CameraController is the orbit/pan/zoom consumer used outside paint mode.
type CameraController interface {
	SetEnabled(enabled bool)
	HandlePointer(ev PointerEvent)
}

// Painter performs one paint application at a pixel position.
type Painter interface {
	PaintAt(x, y float32)
}

// Controller routes pointer events either to the painter or to the camera.
// The two are never active together: entering paint mode disables the
// camera and leaving it ends any stroke.
type Controller struct {
	camera  CameraController
	painter Painter

	paintMode bool
	state     State
	strokes   int
}

// NewController starts in camera mode with the camera enabled.
func NewController(camera CameraController, painter Painter) *Controller {
	camera.SetEnabled(true)
	return &Controller{camera: camera, painter: painter}
}

// SetPaintMode switches between painting and camera control.
func (c *Controller) SetPaintMode(on bool) {
	if c.paintMode == on {
		return
	}
	c.paintMode = on
	if !on {
		c.endStroke()
	}
	c.camera.SetEnabled(!on)
	logger.Debug("paint mode changed", zap.Bool("paint_mode", on))
}

// PaintMode reports whether paint mode is active.
func (c *Controller) PaintMode() bool {
	return c.paintMode
}

// State returns the stroke state.
func (c *Controller) State() State {
	return c.state
}

// Strokes returns the number of strokes started.
func (c *Controller) Strokes() int {
	return c.strokes
}

// Handle processes one pointer event.
func (c *Controller) Handle(ev PointerEvent) {
	if !c.paintMode {
		c.camera.HandlePointer(ev)
		return
	}

	switch c.state {
	case Idle:
		if ev.Kind == Down && ev.Button == Primary {
			c.state = Painting
			c.strokes++
			c.painter.PaintAt(ev.X, ev.Y)
		}

	case Painting:
		switch ev.Kind {
		case Move:
			if ev.Buttons.Has(Primary) {
				c.painter.PaintAt(ev.X, ev.Y)
			} else {
				// The release happened outside our window.
				c.endStroke()
			}
		case Up, Leave:
			c.endStroke()
		}
	}
}

func (c *Controller) endStroke() {
	c.state = Idle
}
