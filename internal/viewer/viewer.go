// Package viewer wires mesh building, picking, painting, paint sync and
// input arbitration into one mountable paint view.
package viewer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/camera"
	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/internal/input"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/paintsync"
	"github.com/Faultbox/meshpaint/internal/picking"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// ErrNotMounted is returned by operations that need a mesh.
var ErrNotMounted = errors.New("viewer not mounted")

// Cursor is the pointer shape the host should show.
type Cursor int

const (
	CursorGrab Cursor = iota
	CursorCrosshair
)

func (c Cursor) String() string {
	if c == CursorCrosshair {
		return "crosshair"
	}
	return "grab"
}

// Viewer owns one paintable mesh for its mounted lifetime. It is driven
// from a single goroutine.
type Viewer struct {
	opts   Options
	sync   *paintsync.Sync
	camera *camera.OrbitCamera
	input  *input.Controller
	brush  brush.State

	ctx      context.Context
	mesh     *geometry.Mesh
	picker   *picking.Picker
	viewport picking.Viewport
	angle    float32
	dirty    bool
	lastHit  *picking.Hit
}

// New creates an unmounted viewer backed by store.
func New(opts Options, store paintsync.Store) *Viewer {
	if opts.Primitives == nil {
		opts.Primitives = geometry.Robot
	}
	v := &Viewer{
		opts:     opts,
		sync:     paintsync.New(store, opts.ModelID),
		camera:   camera.NewOrbitCamera(),
		brush:    opts.Brush,
		ctx:      context.Background(),
		viewport: picking.Viewport{Width: 1, Height: 1},
	}
	v.brush.Size = brush.ClampSize(v.brush.Size)
	v.input = input.NewController(v.camera, v)
	return v
}

// Mount builds the mesh and replays stored edits. A store failure is
// logged and the mesh stays unpainted; it does not fail the mount.
func (v *Viewer) Mount(ctx context.Context) error {
	v.ctx = ctx
	v.mesh = geometry.Merge(v.opts.Primitives(), geometry.MergeOptions{})
	if err := v.mesh.Validate(); err != nil {
		v.mesh = nil
		return err
	}
	v.picker = picking.NewPicker(v.mesh, v.opts.UseBVH)

	if _, err := v.sync.Mount(ctx, v.mesh); err != nil {
		logger.Warn("mounting without stored paint", zap.Error(err))
	}
	v.dirty = true

	logger.Info("viewer mounted",
		zap.String("model", v.opts.ModelID),
		zap.Int("vertices", v.mesh.VertexCount()),
		zap.Int("triangles", v.mesh.TriangleCount()),
		zap.Bool("bvh", v.picker.BVH != nil),
	)
	return nil
}

// Unmount drops the mesh. Stored edits are untouched.
func (v *Viewer) Unmount() {
	v.input.SetPaintMode(false)
	v.sync.Unmount()
	v.mesh = nil
	v.picker = nil
	v.lastHit = nil
	logger.Info("viewer unmounted", zap.String("model", v.opts.ModelID))
}

// Mounted reports whether a mesh is live.
func (v *Viewer) Mounted() bool {
	return v.mesh != nil
}

// Reload re-applies the store's edits, e.g. after an external change.
func (v *Viewer) Reload(ctx context.Context) error {
	if v.mesh == nil {
		return ErrNotMounted
	}
	if _, err := v.sync.Reload(ctx); err != nil {
		return err
	}
	v.dirty = true
	return nil
}

// SetBrush sets the brush from its UI form. A malformed color paints
// neutral gray.
func (v *Viewer) SetBrush(hex string, size int) {
	v.brush = brush.State{Color: brushColor(hex), Size: brush.ClampSize(size)}
}

// Brush returns the current brush.
func (v *Viewer) Brush() brush.State {
	return v.brush
}

// SetPaintMode toggles painting; the camera is disabled while it is on.
func (v *Viewer) SetPaintMode(on bool) {
	v.input.SetPaintMode(on)
}

// PaintMode reports whether paint mode is on.
func (v *Viewer) PaintMode() bool {
	return v.input.PaintMode()
}

// SetViewport sets the pixel rectangle the scene is drawn into.
func (v *Viewer) SetViewport(vp picking.Viewport) {
	v.viewport = vp
}

// Viewport returns the current viewport.
func (v *Viewer) Viewport() picking.Viewport {
	return v.viewport
}

// HandlePointer routes a pointer event through the input controller.
func (v *Viewer) HandlePointer(ev input.PointerEvent) {
	v.input.Handle(ev)
}

// PaintAt casts the pixel into the scene and paints at the nearest hit.
// Misses are silent no-ops.
func (v *Viewer) PaintAt(x, y float32) {
	if v.mesh == nil {
		return
	}

	hit, ok := v.picker.Pick(v.Camera(), v.viewport, x, y, v.ModelMatrix())
	if !ok {
		v.lastHit = nil
		return
	}
	v.lastHit = &hit

	diff := brush.Paint(v.mesh, v.brush.Stroke(hit.LocalPoint))
	if diff.Empty() {
		return
	}
	v.dirty = true
	v.sync.Forward(v.ctx, diff)
}

// LastHit returns the most recent paint hit, if the last cast hit.
func (v *Viewer) LastHit() (picking.Hit, bool) {
	if v.lastHit == nil {
		return picking.Hit{}, false
	}
	return *v.lastHit, true
}

// Update advances auto-rotation, which pauses while painting.
func (v *Viewer) Update(dt float32) {
	if v.opts.AutoRotate && !v.input.PaintMode() {
		v.angle += dt * v.opts.RotateSpeed
	}
}

// Angle returns the current auto-rotation about Y.
func (v *Viewer) Angle() float32 {
	return v.angle
}

// ModelMatrix returns the mesh world transform.
func (v *Viewer) ModelMatrix() math.Mat4 {
	return math.RotateY(v.angle)
}

// Camera returns the current view state for picking and rendering.
func (v *Viewer) Camera() picking.Camera {
	return picking.Camera{
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(v.viewport.Aspect()),
	}
}

// OrbitCamera exposes the camera controller.
func (v *Viewer) OrbitCamera() *camera.OrbitCamera {
	return v.camera
}

// Cursor returns the pointer shape for the current mode.
func (v *Viewer) Cursor() Cursor {
	if v.input.PaintMode() {
		return CursorCrosshair
	}
	return CursorGrab
}

// Mesh returns the live mesh, or nil when unmounted.
func (v *Viewer) Mesh() *geometry.Mesh {
	return v.mesh
}

// Edits returns a copy of the live edit map.
func (v *Viewer) Edits() paintsync.EditMap {
	return v.sync.Edits()
}

// SyncStats returns store forwarding counters.
func (v *Viewer) SyncStats() paintsync.Stats {
	return v.sync.Stats()
}

// Dirty reports whether colors changed since ClearDirty.
func (v *Viewer) Dirty() bool {
	return v.dirty
}

// ClearDirty marks the colors as uploaded.
func (v *Viewer) ClearDirty() {
	v.dirty = false
}
