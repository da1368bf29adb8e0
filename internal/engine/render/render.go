// Package render draws a vertex-colored mesh with OpenGL 4.1.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// Renderer owns the GL program and the buffers of one uploaded mesh.
// Must be created and used on the thread that owns the GL context.
type Renderer struct {
	program uint32

	locModel      int32
	locView       int32
	locProjection int32
	locLightDir   int32
	locAmbient    int32

	vao        uint32
	positions  uint32
	normals    uint32
	colors     uint32
	ebo        uint32
	indexCount int32
	vertexSize int

	light Light
}

// New initializes OpenGL and compiles the mesh shader.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := compileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r := &Renderer{
		program:       program,
		locModel:      uniform(program, "uModel"),
		locView:       uniform(program, "uView"),
		locProjection: uniform(program, "uProjection"),
		locLightDir:   uniform(program, "uLightDir"),
		locAmbient:    uniform(program, "uAmbient"),
		light:         DefaultLight(),
	}
	logger.Debug("shader program created", zap.Uint32("program", program))
	return r, nil
}

// Upload replaces the GPU copy of the mesh. Colors are uploaded as a
// dynamic buffer so UpdateColors can rewrite them every frame.
func (r *Renderer) Upload(mesh *geometry.Mesh) {
	r.releaseMesh()
	if mesh.VertexCount() == 0 || len(mesh.Indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	r.positions = attribBuffer(0, mesh.Positions, gl.STATIC_DRAW)
	r.normals = attribBuffer(1, mesh.Normals, gl.STATIC_DRAW)
	r.colors = attribBuffer(2, mesh.Colors, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(len(mesh.Indices))
	r.vertexSize = len(mesh.Colors)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int32("indices", r.indexCount),
	)
}

func attribBuffer(location uint32, data []float32, usage uint32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), usage)
	gl.VertexAttribPointer(location, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(location)
	return vbo
}

// UpdateColors re-uploads the color buffer of the current mesh.
func (r *Renderer) UpdateColors(colors []float32) {
	if r.colors == 0 || len(colors) != r.vertexSize {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colors)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(colors)*4, unsafe.Pointer(&colors[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Resize sets the GL viewport in drawable pixels.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetLight replaces the scene light used by Draw.
func (r *Renderer) SetLight(l Light) {
	r.light = l
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded mesh.
func (r *Renderer) Draw(model, view, projection math.Mat4) {
	if r.vao == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.Uniform3f(r.locLightDir, r.light.Direction.X, r.light.Direction.Y, r.light.Direction.Z)
	gl.Uniform1f(r.locAmbient, r.light.Ambient)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (r *Renderer) releaseMesh() {
	for _, b := range []*uint32{&r.positions, &r.normals, &r.colors, &r.ebo} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.indexCount = 0
	r.vertexSize = 0
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.releaseMesh()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
