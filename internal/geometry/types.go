// Package geometry builds paintable indexed meshes from primitive shapes.
package geometry

import (
	"fmt"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// DefaultColor is the unpainted vertex color (light clay gray).
var DefaultColor = [3]float32{0.88, 0.88, 0.88}

// Primitive is a standalone shape contributed by one logical mesh part.
// Normals and Indices are optional.
type Primitive struct {
	Name      string
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex, nil to compute after merge
	Indices   []uint32  // 3 per triangle, nil for one index per vertex
}

// VertexCount returns the number of vertices in the primitive.
func (p *Primitive) VertexCount() int {
	return len(p.Positions) / 3
}

// IndexCount returns the number of indices the primitive contributes.
func (p *Primitive) IndexCount() int {
	if p.Indices == nil {
		return p.VertexCount()
	}
	return len(p.Indices)
}

// HasNormals reports whether the primitive carries a usable normal per vertex.
func (p *Primitive) HasNormals() bool {
	return len(p.Normals) > 0 && len(p.Normals) == len(p.Positions)
}

// Translate shifts every position and returns p for chaining.
func (p *Primitive) Translate(x, y, z float32) *Primitive {
	for i := 0; i+2 < len(p.Positions); i += 3 {
		p.Positions[i] += x
		p.Positions[i+1] += y
		p.Positions[i+2] += z
	}
	return p
}

// Part records where one merged primitive landed in the global index space.
type Part struct {
	Name        string
	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// Skipped describes a primitive that was left out of a merge.
type Skipped struct {
	Index  int // position in the input list
	Name   string
	Reason string
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is a merged, indexed, vertex-colored mesh.
// Colors always has 3 entries per vertex and every index is < VertexCount().
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Indices   []uint32

	Bounds  Bounds
	Parts   []Part
	Skipped []Skipped
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the local-space position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	return math.V3(m.Positions, i)
}

// Color returns the color of vertex i.
func (m *Mesh) Color(i int) [3]float32 {
	return [3]float32{m.Colors[i*3], m.Colors[i*3+1], m.Colors[i*3+2]}
}

// SetColor overwrites the color of vertex i.
func (m *Mesh) SetColor(i int, c [3]float32) {
	m.Colors[i*3] = c[0]
	m.Colors[i*3+1] = c[1]
	m.Colors[i*3+2] = c[2]
}

// Triangle returns the three vertex positions of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c math.Vec3) {
	i := t * 3
	return m.Position(int(m.Indices[i])), m.Position(int(m.Indices[i+1])), m.Position(int(m.Indices[i+2]))
}

// ResetColors fills the color buffer with c.
func (m *Mesh) ResetColors(c [3]float32) {
	for i := 0; i < m.VertexCount(); i++ {
		m.SetColor(i, c)
	}
}

// PartOf returns the part containing global vertex index v.
func (m *Mesh) PartOf(v int) (Part, bool) {
	for _, p := range m.Parts {
		if v >= p.FirstVertex && v < p.FirstVertex+p.VertexCount {
			return p, true
		}
	}
	return Part{}, false
}

// Validate checks the buffer invariants.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(m.Positions))
	}
	n := m.VertexCount()
	if len(m.Colors) != n*3 {
		return fmt.Errorf("colors length %d, want %d", len(m.Colors), n*3)
	}
	if len(m.Normals) != n*3 {
		return fmt.Errorf("normals length %d, want %d", len(m.Normals), n*3)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}
