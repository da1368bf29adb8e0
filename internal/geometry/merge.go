package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// MergeOptions contains options for Merge.
type MergeOptions struct {
	// BaseColor is the initial vertex color. Zero value means DefaultColor.
	BaseColor *[3]float32
	// RecomputeNormals always rebuilds smooth normals, even when every
	// primitive carries its own.
	RecomputeNormals bool
}

// Merge combines primitives into one mesh in the given order.
//
// Vertex i of primitive k lands at global index sum(VertexCount(0..k-1)) + i,
// so the same list always yields the same indices. Primitives that cannot be
// merged are skipped and listed in Mesh.Skipped; every later primitive then
// shifts down, which invalidates previously stored vertex indices.
func Merge(prims []Primitive, opts MergeOptions) *Mesh {
	mesh := &Mesh{}

	accepted := make([]int, 0, len(prims))
	totalVertices, totalIndices := 0, 0
	needNormals := opts.RecomputeNormals

	for i := range prims {
		p := &prims[i]
		if reason := checkPrimitive(p); reason != "" {
			logger.Warn("skipping primitive",
				zap.Int("index", i),
				zap.String("name", p.Name),
				zap.String("reason", reason),
			)
			mesh.Skipped = append(mesh.Skipped, Skipped{Index: i, Name: p.Name, Reason: reason})
			continue
		}
		accepted = append(accepted, i)
		totalVertices += p.VertexCount()
		totalIndices += p.IndexCount()
		if !p.HasNormals() {
			needNormals = true
		}
	}

	mesh.Positions = make([]float32, totalVertices*3)
	mesh.Normals = make([]float32, totalVertices*3)
	mesh.Colors = make([]float32, totalVertices*3)
	mesh.Indices = make([]uint32, 0, totalIndices)
	mesh.Parts = make([]Part, 0, len(accepted))

	vertexOffset := 0
	for _, i := range accepted {
		p := &prims[i]
		count := p.VertexCount()

		copy(mesh.Positions[vertexOffset*3:], p.Positions)
		if p.HasNormals() {
			copy(mesh.Normals[vertexOffset*3:], p.Normals)
		}

		part := Part{
			Name:        p.Name,
			FirstVertex: vertexOffset,
			VertexCount: count,
			FirstIndex:  len(mesh.Indices),
			IndexCount:  p.IndexCount(),
		}

		base := uint32(vertexOffset)
		if p.Indices != nil {
			for _, idx := range p.Indices {
				mesh.Indices = append(mesh.Indices, idx+base)
			}
		} else {
			for v := 0; v < count; v++ {
				mesh.Indices = append(mesh.Indices, uint32(v)+base)
			}
		}

		mesh.Parts = append(mesh.Parts, part)
		vertexOffset += count
	}

	base := DefaultColor
	if opts.BaseColor != nil {
		base = *opts.BaseColor
	}
	mesh.ResetColors(base)

	if needNormals {
		ComputeNormals(mesh)
	}
	mesh.Bounds = ComputeBounds(mesh.Positions)

	logger.Debug("merged primitives",
		zap.Int("parts", len(mesh.Parts)),
		zap.Int("skipped", len(mesh.Skipped)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return mesh
}

// checkPrimitive returns why p cannot be merged, or "" if it can.
func checkPrimitive(p *Primitive) string {
	if len(p.Positions) == 0 {
		return "missing position attribute"
	}
	if len(p.Positions)%3 != 0 {
		return "position attribute is not xyz triples"
	}
	n := p.VertexCount()
	if p.Indices == nil {
		if n%3 != 0 {
			return "non-indexed vertex count is not a multiple of 3"
		}
		return ""
	}
	if len(p.Indices)%3 != 0 {
		return "index count is not a multiple of 3"
	}
	for _, idx := range p.Indices {
		if int(idx) >= n {
			return "index references a vertex outside the primitive"
		}
	}
	return ""
}

// ComputeNormals rebuilds smooth per-vertex normals by accumulating
// area-weighted face normals into each corner and normalizing.
func ComputeNormals(m *Mesh) {
	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([]float32, len(m.Positions))
	}
	for i := range m.Normals {
		m.Normals[i] = 0
	}

	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := int(m.Indices[t*3]), int(m.Indices[t*3+1]), int(m.Indices[t*3+2])
		a, b, c := m.Position(ia), m.Position(ib), m.Position(ic)

		// Unnormalized cross product weights by triangle area.
		n := b.Sub(a).Cross(c.Sub(a))
		for _, v := range [3]int{ia, ib, ic} {
			math.V3(m.Normals, v).Add(n).Put(m.Normals, v)
		}
	}

	for v := 0; v < m.VertexCount(); v++ {
		math.V3(m.Normals, v).Normalize().Put(m.Normals, v)
	}
}

// ComputeBounds returns the bounding box of packed xyz positions.
func ComputeBounds(positions []float32) Bounds {
	if len(positions) < 3 {
		return Bounds{}
	}
	b := Bounds{Min: math.V3(positions, 0), Max: math.V3(positions, 0)}
	for i := 1; i < len(positions)/3; i++ {
		p := math.V3(positions, i)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
