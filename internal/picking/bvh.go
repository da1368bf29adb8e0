package picking

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/pkg/math"
)

const (
	bvhLeafSize = 4
	// bvhPad keeps flat boxes (axis-aligned faces) from losing hits to
	// rounding between the slab and triangle tests.
	bvhPad = 1e-5
)

// bvhNode is a flattened tree node. Leaves have Count > 0 and reference
// tris[Start:Start+Count]; inner nodes reference two children.
type bvhNode struct {
	Bounds      AABB
	Left, Right int
	Start       int
	Count       int
}

// BVH is a bounding volume hierarchy over the triangles of a mesh.
// Positions are captured by reference: painting colors is fine, moving
// vertices requires a rebuild.
type BVH struct {
	mesh  *geometry.Mesh
	nodes []bvhNode
	tris  []int
}

// BuildBVH builds a hierarchy with median splits on the widest centroid axis.
func BuildBVH(mesh *geometry.Mesh) *BVH {
	n := mesh.TriangleCount()
	b := &BVH{
		mesh:  mesh,
		tris:  make([]int, n),
		nodes: make([]bvhNode, 0, 2*n/bvhLeafSize+1),
	}
	if n == 0 {
		return b
	}

	boxes := make([]AABB, n)
	centroids := make([]math.Vec3, n)
	for tri := 0; tri < n; tri++ {
		a, bb, c := mesh.Triangle(tri)
		boxes[tri] = EmptyAABB().Extend(a).Extend(bb).Extend(c)
		centroids[tri] = a.Add(bb).Add(c).Scale(1.0 / 3)
		b.tris[tri] = tri
	}

	b.build(0, n, boxes, centroids)
	return b
}

func (b *BVH) build(start, end int, boxes []AABB, centroids []math.Vec3) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{})

	bounds := EmptyAABB()
	centroidBounds := EmptyAABB()
	for _, tri := range b.tris[start:end] {
		bounds = bounds.Union(boxes[tri])
		centroidBounds = centroidBounds.Extend(centroids[tri])
	}
	node := bvhNode{Bounds: bounds.Pad(bvhPad)}

	if end-start <= bvhLeafSize {
		node.Start = start
		node.Count = end - start
		b.nodes[idx] = node
		return idx
	}

	axis := centroidBounds.WidestAxis()
	span := b.tris[start:end]
	sort.SliceStable(span, func(i, j int) bool {
		return centroids[span[i]].Axis(axis) < centroids[span[j]].Axis(axis)
	})
	mid := start + (end-start)/2

	node.Left = b.build(start, mid, boxes, centroids)
	node.Right = b.build(mid, end, boxes, centroids)
	b.nodes[idx] = node
	return idx
}

// NodeCount returns the number of nodes in the hierarchy.
func (b *BVH) NodeCount() int {
	return len(b.nodes)
}

// Raycast returns the same hit as the linear Raycast on the same mesh.
func (b *BVH) Raycast(ray Ray, model math.Mat4) (Hit, bool) {
	if len(b.nodes) == 0 {
		return Hit{}, false
	}
	local := ray.Transform(model.Inverse())

	best := float32(math32.MaxFloat32)
	bestTri := -1

	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[idx]

		tNear, _, ok := local.IntersectAABB(node.Bounds)
		if !ok || tNear > best {
			continue
		}

		if node.Count > 0 {
			for _, tri := range b.tris[node.Start : node.Start+node.Count] {
				a, bb, c := b.mesh.Triangle(tri)
				t, ok := IntersectTriangle(local, a, bb, c)
				if !ok {
					continue
				}
				if t < best || (t == best && tri < bestTri) {
					best = t
					bestTri = tri
				}
			}
			continue
		}
		stack = append(stack, node.Right, node.Left)
	}

	if bestTri < 0 {
		return Hit{}, false
	}
	return makeHit(ray, local, model, bestTri, best), true
}
