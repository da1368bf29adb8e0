package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// Hit is the nearest ray-mesh intersection.
type Hit struct {
	TriangleIndex int
	WorldPoint    math.Vec3
	LocalPoint    math.Vec3
	Distance      float32 // world-space distance from the ray origin
}

// Raycast finds the nearest triangle of mesh hit by the world-space ray.
// model is the mesh world transform. The test runs in local space so the
// reported LocalPoint is in the same units as the mesh positions.
// Equal distances resolve to the lower triangle index.
func Raycast(mesh *geometry.Mesh, ray Ray, model math.Mat4) (Hit, bool) {
	local := ray.Transform(model.Inverse())

	best := float32(math32.MaxFloat32)
	bestTri := -1
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		a, b, c := mesh.Triangle(tri)
		if t, ok := IntersectTriangle(local, a, b, c); ok && t < best {
			best = t
			bestTri = tri
		}
	}
	if bestTri < 0 {
		return Hit{}, false
	}
	return makeHit(ray, local, model, bestTri, best), true
}

func makeHit(world, local Ray, model math.Mat4, tri int, t float32) Hit {
	localPoint := local.At(t)
	worldPoint := model.TransformPoint(localPoint)
	return Hit{
		TriangleIndex: tri,
		WorldPoint:    worldPoint,
		LocalPoint:    localPoint,
		Distance:      worldPoint.Distance(world.Origin),
	}
}

// Picker casts pointer positions against one mesh, using a BVH when set.
type Picker struct {
	Mesh *geometry.Mesh
	BVH  *BVH
}

// NewPicker returns a picker for mesh. With useBVH the hierarchy is built
// once up front.
func NewPicker(mesh *geometry.Mesh, useBVH bool) *Picker {
	p := &Picker{Mesh: mesh}
	if useBVH {
		p.BVH = BuildBVH(mesh)
	}
	return p
}

// Cast intersects a world ray with the mesh.
func (p *Picker) Cast(ray Ray, model math.Mat4) (Hit, bool) {
	if p.BVH != nil {
		return p.BVH.Raycast(ray, model)
	}
	return Raycast(p.Mesh, ray, model)
}

// Pick resolves a pixel position through the camera to the nearest hit.
func (p *Picker) Pick(cam Camera, vp Viewport, px, py float32, model math.Mat4) (Hit, bool) {
	ndc := PointerToNDC(px, py, vp)
	ray := ScreenToRay(ndc, cam.InverseViewProjection())
	return p.Cast(ray, model)
}
