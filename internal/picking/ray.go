// Package picking provides screen-to-mesh ray casting.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
// Direction is normalized for world rays; Transform keeps the parametric
// scale so that t values agree between spaces.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform maps the ray by an affine matrix (e.g. the inverse model
// matrix to go from world to local space). Direction is not renormalized.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// Viewport is the on-screen rectangle the scene is drawn into, in pixels.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the pixel lies inside the viewport.
func (v Viewport) Contains(px, py float32) bool {
	return px >= v.X && py >= v.Y && px < v.X+v.Width && py < v.Y+v.Height
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// PointerToNDC converts pixel coordinates to normalized device coordinates
// (-1 to 1, Y up).
func PointerToNDC(px, py float32, vp Viewport) math.Vec2 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return math.Vec2{}
	}
	return math.Vec2{
		X: 2*(px-vp.X)/vp.Width - 1,
		Y: 1 - 2*(py-vp.Y)/vp.Height, // Flip Y
	}
}

// Camera is the read-only view state a pick is made against.
type Camera struct {
	View       math.Mat4
	Projection math.Mat4
}

// InverseViewProjection returns (Projection * View)^-1.
func (c Camera) InverseViewProjection() math.Mat4 {
	return c.Projection.Mul(c.View).Inverse()
}

// ScreenToRay converts an NDC coordinate to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	// Unproject near and far points
	nearWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	far := math.Vec3{X: farWorld[0], Y: farWorld[1], Z: farWorld[2]}

	return Ray{Origin: origin, Direction: far.Sub(origin).Normalize()}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyAABB returns an inverted box that any Extend call will overwrite.
func EmptyAABB() AABB {
	return AABB{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// Extend grows the box to contain p.
func (b AABB) Extend(p math.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Pad grows the box by eps on every side.
func (b AABB) Pad(eps float32) AABB {
	e := math.Vec3{X: eps, Y: eps, Z: eps}
	return AABB{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// WidestAxis returns 0, 1 or 2 for the longest extent.
func (b AABB) WidestAxis() int {
	size := b.Max.Sub(b.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > size.Axis(axis) {
		axis = 2
	}
	return axis
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. It returns the entry and exit parameters; tNear is
// negative when the ray starts inside the box.
func (r Ray) IntersectAABB(box AABB) (tNear, tFar float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}
