package picking

import "github.com/Faultbox/meshpaint/pkg/math"

// detEpsilon rejects rays parallel to the triangle plane.
const detEpsilon = 1e-10

// IntersectTriangle is a two-sided Möller–Trumbore test. It returns the ray
// parameter of the hit; only hits in front of the origin (t > 0) count.
func IntersectTriangle(r Ray, a, b, c math.Vec3) (t float32, ok bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if det > -detEpsilon && det < detEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(q) * inv
	if t <= 0 {
		return 0, false
	}
	return t, true
}
