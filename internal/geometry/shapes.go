package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// The generators below emit vertices in the same order as the Three.js
// BoxGeometry, SphereGeometry and CylinderGeometry builders, so paint data
// recorded against those layouts addresses the same vertices here.

// Box returns an axis-aligned box centered at the origin.
// Each face has its own 4 vertices: 24 vertices, 36 indices.
func Box(width, height, depth float32) Primitive {
	b := &shapeBuilder{}
	b.boxFace(2, 1, 0, -1, -1, depth, height, width)  // +x
	b.boxFace(2, 1, 0, 1, -1, depth, height, -width)  // -x
	b.boxFace(0, 2, 1, 1, 1, width, depth, height)    // +y
	b.boxFace(0, 2, 1, 1, -1, width, depth, -height)  // -y
	b.boxFace(0, 1, 2, 1, -1, width, height, depth)   // +z
	b.boxFace(0, 1, 2, -1, -1, width, height, -depth) // -z
	return b.primitive("box")
}

// Sphere returns a UV sphere centered at the origin.
// It has (widthSegments+1)*(heightSegments+1) vertices; the pole rows are
// duplicated per segment and the seam column is duplicated.
func Sphere(radius float32, widthSegments, heightSegments int) Primitive {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	b := &shapeBuilder{}
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)

			p := math.Vec3{
				X: -radius * cosPhi * sinTheta,
				Y: radius * cosTheta,
				Z: radius * sinPhi * sinTheta,
			}
			row[ix] = b.vertex(p, p.Normalize())
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// Skip the degenerate triangle at each pole.
			if iy != 0 {
				b.triangle(a, bb, d)
			}
			if iy != heightSegments-1 {
				b.triangle(bb, c, d)
			}
		}
	}
	return b.primitive("sphere")
}

// Cylinder returns a (possibly tapered) closed cylinder centered at the
// origin along Y. Vertex order is torso, then the top cap, then the bottom
// cap; a cap with zero radius is omitted.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) Primitive {
	if radialSegments < 3 {
		radialSegments = 3
	}

	b := &shapeBuilder{}
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Torso with a single height segment: two rings.
	rings := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		radius := float32(y)*(radiusBottom-radiusTop) + radiusTop
		ring := make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sincos(theta)
			p := math.Vec3{X: radius * sin, Y: -float32(y)*height + halfHeight, Z: radius * cos}
			n := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
			ring[x] = b.vertex(p, n)
		}
		rings[y] = ring
	}
	for x := 0; x < radialSegments; x++ {
		a, bb := rings[0][x], rings[1][x]
		c, d := rings[1][x+1], rings[0][x+1]
		b.triangle(a, bb, d)
		b.triangle(bb, c, d)
	}

	if radiusTop > 0 {
		b.cap(true, radiusTop, halfHeight, radialSegments)
	}
	if radiusBottom > 0 {
		b.cap(false, radiusBottom, halfHeight, radialSegments)
	}
	return b.primitive("cylinder")
}

type shapeBuilder struct {
	positions []float32
	normals   []float32
	indices   []uint32
}

func (b *shapeBuilder) vertex(p, n math.Vec3) uint32 {
	idx := uint32(len(b.positions) / 3)
	b.positions = append(b.positions, p.X, p.Y, p.Z)
	b.normals = append(b.normals, n.X, n.Y, n.Z)
	return idx
}

func (b *shapeBuilder) triangle(a, c, d uint32) {
	b.indices = append(b.indices, a, c, d)
}

// boxFace emits one single-segment box face. u, v, w are the axes the face
// spans and faces along; udir/vdir flip the in-plane axes.
func (b *shapeBuilder) boxFace(u, v, w int, udir, vdir, width, height, depth float32) {
	start := uint32(len(b.positions) / 3)
	var normal [3]float32
	if depth > 0 {
		normal[w] = 1
	} else {
		normal[w] = -1
	}

	for iy := 0; iy <= 1; iy++ {
		y := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2
			var p [3]float32
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = depth / 2
			b.vertex(math.Vec3{X: p[0], Y: p[1], Z: p[2]}, math.Vec3{X: normal[0], Y: normal[1], Z: normal[2]})
		}
	}

	a := start
	bb := start + 2
	c := start + 3
	d := start + 1
	b.triangle(a, bb, d)
	b.triangle(bb, c, d)
}

func (b *shapeBuilder) cap(top bool, radius, halfHeight float32, segments int) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	n := math.Vec3{Y: sign}

	centerStart := uint32(len(b.positions) / 3)
	for x := 1; x <= segments; x++ {
		b.vertex(math.Vec3{Y: halfHeight * sign}, n)
	}
	centerEnd := uint32(len(b.positions) / 3)

	for x := 0; x <= segments; x++ {
		theta := float32(x) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		b.vertex(math.Vec3{X: radius * sin, Y: halfHeight * sign, Z: radius * cos}, n)
	}

	for x := uint32(0); x < uint32(segments); x++ {
		c := centerStart + x
		i := centerEnd + x
		if top {
			b.triangle(i, i+1, c)
		} else {
			b.triangle(i+1, i, c)
		}
	}
}

func (b *shapeBuilder) primitive(name string) Primitive {
	return Primitive{
		Name:      name,
		Positions: b.positions,
		Normals:   b.normals,
		Indices:   b.indices,
	}
}
