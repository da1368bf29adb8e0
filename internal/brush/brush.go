// Package brush computes falloff-weighted vertex color edits.
//
// Painting is split into a pure step (Compute), which turns a Stroke into a
// Diff without touching the mesh, and a write step (Apply).
package brush

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// Brush size limits and the size-to-radius scale.
const (
	MinSize = 1
	MaxSize = 100

	// SizeScale converts a size of MaxSize into a local-space radius.
	SizeScale = 0.5

	// FalloffExponent gives square-root falloff: full strength at the center,
	// dropping quickly toward the edge.
	FalloffExponent = 0.5
)

// ClampSize limits size to [MinSize, MaxSize].
func ClampSize(size int) int {
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// RadiusFromSize maps the 1-100 brush size to a local-space radius.
func RadiusFromSize(size int) float32 {
	return float32(ClampSize(size)) / MaxSize * SizeScale
}

// State is the brush configuration owned by the UI.
type State struct {
	Color [3]float32
	Size  int
}

// Radius returns the local-space radius for the current size.
func (s State) Radius() float32 {
	return RadiusFromSize(s.Size)
}

// Stroke builds the paint command for a hit at center.
func (s State) Stroke(center math.Vec3) Stroke {
	return Stroke{
		Center:   center,
		Color:    s.Color,
		Radius:   s.Radius(),
		Exponent: FalloffExponent,
	}
}

// Stroke is one paint application at a point in mesh-local space.
type Stroke struct {
	Center   math.Vec3
	Color    [3]float32
	Radius   float32
	Exponent float32 // zero means FalloffExponent
}

// Falloff returns the brush weight at distance d, in [0, 1].
// It is 1 at the center and 0 at or beyond the radius.
func (s Stroke) Falloff(d float32) float32 {
	if s.Radius <= 0 || d >= s.Radius {
		return 0
	}
	t := 1 - d/s.Radius
	exp := s.Exponent
	if exp == 0 || exp == FalloffExponent {
		return math32.Sqrt(t)
	}
	return math32.Pow(t, exp)
}

// Change is the new color of one vertex.
type Change struct {
	Index int
	Color [3]float32
}

// Diff lists changed vertices in ascending index order.
type Diff []Change

// Empty reports whether the diff changes nothing.
func (d Diff) Empty() bool {
	return len(d) == 0
}

// Indices returns the changed vertex indices.
func (d Diff) Indices() []int {
	out := make([]int, len(d))
	for i, c := range d {
		out[i] = c.Index
	}
	return out
}

// Compute returns the color changes a stroke would make. positions and
// colors are packed xyz/rgb buffers; neither is modified.
//
// Each vertex within the radius is blended against its current color:
// new = old*(1-f) + brush*f. Vertices whose color would not change are left
// out, so a vertex exactly on the radius never appears.
func Compute(positions, colors []float32, s Stroke) Diff {
	if s.Radius <= 0 {
		return nil
	}

	var diff Diff
	n := len(positions) / 3
	for i := 0; i < n; i++ {
		d := math.V3(positions, i).Distance(s.Center)
		if d > s.Radius {
			continue
		}
		f := s.Falloff(d)
		if f == 0 {
			continue
		}

		old := [3]float32{colors[i*3], colors[i*3+1], colors[i*3+2]}
		var blended [3]float32
		for ch := 0; ch < 3; ch++ {
			blended[ch] = old[ch]*(1-f) + s.Color[ch]*f
		}
		if blended == old {
			continue
		}
		diff = append(diff, Change{Index: i, Color: blended})
	}
	return diff
}

// Apply writes the diff into a packed rgb color buffer.
func Apply(colors []float32, diff Diff) {
	for _, c := range diff {
		colors[c.Index*3] = c.Color[0]
		colors[c.Index*3+1] = c.Color[1]
		colors[c.Index*3+2] = c.Color[2]
	}
}
