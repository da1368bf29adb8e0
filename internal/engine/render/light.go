package render

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// Light is the single directional light plus flat ambient term.
type Light struct {
	Direction math.Vec3 // direction the light travels
	Ambient   float32   // 0-1
}

// DefaultLight shines from the upper front right, matching a key light
// at azimuth 35 degrees and elevation 50 degrees.
func DefaultLight() Light {
	return SunLight(35, 50, 0.5)
}

// SunLight builds a light from angles in degrees. Azimuth rotates around
// +Y starting at +Z; elevation is measured up from the horizon.
func SunLight(azimuth, elevation, ambient float32) Light {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180

	toSun := math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
	return Light{Direction: toSun.Scale(-1), Ambient: ambient}
}
