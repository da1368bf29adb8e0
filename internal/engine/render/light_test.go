package render

import (
	"testing"

	"github.com/Faultbox/meshpaint/pkg/math"
)

func TestSunLight(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               math.Vec3
	}{
		{"overhead", 0, 90, math.Vec3{Y: -1}},
		{"front horizon", 0, 0, math.Vec3{Z: -1}},
		{"right horizon", 90, 0, math.Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunLight(tt.azimuth, tt.elevation, 0.5).Direction
			if got.Distance(tt.want) > 1e-5 {
				t.Errorf("Direction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultLightFromAbove(t *testing.T) {
	l := DefaultLight()
	if l.Direction.Y >= 0 {
		t.Errorf("Direction.Y = %v, want the light to point down", l.Direction.Y)
	}
	if d := l.Direction.Length(); d < 0.9999 || d > 1.0001 {
		t.Errorf("Direction length = %v, want 1", d)
	}
}
