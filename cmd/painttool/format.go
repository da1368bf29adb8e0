package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/meshpaint/pkg/math"
)

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// parseVec reads "x,y,z".
func parseVec(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("point %q: want x,y,z", s)
	}
	var xyz [3]float32
	for i, p := range parts {
		f, err := parseFloat(p)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("point %q: %w", s, err)
		}
		xyz[i] = f
	}
	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return float32(f), nil
}
