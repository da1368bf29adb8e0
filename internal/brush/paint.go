package brush

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/internal/logger"
)

// Paint computes the stroke against mesh and applies it in place.
func Paint(mesh *geometry.Mesh, s Stroke) Diff {
	diff := Compute(mesh.Positions, mesh.Colors, s)
	Apply(mesh.Colors, diff)

	logger.Debug("brush stroke",
		zap.Float32("radius", s.Radius),
		zap.Int("changed", len(diff)),
	)
	return diff
}
