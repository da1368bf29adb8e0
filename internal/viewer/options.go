package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/paintsync"
)

// Options configures a Viewer.
type Options struct {
	ModelID     string
	Primitives  func() []geometry.Primitive
	Brush       brush.State
	UseBVH      bool
	AutoRotate  bool
	RotateSpeed float32 // radians per second
}

// DefaultOptions shows the demo robot with a green brush.
func DefaultOptions() Options {
	return Options{
		ModelID:     "robot",
		Primitives:  geometry.Robot,
		Brush:       brush.State{Color: [3]float32{0x4c / 255.0, 0xaf / 255.0, 0x50 / 255.0}, Size: 50},
		UseBVH:      true,
		AutoRotate:  true,
		RotateSpeed: 0.3,
	}
}

// OptionsFromConfig resolves the configured model and brush.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	prims, ok := geometry.Models[cfg.Paint.ModelID]
	if !ok {
		return Options{}, fmt.Errorf("unknown model %q", cfg.Paint.ModelID)
	}
	return Options{
		ModelID:     cfg.Paint.ModelID,
		Primitives:  prims,
		Brush:       brush.State{Color: brushColor(cfg.Brush.Color), Size: brush.ClampSize(cfg.Brush.Size)},
		UseBVH:      cfg.Viewer.UseBVH,
		AutoRotate:  cfg.Viewer.AutoRotate,
		RotateSpeed: cfg.Viewer.RotateSpeed,
	}, nil
}

// brushColor parses a brush hex color, falling back to neutral gray.
func brushColor(hex string) [3]float32 {
	c, err := paintsync.ParseHex(hex)
	if err != nil {
		logger.Warn("invalid brush color, using gray",
			zap.String("color", hex),
			zap.Error(err),
		)
		return paintsync.NeutralGray.Array()
	}
	return c.Array()
}
