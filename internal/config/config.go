// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Brush   BrushConfig   `yaml:"brush"`
	Paint   PaintConfig   `yaml:"paint"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// BrushConfig holds the initial brush.
type BrushConfig struct {
	Color string `yaml:"color"` // #rrggbb
	Size  int    `yaml:"size"`  // 1-100
}

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// PaintConfig selects where paint edits live.
type PaintConfig struct {
	ModelID    string `yaml:"model_id"`
	Store      string `yaml:"store"`
	JSONPath   string `yaml:"json_path"`
	SQLitePath string `yaml:"sqlite_path"`
	Watch      bool   `yaml:"watch"` // reload when the JSON file changes on disk
}

// ViewerConfig holds scene behaviour.
type ViewerConfig struct {
	AutoRotate  bool    `yaml:"auto_rotate"`
	RotateSpeed float32 `yaml:"rotate_speed"` // radians per second
	UseBVH      bool    `yaml:"use_bvh"`

	LightAzimuth   float32 `yaml:"light_azimuth"`   // degrees around +Y from +Z
	LightElevation float32 `yaml:"light_elevation"` // degrees above the horizon
	Ambient        float32 `yaml:"ambient"`         // 0-1
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Mesh Paint",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Brush: BrushConfig{
			Color: "#4caf50",
			Size:  50,
		},
		Paint: PaintConfig{
			ModelID:    "robot",
			Store:      StoreJSON,
			JSONPath:   "paint.json",
			SQLitePath: "paint.db",
		},
		Viewer: ViewerConfig{
			AutoRotate:  true,
			RotateSpeed: 0.3,
			UseBVH:      true,

			LightAzimuth:   35,
			LightElevation: 50,
			Ambient:        0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
