package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagStore      = flag.String("store", "", "Paint store backend (json, sqlite, memory)")
	flagModel      = flag.String("model", "", "Model ID whose paint edits are loaded")
	flagBrushColor = flag.String("brush-color", "", "Initial brush color (#rrggbb)")
	flagBrushSize  = flag.Int("brush-size", 0, "Initial brush size (1-100)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStore != "" {
		cfg.Paint.Store = *flagStore
	}
	if *flagModel != "" {
		cfg.Paint.ModelID = *flagModel
	}
	if *flagBrushColor != "" {
		cfg.Brush.Color = *flagBrushColor
	}
	if *flagBrushSize > 0 {
		cfg.Brush.Size = *flagBrushSize
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
