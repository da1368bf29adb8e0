package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Brush.Color != "#4caf50" {
		t.Errorf("expected brush color #4caf50, got %s", cfg.Brush.Color)
	}
	if cfg.Brush.Size != 50 {
		t.Errorf("expected brush size 50, got %d", cfg.Brush.Size)
	}
	if cfg.Paint.Store != StoreJSON {
		t.Errorf("expected json store, got %s", cfg.Paint.Store)
	}
	if cfg.Viewer.RotateSpeed != 0.3 {
		t.Errorf("expected rotate speed 0.3, got %f", cfg.Viewer.RotateSpeed)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

brush:
  color: "#ff0000"
  size: 20

paint:
  model_id: "robot-v2"
  store: "sqlite"
  sqlite_path: "/tmp/edits.db"
  watch: true

viewer:
  auto_rotate: false
  use_bvh: false

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Brush.Color != "#ff0000" || cfg.Brush.Size != 20 {
		t.Errorf("unexpected brush %+v", cfg.Brush)
	}
	if cfg.Paint.ModelID != "robot-v2" || cfg.Paint.Store != StoreSQLite || !cfg.Paint.Watch {
		t.Errorf("unexpected paint %+v", cfg.Paint)
	}
	if cfg.Paint.JSONPath != "paint.json" {
		t.Errorf("unset keys should keep defaults, got json_path %q", cfg.Paint.JSONPath)
	}
	if cfg.Viewer.AutoRotate || cfg.Viewer.UseBVH {
		t.Errorf("unexpected viewer %+v", cfg.Viewer)
	}
	if cfg.Viewer.RotateSpeed != 0.3 {
		t.Errorf("expected default rotate speed kept, got %f", cfg.Viewer.RotateSpeed)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"memory store", func(c *Config) { c.Paint.Store = StoreMemory }, false},
		{"unknown store", func(c *Config) { c.Paint.Store = "redis" }, true},
		{"brush too small", func(c *Config) { c.Brush.Size = 0 }, true},
		{"brush too large", func(c *Config) { c.Brush.Size = 101 }, true},
		{"empty model", func(c *Config) { c.Paint.ModelID = "" }, true},
		{"ambient above one", func(c *Config) { c.Viewer.Ambient = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Brush.Size = 75
	cfg.Paint.Store = StoreSQLite
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Brush.Size != 75 || loaded.Paint.Store != StoreSQLite {
		t.Errorf("reloaded config lost values: %+v", loaded)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("brush:\n  size: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "store and model flags",
			setup: func() { *flagStore = StoreSQLite; *flagModel = "m-42" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Paint.Store != StoreSQLite || cfg.Paint.ModelID != "m-42" {
					t.Errorf("unexpected paint config %+v", cfg.Paint)
				}
			},
			teardown: func() { *flagStore = ""; *flagModel = "" },
		},
		{
			name:  "brush flags",
			setup: func() { *flagBrushColor = "#0000ff"; *flagBrushSize = 5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Brush.Color != "#0000ff" || cfg.Brush.Size != 5 {
					t.Errorf("unexpected brush config %+v", cfg.Brush)
				}
			},
			teardown: func() { *flagBrushColor = ""; *flagBrushSize = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("paint:\n  store: redis\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject unknown store")
	}
}
