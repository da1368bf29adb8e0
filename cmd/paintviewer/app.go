package main

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/engine/render"
	"github.com/Faultbox/meshpaint/internal/engine/window"
	"github.com/Faultbox/meshpaint/internal/input/sdlinput"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/paintstore"
	"github.com/Faultbox/meshpaint/internal/paintsync"
	"github.com/Faultbox/meshpaint/internal/picking"
	"github.com/Faultbox/meshpaint/internal/viewer"
)

// palette is bound to the number keys.
var palette = []string{"#4caf50", "#f44336", "#2196f3", "#ffeb3b", "#ffffff", "#212121"}

type app struct {
	cfg *config.Config
	ctx context.Context

	win        *window.Window
	renderer   *render.Renderer
	view       *viewer.Viewer
	closeStore func() error
	jsonStore  *paintstore.JSONStore
	watcher    *paintstore.Watcher
}

func newApp(cfg *config.Config) (*app, error) {
	store, closeStore, err := paintstore.Open(cfg.Paint)
	if err != nil {
		return nil, fmt.Errorf("open paint store: %w", err)
	}

	opts, err := viewer.OptionsFromConfig(cfg)
	if err != nil {
		closeStore()
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		ctx:        context.Background(),
		view:       viewer.New(opts, store),
		closeStore: closeStore,
	}

	a.win, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		closeStore()
		return nil, err
	}

	a.renderer, err = render.New()
	if err != nil {
		a.win.Close()
		closeStore()
		return nil, err
	}

	if err := a.view.Mount(a.ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.renderer.SetLight(render.SunLight(cfg.Viewer.LightAzimuth, cfg.Viewer.LightElevation, cfg.Viewer.Ambient))
	a.renderer.Upload(a.view.Mesh())
	a.view.ClearDirty()

	if js, ok := store.(*paintstore.JSONStore); ok && cfg.Paint.Watch {
		a.jsonStore = js
		a.watcher, err = paintstore.NewWatcher(cfg.Paint.JSONPath, paintstore.DefaultDebounce)
		if err != nil {
			logger.Warn("paint file watch disabled", zap.Error(err))
		}
	}

	a.resize()
	return a, nil
}

// Run is the main loop. It returns when the window closes.
func (a *app) Run() error {
	last := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if !a.handleEvent(event) {
				return nil
			}
		}

		a.drainWatcher()

		now := time.Now()
		a.view.Update(float32(now.Sub(last).Seconds()))
		last = now

		if a.view.Dirty() {
			a.renderer.UpdateColors(a.view.Mesh().Colors)
			a.view.ClearDirty()
		}

		cam := a.view.Camera()
		a.renderer.Begin()
		a.renderer.Draw(a.view.ModelMatrix(), cam.View, cam.Projection)
		a.win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Int("edits", len(a.view.Edits())))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// handleEvent returns false when the app should quit.
func (a *app) handleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			a.resize()
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return a.handleKey(e.Keysym.Scancode)
		}
	}

	if ev, ok := sdlinput.FromSDL(event); ok {
		a.view.HandlePointer(ev)
	}
	return true
}

func (a *app) handleKey(key sdl.Scancode) bool {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_P, sdl.SCANCODE_SPACE:
		a.view.SetPaintMode(!a.view.PaintMode())
		a.win.SetCrosshair(a.view.Cursor() == viewer.CursorCrosshair)
		logger.Info("paint mode", zap.Bool("on", a.view.PaintMode()))
	case sdl.SCANCODE_R:
		a.view.OrbitCamera().Reset()
	case sdl.SCANCODE_LEFTBRACKET:
		a.setBrushSize(a.view.Brush().Size - 5)
	case sdl.SCANCODE_RIGHTBRACKET:
		a.setBrushSize(a.view.Brush().Size + 5)
	default:
		if i := int(key) - int(sdl.SCANCODE_1); i >= 0 && i < len(palette) {
			a.view.SetBrush(palette[i], a.view.Brush().Size)
			logger.Info("brush color", zap.String("color", palette[i]))
		}
	}
	return true
}

func (a *app) setBrushSize(size int) {
	b := a.view.Brush()
	b.Size = brush.ClampSize(size)
	a.view.SetBrush(paintsync.FromArray(b.Color).Hex(), b.Size)
	logger.Info("brush size", zap.Int("size", b.Size), zap.Float32("radius", b.Radius()))
}

func (a *app) resize() {
	w, h := a.win.GetSize()
	a.view.SetViewport(picking.Viewport{Width: float32(w), Height: float32(h)})
	a.renderer.Resize(a.win.DrawableSize())
}

func (a *app) drainWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case path := <-a.watcher.Changes():
		external, err := a.jsonStore.ExternallyModified()
		if err != nil {
			logger.Warn("paint file check failed", zap.String("path", path), zap.Error(err))
		}
		if err == nil && !external {
			logger.Debug("skipping reload of own paint write", zap.String("path", path))
			return
		}
		if err := a.view.Reload(a.ctx); err != nil {
			logger.Warn("paint reload failed", zap.String("path", path), zap.Error(err))
		}
	default:
	}
}

// Close releases everything in reverse order of creation.
func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.view.Mounted() {
		a.view.Unmount()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
	if err := a.closeStore(); err != nil {
		logger.Warn("closing paint store", zap.Error(err))
	}
}
