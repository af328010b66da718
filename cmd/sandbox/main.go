package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
	glbackend "github.com/loomkit/loom/engine/gfx/gl"
	"github.com/loomkit/loom/engine/platform"
	"github.com/loomkit/loom/engine/profiler"
)

// The sandbox exercises the whole toolkit: a gradient backdrop under a
// full widget tree, with a stats overlay on top.
type App struct {
	lastFrame time.Time
	tick      int

	backdrop *LayerBackdrop
	ui       *LayerUI
	debug    *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	a.backdrop = &LayerBackdrop{}
	a.ui = &LayerUI{showOverlay: true}
	a.debug = &LayerDebug{ui: a.ui}

	e.Layers.Push(a.backdrop)
	e.Layers.Push(a.ui)
	e.Layers.Push(a.debug)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.debug.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debug.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}
func (a *App) OnShutdown(e *core.Engine)              {}

func main() {
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := core.Config{
		Title:           "loom sandbox",
		Width:           1280,
		Height:          720,
		VSync:           true,
		ClearColor:      colors.DarkGray,
		ScratchCapacity: 4096,
	}
	app := &App{}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		return glbackend.New(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newDevice); err != nil {
		core.Logger().Error("engine run", "error", err)
		os.Exit(1)
	}
}
