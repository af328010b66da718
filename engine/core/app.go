package core

import "time"

// App defines the embedding application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/device init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window Window
	Device Device
	Input  *Input
	Layers LayerStack
	start  time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction implemented by the platform layer.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	// ContentScale is the OS-reported DPI scale of the monitor the window
	// currently occupies (1.0 on standard displays).
	ContentScale() float32
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32 // RGBA

	// ScratchCapacity is the initial size of the per-frame scratch arena.
	// Zero selects a small default.
	ScratchCapacity int
}
