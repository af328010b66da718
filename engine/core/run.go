package core

import (
	"runtime"
	"time"

	"github.com/loomkit/loom/engine/scratch"
)

// Run wires the platform window + device and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	dev, err := newDevice(win, cfg)
	if err != nil {
		return err
	}
	defer dev.Shutdown()

	w, h := win.FramebufferSize()
	dev.Resize(w, h)

	scratch.Init(cfg.ScratchCapacity)

	eng := &Engine{Window: win, Device: dev, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)

		// Top-most layer first, then the app.
		if !eng.Layers.Dispatch(eng, ev) {
			app.OnEvent(eng, ev)
		}

		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			dev.Resize(fw, fh)
		}
	})

	app.OnStart(eng)
	eng.Layers.ForEach(func(l Layer) { l.OnAttach(eng) })

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// The arena lives for exactly one frame.
		scratch.Reset()

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		// Run fixed updates
		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		// Interpolation factor for rendering
		alpha := float64(accum) / float64(tick)

		// Render bottom-to-top
		dev.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })

		// Present
		win.SwapBuffers()
	}

	// Detach top-down.
	for {
		l, ok := eng.Layers.Pop()
		if !ok {
			break
		}
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	Logger().Info("engine exit", "uptime", eng.Uptime())
	return nil
}
