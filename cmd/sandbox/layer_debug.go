package main

import (
	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/profiler"
	"github.com/loomkit/loom/engine/scratch"
)

// LayerDebug paints frame timing, batcher counters and runtime stats in
// the top-right corner, above the UI. View > Debug Overlay toggles it.
type LayerDebug struct {
	ui            *LayerUI
	frameDuration float32
	tick          int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if l.ui == nil || l.ui.batch == nil || l.ui.mgr == nil || !l.ui.showOverlay {
		return
	}
	defer profiler.Start("debug.overlay")()

	face := l.ui.mgr.Env().DefaultFace()
	if face == nil {
		return
	}

	// The UI frame is already flushed; the saved stats reflect it before
	// this second pass resets the counters.
	st := l.ui.stats
	m := scratch.Mark()
	scratch.F().
		S("frame ").F64(float64(l.frameDuration), 2).S(" ms  tick ").I(l.tick).C('\n').
		S("draws ").I(st.DrawCalls).S("  quads ").I(st.Quads).S("  verts ").I(st.Vertices).C('\n').
		S("dropped ").I(st.Dropped).C('\n').
		S("heap ").F64(float64(profiler.MemoryUsage())/(1<<20), 1).S(" MB  allocs ").U(profiler.MemoryAllocs()).C('\n').
		S("goroutines ").I(profiler.NumGoroutine()).S("  cpus ").I(profiler.NumCPU())
	body := scratch.StringFrom(m)

	th := l.ui.mgr.Env().Theme
	pad := th.Padding()
	size := face.Measure(body)
	w, h := e.Window.FramebufferSize()

	box := geom.R(
		float32(w)-size.X-3*pad,
		th.MenuBarHeight()+pad,
		size.X+2*pad,
		size.Y+2*pad,
	)

	b := l.ui.batch
	b.Begin(w, h)
	b.DrawRect(box, colors.Black.WithAlpha(0.55))
	b.DrawText(body, geom.V(box.X+pad, box.Y+pad), face, colors.White)
	b.End()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool { return false }
