package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/scale"
	"github.com/loomkit/loom/engine/text"
	"github.com/loomkit/loom/engine/theme"
)

// Env bundles the services widgets resolve at layout and paint time, plus
// the three per-tree event slots: keyboard focus, mouse grab and the open
// popup. One Env per Manager; widgets receive it at construction.
type Env struct {
	Theme *theme.Theme
	Fonts *text.Library
	Scale *scale.Scale

	// Family names the loaded font family widgets render with. NewEnv
	// sets the built-in default; point it at another family after
	// loading one into Fonts.
	Family string

	focus   Widget
	grab    Widget
	popup   Widget
	overlay []func(Renderer)

	frame      int
	faceWarned map[text.Weight]bool
}

func NewEnv(th *theme.Theme, fonts *text.Library, sc *scale.Scale) *Env {
	return &Env{Theme: th, Fonts: fonts, Scale: sc, Family: text.DefaultFamily, faceWarned: map[text.Weight]bool{}}
}

// Face resolves the UI face for a weight at the theme's font size. Returns
// nil when the face cannot be built; callers skip text drawing on nil.
func (e *Env) Face(w text.Weight) *text.Face {
	f, err := e.Fonts.SizedFace(e.Family, e.Theme.Metrics.FontSize, w)
	if err != nil {
		if !e.faceWarned[w] {
			e.faceWarned[w] = true
			core.Logger().Warn("ui face unavailable", "weight", w, "error", err)
		}
		return nil
	}
	return f
}

// DefaultFace is Face(WeightRegular).
func (e *Env) DefaultFace() *text.Face { return e.Face(text.WeightRegular) }

// SetFocus moves keyboard focus to w. Passing the focused widget again is
// a no-op.
func (e *Env) SetFocus(w Widget) { e.focus = w }

// Blur clears keyboard focus.
func (e *Env) Blur() { e.focus = nil }

// Focused reports whether w holds keyboard focus.
func (e *Env) Focused(w Widget) bool { return e.focus == w }

// GrabMouse routes every following mouse event to w until ReleaseMouse.
// Widgets grab on press so drags keep working outside their bounds.
func (e *Env) GrabMouse(w Widget) { e.grab = w }

// ReleaseMouse ends w's grab. Ignored when some other widget holds it.
func (e *Env) ReleaseMouse(w Widget) {
	if e.grab == w {
		e.grab = nil
	}
}

// OpenPopup registers w as the open popup: it gets mouse events before the
// rest of the tree and its queued overlay paints above everything.
// Only one popup is open at a time; opening another closes the first.
func (e *Env) OpenPopup(w Widget) { e.popup = w }

// ClosePopup clears the popup slot if w holds it.
func (e *Env) ClosePopup(w Widget) {
	if e.popup == w {
		e.popup = nil
	}
}

// PopupOpen reports whether w is the open popup.
func (e *Env) PopupOpen(w Widget) bool { return e.popup == w }

// FrameCount is the number of completed frames.
func (e *Env) FrameCount() int { return e.frame }

func (e *Env) nextFrame() { e.frame++ }

// CaretVisible drives caret blink from the frame count: half a second on,
// half a second off at 60Hz.
func (e *Env) CaretVisible() bool { return (e.frame/30)%2 == 0 }

// QueueOverlay defers fn to the end of the frame, above all windows.
// Queued functions run once and are dropped.
func (e *Env) QueueOverlay(fn func(Renderer)) { e.overlay = append(e.overlay, fn) }

func (e *Env) takeOverlays() []func(Renderer) {
	o := e.overlay
	e.overlay = nil
	return o
}

// centerTextY returns the y that vertically centers a line of f in r.
func centerTextY(r geom.Rect, f *text.Face) float32 {
	return r.Y + (r.H-f.LineHeight())/2
}
