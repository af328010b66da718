package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Window is a movable container with a title bar. Dragging the bar moves
// it (the grab keeps the drag alive when the pointer outruns the bar),
// the close button hides it, and content children stack below the bar and
// clip to the window body. Windows keep their own bounds between frames;
// the Manager raises whichever one was pressed last.
type Window struct {
	Base
	env *Env

	Title    string
	Closable bool
	OnClose  func()

	open         bool
	dragging     bool
	dragOffset   geom.Vec2
	closeHovered bool
}

func NewWindow(env *Env, title string, bounds geom.Rect) *Window {
	w := &Window{env: env, Title: title, Closable: true, open: true}
	w.SetBounds(bounds)
	return w
}

func (w *Window) IsOpen() bool   { return w.open }
func (w *Window) Dragging() bool { return w.dragging }

// Show reopens a closed window in place.
func (w *Window) Show() { w.open = true }

// Close hides the window and fires OnClose. The bounds survive, so Show
// brings it back where it was.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	if w.OnClose != nil {
		w.OnClose()
	}
}

func (w *Window) titleRect() geom.Rect {
	b := w.Bounds()
	return geom.R(b.X, b.Y, b.W, w.env.Theme.WindowTitleHeight())
}

func (w *Window) closeRect() geom.Rect {
	b := w.Bounds()
	s := w.env.Theme.CloseButtonSize()
	inset := (w.env.Theme.WindowTitleHeight() - s) / 2
	return geom.R(b.Right()-inset-s, b.Y+inset, s, s)
}

func (w *Window) contentRect() geom.Rect {
	b := w.Bounds()
	h := w.env.Theme.WindowTitleHeight()
	return geom.R(b.X, b.Y+h, b.W, b.H-h)
}

// Layout restacks the content against the window's own bounds; the
// available rectangle is ignored.
func (w *Window) Layout(geom.Rect) {
	th := w.env.Theme
	b := w.Bounds()
	pad, sp, rowH := th.Padding(), th.Spacing(), th.ButtonHeight()
	y := b.Y + th.WindowTitleHeight() + pad
	for _, c := range w.Children() {
		if !c.Visible() {
			continue
		}
		c.Layout(geom.R(b.X+pad, y, b.W-2*pad, rowH))
		y += c.Bounds().H + sp
	}
}

// paintChrome draws the shadow, body, title bar and close button.
func (w *Window) paintChrome(r Renderer) {
	th := w.env.Theme
	b := w.Bounds()

	off := th.Sized(4)
	r.DrawRect(geom.R(b.X+off, b.Y+off, b.W, b.H), th.Palette.Shadow)
	r.DrawRect(b, th.Palette.WindowBg)

	title := w.titleRect()
	r.DrawRect(title, th.Palette.WindowTitle)
	f := w.env.DefaultFace()
	if f != nil {
		r.DrawText(w.Title, geom.V(title.X+th.Padding(), centerTextY(title, f)), f, th.Palette.Text)
	}
	if w.Closable {
		cr := w.closeRect()
		if w.closeHovered {
			r.DrawRoundedRect(cr, th.CornerRadius(), th.Palette.ButtonHover)
		}
		if f != nil {
			x := "x"
			xw := r.MeasureText(x, f).X
			r.DrawText(x, geom.V(cr.X+(cr.W-xw)/2, centerTextY(cr, f)), f, th.Palette.TextMuted)
		}
	}
}

func (w *Window) Paint(r Renderer) {
	w.paintChrome(r)

	r.PushClip(w.contentRect())
	w.Base.Paint(r)
	r.PopClip()

	th := w.env.Theme
	r.DrawRectOutline(w.Bounds(), th.Sized(1), th.Palette.WindowOutline)
}

func (w *Window) HandleMouse(ev core.MouseEvent) bool {
	if w.dragging {
		switch {
		case ev.Move():
			b := w.Bounds()
			w.SetBounds(geom.R(ev.X-w.dragOffset.X, ev.Y-w.dragOffset.Y, b.W, b.H))
			return true
		case ev.Released && ev.Button == core.MouseLeft:
			w.dragging = false
			w.env.ReleaseMouse(w)
			return true
		}
	}
	w.updateHover(ev)
	w.closeHovered = w.Closable && w.closeRect().ContainsXY(ev.X, ev.Y)

	if ev.Pressed && ev.Button == core.MouseLeft {
		switch {
		case w.closeHovered:
			w.Close()
			return true
		case w.titleRect().ContainsXY(ev.X, ev.Y):
			w.dragging = true
			w.dragOffset = geom.V(ev.X-w.Bounds().X, ev.Y-w.Bounds().Y)
			w.env.GrabMouse(w)
			return true
		}
	}

	// Children overflowing the fixed body are clipped at paint, so presses
	// outside the window must not reach them either.
	inside := w.Bounds().ContainsXY(ev.X, ev.Y)
	if !ev.Pressed || inside {
		for i := len(w.Children()) - 1; i >= 0; i-- {
			c := w.Children()[i]
			if c.Visible() && c.HandleMouse(ev) {
				return true
			}
		}
	}
	return ev.Pressed && inside
}
