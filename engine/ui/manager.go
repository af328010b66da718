package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/scale"
	"github.com/loomkit/loom/engine/text"
	"github.com/loomkit/loom/engine/theme"
)

// Floating is a window-like top-level widget living in the raise stack.
// Window and Preferences implement it.
type Floating interface {
	Widget
	IsOpen() bool
}

// Manager owns the widget tree: the optional menu bar, a column of
// top-level widgets down the left edge, and floating windows above them.
//
// Event routing runs top of the visual stack first: the mouse grab, then
// the open popup, then the open menu, windows top to bottom (a consumed
// press raises the window), the closed menu bar, and finally the widget
// column in reverse add order. Painting runs the same stack bottom to
// top, and overlay paints queued during the frame (dropdown lists, menu
// dropdowns) land above everything.
type Manager struct {
	env     *Env
	menuBar *MenuBar
	widgets []Widget
	windows []Floating

	width, height int
	lastX, lastY  float32
}

func NewManager(th *theme.Theme, fonts *text.Library, sc *scale.Scale) *Manager {
	return &Manager{env: NewEnv(th, fonts, sc)}
}

func (m *Manager) Env() *Env { return m.env }

// SetTheme swaps the active theme between frames.
func (m *Manager) SetTheme(th *theme.Theme) { m.env.Theme = th }

func (m *Manager) SetMenuBar(mb *MenuBar) { m.menuBar = mb }
func (m *Manager) MenuBar() *MenuBar      { return m.menuBar }

// Add appends widgets to the left-hand column.
func (m *Manager) Add(ws ...Widget) { m.widgets = append(m.widgets, ws...) }

func (m *Manager) AddWindow(w Floating) { m.windows = append(m.windows, w) }

// Raise moves win to the top of the window stack.
func (m *Manager) Raise(win Floating) {
	for i, w := range m.windows {
		if w == win {
			m.windows = append(append(m.windows[:i:i], m.windows[i+1:]...), win)
			return
		}
	}
}

// Resize records the surface size used for layout and the frame pass.
func (m *Manager) Resize(w, h int) {
	m.width, m.height = w, h
}

// Layout places the menu bar across the top, stacks the widget column
// below it, and restacks each open window against its own bounds. Widgets
// are offered a button-height row; containers that size themselves larger
// push the rest of the column down.
func (m *Manager) Layout() {
	th := m.env.Theme
	surfaceW := float32(m.width)

	var top float32
	if m.menuBar != nil {
		m.menuBar.Layout(geom.R(0, 0, surfaceW, th.MenuBarHeight()))
		top = th.MenuBarHeight()
	}

	pad, sp := th.Padding(), th.Spacing()
	colW := th.SidebarWidth()
	if colW > surfaceW-2*pad {
		colW = surfaceW - 2*pad
	}
	y := top + pad
	for _, w := range m.widgets {
		if !w.Visible() {
			continue
		}
		w.Layout(geom.R(pad, y, colW, th.ButtonHeight()))
		y += w.Bounds().H + sp
	}

	for _, win := range m.windows {
		if win.IsOpen() {
			win.Layout(win.Bounds())
		}
	}
}

// HandleEvent adapts a raw platform event and routes it. It reports
// whether the UI consumed the event; unconsumed events belong to the
// layers beneath the UI.
func (m *Manager) HandleEvent(ev core.Event) bool {
	switch e := ev.(type) {
	case core.EventResize:
		m.Resize(e.W, e.H)
	case core.EventContentScale:
		m.env.Scale.SetSystemScale(e.Scale)
	case core.EventMouseMove:
		m.lastX, m.lastY = float32(e.X), float32(e.Y)
		return m.DispatchMouse(core.MouseEvent{X: m.lastX, Y: m.lastY})
	case core.EventMouseButton:
		m.lastX, m.lastY = float32(e.X), float32(e.Y)
		return m.DispatchMouse(core.MouseEvent{
			X: m.lastX, Y: m.lastY,
			Button:   e.Button,
			Pressed:  e.Down,
			Released: !e.Down,
		})
	case core.EventScroll:
		// Scroll events carry no position; use the last observed cursor.
		return m.DispatchMouse(core.MouseEvent{X: m.lastX, Y: m.lastY, Scroll: float32(e.Yoff)})
	case core.EventKey:
		return m.DispatchKey(core.KeyEvent{
			Key:     e.Key,
			Pressed: e.Down,
			Shift:   e.Mods&core.ModShift != 0,
			Ctrl:    e.Mods&core.ModCtrl != 0,
			Alt:     e.Mods&core.ModAlt != 0,
		})
	case core.EventChar:
		return m.DispatchKey(core.KeyEvent{Pressed: true, Rune: e.Rune})
	}
	return false
}

func (m *Manager) DispatchMouse(ev core.MouseEvent) bool {
	e := m.env

	// An active grab owns every mouse event until release.
	if g := e.grab; g != nil {
		consumed := g.HandleMouse(ev)
		if ev.Released && e.grab == g {
			// The widget normally releases itself; drop stuck grabs so a
			// missed release cannot wedge the whole surface.
			e.grab = nil
		}
		return consumed
	}

	// The open popup sees the event first. A decline (outside click that
	// closed it) falls through to normal routing.
	if p := e.popup; p != nil {
		if p.HandleMouse(ev) {
			return true
		}
	}

	if ev.Pressed && e.focus != nil && !e.focus.Bounds().ContainsXY(ev.X, ev.Y) {
		e.Blur()
	}

	// While a menu is open the bar outranks the windows, so a click over a
	// window still closes the menu first.
	menuOpen := m.menuBar != nil && m.menuBar.IsOpen()
	if menuOpen && m.menuBar.HandleMouse(ev) {
		return true
	}

	for i := len(m.windows) - 1; i >= 0; i-- {
		win := m.windows[i]
		if !win.IsOpen() || !win.Visible() {
			continue
		}
		if win.HandleMouse(ev) {
			if ev.Pressed {
				m.Raise(win)
			}
			return true
		}
	}

	if !menuOpen && m.menuBar != nil && m.menuBar.HandleMouse(ev) {
		return true
	}

	for i := len(m.widgets) - 1; i >= 0; i-- {
		w := m.widgets[i]
		if w.Visible() && w.HandleMouse(ev) {
			return true
		}
	}
	return false
}

func (m *Manager) DispatchKey(ev core.KeyEvent) bool {
	if f := m.env.focus; f != nil && f.HandleKey(ev) {
		return true
	}
	if m.menuBar != nil && m.menuBar.HandleKey(ev) {
		return true
	}
	for i := len(m.windows) - 1; i >= 0; i-- {
		win := m.windows[i]
		if win.IsOpen() && win.Visible() && win.HandleKey(ev) {
			return true
		}
	}
	for i := len(m.widgets) - 1; i >= 0; i-- {
		w := m.widgets[i]
		if w.Visible() && w.HandleKey(ev) {
			return true
		}
	}
	return false
}

// Frame runs one full UI frame: font maintenance, layout, then painting
// through r between Begin and End. Identical state paints an identical
// frame.
func (m *Manager) Frame(r FrameRenderer) {
	m.env.Fonts.Maintain()
	m.Layout()

	r.Begin(m.width, m.height)
	for _, w := range m.widgets {
		if w.Visible() {
			w.Paint(r)
		}
	}
	if m.menuBar != nil {
		m.menuBar.Paint(r)
	}
	for _, win := range m.windows {
		if win.IsOpen() && win.Visible() {
			win.Paint(r)
		}
	}
	for _, fn := range m.env.takeOverlays() {
		fn(r)
	}
	r.End()
	m.env.nextFrame()
}
