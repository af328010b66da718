package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Preferences is the settings shell: a window whose body splits into a
// tab column on the left and a content pane showing the active tab's
// controls. The active tab keeps the selection highlight; everything
// else (drag, close, clipping) behaves like a plain Window.
type Preferences struct {
	Window

	Active int

	names      []string
	pages      [][]Widget
	hoveredTab int
}

func NewPreferences(env *Env, title string, bounds geom.Rect) *Preferences {
	return &Preferences{Window: *NewWindow(env, title, bounds), hoveredTab: -1}
}

// AddTab appends a page. The first page added is active.
func (p *Preferences) AddTab(name string, content ...Widget) {
	p.names = append(p.names, name)
	p.pages = append(p.pages, content)
}

func (p *Preferences) TabCount() int { return len(p.names) }

func (p *Preferences) activePage() []Widget {
	if p.Active < 0 || p.Active >= len(p.pages) {
		return nil
	}
	return p.pages[p.Active]
}

func (p *Preferences) tabColumnRect() geom.Rect {
	c := p.contentRect()
	return geom.R(c.X, c.Y, p.env.Theme.PrefsTabWidth(), c.H)
}

func (p *Preferences) paneRect() geom.Rect {
	c := p.contentRect()
	w := p.env.Theme.PrefsTabWidth()
	return geom.R(c.X+w, c.Y, c.W-w, c.H)
}

func (p *Preferences) tabRect(i int) geom.Rect {
	col := p.tabColumnRect()
	h := p.env.Theme.ButtonHeight()
	y := col.Y + p.env.Theme.Padding() + float32(i)*h
	return geom.R(col.X, y, col.W, h)
}

func (p *Preferences) tabAt(x, y float32) int {
	for i := range p.names {
		if p.tabRect(i).ContainsXY(x, y) {
			return i
		}
	}
	return -1
}

// Layout restacks the active page inside the content pane; the available
// rectangle is ignored like Window's.
func (p *Preferences) Layout(geom.Rect) {
	th := p.env.Theme
	pane := p.paneRect()
	pad, sp, rowH := th.Padding(), th.Spacing(), th.ButtonHeight()
	y := pane.Y + pad
	for _, c := range p.activePage() {
		if !c.Visible() {
			continue
		}
		c.Layout(geom.R(pane.X+pad, y, pane.W-2*pad, rowH))
		y += c.Bounds().H + sp
	}
}

func (p *Preferences) Paint(r Renderer) {
	p.paintChrome(r)
	th := p.env.Theme

	col := p.tabColumnRect()
	r.DrawRect(col, th.Palette.PanelHeader)
	f := p.env.DefaultFace()
	for i, name := range p.names {
		tr := p.tabRect(i)
		switch {
		case i == p.Active:
			r.DrawRect(tr, th.Palette.DropdownHover)
		case i == p.hoveredTab:
			r.DrawRect(tr, th.Palette.ButtonHover)
		}
		if f != nil {
			c := th.Palette.TextMuted
			if i == p.Active {
				c = th.Palette.Text
			}
			r.DrawText(name, geom.V(tr.X+th.Padding(), centerTextY(tr, f)), f, c)
		}
	}
	r.DrawRect(geom.R(col.Right(), col.Y, th.Sized(1), col.H), th.Palette.Separator)

	pane := p.paneRect()
	r.PushClip(pane)
	for _, c := range p.activePage() {
		if c.Visible() {
			c.Paint(r)
		}
	}
	r.PopClip()

	r.DrawRectOutline(p.Bounds(), th.Sized(1), th.Palette.WindowOutline)
}

func (p *Preferences) HandleMouse(ev core.MouseEvent) bool {
	// Title-bar interactions (drag, close) are the Window's business.
	if p.dragging || (ev.Pressed && ev.Button == core.MouseLeft && p.titleRect().ContainsXY(ev.X, ev.Y)) {
		return p.Window.HandleMouse(ev)
	}
	p.updateHover(ev)
	p.closeHovered = p.Closable && p.closeRect().ContainsXY(ev.X, ev.Y)
	p.hoveredTab = p.tabAt(ev.X, ev.Y)

	if ev.Pressed && ev.Button == core.MouseLeft && p.hoveredTab >= 0 {
		p.Active = p.hoveredTab
		return true
	}

	inside := p.Bounds().ContainsXY(ev.X, ev.Y)
	if !ev.Pressed || inside {
		page := p.activePage()
		for i := len(page) - 1; i >= 0; i-- {
			c := page[i]
			if c.Visible() && c.HandleMouse(ev) {
				return true
			}
		}
	}
	return ev.Pressed && inside
}

func (p *Preferences) HandleKey(ev core.KeyEvent) bool {
	page := p.activePage()
	for i := len(page) - 1; i >= 0; i-- {
		c := page[i]
		if c.Visible() && c.HandleKey(ev) {
			return true
		}
	}
	return false
}
