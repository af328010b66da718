package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Tabs switches between named pages of stacked widgets. The tab headers
// run along the top; only the active page is laid out, painted and
// eligible for events. Like Panel it derives its height from the active
// page, so the height can change when the selection does.
type Tabs struct {
	Base
	env *Env

	Active int

	names      []string
	pages      [][]Widget
	hoveredTab int
}

func NewTabs(env *Env) *Tabs {
	return &Tabs{env: env, hoveredTab: -1}
}

// AddTab appends a page. The first page added is active.
func (t *Tabs) AddTab(name string, content ...Widget) {
	t.names = append(t.names, name)
	t.pages = append(t.pages, content)
}

func (t *Tabs) TabCount() int { return len(t.names) }

func (t *Tabs) activePage() []Widget {
	if t.Active < 0 || t.Active >= len(t.pages) {
		return nil
	}
	return t.pages[t.Active]
}

func (t *Tabs) tabWidth(i int) float32 {
	pad := t.env.Theme.Padding()
	if f := t.env.DefaultFace(); f != nil {
		return f.Measure(t.names[i]).X + 2*pad
	}
	return t.env.Theme.Sized(80)
}

func (t *Tabs) tabRect(i int) geom.Rect {
	b := t.Bounds()
	x := b.X
	for j := 0; j < i; j++ {
		x += t.tabWidth(j)
	}
	return geom.R(x, b.Y, t.tabWidth(i), t.env.Theme.ButtonHeight())
}

func (t *Tabs) tabAt(x, y float32) int {
	for i := range t.names {
		if t.tabRect(i).ContainsXY(x, y) {
			return i
		}
	}
	return -1
}

func (t *Tabs) contentRect() geom.Rect {
	b := t.Bounds()
	barH := t.env.Theme.ButtonHeight()
	return geom.R(b.X, b.Y+barH, b.W, b.H-barH)
}

func (t *Tabs) Layout(avail geom.Rect) {
	th := t.env.Theme
	barH := th.ButtonHeight()
	pad, sp, rowH := th.Padding(), th.Spacing(), th.ButtonHeight()

	y := avail.Y + barH + pad
	laid := 0
	for _, c := range t.activePage() {
		if !c.Visible() {
			continue
		}
		c.Layout(geom.R(avail.X+pad, y, avail.W-2*pad, rowH))
		y += c.Bounds().H + sp
		laid++
	}
	height := barH
	if laid > 0 {
		height += y - sp + pad - (avail.Y + barH)
	}
	t.SetBounds(geom.R(avail.X, avail.Y, avail.W, height))
}

func (t *Tabs) Paint(r Renderer) {
	th := t.env.Theme
	f := t.env.DefaultFace()
	for i, name := range t.names {
		tr := t.tabRect(i)
		switch {
		case i == t.Active:
			r.DrawRect(tr, th.Palette.PanelBg)
		case i == t.hoveredTab:
			r.DrawRect(tr, th.Palette.ButtonHover)
		default:
			r.DrawRect(tr, th.Palette.PanelHeader)
		}
		if f != nil {
			c := th.Palette.TextMuted
			if i == t.Active {
				c = th.Palette.Text
			}
			w := r.MeasureText(name, f).X
			r.DrawText(name, geom.V(tr.X+(tr.W-w)/2, centerTextY(tr, f)), f, c)
		}
	}

	content := t.contentRect()
	r.DrawRect(content, th.Palette.PanelBg)
	r.PushClip(content)
	for _, c := range t.activePage() {
		if c.Visible() {
			c.Paint(r)
		}
	}
	r.PopClip()
}

func (t *Tabs) HandleMouse(ev core.MouseEvent) bool {
	t.updateHover(ev)
	t.hoveredTab = t.tabAt(ev.X, ev.Y)
	if ev.Pressed && ev.Button == core.MouseLeft && t.hoveredTab >= 0 {
		t.Active = t.hoveredTab
		return true
	}
	page := t.activePage()
	for i := len(page) - 1; i >= 0; i-- {
		c := page[i]
		if c.Visible() && c.HandleMouse(ev) {
			return true
		}
	}
	return ev.Pressed && t.Bounds().ContainsXY(ev.X, ev.Y)
}

func (t *Tabs) HandleKey(ev core.KeyEvent) bool {
	page := t.activePage()
	for i := len(page) - 1; i >= 0; i-- {
		c := page[i]
		if c.Visible() && c.HandleKey(ev) {
			return true
		}
	}
	return false
}
