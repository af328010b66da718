package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Panel is a titled container that stacks its children vertically, one
// row of button height each, inset by the theme padding. Containers
// nested inside take whatever height their own Layout settles on. The
// panel sizes itself: Layout consumes the available origin and width but
// derives its height from the stacked content.
//
// A collapsible panel hides its body when collapsed; clicking the header
// toggles it.
type Panel struct {
	Base
	env *Env

	Title       string
	Collapsible bool
	Collapsed   bool
}

func NewPanel(env *Env, title string) *Panel {
	return &Panel{env: env, Title: title}
}

func NewCollapsiblePanel(env *Env, title string) *Panel {
	return &Panel{env: env, Title: title, Collapsible: true}
}

func (p *Panel) headerRect() geom.Rect {
	b := p.Bounds()
	return geom.R(b.X, b.Y, b.W, p.env.Theme.PanelHeaderHeight())
}

func (p *Panel) bodyRect() geom.Rect {
	b := p.Bounds()
	h := p.env.Theme.PanelHeaderHeight()
	return geom.R(b.X, b.Y+h, b.W, b.H-h)
}

func (p *Panel) Layout(avail geom.Rect) {
	th := p.env.Theme
	headerH := th.PanelHeaderHeight()
	pad, sp, rowH := th.Padding(), th.Spacing(), th.ButtonHeight()

	height := headerH
	if !p.Collapsed {
		y := avail.Y + headerH + pad
		laid := 0
		for _, c := range p.Children() {
			if !c.Visible() {
				continue
			}
			c.Layout(geom.R(avail.X+pad, y, avail.W-2*pad, rowH))
			y += c.Bounds().H + sp
			laid++
		}
		if laid > 0 {
			height += y - sp + pad - (avail.Y + headerH)
		}
	}
	p.SetBounds(geom.R(avail.X, avail.Y, avail.W, height))
}

func (p *Panel) Paint(r Renderer) {
	th := p.env.Theme
	header := p.headerRect()
	r.DrawRect(header, th.Palette.PanelHeader)

	f := p.env.DefaultFace()
	if f != nil {
		pad := th.Padding()
		r.DrawText(p.Title, geom.V(header.X+pad, centerTextY(header, f)), f, th.Palette.Text)
		if p.Collapsible {
			marker := "-"
			if p.Collapsed {
				marker = "+"
			}
			mw := r.MeasureText(marker, f).X
			r.DrawText(marker, geom.V(header.Right()-pad-mw, centerTextY(header, f)), f, th.Palette.TextMuted)
		}
	}

	if p.Collapsed {
		return
	}
	body := p.bodyRect()
	r.DrawRect(body, th.Palette.PanelBg)
	r.PushClip(body)
	p.Base.Paint(r)
	r.PopClip()
}

func (p *Panel) HandleMouse(ev core.MouseEvent) bool {
	p.updateHover(ev)
	if ev.Pressed && ev.Button == core.MouseLeft && p.headerRect().ContainsXY(ev.X, ev.Y) {
		if p.Collapsible {
			p.Collapsed = !p.Collapsed
		}
		return true
	}
	if !p.Collapsed {
		for i := len(p.Children()) - 1; i >= 0; i-- {
			c := p.Children()[i]
			if c.Visible() && c.HandleMouse(ev) {
				return true
			}
		}
	}
	// The body is opaque: presses that no child wanted stop here.
	return ev.Pressed && p.Bounds().ContainsXY(ev.X, ev.Y)
}
