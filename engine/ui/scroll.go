package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// ScrollArea is a fixed-height viewport over a taller stacked content
// column. The wheel scrolls it, the right-hand thumb drags, and clicks in
// the track page. The offset clamps to [0, content-viewport] and children
// are clipped to the viewport when painted.
type ScrollArea struct {
	Base
	env *Env

	// HeightUnits fixes the viewport height in abstract units. Zero or
	// negative means fill whatever height the container offered.
	HeightUnits float32

	offset   float32
	contentH float32

	draggingThumb   bool
	dragStartY      float32
	dragStartOffset float32
}

func NewScrollArea(env *Env, heightUnits float32) *ScrollArea {
	return &ScrollArea{env: env, HeightUnits: heightUnits}
}

func (s *ScrollArea) Offset() float32   { return s.offset }
func (s *ScrollArea) ContentH() float32 { return s.contentH }

func (s *ScrollArea) maxOffset() float32 {
	m := s.contentH - s.Bounds().H
	if m < 0 {
		return 0
	}
	return m
}

func (s *ScrollArea) scrollable() bool { return s.contentH > s.Bounds().H }

func (s *ScrollArea) scrollBy(d float32) {
	s.offset = geom.Clamp(s.offset+d, 0, s.maxOffset())
}

func (s *ScrollArea) Layout(avail geom.Rect) {
	viewH := avail.H
	if s.HeightUnits > 0 {
		viewH = s.env.Theme.Sized(s.HeightUnits)
	}
	s.SetBounds(geom.R(avail.X, avail.Y, avail.W, viewH))
	s.layoutChildren()
	if clamped := geom.Clamp(s.offset, 0, s.maxOffset()); clamped != s.offset {
		// Content shrank below the current offset; snap back and redo the
		// pass so this frame already paints the corrected positions.
		s.offset = clamped
		s.layoutChildren()
	}
}

func (s *ScrollArea) layoutChildren() {
	th := s.env.Theme
	b := s.Bounds()
	pad, sp, rowH := th.Padding(), th.Spacing(), th.ButtonHeight()
	innerW := b.W - 2*pad - th.ScrollBarWidth()
	contentTop := b.Y - s.offset
	y := contentTop + pad
	laid := 0
	for _, c := range s.Children() {
		if !c.Visible() {
			continue
		}
		c.Layout(geom.R(b.X+pad, y, innerW, rowH))
		y += c.Bounds().H + sp
		laid++
	}
	if laid == 0 {
		s.contentH = 0
		return
	}
	s.contentH = y - sp + pad - contentTop
}

func (s *ScrollArea) barRect() geom.Rect {
	b := s.Bounds()
	w := s.env.Theme.ScrollBarWidth()
	return geom.R(b.Right()-w, b.Y, w, b.H)
}

func (s *ScrollArea) thumbRect() geom.Rect {
	b := s.Bounds()
	bar := s.barRect()
	h := b.H
	if s.contentH > 0 {
		h = b.H * b.H / s.contentH
	}
	if min := s.env.Theme.Sized(24); h < min {
		h = min
	}
	if h > b.H {
		h = b.H
	}
	t := float32(0)
	if m := s.maxOffset(); m > 0 {
		t = s.offset / m
	}
	return geom.R(bar.X, b.Y+t*(b.H-h), bar.W, h)
}

func (s *ScrollArea) Paint(r Renderer) {
	r.PushClip(s.Bounds())
	s.Base.Paint(r)
	r.PopClip()

	if !s.scrollable() {
		return
	}
	th := s.env.Theme
	r.DrawRect(s.barRect(), th.Palette.ScrollTrack)
	tc := th.Palette.ScrollThumb
	if s.draggingThumb {
		tc = th.Palette.Accent
	}
	r.DrawRoundedRect(s.thumbRect(), th.CornerRadius(), tc)
}

func (s *ScrollArea) HandleMouse(ev core.MouseEvent) bool {
	s.updateHover(ev)
	switch {
	case s.draggingThumb && ev.Move():
		span := s.Bounds().H - s.thumbRect().H
		if span > 0 {
			s.offset = geom.Clamp(s.dragStartOffset+(ev.Y-s.dragStartY)*s.maxOffset()/span, 0, s.maxOffset())
		}
		return true
	case s.draggingThumb && ev.Released && ev.Button == core.MouseLeft:
		s.draggingThumb = false
		s.env.ReleaseMouse(s)
		return true
	}

	if ev.Pressed && ev.Button == core.MouseLeft && s.scrollable() {
		if s.thumbRect().ContainsXY(ev.X, ev.Y) {
			s.draggingThumb = true
			s.dragStartY = ev.Y
			s.dragStartOffset = s.offset
			s.env.GrabMouse(s)
			return true
		}
		if s.barRect().ContainsXY(ev.X, ev.Y) {
			if ev.Y < s.thumbRect().Y {
				s.scrollBy(-s.Bounds().H)
			} else {
				s.scrollBy(s.Bounds().H)
			}
			return true
		}
	}

	// Presses outside the viewport never reach children; rows scrolled out
	// of view keep their laid-out bounds and must not be clickable there.
	inside := s.Bounds().ContainsXY(ev.X, ev.Y)
	if !ev.Pressed || inside {
		for i := len(s.Children()) - 1; i >= 0; i-- {
			c := s.Children()[i]
			if c.Visible() && c.HandleMouse(ev) {
				return true
			}
		}
	}

	if ev.Scroll != 0 && s.Hovered() && s.scrollable() {
		s.scrollBy(-ev.Scroll * (s.env.Theme.ButtonHeight() + s.env.Theme.Spacing()))
		return true
	}
	return ev.Pressed && inside
}
