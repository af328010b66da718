package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Slider maps the pointer to a value in [Min, Max]. Pressing anywhere on
// the track jumps the handle there and starts a drag; the grab keeps the
// drag alive outside the bounds. OnChange fires only when the value
// actually changes.
type Slider struct {
	Base
	env *Env

	Min, Max float32
	Value    float32
	OnChange func(float32)

	dragging bool
}

func NewSlider(env *Env, min, max, value float32, onChange func(float32)) *Slider {
	return &Slider{env: env, Min: min, Max: max, Value: geom.Clamp(value, min, max), OnChange: onChange}
}

func (s *Slider) Dragging() bool { return s.dragging }

// setFromPointer positions the handle center under x and derives the
// value, so the extremes are reachable with the handle fully inside the
// track.
func (s *Slider) setFromPointer(x float32) {
	b := s.Bounds()
	hw := s.env.Theme.SliderHandleWidth()
	usable := b.W - hw
	t := float32(0)
	if usable > 0 {
		t = geom.Clamp((x-b.X-hw/2)/usable, 0, 1)
	}
	v := s.Min + t*(s.Max-s.Min)
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
}

func (s *Slider) handleRect() geom.Rect {
	b := s.Bounds()
	hw := s.env.Theme.SliderHandleWidth()
	t := float32(0)
	if s.Max > s.Min {
		t = geom.Clamp((s.Value-s.Min)/(s.Max-s.Min), 0, 1)
	}
	return geom.R(b.X+t*(b.W-hw), b.Y, hw, b.H)
}

func (s *Slider) Paint(r Renderer) {
	th := s.env.Theme
	b := s.Bounds()
	trackH := th.Sized(4)
	r.DrawRoundedRect(geom.R(b.X, b.Y+(b.H-trackH)/2, b.W, trackH), trackH/2, th.Palette.SliderTrack)

	hc := th.Palette.SliderHandle
	if s.dragging {
		hc = th.Palette.Accent
	} else if s.Hovered() && s.Enabled() {
		hc = th.Palette.ButtonHover
	}
	r.DrawRoundedRect(s.handleRect(), th.CornerRadius(), hc)
}

func (s *Slider) HandleMouse(ev core.MouseEvent) bool {
	s.updateHover(ev)
	if !s.Enabled() {
		return false
	}
	switch {
	case ev.Pressed && ev.Button == core.MouseLeft && s.Hovered():
		s.dragging = true
		s.env.GrabMouse(s)
		s.setFromPointer(ev.X)
		return true
	case ev.Move() && s.dragging:
		s.setFromPointer(ev.X)
		return true
	case ev.Released && ev.Button == core.MouseLeft && s.dragging:
		s.dragging = false
		s.env.ReleaseMouse(s)
		return true
	}
	return false
}
