package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Button fires OnClick when a left press inside it is released inside it.
// The press grabs the mouse, so dragging off and releasing elsewhere
// cancels the click instead of leaking the release to another widget.
type Button struct {
	Base
	env *Env

	Text    string
	OnClick func()

	pressed bool
}

func NewButton(env *Env, label string, onClick func()) *Button {
	return &Button{env: env, Text: label, OnClick: onClick}
}

func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Paint(r Renderer) {
	th := b.env.Theme
	bg := th.Palette.ButtonIdle
	switch {
	case !b.Enabled():
	case b.pressed:
		bg = th.Palette.ButtonPressed
	case b.Hovered():
		bg = th.Palette.ButtonHover
	}
	r.DrawRoundedRect(b.Bounds(), th.CornerRadius(), bg)

	f := b.env.DefaultFace()
	if f == nil || b.Text == "" {
		return
	}
	c := th.Palette.Text
	if !b.Enabled() {
		c = th.Palette.TextDisabled
	}
	w := r.MeasureText(b.Text, f).X
	pos := geom.V(b.Bounds().X+(b.Bounds().W-w)/2, centerTextY(b.Bounds(), f))
	r.DrawText(b.Text, pos, f, c)
}

func (b *Button) HandleMouse(ev core.MouseEvent) bool {
	b.updateHover(ev)
	if !b.Enabled() {
		return false
	}
	switch {
	case ev.Pressed && ev.Button == core.MouseLeft && b.Hovered():
		b.pressed = true
		b.env.GrabMouse(b)
		return true
	case ev.Released && ev.Button == core.MouseLeft && b.pressed:
		b.pressed = false
		b.env.ReleaseMouse(b)
		if b.Hovered() && b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}
