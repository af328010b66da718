package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Checkbox toggles on click (press and release both inside, like Button)
// and reports the new state through OnChange.
type Checkbox struct {
	Base
	env *Env

	Text     string
	Checked  bool
	OnChange func(bool)

	pressed bool
}

func NewCheckbox(env *Env, label string, checked bool, onChange func(bool)) *Checkbox {
	return &Checkbox{env: env, Text: label, Checked: checked, OnChange: onChange}
}

func (c *Checkbox) boxRect() geom.Rect {
	b := c.Bounds()
	s := c.env.Theme.CheckboxSize()
	return geom.R(b.X, b.Y+(b.H-s)/2, s, s)
}

func (c *Checkbox) Paint(r Renderer) {
	th := c.env.Theme
	box := c.boxRect()
	bg := th.Palette.FieldBg
	if c.Hovered() && c.Enabled() {
		bg = th.Palette.ButtonHover
	}
	r.DrawRect(box, bg)
	r.DrawRectOutline(box, th.Sized(1), th.Palette.FieldOutline)
	if c.Checked {
		r.DrawRect(box.Shrink(th.Sized(3)), th.Palette.CheckMark)
	}

	f := c.env.DefaultFace()
	if f == nil || c.Text == "" {
		return
	}
	col := th.Palette.Text
	if !c.Enabled() {
		col = th.Palette.TextDisabled
	}
	pos := geom.V(box.Right()+th.Spacing(), centerTextY(c.Bounds(), f))
	r.DrawText(c.Text, pos, f, col)
}

func (c *Checkbox) HandleMouse(ev core.MouseEvent) bool {
	c.updateHover(ev)
	if !c.Enabled() {
		return false
	}
	switch {
	case ev.Pressed && ev.Button == core.MouseLeft && c.Hovered():
		c.pressed = true
		c.env.GrabMouse(c)
		return true
	case ev.Released && ev.Button == core.MouseLeft && c.pressed:
		c.pressed = false
		c.env.ReleaseMouse(c)
		if c.Hovered() {
			c.Checked = !c.Checked
			if c.OnChange != nil {
				c.OnChange(c.Checked)
			}
		}
		return true
	}
	return false
}
