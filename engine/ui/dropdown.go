package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// Dropdown shows the selected option; clicking opens an option list below
// it. The open list registers as the Env popup so it sees mouse events
// before the rest of the tree and paints above every window. Clicking an
// item commits it and closes; clicking anywhere else closes without
// committing and lets the press fall through.
type Dropdown struct {
	Base
	env *Env

	Options  []string
	Selected int
	OnSelect func(int)

	open        bool
	hoveredItem int
}

func NewDropdown(env *Env, options []string, selected int, onSelect func(int)) *Dropdown {
	return &Dropdown{env: env, Options: options, Selected: selected, OnSelect: onSelect}
}

func (d *Dropdown) Open() bool { return d.open }

// SelectedText returns the current option, or "" when out of range.
func (d *Dropdown) SelectedText() string {
	if d.Selected < 0 || d.Selected >= len(d.Options) {
		return ""
	}
	return d.Options[d.Selected]
}

func (d *Dropdown) listRect() geom.Rect {
	b := d.Bounds()
	ih := d.env.Theme.DropdownItemHeight()
	return geom.R(b.X, b.Bottom(), b.W, float32(len(d.Options))*ih)
}

func (d *Dropdown) itemAt(x, y float32) int {
	lr := d.listRect()
	if !lr.ContainsXY(x, y) {
		return -1
	}
	idx := int((y - lr.Y) / d.env.Theme.DropdownItemHeight())
	if idx < 0 || idx >= len(d.Options) {
		return -1
	}
	return idx
}

func (d *Dropdown) close() {
	d.open = false
	d.env.ClosePopup(d)
}

func (d *Dropdown) Paint(r Renderer) {
	th := d.env.Theme
	b := d.Bounds()
	bg := th.Palette.FieldBg
	if d.Hovered() && d.Enabled() {
		bg = th.Palette.ButtonHover
	}
	r.DrawRect(b, bg)
	r.DrawRectOutline(b, th.Sized(1), th.Palette.FieldOutline)

	f := d.env.DefaultFace()
	if f != nil {
		pad := th.Padding()
		marker := "v"
		mw := r.MeasureText(marker, f).X
		if s := d.SelectedText(); s != "" {
			r.PushClip(geom.R(b.X, b.Y, b.W-mw-pad, b.H))
			r.DrawText(s, geom.V(b.X+pad/2, centerTextY(b, f)), f, th.Palette.Text)
			r.PopClip()
		}
		r.DrawText(marker, geom.V(b.Right()-pad/2-mw, centerTextY(b, f)), f, th.Palette.TextMuted)
	}

	// The list must cover every window, so it is deferred to the overlay
	// pass instead of painting here.
	if d.open {
		d.env.QueueOverlay(d.paintList)
	}
}

func (d *Dropdown) paintList(r Renderer) {
	th := d.env.Theme
	lr := d.listRect()
	r.DrawRect(lr, th.Palette.DropdownBg)
	r.DrawRectOutline(lr, th.Sized(1), th.Palette.FieldOutline)

	f := d.env.DefaultFace()
	if f == nil {
		return
	}
	ih := th.DropdownItemHeight()
	for i, opt := range d.Options {
		row := geom.R(lr.X, lr.Y+float32(i)*ih, lr.W, ih)
		if i == d.hoveredItem {
			r.DrawRect(row, th.Palette.DropdownHover)
		}
		r.DrawText(opt, geom.V(row.X+th.Padding(), centerTextY(row, f)), f, th.Palette.Text)
	}
}

func (d *Dropdown) HandleMouse(ev core.MouseEvent) bool {
	d.updateHover(ev)
	if !d.Enabled() {
		return false
	}
	if d.open {
		switch {
		case ev.Move():
			d.hoveredItem = d.itemAt(ev.X, ev.Y)
			return d.hoveredItem >= 0
		case ev.Pressed && ev.Button == core.MouseLeft:
			if idx := d.itemAt(ev.X, ev.Y); idx >= 0 {
				d.Selected = idx
				if d.OnSelect != nil {
					d.OnSelect(idx)
				}
				d.close()
				return true
			}
			d.close()
			// A click on the closed chrome is the toggle gesture; anything
			// else falls through to whatever is beneath.
			return d.Hovered()
		case ev.Released:
			return d.Hovered() || d.itemAt(ev.X, ev.Y) >= 0
		}
		return false
	}
	if ev.Pressed && ev.Button == core.MouseLeft && d.Hovered() {
		d.open = true
		d.hoveredItem = d.Selected
		d.env.OpenPopup(d)
		return true
	}
	return false
}
