// Package ui is the retained widget toolkit: a tree of widgets owned by a
// Manager, laid out and painted every frame through a Renderer.
//
// Widgets follow one contract (Layout, Paint, HandleMouse, HandleKey) and
// embed Base for the default tree behavior. All coordinates are absolute
// pixels in window space; abstract theme units are converted at layout and
// paint time so a scale change only requires a fresh frame.
package ui

import (
	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/text"
)

// Renderer is the drawing surface handed to Paint. The gfx/batch package
// satisfies it; tests substitute a recorder.
type Renderer interface {
	DrawRect(r geom.Rect, c colors.Color)
	DrawRoundedRect(r geom.Rect, radius float32, c colors.Color)
	DrawRectOutline(r geom.Rect, thickness float32, c colors.Color)
	DrawText(s string, pos geom.Vec2, f *text.Face, c colors.Color)
	MeasureText(s string, f *text.Face) geom.Vec2
	PushClip(r geom.Rect)
	PopClip()
}

// FrameRenderer is a Renderer that owns frame boundaries. The Manager
// drives one per frame.
type FrameRenderer interface {
	Renderer
	Begin(width, height int)
	End()
}

// Widget is the contract every tree node implements.
//
// Layout assigns absolute bounds from the available rectangle and lays out
// children. Paint draws the widget and its visible children. HandleMouse
// and HandleKey return true when the event is consumed; a consumed event
// stops propagating.
type Widget interface {
	Layout(avail geom.Rect)
	Paint(r Renderer)
	HandleMouse(ev core.MouseEvent) bool
	HandleKey(ev core.KeyEvent) bool
	Bounds() geom.Rect
	Visible() bool
}

// Base supplies the default tree behavior. Embed it and override the hooks
// that differ. The zero value is visible, enabled and unhovered.
type Base struct {
	bounds   geom.Rect
	children []Widget
	hidden   bool
	disabled bool
	hovered  bool
}

func (b *Base) Bounds() geom.Rect     { return b.bounds }
func (b *Base) SetBounds(r geom.Rect) { b.bounds = r }
func (b *Base) Visible() bool         { return !b.hidden }
func (b *Base) SetVisible(v bool)     { b.hidden = !v }
func (b *Base) Enabled() bool         { return !b.disabled }
func (b *Base) SetEnabled(v bool)     { b.disabled = !v }
func (b *Base) Hovered() bool         { return b.hovered }
func (b *Base) Children() []Widget    { return b.children }
func (b *Base) AddChild(ws ...Widget) { b.children = append(b.children, ws...) }

// Layout fills the available rectangle and passes it on to every child.
// Containers override this with their own arrangement.
func (b *Base) Layout(avail geom.Rect) {
	b.bounds = avail
	for _, c := range b.children {
		c.Layout(avail)
	}
}

// Paint draws visible children in order. Later children paint on top.
func (b *Base) Paint(r Renderer) {
	for _, c := range b.children {
		if c.Visible() {
			c.Paint(r)
		}
	}
}

// updateHover recomputes the hover flag from the event position. Every
// HandleMouse implementation calls this first.
func (b *Base) updateHover(ev core.MouseEvent) {
	b.hovered = b.bounds.ContainsXY(ev.X, ev.Y)
}

// HandleMouse recomputes hover and offers the event to children in reverse
// order, so the child painted last gets the first chance.
func (b *Base) HandleMouse(ev core.MouseEvent) bool {
	b.updateHover(ev)
	for i := len(b.children) - 1; i >= 0; i-- {
		c := b.children[i]
		if c.Visible() && c.HandleMouse(ev) {
			return true
		}
	}
	return false
}

// HandleKey offers the event to children in reverse order.
func (b *Base) HandleKey(ev core.KeyEvent) bool {
	for i := len(b.children) - 1; i >= 0; i-- {
		c := b.children[i]
		if c.Visible() && c.HandleKey(ev) {
			return true
		}
	}
	return false
}
