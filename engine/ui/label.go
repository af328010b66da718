package ui

import (
	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/text"
)

// Label paints static text at its top-left corner. It never consumes
// events. With Wrap set it breaks at word boundaries to its width and
// grows its height to fit.
type Label struct {
	Base
	env *Env

	Text   string
	Weight text.Weight
	Wrap   bool

	// Color overrides the theme text color when non-nil.
	Color *colors.Color
}

func NewLabel(env *Env, s string) *Label {
	return &Label{env: env, Text: s}
}

func (l *Label) Layout(avail geom.Rect) {
	l.SetBounds(avail)
	if !l.Wrap {
		return
	}
	f := l.env.Face(l.Weight)
	if f == nil {
		return
	}
	h := float32(len(f.Wrap(l.Text, avail.W))) * f.LineHeight()
	if h > avail.H {
		b := l.Bounds()
		b.H = h
		l.SetBounds(b)
	}
}

func (l *Label) Paint(r Renderer) {
	f := l.env.Face(l.Weight)
	if f == nil {
		return
	}
	c := l.env.Theme.Palette.Text
	if l.Color != nil {
		c = *l.Color
	}
	b := l.Bounds()
	if !l.Wrap {
		r.DrawText(l.Text, b.Pos(), f, c)
		return
	}
	y := b.Y
	for _, line := range f.Wrap(l.Text, b.W) {
		r.DrawText(line, geom.V(b.X, y), f, c)
		y += f.LineHeight()
	}
}
