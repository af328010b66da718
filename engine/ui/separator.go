package ui

import "github.com/loomkit/loom/engine/geom"

// Separator is a horizontal rule. It takes a normal row and paints a thin
// centered line; events pass through it.
type Separator struct {
	Base
	env *Env
}

func NewSeparator(env *Env) *Separator { return &Separator{env: env} }

// Layout shrinks the offered row to the separator height, so stacked
// columns close up around it.
func (s *Separator) Layout(avail geom.Rect) {
	s.SetBounds(geom.R(avail.X, avail.Y, avail.W, s.env.Theme.SeparatorHeight()))
}

func (s *Separator) Paint(r Renderer) {
	th := s.env.Theme
	b := s.Bounds()
	h := th.Sized(1)
	if h < 1 {
		h = 1
	}
	r.DrawRect(geom.R(b.X, b.Y+(b.H-h)/2, b.W, h), th.Palette.Separator)
}
