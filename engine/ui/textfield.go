package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// TextField is a single-line editor. Clicking focuses it and places the
// caret; the manager blurs it when a press lands outside. While focused it
// consumes character input and the editing keys, Enter submits and Escape
// blurs.
type TextField struct {
	Base
	env *Env

	Text        string
	Placeholder string
	OnChange    func(string)
	OnSubmit    func(string)

	caret int // rune index
}

func NewTextField(env *Env, text string) *TextField {
	return &TextField{env: env, Text: text, caret: len([]rune(text))}
}

func (t *TextField) Focused() bool { return t.env.Focused(t) }

// SetText replaces the content and moves the caret to the end.
func (t *TextField) SetText(s string) {
	t.Text = s
	t.caret = len([]rune(s))
}

func (t *TextField) textOrigin() geom.Vec2 {
	b := t.Bounds()
	return geom.V(b.X+t.env.Theme.Padding()/2, b.Y)
}

func (t *TextField) Paint(r Renderer) {
	th := t.env.Theme
	b := t.Bounds()
	r.DrawRect(b, th.Palette.FieldBg)
	oc := th.Palette.FieldOutline
	if t.Focused() {
		oc = th.Palette.Accent
	}
	r.DrawRectOutline(b, th.Sized(1), oc)

	f := t.env.DefaultFace()
	if f == nil {
		return
	}
	inner := b.Shrink(th.Sized(2))
	r.PushClip(inner)
	origin := t.textOrigin()
	y := centerTextY(b, f)
	if t.Text == "" && t.Placeholder != "" && !t.Focused() {
		r.DrawText(t.Placeholder, geom.V(origin.X, y), f, th.Palette.TextMuted)
	} else {
		r.DrawText(t.Text, geom.V(origin.X, y), f, th.Palette.Text)
	}
	if t.Focused() && t.env.CaretVisible() {
		runes := []rune(t.Text)
		cx := origin.X + f.Measure(string(runes[:t.caret])).X
		cw := th.Sized(1)
		if cw < 1 {
			cw = 1
		}
		r.DrawRect(geom.R(cx, y, cw, f.LineHeight()), th.Palette.Caret)
	}
	r.PopClip()
}

// caretFromX returns the rune index whose caret position is nearest x.
func (t *TextField) caretFromX(x float32) int {
	f := t.env.DefaultFace()
	if f == nil {
		return len([]rune(t.Text))
	}
	runes := []rune(t.Text)
	origin := t.textOrigin().X
	best, bestDist := 0, float32(0)
	for i := 0; i <= len(runes); i++ {
		d := x - (origin + f.Measure(string(runes[:i])).X)
		if d < 0 {
			d = -d
		}
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (t *TextField) HandleMouse(ev core.MouseEvent) bool {
	t.updateHover(ev)
	if !t.Enabled() {
		return false
	}
	if ev.Pressed && ev.Button == core.MouseLeft && t.Hovered() {
		t.env.SetFocus(t)
		t.caret = t.caretFromX(ev.X)
		return true
	}
	return false
}

func (t *TextField) HandleKey(ev core.KeyEvent) bool {
	if !t.Focused() || !ev.Pressed {
		return false
	}
	runes := []rune(t.Text)
	switch ev.Key {
	case core.KeyBackspace:
		if t.caret > 0 {
			t.setRunes(append(runes[:t.caret-1:t.caret-1], runes[t.caret:]...), t.caret-1)
		}
	case core.KeyDelete:
		if t.caret < len(runes) {
			t.setRunes(append(runes[:t.caret:t.caret], runes[t.caret+1:]...), t.caret)
		}
	case core.KeyLeft:
		if t.caret > 0 {
			t.caret--
		}
	case core.KeyRight:
		if t.caret < len(runes) {
			t.caret++
		}
	case core.KeyHome:
		t.caret = 0
	case core.KeyEnd:
		t.caret = len(runes)
	case core.KeyEnter:
		if t.OnSubmit != nil {
			t.OnSubmit(t.Text)
		}
	case core.KeyEscape:
		t.env.Blur()
	default:
		if ev.Rune < 32 || ev.Rune == 127 {
			return false
		}
		out := make([]rune, 0, len(runes)+1)
		out = append(out, runes[:t.caret]...)
		out = append(out, ev.Rune)
		out = append(out, runes[t.caret:]...)
		t.setRunes(out, t.caret+1)
	}
	return true
}

func (t *TextField) setRunes(runes []rune, caret int) {
	t.Text = string(runes)
	t.caret = caret
	if t.OnChange != nil {
		t.OnChange(t.Text)
	}
}
