package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/scale"
	"github.com/loomkit/loom/engine/text"
	"github.com/loomkit/loom/engine/theme"
)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	sc := scale.New()
	sc.Initialize(1)
	fonts := text.NewLibrary(sc)
	t.Cleanup(fonts.Close)
	return NewEnv(theme.Dark(sc), fonts, sc)
}

func press(x, y float32) core.MouseEvent {
	return core.MouseEvent{X: x, Y: y, Button: core.MouseLeft, Pressed: true}
}

func release(x, y float32) core.MouseEvent {
	return core.MouseEvent{X: x, Y: y, Button: core.MouseLeft, Released: true}
}

func move(x, y float32) core.MouseEvent {
	return core.MouseEvent{X: x, Y: y}
}

func wheel(x, y, scroll float32) core.MouseEvent {
	return core.MouseEvent{X: x, Y: y, Scroll: scroll}
}

// stubWidget records the dispatch order and consumes on demand.
type stubWidget struct {
	Base
	name    string
	log     *[]string
	consume bool
}

func (s *stubWidget) HandleMouse(ev core.MouseEvent) bool {
	s.updateHover(ev)
	*s.log = append(*s.log, s.name)
	return s.consume
}

// recordingRenderer captures the paint call stream as strings. Begin
// clears it, so one Frame leaves exactly that frame's ops behind.
type recordingRenderer struct {
	ops []string
}

func (r *recordingRenderer) op(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recordingRenderer) DrawRect(rc geom.Rect, c colors.Color) {
	r.op("rect %v %v", rc, c)
}

func (r *recordingRenderer) DrawRoundedRect(rc geom.Rect, radius float32, c colors.Color) {
	r.op("rrect %v %v %v", rc, radius, c)
}

func (r *recordingRenderer) DrawRectOutline(rc geom.Rect, thickness float32, c colors.Color) {
	r.op("outline %v %v %v", rc, thickness, c)
}

func (r *recordingRenderer) DrawText(s string, pos geom.Vec2, f *text.Face, c colors.Color) {
	r.op("text %q %v %v", s, pos, c)
}

func (r *recordingRenderer) MeasureText(s string, f *text.Face) geom.Vec2 {
	if f == nil {
		return geom.Vec2{}
	}
	return f.Measure(s)
}

func (r *recordingRenderer) PushClip(rc geom.Rect) { r.op("push %v", rc) }
func (r *recordingRenderer) PopClip()              { r.op("pop") }
func (r *recordingRenderer) Begin(w, h int) {
	r.ops = r.ops[:0]
	r.op("begin %dx%d", w, h)
}
func (r *recordingRenderer) End() { r.op("end") }

func TestBaseLayoutFillsAndPropagates(t *testing.T) {
	var parent, child Base
	parent.AddChild(&child)

	avail := geom.R(10, 20, 300, 200)
	parent.Layout(avail)

	assert.Equal(t, avail, parent.Bounds())
	assert.Equal(t, avail, child.Bounds())
}

func TestBaseDispatchesChildrenInReverse(t *testing.T) {
	var log []string
	a := &stubWidget{name: "a", log: &log, consume: false}
	b := &stubWidget{name: "b", log: &log, consume: false}
	var parent Base
	parent.AddChild(a, b)
	parent.Layout(geom.R(0, 0, 100, 100))

	consumed := parent.HandleMouse(move(50, 50))

	assert.False(t, consumed)
	assert.Equal(t, []string{"b", "a"}, log)
}

func TestBaseStopsAtFirstConsumer(t *testing.T) {
	var log []string
	a := &stubWidget{name: "a", log: &log, consume: true}
	b := &stubWidget{name: "b", log: &log, consume: true}
	var parent Base
	parent.AddChild(a, b)
	parent.Layout(geom.R(0, 0, 100, 100))

	consumed := parent.HandleMouse(press(50, 50))

	assert.True(t, consumed)
	assert.Equal(t, []string{"b"}, log)
}

func TestBaseSkipsHiddenChildren(t *testing.T) {
	var log []string
	a := &stubWidget{name: "a", log: &log, consume: true}
	b := &stubWidget{name: "b", log: &log, consume: true}
	b.SetVisible(false)
	var parent Base
	parent.AddChild(a, b)
	parent.Layout(geom.R(0, 0, 100, 100))

	require.True(t, parent.HandleMouse(press(50, 50)))
	assert.Equal(t, []string{"a"}, log)
}

func TestBaseHoverTracksBounds(t *testing.T) {
	var b Base
	b.SetBounds(geom.R(10, 10, 40, 20))

	b.HandleMouse(move(15, 15))
	assert.True(t, b.Hovered())

	b.HandleMouse(move(60, 15))
	assert.False(t, b.Hovered())

	// Half-open max edge: the right/bottom border is outside.
	b.HandleMouse(move(50, 15))
	assert.False(t, b.Hovered())
}
