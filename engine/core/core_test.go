package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type probeLayer struct {
	name    string
	log     *[]string
	consume bool
}

func (p *probeLayer) OnAttach(*Engine)          {}
func (p *probeLayer) OnDetach(*Engine)          {}
func (p *probeLayer) OnUpdate(*Engine, float64) {}
func (p *probeLayer) OnRender(*Engine, float64) {}

func (p *probeLayer) OnEvent(_ *Engine, _ Event) bool {
	*p.log = append(*p.log, p.name)
	return p.consume
}

func TestLayerStackDispatchesTopDown(t *testing.T) {
	var log []string
	var ls LayerStack
	ls.Push(&probeLayer{name: "bottom", log: &log})
	ls.Push(&probeLayer{name: "top", log: &log})

	handled := ls.Dispatch(nil, EventResize{W: 1, H: 1})
	assert.False(t, handled)
	assert.Equal(t, []string{"top", "bottom"}, log)

	// A consuming layer on top stops propagation.
	log = nil
	ls.Push(&probeLayer{name: "modal", log: &log, consume: true})
	handled = ls.Dispatch(nil, EventResize{W: 1, H: 1})
	assert.True(t, handled)
	assert.Equal(t, []string{"modal"}, log)
}

func TestLayerStackPopsInReverse(t *testing.T) {
	var log []string
	var ls LayerStack
	a := &probeLayer{name: "a", log: &log}
	b := &probeLayer{name: "b", log: &log}
	ls.Push(a)
	ls.Push(b)
	assert.Equal(t, 2, ls.Len())

	l, ok := ls.Pop()
	assert.True(t, ok)
	assert.Same(t, b, l)

	l, ok = ls.Pop()
	assert.True(t, ok)
	assert.Same(t, a, l)

	_, ok = ls.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, ls.Len())
}

func TestInputTracksLatestState(t *testing.T) {
	in := NewInput()

	in.Handle(EventKey{Key: KeySpace, Down: true})
	assert.True(t, in.IsKeyDown(KeySpace))
	in.Handle(EventKey{Key: KeySpace, Down: false})
	assert.False(t, in.IsKeyDown(KeySpace))

	in.Handle(EventMouseButton{Button: MouseLeft, Down: true, X: 10, Y: 20})
	assert.True(t, in.IsMouseDown(MouseLeft))
	x, y := in.Mouse()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	// Motion updates position but not buttons.
	in.Handle(EventMouseMove{X: 30, Y: 40})
	x, y = in.Mouse()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 40.0, y)
	assert.True(t, in.IsMouseDown(MouseLeft))

	assert.False(t, in.IsMouseDown(MouseButton(99)))
}
