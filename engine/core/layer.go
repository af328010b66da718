package core

// Layer is a slice of the application with its own update/render/event
// hooks. Layers render in push order and see events in reverse order,
// top-most first.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // true consumes the event
}

// LayerStack owns the ordered layers. Single-threaded, like the run
// loop that drives it.
type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }

// Pop removes and returns the top-most layer.
func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// ForEach visits layers bottom-up, the render order.
func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// Dispatch offers ev to each layer top-down until one consumes it.
func (ls *LayerStack) Dispatch(e *Engine, ev Event) bool {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if ls.list[i].OnEvent(e, ev) {
			return true
		}
	}
	return false
}
