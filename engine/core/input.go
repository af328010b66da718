package core

// Input tracks the latest observed input state for polling-style queries.
// The Run loop feeds it every event before the App sees it.
type Input struct {
	keys           map[Key]bool
	buttons        [3]bool
	mouseX, mouseY float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= MouseLeft && e.Button <= MouseMiddle {
			in.buttons[e.Button] = e.Down
		}
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool { return in.keys[k] }

func (in *Input) IsMouseDown(b MouseButton) bool {
	if b < MouseLeft || b > MouseMiddle {
		return false
	}
	return in.buttons[b]
}

func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
