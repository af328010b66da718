package core

// Event is the raw platform event union emitted by the window layer.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

// EventContentScale fires when the window crosses to a monitor with a
// different DPI scale.
type EventContentScale struct{ Scale float32 }

func (EventContentScale) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

// EventChar delivers translated text input, one rune per event.
type EventChar struct{ Rune rune }

func (EventChar) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Key/mod enums (subset; add as needed). The UI core only inspects
// specific sentinels such as KeyEscape and KeyBackspace.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// ---- Normalized widget event model ----
//
// The UI manager converts raw platform events into these records; widgets
// never see platform handles. Exactly one of Pressed/Released/motion is
// meaningful per MouseEvent.

type MouseEvent struct {
	X, Y     float32
	Button   MouseButton
	Pressed  bool
	Released bool
	Scroll   float32
}

// Move reports whether the event is pure motion (or scroll), not a
// button transition.
func (ev MouseEvent) Move() bool { return !ev.Pressed && !ev.Released }

type KeyEvent struct {
	Key     Key
	Pressed bool
	Shift   bool
	Ctrl    bool
	Alt     bool
	// Rune carries translated character input for text editing; zero when
	// the event is a bare key transition.
	Rune rune
}
