// Package scale converts between abstract UI units and device pixels.
//
// Widget and theme sizes are declared in abstract units and multiplied by
// the current scale factor at layout/paint time. The factor is the product
// of the OS-reported monitor scale and a user preference, each clamped to
// [0.5, 3.0].
package scale

// MinFactor and MaxFactor bound both the system and the user scale.
const (
	MinFactor = 0.5
	MaxFactor = 3.0
)

// Scale is the DPI service. One instance lives as long as the UI manager
// that owns it; it is only touched from the UI thread.
type Scale struct {
	system float32
	user   float32
	factor float32

	initialized bool
	fontsStale  bool
}

// New returns a Scale at factor 1.0.
func New() *Scale {
	return &Scale{system: 1, user: 1, factor: 1}
}

// Initialize sets the system scale reported by the host at startup.
// Idempotent: repeated calls after the first are ignored.
func (s *Scale) Initialize(systemScale float32) {
	if s.initialized {
		return
	}
	s.initialized = true
	s.system = clampFactor(systemScale)
	s.recompute()
}

// SetSystemScale is called when the host window crosses monitors.
// A changed value marks cached font faces stale.
func (s *Scale) SetSystemScale(v float32) {
	v = clampFactor(v)
	if v == s.system {
		return
	}
	s.system = v
	s.recompute()
	s.fontsStale = true
}

// SetUserScale applies the user preference, clamped to [0.5, 3.0].
func (s *Scale) SetUserScale(v float32) {
	v = clampFactor(v)
	if v == s.user {
		return
	}
	s.user = v
	s.recompute()
	s.fontsStale = true
}

func (s *Scale) recompute() { s.factor = s.system * s.user }

// Factor returns systemScale * userScale. Always > 0.
func (s *Scale) Factor() float32 { return s.factor }

func (s *Scale) SystemScale() float32 { return s.system }
func (s *Scale) UserScale() float32   { return s.user }

// ToPixels converts an abstract size to device pixels.
func (s *Scale) ToPixels(u float32) float32 { return u * s.factor }

// ToAbstract converts device pixels back to abstract units.
func (s *Scale) ToAbstract(p float32) float32 { return p / s.factor }

// FontPixelSize converts an abstract point size to a whole pixel size.
func (s *Scale) FontPixelSize(pt float32) int {
	px := pt * s.factor
	return int(px + 0.5)
}

// FontsNeedReload reports whether a scale change has invalidated cached
// font faces. The flag is sticky until ClearFontsReload.
func (s *Scale) FontsNeedReload() bool { return s.fontsStale }

// ClearFontsReload is called by the font cache once stale faces are evicted.
func (s *Scale) ClearFontsReload() { s.fontsStale = false }

func clampFactor(v float32) float32 {
	if v < MinFactor {
		return MinFactor
	}
	if v > MaxFactor {
		return MaxFactor
	}
	return v
}
