package colors

// Color is straight-alpha RGBA with components in [0,1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}
)

func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

// RGB8 builds a Color from 8-bit channels with full alpha.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Lighten moves each channel toward white by t in [0,1]. Alpha is kept.
func (c Color) Lighten(t float32) Color {
	for i := 0; i < 3; i++ {
		c[i] += (1 - c[i]) * t
	}
	return c
}

// Darken moves each channel toward black by t in [0,1]. Alpha is kept.
func (c Color) Darken(t float32) Color {
	for i := 0; i < 3; i++ {
		c[i] *= 1 - t
	}
	return c
}
