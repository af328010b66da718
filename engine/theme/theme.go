// Package theme holds the palette and base sizes shared by all widgets.
//
// Base sizes are abstract units; the scaled accessors multiply by the
// current scale factor at call time. The record itself never changes
// mid-frame; swapping themes happens between frames.
package theme

import (
	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/scale"
)

// Palette names every color the built-in widgets paint with.
type Palette struct {
	WindowBg      colors.Color
	WindowTitle   colors.Color
	WindowOutline colors.Color
	Shadow        colors.Color

	PanelBg     colors.Color
	PanelHeader colors.Color

	ButtonIdle    colors.Color
	ButtonHover   colors.Color
	ButtonPressed colors.Color

	Text         colors.Color
	TextDisabled colors.Color
	TextMuted    colors.Color
	Accent       colors.Color

	MenuBarBg       colors.Color
	MenuHeaderHover colors.Color
	DropdownBg      colors.Color
	DropdownHover   colors.Color
	Separator       colors.Color

	CheckMark    colors.Color
	SliderTrack  colors.Color
	SliderHandle colors.Color

	FieldBg      colors.Color
	FieldOutline colors.Color
	Caret        colors.Color

	ScrollTrack colors.Color
	ScrollThumb colors.Color
}

// Metrics are the base sizes in abstract units.
type Metrics struct {
	FontSize           float32
	ButtonHeight       float32
	PanelHeaderHeight  float32
	MenuBarHeight      float32
	DropdownItemHeight float32
	SeparatorHeight    float32
	Spacing            float32
	Padding            float32
	ScrollBarWidth     float32
	WindowTitleHeight  float32
	CloseButtonSize    float32
	SliderHandleWidth  float32
	CheckboxSize       float32
	TextFieldHeight    float32
	MinDropdownWidth   float32
	CornerRadius       float32
	SidebarWidth       float32
	PrefsTabWidth      float32
	MenuIconWidth      float32
	MenuShortcutGap    float32
	MenuArrowWidth     float32
}

// Theme is a named palette + metrics bound to a Scale service.
// Multiple themes may coexist; the UI manager designates one as current.
type Theme struct {
	Name    string
	Palette Palette
	Metrics Metrics

	scale *scale.Scale
}

func defaultMetrics() Metrics {
	return Metrics{
		FontSize:           14,
		ButtonHeight:       24,
		PanelHeaderHeight:  26,
		MenuBarHeight:      28,
		DropdownItemHeight: 24,
		SeparatorHeight:    7,
		Spacing:            6,
		Padding:            8,
		ScrollBarWidth:     12,
		WindowTitleHeight:  26,
		CloseButtonSize:    24,
		SliderHandleWidth:  20,
		CheckboxSize:       16,
		TextFieldHeight:    24,
		MinDropdownWidth:   150,
		CornerRadius:       4,
		SidebarWidth:       320,
		PrefsTabWidth:      120,
		MenuIconWidth:      18,
		MenuShortcutGap:    24,
		MenuArrowWidth:     16,
	}
}

// Dark is the built-in dark theme.
func Dark(s *scale.Scale) *Theme {
	return &Theme{
		Name: "dark",
		Palette: Palette{
			WindowBg:      colors.RGB8(0x2b, 0x2b, 0x30),
			WindowTitle:   colors.RGB8(0x20, 0x20, 0x24),
			WindowOutline: colors.RGB8(0x4a, 0x4a, 0x52),
			Shadow:        colors.Black.WithAlpha(0.35),

			PanelBg:     colors.RGB8(0x26, 0x26, 0x2a),
			PanelHeader: colors.RGB8(0x33, 0x33, 0x3a),

			ButtonIdle:    colors.RGB8(0x3c, 0x3c, 0x44),
			ButtonHover:   colors.RGB8(0x4a, 0x4a, 0x54),
			ButtonPressed: colors.RGB8(0x2e, 0x2e, 0x36),

			Text:         colors.RGB8(0xe4, 0xe4, 0xe8),
			TextDisabled: colors.RGB8(0x72, 0x72, 0x78),
			TextMuted:    colors.RGB8(0xa6, 0xa6, 0xae),
			Accent:       colors.RGB8(0x4f, 0x9c, 0xf5),

			MenuBarBg:       colors.RGB8(0x20, 0x20, 0x24),
			MenuHeaderHover: colors.RGB8(0x3a, 0x3a, 0x42),
			DropdownBg:      colors.RGB8(0x2c, 0x2c, 0x32),
			DropdownHover:   colors.RGB8(0x3f, 0x5b, 0x80),
			Separator:       colors.RGB8(0x48, 0x48, 0x50),

			CheckMark:    colors.RGB8(0x4f, 0x9c, 0xf5),
			SliderTrack:  colors.RGB8(0x1e, 0x1e, 0x22),
			SliderHandle: colors.RGB8(0x8a, 0x8a, 0x94),

			FieldBg:      colors.RGB8(0x1e, 0x1e, 0x22),
			FieldOutline: colors.RGB8(0x4a, 0x4a, 0x52),
			Caret:        colors.RGB8(0xe4, 0xe4, 0xe8),

			ScrollTrack: colors.RGB8(0x22, 0x22, 0x26),
			ScrollThumb: colors.RGB8(0x55, 0x55, 0x5e),
		},
		Metrics: defaultMetrics(),
		scale:   s,
	}
}

// Light is the built-in light theme.
func Light(s *scale.Scale) *Theme {
	t := Dark(s)
	t.Name = "light"
	t.Palette.WindowBg = colors.RGB8(0xe8, 0xe8, 0xec)
	t.Palette.WindowTitle = colors.RGB8(0xd2, 0xd2, 0xd8)
	t.Palette.WindowOutline = colors.RGB8(0xb0, 0xb0, 0xb8)
	t.Palette.Shadow = colors.Black.WithAlpha(0.2)
	t.Palette.PanelBg = colors.RGB8(0xf0, 0xf0, 0xf4)
	t.Palette.PanelHeader = colors.RGB8(0xd8, 0xd8, 0xde)
	t.Palette.ButtonIdle = colors.RGB8(0xd0, 0xd0, 0xd6)
	t.Palette.ButtonHover = colors.RGB8(0xc0, 0xc0, 0xc8)
	t.Palette.ButtonPressed = colors.RGB8(0xb0, 0xb0, 0xba)
	t.Palette.Text = colors.RGB8(0x1c, 0x1c, 0x20)
	t.Palette.TextDisabled = colors.RGB8(0x9a, 0x9a, 0xa0)
	t.Palette.TextMuted = colors.RGB8(0x55, 0x55, 0x5c)
	t.Palette.MenuBarBg = colors.RGB8(0xd8, 0xd8, 0xde)
	t.Palette.MenuHeaderHover = colors.RGB8(0xc4, 0xc4, 0xcc)
	t.Palette.DropdownBg = colors.RGB8(0xf4, 0xf4, 0xf8)
	t.Palette.DropdownHover = colors.RGB8(0xbd, 0xd4, 0xf0)
	t.Palette.Separator = colors.RGB8(0xc0, 0xc0, 0xc8)
	t.Palette.SliderTrack = colors.RGB8(0xc6, 0xc6, 0xcc)
	t.Palette.FieldBg = colors.White
	t.Palette.FieldOutline = colors.RGB8(0xa8, 0xa8, 0xb0)
	t.Palette.Caret = colors.RGB8(0x1c, 0x1c, 0x20)
	t.Palette.ScrollTrack = colors.RGB8(0xdc, 0xdc, 0xe2)
	t.Palette.ScrollThumb = colors.RGB8(0xa4, 0xa4, 0xac)
	return t
}

// Scale exposes the bound scale service.
func (t *Theme) Scale() *scale.Scale { return t.scale }

// Sized converts an arbitrary abstract size to pixels.
func (t *Theme) Sized(u float32) float32 { return t.scale.ToPixels(u) }

// FontPixels is the default UI font size in whole pixels.
func (t *Theme) FontPixels() int { return t.scale.FontPixelSize(t.Metrics.FontSize) }

// Scaled metric accessors. All read the scale factor at call time.

func (t *Theme) ButtonHeight() float32       { return t.scale.ToPixels(t.Metrics.ButtonHeight) }
func (t *Theme) PanelHeaderHeight() float32  { return t.scale.ToPixels(t.Metrics.PanelHeaderHeight) }
func (t *Theme) MenuBarHeight() float32      { return t.scale.ToPixels(t.Metrics.MenuBarHeight) }
func (t *Theme) DropdownItemHeight() float32 { return t.scale.ToPixels(t.Metrics.DropdownItemHeight) }
func (t *Theme) SeparatorHeight() float32    { return t.scale.ToPixels(t.Metrics.SeparatorHeight) }
func (t *Theme) Spacing() float32            { return t.scale.ToPixels(t.Metrics.Spacing) }
func (t *Theme) Padding() float32            { return t.scale.ToPixels(t.Metrics.Padding) }
func (t *Theme) ScrollBarWidth() float32     { return t.scale.ToPixels(t.Metrics.ScrollBarWidth) }
func (t *Theme) WindowTitleHeight() float32  { return t.scale.ToPixels(t.Metrics.WindowTitleHeight) }
func (t *Theme) CloseButtonSize() float32    { return t.scale.ToPixels(t.Metrics.CloseButtonSize) }
func (t *Theme) SliderHandleWidth() float32  { return t.scale.ToPixels(t.Metrics.SliderHandleWidth) }
func (t *Theme) CheckboxSize() float32       { return t.scale.ToPixels(t.Metrics.CheckboxSize) }
func (t *Theme) TextFieldHeight() float32    { return t.scale.ToPixels(t.Metrics.TextFieldHeight) }
func (t *Theme) MinDropdownWidth() float32   { return t.scale.ToPixels(t.Metrics.MinDropdownWidth) }
func (t *Theme) CornerRadius() float32       { return t.scale.ToPixels(t.Metrics.CornerRadius) }
func (t *Theme) SidebarWidth() float32       { return t.scale.ToPixels(t.Metrics.SidebarWidth) }
func (t *Theme) PrefsTabWidth() float32      { return t.scale.ToPixels(t.Metrics.PrefsTabWidth) }
func (t *Theme) MenuIconWidth() float32      { return t.scale.ToPixels(t.Metrics.MenuIconWidth) }
func (t *Theme) MenuShortcutGap() float32    { return t.scale.ToPixels(t.Metrics.MenuShortcutGap) }
func (t *Theme) MenuArrowWidth() float32     { return t.scale.ToPixels(t.Metrics.MenuArrowWidth) }
