package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/scale"
)

// fileTheme is the on-disk TOML shape. Colors are hex strings keyed by
// palette field name, metrics are abstract units keyed by metric name.
// Unset entries keep the base theme's value.
type fileTheme struct {
	Name    string             `toml:"name"`
	Base    string             `toml:"base"` // "dark" (default) or "light"
	Colors  map[string]string  `toml:"colors"`
	Metrics map[string]float32 `toml:"metrics"`
}

// LoadFile reads a TOML theme overlay and applies it over the named base.
func LoadFile(path string, s *scale.Scale) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read %q: %w", path, err)
	}
	return Parse(data, s)
}

// Parse decodes TOML theme data. See LoadFile.
func Parse(data []byte, s *scale.Scale) (*Theme, error) {
	var ft fileTheme
	if err := toml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}

	var t *Theme
	switch strings.ToLower(ft.Base) {
	case "", "dark":
		t = Dark(s)
	case "light":
		t = Light(s)
	default:
		return nil, fmt.Errorf("theme: unknown base %q", ft.Base)
	}
	if ft.Name != "" {
		t.Name = ft.Name
	}

	cslots := t.colorSlots()
	for key, hex := range ft.Colors {
		slot, ok := cslots[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("theme: unknown color %q", key)
		}
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("theme: color %q: %w", key, err)
		}
		*slot = c
	}

	mslots := t.metricSlots()
	for key, v := range ft.Metrics {
		slot, ok := mslots[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("theme: unknown metric %q", key)
		}
		if v < 0 {
			return nil, fmt.Errorf("theme: metric %q is negative", key)
		}
		*slot = v
	}

	return t, nil
}

func (t *Theme) colorSlots() map[string]*colors.Color {
	p := &t.Palette
	return map[string]*colors.Color{
		"windowbg":        &p.WindowBg,
		"windowtitle":     &p.WindowTitle,
		"windowoutline":   &p.WindowOutline,
		"shadow":          &p.Shadow,
		"panelbg":         &p.PanelBg,
		"panelheader":     &p.PanelHeader,
		"buttonidle":      &p.ButtonIdle,
		"buttonhover":     &p.ButtonHover,
		"buttonpressed":   &p.ButtonPressed,
		"text":            &p.Text,
		"textdisabled":    &p.TextDisabled,
		"textmuted":       &p.TextMuted,
		"accent":          &p.Accent,
		"menubarbg":       &p.MenuBarBg,
		"menuheaderhover": &p.MenuHeaderHover,
		"dropdownbg":      &p.DropdownBg,
		"dropdownhover":   &p.DropdownHover,
		"separator":       &p.Separator,
		"checkmark":       &p.CheckMark,
		"slidertrack":     &p.SliderTrack,
		"sliderhandle":    &p.SliderHandle,
		"fieldbg":         &p.FieldBg,
		"fieldoutline":    &p.FieldOutline,
		"caret":           &p.Caret,
		"scrolltrack":     &p.ScrollTrack,
		"scrollthumb":     &p.ScrollThumb,
	}
}

func (t *Theme) metricSlots() map[string]*float32 {
	m := &t.Metrics
	return map[string]*float32{
		"fontsize":           &m.FontSize,
		"buttonheight":       &m.ButtonHeight,
		"panelheaderheight":  &m.PanelHeaderHeight,
		"menubarheight":      &m.MenuBarHeight,
		"dropdownitemheight": &m.DropdownItemHeight,
		"separatorheight":    &m.SeparatorHeight,
		"spacing":            &m.Spacing,
		"padding":            &m.Padding,
		"scrollbarwidth":     &m.ScrollBarWidth,
		"windowtitleheight":  &m.WindowTitleHeight,
		"closebuttonsize":    &m.CloseButtonSize,
		"sliderhandlewidth":  &m.SliderHandleWidth,
		"checkboxsize":       &m.CheckboxSize,
		"textfieldheight":    &m.TextFieldHeight,
		"mindropdownwidth":   &m.MinDropdownWidth,
		"cornerradius":       &m.CornerRadius,
		"sidebarwidth":       &m.SidebarWidth,
		"prefstabwidth":      &m.PrefsTabWidth,
		"menuiconwidth":      &m.MenuIconWidth,
		"menushortcutgap":    &m.MenuShortcutGap,
		"menuarrowwidth":     &m.MenuArrowWidth,
	}
}

// parseHexColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func parseHexColor(s string) (colors.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b, a uint64
	a = 0xff
	var err error
	switch len(s) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(s[0:1], 2), 16, 8); err == nil {
			if g, err = strconv.ParseUint(strings.Repeat(s[1:2], 2), 16, 8); err == nil {
				b, err = strconv.ParseUint(strings.Repeat(s[2:3], 2), 16, 8)
			}
		}
	case 8:
		a, err = strconv.ParseUint(s[6:8], 16, 8)
		fallthrough
	case 6:
		if err == nil {
			if r, err = strconv.ParseUint(s[0:2], 16, 8); err == nil {
				if g, err = strconv.ParseUint(s[2:4], 16, 8); err == nil {
					b, err = strconv.ParseUint(s[4:6], 16, 8)
				}
			}
		}
	default:
		return colors.Color{}, fmt.Errorf("bad hex color %q", s)
	}
	if err != nil {
		return colors.Color{}, fmt.Errorf("bad hex color %q", s)
	}
	return colors.RGBA(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255), nil
}
