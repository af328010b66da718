package ui

import (
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

// MenuItem is one row of a dropdown menu. Four shapes share the struct:
// plain actions, checkable toggles (Checked non-nil), separators and
// submenus (Items non-empty). Activating a toggle flips the bound bool
// first and then fires Action with the menu closing either way.
type MenuItem struct {
	Label    string
	Shortcut string
	Action   func()
	Disabled bool

	// Checked binds a toggle item to external state.
	Checked *bool

	// Items makes the row a submenu that opens on hover.
	Items []*MenuItem

	separator bool
}

func NewMenuItem(label string, action func()) *MenuItem {
	return &MenuItem{Label: label, Action: action}
}

func NewMenuToggle(label string, checked *bool, action func()) *MenuItem {
	return &MenuItem{Label: label, Checked: checked, Action: action}
}

func NewMenuSeparator() *MenuItem { return &MenuItem{separator: true} }

func NewSubMenu(label string, items ...*MenuItem) *MenuItem {
	return &MenuItem{Label: label, Items: items}
}

func (mi *MenuItem) IsSeparator() bool { return mi.separator }

// Menu is a titled list of items hanging off one menu bar header.
type Menu struct {
	Title string
	Items []*MenuItem
}

func NewMenu(title string, items ...*MenuItem) *Menu {
	return &Menu{Title: title, Items: items}
}

// MenuBar is the strip of menu headers across the top of the surface.
// Clicking a header opens its dropdown, hovering another header while one
// is open switches to it, Escape closes, and a press outside closes
// without consuming so it still reaches whatever was underneath. Open
// dropdowns paint in the overlay pass, above every window. One submenu
// level deep opens on hover to the right of its parent row.
type MenuBar struct {
	Base
	env *Env

	menus []*Menu

	openIndex   int
	hoverHeader int
	hoveredItem int
	subIndex    int
	subHovered  int
}

func NewMenuBar(env *Env, menus ...*Menu) *MenuBar {
	return &MenuBar{
		env:         env,
		menus:       menus,
		openIndex:   -1,
		hoverHeader: -1,
		hoveredItem: -1,
		subIndex:    -1,
		subHovered:  -1,
	}
}

func (mb *MenuBar) AddMenu(m *Menu) { mb.menus = append(mb.menus, m) }
func (mb *MenuBar) OpenIndex() int  { return mb.openIndex }
func (mb *MenuBar) IsOpen() bool    { return mb.openIndex >= 0 }

func (mb *MenuBar) closeAll() {
	mb.openIndex = -1
	mb.hoveredItem = -1
	mb.subIndex = -1
	mb.subHovered = -1
}

func (mb *MenuBar) openMenu(i int) {
	mb.openIndex = i
	mb.hoveredItem = -1
	mb.subIndex = -1
	mb.subHovered = -1
}

// measure is a nil-safe text width.
func (mb *MenuBar) measure(s string) float32 {
	if f := mb.env.DefaultFace(); f != nil {
		return f.Measure(s).X
	}
	return mb.env.Theme.Sized(7 * float32(len(s)))
}

func (mb *MenuBar) listPad() float32 { return mb.env.Theme.Sized(4) }

func (mb *MenuBar) headerRect(i int) geom.Rect {
	b := mb.Bounds()
	pad := mb.env.Theme.Padding()
	x := b.X
	for j := 0; j < i; j++ {
		x += mb.measure(mb.menus[j].Title) + 2*pad
	}
	return geom.R(x, b.Y, mb.measure(mb.menus[i].Title)+2*pad, b.H)
}

func (mb *MenuBar) headerAt(x, y float32) int {
	for i := range mb.menus {
		if mb.headerRect(i).ContainsXY(x, y) {
			return i
		}
	}
	return -1
}

// dropdownWidth sizes a list to its widest row: icon column, label,
// optional shortcut column and submenu arrow, padded both sides, but
// never narrower than the theme minimum.
func (mb *MenuBar) dropdownWidth(items []*MenuItem) float32 {
	th := mb.env.Theme
	w := th.MinDropdownWidth()
	pad := th.Padding()
	for _, mi := range items {
		if mi.separator {
			continue
		}
		rw := 2*pad + th.MenuIconWidth() + mb.measure(mi.Label)
		if mi.Shortcut != "" {
			rw += th.MenuShortcutGap() + mb.measure(mi.Shortcut)
		}
		if len(mi.Items) > 0 {
			rw += th.MenuArrowWidth()
		}
		if rw > w {
			w = rw
		}
	}
	return w
}

func (mb *MenuBar) itemHeight(mi *MenuItem) float32 {
	if mi.separator {
		return mb.env.Theme.SeparatorHeight()
	}
	return mb.env.Theme.DropdownItemHeight()
}

func (mb *MenuBar) listHeight(items []*MenuItem) float32 {
	h := 2 * mb.listPad()
	for _, mi := range items {
		h += mb.itemHeight(mi)
	}
	return h
}

func (mb *MenuBar) listRect(i int) geom.Rect {
	hr := mb.headerRect(i)
	items := mb.menus[i].Items
	return geom.R(hr.X, mb.Bounds().Bottom(), mb.dropdownWidth(items), mb.listHeight(items))
}

// forEachItem walks rows top to bottom; fn returning true stops the walk.
func (mb *MenuBar) forEachItem(lr geom.Rect, items []*MenuItem, fn func(idx int, mi *MenuItem, row geom.Rect) bool) {
	y := lr.Y + mb.listPad()
	for i, mi := range items {
		h := mb.itemHeight(mi)
		if fn(i, mi, geom.R(lr.X, y, lr.W, h)) {
			return
		}
		y += h
	}
}

func (mb *MenuBar) itemAt(lr geom.Rect, items []*MenuItem, x, y float32) int {
	found := -1
	mb.forEachItem(lr, items, func(idx int, mi *MenuItem, row geom.Rect) bool {
		if row.ContainsXY(x, y) {
			found = idx
			return true
		}
		return false
	})
	return found
}

func (mb *MenuBar) openItems() []*MenuItem {
	if mb.openIndex < 0 {
		return nil
	}
	return mb.menus[mb.openIndex].Items
}

// subParent returns the submenu item whose child list is open, if any.
func (mb *MenuBar) subParent() *MenuItem {
	items := mb.openItems()
	if items == nil || mb.subIndex < 0 || mb.subIndex >= len(items) {
		return nil
	}
	return items[mb.subIndex]
}

func (mb *MenuBar) subListRect() (geom.Rect, bool) {
	parent := mb.subParent()
	if parent == nil || len(parent.Items) == 0 {
		return geom.Rect{}, false
	}
	lr := mb.listRect(mb.openIndex)
	var anchorY float32
	mb.forEachItem(lr, mb.openItems(), func(idx int, mi *MenuItem, row geom.Rect) bool {
		if idx == mb.subIndex {
			anchorY = row.Y
			return true
		}
		return false
	})
	w := mb.dropdownWidth(parent.Items)
	h := mb.listHeight(parent.Items)
	return geom.R(lr.Right(), anchorY-mb.listPad(), w, h), true
}

// activate runs a leaf item. It reports whether the menu should close;
// separators, disabled rows and submenu parents leave it open.
func (mb *MenuBar) activate(mi *MenuItem) bool {
	if mi.separator || mi.Disabled || len(mi.Items) > 0 {
		return false
	}
	if mi.Checked != nil {
		*mi.Checked = !*mi.Checked
	}
	if mi.Action != nil {
		mi.Action()
	}
	return true
}

func (mb *MenuBar) Paint(r Renderer) {
	th := mb.env.Theme
	r.DrawRect(mb.Bounds(), th.Palette.MenuBarBg)

	f := mb.env.DefaultFace()
	for i, m := range mb.menus {
		hr := mb.headerRect(i)
		if i == mb.openIndex || (mb.openIndex < 0 && i == mb.hoverHeader) {
			r.DrawRect(hr, th.Palette.MenuHeaderHover)
		}
		if f != nil {
			r.DrawText(m.Title, geom.V(hr.X+th.Padding(), centerTextY(hr, f)), f, th.Palette.Text)
		}
	}

	if mb.openIndex >= 0 {
		mb.env.QueueOverlay(mb.paintOpenLists)
	}
}

// paintOpenLists runs in the overlay pass so dropdowns cover every window.
func (mb *MenuBar) paintOpenLists(r Renderer) {
	if mb.openIndex < 0 {
		return
	}
	mb.paintList(r, mb.listRect(mb.openIndex), mb.openItems(), mb.hoveredItem)
	if sr, ok := mb.subListRect(); ok {
		mb.paintList(r, sr, mb.subParent().Items, mb.subHovered)
	}
}

func (mb *MenuBar) paintList(r Renderer, lr geom.Rect, items []*MenuItem, hovered int) {
	th := mb.env.Theme
	pad := th.Padding()
	r.DrawRect(lr, th.Palette.DropdownBg)
	r.DrawRectOutline(lr, th.Sized(1), th.Palette.Separator)

	f := mb.env.DefaultFace()
	mb.forEachItem(lr, items, func(idx int, mi *MenuItem, row geom.Rect) bool {
		if mi.separator {
			h := th.Sized(1)
			if h < 1 {
				h = 1
			}
			r.DrawRect(geom.R(row.X+pad, row.Y+(row.H-h)/2, row.W-2*pad, h), th.Palette.Separator)
			return false
		}
		if idx == hovered && !mi.Disabled {
			r.DrawRect(row, th.Palette.DropdownHover)
		}
		if mi.Checked != nil && *mi.Checked {
			s := th.Sized(8)
			r.DrawRect(geom.R(row.X+pad+(th.MenuIconWidth()-s)/2, row.Y+(row.H-s)/2, s, s), th.Palette.CheckMark)
		}
		if f == nil {
			return false
		}
		tc := th.Palette.Text
		if mi.Disabled {
			tc = th.Palette.TextDisabled
		}
		r.DrawText(mi.Label, geom.V(row.X+pad+th.MenuIconWidth(), centerTextY(row, f)), f, tc)
		if mi.Shortcut != "" {
			sw := mb.measure(mi.Shortcut)
			sx := row.Right() - pad - sw
			if len(mi.Items) > 0 {
				sx -= th.MenuArrowWidth()
			}
			r.DrawText(mi.Shortcut, geom.V(sx, centerTextY(row, f)), f, th.Palette.TextMuted)
		}
		if len(mi.Items) > 0 {
			aw := mb.measure(">")
			r.DrawText(">", geom.V(row.Right()-pad-aw, centerTextY(row, f)), f, th.Palette.TextMuted)
		}
		return false
	})
}

func (mb *MenuBar) HandleMouse(ev core.MouseEvent) bool {
	mb.updateHover(ev)
	inBar := mb.Bounds().ContainsXY(ev.X, ev.Y)

	if mb.openIndex < 0 {
		mb.hoverHeader = -1
		if inBar {
			mb.hoverHeader = mb.headerAt(ev.X, ev.Y)
		}
		if ev.Pressed && ev.Button == core.MouseLeft && inBar {
			if h := mb.hoverHeader; h >= 0 {
				mb.openMenu(h)
			}
			return true
		}
		return false
	}

	lr := mb.listRect(mb.openIndex)
	items := mb.openItems()
	sr, hasSub := mb.subListRect()

	switch {
	case ev.Move():
		switch {
		case inBar:
			if h := mb.headerAt(ev.X, ev.Y); h >= 0 && h != mb.openIndex {
				mb.openMenu(h)
			}
			return true
		case hasSub && sr.ContainsXY(ev.X, ev.Y):
			mb.subHovered = mb.itemAt(sr, mb.subParent().Items, ev.X, ev.Y)
			return true
		case lr.ContainsXY(ev.X, ev.Y):
			mb.hoveredItem = mb.itemAt(lr, items, ev.X, ev.Y)
			mb.subHovered = -1
			if mb.hoveredItem >= 0 && len(items[mb.hoveredItem].Items) > 0 {
				mb.subIndex = mb.hoveredItem
			} else if mb.hoveredItem >= 0 {
				mb.subIndex = -1
			}
			return true
		default:
			mb.hoveredItem = -1
			return false
		}

	case ev.Pressed && ev.Button == core.MouseLeft:
		switch {
		case hasSub && sr.ContainsXY(ev.X, ev.Y):
			if idx := mb.itemAt(sr, mb.subParent().Items, ev.X, ev.Y); idx >= 0 {
				if mb.activate(mb.subParent().Items[idx]) {
					mb.closeAll()
				}
			}
			return true
		case lr.ContainsXY(ev.X, ev.Y):
			if idx := mb.itemAt(lr, items, ev.X, ev.Y); idx >= 0 {
				mi := items[idx]
				if len(mi.Items) > 0 {
					if mb.subIndex == idx {
						mb.subIndex = -1
					} else {
						mb.subIndex = idx
					}
				} else if mb.activate(mi) {
					mb.closeAll()
				}
			}
			return true
		case inBar:
			if h := mb.headerAt(ev.X, ev.Y); h >= 0 && h != mb.openIndex {
				mb.openMenu(h)
			} else {
				mb.closeAll()
			}
			return true
		default:
			// Outside press closes and falls through to whatever is under it.
			mb.closeAll()
			return false
		}

	case ev.Released:
		if inBar || lr.ContainsXY(ev.X, ev.Y) || (hasSub && sr.ContainsXY(ev.X, ev.Y)) {
			return true
		}
		return false
	}
	return false
}

func (mb *MenuBar) HandleKey(ev core.KeyEvent) bool {
	if ev.Pressed && ev.Key == core.KeyEscape && mb.openIndex >= 0 {
		mb.closeAll()
		return true
	}
	return false
}
