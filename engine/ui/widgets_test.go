package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

func TestButtonClickFiresOnReleaseInside(t *testing.T) {
	env := newTestEnv(t)
	c := 0
	b := NewButton(env, "OK", func() { c++ })
	b.SetBounds(geom.R(10, 10, 100, 24))

	require.True(t, b.HandleMouse(press(60, 22)))
	assert.True(t, b.Pressed())
	assert.Same(t, b, env.grab)

	require.True(t, b.HandleMouse(release(60, 22)))
	assert.Equal(t, 1, c)
	assert.True(t, b.Hovered())
	assert.False(t, b.Pressed())
	assert.Nil(t, env.grab)
}

func TestButtonDragOffCancelsClick(t *testing.T) {
	env := newTestEnv(t)
	c := 0
	b := NewButton(env, "OK", func() { c++ })
	b.SetBounds(geom.R(10, 10, 100, 24))

	require.True(t, b.HandleMouse(press(60, 22)))
	b.HandleMouse(move(300, 300))
	require.True(t, b.HandleMouse(release(300, 300)))

	assert.Zero(t, c)
	assert.False(t, b.Pressed())
	assert.Nil(t, env.grab)
}

func TestButtonPressOutsideIgnored(t *testing.T) {
	env := newTestEnv(t)
	b := NewButton(env, "OK", nil)
	b.SetBounds(geom.R(10, 10, 100, 24))

	assert.False(t, b.HandleMouse(press(5, 5)))
	assert.False(t, b.Pressed())
	assert.Nil(t, env.grab)
}

func TestButtonDisabledIsInert(t *testing.T) {
	env := newTestEnv(t)
	c := 0
	b := NewButton(env, "OK", func() { c++ })
	b.SetBounds(geom.R(10, 10, 100, 24))
	b.SetEnabled(false)

	assert.False(t, b.HandleMouse(press(60, 22)))
	assert.False(t, b.HandleMouse(release(60, 22)))
	assert.Zero(t, c)
}

func TestCheckboxTogglesOnClick(t *testing.T) {
	env := newTestEnv(t)
	var state []bool
	cb := NewCheckbox(env, "Enable", false, func(v bool) { state = append(state, v) })
	cb.SetBounds(geom.R(0, 0, 150, 24))

	require.True(t, cb.HandleMouse(press(8, 12)))
	require.True(t, cb.HandleMouse(release(8, 12)))
	assert.True(t, cb.Checked)

	require.True(t, cb.HandleMouse(press(8, 12)))
	require.True(t, cb.HandleMouse(release(8, 12)))
	assert.False(t, cb.Checked)

	assert.Equal(t, []bool{true, false}, state)
}

func TestCheckboxReleaseOutsideDoesNotToggle(t *testing.T) {
	env := newTestEnv(t)
	cb := NewCheckbox(env, "Enable", false, nil)
	cb.SetBounds(geom.R(0, 0, 150, 24))

	require.True(t, cb.HandleMouse(press(8, 12)))
	cb.HandleMouse(move(300, 300))
	require.True(t, cb.HandleMouse(release(300, 300)))
	assert.False(t, cb.Checked)
}

func TestSliderPressLeftOfTrackClampsToMin(t *testing.T) {
	env := newTestEnv(t)
	var got []float32
	s := NewSlider(env, 0, 1, 0.5, func(v float32) { got = append(got, v) })
	s.SetBounds(geom.R(80, 0, 200, 20))

	// Handle is 20 wide, so x=90 puts its center at the very start of the
	// usable travel.
	require.True(t, s.HandleMouse(press(90, 10)))
	require.True(t, s.HandleMouse(release(90, 10)))

	assert.Equal(t, []float32{0}, got)
	assert.Equal(t, float32(0), s.Value)
	assert.False(t, s.Dragging())
}

func TestSliderDragSweepsRange(t *testing.T) {
	env := newTestEnv(t)
	var got []float32
	s := NewSlider(env, 0, 1, 0, func(v float32) { got = append(got, v) })
	s.SetBounds(geom.R(80, 0, 200, 20))

	require.True(t, s.HandleMouse(press(180, 10)))   // mid travel
	require.True(t, s.HandleMouse(move(270, 10)))    // right end
	require.True(t, s.HandleMouse(move(400, 10)))    // past the end, clamped
	require.True(t, s.HandleMouse(release(400, 10))) // no further change

	assert.Equal(t, []float32{0.5, 1}, got)
	assert.Equal(t, float32(1), s.Value)
}

func TestSliderIgnoresOtherButtons(t *testing.T) {
	env := newTestEnv(t)
	s := NewSlider(env, 0, 1, 0.5, nil)
	s.SetBounds(geom.R(80, 0, 200, 20))

	ev := press(90, 10)
	ev.Button = core.MouseRight
	assert.False(t, s.HandleMouse(ev))
	assert.Equal(t, float32(0.5), s.Value)
}

func TestTextFieldFocusAndEditing(t *testing.T) {
	env := newTestEnv(t)
	var changes []string
	f := NewTextField(env, "")
	f.OnChange = func(s string) { changes = append(changes, s) }
	f.SetBounds(geom.R(0, 0, 120, 24))

	require.True(t, f.HandleMouse(press(5, 12)))
	require.True(t, f.Focused())

	require.True(t, f.HandleKey(core.KeyEvent{Pressed: true, Rune: 'h'}))
	require.True(t, f.HandleKey(core.KeyEvent{Pressed: true, Rune: 'i'}))
	assert.Equal(t, "hi", f.Text)

	require.True(t, f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyBackspace}))
	assert.Equal(t, "h", f.Text)
	assert.Equal(t, []string{"h", "hi", "h"}, changes)
}

func TestTextFieldCaretNavigation(t *testing.T) {
	env := newTestEnv(t)
	f := NewTextField(env, "abc")
	f.SetBounds(geom.R(0, 0, 120, 24))
	env.SetFocus(f)

	f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyHome})
	f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyDelete})
	assert.Equal(t, "bc", f.Text)

	f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyRight})
	f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyDelete})
	assert.Equal(t, "b", f.Text)

	f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyEnd})
	f.HandleKey(core.KeyEvent{Pressed: true, Rune: '!'})
	assert.Equal(t, "b!", f.Text)
}

func TestTextFieldSubmitAndEscape(t *testing.T) {
	env := newTestEnv(t)
	var submitted string
	f := NewTextField(env, "ready")
	f.OnSubmit = func(s string) { submitted = s }
	f.SetBounds(geom.R(0, 0, 120, 24))
	env.SetFocus(f)

	require.True(t, f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyEnter}))
	assert.Equal(t, "ready", submitted)

	require.True(t, f.HandleKey(core.KeyEvent{Pressed: true, Key: core.KeyEscape}))
	assert.False(t, f.Focused())
}

func TestTextFieldIgnoresKeysWhenUnfocused(t *testing.T) {
	env := newTestEnv(t)
	f := NewTextField(env, "abc")
	f.SetBounds(geom.R(0, 0, 120, 24))

	assert.False(t, f.HandleKey(core.KeyEvent{Pressed: true, Rune: 'x'}))
	assert.Equal(t, "abc", f.Text)
}

func TestTextFieldClickPlacesCaret(t *testing.T) {
	env := newTestEnv(t)
	f := NewTextField(env, "hello")
	f.SetBounds(geom.R(0, 0, 200, 24))

	require.True(t, f.HandleMouse(press(4, 12)))
	assert.Equal(t, 0, f.caret)

	require.True(t, f.HandleMouse(press(190, 12)))
	assert.Equal(t, 5, f.caret)
}

func TestDropdownOpensAndCommits(t *testing.T) {
	env := newTestEnv(t)
	var picked []int
	d := NewDropdown(env, []string{"Low", "Medium", "High"}, 0, func(i int) { picked = append(picked, i) })
	d.SetBounds(geom.R(0, 0, 100, 24))

	require.True(t, d.HandleMouse(press(50, 12)))
	require.True(t, d.Open())
	require.True(t, env.PopupOpen(d))

	// Second row of the list: items are 24 high starting at y=24.
	require.True(t, d.HandleMouse(press(50, 60)))
	assert.False(t, d.Open())
	assert.False(t, env.PopupOpen(d))
	assert.Equal(t, 1, d.Selected)
	assert.Equal(t, []int{1}, picked)
}

func TestDropdownOutsidePressClosesWithoutCommit(t *testing.T) {
	env := newTestEnv(t)
	var picked []int
	d := NewDropdown(env, []string{"Low", "Medium", "High"}, 2, func(i int) { picked = append(picked, i) })
	d.SetBounds(geom.R(0, 0, 100, 24))

	require.True(t, d.HandleMouse(press(50, 12)))
	require.True(t, d.Open())

	// Outside both chrome and list: close, do not consume.
	assert.False(t, d.HandleMouse(press(400, 300)))
	assert.False(t, d.Open())
	assert.False(t, env.PopupOpen(d))
	assert.Equal(t, 2, d.Selected)
	assert.Empty(t, picked)
}

func TestDropdownToggleClickCloses(t *testing.T) {
	env := newTestEnv(t)
	d := NewDropdown(env, []string{"Low", "High"}, 0, nil)
	d.SetBounds(geom.R(0, 0, 100, 24))

	require.True(t, d.HandleMouse(press(50, 12)))
	require.True(t, d.Open())
	require.True(t, d.HandleMouse(press(50, 12)))
	assert.False(t, d.Open())
}

func TestDropdownHoverTracksRows(t *testing.T) {
	env := newTestEnv(t)
	d := NewDropdown(env, []string{"Low", "Medium", "High"}, 0, nil)
	d.SetBounds(geom.R(0, 0, 100, 24))

	require.True(t, d.HandleMouse(press(50, 12)))
	require.True(t, d.HandleMouse(move(50, 84))) // third row
	assert.Equal(t, 2, d.hoveredItem)

	d.HandleMouse(move(500, 500))
	assert.Equal(t, -1, d.hoveredItem)
}

func TestLabelNeverConsumes(t *testing.T) {
	env := newTestEnv(t)
	l := NewLabel(env, "status")
	l.SetBounds(geom.R(0, 0, 100, 24))

	assert.False(t, l.HandleMouse(press(50, 12)))
	assert.False(t, l.HandleMouse(release(50, 12)))
}

func TestLabelWrapGrowsHeight(t *testing.T) {
	env := newTestEnv(t)
	l := NewLabel(env, "several words that will not fit on one narrow line")
	l.Wrap = true

	l.Layout(geom.R(0, 0, 80, 24))

	f := env.DefaultFace()
	require.NotNil(t, f)
	lines := len(f.Wrap(l.Text, 80))
	require.Greater(t, lines, 1)
	assert.Equal(t, float32(lines)*f.LineHeight(), l.Bounds().H)
}
