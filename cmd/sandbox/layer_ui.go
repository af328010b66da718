package main

import (
	"sync/atomic"

	"github.com/loomkit/loom/engine/assets"
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/gfx/batch"
	"github.com/loomkit/loom/engine/profiler"
	"github.com/loomkit/loom/engine/scale"
	"github.com/loomkit/loom/engine/scratch"
	"github.com/loomkit/loom/engine/text"
	"github.com/loomkit/loom/engine/theme"
	"github.com/loomkit/loom/engine/ui"
)

const themePath = "assets/themes/dark.toml"

// LayerUI hosts the widget tree: the menu bar, the demo panels, a
// floating inspector window and the preferences window.
type LayerUI struct {
	mgr   *ui.Manager
	batch *batch.Batcher
	fonts *text.Library
	sc    *scale.Scale

	prefs     *ui.Preferences
	inspector *ui.Window
	status    *ui.Label

	stats       batch.Statistics
	showOverlay bool

	// reloaded carries themes from the watcher goroutine to the UI
	// thread; OnUpdate swaps them in between frames.
	reloaded  atomic.Pointer[theme.Theme]
	stopWatch func()
}

func (l *LayerUI) OnAttach(e *core.Engine) {
	l.sc = scale.New()
	l.sc.Initialize(e.Window.ContentScale())
	l.fonts = text.NewLibrary(l.sc)

	th, err := theme.LoadFile(themePath, l.sc)
	if err != nil {
		core.Logger().Debug("theme file unavailable, using built-in dark", "error", err)
		th = theme.Dark(l.sc)
	}

	b, err := batch.New(e.Device, l.fonts)
	if err != nil {
		core.Logger().Error("ui batcher init", "error", err)
		e.Window.RequestClose()
		return
	}
	l.batch = b

	l.mgr = ui.NewManager(th, l.fonts, l.sc)
	l.buildMenuBar(e)
	l.buildPanels()
	l.buildWindows()

	w, h := e.Window.FramebufferSize()
	l.mgr.Resize(w, h)

	if stop, werr := theme.Watch(themePath, l.sc, func(t *theme.Theme, lerr error) {
		if lerr == nil {
			l.reloaded.Store(t)
		}
	}); werr == nil {
		l.stopWatch = stop
	}
}

func (l *LayerUI) OnDetach(e *core.Engine) {
	if l.stopWatch != nil {
		l.stopWatch()
	}
	if l.fonts != nil {
		l.fonts.Close()
	}
}

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {
	if t := l.reloaded.Swap(nil); t != nil && l.mgr != nil {
		l.mgr.SetTheme(t)
		l.setStatus("theme reloaded: " + t.Name)
	}
}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	if l.mgr == nil || l.batch == nil {
		return
	}
	defer profiler.Start("ui.frame")()

	l.mgr.Frame(l.batch)
	l.stats = l.batch.Statistics()
}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool {
	if l.mgr == nil {
		return false
	}
	return l.mgr.HandleEvent(ev)
}

func (l *LayerUI) setStatus(s string) {
	if l.status != nil {
		l.status.Text = s
	}
}

func (l *LayerUI) buildMenuBar(e *core.Engine) {
	env := l.mgr.Env()

	file := ui.NewMenu("File",
		ui.NewMenuItem("New Scene", func() { l.setStatus("new scene") }),
		&ui.MenuItem{Label: "Open...", Shortcut: "Ctrl+O", Action: func() { l.setStatus("open scene") }},
		&ui.MenuItem{Label: "Save", Shortcut: "Ctrl+S", Action: func() { l.setStatus("saved") }},
		ui.NewMenuSeparator(),
		ui.NewMenuItem("Exit", func() { e.Window.RequestClose() }),
	)

	edit := ui.NewMenu("Edit",
		&ui.MenuItem{Label: "Undo", Shortcut: "Ctrl+Z", Action: func() { l.setStatus("undo") }},
		&ui.MenuItem{Label: "Redo", Shortcut: "Ctrl+Y", Disabled: true},
		ui.NewMenuSeparator(),
		ui.NewMenuItem("Preferences...", func() {
			l.prefs.Show()
			l.mgr.Raise(l.prefs)
		}),
	)

	view := ui.NewMenu("View",
		ui.NewMenuToggle("Debug Overlay", &l.showOverlay, nil),
		ui.NewMenuItem("Inspector", func() {
			l.inspector.Show()
			l.mgr.Raise(l.inspector)
		}),
		ui.NewSubMenu("Theme",
			ui.NewMenuItem("Dark", func() { l.mgr.SetTheme(theme.Dark(l.sc)) }),
			ui.NewMenuItem("Light", func() { l.mgr.SetTheme(theme.Light(l.sc)) }),
		),
		ui.NewSubMenu("Scale",
			ui.NewMenuItem("100%", func() { l.sc.SetUserScale(1) }),
			ui.NewMenuItem("150%", func() { l.sc.SetUserScale(1.5) }),
			ui.NewMenuItem("200%", func() { l.sc.SetUserScale(2) }),
		),
		ui.NewMenuSeparator(),
		ui.NewMenuItem("Save Profile", func() {
			path, err := profiler.OpenGraph()
			if err != nil {
				l.setStatus(err.Error())
				return
			}
			l.setStatus("profile: " + path)
		}),
	)

	l.mgr.SetMenuBar(ui.NewMenuBar(env, file, edit, view))
}

func (l *LayerUI) buildPanels() {
	env := l.mgr.Env()

	controls := ui.NewPanel(env, "Controls")
	speedLabel := ui.NewLabel(env, "Speed 1.00x")
	run := ui.NewButton(env, "Run", func() { l.setStatus("run clicked") })
	loop := ui.NewCheckbox(env, "Loop playback", false, func(v bool) {
		m := scratch.Mark()
		scratch.F().S("loop ").Bool(v)
		l.setStatus(scratch.StringFrom(m))
	})
	speed := ui.NewSlider(env, 0, 2, 1, func(v float32) {
		m := scratch.Mark()
		scratch.F().S("Speed ").F64(float64(v), 2).C('x')
		speedLabel.Text = scratch.StringFrom(m)
	})
	name := ui.NewTextField(env, "untitled")
	name.Placeholder = "scene name"
	name.OnSubmit = func(s string) { l.setStatus("scene named " + s) }
	quality := ui.NewDropdown(env, []string{"Low", "Medium", "High", "Ultra"}, 1, func(i int) {
		l.setStatus("quality changed")
	})
	controls.AddChild(run, loop, speed, speedLabel, ui.NewSeparator(env), name, quality)

	session := ui.NewCollapsiblePanel(env, "Session Log")
	scroll := ui.NewScrollArea(env, 160)
	for i := 0; i < 24; i++ {
		m := scratch.Mark()
		scratch.F().S("entry ").I(i).S(": sandbox line")
		scroll.AddChild(ui.NewLabel(env, scratch.StringFrom(m)))
	}
	session.AddChild(scroll)

	l.status = ui.NewLabel(env, "ready")
	l.mgr.Add(controls, session, l.status)
}

func (l *LayerUI) buildWindows() {
	env := l.mgr.Env()

	insp := ui.NewWindow(env, "Inspector", geom.R(560, 80, 300, 260))
	tabs := ui.NewTabs(env)
	posField := ui.NewTextField(env, "0, 0")
	visible := ui.NewCheckbox(env, "Visible", true, nil)
	tabs.AddTab("Object", posField, visible)
	tabs.AddTab("Stats", ui.NewLabel(env, "No selection"))
	insp.AddChild(tabs)
	insp.OnClose = func() { l.setStatus("inspector closed") }
	l.inspector = insp
	l.mgr.AddWindow(insp)

	prefs := ui.NewPreferences(env, "Preferences", geom.R(240, 120, 460, 320))

	autosave := ui.NewCheckbox(env, "Autosave", true, nil)
	recentLabel := ui.NewLabel(env, "Recent files kept")
	recent := ui.NewSlider(env, 0, 20, 10, nil)
	prefs.AddTab("General", autosave, recentLabel, recent)

	themeSel := ui.NewDropdown(env, []string{"Dark", "Light"}, 0, func(i int) {
		if i == 0 {
			l.mgr.SetTheme(theme.Dark(l.sc))
		} else {
			l.mgr.SetTheme(theme.Light(l.sc))
		}
	})
	families := append([]string{text.DefaultFamily, text.MonoFamily}, assets.ListFontFamilies()...)
	fontSel := ui.NewDropdown(env, families, 0, func(i int) {
		l.selectFamily(families[i])
	})
	uiScale := ui.NewSlider(env, 0.5, 3, l.sc.UserScale(), func(v float32) {
		l.sc.SetUserScale(v)
	})
	prefs.AddTab("Appearance", themeSel, fontSel, ui.NewLabel(env, "UI scale"), uiScale)

	clickLabel := ui.NewLabel(env, "Double-click ms")
	click := ui.NewSlider(env, 100, 600, 300, nil)
	prefs.AddTab("Input", clickLabel, click)

	prefs.Close() // opened from Edit > Preferences
	l.prefs = prefs
	l.mgr.AddWindow(prefs)
}

// selectFamily switches the UI font, loading the family from
// assets/fonts on first use.
func (l *LayerUI) selectFamily(fam string) {
	if !l.fonts.HasFamily(fam) {
		src, err := assets.FindFontFamily(fam)
		if err == nil {
			err = l.fonts.LoadFamily(fam, src)
		}
		if err != nil {
			l.setStatus(err.Error())
			return
		}
	}
	l.mgr.Env().Family = fam
	l.setStatus("font: " + fam)
}
