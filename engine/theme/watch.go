package theme

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/scale"
)

// Watch reloads the theme file whenever it changes on disk and hands the
// result to fn. Intended for live theme editing during development.
//
// fn runs on the watcher goroutine; the embedder is responsible for
// carrying the new theme over to the UI thread (swap it between frames).
// The returned stop function releases the watcher.
func Watch(path string, s *scale.Scale, fn func(*Theme, error)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors commonly replace the file on save,
	// which drops a watch installed on the file itself.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	base := filepath.Base(path)

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				t, lerr := LoadFile(path, s)
				if lerr != nil {
					core.Logger().Warn("theme reload failed", "path", path, "err", lerr)
				}
				fn(t, lerr)
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				core.Logger().Warn("theme watcher error", "err", werr)
			}
		}
	}()

	return func() { w.Close() }, nil
}
