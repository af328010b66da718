package text

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/scale"
)

// Families bundled with the engine so text works before any font file
// is loaded from disk.
const (
	DefaultFamily = "Go"
	MonoFamily    = "Go Mono"
)

type faceKey struct {
	family string
	px     int
	weight Weight
}

// Library owns the font families, the shared glyph atlas and the face
// cache. Faces are built lazily on first request and evicted together
// whenever the atlas grows or the UI scale changes. UI thread only.
type Library struct {
	scale    *scale.Scale
	atlas    *Atlas
	families map[string]*family
	faces    map[faceKey]*Face
}

// NewLibrary builds a library with the bundled Go families registered.
// The scale service may be nil, in which case faces never go stale.
func NewLibrary(s *scale.Scale) *Library {
	lib := &Library{
		scale:    s,
		families: make(map[string]*family),
		faces:    make(map[faceKey]*Face),
	}
	lib.atlas = NewAtlas(lib.invalidateFaces)

	builtins := map[string]map[Weight][]byte{
		DefaultFamily: {WeightRegular: goregular.TTF, WeightBold: gobold.TTF},
		MonoFamily:    {WeightRegular: gomono.TTF, WeightBold: gomonobold.TTF},
	}
	for name, data := range builtins {
		if err := lib.RegisterFamilyBytes(name, data); err != nil {
			core.Logger().Error("register builtin font family", "family", name, "error", err)
		}
	}
	return lib
}

// LoadFamily registers a family from font files on disk. Regular is
// required; bold and light are optional and fall back to regular when
// a face of that weight is requested.
func (l *Library) LoadFamily(name string, src FamilySources) error {
	fam, err := parseFamily(name, src)
	if err != nil {
		return err
	}
	l.families[name] = fam
	core.Logger().Info("font family loaded", "family", name, "weights", len(fam.fonts))
	return nil
}

// RegisterFamilyBytes registers a family from in-memory font data,
// typically embedded files.
func (l *Library) RegisterFamilyBytes(name string, data map[Weight][]byte) error {
	fam, err := parseFamilyBytes(name, data)
	if err != nil {
		return err
	}
	l.families[name] = fam
	return nil
}

// HasFamily reports whether name was registered.
func (l *Library) HasFamily(name string) bool {
	_, ok := l.families[name]
	return ok
}

// GetFace returns the cached face for the triple, building it on first
// use. Unknown families are an error; unknown weights fall back to the
// family's regular font.
func (l *Library) GetFace(familyName string, px int, weight Weight) (*Face, error) {
	l.Maintain()
	if px < 1 {
		px = 1
	}
	key := faceKey{familyName, px, weight}
	if f, ok := l.faces[key]; ok {
		return f, nil
	}
	fam, ok := l.families[familyName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
	}

	// A grow during the build discards everything packed so far,
	// including this face's own glyphs. The generation counter detects
	// that and the build restarts against the bigger page. Two grows
	// separate the initial size from the ceiling, so this settles.
	for {
		gen := l.atlas.Generation()
		f, err := buildFace(fam, px, weight, l.atlas)
		if err != nil {
			return nil, err
		}
		if l.atlas.Generation() == gen {
			l.faces[key] = f
			return f, nil
		}
		f.Close()
	}
}

// SizedFace resolves an abstract point size through the scale service
// and returns the face at the resulting pixel size.
func (l *Library) SizedFace(familyName string, points float32, weight Weight) (*Face, error) {
	px := int(points + 0.5)
	if l.scale != nil {
		px = l.scale.FontPixelSize(points)
	}
	return l.GetFace(familyName, px, weight)
}

// Maintain evicts stale faces after a scale change. GetFace calls it on
// every lookup; frame loops may also call it directly so the reload
// flag clears even on frames with no text.
func (l *Library) Maintain() {
	if l.scale == nil || !l.scale.FontsNeedReload() {
		return
	}
	l.invalidateFaces()
	l.atlas.Reset()
	l.scale.ClearFontsReload()
}

// invalidateFaces drops every cached face. Runs as the atlas grow
// callback and on scale changes.
func (l *Library) invalidateFaces() {
	if len(l.faces) == 0 {
		return
	}
	for _, f := range l.faces {
		f.Close()
	}
	l.faces = make(map[faceKey]*Face)
	core.Logger().Debug("font faces invalidated")
}

// Atlas exposes the shared glyph page for rendering and upload.
func (l *Library) Atlas() *Atlas { return l.atlas }

// Close drops all faces and releases the atlas texture.
func (l *Library) Close() {
	l.invalidateFaces()
	l.atlas.Destroy()
}
