package text

import (
	"errors"
	"fmt"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

const (
	// AtlasPadding is the gap reserved around every packed glyph so that
	// linear filtering never bleeds neighbouring coverage into a quad.
	AtlasPadding = 2

	// InitialAtlasSize is the side length of a fresh atlas page.
	InitialAtlasSize = 1024

	// MaxAtlasSize caps growth. Once both dimensions reach this, packing
	// failures become permanent for the current population.
	MaxAtlasSize = 4096
)

// ErrAtlasFull is returned by Pack when the page cannot grow any further.
var ErrAtlasFull = errors.New("text: glyph atlas full")

// Atlas is a single-channel glyph page packed with a shelf allocator.
// The CPU pixel buffer is authoritative; the GPU texture is a copy that
// is refreshed by Flush whenever the page is dirty. All methods must be
// called from the UI thread.
type Atlas struct {
	width  int
	height int
	pixels []byte

	cursorX   int
	cursorY   int
	rowHeight int

	dirty      bool
	generation uint64

	tex     core.Texture
	texW    int
	texH    int
	dev     core.Device
	uploads int

	onInvalidate func()
}

// NewAtlas allocates an empty page at the initial size. The invalidate
// callback fires after every grow, once the old contents are gone; glyph
// caches holding UVs into the page must drop them there.
func NewAtlas(onInvalidate func()) *Atlas {
	return &Atlas{
		width:        InitialAtlasSize,
		height:       InitialAtlasSize,
		pixels:       make([]byte, InitialAtlasSize*InitialAtlasSize),
		onInvalidate: onInvalidate,
	}
}

// Size returns the current page dimensions in pixels.
func (a *Atlas) Size() (w, h int) { return a.width, a.height }

// Generation increments on every grow. Callers populating the page can
// compare generations to detect that earlier packs were discarded.
func (a *Atlas) Generation() uint64 { return a.generation }

// Dirty reports whether the CPU buffer has edits not yet uploaded.
func (a *Atlas) Dirty() bool { return a.dirty }

// Pack reserves a region for a w by h alpha bitmap, copies it into the
// CPU buffer and returns the UV rectangle of the glyph itself (padding
// excluded). A zero-area bitmap packs nowhere and returns zero UVs.
func (a *Atlas) Pack(bitmap []byte, w, h int) (uvMin, uvMax geom.Vec2, err error) {
	if w <= 0 || h <= 0 {
		return geom.Vec2{}, geom.Vec2{}, nil
	}
	if len(bitmap) < w*h {
		return geom.Vec2{}, geom.Vec2{}, fmt.Errorf("text: glyph bitmap %dx%d short: %d bytes", w, h, len(bitmap))
	}

	paddedW := w + 2*AtlasPadding
	paddedH := h + 2*AtlasPadding

	// A bitmap that cannot fit even a fully grown page is rejected before
	// any grow discards the live population for nothing.
	if paddedW > MaxAtlasSize || paddedH > MaxAtlasSize {
		return geom.Vec2{}, geom.Vec2{}, ErrAtlasFull
	}
	// The shelf wrap below only places within the page; a bitmap exceeding
	// the page in either dimension needs the page itself enlarged first.
	for paddedW > a.width || paddedH > a.height {
		if !a.grow() {
			return geom.Vec2{}, geom.Vec2{}, ErrAtlasFull
		}
	}

	if a.cursorX+paddedW > a.width {
		a.cursorX = 0
		a.cursorY += a.rowHeight + AtlasPadding
		a.rowHeight = 0
	}
	if a.cursorY+paddedH > a.height {
		if !a.grow() {
			return geom.Vec2{}, geom.Vec2{}, ErrAtlasFull
		}
		// The page is empty again; the cursor sits at the origin and
		// this glyph becomes its first occupant.
	}

	x := a.cursorX + AtlasPadding
	y := a.cursorY + AtlasPadding
	for row := 0; row < h; row++ {
		copy(a.pixels[(y+row)*a.width+x:], bitmap[row*w:(row+1)*w])
	}

	a.cursorX += paddedW
	if paddedH > a.rowHeight {
		a.rowHeight = paddedH
	}
	a.dirty = true

	fw := float32(a.width)
	fh := float32(a.height)
	uvMin = geom.V(float32(x)/fw, float32(y)/fh)
	uvMax = geom.V(float32(x+w)/fw, float32(y+h)/fh)
	return uvMin, uvMax, nil
}

// grow doubles the page up to MaxAtlasSize. The old contents are
// discarded rather than copied: every glyph UV in circulation is stale
// after a resize anyway, so caches rebuild from scratch.
func (a *Atlas) grow() bool {
	if a.width >= MaxAtlasSize && a.height >= MaxAtlasSize {
		return false
	}
	a.width = geom.ClampInt(a.width*2, InitialAtlasSize, MaxAtlasSize)
	a.height = geom.ClampInt(a.height*2, InitialAtlasSize, MaxAtlasSize)
	a.pixels = make([]byte, a.width*a.height)
	a.cursorX = 0
	a.cursorY = 0
	a.rowHeight = 0
	a.generation++
	a.dirty = true

	core.Logger().Info("glyph atlas grown",
		"width", a.width,
		"height", a.height,
		"generation", a.generation,
	)

	if a.onInvalidate != nil {
		a.onInvalidate()
	}
	return true
}

// Reset empties the page without resizing it. Used when every cached
// glyph is being discarded anyway, e.g. after a UI scale change, so the
// space is reclaimed instead of leaking until the next grow. Does not
// fire the invalidate callback; the caller is already invalidating.
func (a *Atlas) Reset() {
	for i := range a.pixels {
		a.pixels[i] = 0
	}
	a.cursorX = 0
	a.cursorY = 0
	a.rowHeight = 0
	a.generation++
	a.dirty = true
}

// Flush uploads the CPU buffer to the GPU if it changed. The texture is
// created on first use and recreated after a grow. On upload failure the
// page stays dirty so the next frame retries.
func (a *Atlas) Flush(dev core.Device) error {
	if dev == nil {
		return nil
	}
	a.dev = dev

	if a.tex != nil && (a.texW != a.width || a.texH != a.height) {
		dev.DestroyTexture(a.tex)
		a.tex = nil
	}
	if a.tex == nil {
		tex, err := dev.CreateTexture(core.TextureDesc{
			Width:     a.width,
			Height:    a.height,
			Format:    core.TextureAlpha8,
			MinFilter: "linear",
			MagFilter: "linear",
			WrapU:     "clamp",
			WrapV:     "clamp",
		})
		if err != nil {
			return fmt.Errorf("text: create atlas texture: %w", err)
		}
		a.tex = tex
		a.texW = a.width
		a.texH = a.height
		a.dirty = true
	}

	if !a.dirty {
		return nil
	}
	if err := dev.UpdateTexture(a.tex, a.width, a.height, a.pixels); err != nil {
		return fmt.Errorf("text: upload atlas: %w", err)
	}
	a.dirty = false
	a.uploads++
	return nil
}

// Texture returns the GPU handle, or nil before the first Flush.
func (a *Atlas) Texture() core.Texture { return a.tex }

// Uploads counts completed GPU uploads, for diagnostics.
func (a *Atlas) Uploads() int { return a.uploads }

// Destroy releases the GPU texture. The CPU buffer survives, so a later
// Flush against a live device restores the page.
func (a *Atlas) Destroy() {
	if a.tex != nil && a.dev != nil {
		a.dev.DestroyTexture(a.tex)
	}
	a.tex = nil
	a.dirty = true
}
