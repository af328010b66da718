package text

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

type fakeDevice struct {
	created   int
	destroyed int
	uploads   int
	failNext  int
	lastDesc  core.TextureDesc
}

func (d *fakeDevice) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	return nil, errors.New("fake: no pipelines")
}

func (d *fakeDevice) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	d.created++
	d.lastDesc = desc
	return d.created, nil
}

func (d *fakeDevice) UpdateTexture(t core.Texture, w, h int, pixels []byte) error {
	if d.failNext > 0 {
		d.failNext--
		return errors.New("fake: upload failed")
	}
	d.uploads++
	return nil
}

func (d *fakeDevice) DestroyTexture(core.Texture) { d.destroyed++ }

func (d *fakeDevice) CreateMesh(core.MeshDesc) (core.Mesh, error) { return "mesh", nil }

func (d *fakeDevice) UpdateMesh(core.Mesh, []float32, []uint32) error { return nil }

func (d *fakeDevice) Draw(core.DrawCmd) error { return nil }

func (d *fakeDevice) Resize(int, int) {}

func (d *fakeDevice) Clear(r, g, b, a float32) {}

func (d *fakeDevice) Shutdown() {}

func solidBitmap(w, h int) []byte {
	b := make([]byte, w*h)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

// pixelRect converts a packed UV range back to atlas pixel coordinates.
func pixelRect(a *Atlas, uvMin, uvMax geom.Vec2) geom.Rect {
	w, h := a.Size()
	return geom.R(
		uvMin.X*float32(w),
		uvMin.Y*float32(h),
		(uvMax.X-uvMin.X)*float32(w),
		(uvMax.Y-uvMin.Y)*float32(h),
	)
}

func TestAtlasPackPlacesFirstGlyphPastPadding(t *testing.T) {
	a := NewAtlas(nil)
	uvMin, uvMax, err := a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)

	r := pixelRect(a, uvMin, uvMax)
	assert.InDelta(t, float32(AtlasPadding), r.X, 0.01)
	assert.InDelta(t, float32(AtlasPadding), r.Y, 0.01)
	assert.InDelta(t, 10, r.W, 0.01)
	assert.InDelta(t, 10, r.H, 0.01)
	assert.True(t, a.Dirty())
}

func TestAtlasPackZeroAreaIsNoop(t *testing.T) {
	a := NewAtlas(nil)
	uvMin, uvMax, err := a.Pack(nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{}, uvMin)
	assert.Equal(t, geom.Vec2{}, uvMax)
	assert.False(t, a.Dirty())
}

func TestAtlasPackShortBitmapRejected(t *testing.T) {
	a := NewAtlas(nil)
	_, _, err := a.Pack(make([]byte, 10), 10, 10)
	assert.Error(t, err)
}

func TestAtlasRegionsNeverOverlap(t *testing.T) {
	a := NewAtlas(nil)

	sizes := []struct{ w, h int }{
		{12, 16}, {7, 22}, {30, 9}, {16, 16}, {3, 40}, {50, 11},
	}
	var rects []geom.Rect
	for i := 0; i < 200; i++ {
		s := sizes[i%len(sizes)]
		uvMin, uvMax, err := a.Pack(solidBitmap(s.w, s.h), s.w, s.h)
		require.NoError(t, err)
		rects = append(rects, pixelRect(a, uvMin, uvMax))
	}

	w, h := a.Size()
	bounds := geom.R(0, 0, float32(w), float32(h))
	for i, r := range rects {
		assert.True(t, bounds.ContainsRect(r), "rect %d out of bounds: %+v", i, r)
		for j := i + 1; j < len(rects); j++ {
			assert.False(t, r.Overlaps(rects[j]), "rects %d and %d overlap: %+v %+v", i, j, r, rects[j])
		}
	}
}

func TestAtlasGrowDiscardsAndNotifies(t *testing.T) {
	invalidated := 0
	a := NewAtlas(func() { invalidated++ })

	// Two shelves of a 600px-tall bitmap cannot stack inside 1024, so
	// the second pack wraps to a new shelf and forces a grow.
	big := solidBitmap(600, 600)
	_, _, err := a.Pack(big, 600, 600)
	require.NoError(t, err)
	uvMin, uvMax, err := a.Pack(big, 600, 600)
	require.NoError(t, err)

	assert.Equal(t, 1, invalidated)
	assert.Equal(t, uint64(1), a.Generation())
	w, h := a.Size()
	assert.Equal(t, 2*InitialAtlasSize, w)
	assert.Equal(t, 2*InitialAtlasSize, h)

	// The triggering glyph landed at the origin of the fresh page.
	r := pixelRect(a, uvMin, uvMax)
	assert.InDelta(t, float32(AtlasPadding), r.X, 0.01)
	assert.InDelta(t, float32(AtlasPadding), r.Y, 0.01)
}

func TestAtlasFullAtCeiling(t *testing.T) {
	a := NewAtlas(nil)

	big := solidBitmap(1020, 1020)
	var err error
	for i := 0; i < 100; i++ {
		_, _, err = a.Pack(big, 1020, 1020)
		if err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrAtlasFull)

	w, h := a.Size()
	assert.Equal(t, MaxAtlasSize, w)
	assert.Equal(t, MaxAtlasSize, h)
}

func TestAtlasPackWiderThanPageGrowsFirst(t *testing.T) {
	a := NewAtlas(nil)

	// 1030+2*2 exceeds the 1024 page; a shelf wrap cannot make it fit.
	uvMin, uvMax, err := a.Pack(solidBitmap(1030, 4), 1030, 4)
	require.NoError(t, err)

	w, h := a.Size()
	assert.Equal(t, 2*InitialAtlasSize, w)
	assert.Equal(t, uint64(1), a.Generation())
	assert.LessOrEqual(t, uvMax.X, float32(1))
	assert.LessOrEqual(t, uvMax.Y, float32(1))
	r := pixelRect(a, uvMin, uvMax)
	assert.True(t, geom.R(0, 0, float32(w), float32(h)).ContainsRect(r), "glyph %+v outside page", r)
	assert.InDelta(t, 1030, r.W, 0.01)
}

func TestAtlasPackTallerThanDoubledPageGrowsTwice(t *testing.T) {
	a := NewAtlas(nil)

	// 2100+2*2 clears both the fresh page and one doubling to 2048.
	uvMin, uvMax, err := a.Pack(solidBitmap(8, 2100), 8, 2100)
	require.NoError(t, err)

	w, h := a.Size()
	assert.Equal(t, 4*InitialAtlasSize, h)
	assert.Equal(t, uint64(2), a.Generation())
	assert.LessOrEqual(t, uvMax.X, float32(1))
	assert.LessOrEqual(t, uvMax.Y, float32(1))
	r := pixelRect(a, uvMin, uvMax)
	assert.True(t, geom.R(0, 0, float32(w), float32(h)).ContainsRect(r), "glyph %+v outside page", r)
	assert.InDelta(t, 2100, r.H, 0.01)
}

func TestAtlasPackLargerThanCeilingRejected(t *testing.T) {
	a := NewAtlas(nil)
	fmin, fmax, err := a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)

	_, _, err = a.Pack(solidBitmap(8, 4100), 8, 4100)
	require.ErrorIs(t, err, ErrAtlasFull)
	_, _, err = a.Pack(solidBitmap(4100, 8), 4100, 8)
	require.ErrorIs(t, err, ErrAtlasFull)

	// The rejected bitmaps neither grew the page nor discarded its
	// contents.
	w, h := a.Size()
	assert.Equal(t, InitialAtlasSize, w)
	assert.Equal(t, InitialAtlasSize, h)
	assert.Equal(t, uint64(0), a.Generation())

	// The shelf cursor is untouched; the next glyph continues the row.
	nmin, nmax, err := a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)
	assert.InDelta(t, pixelRect(a, fmin, fmax).Right()+2*AtlasPadding, pixelRect(a, nmin, nmax).X, 0.01)
}

func TestAtlasFlushLifecycle(t *testing.T) {
	a := NewAtlas(nil)
	_, _, err := a.Pack(solidBitmap(8, 8), 8, 8)
	require.NoError(t, err)

	// No device: nothing happens, page stays dirty.
	require.NoError(t, a.Flush(nil))
	assert.True(t, a.Dirty())

	dev := &fakeDevice{}
	require.NoError(t, a.Flush(dev))
	assert.False(t, a.Dirty())
	assert.Equal(t, 1, dev.created)
	assert.Equal(t, 1, dev.uploads)
	assert.Equal(t, core.TextureAlpha8, dev.lastDesc.Format)

	// Clean page: flush is a no-op.
	require.NoError(t, a.Flush(dev))
	assert.Equal(t, 1, dev.uploads)

	// New pack dirties and re-uploads into the same texture.
	_, _, err = a.Pack(solidBitmap(8, 8), 8, 8)
	require.NoError(t, err)
	require.NoError(t, a.Flush(dev))
	assert.Equal(t, 2, dev.uploads)
	assert.Equal(t, 1, dev.created)
}

func TestAtlasFlushFailureKeepsDirty(t *testing.T) {
	a := NewAtlas(nil)
	_, _, err := a.Pack(solidBitmap(8, 8), 8, 8)
	require.NoError(t, err)

	dev := &fakeDevice{failNext: 1}
	require.Error(t, a.Flush(dev))
	assert.True(t, a.Dirty())

	// Next frame retries and succeeds.
	require.NoError(t, a.Flush(dev))
	assert.False(t, a.Dirty())
	assert.Equal(t, 1, dev.uploads)
}

func TestAtlasGrowRecreatesTexture(t *testing.T) {
	a := NewAtlas(nil)
	_, _, err := a.Pack(solidBitmap(8, 8), 8, 8)
	require.NoError(t, err)

	dev := &fakeDevice{}
	require.NoError(t, a.Flush(dev))

	big := solidBitmap(600, 600)
	for i := 0; i < 3; i++ {
		_, _, err = a.Pack(big, 600, 600)
		require.NoError(t, err)
	}
	require.Equal(t, uint64(1), a.Generation())

	require.NoError(t, a.Flush(dev))
	assert.Equal(t, 1, dev.destroyed)
	assert.Equal(t, 2, dev.created)
	assert.Equal(t, 2*InitialAtlasSize, dev.lastDesc.Width)
}

func TestAtlasResetReclaimsSpace(t *testing.T) {
	a := NewAtlas(nil)
	first, _, err := a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)
	_, _, err = a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)

	gen := a.Generation()
	a.Reset()
	assert.Equal(t, gen+1, a.Generation())
	assert.True(t, a.Dirty())

	again, _, err := a.Pack(solidBitmap(10, 10), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, first, again, "after reset the first pack lands at the origin again")
}
