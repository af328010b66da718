package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/text"
)

func newHeadless(t *testing.T) (*Batcher, *text.Face) {
	t.Helper()
	lib := text.NewLibrary(nil)
	t.Cleanup(lib.Close)
	b, err := New(nil, lib)
	require.NoError(t, err)
	f, err := lib.GetFace(text.DefaultFamily, 14, text.WeightRegular)
	require.NoError(t, err)
	return b, f
}

// vert returns the i-th emitted vertex as (x, y, u, v).
func vert(b *Batcher, i int) (x, y, u, v float32) {
	base := i * FloatsPerVertex
	return b.verts[base], b.verts[base+1], b.verts[base+2], b.verts[base+3]
}

func TestDrawRectEmitsOneQuad(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.DrawRect(geom.R(10, 10, 100, 50), colors.White)
	b.End()

	st := b.Statistics()
	assert.Equal(t, 1, st.Quads)
	assert.Equal(t, 6, st.Vertices)
	assert.Equal(t, 0, st.Dropped)
	assert.Equal(t, 0, st.DrawCalls, "headless batcher never submits")

	x, y, u, v := vert(b, 0)
	assert.InDelta(t, 10.0/800*2-1, x, 1e-5)
	assert.InDelta(t, 1-10.0/600*2, y, 1e-5)
	assert.Equal(t, float32(-1), u, "solid quads carry the sentinel UV")
	assert.Equal(t, float32(-1), v)
}

func TestFullScreenRectSpansNDC(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.DrawRect(geom.R(0, 0, 800, 600), colors.Black)
	b.End()

	x0, y0, _, _ := vert(b, 0)
	x1, y1, _, _ := vert(b, 2)
	assert.InDelta(t, -1, x0, 1e-5)
	assert.InDelta(t, 1, y0, 1e-5)
	assert.InDelta(t, 1, x1, 1e-5)
	assert.InDelta(t, -1, y1, 1e-5)
}

func TestClipShrinksRect(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.PushClip(geom.R(0, 0, 50, 50))
	b.DrawRect(geom.R(40, 40, 20, 20), colors.White)
	b.PopClip()
	b.End()

	require.Equal(t, 1, b.Statistics().Quads)
	x0, y0, _, _ := vert(b, 0)
	x1, y1, _, _ := vert(b, 2)
	assert.InDelta(t, 40.0/800*2-1, x0, 1e-5)
	assert.InDelta(t, 1-40.0/600*2, y0, 1e-5)
	assert.InDelta(t, 50.0/800*2-1, x1, 1e-5)
	assert.InDelta(t, 1-50.0/600*2, y1, 1e-5)
}

func TestClipRejectsOutsideGeometry(t *testing.T) {
	b, f := newHeadless(t)
	b.Begin(800, 600)
	b.PushClip(geom.R(0, 0, 100, 100))
	b.DrawRect(geom.R(200, 200, 50, 50), colors.White)
	b.DrawText("clipped away", geom.V(300, 300), f, colors.White)
	b.PopClip()
	b.End()

	assert.Equal(t, 0, b.Statistics().Vertices)
}

func TestZeroAreaClipDropsEverything(t *testing.T) {
	b, f := newHeadless(t)
	b.Begin(800, 600)
	b.PushClip(geom.R(10, 10, 0, 0))
	b.DrawRect(geom.R(0, 0, 800, 600), colors.White)
	b.DrawText("hidden", geom.V(0, 0), f, colors.White)
	b.PopClip()
	b.End()

	assert.Equal(t, 0, b.Statistics().Vertices)
}

func TestClipStackOnlyShrinks(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)

	pushes := []geom.Rect{
		geom.R(0, 0, 500, 500),
		geom.R(100, 100, 600, 600),
		geom.R(50, 50, 100, 100),
		geom.R(0, 0, 800, 600),
	}
	prev := b.clip()
	for _, r := range pushes {
		b.PushClip(r)
		cur := b.clip()
		assert.True(t, prev.ContainsRect(cur), "clip grew from %+v to %+v", prev, cur)
		prev = cur
	}
	for range pushes {
		b.PopClip()
	}
	assert.Equal(t, geom.R(0, 0, 800, 600), b.clip())
	b.End()
}

func TestPopClipRestoresPrevious(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.PushClip(geom.R(0, 0, 400, 400))
	inner := geom.R(100, 100, 50, 50)
	b.PushClip(inner)
	assert.Equal(t, inner, b.clip())
	b.PopClip()
	assert.Equal(t, geom.R(0, 0, 400, 400), b.clip())
	b.PopClip()
	b.End()
}

func TestDrawTextEmitsGlyphQuads(t *testing.T) {
	b, f := newHeadless(t)
	b.Begin(800, 600)
	b.DrawText("A B", geom.V(10, 10), f, colors.White)
	b.End()

	// Two visible glyphs, the space only advances the pen.
	assert.Equal(t, 2, b.Statistics().Quads)

	_, _, u, v := vert(b, 0)
	assert.GreaterOrEqual(t, u, float32(0), "glyph quads sample the atlas")
	assert.GreaterOrEqual(t, v, float32(0))
}

func TestDrawTextNewlineAdvancesBaseline(t *testing.T) {
	b, f := newHeadless(t)
	b.Begin(800, 600)
	b.DrawText("A\nA", geom.V(10, 10), f, colors.White)
	b.End()

	require.Equal(t, 2, b.Statistics().Quads)
	_, yFirst, _, _ := vert(b, 0)
	_, ySecond, _, _ := vert(b, 6)
	wantDrop := f.LineHeight() / 600 * 2
	assert.InDelta(t, wantDrop, yFirst-ySecond, 1e-4, "second line sits one line height lower")
}

func TestDrawTextSkipsControlAndMissingRunes(t *testing.T) {
	b, f := newHeadless(t)
	b.Begin(800, 600)
	b.DrawText("A\tBé", geom.V(10, 10), f, colors.White)
	b.End()

	assert.Equal(t, 2, b.Statistics().Quads)
}

func TestClippedGlyphKeepsUVProportion(t *testing.T) {
	b, f := newHeadless(t)
	g, ok := f.Glyph('H')
	require.True(t, ok)
	require.False(t, g.Empty())

	quadX := 10 + g.BearingX
	cut := quadX + g.Width/2

	b.Begin(800, 600)
	b.PushClip(geom.R(0, 0, cut, 600))
	b.DrawText("H", geom.V(10, 10), f, colors.White)
	b.PopClip()
	b.End()

	require.Equal(t, 1, b.Statistics().Quads)
	x1, _, u1, _ := vert(b, 2)
	assert.InDelta(t, cut/800*2-1, x1, 1e-5, "right edge lands on the clip boundary")

	wantU := g.UVMin.X + (g.UVMax.X-g.UVMin.X)/2
	assert.InDelta(t, wantU, u1, 1e-4, "UV crops in the same proportion as the quad")
}

func TestVertexBudgetDropsExcess(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)

	fits := MaxVertices / 6
	r := geom.R(0, 0, 10, 10)
	for i := 0; i < fits+3; i++ {
		b.DrawRect(r, colors.White)
	}
	b.End()

	st := b.Statistics()
	assert.Equal(t, fits, st.Quads)
	assert.Equal(t, fits*6, st.Vertices)
	assert.Equal(t, 18, st.Dropped)
}

func TestBeginResetsAfterOverflow(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	for i := 0; i < MaxVertices/6+1; i++ {
		b.DrawRect(geom.R(0, 0, 10, 10), colors.White)
	}
	b.End()
	require.NotZero(t, b.Statistics().Dropped)

	b.Begin(800, 600)
	b.DrawRect(geom.R(0, 0, 10, 10), colors.White)
	b.End()

	st := b.Statistics()
	assert.Equal(t, 1, st.Quads)
	assert.Equal(t, 0, st.Dropped)
}

func TestEndResetsUnbalancedClips(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.PushClip(geom.R(0, 0, 10, 10))
	b.End()

	b.Begin(800, 600)
	assert.Equal(t, geom.R(0, 0, 800, 600), b.clip())
	b.End()
}

func TestDrawOutsideFrameIgnored(t *testing.T) {
	b, f := newHeadless(t)
	b.DrawRect(geom.R(0, 0, 10, 10), colors.White)
	b.DrawText("nope", geom.V(0, 0), f, colors.White)
	assert.Equal(t, 0, b.Statistics().Vertices)
}

func TestOutlineQuadCount(t *testing.T) {
	b, _ := newHeadless(t)
	b.Begin(800, 600)
	b.DrawRectOutline(geom.R(10, 10, 100, 50), 2, colors.White)
	b.End()
	assert.Equal(t, 4, b.Statistics().Quads)

	// Too thick to hollow out: falls back to a filled rect.
	b.Begin(800, 600)
	b.DrawRectOutline(geom.R(10, 10, 10, 40), 5, colors.White)
	b.End()
	assert.Equal(t, 1, b.Statistics().Quads)
}

func TestIdenticalFramesProduceIdenticalVertices(t *testing.T) {
	b, f := newHeadless(t)

	frame := func() []float32 {
		b.Begin(800, 600)
		b.DrawRect(geom.R(0, 0, 800, 28), colors.DarkGray)
		b.PushClip(geom.R(20, 40, 200, 150))
		b.DrawRect(geom.R(20, 40, 200, 150), colors.Gray)
		b.DrawText("Panel Title\nbody text", geom.V(28, 48), f, colors.White)
		b.PopClip()
		b.DrawRectOutline(geom.R(20, 40, 200, 150), 1, colors.Black)
		b.End()
		out := make([]float32, len(b.verts))
		copy(out, b.verts)
		return out
	}

	first := frame()
	second := frame()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestMeasureTextDelegatesToFace(t *testing.T) {
	b, f := newHeadless(t)
	assert.Equal(t, f.Measure("hello"), b.MeasureText("hello", f))
	assert.Equal(t, geom.Vec2{}, b.MeasureText("hello", nil))
}
