package batch

import (
	"fmt"

	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
	"github.com/loomkit/loom/engine/text"
)

const (
	// MaxVertices bounds one frame's geometry. Six vertices per quad,
	// so a frame holds up to ~10900 quads before draws start dropping.
	MaxVertices = 65536

	// FloatsPerVertex is pos.xy + uv.xy + color.rgba.
	FloatsPerVertex = 8

	// solidUV marks vertices that skip the atlas sample in the shader.
	solidUV = float32(-1)
)

// Statistics carries per-frame counters, reset by Begin.
type Statistics struct {
	DrawCalls int
	Quads     int
	Vertices  int
	Dropped   int // vertices discarded after the budget filled
}

// Batcher accumulates solid and glyph quads for one frame and submits
// them as a single draw call. Clipping happens CPU-side against a stack
// of scissor rectangles, so the GPU never changes state mid-frame.
//
// Created without a device it runs headless: every draw op, clip op and
// counter behaves the same, End simply submits nothing.
type Batcher struct {
	dev  core.Device
	lib  *text.Library
	pipe core.Pipeline
	mesh core.Mesh

	verts       []float32
	vertexCount int

	screenW float32
	screenH float32
	clips   []geom.Rect
	inFrame bool

	stats       Statistics
	warnedDrop  bool
	warnedFrame bool
}

// New builds a batcher over the device. A nil device yields a headless
// batcher; lib must always be present since text measurement needs it.
func New(dev core.Device, lib *text.Library) (*Batcher, error) {
	b := &Batcher{
		dev:   dev,
		lib:   lib,
		verts: make([]float32, 0, MaxVertices*FloatsPerVertex),
	}
	if dev == nil {
		return b, nil
	}

	pipe, err := dev.CreatePipeline(core.PipelineDesc{
		VertexSource:   uiVertexSource,
		FragmentSource: uiFragmentSource,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("batch: ui pipeline: %w", err)
	}
	b.pipe = pipe

	mesh, err := dev.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, MaxVertices*FloatsPerVertex),
		Layout: core.VertexLayout{
			Stride: FloatsPerVertex * 4,
			Attributes: []core.VertexAttrib{
				{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},
				{Location: 1, Size: 2, Type: core.AttribFloat32, Offset: 8},
				{Location: 2, Size: 4, Type: core.AttribFloat32, Offset: 16},
			},
		},
		Dynamic: true,
	})
	if err != nil {
		return nil, fmt.Errorf("batch: ui mesh: %w", err)
	}
	b.mesh = mesh
	return b, nil
}

// Library exposes the font library backing DrawText and MeasureText.
func (b *Batcher) Library() *text.Library { return b.lib }

// Begin opens a frame at the given framebuffer size and resets the
// per-frame counters.
func (b *Batcher) Begin(width, height int) {
	if b.inFrame {
		core.Logger().Warn("batch: Begin inside open frame, discarding previous geometry")
	}
	b.inFrame = true
	b.screenW = float32(width)
	b.screenH = float32(height)
	b.verts = b.verts[:0]
	b.vertexCount = 0
	b.clips = b.clips[:0]
	b.stats = Statistics{}
	b.warnedDrop = false
	b.warnedFrame = false
}

// End closes the frame: uploads the fresh glyph pixels, uploads the
// vertex data and issues the frame's single draw call. Headless
// batchers only finalize counters.
func (b *Batcher) End() {
	if !b.inFrame {
		core.Logger().Warn("batch: End without Begin")
		return
	}
	b.inFrame = false
	if len(b.clips) != 0 {
		core.Logger().Warn("batch: unbalanced clip stack at End", "depth", len(b.clips))
		b.clips = b.clips[:0]
	}

	if b.dev == nil || b.pipe == nil {
		return
	}
	if err := b.lib.Atlas().Flush(b.dev); err != nil {
		// The page stays dirty and uploads again next frame; glyphs
		// this frame may sample stale texels.
		core.Logger().Warn("batch: atlas upload failed", "error", err)
	}
	if b.vertexCount == 0 {
		return
	}
	if err := b.dev.UpdateMesh(b.mesh, b.verts, nil); err != nil {
		core.Logger().Warn("batch: vertex upload failed", "error", err)
		return
	}
	err := b.dev.Draw(core.DrawCmd{
		Pipe:        b.pipe,
		Mesh:        b.mesh,
		VertexCount: b.vertexCount,
		Samplers:    map[string]core.Texture{"uAtlas": b.lib.Atlas().Texture()},
	})
	if err != nil {
		core.Logger().Warn("batch: draw failed", "error", err)
		return
	}
	b.stats.DrawCalls++
}

// Statistics returns the counters of the frame accumulated since Begin.
// Read after End for full-frame numbers.
func (b *Batcher) Statistics() Statistics { return b.stats }

// PushClip intersects r with the current clip and makes the result the
// new clip. Every draw op is geometrically limited to the active clip.
func (b *Batcher) PushClip(r geom.Rect) {
	b.clips = append(b.clips, b.clip().Intersect(r))
}

// PopClip restores the clip active before the matching PushClip.
func (b *Batcher) PopClip() {
	if len(b.clips) == 0 {
		core.Logger().Warn("batch: PopClip on empty stack")
		return
	}
	b.clips = b.clips[:len(b.clips)-1]
}

// clip returns the active scissor, the full screen when none is pushed.
func (b *Batcher) clip() geom.Rect {
	if len(b.clips) == 0 {
		return geom.R(0, 0, b.screenW, b.screenH)
	}
	return b.clips[len(b.clips)-1]
}

func (b *Batcher) frameOpen() bool {
	if b.inFrame {
		return true
	}
	if !b.warnedFrame {
		b.warnedFrame = true
		core.Logger().Warn("batch: draw outside Begin/End, ignored")
	}
	return false
}

// DrawRect fills r with a solid color, clipped to the active scissor.
func (b *Batcher) DrawRect(r geom.Rect, c colors.Color) {
	if !b.frameOpen() {
		return
	}
	vis := r.Intersect(b.clip())
	if vis.Empty() {
		return
	}
	b.emitQuad(vis, solidUV, solidUV, solidUV, solidUV, c)
}

// DrawRoundedRect fills r honoring the corner radius where the backend
// supports it. The single-pipeline backend draws sharp corners.
func (b *Batcher) DrawRoundedRect(r geom.Rect, radius float32, c colors.Color) {
	b.DrawRect(r, c)
}

// DrawRectOutline strokes the border of r, thickness pixels wide,
// inside the rect's bounds.
func (b *Batcher) DrawRectOutline(r geom.Rect, thickness float32, c colors.Color) {
	if !b.frameOpen() {
		return
	}
	t := thickness
	if t <= 0 || r.Empty() {
		return
	}
	if 2*t >= r.W || 2*t >= r.H {
		b.DrawRect(r, c)
		return
	}
	// Top and bottom run the full width, the sides fill between them.
	b.DrawRect(geom.R(r.X, r.Y, r.W, t), c)
	b.DrawRect(geom.R(r.X, r.Bottom()-t, r.W, t), c)
	b.DrawRect(geom.R(r.X, r.Y+t, t, r.H-2*t), c)
	b.DrawRect(geom.R(r.Right()-t, r.Y+t, t, r.H-2*t), c)
}

// DrawText draws s with its top-left corner at pos. Newlines advance to
// the next baseline; other control characters and runes missing from
// the face are skipped. Glyphs crossing the clip edge are trimmed with
// their UVs adjusted so the visible part stays undistorted.
func (b *Batcher) DrawText(s string, pos geom.Vec2, f *text.Face, c colors.Color) {
	if !b.frameOpen() || f == nil || s == "" {
		return
	}
	clip := b.clip()
	if clip.Empty() {
		return
	}

	penX := pos.X
	baseline := pos.Y + f.Ascent()
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX = pos.X
			baseline += f.LineHeight()
			prev = -1
			continue
		}
		if r < 32 {
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += float32(f.Kern(prev, r)) / 64
		}
		prev = r

		if !g.Empty() {
			quad := geom.R(penX+g.BearingX, baseline-g.BearingY, g.Width, g.Height)
			if vis, u0, v0, u1, v1, visible := clipGlyph(quad, g, clip); visible {
				b.emitQuad(vis, u0, v0, u1, v1, c)
			}
		}
		penX += float32(g.Advance) / 64
	}
}

// MeasureText returns the extent DrawText would cover, without drawing.
func (b *Batcher) MeasureText(s string, f *text.Face) geom.Vec2 {
	if f == nil {
		return geom.Vec2{}
	}
	return f.Measure(s)
}

// clipGlyph intersects a glyph quad with the scissor and maps the crop
// proportionally into UV space.
func clipGlyph(quad geom.Rect, g text.Glyph, clip geom.Rect) (vis geom.Rect, u0, v0, u1, v1 float32, visible bool) {
	vis = quad.Intersect(clip)
	if vis.Empty() {
		return vis, 0, 0, 0, 0, false
	}
	uSpan := g.UVMax.X - g.UVMin.X
	vSpan := g.UVMax.Y - g.UVMin.Y
	u0 = g.UVMin.X + (vis.X-quad.X)/quad.W*uSpan
	v0 = g.UVMin.Y + (vis.Y-quad.Y)/quad.H*vSpan
	u1 = g.UVMax.X - (quad.Right()-vis.Right())/quad.W*uSpan
	v1 = g.UVMax.Y - (quad.Bottom()-vis.Bottom())/quad.H*vSpan
	return vis, u0, v0, u1, v1, true
}

// emitQuad appends two triangles covering r. Callers clip first; the
// quad is emitted as-is.
func (b *Batcher) emitQuad(r geom.Rect, u0, v0, u1, v1 float32, c colors.Color) {
	if b.vertexCount+6 > MaxVertices {
		b.stats.Dropped += 6
		if !b.warnedDrop {
			b.warnedDrop = true
			core.Logger().Warn("batch: vertex budget exhausted, dropping geometry",
				"budget", MaxVertices,
			)
		}
		return
	}

	x0 := b.ndcX(r.X)
	y0 := b.ndcY(r.Y)
	x1 := b.ndcX(r.Right())
	y1 := b.ndcY(r.Bottom())

	b.vertex(x0, y0, u0, v0, c)
	b.vertex(x1, y0, u1, v0, c)
	b.vertex(x1, y1, u1, v1, c)

	b.vertex(x0, y0, u0, v0, c)
	b.vertex(x1, y1, u1, v1, c)
	b.vertex(x0, y1, u0, v1, c)

	b.stats.Quads++
}

func (b *Batcher) vertex(x, y, u, v float32, c colors.Color) {
	b.verts = append(b.verts, x, y, u, v, c[0], c[1], c[2], c[3])
	b.vertexCount++
	b.stats.Vertices++
}

// ndcX maps a screen x in pixels to [-1, 1].
func (b *Batcher) ndcX(x float32) float32 { return x/b.screenW*2 - 1 }

// ndcY maps a screen y in pixels to [1, -1]; screen y grows downward.
func (b *Batcher) ndcY(y float32) float32 { return 1 - y/b.screenH*2 }
