package text

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/loomkit/loom/engine/core"
	"github.com/loomkit/loom/engine/geom"
)

const (
	firstGlyph = 32  // space
	lastGlyph  = 126 // tilde
)

// Glyph is one cached character: where it lives in the atlas, how big
// it is and how to advance the pen after drawing it. Advances stay in
// 1/64 pixel units until a pen position is finally needed.
type Glyph struct {
	UVMin    geom.Vec2
	UVMax    geom.Vec2
	Width    float32
	Height   float32
	BearingX float32 // pen to left edge of bitmap
	BearingY float32 // baseline to top edge of bitmap
	Advance  fixed.Int26_6
}

// Empty reports whether the glyph has no bitmap, as with spaces or
// characters the font could not rasterize. Empty glyphs still carry an
// advance.
func (g Glyph) Empty() bool { return g.Width <= 0 || g.Height <= 0 }

// Face is the glyph cache for one (family, pixel size, weight) triple.
// It rasterizes the printable ASCII range eagerly at build time and is
// immutable afterwards.
type Face struct {
	Family    string
	PixelSize int
	Weight    Weight

	ascent  float32
	descent float32
	lineGap float32
	glyphs  map[rune]Glyph
	raw     font.Face
}

func buildFace(fam *family, px int, weight Weight, atlas *Atlas) (*Face, error) {
	ft := fam.font(weight)
	if ft == nil {
		return nil, ErrNoRegular
	}
	// At 72 DPI one point is one pixel, so Size is the pixel size.
	raw, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: face %s %s %dpx: %w", fam.name, weight, px, err)
	}

	m := raw.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent - descent
	if lineGap < 0 {
		lineGap = 0
	}

	f := &Face{
		Family:    fam.name,
		PixelSize: px,
		Weight:    weight,
		ascent:    ascent,
		descent:   descent,
		lineGap:   lineGap,
		glyphs:    make(map[rune]Glyph, lastGlyph-firstGlyph+1),
		raw:       raw,
	}

	packFailed := 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		g, err := rasterize(raw, r, atlas)
		if err != nil {
			packFailed++
		}
		f.glyphs[r] = g
	}
	if packFailed > 0 {
		core.Logger().Warn("glyphs dropped, atlas exhausted",
			"family", fam.name,
			"size", px,
			"weight", weight.String(),
			"dropped", packFailed,
		)
	}
	return f, nil
}

// rasterize renders one rune with the pen at the origin and packs the
// coverage bitmap. Runes without coverage (spaces) and runes the atlas
// rejected come back as advance-only glyphs; the latter also report the
// pack error.
func rasterize(raw font.Face, r rune, atlas *Atlas) (Glyph, error) {
	dr, mask, maskp, advance, ok := raw.Glyph(fixed.Point26_6{}, r)
	if !ok {
		if adv, ok := raw.GlyphAdvance(r); ok {
			return Glyph{Advance: adv}, nil
		}
		return Glyph{}, nil
	}

	w, h := dr.Dx(), dr.Dy()
	g := Glyph{
		Width:    float32(w),
		Height:   float32(h),
		BearingX: float32(dr.Min.X),
		BearingY: float32(-dr.Min.Y),
		Advance:  advance,
	}
	if w <= 0 || h <= 0 {
		return Glyph{Advance: advance}, nil
	}

	uvMin, uvMax, err := atlas.Pack(alphaBytes(mask, maskp, w, h), w, h)
	if err != nil {
		return Glyph{Advance: advance}, err
	}
	g.UVMin = uvMin
	g.UVMax = uvMax
	return g, nil
}

// alphaBytes copies a w by h window of a glyph mask into a tight byte
// slice. Opentype masks are always *image.Alpha; the generic fallback
// covers any other face implementation.
func alphaBytes(mask image.Image, maskp image.Point, w, h int) []byte {
	out := make([]byte, w*h)
	if am, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			src := (maskp.Y+y)*am.Stride + maskp.X
			copy(out[y*w:(y+1)*w], am.Pix[src:src+w])
		}
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha)
			out[y*w+x] = c.A
		}
	}
	return out
}

// Ascent is the distance from baseline to the top of the tallest glyph.
func (f *Face) Ascent() float32 { return f.ascent }

// Descent is the distance from baseline to the bottom of the deepest glyph.
func (f *Face) Descent() float32 { return f.descent }

// LineHeight is the vertical distance between consecutive baselines.
func (f *Face) LineHeight() float32 { return f.ascent + f.descent + f.lineGap }

// Glyph looks up the cached record for r. Runes outside the cached
// range report ok false and are skipped by drawing code.
func (f *Face) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Kern returns the pair adjustment between two runes in 1/64 pixels,
// usually zero or negative.
func (f *Face) Kern(prev, next rune) fixed.Int26_6 {
	if f.raw == nil {
		return 0
	}
	return f.raw.Kern(prev, next)
}

// Measure returns the pixel extent of s without drawing it. Newlines
// start a new line; the width is the widest line and the height is the
// line count times LineHeight. An empty string measures (0, LineHeight).
// Runes missing from the cache contribute nothing.
func (f *Face) Measure(s string) geom.Vec2 {
	var lineW, maxW fixed.Int26_6
	lines := 1
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			if lineW > maxW {
				maxW = lineW
			}
			lineW = 0
			lines++
			prev = -1
			continue
		}
		g, ok := f.glyphs[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	if lineW > maxW {
		maxW = lineW
	}
	return geom.V(float32(maxW)/64, float32(lines)*f.LineHeight())
}

// Wrap breaks s into lines no wider than maxWidth using greedy word
// wrapping. Explicit newlines are respected. A single word wider than
// maxWidth is not split; it overflows on its own line.
func (f *Face) Wrap(s string, maxWidth float32) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			cand := cur + " " + w
			if f.Measure(cand).X > maxWidth {
				out = append(out, cur)
				cur = w
			} else {
				cur = cand
			}
		}
		out = append(out, cur)
	}
	return out
}

// Close releases the underlying rasterizer. Glyph metrics stay valid;
// kerning degrades to zero.
func (f *Face) Close() {
	if f.raw != nil {
		f.raw.Close()
		f.raw = nil
	}
}
