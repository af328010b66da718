// Package scratch is a frame-scoped byte arena for building transient
// strings (debug overlays, window titles) without per-frame garbage.
// The run loop calls Reset once per frame; everything written since the
// previous Reset is gone after it. Single-threaded, like the rest of
// the frame pipeline.
package scratch

import "strconv"

var buf []byte

// Init sizes the arena. Zero or negative picks a small default.
// The run loop calls this once at startup from Config.ScratchCapacity.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1024
	}
	buf = make([]byte, 0, capacity)
}

// Reset drops the contents, keeping the allocation.
func Reset() { buf = buf[:0] }

// Cap reports the arena capacity, for tuning Config.ScratchCapacity.
func Cap() int { return cap(buf) }

// Len reports the bytes written since the last Reset.
func Len() int { return len(buf) }

// GrowTo raises the capacity, preserving contents. Meant for load time,
// not the frame loop.
func GrowTo(minCapacity int) {
	if minCapacity <= cap(buf) {
		return
	}
	nb := make([]byte, len(buf), minCapacity)
	copy(nb, buf)
	buf = nb
}

// Ensure makes room for n more bytes, doubling on growth.
func Ensure(n int) {
	if len(buf)+n <= cap(buf) {
		return
	}
	newCap := cap(buf) * 2
	if newCap < len(buf)+n {
		newCap = len(buf) + n
	}
	GrowTo(newCap)
}

// Mark bookmarks the current position so a later StringFrom or
// BytesFrom can slice out just one built string:
//
//	m := scratch.Mark()
//	scratch.F().S("frame ").F64(ms, 2).S(" ms")
//	label.SetText(scratch.StringFrom(m))
func Mark() int { return len(buf) }

// BytesFrom returns the bytes written since mark. The slice aliases the
// arena and is valid only until the next Reset.
func BytesFrom(mark int) []byte { return buf[mark:] }

// StringFrom copies the bytes written since mark into a fresh string.
func StringFrom(mark int) string { return string(buf[mark:]) }

// Bytes returns the whole arena contents, valid until the next Reset.
func Bytes() []byte { return buf }

// String copies the whole arena contents into a fresh string.
func String() string { return string(buf) }

// Builder appends to the arena through a chainable value. All methods
// return a Builder so calls compose left to right.
type Builder struct{}

// F starts a chain: scratch.F().S("draws ").I(n)
func F() Builder { return Builder{} }

// S appends a string.
func (Builder) S(s string) Builder {
	buf = append(buf, s...)
	return Builder{}
}

// B appends raw bytes.
func (Builder) B(b []byte) Builder {
	buf = append(buf, b...)
	return Builder{}
}

// C appends a single byte.
func (Builder) C(c byte) Builder {
	buf = append(buf, c)
	return Builder{}
}

// I appends a base-10 integer.
func (Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return Builder{}
}

// U appends an unsigned base-10 integer.
func (Builder) U(v uint64) Builder {
	buf = strconv.AppendUint(buf, v, 10)
	return Builder{}
}

// F64 appends a fixed-point float with prec digits after the decimal.
func (Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return Builder{}
}

// Bool appends "true" or "false".
func (Builder) Bool(v bool) Builder {
	buf = strconv.AppendBool(buf, v)
	return Builder{}
}

// Pad appends n copies of c.
func (Builder) Pad(n int, c byte) Builder {
	if n <= 0 {
		return Builder{}
	}
	Ensure(n)
	for i := 0; i < n; i++ {
		buf = append(buf, c)
	}
	return Builder{}
}
