// Package stringslice provides Slice, a read-only view over bytes owned
// elsewhere, and helpers for taking text apart without copying it.
package stringslice

import (
	"bytes"
	"math"
)

// NPos is returned by Find when a byte is not present. It is the largest
// representable length, so it can also be passed to Substr as "to the end".
const NPos = math.MaxInt

// Slice is a read-only view over bytes owned by someone else. It never
// copies, allocates or frees the backing buffer, and is only valid while that
// buffer is alive and unmodified. The zero value is an empty slice.
type Slice struct {
	b []byte
}

// Of returns a view over exactly b.
func Of(b []byte) Slice {
	return Slice{b: b}
}

// New returns a view over the first n bytes of b. Zero bytes are included.
// Like the length of any view, n is the caller's responsibility.
func New(b []byte, n int) Slice {
	if n <= 0 {
		return Slice{b: b[:0]}
	}
	return Slice{b: b[:n]}
}

// FromCString returns a view over b up to, not including, the first zero
// byte. If b has no zero byte the whole of b is viewed.
func FromCString(b []byte) Slice {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}
	return Slice{b: b[:n]}
}

// FromString views the bytes of str without copying.
func FromString(str string) Slice {
	return Slice{b: stringBytes(str)}
}

// At returns the byte at i as a value in [0, 255], or -1 if i is out of range.
func (s Slice) At(i int) int {
	if i >= 0 && i < len(s.b) {
		return int(s.b[i])
	}
	return -1
}

// Index returns the byte at i. It does no range checking of its own, an
// index outside the slice is a caller bug and panics.
func (s Slice) Index(i int) byte {
	return s.b[i]
}

// Compare orders slices byte-wise, a shorter slice sorting before a longer
// one that it prefixes. The result is -1, 0 or 1.
func (s Slice) Compare(other Slice) int {
	return bytes.Compare(s.b, other.b)
}

// Equal reports whether both slices view the same bytes, wherever they live.
func (s Slice) Equal(other Slice) bool {
	return len(s.b) == len(other.b) && bytes.Equal(s.b, other.b)
}

// EqualString compares against a string without converting it.
func (s Slice) EqualString(str string) bool {
	return s.Equal(FromString(str))
}

func (s Slice) NotEqual(other Slice) bool     { return !s.Equal(other) }
func (s Slice) Less(other Slice) bool         { return s.Compare(other) < 0 }
func (s Slice) LessEqual(other Slice) bool    { return s.Compare(other) <= 0 }
func (s Slice) Greater(other Slice) bool      { return s.Compare(other) > 0 }
func (s Slice) GreaterEqual(other Slice) bool { return s.Compare(other) >= 0 }

// CopyTo copies the slice into dst and zero terminates it, truncating if dst
// is too short. It returns the number of bytes copied, not counting the
// terminator. Nothing is written to a nil or empty dst.
func (s Slice) CopyTo(dst []byte) int {
	return s.CopyToN(dst, len(dst))
}

// CopyToN is CopyTo with an explicit capacity. The capacity is clamped to
// len(dst).
func (s Slice) CopyToN(dst []byte, capacity int) int {
	if capacity > len(dst) {
		capacity = len(dst)
	}
	if dst == nil || capacity <= 0 {
		return 0
	}
	n := copy(dst[:capacity-1], s.b)
	dst[n] = 0
	return n
}

// Data returns the viewed bytes, nil for the zero Slice. They must not be
// modified.
func (s Slice) Data() []byte { return s.b }

func (s Slice) Len() int { return len(s.b) }

func (s Slice) Empty() bool { return len(s.b) == 0 }

// NonEmpty is the boolean value of the slice.
func (s Slice) NonEmpty() bool { return len(s.b) > 0 }

// Find returns the index of the first c, or NPos.
func (s Slice) Find(c byte) int {
	return s.FindFrom(c, 0)
}

// FindFrom returns the index of the first c at or after start, or NPos.
func (s Slice) FindFrom(c byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start >= len(s.b) {
		return NPos
	}
	i := bytes.IndexByte(s.b[start:], c)
	if i < 0 {
		return NPos
	}
	return start + i
}

func isWhitespace(c byte) bool {
	return c == '\r' || c == '\n' || c == '\t' || c == ' '
}

// LStrip returns the slice without leading whitespace.
func (s Slice) LStrip() Slice {
	i := 0
	for i < len(s.b) && isWhitespace(s.b[i]) {
		i++
	}
	return Slice{b: s.b[i:]}
}

// RStrip returns the slice without trailing whitespace.
func (s Slice) RStrip() Slice {
	i := len(s.b)
	for i > 0 && isWhitespace(s.b[i-1]) {
		i--
	}
	return Slice{b: s.b[:i]}
}

// Strip returns the slice without leading and trailing whitespace.
func (s Slice) Strip() Slice {
	return s.RStrip().LStrip()
}

// Substr returns n bytes starting at pos. A pos past the end gives an empty
// slice and n is cut to what remains, so NPos means "the rest".
func (s Slice) Substr(pos, n int) Slice {
	if pos < 0 || pos >= len(s.b) {
		return Slice{}
	}
	rest := len(s.b) - pos
	if n < rest {
		rest = n
	}
	if rest < 0 {
		rest = 0
	}
	return Slice{b: s.b[pos : pos+rest]}
}

// SubstrFrom returns everything from pos on.
func (s Slice) SubstrFrom(pos int) Slice {
	return s.Substr(pos, NPos)
}

// String copies the viewed bytes into a string.
func (s Slice) String() string {
	return string(s.b)
}
