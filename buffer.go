package stringslice

// FromBuffer views a zero terminated fixed size buffer, typically a constant
// byte array passed as arr[:]. Only the last byte is treated as the
// terminator, zero bytes before it stay in the view. An empty buffer has no
// terminator and gives an empty slice.
func FromBuffer(buf []byte) Slice {
	if len(buf) == 0 {
		return Slice{}
	}
	return Slice{b: buf[:len(buf)-1]}
}
