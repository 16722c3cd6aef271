package stringslice

import "unsafe"

// stringBytes returns the bytes of str without copying. The result must never
// be written to.
func stringBytes(str string) []byte {
	if str == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(str), len(str))
}
