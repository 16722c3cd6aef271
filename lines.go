package stringslice

import "iter"

// NextLine returns the first line of s including its '\n', or all of s if
// there is no newline. s itself is not advanced: callers continue with
// s.SubstrFrom(line.Len()) and stop once the line comes back empty.
func NextLine(s Slice) Slice {
	for i := 0; i < s.Len(); i++ {
		if s.Index(i) == '\n' {
			return s.Substr(0, i+1)
		}
	}
	return s
}

// SplitLines calls fn for every line of s, newline included, until fn
// returns false.
func SplitLines(s Slice, fn func(line Slice) bool) {
	for rest := s; ; {
		line := NextLine(rest)
		if line.Empty() {
			return
		}
		rest = rest.SubstrFrom(line.Len())
		if !fn(line) {
			return
		}
	}
}

// Lines iterates over the lines of s, newline included.
func Lines(s Slice) iter.Seq[Slice] {
	return func(yield func(Slice) bool) {
		SplitLines(s, yield)
	}
}
