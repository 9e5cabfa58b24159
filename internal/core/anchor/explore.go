package anchor

import "iter"

// Explore yields every index in [begin, end) exactly once, nearest to start
// first: start, start+1, start-1, start+2, start-2, ... Once one side of the
// range runs out the other side continues on its own.
//
// A start outside the range is clamped to the nearest valid index. The
// sequence depends only on its arguments and can be ranged over any number of
// times.
func Explore(begin, end, start int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if begin >= end {
			return
		}

		s := min(max(start, begin), end-1)
		if !yield(s) {
			return
		}

		for d := 1; s+d < end || s-d >= begin; d++ {
			if s+d < end && !yield(s+d) {
				return
			}
			if s-d >= begin && !yield(s-d) {
				return
			}
		}
	}
}
