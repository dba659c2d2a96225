// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import "bytes"

// Interval is a half-open byte range [Lower, Upper) inside an index,
// covering zero or more whole lines. Lower == Upper represents an empty
// (no-match) interval.
type Interval struct {
	Lower int64
	Upper int64
}

// Empty reports whether iv covers no lines.
func (iv Interval) Empty() bool {
	return iv.Lower == iv.Upper
}

// nextLine returns the offset just past the next '\n' at or after pos. It
// assumes every line in buf (including the last) is '\n'-terminated.
func nextLine(buf []byte, pos int64) int64 {
	i := bytes.IndexByte(buf[pos:], '\n')
	return pos + int64(i) + 1
}

// lineStart backs middle up to the start of the line it falls within,
// without going before start.
func lineStart(buf []byte, middle, start int64) int64 {
	for middle > start && buf[middle-1] != '\n' {
		middle--
	}
	return middle
}

// lowerBound finds the earliest line in [start, end) matching prefix under
// cmp, given that at least one matching line exists in [start, end). This is
// a loop-based rewrite of the reference implementation's recursive
// lower_bound: the termination trick (inspecting the line before a
// single-line window) is preserved to guarantee progress when the window
// collapses to one line.
func lowerBound(buf []byte, cmp Comparator, prefix []byte, start, end int64) int64 {
	for {
		middle := lineStart(buf, start+(end-start)/2, start)
		next := nextLine(buf, middle)

		if middle == start && next == end {
			return middle
		}

		if cmp(prefix, buf[middle:]) > 0 {
			start = next
			continue
		}

		if next == end {
			prevLine := lineStart(buf, middle-1, start)
			if cmp(prefix, buf[prevLine:]) > 0 {
				return middle
			}
			end = middle
			continue
		}

		end = next
	}
}

// upperBound finds the first line at or after start that does NOT match
// prefix under cmp, searching [start, end). It may return end if every
// trailing line matches. Loop-based rewrite of the reference's recursive
// upper_bound, preserving the same single-line termination trick.
func upperBound(buf []byte, cmp Comparator, prefix []byte, start, end int64) int64 {
	for {
		if start == end {
			return start
		}

		middle := lineStart(buf, start+(end-start)/2, start)
		next := nextLine(buf, middle)

		if cmp(prefix, buf[middle:]) == 0 {
			start = next
			continue
		}

		if next == end {
			prevLine := lineStart(buf, middle-1, start)
			if cmp(prefix, buf[prevLine:]) == 0 {
				return middle
			}
			end = middle
			continue
		}

		end = next
	}
}

// FindInterval searches buf[start:end] for the half-open interval of lines
// whose headword matches prefix under cmp, per spec.md §4.2's three-phase
// algorithm: locate any matching line by binary search, then bracket its
// lower and upper bounds. Returns an empty Interval if no line matches.
func FindInterval(buf []byte, cmp Comparator, prefix []byte, start, end int64) Interval {
	for start < end {
		middle := lineStart(buf, start+(end-start)/2, start)
		next := nextLine(buf, middle)

		c := cmp(prefix, buf[middle:])
		switch {
		case c == 0:
			return Interval{
				Lower: lowerBound(buf, cmp, prefix, start, next),
				Upper: upperBound(buf, cmp, prefix, next, end),
			}
		case c > 0:
			start = next
		default:
			end = middle
		}
	}

	return Interval{}
}

// Find searches the whole of buf for prefix under the comparator selected by
// mode and exact (exact equality vs. starts-with).
func Find(buf []byte, mode Mode, prefix []byte, exact bool) Interval {
	return FindInterval(buf, comparatorFor(mode, exact), prefix, 0, int64(len(buf)))
}

// Next advances iv to the interval covering the line immediately following
// its first line, keeping the same upper bound. It returns false (with the
// zero Interval) when iv is already empty or advancing would produce an
// empty interval — mirroring the reference's "cursor already sits at upper"
// end-of-interval condition.
func Next(buf []byte, iv Interval) (Interval, bool) {
	if iv.Empty() {
		return Interval{}, false
	}
	lower := nextLine(buf, iv.Lower)
	if lower >= iv.Upper {
		return Interval{}, false
	}
	return Interval{Lower: lower, Upper: iv.Upper}, true
}
