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

// Comparator compares a query (or, during validation, the previous
// headword) against a candidate field. Both arguments are terminated either
// by a tab byte or by running off the end of the slice — this lets the same
// comparator be applied to a bare headword (index.Line.Headword, which ends
// exactly at its tab) and to a full line suffix starting at a headword and
// continuing past it.
//
// Comparator returns 0 for a match, a negative value if prefix sorts before
// str, and a positive value if prefix sorts after str.
type Comparator func(prefix, str []byte) int

// Mode identifies which Comparator family to use.
type Mode int

const (
	// Alphabetic compares headwords byte-for-byte.
	Alphabetic Mode = iota

	// SkipNonAlphanumeric compares headwords case-folded, skipping ASCII
	// bytes that are neither alphanumeric nor blank.
	SkipNonAlphanumeric
)

func isAlnumASCII(b byte) bool {
	return ('0' <= b && b <= '9') || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isBlankASCII(b byte) bool {
	return b == ' ' || b == '\t'
}

func toLowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// fieldEnd reports whether s[i] is past the end of the field: either past
// the end of the slice, or a tab.
func fieldEnd(s []byte, i int) bool {
	return i >= len(s) || s[i] == '\t'
}

// Equal implements the Alphabetic equality comparator: byte-for-byte
// comparison until end-of-field on either side.
func Equal(lhs, rhs []byte) int {
	i := 0
	for {
		lEnd, rEnd := fieldEnd(lhs, i), fieldEnd(rhs, i)
		switch {
		case lEnd && rEnd:
			return 0
		case lEnd:
			return -1
		case rEnd:
			return 1
		case lhs[i] < rhs[i]:
			return -1
		case lhs[i] > rhs[i]:
			return 1
		}
		i++
	}
}

// Prefix implements the Alphabetic prefix comparator: prefix is consumed
// byte-for-byte against str; hitting end-of-field on str while prefix still
// has bytes left means str sorts before prefix.
func Prefix(prefix, str []byte) int {
	i := 0
	for !fieldEnd(prefix, i) {
		if fieldEnd(str, i) {
			return 1
		}
		switch {
		case prefix[i] < str[i]:
			return -1
		case prefix[i] > str[i]:
			return 1
		}
		i++
	}
	return 0
}

// DictEqual implements the SkipNonAlphanumeric equality comparator:
// case-folded comparison, skipping ASCII bytes that are neither
// alphanumeric nor blank on both sides. Bytes ≥ 0x80 pass through unskipped
// and uncased.
func DictEqual(lhs, rhs []byte) int {
	li, ri := 0, 0
	for {
		for li < len(lhs) && lhs[li] != '\t' && lhs[li] < 0x80 && !isBlankASCII(lhs[li]) && !isAlnumASCII(lhs[li]) {
			li++
		}
		for ri < len(rhs) && rhs[ri] != '\t' && rhs[ri] < 0x80 && !isBlankASCII(rhs[ri]) && !isAlnumASCII(rhs[ri]) {
			ri++
		}

		lEnd, rEnd := fieldEnd(lhs, li), fieldEnd(rhs, ri)
		switch {
		case lEnd && rEnd:
			return 0
		case lEnd:
			return -1
		case rEnd:
			return 1
		}

		lc, rc := toLowerASCII(lhs[li]), toLowerASCII(rhs[ri])
		if lc != rc {
			if lc < rc {
				return -1
			}
			return 1
		}
		li++
		ri++
	}
}

// DictPrefix implements the SkipNonAlphanumeric prefix comparator: skips
// non-alphanumeric/non-blank ASCII bytes on both sides, compares
// case-folded, and declares a match as soon as prefix is exhausted
// regardless of what remains in str.
func DictPrefix(prefix, str []byte) int {
	pi, si := 0, 0
	for {
		for pi < len(prefix) && prefix[pi] != '\t' && prefix[pi] < 0x80 && !isBlankASCII(prefix[pi]) && !isAlnumASCII(prefix[pi]) {
			pi++
		}
		for si < len(str) && str[si] != '\t' && str[si] < 0x80 && !isBlankASCII(str[si]) && !isAlnumASCII(str[si]) {
			si++
		}

		if fieldEnd(prefix, pi) {
			return 0
		}
		if fieldEnd(str, si) {
			return 1
		}

		pc, sc := toLowerASCII(prefix[pi]), toLowerASCII(str[si])
		switch {
		case pc < sc:
			return -1
		case pc > sc:
			return 1
		}
		pi++
		si++
	}
}

// comparatorFor maps (Mode, exact-vs-prefix) to the concrete Comparator, per
// spec.md §4.2's 2×2 matrix.
func comparatorFor(mode Mode, exact bool) Comparator {
	switch {
	case mode == Alphabetic && exact:
		return Equal
	case mode == Alphabetic && !exact:
		return Prefix
	case mode == SkipNonAlphanumeric && exact:
		return DictEqual
	default:
		return DictPrefix
	}
}
