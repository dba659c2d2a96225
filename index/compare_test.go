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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		lhs, rhs   string
		wantResult int
	}{
		{name: "equal bare headwords", lhs: "cat", rhs: "cat", wantResult: 0},
		{name: "equal with tab field terminators", lhs: "cat\t", rhs: "cat\tA\tB\n", wantResult: 0},
		{name: "less", lhs: "bat", rhs: "cat", wantResult: -1},
		{name: "greater", lhs: "cat", rhs: "bat", wantResult: 1},
		{name: "prefix of longer is less", lhs: "ca", rhs: "cat", wantResult: -1},
		{name: "longer than prefix is greater", lhs: "cat", rhs: "ca\t", wantResult: 1},
		{name: "high bytes compare byte-wise", lhs: "\xe9", rhs: "\xe8", wantResult: 1},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := sign(Equal([]byte(tc.lhs), []byte(tc.rhs)))
			if diff := cmp.Diff(tc.wantResult, got); diff != "" {
				t.Errorf("Equal (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		prefix, str    string
		wantResult     int
	}{
		{name: "exact prefix match", prefix: "yr", str: "yraft\tA\tB\n", wantResult: 0},
		{name: "full headword as prefix", prefix: "yraft", str: "yraft\tA\tB\n", wantResult: 0},
		{name: "str ends before prefix exhausted", prefix: "yraft", str: "yr\tA\tB\n", wantResult: 1},
		{name: "prefix sorts before", prefix: "a", str: "zzz\tA\tB\n", wantResult: -1},
		{name: "prefix sorts after", prefix: "zzz", str: "aaa\tA\tB\n", wantResult: 1},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := sign(Prefix([]byte(tc.prefix), []byte(tc.str)))
			if diff := cmp.Diff(tc.wantResult, got); diff != "" {
				t.Errorf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictEqual(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		lhs, rhs   string
		wantResult int
	}{
		{name: "case-folded equal", lhs: "ANT", rhs: "ant", wantResult: 0},
		{name: "punctuation skipped", lhs: "a-n-t", rhs: "ant", wantResult: 0},
		{name: "punctuation and case both skipped", lhs: "A-N-T!!", rhs: "ant?", wantResult: 0},
		{name: "high bytes pass through unskipped", lhs: "a\xe9t", rhs: "a\xe8t", wantResult: 1},
		{name: "less", lhs: "ant", rhs: "bear", wantResult: -1},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := sign(DictEqual([]byte(tc.lhs), []byte(tc.rhs)))
			if diff := cmp.Diff(tc.wantResult, got); diff != "" {
				t.Errorf("DictEqual (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictPrefix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		prefix, str string
		wantResult  int
	}{
		{name: "case-folded prefix", prefix: "YR", str: "yraft\tA\tB\n", wantResult: 0},
		{name: "punctuation in str skipped", prefix: "yr", str: "y-r-aft\tA\tB\n", wantResult: 0},
		{name: "match regardless of what remains", prefix: "yraft", str: "yraft123\tA\tB\n", wantResult: 0},
		{name: "str shorter than prefix", prefix: "yraft", str: "yr\tA\tB\n", wantResult: 1},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := sign(DictPrefix([]byte(tc.prefix), []byte(tc.str)))
			if diff := cmp.Diff(tc.wantResult, got); diff != "" {
				t.Errorf("DictPrefix (-want, +got):\n%s", diff)
			}
		})
	}
}
