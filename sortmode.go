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

package picodict

import (
	"github.com/ianlewis/picodict/index"
	"github.com/ianlewis/picodict/validate"
)

// SortMode identifies the comparator family a dictionary's index is sorted
// under, or a validation failure. Negative values signal errors;
// non-negative values identify a comparator.
type SortMode = validate.SortMode

const (
	// Malformed means validate found a syntax error, an out-of-bounds
	// article range, or a chunk that failed to decompress.
	Malformed = validate.Malformed

	// Unknown means validate found no comparator consistent with the
	// index's line order.
	Unknown = validate.Unknown

	// Alphabetic orders headwords byte-for-byte.
	Alphabetic = validate.Alphabetic

	// SkipNonAlphanumeric orders headwords case-folded, skipping bytes
	// that are neither alphanumeric nor blank.
	SkipNonAlphanumeric = validate.SkipNonAlphanumeric
)

// FindMode selects whether Dictionary.Find requires an exact headword match
// or accepts any headword beginning with the query text.
type FindMode int

const (
	// Exact requires the headword to equal the query text under the
	// dictionary's comparator.
	Exact FindMode = iota

	// StartsWith accepts any headword beginning with the query text.
	StartsWith
)

// comparator returns the index.Comparator to use for a Find call, given the
// dictionary's sort mode and the requested FindMode.
func comparator(mode SortMode, find FindMode) (index.Comparator, bool) {
	switch mode {
	case Alphabetic:
		if find == Exact {
			return index.Equal, true
		}
		return index.Prefix, true
	case SkipNonAlphanumeric:
		if find == Exact {
			return index.DictEqual, true
		}
		return index.DictPrefix, true
	default:
		return nil, false
	}
}
