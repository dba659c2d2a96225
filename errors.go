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
	"errors"
	"fmt"
)

// errPicodict is the base error for all picodict errors.
var errPicodict = errors.New("picodict")

// ErrOpen indicates a dictionary's index or data file could not be mapped,
// or the data file has dictzip magic bytes but a corrupt extra field.
var ErrOpen = fmt.Errorf("%w: failed to open dictionary", errPicodict)

// ErrInvalidSortMode indicates Open was called with a SortMode that is not
// one of Alphabetic or SkipNonAlphanumeric.
var ErrInvalidSortMode = fmt.Errorf("%w: invalid sort mode", errPicodict)

// ErrNotFound indicates Find matched no index entries.
var ErrNotFound = fmt.Errorf("%w: no matching entry", errPicodict)

// ErrDecompress indicates the underlying codec rejected a chunk while
// materializing a Result's article. The Result remains valid; the caller
// should report and move on rather than retry.
var ErrDecompress = fmt.Errorf("%w: chunk decompression failed", errPicodict)

// ErrMalformed wraps parse failures surfaced while reading an already-open
// dictionary (as opposed to validate.Validate's up-front scan).
var ErrMalformed = fmt.Errorf("%w: malformed index line", errPicodict)
