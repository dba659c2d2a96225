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

// Package validate implements the one-shot linear scan that checks a dictd
// index/data pair for syntactic well-formedness and cross-file article
// bounds, and infers which comparator family the index was sorted under.
package validate

import (
	"bytes"

	"github.com/ianlewis/picodict/dictzip"
	"github.com/ianlewis/picodict/index"
	"github.com/ianlewis/picodict/internal/byterange"
)

// SortMode identifies the comparator family an index was sorted under, or a
// validation failure. Negative values signal errors; non-negative values
// identify a comparator, matching index.Mode's numbering.
type SortMode int

const (
	// Malformed means the index or data file failed a syntax, bounds, or
	// decompression check.
	Malformed SortMode = -2

	// Unknown means no supported comparator explains the index's line
	// order.
	Unknown SortMode = -1

	// Alphabetic means the index is sorted under index.Alphabetic.
	Alphabetic SortMode = SortMode(index.Alphabetic)

	// SkipNonAlphanumeric means the index is sorted under
	// index.SkipNonAlphanumeric.
	SkipNonAlphanumeric SortMode = SortMode(index.SkipNonAlphanumeric)
)

// sortCount is the number of comparators validate tries, and must match the
// number of non-negative SortMode values.
const sortCount = 2

// comparators lists the comparators in the order matching the SortMode
// values above: the numerically smallest surviving index wins.
var comparators = [sortCount]index.Comparator{
	index.Equal,
	index.DictEqual,
}

// pseudoHeadwordPrefixes are the reserved prefixes marking metadata entries
// (see index.Line / the "Pseudo-entry" glossary term): skipped for sort
// validation but still bounds-checked, and still carried forward as the
// previous headword.
var pseudoHeadwordPrefixes = [][]byte{
	[]byte("00database"),
	[]byte("00-database-"),
}

func isPseudoHeadword(headword []byte) bool {
	for _, prefix := range pseudoHeadwordPrefixes {
		if bytes.HasPrefix(headword, prefix) {
			return true
		}
	}
	return false
}

// Validate opens indexPath and dataPath, performs a full decompression test
// of dataPath if it is dictzip-compressed, and scans indexPath line by line
// checking syntax and article bounds while inferring the sort comparator.
//
// It returns Malformed for any file-open failure, decompression failure,
// line-syntax error, or out-of-bounds article range; Unknown if no
// supported comparator explains the index's line order; otherwise the
// numerically smallest comparator (Alphabetic before SkipNonAlphanumeric)
// that remains consistent with the whole index.
func Validate(indexPath, dataPath string) SortMode {
	idx, err := byterange.Open(indexPath)
	if err != nil {
		return Malformed
	}
	defer idx.Close()

	data, err := byterange.Open(dataPath)
	if err != nil {
		return Malformed
	}
	defer data.Close()

	dataSize, err := uncompressedSize(data)
	if err != nil {
		return Malformed
	}

	return validateIndex(idx.Bytes(), dataSize)
}

// uncompressedSize returns the logical size the validator should bounds
// check article ranges against: the dictzip-decompressed size if data is
// dictzip, or data's own length otherwise.
func uncompressedSize(data *byterange.Range) (int64, error) {
	_, _, outcome, err := dictzip.ParseHeader(data.Bytes())
	switch outcome {
	case dictzip.Malformed:
		return 0, err
	case dictzip.OK:
		z, err := dictzip.NewReader(data.Bytes())
		if err != nil {
			return 0, err
		}
		defer z.Close()
		return z.VerifyAll()
	default: // dictzip.NotDictzip
		return int64(data.Len()), nil
	}
}

// validateIndex implements the reference _pd_validate_index scan.
func validateIndex(buf []byte, dataSize int64) SortMode {
	valid := [sortCount]bool{true, true}
	var prevName []byte
	var havePrev bool

	for pos := int64(0); pos < int64(len(buf)); {
		line, err := index.ParseLine(buf[pos:])
		if err != nil {
			return Malformed
		}

		if line.ArticleOffset+line.ArticleLength > dataSize {
			return Malformed
		}

		if isPseudoHeadword(line.Headword) {
			pos += int64(line.NextLine)
			prevName = line.Headword
			havePrev = true
			continue
		}

		if havePrev {
			for i := range valid {
				if valid[i] && comparators[i](prevName, line.Headword) > 0 {
					valid[i] = false
				}
			}
		}

		pos += int64(line.NextLine)
		prevName = line.Headword
		havePrev = true
	}

	for i, ok := range valid {
		if ok {
			return SortMode(i)
		}
	}
	return Unknown
}
