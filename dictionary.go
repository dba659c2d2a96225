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

// Package picodict is a read-only access layer for the dictd dictionary
// format: a pair of files comprising a plain-text tab-separated index and a
// randomly-addressable, optionally dictzip-compressed data payload.
//
// A Dictionary is opened with a known SortMode (obtained ahead of time from
// Validate), searched with Find, and closed with Close. All Results derived
// from a Dictionary must be discarded before the Dictionary itself is
// closed; see the package's data byte ranges and chunk cache, which Results
// backed by compressed data borrow from only transiently.
//
// Unless otherwise noted, types in this package are not safe for concurrent
// use by multiple goroutines.
package picodict

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/ianlewis/picodict/dictzip"
	"github.com/ianlewis/picodict/index"
	"github.com/ianlewis/picodict/internal/byterange"
)

var (
	pseudoNameShort     = []byte("00-database-short")
	pseudoNameShortNoH  = []byte("00databaseshort")
	pseudoNameShortLine = append(append([]byte{}, pseudoNameShort...), '\n')
	pseudoNameNoHLine   = append(append([]byte{}, pseudoNameShortNoH...), '\n')
)

// Dictionary is an opened dictd dictionary: an index file and a data file,
// mapped read-only for the Dictionary's lifetime.
type Dictionary struct {
	mode SortMode

	index *byterange.Range
	data  *byterange.Range

	// z is non-nil when data is dictzip-compressed.
	z *dictzip.Reader
}

// Open maps indexPath and dataPath read-only and returns a Dictionary ready
// for Find and Name calls. mode must be Alphabetic or SkipNonAlphanumeric;
// callers obtain it ahead of time from Validate, since validating is
// CPU-heavy and should not be repeated on every Open.
func Open(indexPath, dataPath string, mode SortMode) (*Dictionary, error) {
	if mode != Alphabetic && mode != SkipNonAlphanumeric {
		return nil, ErrInvalidSortMode
	}

	idx, err := byterange.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	data, err := byterange.Open(dataPath)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	_, _, outcome, err := dictzip.ParseHeader(data.Bytes())
	if outcome == dictzip.Malformed {
		idx.Close()
		data.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	d := &Dictionary{mode: mode, index: idx, data: data}
	if outcome == dictzip.OK {
		z, err := dictzip.NewReader(data.Bytes())
		if err != nil {
			idx.Close()
			data.Close()
			return nil, fmt.Errorf("%w: %w", ErrOpen, err)
		}
		d.z = z
	}

	return d, nil
}

// Close releases the Dictionary's mapped files and, for compressed
// dictionaries, its inflater. Every Result derived from d must be discarded
// first.
func (d *Dictionary) Close() error {
	var err error
	if d.z != nil {
		err = d.z.Close()
	}
	if e := d.data.Close(); err == nil {
		err = e
	}
	if e := d.index.Close(); err == nil {
		err = e
	}
	return err
}

// Name returns the dictionary's human-readable name, stored as the article
// of a reserved pseudo-headword, or false if neither pseudo-headword has an
// entry.
//
// Name always uses the Alphabetic equality comparator to locate the
// pseudo-entry, regardless of the dictionary's own sort mode, since the
// reserved headwords are a fixed ASCII literal rather than user data.
func (d *Dictionary) Name() (string, bool) {
	iv := index.FindInterval(d.index.Bytes(), index.Equal, pseudoNameShort, 0, int64(d.index.Len()))
	if iv.Empty() {
		iv = index.FindInterval(d.index.Bytes(), index.Equal, pseudoNameShortNoH, 0, int64(d.index.Len()))
		if iv.Empty() {
			return "", false
		}
	}

	r := &Result{dict: d, interval: iv}
	article, err := r.Article()
	if err != nil {
		return "", false
	}

	return extractName(article), true
}

// extractName implements spec.md §4.2's name-lookup article format: a
// pseudo-entry's article is "00-database-short\n    <name>\n...", and the
// name is the second line with leading whitespace trimmed. An article not
// in that shape is returned verbatim.
func extractName(article []byte) string {
	if !bytes.HasPrefix(article, pseudoNameShortLine) && !bytes.HasPrefix(article, pseudoNameNoHLine) {
		return string(article)
	}

	nl := bytes.IndexByte(article, '\n')
	rest := article[nl+1:]

	i := 0
	for i < len(rest) && unicode.IsSpace(rune(rest[i])) {
		i++
	}
	rest = rest[i:]

	if end := bytes.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	return string(rest)
}

// Find searches for headwords matching text under the dictionary's sort
// mode, using the comparator selected by find (Exact or StartsWith). It
// returns ErrNotFound if no headword matches.
func (d *Dictionary) Find(text string, find FindMode) (*Result, error) {
	cmp, ok := comparator(d.mode, find)
	if !ok {
		return nil, ErrInvalidSortMode
	}

	iv := index.FindInterval(d.index.Bytes(), cmp, []byte(text), 0, int64(d.index.Len()))
	if iv.Empty() {
		return nil, ErrNotFound
	}

	return &Result{dict: d, interval: iv}, nil
}
