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

// Package index parses and searches a dictd-style index: a sorted,
// tab-separated text file mapping headwords to article locations in a data
// file.
package index

import (
	"errors"
	"fmt"
)

// errIndex is the base error for all index package errors.
var errIndex = errors.New("index")

// ErrMalformedLine indicates a line does not match the
// "headword \t base64(offset) \t base64(length) \n" shape.
var ErrMalformedLine = fmt.Errorf("%w: malformed index line", errIndex)

// maxDecodedValue bounds the base64-decoded offset/length fields. File sizes
// comfortably fit in 48 bits; values requiring more sextets than that are
// rejected rather than silently overflowing.
const maxDecodedValue = 1<<48 - 1

// Line is a single parsed index entry: a headword and the location of its
// article in the data file's logical uncompressed stream.
type Line struct {
	// Headword is the raw bytes of the first tab-delimited field.
	Headword []byte

	// ArticleOffset is the decoded byte offset of the article.
	ArticleOffset int64

	// ArticleLength is the decoded byte length of the article.
	ArticleLength int64

	// NextLine is the offset, relative to the buffer passed to ParseLine,
	// of the byte just past this line's trailing '\n'.
	NextLine int
}

// isBase64Sym reports whether c is a symbol of the alphabet used to encode
// offsets and lengths: A-Z, a-z, 0-9, '+', '/'. This is not RFC 4648 base64
// (no byte-triplet grouping, no padding) — each symbol independently
// contributes one 6-bit sextet, most significant first.
func isBase64Sym(c byte) bool {
	return ('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z') ||
		('0' <= c && c <= '9') ||
		c == '+' || c == '/'
}

// decodeBase64Sextets decodes s (which must consist entirely of base64
// symbols) as a big-endian sequence of 6-bit sextets. It returns an error if
// the accumulated value would exceed maxDecodedValue.
func decodeBase64Sextets(s []byte) (int64, error) {
	var n int64
	for _, c := range s {
		var v int64
		switch {
		case 'A' <= c && c <= 'Z':
			v = int64(c - 'A')
		case 'a' <= c && c <= 'z':
			v = int64(c-'a') + 26
		case '0' <= c && c <= '9':
			v = int64(c-'0') + 52
		case c == '+':
			v = 62
		case c == '/':
			v = 63
		}
		n = n<<6 | v
		if n > maxDecodedValue {
			return 0, fmt.Errorf("%w: base64 value exceeds %d bits", ErrMalformedLine, 48)
		}
	}
	return n, nil
}

// ParseLine parses a single index line starting at the beginning of buf.
//
// Only lines literally matching "headword \t base64+ \t base64+ \n" are
// accepted, with a non-empty headword and both base64 fields non-empty.
// buf may contain more than one line; only the first is parsed, and
// Line.NextLine gives the offset where the next one (if any) begins.
func ParseLine(buf []byte) (Line, error) {
	name := 0
	endName := 0
	for endName < len(buf) && buf[endName] != '\t' {
		endName++
	}
	if endName == len(buf) || endName == name {
		return Line{}, ErrMalformedLine
	}

	pos := endName + 1
	endPos := pos
	for endPos < len(buf) && isBase64Sym(buf[endPos]) {
		endPos++
	}
	if endPos == len(buf) || endPos == pos || buf[endPos] != '\t' {
		return Line{}, ErrMalformedLine
	}

	length := endPos + 1
	endLength := length
	for endLength < len(buf) && isBase64Sym(buf[endLength]) {
		endLength++
	}
	if endLength == len(buf) || endLength == length || buf[endLength] != '\n' {
		return Line{}, ErrMalformedLine
	}

	offset, err := decodeBase64Sextets(buf[pos:endPos])
	if err != nil {
		return Line{}, err
	}
	articleLength, err := decodeBase64Sextets(buf[length:endLength])
	if err != nil {
		return Line{}, err
	}

	return Line{
		Headword:      buf[name:endName],
		ArticleOffset: offset,
		ArticleLength: articleLength,
		NextLine:      endLength + 1,
	}, nil
}
