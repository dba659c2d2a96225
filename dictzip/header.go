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

package dictzip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"
)

// gzip Header Values
//
//	+---+---+---+---+---+---+---+---+---+---+
//	|ID1|ID2|CM |FLG|     MTIME     |XFL|OS |
//	+---+---+---+---+---+---+---+---+---+---+
const (
	hdrGzipID1   byte = 0x1f
	hdrGzipID2   byte = 0x8b
	hdrDeflateCM byte = 0x08

	// hdrDictzipSI1, hdrDictzipSI2 are the dictzip random-access subfield ID
	// (SI1, SI2) values.
	hdrDictzipSI1 = byte('R')
	hdrDictzipSI2 = byte('A')
)

// FLG (Flags).
// bit 0 : FTEXT (ignored).
// bit 1 : FHCRC.
// bit 2 : FEXTRA (required for dictzip).
// bit 3 : FNAME.
// bit 4 : FCOMMENT.
const (
	flgCRC     = byte(1 << 1)
	flgEXTRA   = byte(1 << 2)
	flgNAME    = byte(1 << 3)
	flgCOMMENT = byte(1 << 4)
)

// fixedHeaderLen is the length of the fixed-size gzip header before any
// optional FEXTRA/FNAME/FCOMMENT/FHCRC fields.
const fixedHeaderLen = 12

// Outcome classifies the result of parsing a candidate data file's header,
// per spec.md §4.1's detection policy.
type Outcome int

const (
	// NotDictzip means the magic bytes or compression method don't match, or
	// the file is too short to hold even the fixed header. The data file
	// should be treated as uncompressed plaintext.
	NotDictzip Outcome = iota

	// Malformed means the magic matched but the dictzip FEXTRA data is
	// invalid in some way. Opening the file should fail.
	Malformed

	// OK means the header is a valid dictzip header.
	OK
)

// Header is the gzip file header.
//
// Strings must be UTF-8 encoded and may only contain Unicode code points
// U+0001 through U+00FF, due to limitations of the gzip file format.
type Header struct {
	// Comment is the COMMENT header field.
	Comment string

	// Extra includes all EXTRA sub-fields except the dictzip RA sub-field.
	Extra []byte

	// ModTime is the MTIME modification time field.
	ModTime time.Time

	// Name is the NAME header field.
	Name string

	// OS is the OS header field.
	OS byte

	// ChunkLength is the uncompressed size of dictzip chunks (the size of
	// every chunk except possibly the last).
	ChunkLength int
}

// ParseHeader parses the gzip + dictzip FEXTRA header found at the start of
// data, per spec.md §4.1.
//
// On NotDictzip or Malformed, the returned *Header and offsets are nil; the
// error is non-nil only for Malformed (a NotDictzip file is not itself an
// error condition — the caller should fall back to treating data as plain
// uncompressed bytes).
//
// On OK, offsets has len(sizes)+1 entries: offsets[i] is the start of
// compressed chunk i, and offsets[len(offsets)-1] is the end of the last
// chunk (and thus the length of the used portion of data).
func ParseHeader(data []byte) (*Header, []int64, Outcome, error) {
	if len(data) < fixedHeaderLen {
		return nil, nil, NotDictzip, nil
	}
	if data[0] != hdrGzipID1 || data[1] != hdrGzipID2 || data[2] != hdrDeflateCM {
		return nil, nil, NotDictzip, nil
	}

	flags := data[3]
	h := &Header{}
	if mtime := binary.LittleEndian.Uint32(data[4:8]); mtime > 0 {
		h.ModTime = time.Unix(int64(mtime), 0)
	}
	h.OS = data[9]

	if flags&flgEXTRA == 0 {
		return nil, nil, Malformed, headerErr(fmt.Errorf("no EXTRA field"))
	}

	xlen := int(binary.LittleEndian.Uint16(data[10:12]))
	if len(data) < fixedHeaderLen+xlen {
		return nil, nil, Malformed, headerErr(fmt.Errorf("EXTRA exceeds file"))
	}
	extra := data[fixedHeaderLen : fixedHeaderLen+xlen]

	chunkLength, sizes, err := parseExtra(extra, h)
	if err != nil {
		return nil, nil, Malformed, err
	}

	dataOffset := fixedHeaderLen + xlen

	if flags&flgNAME != 0 {
		name, n, ok := readCString(data, dataOffset)
		if !ok {
			return nil, nil, Malformed, headerErr(fmt.Errorf("NAME runs off end of file"))
		}
		h.Name = name
		dataOffset += n
	}

	if flags&flgCOMMENT != 0 {
		comment, n, ok := readCString(data, dataOffset)
		if !ok {
			return nil, nil, Malformed, headerErr(fmt.Errorf("COMMENT runs off end of file"))
		}
		h.Comment = comment
		dataOffset += n
	}

	if flags&flgCRC != 0 {
		dataOffset += 2
	}

	if dataOffset > len(data) {
		return nil, nil, Malformed, headerErr(fmt.Errorf("no room for compressed data"))
	}

	offsets := make([]int64, len(sizes)+1)
	offsets[0] = int64(dataOffset)
	for i, size := range sizes {
		offsets[i+1] = offsets[i] + int64(size)
	}

	// NOTE: data_offset == len(data) is deliberately accepted here (a
	// zero-byte payload after the header), matching the reference
	// implementation's `data_offset >= size + 1` bounds check. See
	// SPEC_FULL.md supplemented feature 6 / spec.md §9 Open Questions.
	if offsets[len(offsets)-1] > int64(len(data)) {
		return nil, nil, Malformed, headerErr(fmt.Errorf("chunk table exceeds file"))
	}

	h.ChunkLength = chunkLength

	return h, offsets, OK, nil
}

// parseExtra parses the gzip EXTRA field, locating the dictzip "RA"
// sub-field among (possibly several) EXTRA sub-fields and returning the
// dictzip uncompressed chunk size and the list of compressed chunk sizes.
// Any non-RA sub-field encountered is preserved on h.Extra.
func parseExtra(extra []byte, h *Header) (int, []int, error) {
	er := bytes.NewReader(extra)
	var chunkLength int
	var sizes []int
	var foundRA bool

	for er.Len() > 0 {
		var subHeader [4]byte
		if _, err := io.ReadFull(er, subHeader[:]); err != nil {
			return 0, nil, headerErr(fmt.Errorf("reading EXTRA sub-field: %w", err))
		}
		si1, si2 := subHeader[0], subHeader[1]
		subLen := int(binary.LittleEndian.Uint16(subHeader[2:4]))

		subData := make([]byte, subLen)
		if _, err := io.ReadFull(er, subData); err != nil {
			return 0, nil, headerErr(fmt.Errorf("reading EXTRA sub-field data: %w", err))
		}

		if si1 == hdrDictzipSI1 && si2 == hdrDictzipSI2 {
			var err error
			chunkLength, sizes, err = parseRASubfield(subData)
			if err != nil {
				return 0, nil, err
			}
			foundRA = true
		} else {
			h.Extra = append(h.Extra, subHeader[:]...)
			h.Extra = append(h.Extra, subData...)
		}
	}

	if !foundRA {
		return 0, nil, headerErr(fmt.Errorf("no RA EXTRA sub-field"))
	}

	return chunkLength, sizes, nil
}

// parseRASubfield parses the dictzip RA sub-field body: SLEN (implicit,
// len(sub)), SVER, CHLEN, CHCNT, and CHCNT chunk sizes.
func parseRASubfield(sub []byte) (int, []int, error) {
	if len(sub) < 6 {
		return 0, nil, headerErr(fmt.Errorf("RA sub-field too short"))
	}

	sver := binary.LittleEndian.Uint16(sub[0:2])
	if sver != 1 {
		return 0, nil, headerErr(fmt.Errorf("unsupported RA version: %d", sver))
	}

	chunkLength := int(binary.LittleEndian.Uint16(sub[2:4]))
	chunkCount := int(binary.LittleEndian.Uint16(sub[4:6]))

	if len(sub) != 6+2*chunkCount {
		return 0, nil, headerErr(fmt.Errorf("RA sub-field size mismatch for %d chunks", chunkCount))
	}

	sizes := make([]int, chunkCount)
	for i := 0; i < chunkCount; i++ {
		sizes[i] = int(binary.LittleEndian.Uint16(sub[6+2*i : 8+2*i]))
	}

	return chunkLength, sizes, nil
}

// readCString reads a NUL-terminated Latin-1 string from data starting at
// offset. It returns the decoded string, the number of bytes consumed
// (including the terminator), and whether the string was properly
// terminated within data.
func readCString(data []byte, offset int) (string, int, bool) {
	end := offset
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", 0, false
	}

	// Strings are ISO 8859-1 / Latin-1 (RFC 1952 section 2.3.1).
	var b strings.Builder
	for _, v := range data[offset:end] {
		b.WriteRune(rune(v))
	}

	return b.String(), end - offset + 1, true
}
