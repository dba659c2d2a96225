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

package picodict_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/picodict"
)

// b64Encode encodes n using the dictd index's non-padded, MSB-first base64
// numeral alphabet (see index.ParseLine).
func b64Encode(n int) []byte {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	if n == 0 {
		return []byte{alphabet[0]}
	}
	var out []byte
	for n > 0 {
		out = append([]byte{alphabet[n&0x3f]}, out...)
		n >>= 6
	}
	return out
}

// writeFile writes contents to dir/name and returns the full path.
func writeFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

// storedDeflateBlock encodes data as a single raw-DEFLATE stored block (RFC
// 1951 §3.2.4, BTYPE=00): a 1-byte BFINAL/BTYPE header, then LEN/NLEN, then
// the literal bytes verbatim. compress/flate decodes this without needing a
// real compressor, which lets dictzip fixtures below be built as plain byte
// literals instead of pulling in a compressor.
func storedDeflateBlock(data []byte) []byte {
	out := []byte{0x01} // BFINAL=1, BTYPE=00, byte-aligned
	length := uint16(len(data))
	out = append(out, byte(length), byte(length>>8))
	nlength := ^length
	out = append(out, byte(nlength), byte(nlength>>8))
	return append(out, data...)
}

// dictzipFixture builds a minimal valid dictzip file (gzip header + "RA"
// FEXTRA sub-field, per dictzip/header.go) over contents, split into
// chunkLength-sized stored-block chunks, and writes it to dir/name,
// returning the full path.
func dictzipFixture(t *testing.T, dir, name string, chunkLength int, contents []byte) string {
	t.Helper()

	var chunks [][]byte
	for i := 0; i < len(contents); i += chunkLength {
		end := i + chunkLength
		if end > len(contents) {
			end = len(contents)
		}
		chunks = append(chunks, storedDeflateBlock(contents[i:end]))
	}

	var sizes []byte
	for _, c := range chunks {
		n := uint16(len(c))
		sizes = append(sizes, byte(n), byte(n>>8))
	}

	raSub := []byte{0x01, 0x00} // SVER=1
	cl := uint16(chunkLength)
	cc := uint16(len(chunks))
	raSub = append(raSub, byte(cl), byte(cl>>8))
	raSub = append(raSub, byte(cc), byte(cc>>8))
	raSub = append(raSub, sizes...)

	extra := []byte{'R', 'A'}
	slen := uint16(len(raSub))
	extra = append(extra, byte(slen), byte(slen>>8))
	extra = append(extra, raSub...)

	var buf bytes.Buffer
	buf.Write([]byte{0x1f, 0x8b, 0x08}) // ID1, ID2, CM=deflate
	buf.WriteByte(1 << 2)               // FLG: FEXTRA
	buf.Write([]byte{0, 0, 0, 0})       // MTIME
	buf.WriteByte(0)                    // XFL
	buf.WriteByte(0xff)                 // OS unknown
	xlen := uint16(len(extra))
	buf.Write([]byte{byte(xlen), byte(xlen >> 8)})
	buf.Write(extra)
	for _, c := range chunks {
		buf.Write(c)
	}

	return writeFile(t, dir, name, buf.Bytes())
}

func TestOpenFind_minimalUncompressedDictionary(t *testing.T) {
	t.Parallel()

	// Scenario 1 from spec.md §8.
	dir := t.TempDir()
	indexPath := writeFile(t, dir, "test.index", []byte("hello\tA\tF\n"))
	dataPath := writeFile(t, dir, "test.dict", []byte("Hello"))

	d, err := picodict.Open(indexPath, dataPath, picodict.Alphabetic)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	r, err := d.Find("hello", picodict.Exact)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	article, err := r.Article()
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff([]byte("Hello"), article); diff != "" {
		t.Errorf("Article (-want, +got):\n%s", diff)
	}
}

func TestFind_notFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	indexPath := writeFile(t, dir, "test.index", []byte("hello\tA\tF\n"))
	dataPath := writeFile(t, dir, "test.dict", []byte("Hello"))

	d, err := picodict.Open(indexPath, dataPath, picodict.Alphabetic)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	_, err = d.Find("goodbye", picodict.Exact)
	if diff := cmp.Diff(picodict.ErrNotFound, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Find error (-want, +got):\n%s", diff)
	}
}

func TestFind_prefixIntervalIteration(t *testing.T) {
	t.Parallel()

	// Scenario 2 from spec.md §8.
	dir := t.TempDir()
	indexPath := writeFile(t, dir, "test.index", []byte(
		"yraft\tA\tA\n"+"yronne\tA\tA\n"+"zzz\tA\tA\n"))
	dataPath := writeFile(t, dir, "test.dict", []byte("x"))

	d, err := picodict.Open(indexPath, dataPath, picodict.Alphabetic)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	r, err := d.Find("yr", picodict.StartsWith)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	var count int
	for cur, ok := r, true; ok; cur, ok = cur.Next() {
		count++
	}
	if diff := cmp.Diff(2, count); diff != "" {
		t.Errorf("visited entry count (-want, +got):\n%s", diff)
	}
}

func TestName_extractsSecondLine(t *testing.T) {
	t.Parallel()

	// Scenario 3 from spec.md §8.
	dir := t.TempDir()
	article := "00-database-short\n    My Dictionary\n"
	dataPath := writeFile(t, dir, "test.dict", []byte(article))

	indexPath := writeFile(t, dir, "test.index", append(
		append([]byte("00-database-short\tA\t"), b64Encode(len(article))...), '\n'))

	d, err := picodict.Open(indexPath, dataPath, picodict.Alphabetic)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	name, ok := d.Name()
	if !ok {
		t.Fatalf("Name: got ok=false, want true")
	}
	if diff := cmp.Diff("My Dictionary", name); diff != "" {
		t.Errorf("Name (-want, +got):\n%s", diff)
	}
}

func TestFind_dictzipRandomRead(t *testing.T) {
	t.Parallel()

	// Scenario 4 from spec.md §8: chunk_length 8, two chunks.
	dir := t.TempDir()
	indexPath := writeFile(t, dir, "test.index", []byte("word\tG\tE\n")) // offset 6, length 4
	dataPath := dictzipFixture(t, dir, "test.dict.dz", 8, []byte("0123456789abcdef"))

	d, err := picodict.Open(indexPath, dataPath, picodict.Alphabetic)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	r, err := d.Find("word", picodict.Exact)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	article, err := r.Article()
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff([]byte("6789"), article); diff != "" {
		t.Errorf("Article (-want, +got):\n%s", diff)
	}
}

func TestValidate_sortInference(t *testing.T) {
	t.Parallel()

	// Scenario 5 from spec.md §8.
	testCases := []struct {
		name  string
		lines []string
		want  picodict.SortMode
	}{
		{
			name:  "alphabetic",
			lines: []string{"ant", "bear", "cat"},
			want:  picodict.Alphabetic,
		},
		{
			name:  "skip-non-alphanumeric only",
			lines: []string{"a-n-t", "ANT!!", "ant?"},
			want:  picodict.SkipNonAlphanumeric,
		},
		{
			name:  "unknown",
			lines: []string{"bear", "ant"},
			want:  picodict.Unknown,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			var idx bytes.Buffer
			for _, line := range tc.lines {
				idx.WriteString(line)
				idx.WriteString("\tA\tA\n")
			}
			indexPath := writeFile(t, dir, "test.index", idx.Bytes())
			dataPath := writeFile(t, dir, "test.dict", []byte("x"))

			got := picodict.Validate(indexPath, dataPath)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Validate (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_malformedArticleBounds(t *testing.T) {
	t.Parallel()

	// Scenario 6 from spec.md §8: article length exceeds uncompressed
	// data size.
	dir := t.TempDir()
	indexPath := writeFile(t, dir, "test.index", []byte("word\tA\t//\n")) // length 4095
	dataPath := writeFile(t, dir, "test.dict", []byte("x"))

	got := picodict.Validate(indexPath, dataPath)
	if diff := cmp.Diff(picodict.Malformed, got); diff != "" {
		t.Errorf("Validate (-want, +got):\n%s", diff)
	}
}
