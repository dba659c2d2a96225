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
	"compress/flate"
	"errors"
	"fmt"
	"io"
)

// chunkCacheSize is the number of decompressed chunks kept resident, per
// spec.md §4.1's chunk cache: a bounded set of at most three entries,
// replaced strictly FIFO by insertion order.
const chunkCacheSize = 3

// readCloseResetter is an interface that wraps the io.ReadCloser and
// flate.Resetter interfaces. This is used because flate.NewReader
// unfortunately returns an io.ReadCloser instead of a concrete type.
type readCloseResetter interface {
	io.ReadCloser
	flate.Resetter
}

// chunkCache holds up to chunkCacheSize decompressed chunks. Replacement is
// FIFO by insertion order (a rotating counter modulo capacity); a lookup
// that misses always decompresses into the slot at nextID % chunkCacheSize,
// independent of which slots were most recently read.
type chunkCache struct {
	nextID int
	id     [chunkCacheSize]int
	data   [chunkCacheSize][]byte
}

func newChunkCache() chunkCache {
	c := chunkCache{}
	for i := range c.id {
		c.id[i] = -1
	}
	return c
}

// lookup returns the cached bytes for chunkID, or nil if not present.
func (c *chunkCache) lookup(chunkID int) []byte {
	for i := 0; i < chunkCacheSize; i++ {
		if c.id[i] == chunkID {
			return c.data[i]
		}
	}
	return nil
}

// slotFor returns the buffer to decompress chunkID into, allocating it on
// first use, and advances the FIFO counter. The caller must call commit or
// evict once decompression finishes.
func (c *chunkCache) slotFor(chunkLength int) (slot int, buf []byte) {
	slot = c.nextID % chunkCacheSize
	c.nextID++
	if c.id[slot] == -1 {
		c.data[slot] = make([]byte, chunkLength)
	}
	return slot, c.data[slot]
}

func (c *chunkCache) commit(slot, chunkID int) {
	c.id[slot] = chunkID
}

func (c *chunkCache) evict(slot int) {
	c.id[slot] = -1
	c.data[slot] = nil
}

// Reader provides random access to dictzip-compressed data held entirely in
// memory (typically a memory-mapped file; see internal/byterange). It owns
// a single raw-deflate inflater shared across chunks, reset before each
// chunk decompression, and a small fixed-size cache of decompressed chunks.
type Reader struct {
	// Header is the gzip header data, valid after NewReader.
	Header

	data    []byte
	offsets []int64 // len(offsets) == chunkCount+1

	z     readCloseResetter
	cache chunkCache
}

// NewReader parses data as a dictzip file and returns a Reader providing
// random access to its uncompressed contents.
//
// NewReader returns an error wrapping ErrHeader if data's header is
// malformed. Callers that need to distinguish "not a dictzip file at all"
// from "malformed dictzip file" should call ParseHeader directly.
func NewReader(data []byte) (*Reader, error) {
	h, offsets, outcome, err := ParseHeader(data)
	switch outcome {
	case NotDictzip:
		return nil, fmt.Errorf("%w: not a dictzip file", errDictzip)
	case Malformed:
		return nil, err
	}

	fr := flate.NewReader(bytes.NewReader(nil))
	z := &Reader{
		Header:  *h,
		data:    data,
		offsets: offsets,
		z:       fr.(readCloseResetter),
		cache:   newChunkCache(),
	}

	return z, nil
}

// Close releases the Reader's inflater resources. It does not affect data.
func (z *Reader) Close() error {
	return z.z.Close()
}

// ChunkCount returns the number of compressed chunks in the file.
func (z *Reader) ChunkCount() int {
	return len(z.offsets) - 1
}

// VerifyAll decompresses every chunk in order and returns the total
// uncompressed size, or the first decompression error encountered. Each
// chunk goes through the same cache and per-chunk inflater reset that
// ReadAt uses, so the Reader remains usable for ReadAt afterwards.
func (z *Reader) VerifyAll() (int64, error) {
	count := z.ChunkCount()
	if count == 0 {
		return 0, nil
	}

	var lastLen int
	for i := 0; i < count; i++ {
		chunk, err := z.readChunk(i)
		if err != nil {
			return 0, err
		}
		lastLen = len(chunk)
	}

	return int64(count-1)*int64(z.ChunkLength) + int64(lastLen), nil
}

// ReadAt reads len(p) bytes of the logical uncompressed stream starting at
// logical offset off, per spec.md §4.1's random access algorithm: split the
// request across chunk boundaries, fetching each chunk via the cache.
//
// ReadAt returns io.EOF if off lies at or past the end of the uncompressed
// stream, and a decompress-failure error if any required chunk fails to
// decompress.
func (z *Reader) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		offset := off + int64(total)
		chunkID := int(offset / int64(z.ChunkLength))
		if chunkID >= z.ChunkCount() {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}

		chunk, err := z.readChunk(chunkID)
		if err != nil {
			return total, err
		}

		inChunk := int(offset % int64(z.ChunkLength))
		if inChunk >= len(chunk) {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}

		n := copy(p[total:], chunk[inChunk:])
		total += n
	}

	return total, nil
}

// sequentialReader adapts Reader's random access ReadAt into a sequential
// io.Reader starting from the beginning of the uncompressed stream.
type sequentialReader struct {
	z      *Reader
	offset int64
}

// NewSequentialReader returns an io.Reader that reads z's uncompressed
// stream from the beginning, for callers (e.g. io.Copy, or a test checksum)
// that want to stream the whole file rather than make random-access
// requests.
func NewSequentialReader(z *Reader) io.Reader {
	return &sequentialReader{z: z}
}

func (r *sequentialReader) Read(p []byte) (int, error) {
	n, err := r.z.ReadAt(p, r.offset)
	r.offset += int64(n)
	if n > 0 && errors.Is(err, io.EOF) {
		// io.Reader contract: a non-zero read may defer EOF to the next call.
		return n, nil
	}
	return n, err
}

// readChunk returns the decompressed bytes of chunk chunkID, using and
// maintaining the chunk cache. The returned slice has length ChunkLength
// for every chunk except possibly the last, which may be shorter.
func (z *Reader) readChunk(chunkID int) ([]byte, error) {
	if cached := z.cache.lookup(chunkID); cached != nil {
		return cached, nil
	}

	slot, buf := z.cache.slotFor(z.ChunkLength)
	buf = buf[:cap(buf)]

	start, end := z.offsets[chunkID], z.offsets[chunkID+1]
	if err := z.z.Reset(bytes.NewReader(z.data[start:end]), nil); err != nil {
		z.cache.evict(slot)
		return nil, fmt.Errorf("%w: resetting inflater for chunk %d: %w", errDictzip, chunkID, err)
	}

	n, err := io.ReadFull(z.z, buf)
	switch {
	case err == nil:
		// Full ChunkLength bytes were available: an interior chunk, or the
		// last chunk happens to be exactly ChunkLength bytes long.
	case errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF):
		// The last chunk may decompress to fewer than ChunkLength bytes.
		buf = buf[:n]
	default:
		z.cache.evict(slot)
		return nil, fmt.Errorf("%w: decompressing chunk %d: %w", errDictzip, chunkID, err)
	}

	z.cache.data[slot] = buf
	z.cache.commit(slot, chunkID)
	return buf, nil
}
