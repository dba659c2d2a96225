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

// Package byterange provides a read-only, memory-mapped view of a file as a
// single immutable contiguous byte range. It is the leaf "byte-range
// provider" that both the index reader and the dictzip reader are built on.
package byterange

import (
	"fmt"
	"os"

	"github.com/dolthub/mmap-go"
)

// Range is an immutable view of a file's contents, backed by a read-only
// memory mapping. The zero value is not usable; use Open.
type Range struct {
	f *os.File
	m mmap.MMap
}

// Open memory-maps path read-only and returns a Range over its entire
// contents. The caller must call Close when done.
func Open(path string) (*Range, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("byterange: opening %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("byterange: stat %q: %w", path, err)
	}

	// A zero-length file can't be mapped; treat it as an empty range.
	if fi.Size() == 0 {
		return &Range{f: f, m: mmap.MMap{}}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("byterange: mapping %q: %w", path, err)
	}

	return &Range{f: f, m: m}, nil
}

// Bytes returns the full contents of the range. The returned slice is valid
// until Close is called and must not be modified.
func (r *Range) Bytes() []byte {
	return []byte(r.m)
}

// Len returns the length of the range in bytes.
func (r *Range) Len() int {
	return len(r.m)
}

// Close unmaps the range and closes the underlying file. It is safe to call
// Close on a Range whose Bytes() slices are still referenced elsewhere only
// if those references are no longer used afterwards (see spec.md's lifetime
// summary: byte range outlives every handle/cursor derived from it).
func (r *Range) Close() error {
	var err error
	if len(r.m) > 0 {
		err = r.m.Unmap()
	}
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}
