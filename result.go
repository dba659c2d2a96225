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
	"fmt"

	"github.com/ianlewis/picodict/index"
)

// Result is a cursor over one or more consecutive index lines matching a
// Find query. A Result borrows its Dictionary; the Dictionary must outlive
// every Result derived from it.
type Result struct {
	dict     *Dictionary
	interval index.Interval

	article []byte
	loaded  bool
}

// Article returns the article bytes for the first line in the Result's
// interval. The call is idempotent: the second and subsequent calls return
// the same cached buffer. For an uncompressed dictionary the returned slice
// borrows the Dictionary's mapped data and must not be retained past the
// Dictionary's Close; for a compressed dictionary it is a heap buffer owned
// by the Result.
func (r *Result) Article() ([]byte, error) {
	if r.loaded {
		return r.article, nil
	}

	line, err := index.ParseLine(r.dict.index.Bytes()[r.interval.Lower:r.interval.Upper])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if r.dict.z != nil {
		buf := make([]byte, line.ArticleLength)
		if _, err := r.dict.z.ReadAt(buf, line.ArticleOffset); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
		}
		r.article = buf
	} else {
		data := r.dict.data.Bytes()
		end := line.ArticleOffset + line.ArticleLength
		if end > int64(len(data)) {
			return nil, fmt.Errorf("%w: article range exceeds data", errPicodict)
		}
		r.article = data[line.ArticleOffset:end]
	}

	r.loaded = true
	return r.article, nil
}

// Next returns a new Result covering the line immediately following r's
// first line, keeping the same upper bound. It does not mutate r. It
// returns false if r's interval has no further line (the cursor already
// sits at its upper bound).
func (r *Result) Next() (*Result, bool) {
	next, ok := index.Next(r.dict.index.Bytes(), r.interval)
	if !ok {
		return nil, false
	}
	return &Result{dict: r.dict, interval: next}, true
}

// Free releases any resources held by r. Results hold no resources beyond
// Go-managed memory, so Free is a no-op kept for parity with the
// open/find/result lifecycle described by the format this package
// implements.
func (r *Result) Free() {}
