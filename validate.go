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

import "github.com/ianlewis/picodict/validate"

// Validate checks indexPath and dataPath for syntactic well-formedness and
// cross-file article bounds, and infers the sort comparator the index was
// built under. Applications should call Validate once, ahead of time, and
// cache the resulting SortMode for later Open calls: it is a CPU-heavy
// linear scan of the whole index plus a full decompression pass of the
// data file, and should not be repeated on every Open.
func Validate(indexPath, dataPath string) SortMode {
	return validate.Validate(indexPath, dataPath)
}
