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

package main

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/ianlewis/picodict"
)

type verify struct {
	indexPath string
	dataPath  string
}

func (v *verify) Run(w io.Writer) error {
	mode := picodict.Validate(v.indexPath, v.dataPath)

	fmt.Fprintln(w, int(mode))

	tbl := table.New("index", "data", "sort-mode")
	tbl.WithWriter(w)
	tbl.AddRow(v.indexPath, v.dataPath, sortModeName(mode))
	tbl.Print()

	if mode == picodict.Malformed {
		return fmt.Errorf("%w: %s is malformed", ErrVerify, v.indexPath)
	}
	return nil
}

func sortModeName(mode picodict.SortMode) string {
	switch mode {
	case picodict.Alphabetic:
		return "alphabetic"
	case picodict.SkipNonAlphanumeric:
		return "skip-non-alphanumeric"
	case picodict.Unknown:
		return "unknown"
	case picodict.Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("%d", int(mode))
	}
}
