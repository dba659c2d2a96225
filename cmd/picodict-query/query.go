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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"

	"github.com/ianlewis/picodict"
)

type query struct {
	indexPath string
	dataPath  string
	words     []string
}

func (q *query) Run(w io.Writer) error {
	d, err := picodict.Open(q.indexPath, q.dataPath, picodict.Alphabetic)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer d.Close()

	if name, ok := d.Name(); ok {
		tbl := table.New("dictionary")
		tbl.WithWriter(w)
		tbl.AddRow(name)
		tbl.Print()
	}

	var notFound []string
	for i, word := range q.words {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("-", 40))
		}

		r, err := d.Find(word, picodict.StartsWith)
		if errors.Is(err, picodict.ErrNotFound) {
			notFound = append(notFound, word)
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}

		for cur, ok := r, true; ok; cur, ok = cur.Next() {
			article, err := cur.Article()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrQuery, err)
			}
			fmt.Fprintf(w, "%s\n", article)
		}
	}

	if len(notFound) > 0 {
		return fmt.Errorf("%w: no entry for: %s", picodict.ErrNotFound, strings.Join(notFound, ", "))
	}
	return nil
}
