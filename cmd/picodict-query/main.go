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

import "os"

func main() {
	// ExitErrHandler already reports the error and exits with the right
	// code; Run only returns a non-nil error here if that handler itself
	// declined to exit.
	app := newQueryApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(ExitCodeUnknownError)
	}
}
