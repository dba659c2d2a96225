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
	"os"
	"path/filepath"
	"strings"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = errors.New("parsing flags")

// ErrQuery is the base error for picodict-query failures.
var ErrQuery = errors.New("picodict-query")

func init() {
	// See github.com/urfave/cli/issues/1809: without this, `--help foo`
	// tries to look up a command named foo instead of showing help.
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// must checks the error and panics if not nil.
func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// dataPathFor infers the dictzip data path from an index path by stripping
// its final extension and appending ".dict.dz".
func dataPathFor(indexPath string) string {
	ext := filepath.Ext(indexPath)
	return strings.TrimSuffix(indexPath, ext) + ".dict.dz"
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	fig := figure.NewFigure("picodict", "", true)
	_, err := fmt.Fprintf(c.App.Writer, "%s\n%s %s\nCopyright 2024 Google LLC\n\n%s\n",
		fig.String(), c.App.Name, versionInfo.GitVersion, versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

func newQueryApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up headwords in a dictd dictionary.",
		Description: strings.Join([]string{
			"Opens a dictd index/data pair and prints the articles for one or more words.",
			"The data file path is inferred by stripping the index path's final extension",
			"and appending \".dict.dz\".",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},
		},
		ArgsUsage:       "<index-path> <word> [<word>...]",
		Copyright:       "Google LLC",
		HideHelp:        true,
		HideHelpCommand: true,
		Suggest:         true,
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				must(0, cli.ShowAppHelp(c))
				return nil
			}
			if c.Bool("version") {
				return printVersion(c)
			}

			fmt.Fprintln(c.App.Writer, figure.NewFigure("picodict", "", true).String())

			args := c.Args().Slice()
			if len(args) < 2 {
				return fmt.Errorf("%w: expected an index path and at least one word", ErrFlagParse)
			}

			q := query{
				indexPath: args[0],
				dataPath:  dataPathFor(args[0]),
				words:     args[1:],
			}
			return q.Run(c.App.Writer)
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			must(fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err))
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}
			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}
