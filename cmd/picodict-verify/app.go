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

// ErrVerify is the base error for picodict-verify failures.
var ErrVerify = errors.New("picodict-verify")

func init() {
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

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
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	return nil
}

func newVerifyApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Check a dictd index/data pair and report its inferred sort mode.",
		Description: strings.Join([]string{
			"Scans the index for well-formedness and cross-checks every article",
			"range against the data file's uncompressed size. The data file path",
			"is inferred by stripping the index path's final extension and",
			"appending \".dict.dz\".",
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
		ArgsUsage:       "<index-path>",
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
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one index path", ErrFlagParse)
			}

			v := verify{indexPath: args[0], dataPath: dataPathFor(args[0])}
			return v.Run(c.App.Writer)
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
