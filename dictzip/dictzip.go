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

// Package dictzip implements the dictzip random-access compression format.
// Dictzip compresses files using the gzip(1) algorithm (LZ77), recording the
// compressed size of every fixed-length chunk of the uncompressed stream in
// a gzip FEXTRA sub-field ("RA") so that any chunk can be decompressed
// independently, without decompressing the chunks before it.
//
// See: https://linux.die.net/man/1/dictzip
// See: https://datatracker.ietf.org/doc/html/rfc1952
//
// Unless otherwise informed clients should not assume implementations in
// this package are safe for parallel execution.
package dictzip

import (
	"errors"
	"fmt"
)

var (
	// errDictzip is the base error for all dictzip errors.
	errDictzip = errors.New("dictzip")

	// ErrHeader indicates an error with gzip/dictzip header data.
	ErrHeader = fmt.Errorf("%w: invalid header", errDictzip)
)

const (
	// OSFAT represents an FAT filesystem OS (MS-DOS, OS/2, NT/Win32).
	OSFAT byte = iota

	// OSAmiga represents the Amiga OS.
	OSAmiga

	// OSVMS represents VMS (or OpenVMS).
	OSVMS

	// OSUnix represents Unix operating systems.
	OSUnix

	// OSVM represents VM/CMS.
	OSVM

	// OSAtari represents Atari TOS.
	OSAtari

	// OSHPFS represents HPFS filesystem (OS/2, NT).
	OSHPFS

	// OSMacintosh represents the Macintosh operating system.
	OSMacintosh

	// OSZSystem represents Z-System.
	OSZSystem

	// OSCPM represents the CP/M operating system.
	OSCPM

	// OSTOPS20 represents the TOPS-20 operating system.
	OSTOPS20

	// OSNTFS represents an NTFS filesystem OS (NT).
	OSNTFS

	// OSQDOS represents QDOS.
	OSQDOS

	// OSAcorn represents Acorn RISCOS.
	OSAcorn

	// OSUnknown represents an unknown operating system.
	OSUnknown = 0xff
)

const (
	// XFLSlowest indicates that the compressor used maximum compression.
	XFLSlowest byte = 0x2

	// XFLFastest indicates that the compressor used the fastest algorithm.
	XFLFastest byte = 0x4
)

func headerErr(err error) error {
	return fmt.Errorf("%w: %w", ErrHeader, err)
}
