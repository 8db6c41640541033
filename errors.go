// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"errors"
	"os"
	"syscall"
)

var (
	// ErrInvalidName is returned when a path component is empty,
	// contains a separator, or is "." or "..".
	ErrInvalidName = errors.New("invalid path component")

	// ErrEmptyPath is returned when a path is parsed from an empty
	// string or built from an empty element list.
	ErrEmptyPath = errors.New("empty path")

	// ErrAnchorMismatch is returned when a builder is asked for an
	// absolute path from relative elements or vice versa, or when a
	// "/" sentinel appears anywhere but first.
	ErrAnchorMismatch = errors.New("path anchor mismatch")

	// ErrObjectMismatch is returned when a file path is requested but
	// the final element cannot name a file.
	ErrObjectMismatch = errors.New("path object mismatch")

	// ErrNotFound is returned by Fold and FoldFollowLinks when the
	// start directory does not currently exist.
	ErrNotFound = errors.New("start path does not exist")
)

// IsNotExist tells you if err is an error that implies that either the
// path accessed does not exist or path components don't exist. This is
// effectively a more broad version of [os.IsNotExist].
func IsNotExist(err error) bool {
	// Check for ENOTDIR as well, which in some cases is a more
	// convoluted case of ENOENT (usually involving weird paths).
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ENOENT)
}

// triOf classifies a probe error into a three-valued answer.
func triOf(err error) Tri {
	switch {
	case err == nil:
		return Yes
	case IsNotExist(err):
		return No
	default:
		return Unknown
	}
}
