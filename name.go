// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"fmt"
	"strings"
)

// Name is a single validated path component: a non-empty string that
// contains no separator and is not "." or "..".
//
// The zero Name is not valid; Names are only obtained from ParseName or
// MustName.
type Name struct {
	s string
}

// ParseName validates s as a path component.
func ParseName(s string) (Name, error) {
	switch {
	case s == "":
		return Name{}, fmt.Errorf("%w: empty component", ErrInvalidName)
	case s == "." || s == "..":
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	case strings.ContainsRune(s, '/'):
		return Name{}, fmt.Errorf("%w: %q contains a separator", ErrInvalidName, s)
	}
	return Name{s: s}, nil
}

// MustName is like ParseName but panics on invalid input. It is intended
// for constants and tests.
func MustName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the component text.
func (n Name) String() string { return n.s }
