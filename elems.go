// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"fmt"
	"strings"
)

// Elem is a raw path element: a component name, ".", "..", or the "/"
// sentinel that marks an absolute path. Elements are produced by
// ParseElems and consumed by the typed builders, which perform all
// validation.
type Elem string

// ParseElems splits a POSIX path string into elements. A leading "/"
// becomes a "/" sentinel element; empty components (as in "a//b" or a
// trailing slash) become ".".
func ParseElems(s string) ([]Elem, error) {
	if s == "" {
		return nil, ErrEmptyPath
	}
	if s == "/" {
		return []Elem{"/"}, nil
	}
	var elems []Elem
	rest := s
	if strings.HasPrefix(s, "/") {
		elems = append(elems, "/")
		rest = s[1:]
	}
	for _, piece := range strings.Split(rest, "/") {
		if piece == "" {
			piece = "."
		}
		elems = append(elems, Elem(piece))
	}
	return elems, nil
}

// relNodes builds the directory-object item list for elems, which must
// not contain the "/" sentinel.
func relNodes(elems []Elem) (*node, error) {
	var head *node
	for i := len(elems) - 1; i >= 0; i-- {
		var it item
		switch elems[i] {
		case "/":
			return nil, fmt.Errorf("%w: separator element at position %d", ErrAnchorMismatch, i)
		case ".":
			it = item{kind: itemDot}
		case "..":
			it = item{kind: itemDotdot}
		default:
			name, err := ParseName(string(elems[i]))
			if err != nil {
				return nil, err
			}
			it = item{kind: itemDir, name: name}
		}
		head = &node{it: it, next: head}
	}
	return head, nil
}

// fileTail validates the final element of a file path and splits it
// from the leading directory elements.
func fileTail(elems []Elem) (dirs []Elem, tail Name, err error) {
	last := elems[len(elems)-1]
	switch last {
	case "/", ".", "..":
		return nil, Name{}, fmt.Errorf("%w: %q cannot name a file", ErrObjectMismatch, string(last))
	}
	name, err := ParseName(string(last))
	if err != nil {
		return nil, Name{}, err
	}
	return elems[:len(elems)-1], name, nil
}

// RelDirFromElems builds a relative directory path.
func RelDirFromElems(elems []Elem) (RelDir, error) {
	if len(elems) == 0 {
		return RelDir{}, ErrEmptyPath
	}
	if elems[0] == "/" {
		return RelDir{}, fmt.Errorf("%w: relative path begins with separator", ErrAnchorMismatch)
	}
	n, err := relNodes(elems)
	if err != nil {
		return RelDir{}, err
	}
	return RelDir{n: n}, nil
}

// AbsDirFromElems builds an absolute directory path.
func AbsDirFromElems(elems []Elem) (AbsDir, error) {
	if len(elems) == 0 {
		return AbsDir{}, ErrEmptyPath
	}
	if elems[0] != "/" {
		return AbsDir{}, fmt.Errorf("%w: absolute path must begin with separator", ErrAnchorMismatch)
	}
	if len(elems) == 1 {
		return Root(), nil
	}
	n, err := relNodes(elems[1:])
	if err != nil {
		return AbsDir{}, err
	}
	return AbsDir{n: &node{it: item{kind: itemRoot}, next: n}}, nil
}

// RelFileFromElems builds a relative file path.
func RelFileFromElems(elems []Elem) (RelFile, error) {
	if len(elems) == 0 {
		return RelFile{}, ErrEmptyPath
	}
	if elems[0] == "/" {
		return RelFile{}, fmt.Errorf("%w: relative path begins with separator", ErrAnchorMismatch)
	}
	dirs, tail, err := fileTail(elems)
	if err != nil {
		return RelFile{}, err
	}
	n, err := relNodes(dirs)
	if err != nil {
		return RelFile{}, err
	}
	return RelFile{n: appendNodes(n, &node{it: item{kind: itemFile, name: tail}})}, nil
}

// AbsFileFromElems builds an absolute file path.
func AbsFileFromElems(elems []Elem) (AbsFile, error) {
	if len(elems) == 0 {
		return AbsFile{}, ErrEmptyPath
	}
	if elems[0] != "/" {
		return AbsFile{}, fmt.Errorf("%w: absolute path must begin with separator", ErrAnchorMismatch)
	}
	if len(elems) == 1 {
		return AbsFile{}, fmt.Errorf("%w: %q cannot name a file", ErrObjectMismatch, "/")
	}
	dirs, tail, err := fileTail(elems[1:])
	if err != nil {
		return AbsFile{}, err
	}
	n, err := relNodes(dirs)
	if err != nil {
		return AbsFile{}, err
	}
	file := appendNodes(n, &node{it: item{kind: itemFile, name: tail}})
	return AbsFile{n: &node{it: item{kind: itemRoot}, next: file}}, nil
}

// ParseRelDir parses a relative directory path from POSIX syntax.
func ParseRelDir(s string) (RelDir, error) {
	elems, err := ParseElems(s)
	if err != nil {
		return RelDir{}, err
	}
	return RelDirFromElems(elems)
}

// ParseAbsDir parses an absolute directory path from POSIX syntax.
func ParseAbsDir(s string) (AbsDir, error) {
	elems, err := ParseElems(s)
	if err != nil {
		return AbsDir{}, err
	}
	return AbsDirFromElems(elems)
}

// ParseRelFile parses a relative file path from POSIX syntax.
func ParseRelFile(s string) (RelFile, error) {
	elems, err := ParseElems(s)
	if err != nil {
		return RelFile{}, err
	}
	return RelFileFromElems(elems)
}

// ParseAbsFile parses an absolute file path from POSIX syntax.
func ParseAbsFile(s string) (AbsFile, error) {
	elems, err := ParseElems(s)
	if err != nil {
		return AbsFile{}, err
	}
	return AbsFileFromElems(elems)
}
