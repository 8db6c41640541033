// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typedpath implements a statically-kinded path algebra and a
// small set of cycle-safe filesystem operations on top of it.
//
// A path carries two attributes in its Go type: its anchor (absolute vs
// relative) and its object (directory vs file). The four concrete path
// types AbsDir, RelDir, AbsFile and RelFile all wrap the same immutable
// term representation, so an operation such as Parent or Normalize only
// has to be written once, while the compiler still rejects nonsense
// like joining two absolute paths or asking for the children of a file.
//
// Paths may embed symlinks as first-class Link items that carry their
// full target path. The filesystem layer (Exists, MkdirAll, Fold,
// FoldFollowLinks) interprets such terms against a real filesystem
// while guarding against the cycles that symlinks introduce.
package typedpath

import "strings"

// Anchor distinguishes absolute from relative paths.
type Anchor uint8

const (
	// Abs marks a path that starts at the filesystem root.
	Abs Anchor = iota
	// Rel marks a path interpreted against some base directory.
	Rel
)

func (a Anchor) String() string {
	if a == Abs {
		return "abs"
	}
	return "rel"
}

// Object distinguishes a path ending in a directory from one ending in
// a file.
type Object uint8

const (
	// DirObject marks a path whose final item names a directory.
	DirObject Object = iota
	// FileObject marks a path whose final item names a file.
	FileObject
)

func (o Object) String() string {
	if o == DirObject {
		return "dir"
	}
	return "file"
}

// Kind is the runtime form of the two static attributes, for code that
// has erased them behind the Path interface.
type Kind struct {
	Anchor Anchor
	Object Object
}

// itemKind discriminates the item variants.
type itemKind uint8

const (
	itemRoot itemKind = iota
	itemDir
	itemFile
	itemLink
	itemDot
	itemDotdot
	itemBroken
)

// linkTarget is the destination a Link item points at: a full path term
// of either anchor whose object matches the link's object.
type linkTarget struct {
	abs bool
	n   *node
}

// item is one step of a path.
type item struct {
	kind   itemKind
	name   Name       // itemDir, itemFile, itemLink, itemBroken
	target linkTarget // itemLink
	raw    []string   // itemBroken: textual target components
}

// node is a non-empty cons list of items. Every item but the tail names
// a directory; Root appears only at the head.
type node struct {
	it   item
	next *node
}

// component returns the printed form of one item. Links print as their
// name; their target only shows up in the serialized form.
func (it item) component() string {
	switch it.kind {
	case itemRoot:
		return "/"
	case itemDot:
		return "."
	case itemDotdot:
		return ".."
	default:
		return it.name.s
	}
}

func nodeComponents(n *node) []string {
	var out []string
	for cur := n; cur != nil; cur = cur.next {
		out = append(out, cur.it.component())
	}
	return out
}

func nodeString(n *node) string {
	if n.it.kind == itemRoot {
		if n.next == nil {
			return "/"
		}
		return "/" + strings.Join(nodeComponents(n.next), "/")
	}
	return strings.Join(nodeComponents(n), "/")
}

func nodeHasLink(n *node) bool {
	for cur := n; cur != nil; cur = cur.next {
		if cur.it.kind == itemLink {
			return true
		}
	}
	return false
}

// nodeIsNormalized reports whether n contains no Dot (except as the
// sole item) and no Dotdot after anything other than Root or another
// Dotdot.
func nodeIsNormalized(n *node) bool {
	if n.next == nil {
		return true
	}
	for cur := n; cur != nil; cur = cur.next {
		if cur.it.kind == itemDot {
			return false
		}
		if next := cur.next; next != nil && next.it.kind == itemDotdot {
			if cur.it.kind != itemRoot && cur.it.kind != itemDotdot {
				return false
			}
		}
	}
	// A leading Dotdot run is fine; Dot anywhere in a multi-item path
	// is not, which the loop above already rejected.
	return true
}

// Path is the common surface of the four concrete path types. It is
// sealed: only AbsDir, RelDir, AbsFile and RelFile implement it.
type Path interface {
	// String prints the path in POSIX syntax.
	String() string
	// Components returns the printed components, with a leading "/"
	// sentinel for absolute paths.
	Components() []string
	// Kind reports the anchor and object attributes at runtime.
	Kind() Kind
	// HasLink reports whether any item of the path is a Link item.
	// BrokenLink items are not counted.
	HasLink() bool
	// IsNormalized reports whether the path has no "." item (unless it
	// is the only item) and no ".." after anything but the root or
	// another "..". A ".." right after the root passes, although
	// Normalize removes it.
	IsNormalized() bool
	// Sexp returns the canonical serialized form of the path.
	Sexp() string

	rep() *node
}

// DirPath is a Path whose object is a directory: AbsDir or RelDir.
type DirPath interface {
	Path
	dirPath()
}

// FilePath is a Path whose object is a file: AbsFile or RelFile.
type FilePath interface {
	Path
	filePath()
}

// AbsPath is a Path anchored at the root: AbsDir or AbsFile.
type AbsPath interface {
	Path
	absPath()
}

// RelPath is a Path relative to some base directory: RelDir or RelFile.
type RelPath interface {
	Path
	relPath()
}

// AbsDir is an absolute path naming a directory.
//
// The zero AbsDir is not a valid path; values are obtained from Root,
// ParseAbsDir, AbsDirFromElems, AbsDirFromSexp or by composition.
type AbsDir struct {
	n *node
}

// RelDir is a relative path naming a directory.
type RelDir struct {
	n *node
}

// AbsFile is an absolute path naming a file.
type AbsFile struct {
	n *node
}

// RelFile is a relative path naming a file.
type RelFile struct {
	n *node
}

func (p AbsDir) rep() *node  { return p.n }
func (p RelDir) rep() *node  { return p.n }
func (p AbsFile) rep() *node { return p.n }
func (p RelFile) rep() *node { return p.n }

func (AbsDir) dirPath()   {}
func (RelDir) dirPath()   {}
func (AbsFile) filePath() {}
func (RelFile) filePath() {}
func (AbsDir) absPath()   {}
func (AbsFile) absPath()  {}
func (RelDir) relPath()   {}
func (RelFile) relPath()  {}

// Kind implements Path.
func (p AbsDir) Kind() Kind { return Kind{Anchor: Abs, Object: DirObject} }

// Kind implements Path.
func (p RelDir) Kind() Kind { return Kind{Anchor: Rel, Object: DirObject} }

// Kind implements Path.
func (p AbsFile) Kind() Kind { return Kind{Anchor: Abs, Object: FileObject} }

// Kind implements Path.
func (p RelFile) Kind() Kind { return Kind{Anchor: Rel, Object: FileObject} }

func (p AbsDir) String() string  { return nodeString(p.n) }
func (p RelDir) String() string  { return nodeString(p.n) }
func (p AbsFile) String() string { return nodeString(p.n) }
func (p RelFile) String() string { return nodeString(p.n) }

func (p AbsDir) Components() []string  { return nodeComponents(p.n) }
func (p RelDir) Components() []string  { return nodeComponents(p.n) }
func (p AbsFile) Components() []string { return nodeComponents(p.n) }
func (p RelFile) Components() []string { return nodeComponents(p.n) }

func (p AbsDir) HasLink() bool  { return nodeHasLink(p.n) }
func (p RelDir) HasLink() bool  { return nodeHasLink(p.n) }
func (p AbsFile) HasLink() bool { return nodeHasLink(p.n) }
func (p RelFile) HasLink() bool { return nodeHasLink(p.n) }

func (p AbsDir) IsNormalized() bool  { return nodeIsNormalized(p.n) }
func (p RelDir) IsNormalized() bool  { return nodeIsNormalized(p.n) }
func (p AbsFile) IsNormalized() bool { return nodeIsNormalized(p.n) }
func (p RelFile) IsNormalized() bool { return nodeIsNormalized(p.n) }

// Root returns the path "/".
func Root() AbsDir {
	return AbsDir{n: &node{it: item{kind: itemRoot}}}
}

// Dot returns the path ".".
func Dot() RelDir {
	return RelDir{n: &node{it: item{kind: itemDot}}}
}

// Dotdot returns the path "..".
func Dotdot() RelDir {
	return RelDir{n: &node{it: item{kind: itemDotdot}}}
}

// DirOf returns the single-component directory path name.
func DirOf(name Name) RelDir {
	return RelDir{n: &node{it: item{kind: itemDir, name: name}}}
}

// FileOf returns the single-component file path name.
func FileOf(name Name) RelFile {
	return RelFile{n: &node{it: item{kind: itemFile, name: name}}}
}

// DirLink returns a path consisting of a single symlink item that
// points at the given directory.
func DirLink(name Name, target DirPath) RelDir {
	_, abs := target.(AbsDir)
	return RelDir{n: &node{it: item{
		kind:   itemLink,
		name:   name,
		target: linkTarget{abs: abs, n: target.rep()},
	}}}
}

// FileLink returns a path consisting of a single symlink item that
// points at the given file.
func FileLink(name Name, target FilePath) RelFile {
	_, abs := target.(AbsFile)
	return RelFile{n: &node{it: item{
		kind:   itemLink,
		name:   name,
		target: linkTarget{abs: abs, n: target.rep()},
	}}}
}

// Broken returns a path consisting of a single dangling-symlink item.
// parts holds the raw textual components of the on-disk target.
func Broken(name Name, parts []string) RelFile {
	raw := make([]string, len(parts))
	copy(raw, parts)
	return RelFile{n: &node{it: item{kind: itemBroken, name: name, raw: raw}}}
}
