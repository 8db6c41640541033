// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"fmt"

	"github.com/typedpath/typedpath/internal/sexp"
)

// The serialized form of a path mirrors the term structure: a single
// item prints as (Item <item>), a longer path as (Cons <item> <tail>).
// Items print as Root, Dot, Dotdot, (Dir name), (File name),
// (Link name <target>) and (Broken_link name (parts...)). Link targets
// are full serialized paths; their anchor is recovered from whether
// they start at Root.

func itemSexp(it item) sexp.Value {
	switch it.kind {
	case itemRoot:
		return sexp.Atom("Root")
	case itemDot:
		return sexp.Atom("Dot")
	case itemDotdot:
		return sexp.Atom("Dotdot")
	case itemDir:
		return sexp.List{sexp.Atom("Dir"), sexp.Atom(it.name.s)}
	case itemFile:
		return sexp.List{sexp.Atom("File"), sexp.Atom(it.name.s)}
	case itemLink:
		return sexp.List{sexp.Atom("Link"), sexp.Atom(it.name.s), nodeSexp(it.target.n)}
	default: // itemBroken
		parts := make(sexp.List, len(it.raw))
		for i, p := range it.raw {
			parts[i] = sexp.Atom(p)
		}
		return sexp.List{sexp.Atom("Broken_link"), sexp.Atom(it.name.s), parts}
	}
}

func nodeSexp(n *node) sexp.Value {
	if n.next == nil {
		return sexp.List{sexp.Atom("Item"), itemSexp(n.it)}
	}
	return sexp.List{sexp.Atom("Cons"), itemSexp(n.it), nodeSexp(n.next)}
}

// Sexp implements Path.
func (p AbsDir) Sexp() string { return nodeSexp(p.n).String() }

// Sexp implements Path.
func (p RelDir) Sexp() string { return nodeSexp(p.n).String() }

// Sexp implements Path.
func (p AbsFile) Sexp() string { return nodeSexp(p.n).String() }

// Sexp implements Path.
func (p RelFile) Sexp() string { return nodeSexp(p.n).String() }

// ErrSexp is wrapped by serialized-form decoding failures in the shape
// of the term. Syntax errors wrap sexp.ErrSyntax, invalid names
// ErrInvalidName, and a well-formed path of the wrong kind
// ErrAnchorMismatch or ErrObjectMismatch.
var ErrSexp = fmt.Errorf("malformed path serialization")

func sexpAtom(v sexp.Value) (string, error) {
	a, ok := v.(sexp.Atom)
	if !ok {
		return "", fmt.Errorf("%w: expected atom, got %s", ErrSexp, v)
	}
	return string(a), nil
}

func sexpName(v sexp.Value) (Name, error) {
	s, err := sexpAtom(v)
	if err != nil {
		return Name{}, err
	}
	return ParseName(s)
}

func itemFromSexp(v sexp.Value) (item, error) {
	switch t := v.(type) {
	case sexp.Atom:
		switch t {
		case "Root":
			return item{kind: itemRoot}, nil
		case "Dot":
			return item{kind: itemDot}, nil
		case "Dotdot":
			return item{kind: itemDotdot}, nil
		}
		return item{}, fmt.Errorf("%w: unknown item %q", ErrSexp, string(t))
	case sexp.List:
		if len(t) < 2 {
			return item{}, fmt.Errorf("%w: short item list %s", ErrSexp, t)
		}
		tag, err := sexpAtom(t[0])
		if err != nil {
			return item{}, err
		}
		switch tag {
		case "Dir", "File":
			if len(t) != 2 {
				return item{}, fmt.Errorf("%w: %s item arity", ErrSexp, tag)
			}
			name, err := sexpName(t[1])
			if err != nil {
				return item{}, err
			}
			kind := itemDir
			if tag == "File" {
				kind = itemFile
			}
			return item{kind: kind, name: name}, nil
		case "Link":
			if len(t) != 3 {
				return item{}, fmt.Errorf("%w: Link item arity", ErrSexp)
			}
			name, err := sexpName(t[1])
			if err != nil {
				return item{}, err
			}
			n, abs, err := nodeFromSexp(t[2])
			if err != nil {
				return item{}, err
			}
			return item{kind: itemLink, name: name, target: linkTarget{abs: abs, n: n}}, nil
		case "Broken_link":
			if len(t) != 3 {
				return item{}, fmt.Errorf("%w: Broken_link item arity", ErrSexp)
			}
			name, err := sexpName(t[1])
			if err != nil {
				return item{}, err
			}
			list, ok := t[2].(sexp.List)
			if !ok {
				return item{}, fmt.Errorf("%w: Broken_link target must be a list", ErrSexp)
			}
			raw := make([]string, len(list))
			for i, part := range list {
				if raw[i], err = sexpAtom(part); err != nil {
					return item{}, err
				}
			}
			return item{kind: itemBroken, name: name, raw: raw}, nil
		}
		return item{}, fmt.Errorf("%w: unknown item tag %q", ErrSexp, tag)
	}
	return item{}, fmt.Errorf("%w: %s", ErrSexp, v)
}

// nodeFromSexp decodes a serialized path term. The anchor is recovered
// from the head item.
func nodeFromSexp(v sexp.Value) (*node, bool, error) {
	list, ok := v.(sexp.List)
	if !ok || len(list) == 0 {
		return nil, false, fmt.Errorf("%w: expected (Item ...) or (Cons ...)", ErrSexp)
	}
	tag, err := sexpAtom(list[0])
	if err != nil {
		return nil, false, err
	}
	switch tag {
	case "Item":
		if len(list) != 2 {
			return nil, false, fmt.Errorf("%w: Item arity", ErrSexp)
		}
		it, err := itemFromSexp(list[1])
		if err != nil {
			return nil, false, err
		}
		return &node{it: it}, it.kind == itemRoot, nil
	case "Cons":
		if len(list) != 3 {
			return nil, false, fmt.Errorf("%w: Cons arity", ErrSexp)
		}
		it, err := itemFromSexp(list[1])
		if err != nil {
			return nil, false, err
		}
		rest, restAbs, err := nodeFromSexp(list[2])
		if err != nil {
			return nil, false, err
		}
		if restAbs {
			return nil, false, fmt.Errorf("%w: Root below the head of a path", ErrSexp)
		}
		return &node{it: it, next: rest}, it.kind == itemRoot, nil
	}
	return nil, false, fmt.Errorf("%w: unknown path tag %q", ErrSexp, tag)
}

// nodeObject computes the object attribute from the tail item. Only
// finite terms reach this; the public constructors cannot build cyclic
// ones.
func nodeObject(n *node) Object {
	for n.next != nil {
		n = n.next
	}
	switch n.it.kind {
	case itemFile, itemBroken:
		return FileObject
	case itemLink:
		return nodeObject(n.it.target.n)
	default:
		return DirObject
	}
}

// validateNode checks the structural invariants: Root only as the head
// of an absolute path, directory objects everywhere but the tail.
func validateNode(n *node, abs bool) error {
	if abs != (n.it.kind == itemRoot) {
		return fmt.Errorf("%w: anchor does not match head item", ErrSexp)
	}
	for cur := n; cur != nil; cur = cur.next {
		if cur != n && cur.it.kind == itemRoot {
			return fmt.Errorf("%w: Root below the head of a path", ErrSexp)
		}
		if cur.it.kind == itemLink {
			if err := validateNode(cur.it.target.n, cur.it.target.abs); err != nil {
				return err
			}
		}
		if cur.next == nil {
			continue
		}
		switch cur.it.kind {
		case itemFile, itemBroken:
			return fmt.Errorf("%w: file item before the tail", ErrSexp)
		case itemLink:
			if nodeObject(cur.it.target.n) != DirObject {
				return fmt.Errorf("%w: file link before the tail", ErrSexp)
			}
		}
	}
	return nil
}

func pathFromSexp(s string, wantAbs bool, wantObj Object) (*node, error) {
	v, err := sexp.Parse(s)
	if err != nil {
		return nil, err
	}
	n, abs, err := nodeFromSexp(v)
	if err != nil {
		return nil, err
	}
	if err := validateNode(n, abs); err != nil {
		return nil, err
	}
	if abs != wantAbs {
		return nil, fmt.Errorf("%w: serialized path has the wrong anchor", ErrAnchorMismatch)
	}
	if nodeObject(n) != wantObj {
		return nil, fmt.Errorf("%w: serialized path has the wrong object", ErrObjectMismatch)
	}
	return n, nil
}

// AbsDirFromSexp decodes the serialized form of an absolute directory
// path.
func AbsDirFromSexp(s string) (AbsDir, error) {
	n, err := pathFromSexp(s, true, DirObject)
	if err != nil {
		return AbsDir{}, err
	}
	return AbsDir{n: n}, nil
}

// RelDirFromSexp decodes the serialized form of a relative directory
// path.
func RelDirFromSexp(s string) (RelDir, error) {
	n, err := pathFromSexp(s, false, DirObject)
	if err != nil {
		return RelDir{}, err
	}
	return RelDir{n: n}, nil
}

// AbsFileFromSexp decodes the serialized form of an absolute file path.
func AbsFileFromSexp(s string) (AbsFile, error) {
	n, err := pathFromSexp(s, true, FileObject)
	if err != nil {
		return AbsFile{}, err
	}
	return AbsFile{n: n}, nil
}

// RelFileFromSexp decodes the serialized form of a relative file path.
func RelFileFromSexp(s string) (RelFile, error) {
	n, err := pathFromSexp(s, false, FileObject)
	if err != nil {
		return RelFile{}, err
	}
	return RelFile{n: n}, nil
}
