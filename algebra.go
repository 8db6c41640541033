// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

// appendNodes concatenates two item lists. The left spine is rebuilt so
// that terms stay immutable; the right list is shared.
func appendNodes(p, q *node) *node {
	if p == nil {
		return q
	}
	return &node{it: p.it, next: appendNodes(p.next, q)}
}

// JoinDir appends a relative directory path, keeping p's anchor.
func (p AbsDir) JoinDir(q RelDir) AbsDir {
	return AbsDir{n: appendNodes(p.n, q.n)}
}

// JoinFile appends a relative file path, keeping p's anchor.
func (p AbsDir) JoinFile(q RelFile) AbsFile {
	return AbsFile{n: appendNodes(p.n, q.n)}
}

// JoinDir appends a relative directory path, keeping p's anchor.
func (p RelDir) JoinDir(q RelDir) RelDir {
	return RelDir{n: appendNodes(p.n, q.n)}
}

// JoinFile appends a relative file path, keeping p's anchor.
func (p RelDir) JoinFile(q RelFile) RelFile {
	return RelFile{n: appendNodes(p.n, q.n)}
}

// parentNode rewrites the tail of n to name the enclosing directory.
func parentNode(n *node) *node {
	if n.next != nil {
		return &node{it: n.it, next: parentNode(n.next)}
	}
	switch n.it.kind {
	case itemRoot:
		// The root is its own parent.
		return n
	case itemDot:
		return &node{it: item{kind: itemDotdot}}
	case itemDotdot:
		// Ascend one more level.
		return &node{it: item{kind: itemDotdot}, next: &node{it: item{kind: itemDotdot}}}
	default:
		return &node{it: item{kind: itemDot}}
	}
}

// Parent returns the directory containing p.
func (p AbsDir) Parent() AbsDir { return AbsDir{n: parentNode(p.n)} }

// Parent returns the directory containing p.
func (p RelDir) Parent() RelDir { return RelDir{n: parentNode(p.n)} }

// Parent returns the directory containing p.
func (p AbsFile) Parent() AbsDir { return AbsDir{n: parentNode(p.n)} }

// Parent returns the directory containing p.
func (p RelFile) Parent() RelDir { return RelDir{n: parentNode(p.n)} }

// normalizeNode collapses Dot items and Dir/Dotdot pairs. The rewrite
// is post-order: the tail is normalized first, then the head is
// combined with it.
func normalizeNode(n *node) *node {
	if n.next == nil {
		return n
	}
	t := normalizeNode(n.next)
	head := n.it
	switch {
	case t.next == nil && t.it.kind == itemDot:
		// A trailing "." adds nothing.
		return &node{it: head}
	case head.kind == itemDot:
		return t
	case head.kind == itemRoot && t.it.kind == itemDotdot:
		// ".." cannot ascend above the root.
		if t.next == nil {
			return &node{it: head}
		}
		return normalizeNode(&node{it: head, next: t.next})
	case head.kind == itemDotdot && t.it.kind == itemDotdot:
		// Leading ".." runs are kept.
		return &node{it: head, next: t}
	case (head.kind == itemDir || head.kind == itemLink) && t.it.kind == itemDotdot:
		// A named step followed by ".." cancels out. Links count as
		// named steps: normalization is lexical and never follows a
		// link target.
		if t.next == nil {
			return &node{it: item{kind: itemDot}}
		}
		return t.next
	default:
		return &node{it: head, next: t}
	}
}

// Normalize removes "." items and collapses name/".." pairs.
func (p AbsDir) Normalize() AbsDir { return AbsDir{n: normalizeNode(p.n)} }

// Normalize removes "." items and collapses name/".." pairs.
func (p RelDir) Normalize() RelDir { return RelDir{n: normalizeNode(p.n)} }

// Normalize removes "." items and collapses name/".." pairs.
func (p AbsFile) Normalize() AbsFile { return AbsFile{n: normalizeNode(p.n)} }

// Normalize removes "." items and collapses name/".." pairs.
func (p RelFile) Normalize() RelFile { return RelFile{n: normalizeNode(p.n)} }

// resolveNode inlines every Link item's target. An absolute target
// discards the prefix accumulated so far, the same way the kernel
// restarts at "/" for an absolute symlink.
func resolveNode(n *node, abs bool) (res *node, resAbs bool) {
	resAbs = abs
	for cur := n; cur != nil; cur = cur.next {
		it := cur.it
		if it.kind != itemLink {
			res = appendNodes(res, &node{it: it})
			continue
		}
		t, tAbs := resolveNode(it.target.n, it.target.abs)
		if tAbs {
			res, resAbs = t, true
		} else {
			res = appendNodes(res, t)
		}
	}
	return res, resAbs
}

// Resolve returns an equivalent path with every embedded symlink
// inlined. The result contains no Link items.
func (p AbsDir) Resolve() AbsDir {
	n, _ := resolveNode(p.n, true)
	return AbsDir{n: n}
}

// Resolve returns an equivalent path with every embedded symlink
// inlined. The result contains no Link items.
func (p AbsFile) Resolve() AbsFile {
	n, _ := resolveNode(p.n, true)
	return AbsFile{n: n}
}

// itemEqual compares two items structurally. Link items compare both
// name and target term.
func itemEqual(a, b item) bool {
	if a.kind != b.kind || a.name != b.name {
		return false
	}
	switch a.kind {
	case itemLink:
		return a.target.abs == b.target.abs && nodeEqual(a.target.n, b.target.n)
	case itemBroken:
		if len(a.raw) != len(b.raw) {
			return false
		}
		for i := range a.raw {
			if a.raw[i] != b.raw[i] {
				return false
			}
		}
	}
	return true
}

func nodeEqual(a, b *node) bool {
	for a != nil && b != nil {
		if !itemEqual(a.it, b.it) {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

// Equal reports whether p and q name the same path once normalized.
func (p AbsDir) Equal(q AbsDir) bool { return nodeEqual(normalizeNode(p.n), normalizeNode(q.n)) }

// Equal reports whether p and q name the same path once normalized.
func (p RelDir) Equal(q RelDir) bool { return nodeEqual(normalizeNode(p.n), normalizeNode(q.n)) }

// Equal reports whether p and q name the same path once normalized.
func (p AbsFile) Equal(q AbsFile) bool { return nodeEqual(normalizeNode(p.n), normalizeNode(q.n)) }

// Equal reports whether p and q name the same path once normalized.
func (p RelFile) Equal(q RelFile) bool { return nodeEqual(normalizeNode(p.n), normalizeNode(q.n)) }

// EqualPath compares two paths of erased kind. Paths of different kinds
// are never equal.
func EqualPath(p, q Path) bool {
	if p.Kind() != q.Kind() {
		return false
	}
	return nodeEqual(normalizeNode(p.rep()), normalizeNode(q.rep()))
}
