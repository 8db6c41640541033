// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"strconv"
	"strings"
)

// cursorSet remembers (resolved prefix, remaining term) pairs a
// recursive walk has already entered. A hit means continuing would
// retrace a step that is already being proven, so the walker treats it
// as settled.
//
// Keys are a canonical serialization of the pair. Unlike Sexp, the key
// writer tolerates terms whose Link targets refer back into the term
// itself: a revisited target serializes as a back-reference marker, so
// keying stays total even on such terms.
type cursorSet struct {
	seen map[string]struct{}
}

func newCursorSet() *cursorSet {
	return &cursorSet{seen: make(map[string]struct{})}
}

// visit records the pair and reports whether it was seen for the first
// time.
func (c *cursorSet) visit(prefix string, rel *node) (first bool) {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(0)
	writeNodeKey(&b, rel, make(map[*node]int))
	key := b.String()
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	return true
}

func writeItemKey(b *strings.Builder, it item, visiting map[*node]int) {
	b.WriteByte(byte('0' + it.kind))
	switch it.kind {
	case itemDir, itemFile, itemLink, itemBroken:
		b.WriteString(strconv.Itoa(len(it.name.s)))
		b.WriteByte(':')
		b.WriteString(it.name.s)
	}
	switch it.kind {
	case itemLink:
		if it.target.abs {
			b.WriteByte('/')
		}
		if id, ok := visiting[it.target.n]; ok {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(id))
			return
		}
		visiting[it.target.n] = len(visiting)
		b.WriteByte('(')
		writeNodeKey(b, it.target.n, visiting)
		b.WriteByte(')')
		delete(visiting, it.target.n)
	case itemBroken:
		for _, p := range it.raw {
			b.WriteString(strconv.Itoa(len(p)))
			b.WriteByte(':')
			b.WriteString(p)
		}
	}
}

func writeNodeKey(b *strings.Builder, n *node, visiting map[*node]int) {
	for cur := n; cur != nil; cur = cur.next {
		writeItemKey(b, cur.it, visiting)
	}
}

// pathSet is a set of path terms of any anchor and object, keyed by
// structural equality.
type pathSet struct {
	seen map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func pathSetKey(p Path) string {
	// The serialized form encodes both attributes: the anchor through
	// the head item and the object through the tail, so terms of
	// different kinds never collide.
	return p.Sexp()
}

func (s *pathSet) contains(p Path) bool {
	_, ok := s.seen[pathSetKey(p)]
	return ok
}

func (s *pathSet) add(p Path) {
	s.seen[pathSetKey(p)] = struct{}{}
}
