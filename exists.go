// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package typedpath

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Exists reports whether p exists on the filesystem, walking the term
// one item at a time.
//
// Every probe uses lstat semantics: an item the term declares as a
// plain directory or file is never satisfied by a symlink, and an item
// the term declares as a symlink must actually be one. Link items
// additionally require their declared target to exist; BrokenLink
// items require it not to.
//
// I/O errors the OS refuses to classify (permission denied and the
// like) surface as Unknown rather than an error. Symlink cycles, either
// on disk or embedded in the term itself, short-circuit through a
// cursor set instead of looping.
func Exists(ctx context.Context, p AbsPath) Tri {
	return existsNode(ctx, p.rep(), newCursorSet())
}

func existsNode(ctx context.Context, n *node, cur *cursorSet) Tri {
	// The head of an absolute term is always Root.
	st, t := probeLstat("/")
	if t == Yes && !isDirMode(st) {
		t = No
	}
	return t.andThen(func() Tri {
		if n.next == nil {
			return Yes
		}
		return existsRel(ctx, "/", n.next, cur)
	})
}

// existsRel answers for the relative remainder rel anchored at the
// known-good absolute directory dir.
func existsRel(ctx context.Context, dir string, rel *node, cur *cursorSet) Tri {
	if ctx.Err() != nil {
		return Unknown
	}
	if !cur.visit(dir, rel) {
		// This exact step is already being proven by an enclosing
		// call; continuing would loop.
		return Yes
	}

	it, rest := rel.it, rel.next
	descend := func(nextDir string) Tri {
		if rest == nil {
			return Yes
		}
		return existsRel(ctx, nextDir, rest, cur)
	}

	switch it.kind {
	case itemDot:
		return descend(dir)
	case itemDotdot:
		return descend(parentDir(dir))

	case itemDir:
		full := filepath.Join(dir, it.name.s)
		return probeEntry(full, isDirMode).andThen(func() Tri {
			return descend(full)
		})

	case itemFile:
		full := filepath.Join(dir, it.name.s)
		return probeEntry(full, func(st statT) bool {
			return !isDirMode(st) && !isSymlinkMode(st)
		})

	case itemLink:
		full := filepath.Join(dir, it.name.s)
		return probeEntry(full, isSymlinkMode).andThen(func() Tri {
			// The declared target must itself exist. The rest of the
			// walk rides along behind the target: a relative target
			// continues from dir, an absolute one restarts at Root.
			cont := it.target.n
			if rest != nil {
				cont = appendNodes(cont, rest)
			}
			if it.target.abs {
				return existsNode(ctx, cont, cur)
			}
			return existsRel(ctx, dir, cont, cur)
		})

	default: // itemBroken
		full := filepath.Join(dir, it.name.s)
		return probeEntry(full, isSymlinkMode).andThen(func() Tri {
			tgt := brokenTargetString(it.raw)
			if !strings.HasPrefix(tgt, "/") {
				tgt = filepath.Join(dir, tgt)
			}
			// A broken link's target must not exist (following links).
			return probeStat(tgt).Negate()
		})
	}
}

// probeEntry checks that an entry exists at path (no symlink follow)
// and has the wanted type.
func probeEntry(path string, want func(statT) bool) Tri {
	st, t := probeLstat(path)
	if t != Yes {
		return t
	}
	if !want(st) {
		return No
	}
	return Yes
}

// brokenTargetString reassembles the raw textual components of a
// dangling symlink target.
func brokenTargetString(raw []string) string {
	if len(raw) > 0 && raw[0] == "/" {
		return "/" + strings.Join(raw[1:], "/")
	}
	return strings.Join(raw, "/")
}

// Lstat stats the object p names without following a final symlink.
func Lstat(ctx context.Context, p AbsPath) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fi, err := os.Lstat(p.String())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return fi, nil
}

// FindItem returns the first directory of dirs in which needle
// resolves to an existing object.
func FindItem(ctx context.Context, needle RelPath, dirs []AbsDir) (AbsDir, bool) {
	for _, d := range dirs {
		n := appendNodes(d.n, needle.rep())
		if existsNode(ctx, n, newCursorSet()) == Yes {
			return d, true
		}
	}
	return AbsDir{}, false
}
