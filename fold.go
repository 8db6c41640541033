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
	"golang.org/x/sys/unix"
)

// Event is one object discovered by a directory walk. Paths are
// relative to the walk's start directory; the start itself is reported
// as a DirEvent with path ".".
type Event interface {
	event()
}

// DirEvent reports a directory, possibly through a symlink whose
// target is a directory (the path's tail is then a Link item).
type DirEvent struct {
	Path RelDir
}

// FileEvent reports a non-directory object: regular files, devices,
// FIFOs, sockets, and symlinks whose target is one of those.
type FileEvent struct {
	Path RelFile
}

// BrokenLinkEvent reports a symlink whose target does not resolve.
type BrokenLinkEvent struct {
	Path RelFile
}

func (DirEvent) event()        {}
func (FileEvent) event()       {}
func (BrokenLinkEvent) event() {}

// FoldFunc folds one discovered object into the accumulator. Returning
// an error aborts the walk.
type FoldFunc[A any] func(acc A, root AbsDir, ev Event) (A, error)

// Fold walks the tree under start in prefix order, reifying each
// on-disk symlink into a typed Link or BrokenLink item. Symlinks are
// reported but never followed: a symlink to a directory produces a
// DirEvent whose children are not visited. Use FoldFollowLinks for the
// following variant.
func Fold[A any](ctx context.Context, start AbsDir, init A, f FoldFunc[A]) (A, error) {
	acc := init
	rootStr := start.String()
	if _, err := statPath(rootStr); err != nil {
		if IsNotExist(err) {
			return acc, errors.Wrapf(ErrNotFound, "fold %q", rootStr)
		}
		return acc, errors.WithStack(err)
	}
	acc, err := f(acc, start, DirEvent{Path: Dot()})
	if err != nil {
		return acc, err
	}
	return foldDir(ctx, start, rootStr, nil, acc, f)
}

func foldDir[A any](ctx context.Context, start AbsDir, dirStr string, rel *node, acc A, f FoldFunc[A]) (A, error) {
	entries, err := os.ReadDir(dirStr)
	if err != nil {
		return acc, errors.WithStack(err)
	}
	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return acc, err
		}
		name, err := ParseName(ent.Name())
		if err != nil {
			// readdir handed back something our model cannot name.
			return acc, errors.Wrapf(err, "entry in %q", dirStr)
		}
		fi, err := ent.Info()
		if err != nil {
			// The entry may have vanished between readdir and lstat.
			return acc, errors.WithStack(err)
		}
		e, err := reifyEntry(dirStr, name, fi)
		if err != nil {
			return acc, err
		}
		childRel := extendRel(rel, e.it)
		switch {
		case e.broken:
			acc, err = f(acc, start, BrokenLinkEvent{Path: RelFile{n: childRel}})
		case e.isDir:
			acc, err = f(acc, start, DirEvent{Path: RelDir{n: childRel}})
			if err == nil && e.plainDir {
				acc, err = foldDir(ctx, start, filepath.Join(dirStr, name.s), childRel, acc, f)
			}
		default:
			acc, err = f(acc, start, FileEvent{Path: RelFile{n: childRel}})
		}
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// reified is an on-disk directory entry converted to a typed item.
type reified struct {
	it       item
	isDir    bool // the item's object is a directory
	plainDir bool // the item is a plain Dir, walkable without a link
	broken   bool
}

// reifyEntry converts a raw directory entry into a typed item. fi must
// be the lstat result for the entry. Symlinks are read and then
// stat'ed: a resolvable target yields a Link item of the target's
// object type, an unresolvable one a BrokenLink item.
func reifyEntry(dirStr string, name Name, fi os.FileInfo) (reified, error) {
	mode := fi.Mode()
	switch {
	case mode.IsDir():
		return reified{it: item{kind: itemDir, name: name}, isDir: true, plainDir: true}, nil
	case mode&os.ModeSymlink == 0:
		// Regular files, devices, FIFOs and sockets all count as
		// files.
		return reified{it: item{kind: itemFile, name: name}}, nil
	}

	full := filepath.Join(dirStr, name.s)
	targetStr, err := readlinkPath(full)
	if err != nil {
		return reified{}, errors.WithStack(err)
	}
	st, serr := statPath(full)
	switch {
	case serr == nil && isDirMode(st):
		target, err := parseDirTarget(targetStr)
		if err != nil {
			return reified{}, errors.Wrapf(err, "symlink %q target %q", full, targetStr)
		}
		return reified{it: item{kind: itemLink, name: name, target: target}, isDir: true}, nil
	case serr == nil:
		target, err := parseFileTarget(targetStr)
		if err != nil {
			return reified{}, errors.Wrapf(err, "symlink %q target %q", full, targetStr)
		}
		return reified{it: item{kind: itemLink, name: name, target: target}}, nil
	case IsNotExist(serr) || errors.Is(serr, unix.ELOOP):
		return reified{it: item{kind: itemBroken, name: name, raw: brokenParts(targetStr)}, broken: true}, nil
	default:
		return reified{}, errors.WithStack(serr)
	}
}

// extendRel appends one item to a relative prefix. A nil prefix stands
// for the walk root itself.
func extendRel(rel *node, it item) *node {
	if rel == nil {
		return &node{it: it}
	}
	return appendNodes(rel, &node{it: it})
}

func parseDirTarget(s string) (linkTarget, error) {
	if strings.HasPrefix(s, "/") {
		p, err := ParseAbsDir(s)
		if err != nil {
			return linkTarget{}, err
		}
		return linkTarget{abs: true, n: p.n}, nil
	}
	p, err := ParseRelDir(s)
	if err != nil {
		return linkTarget{}, err
	}
	return linkTarget{n: p.n}, nil
}

func parseFileTarget(s string) (linkTarget, error) {
	if strings.HasPrefix(s, "/") {
		p, err := ParseAbsFile(s)
		if err != nil {
			return linkTarget{}, err
		}
		return linkTarget{abs: true, n: p.n}, nil
	}
	p, err := ParseRelFile(s)
	if err != nil {
		return linkTarget{}, err
	}
	return linkTarget{n: p.n}, nil
}

// brokenParts splits the raw text of a dangling symlink target into
// components, keeping a "/" sentinel for absolute targets.
func brokenParts(s string) []string {
	abs := strings.HasPrefix(s, "/")
	var parts []string
	if abs {
		parts = append(parts, "/")
	}
	for _, piece := range strings.Split(s, "/") {
		if piece != "" {
			parts = append(parts, piece)
		}
	}
	return parts
}
