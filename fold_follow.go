// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package typedpath

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FollowEvent is an Event enriched with where the object really lives.
type FollowEvent struct {
	// Event is the underlying discovery, with its logical path
	// relative to the walk root.
	Event Event
	// Resolved is the object's canonical absolute path, with every
	// symlink expanded (for a broken link: its parent's canonical path
	// with the link's own name attached).
	Resolved Path
	// AlreadySeen reports whether Resolved had been reached earlier in
	// this walk under another logical path.
	AlreadySeen bool
}

// FollowFunc folds one discovered object into the accumulator.
type FollowFunc[A any] func(acc A, root AbsDir, ev FollowEvent) (A, error)

// FoldFollowLinks walks the tree under start like Fold but follows
// symlinks to directories. Every emitted object carries its resolved
// real path; a directory whose real path was already seen is reported
// with AlreadySeen set and its children are not walked again, which is
// what bounds the walk in the presence of symlink cycles.
func FoldFollowLinks[A any](ctx context.Context, start AbsDir, init A, f FollowFunc[A]) (A, error) {
	acc := init
	rootStr := start.String()
	if _, err := statPath(rootStr); err != nil {
		if IsNotExist(err) {
			return acc, errors.Wrapf(ErrNotFound, "fold %q", rootStr)
		}
		return acc, errors.WithStack(err)
	}

	w := &followState[A]{
		start:    start,
		f:        f,
		visited:  newPathSet(),
		resolved: newPathSet(),
	}
	real, err := realPath(rootStr)
	if err != nil {
		return acc, errors.WithStack(err)
	}
	realDir, err := ParseAbsDir(real)
	if err != nil {
		return acc, errors.WithStack(err)
	}
	acc, descend, err := w.emit(acc, DirEvent{Path: Dot()}, Dot(), realDir)
	if err != nil || !descend {
		return acc, err
	}
	return w.walk(ctx, acc, rootStr, nil)
}

type followState[A any] struct {
	start AbsDir
	f     FollowFunc[A]
	// visited holds the logical paths already emitted, resolved the
	// real paths already reached.
	visited  *pathSet
	resolved *pathSet
}

// emit reports one object and records it in both sets. descend is true
// when the object is worth walking into: it had not been emitted and
// its real path was new.
func (w *followState[A]) emit(acc A, ev Event, logical, resolved Path) (_ A, descend bool, _ error) {
	if w.visited.contains(logical) {
		return acc, false, nil
	}
	seen := w.resolved.contains(resolved)
	acc, err := w.f(acc, w.start, FollowEvent{Event: ev, Resolved: resolved, AlreadySeen: seen})
	if err != nil {
		return acc, false, err
	}
	w.visited.add(logical)
	w.resolved.add(resolved)
	return acc, !seen, nil
}

func (w *followState[A]) walk(ctx context.Context, acc A, dirStr string, rel *node) (A, error) {
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
			return acc, errors.Wrapf(err, "entry in %q", dirStr)
		}
		fi, err := ent.Info()
		if err != nil {
			return acc, errors.WithStack(err)
		}
		e, err := reifyEntry(dirStr, name, fi)
		if err != nil {
			return acc, err
		}
		childRel := extendRel(rel, e.it)
		full := filepath.Join(dirStr, name.s)

		var (
			ev       Event
			resolved Path
		)
		switch {
		case e.broken:
			// The link itself exists even though its target does not:
			// resolve the parent and attach the link's own name.
			realParent, err := realPath(dirStr)
			if err != nil {
				return acc, errors.WithStack(err)
			}
			rp, err := ParseAbsFile(filepath.Join(realParent, name.s))
			if err != nil {
				return acc, errors.WithStack(err)
			}
			ev, resolved = BrokenLinkEvent{Path: RelFile{n: childRel}}, rp
		case e.isDir:
			real, err := realPath(full)
			if err != nil {
				return acc, errors.WithStack(err)
			}
			rp, err := ParseAbsDir(real)
			if err != nil {
				return acc, errors.WithStack(err)
			}
			ev, resolved = DirEvent{Path: RelDir{n: childRel}}, rp
		default:
			real, err := realPath(full)
			if err != nil {
				return acc, errors.WithStack(err)
			}
			rp, err := ParseAbsFile(real)
			if err != nil {
				return acc, errors.WithStack(err)
			}
			ev, resolved = FileEvent{Path: RelFile{n: childRel}}, rp
		}

		acc2, descend, err := w.emit(acc, ev, logicalOf(ev), resolved)
		acc = acc2
		if err != nil {
			return acc, err
		}
		if descend && e.isDir {
			// Unlike Fold, symlinked directories are walked through
			// their logical path; the resolved set above is what keeps
			// this finite.
			if acc, err = w.walk(ctx, acc, full, childRel); err != nil {
				return acc, err
			}
		}
	}
	return acc, nil
}

func logicalOf(ev Event) Path {
	switch e := ev.(type) {
	case DirEvent:
		return e.Path
	case FileEvent:
		return e.Path
	default:
		return ev.(BrokenLinkEvent).Path
	}
}
