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

// MkdirAll materializes the directory path p level by level: every
// plain directory item that does not exist yet is created with mode,
// and every Link item is created as a symlink pointing at its declared
// target, after which the walk continues through the target so that the
// target's directories are materialized too.
//
// Re-running MkdirAll over directories that already exist succeeds. A
// pre-existing entry where the term declares a symlink is an error: the
// driver does not inspect the existing entry to decide whether it
// happens to match. Partial progress is not rolled back on failure.
func MkdirAll(ctx context.Context, p AbsDir, mode os.FileMode) error {
	n := p.n
	if n.next == nil {
		// Just the root; nothing to create.
		return nil
	}
	return mkdirRel(ctx, "/", n.next, mode, newCursorSet())
}

func mkdirRel(ctx context.Context, dir string, rel *node, mode os.FileMode, cur *cursorSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !cur.visit(dir, rel) {
		// An enclosing call is already materializing this exact step.
		return nil
	}

	it, rest := rel.it, rel.next
	descend := func(nextDir string) error {
		if rest == nil {
			return nil
		}
		return mkdirRel(ctx, nextDir, rest, mode, cur)
	}

	switch it.kind {
	case itemDot:
		return descend(dir)
	case itemDotdot:
		return descend(parentDir(dir))

	case itemDir:
		full := filepath.Join(dir, it.name.s)
		_, err := lstatPath(full)
		switch {
		case err == nil:
			// Already there; a non-directory will fail a level down.
		case IsNotExist(err):
			if err := mkdirPath(full, mode); err != nil {
				return errors.WithStack(err)
			}
		default:
			return errors.WithStack(err)
		}
		return descend(full)

	case itemLink:
		full := filepath.Join(dir, it.name.s)
		if err := symlinkPath(nodeString(it.target.n), full); err != nil {
			return errors.WithStack(err)
		}
		// Continue through the declared target with the rest of the
		// path riding along, so the target's directories exist by the
		// time anything dereferences the link.
		cont := it.target.n
		if rest != nil {
			cont = appendNodes(cont, rest)
		}
		if it.target.abs {
			if cont.next == nil {
				return nil
			}
			return mkdirRel(ctx, "/", cont.next, mode, cur)
		}
		return mkdirRel(ctx, dir, cont, mode, cur)

	default:
		// Root, File and BrokenLink items cannot occur below the head
		// of an absolute directory term.
		return errors.Errorf("unexpected %q item in directory path", it.component())
	}
}
