// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package typedpath

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedpath/typedpath/internal/testutils"
)

// foldEvents runs Fold collecting the printed path of every event,
// tagged with its variant.
func foldEvents(t *testing.T, start AbsDir) []string {
	t.Helper()
	out, err := Fold(context.Background(), start, nil,
		func(acc []string, root AbsDir, ev Event) ([]string, error) {
			switch e := ev.(type) {
			case DirEvent:
				return append(acc, "dir "+e.Path.String()), nil
			case FileEvent:
				return append(acc, "file "+e.Path.String()), nil
			case BrokenLinkEvent:
				return append(acc, "broken "+e.Path.String()), nil
			}
			return acc, errors.New("unreachable")
		})
	require.NoError(t, err)
	return out
}

func TestFoldPrefixOrder(t *testing.T) {
	dir, d := tempAbsDir(t)

	testutils.MkdirAll(t, filepath.Join(dir, "a", "inner"), 0o755)
	testutils.WriteFile(t, filepath.Join(dir, "a", "f"), nil, 0o644)
	testutils.WriteFile(t, filepath.Join(dir, "b"), nil, 0o644)

	got := foldEvents(t, d)
	assert.Equal(t, []string{
		"dir .",
		"dir a",
		"file a/f",
		"dir a/inner",
		"file b",
	}, got)
}

func TestFoldReifiesSymlinks(t *testing.T) {
	dir, d := tempAbsDir(t)

	testutils.MkdirAll(t, filepath.Join(dir, "a"), 0o755)
	testutils.WriteFile(t, filepath.Join(dir, "file"), nil, 0o644)
	testutils.Symlink(t, "a", filepath.Join(dir, "ldir"))
	testutils.Symlink(t, "file", filepath.Join(dir, "lfile"))
	testutils.Symlink(t, "nowhere", filepath.Join(dir, "dang"))

	var dirs, files, broken []Path
	_, err := Fold(context.Background(), d, 0,
		func(acc int, root AbsDir, ev Event) (int, error) {
			switch e := ev.(type) {
			case DirEvent:
				dirs = append(dirs, e.Path)
			case FileEvent:
				files = append(files, e.Path)
			case BrokenLinkEvent:
				broken = append(broken, e.Path)
			}
			return acc + 1, nil
		})
	require.NoError(t, err)

	// The symlink to a directory is reported as a directory whose tail
	// is a Link item, and is not descended into.
	require.Len(t, dirs, 3) // ".", "a", "ldir"
	assert.True(t, EqualPath(dirs[2], DirLink(MustName("ldir"), mustRelDir(t, "a"))))
	assert.True(t, dirs[2].HasLink())

	require.Len(t, files, 2) // "file", "lfile"
	assert.True(t, EqualPath(files[1], FileLink(MustName("lfile"), mustRelFile(t, "file"))))

	require.Len(t, broken, 1)
	assert.True(t, EqualPath(broken[0], Broken(MustName("dang"), []string{"nowhere"})))
}

func TestFoldNotFound(t *testing.T) {
	_, d := tempAbsDir(t)
	_, err := Fold(context.Background(), d.JoinDir(mustRelDir(t, "missing")), 0,
		func(acc int, root AbsDir, ev Event) (int, error) { return acc, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoldCallbackErrorAborts(t *testing.T) {
	dir, d := tempAbsDir(t)
	testutils.MkdirAll(t, filepath.Join(dir, "a"), 0o755)
	testutils.MkdirAll(t, filepath.Join(dir, "b"), 0o755)

	boom := errors.New("boom")
	count := 0
	_, err := Fold(context.Background(), d, 0,
		func(acc int, root AbsDir, ev Event) (int, error) {
			count++
			if count == 2 {
				return acc, boom
			}
			return acc, nil
		})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, count)
}

func TestFoldRootArgument(t *testing.T) {
	dir, d := tempAbsDir(t)
	testutils.WriteFile(t, filepath.Join(dir, "f"), nil, 0o644)

	_, err := Fold(context.Background(), d, 0,
		func(acc int, root AbsDir, ev Event) (int, error) {
			assert.True(t, root.Equal(d))
			return acc, nil
		})
	require.NoError(t, err)
}

func TestFoldCanceled(t *testing.T) {
	dir, d := tempAbsDir(t)
	testutils.WriteFile(t, filepath.Join(dir, "f"), nil, 0o644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fold(ctx, d, 0,
		func(acc int, root AbsDir, ev Event) (int, error) { return acc, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
