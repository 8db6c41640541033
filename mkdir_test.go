// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package typedpath

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedpath/typedpath/internal/testutils"
)

func requireDir(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Lstat(path)
	require.NoError(t, err)
	assert.Truef(t, fi.IsDir(), "%q should be a directory", path)
}

func requireSymlinkTo(t *testing.T, path, target string) {
	t.Helper()
	fi, err := os.Lstat(path)
	require.NoError(t, err)
	require.NotZerof(t, fi.Mode()&os.ModeSymlink, "%q should be a symlink", path)
	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestMkdirAllNested(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)

	p := d.JoinDir(mustRelDir(t, "x/y/z"))
	require.NoError(t, MkdirAll(ctx, p, 0o755))

	requireDir(t, filepath.Join(dir, "x"))
	requireDir(t, filepath.Join(dir, "x", "y"))
	requireDir(t, filepath.Join(dir, "x", "y", "z"))
	assert.Equal(t, Yes, Exists(ctx, p))

	// Idempotent over plain directories.
	require.NoError(t, MkdirAll(ctx, p, 0o755))
}

func TestMkdirAllRootOnly(t *testing.T) {
	require.NoError(t, MkdirAll(context.Background(), Root(), 0o755))
}

func TestMkdirAllDotAndDotdot(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)

	require.NoError(t, MkdirAll(ctx, d.JoinDir(mustRelDir(t, "x/../y/.")), 0o755))
	requireDir(t, filepath.Join(dir, "x"))
	requireDir(t, filepath.Join(dir, "y"))
}

func TestMkdirAllRelativeLink(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)

	p := d.JoinDir(DirLink(MustName("l"), mustRelDir(t, "t"))).JoinDir(mustRelDir(t, "sub"))
	require.NoError(t, MkdirAll(ctx, p, 0o755))

	requireSymlinkTo(t, filepath.Join(dir, "l"), "t")
	requireDir(t, filepath.Join(dir, "t"))
	requireDir(t, filepath.Join(dir, "t", "sub"))
	assert.Equal(t, Yes, Exists(ctx, p))
}

func TestMkdirAllAbsoluteLink(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)
	other, _ := tempAbsDir(t)

	target := mustAbsDir(t, filepath.Join(other, "z"))
	p := d.JoinDir(DirLink(MustName("l"), target)).JoinDir(mustRelDir(t, "deep"))
	require.NoError(t, MkdirAll(ctx, p, 0o755))

	requireSymlinkTo(t, filepath.Join(dir, "l"), filepath.Join(other, "z"))
	requireDir(t, filepath.Join(other, "z"))
	requireDir(t, filepath.Join(other, "z", "deep"))
}

// A pre-existing entry where the term declares a symlink is an error,
// even when it is the identical symlink.
func TestMkdirAllExistingLinkFails(t *testing.T) {
	ctx := context.Background()
	_, d := tempAbsDir(t)

	p := d.JoinDir(DirLink(MustName("l"), mustRelDir(t, "t")))
	require.NoError(t, MkdirAll(ctx, p, 0o755))
	err := MkdirAll(ctx, p, 0o755)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestMkdirAllCollidesWithFile(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)
	testutils.WriteFile(t, filepath.Join(dir, "x"), nil, 0o644)

	// The colliding level itself is skipped (it exists), so creating
	// below it must fail.
	err := MkdirAll(ctx, d.JoinDir(mustRelDir(t, "x/y")), 0o755)
	require.Error(t, err)
}

func TestMkdirAllCanceled(t *testing.T) {
	_, d := tempAbsDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := MkdirAll(ctx, d.JoinDir(mustRelDir(t, "x")), 0o755)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMkdirAllCyclicTermTerminates(t *testing.T) {
	ctx := context.Background()
	dir, d := tempAbsDir(t)

	// A self-referential link term: the symlink is created once, the
	// second visit of the same step is cut off by the cursor set.
	self := &node{it: item{kind: itemLink, name: MustName("self")}}
	self.it.target = linkTarget{n: self}
	p := AbsDir{n: appendNodes(d.n, self)}

	require.NoError(t, MkdirAll(ctx, p, 0o755))
	requireSymlinkTo(t, filepath.Join(dir, "self"), "self")
}
