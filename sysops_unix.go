// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package typedpath

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Thin wrappers around the raw syscalls the walkers need. Each one tags
// failures with the operation and path; the drivers above add wrapped
// context (and a captured call site) on top.

// statT is the raw stat result the probes pass around.
type statT = unix.Stat_t

func lstatPath(path string) (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return st, &os.PathError{Op: "lstat", Path: path, Err: err}
	}
	return st, nil
}

func statPath(path string) (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return st, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return st, nil
}

func mkdirPath(path string, mode os.FileMode) error {
	if err := unix.Mkdir(path, uint32(mode.Perm())); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

func symlinkPath(target, link string) error {
	if err := unix.Symlink(target, link); err != nil {
		return &os.PathError{Op: "symlink", Path: link, Err: err}
	}
	return nil
}

func readlinkPath(path string) (string, error) {
	size := 4096
	for {
		buf := make([]byte, size)
		n, err := unix.Readlink(path, buf)
		if err != nil {
			return "", &os.PathError{Op: "readlink", Path: path, Err: err}
		}
		if n != size {
			return string(buf[:n]), nil
		}
		// Possible truncation, resize the buffer.
		size *= 2
	}
}

// realPath resolves path to its canonical symlink-free form.
func realPath(path string) (string, error) {
	p, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return p, nil
}

func isDirMode(st unix.Stat_t) bool {
	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}

func isSymlinkMode(st unix.Stat_t) bool {
	return st.Mode&unix.S_IFMT == unix.S_IFLNK
}

// probeLstat asks whether an entry exists at path without following a
// final symlink. Errors the OS refuses to classify become Unknown.
func probeLstat(path string) (unix.Stat_t, Tri) {
	st, err := lstatPath(path)
	return st, triOf(err)
}

// probeStat is probeLstat with symlink following.
func probeStat(path string) Tri {
	_, err := statPath(path)
	return triOf(err)
}

// parentDir names the directory containing the absolute path dir. The
// root is its own parent.
func parentDir(dir string) string {
	return filepath.Dir(dir)
}
