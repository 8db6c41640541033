// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElems(t *testing.T) {
	tc := []struct {
		in    string
		elems []Elem
	}{
		{"/", []Elem{"/"}},
		{"a", []Elem{"a"}},
		{"/a/b", []Elem{"/", "a", "b"}},
		{"a/b/c", []Elem{"a", "b", "c"}},
		{"a//b", []Elem{"a", ".", "b"}},
		{"/a/", []Elem{"/", "a", "."}},
		{"./..", []Elem{".", ".."}},
		{"//", []Elem{"/", "."}},
	}
	for _, test := range tc {
		elems, err := ParseElems(test.in)
		if assert.NoErrorf(t, err, "ParseElems(%q)", test.in) {
			assert.Emptyf(t, cmp.Diff(test.elems, elems), "ParseElems(%q)", test.in)
		}
	}

	_, err := ParseElems("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestBuildersAnchor(t *testing.T) {
	_, err := RelDirFromElems([]Elem{"/", "a"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)
	_, err = RelFileFromElems([]Elem{"/", "a"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)
	_, err = AbsDirFromElems([]Elem{"a"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)
	_, err = AbsFileFromElems([]Elem{"a"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)

	// The separator sentinel may only lead.
	_, err = AbsDirFromElems([]Elem{"/", "a", "/"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)
	_, err = RelDirFromElems([]Elem{"a", "/", "b"})
	assert.ErrorIs(t, err, ErrAnchorMismatch)
}

func TestBuildersObject(t *testing.T) {
	for _, bad := range [][]Elem{
		{"/", "."},
		{"/", "a", ".."},
		{"/"},
	} {
		_, err := AbsFileFromElems(bad)
		assert.ErrorIsf(t, err, ErrObjectMismatch, "AbsFileFromElems(%v)", bad)
	}
	_, err := RelFileFromElems([]Elem{"a", "."})
	assert.ErrorIs(t, err, ErrObjectMismatch)

	// Directory builders accept "." and ".." tails.
	p, err := AbsDirFromElems([]Elem{"/", "a", ".."})
	require.NoError(t, err)
	assert.Equal(t, "/a/..", p.String())
}

func TestBuildersEmpty(t *testing.T) {
	_, err := RelDirFromElems(nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
	_, err = AbsFileFromElems(nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestBuildersInvalidName(t *testing.T) {
	_, err := RelDirFromElems([]Elem{"a/b"})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"/", "/a", "/a/b/c", "/a/./b", "/..", "/a/.."} {
		p, err := ParseAbsDir(s)
		require.NoErrorf(t, err, "ParseAbsDir(%q)", s)
		assert.Equalf(t, s, p.String(), "round trip %q", s)
	}
	for _, s := range []string{"a", "a/b", ".", "..", "../../a", "./a"} {
		p, err := ParseRelDir(s)
		require.NoErrorf(t, err, "ParseRelDir(%q)", s)
		assert.Equalf(t, s, p.String(), "round trip %q", s)
	}
	for _, s := range []string{"/a/b", "/f"} {
		p, err := ParseAbsFile(s)
		require.NoErrorf(t, err, "ParseAbsFile(%q)", s)
		assert.Equalf(t, s, p.String(), "round trip %q", s)
	}
	for _, s := range []string{"a/b", "f", "../f"} {
		p, err := ParseRelFile(s)
		require.NoErrorf(t, err, "ParseRelFile(%q)", s)
		assert.Equalf(t, s, p.String(), "round trip %q", s)
	}
}

// Empty segments are the only loss in a parse/print round trip.
func TestStringRoundTripEmptySegments(t *testing.T) {
	p, err := ParseAbsDir("/a//b")
	require.NoError(t, err)
	assert.Equal(t, "/a/./b", p.String())

	q, err := ParseAbsDir(p.String())
	require.NoError(t, err)
	assert.True(t, p.Equal(q))
}

func TestComponents(t *testing.T) {
	p, err := ParseAbsFile("/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "a", "b"}, p.Components())

	q, err := ParseRelDir("../x")
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "x"}, q.Components())

	assert.Equal(t, []string{"/"}, Root().Components())
}
