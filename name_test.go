// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typedpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	for _, valid := range []string{"a", "etc", "a b", "..a", "a.", "-", "\x01"} {
		name, err := ParseName(valid)
		if assert.NoErrorf(t, err, "ParseName(%q)", valid) {
			assert.Equal(t, valid, name.String())
		}
	}
	for _, invalid := range []string{"", ".", "..", "a/b", "/", "a/"} {
		_, err := ParseName(invalid)
		assert.ErrorIsf(t, err, ErrInvalidName, "ParseName(%q)", invalid)
	}
}

func TestMustName(t *testing.T) {
	assert.Equal(t, "x", MustName("x").String())
	require.Panics(t, func() { MustName("..") })
}
