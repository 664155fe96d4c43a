// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/sealer/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data/", "./x/../log"), "not cleaned")
}

func TestIsPlainName(t *testing.T) {
	items := []struct {
		name  string
		plain bool
	}{
		{"sealer.log", true},
		{"./sealer.log", false},
		{"log/sealer.log", false},
		{"/tmp/sealer.log", false},
		{"", false},
		{".", false},
		{"..", false},
	}
	for _, item := range items {
		assert.Equal(t, item.plain, util.IsPlainName(item.name), "name: %q", item.name)
	}
}
