// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clock advancing one second per reading
func fakeClock() func() time.Time {
	t := time.Unix(1671062400, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestMeterDisplay(t *testing.T) {
	var buffer bytes.Buffer

	m := NewMeter(&buffer, 0, 65536)
	m.clock = fakeClock()
	m.start = m.clock()

	m.Advance(16384)
	assert.Equal(t, uint64(16384), m.Total(), "wrong total")
	assert.True(t, strings.HasPrefix(buffer.String(), "\r[1s] 16,384 nonces"), "wrong line: %q", buffer.String())
	assert.Contains(t, buffer.String(), "H/s", "rate missing")
	assert.Contains(t, buffer.String(), "eta 3s", "wrong eta")

	m.Advance(65536)
	assert.Contains(t, buffer.String(), "81,920 nonces", "second line missing")
	assert.Contains(t, buffer.String(), "overdue", "expected hashes passed")

	m.Finish(3 * time.Second)
	assert.Contains(t, buffer.String(), "searched 81,920 nonces in 3s", "summary missing")
	assert.True(t, strings.HasSuffix(buffer.String(), "\n"), "summary must end the line")
}

func TestMeterRateLimited(t *testing.T) {
	var buffer bytes.Buffer

	m := NewMeter(&buffer, time.Hour, 0)
	m.Advance(1)
	first := buffer.String()
	m.Advance(1)
	m.Advance(1)

	assert.Equal(t, first, buffer.String(), "display refreshed inside the interval")
	assert.Contains(t, first, "eta unknown", "no expected hashes")
	assert.Equal(t, uint64(3), m.Total(), "count must not be limited")
}

func TestMeterQuiet(t *testing.T) {
	m := NewMeter(nil, 0, 100)
	m.Advance(10)
	m.Advance(20)
	m.Finish(time.Second)

	assert.Equal(t, uint64(30), m.Total(), "quiet meter must still count")
}
