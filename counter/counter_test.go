// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/sealer/counter"
)

func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 3 != c1.Uint64() {
		t.Errorf("counter is not 3 after incrementing: %d", c1.Uint64())
	}

	if n := c1.Add(16384); 16387 != n {
		t.Errorf("add returned: %d  expected: 16387", n)
	}
}

func TestCounterConcurrent(t *testing.T) {

	var c counter.Counter

	const (
		goroutines = 8
		increments = 1000
	)

	wg := sync.WaitGroup{}
	wg.Add(goroutines)
	for i := 0; i < goroutines; i += 1 {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if goroutines*increments != c.Uint64() {
		t.Errorf("counter: %d  expected: %d", c.Uint64(), goroutines*increments)
	}
}
