// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/blocktemplate"
)

const testTemplate = `{"T":"00000000abc00000000000000000000000000000000000000000000000000000",` +
	`"nonce":"0000000000000000000000000000000000000000000000000000000000000000",` +
	`"previd":"0000000052a0e645eca917ae1c196e0d0a4fb756747f29ef52594d68484bb5e2",` +
	`"txids":["6ebfb4c8e8e9b19dcf54c6ce3e1e143da1f473ea986e70c5cb8899a4671c933a"],` +
	`"type":"block"}`

func loadSplit(t *testing.T) (*blocktemplate.Template, *blocktemplate.Split) {
	b, err := blocktemplate.Load([]byte(testTemplate), "tester")
	if nil != err {
		t.Fatalf("load error: %s", err)
	}
	s, err := blocktemplate.Locate(b)
	if nil != err {
		t.Fatalf("locate error: %s", err)
	}
	return b, s
}

func newTestWorker(t *testing.T, r Range, heartbeat uint64, target *uint256.Int, reports chan report) *worker {
	_, s := loadSplit(t)
	hasher, err := blockdigest.NewHasher(blockdigest.SHA256, s.Prefix)
	if nil != err {
		t.Fatalf("hasher error: %s", err)
	}
	return &worker{
		id:        1,
		log:       logger.New(category),
		r:         r,
		heartbeat: heartbeat,
		suffix:    s.Suffix,
		hasher:    hasher,
		target:    target,
		reports:   reports,
	}
}

func drain(reports chan report) map[reportKind]int {
	counts := make(map[reportKind]int)
	for {
		select {
		case r := <-reports:
			counts[r.kind] += 1
		default:
			return counts
		}
	}
}

func TestWorkerHeartbeatCount(t *testing.T) {
	items := []struct {
		r         Range
		heartbeat uint64
		progress  int
	}{
		{Range{0, 32768}, 16384, 2},
		{Range{100, 40100}, 16384, 2},
		{Range{0, 16383}, 16384, 0},
		{Range{7, 107}, 10, 10},
	}

	for i, item := range items {
		reports := make(chan report, 64)

		// a zero target can never be met
		w := newTestWorker(t, item.r, item.heartbeat, uint256.NewInt(0), reports)
		w.Run(nil, make(chan struct{}))

		counts := drain(reports)
		assert.Equal(t, item.progress, counts[progressReport], "%d: wrong progress count", i)
		assert.Equal(t, 0, counts[foundReport], "%d: found with zero target", i)
		assert.Equal(t, 1, counts[exhaustedReport], "%d: wrong exhausted count", i)
	}
}

func TestWorkerFoundContinues(t *testing.T) {
	reports := make(chan report, 2)

	// every digest is below the maximum target
	target := new(uint256.Int).Not(uint256.NewInt(0))
	w := newTestWorker(t, Range{0x1234, 0x2234}, 16384, target, reports)

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(done)
	}()

	first := <-reports
	second := <-reports

	assert.Equal(t, foundReport, first.kind, "wrong first kind")
	assert.Equal(t, strings.Repeat("0", 60)+"1234", first.nonce, "wrong first nonce")
	assert.Equal(t, foundReport, second.kind, "worker must keep searching")
	assert.Equal(t, strings.Repeat("0", 60)+"1235", second.nonce, "wrong second nonce")

	_, s := loadSplit(t)
	d, err := blockdigest.Sum(blockdigest.SHA256, s.Assemble([]byte(first.nonce)))
	assert.Nil(t, err, "sum error")
	assert.Equal(t, d, first.digest, "reported digest differs")

	// worker is blocked on a full channel and must still stop
	close(shutdown)
	<-done

	counts := drain(reports)
	assert.Equal(t, 0, counts[exhaustedReport], "stopped worker must not report exhausted")
}

func TestWorkerStopsAtHeartbeat(t *testing.T) {
	reports := make(chan report, 64)
	w := newTestWorker(t, Range{0, 1 << 40}, 16, uint256.NewInt(0), reports)

	shutdown := make(chan struct{})
	close(shutdown)

	// returns at the first heartbeat instead of searching the range
	w.Run(nil, shutdown)

	counts := drain(reports)
	assert.Equal(t, 0, counts[progressReport], "progress after shutdown")
	assert.Equal(t, 0, counts[exhaustedReport], "exhausted after shutdown")
}
