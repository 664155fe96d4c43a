// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/blocktemplate"
	"github.com/bitmark-inc/sealer/counter"
	"github.com/bitmark-inc/sealer/fault"
	"github.com/bitmark-inc/sealer/progress"
)

// aggregator - single consumer of all worker reports
type aggregator struct {
	log       *logger.L
	template  *blocktemplate.Template
	split     *blocktemplate.Split
	algorithm blockdigest.Algorithm
	target    *uint256.Int
	reports   <-chan report
	workers   int
	heartbeat uint64
	reporter  progress.Reporter
	output    io.Writer
	start     time.Time
	ticks     counter.Counter
}

// collect - block until a nonce is found, every worker is exhausted or
// the context is done
//
// the first found report wins; later ones are never read
func (a *aggregator) collect(ctx context.Context) (*Result, error) {

	log := a.log
	exhausted := 0

	defer func() {
		if nil != a.reporter {
			a.reporter.Finish(time.Since(a.start))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Warnf("cancelled after: %d heartbeats", a.ticks.Uint64())
			return nil, fault.ErrSearchCancelled

		case r := <-a.reports:
			switch r.kind {

			case progressReport:
				a.ticks.Increment()
				if nil != a.reporter {
					a.reporter.Advance(a.heartbeat)
				}

			case foundReport:
				log.Infof("worker: %d  found nonce: %s", r.worker, r.nonce)
				return a.seal(r)

			case exhaustedReport:
				exhausted += 1
				log.Infof("worker: %d  exhausted: %d of %d", r.worker, exhausted, a.workers)
				if exhausted >= a.workers {
					return nil, fault.ErrNonceSpaceExhausted
				}

			default:
				log.Criticalf("unexpected report kind: %d from worker: %d", r.kind, r.worker)
				fault.Panic(fmt.Sprintf("aggregator: unexpected report kind: %d", r.kind))
			}
		}
	}
}

// write the nonce into the template and emit the sealed form
func (a *aggregator) seal(r report) (*Result, error) {
	elapsed := time.Since(a.start)

	// must agree with a one-shot digest of the sealed form
	d, err := blockdigest.Sum(a.algorithm, a.split.Assemble([]byte(r.nonce)))
	if nil != err || d != r.digest || !d.Below(a.target) {
		a.log.Criticalf("digest mismatch: %s  reported: %s  worker: %d", d, r.digest, r.worker)
		fault.Panic("aggregator: found nonce does not verify")
	}

	err = a.template.SetNonce(r.nonce)
	if nil != err {
		return nil, err
	}

	sealed, err := a.template.Pretty()
	if nil != err {
		return nil, err
	}

	_, err = fmt.Fprintf(a.output, "%s\nProof found in %d s: %s\n", sealed, int64(elapsed/time.Second), r.digest)
	if nil != err {
		a.log.Errorf("write sealed template error: %s", err)
		return nil, err
	}

	result := &Result{
		Nonce:   r.nonce,
		Digest:  r.digest,
		Elapsed: elapsed,
		Sealed:  sealed,
		Ticks:   a.ticks.Uint64(),
	}
	return result, nil
}
