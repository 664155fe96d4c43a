// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/background"
	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/blocktemplate"
	"github.com/bitmark-inc/sealer/difficulty"
	"github.com/bitmark-inc/sealer/fault"
	"github.com/bitmark-inc/sealer/progress"
)

// DefaultHeartbeat - nonces between progress reports
const DefaultHeartbeat = 16384

// Parameters - one search
type Parameters struct {
	Threads    int
	NonceSpace uint64
	Heartbeat  uint64
	Target     *difficulty.Target
	Algorithm  blockdigest.Algorithm // blank selects blockdigest.Default
	Output     io.Writer             // sealed template and result line, nil discards
	Reporter   progress.Reporter     // optional
}

// Result - a sealed template
type Result struct {
	Nonce   string             `json:"nonce"`
	Digest  blockdigest.Digest `json:"digest"`
	Elapsed time.Duration      `json:"elapsed"`
	Sealed  []byte             `json:"-"`
	Ticks   uint64             `json:"ticks"`
}

// Seal - search for a nonce giving a digest below the target
//
// the template's nonce is replaced by the winning value; on every return
// path all workers have stopped
func Seal(ctx context.Context, t *blocktemplate.Template, parameters *Parameters, log *logger.L) (*Result, error) {

	if nil == t || nil == parameters || nil == parameters.Target || nil == log {
		return nil, fault.ErrMissingParameter
	}
	if 0 == parameters.Heartbeat {
		return nil, fault.ErrInvalidHeartbeat
	}

	algorithm := parameters.Algorithm
	if "" == algorithm {
		algorithm = blockdigest.Default
	}
	if !algorithm.Valid() {
		return nil, fault.ErrInvalidAlgorithm
	}

	ranges, err := Partition(parameters.NonceSpace, parameters.Threads)
	if nil != err {
		return nil, err
	}

	covered := Coverage(parameters.NonceSpace, parameters.Threads)
	if tail := parameters.NonceSpace - covered; 0 != tail {
		log.Warnf("nonces not searched: %d  above: %d", tail, covered)
	}

	split, err := blocktemplate.Locate(t)
	if nil != err {
		log.Criticalf("locate nonce error: %s", err)
		return nil, err
	}

	output := parameters.Output
	if nil == output {
		output = ioutil.Discard
	}

	reports := make(chan report, reportQueueDepth*len(ranges))
	processes := make(background.Processes, len(ranges))

	for i, r := range ranges {
		hasher, err := blockdigest.NewHasher(algorithm, split.Prefix)
		if nil != err {
			return nil, err
		}
		processes[i] = &worker{
			id:        i,
			log:       logger.New(fmt.Sprintf("worker-%d", i)),
			r:         r,
			heartbeat: parameters.Heartbeat,
			suffix:    split.Suffix,
			hasher:    hasher,
			target:    parameters.Target.Uint256(),
			reports:   reports,
		}
	}

	a := &aggregator{
		log:       logger.New("aggregator"),
		template:  t,
		split:     split,
		algorithm: algorithm,
		target:    parameters.Target.Uint256(),
		reports:   reports,
		workers:   len(ranges),
		heartbeat: parameters.Heartbeat,
		reporter:  parameters.Reporter,
		output:    output,
		start:     time.Now(),
	}

	log.Infof("algorithm: %s  threads: %d  target: %s", algorithm, len(ranges), parameters.Target)
	log.Infof("expected hashes: %.0f", parameters.Target.ExpectedHashes())

	workers := background.Start(processes, nil)
	result, err := a.collect(ctx)
	workers.Stop()

	if nil != err {
		log.Errorf("search error: %s", err)
		return nil, err
	}

	log.Infof("sealed nonce: %s  digest: %s  elapsed: %s", result.Nonce, result.Digest, result.Elapsed)
	return result, nil
}
