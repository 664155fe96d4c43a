// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/blocktemplate"
)

// leading zeros of the nonce text, the low 16 characters hold the value
const nonceLeader = blocktemplate.NonceLength - 16

// worker - searches one nonce range
type worker struct {
	id        int
	log       *logger.L
	r         Range
	heartbeat uint64
	suffix    []byte
	hasher    *blockdigest.Hasher
	target    *uint256.Int
	reports   chan<- report
}

// Run - background process searching the range once
//
// a found nonce is reported and the search continues until shutdown or
// the end of the range
func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log

	log.Infof("starting… range: %s  midstate: %t", w.r, w.hasher.Midstate())

	var nonce [blocktemplate.NonceLength]byte
	for i := 0; i < nonceLeader; i += 1 {
		nonce[i] = '0'
	}
	var value [8]byte
	var digest blockdigest.Digest

	count := uint64(0)

search_loop:
	for n := w.r.Start; n < w.r.End; n += 1 {

		binary.BigEndian.PutUint64(value[:], n)
		hex.Encode(nonce[nonceLeader:], value[:])

		w.hasher.Sum(nonce[:], w.suffix, &digest)

		if digest.Below(w.target) {
			log.Infof("found nonce: %s  digest: %s", nonce[:], digest)
			found := report{
				kind:   foundReport,
				worker: w.id,
				digest: digest,
				nonce:  string(nonce[:]),
			}
			if !w.send(found, shutdown) {
				break search_loop
			}
		}

		count += 1
		if count < w.heartbeat {
			continue search_loop
		}
		count = 0

		select {
		case <-shutdown:
			break search_loop
		default:
		}

		if !w.send(report{kind: progressReport, worker: w.id}, shutdown) {
			break search_loop
		}
	}

	select {
	case <-shutdown:
		log.Info("shutting down…")
	default:
		log.Infof("range exhausted: %s", w.r)
		w.send(report{kind: exhaustedReport, worker: w.id}, shutdown)
	}

	log.Info("stopped")
}

// false if shutdown was signalled before the report was accepted
func (w *worker) send(r report, shutdown <-chan struct{}) bool {
	select {
	case w.reports <- r:
		return true
	case <-shutdown:
		return false
	}
}
