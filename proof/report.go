// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"github.com/bitmark-inc/sealer/blockdigest"
)

// how many reports each worker may have in flight
const reportQueueDepth = 16

type reportKind int

const (
	progressReport reportKind = iota
	foundReport
	exhaustedReport
)

func (k reportKind) String() string {
	switch k {
	case progressReport:
		return "progress"
	case foundReport:
		return "found"
	case exhaustedReport:
		return "exhausted"
	default:
		return "unknown"
	}
}

// message from a worker to the aggregator
type report struct {
	kind   reportKind
	worker int
	digest blockdigest.Digest // found only
	nonce  string             // found only
}
