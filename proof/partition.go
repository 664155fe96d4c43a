// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"fmt"

	"github.com/bitmark-inc/sealer/fault"
)

// Range - half open nonce interval [Start, End)
type Range struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// Size - number of nonces in the range
func (r Range) Size() uint64 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Partition - split the nonce space into equal contiguous ranges, one per thread
//
// the remainder nonceSpace mod threads is never assigned
func Partition(nonceSpace uint64, threads int) ([]Range, error) {
	if threads <= 0 {
		return nil, fault.ErrInvalidThreadCount
	}

	size := nonceSpace / uint64(threads)
	if 0 == size {
		return nil, fault.ErrInvalidNonceSpace
	}

	ranges := make([]Range, threads)
	for i := range ranges {
		start := uint64(i) * size
		ranges[i] = Range{
			Start: start,
			End:   start + size,
		}
	}
	return ranges, nil
}

// Coverage - upper bound of the nonces that Partition assigns
func Coverage(nonceSpace uint64, threads int) uint64 {
	if threads <= 0 {
		return 0
	}
	return nonceSpace / uint64(threads) * uint64(threads)
}
