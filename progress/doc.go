// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package progress - throughput display for a nonce search
//
// the Reporter interface is what the search calls; Meter is the terminal
// implementation, mocks holds the generated test double
//
//go:generate mockgen -destination=mocks/reporter.go -package=mocks github.com/bitmark-inc/sealer/progress Reporter
package progress
