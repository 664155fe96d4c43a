// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Proof-of-work sealer for block templates
//
// This program reads one JSON block template from stdin, searches the
// nonce space on all CPUs for a digest below the target and writes the
// sealed template to stdout.
package main
