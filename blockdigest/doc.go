// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - digest of a serialised block template
//
// sha256 by default, with sha3-256 and blake2b-256 as alternatives
package blockdigest
