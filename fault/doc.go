// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error classes and instances for the sealer
//
// every error is a singleton compared by identity; the class of an
// error (invalid input, not found, process failure, broken invariant)
// is tested with the IsErrX functions
package fault
