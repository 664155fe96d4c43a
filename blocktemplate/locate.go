// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocktemplate

import (
	"bytes"

	"github.com/bitmark-inc/sealer/fault"
)

// the key as it appears in the compact form, see Serialise
var nonceKey = []byte(`"nonce":"`)

// Split - canonical serialised template cut around the nonce value
//
// Prefix and Suffix share one buffer and are read-only; their capacity is
// clipped so an append can never write into the other part
type Split struct {
	Prefix []byte
	Suffix []byte
	Offset int
}

// Locate - serialise the template and split it around the nonce value
//
// a template whose serialised form has no 64 character nonce value
// violates the template contract: ErrNonceFieldMissing
func Locate(t *Template) (*Split, error) {
	buffer, err := t.Serialise()
	if nil != err {
		return nil, err
	}
	return LocateBytes(buffer)
}

// LocateBytes - split an already serialised template
//
// keys come before values and quotes inside values are escaped, so the
// first match is always the nonce key itself
func LocateBytes(buffer []byte) (*Split, error) {
	n := bytes.Index(buffer, nonceKey)
	if n < 0 {
		return nil, fault.ErrNonceFieldMissing
	}

	offset := n + len(nonceKey)
	end := offset + NonceLength
	if end >= len(buffer) || '"' != buffer[end] {
		return nil, fault.ErrNonceFieldMissing
	}

	s := &Split{
		Prefix: buffer[:offset:offset],
		Suffix: buffer[end:len(buffer):len(buffer)],
		Offset: offset,
	}
	return s, nil
}

// Assemble - the full serialised text for a nonce, for verification
func (s *Split) Assemble(nonce []byte) []byte {
	buffer := make([]byte, 0, len(s.Prefix)+len(nonce)+len(s.Suffix))
	buffer = append(buffer, s.Prefix...)
	buffer = append(buffer, nonce...)
	return append(buffer, s.Suffix...)
}
