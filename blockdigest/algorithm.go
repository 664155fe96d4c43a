// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest

import (
	"encoding"
	"hash"
	"sort"

	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/sealer/fault"
)

// Algorithm - name of a 256 bit digest function
type Algorithm string

// supported algorithms
const (
	SHA256  Algorithm = "sha256"
	SHA3    Algorithm = "sha3-256"
	Blake2b Algorithm = "blake2b-256"
	Default           = SHA256
)

var constructors = map[Algorithm]func() (hash.Hash, error){
	SHA256: func() (hash.Hash, error) { return sha256.New(), nil },
	SHA3:   func() (hash.Hash, error) { return sha3.New256(), nil },
	Blake2b: func() (hash.Hash, error) {
		return blake2b.New256(nil)
	},
}

// Algorithms - sorted list of the supported names
func Algorithms() []string {
	names := make([]string, 0, len(constructors))
	for a := range constructors {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// Valid - check that the algorithm is supported
func (a Algorithm) Valid() bool {
	_, ok := constructors[a]
	return ok
}

// New - a fresh hash.Hash for the algorithm
func (a Algorithm) New() (hash.Hash, error) {
	c, ok := constructors[a]
	if !ok {
		return nil, fault.ErrInvalidAlgorithm
	}
	return c()
}

// Sum - digest of the concatenation of all parts
func Sum(a Algorithm, parts ...[]byte) (Digest, error) {
	var digest Digest

	h, err := a.New()
	if nil != err {
		return digest, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	h.Sum(digest[:0])
	return digest, nil
}

// Hasher - repeatedly digests prefix || middle || suffix for a fixed prefix
//
// when the hash supports state marshalling the state after the prefix is
// saved once and restored for each digest; a Hasher is not safe for
// concurrent use, each worker owns one
type Hasher struct {
	h        hash.Hash
	prefix   []byte
	state    []byte
	restorer encoding.BinaryUnmarshaler
}

// NewHasher - create a hasher for one prefix
func NewHasher(a Algorithm, prefix []byte) (*Hasher, error) {
	h, err := a.New()
	if nil != err {
		return nil, err
	}

	hasher := &Hasher{
		h:      h,
		prefix: prefix,
	}

	m, canMarshal := h.(encoding.BinaryMarshaler)
	u, canRestore := h.(encoding.BinaryUnmarshaler)
	if canMarshal && canRestore {
		h.Write(prefix)
		if state, err := m.MarshalBinary(); nil == err {
			hasher.state = state
			hasher.restorer = u
		}
	}
	return hasher, nil
}

// Midstate - true if the prefix state is reused
func (hasher *Hasher) Midstate() bool {
	return nil != hasher.state
}

// Sum - write the digest of prefix || middle || suffix into digest
func (hasher *Hasher) Sum(middle []byte, suffix []byte, digest *Digest) {
	if nil != hasher.state {
		err := hasher.restorer.UnmarshalBinary(hasher.state)
		fault.PanicIfError("blockdigest: restore state", err)
	} else {
		hasher.h.Reset()
		hasher.h.Write(hasher.prefix)
	}
	hasher.h.Write(middle)
	hasher.h.Write(suffix)
	hasher.h.Sum(digest[:0])
}
