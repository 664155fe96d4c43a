// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package difficulty

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/sealer/fault"
)

// Length - number of bytes in a target
const Length = 32

// DefaultBits - the compact value of pool difficulty 1
const DefaultBits = 0x1d00ffff

// Target - 256 bit threshold, a digest qualifies when its big endian
// value is strictly less than the target
//
// immutable once constructed so it can be shared by all workers
type Target struct {
	value uint256.Int
}

// constOne is for "pdiff" calculation as defined by:
//   https://en.bitcoin.it/wiki/Difficulty#How_is_difficulty_calculated.3F_What_is_the_difference_between_bdiff_and_pdiff.3F
//
// pool difficulty of 1
var constOne = []byte{
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

var one big.Int    // for reciprocal calculation
var two256 big.Int // size of the digest space

func init() {
	one.SetBytes(constOne)
	two256.Lsh(big.NewInt(1), 256)
}

// New - create a target of pool difficulty 1
func New() *Target {
	t := new(Target)
	t.value.SetBytes(constOne)
	return t
}

// NewFromHex - create a target from 64 big endian hex characters
func NewFromHex(s string) (*Target, error) {
	if 2*Length != len(s) {
		return nil, fault.ErrInvalidTarget
	}
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidTarget
	}
	t := new(Target)
	t.value.SetBytes(b)
	return t, nil
}

// NewFromBits - create a target from a bitcoin style compact value
//
// the top byte is the size in bytes; the low 23 bits are the mantissa
func NewFromBits(u uint32) (*Target, error) {
	exponent := int(u>>24) & 0xff
	mantissa := uint64(u & 0x007fffff)

	if 0 != u&0x00800000 || 0 == mantissa || exponent > Length {
		return nil, fault.ErrInvalidBits
	}

	t := new(Target)
	t.value.SetUint64(mantissa)
	if exponent <= 3 {
		t.value.Rsh(&t.value, uint(8*(3-exponent)))
	} else {
		t.value.Lsh(&t.value, uint(8*(exponent-3)))
	}
	if t.value.IsZero() {
		return nil, fault.ErrInvalidBits
	}
	return t, nil
}

// NewFromPdiff - create a target from a pool difficulty
//
// values below 1.0 give targets easier than pool difficulty 1, as long
// as the result still fits in 256 bits
func NewFromPdiff(f float64) (*Target, error) {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fault.ErrInvalidDifficulty
	}

	q := new(big.Float).SetInt(&one)
	q.Quo(q, big.NewFloat(f))
	i, _ := q.Int(nil)

	t := new(Target)
	if overflow := t.value.SetFromBig(i); overflow || t.value.IsZero() {
		return nil, fault.ErrInvalidDifficulty
	}
	return t, nil
}

// Uint256 - pointer to the value for fast comparison, callers must not modify it
func (t *Target) Uint256() *uint256.Int {
	return &t.value
}

// BigInt - copy of the value as a big.Int
func (t *Target) BigInt() *big.Int {
	return t.value.ToBig()
}

// Bytes - big endian 32 byte representation
func (t *Target) Bytes() [Length]byte {
	return t.value.Bytes32()
}

// IsZero - a zero target can never be met
func (t *Target) IsZero() bool {
	return t.value.IsZero()
}

// Bits - the compact representation, rounded down
func (t *Target) Bits() uint32 {
	size := uint((t.value.BitLen() + 7) / 8)

	var compact uint64
	if size <= 3 {
		compact = t.value.Uint64() << (8 * (3 - size))
	} else {
		shifted := new(uint256.Int).Rsh(&t.value, 8*(size-3))
		compact = shifted.Uint64()
	}

	// the sign bit must stay clear
	if 0 != compact&0x00800000 {
		compact >>= 8
		size += 1
	}
	return uint32(compact) | uint32(size)<<24
}

// Pdiff - pool difficulty of this target
func (t *Target) Pdiff() float64 {
	if t.value.IsZero() {
		return math.Inf(1)
	}
	q := new(big.Float).SetInt(&one)
	q.Quo(q, new(big.Float).SetInt(t.value.ToBig()))
	f, _ := q.Float64()
	return f
}

// ExpectedHashes - mean number of attempts needed to meet the target
func (t *Target) ExpectedHashes() float64 {
	if t.value.IsZero() {
		return math.Inf(1)
	}
	q := new(big.Float).SetInt(&two256)
	q.Quo(q, new(big.Float).SetInt(t.value.ToBig()))
	f, _ := q.Float64()
	return f
}

// String - big endian hex, for the %s format
func (t *Target) String() string {
	b := t.value.Bytes32()
	return hex.EncodeToString(b[:])
}

// GoString - for the %#v format
func (t *Target) GoString() string {
	return fmt.Sprintf("<target:%s bits:%08x>", t.String(), t.Bits())
}

// MarshalText - big endian hex text
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText - big endian hex text
func (t *Target) UnmarshalText(s []byte) error {
	n, err := NewFromHex(string(s))
	if nil != err {
		return err
	}
	t.value.Set(&n.value)
	return nil
}
