// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocktemplate

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/sealer/fault"
)

// NonceLength - number of hex characters in the serialised nonce
const NonceLength = 64

// DefaultMiner - operator identity stamped on loaded templates
const DefaultMiner = "Kermars"

// Template - block template to be sealed
//
// field order is the canonical serialisation order
type Template struct {
	T       string   `json:"T"`
	Created uint64   `json:"created"`
	Miner   string   `json:"miner"`
	Nonce   string   `json:"nonce"`
	Note    *string  `json:"note,omitempty"`
	PrevID  *string  `json:"previd"`
	TxIDs   []string `json:"txids"`
	Type    string   `json:"type"`
}

// incoming form, pointers detect missing fields
type incoming struct {
	T      *string   `json:"T"`
	Nonce  *string   `json:"nonce"`
	Note   *string   `json:"note"`
	PrevID *string   `json:"previd"`
	TxIDs  *[]string `json:"txids"`
	Type   *string   `json:"type"`
}

// for testing
var now = time.Now

// Load - parse a template and stamp it with the creation time and miner
//
// any created or miner values in the input are replaced
func Load(data []byte, miner string) (*Template, error) {
	var in incoming

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&in); nil != err {
		return nil, fault.ErrTemplateParse
	}

	// only one JSON value is allowed
	if decoder.More() {
		return nil, fault.ErrTemplateParse
	}

	if nil == in.T || nil == in.Nonce || nil == in.TxIDs || nil == in.Type {
		return nil, fault.ErrMissingField
	}
	if !isHex64(*in.T) {
		return nil, fault.ErrInvalidTarget
	}
	if !isHex64(*in.Nonce) {
		return nil, fault.ErrInvalidNonce
	}

	txIDs := *in.TxIDs
	if nil == txIDs {
		txIDs = []string{}
	}

	if "" == miner {
		miner = DefaultMiner
	}

	t := &Template{
		T:       *in.T,
		Created: uint64(now().Unix()),
		Miner:   miner,
		Nonce:   *in.Nonce,
		Note:    in.Note,
		PrevID:  in.PrevID,
		TxIDs:   txIDs,
		Type:    *in.Type,
	}
	return t, nil
}

// SetNonce - record the winning nonce
func (t *Template) SetNonce(nonce string) error {
	if !isHex64(nonce) {
		return fault.ErrInvalidNonce
	}
	t.Nonce = nonce
	return nil
}

// IsGenesis - a template without a previous block
func (t *Template) IsGenesis() bool {
	return nil == t.PrevID
}

// Serialise - canonical compact text form, the form that is hashed
func (t *Template) Serialise() ([]byte, error) {
	return t.encode("")
}

// Pretty - indented text form for display
func (t *Template) Pretty() ([]byte, error) {
	return t.encode("  ")
}

// no HTML escaping and no trailing newline
func (t *Template) encode(indent string) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if "" != indent {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(t); nil != err {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte{'\n'}), nil
}

// exactly 64 hex characters
func isHex64(s string) bool {
	if NonceLength != len(s) {
		return false
	}
	_, err := hex.DecodeString(s)
	return nil == err
}
