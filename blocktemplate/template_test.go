// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocktemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/sealer/blocktemplate"
	"github.com/bitmark-inc/sealer/fault"
)

const (
	genesis = `{
  "T": "00000000abc00000000000000000000000000000000000000000000000000000",
  "created": 1671062400,
  "miner": "Marabu",
  "nonce": "000000000000000000000000000000000000000000000000000000021bea03ed",
  "note": "The New York Times 2022-12-13: Scientists Achieve Nuclear Fusion Breakthrough With Blast of 192 Lasers",
  "previd": null,
  "txids": [],
  "type": "block"
}`

	child = `{"T":"00000000abc00000000000000000000000000000000000000000000000000000",` +
		`"nonce":"0000000000000000000000000000000000000000000000000000000000000000",` +
		`"previd":"0000000052a0e645eca917ae1c196e0d0a4fb756747f29ef52594d68484bb5e2",` +
		`"txids":["6ebfb4c8e8e9b19dcf54c6ce3e1e143da1f473ea986e70c5cb8899a4671c933a"],` +
		`"type":"block"}`

	miner = "operator"
)

func TestLoad(t *testing.T) {
	before := uint64(time.Now().Unix())
	b, err := blocktemplate.Load([]byte(genesis), miner)
	after := uint64(time.Now().Unix())

	if !assert.Nil(t, err, "load error") {
		return
	}

	assert.Equal(t, "00000000abc00000000000000000000000000000000000000000000000000000", b.T, "wrong target")
	assert.Equal(t, miner, b.Miner, "miner not stamped")
	assert.True(t, b.Created >= before && b.Created <= after, "created not stamped: %d", b.Created)
	assert.Equal(t, "000000000000000000000000000000000000000000000000000000021bea03ed", b.Nonce, "wrong nonce")
	assert.NotNil(t, b.Note, "missing note")
	assert.True(t, b.IsGenesis(), "genesis has no previd")
	assert.Equal(t, []string{}, b.TxIDs, "wrong txids")
	assert.Equal(t, "block", b.Type, "wrong type")
}

func TestLoadDefaultMiner(t *testing.T) {
	b, err := blocktemplate.Load([]byte(child), "")
	assert.Nil(t, err, "load error")
	assert.Equal(t, blocktemplate.DefaultMiner, b.Miner, "wrong default miner")
	assert.False(t, b.IsGenesis(), "child has a previd")
	assert.Nil(t, b.Note, "note must be absent")
	assert.Equal(t, 1, len(b.TxIDs), "wrong txids")
}

func TestLoadErrors(t *testing.T) {
	items := []struct {
		input string
		err   error
	}{
		{``, fault.ErrTemplateParse},
		{`not json`, fault.ErrTemplateParse},
		{`{"T":`, fault.ErrTemplateParse},
		{`[1,2,3]`, fault.ErrTemplateParse},
		{child + ` {}`, fault.ErrTemplateParse},
		{`{"nonce":"` + strings.Repeat("0", 64) + `","txids":[],"type":"block"}`, fault.ErrMissingField},
		{`{"T":"` + strings.Repeat("0", 64) + `","txids":[],"type":"block"}`, fault.ErrMissingField},
		{`{"T":"` + strings.Repeat("0", 64) + `","nonce":"` + strings.Repeat("0", 64) + `","type":"block"}`, fault.ErrMissingField},
		{`{"T":"` + strings.Repeat("0", 64) + `","nonce":"` + strings.Repeat("0", 64) + `","txids":null,"type":"block"}`, fault.ErrMissingField},
		{`{"T":"` + strings.Repeat("0", 64) + `","nonce":"` + strings.Repeat("0", 64) + `","txids":[]}`, fault.ErrMissingField},
		{`{"T":"abc","nonce":"` + strings.Repeat("0", 64) + `","txids":[],"type":"block"}`, fault.ErrInvalidTarget},
		{`{"T":"` + strings.Repeat("0", 64) + `","nonce":"1","txids":[],"type":"block"}`, fault.ErrInvalidNonce},
		{`{"T":"` + strings.Repeat("0", 64) + `","nonce":"` + strings.Repeat("x", 64) + `","txids":[],"type":"block"}`, fault.ErrInvalidNonce},
	}

	for i, item := range items {
		b, err := blocktemplate.Load([]byte(item.input), miner)
		assert.Nil(t, b, "%d: template returned on error", i)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.True(t, fault.IsErrInvalid(err), "%d: not a parse error class", i)
	}
}

func TestSerialiseCanonical(t *testing.T) {
	b, err := blocktemplate.Load([]byte(child), miner)
	assert.Nil(t, err, "load error")
	b.Created = 1671148800

	buffer, err := b.Serialise()
	assert.Nil(t, err, "serialise error")

	expected := `{"T":"00000000abc00000000000000000000000000000000000000000000000000000",` +
		`"created":1671148800,"miner":"operator",` +
		`"nonce":"0000000000000000000000000000000000000000000000000000000000000000",` +
		`"previd":"0000000052a0e645eca917ae1c196e0d0a4fb756747f29ef52594d68484bb5e2",` +
		`"txids":["6ebfb4c8e8e9b19dcf54c6ce3e1e143da1f473ea986e70c5cb8899a4671c933a"],` +
		`"type":"block"}`
	assert.Equal(t, expected, string(buffer), "wrong canonical form")
}

func TestSerialiseGenesisAndNote(t *testing.T) {
	b, err := blocktemplate.Load([]byte(genesis), "<miner & co>")
	assert.Nil(t, err, "load error")

	buffer, err := b.Serialise()
	assert.Nil(t, err, "serialise error")

	assert.True(t, bytes.Contains(buffer, []byte(`"previd":null`)), "genesis previd must be null: %s", buffer)
	assert.True(t, bytes.Contains(buffer, []byte(`"note":"The New York`)), "note missing: %s", buffer)
	assert.True(t, bytes.Contains(buffer, []byte(`"miner":"<miner & co>"`)), "miner escaped: %s", buffer)
	assert.False(t, bytes.HasSuffix(buffer, []byte("\n")), "trailing newline")

	pretty, err := b.Pretty()
	assert.Nil(t, err, "pretty error")
	assert.True(t, bytes.Contains(pretty, []byte("\n  \"nonce\": ")), "not indented: %s", pretty)
}

// deserialising a serialised template gives the same template
// apart from the load time stamps
func TestRoundTrip(t *testing.T) {
	for _, input := range []string{genesis, child} {
		b, err := blocktemplate.Load([]byte(input), miner)
		assert.Nil(t, err, "load error")

		buffer, err := b.Serialise()
		assert.Nil(t, err, "serialise error")

		b2, err := blocktemplate.Load(buffer, "someone else")
		assert.Nil(t, err, "reload error")

		b2.Created = b.Created
		b2.Miner = b.Miner
		assert.Equal(t, b, b2, "round trip differs")
	}
}

func TestSetNonce(t *testing.T) {
	b, err := blocktemplate.Load([]byte(child), miner)
	assert.Nil(t, err, "load error")

	nonce := strings.Repeat("0", 48) + "00000000deadbeef"
	assert.Nil(t, b.SetNonce(nonce), "set nonce error")
	assert.Equal(t, nonce, b.Nonce, "nonce not set")

	assert.Equal(t, fault.ErrInvalidNonce, b.SetNonce("deadbeef"), "short nonce accepted")
	assert.Equal(t, nonce, b.Nonce, "nonce changed on error")
}
