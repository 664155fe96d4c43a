// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/difficulty"
	"github.com/bitmark-inc/sealer/fault"
)

const (
	currentVersion = 1
	versionLength  = 4
	sealPrefix     = 'S'
)

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// Record - one sealed template
type Record struct {
	Digest    blockdigest.Digest    `json:"digest"`
	Nonce     string                `json:"nonce"`
	Algorithm blockdigest.Algorithm `json:"algorithm"`
	Target    *difficulty.Target    `json:"target"`
	Elapsed   time.Duration         `json:"elapsed"`
	Timestamp time.Time             `json:"timestamp"`
	Sealed    json.RawMessage       `json:"sealed"` // canonical form
}

// Archive - leveldb journal of sealed templates keyed by digest
type Archive struct {
	sync.Mutex
	log *logger.L
	db  *leveldb.DB
}

// Open - open or create an archive directory
func Open(name string, readOnly bool) (*Archive, error) {
	log := logger.New("archive")

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		log.Errorf("open: %q  error: %s", name, err)
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch version {
	case currentVersion:
	case 0:
		if readOnly {
			break
		}
		if err := putVersion(db, currentVersion); nil != err {
			db.Close()
			return nil, err
		}
	default:
		db.Close()
		return nil, fmt.Errorf("incompatible archive version: expected: %d  actual: %d", currentVersion, version)
	}

	log.Infof("opened: %q  read only: %t", name, readOnly)

	a := &Archive{
		log: log,
		db:  db,
	}
	return a, nil
}

// Close - close the database
func (a *Archive) Close() {
	a.Lock()
	defer a.Unlock()

	if nil != a.db {
		a.db.Close()
		a.db = nil
		a.log.Info("closed")
		a.log.Flush()
	}
}

// Put - store a record under its digest, replacing any previous one
func (a *Archive) Put(record *Record) error {
	if nil == record {
		return fault.ErrMissingParameter
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(record)
	if nil != err {
		return err
	}

	a.Lock()
	defer a.Unlock()

	if nil == a.db {
		return fault.ErrNotInitialised
	}

	a.log.Infof("put digest: %s  nonce: %s", record.Digest, record.Nonce)
	return a.db.Put(sealKey(record.Digest), value, nil)
}

// Get - fetch the record for a digest
func (a *Archive) Get(digest blockdigest.Digest) (*Record, error) {
	a.Lock()
	defer a.Unlock()

	if nil == a.db {
		return nil, fault.ErrNotInitialised
	}

	value, err := a.db.Get(sealKey(digest), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrNotFound
	} else if nil != err {
		return nil, err
	}

	return a.decode(digest[:], value)
}

// Each - call fn for every record in digest order, stopping at the first error
func (a *Archive) Each(fn func(record *Record) error) error {
	a.Lock()
	defer a.Unlock()

	if nil == a.db {
		return fault.ErrNotInitialised
	}

	iter := a.db.NewIterator(ldb_util.BytesPrefix([]byte{sealPrefix}), nil)
	defer iter.Release()

	for iter.Next() {
		record, err := a.decode(iter.Key()[1:], iter.Value())
		if nil != err {
			return err
		}
		if err := fn(record); nil != err {
			return err
		}
	}
	return iter.Error()
}

// the key must match the digest inside the value
func (a *Archive) decode(key []byte, value []byte) (*Record, error) {
	var record Record
	err := json.Unmarshal(value, &record)
	if nil != err {
		a.log.Errorf("key: %x  decode error: %s", key, err)
		return nil, fault.ErrArchiveRecordCorrupt
	}
	var digest blockdigest.Digest
	if err := blockdigest.DigestFromBytes(&digest, key); nil != err || digest != record.Digest {
		a.log.Errorf("key: %x  holds digest: %s", key, record.Digest)
		return nil, fault.ErrArchiveRecordCorrupt
	}
	return &record, nil
}

func sealKey(digest blockdigest.Digest) []byte {
	key := make([]byte, 1+len(digest))
	key[0] = sealPrefix
	copy(key[1:], digest[:])
	return key
}

func getVersion(db *leveldb.DB) (int, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if versionLength != len(value) {
		return 0, fmt.Errorf("incompatible archive version length: expected: %d  actual: %d", versionLength, len(value))
	}
	return int(binary.BigEndian.Uint32(value)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, versionLength)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, nil)
}
