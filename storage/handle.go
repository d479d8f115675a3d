// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/logger"
)

// length of the digest prepended to hashed pool keys
const hashedKeyLength = 16

// PoolHandle - handle for a storage pool
type PoolHandle struct {
	prefix byte
	hashed bool
	access Access
}

// prepend the prefix onto the key
//
// pools with user-controlled keys get a collision-resistant digest
// between prefix and key so the key bytes cannot be ground to produce
// overlapping records
func (p *PoolHandle) prefixKey(key []byte) []byte {
	if p.hashed {
		digest := hashKey(key)
		prefixedKey := make([]byte, 0, 1+hashedKeyLength+len(key))
		prefixedKey = append(prefixedKey, p.prefix)
		prefixedKey = append(prefixedKey, digest...)
		return append(prefixedKey, key...)
	}
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

func hashKey(key []byte) []byte {
	h, err := blake2b.New(hashedKeyLength, nil)
	logger.PanicIfError("storage.hashKey", err)
	_, _ = h.Write(key)
	return h.Sum(nil)
}

// ensure a transaction is open before accepting a mutation
func (p *PoolHandle) mustBeInTransaction(operation string) {
	if !p.access.InUse() {
		logger.Panicf("storage: %s outside of a transaction", operation)
	}
}

// Put - store a key/value bytes pair into the pending transaction
func (p *PoolHandle) Put(key []byte, value []byte) {
	p.mustBeInTransaction("pool.Put")
	p.access.Put(p.prefixKey(key), value)
}

// PutN - store an 8 byte big endian value into the pending transaction
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// PutNB - store an 8 byte big endian value followed by bytes
func (p *PoolHandle) PutNB(key []byte, nValue uint64, bValue []byte) {
	buffer := make([]byte, 8+len(bValue))
	binary.BigEndian.PutUint64(buffer, nValue)
	copy(buffer[8:], bValue)
	p.Put(key, buffer)
}

// Delete - remove a key in the pending transaction
func (p *PoolHandle) Delete(key []byte) {
	p.mustBeInTransaction("pool.Delete")
	p.access.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// returns nil if the record was not found
func (p *PoolHandle) Get(key []byte) []byte {
	return p.access.Get(p.prefixKey(key))
}

// GetN - read a record and decode as big endian uint64
//
// second parameter is false if the record was not found
// panics if the record is not exactly 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// GetNB - read a record and decode the first 8 bytes as big endian
// uint64 returning the rest of the record as byte slice
//
// second parameter is nil if the record was not found
// panics if not 9 (or more) bytes in the record
func (p *PoolHandle) GetNB(key []byte) (uint64, []byte) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, nil
	}
	if len(buffer) < 9 {
		logger.Panicf("pool.GetNB truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, buffer[8:]
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	return p.access.Has(p.prefixKey(key))
}

// Scan - iterate all committed records of the pool in key order
//
// the callback receives the pool-local key (digest stripped for hashed
// pools) and the record value; return false to stop the scan
//
// pending transaction state is not visible to a scan
func (p *PoolHandle) Scan(callback func(key []byte, value []byte) bool) {
	searchRange := ldb_util.BytesPrefix([]byte{p.prefix})
	iter := p.access.Iterator(searchRange)
	defer iter.Release()

	skip := 1
	if p.hashed {
		skip = 1 + hashedKeyLength
	}

	for iter.Next() {
		storedKey := iter.Key()
		if len(storedKey) < skip {
			logger.Panicf("pool.Scan truncated key: %x", storedKey)
		}
		key := make([]byte, len(storedKey)-skip)
		copy(key, storedKey[skip:])
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		if !callback(key, value) {
			break
		}
	}
}
