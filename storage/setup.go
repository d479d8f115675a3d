// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Accounts    *PoolHandle `prefix:"A"`
	Counters    *PoolHandle `prefix:"N"`
	Kitties     *PoolHandle `prefix:"K"`
	KittyOwners *PoolHandle `prefix:"O"`
	Proofs      *PoolHandle `prefix:"P" hashed:"blake2b"`
	TestData    *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.Mutex
	db     *leveldb.DB
	batch  *leveldb.Batch
	cache  Cache
	access Access
	trx    Transaction
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}
	poolData.db = db

	version, err := getVersion(db)
	if nil != err {
		dbClose()
		return err
	}

	switch {
	case 0 == version:
		// database was empty so tag with the current version
		if err := putVersion(db, currentDBVersion); nil != err {
			dbClose()
			return err
		}
	case currentDBVersion == version:
		// ok
	default:
		logger.Criticalf("database version: %d  expected: %d", version, currentDBVersion)
		dbClose()
		return fault.ErrWrongDatabaseVersion
	}

	poolData.batch = new(leveldb.Batch)
	poolData.cache = newCache()
	poolData.access = newDA(poolData.db, poolData.batch, poolData.cache)
	poolData.trx = newTransaction(poolData.access)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			dbClose()
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
			hashed: "" != fieldInfo.Tag.Get("hashed"),
			access: poolData.access,
		}

		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()
	dbClose()
}

// must hold poolData lock before calling
func dbClose() {
	if nil != poolData.db {
		poolData.db.Close()
		poolData.db = nil
		poolData.batch = nil
		poolData.cache = nil
		poolData.access = nil
		poolData.trx = nil
	}
}

// TransactionHandle - the shared transaction guarding all pools
func TransactionHandle() Transaction {
	poolData.Lock()
	defer poolData.Unlock()
	return poolData.trx
}

// IsInitialised - was Initialise called successfully
func IsInitialised() bool {
	poolData.Lock()
	defer poolData.Unlock()
	return nil != poolData.db
}

func getVersion(db *leveldb.DB) (uint64, error) {
	buffer, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 8 != len(buffer) {
		return 0, fault.ErrWrongDatabaseVersion
	}
	return binary.BigEndian.Uint64(buffer), nil
}

func putVersion(db *leveldb.DB, version uint64) error {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, version)
	return db.Put(versionKey, buffer, nil)
}
