// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockheader - maintain the current chain height
//
// The height is persisted in the Counters pool and cached in memory;
// it only moves forward.  Standalone operation advances it explicitly,
// one block per administrative step.
package blockheader

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/storage"
)

// key inside the Counters pool
var heightKey = []byte("height")

type blockheaderData struct {
	sync.RWMutex
	log         *logger.L
	counters    *storage.PoolHandle
	height      host.BlockNumber
	initialised bool
}

// global height state
var globalData blockheaderData

// Initialise - load the persisted chain height
func Initialise(counters *storage.PoolHandle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("blockheader")
	globalData.log.Info("starting…")
	globalData.counters = counters

	height, found := counters.GetN(heightKey)
	if !found {
		height = 0
	}
	globalData.height = host.BlockNumber(height)
	globalData.log.Infof("chain height: %d", globalData.height)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the height tracking
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.counters = nil
	globalData.initialised = false
	return nil
}

// Height - the current chain height
func Height() host.BlockNumber {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.height
}

// Advance - step the chain height by one block
//
// runs its own transaction; cannot be called while a dispatch is open
func Advance() (host.BlockNumber, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	trx := storage.TransactionHandle()
	if err := trx.Begin(); nil != err {
		return 0, err
	}

	newHeight := globalData.height + 1
	globalData.counters.PutN(heightKey, uint64(newHeight))
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return 0, err
	}

	globalData.height = newHeight
	globalData.log.Debugf("advanced to height: %d", newHeight)
	return newHeight, nil
}

// Number - host.Clock implementation
func (b *blockheaderData) Number() host.BlockNumber {
	return Height()
}

// Clock - the host.Clock backed by the persisted height
func Clock() host.Clock {
	return &globalData
}
