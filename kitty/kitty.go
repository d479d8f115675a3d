// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kitty - the kitty registry
//
// Mints unique tokens, tracks ownership, supports direct transfer,
// price listing, purchase and breeding.  Every public operation is a
// deterministic state transition running inside the storage
// transaction: a failed operation leaves no storage write, no balance
// movement and no event behind.
package kitty

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/storage"
)

// Dependencies - the pools and host adapters the registry runs on
type Dependencies struct {
	Kitties  *storage.PoolHandle // id → packed kitty record
	Owners   *storage.PoolHandle // id → owner, denormalised index
	Counters *storage.PoolHandle // monotonic counters
	Random   host.Entropy        // also supplies the block number seen by dna derivation
	Balances host.Balances
	Events   host.Events
}

// key of the kitty count inside the Counters pool
var countKey = []byte("kitty")

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	d           Dependencies
	params      host.Parameters
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - connect the registry to its pools and host adapters
func Initialise(deps Dependencies, params host.Parameters) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("kitty")
	globalData.log.Info("starting…")

	globalData.d = deps
	globalData.params = params
	globalData.initialised = true

	return nil
}

// Finalise - shut down the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.d = Dependencies{}
	globalData.initialised = false

	return nil
}

func ensureInitialised() error {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	return nil
}

// transact - the all-or-nothing envelope around one dispatch
//
// opens the storage transaction, runs the operation, then either
// commits and flushes the buffered events, or aborts leaving no
// externally observable effect; balance mutations ride in the same
// transaction because the ledger writes through the same pools
func transact(operation func(ev *eventList) error) error {
	trx := storage.TransactionHandle()
	if err := trx.Begin(); nil != err {
		return err
	}

	ev := &eventList{}
	if err := operation(ev); nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	ev.flush(globalData.d.Events)
	return nil
}
