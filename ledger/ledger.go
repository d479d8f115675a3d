// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a minimal balances subsystem
//
// The real balances subsystem is outside the registry cores; they only
// see the host.Balances interface.  This package provides the standalone
// implementation used by the commands and the tests: per-account free
// and reserved totals stored in the Accounts pool, so that balance
// mutations commit or roll back together with the registry state.
package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/storage"
)

// account record layout: free[8] reserved[8] big endian
const recordLength = 16

type ledgerData struct {
	sync.RWMutex
	log         *logger.L
	accounts    *storage.PoolHandle
	initialised bool
}

// global ledger state
var globalData ledgerData

// Initialise - attach the ledger to its accounts pool
func Initialise(accounts *storage.PoolHandle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")
	globalData.accounts = accounts
	globalData.initialised = true
	return nil
}

// Finalise - shut down the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.accounts = nil
	globalData.initialised = false
	return nil
}

// Get - the host.Balances implementation
func Get() host.Balances {
	return &globalData
}

func (l *ledgerData) read(acc *account.Account) (host.Balance, host.Balance) {
	buffer := l.accounts.Get(acc.Bytes())
	if nil == buffer {
		return 0, 0
	}
	if recordLength != len(buffer) {
		logger.Panicf("ledger: truncated account record: %x", buffer)
	}
	free := host.Balance(binary.BigEndian.Uint64(buffer[:8]))
	reserved := host.Balance(binary.BigEndian.Uint64(buffer[8:]))
	return free, reserved
}

func (l *ledgerData) write(acc *account.Account, free host.Balance, reserved host.Balance) {
	buffer := make([]byte, recordLength)
	binary.BigEndian.PutUint64(buffer[:8], uint64(free))
	binary.BigEndian.PutUint64(buffer[8:], uint64(reserved))
	l.accounts.Put(acc.Bytes(), buffer)
}

// Reserve - move amount from free to reserved on the account
func (l *ledgerData) Reserve(acc *account.Account, amount host.Balance) error {
	l.Lock()
	defer l.Unlock()

	free, reserved := l.read(acc)
	if free < amount {
		return fault.ErrInsufficientBalance
	}
	l.write(acc, free-amount, reserved+amount)
	return nil
}

// RepatriateReserved - move reserved balance from one account to another
func (l *ledgerData) RepatriateReserved(from *account.Account, to *account.Account, amount host.Balance, status host.BalanceStatus) error {
	l.Lock()
	defer l.Unlock()

	fromFree, fromReserved := l.read(from)
	if fromReserved < amount {
		return fault.ErrInsufficientBalance
	}

	if from.Equals(to) {
		if host.Free == status {
			l.write(from, fromFree+amount, fromReserved-amount)
		}
		return nil
	}

	toFree, toReserved := l.read(to)
	if host.Free == status {
		toFree += amount
	} else {
		toReserved += amount
	}
	l.write(from, fromFree, fromReserved-amount)
	l.write(to, toFree, toReserved)
	return nil
}

// Transfer - free balance transfer between accounts
func (l *ledgerData) Transfer(from *account.Account, to *account.Account, amount host.Balance, requirement host.ExistenceRequirement) error {
	l.Lock()
	defer l.Unlock()

	fromFree, fromReserved := l.read(from)
	if fromFree < amount {
		return fault.ErrInsufficientBalance
	}
	if host.KeepAlive == requirement && amount > 0 {
		if 0 == fromFree-amount+fromReserved {
			return fault.ErrTransferWouldReapAccount
		}
	}

	if from.Equals(to) {
		return nil
	}

	toFree, toReserved := l.read(to)
	l.write(from, fromFree-amount, fromReserved)
	l.write(to, toFree+amount, toReserved)
	return nil
}

// FreeBalance - spendable balance of the account
func (l *ledgerData) FreeBalance(acc *account.Account) host.Balance {
	l.RLock()
	defer l.RUnlock()

	free, _ := l.read(acc)
	return free
}

// ReservedBalance - reserved balance of the account
//
// not part of host.Balances; used by commands and tests to inspect the
// reservation totals
func ReservedBalance(acc *account.Account) host.Balance {
	globalData.RLock()
	defer globalData.RUnlock()

	_, reserved := globalData.read(acc)
	return reserved
}

// FreeBalance - package level convenience for commands and tests
func FreeBalance(acc *account.Account) host.Balance {
	return globalData.FreeBalance(acc)
}

// Endow - credit free balance to an account
//
// genesis/administration only; must be called inside an open storage
// transaction like every other mutation
func Endow(acc *account.Account, amount host.Balance) {
	globalData.Lock()
	defer globalData.Unlock()

	free, reserved := globalData.read(acc)
	globalData.write(acc, free+amount, reserved)
}
