// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package poe - the proof-of-existence registry
//
// An account may register an opaque byte-string claim, pass its
// ownership to another account, or revoke it.  Each claim remembers
// the block of its most recent create-or-transfer.
package poe

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/storage"
)

// Dependencies - the pool and host adapters the registry runs on
type Dependencies struct {
	Proofs *storage.PoolHandle // claim → since ‖ owner
	Clock  host.Clock
	Events host.Events
}

// globals
type globalDataType struct {
	sync.RWMutex
	log            *logger.L
	d              Dependencies
	maxClaimLength uint32
	initialised    bool
}

// global storage
var globalData globalDataType

// Initialise - connect the registry to its pool and host adapters
func Initialise(deps Dependencies, maxClaimLength uint32) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("poe")
	globalData.log.Info("starting…")

	globalData.d = deps
	globalData.maxClaimLength = maxClaimLength
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

// transact - all-or-nothing envelope around one dispatch
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

// owner and registration block of a stored claim
func fetch(claim []byte) (*account.Account, host.BlockNumber, error) {
	since, ownerBytes := globalData.d.Proofs.GetNB(claim)
	if nil == ownerBytes {
		return nil, 0, fault.ErrClaimDoesNotExist
	}
	owner, err := account.AccountFromBytes(ownerBytes)
	logger.PanicIfError("poe.fetch", err)
	return owner, host.BlockNumber(since), nil
}

// CreateClaim - register a claim for the caller
func CreateClaim(owner *account.Account, claim []byte) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	if uint32(len(claim)) > globalData.maxClaimLength {
		return fault.ErrClaimTooLong
	}

	return transact(func(ev *eventList) error {
		if globalData.d.Proofs.Has(claim) {
			return fault.ErrClaimAlreadyExists
		}

		since := globalData.d.Clock.Number()
		globalData.d.Proofs.PutNB(claim, uint64(since), owner.Bytes())

		ev.add(ClaimCreated{
			Owner: owner,
			Claim: claim,
		})
		return nil
	})
}

// TransferClaim - pass ownership of a claim to another account
//
// the stored claim's length is not re-checked; only creation bounds it
func TransferClaim(owner *account.Account, claim []byte, dest *account.Account) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	return transact(func(ev *eventList) error {
		currentOwner, _, err := fetch(claim)
		if nil != err {
			return err
		}
		if !currentOwner.Equals(owner) {
			return fault.ErrNotClaimOwner
		}

		since := globalData.d.Clock.Number()
		globalData.d.Proofs.PutNB(claim, uint64(since), dest.Bytes())

		ev.add(ClaimTransferred{
			From:  owner,
			To:    dest,
			Claim: claim,
		})
		return nil
	})
}

// RevokeClaim - remove a claim owned by the caller
func RevokeClaim(owner *account.Account, claim []byte) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	return transact(func(ev *eventList) error {
		currentOwner, _, err := fetch(claim)
		if nil != err {
			return err
		}
		if !currentOwner.Equals(owner) {
			return fault.ErrNotClaimOwner
		}

		globalData.d.Proofs.Delete(claim)

		ev.add(ClaimRevoked{
			Owner: owner,
			Claim: claim,
		})
		return nil
	})
}

// Proof - owner and registration block of a claim
func Proof(claim []byte) (*account.Account, host.BlockNumber, error) {
	if err := ensureInitialised(); nil != err {
		return nil, 0, err
	}
	return fetch(claim)
}
