// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - the adapter contracts between the registry cores and
// the surrounding ledger host
//
// The registry cores (kitty, poe) are pure state machines.  Everything
// they need from the outside world - the chain height, domain separated
// entropy, the balances subsystem and the event sink - is expressed as
// one of the small interfaces below, so that the host (or a test) can
// bind them to whatever implementation it runs.
package host

import (
	"github.com/bitmark-inc/kittyd/account"
)

// Balance - the unsigned balance unit supplied by the host ledger
type Balance uint64

// BlockNumber - monotonic block counter of the host chain
type BlockNumber uint64

// BalanceStatus - destination state for repatriated reserved balance
type BalanceStatus int

// balance status values
const (
	Free BalanceStatus = iota
	Reserved
)

// ExistenceRequirement - whether a transfer may reap the debited account
type ExistenceRequirement int

// existence requirement values
const (
	KeepAlive ExistenceRequirement = iota
	AllowDeath
)

// Clock - the current block number source
type Clock interface {

	// Number - the block currently being executed; non-decreasing
	Number() BlockNumber
}

// Entropy - host supplied pseudo-random values
//
// the returned hash must be a deterministic function of the chain state
// and the domain separator, so that replays reproduce it exactly
type Entropy interface {
	Random(domain []byte) ([32]byte, BlockNumber)
}

// Balances - the operations the cores need from the balances subsystem
//
// all mutations performed through this interface during one dispatch
// are covered by the dispatch's transactional envelope
type Balances interface {

	// Reserve - move amount from free to reserved on the account
	Reserve(acc *account.Account, amount Balance) error

	// RepatriateReserved - move reserved balance between accounts,
	// leaving it in the requested status on the recipient
	RepatriateReserved(from *account.Account, to *account.Account, amount Balance, status BalanceStatus) error

	// Transfer - free balance transfer
	Transfer(from *account.Account, to *account.Account, amount Balance, requirement ExistenceRequirement) error

	// FreeBalance - spendable balance of the account
	FreeBalance(acc *account.Account) Balance
}

// Events - sink for the per-block event log
type Events interface {
	Emit(event interface{})
}

// Parameters - host configured constants injected into the cores
type Parameters struct {
	Pledge         Balance // reserved on the owner of each kitty
	MaxKittyOwned  uint32  // declared cap, not enforced by any dispatch
	MaxClaimLength uint32  // longest acceptable poe claim in bytes
}
