// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
)

// the dispatch entry points
//
// the caller account has already been authenticated by the host; every
// function below is atomic over storage, balances and events

// CreateKitty - mint a new kitty with derived dna and gender
func CreateKitty(owner *account.Account) (ID, error) {
	if err := ensureInitialised(); nil != err {
		return 0, err
	}

	newID := ID(0)
	err := transact(func(ev *eventList) error {
		id, err := mint(owner, nil, nil)
		if nil != err {
			return err
		}
		newID = id
		ev.add(Created{
			Owner:   owner,
			KittyID: id,
		})
		return nil
	})
	if nil != err {
		return 0, err
	}

	globalData.log.Infof("kitty born with id: %d", newID)
	return newID, nil
}

// SellKitty - set or clear the asking price; nil withdraws from sale
func SellKitty(seller *account.Account, id ID, newPrice *host.Balance) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	return transact(func(ev *eventList) error {
		owner, err := isOwner(id, seller)
		if nil != err {
			return err
		}
		if !owner {
			return fault.ErrNotKittyOwner
		}
		return exchange(id, seller, nil, newPrice, ev)
	})
}

// BuyKitty - purchase a listed kitty at the given bid
func BuyKitty(buyer *account.Account, id ID, bidPrice host.Balance) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	return transact(func(ev *eventList) error {
		owner, err := isOwner(id, buyer)
		if nil != err {
			return err
		}
		if owner {
			return fault.ErrBuyerIsKittyOwner
		}
		bid := bidPrice
		return exchange(id, buyer, nil, &bid, ev)
	})
}

// Transfer - send a kitty to another account, clearing any listing
func Transfer(from *account.Account, to *account.Account, id ID) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	if from.Equals(to) {
		return fault.ErrTransferToSelf
	}

	return transact(func(ev *eventList) error {
		return exchange(id, from, to, nil, ev)
	})
}

// BreedKitty - breed two kitties owned by the same account
func BreedKitty(owner *account.Account, parentA ID, parentB ID) (ID, error) {
	if err := ensureInitialised(); nil != err {
		return 0, err
	}

	newID := ID(0)
	err := transact(func(ev *eventList) error {
		ownsA, err := isOwner(parentA, owner)
		if nil != err {
			return err
		}
		if !ownsA {
			return fault.ErrNotKittyOwner
		}
		ownsB, err := isOwner(parentB, owner)
		if nil != err {
			return err
		}
		if !ownsB {
			return fault.ErrNotKittyOwner
		}

		dna, err := breedDna(parentA, parentB)
		if nil != err {
			return err
		}

		id, err := mint(owner, &dna, nil)
		if nil != err {
			return err
		}
		newID = id
		ev.add(Bred{
			Owner:   owner,
			ParentA: parentA,
			ParentB: parentB,
			KittyID: id,
		})
		return nil
	})
	if nil != err {
		return 0, err
	}
	return newID, nil
}
