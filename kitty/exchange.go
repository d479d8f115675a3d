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

// exchange - the unified mutator behind transfer, price setting and
// purchase
//
// the mode is selected by whether the actor currently owns the kitty
// and whether a destination account is supplied:
//
//   owner  + to      → direct transfer
//   owner  + no to   → set/clear the asking price
//   not owner        → purchase at the supplied bid
//
// runs inside the caller's transaction; on error the envelope discards
// every mutation made here, including balance movements
func exchange(id ID, actor *account.Account, to *account.Account, price *host.Balance, ev *eventList) error {

	k, err := fetch(id)
	if nil != err {
		return err
	}

	if k.Owner.Equals(actor) {

		if nil != to {
			// direct transfer: the reserved deposit follows the token
			if actor.Equals(to) {
				return fault.ErrTransferToSelf
			}

			err := globalData.d.Balances.RepatriateReserved(k.Owner, to, k.Deposit, host.Reserved)
			if nil != err {
				return err
			}

			k.Owner = to
			k.Price = nil
			globalData.d.Owners.Put(id.Bytes(), to.Bytes())
			globalData.d.Kitties.Put(id.Bytes(), k.Pack())

			ev.add(Transferred{
				From:    actor,
				To:      to,
				KittyID: id,
			})
			return nil
		}

		// just change the price if to is absent
		k.Price = price
		globalData.d.Kitties.Put(id.Bytes(), k.Pack())

		ev.add(PriceSet{
			Owner:   actor,
			KittyID: id,
			Price:   price,
		})
		return nil
	}

	// purchase: a non-owner without a bid has taken an owner-only path
	if nil == price {
		return fault.ErrNotKittyOwner
	}
	bid := *price

	if nil == k.Price {
		return fault.ErrKittyNotForSale
	}
	if *k.Price > bid {
		return fault.ErrKittyBidPriceTooLow
	}

	seller := k.Owner

	// the deposit moves to the buyer before the bid is paid; a failure
	// from here on rolls the repatriation back with the transaction
	err = globalData.d.Balances.RepatriateReserved(seller, actor, k.Deposit, host.Reserved)
	if nil != err {
		return err
	}

	if globalData.d.Balances.FreeBalance(actor) < bid {
		return fault.ErrNotEnoughBalance
	}

	err = globalData.d.Balances.Transfer(actor, seller, bid, host.KeepAlive)
	if nil != err {
		return err
	}

	k.Owner = actor
	k.Price = nil
	globalData.d.Owners.Put(id.Bytes(), actor.Bytes())
	globalData.d.Kitties.Put(id.Bytes(), k.Pack())

	ev.add(Bought{
		Buyer:    actor,
		Seller:   seller,
		KittyID:  id,
		BidPrice: bid,
	})
	return nil
}
