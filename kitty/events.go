// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/host"
)

// events appended to the block event log by successful operations
//
// an operation that fails emits nothing

// Created - a new kitty was minted
type Created struct {
	Owner   *account.Account
	KittyID ID
}

// PriceSet - the asking price changed; nil means withdrawn from sale
type PriceSet struct {
	Owner   *account.Account
	KittyID ID
	Price   *host.Balance
}

// Transferred - direct ownership transfer
type Transferred struct {
	From    *account.Account
	To      *account.Account
	KittyID ID
}

// Bought - completed purchase
type Bought struct {
	Buyer    *account.Account
	Seller   *account.Account
	KittyID  ID
	BidPrice host.Balance
}

// Bred - two parents produced a child kitty
type Bred struct {
	Owner   *account.Account
	ParentA ID
	ParentB ID
	KittyID ID
}

// eventList - events buffered during a dispatch, flushed after commit
type eventList struct {
	events []interface{}
}

func (l *eventList) add(event interface{}) {
	l.events = append(l.events, event)
}

func (l *eventList) flush(sink host.Events) {
	if nil == sink {
		return
	}
	for _, event := range l.events {
		sink.Emit(event)
	}
	l.events = nil
}
