// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package poe

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/host"
)

// ClaimCreated - a claim was registered
type ClaimCreated struct {
	Owner *account.Account
	Claim []byte
}

// ClaimTransferred - a claim changed owner
type ClaimTransferred struct {
	From  *account.Account
	To    *account.Account
	Claim []byte
}

// ClaimRevoked - a claim was removed by its owner
type ClaimRevoked struct {
	Owner *account.Account
	Claim []byte
}

// events gathered while a dispatch runs, delivered after commit
type eventList struct {
	events []interface{}
}

func (l *eventList) add(e interface{}) {
	l.events = append(l.events, e)
}

func (l *eventList) flush(sink host.Events) {
	if nil == sink {
		return
	}
	for _, e := range l.events {
		sink.Emit(e)
	}
	l.events = nil
}
