// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
)

// read-side queries used by the commands; no state is mutated here

// Info - the full record of one kitty
func Info(id ID) (*Kitty, error) {
	if err := ensureInitialised(); nil != err {
		return nil, err
	}
	return fetch(id)
}

// Count - the next id to assign
func Count() (ID, error) {
	if err := ensureInitialised(); nil != err {
		return 0, err
	}
	count, _ := globalData.d.Counters.GetN(countKey)
	return ID(count), nil
}

// Scan - iterate all committed kitties in id order
func Scan(callback func(id ID, k *Kitty) bool) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	globalData.d.Kitties.Scan(func(key []byte, value []byte) bool {
		id, err := IDFromBytes(key)
		logger.PanicIfError("kitty.Scan", err)
		k, err := UnpackKitty(value)
		logger.PanicIfError("kitty.Scan", err)
		return callback(id, k)
	})
	return nil
}

// OwnedBy - ids of all committed kitties owned by the account
//
// answered from the owner index, without unpacking full records
func OwnedBy(owner *account.Account) ([]ID, error) {
	if err := ensureInitialised(); nil != err {
		return nil, err
	}

	ids := []ID(nil)
	globalData.d.Owners.Scan(func(key []byte, value []byte) bool {
		if bytes.Equal(value, owner.Bytes()) {
			id, err := IDFromBytes(key)
			logger.PanicIfError("kitty.OwnedBy", err)
			ids = append(ids, id)
		}
		return true
	})
	return ids, nil
}
