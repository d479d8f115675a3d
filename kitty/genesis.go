// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"github.com/bitmark-inc/kittyd/account"
)

// GenesisKitty - one kitty to mint when the chain is assembled
//
// dna and gender are required at genesis; there is no entropy to
// derive them from yet
type GenesisKitty struct {
	Owner  *account.Account
	DNA    [DnaLength]byte
	Gender Gender
}

// Genesis - mint the configured kitties in order
//
// ids are assigned from zero following list order; any failure aborts
// the build and is returned to the caller
func Genesis(kitties []GenesisKitty) error {
	if err := ensureInitialised(); nil != err {
		return err
	}

	for _, g := range kitties {
		g := g
		err := transact(func(ev *eventList) error {
			_, err := mint(g.Owner, &g.DNA, &g.Gender)
			return err
		})
		if nil != err {
			return err
		}
	}

	globalData.log.Infof("genesis minted %d kitties", len(kitties))
	return nil
}
