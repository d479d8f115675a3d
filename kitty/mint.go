// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/logger"
)

// entropy domain separators
var (
	genderDomain = []byte("gender")
	dnaDomain    = []byte("dna")
)

// fetch - load a kitty record
//
// a missing id is a caller error; a corrupt record is a database fault
func fetch(id ID) (*Kitty, error) {
	buffer := globalData.d.Kitties.Get(id.Bytes())
	if nil == buffer {
		return nil, fault.ErrKittyDoesNotExist
	}
	k, err := UnpackKitty(buffer)
	logger.PanicIfError("kitty.fetch", err)
	return k, nil
}

// isOwner - does the account own the kitty
func isOwner(id ID, acc *account.Account) (bool, error) {
	k, err := fetch(id)
	if nil != err {
		return false, err
	}
	return k.Owner.Equals(acc), nil
}

// genGender - derive a gender from host entropy
func genGender() Gender {
	random, _ := globalData.d.Random.Random(genderDomain)
	if 0 == random[0]%2 {
		return Male
	}
	return Female
}

// genDna - derive a fresh dna fingerprint
//
// canonical encoding: entropy hash followed by the big endian block
// number, digested to 128 bits
func genDna() [DnaLength]byte {
	random, number := globalData.d.Random.Random(dnaDomain)

	payload := make([]byte, 0, len(random)+8)
	payload = append(payload, random[:]...)
	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, uint64(number))
	payload = append(payload, height...)

	digest, err := blake2b.New(DnaLength, nil)
	logger.PanicIfError("kitty.genDna", err)
	_, _ = digest.Write(payload)

	dna := [DnaLength]byte{}
	copy(dna[:], digest.Sum(nil))
	return dna
}

// breedDna - combine two parents' dna
//
// a fresh seed selects, bit by bit, whether the child inherits from
// parent a (seed bit set) or parent b (seed bit clear)
func breedDna(parentA ID, parentB ID) ([DnaLength]byte, error) {
	kittyA, err := fetch(parentA)
	if nil != err {
		return [DnaLength]byte{}, err
	}
	kittyB, err := fetch(parentB)
	if nil != err {
		return [DnaLength]byte{}, err
	}

	dna := genDna()
	for i := 0; i < DnaLength; i += 1 {
		dna[i] = (dna[i] & kittyA.DNA[i]) | (^dna[i] & kittyB.DNA[i])
	}
	return dna, nil
}

// mint - create a kitty owned by owner
//
// reserves the pledge first: if the owner cannot back the token the
// whole operation fails before any record exists; the counter bump is
// overflow checked and precedes the two inserts
func mint(owner *account.Account, dna *[DnaLength]byte, gender *Gender) (ID, error) {

	deposit := globalData.params.Pledge
	if err := globalData.d.Balances.Reserve(owner, deposit); nil != err {
		return 0, err
	}

	k := &Kitty{
		Price:   nil,
		Owner:   owner,
		Deposit: deposit,
	}
	if nil != dna {
		k.DNA = *dna
	} else {
		k.DNA = genDna()
	}
	if nil != gender {
		k.Gender = *gender
	} else {
		k.Gender = genGender()
	}

	count, _ := globalData.d.Counters.GetN(countKey)
	next := count + 1
	if next < count {
		return 0, fault.ErrKittyCountOverflow
	}
	globalData.d.Counters.PutN(countKey, next)

	newID := ID(count)
	globalData.d.Owners.Put(newID.Bytes(), owner.Bytes())
	globalData.d.Kitties.Put(newID.Bytes(), k.Pack())

	return newID, nil
}
