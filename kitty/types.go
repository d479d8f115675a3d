// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"encoding/binary"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
)

// ID - monotonically assigned kitty identifier
type ID uint64

// DnaLength - bytes in a dna fingerprint
const DnaLength = 16

// Bytes - the storage key form of an id
func (id ID) Bytes() []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, uint64(id))
	return buffer
}

// IDFromBytes - recover an id from its storage key form
func IDFromBytes(buffer []byte) (ID, error) {
	if 8 != len(buffer) {
		return 0, fault.ErrInvalidKittyRecord
	}
	return ID(binary.BigEndian.Uint64(buffer)), nil
}

// Gender - tagged gender variant
type Gender byte

// gender values
const (
	Male Gender = iota
	Female
)

// String - printable gender
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "invalid"
	}
}

// GenderFromString - parse a printable gender
func GenderFromString(s string) (Gender, error) {
	switch s {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	default:
		return Male, fault.ErrInvalidGender
	}
}

// Kitty - the full record of one token
//
// a nil Price means the kitty is not for sale; Deposit is the balance
// currently reserved on Owner backing this token
type Kitty struct {
	DNA     [DnaLength]byte
	Price   *host.Balance
	Gender  Gender
	Owner   *account.Account
	Deposit host.Balance
}

// packed record layout:
//   dna[16] gender[1] flags[1] price[8] deposit[8] owner[32]
const (
	flagHasPrice = 0x01

	packedLength = DnaLength + 1 + 1 + 8 + 8 + account.PublicKeySize
)

// Pack - serialise the record for storage
func (k *Kitty) Pack() []byte {
	buffer := make([]byte, packedLength)
	n := copy(buffer, k.DNA[:])
	buffer[n] = byte(k.Gender)
	n += 1
	if nil != k.Price {
		buffer[n] = flagHasPrice
		binary.BigEndian.PutUint64(buffer[n+1:n+9], uint64(*k.Price))
	}
	n += 9
	binary.BigEndian.PutUint64(buffer[n:n+8], uint64(k.Deposit))
	n += 8
	copy(buffer[n:], k.Owner.Bytes())
	return buffer
}

// UnpackKitty - deserialise a stored record
func UnpackKitty(buffer []byte) (*Kitty, error) {
	if packedLength != len(buffer) {
		return nil, fault.ErrInvalidKittyRecord
	}

	k := &Kitty{}
	n := copy(k.DNA[:], buffer)

	gender := Gender(buffer[n])
	if Male != gender && Female != gender {
		return nil, fault.ErrInvalidKittyRecord
	}
	k.Gender = gender
	n += 1

	if 0 != buffer[n]&flagHasPrice {
		price := host.Balance(binary.BigEndian.Uint64(buffer[n+1 : n+9]))
		k.Price = &price
	}
	n += 9

	k.Deposit = host.Balance(binary.BigEndian.Uint64(buffer[n : n+8]))
	n += 8

	owner, err := account.AccountFromBytes(buffer[n:])
	if nil != err {
		return nil, fault.ErrInvalidKittyRecord
	}
	k.Owner = owner

	return k, nil
}
