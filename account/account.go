// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittyd/fault"
)

// miscellaneous constants
const (
	PublicKeySize  = ed25519.PublicKeySize
	checksumLength = 4
)

// Account - the identity of a ledger account
//
// the registry cores treat this as an opaque identity; only the host
// side ever signs or verifies with the underlying key
type Account struct {
	PublicKey []byte
}

// Signature - raw signature bytes
type Signature []byte

// New - create an account from a public key
func New(publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Account{
		PublicKey: publicKey,
	}, nil
}

// Bytes - byte slice for encoded key
func (account *Account) Bytes() []byte {
	buffer := make([]byte, len(account.PublicKey))
	copy(buffer, account.PublicKey)
	return buffer
}

// Equals - compare two accounts for identity
func (account *Account) Equals(other *Account) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(account.PublicKey, other.PublicKey)
}

// CheckSignature - check the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - base58 encoding of the key with checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 JSON form to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}

// AccountFromBase58 - decode the base58 checksummed form of an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {

	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return nil, fault.ErrCannotDecodeAccount
	}

	if len(accountDecoded) != ed25519.PublicKeySize+checksumLength {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := accountDecoded[:ed25519.PublicKeySize]

	checksum := sha3.Sum256(publicKey)
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[ed25519.PublicKeySize:]) {
		return nil, fault.ErrAccountChecksum
	}

	return &Account{
		PublicKey: publicKey,
	}, nil
}

// AccountFromBytes - rebuild an account from its stored byte form
func AccountFromBytes(buffer []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(buffer) {
		return nil, fault.ErrCannotDecodeAccount
	}
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, buffer)
	return &Account{
		PublicKey: publicKey,
	}, nil
}
