// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// ExistsError - declarations to allow for different classes of errors
type ExistsError GenericError

// InvalidError - declarations to allow for different classes of errors
type InvalidError GenericError

// LengthError - declarations to allow for different classes of errors
type LengthError GenericError

// NotFoundError - declarations to allow for different classes of errors
type NotFoundError GenericError

// ProcessError - declarations to allow for different classes of errors
type ProcessError GenericError

// RecordError - declarations to allow for different classes of errors
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountChecksum          = InvalidError("account checksum mismatch")
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrBuyerIsKittyOwner        = InvalidError("buyer already owns this kitty")
	ErrCannotDecodeAccount      = RecordError("cannot decode account")
	ErrClaimAlreadyExists       = ExistsError("claim already exists")
	ErrClaimDoesNotExist        = NotFoundError("claim does not exist")
	ErrClaimTooLong             = LengthError("claim exceeds maximum length")
	ErrInsufficientBalance      = InvalidError("insufficient balance")
	ErrInvalidDnaLength         = LengthError("dna is not 16 bytes")
	ErrInvalidGender            = InvalidError("gender is not male or female")
	ErrInvalidKittyRecord       = RecordError("invalid kitty record")
	ErrInvalidKeyLength         = LengthError("key length is invalid")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrKittyBidPriceTooLow      = InvalidError("bid price is below the asking price")
	ErrKittyCountOverflow       = ProcessError("kitty count overflow")
	ErrKittyDoesNotExist        = NotFoundError("kitty does not exist")
	ErrKittyNotForSale          = InvalidError("kitty is not for sale")
	ErrNotClaimOwner            = InvalidError("not the owner of this claim")
	ErrNotEnoughBalance         = InvalidError("not enough balance to buy")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrNotKittyOwner            = InvalidError("not the owner of this kitty")
	ErrTooManyKittiesOwned      = InvalidError("account owns too many kitties")
	ErrTransactionAlreadyInUse  = ProcessError("transaction already in use")
	ErrTransferToSelf           = InvalidError("transfer to current owner")
	ErrTransferWouldReapAccount = InvalidError("transfer would reap account")
	ErrWrongDatabaseVersion     = ProcessError("wrong database version")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
