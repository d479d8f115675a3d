// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - the all-or-nothing envelope around state mutations
//
// only one transaction can be open at a time; the dispatch model is
// single threaded so this is a safety net, not a scheduler
type Transaction interface {
	Begin() error
	Commit() error
	Abort()
	InUse() bool
}

// TransactionImpl - concrete transaction over the database access
type TransactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		access: access,
	}
}

// Begin - open the transaction
func (t *TransactionImpl) Begin() error {
	return t.access.Begin()
}

// Commit - apply every pending mutation atomically
func (t *TransactionImpl) Commit() error {
	return t.access.Commit()
}

// Abort - discard every pending mutation
func (t *TransactionImpl) Abort() {
	t.access.Abort()
}

// InUse - is the transaction open
func (t *TransactionImpl) InUse() bool {
	return t.access.InUse()
}
