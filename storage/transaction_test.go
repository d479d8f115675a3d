// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/storage"
)

func TestTransactionExclusive(t *testing.T) {
	trx := beginTransaction(t)
	assert.True(t, trx.InUse(), "open transaction not in use")

	err := trx.Begin()
	assert.Equal(t, fault.ErrTransactionAlreadyInUse, err, "wrong error")

	trx.Abort()
	assert.False(t, trx.InUse(), "aborted transaction still in use")

	// reusable after abort
	err = trx.Begin()
	assert.Nil(t, err, "wrong error")
	trx.Abort()
}

func TestTransactionCommitReleases(t *testing.T) {
	trx := beginTransaction(t)
	storage.Pool.TestData.Put([]byte("release"), []byte{9})
	err := trx.Commit()
	assert.Nil(t, err, "wrong error")
	assert.False(t, trx.InUse(), "committed transaction still in use")

	err = trx.Begin()
	assert.Nil(t, err, "wrong error")
	trx.Abort()
}
