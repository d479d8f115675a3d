// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// Provides a number of prefix-keyed pools inside a single LevelDB
// database.  All writes are accumulated in a batch guarded by the
// package transaction; the batch is applied atomically by Commit or
// discarded by Abort, and a short-lived cache makes pending writes
// visible to reads issued inside the same transaction.
//
// Maintains LevelDB database of various things:
// - kitties and their denormalised owner index
// - monotonic counters (kitty count, chain height)
// - proof-of-existence claims
// - account balances for the standalone ledger
//
// User-controlled keys (the poe claims) are stored hashed:
// blake2b-128(key) followed by the key itself, so that an attacker
// cannot grind colliding key prefixes.
package storage
