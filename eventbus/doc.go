// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package eventbus - queue of events emitted by the registry cores
//
// Each successful dispatch appends its events here in execution order;
// the host drains the channel and appends to the block's event log.
package eventbus
