// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy - deterministic domain-separated randomness
//
// Not cryptographically unpredictable: the value is a pure function of
// the configured chain seed, the domain separator and the chain height,
// which is exactly the replay-determinism the registry cores require.
// A real chain host would substitute its own randomness beacon.
package entropy

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/kittyd/host"
)

// Source - host.Entropy over the chain height
type Source struct {
	clock host.Clock
	seed  []byte
}

// New - create an entropy source
//
// the seed fixes the entire sequence; two nodes configured with the
// same seed replay identical values
func New(clock host.Clock, seed []byte) *Source {
	s := &Source{
		clock: clock,
		seed:  make([]byte, len(seed)),
	}
	copy(s.seed, seed)
	return s
}

// Random - pseudo-random hash bound to a domain separator
func (s *Source) Random(domain []byte) ([32]byte, host.BlockNumber) {
	number := s.clock.Number()

	payload := make([]byte, 0, len(s.seed)+len(domain)+8)
	payload = append(payload, s.seed...)
	payload = append(payload, domain...)

	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, uint64(number))
	payload = append(payload, height...)

	return blake2b.Sum256(payload), number
}
