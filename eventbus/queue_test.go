// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package eventbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/eventbus"
)

func TestDrainPreservesOrder(t *testing.T) {
	bus := eventbus.New()

	bus.Emit("first")
	bus.Emit("second")
	bus.Emit("third")

	events := bus.Drain()
	assert.Equal(t, 3, len(events), "wrong event count")
	assert.Equal(t, "first", events[0], "wrong order")
	assert.Equal(t, "second", events[1], "wrong order")
	assert.Equal(t, "third", events[2], "wrong order")

	assert.Equal(t, 0, len(bus.Drain()), "drain left events behind")
}

func TestChan(t *testing.T) {
	bus := eventbus.New()
	bus.Emit(42)

	select {
	case event := <-bus.Chan():
		assert.Equal(t, 42, event, "wrong event")
	default:
		t.Fatal("no event queued")
	}
}

func TestRecorder(t *testing.T) {
	r := &eventbus.Recorder{}
	r.Emit("one")
	r.Emit("two")

	events := r.Events()
	assert.Equal(t, 2, len(events), "wrong event count")
	assert.Equal(t, "one", events[0], "wrong order")

	r.Reset()
	assert.Equal(t, 0, len(r.Events()), "reset kept events")
}
