// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package eventbus

import (
	"sync"
)

// internal constants
const (
	queueSize = 1000
)

// Bus - a buffered event queue
type Bus struct {
	queue chan interface{}
}

// New - create an event queue
func New() *Bus {
	return &Bus{
		queue: make(chan interface{}, queueSize),
	}
}

// Emit - queue an event
func (bus *Bus) Emit(event interface{}) {
	bus.queue <- event
}

// Chan - channel to read events from
func (bus *Bus) Chan() <-chan interface{} {
	return bus.queue
}

// Drain - remove and return all currently queued events
func (bus *Bus) Drain() []interface{} {
	events := []interface{}(nil)
loop:
	for {
		select {
		case event := <-bus.queue:
			events = append(events, event)
		default:
			break loop
		}
	}
	return events
}

// Recorder - an event sink that simply remembers everything emitted
//
// used by the package tests to assert on emitted events
type Recorder struct {
	sync.Mutex
	events []interface{}
}

// Emit - record an event
func (r *Recorder) Emit(event interface{}) {
	r.Lock()
	defer r.Unlock()
	r.events = append(r.events, event)
}

// Events - all recorded events in emission order
func (r *Recorder) Events() []interface{} {
	r.Lock()
	defer r.Unlock()
	events := make([]interface{}, len(r.events))
	copy(events, r.events)
	return events
}

// Reset - forget all recorded events
func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()
	r.events = nil
}
