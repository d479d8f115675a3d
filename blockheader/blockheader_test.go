// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockheader_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/blockheader"
	"github.com/bitmark-inc/kittyd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test-index.leveldb"
)

func TestMain(m *testing.M) {
	if err := setup(); nil != err {
		os.Exit(1)
	}
	result := m.Run()
	teardown()
	os.Exit(result)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup() error {
	removeFiles()
	os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	if err := storage.Initialise(databaseFileName); nil != err {
		return err
	}
	return blockheader.Initialise(storage.Pool.Counters)
}

func teardown() {
	_ = blockheader.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestAdvance(t *testing.T) {
	start := blockheader.Height()

	height, err := blockheader.Advance()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, start+1, height, "wrong height")
	assert.Equal(t, height, blockheader.Height(), "cached height differs")

	// the clock reads the same height
	assert.Equal(t, height, blockheader.Clock().Number(), "wrong clock reading")
}

func TestHeightPersists(t *testing.T) {
	height, err := blockheader.Advance()
	assert.Nil(t, err, "wrong error")

	// restarting the package reloads the persisted value
	err = blockheader.Finalise()
	assert.Nil(t, err, "wrong error")
	err = blockheader.Initialise(storage.Pool.Counters)
	assert.Nil(t, err, "wrong error")

	assert.Equal(t, height, blockheader.Height(), "height lost on restart")

	stored, _ := storage.Pool.Counters.GetN([]byte("height"))
	assert.Equal(t, uint64(height), stored, "wrong persisted height")
}
