// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/configuration"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/kitty"
)

const testingDirName = "testing"

// a syntactically valid owner for the fixtures
func testAccount(t *testing.T, fill byte) *account.Account {
	t.Helper()
	key := make([]byte, account.PublicKeySize)
	key[0] = fill
	acc, err := account.New(key)
	if nil != err {
		t.Fatalf("cannot make test account: %s", err)
	}
	return acc
}

func writeFixture(t *testing.T, name string, content string) string {
	t.Helper()
	os.MkdirAll(testingDirName, 0o700)

	fileName := filepath.Join(testingDirName, name)
	if err := ioutil.WriteFile(fileName, []byte(content), 0o600); nil != err {
		t.Fatalf("cannot write fixture: %s", err)
	}
	return fileName
}

func TestGetConfiguration(t *testing.T) {
	defer os.RemoveAll(testingDirName)
	owner := testAccount(t, 0x11)

	content := fmt.Sprintf(`
local M = {}

M.data_directory = "."

M.database = {
    name = "registry.leveldb",
}

M.registry = {
    pledge = 25,
    max_kitty_owned = 50,
    max_claim_length = 48,
}

M.genesis = {
    {
        owner = "%s",
        dna = "000102030405060708090a0b0c0d0e0f",
        gender = "female",
    },
}

M.endowments = {
    { owner = "%s", amount = 1000 },
}

M.logging = {
    size = 65536,
    count = 5,
    levels = {
        DEFAULT = "error",
    },
}

return M
`, owner.String(), owner.String())

	fileName := writeFixture(t, "kittyd.conf", content)

	c, err := configuration.GetConfiguration(fileName)
	assert.Nil(t, err, "wrong error")

	assert.Equal(t, "registry.leveldb", filepath.Base(c.Database.Name), "wrong database name")
	assert.True(t, filepath.IsAbs(c.Database.Name), "database name not absolute")
	assert.True(t, filepath.IsAbs(c.Logging.Directory), "log directory not absolute")
	assert.Equal(t, 65536, c.Logging.Size, "wrong log size")
	assert.Equal(t, 5, c.Logging.Count, "wrong log count")
	assert.Equal(t, "error", c.Logging.Levels["DEFAULT"], "wrong log level")

	params := c.Parameters()
	assert.Equal(t, host.Balance(25), params.Pledge, "wrong pledge")
	assert.Equal(t, uint32(50), params.MaxKittyOwned, "wrong owned limit")
	assert.Equal(t, uint32(48), params.MaxClaimLength, "wrong claim limit")

	kitties, err := c.GenesisKitties()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 1, len(kitties), "wrong genesis count")
	assert.True(t, kitties[0].Owner.Equals(owner), "wrong genesis owner")
	assert.Equal(t, kitty.Female, kitties[0].Gender, "wrong genesis gender")
	assert.Equal(t, byte(0x0f), kitties[0].DNA[15], "wrong genesis dna")

	endowments, err := c.InitialBalances()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 1, len(endowments), "wrong endowment count")
	assert.Equal(t, host.Balance(1000), endowments[0].Amount, "wrong endowment amount")
}

func TestGetConfigurationDefaults(t *testing.T) {
	defer os.RemoveAll(testingDirName)
	content := `
local M = {}
M.data_directory = "."
return M
`
	fileName := writeFixture(t, "minimal.conf", content)

	c, err := configuration.GetConfiguration(fileName)
	assert.Nil(t, err, "wrong error")

	params := c.Parameters()
	assert.Equal(t, host.Balance(10), params.Pledge, "wrong default pledge")
	assert.Equal(t, uint32(64), params.MaxClaimLength, "wrong default claim limit")
	assert.Equal(t, "kitty.leveldb", filepath.Base(c.Database.Name), "wrong default database name")
	assert.Equal(t, 0, len(c.Genesis), "unexpected genesis entries")
}

func TestGetConfigurationBadGenesis(t *testing.T) {
	defer os.RemoveAll(testingDirName)
	owner := testAccount(t, 0x22)

	content := fmt.Sprintf(`
local M = {}
M.data_directory = "."
M.genesis = {
    { owner = "%s", dna = "00", gender = "female" },
}
return M
`, owner.String())

	fileName := writeFixture(t, "short-dna.conf", content)

	c, err := configuration.GetConfiguration(fileName)
	assert.Nil(t, err, "wrong error")

	_, err = c.GenesisKitties()
	assert.NotNil(t, err, "short dna accepted")

	content = `
local M = {}
M.data_directory = "."
M.genesis = {
    { owner = "not-an-account", dna = "000102030405060708090a0b0c0d0e0f", gender = "male" },
}
return M
`
	fileName = writeFixture(t, "bad-owner.conf", content)

	c, err = configuration.GetConfiguration(fileName)
	assert.Nil(t, err, "wrong error")

	_, err = c.GenesisKitties()
	assert.NotNil(t, err, "bad owner accepted")
}
