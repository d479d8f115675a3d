// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the Lua configuration file
//
// The file is a Lua chunk whose final value is a table; the table is
// mapped onto the Configuration structure below.  Paths inside the
// file are taken relative to data_directory.
package configuration

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/kitty"
)

// basic defaults (directories and files are relative to the "data_directory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "kitty.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "kittyd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultPledge         = 10
	defaultMaxKittyOwned  = 9999
	defaultMaxClaimLength = 64
	defaultEntropySeed    = "kitty-registry"
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory"`
	Name      string `gluamapper:"name"`
}

// RegistryType - tunable limits of the registries
//
// nodes sharing one chain must agree on the entropy seed or their
// derived dna values diverge
type RegistryType struct {
	Pledge         uint64 `gluamapper:"pledge"`
	MaxKittyOwned  uint32 `gluamapper:"max_kitty_owned"`
	MaxClaimLength uint32 `gluamapper:"max_claim_length"`
	EntropySeed    string `gluamapper:"entropy_seed"`
}

// GenesisKittyType - one kitty from the genesis table
//
// owner is a base58 account, dna is 32 hex digits
type GenesisKittyType struct {
	Owner  string `gluamapper:"owner"`
	Dna    string `gluamapper:"dna"`
	Gender string `gluamapper:"gender"`
}

// EndowmentType - an initial free balance from the genesis table
type EndowmentType struct {
	Owner  string `gluamapper:"owner"`
	Amount uint64 `gluamapper:"amount"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory"`
	PidFile       string       `gluamapper:"pidfile"`
	Database      DatabaseType `gluamapper:"database"`

	Registry   RegistryType         `gluamapper:"registry"`
	Genesis    []GenesisKittyType   `gluamapper:"genesis"`
	Endowments []EndowmentType      `gluamapper:"endowments"`
	Logging    logger.Configuration `gluamapper:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Registry: RegistryType{
			Pledge:         defaultPledge,
			MaxKittyOwned:  defaultMaxKittyOwned,
			MaxClaimLength: defaultMaxClaimLength,
			EntropySeed:    defaultEntropySeed,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := parseLuaConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if the database name is not a simple file name
	switch filepath.Dir(options.Database.Name) {
	case "", ".":
		options.Database.Name = ensureAbsolute(options.Database.Directory, options.Database.Name)
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Database.Name)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0o700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// parseLuaConfigurationFile - run the Lua chunk and map its result
//
// the global "arg" table carries the configuration file name as
// arg[0] so the chunk can locate files beside itself
func parseLuaConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return err
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	return mapper.Map(L.Get(L.GetTop()).(*lua.LTable), config)
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// Parameters - the registry limits in their runtime form
func (c *Configuration) Parameters() host.Parameters {
	return host.Parameters{
		Pledge:         host.Balance(c.Registry.Pledge),
		MaxKittyOwned:  c.Registry.MaxKittyOwned,
		MaxClaimLength: c.Registry.MaxClaimLength,
	}
}

// GenesisKitties - decode the genesis table into mintable records
func (c *Configuration) GenesisKitties() ([]kitty.GenesisKitty, error) {
	kitties := make([]kitty.GenesisKitty, 0, len(c.Genesis))

	for i, g := range c.Genesis {
		owner, err := account.AccountFromBase58(g.Owner)
		if nil != err {
			return nil, fmt.Errorf("genesis[%d]: owner: %s", i, err)
		}

		dna, err := hex.DecodeString(g.Dna)
		if nil != err {
			return nil, fmt.Errorf("genesis[%d]: dna: %s", i, err)
		}
		if kitty.DnaLength != len(dna) {
			return nil, fmt.Errorf("genesis[%d]: dna: %s", i, fault.ErrInvalidDnaLength)
		}

		gender, err := kitty.GenderFromString(g.Gender)
		if nil != err {
			return nil, fmt.Errorf("genesis[%d]: gender: %s", i, err)
		}

		record := kitty.GenesisKitty{
			Owner:  owner,
			Gender: gender,
		}
		copy(record.DNA[:], dna)
		kitties = append(kitties, record)
	}
	return kitties, nil
}

// Endowment - one decoded initial balance
type Endowment struct {
	Owner  *account.Account
	Amount host.Balance
}

// InitialBalances - decode the endowments table
func (c *Configuration) InitialBalances() ([]Endowment, error) {
	endowments := make([]Endowment, 0, len(c.Endowments))

	for i, e := range c.Endowments {
		owner, err := account.AccountFromBase58(e.Owner)
		if nil != err {
			return nil, fmt.Errorf("endowments[%d]: owner: %s", i, err)
		}
		endowments = append(endowments, Endowment{
			Owner:  owner,
			Amount: host.Balance(e.Amount),
		})
	}
	return endowments, nil
}
