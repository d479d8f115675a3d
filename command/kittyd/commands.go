// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/blockheader"
	"github.com/bitmark-inc/kittyd/configuration"
	"github.com/bitmark-inc/kittyd/eventbus"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ledger"
	"github.com/bitmark-inc/kittyd/poe"
	"github.com/bitmark-inc/kittyd/storage"
)

const identityPrivateKeyFilename = "kitty.private"

// setup command handler
//
// commands that cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "identity", "id":
		privateKeyFilename := identityPrivateKeyFilename
		if len(arguments) >= 1 && "" != arguments[0] {
			privateKeyFilename = arguments[0]
		}

		if _, err := os.Stat(privateKeyFilename); nil == err {
			fmt.Printf("generate private key: %q error: file already exists\n", privateKeyFilename)
			exitwithstatus.Exit(1)
		}

		publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
		if nil != err {
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		if err := ioutil.WriteFile(privateKeyFilename, []byte(hex.EncodeToString(privateKey)+"\n"), 0600); nil != err {
			os.Remove(privateKeyFilename)
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		acc, err := account.New(publicKey)
		if nil != err {
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated private key: %q\n", privateKeyFilename)
		fmt.Printf("account: %s\n", acc)

	case "genesis", "advance", "stats", "list", "balance", "proof":
		return false // defer processing until the database is open

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %s\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                               (h)      - display this message\n")
		fmt.Printf("  version                            (v)      - display version\n")
		fmt.Printf("  gen-identity [FILE]                (id)     - generate an account key pair\n")
		fmt.Printf("\ncommands requiring the configuration file:\n\n")
		fmt.Printf("  genesis                                     - build the genesis state: endowments then kitties\n")
		fmt.Printf("  advance [N]                                 - step the chain height by N blocks (default 1)\n")
		fmt.Printf("  stats                                       - show chain height and registry counters\n")
		fmt.Printf("  list                                        - list all kitties\n")
		fmt.Printf("  balance ACCOUNT                             - show free and reserved balance\n")
		fmt.Printf("  proof CLAIM-HEX                             - show owner and block of a claim\n")
		exitwithstatus.Exit(0)
	}

	// indicate processed
	return true
}

// data command handler
//
// the store is open; errors from here are fatal
func processDataCommand(log *logger.L, arguments []string, conf *configuration.Configuration, bus *eventbus.Bus) {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {
	case "genesis":
		count, err := kitty.Count()
		if nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}
		if 0 != count {
			exitwithstatus.Message("genesis error: registry already holds %d kitties", count)
		}

		endowments, err := conf.InitialBalances()
		if nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}

		trx := storage.TransactionHandle()
		if err := trx.Begin(); nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}
		for _, e := range endowments {
			ledger.Endow(e.Owner, e.Amount)
			log.Infof("endow: %s with: %d", e.Owner, e.Amount)
		}
		if err := trx.Commit(); nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}

		kitties, err := conf.GenesisKitties()
		if nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}
		if err := kitty.Genesis(kitties); nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}

		fmt.Printf("endowed %d accounts, minted %d kitties\n", len(endowments), len(kitties))

	case "advance":
		steps := 1
		if len(arguments) >= 1 {
			n, err := strconv.Atoi(arguments[0])
			if nil != err || n < 1 {
				exitwithstatus.Message("advance error: invalid step count: %q", arguments[0])
			}
			steps = n
		}
		height := blockheader.Height()
		for i := 0; i < steps; i += 1 {
			h, err := blockheader.Advance()
			if nil != err {
				exitwithstatus.Message("advance error: %s", err)
			}
			height = h
		}
		fmt.Printf("height: %d\n", height)

	case "stats":
		count, err := kitty.Count()
		if nil != err {
			exitwithstatus.Message("stats error: %s", err)
		}

		males := 0
		females := 0
		forSale := 0
		err = kitty.Scan(func(id kitty.ID, k *kitty.Kitty) bool {
			if kitty.Male == k.Gender {
				males += 1
			} else {
				females += 1
			}
			if nil != k.Price {
				forSale += 1
			}
			return true
		})
		if nil != err {
			exitwithstatus.Message("stats error: %s", err)
		}

		fmt.Printf("height:   %d\n", blockheader.Height())
		fmt.Printf("kitties:  %d  (male: %d  female: %d  for sale: %d)\n", count, males, females, forSale)

	case "list":
		err := kitty.Scan(func(id kitty.ID, k *kitty.Kitty) bool {
			price := "-"
			if nil != k.Price {
				price = fmt.Sprintf("%d", *k.Price)
			}
			fmt.Printf("%d: dna: %x  gender: %s  price: %s  deposit: %d  owner: %s\n",
				id, k.DNA, k.Gender, price, k.Deposit, k.Owner)
			return true
		})
		if nil != err {
			exitwithstatus.Message("list error: %s", err)
		}

	case "balance":
		if 1 != len(arguments) {
			exitwithstatus.Message("balance error: exactly one account argument is required")
		}
		acc, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("balance error: %s", err)
		}
		fmt.Printf("free:     %d\n", ledger.FreeBalance(acc))
		fmt.Printf("reserved: %d\n", ledger.ReservedBalance(acc))

	case "proof":
		if 1 != len(arguments) {
			exitwithstatus.Message("proof error: exactly one hex claim argument is required")
		}
		claim, err := hex.DecodeString(arguments[0])
		if nil != err {
			exitwithstatus.Message("proof error: %s", err)
		}
		owner, since, err := poe.Proof(claim)
		if nil != err {
			exitwithstatus.Message("proof error: %s", err)
		}
		fmt.Printf("owner: %s\nsince: %d\n", owner, since)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	for _, event := range bus.Drain() {
		log.Infof("event: %#v", event)
	}
}
