// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/blockheader"
	"github.com/bitmark-inc/kittyd/configuration"
	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/eventbus"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ledger"
	"github.com/bitmark-inc/kittyd/poe"
	"github.com/bitmark-inc/kittyd/storage"
)

// registry - the opened stack handed to each action
type registry struct {
	conf *configuration.Configuration
	bus  *eventbus.Bus
	m    *metadata
}

// withRegistry - open the whole stack, run the action, close in reverse
//
// the chain height is stepped once per invocation before the action
// runs, so every command executes at a fresh block
func withRegistry(c *cli.Context, advance bool, action func(r *registry) error) error {

	m := &metadata{
		file:    c.GlobalString("config"),
		verbose: c.GlobalBool("verbose"),
		e:       c.App.ErrWriter,
		w:       c.App.Writer,
	}
	if "" == m.file {
		return fmt.Errorf("config file is required")
	}

	conf, err := configuration.GetConfiguration(m.file)
	if nil != err {
		return err
	}

	if err := logger.Initialise(conf.Logging); nil != err {
		return err
	}
	defer logger.Finalise()

	if err := storage.Initialise(conf.Database.Name); nil != err {
		return err
	}
	defer storage.Finalise()

	if err := ledger.Initialise(storage.Pool.Accounts); nil != err {
		return err
	}
	defer ledger.Finalise()

	if err := blockheader.Initialise(storage.Pool.Counters); nil != err {
		return err
	}
	defer blockheader.Finalise()

	bus := eventbus.New()
	source := entropy.New(blockheader.Clock(), []byte(conf.Registry.EntropySeed))

	err = kitty.Initialise(kitty.Dependencies{
		Kitties:  storage.Pool.Kitties,
		Owners:   storage.Pool.KittyOwners,
		Counters: storage.Pool.Counters,
		Random:   source,
		Balances: ledger.Get(),
		Events:   bus,
	}, conf.Parameters())
	if nil != err {
		return err
	}
	defer kitty.Finalise()

	err = poe.Initialise(poe.Dependencies{
		Proofs: storage.Pool.Proofs,
		Clock:  blockheader.Clock(),
		Events: bus,
	}, conf.Parameters().MaxClaimLength)
	if nil != err {
		return err
	}
	defer poe.Finalise()

	if advance {
		if _, err := blockheader.Advance(); nil != err {
			return err
		}
	}

	r := &registry{
		conf: conf,
		bus:  bus,
		m:    m,
	}
	if err := action(r); nil != err {
		return err
	}

	printEvents(r)
	return nil
}

// identity - the caller account recovered from the private key file
func identity(c *cli.Context) (*account.Account, error) {
	fileName := c.GlobalString("identity")
	if "" == fileName {
		return nil, fmt.Errorf("identity file is required")
	}

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if nil != err {
		return nil, err
	}
	if ed25519.PrivateKeySize != len(keyBytes) {
		return nil, fmt.Errorf("identity: %q is not a private key file", fileName)
	}

	privateKey := ed25519.PrivateKey(keyBytes)
	return account.New(privateKey.Public().(ed25519.PublicKey))
}

// parse a base58 receiving account
func receiver(c *cli.Context) (*account.Account, error) {
	text := c.String("receiver")
	if "" == text {
		return nil, fmt.Errorf("receiver account is required")
	}
	return account.AccountFromBase58(text)
}

// the account flag if given, otherwise the identity
func receiverOrIdentity(c *cli.Context) (*account.Account, error) {
	if text := c.String("account"); "" != text {
		return account.AccountFromBase58(text)
	}
	return identity(c)
}

// parse the hex claim argument
func claimArgument(c *cli.Context) ([]byte, error) {
	text := c.String("claim")
	if "" == text {
		return nil, fmt.Errorf("claim is required")
	}
	return hex.DecodeString(text)
}

// printEvents - report what the operation emitted
func printEvents(r *registry) {
	for _, event := range r.bus.Drain() {
		switch e := event.(type) {
		case kitty.Created:
			fmt.Fprintf(r.m.w, "event: created kitty: %d owner: %s\n", e.KittyID, e.Owner)
		case kitty.PriceSet:
			if nil == e.Price {
				fmt.Fprintf(r.m.w, "event: kitty: %d withdrawn from sale\n", e.KittyID)
			} else {
				fmt.Fprintf(r.m.w, "event: kitty: %d priced at: %d\n", e.KittyID, *e.Price)
			}
		case kitty.Transferred:
			fmt.Fprintf(r.m.w, "event: kitty: %d transferred: %s → %s\n", e.KittyID, e.From, e.To)
		case kitty.Bought:
			fmt.Fprintf(r.m.w, "event: kitty: %d bought by: %s from: %s for: %d\n", e.KittyID, e.Buyer, e.Seller, e.BidPrice)
		case kitty.Bred:
			fmt.Fprintf(r.m.w, "event: kitty: %d bred from: %d and %d owner: %s\n", e.KittyID, e.ParentA, e.ParentB, e.Owner)
		case poe.ClaimCreated:
			fmt.Fprintf(r.m.w, "event: claim: %x created by: %s\n", e.Claim, e.Owner)
		case poe.ClaimTransferred:
			fmt.Fprintf(r.m.w, "event: claim: %x transferred: %s → %s\n", e.Claim, e.From, e.To)
		case poe.ClaimRevoked:
			fmt.Fprintf(r.m.w, "event: claim: %x revoked by: %s\n", e.Claim, e.Owner)
		default:
			fmt.Fprintf(r.m.w, "event: %#v\n", e)
		}
	}
}
