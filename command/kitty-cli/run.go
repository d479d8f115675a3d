// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ledger"
	"github.com/bitmark-inc/kittyd/poe"
)

func runCreate(c *cli.Context) error {
	owner, err := identity(c)
	if nil != err {
		return err
	}

	return withRegistry(c, true, func(r *registry) error {
		id, err := kitty.CreateKitty(owner)
		if nil != err {
			return err
		}
		fmt.Fprintf(r.m.w, "kitty: %d\n", id)
		return nil
	})
}

func runSell(c *cli.Context) error {
	seller, err := identity(c)
	if nil != err {
		return err
	}
	id := kitty.ID(c.Uint64("kitty"))

	var price *host.Balance
	if text := c.String("price"); "" != text {
		n, err := strconv.ParseUint(text, 10, 64)
		if nil != err {
			return fmt.Errorf("invalid price: %q", text)
		}
		p := host.Balance(n)
		price = &p
	}

	return withRegistry(c, true, func(r *registry) error {
		return kitty.SellKitty(seller, id, price)
	})
}

func runBuy(c *cli.Context) error {
	buyer, err := identity(c)
	if nil != err {
		return err
	}
	id := kitty.ID(c.Uint64("kitty"))
	bid := host.Balance(c.Uint64("price"))

	return withRegistry(c, true, func(r *registry) error {
		return kitty.BuyKitty(buyer, id, bid)
	})
}

func runTransfer(c *cli.Context) error {
	from, err := identity(c)
	if nil != err {
		return err
	}
	to, err := receiver(c)
	if nil != err {
		return err
	}
	id := kitty.ID(c.Uint64("kitty"))

	return withRegistry(c, true, func(r *registry) error {
		return kitty.Transfer(from, to, id)
	})
}

func runBreed(c *cli.Context) error {
	owner, err := identity(c)
	if nil != err {
		return err
	}
	parentA := kitty.ID(c.Uint64("parent-a"))
	parentB := kitty.ID(c.Uint64("parent-b"))

	return withRegistry(c, true, func(r *registry) error {
		id, err := kitty.BreedKitty(owner, parentA, parentB)
		if nil != err {
			return err
		}
		fmt.Fprintf(r.m.w, "kitty: %d\n", id)
		return nil
	})
}

func runClaimCreate(c *cli.Context) error {
	owner, err := identity(c)
	if nil != err {
		return err
	}
	claim, err := claimArgument(c)
	if nil != err {
		return err
	}

	return withRegistry(c, true, func(r *registry) error {
		return poe.CreateClaim(owner, claim)
	})
}

func runClaimTransfer(c *cli.Context) error {
	owner, err := identity(c)
	if nil != err {
		return err
	}
	dest, err := receiver(c)
	if nil != err {
		return err
	}
	claim, err := claimArgument(c)
	if nil != err {
		return err
	}

	return withRegistry(c, true, func(r *registry) error {
		return poe.TransferClaim(owner, claim, dest)
	})
}

func runClaimRevoke(c *cli.Context) error {
	owner, err := identity(c)
	if nil != err {
		return err
	}
	claim, err := claimArgument(c)
	if nil != err {
		return err
	}

	return withRegistry(c, true, func(r *registry) error {
		return poe.RevokeClaim(owner, claim)
	})
}

func runClaimShow(c *cli.Context) error {
	claim, err := claimArgument(c)
	if nil != err {
		return err
	}

	return withRegistry(c, false, func(r *registry) error {
		owner, since, err := poe.Proof(claim)
		if nil != err {
			return err
		}
		fmt.Fprintf(r.m.w, "owner: %s\nsince: %d\n", owner, since)
		return nil
	})
}

func runInfo(c *cli.Context) error {
	id := kitty.ID(c.Uint64("kitty"))

	return withRegistry(c, false, func(r *registry) error {
		k, err := kitty.Info(id)
		if nil != err {
			return err
		}
		printKitty(r, id, k)
		return nil
	})
}

func runList(c *cli.Context) error {
	return withRegistry(c, false, func(r *registry) error {
		return kitty.Scan(func(id kitty.ID, k *kitty.Kitty) bool {
			printKitty(r, id, k)
			return true
		})
	})
}

func runBalance(c *cli.Context) error {
	acc, err := receiverOrIdentity(c)
	if nil != err {
		return err
	}

	return withRegistry(c, false, func(r *registry) error {
		fmt.Fprintf(r.m.w, "account:  %s\n", acc)
		fmt.Fprintf(r.m.w, "free:     %d\n", ledger.FreeBalance(acc))
		fmt.Fprintf(r.m.w, "reserved: %d\n", ledger.ReservedBalance(acc))

		ids, err := kitty.OwnedBy(acc)
		if nil != err {
			return err
		}
		fmt.Fprintf(r.m.w, "kitties:  %v\n", ids)
		return nil
	})
}

func printKitty(r *registry, id kitty.ID, k *kitty.Kitty) {
	price := "-"
	if nil != k.Price {
		price = fmt.Sprintf("%d", *k.Price)
	}
	fmt.Fprintf(r.m.w, "%d: dna: %x  gender: %s  price: %s  deposit: %d  owner: %s\n",
		id, k.DNA, k.Gender, price, k.Deposit, k.Owner)
}
