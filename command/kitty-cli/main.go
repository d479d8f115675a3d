// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

// information passed into each command action
type metadata struct {
	file    string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "kitty-cli"
	app.Usage = "run kitty and proof-of-existence operations against a local registry"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*registry configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " caller private key `FILE` (from kittyd gen-identity)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "mint a new kitty owned by the identity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runCreate,
		},
		{
			Name:      "sell",
			Usage:     "set or clear the asking price of a kitty",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "kitty, k",
					Usage: "*kitty `ID`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: " asking `PRICE`; omit to withdraw from sale",
				},
			},
			Action: runSell,
		},
		{
			Name:      "buy",
			Usage:     "buy a listed kitty",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "kitty, k",
					Usage: "*kitty `ID`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*bid `PRICE`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "transfer",
			Usage:     "send a kitty to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "kitty, k",
					Usage: "*kitty `ID`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "breed",
			Usage:     "breed two kitties owned by the identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "parent-a, a",
					Usage: "*first parent `ID`",
				},
				cli.Uint64Flag{
					Name:  "parent-b, b",
					Usage: "*second parent `ID`",
				},
			},
			Action: runBreed,
		},
		{
			Name:  "claim",
			Usage: "proof-of-existence claims",
			Subcommands: []cli.Command{
				{
					Name:      "create",
					Usage:     "register a claim for the identity",
					ArgsUsage: "\n   (* = required)",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "claim, d",
							Value: "",
							Usage: "*claim `HEX`",
						},
					},
					Action: runClaimCreate,
				},
				{
					Name:      "transfer",
					Usage:     "pass a claim to another account",
					ArgsUsage: "\n   (* = required)",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "claim, d",
							Value: "",
							Usage: "*claim `HEX`",
						},
						cli.StringFlag{
							Name:  "receiver, r",
							Value: "",
							Usage: "*receiving `ACCOUNT`",
						},
					},
					Action: runClaimTransfer,
				},
				{
					Name:      "revoke",
					Usage:     "remove a claim owned by the identity",
					ArgsUsage: "\n   (* = required)",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "claim, d",
							Value: "",
							Usage: "*claim `HEX`",
						},
					},
					Action: runClaimRevoke,
				},
				{
					Name:      "show",
					Usage:     "show owner and registration block of a claim",
					ArgsUsage: "\n   (* = required)",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "claim, d",
							Value: "",
							Usage: "*claim `HEX`",
						},
					},
					Action: runClaimShow,
				},
			},
		},
		{
			Name:      "info",
			Usage:     "show one kitty",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "kitty, k",
					Usage: "*kitty `ID`",
				},
			},
			Action: runInfo,
		},
		{
			Name:   "list",
			Usage:  "list all kitties",
			Flags:  []cli.Flag{},
			Action: runList,
		},
		{
			Name:      "balance",
			Usage:     "show free and reserved balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " `ACCOUNT` to query [default: the identity]",
				},
			},
			Action: runBalance,
		},
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}
