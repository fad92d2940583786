// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: "meridian-data",
		Usage: "directory of the state database",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "bind address of the prometheus metrics endpoint, disabled when empty",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "hex address of the calling identity",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "wall clock reading in seconds, injected into the call",
	}
	slotFlag = cli.Uint64Flag{
		Name:  "slot",
		Usage: "slot ordinal, injected into the call",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in base units",
	}
	rateFlag = cli.Uint64Flag{
		Name:  "rate",
		Usage: "reward units minted per staked token per slot",
	}
	startSlotFlag = cli.Uint64Flag{
		Name:  "start-slot",
		Usage: "intended first slot of the reward window",
	}
	endSlotFlag = cli.Uint64Flag{
		Name:  "end-slot",
		Usage: "intended last slot of the reward window",
	}
	holderFlag = cli.StringFlag{
		Name:  "holder",
		Usage: "hex address of the token holder to query",
	}
)
