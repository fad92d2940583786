// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/meridianchain/meridian/contracts"
	"github.com/meridianchain/meridian/log"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/metrics"
	"github.com/meridianchain/meridian/state"
	"github.com/meridianchain/meridian/xenv"
)

var (
	version   string
	gitCommit string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Meridian",
		Usage:   "staking ledger over a local state database",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			metricsAddrFlag,
			callerFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "coin",
				Usage: "native coin staking ledger",
				Subcommands: []cli.Command{
					{
						Name:   "init-account",
						Usage:  "create the caller's stake account",
						Flags:  []cli.Flag{timeFlag},
						Action: coinOpAction("native_initializeAccount", nil),
					},
					{
						Name:  "stake",
						Usage: "move coin from the caller into its escrow",
						Flags: []cli.Flag{timeFlag, amountFlag},
						Action: coinOpAction("native_stake", func(ctx *cli.Context) any {
							return struct{ Amount uint64 }{ctx.Uint64(amountFlag.Name)}
						}),
					},
					{
						Name:  "unstake",
						Usage: "release coin from the escrow back to the caller",
						Flags: []cli.Flag{timeFlag, amountFlag},
						Action: coinOpAction("native_unstake", func(ctx *cli.Context) any {
							return struct{ Amount uint64 }{ctx.Uint64(amountFlag.Name)}
						}),
					},
					{
						Name:   "claim",
						Usage:  "settle and zero the points accumulator",
						Flags:  []cli.Flag{timeFlag},
						Action: coinOpAction("native_claimPoints", nil),
					},
					{
						Name:   "points",
						Usage:  "project the settled points total",
						Flags:  []cli.Flag{timeFlag},
						Action: coinOpAction("native_getPoints", nil),
					},
				},
			},
			{
				Name:  "token",
				Usage: "token staking pool",
				Subcommands: []cli.Command{
					{
						Name:  "init",
						Usage: "set up the pool and take over the mint authority",
						Flags: []cli.Flag{slotFlag, rateFlag, startSlotFlag, endSlotFlag},
						Action: tokenOpAction("native_initialize", func(ctx *cli.Context) any {
							return struct {
								RewardRate uint64
								StartSlot  uint64
								EndSlot    uint64
							}{
								ctx.Uint64(rateFlag.Name),
								ctx.Uint64(startSlotFlag.Name),
								ctx.Uint64(endSlotFlag.Name),
							}
						}),
					},
					{
						Name:  "stake",
						Usage: "move tokens from the caller into the vault",
						Flags: []cli.Flag{slotFlag, amountFlag},
						Action: tokenOpAction("native_stake", func(ctx *cli.Context) any {
							return struct{ Amount uint64 }{ctx.Uint64(amountFlag.Name)}
						}),
					},
					{
						Name:   "unstake",
						Usage:  "exit the pool, mint the outstanding reward and close the position",
						Flags:  []cli.Flag{slotFlag},
						Action: tokenOpAction("native_unstake", nil),
					},
					{
						Name:   "claim",
						Usage:  "mint the outstanding reward",
						Flags:  []cli.Flag{slotFlag},
						Action: tokenOpAction("native_claim", nil),
					},
					{
						Name:   "position",
						Usage:  "show the caller's ledger record",
						Flags:  []cli.Flag{slotFlag},
						Action: tokenOpAction("native_getPosition", nil),
					},
					{
						Name:   "pending",
						Usage:  "show the caller's outstanding reward",
						Flags:  []cli.Flag{slotFlag},
						Action: tokenOpAction("native_pendingReward", nil),
					},
					{
						Name:  "balance",
						Usage: "show a holder's token balance",
						Flags: []cli.Flag{slotFlag, holderFlag},
						Action: func(ctx *cli.Context) error {
							holder, err := meridian.ParseAddress(ctx.String(holderFlag.Name))
							if err != nil {
								return err
							}
							return runOp(ctx, contracts.Token.Address, "native_balanceOf", *holder)
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func coinOpAction(method string, args func(*cli.Context) any) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		var input any
		if args != nil {
			input = args(ctx)
		}
		return runOp(ctx, contracts.CoinStake.Address, method, input)
	}
}

func tokenOpAction(method string, args func(*cli.Context) any) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		var input any
		if args != nil {
			input = args(ctx)
		}
		return runOp(ctx, contracts.TokenStake.Address, method, input)
	}
}

// runOp executes one native call against the on-disk state and persists the
// surviving writes. The clock readings come from the command line; the core
// never reads a live clock.
func runOp(ctx *cli.Context, to meridian.Address, name string, args any) error {
	initLogger(ctx)
	initMetrics(ctx)

	caller, err := meridian.ParseAddress(ctx.GlobalString(callerFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "parse caller")
	}

	db, err := lvldb.New(ctx.GlobalString(dataDirFlag.Name), lvldb.Options{})
	if err != nil {
		return errors.WithMessage(err, "open state database")
	}
	defer db.Close()

	method := contracts.FindNativeCall(to, name)
	if method == nil {
		return errors.Errorf("no native method %v.%v", to, name)
	}

	var input []byte
	if args != nil {
		input = xenv.EncodeArgs(args)
	}

	st := state.New(db)
	blockCtx := &xenv.BlockContext{
		Number: ctx.Uint64(slotFlag.Name),
		Time:   ctx.Uint64(timeFlag.Name),
	}
	env := xenv.New(st, blockCtx, *caller, input)

	output, err := method.Call(env)
	if err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return errors.WithMessage(err, "commit state")
	}

	if output != nil {
		fmt.Printf("%+v\n", output)
	}
	logger.Debug("op committed", "method", name, "caller", caller)
	return nil
}

func initLogger(ctx *cli.Context) {
	verbosity := ctx.GlobalInt(verbosityFlag.Name)
	// the verbosity scale counts up, slog levels count down
	level := slog.Level(12 - verbosity*4)
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(level)))
}

func initMetrics(ctx *cli.Context) {
	addr := ctx.GlobalString(metricsAddrFlag.Name)
	if addr == "" {
		return
	}
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			logger.Warn("metrics endpoint stopped", "err", err)
		}
	}()
}
