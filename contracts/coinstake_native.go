// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"github.com/meridianchain/meridian/xenv"
)

func init() {
	defines := []struct {
		name string
		run  func(env *xenv.Environment) (any, error)
	}{
		{"native_initializeAccount", func(env *xenv.Environment) (any, error) {
			now := env.BlockContext().Time
			err := CoinStake.WithState(env.State()).InitializeAccount(env.Caller(), now)
			return nil, err
		}},
		{"native_stake", func(env *xenv.Environment) (any, error) {
			var args struct{ Amount uint64 }
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			now := env.BlockContext().Time
			err := CoinStake.WithState(env.State()).Stake(env.Caller(), args.Amount, now)
			return nil, err
		}},
		{"native_unstake", func(env *xenv.Environment) (any, error) {
			var args struct{ Amount uint64 }
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			now := env.BlockContext().Time
			err := CoinStake.WithState(env.State()).Unstake(env.Caller(), args.Amount, now)
			return nil, err
		}},
		{"native_claimPoints", func(env *xenv.Environment) (any, error) {
			now := env.BlockContext().Time
			return CoinStake.WithState(env.State()).ClaimPoints(env.Caller(), now)
		}},
		{"native_getPoints", func(env *xenv.Environment) (any, error) {
			now := env.BlockContext().Time
			return CoinStake.WithState(env.State()).GetPoints(env.Caller(), now)
		}},
		{"native_getAccount", func(env *xenv.Environment) (any, error) {
			return CoinStake.WithState(env.State()).Account(env.Caller())
		}},
	}
	registerMethods(CoinStake.contract, defines)
}
