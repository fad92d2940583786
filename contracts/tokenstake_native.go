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
		{"native_initialize", func(env *xenv.Environment) (any, error) {
			var args struct {
				RewardRate uint64
				StartSlot  uint64
				EndSlot    uint64
			}
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			tok := Token.WithState(env.State())
			err := TokenStake.WithState(env.State()).
				Initialize(env.Caller(), tok, args.RewardRate, args.StartSlot, args.EndSlot)
			return nil, err
		}},
		{"native_stake", func(env *xenv.Environment) (any, error) {
			var args struct{ Amount uint64 }
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			slot := env.BlockContext().Number
			tok := Token.WithState(env.State())
			err := TokenStake.WithState(env.State()).Stake(env.Caller(), tok, args.Amount, slot)
			return nil, err
		}},
		{"native_unstake", func(env *xenv.Environment) (any, error) {
			slot := env.BlockContext().Number
			tok := Token.WithState(env.State())
			err := TokenStake.WithState(env.State()).Unstake(env.Caller(), tok, slot)
			return nil, err
		}},
		{"native_claim", func(env *xenv.Environment) (any, error) {
			slot := env.BlockContext().Number
			tok := Token.WithState(env.State())
			return TokenStake.WithState(env.State()).Claim(env.Caller(), tok, slot)
		}},
		{"native_getConfig", func(env *xenv.Environment) (any, error) {
			return TokenStake.WithState(env.State()).Config()
		}},
		{"native_getPosition", func(env *xenv.Environment) (any, error) {
			return TokenStake.WithState(env.State()).Position(env.Caller())
		}},
		{"native_pendingReward", func(env *xenv.Environment) (any, error) {
			slot := env.BlockContext().Number
			return TokenStake.WithState(env.State()).PendingReward(env.Caller(), slot)
		}},
	}
	registerMethods(TokenStake.contract, defines)
}
