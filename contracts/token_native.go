// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/xenv"
)

func init() {
	defines := []struct {
		name string
		run  func(env *xenv.Environment) (any, error)
	}{
		{"native_balanceOf", func(env *xenv.Environment) (any, error) {
			var holder meridian.Address
			if err := env.ParseArgs(&holder); err != nil {
				return nil, err
			}
			return Token.WithState(env.State()).Balance(holder)
		}},
		{"native_totalSupply", func(env *xenv.Environment) (any, error) {
			return Token.WithState(env.State()).TotalSupply()
		}},
		{"native_transfer", func(env *xenv.Environment) (any, error) {
			var args struct {
				To     meridian.Address
				Amount uint64
			}
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			caller := env.Caller()
			err := Token.WithState(env.State()).Transfer(caller, caller, args.To, args.Amount)
			return nil, err
		}},
	}
	registerMethods(Token.contract, defines)
}
