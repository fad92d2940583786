// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package contracts binds the native contracts and routes native calls to
// their handlers.
package contracts

import (
	"github.com/meridianchain/meridian/contracts/coinstake"
	"github.com/meridianchain/meridian/contracts/token"
	"github.com/meridianchain/meridian/contracts/tokenstake"
	"github.com/meridianchain/meridian/state"
)

// Native contracts binding.
var (
	Token      = &tokenContract{mustLoadContract("Token")}
	CoinStake  = &coinStakeContract{mustLoadContract("CoinStake")}
	TokenStake = &tokenStakeContract{mustLoadContract("TokenStake")}
)

type (
	tokenContract      struct{ *contract }
	coinStakeContract  struct{ *contract }
	tokenStakeContract struct{ *contract }
)

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (c *coinStakeContract) WithState(state *state.State) *coinstake.CoinStake {
	return coinstake.New(c.Address, state)
}

func (t *tokenStakeContract) WithState(state *state.State) *tokenstake.TokenStake {
	return tokenstake.New(t.Address, state)
}
