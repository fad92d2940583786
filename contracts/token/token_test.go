// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/contracts/token"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

func newTestToken(t *testing.T) (*token.Token, *authority.Capability) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	st := state.New(db)

	tokAddr := meridian.BytesToAddress([]byte("tok"))
	tok := token.New(tokAddr, st)

	// claim the unset mint authority for a derived identity we can sign for
	mintCap := authority.NewCapability(tokAddr, 255, []byte("mint"))
	assert.Nil(t, tok.SetMintAuthority(meridian.Address{}, mintCap.Address()))
	return tok, mintCap
}

func TestMintAuthority(t *testing.T) {
	tok, mintCap := newTestToken(t)

	stored, err := tok.MintAuthority()
	assert.Nil(t, err)
	assert.Equal(t, mintCap.Address(), stored)

	// only the current authority may hand over
	stranger := meridian.BytesToAddress([]byte("s1"))
	err = tok.SetMintAuthority(stranger, stranger)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	next := meridian.BytesToAddress([]byte("n1"))
	assert.Nil(t, tok.SetMintAuthority(mintCap.Address(), next))
	stored, _ = tok.MintAuthority()
	assert.Equal(t, next, stored)
}

func TestMintTo(t *testing.T) {
	tok, mintCap := newTestToken(t)
	holder := meridian.BytesToAddress([]byte("h1"))

	assert.Nil(t, tok.MintTo(mintCap, holder, 1000))
	bal, _ := tok.Balance(holder)
	assert.Equal(t, uint64(1000), bal)
	supply, _ := tok.TotalSupply()
	assert.Equal(t, uint64(1000), supply)

	// a capability deriving to a different identity cannot mint
	wrong := authority.NewCapability(tok.Address(), 254, []byte("mint"))
	err := tok.MintTo(wrong, holder, 1)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	assert.ErrorIs(t, tok.MintTo(nil, holder, 1), reverts.ErrUnauthorized)
}

func TestTransfer(t *testing.T) {
	tok, mintCap := newTestToken(t)
	a := meridian.BytesToAddress([]byte("h1"))
	b := meridian.BytesToAddress([]byte("h2"))
	assert.Nil(t, tok.MintTo(mintCap, a, 100))

	// only the account authority moves the balance
	err := tok.Transfer(b, a, b, 10)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	assert.Nil(t, tok.Transfer(a, a, b, 30))
	balA, _ := tok.Balance(a)
	balB, _ := tok.Balance(b)
	assert.Equal(t, uint64(70), balA)
	assert.Equal(t, uint64(30), balB)

	err = tok.Transfer(a, a, b, 71)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)
}

func TestSelfTransfer(t *testing.T) {
	tok, mintCap := newTestToken(t)
	a := meridian.BytesToAddress([]byte("h1"))
	assert.Nil(t, tok.MintTo(mintCap, a, 100))

	// a transfer to oneself must not create or destroy value
	assert.Nil(t, tok.Transfer(a, a, a, 60))
	bal, _ := tok.Balance(a)
	assert.Equal(t, uint64(100), bal)
	supply, _ := tok.TotalSupply()
	assert.Equal(t, uint64(100), supply)

	// still bounded by the balance
	err := tok.Transfer(a, a, a, 101)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)
	bal, _ = tok.Balance(a)
	assert.Equal(t, uint64(100), bal)
}

func TestEscrowAccount(t *testing.T) {
	tok, mintCap := newTestToken(t)
	holder := meridian.BytesToAddress([]byte("h1"))

	escrowCap := authority.NewCapability(tok.Address(), 255, []byte("escrow"))
	vault := meridian.BytesToAddress([]byte("v1"))
	assert.Nil(t, tok.CreateAccount(vault, escrowCap.Address()))

	// creation never re-creates
	err := tok.CreateAccount(vault, holder)
	assert.ErrorIs(t, err, reverts.ErrAccountExists)

	assert.Nil(t, tok.MintTo(mintCap, holder, 100))
	assert.Nil(t, tok.Transfer(holder, holder, vault, 100))

	// the vault itself has no say over its balance
	err = tok.Transfer(vault, vault, holder, 100)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	// only the matching capability releases value
	wrong := authority.NewCapability(tok.Address(), 254, []byte("escrow"))
	err = tok.TransferWithAuthority(wrong, vault, holder, 100)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	assert.Nil(t, tok.TransferWithAuthority(escrowCap, vault, holder, 100))
	bal, _ := tok.Balance(holder)
	assert.Equal(t, uint64(100), bal)
}
