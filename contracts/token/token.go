// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token ledger held in contract storage.
// A token is identified by its contract address. Every holder account has an
// authority: the identity allowed to move its balance. By default that is
// the holder itself; escrow accounts are re-authorized to a derived program
// identity at creation, after which only a matching capability can debit
// them.
package token

import (
	"github.com/meridianchain/meridian/accrual"
	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

var (
	totalSupplyKey   = meridian.Blake2b([]byte("total-supply"))
	mintAuthorityKey = meridian.Blake2b([]byte("mint-authority"))
)

func balanceKey(holder meridian.Address) meridian.Bytes32 {
	return meridian.BytesToBytes32(append([]byte("b"), holder.Bytes()...))
}

func authorityKey(holder meridian.Address) meridian.Bytes32 {
	return meridian.BytesToBytes32(append([]byte("o"), holder.Bytes()...))
}

// Token binds a token ledger at the given contract address.
type Token struct {
	addr  meridian.Address
	state *state.State
}

// New create a token instance.
func New(addr meridian.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the token's identity.
func (t *Token) Address() meridian.Address {
	return t.addr
}

// Balance returns the holder's balance.
func (t *Token) Balance(holder meridian.Address) (uint64, error) {
	var bal uint64
	if err := t.state.GetStructuredStorage(t.addr, balanceKey(holder), &bal); err != nil {
		return 0, err
	}
	return bal, nil
}

// TotalSupply returns the minted supply.
func (t *Token) TotalSupply() (uint64, error) {
	var supply uint64
	if err := t.state.GetStructuredStorage(t.addr, totalSupplyKey, &supply); err != nil {
		return 0, err
	}
	return supply, nil
}

// MintAuthority returns the identity allowed to mint, zero if unset.
func (t *Token) MintAuthority() (meridian.Address, error) {
	var auth meridian.Address
	if err := t.state.GetStructuredStorage(t.addr, mintAuthorityKey, &auth); err != nil {
		return meridian.Address{}, err
	}
	return auth, nil
}

// SetMintAuthority hands the mint authority over to next.
// The unset authority can be claimed by anyone once; afterwards only the
// current authority may hand it over.
func (t *Token) SetMintAuthority(current, next meridian.Address) error {
	stored, err := t.MintAuthority()
	if err != nil {
		return err
	}
	if !stored.IsZero() && stored != current {
		return reverts.ErrUnauthorized
	}
	return t.state.SetStructuredStorage(t.addr, mintAuthorityKey, next)
}

// CreateAccount creates a holder account authorized to auth from the start.
// Creation is rejected once the account holds value or a custom authority:
// the account-creation primitive never re-creates.
func (t *Token) CreateAccount(holder, auth meridian.Address) error {
	bal, err := t.Balance(holder)
	if err != nil {
		return err
	}
	var stored meridian.Address
	if err := t.state.GetStructuredStorage(t.addr, authorityKey(holder), &stored); err != nil {
		return err
	}
	if bal > 0 || !stored.IsZero() {
		return reverts.ErrAccountExists
	}
	return t.state.SetStructuredStorage(t.addr, authorityKey(holder), auth)
}

// AccountAuthority returns the identity allowed to debit the holder's
// balance. Defaults to the holder itself.
func (t *Token) AccountAuthority(holder meridian.Address) (meridian.Address, error) {
	var auth meridian.Address
	if err := t.state.GetStructuredStorage(t.addr, authorityKey(holder), &auth); err != nil {
		return meridian.Address{}, err
	}
	if auth.IsZero() {
		return holder, nil
	}
	return auth, nil
}

// SetAccountAuthority re-authorizes the holder account to auth.
// caller must be the current account authority.
func (t *Token) SetAccountAuthority(caller, holder, auth meridian.Address) error {
	current, err := t.AccountAuthority(holder)
	if err != nil {
		return err
	}
	if current != caller {
		return reverts.ErrUnauthorized
	}
	return t.state.SetStructuredStorage(t.addr, authorityKey(holder), auth)
}

// Transfer moves amount from one holder to another.
// caller must be the source account's authority.
func (t *Token) Transfer(caller, from, to meridian.Address, amount uint64) error {
	auth, err := t.AccountAuthority(from)
	if err != nil {
		return err
	}
	if auth != caller {
		return reverts.ErrUnauthorized
	}
	return t.move(from, to, amount)
}

// TransferWithAuthority moves amount out of a program-owned account. The
// capability must re-derive to the source account's authority; this is the
// only code path by which value leaves an escrow.
func (t *Token) TransferWithAuthority(cap *authority.Capability, from, to meridian.Address, amount uint64) error {
	auth, err := t.AccountAuthority(from)
	if err != nil {
		return err
	}
	if cap == nil || cap.Address() != auth {
		return reverts.ErrUnauthorized
	}
	return t.move(from, to, amount)
}

// MintTo creates amount new units in destination.
// The capability must re-derive to the stored mint authority.
func (t *Token) MintTo(cap *authority.Capability, to meridian.Address, amount uint64) error {
	stored, err := t.MintAuthority()
	if err != nil {
		return err
	}
	if cap == nil || stored.IsZero() || cap.Address() != stored {
		return reverts.ErrUnauthorized
	}

	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	if supply, err = accrual.SafeAdd(supply, amount); err != nil {
		return err
	}
	if err := t.state.SetStructuredStorage(t.addr, totalSupplyKey, supply); err != nil {
		return err
	}

	bal, err := t.Balance(to)
	if err != nil {
		return err
	}
	if bal, err = accrual.SafeAdd(bal, amount); err != nil {
		return err
	}
	return t.state.SetStructuredStorage(t.addr, balanceKey(to), bal)
}

func (t *Token) move(from, to meridian.Address, amount uint64) error {
	fromBal, err := t.Balance(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return reverts.ErrInsufficientFunds
	}
	// an aliased move must not credit a stale destination read
	if from == to {
		return nil
	}
	toBal, err := t.Balance(to)
	if err != nil {
		return err
	}
	if toBal, err = accrual.SafeAdd(toBal, amount); err != nil {
		return err
	}
	if err := t.state.SetStructuredStorage(t.addr, balanceKey(from), fromBal-amount); err != nil {
		return err
	}
	return t.state.SetStructuredStorage(t.addr, balanceKey(to), toBal)
}
