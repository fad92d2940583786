// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package coinstake implements the native-coin staking ledger. Each
// depositor gets a derived escrow account that custodies the staked coin;
// rewards accrue as points folded into the account on every settlement.
package coinstake

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/accrual"
	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/log"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

var logger = log.WithContext("pkg", "coinstake")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Rate is the accrual parameterization of the coin ledger.
var Rate = accrual.PointsRate{
	PointsPerUnitTime: meridian.PointsPerDay,
	UnitScale:         meridian.UnitScale,
	TimeScale:         meridian.SecondsPerDay,
}

// CoinStake binds the coin staking ledger at the given contract address.
type CoinStake struct {
	addr  meridian.Address
	state *state.State
}

// New create a new instance.
func New(addr meridian.Address, state *state.State) *CoinStake {
	return &CoinStake{addr, state}
}

func (c *CoinStake) recordKey(owner meridian.Address) meridian.Bytes32 {
	return meridian.Blake2b(meridian.LabelStakeAccount, owner.Bytes())
}

func (c *CoinStake) getAccount(owner meridian.Address) (*StakeAccount, error) {
	var rec StakeAccount
	if err := c.state.GetStructuredStorage(c.addr, c.recordKey(owner), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *CoinStake) setAccount(owner meridian.Address, rec *StakeAccount) error {
	return c.state.SetStructuredStorage(c.addr, c.recordKey(owner), rec)
}

// EscrowAddress returns the derived escrow account of the given stake account.
func (c *CoinStake) EscrowAddress(owner meridian.Address, bump uint8) meridian.Address {
	return authority.AddressOf(c.addr, bump, meridian.LabelStakeAccount, owner.Bytes())
}

// Account returns the stake account of the given owner.
// ErrAccountNotFound if it was never initialized.
func (c *CoinStake) Account(owner meridian.Address) (*StakeAccount, error) {
	rec, err := c.getAccount(owner)
	if err != nil {
		return nil, err
	}
	if rec.IsEmpty() {
		return nil, reverts.ErrAccountNotFound
	}
	if rec.Owner != owner {
		return nil, reverts.ErrUnauthorized
	}
	return rec, nil
}

// InitializeAccount creates the depositor's stake account in dormant state
// with a zero balance. Creation is rejected when the account already exists.
func (c *CoinStake) InitializeAccount(owner meridian.Address, now uint64) error {
	rec, err := c.getAccount(owner)
	if err != nil {
		return err
	}
	if !rec.IsEmpty() {
		return reverts.ErrAccountExists
	}

	_, bump, err := authority.Derive(c.state, c.addr, meridian.LabelStakeAccount, owner.Bytes())
	if err != nil {
		return err
	}

	rec = &StakeAccount{
		Owner:          owner,
		LastUpdateTime: now,
		Bump:           bump,
	}
	if err := c.setAccount(owner, rec); err != nil {
		return err
	}
	logger.Info("stake account created", "owner", owner, "bump", bump)
	return nil
}

// Stake settles pending points and moves amount of coin from the depositor
// into its escrow account.
func (c *CoinStake) Stake(owner meridian.Address, amount, now uint64) error {
	if amount == 0 {
		return reverts.ErrInvalidAmount
	}
	rec, err := c.Account(owner)
	if err != nil {
		return err
	}

	st := rec.settleState()
	if _, err := accrual.SettlePoints(&st, now, Rate); err != nil {
		return err
	}

	if err := c.moveCoin(owner, c.EscrowAddress(owner, rec.Bump), amount); err != nil {
		return err
	}

	staked, err := accrual.SafeAdd(st.Staked, amount)
	if err != nil {
		return err
	}
	rec.StakedAmount = staked
	rec.TotalPoints = st.TotalPoints
	rec.LastUpdateTime = st.LastTime
	if err := c.setAccount(owner, rec); err != nil {
		return err
	}

	logger.Info("staked", "owner", owner, "amount", amount, "total", rec.StakedAmount)
	return nil
}

// Unstake settles pending points and releases amount of coin from the escrow
// back to the depositor, using the escrow authority's delegated signing. The
// account stays alive at zero balance.
func (c *CoinStake) Unstake(owner meridian.Address, amount, now uint64) error {
	if amount == 0 {
		return reverts.ErrInvalidAmount
	}
	rec, err := c.Account(owner)
	if err != nil {
		return err
	}
	if rec.StakedAmount < amount {
		return reverts.ErrInsufficientStake
	}

	st := rec.settleState()
	if _, err := accrual.SettlePoints(&st, now, Rate); err != nil {
		return err
	}

	// value leaves the escrow only under the derived identity's signature
	cap := authority.NewCapability(c.addr, rec.Bump, meridian.LabelStakeAccount, owner.Bytes())
	escrow := c.EscrowAddress(owner, rec.Bump)
	if cap.Address() != escrow {
		return reverts.ErrUnauthorized
	}
	if err := c.moveCoin(escrow, owner, amount); err != nil {
		return err
	}

	staked, err := accrual.SafeSub(st.Staked, amount)
	if err != nil {
		return err
	}
	rec.StakedAmount = staked
	rec.TotalPoints = st.TotalPoints
	rec.LastUpdateTime = st.LastTime
	if err := c.setAccount(owner, rec); err != nil {
		return err
	}

	logger.Info("unstaked", "owner", owner, "amount", amount, "remaining", rec.StakedAmount)
	return nil
}

// ClaimPoints settles and zeroes the points accumulator, returning the
// claimable points in whole units.
func (c *CoinStake) ClaimPoints(owner meridian.Address, now uint64) (uint64, error) {
	rec, err := c.Account(owner)
	if err != nil {
		return 0, err
	}

	st := rec.settleState()
	if _, err := accrual.SettlePoints(&st, now, Rate); err != nil {
		return 0, err
	}

	claimable := st.TotalPoints / meridian.PointsScale
	rec.TotalPoints = 0
	rec.LastUpdateTime = st.LastTime
	if err := c.setAccount(owner, rec); err != nil {
		return 0, err
	}

	logger.Info("points claimed", "owner", owner, "points", claimable)
	return claimable, nil
}

// GetPoints returns the would-be settled points total at the given time.
// A pure projection: no state is mutated.
func (c *CoinStake) GetPoints(owner meridian.Address, now uint64) (uint64, error) {
	rec, err := c.Account(owner)
	if err != nil {
		return 0, err
	}
	st := rec.settleState()
	return accrual.ProjectPoints(&st, now, Rate)
}

// moveCoin moves amount of the native coin between state accounts.
func (c *CoinStake) moveCoin(from, to meridian.Address, amount uint64) error {
	fromBal, err := c.state.GetBalance(from)
	if err != nil {
		return err
	}
	value := new(big.Int).SetUint64(amount)
	if fromBal.Cmp(value) < 0 {
		return reverts.ErrInsufficientFunds
	}
	// an aliased move must not credit a stale destination read
	if from == to {
		return nil
	}
	toBal, err := c.state.GetBalance(to)
	if err != nil {
		return err
	}
	if err := c.state.SetBalance(from, new(big.Int).Sub(fromBal, value)); err != nil {
		return err
	}
	if err := c.state.SetBalance(to, new(big.Int).Add(toBal, value)); err != nil {
		return errors.WithMessage(err, "credit escrow")
	}
	return nil
}
