// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package coinstake_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/contracts/coinstake"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

const t0 = uint64(1_700_000_000)

func newTestLedger(t *testing.T) (*coinstake.CoinStake, *state.State) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	st := state.New(db)
	return coinstake.New(meridian.BytesToAddress([]byte("CoinStake")), st), st
}

func fund(t *testing.T, st *state.State, addr meridian.Address, amount uint64) {
	assert.Nil(t, st.SetBalance(addr, new(big.Int).SetUint64(amount)))
}

func balanceOf(t *testing.T, st *state.State, addr meridian.Address) uint64 {
	bal, err := st.GetBalance(addr)
	assert.Nil(t, err)
	return bal.Uint64()
}

func TestInitializeAccount(t *testing.T) {
	c, _ := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))

	_, err := c.Account(owner)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	rec, err := c.Account(owner)
	assert.Nil(t, err)
	assert.Equal(t, owner, rec.Owner)
	assert.Equal(t, uint64(0), rec.StakedAmount)
	assert.Equal(t, t0, rec.LastUpdateTime)

	err = c.InitializeAccount(owner, t0)
	assert.ErrorIs(t, err, reverts.ErrAccountExists)
}

func TestStakeMovesCoinToEscrow(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 5*meridian.UnitScale, t0))

	rec, _ := c.Account(owner)
	assert.Equal(t, uint64(5*meridian.UnitScale), rec.StakedAmount)

	escrow := c.EscrowAddress(owner, rec.Bump)
	assert.Equal(t, uint64(5*meridian.UnitScale), balanceOf(t, st, escrow))
	assert.Equal(t, uint64(5*meridian.UnitScale), balanceOf(t, st, owner))
}

func TestStakeRejections(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, meridian.UnitScale)
	assert.Nil(t, c.InitializeAccount(owner, t0))

	err := c.Stake(owner, 0, t0)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	err = c.Stake(owner, 2*meridian.UnitScale, t0)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)

	err = c.Stake(meridian.BytesToAddress([]byte("o2")), 1, t0)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)
}

func TestPointsAccrual(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 5*meridian.UnitScale, t0))

	// 5 coins for a day earn 5 whole points
	points, err := c.GetPoints(owner, t0+meridian.SecondsPerDay)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5*meridian.PointsScale), points)

	// doubling the stake midway doubles the accrual rate from there on
	assert.Nil(t, c.Stake(owner, 5*meridian.UnitScale, t0+meridian.SecondsPerDay/2))
	points, err = c.GetPoints(owner, t0+meridian.SecondsPerDay)
	assert.Nil(t, err)
	assert.Equal(t, uint64(15*meridian.PointsScale/2), points)
}

func TestUnstake(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 6*meridian.UnitScale, t0))

	// partial exit keeps the account alive with the remainder
	assert.Nil(t, c.Unstake(owner, 2*meridian.UnitScale, t0+100))
	rec, _ := c.Account(owner)
	assert.Equal(t, uint64(4*meridian.UnitScale), rec.StakedAmount)
	assert.Equal(t, uint64(6*meridian.UnitScale), balanceOf(t, st, owner))

	// full exit drains the escrow
	assert.Nil(t, c.Unstake(owner, 4*meridian.UnitScale, t0+200))
	rec, _ = c.Account(owner)
	assert.Equal(t, uint64(0), rec.StakedAmount)
	assert.Equal(t, uint64(10*meridian.UnitScale), balanceOf(t, st, owner))
	assert.Equal(t, uint64(0), balanceOf(t, st, c.EscrowAddress(owner, rec.Bump)))
}

func TestUnstakeTooMuch(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 3*meridian.UnitScale, t0))

	before, _ := c.Account(owner)
	err := c.Unstake(owner, 4*meridian.UnitScale, t0+100)
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)

	// the rejected call left the record untouched
	after, _ := c.Account(owner)
	assert.Equal(t, before, after)
	assert.Equal(t, uint64(7*meridian.UnitScale), balanceOf(t, st, owner))
}

func TestClaimPoints(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 5*meridian.UnitScale, t0))

	claimed, err := c.ClaimPoints(owner, t0+meridian.SecondsPerDay)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), claimed)

	// the accumulator restarts from zero
	rec, _ := c.Account(owner)
	assert.Equal(t, uint64(0), rec.TotalPoints)
	points, _ := c.GetPoints(owner, t0+meridian.SecondsPerDay)
	assert.Equal(t, uint64(0), points)
}

func TestTimeRegression(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, meridian.UnitScale, t0))

	err := c.Stake(owner, meridian.UnitScale, t0-1)
	assert.ErrorIs(t, err, reverts.ErrTimeRegression)
	_, err = c.GetPoints(owner, t0-1)
	assert.ErrorIs(t, err, reverts.ErrTimeRegression)
}

func TestDepositorIsolation(t *testing.T) {
	c, st := newTestLedger(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	bob := meridian.BytesToAddress([]byte("bob"))
	fund(t, st, alice, 10*meridian.UnitScale)
	fund(t, st, bob, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(alice, t0))
	assert.Nil(t, c.InitializeAccount(bob, t0))
	assert.Nil(t, c.Stake(alice, 5*meridian.UnitScale, t0))
	assert.Nil(t, c.Stake(bob, 2*meridian.UnitScale, t0))

	// distinct escrows, independent accrual
	aliceRec, _ := c.Account(alice)
	bobRec, _ := c.Account(bob)
	assert.NotEqual(t, c.EscrowAddress(alice, aliceRec.Bump), c.EscrowAddress(bob, bobRec.Bump))

	assert.Nil(t, c.Unstake(bob, 2*meridian.UnitScale, t0+100))

	alicePoints, _ := c.GetPoints(alice, t0+meridian.SecondsPerDay)
	assert.Equal(t, uint64(5*meridian.PointsScale), alicePoints)
	assert.Equal(t, uint64(5*meridian.UnitScale), balanceOf(t, st, c.EscrowAddress(alice, aliceRec.Bump)))
}

func TestCoinConservation(t *testing.T) {
	c, st := newTestLedger(t)
	owner := meridian.BytesToAddress([]byte("o1"))
	fund(t, st, owner, 10*meridian.UnitScale)

	assert.Nil(t, c.InitializeAccount(owner, t0))
	assert.Nil(t, c.Stake(owner, 7*meridian.UnitScale, t0))
	assert.Nil(t, c.Unstake(owner, 3*meridian.UnitScale, t0+50))
	assert.Nil(t, c.Stake(owner, meridian.UnitScale, t0+80))

	rec, _ := c.Account(owner)
	escrow := balanceOf(t, st, c.EscrowAddress(owner, rec.Bump))
	assert.Equal(t, uint64(10*meridian.UnitScale), balanceOf(t, st, owner)+escrow)
	assert.Equal(t, rec.StakedAmount, escrow)
}
