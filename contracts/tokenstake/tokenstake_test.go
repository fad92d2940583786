// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenstake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/contracts/token"
	"github.com/meridianchain/meridian/contracts/tokenstake"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

type fixture struct {
	pool  *tokenstake.TokenStake
	tok   *token.Token
	owner meridian.Address
	st    *state.State
}

// newFixture sets up an initialized pool at rate 2 with the operating
// window [100, 10000], and a pool authority capability for out-of-band
// minting in tests.
func newFixture(t *testing.T) (*fixture, *authority.Capability) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	st := state.New(db)

	poolAddr := meridian.BytesToAddress([]byte("TokenStake"))
	pool := tokenstake.New(poolAddr, st)
	tok := token.New(meridian.BytesToAddress([]byte("Token")), st)
	owner := meridian.BytesToAddress([]byte("pool-owner"))

	assert.Nil(t, pool.Initialize(owner, tok, 2, 100, 10000))
	cfg, err := pool.Config()
	assert.Nil(t, err)

	authCap := authority.NewCapability(poolAddr, cfg.AuthBump, meridian.LabelAuthority)
	return &fixture{pool, tok, owner, st}, authCap
}

func (f *fixture) fundDepositor(t *testing.T, cap *authority.Capability, addr meridian.Address, amount uint64) {
	assert.Nil(t, f.tok.MintTo(cap, addr, amount))
}

func TestInitialize(t *testing.T) {
	f, authCap := newFixture(t)

	cfg, err := f.pool.Config()
	assert.Nil(t, err)
	assert.Equal(t, f.owner, cfg.Owner)
	assert.Equal(t, f.tok.Address(), cfg.TokenID)
	assert.Equal(t, uint64(2), cfg.RewardRate)
	assert.Equal(t, uint64(100), cfg.StartSlot)
	assert.Equal(t, uint64(10000), cfg.EndSlot)

	// the pool holds the mint authority after setup
	mintAuth, _ := f.tok.MintAuthority()
	assert.Equal(t, authCap.Address(), mintAuth)

	// the vault account answers only to the derived identity
	vault := f.pool.VaultAddress(cfg.TokenID, cfg.VaultBump)
	vaultAuth, _ := f.tok.AccountAuthority(vault)
	assert.Equal(t, authCap.Address(), vaultAuth)

	err = f.pool.Initialize(f.owner, f.tok, 3, 0, 0)
	assert.ErrorIs(t, err, reverts.ErrAlreadyInitialized)
}

func TestStake(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 1000)

	err := f.pool.Stake(alice, f.tok, 0, 100)
	assert.ErrorIs(t, err, reverts.ErrZeroAmount)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 500, 100))
	pos, err := f.pool.Position(alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), pos.Amount)
	assert.Equal(t, uint64(100), pos.DepositSlot)
	assert.Equal(t, uint64(0), pos.RewardDebt)

	cfg, _ := f.pool.Config()
	vaultBal, _ := f.tok.Balance(f.pool.VaultAddress(cfg.TokenID, cfg.VaultBump))
	assert.Equal(t, uint64(500), vaultBal)
	aliceBal, _ := f.tok.Balance(alice)
	assert.Equal(t, uint64(500), aliceBal)
}

func TestStakeWrongToken(t *testing.T) {
	f, _ := newFixture(t)
	other := token.New(meridian.BytesToAddress([]byte("Token2")), f.st)
	err := f.pool.Stake(meridian.BytesToAddress([]byte("alice")), other, 1, 100)
	assert.ErrorIs(t, err, reverts.ErrInvalidAsset)
}

func TestRewardAccrual(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 500)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 500, 100))

	// 500 tokens over 50 slots at rate 2
	pending, err := f.pool.PendingReward(alice, 150)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50_000), pending)

	reward, err := f.pool.Claim(alice, f.tok, 150)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50_000), reward)

	bal, _ := f.tok.Balance(alice)
	assert.Equal(t, uint64(50_000), bal)

	// the claim restarted the accrual
	pos, _ := f.pool.Position(alice)
	assert.Equal(t, uint64(150), pos.DepositSlot)
	pending, _ = f.pool.PendingReward(alice, 150)
	assert.Equal(t, uint64(0), pending)
}

func TestClaimNothing(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 100)
	assert.Nil(t, f.pool.Stake(alice, f.tok, 100, 100))

	_, err := f.pool.Claim(alice, f.tok, 100)
	assert.ErrorIs(t, err, reverts.ErrZeroAmount)
}

func TestStakeMoreSettlesFirst(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 1000)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 500, 100))
	// the pending 10_000 is minted before the new deposit counts
	assert.Nil(t, f.pool.Stake(alice, f.tok, 500, 110))

	bal, _ := f.tok.Balance(alice)
	assert.Equal(t, uint64(10_000), bal)
	pos, _ := f.pool.Position(alice)
	assert.Equal(t, uint64(1000), pos.Amount)
	assert.Equal(t, uint64(110), pos.DepositSlot)

	// 1000 tokens over 10 slots at rate 2
	pending, _ := f.pool.PendingReward(alice, 120)
	assert.Equal(t, uint64(20_000), pending)
}

func TestUnstakeClosesPosition(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 500)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 500, 100))
	assert.Nil(t, f.pool.Unstake(alice, f.tok, 160))

	// stake back plus the reward for 60 slots
	bal, _ := f.tok.Balance(alice)
	assert.Equal(t, uint64(500+500*60*2), bal)

	cfg, _ := f.pool.Config()
	vaultBal, _ := f.tok.Balance(f.pool.VaultAddress(cfg.TokenID, cfg.VaultBump))
	assert.Equal(t, uint64(0), vaultBal)

	// the record is gone; a later stake starts a fresh position
	_, err := f.pool.Position(alice)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 100, 200))
	pos, _ := f.pool.Position(alice)
	assert.Equal(t, uint64(100), pos.Amount)
	assert.Equal(t, uint64(200), pos.DepositSlot)
}

func TestUnstakeNothingStaked(t *testing.T) {
	f, _ := newFixture(t)
	err := f.pool.Unstake(meridian.BytesToAddress([]byte("alice")), f.tok, 100)
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)
}

func TestWindowIsInformational(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 200)

	// staking before the start slot and accruing past the end slot both
	// work; the window is recorded, not enforced
	assert.Nil(t, f.pool.Stake(alice, f.tok, 200, 50))
	pending, err := f.pool.PendingReward(alice, 20000)
	assert.Nil(t, err)
	assert.Equal(t, uint64(200*(20000-50)*2), pending)
}

func TestSlotRegression(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	f.fundDepositor(t, authCap, alice, 100)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 100, 100))
	_, err := f.pool.Claim(alice, f.tok, 99)
	assert.ErrorIs(t, err, reverts.ErrTimeRegression)
	err = f.pool.Unstake(alice, f.tok, 99)
	assert.ErrorIs(t, err, reverts.ErrTimeRegression)
}

func TestDepositorIsolation(t *testing.T) {
	f, authCap := newFixture(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	bob := meridian.BytesToAddress([]byte("bob"))
	f.fundDepositor(t, authCap, alice, 300)
	f.fundDepositor(t, authCap, bob, 700)

	assert.Nil(t, f.pool.Stake(alice, f.tok, 300, 100))
	assert.Nil(t, f.pool.Stake(bob, f.tok, 700, 120))

	assert.Nil(t, f.pool.Unstake(bob, f.tok, 130))

	// bob's exit does not disturb alice's position or accrual
	pos, err := f.pool.Position(alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(300), pos.Amount)
	pending, _ := f.pool.PendingReward(alice, 130)
	assert.Equal(t, uint64(300*30*2), pending)

	bobBal, _ := f.tok.Balance(bob)
	assert.Equal(t, uint64(700+700*10*2), bobBal)
}
