// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tokenstake implements the token staking pool. Staked tokens are
// custodied in a single vault account authorized to a derived program
// identity; rewards are minted on the debt model, where the liability is
// recomputed from the deposit slot on every settlement and subtracted last.
package tokenstake

import (
	"github.com/meridianchain/meridian/accrual"
	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/contracts/reverts"
	"github.com/meridianchain/meridian/contracts/token"
	"github.com/meridianchain/meridian/log"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

var logger = log.WithContext("pkg", "tokenstake")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

var configKey = meridian.Blake2b(meridian.LabelConfig)

// TokenStake binds the token staking pool at the given contract address.
type TokenStake struct {
	addr  meridian.Address
	state *state.State
}

// New create a new instance.
func New(addr meridian.Address, state *state.State) *TokenStake {
	return &TokenStake{addr, state}
}

func (t *TokenStake) recordKey(owner meridian.Address) meridian.Bytes32 {
	return meridian.Blake2b(meridian.LabelUserInfo, owner.Bytes())
}

func (t *TokenStake) getAccount(owner meridian.Address) (*StakeAccount, error) {
	var rec StakeAccount
	if err := t.state.GetStructuredStorage(t.addr, t.recordKey(owner), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *TokenStake) setAccount(owner meridian.Address, rec *StakeAccount) error {
	return t.state.SetStructuredStorage(t.addr, t.recordKey(owner), rec)
}

// Config returns the pool configuration.
// ErrNotInitialized if the pool was never set up.
func (t *TokenStake) Config() (*ConfigRecord, error) {
	var cfg ConfigRecord
	if err := t.state.GetStructuredStorage(t.addr, configKey, &cfg); err != nil {
		return nil, err
	}
	if cfg.IsEmpty() {
		return nil, reverts.ErrNotInitialized
	}
	return &cfg, nil
}

// AuthorityAddress returns the pool's derived signing identity.
func (t *TokenStake) AuthorityAddress(bump uint8) meridian.Address {
	return authority.AddressOf(t.addr, bump, meridian.LabelAuthority)
}

// VaultAddress returns the pool's derived custody account for the given token.
func (t *TokenStake) VaultAddress(tokenID meridian.Address, bump uint8) meridian.Address {
	return authority.AddressOf(t.addr, bump, meridian.LabelVault, tokenID.Bytes())
}

func (t *TokenStake) authCapability(cfg *ConfigRecord) *authority.Capability {
	return authority.NewCapability(t.addr, cfg.AuthBump, meridian.LabelAuthority)
}

// Initialize sets up the pool exactly once: writes the configuration,
// derives the signing identity and vault, creates the vault token account
// under the derived identity's authority, and takes over the token's mint
// authority so reward minting goes through the pool alone.
func (t *TokenStake) Initialize(owner meridian.Address, tok *token.Token, rewardRate, startSlot, endSlot uint64) error {
	var cfg ConfigRecord
	if err := t.state.GetStructuredStorage(t.addr, configKey, &cfg); err != nil {
		return err
	}
	if !cfg.IsEmpty() {
		return reverts.ErrAlreadyInitialized
	}

	authAddr, authBump, err := authority.Derive(t.state, t.addr, meridian.LabelAuthority)
	if err != nil {
		return err
	}
	vaultAddr, vaultBump, err := authority.Derive(t.state, t.addr, meridian.LabelVault, tok.Address().Bytes())
	if err != nil {
		return err
	}

	if err := tok.CreateAccount(vaultAddr, authAddr); err != nil {
		return err
	}
	if err := tok.SetMintAuthority(owner, authAddr); err != nil {
		return err
	}

	cfg = ConfigRecord{
		Owner:      owner,
		TokenID:    tok.Address(),
		RewardRate: rewardRate,
		StartSlot:  startSlot,
		EndSlot:    endSlot,
		AuthBump:   authBump,
		VaultBump:  vaultBump,
	}
	if err := t.state.SetStructuredStorage(t.addr, configKey, &cfg); err != nil {
		return err
	}

	logger.Info("pool initialized",
		"owner", owner,
		"token", tok.Address(),
		"rate", rewardRate,
		"vault", vaultAddr)
	return nil
}

// Stake settles the outstanding reward, mints it to the depositor, then
// moves amount of the pool token into the vault. Settlement strictly
// precedes the balance change so the new deposit earns nothing for the
// elapsed slots.
func (t *TokenStake) Stake(owner meridian.Address, tok *token.Token, amount, nowSlot uint64) error {
	cfg, err := t.Config()
	if err != nil {
		return err
	}
	if tok.Address() != cfg.TokenID {
		return reverts.ErrInvalidAsset
	}
	if amount == 0 {
		return reverts.ErrZeroAmount
	}

	rec, err := t.getAccount(owner)
	if err != nil {
		return err
	}
	if rec.IsEmpty() {
		_, bump, err := authority.Derive(t.state, t.addr, meridian.LabelUserInfo, owner.Bytes())
		if err != nil {
			return err
		}
		rec = &StakeAccount{Owner: owner, Bump: bump}
	} else if rec.Owner != owner {
		// record keys are derived from the owner, so a stored-owner
		// mismatch can only mean key-derivation drift or corruption
		return reverts.ErrUnauthorized
	}

	if err := t.settle(cfg, tok, owner, rec, nowSlot); err != nil {
		return err
	}

	if err := tok.Transfer(owner, owner, t.VaultAddress(cfg.TokenID, cfg.VaultBump), amount); err != nil {
		return err
	}

	staked, err := accrual.SafeAdd(rec.Amount, amount)
	if err != nil {
		return err
	}
	rec.Amount = staked
	rec.DepositSlot = nowSlot
	rec.RewardDebt = 0
	if err := t.setAccount(owner, rec); err != nil {
		return err
	}

	logger.Info("staked", "owner", owner, "amount", amount, "total", rec.Amount)
	return nil
}

// Unstake settles and mints the outstanding reward, releases the whole
// staked balance from the vault back to the depositor under the derived
// identity's delegated signing, and closes the account.
func (t *TokenStake) Unstake(owner meridian.Address, tok *token.Token, nowSlot uint64) error {
	cfg, err := t.Config()
	if err != nil {
		return err
	}
	if tok.Address() != cfg.TokenID {
		return reverts.ErrInvalidAsset
	}

	rec, err := t.getAccount(owner)
	if err != nil {
		return err
	}
	if rec.IsEmpty() || rec.Amount == 0 {
		return reverts.ErrInsufficientStake
	}
	if rec.Owner != owner {
		return reverts.ErrUnauthorized
	}

	if err := t.settle(cfg, tok, owner, rec, nowSlot); err != nil {
		return err
	}

	amount := rec.Amount
	vault := t.VaultAddress(cfg.TokenID, cfg.VaultBump)
	if err := tok.TransferWithAuthority(t.authCapability(cfg), vault, owner, amount); err != nil {
		return err
	}

	// full exit closes the record; a later stake starts fresh
	if err := t.setAccount(owner, &StakeAccount{}); err != nil {
		return err
	}

	logger.Info("unstaked", "owner", owner, "amount", amount)
	return nil
}

// Claim settles and mints the outstanding reward without touching the
// staked balance. ErrZeroAmount when nothing is outstanding.
func (t *TokenStake) Claim(owner meridian.Address, tok *token.Token, nowSlot uint64) (uint64, error) {
	cfg, err := t.Config()
	if err != nil {
		return 0, err
	}
	if tok.Address() != cfg.TokenID {
		return 0, reverts.ErrInvalidAsset
	}

	rec, err := t.getAccount(owner)
	if err != nil {
		return 0, err
	}
	if rec.IsEmpty() {
		return 0, reverts.ErrAccountNotFound
	}
	if rec.Owner != owner {
		return 0, reverts.ErrUnauthorized
	}

	st := rec.settleState()
	reward, err := accrual.SettleDebt(&st, nowSlot, cfg.RewardRate)
	if err != nil {
		return 0, err
	}
	if reward == 0 {
		return 0, reverts.ErrZeroAmount
	}
	if err := tok.MintTo(t.authCapability(cfg), owner, reward); err != nil {
		return 0, err
	}

	rec.DepositSlot = st.DepositTime
	rec.RewardDebt = st.RewardDebt
	if err := t.setAccount(owner, rec); err != nil {
		return 0, err
	}

	logger.Info("reward claimed", "owner", owner, "reward", reward)
	return reward, nil
}

// Position returns the depositor's ledger record.
// ErrAccountNotFound if the depositor has no open position.
func (t *TokenStake) Position(owner meridian.Address) (*StakeAccount, error) {
	rec, err := t.getAccount(owner)
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

// PendingReward returns the outstanding reward at the given slot without
// mutating the record.
func (t *TokenStake) PendingReward(owner meridian.Address, nowSlot uint64) (uint64, error) {
	cfg, err := t.Config()
	if err != nil {
		return 0, err
	}
	rec, err := t.Position(owner)
	if err != nil {
		return 0, err
	}
	st := rec.settleState()
	return accrual.SettleDebt(&st, nowSlot, cfg.RewardRate)
}

// settle folds the account's outstanding reward into the depositor's token
// balance and advances the record's slot mark. Minting a zero reward is
// skipped but the mark still advances.
func (t *TokenStake) settle(cfg *ConfigRecord, tok *token.Token, owner meridian.Address, rec *StakeAccount, nowSlot uint64) error {
	st := rec.settleState()
	reward, err := accrual.SettleDebt(&st, nowSlot, cfg.RewardRate)
	if err != nil {
		return err
	}
	if reward > 0 {
		if err := tok.MintTo(t.authCapability(cfg), owner, reward); err != nil {
			return err
		}
	}
	rec.DepositSlot = st.DepositTime
	rec.RewardDebt = st.RewardDebt
	return nil
}
