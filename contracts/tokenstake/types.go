// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenstake

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/accrual"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

// ConfigRecord is the pool configuration, written once at initialization.
// StartSlot and EndSlot describe the intended operating window; handlers
// record them but do not gate on them.
type ConfigRecord struct {
	Owner      meridian.Address
	TokenID    meridian.Address
	RewardRate uint64
	StartSlot  uint64
	EndSlot    uint64
	AuthBump   uint8
	VaultBump  uint8
}

var (
	_ state.StorageEncoder = (*ConfigRecord)(nil)
	_ state.StorageDecoder = (*ConfigRecord)(nil)
)

// IsEmpty returns whether the pool was never initialized.
func (c *ConfigRecord) IsEmpty() bool {
	return c.Owner.IsZero()
}

func (c *ConfigRecord) Encode() ([]byte, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(c)
}

func (c *ConfigRecord) Decode(data []byte) error {
	if len(data) == 0 {
		*c = ConfigRecord{}
		return nil
	}
	return rlp.DecodeBytes(data, c)
}

// StakeAccount is the per-depositor ledger record of the token pool. Unlike
// the coin ledger the record is closed on unstake, so an empty read means
// either never-staked or fully exited.
type StakeAccount struct {
	Owner       meridian.Address
	Amount      uint64
	DepositSlot uint64
	RewardDebt  uint64
	Bump        uint8
}

var (
	_ state.StorageEncoder = (*StakeAccount)(nil)
	_ state.StorageDecoder = (*StakeAccount)(nil)
)

// IsEmpty returns whether the record does not exist.
func (a *StakeAccount) IsEmpty() bool {
	return a.Owner.IsZero()
}

func (a *StakeAccount) Encode() ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func (a *StakeAccount) Decode(data []byte) error {
	if len(data) == 0 {
		*a = StakeAccount{}
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

// settleState projects the record into the accrual engine's snapshot shape.
func (a *StakeAccount) settleState() accrual.DebtState {
	return accrual.DebtState{
		Staked:      a.Amount,
		RewardDebt:  a.RewardDebt,
		DepositTime: a.DepositSlot,
	}
}
