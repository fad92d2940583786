// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package coinstake

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/accrual"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

// StakeAccount is the per-depositor ledger record.
type StakeAccount struct {
	Owner          meridian.Address
	StakedAmount   uint64
	TotalPoints    uint64
	LastUpdateTime uint64
	Bump           uint8
}

var (
	_ state.StorageEncoder = (*StakeAccount)(nil)
	_ state.StorageDecoder = (*StakeAccount)(nil)
)

// IsEmpty returns whether the record was never initialized.
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
func (a *StakeAccount) settleState() accrual.PointsState {
	return accrual.PointsState{
		Staked:      a.StakedAmount,
		TotalPoints: a.TotalPoints,
		LastTime:    a.LastUpdateTime,
	}
}
