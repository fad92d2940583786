// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual implements the settlement engine shared by both staking
// ledgers. It is pure: the clock reading is an explicit parameter, the only
// side effect is mutating the snapshot passed in, and any transfer realizing
// a reward is the caller's job.
package accrual

import (
	"github.com/holiman/uint256"

	"github.com/meridianchain/meridian/contracts/reverts"
)

// PointsRate parameterizes the accumulator model: points accrued per whole
// staked coin per time unit.
type PointsRate struct {
	PointsPerUnitTime uint64 // points per whole coin per time unit, in the points scale
	UnitScale         uint64 // base units per whole coin
	TimeScale         uint64 // clock readings per time unit
}

// PointsState is the settlement snapshot of an accumulator-model account.
type PointsState struct {
	Staked      uint64
	TotalPoints uint64
	LastTime    uint64
}

// DebtState is the settlement snapshot of a debt-model account.
type DebtState struct {
	Staked      uint64
	RewardDebt  uint64
	DepositTime uint64
}

// SettlePoints folds the reward accrued since the last settlement into the
// accumulator and advances the time mark. The time mark advances even when
// nothing accrued, so a dormant account cannot burst-accrue over a gap once
// it stakes again.
func SettlePoints(st *PointsState, now uint64, rate PointsRate) (earned uint64, err error) {
	if now < st.LastTime {
		return 0, reverts.ErrTimeRegression
	}
	elapsed := now - st.LastTime
	if elapsed > 0 && st.Staked > 0 {
		if earned, err = pointsEarned(st.Staked, elapsed, rate); err != nil {
			return 0, err
		}
		total, err := SafeAdd(st.TotalPoints, earned)
		if err != nil {
			return 0, err
		}
		st.TotalPoints = total
	}
	st.LastTime = now
	return earned, nil
}

// ProjectPoints computes the would-be settled total at the given time without
// mutating the snapshot.
func ProjectPoints(st *PointsState, now uint64, rate PointsRate) (uint64, error) {
	cpy := *st
	if _, err := SettlePoints(&cpy, now, rate); err != nil {
		return 0, err
	}
	return cpy.TotalPoints, nil
}

// SettleDebt computes the outstanding reward of a debt-model account,
// advances the time mark and zeroes the debt. The caller must realize the
// returned reward immediately (the engine has just zeroed the liability).
func SettleDebt(st *DebtState, now uint64, rate uint64) (reward uint64, err error) {
	if now < st.DepositTime {
		return 0, reverts.ErrTimeRegression
	}
	elapsed := now - st.DepositTime

	// widen before multiplying; three u64 factors always fit 256 bits,
	// the narrow back to u64 is where overflow shows.
	x := uint256.NewInt(st.Staked)
	x.Mul(x, uint256.NewInt(elapsed))
	x.Mul(x, uint256.NewInt(rate))
	if !x.IsUint64() {
		return 0, reverts.ErrOverflow
	}

	// the debt subtraction is the last step, never folded into the product.
	nominal := x.Uint64()
	if st.RewardDebt > nominal {
		return 0, reverts.ErrUnderflow
	}
	reward = nominal - st.RewardDebt

	st.DepositTime = now
	st.RewardDebt = 0
	return reward, nil
}

// pointsEarned is the accumulator-model formula:
//
//	staked * elapsed * rate / unitScale / timeScale
//
// multiply-multiply-divide-divide, wide intermediates, narrowing last.
func pointsEarned(staked, elapsed uint64, rate PointsRate) (uint64, error) {
	x := uint256.NewInt(staked)
	x.Mul(x, uint256.NewInt(elapsed))
	x.Mul(x, uint256.NewInt(rate.PointsPerUnitTime))
	x.Div(x, uint256.NewInt(rate.UnitScale))
	x.Div(x, uint256.NewInt(rate.TimeScale))
	if !x.IsUint64() {
		return 0, reverts.ErrOverflow
	}
	return x.Uint64(), nil
}
