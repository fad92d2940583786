// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/bits"

	"github.com/meridianchain/meridian/contracts/reverts"
)

// SafeAdd returns a+b, failing with Overflow instead of wrapping.
func SafeAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, reverts.ErrOverflow
	}
	return sum, nil
}

// SafeSub returns a-b, failing with Underflow instead of wrapping.
func SafeSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, reverts.ErrUnderflow
	}
	return diff, nil
}

// SafeMul returns a*b, failing with Overflow instead of wrapping.
func SafeMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, reverts.ErrOverflow
	}
	return lo, nil
}
