// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meridian

// Constants of the staking ledgers.
const (
	// UnitScale base units per whole coin.
	UnitScale uint64 = 1_000_000_000

	// PointsPerDay points accrued per whole staked coin per day,
	// in the fixed-point points scale.
	PointsPerDay uint64 = 1_000_000

	// PointsScale fixed-point scale of the points accumulator.
	// Claimable points are TotalPoints/PointsScale.
	PointsScale uint64 = 1_000_000

	SecondsPerDay uint64 = 86_400
)

// Seed labels of derived accounts. The same labels the deriving side and the
// verifying side must agree on.
var (
	LabelStakeAccount = []byte("client")
	LabelConfig       = []byte("config")
	LabelAuthority    = []byte("auth")
	LabelVault        = []byte("vault")
	LabelUserInfo     = []byte("user-info")
)
