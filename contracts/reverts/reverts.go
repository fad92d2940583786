// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts enumerates the conditions that abort a contract operation.
// There is no hierarchy and no local recovery: any of these errors reverts
// the whole operation with no partial state change.
package reverts

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount amount must be greater than 0.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrInsufficientStake requested more than the staked amount.
	ErrInsufficientStake = errors.New("insufficient staked amount")

	// ErrInsufficientFunds source account balance below transfer amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized caller identity mismatch.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrOverflow arithmetic overflow.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrUnderflow arithmetic underflow.
	ErrUnderflow = errors.New("arithmetic underflow")

	// ErrTimeRegression clock reading precedes the last settlement time.
	ErrTimeRegression = errors.New("time regression")

	// ErrZeroAmount claim with nothing to claim.
	ErrZeroAmount = errors.New("zero amount")

	// ErrInvalidAsset asset identity mismatch against config.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrAlreadyInitialized config record already written.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrNotInitialized config record missing.
	ErrNotInitialized = errors.New("not initialized")

	// ErrAccountExists account creation where one already exists.
	ErrAccountExists = errors.New("account already exists")

	// ErrAccountNotFound no account for the given owner.
	ErrAccountNotFound = errors.New("account not found")
)
