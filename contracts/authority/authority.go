// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority derives program-owned signing identities.
//
// A derived identity is reproducible from public inputs — the deriving
// program, a fixed label and optional seeds — plus a small bump discriminant
// stored at creation time. No private key exists for it; the ability to act
// as the identity is represented by a Capability handle, which only code
// holding the right seeds can rebuild.
package authority

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

// AddressOf derives the identity of (program, label, seeds) under an
// explicit bump.
func AddressOf(program meridian.Address, bump uint8, label []byte, seeds ...[]byte) meridian.Address {
	data, _ := rlp.EncodeToBytes([]any{program, label, seeds, bump})
	return meridian.BytesToAddress(meridian.Blake2b(data).Bytes()[12:])
}

// Derive finds the derived identity of (program, label, seeds): the first
// bump, counting down from 255, whose address is not occupied by an existing
// account. The bump must be stored by the caller; re-derivation goes through
// AddressOf or NewCapability with the stored value.
func Derive(st *state.State, program meridian.Address, label []byte, seeds ...[]byte) (meridian.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr := AddressOf(program, uint8(bump), label, seeds...)
		exists, err := st.Exists(addr)
		if err != nil {
			return meridian.Address{}, 0, err
		}
		if !exists {
			return addr, uint8(bump), nil
		}
	}
	return meridian.Address{}, 0, errors.New("authority derivation exhausted")
}

// Capability proves the right to sign for a derived identity. It can only be
// rebuilt by code that knows the full seed set, so holding one is holding
// the release authority itself.
type Capability struct {
	program meridian.Address
	label   []byte
	seeds   [][]byte
	bump    uint8
}

// NewCapability rebuilds the capability handle from the stored bump.
func NewCapability(program meridian.Address, bump uint8, label []byte, seeds ...[]byte) *Capability {
	return &Capability{
		program: program,
		label:   label,
		seeds:   seeds,
		bump:    bump,
	}
}

// Address re-derives the identity the capability signs for.
func (c *Capability) Address() meridian.Address {
	return AddressOf(c.program, c.bump, c.label, c.seeds...)
}

// Bump returns the stored bump discriminant.
func (c *Capability) Bump() uint8 {
	return c.bump
}
