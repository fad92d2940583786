// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/contracts/authority"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

func TestAddressOf(t *testing.T) {
	program := meridian.BytesToAddress([]byte("p1"))
	seed := []byte("owner")

	a1 := authority.AddressOf(program, 255, []byte("auth"), seed)
	a2 := authority.AddressOf(program, 255, []byte("auth"), seed)
	assert.Equal(t, a1, a2)

	// any input change moves the address
	assert.NotEqual(t, a1, authority.AddressOf(program, 254, []byte("auth"), seed))
	assert.NotEqual(t, a1, authority.AddressOf(program, 255, []byte("vault"), seed))
	assert.NotEqual(t, a1, authority.AddressOf(program, 255, []byte("auth"), []byte("other")))
	assert.NotEqual(t, a1, authority.AddressOf(meridian.BytesToAddress([]byte("p2")), 255, []byte("auth"), seed))
}

func TestDerive(t *testing.T) {
	db, _ := lvldb.NewMem()
	st := state.New(db)

	program := meridian.BytesToAddress([]byte("p1"))

	addr, bump, err := authority.Derive(st, program, []byte("auth"))
	assert.Nil(t, err)
	assert.Equal(t, uint8(255), bump)
	assert.Equal(t, authority.AddressOf(program, 255, []byte("auth")), addr)

	// an occupied address pushes the derivation to the next bump
	st.SetBalance(addr, big.NewInt(1))
	addr2, bump2, err := authority.Derive(st, program, []byte("auth"))
	assert.Nil(t, err)
	assert.Equal(t, uint8(254), bump2)
	assert.NotEqual(t, addr, addr2)
}

func TestCapability(t *testing.T) {
	program := meridian.BytesToAddress([]byte("p1"))
	seed := []byte("owner")

	cap := authority.NewCapability(program, 250, []byte("vault"), seed)
	assert.Equal(t, uint8(250), cap.Bump())
	assert.Equal(t, authority.AddressOf(program, 250, []byte("vault"), seed), cap.Address())

	// a capability with the wrong seed set signs for a different identity
	wrong := authority.NewCapability(program, 250, []byte("vault"), []byte("other"))
	assert.NotEqual(t, cap.Address(), wrong.Address())
}
