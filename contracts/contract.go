// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"github.com/meridianchain/meridian/meridian"
)

type contract struct {
	Name    string
	Address meridian.Address
}

// mustLoadContract binds a native contract under its well-known address.
// Addresses are the contract name right-aligned in the address space, so
// they are stable across deployments and readable in dumps.
func mustLoadContract(name string) *contract {
	if len(name) == 0 || len(name) > 20 {
		panic("contract name must fit an address")
	}
	return &contract{
		Name:    name,
		Address: meridian.BytesToAddress([]byte(name)),
	}
}
