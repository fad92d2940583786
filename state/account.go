// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
)

// Account is the persisted representation of an account.
// RLP encoded objects are stored under the account key space.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns if an account is empty.
// An empty account is not persisted.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

// key spaces of the backing kv store.
var (
	accountPrefix = []byte("a")
	storagePrefix = []byte("s")
)

func accountDBKey(addr meridian.Address) []byte {
	return append(append([]byte(nil), accountPrefix...), addr.Bytes()...)
}

func storageDBKey(addr meridian.Address, key meridian.Bytes32) []byte {
	k := make([]byte, 0, len(storagePrefix)+meridian.AddressLength+32)
	k = append(k, storagePrefix...)
	k = append(k, addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func encodeAccount(a *Account) ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func decodeAccount(data []byte) (*Account, error) {
	if len(data) == 0 {
		return emptyAccount(), nil
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
