// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
)

// StorageEncoder storage value types may implement this to customize encoding.
// Returning a nil slice clears the storage slot.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder storage value types may implement this to customize decoding.
// An empty slice is passed for an unset slot.
type StorageDecoder interface {
	Decode([]byte) error
}

func encodeStorageValue(val any) ([]byte, error) {
	switch v := val.(type) {
	case StorageEncoder:
		return v.Encode()
	case *big.Int:
		if v.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(v)
	case uint64:
		if v == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(v)
	case meridian.Address:
		if v.IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(bytes.TrimLeft(v.Bytes(), "\x00"))
	case meridian.Bytes32:
		if v.IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(bytes.TrimLeft(v.Bytes(), "\x00"))
	}
	return nil, fmt.Errorf("storage encode: unsupported type %T", val)
}

func decodeStorageValue(raw []byte, val any) error {
	switch v := val.(type) {
	case StorageDecoder:
		return v.Decode(raw)
	case *big.Int:
		if len(raw) == 0 {
			v.SetUint64(0)
			return nil
		}
		return rlp.DecodeBytes(raw, v)
	case *uint64:
		if len(raw) == 0 {
			*v = 0
			return nil
		}
		return rlp.DecodeBytes(raw, v)
	case *meridian.Address:
		if len(raw) == 0 {
			*v = meridian.Address{}
			return nil
		}
		_, content, _, err := rlp.Split(raw)
		if err != nil {
			return err
		}
		*v = meridian.BytesToAddress(content)
		return nil
	case *meridian.Bytes32:
		if len(raw) == 0 {
			*v = meridian.Bytes32{}
			return nil
		}
		_, content, _, err := rlp.Split(raw)
		if err != nil {
			return err
		}
		*v = meridian.BytesToBytes32(content)
		return nil
	}
	return fmt.Errorf("storage decode: unsupported type %T", val)
}
