// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/kv"
	"github.com/meridianchain/meridian/meridian"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the world state: coin balances per account and per-account
// structured storage. All mutations are journaled and become durable only
// when staged and committed; any suffix of mutations can be reverted via
// checkpoints.
type State struct {
	db      kv.GetPutter
	journal *journal
}

type (
	accountKey meridian.Address
	storageKey struct {
		addr meridian.Address
		key  meridian.Bytes32
	}
)

// New create state object, backed by the given kv store.
func New(db kv.GetPutter) *State {
	s := &State{db: db}
	s.journal = newJournal(func(key any) (any, error) {
		return s.load(key)
	})
	return s
}

// load fetches the committed value of a journal key from the kv store.
func (s *State) load(key any) (any, error) {
	switch k := key.(type) {
	case accountKey:
		data, err := s.db.Get(accountDBKey(meridian.Address(k)))
		if err != nil {
			if s.db.IsNotFound(err) {
				return emptyAccount(), nil
			}
			return nil, err
		}
		metricStateCounter().AddWithLabel(1, map[string]string{"type": "account", "io": "load"})
		return decodeAccount(data)
	case storageKey:
		data, err := s.db.Get(storageDBKey(k.addr, k.key))
		if err != nil {
			if s.db.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		metricStateCounter().AddWithLabel(1, map[string]string{"type": "storage", "io": "load"})
		return rlp.RawValue(data), nil
	}
	panic(fmt.Errorf("unexpected journal key type %+v", key))
}

func (s *State) getAccount(addr meridian.Address) (*Account, error) {
	v, err := s.journal.get(accountKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*Account), nil
}

// GetBalance returns coin balance for the given address.
func (s *State) GetBalance(addr meridian.Address) (*big.Int, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// SetBalance set coin balance for the given address.
func (s *State) SetBalance(addr meridian.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return &Error{fmt.Errorf("negative balance for %v", addr)}
	}
	s.journal.put(accountKey(addr), &Account{Balance: balance})
	return nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty().
func (s *State) Exists(addr meridian.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !acc.IsEmpty(), nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr meridian.Address, key meridian.Bytes32) (rlp.RawValue, error) {
	v, err := s.journal.get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
// An empty raw value deletes the storage slot.
func (s *State) SetRawStorage(addr meridian.Address, key meridian.Bytes32, raw rlp.RawValue) {
	s.journal.put(storageKey{addr, key}, raw)
}

// DeleteStorage clears the storage slot of the given address and key.
func (s *State) DeleteStorage(addr meridian.Address, key meridian.Bytes32) {
	s.SetRawStorage(addr, key, nil)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr meridian.Address, key meridian.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr meridian.Address, key meridian.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStructuredStorage get and decode structured storage value.
// See codec.go for supported value types.
func (s *State) GetStructuredStorage(addr meridian.Address, key meridian.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		return decodeStorageValue(raw, val)
	})
}

// SetStructuredStorage encode and set structured storage value.
func (s *State) SetStructuredStorage(addr meridian.Address, key meridian.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		return encodeStorageValue(val)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.journal.checkpoint()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.journal.revertTo(revision)
}

// Stage makes a stage object to commit all pending changes to the kv store.
func (s *State) Stage() *Stage {
	return newStage(s)
}
