// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
)

// Stage abstracts the pending changes of a state, ready to be committed to
// the backing kv store in one batch.
type Stage struct {
	err   error
	state *State
	batch func() error
}

func newStage(s *State) *Stage {
	batch := s.db.NewBatch()

	var err error
	s.journal.each(func(key, value any) bool {
		switch k := key.(type) {
		case accountKey:
			acc := value.(*Account)
			var data []byte
			if data, err = encodeAccount(acc); err != nil {
				return false
			}
			dbKey := accountDBKey(meridian.Address(k))
			if len(data) == 0 {
				err = batch.Delete(dbKey)
			} else {
				err = batch.Put(dbKey, data)
			}
			metricStateCounter().AddWithLabel(1, map[string]string{"type": "account", "io": "save"})
		case storageKey:
			raw := value.(rlp.RawValue)
			dbKey := storageDBKey(k.addr, k.key)
			if len(raw) == 0 {
				err = batch.Delete(dbKey)
			} else {
				err = batch.Put(dbKey, raw)
			}
			metricStateCounter().AddWithLabel(1, map[string]string{"type": "storage", "io": "save"})
		}
		return err == nil
	})

	return &Stage{
		err:   err,
		state: s,
		batch: batch.Write,
	}
}

// Commit commits the batch and flushes the journal.
// The state remains usable afterwards.
func (s *Stage) Commit() error {
	if s.err != nil {
		return &Error{s.err}
	}
	if err := s.batch(); err != nil {
		return &Error{err}
	}
	s.state.journal.commit()
	return nil
}
