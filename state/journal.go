// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// journal records pending writes on top of a committed source, with an undo
// log so that any suffix of writes can be rolled back. It acts as a map with
// checkpoint-revert manner.
type journal struct {
	src   func(key any) (any, error)
	cache map[any]any // read-through cache of committed values
	dirty map[any]any // pending writes
	undo  []undoEntry
}

type undoEntry struct {
	key     any
	prev    any
	hadPrev bool
}

func newJournal(src func(key any) (any, error)) *journal {
	return &journal{
		src:   src,
		cache: make(map[any]any),
		dirty: make(map[any]any),
	}
}

// get returns the pending value for key, falling back to the committed source.
func (j *journal) get(key any) (any, error) {
	if v, ok := j.dirty[key]; ok {
		return v, nil
	}
	if v, ok := j.cache[key]; ok {
		return v, nil
	}
	v, err := j.src(key)
	if err != nil {
		return nil, err
	}
	j.cache[key] = v
	return v, nil
}

// put records a pending write and its undo entry.
func (j *journal) put(key, value any) {
	prev, hadPrev := j.dirty[key]
	j.undo = append(j.undo, undoEntry{key: key, prev: prev, hadPrev: hadPrev})
	j.dirty[key] = value
}

// checkpoint returns a revision restorable via revertTo.
func (j *journal) checkpoint() int {
	return len(j.undo)
}

// revertTo rolls back all writes made after the given revision.
func (j *journal) revertTo(rev int) {
	for len(j.undo) > rev {
		e := j.undo[len(j.undo)-1]
		j.undo = j.undo[:len(j.undo)-1]
		if e.hadPrev {
			j.dirty[e.key] = e.prev
		} else {
			delete(j.dirty, e.key)
		}
	}
}

// each iterates all pending writes. Returning false stops the iteration.
func (j *journal) each(fn func(key, value any) bool) {
	for k, v := range j.dirty {
		if !fn(k, v) {
			return
		}
	}
}

// commit moves all pending writes into the committed cache and drops the undo log.
func (j *journal) commit() {
	for k, v := range j.dirty {
		j.cache[k] = v
	}
	j.dirty = make(map[any]any)
	j.undo = j.undo[:0]
}
