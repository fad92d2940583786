// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv provides the environment a native method executes in: the
// authenticated caller, the clock readings of the enclosing block and the
// state handle. The core never reads a live clock; both time values are
// injected here by the host.
package xenv

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

// BlockContext block context.
// Number is a monotonic ordinal (slot) clock, Time a wall clock in seconds.
// The host guarantees both are non-decreasing across calls.
type BlockContext struct {
	Number uint64
	Time   uint64
}

// Environment an env to execute a native method.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	caller   meridian.Address
	input    []byte
}

// New create a new env.
// The caller identity is assumed to be verified by the host.
func New(state *state.State, blockCtx *BlockContext, caller meridian.Address, input []byte) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		input:    input,
	}
}

func (env *Environment) State() *state.State        { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() meridian.Address   { return env.caller }

// ParseArgs decodes the rlp encoded call input into val.
func (env *Environment) ParseArgs(val any) error {
	if err := rlp.DecodeBytes(env.input, val); err != nil {
		return errors.WithMessage(err, "decode native input")
	}
	return nil
}

// Atomic runs fn against the environment's state. Every state change fn made
// is reverted when it returns an error: either all of an operation's effects
// are observable, or none.
func (env *Environment) Atomic(fn func() error) error {
	checkpoint := env.state.NewCheckpoint()
	if err := fn(); err != nil {
		env.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// EncodeArgs rlp encodes a call input. Handy for callers constructing envs.
func EncodeArgs(val any) []byte {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		panic(errors.WithMessage(err, "encode native input"))
	}
	return data
}
