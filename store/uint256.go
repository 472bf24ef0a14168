// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
)

var (
	ErrOverflow  = errors.New("store: uint256 overflow")
	ErrUnderflow = errors.New("store: uint256 underflow")
)

// Uint256 is a single unsigned 256 bit counter slot. Arithmetic is checked:
// Add fails with ErrOverflow and Sub with ErrUnderflow, leaving the slot untouched.
type Uint256 struct {
	context *Context
	pos     core.Bytes32
}

func NewUint256(context *Context, slot core.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: slot}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	raw, err := u.context.get(u.pos[:])
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (u *Uint256) Set(value *uint256.Int) {
	if value.IsZero() {
		u.context.del(u.pos[:])
		return
	}
	b := value.Bytes32()
	u.context.put(u.pos[:], b[:])
}

func (u *Uint256) Add(value *uint256.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(current, value)
	if overflow {
		return ErrOverflow
	}
	u.Set(sum)
	return nil
}

func (u *Uint256) Sub(value *uint256.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	if current.Lt(value) {
		return ErrUnderflow
	}
	u.Set(new(uint256.Int).Sub(current, value))
	return nil
}
