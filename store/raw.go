// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/spacemoney/stakeledger/core"
)

// Raw is a single typed value slot.
type Raw[V any] struct {
	context *Context
	pos     core.Bytes32
}

func NewRaw[V any](context *Context, slot core.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: slot}
}

// Get returns the zero value of V when the slot is empty.
func (r *Raw[V]) Get() (value V, err error) {
	raw, err := r.context.get(r.pos[:])
	if err != nil || len(raw) == 0 {
		return value, err
	}
	err = decode(raw, &value)
	return
}

func (r *Raw[V]) Set(value V) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	r.context.put(r.pos[:], data)
	return nil
}
