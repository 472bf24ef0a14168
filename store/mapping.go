// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/spacemoney/stakeledger/core"
)

// Key is anything with a stable byte form.
type Key interface {
	Bytes() []byte
}

// Mapping is a typed key/value table living under a 32 byte base position.
// Values are RLP encoded and snappy compressed.
type Mapping[K Key, V any] struct {
	context *Context
	basePos core.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos core.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) []byte {
	kb := key.Bytes()
	pos := make([]byte, 0, len(m.basePos)+len(kb))
	pos = append(pos, m.basePos[:]...)
	return append(pos, kb...)
}

// Get returns the stored value, or the zero value of V when the key is absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	raw, err := m.context.get(m.position(key))
	if err != nil || len(raw) == 0 {
		return value, err
	}
	err = decode(raw, &value)
	return
}

// Has reports whether key holds a value.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	raw, err := m.context.get(m.position(key))
	return len(raw) > 0, err
}

// Set stores value under key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	m.context.put(m.position(key), data)
	return nil
}

// Delete clears key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.del(m.position(key))
}

// Iterate visits every entry in raw key order. The callback receives the key bytes
// with the base position stripped.
func (m *Mapping[K, V]) Iterate(fn func(key []byte, value V) error) error {
	prefix := m.basePos[:]
	return m.context.iterate(prefix, func(k, raw []byte) error {
		var value V
		if err := decode(raw, &value); err != nil {
			return err
		}
		return fn(k[len(prefix):], value)
	})
}
