// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv declares the storage a ledger store runs on.
package kv

// Store is an ordered key-value store whose writes land in atomic batches.
type Store interface {
	// Get returns the value of key. found is false for a missing key.
	Get(key []byte) (value []byte, found bool, err error)
	// Scan iterates the keys starting with prefix in key order.
	Scan(prefix []byte) Iterator
	NewBatch() Batch
}

// Batch collects writes applied together by Write.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Write() error
}

type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}
