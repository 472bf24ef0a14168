// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRU holds recently read store values. A nil value records a key known to be absent.
type LRU struct {
	entries *lru.Cache
}

// NewLRU creates a cache of at most size values. size must be positive.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: c}, nil
}

// GetOrLoad returns the cached value of key, calling load on a miss. Failed loads
// are not cached.
func (l *LRU) GetOrLoad(key string, load func() ([]byte, error)) ([]byte, error) {
	if v, ok := l.entries.Get(key); ok {
		return v.([]byte), nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	l.entries.Add(key, v)
	return v, nil
}

// Set replaces the cached value of key.
func (l *LRU) Set(key string, value []byte) {
	l.entries.Add(key, value)
}

// Len is the number of cached keys.
func (l *LRU) Len() int {
	return l.entries.Len()
}
