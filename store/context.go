// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/cache"
	"github.com/spacemoney/stakeledger/kv"
)

const defaultCacheSize = 4096

type dirtyEntry struct {
	value   []byte
	deleted bool
}

// Context is a write-back overlay over a kv store. Writes stay in memory until
// Commit flushes them as a single atomic batch; Revert drops them. Committed values
// are cached.
//
// A Context is not safe for concurrent writers; callers serialize mutations.
type Context struct {
	db    kv.Store
	cache *cache.LRU
	dirty map[string]dirtyEntry
}

// NewContext creates a context over db. cacheSize <= 0 selects the default size.
func NewContext(db kv.Store, cacheSize int) *Context {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		panic(err) // size is always positive here
	}
	return &Context{
		db:    db,
		cache: c,
		dirty: make(map[string]dirtyEntry),
	}
}

func (c *Context) get(key []byte) ([]byte, error) {
	if e, ok := c.dirty[string(key)]; ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.cache.GetOrLoad(string(key), func() ([]byte, error) {
		val, found, err := c.db.Get(key)
		if err != nil {
			return nil, errors.Wrap(err, "read store")
		}
		if !found {
			return []byte(nil), nil
		}
		return val, nil
	})
}

func (c *Context) put(key, value []byte) {
	if len(value) == 0 {
		c.del(key)
		return
	}
	c.dirty[string(key)] = dirtyEntry{value: value}
}

func (c *Context) del(key []byte) {
	c.dirty[string(key)] = dirtyEntry{deleted: true}
}

// Dirty reports whether there are uncommitted writes.
func (c *Context) Dirty() bool {
	return len(c.dirty) > 0
}

// Commit writes all pending changes in one batch. On failure the pending changes
// are kept; the caller decides whether to retry or Revert.
func (c *Context) Commit() error {
	if len(c.dirty) == 0 {
		return nil
	}
	batch := c.db.NewBatch()
	for k, e := range c.dirty {
		if e.deleted {
			batch.Delete([]byte(k))
		} else {
			batch.Put([]byte(k), e.value)
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write commit")
	}
	for k, e := range c.dirty {
		if e.deleted {
			c.cache.Set(k, nil)
		} else {
			c.cache.Set(k, e.value)
		}
	}
	c.dirty = make(map[string]dirtyEntry)
	return nil
}

// Revert discards every uncommitted write.
func (c *Context) Revert() {
	if len(c.dirty) > 0 {
		c.dirty = make(map[string]dirtyEntry)
	}
}

// iterate visits every live key with the given prefix in key order, pending writes
// included.
func (c *Context) iterate(prefix []byte, fn func(key, value []byte) error) error {
	var pending []string
	for k := range c.dirty {
		if bytes.HasPrefix([]byte(k), prefix) {
			pending = append(pending, k)
		}
	}
	sort.Strings(pending)

	it := c.db.Scan(prefix)
	defer it.Release()

	emitPending := func(upTo []byte) error {
		for len(pending) > 0 && (upTo == nil || pending[0] < string(upTo)) {
			k := pending[0]
			pending = pending[1:]
			if e := c.dirty[k]; !e.deleted {
				if err := fn([]byte(k), e.value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for it.Next() {
		key := it.Key()
		if err := emitPending(key); err != nil {
			return err
		}
		if _, ok := c.dirty[string(key)]; ok {
			// the pending entry wins and is emitted in order
			continue
		}
		if err := fn(append([]byte(nil), key...), append([]byte(nil), it.Value()...)); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return errors.Wrap(err, "iterate store")
	}
	return emitPending(nil)
}
