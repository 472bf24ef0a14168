// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/spacemoney/stakeledger/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// minCacheMiB is the floor for the block cache and write buffer budget.
const minCacheMiB = 16

// every commit is a ledger state transition and must survive a crash
var syncWrites = &opt.WriteOptions{Sync: true}

// LevelDB is the ledger store backed by goleveldb.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the ledger database at path, creating it when missing. cacheMiB is split
// between the block cache and the write buffer.
func New(path string, cacheMiB int) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger storage [%v]", path)
	}
	return open(stg, cacheMiB)
}

// NewMem opens a ledger database held in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), minCacheMiB)
}

func open(stg storage.Storage, cacheMiB int) (*LevelDB, error) {
	cacheMiB = max(cacheMiB, minCacheMiB)
	db, err := leveldb.Open(stg, &opt.Options{
		BlockCacheCapacity: cacheMiB / 2 * opt.MiB,
		WriteBuffer:        cacheMiB / 4 * opt.MiB,
		Filter:             filter.NewBloomFilter(10),
	})
	if err != nil {
		_ = stg.Close()
		return nil, errors.Wrap(err, "open ledger database")
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, bool, error) {
	val, err := l.db.Get(key, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return val, true, nil
}

func (l *LevelDB) Scan(prefix []byte) kv.Iterator {
	return l.db.NewIterator(util.BytesPrefix(prefix), nil)
}

func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{db: l.db}
}

// Close releases the database. Every later call fails.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

type batch struct {
	db *leveldb.DB
	b  leveldb.Batch
}

func (b *batch) Put(key, value []byte) { b.b.Put(key, value) }
func (b *batch) Delete(key []byte)     { b.b.Delete(key) }

func (b *batch) Write() error {
	return b.db.Write(&b.b, syncWrites)
}
