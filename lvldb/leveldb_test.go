// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	disk, err := New(filepath.Join(t.TempDir(), "ledger"), 0)
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		_, found, err := db.Get([]byte("acct/a"))
		require.NoError(t, err)
		assert.False(t, found)

		batch := db.NewBatch()
		batch.Put([]byte("acct/a"), []byte("1"))
		batch.Put([]byte("acct/b"), []byte("2"))
		batch.Put([]byte("tier/0"), []byte("3"))

		_, found, err = db.Get([]byte("acct/a"))
		require.NoError(t, err)
		assert.False(t, found, "batch must not be visible before write")

		require.NoError(t, batch.Write())
		val, found, err := db.Get([]byte("acct/a"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("1"), val)

		batch = db.NewBatch()
		batch.Delete([]byte("acct/a"))
		require.NoError(t, batch.Write())
		_, found, err = db.Get([]byte("acct/a"))
		require.NoError(t, err)
		assert.False(t, found)
	}
}

func TestScan(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	for _, k := range []string{"acct/b", "tier/0", "acct/a", "acct"} {
		batch.Put([]byte(k), []byte(k))
	}
	require.NoError(t, batch.Write())

	it := db.Scan([]byte("acct/"))
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"acct/a", "acct/b"}, keys)
}

func TestClosed(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = db.Get([]byte("acct/a"))
	assert.Error(t, err)
}
