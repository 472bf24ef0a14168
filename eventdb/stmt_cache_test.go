// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStmtCache(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()
	sc := db.stmtCache

	first, release, err := sc.Prepare(selectEvent + " WHERE seq = ?")
	require.NoError(t, err)
	release()
	again, release, err := sc.Prepare(selectEvent + " WHERE seq = ?")
	require.NoError(t, err)
	release()
	assert.Same(t, first, again)

	_, _, err = sc.Prepare("SELECT nothing FROM nowhere")
	assert.Error(t, err)

	for i := len(sc.stmts); i < maxCachedStmts; i++ {
		_, release, err := sc.Prepare(fmt.Sprintf("SELECT %d", i))
		require.NoError(t, err)
		release()
	}
	require.Len(t, sc.stmts, maxCachedStmts)

	// past the bound statements are handed out uncached
	extra, release, err := sc.Prepare("SELECT -1")
	require.NoError(t, err)
	var v int
	require.NoError(t, extra.QueryRow().Scan(&v))
	assert.Equal(t, -1, v)
	release()
	assert.Len(t, sc.stmts, maxCachedStmts)

	require.NoError(t, sc.Close())
	assert.Empty(t, sc.stmts)
}
