// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	loads := 0
	load := func(v string) func() ([]byte, error) {
		return func() ([]byte, error) {
			loads++
			return []byte(v), nil
		}
	}

	v, err := c.GetOrLoad("acct/a", load("1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = c.GetOrLoad("acct/a", load("stale"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	assert.Equal(t, 1, loads)

	// absent keys are cached as nil
	v, err = c.GetOrLoad("acct/b", func() ([]byte, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 2, c.Len())

	_, err = c.GetOrLoad("acct/c", func() ([]byte, error) { return nil, errors.New("disk") })
	assert.EqualError(t, err, "disk")
	assert.Equal(t, 2, c.Len(), "failed loads are not cached")

	c.Set("acct/a", []byte("2"))
	v, err = c.GetOrLoad("acct/a", load("stale"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)
}
