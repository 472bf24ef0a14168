// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)
	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
	_, err = ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz")
	assert.Error(t, err)

	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}

func TestAddressJSON(t *testing.T) {
	type wrapper struct {
		Owner Address `json:"owner"`
	}
	in := wrapper{Owner: BytesToAddress([]byte("alice"))}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("total-staked"))
	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
	assert.False(t, b.IsZero())
	assert.Equal(t, byte(0), b[0])
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("a"), []byte("b"))
	b := Blake2b([]byte("ab"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Blake2b([]byte("ba")))
}

func TestAsset(t *testing.T) {
	for _, a := range Assets {
		parsed, err := ParseAsset(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	_, err := ParseAsset("gold")
	assert.Error(t, err)
	assert.False(t, Asset(7).Valid())

	_, err = Asset(7).MarshalText()
	assert.Error(t, err)
}
