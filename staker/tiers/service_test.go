// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/lvldb"
	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/store"
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := New(store.NewContext(db, 0))
	for _, tier := range Defaults(params.UnitScale) {
		require.NoError(t, svc.Set(tier))
	}
	return svc
}

func TestParse(t *testing.T) {
	for _, id := range All {
		parsed, err := Parse(uint8(id))
		require.NoError(t, err)
		assert.Equal(t, id, parsed)

		byName, err := ParseName(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, byName)
	}
	_, err := Parse(3)
	assert.ErrorIs(t, err, reverts.ErrInvalidTier)
	_, err = ParseName("gold")
	assert.ErrorIs(t, err, reverts.ErrInvalidTier)
}

func TestDefaults(t *testing.T) {
	svc := newSvc(t)

	tests := []struct {
		id         ID
		minStake   uint64
		multiplier uint64
		lockDays   uint64
	}{
		{Boot, 1e9, 1, 30},
		{Symbiotic, 5e9, 2, 90},
		{Space, 25e9, 3, 180},
	}
	for _, tt := range tests {
		tier, err := svc.Get(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.minStake, tier.MinStake.Uint64(), tt.id.String())
		assert.Equal(t, tt.multiplier, tier.Multiplier)
		assert.Equal(t, tt.lockDays, tier.LockDays)
	}

	all, err := svc.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, Space, all[2].ID)
	assert.Equal(t, uint64(180*86400), all[2].LockSeconds())
}

func TestGetUnknown(t *testing.T) {
	svc := newSvc(t)
	_, err := svc.Get(ID(9))
	assert.ErrorIs(t, err, reverts.ErrInvalidTier)

	empty := New(store.NewContext(func() *lvldb.LevelDB {
		db, err := lvldb.NewMem()
		require.NoError(t, err)
		return db
	}(), 0))
	_, err = empty.Get(Boot)
	assert.ErrorIs(t, err, reverts.ErrInvalidTier)
}

func TestUpdate(t *testing.T) {
	svc := newSvc(t)

	updated, err := svc.Update(Boot, uint256.NewInt(2e9), 2, 45)
	require.NoError(t, err)
	assert.Equal(t, uint64(45), updated.LockDays)

	got, err := svc.Get(Boot)
	require.NoError(t, err)
	assert.Equal(t, uint64(2e9), got.MinStake.Uint64())
	assert.Equal(t, uint64(2), got.Multiplier)

	tests := []struct {
		minStake   *uint256.Int
		multiplier uint64
		lockDays   uint64
	}{
		{uint256.NewInt(0), 1, 30},
		{nil, 1, 30},
		{uint256.NewInt(1), 0, 30},
		{uint256.NewInt(1), 1, 0},
		{uint256.NewInt(1), 1, params.MaxLockDays + 1},
		{uint256.NewInt(1), 1, 213503982334602},
	}
	for _, tt := range tests {
		_, err := svc.Update(Symbiotic, tt.minStake, tt.multiplier, tt.lockDays)
		assert.ErrorIs(t, err, reverts.ErrInvalidTierConfig)
	}

	// rejected updates leave the stored tier untouched
	got, err = svc.Get(Symbiotic)
	require.NoError(t, err)
	assert.Equal(t, uint64(5e9), got.MinStake.Uint64())

	longest, err := svc.Update(Space, uint256.NewInt(1), 1, params.MaxLockDays)
	require.NoError(t, err)
	assert.Equal(t, params.MaxLockDays*86400, longest.LockSeconds())

	_, err = svc.Update(ID(5), uint256.NewInt(1), 1, 1)
	assert.ErrorIs(t, err, reverts.ErrInvalidTier)
}
