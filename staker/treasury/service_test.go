// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/lvldb"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/store"
)

var (
	admin = core.BytesToAddress([]byte("admin"))
	mint  = core.BytesToAddress([]byte("mint"))
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(store.NewContext(db, 0))
}

func TestInitialize(t *testing.T) {
	svc := newSvc(t)

	m, err := svc.Meta()
	require.NoError(t, err)
	assert.False(t, m.Initialized)

	assert.ErrorIs(t, svc.Initialize(core.Address{}, mint, 1), reverts.ErrInvalidAddress)
	require.NoError(t, svc.Initialize(admin, mint, 1))
	assert.ErrorIs(t, svc.Initialize(admin, mint, 2), reverts.ErrAlreadyInitialized)

	m, err = svc.Meta()
	require.NoError(t, err)
	assert.Equal(t, admin, m.Admin)
	assert.Equal(t, mint, m.TokenMint)
	assert.Equal(t, uint64(1), m.CreatedAt)
	assert.False(t, m.Paused)
}

func TestMetaSetters(t *testing.T) {
	svc := newSvc(t)
	require.NoError(t, svc.Initialize(admin, core.Address{}, 1))

	next := core.BytesToAddress([]byte("next"))
	require.NoError(t, svc.SetAdmin(next))
	require.NoError(t, svc.SetPaused(true))
	require.NoError(t, svc.SetTokenMint(mint))
	assert.ErrorIs(t, svc.SetAdmin(core.Address{}), reverts.ErrInvalidAddress)
	assert.ErrorIs(t, svc.SetTokenMint(core.Address{}), reverts.ErrInvalidTokenMint)

	st, err := svc.State()
	require.NoError(t, err)
	assert.Equal(t, next, st.Admin)
	assert.True(t, st.Paused)
	assert.Equal(t, mint, st.TokenMint)
}

func TestPools(t *testing.T) {
	svc := newSvc(t)

	require.NoError(t, svc.AddFee(core.Native, uint256.NewInt(2e7)))
	require.NoError(t, svc.AddStaked(core.Native, uint256.NewInt(98e7)))
	require.NoError(t, svc.AddStaked(core.Token, uint256.NewInt(5)))
	require.NoError(t, svc.AddRewardsPaid(core.Token, uint256.NewInt(3)))

	assert.ErrorIs(t, svc.RemoveStaked(core.Token, uint256.NewInt(6)), reverts.ErrArithmeticUnderflow)
	require.NoError(t, svc.RemoveStaked(core.Token, uint256.NewInt(5)))

	assert.ErrorIs(t, svc.Withdraw(core.Native, uint256.NewInt(2e7+1)), reverts.ErrInsufficientTreasuryBalance)
	require.NoError(t, svc.Withdraw(core.Native, uint256.NewInt(1e7)))

	assert.ErrorIs(t, svc.AddFee(core.Asset(4), uint256.NewInt(1)), reverts.ErrInvalidAsset)
	_, err := svc.Treasury(core.Asset(4))
	assert.ErrorIs(t, err, reverts.ErrInvalidAsset)

	st, err := svc.State()
	require.NoError(t, err)
	assert.Equal(t, uint64(1e7), st.Treasury[core.Native].Uint64())
	assert.Equal(t, uint64(98e7), st.TotalStaked[core.Native].Uint64())
	assert.True(t, st.TotalStaked[core.Token].IsZero())
	assert.Equal(t, uint64(3), st.RewardsPaid[core.Token].Uint64())

	staked, err := svc.TotalStaked(core.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(98e7), staked.Uint64())
	paid, err := svc.RewardsPaid(core.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), paid.Uint64())
}

func TestOverflow(t *testing.T) {
	svc := newSvc(t)
	require.NoError(t, svc.AddFee(core.Native, new(uint256.Int).SetAllOne()))
	assert.ErrorIs(t, svc.AddFee(core.Native, uint256.NewInt(1)), reverts.ErrNumericalOverflow)
}
