// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/clock"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/lvldb"
	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/tiers"
	"github.com/spacemoney/stakeledger/staker/treasury"
	"github.com/spacemoney/stakeledger/store"
)

const (
	day   = params.SecondsPerDay
	start = uint64(1_700_000_000)
	unit  = params.UnitScale
)

var (
	admin = core.BytesToAddress([]byte("admin"))
	mint  = core.BytesToAddress([]byte("mint"))
	alice = core.BytesToAddress([]byte("alice"))
	bob   = core.BytesToAddress([]byte("bob"))
)

func units(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(unit))
}

func amount(v uint64) *uint256.Int { return uint256.NewInt(v) }

type memJournal struct {
	mu     sync.Mutex
	events []*Event
}

func (j *memJournal) Append(events ...*Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, events...)
	return nil
}

type testEnv struct {
	staker  *Staker
	clock   *clock.Manual
	journal *memJournal
	sctx    *store.Context
}

func newTestEnv(t *testing.T, policy PausePolicy) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := store.NewContext(db, 0)
	clk := clock.NewManual(start)
	journal := &memJournal{}
	s := New(sctx, clk, Options{PausePolicy: policy, Journal: journal})
	_, err = s.Initialize(admin, mint, tiers.Defaults(unit))
	require.NoError(t, err)
	return &testEnv{staker: s, clock: clk, journal: journal, sctx: sctx}
}

func newUninitialized(t *testing.T) *Staker {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(store.NewContext(db, 0), clock.NewManual(start), Options{})
}

func (e *testEnv) state(t *testing.T) *treasury.State {
	st, err := e.staker.Platform()
	require.NoError(t, err)
	return st
}
