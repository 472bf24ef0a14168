// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/eventdb"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

var (
	alice = core.BytesToAddress([]byte("alice"))
	bob   = core.BytesToAddress([]byte("bob"))
)

func newEvents() []*staker.Event {
	var events []*staker.Event
	for i := uint64(1); i <= 20; i++ {
		actor, kind := alice, staker.EventDeposited
		if i%2 == 0 {
			actor = bob
		}
		if i%5 == 0 {
			kind = staker.EventClaimedRewards
		}
		ev := &staker.Event{
			Seq:        i,
			Kind:       kind,
			Actor:      actor,
			Asset:      core.Native,
			Tier:       tiers.Symbiotic,
			StakeIndex: i / 2,
			Amount:     uint256.NewInt(i * 1_000_000_000),
			LockUntil:  1000 + i,
			Timestamp:  100 * i,
		}
		if kind == staker.EventDeposited {
			ev.Fee = uint256.NewInt(i * 20_000_000)
			ev.Principal = uint256.NewInt(i * 980_000_000)
		}
		events = append(events, ev)
	}
	return events
}

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seq, err := db.LastSeq(ctx)
	require.NoError(t, err)
	assert.Zero(t, seq)

	events := newEvents()
	require.NoError(t, db.Append(events[:10]...))
	require.NoError(t, db.Append(events[10:]...))
	require.NoError(t, db.Append(events[3]), "re-append is idempotent")

	seq, err = db.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), seq)

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, events, all)

	tests := []struct {
		name   string
		filter *eventdb.Filter
		want   []uint64
	}{
		{"by actor", &eventdb.Filter{Actor: &alice, Options: &eventdb.Options{Limit: 3}}, []uint64{1, 3, 5}},
		{"by kind", &eventdb.Filter{Kinds: []staker.EventKind{staker.EventClaimedRewards}}, []uint64{5, 10, 15, 20}},
		{"actor and kind desc", &eventdb.Filter{
			Actor: &bob,
			Kinds: []staker.EventKind{staker.EventClaimedRewards},
			Order: eventdb.DESC,
		}, []uint64{20, 10}},
		{"time range", &eventdb.Filter{Range: &eventdb.Range{From: 300, To: 500}}, []uint64{3, 4, 5}},
		{"open range", &eventdb.Filter{Range: &eventdb.Range{From: 1900}}, []uint64{19, 20}},
		{"paging", &eventdb.Filter{Order: eventdb.DESC, Options: &eventdb.Options{Offset: 2, Limit: 2}}, []uint64{18, 17}},
		{"no match", &eventdb.Filter{Kinds: []staker.EventKind{staker.EventProgramPaused}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Filter(ctx, tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, ev := range got {
				seqs = append(seqs, ev.Seq)
			}
			assert.Equal(t, tt.want, seqs)
		})
	}
}

func TestEventDB_NilAmounts(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ev := &staker.Event{Seq: 1, Kind: staker.EventProgramPaused, Actor: alice, Timestamp: 7}
	require.NoError(t, db.Append(ev))

	got, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Amount)
	assert.Nil(t, got[0].Fee)
	assert.Equal(t, ev, got[0])
}

func TestEventDB_Journal(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	var journal staker.Journal = db
	require.NoError(t, journal.Append())
}
