// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
)

func TestForward_FullBacklogReleasesFeed(t *testing.T) {
	var feed event.Feed
	feedCh := make(chan *staker.Event, 16)
	sub := feed.Subscribe(feedCh)
	backlog := make(chan *staker.Event, 1)
	stop := make(chan struct{})
	defer close(stop)

	overflow := forward(sub, feedCh, backlog, &eventFilter{}, stop)

	sent := make(chan struct{})
	go func() {
		defer close(sent)
		for i := range 64 {
			feed.Send(&staker.Event{Seq: uint64(i + 1), Kind: staker.EventDeposited})
		}
	}()

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("feed blocked on a subscriber with a full backlog")
	}
	select {
	case <-overflow:
	case <-time.After(time.Second):
		t.Fatal("overflow not reported")
	}
	_, ok := <-sub.Err()
	assert.False(t, ok, "subscription is cancelled on overflow")
	assert.Len(t, backlog, 1)
}

func TestForward_FiltersAndStops(t *testing.T) {
	var feed event.Feed
	feedCh := make(chan *staker.Event, 16)
	sub := feed.Subscribe(feedCh)
	defer sub.Unsubscribe()
	backlog := make(chan *staker.Event, 4)
	stop := make(chan struct{})

	alice := core.BytesToAddress([]byte("alice"))
	filter := &eventFilter{
		actor: &alice,
		kinds: map[staker.EventKind]bool{staker.EventClaimedRewards: true},
	}
	overflow := forward(sub, feedCh, backlog, filter, stop)

	feed.Send(&staker.Event{Seq: 1, Kind: staker.EventDeposited, Actor: alice})
	feed.Send(&staker.Event{Seq: 2, Kind: staker.EventClaimedRewards, Actor: core.BytesToAddress([]byte("bob"))})
	feed.Send(&staker.Event{Seq: 3, Kind: staker.EventClaimedRewards, Actor: alice})

	select {
	case ev := <-backlog:
		assert.Equal(t, uint64(3), ev.Seq)
	case <-time.After(time.Second):
		t.Fatal("matching event not forwarded")
	}
	close(stop)
	assert.Empty(t, backlog)
	select {
	case <-overflow:
		t.Fatal("no overflow expected")
	default:
	}
}

func TestParseEventFilter(t *testing.T) {
	req := httptest.NewRequest("GET", "/subscriptions/events?actor=0x7567d83b7b8d80addcb281a71d54fc7b3364ffed&kind=Deposited,%20Withdrew", nil)
	f, err := parseEventFilter(req)
	require.NoError(t, err)
	require.NotNil(t, f.actor)
	assert.True(t, f.kinds[staker.EventDeposited])
	assert.True(t, f.kinds[staker.EventWithdrew])

	assert.True(t, f.match(&staker.Event{Kind: staker.EventWithdrew, Actor: *f.actor}))
	assert.False(t, f.match(&staker.Event{Kind: staker.EventClaimedRewards, Actor: *f.actor}))

	_, err = parseEventFilter(httptest.NewRequest("GET", "/subscriptions/events?actor=nope", nil))
	assert.Error(t, err)
}
