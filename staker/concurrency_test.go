// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// tally accumulates what the writers observed in their receipts.
type tally struct {
	mu      sync.Mutex
	fees    uint256.Int
	rewards uint256.Int
	staked  uint256.Int
}

func (t *tally) book(r *Receipt) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ev := r.Event
	if ev.Fee != nil {
		t.fees.Add(&t.fees, ev.Fee)
	}
	if ev.Rewards != nil {
		t.rewards.Add(&t.rewards, ev.Rewards)
	}
	switch ev.Kind {
	case EventDeposited:
		t.staked.Add(&t.staked, ev.Principal)
	case EventWithdrew, EventForceWithdrew:
		t.staked.Sub(&t.staked, ev.Principal)
	}
}

func TestStaker_ConcurrentOperations(t *testing.T) {
	const (
		writers = 8
		readers = 4
		rounds  = 25
	)
	env := newTestEnv(t, PauseDepositsOnly)
	var (
		seen    tally
		writeWg sync.WaitGroup
		readWg  sync.WaitGroup
		done    = make(chan struct{})
	)

	// acceptable means the ledger rejected a request on state, never on integrity
	acceptable := func(err error) bool {
		kind, ok := reverts.KindOf(err)
		return ok && kind == reverts.Precondition
	}

	for w := range writers {
		owner := core.BytesToAddress([]byte{'w', byte(w)})
		writeWg.Add(1)
		go func() {
			defer writeWg.Done()
			var open []uint64
			for i := range rounds {
				r, err := env.staker.DepositNative(owner, units(uint64(1+i%3)), tiers.Boot)
				if !assert.NoError(t, err) {
					return
				}
				seen.book(r)
				open = append(open, r.Event.StakeIndex)

				switch i % 3 {
				case 1:
					r, err = env.staker.ClaimRewards(owner, open[0])
				case 2:
					r, err = env.staker.ForceWithdraw(owner, open[0])
					open = open[1:]
				default:
					continue
				}
				if err != nil {
					assert.True(t, acceptable(err), "unexpected failure: %v", err)
					continue
				}
				seen.book(r)
			}
		}()
	}

	for r := range readers {
		owner := core.BytesToAddress([]byte{'w', byte(r)})
		readWg.Add(1)
		go func() {
			defer readWg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				acc, err := env.staker.Account(owner)
				if !assert.NoError(t, err) {
					return
				}
				for i, stake := range acc.Stakes {
					preview, err := env.staker.Claimable(owner, uint64(i))
					if !assert.NoError(t, err) {
						return
					}
					sum := new(uint256.Int).Add(preview.Claimed, preview.Claimable)
					assert.False(t, sum.Gt(preview.MaxReward), "stake %d over its maximum", i)
					assert.False(t, stake.ClaimedRewards.Gt(preview.MaxReward))
				}
				_, err = env.staker.Platform()
				assert.NoError(t, err)
			}
		}()
	}

	// the clock moves while operations run, so claims find rewards to pay
	readWg.Add(1)
	go func() {
		defer readWg.Done()
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
				env.clock.Advance(day / 4)
			}
		}
	}()

	writeWg.Wait()
	close(done)
	readWg.Wait()

	require.False(t, env.staker.Halted())
	report, err := env.staker.Audit()
	require.NoError(t, err)
	assert.True(t, report.Consistent())

	st := env.state(t)
	assert.Equal(t, seen.fees.Dec(), st.Treasury[core.Native].Dec(), "treasury is fees plus penalties")
	assert.Equal(t, seen.rewards.Dec(), st.RewardsPaid[core.Native].Dec())
	assert.Equal(t, seen.staked.Dec(), st.TotalStaked[core.Native].Dec())

	active := new(uint256.Int)
	for w := range writers {
		acc, err := env.staker.Account(core.BytesToAddress([]byte{'w', byte(w)}))
		require.NoError(t, err)
		require.Len(t, acc.Stakes, rounds)
		for _, stake := range acc.Stakes {
			if stake.Active {
				active.Add(active, stake.Principal)
			}
		}
	}
	assert.Equal(t, active.Dec(), st.TotalStaked[core.Native].Dec())
}
