// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/lvldb"
	"github.com/spacemoney/stakeledger/store"
)

var alice = core.BytesToAddress([]byte("alice"))

func newOutbox(t *testing.T) (*Outbox, *store.Context) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sctx := store.NewContext(db, 0)
	return NewOutbox(sctx), sctx
}

func TestOutbox(t *testing.T) {
	outbox, sctx := newOutbox(t)

	for i := range 3 {
		ins := &Instruction{
			Recipient: alice,
			Asset:     core.Native,
			Amount:    uint256.NewInt(uint64(i + 1)),
			Reason:    ReasonClaim,
		}
		require.NoError(t, outbox.Enqueue(ins))
		assert.Equal(t, uint64(i+1), ins.Seq)
		assert.NotEmpty(t, ins.ID)
	}
	require.NoError(t, sctx.Commit())

	pending, err := outbox.Pending(0)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, uint64(1), pending[0].Amount.Uint64())

	limited, err := outbox.Pending(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	ok, err := outbox.Ack(2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = outbox.Ack(2)
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err = outbox.Pending(0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, uint64(3), pending[1].Seq)
}

func TestOutbox_RevertDropsInstruction(t *testing.T) {
	outbox, sctx := newOutbox(t)
	require.NoError(t, outbox.Enqueue(&Instruction{Recipient: alice, Amount: uint256.NewInt(1)}))
	sctx.Revert()

	pending, err := outbox.Pending(0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

type memQueue struct {
	mu    sync.Mutex
	items []*Instruction
}

func (q *memQueue) PendingPayouts(limit int) ([]*Instruction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if limit > len(q.items) {
		limit = len(q.items)
	}
	return append([]*Instruction(nil), q.items[:limit]...), nil
}

func (q *memQueue) AckPayout(seq uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, ins := range q.items {
		if ins.Seq == seq {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

type flakyMover struct {
	mu       sync.Mutex
	failures int
	seen     []string
}

func (m *flakyMover) Transfer(_ context.Context, ins *Instruction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("rpc unavailable")
	}
	m.seen = append(m.seen, ins.ID)
	return nil
}

func TestDispatcher_FlushRetries(t *testing.T) {
	queue := &memQueue{items: []*Instruction{
		{Seq: 1, ID: "a", Amount: uint256.NewInt(1)},
		{Seq: 2, ID: "b", Amount: uint256.NewInt(2)},
	}}
	mover := &flakyMover{failures: 1}
	d := NewDispatcher(queue, mover, nil, time.Hour)

	n, err := d.Flush(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 2, queue.len())

	n, err = d.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, queue.len())
	assert.Equal(t, []string{"a", "b"}, mover.seen)
}

func TestDispatcher_WakeUp(t *testing.T) {
	queue := &memQueue{}
	mover := &flakyMover{}
	wake := make(chan struct{}, 1)
	d := NewDispatcher(queue, mover, wake, time.Hour)
	d.Start(context.Background())
	defer d.Stop()

	queue.mu.Lock()
	queue.items = append(queue.items, &Instruction{Seq: 7, ID: "late", Amount: uint256.NewInt(1)})
	queue.mu.Unlock()
	wake <- struct{}{}

	assert.Eventually(t, func() bool { return queue.len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLogMover(t *testing.T) {
	assert.NoError(t, LogMover{}.Transfer(context.Background(), &Instruction{ID: "x", Amount: uint256.NewInt(1)}))
}
