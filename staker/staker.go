// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/event"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/clock"
	"github.com/spacemoney/stakeledger/co"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/payout"
	"github.com/spacemoney/stakeledger/staker/ledger"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/staker/tiers"
	"github.com/spacemoney/stakeledger/staker/treasury"
	"github.com/spacemoney/stakeledger/store"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

var slotEventSeq = core.BytesToBytes32([]byte("event-seq"))

// Staker is the staking service. Every mutating operation runs validate, mutate and
// commit under one write lock with a single clock reading; queries share a read lock
// and only observe committed state.
type Staker struct {
	mu    sync.RWMutex
	sctx  *store.Context
	clock clock.Clock
	opts  Options

	tierService   *tiers.Service
	ledgerService *ledger.Service
	treasury      *treasury.Service
	outbox        *payout.Outbox
	eventSeq      *store.Uint256

	feed         event.Feed
	payoutsReady co.Signal
	halted       atomic.Bool
}

// New creates a staker over sctx. The staker assumes exclusive use of sctx.
func New(sctx *store.Context, clk clock.Clock, opts Options) *Staker {
	if clk == nil {
		clk = clock.System{}
	}
	return &Staker{
		sctx:          sctx,
		clock:         clk,
		opts:          opts,
		tierService:   tiers.New(sctx),
		ledgerService: ledger.New(sctx),
		treasury:      treasury.New(sctx),
		outbox:        payout.NewOutbox(sctx),
		eventSeq:      store.NewUint256(sctx, slotEventSeq),
	}
}

//
// Getters - no state change
//

// Platform returns a snapshot of the platform state.
func (s *Staker) Platform() (*treasury.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.treasury.State()
}

// Tier returns the current configuration of a tier.
func (s *Staker) Tier(id tiers.ID) (*tiers.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tierService.Get(id)
}

// Tiers returns every tier in ID order.
func (s *Staker) Tiers() ([]*tiers.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tierService.All()
}

// Account returns all stakes of owner, including withdrawn ones.
func (s *Staker) Account(owner core.Address) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledgerService.Account(owner)
}

// Stake returns one stake of owner.
func (s *Staker) Stake(owner core.Address, index uint64) (*ledger.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledgerService.Get(owner, index)
}

// ClaimPreview is the read-only view of a stake's rewards at a point in time.
type ClaimPreview struct {
	Now       uint64
	Status    ledger.Status
	Claimable *uint256.Int
	Claimed   *uint256.Int
	MaxReward *uint256.Int
	UnlocksIn uint64
}

// Claimable previews the rewards a claim would pay now. Withdrawn stakes preview zero.
func (s *Staker) Claimable(owner core.Address, index uint64) (*ClaimPreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	stake, err := s.ledgerService.Get(owner, index)
	if err != nil {
		return nil, err
	}
	maxReward, err := stake.MaxReward()
	if err != nil {
		return nil, err
	}
	preview := &ClaimPreview{
		Now:       now,
		Status:    stake.Status(now),
		Claimable: new(uint256.Int),
		Claimed:   stake.ClaimedRewards,
		MaxReward: maxReward,
		UnlocksIn: stake.UnlocksIn(now),
	}
	if stake.Active {
		if preview.Claimable, err = stake.Claimable(now); err != nil {
			return nil, err
		}
	}
	return preview, nil
}

// SubscribeEvents delivers every committed event to ch. Subscribers must drain ch
// promptly: delivery happens while the ledger lock is held.
func (s *Staker) SubscribeEvents(ch chan<- *Event) event.Subscription {
	return s.feed.Subscribe(ch)
}

// Now returns the ledger clock reading.
func (s *Staker) Now() uint64 {
	return s.clock.Now()
}

// Halted reports whether an integrity failure stopped the ledger.
func (s *Staker) Halted() bool {
	return s.halted.Load()
}

//
// Payout outbox
//

// PayoutsReady fires after a commit queued new payout instructions.
func (s *Staker) PayoutsReady() <-chan struct{} {
	return s.payoutsReady.C()
}

// PendingPayouts lists committed instructions not yet acknowledged.
func (s *Staker) PendingPayouts(limit int) ([]*payout.Instruction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outbox.Pending(limit)
}

// AckPayout removes a delivered instruction from the outbox.
func (s *Staker) AckPayout(seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.outbox.Ack(seq); err != nil {
		s.sctx.Revert()
		return err
	}
	if err := s.sctx.Commit(); err != nil {
		s.sctx.Revert()
		return errors.Wrap(err, "commit payout ack")
	}
	return nil
}

//
// Mutation plumbing
//

type change struct {
	event  *Event
	payout *payout.Instruction
}

// mutate runs fn under the write lock with one clock reading. Any error reverts every
// write fn made. On success the event and payout are committed in one batch, then
// journaled and published.
func (s *Staker) mutate(op string, fn func(now uint64) (*change, error)) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.halted.Load() {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "outcome": "halted"})
		return nil, reverts.ErrLedgerHalted
	}

	now := s.clock.Now()
	c, err := fn(now)
	if err == nil {
		err = s.seal(c, now)
	}
	if err == nil {
		if cerr := s.sctx.Commit(); cerr != nil {
			err = errors.Wrap(cerr, "commit")
		}
	}
	if err != nil {
		s.sctx.Revert()
		s.onFailure(op, err)
		return nil, err
	}

	metricOperations().AddWithLabel(1, map[string]string{"op": op, "outcome": "ok"})
	s.publish(c.event)
	if c.payout != nil {
		s.payoutsReady.Broadcast()
	}
	s.updateGauges()
	return &Receipt{ID: receiptID(c.event), Event: c.event, Payout: c.payout}, nil
}

func (s *Staker) seal(c *change, now uint64) error {
	if err := s.eventSeq.Add(uint256.NewInt(1)); err != nil {
		if errors.Is(err, store.ErrOverflow) {
			return reverts.ErrNumericalOverflow
		}
		return errors.Wrap(err, "failed to advance event sequence")
	}
	seq, err := s.eventSeq.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get event sequence")
	}
	c.event.Seq = seq.Uint64()
	c.event.Timestamp = now
	if c.payout != nil {
		c.payout.CreatedAt = now
		if err := s.outbox.Enqueue(c.payout); err != nil {
			return err
		}
	}
	return nil
}

// onFailure classifies err. Integrity and storage failures halt the ledger; anything
// else is an ordinary rejection.
func (s *Staker) onFailure(op string, err error) {
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome(err)})
	kind, isRevert := reverts.KindOf(err)
	if isRevert && kind != reverts.Integrity {
		return
	}
	metricIntegrityFailures().Add(1)
	s.halted.Store(true)
	logger.Error("ledger integrity failure, halting", "op", op, "error", err)
}

func (s *Staker) publish(ev *Event) {
	if s.opts.Journal != nil {
		if err := s.opts.Journal.Append(ev); err != nil {
			metricJournalFailures().Add(1)
			logger.Warn("failed to journal event", "seq", ev.Seq, "kind", ev.Kind, "error", err)
		}
	}
	s.feed.Send(ev)
}

func (s *Staker) meta() (*treasury.Meta, error) {
	m, err := s.treasury.Meta()
	if err != nil {
		return nil, err
	}
	if !m.Initialized {
		return nil, reverts.ErrNotInitialized
	}
	return m, nil
}

func (s *Staker) requireAdmin(caller core.Address) (*treasury.Meta, error) {
	m, err := s.meta()
	if err != nil {
		return nil, err
	}
	if caller != m.Admin {
		return nil, reverts.ErrUnauthorized
	}
	return m, nil
}

// checkExitPaused applies the pause policy to withdraw, force-withdraw and claim.
func (s *Staker) checkExitPaused(m *treasury.Meta) error {
	if m.Paused && s.opts.PausePolicy == PauseAll {
		return reverts.ErrProgramPaused
	}
	return nil
}
