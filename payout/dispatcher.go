// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payout

import (
	"context"
	"time"

	"github.com/spacemoney/stakeledger/co"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/metrics"
)

var (
	logger = log.WithContext("pkg", "payout")

	metricDelivered = metrics.LazyLoadCounterVec("payouts_delivered_count", []string{"reason"})
	metricFailed    = metrics.LazyLoadCounter("payouts_failed_count")
	metricPending   = metrics.LazyLoadGauge("payouts_pending")
)

const batchSize = 64

// Mover performs the actual funds transfer outside the ledger.
type Mover interface {
	Transfer(ctx context.Context, ins *Instruction) error
}

// Queue is the ledger side of the outbox.
type Queue interface {
	PendingPayouts(limit int) ([]*Instruction, error)
	AckPayout(seq uint64) error
}

// Dispatcher delivers committed instructions to a Mover. Delivery is at least once:
// an instruction is acknowledged only after the mover succeeded, and a failed
// instruction is retried on the next pass.
type Dispatcher struct {
	queue    Queue
	mover    Mover
	wake     <-chan struct{}
	interval time.Duration
	loop     co.Loop
}

// NewDispatcher creates a dispatcher. A pass runs whenever wake fires and at least
// every interval.
func NewDispatcher(queue Queue, mover Mover, wake <-chan struct{}, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Dispatcher{
		queue:    queue,
		mover:    mover,
		wake:     wake,
		interval: interval,
	}
}

// Start runs the delivery loop until ctx is done or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	d.loop.Start(ctx, d.interval, d.wake, func(ctx context.Context) {
		if _, err := d.Flush(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("payout pass failed", "err", err)
		}
	})
}

// Stop ends the loop and waits for the in-flight pass.
func (d *Dispatcher) Stop() {
	d.loop.Stop()
}

// Flush delivers every pending instruction once and returns how many succeeded.
// It stops at the first failure so ordering per recipient is kept.
func (d *Dispatcher) Flush(ctx context.Context) (int, error) {
	delivered := 0
	for {
		batch, err := d.queue.PendingPayouts(batchSize)
		if err != nil {
			return delivered, err
		}
		metricPending().Set(int64(len(batch)))
		if len(batch) == 0 {
			return delivered, nil
		}
		for _, ins := range batch {
			if err := ctx.Err(); err != nil {
				return delivered, err
			}
			if err := d.mover.Transfer(ctx, ins); err != nil {
				metricFailed().Add(1)
				logger.Info("payout transfer failed", "id", ins.ID, "recipient", ins.Recipient, "error", err)
				return delivered, err
			}
			if err := d.queue.AckPayout(ins.Seq); err != nil {
				return delivered, err
			}
			metricDelivered().AddWithLabel(1, map[string]string{"reason": string(ins.Reason)})
			delivered++
		}
		if len(batch) < batchSize {
			metricPending().Set(0)
			return delivered, nil
		}
	}
}

// LogMover records instructions in the log without moving funds. It is the default
// for deployments where transfers are executed by an external process reading the log.
type LogMover struct{}

func (LogMover) Transfer(_ context.Context, ins *Instruction) error {
	logger.Info("payout",
		"id", ins.ID,
		"reason", ins.Reason,
		"recipient", ins.Recipient,
		"asset", ins.Asset,
		"amount", ins.Amount,
	)
	return nil
}
