// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payout

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/store"
)

// Reason names the operation that produced an instruction.
type Reason string

const (
	ReasonWithdraw      Reason = "withdraw"
	ReasonForceWithdraw Reason = "force-withdraw"
	ReasonClaim         Reason = "claim"
	ReasonAdminTransfer Reason = "admin-transfer"
)

// Instruction tells the funds mover to send Amount of Asset to Recipient. ID is
// stable across redeliveries and serves as the mover's idempotency key.
type Instruction struct {
	Seq        uint64
	ID         string
	Recipient  core.Address
	Asset      core.Asset
	Amount     *uint256.Int
	Reason     Reason
	StakeIndex uint64
	CreatedAt  uint64
}

type seqKey uint64

func (k seqKey) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}

var (
	slotPending = core.BytesToBytes32([]byte("payouts-pending"))
	slotSeq     = core.BytesToBytes32([]byte("payouts-seq"))
)

// Outbox stores instructions that have been committed but not yet delivered. It
// shares the store context of the ledger, so an instruction becomes durable in the
// same commit as the state change that produced it.
type Outbox struct {
	pending *store.Mapping[seqKey, *Instruction]
	seq     *store.Uint256
}

func NewOutbox(sctx *store.Context) *Outbox {
	return &Outbox{
		pending: store.NewMapping[seqKey, *Instruction](sctx, slotPending),
		seq:     store.NewUint256(sctx, slotSeq),
	}
}

// Enqueue assigns a sequence number and ID to ins and stores it.
func (o *Outbox) Enqueue(ins *Instruction) error {
	if err := o.seq.Add(uint256.NewInt(1)); err != nil {
		return errors.Wrap(err, "failed to bump payout sequence")
	}
	seq, err := o.seq.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get payout sequence")
	}
	ins.Seq = seq.Uint64()
	if ins.ID == "" {
		ins.ID = uuid.New()
	}
	return errors.Wrap(o.pending.Set(seqKey(ins.Seq), ins), "failed to store payout")
}

// Pending returns up to limit undelivered instructions, oldest first. limit <= 0
// returns all of them.
func (o *Outbox) Pending(limit int) ([]*Instruction, error) {
	var out []*Instruction
	errStop := errors.New("stop")
	err := o.pending.Iterate(func(_ []byte, ins *Instruction) error {
		out = append(out, ins)
		if limit > 0 && len(out) >= limit {
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return nil, err
	}
	return out, nil
}

// Ack removes a delivered instruction. Acking an unknown sequence is a no-op.
func (o *Outbox) Ack(seq uint64) (bool, error) {
	has, err := o.pending.Has(seqKey(seq))
	if err != nil || !has {
		return false, err
	}
	o.pending.Delete(seqKey(seq))
	return true, nil
}
