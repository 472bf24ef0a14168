// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/payout"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/ledger"
	"github.com/spacemoney/stakeledger/staker/rewards"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

type Tier struct {
	Tier           string  `json:"tier"`
	ID             uint8   `json:"id"`
	MinStake       *Amount `json:"minStake"`
	Multiplier     uint64  `json:"multiplier"`
	LockDays       uint64  `json:"lockDays"`
	TotalReturnBps uint64  `json:"totalReturnBps"`
	APYBps         uint64  `json:"apyBps"`
}

func ConvertTier(t *tiers.Tier) *Tier {
	return &Tier{
		Tier:           t.ID.String(),
		ID:             uint8(t.ID),
		MinStake:       NewAmount(t.MinStake),
		Multiplier:     t.Multiplier,
		LockDays:       t.LockDays,
		TotalReturnBps: rewards.TotalReturnBps(t.Multiplier, t.LockDays),
		APYBps:         rewards.APYBps(t.Multiplier),
	}
}

type Stake struct {
	Index          uint64     `json:"index"`
	Asset          core.Asset `json:"asset"`
	Tier           string     `json:"tier"`
	Principal      *Amount    `json:"principal"`
	Multiplier     uint64     `json:"multiplier"`
	LockDays       uint64     `json:"lockDays"`
	CreatedAt      uint64     `json:"createdAt"`
	LockUntil      uint64     `json:"lockUntil"`
	ClaimedRewards *Amount    `json:"claimedRewards"`
	Active         bool       `json:"active"`
	Status         string     `json:"status"`
	UnlocksIn      uint64     `json:"unlocksIn"`
}

func ConvertStake(index uint64, s *ledger.Stake, now uint64) *Stake {
	return &Stake{
		Index:          index,
		Asset:          s.Asset,
		Tier:           s.Tier.String(),
		Principal:      NewAmount(s.Principal),
		Multiplier:     s.Multiplier,
		LockDays:       s.LockDays,
		CreatedAt:      s.CreatedAt,
		LockUntil:      s.LockUntil,
		ClaimedRewards: NewAmount(s.ClaimedRewards),
		Active:         s.Active,
		Status:         s.Status(now).String(),
		UnlocksIn:      s.UnlocksIn(now),
	}
}

type Account struct {
	Owner              core.Address `json:"owner"`
	Stakes             []*Stake     `json:"stakes"`
	ActiveStakes       int          `json:"activeStakes"`
	TotalClaimedNative *Amount      `json:"totalClaimedNative"`
	TotalClaimedToken  *Amount      `json:"totalClaimedToken"`
	LastClaimAt        uint64       `json:"lastClaimAt"`
}

func ConvertAccount(a *ledger.Account, now uint64) *Account {
	stakes := make([]*Stake, 0, len(a.Stakes))
	for i, s := range a.Stakes {
		stakes = append(stakes, ConvertStake(uint64(i), s, now))
	}
	return &Account{
		Owner:              a.Owner,
		Stakes:             stakes,
		ActiveStakes:       a.ActiveCount(),
		TotalClaimedNative: NewAmount(a.TotalClaimedNative),
		TotalClaimedToken:  NewAmount(a.TotalClaimedToken),
		LastClaimAt:        a.LastClaimAt,
	}
}

type Event struct {
	Seq          uint64           `json:"seq"`
	Kind         staker.EventKind `json:"kind"`
	Actor        core.Address     `json:"actor"`
	Counterparty *core.Address    `json:"counterparty,omitempty"`
	Asset        core.Asset       `json:"asset"`
	Tier         string           `json:"tier"`
	StakeIndex   uint64           `json:"stakeIndex"`
	Amount       *Amount          `json:"amount,omitempty"`
	Principal    *Amount          `json:"principal,omitempty"`
	Rewards      *Amount          `json:"rewards,omitempty"`
	Fee          *Amount          `json:"fee,omitempty"`
	LockUntil    uint64           `json:"lockUntil,omitempty"`
	Timestamp    uint64           `json:"timestamp"`
}

func ConvertEvent(ev *staker.Event) *Event {
	out := &Event{
		Seq:        ev.Seq,
		Kind:       ev.Kind,
		Actor:      ev.Actor,
		Asset:      ev.Asset,
		Tier:       ev.Tier.String(),
		StakeIndex: ev.StakeIndex,
		Amount:     NewAmount(ev.Amount),
		Principal:  NewAmount(ev.Principal),
		Rewards:    NewAmount(ev.Rewards),
		Fee:        NewAmount(ev.Fee),
		LockUntil:  ev.LockUntil,
		Timestamp:  ev.Timestamp,
	}
	if !ev.Counterparty.IsZero() {
		cp := ev.Counterparty
		out.Counterparty = &cp
	}
	return out
}

func ConvertEvents(events []*staker.Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ConvertEvent(ev))
	}
	return out
}

type Payout struct {
	Seq        uint64        `json:"seq"`
	ID         string        `json:"id"`
	Recipient  core.Address  `json:"recipient"`
	Asset      core.Asset    `json:"asset"`
	Amount     *Amount       `json:"amount"`
	Reason     payout.Reason `json:"reason"`
	StakeIndex uint64        `json:"stakeIndex"`
	CreatedAt  uint64        `json:"createdAt"`
}

func ConvertPayout(p *payout.Instruction) *Payout {
	if p == nil {
		return nil
	}
	return &Payout{
		Seq:        p.Seq,
		ID:         p.ID,
		Recipient:  p.Recipient,
		Asset:      p.Asset,
		Amount:     NewAmount(p.Amount),
		Reason:     p.Reason,
		StakeIndex: p.StakeIndex,
		CreatedAt:  p.CreatedAt,
	}
}

// Receipt is the response of every mutating request.
type Receipt struct {
	ID     core.Bytes32 `json:"id"`
	Event  *Event       `json:"event"`
	Payout *Payout      `json:"payout,omitempty"`
}

func ConvertReceipt(r *staker.Receipt) *Receipt {
	return &Receipt{
		ID:     r.ID,
		Event:  ConvertEvent(r.Event),
		Payout: ConvertPayout(r.Payout),
	}
}
