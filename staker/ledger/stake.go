// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/rewards"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// Status is the lifecycle state of a stake. It is derived from the stored record and
// the current time, never stored.
type Status uint8

const (
	StatusLocked Status = iota
	StatusUnlocked
	StatusWithdrawn
)

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusUnlocked:
		return "unlocked"
	case StatusWithdrawn:
		return "withdrawn"
	default:
		return "unknown"
	}
}

// Stake is a single deposit. Multiplier and LockDays are captured from the tier at
// creation, so tier updates never change an existing stake.
type Stake struct {
	Asset          core.Asset
	Tier           tiers.ID
	Principal      *uint256.Int // net of the deposit fee
	Multiplier     uint64
	LockDays       uint64
	CreatedAt      uint64
	LockUntil      uint64
	ClaimedRewards *uint256.Int
	Active         bool
}

func (s *Stake) Terms() rewards.Terms {
	return rewards.Terms{
		Principal:  s.Principal,
		Multiplier: s.Multiplier,
		LockDays:   s.LockDays,
		CreatedAt:  s.CreatedAt,
	}
}

func (s *Stake) Status(now uint64) Status {
	switch {
	case !s.Active:
		return StatusWithdrawn
	case now < s.LockUntil:
		return StatusLocked
	default:
		return StatusUnlocked
	}
}

// Locked reports whether the stake is still inside its lock period.
func (s *Stake) Locked(now uint64) bool {
	return now < s.LockUntil
}

// UnlocksIn returns the seconds left until the lock ends.
func (s *Stake) UnlocksIn(now uint64) uint64 {
	if now >= s.LockUntil {
		return 0
	}
	return s.LockUntil - now
}

func (s *Stake) MaxReward() (*uint256.Int, error) {
	return rewards.MaxReward(s.Principal, s.Multiplier, s.LockDays)
}

func (s *Stake) Claimable(now uint64) (*uint256.Int, error) {
	return rewards.Claimable(s.Terms(), s.ClaimedRewards, now)
}

// Account holds every stake a principal ever opened. Stakes are append only, so an
// index stays valid for the life of the account.
type Account struct {
	Owner              core.Address
	Stakes             []*Stake
	TotalClaimedNative *uint256.Int
	TotalClaimedToken  *uint256.Int
	LastClaimAt        uint64
}

func newAccount(owner core.Address) *Account {
	return &Account{
		Owner:              owner,
		TotalClaimedNative: new(uint256.Int),
		TotalClaimedToken:  new(uint256.Int),
	}
}

// TotalClaimed returns the rewards paid to the account in the given asset.
func (a *Account) TotalClaimed(asset core.Asset) *uint256.Int {
	if asset == core.Token {
		return a.TotalClaimedToken
	}
	return a.TotalClaimedNative
}

// ActiveCount returns the number of stakes not yet withdrawn.
func (a *Account) ActiveCount() int {
	n := 0
	for _, s := range a.Stakes {
		if s.Active {
			n++
		}
	}
	return n
}
