// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/bits"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/staker/rewards"
	"github.com/spacemoney/stakeledger/staker/tiers"
	"github.com/spacemoney/stakeledger/store"
)

var slotAccounts = core.BytesToBytes32([]byte("accounts"))

// Service is the account ledger: per principal stake records.
type Service struct {
	accounts *store.Mapping[core.Address, *Account]
}

func New(sctx *store.Context) *Service {
	return &Service{
		accounts: store.NewMapping[core.Address, *Account](sctx, slotAccounts),
	}
}

// Deposit is the outcome of opening a stake, for the treasury to book.
type Deposit struct {
	Index uint64
	Fee   *uint256.Int
	Net   *uint256.Int
	Stake *Stake
}

// Account returns the account of owner. An owner without stakes gets an empty account.
func (s *Service) Account(owner core.Address) (*Account, error) {
	acc, err := s.accounts.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	if acc == nil {
		return newAccount(owner), nil
	}
	return acc, nil
}

// Get returns the stake at index, active or not.
func (s *Service) Get(owner core.Address, index uint64) (*Stake, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, err
	}
	return stakeAt(acc, index)
}

func stakeAt(acc *Account, index uint64) (*Stake, error) {
	if index >= uint64(len(acc.Stakes)) {
		return nil, reverts.ErrStakeNotFound.Withf("index %d", index)
	}
	return acc.Stakes[index], nil
}

// GetActive returns the account and its stake at index, failing when the stake is
// missing or already withdrawn.
func (s *Service) GetActive(owner core.Address, index uint64) (*Account, *Stake, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, nil, err
	}
	stake, err := stakeAt(acc, index)
	if err != nil {
		return nil, nil, err
	}
	if !stake.Active {
		return nil, nil, reverts.ErrStakeAlreadyInactive.Withf("index %d", index)
	}
	return acc, stake, nil
}

// Deposit appends a new active stake. The minimum is checked against the gross amount;
// the stake principal is the amount net of the deposit fee.
func (s *Service) Deposit(owner core.Address, asset core.Asset, gross *uint256.Int, tier *tiers.Tier, now uint64) (*Deposit, error) {
	if !asset.Valid() {
		return nil, reverts.ErrInvalidAsset
	}
	if gross.Lt(tier.MinStake) {
		return nil, reverts.ErrInsufficientStakeAmount.Withf("%s requires %s, got %s", tier.ID, tier.MinStake.Dec(), gross.Dec())
	}
	fee, net, err := rewards.SplitDeposit(gross)
	if err != nil {
		return nil, err
	}
	if net.IsZero() {
		return nil, reverts.ErrInvalidAmount.Withf("nothing left after fee")
	}
	// reject terms whose full-term reward cannot be represented
	if _, err := rewards.MaxReward(net, tier.Multiplier, tier.LockDays); err != nil {
		return nil, err
	}

	lockUntil, overflow := bits.Add64(now, tier.LockSeconds(), 0)
	if overflow != 0 || tier.LockSeconds()/params.SecondsPerDay != tier.LockDays {
		return nil, reverts.ErrNumericalOverflow.Withf("lock of %d days from %d", tier.LockDays, now)
	}

	acc, err := s.Account(owner)
	if err != nil {
		return nil, err
	}
	stake := &Stake{
		Asset:          asset,
		Tier:           tier.ID,
		Principal:      net,
		Multiplier:     tier.Multiplier,
		LockDays:       tier.LockDays,
		CreatedAt:      now,
		LockUntil:      lockUntil,
		ClaimedRewards: new(uint256.Int),
		Active:         true,
	}
	acc.Stakes = append(acc.Stakes, stake)
	if err := s.accounts.Set(owner, acc); err != nil {
		return nil, errors.Wrap(err, "failed to set account")
	}
	return &Deposit{
		Index: uint64(len(acc.Stakes) - 1),
		Fee:   fee,
		Net:   net,
		Stake: stake,
	}, nil
}

// RecordClaim adds amount to the stake's claimed rewards and the account totals.
func (s *Service) RecordClaim(owner core.Address, index uint64, amount *uint256.Int, now uint64) (*Stake, error) {
	acc, stake, err := s.GetActive(owner, index)
	if err != nil {
		return nil, err
	}
	if err := credit(acc, stake, amount, now); err != nil {
		return nil, err
	}
	if err := s.accounts.Set(owner, acc); err != nil {
		return nil, errors.Wrap(err, "failed to set account")
	}
	return stake, nil
}

// Close marks the stake withdrawn, crediting rewardsPaid to the claim totals. A closed
// stake accepts no further mutation.
func (s *Service) Close(owner core.Address, index uint64, rewardsPaid *uint256.Int, now uint64) (*Stake, error) {
	acc, stake, err := s.GetActive(owner, index)
	if err != nil {
		return nil, err
	}
	if !rewardsPaid.IsZero() {
		if err := credit(acc, stake, rewardsPaid, now); err != nil {
			return nil, err
		}
	}
	stake.Active = false
	if err := s.accounts.Set(owner, acc); err != nil {
		return nil, errors.Wrap(err, "failed to set account")
	}
	return stake, nil
}

func credit(acc *Account, stake *Stake, amount *uint256.Int, now uint64) error {
	maxReward, err := stake.MaxReward()
	if err != nil {
		return err
	}
	claimed, overflow := new(uint256.Int).AddOverflow(stake.ClaimedRewards, amount)
	if overflow {
		return reverts.ErrNumericalOverflow
	}
	if claimed.Gt(maxReward) {
		return reverts.ErrInvariantViolation.Withf("claimed %s exceeds max reward %s", claimed.Dec(), maxReward.Dec())
	}
	stake.ClaimedRewards = claimed

	total := acc.TotalClaimed(stake.Asset)
	sum, overflow := new(uint256.Int).AddOverflow(total, amount)
	if overflow {
		return reverts.ErrNumericalOverflow
	}
	if stake.Asset == core.Token {
		acc.TotalClaimedToken = sum
	} else {
		acc.TotalClaimedNative = sum
	}
	acc.LastClaimAt = now
	return nil
}

// Iterate visits every account in key order.
func (s *Service) Iterate(fn func(*Account) error) error {
	return s.accounts.Iterate(func(_ []byte, acc *Account) error {
		return fn(acc)
	})
}
