// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/payout"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/staker/rewards"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// DepositNative opens a stake in the native asset.
func (s *Staker) DepositNative(principal core.Address, gross *uint256.Int, tier tiers.ID) (*Receipt, error) {
	return s.deposit(principal, core.Native, nil, gross, tier)
}

// DepositToken opens a stake in the configured token. mint must match the platform
// token mint.
func (s *Staker) DepositToken(principal core.Address, mint core.Address, gross *uint256.Int, tier tiers.ID) (*Receipt, error) {
	return s.deposit(principal, core.Token, &mint, gross, tier)
}

// Deposit opens a stake in asset. Token deposits are checked against the configured mint.
func (s *Staker) Deposit(principal core.Address, asset core.Asset, gross *uint256.Int, tier tiers.ID) (*Receipt, error) {
	return s.deposit(principal, asset, nil, gross, tier)
}

func (s *Staker) deposit(principal core.Address, asset core.Asset, mint *core.Address, gross *uint256.Int, tierID tiers.ID) (*Receipt, error) {
	logger.Debug("depositing", "principal", principal, "asset", asset, "tier", tierID, "amount", gross)

	receipt, err := s.mutate("deposit", func(now uint64) (*change, error) {
		m, err := s.meta()
		if err != nil {
			return nil, err
		}
		if m.Paused {
			return nil, reverts.ErrProgramPaused
		}
		if !asset.Valid() {
			return nil, reverts.ErrInvalidAsset
		}
		if asset == core.Token {
			if m.TokenMint.IsZero() {
				return nil, reverts.ErrInvalidTokenMint.Withf("token mint not configured")
			}
			if mint != nil && *mint != m.TokenMint {
				return nil, reverts.ErrInvalidTokenMint.Withf("want %s", m.TokenMint)
			}
		}
		if gross == nil || gross.IsZero() {
			return nil, reverts.ErrInvalidAmount.Withf("deposit must be positive")
		}
		tier, err := s.tierService.Get(tierID)
		if err != nil {
			return nil, err
		}
		dep, err := s.ledgerService.Deposit(principal, asset, gross, tier, now)
		if err != nil {
			return nil, err
		}
		if err := s.treasury.AddFee(asset, dep.Fee); err != nil {
			return nil, err
		}
		if err := s.treasury.AddStaked(asset, dep.Net); err != nil {
			return nil, err
		}
		return &change{event: &Event{
			Kind:       EventDeposited,
			Actor:      principal,
			Asset:      asset,
			Tier:       tier.ID,
			StakeIndex: dep.Index,
			Amount:     gross,
			Principal:  dep.Net,
			Fee:        dep.Fee,
			LockUntil:  dep.Stake.LockUntil,
		}}, nil
	})
	if err != nil {
		logger.Info("deposit failed", "principal", principal, "error", err)
		return nil, err
	}

	logger.Info("deposited", "principal", principal, "index", receipt.Event.StakeIndex, "net", receipt.Event.Principal)
	return receipt, nil
}

// Withdraw closes an unlocked stake, paying out its principal and every unclaimed reward.
func (s *Staker) Withdraw(principal core.Address, index uint64) (*Receipt, error) {
	logger.Debug("withdrawing", "principal", principal, "index", index)

	receipt, err := s.mutate("withdraw", func(now uint64) (*change, error) {
		m, err := s.meta()
		if err != nil {
			return nil, err
		}
		if err := s.checkExitPaused(m); err != nil {
			return nil, err
		}
		_, stake, err := s.ledgerService.GetActive(principal, index)
		if err != nil {
			return nil, err
		}
		if stake.Locked(now) {
			return nil, reverts.ErrStakeLocked.Withf("unlocks at %d", stake.LockUntil)
		}
		owed, err := stake.Claimable(now)
		if err != nil {
			return nil, err
		}
		total, overflow := new(uint256.Int).AddOverflow(stake.Principal, owed)
		if overflow {
			return nil, reverts.ErrNumericalOverflow
		}
		if _, err := s.ledgerService.Close(principal, index, owed, now); err != nil {
			return nil, err
		}
		if err := s.treasury.RemoveStaked(stake.Asset, stake.Principal); err != nil {
			return nil, err
		}
		if err := s.treasury.AddRewardsPaid(stake.Asset, owed); err != nil {
			return nil, err
		}
		return &change{
			event: &Event{
				Kind:       EventWithdrew,
				Actor:      principal,
				Asset:      stake.Asset,
				Tier:       stake.Tier,
				StakeIndex: index,
				Amount:     total,
				Principal:  stake.Principal,
				Rewards:    owed,
				LockUntil:  stake.LockUntil,
			},
			payout: &payout.Instruction{
				Recipient:  principal,
				Asset:      stake.Asset,
				Amount:     total,
				Reason:     payout.ReasonWithdraw,
				StakeIndex: index,
			},
		}, nil
	})
	if err != nil {
		logger.Info("withdraw failed", "principal", principal, "index", index, "error", err)
		return nil, err
	}

	logger.Info("withdrew", "principal", principal, "index", index, "payout", receipt.Event.Amount)
	return receipt, nil
}

// ForceWithdraw closes a stake in any lock state. A share of the owed rewards is
// forfeited to the treasury; the principal is always returned in full.
func (s *Staker) ForceWithdraw(principal core.Address, index uint64) (*Receipt, error) {
	logger.Debug("force withdrawing", "principal", principal, "index", index)

	receipt, err := s.mutate("force_withdraw", func(now uint64) (*change, error) {
		m, err := s.meta()
		if err != nil {
			return nil, err
		}
		if err := s.checkExitPaused(m); err != nil {
			return nil, err
		}
		_, stake, err := s.ledgerService.GetActive(principal, index)
		if err != nil {
			return nil, err
		}
		owed, err := stake.Claimable(now)
		if err != nil {
			return nil, err
		}
		penalty, err := rewards.Penalty(owed)
		if err != nil {
			return nil, err
		}
		paid := new(uint256.Int).Sub(owed, penalty)
		total, overflow := new(uint256.Int).AddOverflow(stake.Principal, paid)
		if overflow {
			return nil, reverts.ErrNumericalOverflow
		}
		if _, err := s.ledgerService.Close(principal, index, paid, now); err != nil {
			return nil, err
		}
		if err := s.treasury.RemoveStaked(stake.Asset, stake.Principal); err != nil {
			return nil, err
		}
		if err := s.treasury.AddFee(stake.Asset, penalty); err != nil {
			return nil, err
		}
		if err := s.treasury.AddRewardsPaid(stake.Asset, paid); err != nil {
			return nil, err
		}
		return &change{
			event: &Event{
				Kind:       EventForceWithdrew,
				Actor:      principal,
				Asset:      stake.Asset,
				Tier:       stake.Tier,
				StakeIndex: index,
				Amount:     total,
				Principal:  stake.Principal,
				Rewards:    paid,
				Fee:        penalty,
				LockUntil:  stake.LockUntil,
			},
			payout: &payout.Instruction{
				Recipient:  principal,
				Asset:      stake.Asset,
				Amount:     total,
				Reason:     payout.ReasonForceWithdraw,
				StakeIndex: index,
			},
		}, nil
	})
	if err != nil {
		logger.Info("force withdraw failed", "principal", principal, "index", index, "error", err)
		return nil, err
	}

	logger.Info("force withdrew", "principal", principal, "index", index, "payout", receipt.Event.Amount, "penalty", receipt.Event.Fee)
	return receipt, nil
}

// ClaimRewards pays out the rewards accrued and not yet claimed on an active stake.
func (s *Staker) ClaimRewards(principal core.Address, index uint64) (*Receipt, error) {
	logger.Debug("claiming rewards", "principal", principal, "index", index)

	receipt, err := s.mutate("claim", func(now uint64) (*change, error) {
		m, err := s.meta()
		if err != nil {
			return nil, err
		}
		if err := s.checkExitPaused(m); err != nil {
			return nil, err
		}
		_, stake, err := s.ledgerService.GetActive(principal, index)
		if err != nil {
			return nil, err
		}
		maxReward, err := stake.MaxReward()
		if err != nil {
			return nil, err
		}
		if stake.ClaimedRewards.Eq(maxReward) {
			return nil, reverts.ErrMaxRewardsClaimed
		}
		amount, err := stake.Claimable(now)
		if err != nil {
			return nil, err
		}
		if amount.IsZero() {
			return nil, reverts.ErrNoRewardsAvailable
		}
		if _, err := s.ledgerService.RecordClaim(principal, index, amount, now); err != nil {
			return nil, err
		}
		if err := s.treasury.AddRewardsPaid(stake.Asset, amount); err != nil {
			return nil, err
		}
		return &change{
			event: &Event{
				Kind:       EventClaimedRewards,
				Actor:      principal,
				Asset:      stake.Asset,
				Tier:       stake.Tier,
				StakeIndex: index,
				Amount:     amount,
				Rewards:    amount,
			},
			payout: &payout.Instruction{
				Recipient:  principal,
				Asset:      stake.Asset,
				Amount:     amount,
				Reason:     payout.ReasonClaim,
				StakeIndex: index,
			},
		}, nil
	})
	if err != nil {
		logger.Info("claim failed", "principal", principal, "index", index, "error", err)
		return nil, err
	}

	logger.Info("claimed rewards", "principal", principal, "index", index, "amount", receipt.Event.Amount)
	return receipt, nil
}
