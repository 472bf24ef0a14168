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
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// Initialize sets up the platform: admin, token mint and the tier table. It runs once.
func (s *Staker) Initialize(admin, tokenMint core.Address, table []*tiers.Tier) (*Receipt, error) {
	logger.Debug("initializing platform", "admin", admin, "tokenMint", tokenMint)

	receipt, err := s.mutate("initialize", func(now uint64) (*change, error) {
		if len(table) != len(tiers.All) {
			return nil, reverts.ErrInvalidTierConfig.Withf("want %d tiers, got %d", len(tiers.All), len(table))
		}
		seen := make(map[tiers.ID]bool)
		for _, t := range table {
			if seen[t.ID] {
				return nil, reverts.ErrInvalidTierConfig.Withf("duplicate tier %s", t.ID)
			}
			seen[t.ID] = true
			if err := s.tierService.Set(t); err != nil {
				return nil, err
			}
		}
		if err := s.treasury.Initialize(admin, tokenMint, now); err != nil {
			return nil, err
		}
		return &change{event: &Event{
			Kind:         EventInitialized,
			Actor:        admin,
			Counterparty: tokenMint,
		}}, nil
	})
	if err != nil {
		logger.Info("initialize failed", "error", err)
		return nil, err
	}

	logger.Info("platform initialized", "admin", admin)
	return receipt, nil
}

// AdminTransfer moves funds out of the treasury to recipient.
func (s *Staker) AdminTransfer(caller core.Address, asset core.Asset, amount *uint256.Int, recipient core.Address) (*Receipt, error) {
	logger.Debug("admin transfer", "caller", caller, "asset", asset, "amount", amount, "recipient", recipient)

	receipt, err := s.mutate("admin_transfer", func(uint64) (*change, error) {
		if _, err := s.requireAdmin(caller); err != nil {
			return nil, err
		}
		if !asset.Valid() {
			return nil, reverts.ErrInvalidAsset
		}
		if amount == nil || amount.IsZero() {
			return nil, reverts.ErrInvalidAmount.Withf("transfer must be positive")
		}
		if recipient.IsZero() {
			return nil, reverts.ErrInvalidAddress.Withf("recipient must be set")
		}
		if err := s.treasury.Withdraw(asset, amount); err != nil {
			return nil, err
		}
		return &change{
			event: &Event{
				Kind:         EventAdminTransferred,
				Actor:        caller,
				Counterparty: recipient,
				Asset:        asset,
				Amount:       amount,
			},
			payout: &payout.Instruction{
				Recipient: recipient,
				Asset:     asset,
				Amount:    amount,
				Reason:    payout.ReasonAdminTransfer,
			},
		}, nil
	})
	if err != nil {
		logger.Info("admin transfer failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("admin transferred", "recipient", recipient, "asset", asset, "amount", amount)
	return receipt, nil
}

// SetAdmin hands the admin role to newAdmin.
func (s *Staker) SetAdmin(caller, newAdmin core.Address) (*Receipt, error) {
	logger.Debug("changing admin", "caller", caller, "newAdmin", newAdmin)

	receipt, err := s.mutate("set_admin", func(uint64) (*change, error) {
		if _, err := s.requireAdmin(caller); err != nil {
			return nil, err
		}
		if err := s.treasury.SetAdmin(newAdmin); err != nil {
			return nil, err
		}
		return &change{event: &Event{Kind: EventAdminChanged, Actor: caller, Counterparty: newAdmin}}, nil
	})
	if err != nil {
		logger.Info("set admin failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("admin changed", "old", caller, "new", newAdmin)
	return receipt, nil
}

// Pause sets the pause flag.
func (s *Staker) Pause(caller core.Address) (*Receipt, error) {
	return s.setPaused(caller, true)
}

// Resume clears the pause flag.
func (s *Staker) Resume(caller core.Address) (*Receipt, error) {
	return s.setPaused(caller, false)
}

func (s *Staker) setPaused(caller core.Address, paused bool) (*Receipt, error) {
	op, kind := "resume", EventProgramResumed
	if paused {
		op, kind = "pause", EventProgramPaused
	}
	logger.Debug("setting pause flag", "caller", caller, "paused", paused)

	receipt, err := s.mutate(op, func(uint64) (*change, error) {
		if _, err := s.requireAdmin(caller); err != nil {
			return nil, err
		}
		if err := s.treasury.SetPaused(paused); err != nil {
			return nil, err
		}
		return &change{event: &Event{Kind: kind, Actor: caller}}, nil
	})
	if err != nil {
		logger.Info(op+" failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("pause flag set", "paused", paused)
	return receipt, nil
}

// UpdateTier changes a tier for future deposits. Existing stakes keep their terms.
func (s *Staker) UpdateTier(caller core.Address, id tiers.ID, minStake *uint256.Int, multiplier, lockDays uint64) (*Receipt, error) {
	logger.Debug("updating tier", "caller", caller, "tier", id, "minStake", minStake, "multiplier", multiplier, "lockDays", lockDays)

	receipt, err := s.mutate("update_tier", func(uint64) (*change, error) {
		if _, err := s.requireAdmin(caller); err != nil {
			return nil, err
		}
		t, err := s.tierService.Update(id, minStake, multiplier, lockDays)
		if err != nil {
			return nil, err
		}
		return &change{event: &Event{
			Kind:   EventTierUpdated,
			Actor:  caller,
			Tier:   t.ID,
			Amount: t.MinStake,
		}}, nil
	})
	if err != nil {
		logger.Info("update tier failed", "caller", caller, "tier", id, "error", err)
		return nil, err
	}

	logger.Info("tier updated", "tier", id)
	return receipt, nil
}

// SetTokenMint configures the mint accepted by token deposits.
func (s *Staker) SetTokenMint(caller, mint core.Address) (*Receipt, error) {
	logger.Debug("setting token mint", "caller", caller, "mint", mint)

	receipt, err := s.mutate("set_token_mint", func(uint64) (*change, error) {
		if _, err := s.requireAdmin(caller); err != nil {
			return nil, err
		}
		if err := s.treasury.SetTokenMint(mint); err != nil {
			return nil, err
		}
		return &change{event: &Event{Kind: EventTokenMintChanged, Actor: caller, Counterparty: mint}}, nil
	})
	if err != nil {
		logger.Info("set token mint failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("token mint changed", "mint", mint)
	return receipt, nil
}
