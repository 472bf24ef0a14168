// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/store"
)

var slotTiers = core.BytesToBytes32([]byte("tiers"))

// Service is the tier registry.
type Service struct {
	tiers *store.Mapping[ID, *Tier]
}

func New(sctx *store.Context) *Service {
	return &Service{
		tiers: store.NewMapping[ID, *Tier](sctx, slotTiers),
	}
}

// Get returns the tier configuration, failing for unknown or unconfigured tiers.
func (s *Service) Get(id ID) (*Tier, error) {
	if _, err := Parse(uint8(id)); err != nil {
		return nil, err
	}
	t, err := s.tiers.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tier")
	}
	if t == nil {
		return nil, reverts.ErrInvalidTier.Withf("tier %s not configured", id)
	}
	t.ID = id
	return t, nil
}

// All returns every configured tier in ID order.
func (s *Service) All() ([]*Tier, error) {
	out := make([]*Tier, 0, len(All))
	for _, id := range All {
		t, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Set stores t after validating it. Existing stakes keep the terms they were created with.
func (s *Service) Set(t *Tier) error {
	if _, err := Parse(uint8(t.ID)); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tiers.Set(t.ID, t)
}

// Update replaces the configuration of an existing tier.
func (s *Service) Update(id ID, minStake *uint256.Int, multiplier, lockDays uint64) (*Tier, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	t := &Tier{ID: id, MinStake: minStake, Multiplier: multiplier, LockDays: lockDays}
	if err := s.Set(t); err != nil {
		return nil, err
	}
	return t, nil
}
