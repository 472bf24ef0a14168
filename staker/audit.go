// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/ledger"
	"github.com/spacemoney/stakeledger/staker/reverts"
)

// AssetAudit reconciles one asset pool.
type AssetAudit struct {
	Asset           core.Asset
	TotalStaked     *uint256.Int // as booked by the platform
	ActivePrincipal *uint256.Int // recomputed from active stakes
	ActiveStakes    uint64
	Treasury        *uint256.Int
	RewardsPaid     *uint256.Int
}

// Consistent reports whether the booked total matches the stakes.
func (a *AssetAudit) Consistent() bool {
	return a.TotalStaked.Eq(a.ActivePrincipal)
}

// AuditReport is the outcome of Audit.
type AuditReport struct {
	Timestamp uint64
	Accounts  uint64
	Assets    []*AssetAudit
}

func (r *AuditReport) Consistent() bool {
	for _, a := range r.Assets {
		if !a.Consistent() {
			return false
		}
	}
	return true
}

// Audit recomputes total staked per asset from every active stake and compares it
// with the booked totals. A mismatch halts the ledger and is returned as
// ErrInvariantViolation together with the report.
func (s *Staker) Audit() (*AuditReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &AuditReport{Timestamp: s.clock.Now()}
	byAsset := make(map[core.Asset]*AssetAudit)
	for _, a := range core.Assets {
		staked, err := s.treasury.TotalStaked(a)
		if err != nil {
			return nil, err
		}
		balance, err := s.treasury.Treasury(a)
		if err != nil {
			return nil, err
		}
		paid, err := s.treasury.RewardsPaid(a)
		if err != nil {
			return nil, err
		}
		audit := &AssetAudit{
			Asset:           a,
			TotalStaked:     staked,
			ActivePrincipal: new(uint256.Int),
			Treasury:        balance,
			RewardsPaid:     paid,
		}
		byAsset[a] = audit
		report.Assets = append(report.Assets, audit)
	}

	err := s.ledgerService.Iterate(func(acc *ledger.Account) error {
		report.Accounts++
		for _, stake := range acc.Stakes {
			if !stake.Active {
				continue
			}
			audit, ok := byAsset[stake.Asset]
			if !ok {
				return reverts.ErrInvariantViolation.Withf("stake of %s has unknown asset %d", acc.Owner, stake.Asset)
			}
			sum, overflow := new(uint256.Int).AddOverflow(audit.ActivePrincipal, stake.Principal)
			if overflow {
				return reverts.ErrNumericalOverflow
			}
			audit.ActivePrincipal = sum
			audit.ActiveStakes++
		}
		return nil
	})
	if err != nil {
		s.onFailure("audit", err)
		return nil, err
	}

	for _, a := range report.Assets {
		if !a.Consistent() {
			err := reverts.ErrInvariantViolation.Withf("%s total staked %s, active principal %s", a.Asset, a.TotalStaked.Dec(), a.ActivePrincipal.Dec())
			s.onFailure("audit", err)
			return report, err
		}
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": "audit", "outcome": "ok"})
	return report, nil
}
