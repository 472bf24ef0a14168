// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/staker"
)

// Claimable previews a claim on one stake.
type Claimable struct {
	Now       uint64        `json:"now"`
	Status    string        `json:"status"`
	Claimable *types.Amount `json:"claimable"`
	Claimed   *types.Amount `json:"claimed"`
	MaxReward *types.Amount `json:"maxReward"`
	UnlocksIn uint64        `json:"unlocksIn"`
}

func convertClaimable(p *staker.ClaimPreview) *Claimable {
	return &Claimable{
		Now:       p.Now,
		Status:    p.Status.String(),
		Claimable: types.NewAmount(p.Claimable),
		Claimed:   types.NewAmount(p.Claimed),
		MaxReward: types.NewAmount(p.MaxReward),
		UnlocksIn: p.UnlocksIn,
	}
}
