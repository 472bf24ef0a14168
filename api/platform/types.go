// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package platform

import (
	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/treasury"
)

// Pools holds one amount per asset.
type Pools map[core.Asset]*types.Amount

type State struct {
	Admin       core.Address `json:"admin"`
	TokenMint   core.Address `json:"tokenMint"`
	Paused      bool         `json:"paused"`
	PausePolicy string       `json:"pausePolicy"`
	Halted      bool         `json:"halted"`
	CreatedAt   uint64       `json:"createdAt"`
	Treasury    Pools        `json:"treasury"`
	TotalStaked Pools        `json:"totalStaked"`
	RewardsPaid Pools        `json:"rewardsPaid"`
}

func convertPlatform(st *treasury.State, policy staker.PausePolicy, halted bool) *State {
	pools := func(m map[core.Asset]*uint256.Int) Pools {
		out := make(Pools, len(m))
		for a, v := range m {
			out[a] = types.NewAmount(v)
		}
		return out
	}
	return &State{
		Admin:       st.Admin,
		TokenMint:   st.TokenMint,
		Paused:      st.Paused,
		PausePolicy: policy.String(),
		Halted:      halted,
		CreatedAt:   st.CreatedAt,
		Treasury:    pools(st.Treasury),
		TotalStaked: pools(st.TotalStaked),
		RewardsPaid: pools(st.RewardsPaid),
	}
}

type AssetAudit struct {
	Asset           core.Asset    `json:"asset"`
	TotalStaked     *types.Amount `json:"totalStaked"`
	ActivePrincipal *types.Amount `json:"activePrincipal"`
	ActiveStakes    uint64        `json:"activeStakes"`
	Treasury        *types.Amount `json:"treasury"`
	RewardsPaid     *types.Amount `json:"rewardsPaid"`
	Consistent      bool          `json:"consistent"`
}

type Audit struct {
	Timestamp  uint64        `json:"timestamp"`
	Accounts   uint64        `json:"accounts"`
	Consistent bool          `json:"consistent"`
	Assets     []*AssetAudit `json:"assets"`
}

func convertAudit(r *staker.AuditReport) *Audit {
	out := &Audit{
		Timestamp:  r.Timestamp,
		Accounts:   r.Accounts,
		Consistent: r.Consistent(),
	}
	for _, a := range r.Assets {
		out.Assets = append(out.Assets, &AssetAudit{
			Asset:           a.Asset,
			TotalStaked:     types.NewAmount(a.TotalStaked),
			ActivePrincipal: types.NewAmount(a.ActivePrincipal),
			ActiveStakes:    a.ActiveStakes,
			Treasury:        types.NewAmount(a.Treasury),
			RewardsPaid:     types.NewAmount(a.RewardsPaid),
			Consistent:      a.Consistent(),
		})
	}
	return out
}
