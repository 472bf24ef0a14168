// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

type Tiers struct {
	staker *staker.Staker
}

func New(s *staker.Staker) *Tiers {
	return &Tiers{staker: s}
}

func (t *Tiers) handleGetTiers(w http.ResponseWriter, _ *http.Request) error {
	all, err := t.staker.Tiers()
	if err != nil {
		return err
	}
	out := make([]*types.Tier, 0, len(all))
	for _, tier := range all {
		out = append(out, types.ConvertTier(tier))
	}
	return utils.WriteJSON(w, out)
}

func (t *Tiers) handleGetTier(w http.ResponseWriter, req *http.Request) error {
	id, err := tiers.ParseName(mux.Vars(req)["tier"])
	if err != nil {
		return utils.NotFound(err)
	}
	tier, err := t.staker.Tier(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertTier(tier))
}

func (t *Tiers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).Name("GET /tiers").HandlerFunc(utils.WrapHandlerFunc(t.handleGetTiers))
	sub.Path("/{tier}").Methods(http.MethodGet).Name("GET /tiers/{tier}").HandlerFunc(utils.WrapHandlerFunc(t.handleGetTier))
}
