// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payouts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/staker"
)

const defaultLimit = 100

type Payouts struct {
	staker *staker.Staker
}

func New(s *staker.Staker) *Payouts {
	return &Payouts{staker: s}
}

func (p *Payouts) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	limit, err := utils.Uint64Query(req, "limit", defaultLimit)
	if err != nil {
		return err
	}
	pending, err := p.staker.PendingPayouts(int(limit))
	if err != nil {
		return err
	}
	out := make([]*types.Payout, 0, len(pending))
	for _, ins := range pending {
		out = append(out, types.ConvertPayout(ins))
	}
	return utils.WriteJSON(w, out)
}

func (p *Payouts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/pending").Methods(http.MethodGet).Name("GET /payouts/pending").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPending))
}
