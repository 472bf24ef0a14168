// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package platform

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/staker"
)

type Platform struct {
	staker *staker.Staker
	policy staker.PausePolicy
}

func New(s *staker.Staker, policy staker.PausePolicy) *Platform {
	return &Platform{staker: s, policy: policy}
}

func (p *Platform) handleGetPlatform(w http.ResponseWriter, _ *http.Request) error {
	st, err := p.staker.Platform()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPlatform(st, p.policy, p.staker.Halted()))
}

// handleGetAudit reconciles the booked totals. An inconsistent report is still
// returned, with status 500.
func (p *Platform) handleGetAudit(w http.ResponseWriter, _ *http.Request) error {
	report, err := p.staker.Audit()
	if report == nil {
		return err
	}
	if err != nil {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusInternalServerError)
	}
	return utils.WriteJSON(w, convertAudit(report))
}

func (p *Platform) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).Name("GET /platform").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPlatform))
	sub.Path("/audit").Methods(http.MethodGet).Name("GET /platform/audit").HandlerFunc(utils.WrapHandlerFunc(p.handleGetAudit))
}
