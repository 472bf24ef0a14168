// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/staker"
)

type Accounts struct {
	staker *staker.Staker
}

func New(s *staker.Staker) *Accounts {
	return &Accounts{staker: s}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.staker.Account(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertAccount(acc, a.staker.Now()))
}

func (a *Accounts) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	index, err := utils.Uint64Var(req, "index")
	if err != nil {
		return err
	}
	stake, err := a.staker.Stake(owner, index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertStake(index, stake, a.staker.Now()))
}

func (a *Accounts) handleGetClaimable(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	index, err := utils.Uint64Var(req, "index")
	if err != nil {
		return err
	}
	preview, err := a.staker.Claimable(owner, index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertClaimable(preview))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/stakes/{index}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/stakes/{index}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetStake))
	sub.Path("/{address}/stakes/{index}/claimable").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/stakes/{index}/claimable").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetClaimable))
}
