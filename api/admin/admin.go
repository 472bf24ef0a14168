// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

type TransferRequest struct {
	Asset     core.Asset    `json:"asset"`
	Amount    *types.Amount `json:"amount"`
	Recipient core.Address  `json:"recipient"`
}

type SetAdminRequest struct {
	Admin core.Address `json:"admin"`
}

type TierRequest struct {
	MinStake   *types.Amount `json:"minStake"`
	Multiplier uint64        `json:"multiplier"`
	LockDays   uint64        `json:"lockDays"`
}

type TokenMintRequest struct {
	Mint core.Address `json:"mint"`
}

// Admin serves the privileged operations. The engine checks the caller against the
// configured admin.
type Admin struct {
	staker *staker.Staker
}

func New(s *staker.Staker) *Admin {
	return &Admin{staker: s}
}

func parseBody(req *http.Request, v any) error {
	if err := utils.ParseJSON(req.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

func respond(w http.ResponseWriter, receipt *staker.Receipt, err error) error {
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertReceipt(receipt))
}

func (a *Admin) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	receipt, err := a.staker.AdminTransfer(caller, body.Asset, body.Amount.Int(), body.Recipient)
	return respond(w, receipt, err)
}

func (a *Admin) handleSetAdmin(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	var body SetAdminRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	receipt, err := a.staker.SetAdmin(caller, body.Admin)
	return respond(w, receipt, err)
}

func (a *Admin) handlePause(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	receipt, err := a.staker.Pause(caller)
	return respond(w, receipt, err)
}

func (a *Admin) handleResume(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	receipt, err := a.staker.Resume(caller)
	return respond(w, receipt, err)
}

func (a *Admin) handleUpdateTier(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	id, err := tiers.ParseName(mux.Vars(req)["tier"])
	if err != nil {
		return err
	}
	var body TierRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	receipt, err := a.staker.UpdateTier(caller, id, body.MinStake.Int(), body.Multiplier, body.LockDays)
	return respond(w, receipt, err)
}

func (a *Admin) handleSetTokenMint(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Principal(req)
	if err != nil {
		return err
	}
	var body TokenMintRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	receipt, err := a.staker.SetTokenMint(caller, body.Mint)
	return respond(w, receipt, err)
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/transfer").Methods(http.MethodPost).Name("POST /admin/transfer").HandlerFunc(utils.WrapHandlerFunc(a.handleTransfer))
	sub.Path("/admin").Methods(http.MethodPost).Name("POST /admin/admin").HandlerFunc(utils.WrapHandlerFunc(a.handleSetAdmin))
	sub.Path("/pause").Methods(http.MethodPost).Name("POST /admin/pause").HandlerFunc(utils.WrapHandlerFunc(a.handlePause))
	sub.Path("/resume").Methods(http.MethodPost).Name("POST /admin/resume").HandlerFunc(utils.WrapHandlerFunc(a.handleResume))
	sub.Path("/tiers/{tier}").Methods(http.MethodPut).Name("PUT /admin/tiers/{tier}").HandlerFunc(utils.WrapHandlerFunc(a.handleUpdateTier))
	sub.Path("/token-mint").Methods(http.MethodPost).Name("POST /admin/token-mint").HandlerFunc(utils.WrapHandlerFunc(a.handleSetTokenMint))
}
