// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

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

// DepositRequest opens a stake for the calling principal.
type DepositRequest struct {
	Asset  core.Asset    `json:"asset"`
	Tier   string        `json:"tier"`
	Amount *types.Amount `json:"amount"`
	// Mint is checked against the configured token mint for token deposits.
	Mint *core.Address `json:"mint,omitempty"`
}

type Stakes struct {
	staker *staker.Staker
}

func New(s *staker.Staker) *Stakes {
	return &Stakes{staker: s}
}

func (s *Stakes) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	principal, err := utils.Principal(req)
	if err != nil {
		return err
	}
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	tier, err := tiers.ParseName(body.Tier)
	if err != nil {
		return err
	}

	var receipt *staker.Receipt
	if body.Mint != nil && body.Asset == core.Token {
		receipt, err = s.staker.DepositToken(principal, *body.Mint, body.Amount.Int(), tier)
	} else {
		receipt, err = s.staker.Deposit(principal, body.Asset, body.Amount.Int(), tier)
	}
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertReceipt(receipt))
}

// exit wraps the per stake operations that take only the caller and an index.
func (s *Stakes) exit(op func(core.Address, uint64) (*staker.Receipt, error)) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		principal, err := utils.Principal(req)
		if err != nil {
			return err
		}
		index, err := utils.Uint64Var(req, "index")
		if err != nil {
			return err
		}
		receipt, err := op(principal, index)
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, types.ConvertReceipt(receipt))
	}
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/{index}/withdraw").
		Methods(http.MethodPost).
		Name("POST /stakes/{index}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(s.exit(s.staker.Withdraw)))
	sub.Path("/{index}/force-withdraw").
		Methods(http.MethodPost).
		Name("POST /stakes/{index}/force-withdraw").
		HandlerFunc(utils.WrapHandlerFunc(s.exit(s.staker.ForceWithdraw)))
	sub.Path("/{index}/claim").
		Methods(http.MethodPost).
		Name("POST /stakes/{index}/claim").
		HandlerFunc(utils.WrapHandlerFunc(s.exit(s.staker.ClaimRewards)))
}
