// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/spacemoney/stakeledger/staker/reverts"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{reverts.ErrInsufficientStakeAmount, http.StatusBadRequest},
		{reverts.ErrStakeLocked.Withf("unlocks at %d", 5), http.StatusConflict},
		{reverts.ErrInsufficientTreasuryBalance, http.StatusConflict},
		{reverts.ErrUnauthorized, http.StatusForbidden},
		{reverts.ErrLedgerHalted, http.StatusInternalServerError},
		{reverts.ErrStakeNotFound, http.StatusNotFound},
		{pkgerrors.Wrap(reverts.ErrProgramPaused, "deposit"), http.StatusConflict},
		{BadRequest(errors.New("x")), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestWrapHandlerFunc(t *testing.T) {
	h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return reverts.ErrStakeLocked
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"code":"StakeLocked"`)
}
