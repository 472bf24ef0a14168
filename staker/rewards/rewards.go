// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards computes fees, accrual and penalties. Every function is pure:
// results depend only on the arguments, and all arithmetic is floor division over
// overflow-checked 256 bit integers.
package rewards

import (
	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/reverts"
)

// Terms are the reward parameters a stake was created with.
type Terms struct {
	Principal  *uint256.Int
	Multiplier uint64
	LockDays   uint64
	CreatedAt  uint64
}

// mulBps returns amount * bps / BpsDenominator.
func mulBps(amount *uint256.Int, bps uint64) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(bps))
	if overflow {
		return nil, reverts.ErrNumericalOverflow
	}
	return product.Div(product, uint256.NewInt(params.BpsDenominator)), nil
}

// DepositFee returns the fee withheld from a gross deposit.
func DepositFee(gross *uint256.Int) (*uint256.Int, error) {
	return mulBps(gross, params.DepositFeeBps)
}

// SplitDeposit returns the fee and the net principal of a gross deposit.
func SplitDeposit(gross *uint256.Int) (fee, net *uint256.Int, err error) {
	fee, err = DepositFee(gross)
	if err != nil {
		return nil, nil, err
	}
	return fee, new(uint256.Int).Sub(gross, fee), nil
}

// Penalty returns the share of owed rewards forfeited on a forced withdrawal.
func Penalty(rewards *uint256.Int) (*uint256.Int, error) {
	return mulBps(rewards, params.ForceWithdrawPenaltyBps)
}

// DailyReward is principal * multiplier * DailyYieldBps / BpsDenominator.
func DailyReward(principal *uint256.Int, multiplier uint64) (*uint256.Int, error) {
	weighted, overflow := new(uint256.Int).MulOverflow(principal, uint256.NewInt(multiplier))
	if overflow {
		return nil, reverts.ErrNumericalOverflow
	}
	return mulBps(weighted, params.DailyYieldBps)
}

// MaxReward is the reward paid over the full lock period.
func MaxReward(principal *uint256.Int, multiplier, lockDays uint64) (*uint256.Int, error) {
	daily, err := DailyReward(principal, multiplier)
	if err != nil {
		return nil, err
	}
	total, overflow := daily.MulOverflow(daily, uint256.NewInt(lockDays))
	if overflow {
		return nil, reverts.ErrNumericalOverflow
	}
	return total, nil
}

// ElapsedDays counts the whole days between createdAt and now; zero when now precedes createdAt.
func ElapsedDays(createdAt, now uint64) uint64 {
	if now <= createdAt {
		return 0
	}
	return (now - createdAt) / params.SecondsPerDay
}

// Accrued is the reward earned by now, capped at the maximum reward. Days past the
// lock end earn nothing.
func Accrued(terms Terms, now uint64) (*uint256.Int, error) {
	days := min(ElapsedDays(terms.CreatedAt, now), terms.LockDays)
	daily, err := DailyReward(terms.Principal, terms.Multiplier)
	if err != nil {
		return nil, err
	}
	accrued, overflow := daily.MulOverflow(daily, uint256.NewInt(days))
	if overflow {
		return nil, reverts.ErrNumericalOverflow
	}
	return accrued, nil
}

// Claimable is the accrued reward not yet claimed, never negative.
func Claimable(terms Terms, claimed *uint256.Int, now uint64) (*uint256.Int, error) {
	accrued, err := Accrued(terms, now)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		return accrued, nil
	}
	if accrued.Lt(claimed) {
		return new(uint256.Int), nil
	}
	return accrued.Sub(accrued, claimed), nil
}

// TotalReturnBps is the full-term reward as a fraction of principal, in basis points.
func TotalReturnBps(multiplier, lockDays uint64) uint64 {
	return params.DailyYieldBps * multiplier * lockDays
}

// APYBps annualizes the tier yield over 365 days, in basis points.
func APYBps(multiplier uint64) uint64 {
	return params.DailyYieldBps * multiplier * 365
}
